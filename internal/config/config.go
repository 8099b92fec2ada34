package config

import (
	"errors"
	"fmt"
	"os"

	"ci-notifier/api/v1alpha1"

	"gopkg.in/yaml.v2"
)

// Unmarshal parses YAML bytes into a ConfigSpec
func Unmarshal(bytes []byte) (config v1alpha1.ConfigSpec, err error) {
	err = yaml.UnmarshalStrict(bytes, &config)
	return config, err
}

// ReadFile reads and parses the config file at filepath
func ReadFile(filepath string) (config v1alpha1.ConfigSpec, err error) {
	var fileBytes []byte
	fileBytes, err = os.ReadFile(filepath)
	if err != nil {
		return config, err
	}

	// Expand environment variables present in the config
	// This will cause expansion in the following way: field: "$FIELD" -> field: "value_of_field"
	fileExpandedEnv := os.ExpandEnv(string(fileBytes))

	config, err = Unmarshal([]byte(fileExpandedEnv))
	if err != nil {
		return config, fmt.Errorf("invalid config %s: %w", filepath, err)
	}

	return config, nil
}

// ReadOptionalFile behaves like ReadFile but returns an empty config
// when the file does not exist
func ReadOptionalFile(filepath string) (config v1alpha1.ConfigSpec, err error) {
	config, err = ReadFile(filepath)
	if errors.Is(err, os.ErrNotExist) {
		return v1alpha1.ConfigSpec{}, nil
	}
	return config, err
}
