package globals

import "os"

// Get environment variables if defined. If not it retrieves
// a default value
func GetEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// LookupEnv reports the value of key, treating an empty value as unset
func LookupEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return "", false
	}
	return value, true
}
