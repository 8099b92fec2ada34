package main

import (
	"ci-notifier/internal/cmd"
	"fmt"
	"os"
	"path/filepath"
)

func main() {

	baseName := filepath.Base(os.Args[0])

	if err := cmd.NewRootCommand(baseName).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
