// Package environment provides utilities for managing environment variables
// and configuration loading with support for namespacing and defaults.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file in the working directory. A missing
// file is not an error; real environment variables always win over the file.
//
// Example:
//
//	if err := environment.LoadEnv(); err != nil {
//	    log.Printf("reading .env: %v", err)
//	}
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads variables from the .env file at p, or from ./.env when p is
// empty.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// GetEnvOrDefault retrieves an environment variable value, returning a fallback
// value if the variable is not set.
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey constructs a namespaced environment variable key by
// combining a namespace prefix with the actual key name using an underscore.
// If no namespace is provided, it returns the key unchanged.
//
//	GetNamespaceEnvKey("TASKLINE", "PORT") // "TASKLINE_PORT"
//	GetNamespaceEnvKey("", "PORT")         // "PORT"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault retrieves a namespaced environment variable value,
// returning a fallback value if the variable is not set.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}
