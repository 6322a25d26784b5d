// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files and
// from the environment. Each file in the directory represents one secret:
// the filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: semantic-scholar-api-key, openai-api-key.
// Environment variables (SEMANTIC_SCHOLAR_API_KEY, OPENAI_API_KEY) take
// precedence over files so CI and one-off runs need no secrets directory.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envOverrides maps secret key names to the environment variables that
// override them.
var envOverrides = map[string]string{
	"semantic-scholar-api-key": "SEMANTIC_SCHOLAR_API_KEY",
	"openai-api-key":           "OPENAI_API_KEY",
}

// Load reads all files in dir and returns a map of filename to trimmed
// contents, with environment overrides applied on top. A missing directory
// is not an error; Load still returns environment-provided values.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	for key, env := range envOverrides {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			secrets[key] = v
		}
	}

	return secrets, nil
}
