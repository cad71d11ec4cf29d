// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credential files from a directory of
// plain files. Each file is one secret: the filename is the key name and the
// trimmed file contents are the value.
//
// Known keys: xai-api-key, google-client-secret.json, google-token.json.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	XAIAPIKey          = "xai-api-key"
	GoogleClientSecret = "google-client-secret.json"
	GoogleToken        = "google-token.json"
)

// Secrets holds the values loaded from a secrets directory.
type Secrets struct {
	dir    string
	values map[string]string
}

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files are logged and skipped.
func Load(dir string) (*Secrets, error) {
	s := &Secrets{dir: dir, values: map[string]string{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
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
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			s.values[name] = value
		}
	}

	return s, nil
}

// Get returns the value for key, or fallback when fallback is non-empty.
// Explicit configuration always wins over the secrets directory.
func (s *Secrets) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if s == nil {
		return ""
	}
	return s.values[key]
}

// Path returns the file path of key when that secret was loaded, or
// fallback when fallback is non-empty.
func (s *Secrets) Path(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if s == nil {
		return ""
	}
	if _, ok := s.values[key]; !ok {
		return ""
	}
	return filepath.Join(s.dir, key)
}

// Keys returns the loaded key names, sorted.
func (s *Secrets) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
