// Package settings holds the form-shaped click settings and their persisted document.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the settings document. Missing files return Defaults; absent keys keep their defaults.
func Load(path string) (Document, error) {
	doc := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Save stamps LastModified in UTC and writes the document, creating parent directories as needed.
func Save(path string, doc Document, now time.Time) (Document, error) {
	doc.Metadata.LastModified = now.UTC().Format(time.RFC3339)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return doc, err
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return doc, err
	}
	return doc, os.WriteFile(path, data, 0o600)
}
