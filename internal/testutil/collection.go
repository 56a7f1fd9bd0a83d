// Package testutil provides reusable test utilities for ntnk integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestCollection represents a temporary note collection for testing.
type TestCollection struct {
	Path       string
	ConfigPath string
	t          *testing.T
	template   string
	fields     string
	config     string
	files      map[string]string
}

// NewTestCollection creates a new test collection builder.
// Call Build() to create the actual collection directory.
func NewTestCollection(t *testing.T) *TestCollection {
	t.Helper()
	return &TestCollection{
		t:     t,
		files: make(map[string]string),
	}
}

// WithTemplate sets the template.txt content for the collection.
func (c *TestCollection) WithTemplate(content string) *TestCollection {
	c.template = content
	return c
}

// WithFields sets the fields.yaml content for the collection.
func (c *TestCollection) WithFields(yaml string) *TestCollection {
	c.fields = yaml
	return c
}

// WithConfig sets the global config.toml content used by RunCLI.
func (c *TestCollection) WithConfig(toml string) *TestCollection {
	c.config = toml
	return c
}

// WithFile adds a file to the collection.
// The path is relative to the collection root.
func (c *TestCollection) WithFile(path, content string) *TestCollection {
	c.files[path] = content
	return c
}

// Build creates the collection directory and all configured files.
// The config file lives outside the collection so it never reads as a note.
func (c *TestCollection) Build() *TestCollection {
	c.t.Helper()

	c.Path = c.t.TempDir()

	if c.template != "" {
		c.writeFile("template.txt", c.template)
	}
	if c.fields != "" {
		c.writeFile("fields.yaml", c.fields)
	}
	for path, content := range c.files {
		c.writeFile(path, content)
	}

	c.ConfigPath = filepath.Join(c.t.TempDir(), "config.toml")
	if err := os.WriteFile(c.ConfigPath, []byte(c.config), 0o644); err != nil {
		c.t.Fatalf("failed to write config: %v", err)
	}

	return c
}

// writeFile writes a file to the collection, creating directories as needed.
func (c *TestCollection) writeFile(relPath, content string) {
	c.t.Helper()
	fullPath := filepath.Join(c.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		c.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		c.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadFile reads a file from the collection.
func (c *TestCollection) ReadFile(relPath string) string {
	c.t.Helper()
	content, err := os.ReadFile(filepath.Join(c.Path, relPath))
	if err != nil {
		c.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the collection.
func (c *TestCollection) FileExists(relPath string) bool {
	_, err := os.Stat(filepath.Join(c.Path, relPath))
	return err == nil
}

// TaskTemplate returns a template declaring a small task collection.
func TaskTemplate() string {
	return `Title:

Status: <picklist: open, done>

Due: <date>

Notes: <longtext>

Body:
`
}
