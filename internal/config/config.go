// Package config handles global ntnk configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hbowie/NotenikLib-sub002/internal/maker"
	"github.com/hbowie/NotenikLib-sub002/internal/note"
)

// Config represents the global ntnk configuration.
type Config struct {
	// DefaultDialect is used when neither the command line nor the note
	// names a dialect. Empty means notenik.
	DefaultDialect string `toml:"default_dialect"`

	// LabelWidth is the column at which Notenik values start.
	LabelWidth int `toml:"label_width"`

	// TemplateFile is the template note read before parsing, relative to
	// the collection directory unless absolute.
	TemplateFile string `toml:"template_file"`

	// FieldsFile is the field schema file, relative to the collection
	// directory unless absolute.
	FieldsFile string `toml:"fields_file"`

	// LockAfterTemplate locks the dictionary once the template is applied.
	LockAfterTemplate bool `toml:"lock_after_template"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Default file names inside a collection directory.
const (
	DefaultTemplateFile = "template.txt"
	DefaultFieldsFile   = "fields.yaml"
)

// Dialect returns the configured default dialect.
func (c *Config) Dialect() (note.Dialect, error) {
	if strings.TrimSpace(c.DefaultDialect) == "" {
		return note.Notenik, nil
	}
	d, err := note.ParseDialect(c.DefaultDialect)
	if err != nil {
		return note.Notenik, fmt.Errorf("default_dialect: %w", err)
	}
	if d == note.Unknown {
		return note.Notenik, nil
	}
	return d, nil
}

// Width returns the Notenik label width, falling back to the maker default.
func (c *Config) Width() int {
	if c.LabelWidth <= 0 {
		return maker.DefaultLabelWidth
	}
	return c.LabelWidth
}

// TemplatePath resolves the template file for a collection directory.
func (c *Config) TemplatePath(dir string) string {
	return resolve(dir, c.TemplateFile, DefaultTemplateFile)
}

// FieldsPath resolves the fields file for a collection directory.
func (c *Config) FieldsPath(dir string) string {
	return resolve(dir, c.FieldsFile, DefaultFieldsFile)
}

func resolve(dir, name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// Validate reports settings that would fail later.
func (c *Config) Validate() error {
	if _, err := c.Dialect(); err != nil {
		return err
	}
	if c.LabelWidth < 0 {
		return fmt.Errorf("label_width must not be negative, got %d", c.LabelWidth)
	}
	return nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/notenik/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "notenik", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "notenik", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// defaultConfig is written by CreateDefault.
const defaultConfig = `# ntnk configuration

# Dialect used when a note has no inherited dialect:
# plain, markdown, multimarkdown, yaml or notenik.
# default_dialect = "notenik"

# Column at which Notenik values start.
# label_width = 8

# Per-collection files, relative to the collection directory.
# template_file = "template.txt"
# fields_file = "fields.yaml"

# Reject labels the template does not declare.
# lock_after_template = false

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault creates a commented default config file at path if it
// doesn't exist, and returns whether it was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := writeLines(path, strings.Split(strings.TrimSuffix(defaultConfig, "\n"), "\n")); err != nil {
		return false, err
	}
	return true, nil
}
