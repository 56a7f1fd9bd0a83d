package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
)

type persistedConfig struct {
	DefaultDialect    *string              `toml:"default_dialect,omitempty"`
	LabelWidth        *int                 `toml:"label_width,omitempty"`
	TemplateFile      *string              `toml:"template_file,omitempty"`
	FieldsFile        *string              `toml:"fields_file,omitempty"`
	LockAfterTemplate *bool                `toml:"lock_after_template,omitempty"`
	UI                *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically. Unset
// values are left out of the file.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultDialect: nonEmptyPtr(cfg.DefaultDialect),
		TemplateFile:   nonEmptyPtr(cfg.TemplateFile),
		FieldsFile:     nonEmptyPtr(cfg.FieldsFile),
	}
	if cfg.LabelWidth > 0 {
		width := cfg.LabelWidth
		out.LabelWidth = &width
	}
	if cfg.LockAfterTemplate {
		lock := true
		out.LockAfterTemplate = &lock
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return writeLines(path, strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"))
}

// writeLines commits lines to path through an atomic file sink.
func writeLines(path string, lines []string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	sink := lineio.NewFileSink(path)
	if err := sink.Open(); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write config %s: %w", path, cerr)
		}
	}()

	for _, line := range lines {
		if err := sink.WriteLine(line); err != nil {
			sink.Abort()
			return fmt.Errorf("failed to write config %s: %w", path, err)
		}
	}
	return nil
}
