package note

import (
	"fmt"
	"strings"
)

// Dialect is one of the plain-text encodings a note can be written in.
type Dialect int

const (
	// Unknown means no dialect has been inferred or requested.
	Unknown Dialect = iota
	// PlainText: first line is the title, the rest is body.
	PlainText
	// Markdown: "# Title", an optional hashtag line, then body.
	Markdown
	// MultiMarkdown: "Label: value" lines up to the first blank line, then body.
	MultiMarkdown
	// YAML: "---" delimited "Label: value" block, then body.
	YAML
	// Notenik: blank-separated "Label: value" lines with an explicit Body label.
	Notenik
)

var dialectNames = map[Dialect]string{
	Unknown:       "unknown",
	PlainText:     "plain",
	Markdown:      "markdown",
	MultiMarkdown: "multimarkdown",
	YAML:          "yaml",
	Notenik:       "notenik",
}

var dialectAliases = map[string]Dialect{
	"":              Unknown,
	"unknown":       Unknown,
	"plain":         PlainText,
	"plaintext":     PlainText,
	"text":          PlainText,
	"txt":           PlainText,
	"markdown":      Markdown,
	"md":            Markdown,
	"multimarkdown": MultiMarkdown,
	"mmd":           MultiMarkdown,
	"yaml":          YAML,
	"yml":           YAML,
	"notenik":       Notenik,
	"nnk":           Notenik,
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// ParseDialect maps a dialect name or common abbreviation to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if d, ok := dialectAliases[key]; ok {
		return d, nil
	}
	return Unknown, fmt.Errorf("unknown dialect %q (valid: plain, markdown, multimarkdown, yaml, notenik)", s)
}

// Dialects lists the concrete dialects.
func Dialects() []Dialect {
	return []Dialect{PlainText, Markdown, MultiMarkdown, YAML, Notenik}
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
