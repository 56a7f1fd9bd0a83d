package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/hbowie/NotenikLib-sub002/internal/note"
)

// dialectValue is a pflag.Value accepting dialect names and abbreviations.
type dialectValue struct {
	d *note.Dialect
}

var _ pflag.Value = dialectValue{}

func newDialectValue(d *note.Dialect) dialectValue {
	return dialectValue{d: d}
}

func (v dialectValue) String() string {
	if v.d == nil || *v.d == note.Unknown {
		return ""
	}
	return v.d.String()
}

func (v dialectValue) Set(s string) error {
	d, err := note.ParseDialect(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v dialectValue) Type() string {
	return "dialect"
}

// dialectNames lists the dialects for help text and completion.
func dialectNames() []string {
	var names []string
	for _, d := range note.Dialects() {
		names = append(names, d.String())
	}
	return names
}

func dialectUsage(prefix string) string {
	return prefix + " (" + strings.Join(dialectNames(), ", ") + ")"
}
