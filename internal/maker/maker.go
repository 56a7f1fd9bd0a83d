// Package maker writes notes back to text in any supported dialect.
package maker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

// DefaultLabelWidth is the column at which Notenik values start.
const DefaultLabelWidth = 8

// Maker serializes notes. The zero value writes with DefaultLabelWidth and
// falls back to Notenik for notes with no dialect.
type Maker struct {
	LabelWidth int
	// Default is used when neither the caller nor the note names a dialect.
	Default note.Dialect
}

// Resolve returns the dialect n will be written in for the requested target,
// after inheritance and escalation.
func (m Maker) Resolve(n *note.Note, target note.Dialect) (note.Dialect, *Escalation) {
	if target == note.Unknown {
		target = n.Dialect
	}
	if target == note.Unknown {
		target = m.Default
	}
	return Escalate(n, target)
}

// Write emits n to sink and returns the dialect actually written. The sink
// is closed on every path.
func (m Maker) Write(sink lineio.Sink, n *note.Note, target note.Dialect) (d note.Dialect, err error) {
	d, _ = m.Resolve(n, target)
	lines := m.lines(n, d)

	if err := sink.Open(); err != nil {
		return d, fmt.Errorf("open note sink: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close note sink: %w", cerr)
		}
	}()

	for _, line := range lines {
		if err := sink.WriteLine(line); err != nil {
			if a, ok := sink.(interface{ Abort() }); ok {
				a.Abort()
			}
			return d, fmt.Errorf("write note: %w", err)
		}
	}
	return d, nil
}

// Format renders n as a string.
func (m Maker) Format(n *note.Note, target note.Dialect) (string, note.Dialect, error) {
	var sink lineio.BufferSink
	d, err := m.Write(&sink, n, target)
	if err != nil {
		return "", d, err
	}
	return sink.String(), d, nil
}

func (m Maker) lines(n *note.Note, d note.Dialect) []string {
	fields := ordered(n)
	switch d {
	case note.PlainText:
		return plainLines(fields)
	case note.Markdown:
		return markdownLines(fields)
	case note.MultiMarkdown:
		return multiMarkdownLines(fields)
	case note.YAML:
		return yamlLines(fields)
	default:
		width := m.LabelWidth
		if width <= 0 {
			width = DefaultLabelWidth
		}
		return notenikLines(fields, width)
	}
}

// ordered returns the writable fields with the title first and the body
// last, keeping note order otherwise.
func ordered(n *note.Note) []*note.Field {
	fields := writable(n)
	rank := func(f *note.Field) int {
		switch f.Def.Type {
		case schema.FieldTypeTitle:
			return 0
		case schema.FieldTypeBody:
			return 2
		}
		return 1
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return rank(fields[i]) < rank(fields[j])
	})
	return fields
}

// group is one top-level entry: a field, or a parent label and its children.
type group struct {
	field    *note.Field
	parent   string
	children []*note.Field
}

func groups(fields []*note.Field) []*group {
	var (
		out     []*group
		parents = make(map[string]*group)
	)
	for _, f := range fields {
		if !f.Def.IsChild() {
			out = append(out, &group{field: f})
			continue
		}
		g, ok := parents[f.Def.Parent]
		if !ok {
			g = &group{parent: parentLabel(f.Def)}
			parents[f.Def.Parent] = g
			out = append(out, g)
		}
		g.children = append(g.children, f)
	}
	return out
}

func parentLabel(def *schema.FieldDefinition) string {
	return strings.TrimSuffix(def.Label.Proper, "."+def.Child)
}

func splitLines(value string) []string {
	return strings.Split(value, "\n")
}

func plainLines(fields []*note.Field) []string {
	var title, body string
	for _, f := range fields {
		switch f.Def.Type {
		case schema.FieldTypeTitle:
			title = f.Value
		case schema.FieldTypeBody:
			body = f.Value
		}
	}
	lines := []string{title}
	if body != "" {
		lines = append(lines, "")
		lines = append(lines, splitLines(body)...)
	}
	return lines
}

func markdownLines(fields []*note.Field) []string {
	var lines []string
	for _, f := range fields {
		switch f.Def.Type {
		case schema.FieldTypeTitle:
			lines = append(lines, "# "+f.Value)
		case schema.FieldTypeTags:
			var tags []string
			for _, tag := range f.Def.Info().Join.Split(f.Value) {
				tags = append(tags, "#"+tag)
			}
			if len(tags) > 0 {
				lines = append(lines, "", strings.Join(tags, " "))
			}
		case schema.FieldTypeBody:
			if f.Value != "" {
				lines = append(lines, "")
				lines = append(lines, splitLines(f.Value)...)
			}
		}
	}
	return lines
}

func multiMarkdownLines(fields []*note.Field) []string {
	var (
		lines []string
		body  string
	)
	for _, f := range fields {
		if f.Def.Type == schema.FieldTypeBody {
			body = f.Value
			continue
		}
		lines = append(lines, labelLine(f.Def.Label.Proper, f.Value))
	}
	lines = append(lines, "")
	if body != "" {
		lines = append(lines, splitLines(body)...)
	}
	return lines
}

func yamlLines(fields []*note.Field) []string {
	lines := []string{"---"}
	var body string
	for _, g := range groups(fields) {
		if g.field == nil {
			lines = append(lines, g.parent+":")
			for _, c := range g.children {
				lines = append(lines, valueLines("  "+labelLine(c.Def.Child, firstOf(c.Value)), c.Value)...)
			}
			continue
		}
		f := g.field
		if f.Def.Type == schema.FieldTypeBody {
			body = f.Value
			continue
		}
		info := f.Def.Info()
		if info.MultiValued {
			if items := info.Join.Split(f.Value); len(items) > 1 {
				lines = append(lines, f.Def.Label.Proper+":")
				for _, item := range items {
					lines = append(lines, "- "+item)
				}
				continue
			}
		}
		lines = append(lines, valueLines(labelLine(f.Def.Label.Proper, firstOf(f.Value)), f.Value)...)
	}
	lines = append(lines, "---")
	if body != "" {
		lines = append(lines, "")
		lines = append(lines, splitLines(body)...)
	}
	return lines
}

func notenikLines(fields []*note.Field, width int) []string {
	var lines []string
	for i, g := range groups(fields) {
		if i > 0 {
			lines = append(lines, "")
		}
		if g.field == nil {
			lines = append(lines, g.parent+":")
			for _, c := range g.children {
				lines = append(lines, valueLines("  "+labelLine(c.Def.Child, firstOf(c.Value)), c.Value)...)
			}
			continue
		}

		f := g.field
		label := f.Def.Label.Proper
		switch {
		case f.Def.Type == schema.FieldTypeBody:
			lines = append(lines, label+":")
			if f.Value != "" {
				lines = append(lines, "")
				lines = append(lines, splitLines(f.Value)...)
			}
		case f.Value == "":
			lines = append(lines, label+":")
		case strings.Contains(f.Value, "\n"):
			lines = append(lines, label+":", "")
			lines = append(lines, splitLines(f.Value)...)
		default:
			lines = append(lines, padLabel(label, width)+f.Value)
		}
	}
	return lines
}

// labelLine writes "Label: value", or "Label:" for an empty value.
func labelLine(label, value string) string {
	if value == "" {
		return label + ":"
	}
	return label + ": " + value
}

// padLabel returns "Label: " padded with blanks to width.
func padLabel(label string, width int) string {
	s := label + ": "
	if len(s) < width {
		s += strings.Repeat(" ", width-len(s))
	}
	return s
}

// valueLines is first followed by the continuation lines of value.
func valueLines(first, value string) []string {
	rest := splitLines(value)[1:]
	return append([]string{first}, rest...)
}

func firstOf(value string) string {
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		return value[:i]
	}
	return value
}
