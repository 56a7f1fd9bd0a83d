package maker

import (
	"strings"

	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/parser"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

// Escalation explains why a note could not be written in the requested
// dialect.
type Escalation struct {
	From   note.Dialect
	To     note.Dialect
	Field  string
	Reason string
}

// shape classifies text the way the parser will see it on re-read. A nil
// collection makes every label-shaped line resolve as rejected, which is
// all the shape check needs.
var shape = parser.NewClassifier(nil)

func classify(text string, labels bool) parser.Line {
	return shape.Classify(text, 0, parser.Context{Labels: labels})
}

// Escalate decides the dialect a note is actually written in. It returns
// target unchanged when the dialect can express every present field, and
// Notenik otherwise, with the reason.
func Escalate(n *note.Note, target note.Dialect) (note.Dialect, *Escalation) {
	escalate := func(field, reason string) (note.Dialect, *Escalation) {
		return note.Notenik, &Escalation{From: target, To: note.Notenik, Field: field, Reason: reason}
	}

	switch target {
	case note.Notenik, note.Unknown:
		return note.Notenik, nil
	case note.YAML:
		for _, f := range present(n) {
			if !valueSafe(f.Value) {
				return escalate(f.Def.Label.Proper, "value has a line that reads as structure")
			}
		}
		return target, nil
	}

	var (
		title   = n.Title()
		body    = n.Body()
		tags    string
		tagsDef *schema.FieldDefinition
		header  int
	)
	for _, f := range present(n) {
		switch f.Def.Type {
		case schema.FieldTypeTitle:
			header++
		case schema.FieldTypeBody:
		case schema.FieldTypeTags:
			tags = f.Value
			tagsDef = f.Def
			header++
		default:
			return escalate(f.Def.Label.Proper, "field has no place in "+target.String())
		}
	}

	switch target {
	case note.PlainText:
		if tags != "" {
			return escalate(tagsDef.Label.Proper, "plain text has no tags")
		}
		if !titleSafe(title) {
			return escalate(schema.LabelTitle, "title would not read back as a title")
		}

	case note.Markdown:
		if !headingSafe(title) {
			return escalate(schema.LabelTitle, "title would not read back as a heading")
		}
		if tags != "" {
			for _, tag := range tagsDef.Info().Join.Split(tags) {
				if strings.ContainsAny(tag, " \t#") {
					return escalate(tagsDef.Label.Proper, "tag "+tag+" cannot be written as a hashtag")
				}
			}
		} else if first := firstLine(body); first != "" && len(classify(first, false).Hashtags) > 0 {
			return escalate(schema.LabelBody, "body would read back as tags")
		}

	case note.MultiMarkdown:
		if header == 0 {
			return escalate(schema.LabelTitle, "multimarkdown needs at least one header field")
		}
		if strings.Contains(tags, "\n") {
			return escalate(tagsDef.Label.Proper, "header values must fit on one line")
		}
		if header == 1 && body != "" {
			if line := classify(firstLine(body), true); line.LabelShaped {
				return escalate(schema.LabelBody, "body would read back as a field")
			}
		}
	}
	return target, nil
}

// writable returns the fields that are written at all: every serializable
// field with a value, plus empty placeholders for WriteEmpty definitions.
func writable(n *note.Note) []*note.Field {
	var out []*note.Field
	for _, f := range n.Fields() {
		if !f.Def.Info().Serializable {
			continue
		}
		if f.Value == "" && !f.Def.WriteEmpty {
			continue
		}
		out = append(out, f)
	}
	return out
}

// present returns the serializable fields with a value. Only these decide
// whether a dialect can express the note.
func present(n *note.Note) []*note.Field {
	var out []*note.Field
	for _, f := range writable(n) {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// titleSafe reports whether a plain-text first line reads back as the title.
func titleSafe(title string) bool {
	if strings.TrimSpace(title) == "" || strings.Contains(title, "\n") {
		return false
	}
	line := classify(title, true)
	return !line.LabelShaped && !line.Heading && !line.Delimiter
}

// headingSafe reports whether "# title" reads back as the title.
func headingSafe(title string) bool {
	title = strings.TrimSpace(title)
	return title != "" && !strings.Contains(title, "\n")
}

// valueSafe reports whether the continuation lines of a value re-read as
// part of it inside a YAML block.
func valueSafe(value string) bool {
	lines := strings.Split(value, "\n")
	for _, l := range lines[1:] {
		line := classify(l, true)
		if line.LabelShaped || line.Delimiter || line.ListItem {
			return false
		}
	}
	return true
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
