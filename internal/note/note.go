// Package note defines the structured record produced by the parser and
// consumed by the writer.
package note

import (
	"strings"

	"github.com/hbowie/NotenikLib-sub002/internal/schema"
	"github.com/hbowie/NotenikLib-sub002/internal/slugs"
)

// Field is one labeled value of a note.
type Field struct {
	Def   *schema.FieldDefinition
	Value string
}

// Note is an ordered mapping from common-form label to field value.
type Note struct {
	// ID is derived from the explicit id field when present, otherwise
	// from the title.
	ID string

	// Dialect records the form the note was read from, or should be
	// written as.
	Dialect Dialect

	fields map[string]*Field
	order  []string
}

// New creates an empty note.
func New() *Note {
	return &Note{fields: make(map[string]*Field)}
}

// Set stores value under def, replacing any previous value.
func (n *Note) Set(def *schema.FieldDefinition, value string) {
	key := def.Label.Common
	if f, ok := n.fields[key]; ok {
		f.Def = def
		f.Value = value
		return
	}
	n.fields[key] = &Field{Def: def, Value: value}
	n.order = append(n.order, key)
}

// Append adds value to the field for def, joined with sep when the field
// already holds a value.
func (n *Note) Append(def *schema.FieldDefinition, value, sep string) {
	f, ok := n.fields[def.Label.Common]
	if !ok || f.Value == "" {
		n.Set(def, value)
		return
	}
	if value == "" {
		return
	}
	f.Value += sep + value
}

// Remove deletes the field for label.
func (n *Note) Remove(label string) {
	f, ok := n.Field(label)
	if !ok {
		return
	}
	key := f.Def.Label.Common
	delete(n.fields, key)
	for i, k := range n.order {
		if k == key {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Field returns the field for label text in any form.
func (n *Note) Field(label string) (*Field, bool) {
	for _, key := range schema.LookupKeys(label) {
		if f, ok := n.fields[key]; ok {
			return f, true
		}
	}
	return nil, false
}

// FieldCommon returns the field for an already-folded common form.
func (n *Note) FieldCommon(common string) (*Field, bool) {
	f, ok := n.fields[common]
	return f, ok
}

// Value returns the value for label, or "" when absent.
func (n *Note) Value(label string) string {
	if f, ok := n.Field(label); ok {
		return f.Value
	}
	return ""
}

// Has reports whether the note holds a non-empty value for label.
func (n *Note) Has(label string) bool {
	return n.Value(label) != ""
}

// Fields returns the fields in insertion order.
func (n *Note) Fields() []*Field {
	out := make([]*Field, 0, len(n.order))
	for _, key := range n.order {
		out = append(out, n.fields[key])
	}
	return out
}

// Values returns a copy of the non-empty values keyed by common form.
func (n *Note) Values() map[string]string {
	out := make(map[string]string, len(n.fields))
	for key, f := range n.fields {
		if f.Value != "" {
			out[key] = f.Value
		}
	}
	return out
}

// Len returns the number of fields.
func (n *Note) Len() int {
	return len(n.order)
}

// Typed returns the first field whose definition has type t.
func (n *Note) Typed(t schema.FieldType) (*Field, bool) {
	for _, key := range n.order {
		if f := n.fields[key]; f.Def.Type == t {
			return f, true
		}
	}
	return nil, false
}

// Title returns the title value.
func (n *Note) Title() string {
	if f, ok := n.Typed(schema.FieldTypeTitle); ok {
		return f.Value
	}
	return ""
}

// Body returns the body value.
func (n *Note) Body() string {
	if f, ok := n.Typed(schema.FieldTypeBody); ok {
		return f.Value
	}
	return ""
}

// Equal reports whether two notes hold the same non-empty structured values.
func (n *Note) Equal(other *Note) bool {
	a, b := n.Values(), other.Values()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// DeriveID sets ID from the first non-empty field of type id, falling back
// to a slug of the title.
func (n *Note) DeriveID() string {
	n.ID = ""
	for _, f := range n.Fields() {
		if f.Def.Type == schema.FieldTypeID && strings.TrimSpace(f.Value) != "" {
			n.ID = strings.TrimSpace(f.Value)
			return n.ID
		}
	}
	if title := strings.TrimSpace(n.Title()); title != "" {
		n.ID = slugs.NoteID(title)
	}
	return n.ID
}
