package schema

import "strings"

// PickList is an ordered set of allowed values for a field.
type PickList struct {
	Values []string `yaml:"values"`
}

// NewPickList builds a pick list, dropping blanks and duplicates.
func NewPickList(values ...string) *PickList {
	pl := &PickList{}
	for _, v := range values {
		pl.Add(v)
	}
	return pl
}

// Add appends a value if it is not already present. Comparison ignores case.
func (pl *PickList) Add(value string) {
	value = strings.TrimSpace(value)
	if value == "" || pl.Contains(value) {
		return
	}
	pl.Values = append(pl.Values, value)
}

// Contains reports whether the value is in the list, ignoring case.
func (pl *PickList) Contains(value string) bool {
	if pl == nil {
		return false
	}
	for _, v := range pl.Values {
		if strings.EqualFold(v, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

// FieldDefinition binds a label to a value type and optional constraints.
type FieldDefinition struct {
	Label        Label
	Type         FieldType
	PickList     *PickList
	LookupTarget string

	// WriteEmpty asks the writer to emit the label even when the note has
	// no value for it.
	WriteEmpty bool

	// Family groups related labels (email, email-2, email-3) so they stay
	// contiguous in the dictionary.
	Family string

	// Parent is the common form of the parent label of a nested field, and
	// Child the label text as written under the parent.
	Parent string
	Child  string
}

// NewDefinition creates a definition with the type implied by the label.
func NewDefinition(raw string) *FieldDefinition {
	l := NewLabel(raw)
	return &FieldDefinition{Label: l, Type: TypeForLabel(l)}
}

// NewTypedDefinition creates a definition with an explicit type.
func NewTypedDefinition(raw string, t FieldType) *FieldDefinition {
	return &FieldDefinition{Label: NewLabel(raw), Type: t}
}

// NewChildDefinition creates the definition of a label nested under parent.
func NewChildDefinition(parent *FieldDefinition, child string) *FieldDefinition {
	child = strings.TrimSpace(child)
	l := Label{Proper: parent.Label.Proper + "." + child}
	l.Common = ChildCommon(parent.Label.Common, child)
	return &FieldDefinition{
		Label:  l,
		Type:   FieldTypeString,
		Family: parent.Label.Common,
		Parent: parent.Label.Common,
		Child:  child,
	}
}

// Info returns the behavior of the definition's type.
func (d *FieldDefinition) Info() TypeInfo {
	return d.Type.Info()
}

// IsChild reports whether the definition is nested under a parent label.
func (d *FieldDefinition) IsChild() bool {
	return d.Parent != ""
}

// Equal compares definitions by common form only.
func (d *FieldDefinition) Equal(other *FieldDefinition) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Label.Common == other.Label.Common
}

// Less orders definitions by common form.
func (d *FieldDefinition) Less(other *FieldDefinition) bool {
	return d.Label.Common < other.Label.Common
}

// Copy returns a definition that shares no mutable state with d.
func (d *FieldDefinition) Copy() *FieldDefinition {
	if d == nil {
		return nil
	}
	cp := *d
	if d.PickList != nil {
		cp.PickList = &PickList{Values: append([]string(nil), d.PickList.Values...)}
	}
	return &cp
}

func (d *FieldDefinition) String() string {
	return d.Label.Proper + " (" + string(d.Type) + ")"
}
