package parser

import (
	"fmt"
	"strings"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

// BootstrapOptions controls how a template seeds a collection.
type BootstrapOptions struct {
	// Lock forbids new labels once the template has been applied.
	Lock bool
}

// TypeSpec is a type declaration written as a template value, such as
// "<date>", "<picklist: open, closed>" or "<lookup: authors>".
type TypeSpec struct {
	Type   schema.FieldType
	Values []string
	Target string
}

// ParseTypeSpec parses a template value. The second result is false when
// the value is not an angle-bracket declaration.
func ParseTypeSpec(value string) (TypeSpec, bool, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || value[0] != '<' || value[len(value)-1] != '>' {
		return TypeSpec{}, false, nil
	}
	inner := strings.TrimSpace(value[1 : len(value)-1])
	name, args, _ := strings.Cut(inner, ":")

	t, err := schema.ParseFieldType(name)
	if err != nil {
		return TypeSpec{}, true, err
	}
	spec := TypeSpec{Type: t}
	args = strings.TrimSpace(args)

	switch t {
	case schema.FieldTypePickList:
		for _, v := range strings.Split(args, ",") {
			if v = strings.TrimSpace(v); v != "" {
				spec.Values = append(spec.Values, v)
			}
		}
	case schema.FieldTypeLookup:
		if args == "" {
			return TypeSpec{}, true, fmt.Errorf("lookup field needs a target collection: %s", value)
		}
		spec.Target = args
	}
	return spec, true, nil
}

// ApplyTemplate infers field types and singular bindings from an exemplar
// note. Each value written as a type declaration retypes its field. Fields
// without one, and the title and body fields, keep the type implied by
// their label.
func ApplyTemplate(coll *schema.Collection, n *note.Note, opts BootstrapOptions) error {
	for _, f := range n.Fields() {
		spec, ok, err := ParseTypeSpec(f.Value)
		if err != nil {
			return fmt.Errorf("template field %s: %w", f.Def.Label.Proper, err)
		}
		if !ok || f.Def.Type == schema.FieldTypeTitle || f.Def.Type == schema.FieldTypeBody {
			continue
		}
		coll.Dict.Update(f.Def.Label.Proper, func(def *schema.FieldDefinition) {
			def.Type = spec.Type
			if len(spec.Values) > 0 {
				def.PickList = schema.NewPickList(spec.Values...)
			}
			if spec.Target != "" {
				def.LookupTarget = spec.Target
			}
		})
		coll.Rebind(f.Def)
	}

	for _, def := range coll.Dict.Defs() {
		coll.Bind(def)
	}
	if opts.Lock {
		coll.Dict.Lock()
	}
	return nil
}

// LoadTemplate parses a template from src and applies it to coll.
func LoadTemplate(coll *schema.Collection, src lineio.Source, opts BootstrapOptions) (*Result, error) {
	res, err := New(coll).Parse(src, TemplateSentinel)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if err := ApplyTemplate(coll, res.Note, opts); err != nil {
		return nil, err
	}
	return res, nil
}
