package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FieldsFileName is the default name of a collection's field schema file.
const FieldsFileName = "fields.yaml"

// FieldsFile is the on-disk form of a dictionary.
type FieldsFile struct {
	Locked bool        `yaml:"locked,omitempty"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec is one field entry in a fields file.
type FieldSpec struct {
	Label      string   `yaml:"label"`
	Type       string   `yaml:"type,omitempty"`
	Values     []string `yaml:"values,omitempty"`
	Target     string   `yaml:"target,omitempty"`
	Family     string   `yaml:"family,omitempty"`
	Parent     string   `yaml:"parent,omitempty"`
	WriteEmpty bool     `yaml:"write_empty,omitempty"`
}

// LoadFields loads a collection's field schema from dir/fields.yaml.
// A missing file yields an empty collection.
func LoadFields(dir string) (*Collection, error) {
	return LoadFieldsFile(filepath.Join(dir, FieldsFileName), filepath.Base(dir))
}

// LoadFieldsFile loads a field schema from path into a collection called
// name. A missing file yields an empty collection.
func LoadFieldsFile(path, name string) (*Collection, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewCollection(name), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields file %s: %w", path, err)
	}

	coll, err := ParseFields(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fields file %s: %w", path, err)
	}
	return coll, nil
}

// ParseFields builds a collection from fields file content.
func ParseFields(name string, data []byte) (*Collection, error) {
	var file FieldsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	coll := NewCollection(name)
	for i, spec := range file.Fields {
		def, err := spec.definition(coll)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i+1, spec.Label, err)
		}
		if _, ok := coll.Dict.Add(def); !ok {
			return nil, fmt.Errorf("field %d: label %q is empty", i+1, spec.Label)
		}
		coll.Bind(def)
	}

	if file.Locked {
		coll.Dict.Lock()
	}
	return coll, nil
}

func (spec FieldSpec) definition(coll *Collection) (*FieldDefinition, error) {
	var def *FieldDefinition
	if spec.Parent != "" {
		parent, ok := coll.Dict.Get(spec.Parent)
		if !ok {
			return nil, fmt.Errorf("parent %q must be declared before its children", spec.Parent)
		}
		def = NewChildDefinition(parent, spec.Label)
	} else {
		def = NewDefinition(spec.Label)
	}

	if spec.Type != "" {
		t, err := ParseFieldType(spec.Type)
		if err != nil {
			return nil, err
		}
		def.Type = t
	}
	if len(spec.Values) > 0 {
		def.PickList = NewPickList(spec.Values...)
		if spec.Type == "" {
			def.Type = FieldTypePickList
		}
	}
	def.LookupTarget = spec.Target
	if spec.Family != "" {
		def.Family = CommonForm(spec.Family)
	}
	def.WriteEmpty = spec.WriteEmpty
	return def, nil
}

// MarshalFields renders a dictionary in fields file form.
func MarshalFields(dict *Dictionary) ([]byte, error) {
	file := FieldsFile{Locked: dict.Locked()}
	for _, def := range dict.Defs() {
		spec := FieldSpec{
			Label:      def.Label.Proper,
			Target:     def.LookupTarget,
			WriteEmpty: def.WriteEmpty,
		}
		if def.IsChild() {
			spec.Label = def.Child
			if parent, ok := dict.GetCommon(def.Parent); ok {
				spec.Parent = parent.Label.Proper
			}
		} else if def.Family != "" {
			spec.Family = def.Family
		}
		if def.Type != TypeForLabel(def.Label) {
			spec.Type = string(def.Type)
		}
		if def.PickList != nil {
			spec.Values = append([]string(nil), def.PickList.Values...)
		}
		file.Fields = append(file.Fields, spec)
	}
	return yaml.Marshal(file)
}
