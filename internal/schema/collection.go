package schema

import (
	"strings"
	"sync"
)

// wellKnownTypes are the types a collection binds to a single definition.
var wellKnownTypes = []FieldType{
	FieldTypeTitle,
	FieldTypeBody,
	FieldTypeTags,
	FieldTypeAuthor,
	FieldTypeLink,
	FieldTypeStatus,
	FieldTypeSeq,
	FieldTypeRating,
	FieldTypeRecurs,
	FieldTypeDate,
	FieldTypeIndex,
	FieldTypeShortID,
	FieldTypeID,
}

// Collection is the schema side of a note collection: its field dictionary
// plus the singular well-known bindings (the title field, the body field,
// and so on).
type Collection struct {
	Name string
	Dict *Dictionary

	mu       sync.RWMutex
	bindings map[FieldType]*FieldDefinition
}

// NewCollection creates a collection with an empty, unlocked dictionary.
func NewCollection(name string) *Collection {
	return NewCollectionWithDict(name, NewDictionary())
}

// NewCollectionWithDict wraps an existing dictionary, binding any
// well-known types it already holds.
func NewCollectionWithDict(name string, dict *Dictionary) *Collection {
	c := &Collection{
		Name:     name,
		Dict:     dict,
		bindings: make(map[FieldType]*FieldDefinition),
	}
	for _, def := range dict.Defs() {
		c.bind(def)
	}
	return c
}

// Def returns the definition for label, creating and registering one if
// the dictionary permits growth. The second result is false when the label
// is unknown and the dictionary is locked.
func (c *Collection) Def(label string) (*FieldDefinition, bool) {
	if strings.TrimSpace(label) == "" {
		return nil, false
	}
	if def, ok := c.Dict.Get(label); ok {
		return def, true
	}
	def, ok := c.Dict.Add(NewDefinition(label))
	if ok {
		c.bind(def)
	}
	return def, ok
}

// ChildDef returns the definition of child nested under parent, creating it
// when growth is permitted.
func (c *Collection) ChildDef(parent *FieldDefinition, child string) (*FieldDefinition, bool) {
	if parent == nil || strings.TrimSpace(child) == "" {
		return nil, false
	}
	def := NewChildDefinition(parent, child)
	if existing, ok := c.Dict.GetCommon(def.Label.Common); ok {
		return existing, true
	}
	return c.Dict.AddToFamily(def, parent.Label.Common)
}

// Register adds a definition with an explicit type and binds it.
func (c *Collection) Register(label string, t FieldType) (*FieldDefinition, bool) {
	def, ok := c.Dict.Add(NewTypedDefinition(label, t))
	if ok {
		c.bind(def)
	}
	return def, ok
}

// Binding returns the definition bound to a well-known type.
func (c *Collection) Binding(t FieldType) (*FieldDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.bindings[t]
	return def, ok
}

// Bind makes def the collection's definition for its type if no
// definition holds that binding yet.
func (c *Collection) Bind(def *FieldDefinition) {
	c.bind(def)
}

// Rebind refreshes the bindings of def after its type changed: bindings
// that still point at def under another type are dropped, and def is bound
// to its new type unless another definition already holds it.
func (c *Collection) Rebind(def *FieldDefinition) {
	if def == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for t, bound := range c.bindings {
		if bound == def && t != def.Type {
			delete(c.bindings, t)
		}
	}
	if !isWellKnown(def.Type) {
		return
	}
	if _, ok := c.bindings[def.Type]; !ok {
		c.bindings[def.Type] = def
	}
}

func (c *Collection) bind(def *FieldDefinition) {
	if def == nil || !isWellKnown(def.Type) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.bindings[def.Type]; !ok {
		c.bindings[def.Type] = def
	}
}

// Is reports whether def holds the collection's binding for t.
func (c *Collection) Is(def *FieldDefinition, t FieldType) bool {
	bound, ok := c.Binding(t)
	return ok && bound == def
}

func isWellKnown(t FieldType) bool {
	for _, known := range wellKnownTypes {
		if t == known {
			return true
		}
	}
	return false
}
