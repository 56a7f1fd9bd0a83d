package schema

import "sync"

// Dictionary is the ordered, indexed registry of field definitions for one
// collection.
//
// Ordering rules: a Title definition is always first, a Body definition is
// always last, and members of a family stay together in insertion order.
// A locked dictionary refuses unknown labels.
//
// Dictionary is safe for concurrent use. Definitions returned from it are
// shared; use Clone or FieldDefinition.Copy before handing them to another
// collection.
type Dictionary struct {
	mu     sync.RWMutex
	defs   []*FieldDefinition
	index  map[string]*FieldDefinition
	locked bool
}

// NewDictionary creates an empty, unlocked dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]*FieldDefinition)}
}

// Add registers def, or returns the existing definition with the same
// common form. The second result is false when the dictionary is locked and
// the label is new, or when the label is empty.
func (d *Dictionary) Add(def *FieldDefinition) (*FieldDefinition, bool) {
	return d.AddToFamily(def, def.Family)
}

// AddToFamily is Add with an explicit family. A new family member is placed
// directly after the last existing member of the family.
func (d *Dictionary) AddToFamily(def *FieldDefinition, family string) (*FieldDefinition, bool) {
	if def == nil || def.Label.IsEmpty() {
		return nil, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.index[def.Label.Common]; ok {
		return existing, true
	}
	if d.locked {
		return nil, false
	}

	def.Family = family
	d.insert(def)
	d.index[def.Label.Common] = def
	return def, true
}

// insert places def according to the ordering rules. Caller holds mu.
func (d *Dictionary) insert(def *FieldDefinition) {
	switch {
	case def.Label.Common == CommonTitle:
		d.insertAt(0, def)
		return
	case def.Label.Common == CommonBody:
		d.defs = append(d.defs, def)
		return
	}

	if def.Family != "" {
		last := -1
		for i, existing := range d.defs {
			if existing.Family == def.Family || existing.Label.Common == def.Family {
				last = i
			}
		}
		if last >= 0 {
			d.insertAt(last+1, def)
			return
		}
	}

	if n := len(d.defs); n > 0 && d.defs[n-1].Label.Common == CommonBody {
		d.insertAt(n-1, def)
		return
	}
	d.defs = append(d.defs, def)
}

func (d *Dictionary) insertAt(i int, def *FieldDefinition) {
	d.defs = append(d.defs, nil)
	copy(d.defs[i+1:], d.defs[i:])
	d.defs[i] = def
}

// Remove deletes the definition for label. Removing an absent label is a no-op.
func (d *Dictionary) Remove(label string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	common, ok := d.keyLocked(label)
	if !ok {
		return
	}
	delete(d.index, common)
	for i, def := range d.defs {
		if def.Label.Common == common {
			d.defs = append(d.defs[:i], d.defs[i+1:]...)
			break
		}
	}
}

// Get looks up a definition by label text in any form.
func (d *Dictionary) Get(label string) (*FieldDefinition, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if key, ok := d.keyLocked(label); ok {
		return d.index[key], true
	}
	return nil, false
}

// keyLocked returns the common form label text is stored under. d.mu must
// be held.
func (d *Dictionary) keyLocked(label string) (string, bool) {
	for _, key := range LookupKeys(label) {
		if _, ok := d.index[key]; ok {
			return key, true
		}
	}
	return "", false
}

// GetCommon looks up a definition by an already-folded common form.
func (d *Dictionary) GetCommon(common string) (*FieldDefinition, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	def, ok := d.index[common]
	return def, ok
}

// Contains reports whether the label is registered.
func (d *Dictionary) Contains(label string) bool {
	_, ok := d.Get(label)
	return ok
}

// Update runs fn on the definition for label while holding the write lock.
// It reports whether the label was found.
func (d *Dictionary) Update(label string, fn func(def *FieldDefinition)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	common, ok := d.keyLocked(label)
	if !ok {
		return false
	}
	fn(d.index[common])
	return true
}

// Lock forbids adding unknown labels.
func (d *Dictionary) Lock() {
	d.mu.Lock()
	d.locked = true
	d.mu.Unlock()
}

// Unlock permits growth again.
func (d *Dictionary) Unlock() {
	d.mu.Lock()
	d.locked = false
	d.mu.Unlock()
}

// Locked reports whether growth is forbidden.
func (d *Dictionary) Locked() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.locked
}

// Len returns the number of definitions.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.defs)
}

// Defs returns a snapshot of the ordered definitions.
func (d *Dictionary) Defs() []*FieldDefinition {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*FieldDefinition(nil), d.defs...)
}

// Clone returns an independent dictionary with copied definitions.
func (d *Dictionary) Clone() *Dictionary {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := &Dictionary{
		defs:   make([]*FieldDefinition, len(d.defs)),
		index:  make(map[string]*FieldDefinition, len(d.index)),
		locked: d.locked,
	}
	for i, def := range d.defs {
		cp := def.Copy()
		out.defs[i] = cp
		out.index[cp.Label.Common] = cp
	}
	return out
}
