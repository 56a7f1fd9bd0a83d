package schema

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType is the value-type tag of a field definition.
type FieldType string

const (
	FieldTypeTitle     FieldType = "title"
	FieldTypeBody      FieldType = "body"
	FieldTypeTags      FieldType = "tags"
	FieldTypeAuthor    FieldType = "author"
	FieldTypeLink      FieldType = "link"
	FieldTypeStatus    FieldType = "status"
	FieldTypeSeq       FieldType = "seq"
	FieldTypeRating    FieldType = "rating"
	FieldTypeRecurs    FieldType = "recurs"
	FieldTypeDate      FieldType = "date"
	FieldTypeIndex     FieldType = "index"
	FieldTypeShortID   FieldType = "shortid"
	FieldTypeID        FieldType = "id"
	FieldTypeString    FieldType = "string"
	FieldTypeLongText  FieldType = "longtext"
	FieldTypePickList  FieldType = "picklist"
	FieldTypeLookup    FieldType = "lookup"
	FieldTypeBacklinks FieldType = "backlinks"
	FieldTypeWikilinks FieldType = "wikilinks"
	FieldTypeFolder    FieldType = "folder"
)

// JoinPolicy declares how separate pieces of one field value are joined.
type JoinPolicy struct {
	// List joins list items: YAML "- value" lines and repeated labels that
	// accumulate.
	List string
	// Lines joins ordinary multi-line continuation text.
	Lines string
}

// Split breaks a list-joined value back into items.
func (p JoinPolicy) Split(value string) []string {
	sep := strings.TrimSpace(p.List)
	if sep == "" {
		return []string{value}
	}
	var items []string
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

var (
	semicolonJoin = JoinPolicy{List: "; ", Lines: "\n"}
	commaJoin     = JoinPolicy{List: ", ", Lines: "\n"}
)

// TypeInfo describes the parse and write behavior of a value type.
type TypeInfo struct {
	// SingleLine values are complete as soon as their label line is read.
	SingleLine bool
	// Accumulate values append across repeated occurrences instead of
	// overwriting.
	Accumulate bool
	// MultiValued values are written as YAML list items.
	MultiValued bool
	// Serializable is false for pseudo fields that are never written.
	Serializable bool
	Join         JoinPolicy
}

var typeCatalog = map[FieldType]TypeInfo{
	FieldTypeTitle:     {SingleLine: true, Serializable: true, Join: semicolonJoin},
	FieldTypeBody:      {Serializable: true, Join: semicolonJoin},
	FieldTypeTags:      {MultiValued: true, Serializable: true, Join: semicolonJoin},
	FieldTypeAuthor:    {MultiValued: true, Serializable: true, Join: commaJoin},
	FieldTypeLink:      {Serializable: true, Join: semicolonJoin},
	FieldTypeStatus:    {Serializable: true, Join: semicolonJoin},
	FieldTypeSeq:       {Serializable: true, Join: semicolonJoin},
	FieldTypeRating:    {Serializable: true, Join: semicolonJoin},
	FieldTypeRecurs:    {Serializable: true, Join: semicolonJoin},
	FieldTypeDate:      {SingleLine: true, Serializable: true, Join: semicolonJoin},
	FieldTypeIndex:     {Accumulate: true, MultiValued: true, Serializable: true, Join: semicolonJoin},
	FieldTypeShortID:   {Serializable: true, Join: semicolonJoin},
	FieldTypeID:        {Serializable: true, Join: semicolonJoin},
	FieldTypeString:    {Serializable: true, Join: semicolonJoin},
	FieldTypeLongText:  {Serializable: true, Join: semicolonJoin},
	FieldTypePickList:  {Serializable: true, Join: semicolonJoin},
	FieldTypeLookup:    {Serializable: true, Join: semicolonJoin},
	FieldTypeBacklinks: {Accumulate: true, MultiValued: true, Serializable: true, Join: semicolonJoin},
	FieldTypeWikilinks: {Accumulate: true, MultiValued: true, Serializable: true, Join: semicolonJoin},
	FieldTypeFolder:    {Join: semicolonJoin},
}

// Info returns the behavior of the type. Unknown types behave as strings.
func (t FieldType) Info() TypeInfo {
	if info, ok := typeCatalog[t]; ok {
		return info
	}
	return typeCatalog[FieldTypeString]
}

// Valid reports whether the type is in the catalog.
func (t FieldType) Valid() bool {
	_, ok := typeCatalog[t]
	return ok
}

// ParseFieldType maps a type name, in any case and punctuation, to a FieldType.
func ParseFieldType(name string) (FieldType, error) {
	key := FieldType(CommonForm(name))
	switch key {
	case "":
		return FieldTypeString, nil
	case "text":
		return FieldTypeString, nil
	case "link", "url":
		return FieldTypeLink, nil
	}
	if key.Valid() {
		return key, nil
	}
	return "", fmt.Errorf("unknown field type %q (valid: %s)", name, strings.Join(TypeNames(), ", "))
}

// TypeNames lists the catalog type names in sorted order.
func TypeNames() []string {
	names := make([]string, 0, len(typeCatalog))
	for t := range typeCatalog {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// reservedTypes is the value type implied by each reserved label.
var reservedTypes = map[string]FieldType{
	CommonTitle:   FieldTypeTitle,
	CommonBody:    FieldTypeBody,
	CommonTags:    FieldTypeTags,
	CommonAuthor:  FieldTypeAuthor,
	CommonLink:    FieldTypeLink,
	CommonStatus:  FieldTypeStatus,
	CommonSeq:     FieldTypeSeq,
	CommonRating:  FieldTypeRating,
	CommonRecurs:  FieldTypeRecurs,
	CommonDate:    FieldTypeDate,
	CommonIndex:   FieldTypeIndex,
	CommonShortID: FieldTypeShortID,
}

// impliedTypes covers non-reserved labels whose type follows from the name.
var impliedTypes = map[string]FieldType{
	"id":        FieldTypeID,
	"backlinks": FieldTypeBacklinks,
	"wikilinks": FieldTypeWikilinks,
	"folder":    FieldTypeFolder,
}

// TypeForLabel returns the value type implied by a label alone.
func TypeForLabel(l Label) FieldType {
	if t, ok := reservedTypes[l.Common]; ok {
		return t
	}
	if t, ok := impliedTypes[l.Common]; ok {
		return t
	}
	return FieldTypeString
}
