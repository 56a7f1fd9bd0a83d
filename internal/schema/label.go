// Package schema holds the field dictionary of a note collection: labels,
// field definitions, value types and the ordered registry that binds them.
package schema

import (
	"strings"
	"unicode"
)

// Common forms of the reserved semantic labels.
const (
	CommonTitle   = "title"
	CommonBody    = "body"
	CommonTags    = "tags"
	CommonAuthor  = "author"
	CommonLink    = "link"
	CommonStatus  = "status"
	CommonSeq     = "seq"
	CommonRating  = "rating"
	CommonRecurs  = "recurs"
	CommonDate    = "date"
	CommonIndex   = "index"
	CommonShortID = "shortid"
)

// Canonical spellings of the labels the parser creates on its own.
const (
	LabelTitle = "Title"
	LabelBody  = "Body"
	LabelTags  = "Tags"
)

// reservedLabels maps a reserved common form to its canonical spelling.
var reservedLabels = map[string]string{
	CommonTitle:   LabelTitle,
	CommonBody:    LabelBody,
	CommonTags:    LabelTags,
	CommonAuthor:  "Author",
	CommonLink:    "Link",
	CommonStatus:  "Status",
	CommonSeq:     "Seq",
	CommonRating:  "Rating",
	CommonRecurs:  "Recurs",
	CommonDate:    "Date",
	CommonIndex:   "Index",
	CommonShortID: "Short ID",
}

// labelSynonyms maps alias common forms onto reserved common forms.
var labelSynonyms = map[string]string{
	"authors":    CommonAuthor,
	"by":         CommonAuthor,
	"creator":    CommonAuthor,
	"tag":        CommonTags,
	"keywords":   CommonTags,
	"category":   CommonTags,
	"categories": CommonTags,
	"url":        CommonLink,
	"content":    CommonBody,
	"text":       CommonBody,
	"sequence":   CommonSeq,
	"rev":        CommonSeq,
	"revision":   CommonSeq,
	"recurrence": CommonRecurs,
	"repeat":     CommonRecurs,
}

// Label is a field label in two forms: the text as the user wrote it and
// the folded key used for dictionary lookups.
type Label struct {
	Proper string
	Common string
}

// NewLabel normalizes raw label text.
func NewLabel(raw string) Label {
	var l Label
	l.Set(raw)
	return l
}

// Set replaces both forms from raw label text. Reserved labels and their
// synonyms are forced to the canonical spelling.
func (l *Label) Set(raw string) {
	l.Proper = strings.TrimSpace(raw)
	l.Common = CommonForm(l.Proper)

	key := l.Common
	if syn, ok := labelSynonyms[key]; ok {
		key = syn
	}
	if canonical, ok := reservedLabels[key]; ok {
		l.Proper = canonical
		l.Common = key
	}
}

// IsReserved reports whether the label is one of the reserved semantic labels.
func (l Label) IsReserved() bool {
	_, ok := reservedLabels[l.Common]
	return ok
}

// IsEmpty reports whether the label has no usable key.
func (l Label) IsEmpty() bool {
	return l.Common == ""
}

func (l Label) String() string {
	return l.Proper
}

// CommonForm folds label text to its lookup key: lowercase with every
// character that is not a letter or digit removed.
func CommonForm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ChildCommon returns the common form of child nested under the label whose
// common form is parent. Top-level common forms never contain a dot, so the
// two cannot collide.
func ChildCommon(parent, child string) string {
	return parent + "." + CommonForm(child)
}

// LookupKeys returns the common forms label text may be stored under: for
// "Parent.Child" text the child form comes first, then the plain form.
func LookupKeys(label string) []string {
	keys := make([]string, 0, 2)
	if i := strings.LastIndexByte(label, '.'); i > 0 && i < len(label)-1 {
		keys = append(keys, ChildCommon(NewLabel(label[:i]).Common, label[i+1:]))
	}
	return append(keys, NewLabel(label).Common)
}
