package schema

import (
	"reflect"
	"testing"
)

func TestNewLabel(t *testing.T) {
	tests := []struct {
		raw        string
		wantProper string
		wantCommon string
	}{
		{"  Title ", "Title", "title"},
		{"TITLE", "Title", "title"},
		{"authors", "Author", "author"},
		{"By", "Author", "author"},
		{"Keywords", "Tags", "tags"},
		{"URL", "Link", "link"},
		{"short-id", "Short ID", "shortid"},
		{"Date", "Date", "date"},
		{"Due Date", "Due Date", "duedate"},
		{"Email-2", "Email-2", "email2"},
		{"My_Field.Name", "My_Field.Name", "myfieldname"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			l := NewLabel(tt.raw)
			if l.Proper != tt.wantProper {
				t.Errorf("Proper = %q, want %q", l.Proper, tt.wantProper)
			}
			if l.Common != tt.wantCommon {
				t.Errorf("Common = %q, want %q", l.Common, tt.wantCommon)
			}
		})
	}
}

func TestLabelIsReserved(t *testing.T) {
	if !NewLabel("categories").IsReserved() {
		t.Error("categories should fold to the reserved Tags label")
	}
	if NewLabel("Project").IsReserved() {
		t.Error("Project is not reserved")
	}
}

func TestTypeForLabel(t *testing.T) {
	tests := map[string]FieldType{
		"Title":     FieldTypeTitle,
		"text":      FieldTypeBody,
		"Authors":   FieldTypeAuthor,
		"Index":     FieldTypeIndex,
		"ID":        FieldTypeID,
		"Backlinks": FieldTypeBacklinks,
		"Folder":    FieldTypeFolder,
		"Project":   FieldTypeString,
	}
	for raw, want := range tests {
		if got := TypeForLabel(NewLabel(raw)); got != want {
			t.Errorf("TypeForLabel(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestTypeInfo(t *testing.T) {
	if !FieldTypeTitle.Info().SingleLine || !FieldTypeDate.Info().SingleLine {
		t.Error("title and date must be single-line")
	}
	if FieldTypeLongText.Info().SingleLine {
		t.Error("longtext must not be single-line")
	}
	for _, ft := range []FieldType{FieldTypeIndex, FieldTypeBacklinks, FieldTypeWikilinks} {
		if !ft.Info().Accumulate {
			t.Errorf("%s should accumulate", ft)
		}
	}
	if FieldTypeFolder.Info().Serializable {
		t.Error("folder must not be serializable")
	}
	if got := FieldTypeAuthor.Info().Join.List; got != ", " {
		t.Errorf("author list join = %q", got)
	}
	if got := FieldTypeTags.Info().Join.List; got != "; " {
		t.Errorf("tags list join = %q", got)
	}
	if got := FieldType("mystery").Info(); !reflect.DeepEqual(got, FieldTypeString.Info()) {
		t.Error("unknown types should behave as strings")
	}
}

func TestJoinPolicySplit(t *testing.T) {
	tests := []struct {
		policy JoinPolicy
		in     string
		want   []string
	}{
		{semicolonJoin, "a; b;c", []string{"a", "b", "c"}},
		{commaJoin, "Jane Doe, Bob", []string{"Jane Doe", "Bob"}},
		{semicolonJoin, "single", []string{"single"}},
		{semicolonJoin, " ; ", nil},
	}
	for _, tt := range tests {
		if got := tt.policy.Split(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		in      string
		want    FieldType
		wantErr bool
	}{
		{"date", FieldTypeDate, false},
		{"Long Text", FieldTypeLongText, false},
		{"pick-list", FieldTypePickList, false},
		{"URL", FieldTypeLink, false},
		{"", FieldTypeString, false},
		{"nope", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFieldType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFieldType(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFieldType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFieldDefinitionCopy(t *testing.T) {
	def := NewTypedDefinition("Status", FieldTypePickList)
	def.PickList = NewPickList("open", "done", "Open")
	if len(def.PickList.Values) != 2 {
		t.Fatalf("picklist should de-duplicate, got %v", def.PickList.Values)
	}

	cp := def.Copy()
	cp.PickList.Add("blocked")
	cp.Type = FieldTypeString

	if def.PickList.Contains("blocked") {
		t.Error("copy shares pick list with original")
	}
	if def.Type != FieldTypePickList {
		t.Error("copy shares type with original")
	}
	if !def.Equal(cp) {
		t.Error("definitions with the same common form should be equal")
	}
	if !NewDefinition("Alpha").Less(NewDefinition("beta")) {
		t.Error("ordering should use common form")
	}
}
