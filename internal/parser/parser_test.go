package parser

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

func parse(t *testing.T, coll *schema.Collection, content string) *Result {
	t.Helper()
	if coll == nil {
		coll = schema.NewCollection("test")
	}
	res, err := New(coll).Parse(lineio.NewStringSource(content), "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return res
}

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect note.Dialect
		want    map[string]string
	}{
		{
			name:    "notenik body label",
			input:   "Title: Hello\nBody:\nWorld",
			dialect: note.Notenik,
			want:    map[string]string{"title": "Hello", "body": "World"},
		},
		{
			name:    "markdown heading",
			input:   "# Hello\n\nWorld",
			dialect: note.Markdown,
			want:    map[string]string{"title": "Hello", "body": "World"},
		},
		{
			name:    "multimarkdown header",
			input:   "Title: Hello\nAuthor: Jane\n\nWorld",
			dialect: note.MultiMarkdown,
			want:    map[string]string{"title": "Hello", "author": "Jane", "body": "World"},
		},
		{
			name:    "yaml repeated tags",
			input:   "---\nTitle: Hello\nTags: a\nTags: b\n---\nWorld",
			dialect: note.YAML,
			want:    map[string]string{"title": "Hello", "tags": "a; b", "body": "World"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, nil, tt.input)
			if res.Note.Dialect != tt.dialect {
				t.Errorf("dialect = %s, want %s", res.Note.Dialect, tt.dialect)
			}
			if got := res.Note.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %#v, want %#v", got, tt.want)
			}
			if len(res.Rejected()) != 0 {
				t.Errorf("unexpected rejections: %+v", res.Rejected())
			}
		})
	}
}

func TestParseDialects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect note.Dialect
		want    map[string]string
	}{
		{
			name:    "plain text",
			input:   "Shopping list\nEggs\n\nMilk\n",
			dialect: note.PlainText,
			want:    map[string]string{"title": "Shopping list", "body": "Eggs\n\nMilk"},
		},
		{
			name:    "plain text title only",
			input:   "Just a title",
			dialect: note.PlainText,
			want:    map[string]string{"title": "Just a title"},
		},
		{
			name:    "markdown with hashtags",
			input:   "# Hello\n\n#alpha #beta\n\nWorld\n#not-tags\n",
			dialect: note.Markdown,
			want:    map[string]string{"title": "Hello", "tags": "alpha; beta", "body": "World\n#not-tags"},
		},
		{
			name:    "markdown second hashtag line is body",
			input:   "# Hello\n#a\n#b",
			dialect: note.Markdown,
			want:    map[string]string{"title": "Hello", "tags": "a", "body": "#b"},
		},
		{
			name:    "label then prose degrades to markdown",
			input:   "Title: Hello\nWorld",
			dialect: note.Markdown,
			want:    map[string]string{"title": "Hello", "body": "World"},
		},
		{
			name:    "one field blank prose",
			input:   "Title: Hello\n\nWorld",
			dialect: note.MultiMarkdown,
			want:    map[string]string{"title": "Hello", "body": "World"},
		},
		{
			name:    "one field blank eof",
			input:   "Title: Hello\n\n",
			dialect: note.MultiMarkdown,
			want:    map[string]string{"title": "Hello"},
		},
		{
			name:    "labels only",
			input:   "Title: Hello\nStatus: open",
			dialect: note.Notenik,
			want:    map[string]string{"title": "Hello", "status": "open"},
		},
		{
			name:    "multimarkdown body keeps structure",
			input:   "Title: Hello\nTags: a\n\nNote: not a label\n---\n# Heading",
			dialect: note.MultiMarkdown,
			want:    map[string]string{"title": "Hello", "tags": "a", "body": "Note: not a label\n---\n# Heading"},
		},
		{
			name: "notenik native",
			input: "Title:  Hello\n\nAuthor: Jane\n\nNotes:\n\nline one\n\nline two\n\n" +
				"Body:\n\nWorld\n\nMore\n\n",
			dialect: note.Notenik,
			want: map[string]string{
				"title":  "Hello",
				"author": "Jane",
				"notes":  "line one\n\nline two",
				"body":   "World\n\nMore",
			},
		},
		{
			name:    "notenik multi-line first field",
			input:   "Notes:\n\nfirst\nsecond\n\nBody:\n\nx",
			dialect: note.Notenik,
			want:    map[string]string{"notes": "first\nsecond", "body": "x"},
		},
		{
			name:    "body label with inline text",
			input:   "Title: X\nBody: starts here\nand continues",
			dialect: note.Notenik,
			want:    map[string]string{"title": "X", "body": "starts here\nand continues"},
		},
		{
			name:    "yaml lists",
			input:   "---\nTitle: Hello\nTags:\n  - a\n  - b\nAuthor:\n- Jane\n- Bob\n---\n\nWorld",
			dialect: note.YAML,
			want:    map[string]string{"title": "Hello", "tags": "a; b", "author": "Jane, Bob", "body": "World"},
		},
		{
			name:    "yaml empty block",
			input:   "---\n---\nWorld",
			dialect: note.YAML,
			want:    map[string]string{"body": "World"},
		},
		{
			name:    "yaml orphan text kept in body",
			input:   "---\nTitle: Hello\nstray words\n---\nWorld",
			dialect: note.YAML,
			want:    map[string]string{"title": "Hello", "body": "stray words\nWorld"},
		},
		{
			name:    "delimiter after fields is not yaml",
			input:   "Title: Hello\n---\nWorld",
			dialect: note.Markdown,
			want:    map[string]string{"title": "Hello", "body": "---\nWorld"},
		},
		{
			name:    "leading blank lines",
			input:   "\n\n  \nTitle: Hello\nBody:\n\n\nWorld",
			dialect: note.Notenik,
			want:    map[string]string{"title": "Hello", "body": "World"},
		},
		{
			name:    "synonym label",
			input:   "Title: Hello\nAuthors: Jane\nBy: Jim\n\nx",
			dialect: note.MultiMarkdown,
			want:    map[string]string{"title": "Hello", "author": "Jim", "body": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, nil, tt.input)
			if res.Note.Dialect != tt.dialect {
				t.Errorf("dialect = %s, want %s", res.Note.Dialect, tt.dialect)
			}
			if got := res.Note.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseNotenikMultiLineValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "label-shaped line inside value",
			input: "Title: Hello\n\nNotes:\n\nfirst line\nNote: remember this\n\nBody:\n\nx",
			want:  map[string]string{"title": "Hello", "notes": "first line\nNote: remember this", "body": "x"},
		},
		{
			name:  "indented label-shaped line inside value",
			input: "Title: Hello\n\nNotes:\n\na\n  b: c\n\nBody:\n\nx",
			want:  map[string]string{"title": "Hello", "notes": "a\n  b: c", "body": "x"},
		},
		{
			name:  "delimiter and heading inside value",
			input: "Title: T\n\nNotes:\n\none\n---\n# two\n\nBody:\n\nx",
			want:  map[string]string{"title": "T", "notes": "one\n---\n# two", "body": "x"},
		},
		{
			name:  "blank line ends the verbatim run",
			input: "Notes:\n\na\nAuthor: not a field\n\nStatus: open\n\nBody:\n\nx",
			want:  map[string]string{"notes": "a\nAuthor: not a field", "status": "open", "body": "x"},
		},
		{
			name:  "paragraphs inside value",
			input: "Title: T\n\nNotes:\n\none\n\ntwo\nthree: 3\n\nBody:\n\nx",
			want:  map[string]string{"title": "T", "notes": "one\n\ntwo\nthree: 3", "body": "x"},
		},
		{
			name:  "empty label followed by a field",
			input: "Title: T\n\nNotes:\n\nStatus: open\n\nBody:\n\nx",
			want:  map[string]string{"title": "T", "status": "open", "body": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := schema.NewCollection("test")
			res := parse(t, coll, tt.input)
			if res.Note.Dialect != note.Notenik {
				t.Errorf("dialect = %s", res.Note.Dialect)
			}
			if got := res.Note.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %#v, want %#v", got, tt.want)
			}
			for _, label := range []string{"Note", "Notes.b", "Author", "three"} {
				if _, ok := coll.Dict.Get(label); ok {
					t.Errorf("text inside a value registered label %q", label)
				}
			}
		})
	}
}

func TestParseTitlelessChildGroup(t *testing.T) {
	res := parse(t, nil, "Address:\n  City: Paris\n\nAuthor: Jane\n")
	if res.Note.Dialect != note.Notenik {
		t.Errorf("dialect = %s, want notenik", res.Note.Dialect)
	}
	want := map[string]string{"address.city": "Paris", "author": "Jane"}
	if got := res.Note.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("values = %#v, want %#v", got, want)
	}
	if got := res.Note.Value("Address.City"); got != "Paris" {
		t.Errorf("Value(Address.City) = %q", got)
	}
}

func TestParseYAMLTextOutsideFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "text between fields waits for the block to close",
			input: "---\nTitle: Hello\nstray words\nAuthor: Jane\n---\n\nWorld",
			want:  map[string]string{"title": "Hello", "author": "Jane", "body": "stray words\n\nWorld"},
		},
		{
			name:  "unclosed block",
			input: "---\nTitle: Hello\nstray words\nAuthor: Jane",
			want:  map[string]string{"title": "Hello", "author": "Jane", "body": "stray words"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, nil, tt.input)
			if got := res.Note.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseWriteEmptyPlaceholder(t *testing.T) {
	coll := schema.NewCollection("test")
	coll.Def("Status")
	coll.Dict.Update("Status", func(def *schema.FieldDefinition) { def.WriteEmpty = true })

	res := parse(t, coll, "Title: Hello\n\nStatus:\n\nNotes:\n\nBody:\n\nx")
	status, ok := res.Note.Field("Status")
	if !ok || status.Value != "" {
		t.Errorf("status = %+v, %v; want an empty placeholder", status, ok)
	}
	if _, ok := res.Note.Field("Notes"); ok {
		t.Error("empty field without WriteEmpty was kept")
	}

	res = parse(t, coll, "Title: Hello\n\nStatus: open\n\nStatus:\n\nBody:\n\nx")
	if got := res.Note.Value("status"); got != "open" {
		t.Errorf("placeholder replaced a value: %q", got)
	}
}

func TestParseLongLine(t *testing.T) {
	long := strings.Repeat("x", 5<<20)
	res := New(schema.NewCollection("test")).ParseString("Title: Hi\n\nBody:\n\n"+long, "")
	if res == nil {
		t.Fatal("ParseString returned nil")
	}
	if got := res.Note.Body(); got != long {
		t.Errorf("body length = %d, want %d", len(got), len(long))
	}
	if res.Note.Title() != "Hi" {
		t.Errorf("title = %q", res.Note.Title())
	}
}

func TestParseCommitPolicies(t *testing.T) {
	t.Run("index accumulates", func(t *testing.T) {
		res := parse(t, nil, "Title: X\nIndex: alpha\nIndex: beta\n\nbody")
		if got := res.Note.Value("index"); got != "alpha; beta" {
			t.Errorf("index = %q", got)
		}
	})

	t.Run("backlinks accumulate", func(t *testing.T) {
		res := parse(t, nil, "Title: X\n\nBacklinks: a\n\nBacklinks: b\n\nBody:\n")
		if got := res.Note.Value("backlinks"); got != "a; b" {
			t.Errorf("backlinks = %q", got)
		}
	})

	t.Run("ordinary fields overwrite", func(t *testing.T) {
		res := parse(t, nil, "Title: X\nStatus: open\nStatus: done\n\nbody")
		if got := res.Note.Value("status"); got != "done" {
			t.Errorf("status = %q", got)
		}
	})

	t.Run("tags overwrite outside yaml", func(t *testing.T) {
		res := parse(t, nil, "Title: X\nTags: a\nTags: b\n\nbody")
		if got := res.Note.Value("tags"); got != "b" {
			t.Errorf("tags = %q", got)
		}
	})
}

func TestParseSingleLineFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label string
		want  string
	}{
		{"title in yaml", "---\nTitle: Hello\nworld\n---\nBody text", "title", "Hello"},
		{"title then prose", "Title: Hello\nstill the title?\nBody:\nx", "title", "Hello"},
		{"date before continuation", "Date: 2024-01-02\nAuthor: Jane\ncontinued", "date", "2024-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, nil, tt.input)
			if got := res.Note.Value(tt.label); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.label, got, tt.want)
			}
		})
	}

	res := parse(t, nil, "Date: 2024-01-02\nAuthor: Jane\ncontinued")
	if got := res.Note.Value("author"); got != "Jane\ncontinued" {
		t.Errorf("author = %q", got)
	}
}

func TestParseChildFields(t *testing.T) {
	coll := schema.NewCollection("test")
	res := parse(t, coll, "Title: Hello\n\nAddress:\n  Street: 1 Main St\n  City: Springfield\n\nPhone: 555\n\nBody:\n\nx")

	n := res.Note
	street, ok := n.FieldCommon("address.street")
	if !ok || street.Value != "1 Main St" {
		t.Fatalf("street = %+v", street)
	}
	if !street.Def.IsChild() || street.Def.Parent != "address" || street.Def.Child != "Street" {
		t.Errorf("street def = %+v", street.Def)
	}
	if got := n.Value("phone"); got != "555" {
		t.Errorf("phone = %q", got)
	}
	if n.Has("address") {
		t.Error("parent label stored a value")
	}
	if n.Dialect != note.Notenik {
		t.Errorf("dialect = %s", n.Dialect)
	}

	var order []string
	for _, def := range coll.Dict.Defs() {
		order = append(order, def.Label.Common)
	}
	want := []string{"title", "address", "address.street", "address.city", "phone", "body"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("dictionary order = %v, want %v", order, want)
	}
}

func TestParseLockedDictionary(t *testing.T) {
	coll := schema.NewCollection("locked")
	coll.Def("Title")
	coll.Def("Body")
	coll.Dict.Lock()

	res := parse(t, coll, "Title: Hello\nMystery: secret\nmore secret\nBody:\nWorld")

	if got := res.Note.Values(); !reflect.DeepEqual(got, map[string]string{"title": "Hello", "body": "World"}) {
		t.Errorf("values = %#v", got)
	}
	rejected := res.Rejected()
	if len(rejected) != 1 {
		t.Fatalf("rejected = %+v", rejected)
	}
	if rejected[0] != (FieldOutcome{Line: 2, Label: "Mystery", Accepted: false}) {
		t.Errorf("outcome = %+v", rejected[0])
	}
	if len(res.Outcomes) != 3 {
		t.Errorf("outcomes = %+v", res.Outcomes)
	}
	if coll.Dict.Len() != 2 {
		t.Errorf("locked dictionary grew to %d", coll.Dict.Len())
	}
}

func TestParseFallbackTitle(t *testing.T) {
	p := New(schema.NewCollection("test"))

	res := p.ParseString("", "Fallback Name")
	if got := res.Note.Title(); got != "Fallback Name" {
		t.Errorf("title = %q", got)
	}
	if res.Note.Dialect != note.PlainText {
		t.Errorf("dialect = %s", res.Note.Dialect)
	}
	if res.Note.ID != "fallback-name" {
		t.Errorf("ID = %q", res.Note.ID)
	}
	if res.Note.Len() != 1 {
		t.Errorf("fields = %d", res.Note.Len())
	}

	res = p.ParseString("Body:\nonly body", TemplateSentinel)
	if res.Note.Title() != "" {
		t.Errorf("template sentinel applied as title: %q", res.Note.Title())
	}

	res = p.ParseString("Title: Real\n", "Fallback")
	if got := res.Note.Title(); got != "Real" {
		t.Errorf("title = %q", got)
	}
}

func TestParseIdentity(t *testing.T) {
	res := parse(t, nil, "Title: Hello World\nBody:\nx")
	if res.Note.ID != "hello-world" {
		t.Errorf("ID = %q", res.Note.ID)
	}
	res = parse(t, nil, "Title: Hello World\nID: custom-id\nBody:\nx")
	if res.Note.ID != "custom-id" {
		t.Errorf("ID = %q", res.Note.ID)
	}
}

func TestParseDeterministic(t *testing.T) {
	inputs := []string{
		"Title: Hello\nAuthor: Jane\n\nWorld",
		"Title: Hello\n\nAuthor: Jane\n\nBody:\n\nWorld",
		"# Hello\n\n#a\n\nWorld",
		"---\nTitle: T\nTags:\n- a\n---\nx",
		"Loose words\nmore",
	}
	for _, input := range inputs {
		first := parse(t, nil, input)
		for i := 0; i < 5; i++ {
			again := parse(t, nil, input)
			if again.Note.Dialect != first.Note.Dialect {
				t.Fatalf("%q: dialect %s then %s", input, first.Note.Dialect, again.Note.Dialect)
			}
			if !again.Note.Equal(first.Note) {
				t.Fatalf("%q: values %v then %v", input, first.Note.Values(), again.Note.Values())
			}
			if !reflect.DeepEqual(again.Outcomes, first.Outcomes) {
				t.Fatalf("%q: outcomes differ", input)
			}
		}
	}
}

func TestParseDictionaryOrdering(t *testing.T) {
	coll := schema.NewCollection("test")
	parse(t, coll, "Author: J\nBody:\nx")
	parse(t, coll, "Status: s\nTitle: T\nBody: y")

	defs := coll.Dict.Defs()
	if defs[0].Label.Common != schema.CommonTitle {
		t.Errorf("first = %s", defs[0].Label.Common)
	}
	if defs[len(defs)-1].Label.Common != schema.CommonBody {
		t.Errorf("last = %s", defs[len(defs)-1].Label.Common)
	}
}

func TestParseConcurrentSharedCollection(t *testing.T) {
	coll := schema.NewCollection("shared")
	p := New(coll)

	const notes = 32
	var wg sync.WaitGroup
	results := make([]*Result, notes)
	for i := 0; i < notes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.ParseString(fmt.Sprintf("Title: Note %d\nField%d: v%d\nShared: s\nBody:\nx", i, i, i), "")
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if got := res.Note.Value(fmt.Sprintf("field%d", i)); got != fmt.Sprintf("v%d", i) {
			t.Errorf("note %d: field = %q", i, got)
		}
	}
	if got := coll.Dict.Len(); got != notes+3 {
		t.Errorf("dictionary size = %d, want %d", got, notes+3)
	}
	defs := coll.Dict.Defs()
	if defs[0].Label.Common != schema.CommonTitle || defs[len(defs)-1].Label.Common != schema.CommonBody {
		t.Error("ordering invariant broken under concurrent growth")
	}
}

type failingSource struct {
	lines  []string
	err    error
	closed int
}

func (s *failingSource) Open() error { return nil }

func (s *failingSource) ReadLine() (string, bool) {
	if len(s.lines) == 0 {
		return "", false
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, true
}

func (s *failingSource) Err() error { return s.err }

func (s *failingSource) Close() error {
	s.closed++
	return nil
}

func TestParseSourceError(t *testing.T) {
	readErr := errors.New("disk on fire")
	src := &failingSource{lines: []string{"Title: x"}, err: readErr}

	res, err := New(schema.NewCollection("test")).Parse(src, "")
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want wrapped read error", err)
	}
	if res != nil {
		t.Error("expected nil result on error")
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times", src.closed)
	}
}
