package parser

import (
	"fmt"
	"strings"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

// TemplateSentinel is the fallback title passed when parsing a collection's
// template file. It is never applied as a title.
const TemplateSentinel = "template"

// FieldOutcome reports whether one label line was accepted into the note.
type FieldOutcome struct {
	Line     int
	Label    string
	Accepted bool
}

// Result is a parsed note plus the per-field outcomes of the parse.
type Result struct {
	Note     *note.Note
	Outcomes []FieldOutcome
}

// Rejected returns the outcomes of label lines whose data was dropped
// because the dictionary refused the label.
func (r *Result) Rejected() []FieldOutcome {
	var out []FieldOutcome
	for _, o := range r.Outcomes {
		if !o.Accepted {
			out = append(out, o)
		}
	}
	return out
}

// Parser assembles notes for one collection. A Parser holds no per-note
// state, so one value may be shared by concurrent parses.
type Parser struct {
	Collection *schema.Collection
	classifier *Classifier
}

// New creates a parser resolving labels through coll.
func New(coll *schema.Collection) *Parser {
	return &Parser{Collection: coll, classifier: NewClassifier(coll)}
}

// Parse reads src to the end and assembles a note. The source is closed on
// every path. Only source errors are returned; content never fails to parse.
func (p *Parser) Parse(src lineio.Source, fallbackTitle string) (res *Result, err error) {
	if err := src.Open(); err != nil {
		return nil, fmt.Errorf("open note source: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			res, err = nil, fmt.Errorf("close note source: %w", cerr)
		}
	}()

	a := newAssembly(p)
	number := 0
	for {
		raw, ok := src.ReadLine()
		if !ok {
			break
		}
		number++
		a.line(raw, number)
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read note source: %w", err)
	}
	return a.finish(fallbackTitle), nil
}

// ParseString parses content held in memory. It never returns nil.
func (p *Parser) ParseString(content, fallbackTitle string) *Result {
	res, err := p.Parse(lineio.NewStringSource(content), fallbackTitle)
	if err != nil {
		return newAssembly(p).finish(fallbackTitle)
	}
	return res
}

type phase int

const (
	phaseHeader phase = iota
	phaseMarkdownTail
	phaseBody
)

// openField is a value still accumulating lines. A multiline field was
// opened as "Label:" and a blank line; until the next blank line its text
// is taken verbatim, label-shaped or not.
type openField struct {
	def       *schema.FieldDefinition
	value     string
	discard   bool
	multiline bool
}

func (f *openField) addItem(item string) {
	if item == "" {
		return
	}
	if f.value == "" {
		f.value = item
		return
	}
	f.value += f.def.Info().Join.List + item
}

func (f *openField) addLine(text string, pending int) {
	if f.value == "" {
		f.value = text
		return
	}
	sep := f.def.Info().Join.Lines
	f.value += strings.Repeat(sep, pending+1) + text
}

// assembly is the state of one parse.
type assembly struct {
	p     *Parser
	n     *note.Note
	res   *Result
	infer inference
	phase phase

	fields    int
	blankSeen bool
	inYAML    bool
	tagsSeen  bool

	open    *openField
	pending int

	parent       *schema.FieldDefinition
	parentIndent int

	body []string
	// held is text found inside an open YAML block outside any field. It
	// starts the body once the block closes.
	held []string
}

func newAssembly(p *Parser) *assembly {
	n := note.New()
	return &assembly{p: p, n: n, res: &Result{Note: n}}
}

func (a *assembly) line(raw string, number int) {
	switch a.phase {
	case phaseBody:
		a.bodyLine(raw)
		return
	case phaseMarkdownTail:
		a.markdownTail(raw, number)
		return
	}

	ctx := Context{Labels: true, Parent: a.parent, ParentIndent: a.parentIndent}
	if a.open != nil && !a.inYAML {
		// Children follow their parent directly.
		if a.open.multiline || a.pending > 0 {
			ctx.Parent = nil
		}
		if a.open.multiline && a.pending == 0 {
			ctx.Labels = false
		}
	}
	line := a.p.classifier.Classify(raw, number, ctx)

	switch {
	case line.Blank:
		a.blank()
	case line.Delimiter && a.delimiter(line):
	case line.LabelShaped:
		a.label(line)
	default:
		a.prose(line)
	}
}

func (a *assembly) blank() {
	if a.inYAML {
		if a.open != nil {
			a.pending++
		}
		return
	}
	if a.fields == 0 && a.open == nil {
		return
	}
	if !a.blankSeen {
		a.blankSeen = true
		if a.infer.state == stateLabeled {
			if a.fields >= 2 {
				a.infer.observe(evBlankAfterMany)
				a.startBody("")
				return
			}
			a.infer.observe(evBlankAfterOne)
		}
	}
	if a.open != nil {
		a.pending++
	}
}

// delimiter reports whether the line opened or closed a YAML block.
func (a *assembly) delimiter(line Line) bool {
	if a.inYAML {
		a.closeField()
		a.inYAML = false
		a.parent = nil
		a.startBody("")
		for _, held := range a.held {
			a.bodyLine(held)
		}
		a.held = nil
		return true
	}
	if line.DelimiterRune == '-' && a.infer.state == stateUnknown && a.fields == 0 && a.open == nil {
		a.infer.observe(evDelimiter)
		a.inYAML = true
		return true
	}
	return false
}

func (a *assembly) label(line Line) {
	a.closeField()
	// A parent and its children count as one field.
	if line.Def == nil || !line.Def.IsChild() {
		a.fields++
	}
	a.res.Outcomes = append(a.res.Outcomes, FieldOutcome{
		Line:     line.Number,
		Label:    line.LabelText,
		Accepted: !line.Rejected,
	})

	if line.Rejected {
		a.infer.observe(evLabel)
		a.open = &openField{discard: true}
		return
	}

	def := line.Def
	if def.Type == schema.FieldTypeBody && !a.inYAML {
		a.infer.observe(evBodyLabel)
		a.startBody(line.Value)
		return
	}
	a.infer.observe(evLabel)

	switch {
	case def.IsChild():
	case line.Value == "":
		a.parent = def
		a.parentIndent = line.Indent
	default:
		a.parent = nil
	}

	if def.Info().SingleLine {
		a.commit(def, line.Value)
		return
	}
	a.open = &openField{def: def, value: line.Value}
}

func (a *assembly) prose(line Line) {
	if a.inYAML {
		switch {
		case a.open != nil && line.ListItem:
			if !a.open.discard {
				a.open.addItem(line.ListValue)
			}
		case a.open != nil:
			a.continuation(line)
		default:
			a.held = append(a.held, line.Raw)
		}
		return
	}

	switch a.infer.state {
	case stateUnknown:
		if line.Heading {
			a.infer.observe(evHeading)
			a.setTitle(line.HeadingText)
			a.phase = phaseMarkdownTail
			return
		}
		a.infer.observe(evProse)
		a.setTitle(line.Text)
		a.startBody("")
	case stateLabeledBlank:
		// "Label:", a blank line, then text is a Notenik multi-line value.
		if a.open != nil && !a.open.discard && a.open.value == "" {
			a.infer.observe(evLabel)
			a.continuation(line)
			return
		}
		a.infer.observe(evProse)
		a.startBody(line.Raw)
	default:
		if a.open != nil {
			a.continuation(line)
			return
		}
		a.infer.observe(evProse)
		a.startBody(line.Raw)
	}
}

func (a *assembly) continuation(line Line) {
	if a.open.value == "" && a.pending > 0 && !a.inYAML {
		a.open.multiline = true
	}
	if !a.open.discard {
		a.open.addLine(strings.TrimRight(line.Raw, " \t"), a.pending)
	}
	a.pending = 0
}

func (a *assembly) markdownTail(raw string, number int) {
	line := a.p.classifier.Classify(raw, number, Context{})
	if line.Blank {
		return
	}
	if !a.tagsSeen && len(line.Hashtags) > 0 {
		a.tagsSeen = true
		if def, ok := a.tagsDef(number); ok {
			a.commit(def, strings.Join(line.Hashtags, def.Info().Join.List))
			return
		}
	}
	a.startBody(raw)
}

func (a *assembly) tagsDef(number int) (*schema.FieldDefinition, bool) {
	if def, ok := a.p.Collection.Binding(schema.FieldTypeTags); ok {
		return def, true
	}
	def, ok := a.p.Collection.Def(schema.LabelTags)
	a.res.Outcomes = append(a.res.Outcomes, FieldOutcome{Line: number, Label: schema.LabelTags, Accepted: ok})
	return def, ok
}

// startBody ends the header and makes first, when non-empty, the first
// body line.
func (a *assembly) startBody(first string) {
	a.closeField()
	a.parent = nil
	a.phase = phaseBody
	if first != "" {
		a.bodyLine(first)
	}
}

func (a *assembly) bodyLine(raw string) {
	if len(a.body) == 0 && strings.TrimSpace(raw) == "" {
		return
	}
	a.body = append(a.body, raw)
}

func (a *assembly) closeField() {
	f := a.open
	a.open = nil
	a.pending = 0
	if f == nil || f.discard {
		return
	}
	a.commit(f.def, f.value)
}

func (a *assembly) commit(def *schema.FieldDefinition, value string) {
	value = strings.TrimRight(strings.Trim(value, "\n"), " \t\n")
	if value == "" {
		// An empty placeholder is kept so it is written back.
		if _, ok := a.n.FieldCommon(def.Label.Common); def.WriteEmpty && !ok {
			a.n.Set(def, "")
		}
		return
	}
	info := def.Info()
	if info.Accumulate || (a.inYAML && info.MultiValued) {
		a.n.Append(def, value, info.Join.List)
		return
	}
	a.n.Set(def, value)
}

func (a *assembly) setTitle(title string) {
	def, ok := a.titleDef()
	if !ok {
		a.res.Outcomes = append(a.res.Outcomes, FieldOutcome{Label: schema.LabelTitle, Accepted: false})
		return
	}
	a.commit(def, title)
}

func (a *assembly) titleDef() (*schema.FieldDefinition, bool) {
	if def, ok := a.p.Collection.Binding(schema.FieldTypeTitle); ok {
		return def, true
	}
	return a.p.Collection.Def(schema.LabelTitle)
}

func (a *assembly) bodyDef() (*schema.FieldDefinition, bool) {
	if def, ok := a.p.Collection.Binding(schema.FieldTypeBody); ok {
		return def, true
	}
	return a.p.Collection.Def(schema.LabelBody)
}

func (a *assembly) finish(fallbackTitle string) *Result {
	a.closeField()
	for _, held := range a.held {
		a.bodyLine(held)
	}

	for len(a.body) > 0 && strings.TrimSpace(a.body[len(a.body)-1]) == "" {
		a.body = a.body[:len(a.body)-1]
	}
	if len(a.body) > 0 {
		if def, ok := a.bodyDef(); ok {
			a.n.Set(def, strings.Join(a.body, "\n"))
		} else {
			a.res.Outcomes = append(a.res.Outcomes, FieldOutcome{Label: schema.LabelBody, Accepted: false})
		}
	}

	if strings.TrimSpace(a.n.Title()) == "" && fallbackTitle != "" && fallbackTitle != TemplateSentinel {
		if def, ok := a.titleDef(); ok {
			a.n.Set(def, fallbackTitle)
		}
	}

	a.n.Dialect = a.infer.dialect()
	a.n.DeriveID()
	return a.res
}
