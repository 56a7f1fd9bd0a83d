// Package parser reads loose plain-text notes, infers their dialect, and
// assembles structured notes from them.
package parser

import (
	"strings"
	"unicode"

	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

// maxLabelBlanks is the number of blanks before a colon at which the text
// is treated as prose rather than a label.
const maxLabelBlanks = 7

// minDelimiterRun is the shortest run that counts as a block delimiter.
const minDelimiterRun = 3

// Line is the classification of one physical input line. The flags are not
// mutually exclusive.
type Line struct {
	Raw    string
	Number int
	// Text is Raw without surrounding blanks.
	Text string

	Blank     bool
	Indent    int
	FirstChar rune

	// Delimiter is set for a line of one character, '-' or '.', repeated
	// at least three times.
	Delimiter     bool
	DelimiterRune rune

	// Heading is set for "# Title"; HeadingText holds the title.
	Heading     bool
	HeadingText string
	// Hashtags holds the tags of a line made only of "#tag" tokens.
	Hashtags []string

	// ListItem is set for "- value"; ListValue holds the value.
	ListItem  bool
	ListValue string

	// LabelShaped is set when the text before a colon qualifies as a label.
	LabelShaped bool
	LabelText   string
	Value       string
	// Def is the resolved definition. It is nil when Rejected.
	Def      *schema.FieldDefinition
	Rejected bool
}

// Indented reports whether the first non-blank character was preceded by
// blanks.
func (l Line) Indented() bool {
	return l.Indent > 0
}

// Labeled reports whether the line starts an accepted field.
func (l Line) Labeled() bool {
	return l.Def != nil
}

// Context carries the assembler state that affects classification.
type Context struct {
	// Labels enables label detection; it is off once body text begins.
	Labels bool
	// Parent is a label with no value. Lines indented deeper than
	// ParentIndent resolve as its children.
	Parent       *schema.FieldDefinition
	ParentIndent int
}

// Classifier classifies lines against a collection's dictionary.
type Classifier struct {
	coll *schema.Collection
}

// NewClassifier creates a classifier resolving labels through coll.
func NewClassifier(coll *schema.Collection) *Classifier {
	return &Classifier{coll: coll}
}

// Classify scans raw once from left to right. The only side effect is that
// label resolution may register a new definition.
func (c *Classifier) Classify(raw string, number int, ctx Context) Line {
	line := Line{Raw: raw, Number: number}

	var (
		seenNonBlank bool
		runRune      rune
		runLen       int
		runBroken    bool
		runEnded     bool

		labelOK     = ctx.Labels
		labelBlanks int
		colonAt     = -1
		prev        rune
	)

	for i, r := range raw {
		blank := r == ' ' || r == '\t'

		if !seenNonBlank {
			if blank {
				line.Indent++
				continue
			}
			seenNonBlank = true
			line.FirstChar = r
			runRune = r
			runLen = 1
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				labelOK = false
			}
			prev = r
			continue
		}

		// Run-length detection.
		switch {
		case blank:
			runEnded = true
		case runEnded || r != runRune:
			runBroken = true
		default:
			runLen++
		}

		// Label detection up to the first colon.
		if labelOK && colonAt < 0 {
			switch {
			case r == ':':
				if strings.HasPrefix(raw[i+1:], "//") {
					labelOK = false
				} else {
					colonAt = i
				}
			case blank:
				labelBlanks++
				if labelBlanks >= maxLabelBlanks {
					labelOK = false
				}
			case !allowedLabelRune(r):
				labelOK = false
			}
		}

		// Heading versus hashtag line, decided by the character after a
		// leading '#'.
		if prev == '#' && i == line.Indent+1 {
			switch {
			case r == ' ':
				line.Heading = true
			case r != '#' && !blank:
				line.Hashtags = []string{}
			}
		}
		prev = r
	}

	line.Blank = !seenNonBlank
	if line.Blank {
		return line
	}
	line.Text = strings.TrimSpace(raw)

	if !runBroken && runLen >= minDelimiterRun && (runRune == '-' || runRune == '.') {
		line.Delimiter = true
		line.DelimiterRune = runRune
	}

	if line.Heading {
		line.HeadingText = strings.TrimSpace(line.Text[1:])
		if line.HeadingText == "" {
			line.Heading = false
		}
	}
	if line.Hashtags != nil {
		line.Hashtags = hashtags(line.Text)
	}

	if strings.HasPrefix(line.Text, "- ") {
		line.ListItem = true
		line.ListValue = strings.TrimSpace(line.Text[2:])
	}

	if labelOK && colonAt > 0 {
		candidate := strings.TrimSpace(raw[:colonAt])
		if candidate != "" && !allDigits(candidate) {
			line.LabelShaped = true
			line.LabelText = candidate
			line.Value = strings.TrimSpace(raw[colonAt+1:])
			line.Def, line.Rejected = c.resolve(candidate, line.Indent, ctx)
		}
	}

	return line
}

func (c *Classifier) resolve(label string, indent int, ctx Context) (*schema.FieldDefinition, bool) {
	if c.coll == nil {
		return nil, true
	}
	var (
		def *schema.FieldDefinition
		ok  bool
	)
	if ctx.Parent != nil && indent > ctx.ParentIndent {
		def, ok = c.coll.ChildDef(ctx.Parent, label)
	} else {
		def, ok = c.coll.Def(label)
	}
	if !ok {
		return nil, true
	}
	return def, false
}

func allowedLabelRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '\t', '-', '_', '.', '\'':
		return true
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// hashtags returns the tags of a line made only of "#tag" tokens, or nil.
func hashtags(text string) []string {
	tokens := strings.Fields(text)
	tags := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < 2 || tok[0] != '#' || tok[1] == '#' {
			return nil
		}
		tags = append(tags, tok[1:])
	}
	return tags
}
