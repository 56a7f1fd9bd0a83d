package parser

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hbowie/NotenikLib-sub002/internal/slugs"
)

// Heading is one heading of a note body.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
	Line   int    `json:"line"` // 1-indexed within the body
}

// Outline returns the headings of a markdown body in document order.
func Outline(body string) []Heading {
	var headings []Heading
	if strings.TrimSpace(body) == "" {
		return headings
	}

	source := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	lineStarts := computeLineStarts(body)
	seen := make(map[string]int)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		collectText(heading, source, &sb)
		headingText := strings.TrimSpace(sb.String())
		if headingText == "" {
			return ast.WalkSkipChildren, nil
		}

		line := 1
		if heading.Lines().Len() > 0 {
			line = offsetToLine(lineStarts, heading.Lines().At(0).Start) + 1
		}

		anchor := slugs.AnchorSlug(headingText)
		if count := seen[anchor]; count > 0 {
			seen[anchor] = count + 1
			anchor = anchor + "-" + strconv.Itoa(count)
		} else {
			seen[anchor] = 1
		}

		headings = append(headings, Heading{
			Level:  heading.Level,
			Text:   headingText,
			Anchor: anchor,
			Line:   line,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// collectText gathers the text segments below n, including those nested in
// emphasis and links.
func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		default:
			collectText(c, source, sb)
		}
	}
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
