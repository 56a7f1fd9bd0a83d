package ui

import (
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin of rendered note bodies.
const MarkdownRenderMargin = 2

const defaultCodeTheme = "monokai"

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme selects the chroma theme for fenced code in
// note bodies. Names are case-insensitive; unknown names select the default.
func ConfigureMarkdownCodeTheme(theme string) {
	name := strings.ToLower(strings.TrimSpace(theme))
	if _, ok := chromastyles.Registry[name]; !ok {
		name = defaultCodeTheme
	}
	markdownCodeTheme = name
}

// RenderMarkdown renders a note body for the terminal, wrapped to width.
// The result ends in exactly one newline.
func RenderMarkdown(body string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(noteBodyStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(body)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// noteBodyStyle is glamour's dark style with headings written the way the
// note has them, tinted with the accent, and fenced code in the configured
// chroma theme.
func noteBodyStyle() ansi.StyleConfig {
	style := glamourstyles.DarkStyleConfig

	style.Document.BlockPrefix = ""
	style.Document.Margin = uintPtr(MarkdownRenderMargin)

	heading := ansi.StylePrimitive{BlockSuffix: "\n", Bold: boolPtr(true)}
	if color, ok := AccentColor(); ok {
		heading.Color = stringPtr(color)
	}
	style.Heading = ansi.StyleBlock{StylePrimitive: heading}
	for level, block := range []*ansi.StyleBlock{&style.H1, &style.H2, &style.H3, &style.H4, &style.H5, &style.H6} {
		*block = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Prefix:    strings.Repeat("#", level+1) + " ",
			Underline: boolPtr(level < 2),
		}}
	}

	style.Code = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
		Prefix: "`",
		Suffix: "`",
		Color:  stringPtr("203"),
	}}
	style.CodeBlock.Chroma = nil
	style.CodeBlock.Theme = markdownCodeTheme
	style.CodeBlock.Margin = uintPtr(MarkdownRenderMargin)
	return style
}

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }
