package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/parser"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

var (
	showRaw     bool
	showOutline bool
)

// ShowResult is the JSON form of the show command.
type ShowResult struct {
	NoteResult
	Outline []parser.Heading `json:"outline"`
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Display a note with styled fields and rendered body",
	Long: `Display a note: its fields as a table and its body rendered as
markdown when stdout is a terminal.

Examples:
  ntnk show notes/meeting.txt
  ntnk show notes/meeting.txt --outline
  ntnk show notes/meeting.txt --raw | less`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nf, err := readNote(args[0])
		if err != nil {
			return report(err)
		}
		n := nf.Result.Note
		outline := parser.Outline(n.Body())
		warnings := rejectionWarnings(nf.Result)

		if isJSONOutput() {
			if outline == nil {
				outline = []parser.Heading{}
			}
			outputSuccessWithWarnings(ShowResult{NoteResult: noteResult(nf.Path, n), Outline: outline}, warnings, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		var sb strings.Builder

		title := n.Title()
		if title == "" {
			title = nf.Path
		}
		sb.WriteString(ui.AccentBold.Render(title))
		sb.WriteString("\n")
		sb.WriteString(ui.Hint(fmt.Sprintf("%s · %s", n.Dialect, n.ID)))
		sb.WriteString("\n\n")

		var rows []ui.FieldRow
		for _, f := range n.Fields() {
			switch f.Def.Type {
			case schema.FieldTypeTitle, schema.FieldTypeBody:
				continue
			}
			rows = append(rows, ui.FieldRow{Label: f.Def.Label.Proper, Type: string(f.Def.Type), Value: f.Value})
		}
		if table := ui.RenderFieldTable(display, rows); table != "" {
			sb.WriteString(table)
			sb.WriteString("\n\n")
		}

		if showOutline {
			sb.WriteString(renderOutline(outline))
		} else if body := n.Body(); body != "" {
			sb.WriteString(renderBody(display, body))
		}

		fmt.Fprint(stdout, sb.String())
		printWarnings(warnings)
		return nil
	},
}

// renderBody renders markdown on a terminal and passes the body through
// otherwise, or when --raw is set.
func renderBody(display *ui.DisplayContext, body string) string {
	if showRaw || !display.IsTTY {
		return body + "\n"
	}
	rendered, err := ui.RenderMarkdown(body, display.AvailableWidth(ui.MarkdownRenderMargin))
	if err != nil {
		return body + "\n"
	}
	return rendered
}

func renderOutline(outline []parser.Heading) string {
	if len(outline) == 0 {
		return ui.Hint("(no headings)") + "\n"
	}
	var sb strings.Builder
	for _, h := range outline {
		sb.WriteString(strings.Repeat("  ", h.Level-1))
		sb.WriteString(h.Text)
		sb.WriteString(" ")
		sb.WriteString(ui.Hint(fmt.Sprintf("#%s L%d", h.Anchor, h.Line)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the body without markdown rendering")
	showCmd.Flags().BoolVar(&showOutline, "outline", false, "Show the body's heading outline instead of the body")
	rootCmd.AddCommand(showCmd)
}
