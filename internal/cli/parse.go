package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

// NoteResult is the JSON form of a parsed note.
type NoteResult struct {
	Path    string        `json:"path"`
	ID      string        `json:"id"`
	Dialect string        `json:"dialect"`
	Fields  []FieldResult `json:"fields"`
}

// FieldResult is one field of a parsed note.
type FieldResult struct {
	Label  string `json:"label"`
	Common string `json:"common"`
	Type   string `json:"type"`
	Value  string `json:"value"`
}

func noteResult(path string, n *note.Note) NoteResult {
	out := NoteResult{
		Path:    path,
		ID:      n.ID,
		Dialect: n.Dialect.String(),
		Fields:  []FieldResult{},
	}
	for _, f := range n.Fields() {
		out.Fields = append(out.Fields, FieldResult{
			Label:  f.Def.Label.Proper,
			Common: f.Def.Label.Common,
			Type:   string(f.Def.Type),
			Value:  f.Value,
		})
	}
	return out
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a note and show its dialect and fields",
	Long: `Parse a note file, infer its dialect and list the fields found.

Labels the field dictionary refuses are reported as warnings and their
values are dropped. Use "-" to read the note from standard input.

Examples:
  ntnk parse notes/meeting.txt
  ntnk parse notes/meeting.txt --json
  cat draft.md | ntnk parse -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		nf, err := readNote(args[0])
		if err != nil {
			return report(err)
		}
		n := nf.Result.Note
		warnings := rejectionWarnings(nf.Result)

		if isJSONOutput() {
			outputSuccessWithWarnings(noteResult(nf.Path, n), warnings, &Meta{
				Count:       n.Len(),
				QueryTimeMs: time.Since(start).Milliseconds(),
			})
			return nil
		}

		fmt.Fprintf(stdout, "%s %s\n", ui.FilePath(nf.Path), ui.Hint(ui.Count(n.Len(), "field", "fields")))
		fmt.Fprintf(stdout, "dialect: %s\n", n.Dialect)
		if n.ID != "" {
			fmt.Fprintf(stdout, "id: %s\n", n.ID)
		}
		fmt.Fprintln(stdout)

		tbl := ui.NewTable(3)
		for _, f := range n.Fields() {
			tbl.AddRow(f.Def.Label.Proper, string(f.Def.Type), summarize(f.Value))
		}
		fmt.Fprint(stdout, tbl.String())
		printWarnings(warnings)
		return nil
	},
}

// summarize shows the first line of a value and how many lines follow.
func summarize(value string) string {
	lines := strings.Split(value, "\n")
	if len(lines) == 1 {
		return ui.TruncateWithEllipsis(value, 60)
	}
	return ui.TruncateWithEllipsis(lines[0], 60) + " " + ui.Hint(fmt.Sprintf("(+%d lines)", len(lines)-1))
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
