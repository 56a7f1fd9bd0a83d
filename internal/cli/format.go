package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/maker"
	"github.com/hbowie/NotenikLib-sub002/internal/note"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

var (
	formatDialect note.Dialect
	formatWrite   bool
	formatOutput  string
)

// FormatResult is the JSON form of a re-serialized note.
type FormatResult struct {
	Path      string `json:"path"`
	Requested string `json:"requested,omitempty"`
	Dialect   string `json:"dialect"`
	Written   string `json:"written,omitempty"`
	Content   string `json:"content,omitempty"`
}

var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Rewrite a note in a dialect",
	Long: `Re-serialize a note. Without --dialect the note keeps the dialect it
was read in. A dialect that cannot hold every field of the note is
replaced by notenik, with a warning.

Examples:
  ntnk format notes/meeting.txt --dialect yaml
  ntnk format notes/meeting.txt --dialect md --write
  ntnk format notes/meeting.txt -o meeting.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if formatWrite && formatOutput != "" {
			return handleErrorMsg(ErrInvalidInput, "--write and --output cannot be combined", "")
		}
		if formatWrite && path == stdinArg {
			return handleErrorMsg(ErrInvalidInput, "--write needs a file, not standard input", "Use --output instead")
		}

		nf, err := readNote(path)
		if err != nil {
			return report(err)
		}
		m, err := noteMaker()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		n := nf.Result.Note
		resolved, esc := m.Resolve(n, formatDialect)
		warnings := append(rejectionWarnings(nf.Result), escalationWarning(esc)...)

		result := FormatResult{Path: path, Dialect: resolved.String()}
		if formatDialect != note.Unknown {
			result.Requested = formatDialect.String()
		}

		target := formatOutput
		if formatWrite {
			target = path
		}
		if target != "" {
			if _, err := m.Write(lineio.NewFileSink(target), n, formatDialect); err != nil {
				return report(fileError(target, err, ErrFileWriteError))
			}
			result.Written = target
		} else {
			content, _, err := m.Format(n, formatDialect)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			result.Content = content
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(result, warnings, nil)
			return nil
		}

		printWarnings(warnings)
		if result.Written != "" {
			fmt.Fprintln(stdout, ui.Successf("Wrote %s as %s", ui.FilePath(result.Written), resolved))
			return nil
		}
		fmt.Fprint(stdout, result.Content)
		return nil
	},
}

// noteMaker configures a maker from the loaded config.
func noteMaker() (maker.Maker, error) {
	c := getConfig()
	d, err := c.Dialect()
	if err != nil {
		return maker.Maker{}, err
	}
	return maker.Maker{LabelWidth: c.Width(), Default: d}, nil
}

func init() {
	formatCmd.Flags().VarP(newDialectValue(&formatDialect), "dialect", "d", dialectUsage("Dialect to write"))
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Replace the file in place")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Write to this file instead of stdout")
	_ = formatCmd.RegisterFlagCompletionFunc("dialect", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dialectNames(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(formatCmd)
}
