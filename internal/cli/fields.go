package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

var fieldsWrite bool

// FieldsResult is the JSON form of a collection's dictionary.
type FieldsResult struct {
	Collection string       `json:"collection"`
	Locked     bool         `json:"locked"`
	Fields     []FieldEntry `json:"fields"`
	Written    string       `json:"written,omitempty"`
}

// FieldEntry is one dictionary definition.
type FieldEntry struct {
	Label  string   `json:"label"`
	Common string   `json:"common"`
	Type   string   `json:"type"`
	Values []string `json:"values,omitempty"`
	Target string   `json:"target,omitempty"`
	Parent string   `json:"parent,omitempty"`
}

var fieldsCmd = &cobra.Command{
	Use:   "fields [dir]",
	Short: "Show a collection's field dictionary",
	Long: `Build the field dictionary of a collection directory from its fields
file and template, and print it in fields file form.

Examples:
  ntnk fields notes/
  ntnk fields notes/ --template notes/template.txt --write`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		coll, err := loadCollection(dir)
		if err != nil {
			return report(err)
		}
		data, err := schema.MarshalFields(coll.Dict)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		result := FieldsResult{Collection: coll.Name, Locked: coll.Dict.Locked(), Fields: []FieldEntry{}}
		for _, def := range coll.Dict.Defs() {
			entry := FieldEntry{
				Label:  def.Label.Proper,
				Common: def.Label.Common,
				Type:   string(def.Type),
				Target: def.LookupTarget,
				Parent: def.Parent,
			}
			if def.PickList != nil {
				entry.Values = def.PickList.Values
			}
			result.Fields = append(result.Fields, entry)
		}

		if fieldsWrite {
			path := getConfig().FieldsPath(dir)
			if fieldsFlag != "" {
				path = fieldsFlag
			}
			if err := writeText(path, string(data)); err != nil {
				return report(fileError(path, err, ErrFileWriteError))
			}
			result.Written = path
		}

		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: len(result.Fields)})
			return nil
		}
		if result.Written != "" {
			fmt.Fprintln(stdout, ui.Successf("Wrote %s %s", ui.FilePath(result.Written), ui.Count(len(result.Fields), "field", "fields")))
			return nil
		}
		fmt.Fprint(stdout, string(data))
		return nil
	},
}

// writeText commits text to path through an atomic file sink.
func writeText(path, text string) (err error) {
	sink := lineio.NewFileSink(path)
	if err := sink.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if err := sink.WriteLine(line); err != nil {
			sink.Abort()
			return err
		}
	}
	return nil
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsWrite, "write", false, "Save the dictionary to the collection's fields file")
	rootCmd.AddCommand(fieldsCmd)
}
