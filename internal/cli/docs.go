package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/hbowie/NotenikLib-sub002/docs"
	"github.com/hbowie/NotenikLib-sub002/internal/parser"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

var (
	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

type docsTopicView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `List the bundled guides, or print one.

Examples:
  ntnk docs
  ntnk docs dialects`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return builtindocs.Topics(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listDocs()
		}

		topic := strings.ToLower(strings.TrimSpace(args[0]))
		content, err := builtindocs.Read(topic)
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown docs topic %q", args[0]),
				"Available topics: "+strings.Join(builtindocs.Topics(), ", "))
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"topic": topic, "content": content}, nil)
			return nil
		}

		display := docsDisplayContext()
		if !display.IsTTY {
			fmt.Fprint(stdout, content)
			return nil
		}
		rendered, err := docsMarkdownRender(content, display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			fmt.Fprint(stdout, content)
			return nil
		}
		fmt.Fprint(stdout, rendered)
		return nil
	},
}

func listDocs() error {
	var topics []docsTopicView
	for _, id := range builtindocs.Topics() {
		view := docsTopicView{ID: id, Title: id}
		if content, err := builtindocs.Read(id); err == nil {
			if headings := parser.Outline(content); len(headings) > 0 {
				view.Title = headings[0].Text
			}
		}
		topics = append(topics, view)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
		return nil
	}

	tbl := ui.NewTable(2)
	for _, t := range topics {
		tbl.AddRow(ui.Accent.Render(t.ID), t.Title)
	}
	fmt.Fprintln(stdout, ui.Header("Guides"))
	fmt.Fprint(stdout, tbl.String())
	fmt.Fprintln(stdout, ui.Hint("Read one with: ntnk docs <topic>"))
	return nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
