package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/config"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the global ntnk config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented config file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		created, err := config.CreateDefault(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"config_path": path, "created": created}, nil)
			return nil
		}
		if created {
			fmt.Fprintln(stdout, ui.Successf("Created %s", ui.FilePath(path)))
		} else {
			fmt.Fprintln(stdout, ui.Infof("Config already exists at %s", ui.FilePath(path)))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, path, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		_, statErr := os.Stat(path)
		d, _ := loaded.Dialect()

		data := map[string]interface{}{
			"config_path":         path,
			"exists":              statErr == nil,
			"default_dialect":     d.String(),
			"label_width":         loaded.Width(),
			"template_file":       loaded.TemplatePath(""),
			"fields_file":         loaded.FieldsPath(""),
			"lock_after_template": loaded.LockAfterTemplate,
			"ui": map[string]interface{}{
				"accent":     loaded.UI.Accent,
				"code_theme": loaded.UI.CodeTheme,
			},
		}
		if isJSONOutput() {
			outputSuccess(data, nil)
			return nil
		}

		fmt.Fprintln(stdout, ui.FilePath(path))
		if statErr != nil {
			fmt.Fprintln(stdout, ui.Hint("(not found, using defaults)"))
		}
		tbl := ui.NewTable(2)
		tbl.AddRow("default_dialect", d.String())
		tbl.AddRow("label_width", fmt.Sprintf("%d", loaded.Width()))
		tbl.AddRow("template_file", loaded.TemplatePath(""))
		tbl.AddRow("fields_file", loaded.FieldsPath(""))
		tbl.AddRow("lock_after_template", fmt.Sprintf("%t", loaded.LockAfterTemplate))
		if loaded.UI.Accent != "" {
			tbl.AddRow("ui.accent", loaded.UI.Accent)
		}
		if loaded.UI.CodeTheme != "" {
			tbl.AddRow("ui.code_theme", loaded.UI.CodeTheme)
		}
		fmt.Fprint(stdout, tbl.String())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
