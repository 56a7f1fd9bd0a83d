package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/config"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

var (
	// Global flags
	configPath   string
	templateFlag string
	fieldsFlag   string
	lockFlag     bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ntnk",
	Short: "ntnk - read and write Notenik notes",
	Long: `ntnk reads plain-text notes, infers which of five dialects they are
written in (plain text, Markdown, MultiMarkdown, YAML front matter or Notenik),
and writes them back in any of them.

Field labels are resolved against the note's collection: the fields.yaml
schema file and template.txt in the note's directory, when present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}

		loaded, path, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "Check the file or pass --config")
		}
		cfg = loaded
		resolvedConfigPath = path
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI and reports any error not already written.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil || IsSilent(err) {
		return err
	}
	if jsonOutput {
		outputError(ErrInvalidInput, err.Error(), nil, "Run 'ntnk help' for usage")
	} else {
		fmt.Fprintln(stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().StringVar(&templateFlag, "template", "", "Template note that declares field types (default: template_file from config)")
	rootCmd.PersistentFlags().StringVar(&fieldsFlag, "fields", "", "Field schema file (default: fields_file from config)")
	rootCmd.PersistentFlags().BoolVar(&lockFlag, "lock", false, "Reject labels the template and schema do not declare")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}
