// Package commands implements the ai-stack command line.
package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/cli/config"
	"github.com/ai-stack/stackbuilder/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	noColor   bool
	configDir string
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.configDir)
	if err != nil {
		return nil, &ui.Error{
			Options: ui.ErrorOptions{
				Context:      "configuration error",
				Problem:      "Could not load the ai-stack configuration.",
				HelpCommands: []string{"View config: cat " + config.FileName + ".yaml"},
			},
			Cause: err,
		}
	}
	return cfg, nil
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ai-stack",
		Short: "Configure and generate AI application starters",
		Long: color.CyanString(`ai-stack - AI application stack builder

Pick an architecture, LLM provider, vector store, database and add-ons,
let the compatibility rules fix conflicting choices, then preview or write
the generated project.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "Directory holding ai-stack.yaml and .env")

	rootCmd.AddCommand(NewVersionCommand(opts))
	rootCmd.AddCommand(NewCreateCommand(opts))
	rootCmd.AddCommand(NewAnalyzeCommand(opts))
	rootCmd.AddCommand(NewPreviewCommand(opts))
	rootCmd.AddCommand(NewCommandCommand(opts))
	rootCmd.AddCommand(NewDecodeCommand(opts))
	rootCmd.AddCommand(NewCatalogCommand(opts))
	rootCmd.AddCommand(NewPresetsCommand(opts))
	rootCmd.AddCommand(NewSaveCommand(opts))
	rootCmd.AddCommand(NewLoadCommand(opts))
	rootCmd.AddCommand(NewServeCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), opts.noColor)
			kv.AddRow("ai-stack version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// Execute runs the root command and prints a formatted error on failure.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		ui.Render(rootCmd.ErrOrStderr(), err, noColor)
		return err
	}
	return nil
}
