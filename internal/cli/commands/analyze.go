package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand(g *globalOptions) *cobra.Command {
	var asJSON bool
	var flags *stackFlags

	cmd := &cobra.Command{
		Use:   "analyze [project-name]",
		Short: "Check a stack against the compatibility rules",
		Long: `Check a stack against the compatibility rules and list the corrections
that would be applied, together with advisory notes per category.

Examples:
  ai-stack analyze --architecture fastapi-nextjs --orm drizzle
  ai-stack analyze --llm ollama --addons kubernetes --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(args)
			if err != nil {
				return err
			}
			final, res := correct(s)

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, res)
			}

			printAnalysis(w, res, g.noColor)
			if !res.IsValid {
				fmt.Fprintln(w, "Resulting stack:")
				printStack(w, final, g.noColor)
			}
			return nil
		},
	}

	flags = addStackFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	return cmd
}
