package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/state"
)

// NewCommandCommand creates the command command, which prints the create
// command and builder URL that reproduce a stack.
func NewCommandCommand(g *globalOptions) *cobra.Command {
	var baseURL string
	var view string
	var flags *stackFlags

	cmd := &cobra.Command{
		Use:   "command [project-name]",
		Short: "Print the command and share URL for a stack",
		Long: `Print the npx command that recreates a stack and the query string of the
builder URL that shares it. Both list only the selections that differ from
the defaults, after compatibility corrections.

Examples:
  ai-stack command my-bot --llm anthropic
  ai-stack command --preset enterprise --base-url https://builder.example.com/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(args)
			if err != nil {
				return err
			}
			final, res := correct(s)

			w := cmd.OutOrStdout()
			for _, m := range res.Messages() {
				fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(m, g.noColor))
			}

			vs := state.ViewState{View: state.View(view)}
			if vs.View != state.ViewPreview {
				vs.View = state.ViewConfigure
			}

			fmt.Fprintln(w, state.GenerateCommand(final))
			share := baseURL
			if q := state.Query(final, vs); q != "" {
				share = strings.TrimRight(baseURL, "?") + "?" + q
			}
			if share != "" {
				fmt.Fprintln(w, share)
			}
			return nil
		},
	}

	flags = addStackFlags(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Builder URL to prefix the query string with")
	cmd.Flags().StringVar(&view, "view", string(state.ViewConfigure), "Pane to open from the URL (configure, preview)")
	return cmd
}
