package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
)

// NewDecodeCommand creates the decode command
func NewDecodeCommand(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode <url|query|command>",
		Short: "Show the stack encoded in a share URL or create command",
		Long: `Decode a builder share URL, a bare query string or a generated
"npx create-ai-stack" command back into a stack.

Examples:
  ai-stack decode "https://builder.example.com/?llm=ollama&addons=docker"
  ai-stack decode "?architecture=fastapi-nextjs&orm=sqlalchemy" --format yaml
  ai-stack decode "npx create-ai-stack@latest bot --llm anthropic --no-git"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, vs, err := decodeInput(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(w, s)
			case "yaml":
				return writeYAML(w, s)
			case "", "table":
			default:
				return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
			}

			printStack(w, s, g.noColor)
			if vs.View == state.ViewPreview {
				fmt.Fprintf(w, "\nOpens the preview pane")
				if vs.File != "" {
					fmt.Fprintf(w, " at %s", vs.File)
				}
				fmt.Fprintln(w)
			}

			unknown := s.UnknownOptions()
			if len(unknown) > 0 {
				fmt.Fprintln(w)
				cats := make([]catalog.Category, 0, len(unknown))
				for c := range unknown {
					cats = append(cats, c)
				}
				sort.Slice(cats, func(i, j int) bool { return categoryIndex(cats[i]) < categoryIndex(cats[j]) })
				for _, c := range cats {
					msg := fmt.Sprintf("%s has unknown value %s", ui.CategoryLabel(c), strings.Join(unknown[c], ", "))
					fmt.Fprint(w, ui.Warning(msg, g.noColor))
				}
			}

			if _, res := correct(s); !res.IsValid {
				fmt.Fprintln(w)
				printAnalysis(w, res, g.noColor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or yaml")
	return cmd
}

// decodeInput accepts anything a user might paste: a generated command, a
// full URL, a "?query" or a bare query string.
func decodeInput(raw string) (stack.State, state.ViewState, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "npx ") || strings.HasPrefix(trimmed, "create-ai-stack") || strings.HasPrefix(trimmed, "--") {
		s, err := state.ParseCommand(trimmed)
		if err != nil {
			return stack.State{}, state.ViewState{}, fmt.Errorf("invalid command: %w", err)
		}
		return s.Normalize(), state.ViewState{View: state.ViewConfigure}, nil
	}
	s, vs, err := state.ParseURL(trimmed)
	if err != nil {
		return stack.State{}, state.ViewState{}, err
	}
	return s.Normalize(), vs, nil
}
