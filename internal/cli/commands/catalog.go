package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/preview"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
)

// NewCatalogCommand creates the catalog command
func NewCatalogCommand(g *globalOptions) *cobra.Command {
	var asYAML, asJSON bool
	var flags *stackFlags

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List every category and option",
		Long: `List every category and option. Options that cannot be combined with the
stack described by the flags are marked with the reason.

Examples:
  ai-stack catalog
  ai-stack catalog --architecture fastapi-nextjs
  ai-stack catalog --yaml > catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(nil)
			if err != nil {
				return err
			}
			final, _ := correct(s)
			view := preview.BuildCatalog(final)

			w := cmd.OutOrStdout()
			switch {
			case asYAML:
				return writeYAML(w, view)
			case asJSON:
				return writeJSON(w, view)
			}

			for _, c := range view.Categories {
				kind := ""
				switch {
				case c.Multi:
					kind = " (any number)"
				case c.Boolean:
					kind = " (yes/no)"
				}
				ui.Header(w, fmt.Sprintf("%s --%s%s", ui.CategoryLabel(c.ID), state.FlagName(c.ID), kind), g.noColor)

				t := ui.NewTable(w, []string{"ID", "Name", "Badge", "Notes"}, &ui.TableOptions{NoColor: g.noColor})
				for _, o := range c.Options {
					note := ""
					if o.IsDefault {
						note = "default"
					}
					if reason, ok := c.Disabled[o.ID]; ok {
						note = "unavailable: " + reason
					}
					t.AddRow(o.ID, o.Name, string(o.Badge), note)
				}
				t.Render()
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	flags = addStackFlags(cmd)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the catalog as YAML")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	cmd.MarkFlagsMutuallyExclusive("yaml", "json")
	return cmd
}

// NewPresetsCommand creates the presets command
func NewPresetsCommand(g *globalOptions) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Long: `List the built-in presets. Start a project from one with
"ai-stack create --preset <id>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			presets := stack.Presets()
			if asYAML {
				return writeYAML(w, presets)
			}

			t := ui.NewTable(w, []string{"ID", "Name", "Description"}, &ui.TableOptions{NoColor: g.noColor})
			for _, p := range presets {
				t.AddRow(p.ID, p.Name, p.Description)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the presets with their full stacks as YAML")
	return cmd
}
