package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/generator"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
	"github.com/ai-stack/stackbuilder/internal/vfs"
)

type createOptions struct {
	*globalOptions
	stack       *stackFlags
	interactive bool
	out         string
	dryRun      bool
	force       bool
}

// NewCreateCommand creates the create command
func NewCreateCommand(g *globalOptions) *cobra.Command {
	opts := &createOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Generate a new AI application",
		Long: `Generate a new AI application from flags, a preset, a shared builder URL
or interactive prompts. Incompatible selections are corrected before any
file is written.

Examples:
  ai-stack create my-bot --llm anthropic --vector-db qdrant
  ai-stack create --preset rag-chatbot
  ai-stack create --from-url "https://builder.example.com/?architecture=fastapi-nextjs"
  ai-stack create --interactive
  ai-stack create my-bot --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, opts)
		},
	}

	opts.stack = addStackFlags(cmd)
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose every option with prompts")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (default: ./<project-name>)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the file tree without writing anything")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Write into a non-empty output directory")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, opts *createOptions) error {
	w := cmd.OutOrStdout()

	s, err := opts.stack.resolve(args)
	if err != nil {
		return err
	}
	if opts.interactive {
		if s, err = askStack(w, opts.noColor, s); err != nil {
			return err
		}
	}
	if err := stack.ValidateProjectName(s.ProjectName); err != nil {
		return ui.InvalidProjectName(err)
	}

	final, res := correct(s)
	if len(res.Changes) > 0 || len(res.Notes) > 0 {
		printAnalysis(w, res, opts.noColor)
	}

	fs, err := generator.Generate(final)
	if err != nil {
		return fmt.Errorf("failed to generate project: %w", err)
	}

	if opts.dryRun {
		printTree(w, fs.Tree(), opts.noColor)
		sum := generator.Summarize(fs)
		fmt.Fprintf(w, "\n%d directories, %d files\n", sum.Directories, sum.Files)
		return nil
	}

	dir := opts.out
	if dir == "" {
		dir = filepath.Join(".", final.ProjectName)
	}
	if err := checkOutputDir(dir, opts.force); err != nil {
		return err
	}

	files := fs.Files()
	err = ui.WithProgress(w, fmt.Sprintf("Wrote %d files to %s", len(files), dir), len(files), opts.noColor, func(bar *ui.ProgressBar) error {
		for _, f := range files {
			if err := vfs.WriteFile(dir, f); err != nil {
				return err
			}
			bar.Add(1)
		}
		return nil
	})
	if err != nil {
		return err
	}

	printNextSteps(cmd, dir, final, opts.noColor)
	return nil
}

// checkOutputDir refuses to mix generated files into an existing project.
func checkOutputDir(dir string, force bool) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	if len(entries) > 0 && !force {
		return &ui.Error{Options: ui.ErrorOptions{
			Context:      "output directory not empty",
			Problem:      fmt.Sprintf("%s already contains files.", dir),
			HelpCommands: []string{"Choose another directory with --out", "Overwrite with --force"},
		}}
	}
	return nil
}

func printNextSteps(cmd *cobra.Command, dir string, s stack.State, noColor bool) {
	w := cmd.OutOrStdout()
	ctx := generator.NewContext(s)

	fmt.Fprintln(w)
	ui.Header(w, "Next steps", noColor)
	l := ui.NewList(w, "$", color.FgHiBlack, noColor)
	l.AddItem("cd %s", dir)
	l.AddItem("%s", ctx.Install())
	l.AddItem("cp .env.example .env")
	l.AddItem("%s", ctx.Run("dev"))
	l.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recreate this project with:")
	fmt.Fprintf(w, "  %s\n", state.GenerateCommand(s))
}
