package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/preview"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/vfs"
)

type previewOptions struct {
	*globalOptions
	stack   *stackFlags
	file    string
	remote  string
	timeout time.Duration
	asJSON  bool
}

// NewPreviewCommand creates the preview command
func NewPreviewCommand(g *globalOptions) *cobra.Command {
	opts := &previewOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "preview [project-name]",
		Short: "Show the files a stack would generate",
		Long: `Show the file tree a stack would generate, or the content of one file.
Nothing is written to disk. With --remote the preview is requested from a
running "ai-stack serve" instance.

Examples:
  ai-stack preview --preset rag-chatbot
  ai-stack preview --architecture fastapi-nextjs --file backend/app/main.py
  ai-stack preview --remote http://localhost:8787`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args, opts)
		},
	}

	opts.stack = addStackFlags(cmd)
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Print the content of one generated file")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "Base URL of an ai-stack server")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout for --remote requests")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full preview result as JSON")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string, opts *previewOptions) error {
	s, err := opts.stack.resolve(args)
	if err != nil {
		return err
	}

	res, err := fetchPreview(cmd.Context(), s, opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.asJSON:
		return writeJSON(w, res)
	case opts.file != "":
		return printFile(w, res.Tree, opts.file)
	}

	if len(res.Changes) > 0 {
		for _, c := range res.Changes {
			fmt.Fprintf(w, "! %s\n", c.Message)
		}
		fmt.Fprintln(w)
	}
	printTree(w, res.Tree, opts.noColor)
	fmt.Fprintf(w, "\n%d directories, %d files\n", res.Summary.Directories, res.Summary.Files)
	return nil
}

func fetchPreview(ctx context.Context, s stack.State, opts *previewOptions) (*preview.Result, error) {
	if opts.remote != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, opts.timeout)
		defer cancel()
		return preview.NewClient(opts.remote).Preview(ctx, s)
	}

	svc, err := preview.NewService(preview.WithCacheSize(1))
	if err != nil {
		return nil, err
	}
	return svc.Preview(s)
}

func printFile(w io.Writer, tree *vfs.Node, path string) error {
	n := vfs.Find(tree, path)
	if n == nil || n.IsDir() || n.Content == nil {
		return fmt.Errorf("%s is not a generated file", path)
	}
	_, err := io.WriteString(w, *n.Content)
	return err
}
