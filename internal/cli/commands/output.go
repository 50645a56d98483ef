package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/compat"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/vfs"
)

// correct runs the compatibility rules and returns the stack to use.
func correct(s stack.State) (stack.State, compat.Result) {
	res := compat.Analyze(s)
	return res.Final(s), res
}

// printAnalysis lists automatic corrections and per-category advisories.
func printAnalysis(w io.Writer, res compat.Result, noColor bool) {
	if len(res.Changes) == 0 && len(res.Notes) == 0 {
		ui.WriteSuccess(w, "All selections are compatible", noColor)
		return
	}

	if len(res.Changes) > 0 {
		ui.Header(w, "Adjusted selections", noColor)
		t := ui.NewTable(w, []string{"Category", "From", "To", "Reason"}, &ui.TableOptions{NoColor: noColor})
		for _, c := range res.Changes {
			t.AddRow(ui.CategoryLabel(c.Category), c.From, c.To, c.Message)
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(res.Notes) > 0 {
		ui.Header(w, "Notes", noColor)
		cats := make([]catalog.Category, 0, len(res.Notes))
		for c := range res.Notes {
			cats = append(cats, c)
		}
		sort.Slice(cats, func(i, j int) bool { return categoryIndex(cats[i]) < categoryIndex(cats[j]) })

		for _, c := range cats {
			n := res.Notes[c]
			attr := color.FgCyan
			if n.HasIssue {
				attr = color.FgYellow
			}
			l := ui.NewList(w, "", attr, noColor)
			for _, msg := range n.Notes {
				l.AddItem("%s: %s", ui.CategoryLabel(c), msg)
			}
			l.Render()
		}
		fmt.Fprintln(w)
	}
}

func categoryIndex(c catalog.Category) int {
	for i, cat := range catalog.Categories() {
		if cat == c {
			return i
		}
	}
	return len(catalog.Categories())
}

// printStack renders every selection with its display name.
func printStack(w io.Writer, s stack.State, noColor bool) {
	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Project", s.ProjectName)
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			labels := make([]string, 0, len(s.Addons))
			for _, id := range s.Addons {
				labels = append(labels, ui.OptionLabel(c, id))
			}
			if len(labels) == 0 {
				labels = append(labels, "-")
			}
			kv.AddRow(ui.CategoryLabel(c), strings.Join(labels, ", "))
			continue
		}
		kv.AddRow(ui.CategoryLabel(c), ui.OptionLabel(c, s.Get(c)))
	}
	kv.Render()
}

// printTree draws n in the style of the tree(1) command.
func printTree(w io.Writer, n *vfs.Node, noColor bool) {
	dir := color.New(color.FgBlue, color.Bold)
	if noColor {
		dir.DisableColor()
	}
	if n.Name == "" {
		dir.Fprintln(w, ".")
	} else {
		dir.Fprintln(w, n.Name)
	}
	printChildren(w, n, "", dir)
}

func printChildren(w io.Writer, n *vfs.Node, prefix string, dir *color.Color) {
	for i, c := range n.Children {
		branch, next := "├── ", "│   "
		if i == len(n.Children)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprint(w, prefix+branch)
		if c.IsDir() {
			dir.Fprintln(w, c.Name+"/")
			printChildren(w, c, prefix+next, dir)
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
