package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
)

// stackFlags registers one flag per catalog category, named exactly like
// the flags of the generated create command, plus the starting-point flags.
type stackFlags struct {
	cmd    *cobra.Command
	values map[catalog.Category]*string

	preset  string
	fromURL string
}

func addStackFlags(cmd *cobra.Command) *stackFlags {
	f := &stackFlags{cmd: cmd, values: make(map[catalog.Category]*string)}
	fs := cmd.Flags()

	for _, c := range catalog.Categories() {
		name := state.FlagName(c)
		if catalog.IsBoolean(c) {
			fs.Bool(name, false, "Enable "+ui.CategoryLabel(c))
			fs.Bool("no-"+name, false, "Disable "+ui.CategoryLabel(c))
			cmd.MarkFlagsMutuallyExclusive(name, "no-"+name)
			continue
		}
		f.values[c] = fs.String(name, "", fmt.Sprintf("%s (%s)", ui.CategoryLabel(c), strings.Join(catalog.IDs(c), ", ")))
	}

	fs.StringVar(&f.preset, "preset", "", "Start from a preset (see: ai-stack presets)")
	fs.StringVar(&f.fromURL, "from-url", "", "Start from a shared builder URL or query string")
	cmd.MarkFlagsMutuallyExclusive("preset", "from-url")

	return f
}

// base returns the starting stack: a preset, a decoded URL or the default.
func (f *stackFlags) base() (stack.State, error) {
	switch {
	case f.preset != "":
		p, err := stack.PresetByID(f.preset)
		if err != nil {
			return stack.State{}, ui.UnknownPreset(f.preset)
		}
		return p.Stack.Clone(), nil
	case f.fromURL != "":
		s, _, err := state.ParseURL(f.fromURL)
		if err != nil {
			return stack.State{}, fmt.Errorf("invalid --from-url: %w", err)
		}
		return s, nil
	default:
		return stack.Default(), nil
	}
}

// resolve applies the changed flags and the optional project name argument
// on top of base. Unknown option ids are rejected with suggestions; the
// result is not yet checked for compatibility.
func (f *stackFlags) resolve(args []string) (stack.State, error) {
	s, err := f.base()
	if err != nil {
		return stack.State{}, err
	}
	fs := f.cmd.Flags()

	for _, c := range catalog.Categories() {
		name := state.FlagName(c)

		if catalog.IsBoolean(c) {
			if fs.Changed(name) {
				s.Set(c, string(stack.FlagTrue))
			}
			if fs.Changed("no-" + name) {
				s.Set(c, string(stack.FlagFalse))
			}
			continue
		}
		if !fs.Changed(name) {
			continue
		}

		value := strings.TrimSpace(*f.values[c])
		if catalog.IsMulti(c) {
			addons := stack.SplitAddons(value)
			for _, id := range addons {
				if !catalog.IsKnown(c, id) {
					return stack.State{}, ui.UnknownOption(c, id)
				}
			}
			s.Addons = addons
			continue
		}
		if !catalog.IsKnown(c, value) {
			return stack.State{}, ui.UnknownOption(c, value)
		}
		s.Set(c, value)
	}

	if len(args) > 0 {
		s.ProjectName = args[0]
	}
	return s.Normalize(), nil
}
