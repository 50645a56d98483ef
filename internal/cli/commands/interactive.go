package commands

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/compat"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
)

// askOne is replaced in tests.
var askOne = survey.AskOne

// askStack walks every category with prompts, starting from initial. Each
// answer goes through a state.Store so later prompts already reflect the
// corrections of earlier ones.
func askStack(w io.Writer, noColor bool, initial stack.State) (stack.State, error) {
	store := state.New(
		state.WithInitial(initial),
		state.WithNotifier(state.NotifierFunc(func(messages []string) {
			for _, m := range messages {
				fmt.Fprint(w, ui.Warning(m, noColor))
			}
		})),
	)

	name := store.Stack().ProjectName
	prompt := &survey.Input{Message: "Project name:", Default: name}
	if err := askOne(prompt, &name, survey.WithValidator(validateProjectName)); err != nil {
		return stack.State{}, err
	}
	store.SetStack(state.Patch{ProjectName: state.String(name)})

	for _, c := range catalog.Categories() {
		current := store.Stack()

		switch {
		case catalog.IsMulti(c):
			ids, err := askAddons(current)
			if err != nil {
				return stack.State{}, err
			}
			selectAddons(store, ids)

		case catalog.IsBoolean(c):
			on := stack.Flag(current.Get(c)).Bool()
			opt, _ := catalog.Lookup(c, string(stack.FlagTrue))
			if err := askOne(&survey.Confirm{Message: opt.Name + "?", Default: on}, &on); err != nil {
				return stack.State{}, err
			}
			store.SetStack(setCategory(c, string(boolFlag(on))))

		default:
			id, err := askOption(current, c)
			if err != nil {
				return stack.State{}, err
			}
			store.SetStack(setCategory(c, id))
		}
	}

	return store.Stack(), nil
}

func askOption(current stack.State, c catalog.Category) (string, error) {
	options := catalog.Options(c)
	labels := make([]string, len(options))
	byLabel := make(map[string]string, len(options))
	for i, o := range options {
		labels[i] = o.Name
		byLabel[o.Name] = o.ID
	}

	prompt := &survey.Select{
		Message: ui.CategoryLabel(c) + ":",
		Options: labels,
		Description: func(_ string, i int) string {
			o := options[i]
			if reason, disabled := compat.DisabledReason(current, c, o.ID); disabled {
				return reason
			}
			return o.Description
		},
	}
	if opt, ok := catalog.Lookup(c, current.Get(c)); ok {
		prompt.Default = opt.Name
	}

	var answer string
	if err := askOne(prompt, &answer); err != nil {
		return "", err
	}
	id, ok := byLabel[answer]
	if !ok {
		return "", ui.UnknownOption(c, answer)
	}
	return id, nil
}

func askAddons(current stack.State) ([]string, error) {
	var labels, selected []string
	byLabel := make(map[string]string)
	for _, o := range catalog.Options(catalog.Addons) {
		if o.ID == catalog.None {
			continue
		}
		labels = append(labels, o.Name)
		byLabel[o.Name] = o.ID
		if current.HasAddon(o.ID) {
			selected = append(selected, o.Name)
		}
	}

	prompt := &survey.MultiSelect{
		Message: ui.CategoryLabel(catalog.Addons) + ":",
		Options: labels,
		Default: selected,
	}

	var answers []string
	if err := askOne(prompt, &answers); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		if id, ok := byLabel[a]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// selectAddons toggles the store's add-ons until they match ids. Checked
// add-ons go in first so a correction triggered by an unchecked one sees the
// final selection.
func selectAddons(store *state.Store, ids []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
		if !store.Stack().HasAddon(id) {
			store.Select(catalog.Addons, id)
		}
	}
	for _, id := range store.Stack().ActiveAddons() {
		if !want[id] && store.Stack().HasAddon(id) {
			store.Select(catalog.Addons, id)
		}
	}
}

func setCategory(c catalog.Category, id string) state.Update {
	return state.UpdateFunc(func(s stack.State) stack.State {
		s.Set(c, id)
		return s
	})
}

func boolFlag(b bool) stack.Flag {
	if b {
		return stack.FlagTrue
	}
	return stack.FlagFalse
}

func validateProjectName(ans interface{}) error {
	name, _ := ans.(string)
	return stack.ValidateProjectName(name)
}
