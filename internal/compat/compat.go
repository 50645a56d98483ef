package compat

import (
	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// Change records an automatic correction.
type Change struct {
	Category catalog.Category `json:"category"`
	From     string           `json:"from"`
	To       string           `json:"to"`
	Message  string           `json:"message"`
}

// Note is the advisory attached to a category.
type Note struct {
	HasIssue bool     `json:"hasIssue"`
	Notes    []string `json:"notes"`
}

// Result is the outcome of Analyze.
type Result struct {
	IsValid  bool                      `json:"isValid"`
	Adjusted *stack.State              `json:"adjustedStack"`
	Changes  []Change                  `json:"changes"`
	Notes    map[catalog.Category]Note `json:"notes"`
}

// Final returns the corrected stack, or the input when nothing was corrected.
func (r Result) Final(input stack.State) stack.State {
	if r.Adjusted != nil {
		return r.Adjusted.Clone()
	}
	return input
}

// Messages returns the human-readable text of every change.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		out = append(out, c.Message)
	}
	return out
}

// Analyze checks s against every rule. Corrections are applied to a working
// copy in rule order; advisories are derived from the corrected copy.
// Analyze never panics and never returns an error.
func Analyze(s stack.State) Result {
	return AnalyzeWith(Rules, s)
}

// AnalyzeWith runs a custom rule list.
func AnalyzeWith(rules []Rule, s stack.State) Result {
	work := s.Clone()
	changes := []Change{}

	for _, r := range rules {
		if r.Applies == nil || r.Fix == nil {
			continue
		}
		if r.Applies(work) {
			changes = append(changes, r.Fix(&work))
		}
	}

	notes := make(map[catalog.Category]Note)
	for _, r := range rules {
		if r.Advise == nil {
			continue
		}
		for _, a := range r.Advise(work) {
			n := notes[a.Category]
			n.Notes = append(n.Notes, a.Message)
			n.HasIssue = n.HasIssue || a.Issue
			notes[a.Category] = n
		}
	}

	res := Result{
		IsValid: len(changes) == 0,
		Changes: changes,
		Notes:   notes,
	}
	if len(changes) > 0 {
		res.Adjusted = &work
	}
	return res
}
