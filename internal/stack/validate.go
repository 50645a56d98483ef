package stack

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ai-stack/stackbuilder/internal/catalog"
)

const maxProjectNameLength = 214

var projectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidationError describes an invalid field. It is reported next to the
// field and never blocks other interactions.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateProjectName checks a project name against npm package naming rules.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "projectName", Message: "project name is required"}
	}
	if len(name) > maxProjectNameLength {
		return &ValidationError{
			Field:   "projectName",
			Message: fmt.Sprintf("project name must be at most %d characters", maxProjectNameLength),
		}
	}
	if name != strings.ToLower(name) {
		return &ValidationError{Field: "projectName", Message: "project name must be lowercase"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "projectName",
			Message: "project name can only contain lowercase letters, numbers, dots, dashes and underscores, and must start with a letter or number",
		}
	}
	return nil
}

// UnknownOptions lists the scalar fields whose value is not in the catalog,
// plus unknown add-on ids. The map is empty for a fully catalogued state.
func (s State) UnknownOptions() map[catalog.Category][]string {
	out := make(map[catalog.Category][]string)
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			for _, a := range s.Addons {
				if !catalog.IsKnown(c, a) {
					out[c] = append(out[c], a)
				}
			}
			continue
		}
		v := s.Get(c)
		if v != "" && !catalog.IsKnown(c, v) {
			out[c] = append(out[c], v)
		}
	}
	return out
}
