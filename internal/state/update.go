package state

import "github.com/ai-stack/stackbuilder/internal/stack"

// Update transforms the current stack. Patch and UpdateFunc implement it.
type Update interface {
	apply(current stack.State) stack.State
}

// UpdateFunc computes the next stack from the previous one.
type UpdateFunc func(prev stack.State) stack.State

func (f UpdateFunc) apply(current stack.State) stack.State {
	return f(current)
}

// Replace swaps in s wholesale.
func Replace(s stack.State) Update {
	return UpdateFunc(func(stack.State) stack.State { return s.Clone() })
}

// Patch is a partial update. Nil fields are left alone; Addons, when set,
// replaces the whole list.
type Patch struct {
	ProjectName    *string     `json:"projectName,omitempty"`
	Architecture   *string     `json:"architecture,omitempty"`
	LLMProvider    *string     `json:"llmProvider,omitempty"`
	VectorDB       *string     `json:"vectorDb,omitempty"`
	Database       *string     `json:"database,omitempty"`
	ORM            *string     `json:"orm,omitempty"`
	Auth           *string     `json:"auth,omitempty"`
	Search         *string     `json:"search,omitempty"`
	Memory         *string     `json:"memory,omitempty"`
	Observability  *string     `json:"observability,omitempty"`
	Addons         *[]string   `json:"addons,omitempty"`
	PackageManager *string     `json:"packageManager,omitempty"`
	Git            *stack.Flag `json:"git,omitempty"`
	Install        *stack.Flag `json:"install,omitempty"`
}

func (p Patch) apply(s stack.State) stack.State {
	setString(&s.ProjectName, p.ProjectName)
	setString(&s.Architecture, p.Architecture)
	setString(&s.LLMProvider, p.LLMProvider)
	setString(&s.VectorDB, p.VectorDB)
	setString(&s.Database, p.Database)
	setString(&s.ORM, p.ORM)
	setString(&s.Auth, p.Auth)
	setString(&s.Search, p.Search)
	setString(&s.Memory, p.Memory)
	setString(&s.Observability, p.Observability)
	setString(&s.PackageManager, p.PackageManager)
	if p.Addons != nil {
		s.Addons = append([]string{}, (*p.Addons)...)
	}
	if p.Git != nil {
		s.Git = *p.Git
	}
	if p.Install != nil {
		s.Install = *p.Install
	}
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// String returns a pointer to v, for building a Patch.
func String(v string) *string {
	return &v
}

// Strings returns a pointer to v, for Patch.Addons.
func Strings(v ...string) *[]string {
	if v == nil {
		v = []string{}
	}
	return &v
}
