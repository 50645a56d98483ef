package stack

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ai-stack/stackbuilder/internal/catalog"
)

// DefaultProjectName is used when no project name has been chosen.
const DefaultProjectName = "my-ai-app"

// Flag is a boolean-like selection stored as "true" or "false".
// It accepts JSON booleans as well as strings when decoding.
type Flag string

const (
	FlagTrue  Flag = "true"
	FlagFalse Flag = "false"
)

// UnmarshalJSON accepts true, false, "true" and "false".
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*f = FlagTrue
		} else {
			*f = FlagFalse
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flag must be a boolean or string: %w", err)
	}
	*f = Flag(s)
	return nil
}

// Bool reports whether the flag is set.
func (f Flag) Bool() bool {
	return f == FlagTrue
}

// Opposite flips the flag.
func (f Flag) Opposite() Flag {
	if f == FlagTrue {
		return FlagFalse
	}
	return FlagTrue
}

// State is the configuration under construction in the builder.
type State struct {
	ProjectName    string   `json:"projectName" yaml:"project_name"`
	Architecture   string   `json:"architecture" yaml:"architecture"`
	LLMProvider    string   `json:"llmProvider" yaml:"llm_provider"`
	VectorDB       string   `json:"vectorDb" yaml:"vector_db"`
	Database       string   `json:"database" yaml:"database"`
	ORM            string   `json:"orm" yaml:"orm"`
	Auth           string   `json:"auth" yaml:"auth"`
	Search         string   `json:"search" yaml:"search"`
	Memory         string   `json:"memory" yaml:"memory"`
	Observability  string   `json:"observability" yaml:"observability"`
	Addons         []string `json:"addons" yaml:"addons"`
	PackageManager string   `json:"packageManager" yaml:"package_manager"`
	Git            Flag     `json:"git" yaml:"git"`
	Install        Flag     `json:"install" yaml:"install"`
}

// Default returns the fixed default configuration.
func Default() State {
	return State{
		ProjectName:    DefaultProjectName,
		Architecture:   catalog.DefaultID(catalog.Architecture),
		LLMProvider:    catalog.DefaultID(catalog.LLMProvider),
		VectorDB:       catalog.DefaultID(catalog.VectorDB),
		Database:       catalog.DefaultID(catalog.Database),
		ORM:            catalog.DefaultID(catalog.ORM),
		Auth:           catalog.DefaultID(catalog.Auth),
		Search:         catalog.DefaultID(catalog.Search),
		Memory:         catalog.DefaultID(catalog.Memory),
		Observability:  catalog.DefaultID(catalog.Observability),
		Addons:         []string{},
		PackageManager: catalog.DefaultID(catalog.PackageManager),
		Git:            Flag(catalog.DefaultID(catalog.Git)),
		Install:        Flag(catalog.DefaultID(catalog.Install)),
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	if s.Addons != nil {
		c.Addons = make([]string, len(s.Addons))
		copy(c.Addons, s.Addons)
	}
	return c
}

// Get returns the scalar value for a category. For addons the ids are
// comma-joined.
func (s State) Get(c catalog.Category) string {
	if p := s.scalar(c); p != nil {
		return *p
	}
	switch c {
	case catalog.Git:
		return string(s.Git)
	case catalog.Install:
		return string(s.Install)
	case catalog.Addons:
		return JoinAddons(s.Addons)
	}
	return ""
}

// Set assigns a value to a category. Addons are parsed from a
// comma-joined list. Unknown categories are ignored.
func (s *State) Set(c catalog.Category, value string) {
	if p := s.scalar(c); p != nil {
		*p = value
		return
	}
	switch c {
	case catalog.Git:
		s.Git = Flag(value)
	case catalog.Install:
		s.Install = Flag(value)
	case catalog.Addons:
		s.Addons = SplitAddons(value)
	}
}

func (s *State) scalar(c catalog.Category) *string {
	switch c {
	case catalog.Architecture:
		return &s.Architecture
	case catalog.LLMProvider:
		return &s.LLMProvider
	case catalog.VectorDB:
		return &s.VectorDB
	case catalog.Database:
		return &s.Database
	case catalog.ORM:
		return &s.ORM
	case catalog.Auth:
		return &s.Auth
	case catalog.Search:
		return &s.Search
	case catalog.Memory:
		return &s.Memory
	case catalog.Observability:
		return &s.Observability
	case catalog.PackageManager:
		return &s.PackageManager
	}
	return nil
}

// Normalize fills empty fields with defaults and removes duplicate add-ons.
// A "none" add-on is dropped when real add-ons are present.
func (s State) Normalize() State {
	out := s.Clone()
	def := Default()
	if out.ProjectName == "" {
		out.ProjectName = def.ProjectName
	}
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			continue
		}
		if out.Get(c) == "" {
			out.Set(c, def.Get(c))
		}
	}

	addons := make([]string, 0, len(out.Addons))
	seen := make(map[string]bool, len(out.Addons))
	for _, a := range out.Addons {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		addons = append(addons, a)
	}
	if len(addons) > 1 && seen[catalog.None] {
		addons = withoutString(addons, catalog.None)
	}
	out.Addons = addons
	return out
}

// Equal reports semantic equality. Add-ons are compared in order.
func (s State) Equal(o State) bool {
	if len(s.Addons) != len(o.Addons) {
		return false
	}
	for i := range s.Addons {
		if s.Addons[i] != o.Addons[i] {
			return false
		}
	}
	if s.ProjectName != o.ProjectName {
		return false
	}
	for _, c := range catalog.Categories() {
		if !catalog.IsMulti(c) && s.Get(c) != o.Get(c) {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable hash of the state, used as a cache key and
// to detect stale preview results.
func (s State) Fingerprint() string {
	c := s.Clone()
	if c.Addons == nil {
		c.Addons = []string{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		// State only holds strings; Marshal cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// ActiveAddons returns the selected add-ons without the "none" sentinel.
func (s State) ActiveAddons() []string {
	return withoutString(s.Addons, catalog.None)
}
