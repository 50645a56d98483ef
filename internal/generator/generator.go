// Package generator turns a stack configuration into the files of a new
// project, assembled in a virtual file system.
package generator

import (
	"fmt"

	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/vfs"
)

// Generator renders registered templates for a stack. It is deterministic
// and never touches the real file system.
type Generator struct {
	engine   *Engine
	registry *Registry
}

// New creates a generator over the built-in templates.
func New() *Generator {
	return NewWithRegistry(BuiltinRegistry())
}

// NewWithRegistry creates a generator over a custom registry.
func NewWithRegistry(r *Registry) *Generator {
	return &Generator{engine: NewEngine(), registry: r}
}

var defaultGenerator = New()

// Generate renders s with the built-in templates.
func Generate(s stack.State) (*vfs.FS, error) {
	return defaultGenerator.Generate(s)
}

// GenerateTree renders s and returns the materialized tree.
func GenerateTree(s stack.State) (*vfs.Node, error) {
	fs, err := defaultGenerator.Generate(s)
	if err != nil {
		return nil, err
	}
	return fs.Tree(), nil
}

// Generate renders s. Empty fields are replaced by defaults first, so any
// well-typed stack produces a tree.
func (g *Generator) Generate(s stack.State) (*vfs.FS, error) {
	s = s.Normalize()
	if err := stack.ValidateProjectName(s.ProjectName); err != nil {
		s.ProjectName = stack.DefaultProjectName
	}

	templates, err := g.registry.ForArchitecture(s.Architecture)
	if err != nil {
		return nil, err
	}

	ctx := NewContext(s)
	fs := vfs.New()
	for _, tmpl := range templates {
		if err := g.engine.Render(tmpl, ctx, fs); err != nil {
			return nil, fmt.Errorf("generate %s: %w", s.Architecture, err)
		}
	}
	return fs, nil
}

// Summary describes the size of a generated project.
type Summary struct {
	Files       int `json:"files"`
	Directories int `json:"directories"`
	Bytes       int `json:"bytes"`
}

// Summarize counts the files, directories and bytes in fs.
func Summarize(fs *vfs.FS) Summary {
	sum := Summary{Files: fs.Len(), Directories: fs.DirCount()}
	for _, f := range fs.Files() {
		sum.Bytes += len(f.Content)
	}
	return sum
}
