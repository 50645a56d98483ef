package generator

import (
	"fmt"
	"sort"
	"sync"
)

// CommonTemplate is applied to every architecture.
const CommonTemplate = "common"

// AddonsTemplate holds the add-on files.
const AddonsTemplate = "addons"

// FallbackArchitecture is used for unknown architectures.
const FallbackArchitecture = "nextjs-fullstack"

// Registry manages available templates
type Registry struct {
	templates map[string]*Template
	mutex     sync.RWMutex
}

// NewRegistry creates a new template registry
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// Register registers a template in the registry
func (r *Registry) Register(tmpl *Template) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.templates[tmpl.Name]; exists {
		return fmt.Errorf("template %s already registered", tmpl.Name)
	}

	r.templates[tmpl.Name] = tmpl
	return nil
}

// Get retrieves a template by name
func (r *Registry) Get(name string) (*Template, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tmpl, exists := r.templates[name]
	if !exists {
		return nil, fmt.Errorf("template %s not found", name)
	}

	return tmpl, nil
}

// Exists checks if a template exists
func (r *Registry) Exists(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.templates[name]
	return exists
}

// Names returns the registered template names in sorted order.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForArchitecture returns the templates to render, in order: common files,
// the architecture's own tree, then add-ons. Unknown architectures use
// FallbackArchitecture. Missing common or add-on templates are skipped.
func (r *Registry) ForArchitecture(arch string) ([]*Template, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	archTmpl, ok := r.templates[arch]
	if !ok || arch == CommonTemplate || arch == AddonsTemplate {
		archTmpl, ok = r.templates[FallbackArchitecture]
		if !ok {
			return nil, fmt.Errorf("no template for architecture %q", arch)
		}
	}

	out := make([]*Template, 0, 3)
	if common, ok := r.templates[CommonTemplate]; ok {
		out = append(out, common)
	}
	out = append(out, archTmpl)
	if addons, ok := r.templates[AddonsTemplate]; ok {
		out = append(out, addons)
	}
	return out, nil
}

// BuiltinRegistry returns a registry holding the built-in templates.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, tmpl := range []*Template{
		NewCommonTemplate(),
		NewNextjsTemplate(),
		NewFastAPITemplate(),
		NewAddonsTemplate(),
	} {
		if err := r.Register(tmpl); err != nil {
			// Built-in templates are static; a failure here is a programming error.
			panic(err)
		}
	}
	return r
}
