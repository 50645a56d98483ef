package generator

import "fmt"

// Template is a named group of files emitted together.
type Template struct {
	Name        string
	Description string
	Files       []*File
}

// File is one generated file. Body is a text/template rendered against a
// Context. When, if set, decides whether the file is emitted.
type File struct {
	Path string
	Body string
	When func(c *Context) bool
}

// Validate validates a template structure
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if len(t.Files) == 0 {
		return fmt.Errorf("template %s must have at least one file", t.Name)
	}

	paths := make(map[string]bool, len(t.Files))
	for _, f := range t.Files {
		if f.Path == "" {
			return fmt.Errorf("file path is required in template %s", t.Name)
		}
		if f.Body == "" {
			return fmt.Errorf("file body is required for %s", f.Path)
		}
		if paths[f.Path] && f.When == nil {
			return fmt.Errorf("duplicate unconditional file %s in template %s", f.Path, t.Name)
		}
		paths[f.Path] = true
	}
	return nil
}

// always and the helpers below build When conditions.
func always(*Context) bool { return true }

func whenNot(cat func(*Context) string, value string) func(*Context) bool {
	return func(c *Context) bool { return cat(c) != value }
}

func whenIs(cat func(*Context) string, value string) func(*Context) bool {
	return func(c *Context) bool { return cat(c) == value }
}

func whenAddon(id string) func(*Context) bool {
	return func(c *Context) bool { return c.Stack.HasAddon(id) }
}

func whenAll(conds ...func(*Context) bool) func(*Context) bool {
	return func(c *Context) bool {
		for _, cond := range conds {
			if !cond(c) {
				return false
			}
		}
		return true
	}
}

func llm(c *Context) string      { return c.Stack.LLMProvider }
func vectorDB(c *Context) string { return c.Stack.VectorDB }
func database(c *Context) string { return c.Stack.Database }
func orm(c *Context) string      { return c.Stack.ORM }
func auth(c *Context) string     { return c.Stack.Auth }
func search(c *Context) string   { return c.Stack.Search }
func memory(c *Context) string   { return c.Stack.Memory }
func observability(c *Context) string {
	return c.Stack.Observability
}
