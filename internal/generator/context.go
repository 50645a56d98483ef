package generator

import (
	"strings"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// Context is the data every template is rendered against.
type Context struct {
	Stack stack.State

	// ProjectName is the npm package name; DBName is its snake_case form.
	ProjectName string
	DBName      string

	// Labels maps each category to the display name of the selection.
	Labels map[catalog.Category]string

	// Manifest is the package.json of the Next.js app.
	Manifest Manifest
	// Workspace is the root package.json of the split architecture.
	Workspace Manifest
	// Requirements are the Python backend's pinned dependencies.
	Requirements []string
	// Env lists the variables written to .env.example.
	Env []EnvVar
}

// NewContext derives a render context from a normalized stack.
func NewContext(s stack.State) *Context {
	c := &Context{
		Stack:       s,
		ProjectName: s.ProjectName,
		DBName:      dbName(s.ProjectName),
		Labels:      make(map[catalog.Category]string),
	}
	for _, cat := range catalog.Categories() {
		if catalog.IsMulti(cat) {
			continue
		}
		id := s.Get(cat)
		if opt, ok := catalog.Lookup(cat, id); ok {
			c.Labels[cat] = opt.Name
		} else {
			c.Labels[cat] = id
		}
	}

	c.Manifest = nextManifest(c)
	c.Workspace = workspaceManifest(c)
	c.Requirements = requirements(s)
	c.Env = EnvVars(c)
	return c
}

// IsSplit reports whether the stack uses the FastAPI + Next.js layout.
func (c *Context) IsSplit() bool {
	return c.Stack.Architecture == "fastapi-nextjs"
}

// Has reports whether an add-on is selected.
func (c *Context) Has(addon string) bool {
	return c.Stack.HasAddon(addon)
}

// Label returns the display name for a category's selection.
func (c *Context) Label(cat string) string {
	return c.Labels[catalog.Category(cat)]
}

// Addons returns the selected add-ons without the "none" sentinel.
func (c *Context) Addons() []string {
	return c.Stack.ActiveAddons()
}

// IsPostgres reports whether the database speaks the Postgres protocol.
func (c *Context) IsPostgres() bool {
	return catalog.IsPostgresCompatible(c.Stack.Database)
}

// Run renders a package.json script invocation for the package manager.
func (c *Context) Run(script string) string {
	switch c.Stack.PackageManager {
	case "npm":
		return "npm run " + script
	case "yarn":
		return "yarn " + script
	case "bun":
		return "bun run " + script
	default:
		return "pnpm " + script
	}
}

// Install renders the dependency install command.
func (c *Context) Install() string {
	if c.Stack.PackageManager == "" {
		return "pnpm install"
	}
	return c.Stack.PackageManager + " install"
}

// DependsOn lists the docker compose services the app container needs.
func (c *Context) DependsOn() []string {
	s := c.Stack
	var out []string
	if s.Database == "postgresql" || s.VectorDB == "pgvector" {
		out = append(out, "postgres")
	}
	switch s.Database {
	case "mysql", "mongodb":
		out = append(out, s.Database)
	}
	switch s.VectorDB {
	case "qdrant", "weaviate", "chroma":
		out = append(out, s.VectorDB)
	}
	if s.HasAddon("redis") || s.HasAddon("celery") {
		out = append(out, "redis")
	}
	if s.LLMProvider == "ollama" {
		out = append(out, "ollama")
	}
	return out
}

func dbName(project string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(project) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "app"
	}
	return b.String()
}
