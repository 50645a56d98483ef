package compat

import (
	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

const (
	archFullstack = "nextjs-fullstack"
	archSplit     = "fastapi-nextjs"
)

// Advice is a non-correcting note attached to a category.
type Advice struct {
	Category catalog.Category
	Message  string
	Issue    bool
}

// Rule links selections across categories. Applies and Fix describe an
// automatic correction; Advise produces notes from the final stack. Either
// half may be nil.
type Rule struct {
	Name    string
	Applies func(s stack.State) bool
	Fix     func(s *stack.State) Change
	Advise  func(s stack.State) []Advice
}

// Rules is the ordered rule list evaluated by Analyze.
var Rules = []Rule{
	{
		Name: "pgvector-needs-postgres",
		Applies: func(s stack.State) bool {
			return s.VectorDB == "pgvector" && !catalog.IsPostgresCompatible(s.Database)
		},
		Fix: func(s *stack.State) Change {
			from := s.Database
			s.Database = "postgresql"
			return Change{
				Category: catalog.Database,
				From:     from,
				To:       "postgresql",
				Message:  "pgvector runs inside Postgres, so the database was switched to PostgreSQL",
			}
		},
		Advise: func(s stack.State) []Advice {
			if s.VectorDB != "pgvector" {
				return nil
			}
			return []Advice{{
				Category: catalog.VectorDB,
				Message:  "pgvector requires a PostgreSQL-compatible database (PostgreSQL, Neon or Supabase)",
				Issue:    true,
			}}
		},
	},
	{
		Name: "fastapi-uses-sqlalchemy",
		Applies: func(s stack.State) bool {
			return s.Architecture == archSplit && s.ORM == "drizzle"
		},
		Fix: func(s *stack.State) Change {
			from := s.ORM
			s.ORM = "sqlalchemy"
			return Change{
				Category: catalog.ORM,
				From:     from,
				To:       "sqlalchemy",
				Message:  "Drizzle is a TypeScript ORM, so the FastAPI backend uses SQLAlchemy instead",
			}
		},
	},
	{
		Name: "fastapi-auth-advice",
		Advise: func(s stack.State) []Advice {
			if s.Architecture != archSplit || s.Auth != "better-auth" {
				return nil
			}
			return []Advice{{
				Category: catalog.Auth,
				Message:  "Better Auth only protects the Next.js frontend; JWT / OAuth2 is recommended for the FastAPI backend",
				Issue:    true,
			}}
		},
	},
	{
		Name: "celery-needs-fastapi",
		Applies: func(s stack.State) bool {
			return s.HasAddon("celery") && s.Architecture != archSplit
		},
		Fix: func(s *stack.State) Change {
			return changeAddons(s, func(s stack.State) stack.State { return s.WithoutAddon("celery") },
				"Celery workers need the Python backend, so the Celery add-on was removed")
		},
	},
	{
		Name: "ollama-needs-docker",
		Applies: func(s stack.State) bool {
			return s.LLMProvider == "ollama" && !s.HasAddon("docker")
		},
		Fix: func(s *stack.State) Change {
			return changeAddons(s, addDocker,
				"Ollama runs as a container next to your app, so the Docker add-on was added")
		},
		Advise: func(s stack.State) []Advice {
			if s.LLMProvider != "ollama" {
				return nil
			}
			return []Advice{{
				Category: catalog.LLMProvider,
				Message:  "Ollama runs models locally and needs enough RAM (8GB or more) and ideally a GPU",
				Issue:    true,
			}}
		},
	},
	{
		Name: "mem0-api-key",
		Advise: func(s stack.State) []Advice {
			if s.Memory != "mem0" {
				return nil
			}
			return []Advice{{
				Category: catalog.Memory,
				Message:  "Mem0 needs a MEM0_API_KEY from app.mem0.ai",
				Issue:    false,
			}}
		},
	},
	{
		Name: "reranking-latency",
		Advise: func(s stack.State) []Advice {
			if !s.HasAddon("reranking") {
				return nil
			}
			return []Advice{{
				Category: catalog.Addons,
				Message:  "Reranking adds a second model call and increases response latency",
				Issue:    true,
			}}
		},
	},
	{
		Name: "no-vector-db",
		Applies: func(s stack.State) bool {
			return s.VectorDB == catalog.None && s.HasAddon("reranking")
		},
		Fix: func(s *stack.State) Change {
			return changeAddons(s, func(s stack.State) stack.State { return s.WithoutAddon("reranking") },
				"Reranking needs retrieval results, so it was removed because no vector database is selected")
		},
		Advise: func(s stack.State) []Advice {
			if s.VectorDB != catalog.None {
				return nil
			}
			return []Advice{{
				Category: catalog.VectorDB,
				Message:  "Without a vector database, RAG retrieval is disabled",
				Issue:    true,
			}}
		},
	},
	{
		Name: "kubernetes-needs-docker",
		Applies: func(s stack.State) bool {
			return s.HasAddon("kubernetes") && !s.HasAddon("docker")
		},
		Fix: func(s *stack.State) Change {
			return changeAddons(s, addDocker,
				"Kubernetes deploys container images, so the Docker add-on was added")
		},
	},
}

func addDocker(s stack.State) stack.State {
	return s.WithoutAddon(catalog.None).WithAddon("docker")
}

// changeAddons applies edit to s and records the whole add-on list before
// and after, comma-joined.
func changeAddons(s *stack.State, edit func(stack.State) stack.State, message string) Change {
	from := stack.JoinAddons(s.Addons)
	*s = edit(*s)
	return Change{
		Category: catalog.Addons,
		From:     from,
		To:       stack.JoinAddons(s.Addons),
		Message:  message,
	}
}
