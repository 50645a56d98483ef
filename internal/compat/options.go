package compat

import (
	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// IsOptionCompatible reports whether selecting optionID for cat would be
// legal under the current stack. Unknown combinations are compatible.
func IsOptionCompatible(s stack.State, cat catalog.Category, optionID string) bool {
	_, disabled := DisabledReason(s, cat, optionID)
	return !disabled
}

// DisabledReason explains why an option cannot be selected. The boolean is
// false when the option is compatible.
func DisabledReason(s stack.State, cat catalog.Category, optionID string) (string, bool) {
	switch cat {
	case catalog.ORM:
		switch optionID {
		case "sqlalchemy":
			if s.Architecture != archSplit {
				return "SQLAlchemy is only available with the FastAPI + Next.js architecture", true
			}
		case "drizzle":
			if s.Architecture != archFullstack {
				return "Drizzle is only available with the Next.js full-stack architecture", true
			}
		case "prisma":
			if s.Architecture != archFullstack {
				return "Prisma is only available with the Next.js full-stack architecture", true
			}
		}
	case catalog.Addons:
		switch optionID {
		case "celery":
			if s.Architecture != archSplit {
				return "Celery requires the FastAPI + Next.js architecture", true
			}
		case "reranking":
			if s.VectorDB == catalog.None {
				return "Reranking requires a vector database", true
			}
		}
	case catalog.Database:
		if s.VectorDB == "pgvector" && !catalog.IsPostgresCompatible(optionID) {
			return "pgvector requires a PostgreSQL-compatible database", true
		}
	}
	return "", false
}

// DisabledOptions lists the option ids of cat that are not selectable.
func DisabledOptions(s stack.State, cat catalog.Category) map[string]string {
	out := make(map[string]string)
	for _, id := range catalog.IDs(cat) {
		if reason, disabled := DisabledReason(s, cat, id); disabled {
			out[id] = reason
		}
	}
	return out
}
