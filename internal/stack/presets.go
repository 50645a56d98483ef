package stack

import "fmt"

// Preset is a named, fully specified configuration.
type Preset struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Stack       State  `json:"stack" yaml:"stack"`
}

// Presets returns the built-in presets.
func Presets() []Preset {
	return []Preset{
		{
			ID:          "rag-chatbot",
			Name:        "RAG Chatbot",
			Description: "Chat over your documents with pgvector retrieval",
			Stack: State{
				ProjectName:    "rag-chatbot",
				Architecture:   "nextjs-fullstack",
				LLMProvider:    "openai",
				VectorDB:       "pgvector",
				Database:       "postgresql",
				ORM:            "drizzle",
				Auth:           "better-auth",
				Search:         "tavily",
				Memory:         "none",
				Observability:  "langfuse",
				Addons:         []string{"docker", "reranking"},
				PackageManager: "pnpm",
				Git:            FlagTrue,
				Install:        FlagTrue,
			},
		},
		{
			ID:          "enterprise",
			Name:        "Enterprise Production",
			Description: "Python backend with workers, tracing and Kubernetes manifests",
			Stack: State{
				ProjectName:    "enterprise-ai",
				Architecture:   "fastapi-nextjs",
				LLMProvider:    "anthropic",
				VectorDB:       "qdrant",
				Database:       "postgresql",
				ORM:            "sqlalchemy",
				Auth:           "jwt",
				Search:         "exa",
				Memory:         "mem0",
				Observability:  "langsmith",
				Addons:         []string{"docker", "kubernetes", "celery", "redis", "github-actions"},
				PackageManager: "pnpm",
				Git:            FlagTrue,
				Install:        FlagTrue,
			},
		},
		{
			ID:          "minimal",
			Name:        "Minimal Starter",
			Description: "A chat app and nothing else",
			Stack: State{
				ProjectName:    "minimal-ai",
				Architecture:   "nextjs-fullstack",
				LLMProvider:    "novita",
				VectorDB:       "none",
				Database:       "none",
				ORM:            "none",
				Auth:           "none",
				Search:         "none",
				Memory:         "none",
				Observability:  "none",
				Addons:         []string{},
				PackageManager: "npm",
				Git:            FlagTrue,
				Install:        FlagFalse,
			},
		},
		{
			ID:          "local-first",
			Name:        "Local First",
			Description: "Everything on your laptop with Ollama and SQLite",
			Stack: State{
				ProjectName:    "local-ai",
				Architecture:   "nextjs-fullstack",
				LLMProvider:    "ollama",
				VectorDB:       "chroma",
				Database:       "sqlite",
				ORM:            "drizzle",
				Auth:           "none",
				Search:         "none",
				Memory:         "none",
				Observability:  "none",
				Addons:         []string{"docker"},
				PackageManager: "bun",
				Git:            FlagTrue,
				Install:        FlagTrue,
			},
		},
	}
}

// PresetByID finds a preset.
func PresetByID(id string) (Preset, error) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found", id)
}

// PresetIDs lists preset ids in display order.
func PresetIDs() []string {
	presets := Presets()
	ids := make([]string, len(presets))
	for i, p := range presets {
		ids[i] = p.ID
	}
	return ids
}
