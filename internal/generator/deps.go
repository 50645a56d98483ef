package generator

import (
	"sort"

	"github.com/ai-stack/stackbuilder/internal/stack"
)

// Manifest is the subset of package.json the generator writes.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Workspaces      []string          `json:"workspaces,omitempty"`
	PackageManager  string            `json:"packageManager,omitempty"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

var llmPackages = map[string]map[string]string{
	"novita":    {"@ai-sdk/openai": "^1.1.0"},
	"openai":    {"@ai-sdk/openai": "^1.1.0"},
	"anthropic": {"@ai-sdk/anthropic": "^1.1.0"},
	"gemini":    {"@ai-sdk/google": "^1.1.0"},
	"groq":      {"@ai-sdk/groq": "^1.1.0"},
	"ollama":    {"ollama-ai-provider": "^1.2.0"},
}

var vectorPackages = map[string]map[string]string{
	"pgvector": {"pgvector": "^0.2.0"},
	"qdrant":   {"@qdrant/js-client-rest": "^1.12.0"},
	"pinecone": {"@pinecone-database/pinecone": "^4.0.0"},
	"weaviate": {"weaviate-client": "^3.3.0"},
	"chroma":   {"chromadb": "^1.9.0"},
}

var databasePackages = map[string]map[string]string{
	"postgresql": {"postgres": "^3.4.5"},
	"supabase":   {"postgres": "^3.4.5", "@supabase/supabase-js": "^2.47.0"},
	"neon":       {"@neondatabase/serverless": "^0.10.4"},
	"mysql":      {"mysql2": "^3.12.0"},
	"sqlite":     {"better-sqlite3": "^11.7.0"},
	"mongodb":    {"mongodb": "^6.12.0"},
}

var ormPackages = map[string]map[string]string{
	"drizzle": {"drizzle-orm": "^0.38.0"},
	"prisma":  {"@prisma/client": "^6.1.0"},
}

var ormDevPackages = map[string]map[string]string{
	"drizzle": {"drizzle-kit": "^0.30.0"},
	"prisma":  {"prisma": "^6.1.0"},
}

var authPackages = map[string]map[string]string{
	"better-auth": {"better-auth": "^1.1.0"},
	"clerk":       {"@clerk/nextjs": "^6.9.0"},
	"nextauth":    {"next-auth": "^5.0.0-beta.25"},
	"jwt":         {"jose": "^5.9.6"},
}

var searchPackages = map[string]map[string]string{
	"tavily": {"@tavily/core": "^0.0.2"},
	"exa":    {"exa-js": "^1.3.0"},
}

var memoryPackages = map[string]map[string]string{
	"mem0": {"mem0ai": "^2.1.0"},
	"zep":  {"@getzep/zep-cloud": "^1.0.0"},
}

var observabilityPackages = map[string]map[string]string{
	"langfuse":  {"langfuse": "^3.32.0"},
	"langsmith": {"langsmith": "^0.2.0"},
	"sentry":    {"@sentry/nextjs": "^8.47.0"},
}

var addonPackages = map[string]map[string]string{
	"redis":     {"ioredis": "^5.4.2"},
	"reranking": {"cohere-ai": "^7.15.0"},
}

var addonDevPackages = map[string]map[string]string{
	"testing": {"vitest": "^2.1.8", "@testing-library/react": "^16.1.0", "@vitejs/plugin-react": "^4.3.4", "jsdom": "^25.0.1"},
}

func merge(dst map[string]string, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// nextManifest builds the package.json of the Next.js app. In the split
// layout it only talks to the backend, so server-side SDKs are omitted.
func nextManifest(c *Context) Manifest {
	s := c.Stack
	name := c.ProjectName
	if c.IsSplit() {
		name = c.ProjectName + "-frontend"
	}

	m := Manifest{
		Name:    name,
		Version: "0.1.0",
		Private: true,
		Scripts: map[string]string{
			"dev":   "next dev --turbopack",
			"build": "next build",
			"start": "next start",
			"lint":  "next lint",
		},
		Dependencies: map[string]string{
			"next":           "^15.1.0",
			"react":          "^19.0.0",
			"react-dom":      "^19.0.0",
			"ai":             "^4.1.0",
			"clsx":           "^2.1.1",
			"tailwind-merge": "^2.6.0",
		},
		DevDependencies: map[string]string{
			"typescript":   "^5.7.2",
			"@types/node":  "^22.10.0",
			"@types/react": "^19.0.0",
			"tailwindcss":  "^3.4.17",
			"postcss":      "^8.4.49",
			"autoprefixer": "^10.4.20",
			"eslint":       "^9.17.0",
		},
	}

	if c.IsSplit() {
		if s.Auth == "clerk" {
			merge(m.Dependencies, authPackages["clerk"])
		}
		return m
	}

	merge(m.Dependencies, llmPackages[s.LLMProvider])
	merge(m.Dependencies, vectorPackages[s.VectorDB])
	if s.ORM != "prisma" {
		merge(m.Dependencies, databasePackages[s.Database])
	}
	merge(m.Dependencies, ormPackages[s.ORM])
	merge(m.DevDependencies, ormDevPackages[s.ORM])
	merge(m.Dependencies, authPackages[s.Auth])
	merge(m.Dependencies, searchPackages[s.Search])
	merge(m.Dependencies, memoryPackages[s.Memory])
	merge(m.Dependencies, observabilityPackages[s.Observability])
	for _, a := range s.ActiveAddons() {
		merge(m.Dependencies, addonPackages[a])
		merge(m.DevDependencies, addonDevPackages[a])
	}

	switch s.ORM {
	case "drizzle":
		m.Scripts["db:generate"] = "drizzle-kit generate"
		m.Scripts["db:migrate"] = "drizzle-kit migrate"
	case "prisma":
		m.Scripts["db:generate"] = "prisma generate"
		m.Scripts["db:migrate"] = "prisma migrate dev"
	}
	if s.HasAddon("testing") {
		m.Scripts["test"] = "vitest"
	}
	return m
}

// workspaceManifest is the root package.json of the split layout; for the
// full-stack layout it is the app manifest itself.
func workspaceManifest(c *Context) Manifest {
	if !c.IsSplit() {
		return c.Manifest
	}
	return Manifest{
		Name:       c.ProjectName,
		Version:    "0.1.0",
		Private:    true,
		Workspaces: []string{"frontend"},
		Scripts: map[string]string{
			"dev":   "turbo run dev",
			"build": "turbo run build",
			"lint":  "turbo run lint",
		},
		DevDependencies: map[string]string{
			"turbo": "^2.3.3",
		},
	}
}

var baseRequirements = []string{
	"fastapi>=0.115.6",
	"uvicorn[standard]>=0.34.0",
	"pydantic-settings>=2.7.0",
	"httpx>=0.28.1",
	"structlog>=24.4.0",
	"python-multipart>=0.0.20",
}

var llmRequirements = map[string][]string{
	"novita":    {"openai>=1.58.0"},
	"openai":    {"openai>=1.58.0"},
	"anthropic": {"anthropic>=0.40.0"},
	"gemini":    {"google-generativeai>=0.8.3"},
	"groq":      {"groq>=0.13.0"},
	"ollama":    {"ollama>=0.4.4"},
}

var vectorRequirements = map[string][]string{
	"pgvector": {"pgvector>=0.3.6"},
	"qdrant":   {"qdrant-client>=1.12.1"},
	"pinecone": {"pinecone>=5.4.2"},
	"weaviate": {"weaviate-client>=4.9.6"},
	"chroma":   {"chromadb>=0.5.23"},
}

var databaseRequirements = map[string][]string{
	"postgresql": {"asyncpg>=0.30.0"},
	"neon":       {"asyncpg>=0.30.0"},
	"supabase":   {"asyncpg>=0.30.0"},
	"mysql":      {"aiomysql>=0.2.0"},
	"sqlite":     {"aiosqlite>=0.20.0"},
	"mongodb":    {"motor>=3.6.0"},
}

var authRequirements = map[string][]string{
	"jwt":         {"python-jose[cryptography]>=3.3.0", "passlib[bcrypt]>=1.7.4"},
	"clerk":       {"clerk-backend-api>=1.5.0"},
	"better-auth": {"python-jose[cryptography]>=3.3.0"},
	"nextauth":    {"python-jose[cryptography]>=3.3.0"},
}

var searchRequirements = map[string][]string{
	"tavily": {"tavily-python>=0.5.0"},
	"exa":    {"exa-py>=1.7.0"},
}

var memoryRequirements = map[string][]string{
	"mem0": {"mem0ai>=0.1.40"},
	"zep":  {"zep-cloud>=1.0.0"},
}

var observabilityRequirements = map[string][]string{
	"langfuse":  {"langfuse>=2.57.0"},
	"langsmith": {"langsmith>=0.2.0"},
	"sentry":    {"sentry-sdk[fastapi]>=2.19.0"},
}

var addonRequirements = map[string][]string{
	"celery":    {"celery[redis]>=5.4.0"},
	"redis":     {"redis>=5.2.1"},
	"reranking": {"cohere>=5.13.0"},
	"testing":   {"pytest>=8.3.4", "pytest-asyncio>=0.25.0"},
}

// requirements lists the backend's Python dependencies, sorted and
// de-duplicated.
func requirements(s stack.State) []string {
	set := make(map[string]bool)
	add := func(pkgs []string) {
		for _, p := range pkgs {
			set[p] = true
		}
	}

	add(baseRequirements)
	add(llmRequirements[s.LLMProvider])
	add(vectorRequirements[s.VectorDB])
	add(databaseRequirements[s.Database])
	if s.ORM == "sqlalchemy" && s.Database != "none" && s.Database != "mongodb" {
		add([]string{"sqlalchemy[asyncio]>=2.0.36", "alembic>=1.14.0"})
	}
	add(authRequirements[s.Auth])
	add(searchRequirements[s.Search])
	add(memoryRequirements[s.Memory])
	add(observabilityRequirements[s.Observability])
	for _, a := range s.ActiveAddons() {
		add(addonRequirements[a])
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
