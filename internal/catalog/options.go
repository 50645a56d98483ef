package catalog

var options = map[Category][]Option{
	Architecture: {
		{ID: "nextjs-fullstack", Name: "Next.js Full-Stack", Description: "Single TypeScript codebase with API routes", Badge: BadgeFree, IsDefault: true},
		{ID: "fastapi-nextjs", Name: "FastAPI + Next.js", Description: "Python backend with a separate Next.js frontend", Badge: BadgeFree},
	},
	LLMProvider: {
		{ID: "novita", Name: "Novita AI", Description: "OpenAI-compatible gateway to open models", Badge: BadgeAPIKey, IsDefault: true},
		{ID: "openai", Name: "OpenAI", Description: "GPT models", Badge: BadgeAPIKey},
		{ID: "anthropic", Name: "Anthropic", Description: "Claude models", Badge: BadgeAPIKey},
		{ID: "gemini", Name: "Google Gemini", Description: "Gemini models", Badge: BadgeAPIKey},
		{ID: "groq", Name: "Groq", Description: "Low-latency inference", Badge: BadgeAPIKey},
		{ID: "ollama", Name: "Ollama", Description: "Run open models on your machine", Badge: BadgeLocal},
		{ID: None, Name: "None", Description: "No LLM provider"},
	},
	VectorDB: {
		{ID: "pgvector", Name: "pgvector", Description: "Vector search inside Postgres", Badge: BadgeFree, IsDefault: true},
		{ID: "qdrant", Name: "Qdrant", Description: "Dedicated vector database", Badge: BadgeCloud},
		{ID: "pinecone", Name: "Pinecone", Description: "Managed vector index", Badge: BadgeAPIKey},
		{ID: "weaviate", Name: "Weaviate", Description: "Vector database with hybrid search", Badge: BadgeCloud},
		{ID: "chroma", Name: "Chroma", Description: "Embedded vector store", Badge: BadgeLocal},
		{ID: None, Name: "None", Description: "No retrieval"},
	},
	Database: {
		{ID: "postgresql", Name: "PostgreSQL", Description: "Self-hosted Postgres", Badge: BadgeFree, IsDefault: true},
		{ID: "neon", Name: "Neon", Description: "Serverless Postgres", Badge: BadgeCloud},
		{ID: "supabase", Name: "Supabase", Description: "Postgres with batteries included", Badge: BadgeCloud},
		{ID: "mysql", Name: "MySQL", Description: "Relational database", Badge: BadgeFree},
		{ID: "sqlite", Name: "SQLite", Description: "File-backed database", Badge: BadgeLocal},
		{ID: "mongodb", Name: "MongoDB", Description: "Document database", Badge: BadgeCloud},
		{ID: None, Name: "None", Description: "No database"},
	},
	ORM: {
		{ID: "drizzle", Name: "Drizzle", Description: "TypeScript ORM with SQL-like queries", Badge: BadgeFree, IsDefault: true},
		{ID: "prisma", Name: "Prisma", Description: "Schema-first TypeScript ORM", Badge: BadgeFree},
		{ID: "sqlalchemy", Name: "SQLAlchemy", Description: "Python ORM for the FastAPI backend", Badge: BadgeFree},
		{ID: None, Name: "None", Description: "Raw queries"},
	},
	Auth: {
		{ID: "better-auth", Name: "Better Auth", Description: "Self-hosted TypeScript auth", Badge: BadgeFree, IsDefault: true},
		{ID: "clerk", Name: "Clerk", Description: "Hosted user management", Badge: BadgeAPIKey},
		{ID: "nextauth", Name: "NextAuth.js", Description: "OAuth providers for Next.js", Badge: BadgeFree},
		{ID: "jwt", Name: "JWT / OAuth2", Description: "Token auth for the Python backend", Badge: BadgeFree},
		{ID: None, Name: "None", Description: "No authentication"},
	},
	Search: {
		{ID: None, Name: "None", Description: "No web search", IsDefault: true},
		{ID: "tavily", Name: "Tavily", Description: "Search API built for agents", Badge: BadgeAPIKey},
		{ID: "exa", Name: "Exa", Description: "Neural web search", Badge: BadgeAPIKey},
		{ID: "serper", Name: "Serper", Description: "Google search results API", Badge: BadgeAPIKey},
	},
	Memory: {
		{ID: None, Name: "None", Description: "Stateless conversations", IsDefault: true},
		{ID: "mem0", Name: "Mem0", Description: "Long-term user memory", Badge: BadgeAPIKey},
		{ID: "zep", Name: "Zep", Description: "Conversation memory store", Badge: BadgeCloud},
	},
	Observability: {
		{ID: None, Name: "None", Description: "No tracing", IsDefault: true},
		{ID: "langfuse", Name: "Langfuse", Description: "Open-source LLM tracing", Badge: BadgeCloud},
		{ID: "langsmith", Name: "LangSmith", Description: "LangChain tracing platform", Badge: BadgeAPIKey},
		{ID: "helicone", Name: "Helicone", Description: "Proxy-based LLM observability", Badge: BadgeAPIKey},
		{ID: "sentry", Name: "Sentry", Description: "Error monitoring", Badge: BadgeCloud},
	},
	Addons: {
		{ID: "docker", Name: "Docker", Description: "Container build and compose file", Badge: BadgeFree},
		{ID: "kubernetes", Name: "Kubernetes", Description: "Deployment manifests", Badge: BadgeFree},
		{ID: "celery", Name: "Celery", Description: "Background workers for the Python backend", Badge: BadgeFree},
		{ID: "reranking", Name: "Reranking", Description: "Second-stage reranker for retrieval", Badge: BadgeAPIKey},
		{ID: "redis", Name: "Redis", Description: "Cache and rate limiting", Badge: BadgeFree},
		{ID: "github-actions", Name: "GitHub Actions", Description: "CI workflow", Badge: BadgeFree},
		{ID: "testing", Name: "Testing", Description: "Vitest setup", Badge: BadgeFree},
		{ID: None, Name: "None", Description: "No add-ons"},
	},
	PackageManager: {
		{ID: "pnpm", Name: "pnpm", Badge: BadgeFree, IsDefault: true},
		{ID: "npm", Name: "npm", Badge: BadgeFree},
		{ID: "yarn", Name: "Yarn", Badge: BadgeFree},
		{ID: "bun", Name: "Bun", Badge: BadgeFree},
	},
	Git: {
		{ID: "true", Name: "Initialize git", IsDefault: true},
		{ID: "false", Name: "Skip git"},
	},
	Install: {
		{ID: "true", Name: "Install dependencies", IsDefault: true},
		{ID: "false", Name: "Skip install"},
	},
}
