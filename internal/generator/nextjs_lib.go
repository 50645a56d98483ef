package generator

const providerBody = `{{- if eq .Stack.LLMProvider "anthropic" -}}
import { anthropic } from "@ai-sdk/anthropic";

export const model = anthropic("claude-3-5-sonnet-latest");
{{- else if eq .Stack.LLMProvider "gemini" -}}
import { google } from "@ai-sdk/google";

export const model = google("gemini-1.5-pro");
{{- else if eq .Stack.LLMProvider "groq" -}}
import { groq } from "@ai-sdk/groq";

export const model = groq("llama-3.3-70b-versatile");
{{- else if eq .Stack.LLMProvider "ollama" -}}
import { createOllama } from "ollama-ai-provider";

const ollama = createOllama({
  baseURL: (process.env.OLLAMA_BASE_URL ?? "http://localhost:11434") + "/api",
});

export const model = ollama(process.env.OLLAMA_MODEL ?? "llama3.2");
{{- else if eq .Stack.LLMProvider "novita" -}}
import { createOpenAI } from "@ai-sdk/openai";

const novita = createOpenAI({
  apiKey: process.env.NOVITA_API_KEY,
  baseURL: process.env.NOVITA_BASE_URL ?? "https://api.novita.ai/v3/openai",
});

export const model = novita("meta-llama/llama-3.1-8b-instruct");
{{- else -}}
import { openai } from "@ai-sdk/openai";

export const model = openai("gpt-4o-mini");
{{- end}}
`

const authBody = `{{- if eq .Stack.Auth "better-auth" -}}
import { betterAuth } from "better-auth";
{{- if and (eq .Stack.ORM "drizzle") (ne .Stack.Database "none") (ne .Stack.Database "mongodb")}}
import { drizzleAdapter } from "better-auth/adapters/drizzle";
import { db } from "@/lib/db";
{{- else if and (eq .Stack.ORM "prisma") (ne .Stack.Database "none")}}
import { prismaAdapter } from "better-auth/adapters/prisma";
import { db } from "@/lib/db";
{{- end}}

export const auth = betterAuth({
  secret: process.env.BETTER_AUTH_SECRET,
  baseURL: process.env.BETTER_AUTH_URL,
{{- if and (eq .Stack.ORM "drizzle") (ne .Stack.Database "none") (ne .Stack.Database "mongodb")}}
  database: drizzleAdapter(db, { provider: {{if .IsPostgres}}"pg"{{else if eq .Stack.Database "mysql"}}"mysql"{{else}}"sqlite"{{end}} }),
{{- else if and (eq .Stack.ORM "prisma") (ne .Stack.Database "none")}}
  database: prismaAdapter(db, { provider: {{if .IsPostgres}}"postgresql"{{else}}{{quote .Stack.Database}}{{end}} }),
{{- end}}
  emailAndPassword: { enabled: true },
});
{{- else if eq .Stack.Auth "clerk" -}}
import { auth, currentUser } from "@clerk/nextjs/server";

export async function requireUser() {
  const { userId } = await auth();
  if (!userId) throw new Error("Unauthorized");
  return currentUser();
}
{{- else if eq .Stack.Auth "nextauth" -}}
import NextAuth from "next-auth";
import GitHub from "next-auth/providers/github";

export const { handlers, auth, signIn, signOut } = NextAuth({
  secret: process.env.AUTH_SECRET,
  providers: [GitHub],
});
{{- else -}}
import { jwtVerify, SignJWT } from "jose";

const secret = new TextEncoder().encode(process.env.JWT_SECRET_KEY);
const alg = process.env.JWT_ALGORITHM ?? "HS256";

export async function signToken(sub: string) {
  return new SignJWT({ sub })
    .setProtectedHeader({ alg })
    .setIssuedAt()
    .setExpirationTime(Number(process.env.JWT_ACCESS_TOKEN_EXPIRE_MINUTES ?? 30) + "m")
    .sign(secret);
}

export async function verifyToken(token: string) {
  const { payload } = await jwtVerify(token, secret);
  return payload;
}
{{- end}}
`

const vectorStoreBody = `{{- if eq .Stack.VectorDB "pgvector" -}}
import postgres from "postgres";
import { toSql } from "pgvector";
import { embed } from "./embed";

const sql = postgres(process.env.DATABASE_URL!);
const table = process.env.PGVECTOR_COLLECTION_NAME ?? "embeddings";

export async function retrieve(query: string, k = 5): Promise<string[]> {
  const vector = toSql(await embed(query));
  const rows = await sql.unsafe(
    "SELECT content FROM " + table + " ORDER BY embedding <=> $1 LIMIT $2",
    [vector, k],
  );
  return rows.map((r) => r.content as string);
}
{{- else if eq .Stack.VectorDB "qdrant" -}}
import { QdrantClient } from "@qdrant/js-client-rest";
import { embed } from "./embed";

const client = new QdrantClient({
  url: process.env.QDRANT_URL,
  apiKey: process.env.QDRANT_API_KEY || undefined,
});

export async function retrieve(query: string, k = 5): Promise<string[]> {
  const hits = await client.search("documents", { vector: await embed(query), limit: k });
  return hits.map((h) => String(h.payload?.content ?? ""));
}
{{- else if eq .Stack.VectorDB "pinecone" -}}
import { Pinecone } from "@pinecone-database/pinecone";
import { embed } from "./embed";

const index = new Pinecone({ apiKey: process.env.PINECONE_API_KEY! }).index(process.env.PINECONE_INDEX!);

export async function retrieve(query: string, k = 5): Promise<string[]> {
  const res = await index.query({ vector: await embed(query), topK: k, includeMetadata: true });
  return res.matches.map((m) => String(m.metadata?.content ?? ""));
}
{{- else if eq .Stack.VectorDB "weaviate" -}}
import weaviate from "weaviate-client";

export async function retrieve(query: string, k = 5): Promise<string[]> {
  const client = await weaviate.connectToWeaviateCloud(process.env.WEAVIATE_URL!, {
    authCredentials: new weaviate.ApiKey(process.env.WEAVIATE_API_KEY ?? ""),
  });
  const res = await client.collections.get("Document").query.nearText(query, { limit: k });
  return res.objects.map((o) => String(o.properties.content ?? ""));
}
{{- else -}}
import { ChromaClient } from "chromadb";
import { embed } from "./embed";

const client = new ChromaClient({ path: process.env.CHROMA_URL });

export async function retrieve(query: string, k = 5): Promise<string[]> {
  const collection = await client.getOrCreateCollection({ name: "documents" });
  const res = await collection.query({ queryEmbeddings: [await embed(query)], nResults: k });
  return (res.documents[0] ?? []).filter((d): d is string => d !== null);
}
{{- end}}
{{- if .Has "reranking"}}

export { rerank } from "./rerank";
{{- end}}
`

const searchBody = `{{- if eq .Stack.Search "tavily" -}}
import { tavily } from "@tavily/core";

const client = tavily({ apiKey: process.env.TAVILY_API_KEY });

export async function webSearch(query: string): Promise<string[]> {
  const res = await client.search(query, { maxResults: 5 });
  return res.results.map((r) => r.title + ": " + r.content);
}
{{- else if eq .Stack.Search "exa" -}}
import Exa from "exa-js";

const exa = new Exa(process.env.EXA_API_KEY);

export async function webSearch(query: string): Promise<string[]> {
  const res = await exa.searchAndContents(query, { numResults: 5, text: true });
  return res.results.map((r) => (r.title ?? "") + ": " + (r.text ?? ""));
}
{{- else -}}
export async function webSearch(query: string): Promise<string[]> {
  const res = await fetch("https://google.serper.dev/search", {
    method: "POST",
    headers: {
      "X-API-KEY": process.env.SERPER_API_KEY ?? "",
      "Content-Type": "application/json",
    },
    body: JSON.stringify({ q: query }),
  });
  const data = await res.json();
  return (data.organic ?? []).slice(0, 5).map((r: { title: string; snippet: string }) => r.title + ": " + r.snippet);
}
{{- end}}
`

const memoryBody = `{{- if eq .Stack.Memory "mem0" -}}
import MemoryClient from "mem0ai";

const client = new MemoryClient({ apiKey: process.env.MEM0_API_KEY! });

export async function recall(userId: string, query: string): Promise<string[]> {
  const memories = await client.search(query, { user_id: userId });
  return memories.map((m) => m.memory ?? "");
}

export async function remember(userId: string, question: string, answer: string) {
  await client.add(
    [
      { role: "user", content: question },
      { role: "assistant", content: answer },
    ],
    { user_id: userId },
  );
}
{{- else -}}
import { ZepClient } from "@getzep/zep-cloud";

const zep = new ZepClient({ apiKey: process.env.ZEP_API_KEY! });

export async function recall(userId: string, _query: string): Promise<string[]> {
  const memory = await zep.memory.get(userId);
  return memory.context ? [memory.context] : [];
}

export async function remember(userId: string, question: string, answer: string) {
  await zep.memory.add(userId, {
    messages: [
      { roleType: "user", content: question },
      { roleType: "assistant", content: answer },
    ],
  });
}
{{- end}}
`

const observabilityBody = `{{- if eq .Stack.Observability "langfuse" -}}
import { Langfuse } from "langfuse";

export const langfuse = new Langfuse({
  publicKey: process.env.LANGFUSE_PUBLIC_KEY,
  secretKey: process.env.LANGFUSE_SECRET_KEY,
  baseUrl: process.env.LANGFUSE_HOST,
});
{{- else if eq .Stack.Observability "langsmith" -}}
import { Client } from "langsmith";

export const langsmith = new Client({ apiKey: process.env.LANGSMITH_API_KEY });
{{- else if eq .Stack.Observability "sentry" -}}
import * as Sentry from "@sentry/nextjs";

Sentry.init({ dsn: process.env.SENTRY_DSN, tracesSampleRate: 1.0 });
{{- else -}}
// Helicone proxies provider traffic; point the SDK base URL at
// https://oai.helicone.ai/v1 and send this header with every request.
export const heliconeHeaders = {
  "Helicone-Auth": "Bearer " + (process.env.HELICONE_API_KEY ?? ""),
};
{{- end}}

export function trace(functionId: string) {
  return { isEnabled: true, functionId };
}
`

const embedBody = `{{- if eq .Stack.LLMProvider "ollama" -}}
import { embed as embedText } from "ai";
import { createOllama } from "ollama-ai-provider";

const ollama = createOllama({
  baseURL: (process.env.OLLAMA_BASE_URL ?? "http://localhost:11434") + "/api",
});

export async function embed(text: string): Promise<number[]> {
  const { embedding } = await embedText({ model: ollama.embedding("nomic-embed-text"), value: text });
  return embedding;
}
{{- else -}}
export async function embed(text: string): Promise<number[]> {
  const res = await fetch("https://api.openai.com/v1/embeddings", {
    method: "POST",
    headers: {
      Authorization: "Bearer " + process.env.OPENAI_API_KEY,
      "Content-Type": "application/json",
    },
    body: JSON.stringify({ model: "text-embedding-3-small", input: text }),
  });
  const data = await res.json();
  return data.data[0].embedding;
}
{{- end}}
`

const rerankBody = `import { CohereClient } from "cohere-ai";

const cohere = new CohereClient({ token: process.env.COHERE_API_KEY });

export async function rerank(query: string, documents: string[], topN = 3): Promise<string[]> {
  const res = await cohere.rerank({ model: "rerank-english-v3.0", query, documents, topN });
  return res.results.map((r) => documents[r.index]);
}
`
