package generator

func hasDatabase(c *Context) bool { return c.Stack.Database != "none" }

func hasSQLDatabase(c *Context) bool {
	return hasDatabase(c) && c.Stack.Database != "mongodb"
}

// NewNextjsTemplate creates the single-codebase Next.js template.
func NewNextjsTemplate() *Template {
	return &Template{
		Name:        "nextjs-fullstack",
		Description: "Next.js app with API routes and server-side AI calls",
		Files: []*File{
			{Path: "next.config.ts", Body: nextConfigBody},
			{Path: "tailwind.config.ts", Body: tailwindConfigBody},
			{Path: "postcss.config.mjs", Body: postcssConfigBody},
			{Path: "tsconfig.json", Body: tsconfigBody},
			{Path: "src/app/globals.css", Body: globalsCSSBody},
			{Path: "src/app/layout.tsx", Body: layoutBody},
			{Path: "src/app/page.tsx", Body: pageBody},
			{Path: "src/app/api/chat/route.ts", Body: chatRouteBody},
			{Path: "src/components/chat.tsx", Body: chatComponentBody},
			{Path: "src/lib/utils.ts", Body: utilsBody},
			{Path: "src/lib/db/schema.ts", Body: dbSchemaBody, When: hasDatabase},
			{Path: "src/lib/db/index.ts", Body: dbClientBody, When: hasDatabase},
			{
				Path: "drizzle.config.ts",
				Body: drizzleConfigBody,
				When: whenAll(whenIs(orm, "drizzle"), hasSQLDatabase),
			},
			{
				Path: "prisma/schema.prisma",
				Body: prismaSchemaBody,
				When: whenAll(whenIs(orm, "prisma"), hasDatabase),
			},
			{Path: "src/lib/ai/provider.ts", Body: providerBody, When: whenNot(llm, "none")},
			{Path: "src/lib/auth.ts", Body: authBody, When: whenNot(auth, "none")},
			{Path: "src/lib/vector/store.ts", Body: vectorStoreBody, When: whenNot(vectorDB, "none")},
			{
				Path: "src/lib/vector/embed.ts",
				Body: embedBody,
				When: whenAll(whenNot(vectorDB, "none"), whenNot(vectorDB, "weaviate")),
			},
			{
				Path: "src/lib/vector/rerank.ts",
				Body: rerankBody,
				When: whenAll(whenNot(vectorDB, "none"), whenAddon("reranking")),
			},
			{Path: "src/lib/search.ts", Body: searchBody, When: whenNot(search, "none")},
			{Path: "src/lib/memory.ts", Body: memoryBody, When: whenNot(memory, "none")},
			{Path: "src/lib/observability.ts", Body: observabilityBody, When: whenNot(observability, "none")},
		},
	}
}

const nextConfigBody = `import type { NextConfig } from "next";

const nextConfig: NextConfig = {
{{- if and (not .IsSplit) (eq .Stack.Database "sqlite")}}
  serverExternalPackages: ["better-sqlite3"],
{{- end}}
};

export default nextConfig;
`

const tailwindConfigBody = `import type { Config } from "tailwindcss";

export default {
  content: ["./src/**/*.{ts,tsx}"],
  theme: {
    extend: {},
  },
  plugins: [],
} satisfies Config;
`

const postcssConfigBody = `export default {
  plugins: {
    tailwindcss: {},
    autoprefixer: {},
  },
};
`

const tsconfigBody = `{
  "compilerOptions": {
    "target": "ES2022",
    "lib": ["dom", "dom.iterable", "esnext"],
    "strict": true,
    "noEmit": true,
    "module": "esnext",
    "moduleResolution": "bundler",
    "resolveJsonModule": true,
    "isolatedModules": true,
    "jsx": "preserve",
    "incremental": true,
    "plugins": [{ "name": "next" }],
    "paths": { "@/*": ["./src/*"] }
  },
  "include": ["next-env.d.ts", "**/*.ts", "**/*.tsx"],
  "exclude": ["node_modules"]
}
`

const globalsCSSBody = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

const layoutBody = `import type { Metadata } from "next";
{{- if eq .Stack.Auth "clerk"}}
import { ClerkProvider } from "@clerk/nextjs";
{{- end}}
import "./globals.css";

export const metadata: Metadata = {
  title: {{quote .ProjectName}},
  description: "AI app built with {{.Label "llmProvider"}}",
};

export default function RootLayout({ children }: { children: React.ReactNode }) {
  return (
{{- if eq .Stack.Auth "clerk"}}
    <ClerkProvider>
      <html lang="en">
        <body className="min-h-screen bg-white antialiased">{children}</body>
      </html>
    </ClerkProvider>
{{- else}}
    <html lang="en">
      <body className="min-h-screen bg-white antialiased">{children}</body>
    </html>
{{- end}}
  );
}
`

const pageBody = `import { Chat } from "@/components/chat";

export default function Home() {
  return (
    <main className="mx-auto flex max-w-3xl flex-col gap-6 p-6">
      <h1 className="text-2xl font-semibold">{{.ProjectName}}</h1>
      <Chat />
    </main>
  );
}
`

const chatRouteBody = `import { streamText } from "ai";
{{- if ne .Stack.LLMProvider "none"}}
import { model } from "@/lib/ai/provider";
{{- end}}
{{- if ne .Stack.VectorDB "none"}}
import { retrieve } from "@/lib/vector/store";
{{- end}}
{{- if ne .Stack.Search "none"}}
import { webSearch } from "@/lib/search";
{{- end}}
{{- if ne .Stack.Memory "none"}}
import { recall, remember } from "@/lib/memory";
{{- end}}
{{- if ne .Stack.Observability "none"}}
import { trace } from "@/lib/observability";
{{- end}}

export const maxDuration = 30;

export async function POST(req: Request) {
  const { messages, userId = "anonymous" } = await req.json();
{{- if eq .Stack.LLMProvider "none"}}
  void streamText;
  void userId;
  return Response.json({ error: "No LLM provider configured", messages: messages.length }, { status: 501 });
{{- else}}
  const question: string = messages[messages.length - 1]?.content ?? "";
  const context: string[] = [];
{{- if ne .Stack.VectorDB "none"}}
  context.push(...(await retrieve(question)));
{{- end}}
{{- if ne .Stack.Search "none"}}
  context.push(...(await webSearch(question)));
{{- end}}
{{- if ne .Stack.Memory "none"}}
  context.push(...(await recall(userId, question)));
{{- end}}

  const system = context.length
    ? "Answer using the following context:\n" + context.join("\n---\n")
    : "You are a helpful assistant.";

  const result = streamText({
    model,
    system,
    messages,
{{- if ne .Stack.Observability "none"}}
    experimental_telemetry: trace("chat"),
{{- end}}
{{- if ne .Stack.Memory "none"}}
    onFinish: ({ text }) => remember(userId, question, text),
{{- end}}
  });

  return result.toDataStreamResponse();
{{- end}}
}
`

const chatComponentBody = `"use client";

import { useChat } from "ai/react";
import { cn } from "@/lib/utils";

export function Chat() {
  const { messages, input, handleInputChange, handleSubmit, isLoading } = useChat();

  return (
    <div className="flex flex-col gap-4">
      <ul className="flex flex-col gap-2">
        {messages.map((m) => (
          <li
            key={m.id}
            className={cn("rounded-lg px-3 py-2", m.role === "user" ? "self-end bg-blue-100" : "bg-gray-100")}
          >
            {m.content}
          </li>
        ))}
      </ul>
      <form onSubmit={handleSubmit} className="flex gap-2">
        <input
          value={input}
          onChange={handleInputChange}
          placeholder="Ask something..."
          className="flex-1 rounded border px-3 py-2"
        />
        <button type="submit" disabled={isLoading} className="rounded bg-black px-4 py-2 text-white">
          Send
        </button>
      </form>
    </div>
  );
}
`

const utilsBody = `import { clsx, type ClassValue } from "clsx";
import { twMerge } from "tailwind-merge";

export function cn(...inputs: ClassValue[]) {
  return twMerge(clsx(inputs));
}
`

const dbSchemaBody = `{{- if eq .Stack.ORM "prisma" -}}
// Tables are defined in prisma/schema.prisma; this module re-exports the
// generated types.
export type { User, Conversation, Message } from "@prisma/client";
{{- else if and (eq .Stack.ORM "drizzle") (ne .Stack.Database "mongodb") -}}
{{- if .IsPostgres -}}
import { pgTable, text, timestamp, uuid } from "drizzle-orm/pg-core";

export const users = pgTable("users", {
  id: uuid("id").primaryKey().defaultRandom(),
  email: text("email").notNull().unique(),
  name: text("name"),
  createdAt: timestamp("created_at").defaultNow().notNull(),
});

export const conversations = pgTable("conversations", {
  id: uuid("id").primaryKey().defaultRandom(),
  userId: uuid("user_id").references(() => users.id),
  title: text("title"),
  createdAt: timestamp("created_at").defaultNow().notNull(),
});

export const messages = pgTable("messages", {
  id: uuid("id").primaryKey().defaultRandom(),
  conversationId: uuid("conversation_id").references(() => conversations.id).notNull(),
  role: text("role").notNull(),
  content: text("content").notNull(),
  createdAt: timestamp("created_at").defaultNow().notNull(),
});
{{- else if eq .Stack.Database "mysql" -}}
import { mysqlTable, text, timestamp, varchar } from "drizzle-orm/mysql-core";

export const users = mysqlTable("users", {
  id: varchar("id", { length: 36 }).primaryKey(),
  email: varchar("email", { length: 255 }).notNull().unique(),
  name: text("name"),
  createdAt: timestamp("created_at").defaultNow().notNull(),
});

export const conversations = mysqlTable("conversations", {
  id: varchar("id", { length: 36 }).primaryKey(),
  userId: varchar("user_id", { length: 36 }).references(() => users.id),
  title: text("title"),
  createdAt: timestamp("created_at").defaultNow().notNull(),
});

export const messages = mysqlTable("messages", {
  id: varchar("id", { length: 36 }).primaryKey(),
  conversationId: varchar("conversation_id", { length: 36 }).references(() => conversations.id).notNull(),
  role: varchar("role", { length: 16 }).notNull(),
  content: text("content").notNull(),
  createdAt: timestamp("created_at").defaultNow().notNull(),
});
{{- else -}}
import { integer, sqliteTable, text } from "drizzle-orm/sqlite-core";

export const users = sqliteTable("users", {
  id: text("id").primaryKey(),
  email: text("email").notNull().unique(),
  name: text("name"),
  createdAt: integer("created_at", { mode: "timestamp" }).notNull(),
});

export const conversations = sqliteTable("conversations", {
  id: text("id").primaryKey(),
  userId: text("user_id").references(() => users.id),
  title: text("title"),
  createdAt: integer("created_at", { mode: "timestamp" }).notNull(),
});

export const messages = sqliteTable("messages", {
  id: text("id").primaryKey(),
  conversationId: text("conversation_id").references(() => conversations.id).notNull(),
  role: text("role").notNull(),
  content: text("content").notNull(),
  createdAt: integer("created_at", { mode: "timestamp" }).notNull(),
});
{{- end}}
{{- else -}}
// Row shapes for the {{.Label "database"}} collections.
export interface User {
  id: string;
  email: string;
  name?: string;
  createdAt: Date;
}

export interface Conversation {
  id: string;
  userId?: string;
  title?: string;
  createdAt: Date;
}

export interface Message {
  id: string;
  conversationId: string;
  role: "user" | "assistant" | "system";
  content: string;
  createdAt: Date;
}
{{- end}}
`

const dbClientBody = `{{- if eq .Stack.ORM "prisma" -}}
import { PrismaClient } from "@prisma/client";

const globalForPrisma = globalThis as unknown as { prisma?: PrismaClient };

export const db = globalForPrisma.prisma ?? new PrismaClient();

if (process.env.NODE_ENV !== "production") globalForPrisma.prisma = db;
{{- else if eq .Stack.Database "mongodb" -}}
import { MongoClient } from "mongodb";

const client = new MongoClient(process.env.DATABASE_URL!);

export const db = client.db({{quote .DBName}});
{{- else if eq .Stack.Database "neon" -}}
import { neon } from "@neondatabase/serverless";
{{- if eq .Stack.ORM "drizzle"}}
import { drizzle } from "drizzle-orm/neon-http";
import * as schema from "./schema";

export const db = drizzle(neon(process.env.DATABASE_URL!), { schema });
{{- else}}

export const sql = neon(process.env.DATABASE_URL!);
{{- end}}
{{- else if .IsPostgres -}}
import postgres from "postgres";
{{- if eq .Stack.ORM "drizzle"}}
import { drizzle } from "drizzle-orm/postgres-js";
import * as schema from "./schema";

export const db = drizzle(postgres(process.env.DATABASE_URL!), { schema });
{{- else}}

export const sql = postgres(process.env.DATABASE_URL!);
{{- end}}
{{- else if eq .Stack.Database "mysql" -}}
import mysql from "mysql2/promise";
{{- if eq .Stack.ORM "drizzle"}}
import { drizzle } from "drizzle-orm/mysql2";
import * as schema from "./schema";

export const db = drizzle(mysql.createPool(process.env.DATABASE_URL!), { schema, mode: "default" });
{{- else}}

export const pool = mysql.createPool(process.env.DATABASE_URL!);
{{- end}}
{{- else -}}
import Database from "better-sqlite3";
{{- if eq .Stack.ORM "drizzle"}}
import { drizzle } from "drizzle-orm/better-sqlite3";
import * as schema from "./schema";

export const db = drizzle(new Database((process.env.DATABASE_URL ?? "file:./local.db").replace("file:", "")), { schema });
{{- else}}

export const sqlite = new Database((process.env.DATABASE_URL ?? "file:./local.db").replace("file:", ""));
{{- end}}
{{- end}}
`

const drizzleConfigBody = `import { defineConfig } from "drizzle-kit";

export default defineConfig({
  schema: "./src/lib/db/schema.ts",
  out: "./drizzle",
{{- if .IsPostgres}}
  dialect: "postgresql",
{{- else if eq .Stack.Database "mysql"}}
  dialect: "mysql",
{{- else}}
  dialect: "sqlite",
{{- end}}
  dbCredentials: {
    url: process.env.DATABASE_URL!,
  },
});
`

const prismaSchemaBody = `generator client {
  provider = "prisma-client-js"
}

datasource db {
{{- if .IsPostgres}}
  provider = "postgresql"
{{- else}}
  provider = {{quote .Stack.Database}}
{{- end}}
  url      = env("DATABASE_URL")
}

model User {
{{- if eq .Stack.Database "mongodb"}}
  id            String         @id @default(auto()) @map("_id") @db.ObjectId
{{- else}}
  id            String         @id @default(uuid())
{{- end}}
  email         String         @unique
  name          String?
  conversations Conversation[]
  createdAt     DateTime       @default(now())
}

model Conversation {
{{- if eq .Stack.Database "mongodb"}}
  id        String    @id @default(auto()) @map("_id") @db.ObjectId
  userId    String?   @db.ObjectId
{{- else}}
  id        String    @id @default(uuid())
  userId    String?
{{- end}}
  user      User?     @relation(fields: [userId], references: [id])
  title     String?
  messages  Message[]
  createdAt DateTime  @default(now())
}

model Message {
{{- if eq .Stack.Database "mongodb"}}
  id             String       @id @default(auto()) @map("_id") @db.ObjectId
  conversationId String       @db.ObjectId
{{- else}}
  id             String       @id @default(uuid())
  conversationId String
{{- end}}
  conversation   Conversation @relation(fields: [conversationId], references: [id])
  role           String
  content        String
  createdAt      DateTime     @default(now())
}
`
