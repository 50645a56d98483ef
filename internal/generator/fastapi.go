package generator

func hasSQLAlchemy(c *Context) bool {
	return c.Stack.ORM == "sqlalchemy" && hasSQLDatabase(c)
}

// NewFastAPITemplate creates the split Python backend and Next.js frontend
// template.
func NewFastAPITemplate() *Template {
	return &Template{
		Name:        "fastapi-nextjs",
		Description: "FastAPI backend with a separate Next.js frontend",
		Files: []*File{
			{Path: "turbo.json", Body: turboBody},
			{Path: "backend/requirements.txt", Body: "{{join \"\\n\" .Requirements}}\n"},
			{Path: "backend/app/__init__.py", Body: "\"\"\"{{.ProjectName}} backend.\"\"\"\n"},
			{Path: "backend/app/main.py", Body: fastapiMainBody},
			{Path: "backend/app/api/__init__.py", Body: "\"\"\"HTTP routers.\"\"\"\n"},
			{Path: "backend/app/api/chat.py", Body: fastapiChatBody},
			{Path: "backend/app/core/__init__.py", Body: "\"\"\"Settings and shared clients.\"\"\"\n"},
			{Path: "backend/app/core/config.py", Body: fastapiConfigBody},
			{Path: "backend/app/core/llm.py", Body: fastapiLLMBody, When: whenNot(llm, "none")},
			{Path: "backend/app/core/database.py", Body: fastapiDatabaseBody, When: hasSQLAlchemy},
			{Path: "backend/app/models.py", Body: fastapiModelsBody, When: hasSQLAlchemy},
			{Path: "backend/app/worker.py", Body: fastapiWorkerBody, When: whenAddon("celery")},
			{Path: "backend/Dockerfile", Body: fastapiDockerfileBody},
			{Path: "frontend/package.json", Body: "{{json .Manifest}}\n"},
			{Path: "frontend/next.config.ts", Body: nextConfigBody},
			{Path: "frontend/tsconfig.json", Body: tsconfigBody},
			{Path: "frontend/tailwind.config.ts", Body: tailwindConfigBody},
			{Path: "frontend/postcss.config.mjs", Body: postcssConfigBody},
			{Path: "frontend/src/app/globals.css", Body: globalsCSSBody},
			{Path: "frontend/src/app/layout.tsx", Body: layoutBody},
			{Path: "frontend/src/app/page.tsx", Body: frontendPageBody},
		},
	}
}

const turboBody = `{
  "$schema": "https://turbo.build/schema.json",
  "tasks": {
    "build": {
      "dependsOn": ["^build"],
      "outputs": [".next/**", "!.next/cache/**"]
    },
    "dev": {
      "cache": false,
      "persistent": true
    },
    "lint": {}
  }
}
`

const fastapiMainBody = `from fastapi import FastAPI
from fastapi.middleware.cors import CORSMiddleware
{{- if eq .Stack.Observability "sentry"}}
import sentry_sdk
{{- end}}

from app.api.chat import router as chat_router
from app.core.config import settings
{{- if eq .Stack.Observability "sentry"}}

sentry_sdk.init(dsn=settings.SENTRY_DSN, traces_sample_rate=1.0)
{{- end}}

app = FastAPI(title={{quote .ProjectName}})

app.add_middleware(
    CORSMiddleware,
    allow_origins=[origin.strip() for origin in settings.CORS_ORIGINS.split(",")],
    allow_credentials=True,
    allow_methods=["*"],
    allow_headers=["*"],
)

app.include_router(chat_router, prefix="/api")


@app.get("/health")
async def health() -> dict[str, str]:
    return {"status": "ok"}
`

const fastapiChatBody = `from fastapi import APIRouter{{if eq .Stack.LLMProvider "none"}}, HTTPException{{end}}
from pydantic import BaseModel
{{- if ne .Stack.LLMProvider "none"}}

from app.core.llm import complete
{{- end}}

router = APIRouter()


class Message(BaseModel):
    role: str
    content: str


class ChatRequest(BaseModel):
    messages: list[Message]


class ChatResponse(BaseModel):
    content: str


@router.post("/chat", response_model=ChatResponse)
async def chat(request: ChatRequest) -> ChatResponse:
{{- if eq .Stack.LLMProvider "none"}}
    raise HTTPException(status_code=501, detail="No LLM provider configured")
{{- else}}
    content = await complete([m.model_dump() for m in request.messages])
    return ChatResponse(content=content)
{{- end}}
`

const fastapiConfigBody = `from functools import lru_cache

from pydantic_settings import BaseSettings, SettingsConfigDict


class Settings(BaseSettings):
    model_config = SettingsConfigDict(env_file=".env", extra="ignore")

    APP_NAME: str = {{quote .ProjectName}}
{{- range .Env}}
    {{.Key}}: str = {{quote .Value}}
{{- end}}


@lru_cache
def get_settings() -> Settings:
    return Settings()


settings = get_settings()
`

const fastapiLLMBody = `from app.core.config import settings
{{- if eq .Stack.LLMProvider "anthropic"}}
from anthropic import AsyncAnthropic

client = AsyncAnthropic(api_key=settings.ANTHROPIC_API_KEY)


async def complete(messages: list[dict[str, str]]) -> str:
    response = await client.messages.create(
        model="claude-3-5-sonnet-latest",
        max_tokens=1024,
        messages=messages,
    )
    return response.content[0].text
{{- else if eq .Stack.LLMProvider "gemini"}}
import google.generativeai as genai

genai.configure(api_key=settings.GOOGLE_API_KEY)
model = genai.GenerativeModel("gemini-1.5-pro")


async def complete(messages: list[dict[str, str]]) -> str:
    response = await model.generate_content_async(messages[-1]["content"])
    return response.text
{{- else if eq .Stack.LLMProvider "groq"}}
from groq import AsyncGroq

client = AsyncGroq(api_key=settings.GROQ_API_KEY)


async def complete(messages: list[dict[str, str]]) -> str:
    response = await client.chat.completions.create(
        model="llama-3.3-70b-versatile",
        messages=messages,
    )
    return response.choices[0].message.content or ""
{{- else if eq .Stack.LLMProvider "ollama"}}
from ollama import AsyncClient

client = AsyncClient(host=settings.OLLAMA_BASE_URL)


async def complete(messages: list[dict[str, str]]) -> str:
    response = await client.chat(model=settings.OLLAMA_MODEL, messages=messages)
    return response["message"]["content"]
{{- else}}
from openai import AsyncOpenAI
{{- if eq .Stack.LLMProvider "novita"}}

client = AsyncOpenAI(api_key=settings.NOVITA_API_KEY, base_url=settings.NOVITA_BASE_URL)
MODEL = "meta-llama/llama-3.1-8b-instruct"
{{- else}}

client = AsyncOpenAI(api_key=settings.OPENAI_API_KEY)
MODEL = "gpt-4o-mini"
{{- end}}


async def complete(messages: list[dict[str, str]]) -> str:
    response = await client.chat.completions.create(model=MODEL, messages=messages)
    return response.choices[0].message.content or ""
{{- end}}
`

const fastapiDatabaseBody = `from collections.abc import AsyncGenerator

from sqlalchemy.ext.asyncio import AsyncSession, async_sessionmaker, create_async_engine

from app.core.config import settings

engine = create_async_engine(settings.DATABASE_URL, pool_pre_ping=True)
SessionLocal = async_sessionmaker(engine, expire_on_commit=False)


async def get_session() -> AsyncGenerator[AsyncSession, None]:
    async with SessionLocal() as session:
        yield session
`

const fastapiModelsBody = `import uuid
from datetime import datetime

from sqlalchemy import ForeignKey, String, Text, func
from sqlalchemy.orm import DeclarativeBase, Mapped, mapped_column, relationship
{{- if eq .Stack.VectorDB "pgvector"}}
from pgvector.sqlalchemy import Vector
{{- end}}


def new_id() -> str:
    return str(uuid.uuid4())


class Base(DeclarativeBase):
    pass


class User(Base):
    __tablename__ = "users"

    id: Mapped[str] = mapped_column(String(36), primary_key=True, default=new_id)
    email: Mapped[str] = mapped_column(String(255), unique=True)
    name: Mapped[str | None] = mapped_column(String(255))
    created_at: Mapped[datetime] = mapped_column(server_default=func.now())

    conversations: Mapped[list["Conversation"]] = relationship(back_populates="user")


class Conversation(Base):
    __tablename__ = "conversations"

    id: Mapped[str] = mapped_column(String(36), primary_key=True, default=new_id)
    user_id: Mapped[str | None] = mapped_column(ForeignKey("users.id"))
    title: Mapped[str | None] = mapped_column(String(255))
    created_at: Mapped[datetime] = mapped_column(server_default=func.now())

    user: Mapped[User | None] = relationship(back_populates="conversations")
    messages: Mapped[list["Message"]] = relationship(back_populates="conversation")


class Message(Base):
    __tablename__ = "messages"

    id: Mapped[str] = mapped_column(String(36), primary_key=True, default=new_id)
    conversation_id: Mapped[str] = mapped_column(ForeignKey("conversations.id"))
    role: Mapped[str] = mapped_column(String(16))
    content: Mapped[str] = mapped_column(Text)
    created_at: Mapped[datetime] = mapped_column(server_default=func.now())

    conversation: Mapped[Conversation] = relationship(back_populates="messages")
{{- if eq .Stack.VectorDB "pgvector"}}


class Embedding(Base):
    __tablename__ = "embeddings"

    id: Mapped[str] = mapped_column(String(36), primary_key=True, default=new_id)
    content: Mapped[str] = mapped_column(Text)
    embedding = mapped_column(Vector(1536))
{{- end}}
`

const fastapiWorkerBody = `from celery import Celery

from app.core.config import settings

celery_app = Celery(
    {{quote .DBName}},
    broker=settings.CELERY_BROKER_URL,
    backend=settings.CELERY_RESULT_BACKEND,
)


@celery_app.task
def ingest_document(document_id: str) -> str:
    """Chunk, embed and index a document in the background."""
    return document_id
`

const fastapiDockerfileBody = `FROM python:3.12-slim

WORKDIR /app

COPY requirements.txt .
RUN pip install --no-cache-dir -r requirements.txt

COPY app ./app

EXPOSE 8000
CMD ["uvicorn", "app.main:app", "--host", "0.0.0.0", "--port", "8000"]
`

const frontendPageBody = `"use client";

import { useState } from "react";

type Message = { role: "user" | "assistant"; content: string };

const API_URL = process.env.NEXT_PUBLIC_API_URL ?? "http://localhost:8000";

export default function Home() {
  const [messages, setMessages] = useState<Message[]>([]);
  const [input, setInput] = useState("");

  async function send(e: React.FormEvent) {
    e.preventDefault();
    const next: Message[] = [...messages, { role: "user", content: input }];
    setMessages(next);
    setInput("");

    const res = await fetch(API_URL + "/api/chat", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ messages: next }),
    });
    const data = await res.json();
    setMessages([...next, { role: "assistant", content: data.content ?? data.detail }]);
  }

  return (
    <main className="mx-auto flex max-w-3xl flex-col gap-6 p-6">
      <h1 className="text-2xl font-semibold">{{.ProjectName}}</h1>
      <ul className="flex flex-col gap-2">
        {messages.map((m, i) => (
          <li key={i} className={m.role === "user" ? "self-end rounded bg-blue-100 px-3 py-2" : "rounded bg-gray-100 px-3 py-2"}>
            {m.content}
          </li>
        ))}
      </ul>
      <form onSubmit={send} className="flex gap-2">
        <input
          value={input}
          onChange={(e) => setInput(e.target.value)}
          placeholder="Ask something..."
          className="flex-1 rounded border px-3 py-2"
        />
        <button type="submit" className="rounded bg-black px-4 py-2 text-white">
          Send
        </button>
      </form>
    </main>
  );
}
`
