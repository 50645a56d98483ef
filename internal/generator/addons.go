package generator

func isFullstack(c *Context) bool { return !c.IsSplit() }

// NewAddonsTemplate holds the files contributed by add-ons.
func NewAddonsTemplate() *Template {
	return &Template{
		Name:        AddonsTemplate,
		Description: "Deployment, CI and testing add-ons",
		Files: []*File{
			{Path: "Dockerfile", Body: nextDockerfileBody, When: whenAll(whenAddon("docker"), isFullstack)},
			{Path: "docker-compose.yml", Body: composeBody, When: whenAddon("docker")},
			{Path: ".dockerignore", Body: dockerignoreBody, When: whenAddon("docker")},
			{Path: "k8s/deployment.yaml", Body: k8sDeploymentBody, When: whenAddon("kubernetes")},
			{Path: "k8s/service.yaml", Body: k8sServiceBody, When: whenAddon("kubernetes")},
			{Path: ".github/workflows/ci.yml", Body: ciBody, When: whenAddon("github-actions")},
			{Path: "vitest.config.ts", Body: vitestConfigBody, When: whenAll(whenAddon("testing"), isFullstack)},
			{Path: "src/lib/utils.test.ts", Body: utilsTestBody, When: whenAll(whenAddon("testing"), isFullstack)},
			{Path: "backend/tests/test_health.py", Body: pytestHealthBody, When: whenAll(whenAddon("testing"), (*Context).IsSplit)},
		},
	}
}

const nextDockerfileBody = `FROM node:22-alpine AS deps
WORKDIR /app
COPY package.json ./
RUN {{.Install}}

FROM node:22-alpine AS build
WORKDIR /app
COPY --from=deps /app/node_modules ./node_modules
COPY . .
RUN {{.Run "build"}}

FROM node:22-alpine
WORKDIR /app
ENV NODE_ENV=production
COPY --from=build /app ./
EXPOSE 3000
CMD ["npm", "run", "start"]
`

const dockerignoreBody = `node_modules
.next
.env
{{- if .IsSplit}}
**/__pycache__
backend/.venv
{{- end}}
`

const composeBody = `services:
{{- if .IsSplit}}
  backend:
    build: ./backend
    env_file: .env
    ports:
      - "8000:8000"
{{- template "depends" .}}
{{- if .Has "celery"}}
  worker:
    build: ./backend
    command: celery -A app.worker.celery_app worker --loglevel=info
    env_file: .env
{{- template "depends" .}}
{{- end}}
{{- else}}
  app:
    build: .
    env_file: .env
    ports:
      - "3000:3000"
{{- template "depends" .}}
{{- end}}
{{- if or (eq .Stack.Database "postgresql") (eq .Stack.VectorDB "pgvector")}}
  postgres:
    image: {{if eq .Stack.VectorDB "pgvector"}}pgvector/pgvector:pg16{{else}}postgres:16-alpine{{end}}
    environment:
      POSTGRES_USER: postgres
      POSTGRES_PASSWORD: postgres
      POSTGRES_DB: {{.DBName}}
    ports:
      - "5432:5432"
    volumes:
      - postgres-data:/var/lib/postgresql/data
{{- end}}
{{- if eq .Stack.Database "mysql"}}
  mysql:
    image: mysql:8
    environment:
      MYSQL_ROOT_PASSWORD: password
      MYSQL_DATABASE: {{.DBName}}
    ports:
      - "3306:3306"
{{- end}}
{{- if eq .Stack.Database "mongodb"}}
  mongodb:
    image: mongo:7
    ports:
      - "27017:27017"
{{- end}}
{{- if eq .Stack.VectorDB "qdrant"}}
  qdrant:
    image: qdrant/qdrant:latest
    ports:
      - "6333:6333"
{{- end}}
{{- if eq .Stack.VectorDB "weaviate"}}
  weaviate:
    image: cr.weaviate.io/semitechnologies/weaviate:1.28.0
    ports:
      - "8080:8080"
{{- end}}
{{- if eq .Stack.VectorDB "chroma"}}
  chroma:
    image: chromadb/chroma:latest
    ports:
      - "8001:8000"
{{- end}}
{{- if or (.Has "redis") (.Has "celery")}}
  redis:
    image: redis:7-alpine
    ports:
      - "6379:6379"
{{- end}}
{{- if eq .Stack.LLMProvider "ollama"}}
  ollama:
    image: ollama/ollama:latest
    ports:
      - "11434:11434"
    volumes:
      - ollama-data:/root/.ollama
{{- end}}
{{- if or (or (eq .Stack.Database "postgresql") (eq .Stack.VectorDB "pgvector")) (eq .Stack.LLMProvider "ollama")}}

volumes:
{{- if or (eq .Stack.Database "postgresql") (eq .Stack.VectorDB "pgvector")}}
  postgres-data:
{{- end}}
{{- if eq .Stack.LLMProvider "ollama"}}
  ollama-data:
{{- end}}
{{- end}}
{{define "depends"}}
{{- $deps := .DependsOn}}
{{- if $deps}}
    depends_on:
{{- range $deps}}
      - {{.}}
{{- end}}
{{- end}}
{{- end}}
`

const k8sDeploymentBody = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: {{.ProjectName}}
  labels:
    app: {{.ProjectName}}
spec:
  replicas: 2
  selector:
    matchLabels:
      app: {{.ProjectName}}
  template:
    metadata:
      labels:
        app: {{.ProjectName}}
    spec:
      containers:
        - name: {{if .IsSplit}}backend{{else}}app{{end}}
          image: {{.ProjectName}}:latest
          ports:
            - containerPort: {{if .IsSplit}}8000{{else}}3000{{end}}
          envFrom:
            - secretRef:
                name: {{.ProjectName}}-env
          readinessProbe:
            httpGet:
              path: {{if .IsSplit}}/health{{else}}/{{end}}
              port: {{if .IsSplit}}8000{{else}}3000{{end}}
`

const k8sServiceBody = `apiVersion: v1
kind: Service
metadata:
  name: {{.ProjectName}}
spec:
  selector:
    app: {{.ProjectName}}
  ports:
    - port: 80
      targetPort: {{if .IsSplit}}8000{{else}}3000{{end}}
`

const ciBody = `name: CI

on:
  push:
    branches: [main]
  pull_request:

jobs:
{{- if .IsSplit}}
  backend:
    runs-on: ubuntu-latest
    defaults:
      run:
        working-directory: backend
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-python@v5
        with:
          python-version: "3.12"
      - run: pip install -r requirements.txt
{{- if .Has "testing"}}
      - run: pytest
{{- end}}
{{- end}}
  {{if .IsSplit}}frontend{{else}}build{{end}}:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
{{- if eq .Stack.PackageManager "pnpm"}}
      - uses: pnpm/action-setup@v4
{{- else if eq .Stack.PackageManager "bun"}}
      - uses: oven-sh/setup-bun@v2
{{- end}}
      - uses: actions/setup-node@v4
        with:
          node-version: 22
      - run: {{.Install}}
      - run: {{.Run "lint"}}
      - run: {{.Run "build"}}
{{- if and (.Has "testing") (not .IsSplit)}}
      - run: {{.Run "test"}} --run
{{- end}}
`

const vitestConfigBody = `import react from "@vitejs/plugin-react";
import { defineConfig } from "vitest/config";

export default defineConfig({
  plugins: [react()],
  test: {
    environment: "jsdom",
  },
  resolve: {
    alias: { "@": new URL("./src", import.meta.url).pathname },
  },
});
`

const utilsTestBody = `import { describe, expect, it } from "vitest";
import { cn } from "./utils";

describe("cn", () => {
  it("merges tailwind classes", () => {
    expect(cn("px-2", "px-4")).toBe("px-4");
  });
});
`

const pytestHealthBody = `from fastapi.testclient import TestClient

from app.main import app

client = TestClient(app)


def test_health() -> None:
    response = client.get("/health")
    assert response.status_code == 200
    assert response.json() == {"status": "ok"}
`
