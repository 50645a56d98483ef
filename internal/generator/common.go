package generator

// NewCommonTemplate holds the root files every project gets.
func NewCommonTemplate() *Template {
	return &Template{
		Name:        CommonTemplate,
		Description: "Root metadata shared by every architecture",
		Files: []*File{
			{
				Path: "package.json",
				Body: "{{json .Workspace}}\n",
			},
			{
				Path: ".env.example",
				Body: `# Environment for {{.ProjectName}}
# Copy this file to .env and fill in the blanks.
{{if .Env}}
{{envLines .Env}}{{end}}`,
			},
			{
				Path: ".gitignore",
				Body: `node_modules
.next
out
dist
.turbo
.env
.env*.local
*.log
.DS_Store
{{- if .IsSplit}}
__pycache__/
*.py[cod]
.venv/
.pytest_cache/
{{- end}}
{{- if eq .Stack.Database "sqlite"}}
*.db
{{- end}}
`,
			},
			{
				Path: "README.md",
				Body: readmeBody,
			},
		},
	}
}

const readmeBody = `# {{.ProjectName}}

Generated with create-ai-stack.

## Stack

| Layer | Choice |
|---|---|
| Architecture | {{.Label "architecture"}} |
| LLM provider | {{.Label "llmProvider"}} |
| Vector database | {{.Label "vectorDb"}} |
| Database | {{.Label "database"}} |
| ORM | {{.Label "orm"}} |
| Auth | {{.Label "auth"}} |
| Search | {{.Label "search"}} |
| Memory | {{.Label "memory"}} |
| Observability | {{.Label "observability"}} |
| Add-ons | {{if .Addons}}{{join ", " .Addons}}{{else}}none{{end}} |

## Getting started

Copy the environment template and fill in your keys:

    cp .env.example .env

{{if .IsSplit -}}
Start the backend:

    cd backend
    python -m venv .venv && . .venv/bin/activate
    pip install -r requirements.txt
    uvicorn app.main:app --reload

Start the frontend in another terminal:

    {{.Install}}
    {{.Run "dev"}}

The API listens on http://localhost:8000 and the UI on http://localhost:3000.
{{- else -}}
Install dependencies and start the dev server:

    {{.Install}}
    {{.Run "dev"}}

Open http://localhost:3000 and start chatting.
{{- end}}
{{- if .Has "docker"}}

## Docker

    docker compose up --build
{{- end}}
{{- if .Has "kubernetes"}}

## Kubernetes

Manifests live in k8s/. Build and push the image, then:

    kubectl apply -f k8s/
{{- end}}
`
