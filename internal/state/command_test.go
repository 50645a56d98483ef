package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

func TestGenerateCommandDefault(t *testing.T) {
	assert.Equal(t, "npx create-ai-stack@latest", GenerateCommand(stack.Default()))
}

func TestGenerateCommand(t *testing.T) {
	s := stack.Default()
	s.ProjectName = "support-bot"
	s.LLMProvider = "anthropic"
	s.VectorDB = "qdrant"
	s.Addons = []string{"docker", "github-actions"}
	s.PackageManager = "bun"
	s.Git = stack.FlagFalse

	assert.Equal(t,
		"npx create-ai-stack@latest support-bot --llm anthropic --vector-db qdrant --addons docker,github-actions --package-manager bun --no-git",
		GenerateCommand(s),
	)
}

func TestFlagNameCoversCategories(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range catalog.Categories() {
		name := FlagName(c)
		assert.NotEmpty(t, name, c)
		assert.False(t, seen[name], "duplicate flag %s", name)
		seen[name] = true
	}
}

func TestParseCommandRoundTrip(t *testing.T) {
	stacks := []stack.State{stack.Default()}
	for _, p := range stack.Presets() {
		stacks = append(stacks, p.Stack)
	}
	quoted := stack.Default()
	quoted.ProjectName = "it's mine"
	stacks = append(stacks, quoted)
	// Names that look like the command itself stay positional.
	for _, name := range []string{"npx", "create-ai-stack", "create-ai-stack-demo"} {
		named := stack.Default()
		named.ProjectName = name
		named.LLMProvider = "openai"
		stacks = append(stacks, named)
	}

	for _, s := range stacks {
		cmd := GenerateCommand(s)
		got, err := ParseCommand(cmd)
		require.NoError(t, err, cmd)
		assert.True(t, got.Equal(s), cmd)
	}
}

func TestParseCommandForms(t *testing.T) {
	got, err := ParseCommand("--orm=prisma --install --no-install --git --auth clerk")
	require.NoError(t, err)
	assert.Equal(t, "prisma", got.ORM)
	assert.Equal(t, "clerk", got.Auth)
	assert.Equal(t, stack.FlagFalse, got.Install)
	assert.Equal(t, stack.FlagTrue, got.Git)
	assert.Equal(t, stack.DefaultProjectName, got.ProjectName)

	got, err = ParseCommand(`npx create-ai-stack@latest "my app" --llm=ollama`)
	require.NoError(t, err)
	assert.Equal(t, "my app", got.ProjectName)
	assert.Equal(t, "ollama", got.LLMProvider)
}

func TestParseCommandErrors(t *testing.T) {
	tests := []string{
		"npx create-ai-stack@latest --frobnicate",
		"npx create-ai-stack@latest --llm",
		"npx create-ai-stack@latest one two",
		"npx create-ai-stack@latest 'unterminated",
	}
	for _, cmd := range tests {
		t.Run(cmd, func(t *testing.T) {
			_, err := ParseCommand(cmd)
			assert.Error(t, err)
		})
	}
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "my-app", shellQuote("my-app"))
	assert.Equal(t, "''", shellQuote(""))
	assert.Equal(t, `'a b'`, shellQuote("a b"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}
