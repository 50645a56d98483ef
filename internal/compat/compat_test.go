package compat

import (
	"testing"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStackIsValid(t *testing.T) {
	res := Analyze(stack.Default())
	assert.True(t, res.IsValid)
	assert.Nil(t, res.Adjusted)
	assert.Empty(t, res.Changes)
}

func TestPgvectorForcesPostgres(t *testing.T) {
	s := stack.Default()
	s.VectorDB = "pgvector"
	s.Database = "sqlite"

	res := Analyze(s)
	require.False(t, res.IsValid)
	require.NotNil(t, res.Adjusted)
	assert.Equal(t, "postgresql", res.Adjusted.Database)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, catalog.Database, res.Changes[0].Category)
	assert.Equal(t, "sqlite", res.Changes[0].From)
	assert.Equal(t, "postgresql", res.Changes[0].To)
	assert.True(t, res.Notes[catalog.VectorDB].HasIssue)

	// The input is not mutated.
	assert.Equal(t, "sqlite", s.Database)
}

func TestPgvectorNoteWithoutCorrection(t *testing.T) {
	s := stack.Default()
	s.Database = "neon"
	res := Analyze(s)
	assert.True(t, res.IsValid)
	assert.Len(t, res.Notes[catalog.VectorDB].Notes, 1)
}

func TestFastAPIReplacesDrizzle(t *testing.T) {
	s := stack.Default()
	s.Architecture = "fastapi-nextjs"
	s.ORM = "drizzle"

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Equal(t, "sqlalchemy", res.Adjusted.ORM)
	// better-auth is the default, so the auth advisory fires too.
	assert.True(t, res.Notes[catalog.Auth].HasIssue)
}

func TestOllamaAddsDocker(t *testing.T) {
	s := stack.Default()
	s.LLMProvider = "ollama"
	s.Addons = []string{}

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Contains(t, res.Adjusted.Addons, "docker")
	assert.NotEmpty(t, res.Notes[catalog.LLMProvider].Notes)
}

func TestOllamaReplacesNoneSentinel(t *testing.T) {
	s := stack.Default()
	s.LLMProvider = "ollama"
	s.Addons = []string{"none"}

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Equal(t, []string{"docker"}, res.Adjusted.Addons)
}

func TestCeleryRemovedOutsideFastAPI(t *testing.T) {
	s := stack.Default()
	s.Addons = []string{"celery", "redis"}

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Equal(t, []string{"redis"}, res.Adjusted.Addons)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, catalog.Addons, res.Changes[0].Category)
	assert.Equal(t, "celery,redis", res.Changes[0].From)
	assert.Equal(t, "redis", res.Changes[0].To)

	s.Architecture = "fastapi-nextjs"
	s.ORM = "sqlalchemy"
	res = Analyze(s)
	assert.True(t, res.IsValid)
}

func TestKubernetesAddsDocker(t *testing.T) {
	s := stack.Default()
	s.Addons = []string{"kubernetes"}

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Equal(t, []string{"kubernetes", "docker"}, res.Adjusted.Addons)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, "kubernetes", res.Changes[0].From)
	assert.Equal(t, "kubernetes,docker", res.Changes[0].To)
}

func TestAddonChangesChainLists(t *testing.T) {
	s := stack.Default()
	s.LLMProvider = "ollama"
	s.VectorDB = "none"
	s.Addons = []string{"none", "reranking", "celery"}

	res := Analyze(s)
	require.Len(t, res.Changes, 3)
	// Each change starts where the previous one ended.
	for i := 1; i < len(res.Changes); i++ {
		assert.Equal(t, res.Changes[i-1].To, res.Changes[i].From)
	}
	assert.Equal(t, "none,reranking,celery", res.Changes[0].From)
	assert.Equal(t, "docker", res.Changes[2].To)
	assert.Equal(t, []string{"docker"}, res.Adjusted.Addons)
}

func TestNoVectorDBRemovesReranking(t *testing.T) {
	s := stack.Default()
	s.VectorDB = "none"
	s.Addons = []string{"reranking"}

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Empty(t, res.Adjusted.Addons)
	assert.NotEmpty(t, res.Notes[catalog.VectorDB].Notes)
	// Notes come from the corrected stack, so no latency note survives.
	_, hasAddonNote := res.Notes[catalog.Addons]
	assert.False(t, hasAddonNote)
}

func TestAdvisoriesDoNotInvalidate(t *testing.T) {
	s := stack.Default()
	s.Memory = "mem0"
	s.Addons = []string{"reranking"}

	res := Analyze(s)
	assert.True(t, res.IsValid)
	assert.Nil(t, res.Adjusted)
	assert.False(t, res.Notes[catalog.Memory].HasIssue)
	assert.True(t, res.Notes[catalog.Addons].HasIssue)
}

func TestMultipleCorrectionsCompose(t *testing.T) {
	s := stack.Default()
	s.Architecture = "fastapi-nextjs"
	s.LLMProvider = "ollama"
	s.Database = "mongodb"
	s.VectorDB = "pgvector"
	s.Addons = []string{"kubernetes"}

	res := Analyze(s)
	require.NotNil(t, res.Adjusted)
	assert.Equal(t, "postgresql", res.Adjusted.Database)
	assert.Equal(t, "sqlalchemy", res.Adjusted.ORM)
	assert.Equal(t, []string{"kubernetes", "docker"}, res.Adjusted.Addons)
	assert.Len(t, res.Changes, 3)
}

// sampleStacks enumerates a broad slice of the configuration space.
func sampleStacks() []stack.State {
	var out []stack.State
	addonSets := [][]string{
		{}, {"none"}, {"celery"}, {"reranking"}, {"kubernetes"},
		{"celery", "reranking", "kubernetes"}, {"docker", "kubernetes"}, {"bogus"},
	}
	for _, arch := range append(catalog.IDs(catalog.Architecture), "", "weird") {
		for _, llm := range []string{"novita", "ollama", ""} {
			for _, vdb := range append(catalog.IDs(catalog.VectorDB), "") {
				for _, db := range []string{"postgresql", "sqlite", "none", ""} {
					for _, orm := range []string{"drizzle", "sqlalchemy", ""} {
						for _, addons := range addonSets {
							s := stack.Default()
							s.Architecture = arch
							s.LLMProvider = llm
							s.VectorDB = vdb
							s.Database = db
							s.ORM = orm
							s.Addons = append([]string(nil), addons...)
							out = append(out, s)
						}
					}
				}
			}
		}
	}
	return out
}

func violated(s stack.State) []string {
	var names []string
	for _, r := range Rules {
		if r.Applies != nil && r.Applies(s) {
			names = append(names, r.Name)
		}
	}
	return names
}

func TestCorrectionReachesFixedPoint(t *testing.T) {
	for _, s := range sampleStacks() {
		res := Analyze(s)
		final := res.Final(s)

		assert.Empty(t, violated(final), "stack %+v", s)

		again := Analyze(final)
		assert.True(t, again.IsValid, "stack %+v", s)
		assert.Nil(t, again.Adjusted)
	}
}

func TestAnalyzeIsTotal(t *testing.T) {
	assert.NotPanics(t, func() {
		Analyze(stack.State{})
		Analyze(stack.State{Addons: nil, VectorDB: "pgvector"})
		for _, s := range sampleStacks() {
			Analyze(s)
		}
	})
}

func TestMessages(t *testing.T) {
	s := stack.Default()
	s.Database = "sqlite"
	res := Analyze(s)
	assert.Equal(t, []string{res.Changes[0].Message}, res.Messages())
}
