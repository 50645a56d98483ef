package compat

import (
	"testing"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/stretchr/testify/assert"
)

func TestIsOptionCompatible(t *testing.T) {
	fullstack := stack.Default()
	split := stack.Default()
	split.Architecture = "fastapi-nextjs"
	noVector := stack.Default()
	noVector.VectorDB = "none"

	tests := []struct {
		name   string
		stack  stack.State
		cat    catalog.Category
		option string
		want   bool
	}{
		{"sqlalchemy on fullstack", fullstack, catalog.ORM, "sqlalchemy", false},
		{"sqlalchemy on split", split, catalog.ORM, "sqlalchemy", true},
		{"drizzle on fullstack", fullstack, catalog.ORM, "drizzle", true},
		{"drizzle on split", split, catalog.ORM, "drizzle", false},
		{"prisma on split", split, catalog.ORM, "prisma", false},
		{"orm none on split", split, catalog.ORM, "none", true},
		{"celery on fullstack", fullstack, catalog.Addons, "celery", false},
		{"celery on split", split, catalog.Addons, "celery", true},
		{"reranking without vector db", noVector, catalog.Addons, "reranking", false},
		{"reranking with vector db", fullstack, catalog.Addons, "reranking", true},
		{"sqlite with pgvector", fullstack, catalog.Database, "sqlite", false},
		{"neon with pgvector", fullstack, catalog.Database, "neon", true},
		{"sqlite without vector db", noVector, catalog.Database, "sqlite", true},
		{"unknown category", fullstack, catalog.Category("mood"), "happy", true},
		{"unknown option", fullstack, catalog.LLMProvider, "skynet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOptionCompatible(tt.stack, tt.cat, tt.option))
			reason, disabled := DisabledReason(tt.stack, tt.cat, tt.option)
			assert.Equal(t, !tt.want, disabled)
			if disabled {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func TestDisabledOptions(t *testing.T) {
	disabled := DisabledOptions(stack.Default(), catalog.ORM)
	assert.Contains(t, disabled, "sqlalchemy")
	assert.NotContains(t, disabled, "drizzle")
	assert.NotContains(t, disabled, "prisma")
}

func TestPresetsPassAnalysis(t *testing.T) {
	for _, p := range stack.Presets() {
		res := Analyze(p.Stack)
		assert.True(t, res.IsValid, "preset %s: %v", p.ID, res.Messages())
	}
}
