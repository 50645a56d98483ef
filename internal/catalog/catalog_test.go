package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesCoverCatalog(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, len(options))
	for _, c := range cats {
		assert.True(t, IsCategory(c), "category %s missing from catalog", c)
		assert.NotEmpty(t, Options(c), "category %s has no options", c)
	}
}

func TestScalarCategoriesHaveExactlyOneDefault(t *testing.T) {
	for _, c := range Categories() {
		if IsMulti(c) {
			continue
		}
		count := 0
		for _, o := range Options(c) {
			if o.IsDefault {
				count++
			}
		}
		assert.Equal(t, 1, count, "category %s", c)
	}
}

func TestOptionIDsUnique(t *testing.T) {
	for _, c := range Categories() {
		seen := make(map[string]bool)
		for _, id := range IDs(c) {
			assert.False(t, seen[id], "duplicate id %s in %s", id, c)
			seen[id] = true
		}
	}
}

func TestLookup(t *testing.T) {
	o, ok := Lookup(LLMProvider, "ollama")
	assert.True(t, ok)
	assert.Equal(t, BadgeLocal, o.Badge)

	_, ok = Lookup(LLMProvider, "skynet")
	assert.False(t, ok)

	_, ok = Lookup(Category("colour"), "red")
	assert.False(t, ok)
}

func TestDefaultID(t *testing.T) {
	assert.Equal(t, "nextjs-fullstack", DefaultID(Architecture))
	assert.Equal(t, "novita", DefaultID(LLMProvider))
	assert.Equal(t, None, DefaultID(Search))
	assert.Equal(t, "true", DefaultID(Git))
	assert.Equal(t, "", DefaultID(Addons))
}

func TestIsPostgresCompatible(t *testing.T) {
	assert.True(t, IsPostgresCompatible("postgresql"))
	assert.True(t, IsPostgresCompatible("neon"))
	assert.True(t, IsPostgresCompatible("supabase"))
	assert.False(t, IsPostgresCompatible("sqlite"))
	assert.False(t, IsPostgresCompatible(None))
}

func TestOptionsReturnsCopy(t *testing.T) {
	opts := Options(Architecture)
	opts[0].ID = "mutated"
	assert.Equal(t, "nextjs-fullstack", Options(Architecture)[0].ID)
}
