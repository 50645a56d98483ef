package state

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-stack/stackbuilder/internal/stack"
)

func TestToParamsDefaultIsEmpty(t *testing.T) {
	assert.Empty(t, ToParams(stack.Default()))
}

func TestToParamsOnlyDifferences(t *testing.T) {
	s := stack.Default()
	s.ProjectName = "docs-bot"
	s.LLMProvider = "anthropic"
	s.Addons = []string{"docker", "redis"}
	s.Git = stack.FlagFalse

	v := ToParams(s)
	assert.Equal(t, url.Values{
		"name":        {"docs-bot"},
		"llmProvider": {"anthropic"},
		"addons":      {"docker,redis"},
		"git":         {"false"},
	}, v)
}

func TestFromParamsOverlaysDefaults(t *testing.T) {
	v := url.Values{
		"vectorDb": {"qdrant"},
		"unknown":  {"ignored"},
	}
	s := FromParams(v)

	want := stack.Default()
	want.VectorDB = "qdrant"
	assert.True(t, s.Equal(want))
}

func TestFromParamsEmptyAddons(t *testing.T) {
	s := FromParams(url.Values{"addons": {""}})
	assert.NotNil(t, s.Addons)
	assert.Empty(t, s.Addons)
}

func TestParamsRoundTrip(t *testing.T) {
	stacks := []stack.State{stack.Default()}
	for _, p := range stack.Presets() {
		stacks = append(stacks, p.Stack)
	}
	odd := stack.Default()
	odd.ProjectName = ""
	odd.ORM = ""
	odd.Addons = []string{"a b", "c&d"}
	stacks = append(stacks, odd)

	for _, s := range stacks {
		encoded := ToParams(s).Encode()
		decoded, err := url.ParseQuery(encoded)
		require.NoError(t, err)
		assert.True(t, FromParams(decoded).Equal(s), "round trip of %q", encoded)
	}
}

func TestParseView(t *testing.T) {
	assert.Equal(t, ViewState{View: ViewConfigure}, ParseView(url.Values{}))
	assert.Equal(t, ViewState{View: ViewConfigure}, ParseView(url.Values{"view": {"bogus"}}))
	assert.Equal(t,
		ViewState{View: ViewPreview, File: "/src/app/page.tsx"},
		ParseView(url.Values{"view": {"preview"}, "file": {"/src/app/page.tsx"}}),
	)
}

func TestQueryAndParseURL(t *testing.T) {
	s := stack.Default()
	s.Search = "tavily"
	vs := ViewState{View: ViewPreview, File: "/README.md"}

	q := Query(s, vs)

	for _, raw := range []string{
		q,
		"?" + q,
		"https://ai-stack.dev/builder?" + q,
	} {
		gotStack, gotView, err := ParseURL(raw)
		require.NoError(t, err)
		assert.True(t, gotStack.Equal(s), raw)
		assert.Equal(t, vs, gotView)
	}

	assert.Equal(t, "", Query(stack.Default(), ViewState{View: ViewConfigure}))

	_, _, err := ParseURL("https://ai-stack.dev/?a=%zz")
	assert.Error(t, err)
}
