package stack

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUsesCatalogDefaults(t *testing.T) {
	d := Default()
	assert.Equal(t, DefaultProjectName, d.ProjectName)
	assert.Equal(t, "nextjs-fullstack", d.Architecture)
	assert.Equal(t, "novita", d.LLMProvider)
	assert.Equal(t, "postgresql", d.Database)
	assert.Equal(t, FlagTrue, d.Git)
	assert.Empty(t, d.Addons)
	assert.Empty(t, d.UnknownOptions())
}

func TestCloneIsDeep(t *testing.T) {
	s := Default()
	s.Addons = []string{"docker"}
	c := s.Clone()
	c.Addons[0] = "kubernetes"
	assert.Equal(t, "docker", s.Addons[0])
}

func TestGetSetRoundTrip(t *testing.T) {
	s := Default()
	s.Set(catalog.Database, "sqlite")
	s.Set(catalog.Git, "false")
	s.Set(catalog.Addons, "docker, redis,,")
	s.Set(catalog.Category("unknown"), "x")

	assert.Equal(t, "sqlite", s.Get(catalog.Database))
	assert.Equal(t, "false", s.Get(catalog.Git))
	assert.Equal(t, []string{"docker", "redis"}, s.Addons)
	assert.Equal(t, "docker,redis", s.Get(catalog.Addons))
	assert.Equal(t, "", s.Get(catalog.Category("unknown")))
}

func TestNormalizeFillsDefaults(t *testing.T) {
	s := State{Architecture: "fastapi-nextjs", Addons: []string{"docker", "docker", "none", ""}}
	n := s.Normalize()

	assert.Equal(t, DefaultProjectName, n.ProjectName)
	assert.Equal(t, "fastapi-nextjs", n.Architecture)
	assert.Equal(t, "novita", n.LLMProvider)
	assert.Equal(t, FlagTrue, n.Install)
	assert.Equal(t, []string{"docker"}, n.Addons)
}

func TestNormalizeKeepsLoneNone(t *testing.T) {
	s := Default()
	s.Addons = []string{"none"}
	assert.Equal(t, []string{"none"}, s.Normalize().Addons)
	assert.Empty(t, s.ActiveAddons())
}

func TestEqual(t *testing.T) {
	a := Default()
	b := Default()
	assert.True(t, a.Equal(b))

	b.Addons = []string{"docker"}
	assert.False(t, a.Equal(b))

	b = Default()
	b.Memory = "mem0"
	assert.False(t, a.Equal(b))
}

func TestFingerprintStable(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Addons = nil
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "nil and empty add-ons hash the same")

	b.LLMProvider = "openai"
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFlagUnmarshal(t *testing.T) {
	var s State
	require.NoError(t, json.Unmarshal([]byte(`{"git": false, "install": "true"}`), &s))
	assert.Equal(t, FlagFalse, s.Git)
	assert.Equal(t, FlagTrue, s.Install)

	err := json.Unmarshal([]byte(`{"git": 3}`), &s)
	assert.Error(t, err)
}

func TestFlagOpposite(t *testing.T) {
	assert.Equal(t, FlagFalse, FlagTrue.Opposite())
	assert.Equal(t, FlagTrue, FlagFalse.Opposite())
	assert.True(t, FlagTrue.Bool())
}

func TestAddonHelpers(t *testing.T) {
	s := Default().WithAddon("docker").WithAddon("docker").WithAddon("redis")
	assert.Equal(t, []string{"docker", "redis"}, s.Addons)
	assert.True(t, s.HasAddon("redis"))

	s = s.WithoutAddon("docker")
	assert.Equal(t, []string{"redis"}, s.Addons)
	assert.Equal(t, []string{}, SplitAddons(""))
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "my-app", false},
		{"dots and underscores", "my.app_v2", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"uppercase", "MyApp", true},
		{"leading dot", ".app", true},
		{"leading underscore", "_app", true},
		{"slash", "a/b", true},
		{"space", "my app", true},
		{"too long", strings.Repeat("a", 215), true},
		{"max length", strings.Repeat("a", 214), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if tt.wantErr {
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, "projectName", vErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnknownOptions(t *testing.T) {
	s := Default()
	s.LLMProvider = "skynet"
	s.Addons = []string{"docker", "jetpack"}
	unknown := s.UnknownOptions()
	assert.Equal(t, []string{"skynet"}, unknown[catalog.LLMProvider])
	assert.Equal(t, []string{"jetpack"}, unknown[catalog.Addons])
}

func TestPresetsAreCatalogued(t *testing.T) {
	for _, p := range Presets() {
		assert.Empty(t, p.Stack.UnknownOptions(), "preset %s", p.ID)
		assert.NoError(t, ValidateProjectName(p.Stack.ProjectName), "preset %s", p.ID)
	}

	p, err := PresetByID("minimal")
	require.NoError(t, err)
	assert.Equal(t, "Minimal Starter", p.Name)

	_, err = PresetByID("nope")
	assert.Error(t, err)
	assert.Equal(t, []string{"rag-chatbot", "enterprise", "minimal", "local-first"}, PresetIDs())
}
