package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-stack/stackbuilder/internal/stack"
)

// scriptedAnswers replaces askOne with fixed answers keyed by prompt message.
// Prompts without an entry keep their default.
func scriptedAnswers(t *testing.T, answers map[string]any) *[]string {
	t.Helper()
	var asked []string
	old := askOne
	t.Cleanup(func() { askOne = old })

	askOne = func(p survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		switch q := p.(type) {
		case *survey.Input:
			asked = append(asked, q.Message)
			v, ok := answers[q.Message]
			if !ok {
				v = q.Default
			}
			*response.(*string) = v.(string)
		case *survey.Select:
			asked = append(asked, q.Message)
			v, ok := answers[q.Message]
			if !ok {
				v = q.Default
			}
			*response.(*string) = v.(string)
		case *survey.MultiSelect:
			asked = append(asked, q.Message)
			v, ok := answers[q.Message]
			if !ok {
				v = q.Default
			}
			*response.(*[]string) = v.([]string)
		case *survey.Confirm:
			asked = append(asked, q.Message)
			v, ok := answers[q.Message]
			if !ok {
				v = q.Default
			}
			*response.(*bool) = v.(bool)
		default:
			t.Fatalf("unexpected prompt %T", p)
		}
		return nil
	}
	return &asked
}

func TestAskStack(t *testing.T) {
	asked := scriptedAnswers(t, map[string]any{
		"Project name:":         "my-bot",
		"LLM Provider:":         "Ollama",
		"Addons:":               []string{"Redis"},
		"Install dependencies?": false,
	})

	var buf bytes.Buffer
	s, err := askStack(&buf, true, stack.Default())
	require.NoError(t, err)

	assert.Equal(t, "my-bot", s.ProjectName)
	assert.Equal(t, "ollama", s.LLMProvider)
	assert.Equal(t, []string{"redis", "docker"}, s.Addons)
	assert.Equal(t, stack.FlagTrue, s.Git)
	assert.Equal(t, stack.FlagFalse, s.Install)
	assert.Contains(t, buf.String(), "Ollama runs as a container")

	assert.Equal(t, "Project name:", (*asked)[0])
	assert.Contains(t, *asked, "Vector DB:")
	assert.Contains(t, *asked, "Initialize git?")
}

func TestAskStackTogglesAddons(t *testing.T) {
	scriptedAnswers(t, map[string]any{
		"Addons:": []string{"Redis", "Kubernetes"},
	})
	initial := stack.Default()
	initial.Addons = []string{"docker", "redis"}

	var buf bytes.Buffer
	s, err := askStack(&buf, true, initial)
	require.NoError(t, err)

	// Unchecking Docker is undone because Kubernetes needs it.
	assert.Equal(t, []string{"redis", "kubernetes", "docker"}, s.Addons)
	assert.Contains(t, buf.String(), "Kubernetes deploys container images")
}

func TestAskStackClearsAddons(t *testing.T) {
	scriptedAnswers(t, map[string]any{
		"Addons:": []string{},
	})
	initial := stack.Default()
	initial.Addons = []string{"docker", "redis"}

	s, err := askStack(&bytes.Buffer{}, true, initial)
	require.NoError(t, err)
	assert.Empty(t, s.Addons)
}

func TestAskStackCorrectsAsItGoes(t *testing.T) {
	scriptedAnswers(t, map[string]any{
		"Architecture:": "FastAPI + Next.js",
	})

	s, err := askStack(&bytes.Buffer{}, true, stack.Default())
	require.NoError(t, err)

	// The ORM prompt defaults to the corrected value.
	assert.Equal(t, "fastapi-nextjs", s.Architecture)
	assert.Equal(t, "sqlalchemy", s.ORM)
}

func TestAskStackRejectsUnknownAnswer(t *testing.T) {
	scriptedAnswers(t, map[string]any{
		"Database:": "Oracle",
	})

	_, err := askStack(&bytes.Buffer{}, true, stack.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Oracle"`)
}

func TestAskStackPropagatesPromptErrors(t *testing.T) {
	old := askOne
	t.Cleanup(func() { askOne = old })
	askOne = func(survey.Prompt, interface{}, ...survey.AskOpt) error {
		return errors.New("interrupt")
	}

	_, err := askStack(&bytes.Buffer{}, true, stack.Default())
	assert.EqualError(t, err, "interrupt")
}

func TestCreateInteractiveDryRun(t *testing.T) {
	scriptedAnswers(t, map[string]any{
		"Addons:": []string{"Docker", "Kubernetes"},
	})

	out, _, err := execute(t, "create", "--interactive", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "docker-compose.yml")
}
