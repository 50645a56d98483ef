package state

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// CommandPrefix starts every generated command.
const CommandPrefix = "npx create-ai-stack@latest"

var flagNames = map[catalog.Category]string{
	catalog.Architecture:   "architecture",
	catalog.LLMProvider:    "llm",
	catalog.VectorDB:       "vector-db",
	catalog.Database:       "database",
	catalog.ORM:            "orm",
	catalog.Auth:           "auth",
	catalog.Search:         "search",
	catalog.Memory:         "memory",
	catalog.Observability:  "observability",
	catalog.Addons:         "addons",
	catalog.PackageManager: "package-manager",
	catalog.Git:            "git",
	catalog.Install:        "install",
}

// FlagName returns the command-line flag for a category, without dashes.
func FlagName(c catalog.Category) string {
	return flagNames[c]
}

// categoryForFlag reverses FlagName.
func categoryForFlag(name string) (catalog.Category, bool) {
	for c, f := range flagNames {
		if f == name {
			return c, true
		}
	}
	return "", false
}

// GenerateCommand renders a reproducible create command listing only the
// selections that differ from the default stack.
func GenerateCommand(s stack.State) string {
	return strings.Join(CommandArgs(s), " ")
}

// CommandArgs is GenerateCommand split into shell words.
func CommandArgs(s stack.State) []string {
	def := stack.Default()
	args := strings.Fields(CommandPrefix)

	if s.ProjectName != def.ProjectName {
		args = append(args, shellQuote(s.ProjectName))
	}
	for _, c := range catalog.Categories() {
		flag := "--" + FlagName(c)
		switch {
		case catalog.IsMulti(c):
			if !sameAddons(s.Addons, def.Addons) {
				args = append(args, flag, shellQuote(stack.JoinAddons(s.Addons)))
			}
		case catalog.IsBoolean(c):
			val := stack.Flag(s.Get(c))
			if val == stack.Flag(def.Get(c)) {
				continue
			}
			if val.Bool() {
				args = append(args, flag)
			} else {
				args = append(args, "--no-"+FlagName(c))
			}
		default:
			if val := s.Get(c); val != def.Get(c) {
				args = append(args, flag, shellQuote(val))
			}
		}
	}
	return args
}

// ParseCommand reverses GenerateCommand. Flags may be written as
// "--flag value" or "--flag=value"; words follow POSIX shell quoting.
func ParseCommand(cmd string) (stack.State, error) {
	words, err := shellquote.Split(cmd)
	if err != nil {
		return stack.State{}, fmt.Errorf("invalid command: %w", err)
	}

	s := stack.Default()
	i := 0
	if i < len(words) && words[i] == "npx" {
		i++
	}
	if i < len(words) && (words[i] == "create-ai-stack" || strings.HasPrefix(words[i], "create-ai-stack@")) {
		i++
	}

	nameSet := false
	for ; i < len(words); i++ {
		w := words[i]
		if !strings.HasPrefix(w, "--") {
			if nameSet {
				return stack.State{}, fmt.Errorf("unexpected argument %q", w)
			}
			s.ProjectName = w
			nameSet = true
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(w, "--"), "=")
		if strings.HasPrefix(name, "no-") && !hasValue {
			if c, ok := categoryForFlag(strings.TrimPrefix(name, "no-")); ok && catalog.IsBoolean(c) {
				s.Set(c, string(stack.FlagFalse))
				continue
			}
		}

		c, ok := categoryForFlag(name)
		if !ok {
			return stack.State{}, fmt.Errorf("unknown flag --%s", name)
		}
		if catalog.IsBoolean(c) && !hasValue {
			s.Set(c, string(stack.FlagTrue))
			continue
		}
		if !hasValue {
			if i+1 >= len(words) {
				return stack.State{}, fmt.Errorf("flag --%s needs a value", name)
			}
			i++
			value = words[i]
		}
		s.Set(c, value)
	}
	return s, nil
}

// shellQuote wraps v in single quotes when it holds characters a POSIX
// shell would interpret.
func shellQuote(v string) string {
	if v == "" {
		return "''"
	}
	safe := true
	for _, r := range v {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			strings.ContainsRune("-_.,@/:+=", r)) {
			safe = false
			break
		}
	}
	if safe {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
