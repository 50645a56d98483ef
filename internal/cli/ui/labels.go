package ui

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ai-stack/stackbuilder/internal/catalog"
)

var acronyms = map[string]string{
	"Llm": "LLM",
	"Orm": "ORM",
	"Db":  "DB",
	"Api": "API",
}

// CategoryLabel turns a category id such as "vectorDb" into "Vector DB".
func CategoryLabel(c catalog.Category) string {
	words := splitCamel(string(c))
	caser := cases.Title(language.English)
	for i, w := range words {
		w = caser.String(w)
		if a, ok := acronyms[w]; ok {
			w = a
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// OptionLabel is the display name of an option, falling back to its id.
func OptionLabel(c catalog.Category, id string) string {
	if opt, ok := catalog.Lookup(c, id); ok {
		return opt.Name
	}
	return id
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > start && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}
