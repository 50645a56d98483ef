package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ai-stack/stackbuilder/internal/vfs"
)

// Engine renders templates into a virtual file system. Parsed bodies are
// cached per file, so an Engine is cheap to reuse and safe for concurrent
// use.
type Engine struct {
	funcs  template.FuncMap
	parsed sync.Map // *File -> *template.Template
}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	titler := cases.Title(language.English)
	return &Engine{
		funcs: template.FuncMap{
			"upper":    strings.ToUpper,
			"lower":    strings.ToLower,
			"title":    titler.String,
			"join":     func(sep string, items []string) string { return strings.Join(items, sep) },
			"quote":    strconv.Quote,
			"envLines": envLines,
			"json":     toJSON,
		},
	}
}

// Render emits every file of tmpl whose condition holds into fs.
func (e *Engine) Render(tmpl *Template, ctx *Context, fs *vfs.FS) error {
	for _, file := range tmpl.Files {
		if file.When != nil && !file.When(ctx) {
			continue
		}

		content, err := e.renderFile(file, ctx)
		if err != nil {
			return fmt.Errorf("failed to render %s from template %s: %w", file.Path, tmpl.Name, err)
		}
		if err := fs.Write(file.Path, content); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}
	return nil
}

func (e *Engine) renderFile(file *File, ctx *Context) (string, error) {
	t, err := e.compile(file)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) compile(file *File) (*template.Template, error) {
	if t, ok := e.parsed.Load(file); ok {
		return t.(*template.Template), nil
	}
	t, err := template.New(file.Path).
		Funcs(e.funcs).
		Option("missingkey=error").
		Parse(file.Body)
	if err != nil {
		return nil, err
	}
	e.parsed.Store(file, t)
	return t, nil
}

func toJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
