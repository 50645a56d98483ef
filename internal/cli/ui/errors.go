package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	✗ UNKNOWN OPTION: llmProvider "opnai"
//	   "opnai" is not a known llmProvider option.
//
//	   Did you mean: openai?
//
//	   → See all options: ai-stack catalog
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var symbol string
	var attr color.Attribute
	switch opts.Level {
	case ErrorLevelWarning:
		symbol, attr = "!", color.FgYellow
	case ErrorLevelInfo:
		symbol, attr = "i", color.FgCyan
	default:
		symbol, attr = "✗", color.FgRed
	}
	header := newColor(opts.NoColor, attr, color.Bold)
	body := newColor(opts.NoColor, attr)

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
		body.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := newColor(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return newColor(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelInfo, Problem: message, NoColor: noColor})
}

// Error is a command failure that knows how to present itself.
type Error struct {
	Options ErrorOptions
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Options.Problem + ": " + e.Cause.Error()
	}
	return e.Options.Problem
}

func (e *Error) Unwrap() error { return e.Cause }

// Format renders the error for a terminal.
func (e *Error) Format(noColor bool) string {
	opts := e.Options
	opts.NoColor = noColor
	if e.Cause != nil && opts.Consequence == "" {
		opts.Consequence = e.Cause.Error()
	}
	return FormatError(opts)
}

// Render writes any error to w. Errors other than *Error get a plain header.
func Render(w io.Writer, err error, noColor bool) {
	var uiErr *Error
	if errors.As(err, &uiErr) {
		fmt.Fprint(w, uiErr.Format(noColor))
		return
	}
	WriteError(w, ErrorOptions{Problem: err.Error(), NoColor: noColor})
}

// UnknownOption reports an option id that is not in the catalog, suggesting
// the closest ids of the same category.
func UnknownOption(cat catalog.Category, id string) *Error {
	return &Error{Options: ErrorOptions{
		Context:     "unknown option",
		Problem:     fmt.Sprintf("%q is not a known %s option.", id, CategoryLabel(cat)),
		Suggestions: FindSimilar(id, catalog.IDs(cat), nil),
		HelpCommands: []string{
			"See all options: ai-stack catalog",
		},
	}}
}

// UnknownPreset reports a preset id that does not exist.
func UnknownPreset(id string) *Error {
	return &Error{Options: ErrorOptions{
		Context:     "unknown preset",
		Problem:     fmt.Sprintf("There is no preset named %q.", id),
		Suggestions: FindSimilar(id, stack.PresetIDs(), nil),
		HelpCommands: []string{
			"See all presets: ai-stack presets",
		},
	}}
}

// InvalidProjectName wraps a project name validation failure.
func InvalidProjectName(err error) *Error {
	return &Error{
		Options: ErrorOptions{
			Context: "invalid project name",
			Problem: "The project name cannot be used as a directory and package name.",
			HelpCommands: []string{
				"Use lowercase letters, digits, dots, dashes and underscores",
			},
		},
		Cause: err,
	}
}

// StorageFailure wraps an error from the save slot backend.
func StorageFailure(action string, err error) *Error {
	return &Error{
		Options: ErrorOptions{
			Context: "storage error",
			Problem: fmt.Sprintf("Could not %s the saved stack.", action),
			HelpCommands: []string{
				"Check storage.driver in ai-stack.yaml or AI_STACK_STORAGE_DRIVER",
			},
		},
		Cause: err,
	}
}
