// Package diag implements the diagnostic sink described in spec.md §6.4:
// structured errors/warnings/notes with source spans, rendered with a
// header, a "--> path:line" locator, the offending source line, and a
// caret marker underneath it.
package diag

import (
	"fmt"
	"strings"

	"github.com/metro-lang/metro/internal/source"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}

// Kind tags the category of a diagnostic, per spec.md §6.4.
type Kind string

const (
	Undefined          Kind = "undefined"
	TypeMismatch       Kind = "type-mismatch"
	MultipleDefined    Kind = "multiple-defined"
	EmptyEnum          Kind = "empty-enum"
	EmptyStruct        Kind = "empty-struct"
	EmptySwitch        Kind = "empty-switch"
	InvalidSyntax      Kind = "invalid-syntax"
	InvalidInitializer Kind = "invalid-initializer"
	RecursiveType      Kind = "recursive-type"
	InvalidOperator    Kind = "invalid-operator"
	InvalidLValue      Kind = "invalid-lvalue"
	InvalidCast        Kind = "invalid-cast"
	ReturnMismatch     Kind = "return-mismatch"
	ReturnOutside      Kind = "return-outside-function"
	DivisionByZero     Kind = "division-by-zero"
	IndexOutOfRange    Kind = "index-out-of-range"
	FileOpenFailure    Kind = "file-open-failure"
	InternalError      Kind = "internal-error"
)

// Annotation is a secondary note attached to a Diagnostic.
type Annotation struct {
	Message string
	Span    source.Span
}

// Diagnostic is one structured report emitted by any pipeline stage.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Span     source.Span
	Message  string
	Notes    []Annotation
}

// Format renders the diagnostic as a header line, a locator, the
// source snippet, and a caret marker, optionally with ANSI color.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder

	sevWord := strings.ToUpper(d.Severity.String()[:1]) + d.Severity.String()[1:]
	if color {
		sb.WriteString(colorFor(d.Severity))
	}
	fmt.Fprintf(&sb, "%s: %s", sevWord, d.Message)
	if color {
		sb.WriteString(reset)
	}
	sb.WriteString("\n")

	if d.Span.File != nil {
		fmt.Fprintf(&sb, "  --> %s:%d\n", d.Span.File.Path, d.Span.Line)
		snippet := d.Span.Snippet()
		lineNo := fmt.Sprintf("%d", d.Span.Line)
		gutter := strings.Repeat(" ", len(lineNo))
		fmt.Fprintf(&sb, "%s |\n", gutter)
		fmt.Fprintf(&sb, "%s | %s\n", lineNo, snippet)
		col := d.Span.Column()
		length := d.Span.Length
		if length < 1 {
			length = 1
		}
		fmt.Fprintf(&sb, "%s | %s", gutter, strings.Repeat(" ", col-1))
		if color {
			sb.WriteString(colorFor(d.Severity))
		}
		sb.WriteString(strings.Repeat("^", length))
		if color {
			sb.WriteString(reset)
		}
		sb.WriteString("\n")
	}

	for _, n := range d.Notes {
		fmt.Fprintf(&sb, "  note: %s\n", n.Message)
	}

	return sb.String()
}

const reset = "\033[0m"

func colorFor(s Severity) string {
	switch s {
	case Error:
		return "\033[1;31m"
	case Warning:
		return "\033[1;33m"
	default:
		return "\033[1;36m"
	}
}

// Sink collects diagnostics emitted across the pipeline and tracks the
// process-wide error counter the pipeline gates on (spec.md §6.4).
type Sink struct {
	diags []Diagnostic
	count int
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Emit records a diagnostic and, for Error severity, increments the
// error counter the driver inspects at each pipeline gate.
func (s *Sink) Emit(d Diagnostic) {
	s.diags = append(s.diags, d)
	if d.Severity == Error {
		s.count++
	}
}

// Errorf is a convenience wrapper for emitting an Error-severity
// diagnostic of the given kind at span.
func (s *Sink) Errorf(kind Kind, span source.Span, format string, args ...any) {
	s.Emit(Diagnostic{Severity: Error, Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any Error-severity diagnostic has been
// emitted — the pipeline gate condition from spec.md §2.
func (s *Sink) HasErrors() bool {
	return s.count > 0
}

// Count returns the number of Error-severity diagnostics emitted.
func (s *Sink) Count() int {
	return s.count
}

// All returns every diagnostic emitted, in emission order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// Format renders every diagnostic in order, separated by blank lines.
func (s *Sink) Format(color bool) string {
	var sb strings.Builder
	for i, d := range s.diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.Format(color))
	}
	return sb.String()
}
