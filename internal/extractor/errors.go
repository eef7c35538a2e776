package extractor

import (
	"fmt"
	"runtime"
	"strings"
)

// Severity distinguishes fatal errors from recoverable warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ErrorKind is the closed classification of everything that can go wrong
// during extraction. The driver produces kinds explicitly; nothing is
// inferred from recovered exception types.
type ErrorKind string

const (
	// ErrSyntax: the source could not be parsed. Fatal for the file.
	ErrSyntax ErrorKind = "syntax"
	// ErrDependency: the grammar or library symbols could not be resolved.
	// Fatal for the file, carries a remediation hint.
	ErrDependency ErrorKind = "dependency"
	// ErrEvaluation: one argument value could not be determined statically.
	// Non-fatal; the property is omitted or marked dynamic.
	ErrEvaluation ErrorKind = "evaluation"
	// ErrInternal: an unexpected failure caught at the Extract boundary.
	// Fatal for the file only, never propagated as a crash.
	ErrInternal ErrorKind = "internal"
)

// Diagnostic is one reported problem. The wire shape matches the preview
// protocol: severity, message, and an optional 1-based line.
type Diagnostic struct {
	Severity Severity  `json:"severity"`
	Kind     ErrorKind `json:"-"`
	Message  string    `json:"message"`
	Line     int       `json:"line,omitempty"`
}

// syntaxDiagnostic formats a parse failure with the offending line and a
// caret under the failing column, mirroring the preview client's expected
// layout.
func syntaxDiagnostic(line, column int, snippet string) Diagnostic {
	msg := "Syntax error: invalid syntax"
	if line > 0 {
		msg += fmt.Sprintf("\n  at line %d", line)
		if column > 0 {
			msg += fmt.Sprintf(", column %d", column)
		}
	}
	if snippet != "" {
		trimmed := strings.TrimSpace(snippet)
		msg += "\n  " + trimmed
		// Caret position is relative to the trimmed snippet.
		indent := column - 1 - (len(snippet) - len(strings.TrimLeft(snippet, " \t")))
		if indent < 0 {
			indent = 0
		}
		if indent > len(trimmed) {
			indent = len(trimmed)
		}
		msg += "\n  " + strings.Repeat(" ", indent) + "^"
	}
	return Diagnostic{
		Severity: SeverityError,
		Kind:     ErrSyntax,
		Message:  msg,
		Line:     line,
	}
}

// dependencyDiagnostic reports a failure to set up the language grammar.
func dependencyDiagnostic(err error) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Kind:     ErrDependency,
		Message: fmt.Sprintf("Dependency error: %v\n\n"+
			"Suggestion: the Python grammar could not be loaded. "+
			"Rebuild viewlens against a matching tree-sitter runtime.", err),
	}
}

// evaluationDiagnostic records a value that could not be determined
// statically. Extraction continues; the property is simply absent.
func evaluationDiagnostic(line int) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Kind:     ErrEvaluation,
		Message:  "Could not evaluate value: expression is not statically resolvable",
		Line:     line,
	}
}

// internalDiagnostic converts a recovered panic into a generic error
// result. The hint comes from a closed mapping on the recovered value,
// and the stack is included for diagnosis.
func internalDiagnostic(recovered any) Diagnostic {
	hint := "Suggestion: report this with the source file that triggered it."
	if _, ok := recovered.(runtime.Error); ok {
		hint = "Suggestion: the extractor hit an unexpected tree shape. " +
			"Report this with the source file that triggered it."
	}
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return Diagnostic{
		Severity: SeverityError,
		Kind:     ErrInternal,
		Message:  fmt.Sprintf("Parse error: %v\n\n%s\n\nTraceback:\n%s", recovered, hint, buf[:n]),
	}
}

// errorResult wraps a single fatal diagnostic in an otherwise empty result.
func errorResult(d Diagnostic) *ExtractResult {
	r := newExtractResult()
	r.Errors = append(r.Errors, d)
	return r
}
