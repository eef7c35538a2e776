// Package extractor analyzes Python sources declaring discord-style UI
// components and reconstructs the component metadata and layout hierarchy
// they imply, without executing the source. One Engine invocation
// processes exactly one syntax tree start to finish; the Engine itself
// performs no I/O and holds no per-file state, so concurrent extractions
// on different inputs are safe.
package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Engine extracts UI component declarations from Python source.
type Engine struct {
	language *sitter.Language
}

// New creates an extraction engine backed by the Python grammar.
func New() *Engine {
	return &Engine{language: sitter.NewLanguage(python.Language())}
}

// Extract parses the source and runs one traversal. It never panics or
// returns a Go error: every failure mode is folded into the result's
// error list so one bad file cannot abort a batch.
func (e *Engine) Extract(source []byte) (result *ExtractResult) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = errorResult(internalDiagnostic(recovered))
		}
	}()

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.language); err != nil {
		return errorResult(dependencyDiagnostic(err))
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return errorResult(syntaxDiagnostic(0, 0, ""))
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return errorResult(e.syntaxError(root, source))
	}

	t := newTraversal(source)
	t.run(root)
	return t.result
}

// syntaxError locates the first failing node and builds the fatal
// diagnostic for it. Syntax failures leave no components or views; the
// file is unusable until it parses.
func (e *Engine) syntaxError(root *sitter.Node, source []byte) Diagnostic {
	node := firstErrorNode(root)
	if node == nil {
		return syntaxDiagnostic(0, 0, "")
	}
	line := nodeLine(node)
	column := int(node.StartPosition().Column) + 1
	lines := strings.Split(string(source), "\n")
	snippet := ""
	if line >= 1 && line <= len(lines) {
		snippet = lines[line-1]
	}
	return syntaxDiagnostic(line, column, snippet)
}
