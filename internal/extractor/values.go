package extractor

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// valueEvaluator performs purely structural inspection of argument
// expressions. It never executes code: literals become Go values,
// attribute chains become dot-joined qualified names, bare identifiers
// become a <variable:NAME> placeholder, and anything else is nil plus a
// non-fatal warning sent to warn.
type valueEvaluator struct {
	src  []byte
	warn func(Diagnostic)
}

// eval returns the statically determined value of an expression, or nil
// when the expression is not resolvable.
func (e *valueEvaluator) eval(node *sitter.Node) any {
	node = unwrapParens(node)
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "string":
		return e.evalString(node)
	case "concatenated_string":
		return e.evalConcatenated(node)
	case "integer":
		if v, err := strconv.Atoi(strings.ReplaceAll(nodeText(node, e.src), "_", "")); err == nil {
			return v
		}
	case "float":
		if v, err := strconv.ParseFloat(nodeText(node, e.src), 64); err == nil {
			return v
		}
	case "true":
		return true
	case "false":
		return false
	case "none":
		// A literal None is a known value carrying no property; the caller
		// drops it without a warning.
		return nil
	case "attribute":
		return qualifiedName(node, e.src)
	case "identifier":
		return fmt.Sprintf("<variable:%s>", nodeText(node, e.src))
	}
	e.warnAt(node)
	return nil
}

// evalString resolves a string literal to its content. F-string
// interpolations make the value dynamic.
func (e *valueEvaluator) evalString(node *sitter.Node) any {
	var sb strings.Builder
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "interpolation":
			e.warnAt(node)
			return nil
		case "string_content":
			sb.WriteString(unescapeString(nodeText(child, e.src)))
		case "escape_sequence":
			sb.WriteString(unescapeString(nodeText(child, e.src)))
		}
	}
	return sb.String()
}

// evalConcatenated folds implicit string concatenation ("a" "b") the way
// the Python front end would.
func (e *valueEvaluator) evalConcatenated(node *sitter.Node) any {
	var sb strings.Builder
	for _, child := range namedChildren(node) {
		if child.Kind() != "string" {
			e.warnAt(node)
			return nil
		}
		part := e.evalString(child)
		s, ok := part.(string)
		if !ok {
			return nil
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func (e *valueEvaluator) warnAt(node *sitter.Node) {
	if e.warn != nil {
		e.warn(evaluationDiagnostic(nodeLine(node)))
	}
}

// qualifiedName joins an attribute chain into a dotted path, e.g.
// discord.ButtonStyle.primary. A non-identifier base is omitted, matching
// the enum-reference shapes this cares about.
func qualifiedName(node *sitter.Node, src []byte) string {
	var parts []string
	current := node
	for current != nil && current.Kind() == "attribute" {
		parts = append([]string{nodeText(current.ChildByFieldName("attribute"), src)}, parts...)
		current = current.ChildByFieldName("object")
	}
	if current != nil && current.Kind() == "identifier" {
		parts = append([]string{nodeText(current, src)}, parts...)
	}
	return strings.Join(parts, ".")
}

// unescapeString resolves the common escape sequences in a Python string
// segment. Unknown escapes are kept verbatim.
func unescapeString(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\'', '"', '\\':
			sb.WriteByte(s[i])
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
