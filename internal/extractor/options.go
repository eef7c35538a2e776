package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// maxResolveDepth bounds indirection so a self-referential binding
// (x = x if cond else y) terminates instead of recursing forever.
const maxResolveDepth = 16

// optionResolver resolves the options argument of a select-menu call
// through the accepted indirections: direct list literals, named
// variables, list comprehensions, and conditional expressions.
type optionResolver struct {
	ev       *valueEvaluator
	bindings *bindingTable
	src      []byte
}

// resolve returns the extracted options, or nil when no rule applies —
// the property is then simply omitted, never an error.
func (r *optionResolver) resolve(node *sitter.Node) []map[string]any {
	return r.resolveDepth(node, 0)
}

func (r *optionResolver) resolveDepth(node *sitter.Node, depth int) []map[string]any {
	node = unwrapParens(node)
	if node == nil || depth > maxResolveDepth {
		return nil
	}

	switch node.Kind() {
	case "identifier":
		// Named variable: substitute the bound expression and re-resolve.
		if bound, ok := r.bindings.lookup(nodeText(node, r.src)); ok {
			return r.resolveDepth(bound, depth+1)
		}
		return nil

	case "conditional_expression":
		// a if cond else b — named children are [consequence, condition,
		// alternative]. The true branch wins; the false branch only fills
		// in when the true branch resolves empty. Nested conditionals
		// recurse with the same preference at each level.
		if trueOptions := r.resolveDepth(node.NamedChild(0), depth+1); len(trueOptions) > 0 {
			return trueOptions
		}
		return r.resolveDepth(node.NamedChild(2), depth+1)

	case "list_comprehension":
		// Dynamically generated options: extract one representative from
		// the template body to signal "one or more of this shape".
		body := unwrapParens(node.ChildByFieldName("body"))
		if body != nil && body.Kind() == "call" && isSelectOptionCall(body, r.src) {
			if template := r.extractOption(body); template != nil {
				return []map[string]any{template}
			}
		}
		return nil

	case "list":
		var options []map[string]any
		for _, element := range namedChildren(node) {
			element = unwrapParens(element)
			if element.Kind() != "call" {
				continue
			}
			if option := r.extractOption(element); option != nil {
				options = append(options, option)
			}
		}
		return options
	}

	return nil
}

// extractOption pulls the allow-listed fields from one option constructor
// call. A field that exists but cannot be evaluated becomes the dynamic
// marker rather than disappearing — the structure is known even when the
// value is not.
func (r *optionResolver) extractOption(call *sitter.Node) map[string]any {
	props := map[string]any{}
	args := call.ChildByFieldName("arguments")
	for _, arg := range namedChildren(args) {
		if arg.Kind() != "keyword_argument" {
			continue
		}
		name := nodeText(arg.ChildByFieldName("name"), r.src)
		if !optionAllowList[name] {
			continue
		}
		value := r.evalQuiet(arg.ChildByFieldName("value"))
		if value == nil {
			value = DynamicMarker
		}
		props[name] = value
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

// evalQuiet evaluates without emitting warnings; unevaluable option
// fields are expected and become the dynamic marker instead.
func (r *optionResolver) evalQuiet(node *sitter.Node) any {
	quiet := &valueEvaluator{src: r.src}
	return quiet.eval(node)
}
