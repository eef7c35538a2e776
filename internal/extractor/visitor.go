package extractor

import (
	"strings"

	"github.com/google/uuid"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// scope is the traversal context threaded through recursive walk calls:
// the owning declaration (nil at module level), its binding table and
// hierarchy accumulator, and whether the walk is inside __init__. Scopes
// are replaced at declaration boundaries, never mutated in place.
type scope struct {
	bindings  *bindingTable
	hierarchy *hierarchyBuilder
	decl      *ViewDecl
	inInit    bool
}

// traversal drives one single-threaded depth-first pass over one tree.
// Nothing here is shared across invocations.
type traversal struct {
	src       []byte
	ev        *valueEvaluator
	result    *ExtractResult
	processed map[uint]bool
}

func newTraversal(src []byte) *traversal {
	t := &traversal{
		src:       src,
		result:    newExtractResult(),
		processed: make(map[uint]bool),
	}
	t.ev = &valueEvaluator{
		src: src,
		warn: func(d Diagnostic) {
			t.result.Errors = append(t.result.Errors, d)
		},
	}
	return t
}

func (t *traversal) run(root *sitter.Node) {
	moduleScope := &scope{bindings: newBindingTable(nil)}
	t.walk(root, moduleScope)
}

// markProcessed records a call node's identity and reports whether it was
// already handled. A single syntactic call produces at most one Component
// even when it is reachable from multiple traversal paths.
func (t *traversal) markProcessed(call *sitter.Node) bool {
	key := call.StartByte()
	if t.processed[key] {
		return false
	}
	t.processed[key] = true
	return true
}

// emit appends a component to the flat result and, inside a declaration,
// to the declaration's own component list.
func (t *traversal) emit(comp Component, sc *scope) {
	t.result.Components = append(t.result.Components, comp)
	if sc.decl != nil {
		sc.decl.Components = append(sc.decl.Components, comp)
	}
}

func (t *traversal) walk(node *sitter.Node, sc *scope) {
	switch node.Kind() {
	case "class_definition":
		t.walkClass(node, sc)
	case "decorated_definition":
		t.walkDecorated(node, sc)
	case "function_definition":
		t.walkFunction(node, sc)
	case "assignment":
		t.walkAssignment(node, sc)
	case "call":
		t.walkCall(node, sc)
	default:
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil {
				t.walk(child, sc)
			}
		}
	}
}

// walkClass opens a declaration scope for View/Modal/LayoutView classes.
// Other classes are traversed in the enclosing scope.
func (t *traversal) walkClass(node *sitter.Node, sc *scope) {
	declKind, title := classifyClassBases(node, t.src, t.ev)
	body := node.ChildByFieldName("body")

	if declKind == "" {
		if body != nil {
			t.walk(body, sc)
		}
		return
	}

	decl := &ViewDecl{
		Name:                 nodeText(node.ChildByFieldName("name"), t.src),
		DeclKind:             declKind,
		Line:                 nodeLine(node),
		Title:                title,
		Components:           []Component{},
		Hierarchy:            []*HierarchyNode{},
		RequiresManualLayout: declKind == DeclLayoutView,
	}

	inner := &scope{
		bindings:  newBindingTable(sc.bindings),
		hierarchy: newHierarchyBuilder(),
		decl:      decl,
	}
	if body != nil {
		t.walk(body, inner)
	}
	decl.Hierarchy = inner.hierarchy.build()
	t.result.Views = append(t.result.Views, *decl)
}

// classifyClassBases inspects a class's superclass list. The first base
// whose name mentions LayoutView, View, or Modal decides the declaration
// kind. Modal classes may carry a title keyword in the base list.
func classifyClassBases(node *sitter.Node, src []byte, ev *valueEvaluator) (DeclKind, string) {
	bases := node.ChildByFieldName("superclasses")
	var declKind DeclKind
	var title string
	for _, base := range namedChildren(bases) {
		switch base.Kind() {
		case "keyword_argument":
			if nodeText(base.ChildByFieldName("name"), src) == "title" {
				if v, ok := ev.eval(base.ChildByFieldName("value")).(string); ok {
					title = v
				}
			}
			continue
		}
		name := baseName(base, src)
		if declKind != "" {
			continue
		}
		switch {
		case strings.Contains(name, "LayoutView"):
			declKind = DeclLayoutView
		case strings.Contains(name, "View"):
			declKind = DeclView
		case strings.Contains(name, "Modal"):
			declKind = DeclModal
		}
	}
	return declKind, title
}

func baseName(node *sitter.Node, src []byte) string {
	switch node.Kind() {
	case "identifier":
		return nodeText(node, src)
	case "attribute":
		return nodeText(node.ChildByFieldName("attribute"), src)
	}
	return ""
}

// walkDecorated extracts components declared through decorator factories,
// recording the decorated function's name as the callback, then descends
// into the definition itself.
func (t *traversal) walkDecorated(node *sitter.Node, sc *scope) {
	def := node.ChildByFieldName("definition")
	callback := ""
	if def != nil {
		callback = nodeText(def.ChildByFieldName("name"), t.src)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		dec := node.Child(i)
		if dec == nil || dec.Kind() != "decorator" {
			continue
		}
		expr := dec.NamedChild(0)
		if expr == nil || expr.Kind() != "call" {
			continue
		}
		kind, receiver, ok := classifyDecorator(expr, t.src)
		if !ok || !t.markProcessed(expr) {
			continue
		}
		comp := t.extractComponent(expr, kind, nodeLine(expr), callback, sc)
		t.emit(comp, sc)

		// A decorator invoked on a bound row variable places the component
		// inside that row.
		if sc.hierarchy != nil && receiver != "" && sc.hierarchy.isLayout(receiver) {
			key := syntheticID()
			attached := comp
			sc.hierarchy.bindItem(key, &attached)
			sc.hierarchy.addEdge(receiver, key, RelationAddItem, nodeLine(expr))
		}
	}

	if def != nil {
		t.walk(def, sc)
	}
}

// walkFunction descends into a function body, flagging __init__ of a
// declaration so self.add_item calls are honored there.
func (t *traversal) walkFunction(node *sitter.Node, sc *scope) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	if sc.decl != nil && nodeText(node.ChildByFieldName("name"), t.src) == "__init__" {
		inner := *sc
		inner.inInit = true
		t.walk(body, &inner)
		return
	}
	t.walk(body, sc)
}

// walkAssignment records the binding and extracts a component or layout
// node when the right-hand side constructs one. Covers plain and
// type-annotated assignments; only simple identifier targets bind.
func (t *traversal) walkAssignment(node *sitter.Node, sc *scope) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != "identifier" {
		return
	}
	name := nodeText(left, t.src)
	sc.bindings.set(name, right)

	call := unwrapParens(right)
	if call == nil || call.Kind() != "call" {
		return
	}
	if kind, ok := classifyConstructor(call, t.src); ok {
		if !t.markProcessed(call) {
			return
		}
		comp := t.extractComponent(call, kind, nodeLine(node), name, sc)
		t.emit(comp, sc)
		if sc.hierarchy != nil {
			bound := comp
			sc.hierarchy.bindItem(name, &bound)
		}
		return
	}
	if kind, ok := classifyContainer(call, t.src); ok && sc.hierarchy != nil {
		if !t.markProcessed(call) {
			return
		}
		sc.hierarchy.bindLayout(name, kind, t.layoutProperties(call), nodeLine(node))
	}
}

// walkCall handles relationship-establishing calls. Everything else is
// traversed generically; component constructors are only extracted from
// the positions the declarative library accepts them in.
func (t *traversal) walkCall(node *sitter.Node, sc *scope) {
	receiver, rel, ok := classifyRelation(node, t.src)
	if ok && sc.hierarchy != nil {
		parent := ""
		switch {
		case receiver == selfBinding:
			if sc.inInit {
				parent = selfBinding
			}
		case sc.hierarchy.isLayout(receiver):
			parent = receiver
		}
		if parent != "" {
			args := node.ChildByFieldName("arguments")
			for _, arg := range namedChildren(args) {
				t.relationChild(arg, sc, parent, rel, nodeLine(node))
			}
			return
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			t.walk(child, sc)
		}
	}
}

// relationChild records one child of a relationship edge. Bound names
// link directly; inline constructor calls are extracted on the spot and
// linked through a synthetic identifier — the "most recently extracted
// component" association. That heuristic can misattribute under exotic
// reordering but is kept for compatibility with the preview protocol.
func (t *traversal) relationChild(arg *sitter.Node, sc *scope, parent string, rel RelationKind, line int) {
	arg = unwrapParens(arg)
	if arg == nil {
		return
	}
	switch arg.Kind() {
	case "list", "tuple", "set":
		for _, element := range namedChildren(arg) {
			t.relationChild(element, sc, parent, rel, line)
		}
	case "identifier":
		sc.hierarchy.addEdge(parent, nodeText(arg, t.src), rel, line)
	case "call":
		fn := arg.ChildByFieldName("function")
		// row1() / sec1(): invoking a bound layout node references it.
		if fn != nil && fn.Kind() == "identifier" && sc.hierarchy.has(nodeText(fn, t.src)) {
			sc.hierarchy.addEdge(parent, nodeText(fn, t.src), rel, line)
			return
		}
		if kind, ok := classifyContainer(arg, t.src); ok {
			if !t.markProcessed(arg) {
				return
			}
			key := syntheticID()
			sc.hierarchy.bindLayout(key, kind, t.layoutProperties(arg), nodeLine(arg))
			sc.hierarchy.addEdge(parent, key, rel, line)
			return
		}
		if kind, ok := classifyConstructor(arg, t.src); ok {
			if !t.markProcessed(arg) {
				return
			}
			comp := t.extractComponent(arg, kind, line, "", sc)
			t.emit(comp, sc)
			key := syntheticID()
			bound := comp
			sc.hierarchy.bindItem(key, &bound)
			sc.hierarchy.addEdge(parent, key, rel, line)
		}
	}
}

// layoutProperties collects the evaluable keyword arguments of a layout
// node constructor. Layout nodes have no allow-list; unresolvable values
// are dropped quietly.
func (t *traversal) layoutProperties(call *sitter.Node) map[string]any {
	props := map[string]any{}
	quiet := &valueEvaluator{src: t.src}
	args := call.ChildByFieldName("arguments")
	for _, arg := range namedChildren(args) {
		if arg.Kind() != "keyword_argument" {
			continue
		}
		name := nodeText(arg.ChildByFieldName("name"), t.src)
		if value := quiet.eval(arg.ChildByFieldName("value")); value != nil {
			props[name] = value
		}
	}
	return props
}

// syntheticID produces a unique key for inline (unbound) children, scoped
// to the edge that created it.
func syntheticID() string {
	return "inline-" + uuid.NewString()
}
