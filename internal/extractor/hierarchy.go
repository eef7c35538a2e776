package extractor

// The hierarchy builder reconstructs a containment tree from a flat
// stream of relationship-establishing calls observed during traversal.
// Bindings arrive as partially-built nodes; edges arrive as
// {parent, child, relation, line}; build assembles the forest after the
// declaration body is fully traversed.

// selfBinding is the receiver name denoting the owning declaration
// instance. Edges whose parent is the instance itself become roots.
const selfBinding = "self"

type relationshipEdge struct {
	Parent   string
	Child    string
	Relation RelationKind
	Line     int
}

type hierarchyBuilder struct {
	nodes map[string]*HierarchyNode
	order []string
	edges []relationshipEdge
}

func newHierarchyBuilder() *hierarchyBuilder {
	return &hierarchyBuilder{nodes: make(map[string]*HierarchyNode)}
}

// bindLayout registers a container, section, or action row under its
// binding name with an empty children accumulator.
func (h *hierarchyBuilder) bindLayout(name string, kind NodeKind, props map[string]any, line int) {
	h.bind(name, &HierarchyNode{
		Kind:       kind,
		Properties: props,
		Line:       line,
		Children:   []*HierarchyNode{},
	})
}

// bindItem registers a component under its binding name (or a synthetic
// identifier for inline arguments).
func (h *hierarchyBuilder) bindItem(name string, comp *Component) {
	h.bind(name, &HierarchyNode{
		Kind:      NodeItem,
		Component: comp,
		Line:      comp.Line,
	})
}

func (h *hierarchyBuilder) bind(name string, node *HierarchyNode) {
	if _, exists := h.nodes[name]; !exists {
		h.order = append(h.order, name)
	}
	h.nodes[name] = node
}

// has reports whether name is bound to a hierarchy node in this scope.
func (h *hierarchyBuilder) has(name string) bool {
	_, ok := h.nodes[name]
	return ok
}

// isLayout reports whether name is bound to a non-item node.
func (h *hierarchyBuilder) isLayout(name string) bool {
	node, ok := h.nodes[name]
	return ok && node.Kind != NodeItem
}

// addEdge records one relationship-establishing call.
func (h *hierarchyBuilder) addEdge(parent, child string, rel RelationKind, line int) {
	h.edges = append(h.edges, relationshipEdge{Parent: parent, Child: child, Relation: rel, Line: line})
}

// build assembles the forest top-down. Roots are the children of edges
// whose parent is the declaration instance itself, followed by bound
// layout nodes that no edge claimed as a child. Traversal terminates at
// item nodes, which have no children by construction.
func (h *hierarchyBuilder) build() []*HierarchyNode {
	childSet := make(map[string]bool, len(h.edges))
	for _, edge := range h.edges {
		if edge.Parent != selfBinding {
			childSet[edge.Child] = true
		}
	}

	roots := []*HierarchyNode{}
	attached := make(map[string]bool)
	for _, edge := range h.edges {
		if edge.Parent != selfBinding {
			continue
		}
		if node := h.resolve(edge.Child, map[string]bool{}); node != nil {
			roots = append(roots, node)
			attached[edge.Child] = true
		}
	}
	for _, name := range h.order {
		if attached[name] || childSet[name] || !h.isLayout(name) {
			continue
		}
		if node := h.resolve(name, map[string]bool{}); node != nil {
			roots = append(roots, node)
		}
	}
	return roots
}

// resolve materializes one node with its recursive children. The visited
// set guards against cyclic edges from pathological sources.
func (h *hierarchyBuilder) resolve(name string, visited map[string]bool) *HierarchyNode {
	node, ok := h.nodes[name]
	if !ok || visited[name] {
		return nil
	}
	if node.Kind == NodeItem {
		return node
	}
	visited[name] = true
	children := []*HierarchyNode{}
	for _, edge := range h.edges {
		if edge.Parent != name {
			continue
		}
		if child := h.resolve(edge.Child, visited); child != nil {
			children = append(children, child)
		}
	}
	delete(visited, name)
	node.Children = children
	return node
}
