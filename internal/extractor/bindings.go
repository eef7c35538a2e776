package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// bindingTable maps identifiers to the expression last assigned to them
// within one declaration scope. Each View/Modal/LayoutView body gets its
// own table, chained to the module scope so class bodies can still see
// module-level option arrays. Tables are never shared across declarations.
type bindingTable struct {
	parent *bindingTable
	values map[string]*sitter.Node
}

func newBindingTable(parent *bindingTable) *bindingTable {
	return &bindingTable{
		parent: parent,
		values: make(map[string]*sitter.Node),
	}
}

// set records the expression last assigned to name in this scope,
// shadowing any outer binding.
func (b *bindingTable) set(name string, expr *sitter.Node) {
	b.values[name] = expr
}

// lookup resolves name through this scope and its ancestors.
func (b *bindingTable) lookup(name string) (*sitter.Node, bool) {
	for table := b; table != nil; table = table.parent {
		if expr, ok := table.values[name]; ok {
			return expr, true
		}
	}
	return nil, false
}
