package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// 1. Test the layout fixture rebuilds container -> section -> row -> item
// 2. Test layout nodes always serialize a children list, even when empty
// 3. Test unattached bound layout nodes become roots in binding order
// 4. Test bare bound items never become roots without a self edge
// 5. Test cyclic edges terminate instead of recursing forever
// 6. Test invoking a bound layout name (row()) references the binding

func TestHierarchyLayoutFixture(t *testing.T) {
	t.Parallel()

	result := extractFixture(t, "layout_view.py")

	assert.Empty(t, result.Errors)
	require.Len(t, result.Views, 1)

	view := result.Views[0]
	assert.Equal(t, "ShopLayout", view.Name)
	assert.Equal(t, DeclLayoutView, view.DeclKind)
	assert.True(t, view.RequiresManualLayout)
	assert.Len(t, view.Components, 4)

	require.Len(t, view.Hierarchy, 1)
	container := view.Hierarchy[0]
	assert.Equal(t, NodeContainer, container.Kind)
	require.Len(t, container.Children, 3)

	header := container.Children[0]
	assert.Equal(t, NodeItem, header.Kind)
	require.NotNil(t, header.Component)
	assert.Equal(t, KindTextDisplay, header.Component.Kind)

	section := container.Children[1]
	assert.Equal(t, NodeSection, section.Kind)
	require.Len(t, section.Children, 2)
	assert.Equal(t, NodeItem, section.Children[0].Kind)

	row := section.Children[1]
	assert.Equal(t, NodeActionRow, row.Kind)
	require.Len(t, row.Children, 1)
	buy := row.Children[0]
	require.NotNil(t, buy.Component)
	assert.Equal(t, KindButton, buy.Component.Kind)
	assert.Equal(t, "Buy", buy.Component.Properties["label"])
	assert.Equal(t, "success", buy.Component.Properties["style"])

	separator := container.Children[2]
	assert.Equal(t, NodeItem, separator.Kind)
	require.NotNil(t, separator.Component)
	assert.Equal(t, KindSeparator, separator.Component.Kind)
	assert.Equal(t, "large", separator.Component.Properties["spacing"])
}

func TestHierarchyUnattachedLayoutRoots(t *testing.T) {
	t.Parallel()

	h := newHierarchyBuilder()
	h.bindLayout("row_a", NodeActionRow, nil, 3)
	h.bindLayout("row_b", NodeActionRow, nil, 7)

	roots := h.build()
	require.Len(t, roots, 2)
	assert.Equal(t, 3, roots[0].Line)
	assert.Equal(t, 7, roots[1].Line)
	// Children must be present for renderers even when nothing attached.
	assert.NotNil(t, roots[0].Children)
	assert.Empty(t, roots[0].Children)
}

func TestHierarchyItemsAreNotImplicitRoots(t *testing.T) {
	t.Parallel()

	h := newHierarchyBuilder()
	h.bindItem("btn", &Component{Kind: KindButton, Properties: map[string]any{}, Line: 4})

	assert.Empty(t, h.build())
}

func TestHierarchySelfEdgesBecomeRoots(t *testing.T) {
	t.Parallel()

	h := newHierarchyBuilder()
	h.bindLayout("container", NodeContainer, nil, 2)
	h.bindItem("btn", &Component{Kind: KindButton, Properties: map[string]any{}, Line: 3})
	h.addEdge("container", "btn", RelationAddItem, 4)
	h.addEdge(selfBinding, "container", RelationAddItem, 5)

	roots := h.build()
	require.Len(t, roots, 1)
	assert.Equal(t, NodeContainer, roots[0].Kind)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, NodeItem, roots[0].Children[0].Kind)
}

func TestHierarchyCyclicEdgesTerminate(t *testing.T) {
	t.Parallel()

	h := newHierarchyBuilder()
	h.bindLayout("a", NodeContainer, nil, 1)
	h.bindLayout("b", NodeSection, nil, 2)
	h.addEdge("a", "b", RelationAddSection, 3)
	h.addEdge("b", "a", RelationAddItem, 4)
	h.addEdge(selfBinding, "a", RelationAddItem, 5)

	roots := h.build()
	require.Len(t, roots, 1)
	a := roots[0]
	require.Len(t, a.Children, 1)
	// The back edge to the visited ancestor is dropped.
	assert.Empty(t, a.Children[0].Children)
}

func TestHierarchySingleChainRoundTrip(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

class Chain(ui.LayoutView):
    def __init__(self):
        super().__init__()
        container = ui.Container()
        section = ui.Section()
        row = ui.ActionRow()
        btn = ui.Button(label='Only', custom_id='only')
        row.add_item(btn)
        section.add_row(row)
        container.add_section(section)
        self.add_item(container)
`
	result := extractSource(t, src)
	view := viewByName(t, result, "Chain")

	// Exactly one root, one child per level, item leaf at the bottom.
	require.Len(t, view.Hierarchy, 1)
	container := view.Hierarchy[0]
	assert.Equal(t, NodeContainer, container.Kind)
	require.Len(t, container.Children, 1)

	section := container.Children[0]
	assert.Equal(t, NodeSection, section.Kind)
	require.Len(t, section.Children, 1)

	row := section.Children[0]
	assert.Equal(t, NodeActionRow, row.Kind)
	require.Len(t, row.Children, 1)

	item := row.Children[0]
	assert.Equal(t, NodeItem, item.Kind)
	require.NotNil(t, item.Component)
	assert.Equal(t, KindButton, item.Component.Kind)
	assert.Empty(t, item.Children)
}

func TestHierarchyBoundNameInvocation(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

class V(ui.LayoutView):
    def __init__(self):
        super().__init__()
        row = ui.ActionRow()
        row.add_item(ui.Button(label='Go', custom_id='go'))
        self.add_item(row())
`
	result := extractSource(t, src)
	require.Len(t, result.Views, 1)

	view := result.Views[0]
	require.Len(t, view.Hierarchy, 1)
	row := view.Hierarchy[0]
	assert.Equal(t, NodeActionRow, row.Kind)
	require.Len(t, row.Children, 1)
	assert.Equal(t, "Go", row.Children[0].Component.Properties["label"])
}
