package extractor

// ComponentKind identifies one declared interactive or display element.
type ComponentKind string

const (
	KindButton       ComponentKind = "button"
	KindSelectMenu   ComponentKind = "select_menu"
	KindTextInput    ComponentKind = "text_input"
	KindTextDisplay  ComponentKind = "text_display"
	KindLabel        ComponentKind = "label"
	KindSeparator    ComponentKind = "separator"
	KindThumbnail    ComponentKind = "thumbnail"
	KindFile         ComponentKind = "file"
	KindMediaGallery ComponentKind = "media_gallery"
	KindFileUpload   ComponentKind = "file_upload"
	KindModal        ComponentKind = "modal"
)

// Component is one extracted UI element declaration.
// Properties only ever contains keys from the kind's allow-list; unknown
// keyword arguments are dropped during extraction, not reported.
type Component struct {
	Kind       ComponentKind  `json:"kind"`
	Properties map[string]any `json:"properties"`
	Line       int            `json:"line"`
}

// DeclKind classifies a component-owning class declaration.
type DeclKind string

const (
	DeclView       DeclKind = "View"
	DeclModal      DeclKind = "Modal"
	DeclLayoutView DeclKind = "LayoutView"
)

// ViewDecl is the extracted structure of one View, Modal, or LayoutView
// class: its flat component list plus the reconstructed layout hierarchy.
type ViewDecl struct {
	Name                 string           `json:"name"`
	DeclKind             DeclKind         `json:"type"`
	Line                 int              `json:"line"`
	Title                string           `json:"title,omitempty"`
	Components           []Component      `json:"components"`
	Hierarchy            []*HierarchyNode `json:"hierarchy"`
	RequiresManualLayout bool             `json:"requires_manual_layout"`
}

// NodeKind tags a hierarchy node as a leaf item or one of the layout
// grouping kinds.
type NodeKind string

const (
	NodeItem      NodeKind = "item"
	NodeContainer NodeKind = "container"
	NodeSection   NodeKind = "section"
	NodeActionRow NodeKind = "action_row"
)

// HierarchyNode is one node of a reconstructed layout tree. Item nodes
// carry the component and no children. Layout nodes (container, section,
// action row) always carry a children list, empty when none were found —
// renderers rely on the list being present.
type HierarchyNode struct {
	Kind       NodeKind         `json:"kind"`
	Component  *Component       `json:"component,omitempty"`
	Properties map[string]any   `json:"properties,omitempty"`
	Line       int              `json:"line"`
	Children   []*HierarchyNode `json:"children,omitempty"`
}

// RelationKind names the call that established a parent/child edge.
type RelationKind string

const (
	RelationAddItem    RelationKind = "add_item"
	RelationAppendItem RelationKind = "append_item"
	RelationAddSection RelationKind = "add_section"
	RelationAddRow     RelationKind = "add_row"
)

// ExtractResult is the complete output for one source file.
type ExtractResult struct {
	Components []Component  `json:"components"`
	Errors     []Diagnostic `json:"errors"`
	Views      []ViewDecl   `json:"views"`
}

// newExtractResult returns a result with all collections initialized so
// the JSON output always serializes arrays, never null.
func newExtractResult() *ExtractResult {
	return &ExtractResult{
		Components: []Component{},
		Errors:     []Diagnostic{},
		Views:      []ViewDecl{},
	}
}

// DynamicMarker is stored for option fields whose existence is known but
// whose value cannot be determined statically.
const DynamicMarker = "<dynamic>"
