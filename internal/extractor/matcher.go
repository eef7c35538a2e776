package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// The matcher is a small table-driven grammar over call expressions. A
// call denotes a component when its callable resolves to a known member
// name through one of the accepted reference forms:
//
//	formConstructor: namespace.ui.Name(...)  |  ui.Name(...)  |  Name(...)
//	formDecorator:   @ui.name(...)  |  @anyIdentifier.name(...)
//
// Classification is optimistic: a bare name colliding with an unrelated
// import still matches, because downstream consumers can discard unwanted
// hits but cannot recover silently dropped declarations.

type referenceForm int

const (
	formConstructor referenceForm = iota
	formDecorator
)

type matchRule struct {
	form   referenceForm
	member string
	kind   ComponentKind
}

var componentRules = []matchRule{
	{formConstructor, "Button", KindButton},
	{formConstructor, "Select", KindSelectMenu},
	{formConstructor, "StringSelect", KindSelectMenu},
	{formConstructor, "UserSelect", KindSelectMenu},
	{formConstructor, "RoleSelect", KindSelectMenu},
	{formConstructor, "ChannelSelect", KindSelectMenu},
	{formConstructor, "TextInput", KindTextInput},
	{formConstructor, "TextDisplay", KindTextDisplay},
	{formConstructor, "Label", KindLabel},
	{formConstructor, "Separator", KindSeparator},
	{formConstructor, "Thumbnail", KindThumbnail},
	{formConstructor, "File", KindFile},
	{formConstructor, "MediaGallery", KindMediaGallery},
	{formConstructor, "FileUpload", KindFileUpload},
	{formConstructor, "Modal", KindModal},
	{formDecorator, "button", KindButton},
	{formDecorator, "select", KindSelectMenu},
	{formDecorator, "string_select", KindSelectMenu},
	{formDecorator, "user_select", KindSelectMenu},
	{formDecorator, "role_select", KindSelectMenu},
	{formDecorator, "channel_select", KindSelectMenu},
}

// Layout node constructors follow the constructor reference forms only.
var containerRules = map[string]NodeKind{
	"Container": NodeContainer,
	"Section":   NodeSection,
	"ActionRow": NodeActionRow,
}

// classifyConstructor reports the component kind declared by a call in one
// of the constructor reference forms.
func classifyConstructor(call *sitter.Node, src []byte) (ComponentKind, bool) {
	member, ok := constructorMember(call.ChildByFieldName("function"), src)
	if !ok {
		return "", false
	}
	for _, rule := range componentRules {
		if rule.form == formConstructor && rule.member == member {
			return rule.kind, true
		}
	}
	return "", false
}

// classifyContainer reports the layout node kind declared by a call in one
// of the constructor reference forms.
func classifyContainer(call *sitter.Node, src []byte) (NodeKind, bool) {
	member, ok := constructorMember(call.ChildByFieldName("function"), src)
	if !ok {
		return "", false
	}
	kind, ok := containerRules[member]
	return kind, ok
}

// classifyDecorator reports the component kind declared by a decorator
// factory call and the receiver identifier it was invoked on. The receiver
// is empty for the qualified ui forms; otherwise it is the bound row or
// owner variable (rows are user-named, so any identifier is accepted).
func classifyDecorator(call *sitter.Node, src []byte) (kind ComponentKind, receiver string, ok bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "attribute" {
		return "", "", false
	}
	member := nodeText(fn.ChildByFieldName("attribute"), src)
	matched := false
	for _, rule := range componentRules {
		if rule.form == formDecorator && rule.member == member {
			kind = rule.kind
			matched = true
			break
		}
	}
	if !matched {
		return "", "", false
	}
	obj := fn.ChildByFieldName("object")
	if obj == nil {
		return "", "", false
	}
	switch obj.Kind() {
	case "attribute":
		// discord.ui.button
		if nodeText(obj.ChildByFieldName("attribute"), src) == "ui" {
			return kind, "", true
		}
	case "identifier":
		// ui.button, or a bound row variable like row1.select
		name := nodeText(obj, src)
		if name == "ui" {
			return kind, "", true
		}
		return kind, name, true
	}
	return "", "", false
}

// isSelectOptionCall reports whether a call constructs a select option,
// in any qualification.
func isSelectOptionCall(call *sitter.Node, src []byte) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	switch fn.Kind() {
	case "identifier":
		return nodeText(fn, src) == "SelectOption"
	case "attribute":
		return nodeText(fn.ChildByFieldName("attribute"), src) == "SelectOption"
	}
	return false
}

// relationMembers maps method names that establish containment edges.
var relationMembers = map[string]RelationKind{
	"add_item":    RelationAddItem,
	"append_item": RelationAppendItem,
	"add_section": RelationAddSection,
	"add_row":     RelationAddRow,
}

// classifyRelation reports whether a call establishes a parent/child edge,
// returning the receiver binding name and the relation kind. Only calls on
// a plain identifier receiver qualify (self or a bound layout variable).
func classifyRelation(call *sitter.Node, src []byte) (receiver string, rel RelationKind, ok bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "attribute" {
		return "", "", false
	}
	rel, ok = relationMembers[nodeText(fn.ChildByFieldName("attribute"), src)]
	if !ok {
		return "", "", false
	}
	obj := fn.ChildByFieldName("object")
	if obj == nil || obj.Kind() != "identifier" {
		return "", "", false
	}
	return nodeText(obj, src), rel, true
}

// constructorMember extracts the member name of a constructor-form callable
// and whether its qualifier is acceptable: bare identifier, ui.<Name>, or
// <anything>.ui.<Name>.
func constructorMember(fn *sitter.Node, src []byte) (string, bool) {
	if fn == nil {
		return "", false
	}
	switch fn.Kind() {
	case "identifier":
		return nodeText(fn, src), true
	case "attribute":
		member := nodeText(fn.ChildByFieldName("attribute"), src)
		obj := fn.ChildByFieldName("object")
		if obj == nil {
			return "", false
		}
		switch obj.Kind() {
		case "identifier":
			return member, nodeText(obj, src) == "ui"
		case "attribute":
			return member, nodeText(obj.ChildByFieldName("attribute"), src) == "ui"
		}
	}
	return "", false
}
