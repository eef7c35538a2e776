package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Per-kind keyword allow-lists. Anything outside the list is dropped
// silently; the preview only renders what it knows how to draw.
var propertyAllowList = map[ComponentKind]map[string]bool{
	KindButton:       allow("label", "style", "custom_id", "disabled", "emoji", "url", "row"),
	KindSelectMenu:   allow("custom_id", "placeholder", "min_values", "max_values", "disabled", "row"),
	KindTextInput:    allow("label", "style", "custom_id", "placeholder", "default", "required", "min_length", "max_length", "row"),
	KindTextDisplay:  allow("content", "style"),
	KindLabel:        allow("text", "for"),
	KindSeparator:    allow("spacing"),
	KindThumbnail:    allow("url", "alt", "width", "height"),
	KindFile:         allow("filename", "url", "size"),
	KindMediaGallery: allow(),
	KindFileUpload:   allow("accept", "multiple"),
	KindModal:        allow("title", "custom_id"),
}

// Select option constructors accept their own allow-list.
var optionAllowList = allow("label", "value", "description", "emoji", "default")

func allow(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}

// extractComponent builds a Component from a matched call. callback is the
// associated binding or decorated-function name, empty when none.
func (t *traversal) extractComponent(call *sitter.Node, kind ComponentKind, line int, callback string, sc *scope) Component {
	props := map[string]any{}
	allowed := propertyAllowList[kind]
	args := call.ChildByFieldName("arguments")

	for _, arg := range namedChildren(args) {
		if arg.Kind() != "keyword_argument" {
			continue
		}
		name := nodeText(arg.ChildByFieldName("name"), t.src)
		valueNode := arg.ChildByFieldName("value")

		switch {
		case kind == KindSelectMenu && name == "options":
			resolver := &optionResolver{ev: t.ev, bindings: sc.bindings, src: t.src}
			if options := resolver.resolve(valueNode); len(options) > 0 {
				props["options"] = options
			}
		case kind == KindMediaGallery && name == "items":
			t.extractGalleryItems(valueNode, sc, props)
		case allowed[name]:
			value := t.ev.eval(valueNode)
			if value == nil {
				continue
			}
			if s, isString := value.(string); isString {
				switch {
				case kind == KindButton && name == "style":
					value = normalizeButtonStyle(s)
				case kind == KindTextInput && name == "style":
					value = normalizeTextInputStyle(s)
				case kind == KindSeparator && name == "spacing":
					value = normalizeSpacing(s)
				}
			}
			props[name] = value
		}
	}

	if kind == KindFile {
		t.extractFilePositional(args, props)
	}
	if callback != "" {
		props["callback"] = callback
	}

	return Component{Kind: kind, Properties: props, Line: line}
}

// extractFilePositional honors File("welcome.png") — the filename may
// arrive as the first positional argument instead of a keyword.
func (t *traversal) extractFilePositional(args *sitter.Node, props map[string]any) {
	if _, present := props["filename"]; present {
		return
	}
	for _, arg := range namedChildren(args) {
		if arg.Kind() == "keyword_argument" {
			continue
		}
		if value := t.ev.eval(arg); value != nil {
			props["filename"] = value
		}
		return
	}
}

// extractGalleryItems stores a resolvable media gallery list verbatim and
// reduces it to an item count. Named variables resolve through the scope
// binding table first.
func (t *traversal) extractGalleryItems(node *sitter.Node, sc *scope, props map[string]any) {
	node = unwrapParens(node)
	if node != nil && node.Kind() == "identifier" {
		if bound, ok := sc.bindings.lookup(nodeText(node, t.src)); ok {
			node = unwrapParens(bound)
		}
	}
	if node == nil || node.Kind() != "list" {
		return
	}
	items := []any{}
	for _, element := range namedChildren(node) {
		value := t.ev.eval(element)
		if value == nil {
			value = DynamicMarker
		}
		items = append(items, value)
	}
	props["items"] = items
	props["items_count"] = len(items)
}

// normalizeButtonStyle maps qualified enum references and bare tokens to
// the closed button style set. Unknown tokens fall back to secondary, the
// most conservative rendering.
func normalizeButtonStyle(style string) string {
	segments := strings.Split(style, ".")
	simple := strings.ToLower(segments[len(segments)-1])
	switch simple {
	case "primary", "secondary", "success", "danger", "link":
		return simple
	case "green":
		return "success"
	case "red":
		return "danger"
	case "grey", "gray":
		return "secondary"
	case "blurple":
		return "primary"
	}
	return "secondary"
}

// normalizeTextInputStyle reduces text input styles to short or paragraph.
func normalizeTextInputStyle(style string) string {
	lower := strings.ToLower(style)
	if strings.Contains(lower, "short") {
		return "short"
	}
	if strings.Contains(lower, "paragraph") || strings.Contains(lower, "long") {
		return "paragraph"
	}
	return "short"
}

// normalizeSpacing reduces separator spacing to small, medium, or large,
// defaulting to medium.
func normalizeSpacing(spacing string) string {
	segments := strings.Split(spacing, ".")
	switch strings.ToLower(segments[len(segments)-1]) {
	case "small":
		return "small"
	case "large":
		return "large"
	}
	return "medium"
}
