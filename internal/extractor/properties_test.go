package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// 1. Test button style normalization across enum paths, aliases, unknowns
// 2. Test text input style normalization by substring
// 3. Test separator spacing normalization with medium default
// 4. Test unknown keyword arguments are dropped silently
// 5. Test File accepts the filename as the first positional argument
// 6. Test media gallery items resolve through bindings to a count
// 7. Test literal evaluation: escapes, implicit concatenation, ints, None

func TestNormalizeButtonStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"discord.ButtonStyle.primary", "primary"},
		{"ButtonStyle.blurple", "primary"},
		{"discord.ButtonStyle.secondary", "secondary"},
		{"ButtonStyle.grey", "secondary"},
		{"ButtonStyle.gray", "secondary"},
		{"discord.ButtonStyle.success", "success"},
		{"ButtonStyle.green", "success"},
		{"discord.ButtonStyle.danger", "danger"},
		{"ButtonStyle.red", "danger"},
		{"discord.ButtonStyle.link", "link"},
		{"Primary", "primary"},
		{"ButtonStyle.mystery", "secondary"},
		{"", "secondary"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeButtonStyle(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeTextInputStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"discord.TextStyle.short", "short"},
		{"TextStyle.paragraph", "paragraph"},
		{"discord.TextStyle.long", "paragraph"},
		{"SHORT", "short"},
		{"something_else", "short"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeTextInputStyle(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeSpacing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "small", normalizeSpacing("discord.SeparatorSpacing.small"))
	assert.Equal(t, "large", normalizeSpacing("SeparatorSpacing.large"))
	assert.Equal(t, "medium", normalizeSpacing("discord.SeparatorSpacing.medium"))
	assert.Equal(t, "medium", normalizeSpacing("whatever"))
}

func TestUnknownKeywordsDropped(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

b = ui.Button(label='Hi', frobnicate='nope', timeout=30)
`
	result := extractSource(t, src)

	require.Len(t, result.Components, 1)
	props := result.Components[0].Properties
	assert.Equal(t, "Hi", props["label"])
	assert.NotContains(t, props, "frobnicate")
	assert.NotContains(t, props, "timeout")
	// Dropping an unknown keyword is not an error.
	assert.Empty(t, result.Errors)
}

func TestFilePositionalFilename(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

f = ui.File('welcome.png')
g = ui.File(filename='readme.txt', url='https://cdn.example/readme.txt')
`
	result := extractSource(t, src)

	require.Len(t, result.Components, 2)
	assert.Equal(t, "welcome.png", result.Components[0].Properties["filename"])
	assert.Equal(t, "readme.txt", result.Components[1].Properties["filename"])
	assert.Equal(t, "https://cdn.example/readme.txt", result.Components[1].Properties["url"])
}

func TestMediaGalleryItems(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

shots = ['a.png', 'b.png', 'c.png']
gallery = ui.MediaGallery(items=shots)
`
	result := extractSource(t, src)

	require.Len(t, result.Components, 1)
	props := result.Components[0].Properties
	assert.Equal(t, KindMediaGallery, result.Components[0].Kind)
	assert.Equal(t, []any{"a.png", "b.png", "c.png"}, props["items"])
	assert.Equal(t, 3, props["items_count"])
}

func TestMediaGalleryDynamicItemMarked(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

gallery = ui.MediaGallery(items=[resolve_url('x'), 'b.png'])
`
	result := extractSource(t, src)

	require.Len(t, result.Components, 1)
	props := result.Components[0].Properties
	assert.Equal(t, []any{DynamicMarker, "b.png"}, props["items"])
	assert.Equal(t, 2, props["items_count"])

	// The unevaluable element warns but does not fail extraction.
	require.Len(t, result.Errors, 1)
	assert.Equal(t, SeverityWarning, result.Errors[0].Severity)
}

func TestLiteralEvaluation(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

a = ui.TextInput(label='Tab\there', max_length=1_000)
b = ui.TextInput(label='one ' 'two', placeholder=None)
`
	result := extractSource(t, src)

	require.Len(t, result.Components, 2)
	assert.Equal(t, "Tab\there", result.Components[0].Properties["label"])
	assert.Equal(t, 1000, result.Components[0].Properties["max_length"])
	assert.Equal(t, "one two", result.Components[1].Properties["label"])
	// None carries no property and no warning.
	assert.NotContains(t, result.Components[1].Properties, "placeholder")
	assert.Empty(t, result.Errors)
}

func TestDecoratorOnBoundRow(t *testing.T) {
	t.Parallel()

	src := `from discord import ui

class V(ui.LayoutView):
    row1 = ui.ActionRow()

    @row1.button(label='Inside', custom_id='inside')
    async def inside(self, interaction, button):
        pass
`
	result := extractSource(t, src)

	view := viewByName(t, result, "V")
	require.Len(t, view.Components, 1)
	assert.Equal(t, "inside", view.Components[0].Properties["callback"])

	require.Len(t, view.Hierarchy, 1)
	row := view.Hierarchy[0]
	assert.Equal(t, NodeActionRow, row.Kind)
	require.Len(t, row.Children, 1)
	assert.Equal(t, "Inside", row.Children[0].Component.Properties["label"])
}
