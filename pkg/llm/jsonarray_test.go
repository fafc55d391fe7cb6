package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArrayPlainJSON(t *testing.T) {
	raw := `[{"front":"What is Go?","back":"A programming language"},{"front":"Who made it?","back":"Google"}]`

	items, err := ExtractArray(raw)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "What is Go?", items[0]["front"])
	assert.Equal(t, "Google", items[1]["back"])
}

func TestExtractArrayRoundTrip(t *testing.T) {
	original := []map[string]any{
		{"question": "Q1", "options": []any{"a", "b", "c", "d"}, "correct_index": float64(2)},
		{"question": "Q2", "options": []any{"w", "x", "y", "z"}, "correct_index": float64(0)},
	}
	serialized, err := json.Marshal(original)
	require.NoError(t, err)

	items, err := ExtractArray(string(serialized))

	require.NoError(t, err)
	assert.Equal(t, original, items)
}

func TestExtractArrayMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "json fence", raw: "```json\n[{\"front\":\"a\",\"back\":\"b\"}]\n```"},
		{name: "bare fence", raw: "```\n[{\"front\":\"a\",\"back\":\"b\"}]\n```"},
		{name: "fence without newline", raw: "```json[{\"front\":\"a\",\"back\":\"b\"}]```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ExtractArray(tt.raw)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "a", items[0]["front"])
		})
	}
}

func TestExtractArrayObjectWrapped(t *testing.T) {
	raw := `{"flashcards":[{"front":"a","back":"b"},{"front":"c","back":"d"}]}`

	items, err := ExtractArray(raw)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestExtractArrayLeadingProse(t *testing.T) {
	raw := "Sure! Here are your flashcards:\n\n[{\"front\":\"a\",\"back\":\"b\"}]\n\nLet me know if you need more."

	items, err := ExtractArray(raw)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0]["back"])
}

func TestExtractArraySkipsNonObjectElements(t *testing.T) {
	raw := `[{"front":"a","back":"b"}, "stray string", 42, {"front":"c","back":"d"}]`

	items, err := ExtractArray(raw)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestExtractArrayMalformed(t *testing.T) {
	raw := "I am sorry, I cannot help with that request."

	_, err := ExtractArray(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedOutput)
	assert.Contains(t, err.Error(), "I am sorry")
}

func TestExtractArrayExcerptTruncated(t *testing.T) {
	raw := "garbage " + strings.Repeat("x", 2000)

	_, err := ExtractArray(raw)

	require.Error(t, err)
	// Sentinel text + 500-char excerpt, nothing close to the full 2KB payload.
	assert.Less(t, len(err.Error()), 700)
}
