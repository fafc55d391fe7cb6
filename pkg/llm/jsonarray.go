package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrMalformedOutput means the model response could not be coerced into a
// JSON array by any strategy. The wrapping error carries a truncated excerpt
// of the raw response for diagnostics.
var ErrMalformedOutput = errors.New("could not parse model response as JSON array")

const excerptLimit = 500

var fenceMarker = regexp.MustCompile("```(?:json)?\n?")

// ExtractArray parses a JSON array of objects out of a raw model response.
// Models decorate their output in predictable ways, so this tolerates:
//   - markdown code fences (```json ... ```)
//   - the array wrapped inside an object ({"cards": [...]})
//   - leading/trailing prose around a bracketed array
//
// Non-object elements are skipped; callers apply their own shape validation
// on the returned objects.
func ExtractArray(raw string) ([]map[string]any, error) {
	text := fenceMarker.ReplaceAllString(raw, "")
	text = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), "`"))

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		if items, ok := asObjectSlice(parsed); ok {
			return items, nil
		}
	}

	// Fallback: widest [...] substring, tolerating prose on either side.
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		var arr []any
		if err := json.Unmarshal([]byte(text[start:end+1]), &arr); err == nil {
			return objectsOf(arr), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, excerpt(raw))
}

// asObjectSlice accepts either a bare array or an object whose first
// array-valued field holds the payload.
func asObjectSlice(parsed any) ([]map[string]any, bool) {
	switch v := parsed.(type) {
	case []any:
		return objectsOf(v), true
	case map[string]any:
		// Sorted keys keep "first array value" deterministic.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := v[k].([]any); ok {
				return objectsOf(arr), true
			}
		}
	}
	return nil, false
}

func objectsOf(arr []any) []map[string]any {
	items := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}

func excerpt(raw string) string {
	if len(raw) > excerptLimit {
		return raw[:excerptLimit]
	}
	return raw
}
