package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractPayload pulls the structured object out of a raw generation
// response. The service is asked for bare JSON but routinely wraps it in
// prose or a fenced block, and occasionally in a single-element array, so
// the response is treated as untrusted text: extract first, validate after.
func extractPayload(raw string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(stripFences(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("empty response text")
	}

	var value interface{}
	if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
		if obj := asObject(value); obj != nil {
			return obj, nil
		}
	}

	// The payload may be embedded in surrounding prose.
	candidate := firstBalancedObject(trimmed)
	if candidate != "" {
		if err := json.Unmarshal([]byte(candidate), &value); err == nil {
			if obj := asObject(value); obj != nil {
				return obj, nil
			}
		}
	}

	return nil, fmt.Errorf("no structured payload in response")
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

// asObject unwraps the decoded value into an object. The model sometimes
// returns a list holding a single object; take its first element.
func asObject(value interface{}) map[string]interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		return typed
	case []interface{}:
		if len(typed) > 0 {
			if obj, ok := typed[0].(map[string]interface{}); ok {
				return obj
			}
		}
	}
	return nil
}

// firstBalancedObject returns the first brace-balanced JSON object in the
// text, tracking string literals so braces inside values do not miscount.
func firstBalancedObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
