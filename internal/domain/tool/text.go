package tool

import (
	"bytes"
	"encoding/json"
)

// TextRule turns the backend's JSON answer into the human-readable summary.
type TextRule func(structured json.RawMessage) string

// StaticText always yields sentence.
func StaticText(sentence string) TextRule {
	return func(json.RawMessage) string { return sentence }
}

// PreferFields yields the first of fields that is present in the backend
// object as a string, in the given order, and fallback when none is.
// Null and non-string members are skipped.
func PreferFields(fallback string, fields ...string) TextRule {
	return func(structured json.RawMessage) string {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(structured, &obj); err != nil {
			return fallback
		}
		for _, field := range fields {
			raw, ok := obj[field]
			if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				return s
			}
		}
		return fallback
	}
}
