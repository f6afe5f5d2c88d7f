package tool

import (
	"bytes"
	"encoding/json"
)

// envelopeField is the member some callers wrap their arguments in.
const envelopeField = "body"

// UnwrapEnvelope returns the value of the "body" member when input is a JSON
// object that has one, and input unchanged otherwise. Only one level is
// removed, so {"body": X} and X yield the same payload.
func UnwrapEnvelope(input json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(input)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return input
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return input
	}
	inner, ok := obj[envelopeField]
	if !ok {
		return input
	}
	return inner
}
