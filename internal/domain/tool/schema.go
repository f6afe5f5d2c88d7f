package tool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("tool input validation failed")

// ValidationError reports why an input was rejected before any backend call.
type ValidationError struct {
	Tool   string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Tool, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InputSchema checks a tool input and returns the payload to forward.
// A nil payload means "no payload"; the backend client sends {} for it.
type InputSchema interface {
	// JSONSchema is the schema advertised to protocol clients. Its type is
	// always "object".
	JSONSchema() *jsonschema.Schema
	Validate(input json.RawMessage) (json.RawMessage, error)
}

// AnyJSON accepts any well-formed JSON value unchanged. It is used for tools
// whose backend validates its own input.
type AnyJSON struct {
	// BodyDescription documents the expected backend body for clients.
	BodyDescription string
}

func (s AnyJSON) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"body": {Description: s.BodyDescription},
		},
	}
}

func (AnyJSON) Validate(input json.RawMessage) (json.RawMessage, error) {
	if isAbsent(input) {
		return nil, nil
	}
	if !json.Valid(input) {
		return nil, errors.New("input is not well-formed JSON")
	}
	return input, nil
}

// Strict validates input against a declared JSON Schema and decodes it into T.
// The forwarded payload is T re-encoded, so undeclared fields are dropped,
// absent optional fields stay absent and keys follow T's field order. Number
// fields of T should be json.Number to keep the caller's digits.
type Strict[T any] struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

func NewStrict[T any](schema *jsonschema.Schema) (*Strict[T], error) {
	if schema == nil || schema.Type != "object" {
		return nil, fmt.Errorf("%w: strict schema must have type object", ErrInvalidDefinition)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve schema: %w", ErrInvalidDefinition, err)
	}
	return &Strict[T]{schema: schema, resolved: resolved}, nil
}

// MustStrict is NewStrict for package-level catalogs.
func MustStrict[T any](schema *jsonschema.Schema) *Strict[T] {
	s, err := NewStrict[T](schema)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Strict[T]) JSONSchema() *jsonschema.Schema { return s.schema }

func (s *Strict[T]) Validate(input json.RawMessage) (json.RawMessage, error) {
	if isAbsent(input) {
		input = json.RawMessage(`{}`)
	}
	var instance any
	if err := json.Unmarshal(input, &instance); err != nil {
		return nil, fmt.Errorf("input is not well-formed JSON: %w", err)
	}
	if err := s.resolved.Validate(instance); err != nil {
		return nil, err
	}
	var typed T
	if err := json.Unmarshal(input, &typed); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	out, err := json.Marshal(typed)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return out, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
