package tool

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
)

type noteInput struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitzero"`
	Note  *string  `json:"note,omitempty"`
	Limit *float64 `json:"limit,omitempty"`
}

func noteSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"title"},
		Properties: map[string]*jsonschema.Schema{
			"title": {Type: "string", MinLength: jsonschema.Ptr(1)},
			"tags":  {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"note":  {Type: "string"},
			"limit": {Type: "number"},
		},
	}
}

func TestAnyJSON_Validate(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{"a":1}`, `[1,2]`, `"text"`, `42`, `true`} {
		out, err := AnyJSON{}.Validate(json.RawMessage(in))
		if err != nil {
			t.Fatalf("Validate(%s) returned error: %v", in, err)
		}
		if string(out) != in {
			t.Fatalf("Validate(%s) = %s; want input unchanged", in, out)
		}
	}

	for _, in := range []string{``, `null`, "  "} {
		out, err := AnyJSON{}.Validate(json.RawMessage(in))
		if err != nil || out != nil {
			t.Fatalf("Validate(%q) = %s, %v; want nil, nil", in, out, err)
		}
	}

	if _, err := (AnyJSON{}).Validate(json.RawMessage(`{"a":`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestAnyJSON_JSONSchema_IsObjectWithBody(t *testing.T) {
	t.Parallel()

	s := AnyJSON{BodyDescription: "JSON body for /posts/ideas"}.JSONSchema()
	if s.Type != "object" {
		t.Fatalf("Type = %q; want object", s.Type)
	}
	body, ok := s.Properties["body"]
	if !ok || body.Description != "JSON body for /posts/ideas" {
		t.Fatalf("expected documented body property, got %#v", s.Properties)
	}
}

func TestNewStrict_RejectsNonObjectSchema(t *testing.T) {
	t.Parallel()

	if _, err := NewStrict[noteInput](&jsonschema.Schema{Type: "string"}); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
	if _, err := NewStrict[noteInput](nil); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition for nil schema, got %v", err)
	}
}

func TestStrict_Validate(t *testing.T) {
	t.Parallel()

	s := MustStrict[noteInput](noteSchema())

	t.Run("minimal input keeps optionals absent", func(t *testing.T) {
		t.Parallel()
		out, err := s.Validate(json.RawMessage(`{"title":"Hello"}`))
		if err != nil {
			t.Fatalf("Validate returned error: %v", err)
		}
		if string(out) != `{"title":"Hello"}` {
			t.Fatalf("payload = %s; want {\"title\":\"Hello\"}", out)
		}
	})

	t.Run("optionals forwarded when set", func(t *testing.T) {
		t.Parallel()
		out, err := s.Validate(json.RawMessage(`{"title":"Hi","tags":[],"note":"","limit":3}`))
		if err != nil {
			t.Fatalf("Validate returned error: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(out, &got); err != nil {
			t.Fatalf("payload is not JSON: %v", err)
		}
		for _, key := range []string{"tags", "note", "limit"} {
			if _, ok := got[key]; !ok {
				t.Fatalf("expected %q in payload %s", key, out)
			}
		}
	})

	t.Run("undeclared fields dropped", func(t *testing.T) {
		t.Parallel()
		out, err := s.Validate(json.RawMessage(`{"title":"Hi","extra":true}`))
		if err != nil {
			t.Fatalf("Validate returned error: %v", err)
		}
		if strings.Contains(string(out), "extra") {
			t.Fatalf("expected undeclared field to be dropped, got %s", out)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()
		_, err := s.Validate(json.RawMessage(`{}`))
		if err == nil || !strings.Contains(err.Error(), "title") {
			t.Fatalf("expected error naming title, got %v", err)
		}
	})

	t.Run("absent input validated as empty object", func(t *testing.T) {
		t.Parallel()
		if _, err := s.Validate(nil); err == nil {
			t.Fatal("expected error for absent input")
		}
	})

	t.Run("empty string rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := s.Validate(json.RawMessage(`{"title":""}`)); err == nil {
			t.Fatal("expected minLength error")
		}
	})

	t.Run("wrong item type", func(t *testing.T) {
		t.Parallel()
		if _, err := s.Validate(json.RawMessage(`{"title":"x","tags":[1]}`)); err == nil {
			t.Fatal("expected error for non-string tag")
		}
	})

	t.Run("wrong number type", func(t *testing.T) {
		t.Parallel()
		if _, err := s.Validate(json.RawMessage(`{"title":"x","limit":"five"}`)); err == nil {
			t.Fatal("expected error for string limit")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		if _, err := s.Validate(json.RawMessage(`{"title":`)); err == nil {
			t.Fatal("expected error for malformed JSON")
		}
	})
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	inner := errors.New("required: missing properties: [\"text\"]")
	err := error(&ValidationError{Tool: "posts_package", Detail: inner.Error(), Err: inner})

	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected errors.Is(err, ErrValidation)")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected ValidationError to unwrap to the schema error")
	}
	if !strings.Contains(err.Error(), "posts_package") || !strings.Contains(err.Error(), "text") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
