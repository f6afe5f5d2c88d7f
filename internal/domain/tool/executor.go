package tool

import (
	"context"
	"encoding/json"
	"time"
)

// Backend is the runtime contract for forwarding a validated payload.
// backend.Client satisfies it.
type Backend interface {
	Post(ctx context.Context, path string, payload json.RawMessage) (json.RawMessage, error)
}

// Invocation is one inbound tool call. It lives for a single dispatch.
type Invocation struct {
	ToolName string
	Input    json.RawMessage
}

const ContentKindText = "text"

type Content struct {
	Kind string `json:"type"`
	Text string `json:"text"`
}

// Result pairs the backend's JSON answer with a one-line text summary.
type Result struct {
	StructuredContent json.RawMessage `json:"structuredContent"`
	Content           []Content       `json:"content"`
}

// Text returns the summary carried by the single text content element.
func (r *Result) Text() string {
	for _, c := range r.Content {
		if c.Kind == ContentKindText {
			return c.Text
		}
	}
	return ""
}

// Observation describes one finished dispatch.
type Observation struct {
	InvocationID string
	RequestID    string // inbound HTTP request id, empty outside HTTP
	ToolName     string
	BackendPath  string
	Start        time.Time
	Duration     time.Duration
	Outcome      Outcome
	Err          error
}

// Observer brackets each dispatch. StartDispatch runs before the tool and the
// context it returns is the one the backend call sees; ObserveDispatch
// receives that context and one Observation once the dispatch is over.
type Observer interface {
	StartDispatch(ctx context.Context, toolName string) context.Context
	ObserveDispatch(ctx context.Context, obs Observation)
}

type nopObserver struct{}

func (nopObserver) StartDispatch(ctx context.Context, _ string) context.Context { return ctx }
func (nopObserver) ObserveDispatch(context.Context, Observation) {}
