package tool

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arno-dev/postagent-mcp/internal/ctxkeys"
	"github.com/arno-dev/postagent-mcp/internal/infra/backend"
	"github.com/arno-dev/postagent-mcp/pkg/uuid"
)

// Outcome classifies a finished dispatch for logs and metrics.
type Outcome string

const (
	OutcomeOK                 Outcome = "ok"
	OutcomeToolNotFound       Outcome = "tool_not_found"
	OutcomeValidationError    Outcome = "validation_error"
	OutcomeBackendError       Outcome = "backend_error"
	OutcomeBackendUnreachable Outcome = "backend_unreachable"
	OutcomeMalformedResponse  Outcome = "malformed_backend_response"
	OutcomeInternal           Outcome = "internal_error"
)

// OutcomeOf maps a Dispatch error onto its Outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrToolNotFound):
		return OutcomeToolNotFound
	case errors.Is(err, ErrValidation):
		return OutcomeValidationError
	case errors.Is(err, backend.ErrBackendStatus):
		return OutcomeBackendError
	case errors.Is(err, backend.ErrBackendUnreachable):
		return OutcomeBackendUnreachable
	case errors.Is(err, backend.ErrMalformedBackendResponse):
		return OutcomeMalformedResponse
	default:
		return OutcomeInternal
	}
}

// Dispatcher executes tool invocations end to end. It holds only read-only
// state and may be shared by concurrent requests.
type Dispatcher struct {
	registry *Registry
	backend  Backend
	observer Observer
	logger   *slog.Logger
}

type DispatcherOption func(*Dispatcher)

func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) {
		if o != nil {
			d.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDispatcher(registry *Registry, b Backend, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		backend:  b,
		observer: nopObserver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch resolves the tool, validates and unwraps the input, performs one
// backend call and builds the result. Failures are returned unretried.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()
	ctx = d.observer.StartDispatch(ctx, inv.ToolName)

	def, res, err := d.dispatch(ctx, inv)

	obs := Observation{
		InvocationID: id,
		RequestID:    ctxkeys.String(ctx, ctxkeys.RequestID),
		ToolName:     inv.ToolName,
		BackendPath:  def.BackendPath,
		Start:        start,
		Duration:     time.Since(start),
		Outcome:      OutcomeOf(err),
		Err:          err,
	}
	d.observer.ObserveDispatch(ctx, obs)
	d.log(ctx, obs)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, inv Invocation) (Definition, *Result, error) {
	def, err := d.registry.Lookup(inv.ToolName)
	if err != nil {
		return Definition{}, nil, err
	}

	payload, err := def.Schema.Validate(UnwrapEnvelope(inv.Input))
	if err != nil {
		return def, nil, &ValidationError{Tool: def.Name, Detail: err.Error(), Err: err}
	}

	structured, err := d.backend.Post(ctx, def.BackendPath, payload)
	if err != nil {
		return def, nil, err
	}

	return def, &Result{
		StructuredContent: structured,
		Content:           []Content{{Kind: ContentKindText, Text: def.Text(structured)}},
	}, nil
}

func (d *Dispatcher) log(ctx context.Context, obs Observation) {
	attrs := []slog.Attr{
		slog.String("invocation_id", obs.InvocationID),
		slog.String("tool", obs.ToolName),
		slog.String("path", obs.BackendPath),
		slog.String("outcome", string(obs.Outcome)),
		slog.Duration("duration", obs.Duration),
	}
	if obs.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", obs.RequestID))
	}
	if obs.Err != nil {
		attrs = append(attrs, slog.String("error", obs.Err.Error()))
		d.logger.LogAttrs(ctx, slog.LevelWarn, "tool dispatch failed", attrs...)
		return
	}
	d.logger.LogAttrs(ctx, slog.LevelInfo, "tool dispatched", attrs...)
}
