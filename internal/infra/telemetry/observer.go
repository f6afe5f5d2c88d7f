package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
)

const (
	metricInvocations = "postagent.tool.invocations"
	metricLatency     = "postagent.tool.latency"
	spanDispatch      = "tool.dispatch"
)

// DispatchObserver records tool dispatches into OpenTelemetry.
type DispatchObserver struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewDispatchObserver creates an observer bound to the provided meter/tracer.
// A nil tracer disables spans.
func NewDispatchObserver(meter metric.Meter, tracer trace.Tracer) (*DispatchObserver, error) {
	invocations, err := meter.Int64Counter(
		metricInvocations,
		metric.WithDescription("Number of tool dispatches"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		metricLatency,
		metric.WithDescription("Tool dispatch latency in seconds, backend call included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &DispatchObserver{
		tracer:      tracer,
		invocations: invocations,
		latency:     latency,
	}, nil
}

type dispatchSpanKey struct{}

// StartDispatch opens the tool.dispatch span before the tool runs. The returned
// context carries it, so the backend call becomes its child and the trace
// context reaches the backend.
func (o *DispatchObserver) StartDispatch(ctx context.Context, toolName string) context.Context {
	if o == nil || o.tracer == nil {
		return ctx
	}
	ctx, span := o.tracer.Start(ctx, spanDispatch,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("tool_name", toolName)),
	)
	return context.WithValue(ctx, dispatchSpanKey{}, span)
}

// ObserveDispatch records one dispatch: a counter increment, a latency sample
// and the span. A span opened by StartDispatch is finished here; without one,
// a span covering the dispatch interval is recorded after the fact.
func (o *DispatchObserver) ObserveDispatch(ctx context.Context, obs tool.Observation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool_name", obs.ToolName),
		attribute.String("backend_path", obs.BackendPath),
		attribute.String("outcome", string(obs.Outcome)),
	}
	options := metric.WithAttributes(attrs...)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, obs.Duration.Seconds(), options)

	if o.tracer == nil {
		return
	}
	spanAttrs := make([]attribute.KeyValue, 0, len(attrs)+2)
	spanAttrs = append(spanAttrs, attrs...)
	spanAttrs = append(spanAttrs, attribute.String("invocation_id", obs.InvocationID))
	if obs.RequestID != "" {
		spanAttrs = append(spanAttrs, attribute.String("request_id", obs.RequestID))
	}

	span, started := ctx.Value(dispatchSpanKey{}).(trace.Span)
	if !started {
		_, span = o.tracer.Start(ctx, spanDispatch,
			trace.WithTimestamp(obs.Start),
			trace.WithSpanKind(trace.SpanKindServer),
		)
	}
	span.SetAttributes(spanAttrs...)
	if obs.Err != nil {
		span.RecordError(obs.Err)
		span.SetStatus(codes.Error, string(obs.Outcome))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	if started {
		span.End()
		return
	}
	span.End(trace.WithTimestamp(obs.Start.Add(obs.Duration)))
}

var _ tool.Observer = (*DispatchObserver)(nil)
