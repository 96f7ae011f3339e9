package eval

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// startSpan starts a span on e.tracer. e.tracer is always set by
// QueryLocatedWithTracer, defaulting to this package's global tracer when
// the caller didn't pass one, so there is no nil case to guard here.
func (e *evaluator) startSpan(name string) (context.Context, trace.Span) {
	return e.tracer.Start(context.Background(), name)
}
