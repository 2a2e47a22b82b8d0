package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "huntready"

// StartRouteSpan starts a span for one agent route dispatch.
func StartRouteSpan(ctx context.Context, route, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "route",
		trace.WithAttributes(
			attribute.String("route.name", route),
			attribute.String("user.id", userID),
		),
	)
}

// StartStoreSpan starts a span for a memory store operation.
func StartStoreSpan(ctx context.Context, op, subject string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "memory."+op,
		trace.WithAttributes(
			attribute.String("memory.subject", subject),
		),
	)
}

// StartGenerationSpan starts a span for one model completion call.
func StartGenerationSpan(ctx context.Context, model string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "generation",
		trace.WithAttributes(
			attribute.String("llm.model", model),
		),
	)
}
