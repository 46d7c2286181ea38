package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-reminder-scheduling/internal/service/reminder"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartScheduleCycleSpan(ctx context.Context, category, operation string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "reminder.schedule_cycle",
		trace.WithAttributes(
			attribute.String("reminder.category", category),
			attribute.String("reminder.operation", operation),
		),
	)
}

func StartCompileSpan(ctx context.Context, category, kind string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "reminder.compile",
		trace.WithAttributes(
			attribute.String("reminder.category", category),
			attribute.String("reminder.spec_kind", kind),
		),
	)
}

func StartCancelBatchSpan(ctx context.Context, category, batchID string, handleCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "reminder.cancel_batch",
		trace.WithAttributes(
			attribute.String("reminder.category", category),
			attribute.String("reminder.batch_id", batchID),
			attribute.Int("reminder.handle_count", handleCount),
		),
	)
}

func StartGatewaySpan(ctx context.Context, operation string, at time.Time) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("gateway.operation", operation),
	}
	if !at.IsZero() {
		attrs = append(attrs, attribute.String("gateway.fire_at", at.Format(time.RFC3339)))
	}
	return ScheduleTracer().Start(ctx, "reminder.gateway."+operation,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordGatewayResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func RecordScheduleCycleResult(span trace.Span, scheduledCount, failedCount, cancelledCount int, truncated bool, err error) {
	span.SetAttributes(
		attribute.Int("schedule.scheduled_count", scheduledCount),
		attribute.Int("schedule.failed_count", failedCount),
		attribute.Int("schedule.cancelled_count", cancelledCount),
		attribute.Bool("schedule.truncated", truncated),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordCompileResult(span trace.Span, instantCount int, truncated bool, err error) {
	span.SetAttributes(
		attribute.Int("compile.instant_count", instantCount),
		attribute.Bool("compile.truncated", truncated),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
