package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "reminder.schedule"
)

type ScheduleMetrics struct {
	batchesCompiled      metric.Int64Counter
	instantsScheduled    metric.Int64Counter
	instantsFailed       metric.Int64Counter
	batchesTruncated     metric.Int64Counter
	handlesCancelled     metric.Int64Counter
	permissionDenials    metric.Int64Counter
	scheduleBatchLatency metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	batchesCompiled, err := meter.Int64Counter(
		"reminder_batches_compiled_total",
		metric.WithDescription("Total number of compile-and-schedule cycles"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return nil, err
	}

	instantsScheduled, err := meter.Int64Counter(
		"reminder_instants_scheduled_total",
		metric.WithDescription("Total number of trigger instants registered with the dispatch queue"),
		metric.WithUnit("{instant}"),
	)
	if err != nil {
		return nil, err
	}

	instantsFailed, err := meter.Int64Counter(
		"reminder_instants_failed_total",
		metric.WithDescription("Total number of trigger instants the dispatch queue rejected"),
		metric.WithUnit("{instant}"),
	)
	if err != nil {
		return nil, err
	}

	batchesTruncated, err := meter.Int64Counter(
		"reminder_batches_truncated_total",
		metric.WithDescription("Batches cut off at the pending-notification ceiling"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return nil, err
	}

	handlesCancelled, err := meter.Int64Counter(
		"reminder_handles_cancelled_total",
		metric.WithDescription("Pending notifications cancelled before re-scheduling or on delete"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	permissionDenials, err := meter.Int64Counter(
		"reminder_permission_denials_total",
		metric.WithDescription("Schedule attempts blocked by missing notification permission"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	scheduleBatchLatency, err := meter.Float64Histogram(
		"reminder_schedule_batch_duration_seconds",
		metric.WithDescription("End-to-end duration of one cancel-compile-schedule-persist cycle"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		batchesCompiled:      batchesCompiled,
		instantsScheduled:    instantsScheduled,
		instantsFailed:       instantsFailed,
		batchesTruncated:     batchesTruncated,
		handlesCancelled:     handlesCancelled,
		permissionDenials:    permissionDenials,
		scheduleBatchLatency: scheduleBatchLatency,
	}, nil
}

func (m *ScheduleMetrics) RecordBatchCompiled(ctx context.Context, category, outcome string) {
	m.batchesCompiled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordInstantsScheduled(ctx context.Context, category string, count int) {
	m.instantsScheduled.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ScheduleMetrics) RecordInstantsFailed(ctx context.Context, category string, count int) {
	m.instantsFailed.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ScheduleMetrics) RecordBatchTruncated(ctx context.Context, category string) {
	m.batchesTruncated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ScheduleMetrics) RecordHandlesCancelled(ctx context.Context, category string, count int) {
	m.handlesCancelled.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ScheduleMetrics) RecordPermissionDenied(ctx context.Context, category string) {
	m.permissionDenials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ScheduleMetrics) RecordScheduleBatchDuration(ctx context.Context, category string, duration time.Duration) {
	m.scheduleBatchLatency.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("category", category),
	))
}
