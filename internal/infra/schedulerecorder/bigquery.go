//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	RunID          string    `bigquery:"run_id"`
	Category       string    `bigquery:"category"`
	Operation      string    `bigquery:"operation"`
	RequestedCount int64     `bigquery:"requested_count"`
	ScheduledCount int64     `bigquery:"scheduled_count"`
	FailedCount    int64     `bigquery:"failed_count"`
	CancelledCount int64     `bigquery:"cancelled_count"`
	Truncated      bool      `bigquery:"truncated"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordResults(ctx context.Context, records []domain.ScheduleResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		recordedAt := record.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now().UTC()
		}

		rows = append(rows, &bigQueryRecord{
			RecordedAt:     recordedAt,
			RunID:          runID,
			Category:       record.Category,
			Operation:      record.Operation,
			RequestedCount: int64(record.RequestedCount),
			ScheduledCount: int64(record.ScheduledCount),
			FailedCount:    int64(record.FailedCount),
			CancelledCount: int64(record.CancelledCount),
			Truncated:      record.Truncated,
		})
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert schedule result rows",
			slog.Int("row_count", len(rows)),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	return r.client.Close()
}
