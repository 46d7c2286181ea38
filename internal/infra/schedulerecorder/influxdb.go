//go:build !gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordResults(ctx context.Context, records []domain.ScheduleResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		recordedAt := record.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now().UTC()
		}

		point := influxdb2.NewPoint(
			"schedule_results",
			map[string]string{
				"run_id":    runID,
				"category":  record.Category,
				"operation": record.Operation,
			},
			map[string]interface{}{
				"requested_count": record.RequestedCount,
				"scheduled_count": record.ScheduledCount,
				"failed_count":    record.FailedCount,
				"cancelled_count": record.CancelledCount,
				"truncated":       record.Truncated,
			},
			recordedAt,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write schedule result point",
				slog.String("category", record.Category),
				slog.String("operation", record.Operation),
				slog.String("error", err.Error()),
			)
			return err
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	r.client.Close()
	return nil
}
