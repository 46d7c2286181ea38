//go:build gcloud

package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/tracing"
)

// CloudTasksGateway schedules notifications as Google Cloud Tasks. Task ids
// are generated locally so cancellation can reconstruct the full task path
// from the handle alone.
type CloudTasksGateway struct {
	client        *cloudtasks.Client
	projectID     string
	locationID    string
	queueID       string
	targetURL     string
	permissionURL string
	httpClient    *http.Client
	maxRetries    int
}

type CloudTasksConfig struct {
	ProjectID     string
	LocationID    string
	QueueID       string
	TargetURL     string
	PermissionURL string
	MaxRetries    int
}

func NewCloudTasksGateway(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksGateway, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksGateway{
		client:        client,
		projectID:     cfg.ProjectID,
		locationID:    cfg.LocationID,
		queueID:       cfg.QueueID,
		targetURL:     cfg.TargetURL,
		permissionURL: cfg.PermissionURL,
		httpClient:    newHTTPClient(cfg.PermissionURL),
		maxRetries:    maxRetries,
	}, nil
}

func (g *CloudTasksGateway) RequestPermission(ctx context.Context) (bool, error) {
	ctx, span := tracing.StartGatewaySpan(ctx, "request_permission", time.Time{})
	defer span.End()

	granted, err := g.queryPermission(ctx)
	tracing.RecordGatewayResult(span, err)
	return granted, err
}

func (g *CloudTasksGateway) queryPermission(ctx context.Context) (bool, error) {
	u, err := url.Parse(g.permissionURL)
	if err != nil {
		return false, fmt.Errorf("failed to parse permission URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to query notification permission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status code from permission endpoint: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read permission response: %w", err)
	}

	var permission PermissionResponse
	if err := json.Unmarshal(body, &permission); err != nil {
		return false, fmt.Errorf("failed to decode permission response: %w", err)
	}

	return permission.Granted, nil
}

func (g *CloudTasksGateway) ScheduleAt(ctx context.Context, at time.Time, payload domain.NotificationPayload) (domain.Handle, error) {
	ctx, span := tracing.StartGatewaySpan(ctx, "schedule", at)
	defer span.End()

	handle, err := g.scheduleWithRetry(ctx, at, payload)
	tracing.RecordGatewayResult(span, err)
	return handle, err
}

func (g *CloudTasksGateway) scheduleWithRetry(ctx context.Context, at time.Time, payload domain.NotificationPayload) (domain.Handle, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	taskID := uuid.NewString()
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		g.projectID, g.locationID, g.queueID)

	task := &taskspb.Task{
		Name: g.taskPath(taskID),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        g.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: body,
			},
		},
		ScheduleTime: timestamppb.New(at),
	}

	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   task,
	}

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying task creation",
				slog.String("task_id", taskID),
				slog.String("category", payload.Category.String()),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		created, err := g.client.CreateTask(ctx, req)
		if err == nil {
			slog.Info("notification task registered to Cloud Tasks",
				slog.String("task_name", created.Name),
				slog.String("category", payload.Category.String()),
			)
			return domain.Handle(taskID), nil
		}
		lastErr = err
		slog.Warn("failed to create cloud task",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
	}

	return "", fmt.Errorf("failed to schedule notification after %d retries: %w", g.maxRetries, lastErr)
}

func (g *CloudTasksGateway) Cancel(ctx context.Context, handle domain.Handle) error {
	ctx, span := tracing.StartGatewaySpan(ctx, "cancel", time.Time{})
	defer span.End()

	err := g.cancelWithRetry(ctx, handle)
	tracing.RecordGatewayResult(span, err)
	return err
}

func (g *CloudTasksGateway) cancelWithRetry(ctx context.Context, handle domain.Handle) error {
	req := &taskspb.DeleteTaskRequest{
		Name: g.taskPath(string(handle)),
	}

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying task deletion",
				slog.String("handle", string(handle)),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := g.client.DeleteTask(ctx, req)
		if err == nil {
			return nil
		}
		if status.Code(err) == codes.NotFound {
			slog.Info("task not found in Cloud Tasks (may have been delivered)",
				slog.String("handle", string(handle)),
			)
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("failed to cancel notification after %d retries: %w", g.maxRetries, lastErr)
}

func (g *CloudTasksGateway) taskPath(taskID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s/tasks/%s",
		g.projectID, g.locationID, g.queueID, taskID)
}

func (g *CloudTasksGateway) Close() error {
	return g.client.Close()
}
