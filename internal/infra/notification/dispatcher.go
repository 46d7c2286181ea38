//go:build !gcloud

package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/tracing"
)

// DispatchClient schedules notifications through the primind-tasks dispatch
// service over HTTP. Each scheduled notification becomes one queue task; the
// returned task name is the handle used for cancellation.
type DispatchClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewDispatchClient(baseURL, queueName string, maxRetries int) *DispatchClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &DispatchClient{
		baseURL:    baseURL,
		queueName:  queueName,
		httpClient: newHTTPClient(baseURL),
		maxRetries: maxRetries,
	}
}

func (c *DispatchClient) RequestPermission(ctx context.Context) (bool, error) {
	ctx, span := tracing.StartGatewaySpan(ctx, "request_permission", time.Time{})
	defer span.End()

	granted, err := c.queryPermission(ctx)
	tracing.RecordGatewayResult(span, err)
	return granted, err
}

func (c *DispatchClient) queryPermission(ctx context.Context) (bool, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return false, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = "/permission"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
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

func (c *DispatchClient) ScheduleAt(ctx context.Context, at time.Time, payload domain.NotificationPayload) (domain.Handle, error) {
	ctx, span := tracing.StartGatewaySpan(ctx, "schedule", at)
	defer span.End()

	handle, err := c.scheduleWithRetry(ctx, at, payload)
	tracing.RecordGatewayResult(span, err)
	return handle, err
}

func (c *DispatchClient) scheduleWithRetry(ctx context.Context, at time.Time, payload domain.NotificationPayload) (domain.Handle, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	dispatchReq := DispatchRequest{
		Task: DispatchTask{
			HTTPRequest: DispatchHTTPRequest{
				Body: base64.StdEncoding.EncodeToString(body),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
			ScheduleTime: at.Format(time.RFC3339),
		},
	}

	reqBody, err := json.Marshal(dispatchReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal dispatch request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		endpoint = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying notification scheduling",
				slog.String("category", payload.Category.String()),
				slog.Time("trigger_at", at),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		info, err := c.createTask(ctx, endpoint, reqBody)
		if err == nil {
			slog.Debug("notification registered to dispatch queue",
				slog.String("task_name", info.Name),
				slog.String("category", payload.Category.String()),
				slog.Time("schedule_time", info.ScheduleTime),
			)
			return domain.Handle(info.Name), nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for notification scheduling",
		slog.String("category", payload.Category.String()),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return "", fmt.Errorf("failed to schedule notification after %d retries: %w", c.maxRetries, lastErr)
}

func (c *DispatchClient) createTask(ctx context.Context, endpoint string, reqBody []byte) (*TaskInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code from dispatch service: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var dispatchResp DispatchResponse
	if err := json.Unmarshal(body, &dispatchResp); err != nil {
		return nil, fmt.Errorf("failed to decode dispatch response: %w", err)
	}

	info := &TaskInfo{Name: dispatchResp.Name}
	if dispatchResp.ScheduleTime != "" {
		if parsed, err := time.Parse(time.RFC3339, dispatchResp.ScheduleTime); err == nil {
			info.ScheduleTime = parsed
		}
	}
	if dispatchResp.CreateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, dispatchResp.CreateTime); err == nil {
			info.CreateTime = parsed
		}
	}

	return info, nil
}

func (c *DispatchClient) Cancel(ctx context.Context, handle domain.Handle) error {
	ctx, span := tracing.StartGatewaySpan(ctx, "cancel", time.Time{})
	defer span.End()

	err := c.cancelWithRetry(ctx, handle)
	tracing.RecordGatewayResult(span, err)
	return err
}

func (c *DispatchClient) cancelWithRetry(ctx context.Context, handle domain.Handle) error {
	endpoint := fmt.Sprintf("%s/tasks/%s", c.baseURL, url.PathEscape(string(handle)))

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying notification cancellation",
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

		err := c.deleteTask(ctx, endpoint, handle)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for notification cancellation",
		slog.String("handle", string(handle)),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to cancel notification after %d retries: %w", c.maxRetries, lastErr)
}

func (c *DispatchClient) deleteTask(ctx context.Context, endpoint string, handle domain.Handle) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// A task that already fired or was removed is gone either way.
	if resp.StatusCode == http.StatusNotFound {
		slog.Info("task not found in dispatch queue (may have been delivered)",
			slog.String("handle", string(handle)),
		)
		return nil
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code from dispatch service: %d", resp.StatusCode)
	}

	return nil
}
