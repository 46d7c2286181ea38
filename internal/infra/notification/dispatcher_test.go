//go:build !gcloud

package notification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

func testPayload() domain.NotificationPayload {
	return domain.NotificationPayload{
		Category: domain.CategoryWater,
		Title:    "Time to Hydrate",
		Body:     "Drink a glass of water",
	}
}

func TestDispatchClient_RequestPermission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/permission" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(PermissionResponse{Granted: true})
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.URL, "reminders", 1)
	granted, err := client.RequestPermission(context.Background())
	if err != nil {
		t.Fatalf("RequestPermission: %v", err)
	}
	if !granted {
		t.Error("expected permission to be granted")
	}
}

func TestDispatchClient_ScheduleAt(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/reminders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var dispatchReq DispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&dispatchReq); err != nil {
			t.Fatalf("decode dispatch request: %v", err)
		}
		if dispatchReq.Task.ScheduleTime != at.Format(time.RFC3339) {
			t.Errorf("schedule time = %q, want %q", dispatchReq.Task.ScheduleTime, at.Format(time.RFC3339))
		}
		raw, err := base64.StdEncoding.DecodeString(dispatchReq.Task.HTTPRequest.Body)
		if err != nil {
			t.Fatalf("decode task body: %v", err)
		}
		var payload domain.NotificationPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.Title != "Time to Hydrate" {
			t.Errorf("payload title = %q", payload.Title)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(DispatchResponse{Name: "task-001"})
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.URL, "reminders", 1)
	handle, err := client.ScheduleAt(context.Background(), at, testPayload())
	if err != nil {
		t.Fatalf("ScheduleAt: %v", err)
	}
	if handle != domain.Handle("task-001") {
		t.Errorf("handle = %q, want %q", handle, "task-001")
	}
}

func TestDispatchClient_ScheduleAt_RetriesExhausted(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.URL, "", 2)
	_, err := client.ScheduleAt(context.Background(), time.Now().Add(time.Hour), testPayload())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != 2 {
		t.Errorf("dispatch attempts = %d, want 2", calls)
	}
}

func TestDispatchClient_Cancel_ToleratesMissingTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %q", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.URL, "reminders", 1)
	if err := client.Cancel(context.Background(), domain.Handle("task-001")); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
}
