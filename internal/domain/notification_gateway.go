package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification_gateway.go -destination=notification_gateway_mock.go -package=domain

// Handle is the opaque id the dispatch queue returns per scheduled
// notification. Handles are only ever cancelled as a category-scoped batch.
type Handle string

// NotificationPayload is the content delivered when a trigger instant
// fires. Category and EntryID tag the notification so responses and
// cancellations stay scoped to the reminder that produced it.
type NotificationPayload struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Sound    bool     `json:"sound"`
	Category Category `json:"category"`
	EntryID  string   `json:"entry_id,omitempty"`
}

// NotificationGateway adapts the platform notification scheduler. The
// scheduler is a black box: once a notification is registered the core
// cannot observe it except through the response callback.
type NotificationGateway interface {
	// RequestPermission reports whether the device grants notification
	// delivery. Denial is not an error; callers persist the reminder and
	// surface the denial.
	RequestPermission(ctx context.Context) (bool, error)

	// ScheduleAt registers a single notification to fire at the given
	// instant and returns its handle.
	ScheduleAt(ctx context.Context, at time.Time, payload NotificationPayload) (Handle, error)

	// Cancel removes one pending notification. Cancelling a handle that has
	// already fired or been removed is not an error.
	Cancel(ctx context.Context, handle Handle) error
}
