package reminder

import (
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// AddResult is the single user-facing status of one compile-and-schedule
// cycle. Partial failures are reported through the counts rather than
// aborting the batch.
type AddResult struct {
	Category          string `json:"category"`
	EntryID           string `json:"entry_id,omitempty"`
	Summary           string `json:"summary,omitempty"`
	RequestedCount    int    `json:"requested_count"`
	ScheduledCount    int    `json:"scheduled_count"`
	FailedCount       int    `json:"failed_count"`
	CancelledCount    int    `json:"cancelled_count"`
	Truncated         bool   `json:"truncated"`
	PermissionGranted bool   `json:"permission_granted"`
	// Persisted is false when compilation produced zero future instants:
	// nothing is stored and nothing is scheduled.
	Persisted bool `json:"persisted"`
}

type RemoveResult struct {
	Category       string `json:"category"`
	EntryID        string `json:"entry_id,omitempty"`
	CancelledCount int    `json:"cancelled_count"`
	FailedCount    int    `json:"failed_count"`
}

// View is the persisted state of one category for display.
type View struct {
	Record  *domain.ReminderRecord `json:"record,omitempty"`
	Entries []domain.Entry         `json:"entries,omitempty"`
}

// ResponseAction is a user interaction with a delivered notification,
// reported back by the dispatch pipeline.
type ResponseAction string

const (
	ActionSnooze  ResponseAction = "snooze"
	ActionDismiss ResponseAction = "dismiss"
)

type ResponseEvent struct {
	Category domain.Category
	EntryID  string
	Action   ResponseAction
}
