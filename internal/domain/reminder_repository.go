package domain

import "context"

//go:generate mockgen -source=reminder_repository.go -destination=reminder_repository_mock.go -package=domain

// PrimaryBatch is the handle-batch id for a category's single window-based
// reminder. Entry-scoped batches use the entry id instead.
const PrimaryBatch = "primary"

type ReminderRepository interface {
	SaveReminder(ctx context.Context, record *ReminderRecord) error
	GetReminder(ctx context.Context, category Category) (*ReminderRecord, error)
	DeleteReminder(ctx context.Context, category Category) error

	SaveEntry(ctx context.Context, category Category, entry *Entry) error
	GetEntry(ctx context.Context, category Category, entryID string) (*Entry, error)
	ListEntries(ctx context.Context, category Category) ([]Entry, error)
	DeleteEntry(ctx context.Context, category Category, entryID string) error
	DeleteAllEntries(ctx context.Context, category Category) error

	// ReplaceHandles overwrites the outstanding handle batch; an empty slice
	// removes the batch.
	ReplaceHandles(ctx context.Context, category Category, batchID string, handles []Handle) error
	AppendHandles(ctx context.Context, category Category, batchID string, handles []Handle) error
	GetHandles(ctx context.Context, category Category, batchID string) ([]Handle, error)
	// GetAllHandles returns every outstanding handle for the category across
	// all batches.
	GetAllHandles(ctx context.Context, category Category) ([]Handle, error)
	ClearHandles(ctx context.Context, category Category) error
}
