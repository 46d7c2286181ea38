package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/testutil"
)

func TestReminderRecordRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	record := &domain.ReminderRecord{
		Category:    domain.CategoryWater,
		Spec:        domain.NewIntervalWindowSpec(domain.TimeOfDay{Hour: 6}, domain.TimeOfDay{Hour: 22}, time.Hour),
		SummaryText: "6 : 00 AM - 10 : 00 PM",
		SavedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := repo.SaveReminder(ctx, record); err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}

	got, err := repo.GetReminder(ctx, domain.CategoryWater)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}

	if got.Category != record.Category {
		t.Errorf("Category = %q, want %q", got.Category, record.Category)
	}
	if got.SummaryText != record.SummaryText {
		t.Errorf("SummaryText = %q, want %q", got.SummaryText, record.SummaryText)
	}
	if got.Spec.Kind != domain.SpecIntervalWindow || got.Spec.Window == nil {
		t.Fatalf("Spec shape lost in round trip: %+v", got.Spec)
	}
	if got.Spec.Window.Interval != time.Hour {
		t.Errorf("Interval = %v, want %v", got.Spec.Window.Interval, time.Hour)
	}
}

func TestGetReminderNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	if _, err := repo.GetReminder(ctx, domain.CategoryMedication); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("GetReminder() error = %v, want ErrReminderNotFound", err)
	}
}

func TestDeleteReminderRemovesRecord(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	record := &domain.ReminderRecord{
		Category:    domain.CategoryWater,
		Spec:        domain.NewIntervalWindowSpec(domain.TimeOfDay{Hour: 6}, domain.TimeOfDay{Hour: 22}, time.Hour),
		SummaryText: "6 : 00 AM - 10 : 00 PM",
	}
	if err := repo.SaveReminder(ctx, record); err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}

	if err := repo.DeleteReminder(ctx, domain.CategoryWater); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}

	if _, err := repo.GetReminder(ctx, domain.CategoryWater); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("GetReminder() after delete error = %v, want ErrReminderNotFound", err)
	}
}

func TestEntryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	breakfast := &domain.Entry{
		ID:     "entry-breakfast",
		Spec:   domain.NewLabeledInstantSpec("Breakfast", domain.TimeOfDay{Hour: 8}),
		Active: true,
	}
	dinner := &domain.Entry{
		ID:     "entry-dinner",
		Spec:   domain.NewLabeledInstantSpec("Dinner", domain.TimeOfDay{Hour: 19, Minute: 30}),
		Active: true,
	}

	for _, entry := range []*domain.Entry{breakfast, dinner} {
		if err := repo.SaveEntry(ctx, domain.CategoryMealTime, entry); err != nil {
			t.Fatalf("SaveEntry(%s): %v", entry.ID, err)
		}
	}

	entries, err := repo.ListEntries(ctx, domain.CategoryMealTime)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	got, err := repo.GetEntry(ctx, domain.CategoryMealTime, "entry-dinner")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Spec.Instant == nil || got.Spec.Instant.Label != "Dinner" {
		t.Errorf("entry spec = %+v, want label Dinner", got.Spec)
	}

	// Removing one entry leaves the other untouched.
	if err := repo.DeleteEntry(ctx, domain.CategoryMealTime, "entry-breakfast"); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}

	entries, err = repo.ListEntries(ctx, domain.CategoryMealTime)
	if err != nil {
		t.Fatalf("ListEntries after delete: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "entry-dinner" {
		t.Errorf("entries after delete = %+v, want only entry-dinner", entries)
	}

	if err := repo.DeleteEntry(ctx, domain.CategoryMealTime, "entry-missing"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("DeleteEntry(missing) error = %v, want ErrEntryNotFound", err)
	}
}

func TestHandleBatches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	primary := []domain.Handle{"task-1", "task-2", "task-3"}
	if err := repo.ReplaceHandles(ctx, domain.CategoryWater, domain.PrimaryBatch, primary); err != nil {
		t.Fatalf("ReplaceHandles: %v", err)
	}

	got, err := repo.GetHandles(ctx, domain.CategoryWater, domain.PrimaryBatch)
	if err != nil {
		t.Fatalf("GetHandles: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(handles) = %d, want 3", len(got))
	}

	// Appending (snooze path) extends the batch.
	if err := repo.AppendHandles(ctx, domain.CategoryWater, domain.PrimaryBatch, []domain.Handle{"task-snooze"}); err != nil {
		t.Fatalf("AppendHandles: %v", err)
	}
	got, err = repo.GetHandles(ctx, domain.CategoryWater, domain.PrimaryBatch)
	if err != nil {
		t.Fatalf("GetHandles after append: %v", err)
	}
	if len(got) != 4 || got[3] != "task-snooze" {
		t.Errorf("handles after append = %v, want appended task-snooze", got)
	}

	// A second batch for the same category stays separate but shows up in
	// the all-handles view.
	if err := repo.ReplaceHandles(ctx, domain.CategoryWater, "entry-x", []domain.Handle{"task-9"}); err != nil {
		t.Fatalf("ReplaceHandles(entry-x): %v", err)
	}
	all, err := repo.GetAllHandles(ctx, domain.CategoryWater)
	if err != nil {
		t.Fatalf("GetAllHandles: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("len(all handles) = %d, want 5", len(all))
	}

	// Replacing with an empty slice removes the batch.
	if err := repo.ReplaceHandles(ctx, domain.CategoryWater, "entry-x", nil); err != nil {
		t.Fatalf("ReplaceHandles(empty): %v", err)
	}
	got, err = repo.GetHandles(ctx, domain.CategoryWater, "entry-x")
	if err != nil {
		t.Fatalf("GetHandles(entry-x): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("handles after empty replace = %v, want none", got)
	}

	if err := repo.ClearHandles(ctx, domain.CategoryWater); err != nil {
		t.Fatalf("ClearHandles: %v", err)
	}
	all, err = repo.GetAllHandles(ctx, domain.CategoryWater)
	if err != nil {
		t.Fatalf("GetAllHandles after clear: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("handles after clear = %v, want none", all)
	}
}
