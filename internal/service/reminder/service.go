package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/compile"
)

const DefaultSnoozeDelay = 5 * time.Minute

// Service orchestrates the compile-and-schedule cycle: cancel the
// category's outstanding notifications, compile the new spec, schedule the
// resulting instants, then persist the spec with its derived summary.
// Cancellation is always scoped to the category (or entry) being replaced,
// never global.
type Service struct {
	repo            domain.ReminderRepository
	gateway         domain.NotificationGateway
	compiler        *compile.Compiler
	clk             clock.Clock
	snoozeDelay     time.Duration
	scheduleMetrics *metrics.ScheduleMetrics

	// One mutex per category serializes concurrent schedule cycles so a
	// cancel from one request cannot interleave with a schedule from
	// another and orphan pending notifications.
	mu map[domain.Category]*sync.Mutex
}

func NewService(
	repo domain.ReminderRepository,
	gateway domain.NotificationGateway,
	compiler *compile.Compiler,
	clk clock.Clock,
	snoozeDelay time.Duration,
	scheduleMetrics *metrics.ScheduleMetrics,
) *Service {
	if snoozeDelay <= 0 {
		snoozeDelay = DefaultSnoozeDelay
	}
	mu := make(map[domain.Category]*sync.Mutex, len(domain.Categories))
	for _, category := range domain.Categories {
		mu[category] = &sync.Mutex{}
	}
	return &Service{
		repo:            repo,
		gateway:         gateway,
		compiler:        compiler,
		clk:             clk,
		snoozeDelay:     snoozeDelay,
		scheduleMetrics: scheduleMetrics,
		mu:              mu,
	}
}

// Add replaces the category's window-based reminder with a new spec. The
// previous batch is cancelled before the new one is scheduled; when the
// spec compiles to zero future instants nothing is persisted or scheduled
// and the result reports Persisted=false.
func (s *Service) Add(ctx context.Context, category domain.Category, spec domain.ReminderSpec) (*AddResult, error) {
	s.mu[category].Lock()
	defer s.mu[category].Unlock()

	ctx, span := tracing.StartScheduleCycleSpan(ctx, category.String(), "add")
	defer span.End()

	started := s.clk.Now()
	now := started

	schedule, err := s.compileSpec(ctx, category, spec, now)
	if err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, false, err)
		return nil, err
	}

	result := &AddResult{
		Category:       category.String(),
		RequestedCount: len(schedule.Instants),
		Truncated:      schedule.Truncated,
	}

	if schedule.IsEmpty() {
		slog.InfoContext(ctx, "spec compiled to no future instants, nothing to schedule",
			slog.String("category", category.String()),
		)
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, schedule.Truncated, nil)
		return result, nil
	}

	result.CancelledCount = s.cancelBatch(ctx, category, domain.PrimaryBatch)

	granted, handles := s.scheduleBatch(ctx, category, "", spec, schedule, result)
	result.PermissionGranted = granted

	if err := s.repo.ReplaceHandles(ctx, category, domain.PrimaryBatch, handles); err != nil {
		tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, result.CancelledCount, schedule.Truncated, err)
		return nil, fmt.Errorf("failed to store notification handles: %w", err)
	}

	record := &domain.ReminderRecord{
		Category:    category,
		Spec:        spec,
		SummaryText: schedule.Summary(),
		SavedAt:     now,
	}
	if err := s.repo.SaveReminder(ctx, record); err != nil {
		tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, result.CancelledCount, schedule.Truncated, err)
		return nil, fmt.Errorf("failed to save reminder record: %w", err)
	}

	result.Summary = record.SummaryText
	result.Persisted = true

	s.recordCycle(ctx, category, started)
	tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, result.CancelledCount, schedule.Truncated, nil)

	slog.InfoContext(ctx, "reminder scheduled",
		slog.String("category", category.String()),
		slog.String("summary", result.Summary),
		slog.Int("scheduled_count", result.ScheduledCount),
		slog.Int("failed_count", result.FailedCount),
		slog.Int("cancelled_count", result.CancelledCount),
		slog.Bool("truncated", result.Truncated),
	)

	return result, nil
}

// Remove cancels every outstanding notification for the category and
// deletes its persisted state, both the window record and any entry list.
// Removing a category that has nothing stored is not an error.
func (s *Service) Remove(ctx context.Context, category domain.Category) (*RemoveResult, error) {
	s.mu[category].Lock()
	defer s.mu[category].Unlock()

	ctx, span := tracing.StartScheduleCycleSpan(ctx, category.String(), "remove")
	defer span.End()

	result := &RemoveResult{Category: category.String()}

	handles, err := s.repo.GetAllHandles(ctx, category)
	if err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, false, err)
		return nil, fmt.Errorf("failed to load notification handles: %w", err)
	}

	for _, handle := range handles {
		if err := s.gateway.Cancel(ctx, handle); err != nil {
			slog.WarnContext(ctx, "failed to cancel notification",
				slog.String("category", category.String()),
				slog.String("handle", string(handle)),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}
		result.CancelledCount++
	}

	if err := s.repo.ClearHandles(ctx, category); err != nil {
		tracing.RecordScheduleCycleResult(span, 0, result.FailedCount, result.CancelledCount, false, err)
		return nil, fmt.Errorf("failed to clear notification handles: %w", err)
	}
	if err := s.repo.DeleteReminder(ctx, category); err != nil && !errors.Is(err, domain.ErrReminderNotFound) {
		tracing.RecordScheduleCycleResult(span, 0, result.FailedCount, result.CancelledCount, false, err)
		return nil, fmt.Errorf("failed to delete reminder record: %w", err)
	}
	if category.UsesEntryList() {
		if err := s.repo.DeleteAllEntries(ctx, category); err != nil {
			tracing.RecordScheduleCycleResult(span, 0, result.FailedCount, result.CancelledCount, false, err)
			return nil, fmt.Errorf("failed to delete reminder entries: %w", err)
		}
	}

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordHandlesCancelled(ctx, category.String(), result.CancelledCount)
	}
	tracing.RecordScheduleCycleResult(span, 0, result.FailedCount, result.CancelledCount, false, nil)

	slog.InfoContext(ctx, "reminder removed",
		slog.String("category", category.String()),
		slog.Int("cancelled_count", result.CancelledCount),
		slog.Int("failed_count", result.FailedCount),
	)

	return result, nil
}

// AddEntry appends one entry to a list-based category (meal times,
// medications) and schedules its instants under an entry-scoped handle
// batch, leaving the category's other entries untouched.
func (s *Service) AddEntry(ctx context.Context, category domain.Category, spec domain.ReminderSpec) (*AddResult, error) {
	if !category.UsesEntryList() {
		return nil, fmt.Errorf("%w: category %q does not keep an entry list", domain.ErrInvalidSpec, category)
	}

	s.mu[category].Lock()
	defer s.mu[category].Unlock()

	ctx, span := tracing.StartScheduleCycleSpan(ctx, category.String(), "add_entry")
	defer span.End()

	started := s.clk.Now()
	now := started

	schedule, err := s.compileSpec(ctx, category, spec, now)
	if err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, false, err)
		return nil, err
	}

	entryID := uuid.New().String()
	result := &AddResult{
		Category:       category.String(),
		EntryID:        entryID,
		RequestedCount: len(schedule.Instants),
		Truncated:      schedule.Truncated,
	}

	if schedule.IsEmpty() {
		slog.InfoContext(ctx, "entry spec compiled to no future instants, nothing to schedule",
			slog.String("category", category.String()),
		)
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, schedule.Truncated, nil)
		return result, nil
	}

	granted, handles := s.scheduleBatch(ctx, category, entryID, spec, schedule, result)
	result.PermissionGranted = granted

	if err := s.repo.ReplaceHandles(ctx, category, entryID, handles); err != nil {
		tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, 0, schedule.Truncated, err)
		return nil, fmt.Errorf("failed to store notification handles: %w", err)
	}

	entry := &domain.Entry{ID: entryID, Spec: spec, Active: true}
	if err := s.repo.SaveEntry(ctx, category, entry); err != nil {
		tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, 0, schedule.Truncated, err)
		return nil, fmt.Errorf("failed to save reminder entry: %w", err)
	}

	result.Summary = schedule.Summary()
	result.Persisted = true

	s.recordCycle(ctx, category, started)
	tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, 0, schedule.Truncated, nil)

	slog.InfoContext(ctx, "reminder entry scheduled",
		slog.String("category", category.String()),
		slog.String("entry_id", entryID),
		slog.Int("scheduled_count", result.ScheduledCount),
		slog.Int("failed_count", result.FailedCount),
	)

	return result, nil
}

// RemoveEntry cancels one entry's pending notifications and deletes the
// entry, leaving the rest of the category's list scheduled.
func (s *Service) RemoveEntry(ctx context.Context, category domain.Category, entryID string) (*RemoveResult, error) {
	if !category.UsesEntryList() {
		return nil, fmt.Errorf("%w: category %q does not keep an entry list", domain.ErrInvalidSpec, category)
	}

	s.mu[category].Lock()
	defer s.mu[category].Unlock()

	ctx, span := tracing.StartScheduleCycleSpan(ctx, category.String(), "remove_entry")
	defer span.End()

	if _, err := s.repo.GetEntry(ctx, category, entryID); err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, false, err)
		return nil, err
	}

	result := &RemoveResult{Category: category.String(), EntryID: entryID}
	result.CancelledCount = s.cancelBatch(ctx, category, entryID)

	if err := s.repo.ReplaceHandles(ctx, category, entryID, nil); err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, result.CancelledCount, false, err)
		return nil, fmt.Errorf("failed to clear notification handles: %w", err)
	}
	if err := s.repo.DeleteEntry(ctx, category, entryID); err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, result.CancelledCount, false, err)
		return nil, err
	}

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordHandlesCancelled(ctx, category.String(), result.CancelledCount)
	}
	tracing.RecordScheduleCycleResult(span, 0, 0, result.CancelledCount, false, nil)

	slog.InfoContext(ctx, "reminder entry removed",
		slog.String("category", category.String()),
		slog.String("entry_id", entryID),
		slog.Int("cancelled_count", result.CancelledCount),
	)

	return result, nil
}

// ToggleEntry flips an entry's active flag. Deactivating cancels the
// entry's pending notifications while keeping its spec stored; activating
// recompiles the spec and schedules a fresh batch.
func (s *Service) ToggleEntry(ctx context.Context, category domain.Category, entryID string, active bool) (*AddResult, error) {
	if !category.UsesEntryList() {
		return nil, fmt.Errorf("%w: category %q does not keep an entry list", domain.ErrInvalidSpec, category)
	}

	s.mu[category].Lock()
	defer s.mu[category].Unlock()

	ctx, span := tracing.StartScheduleCycleSpan(ctx, category.String(), "toggle_entry")
	defer span.End()

	started := s.clk.Now()

	entry, err := s.repo.GetEntry(ctx, category, entryID)
	if err != nil {
		tracing.RecordScheduleCycleResult(span, 0, 0, 0, false, err)
		return nil, err
	}

	result := &AddResult{
		Category: category.String(),
		EntryID:  entryID,
	}

	result.CancelledCount = s.cancelBatch(ctx, category, entryID)

	var handles []domain.Handle
	if active {
		schedule, err := s.compileSpec(ctx, category, entry.Spec, started)
		if err != nil {
			tracing.RecordScheduleCycleResult(span, 0, 0, result.CancelledCount, false, err)
			return nil, err
		}
		result.RequestedCount = len(schedule.Instants)
		result.Truncated = schedule.Truncated

		if !schedule.IsEmpty() {
			granted, scheduled := s.scheduleBatch(ctx, category, entryID, entry.Spec, schedule, result)
			result.PermissionGranted = granted
			handles = scheduled
			result.Summary = schedule.Summary()
		}
	}

	if err := s.repo.ReplaceHandles(ctx, category, entryID, handles); err != nil {
		tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, result.CancelledCount, result.Truncated, err)
		return nil, fmt.Errorf("failed to store notification handles: %w", err)
	}

	entry.Active = active
	if err := s.repo.SaveEntry(ctx, category, entry); err != nil {
		tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, result.CancelledCount, result.Truncated, err)
		return nil, fmt.Errorf("failed to save reminder entry: %w", err)
	}
	result.Persisted = true

	s.recordCycle(ctx, category, started)
	tracing.RecordScheduleCycleResult(span, result.ScheduledCount, result.FailedCount, result.CancelledCount, result.Truncated, nil)

	slog.InfoContext(ctx, "reminder entry toggled",
		slog.String("category", category.String()),
		slog.String("entry_id", entryID),
		slog.Bool("active", active),
		slog.Int("scheduled_count", result.ScheduledCount),
		slog.Int("cancelled_count", result.CancelledCount),
	)

	return result, nil
}

// HandleResponse consumes one user interaction with a delivered
// notification. A snooze action schedules a single-shot repeat after the
// configured delay and appends its handle to the originating batch so a
// later category removal cancels it too. Other actions are ignored.
func (s *Service) HandleResponse(ctx context.Context, event ResponseEvent) error {
	if event.Action != ActionSnooze {
		slog.DebugContext(ctx, "ignoring notification response",
			slog.String("category", event.Category.String()),
			slog.String("action", string(event.Action)),
		)
		return nil
	}

	s.mu[event.Category].Lock()
	defer s.mu[event.Category].Unlock()

	at := s.clk.Now().Add(s.snoozeDelay)
	payload := s.buildPayload(event.Category, event.EntryID, s.lookupSpec(ctx, event.Category, event.EntryID))

	handle, err := s.gateway.ScheduleAt(ctx, at, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to schedule snoozed notification",
			slog.String("category", event.Category.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to schedule snoozed notification: %w", err)
	}

	batchID := domain.PrimaryBatch
	if event.EntryID != "" {
		batchID = event.EntryID
	}
	if err := s.repo.AppendHandles(ctx, event.Category, batchID, []domain.Handle{handle}); err != nil {
		return fmt.Errorf("failed to store snoozed notification handle: %w", err)
	}

	slog.InfoContext(ctx, "notification snoozed",
		slog.String("category", event.Category.String()),
		slog.String("entry_id", event.EntryID),
		slog.Time("fire_at", at),
	)

	return nil
}

// Get returns the category's persisted state: the window record, the entry
// list, or both, depending on what the category keeps.
func (s *Service) Get(ctx context.Context, category domain.Category) (*View, error) {
	view := &View{}

	record, err := s.repo.GetReminder(ctx, category)
	if err != nil && !errors.Is(err, domain.ErrReminderNotFound) {
		return nil, err
	}
	view.Record = record

	if category.UsesEntryList() {
		entries, err := s.repo.ListEntries(ctx, category)
		if err != nil {
			return nil, err
		}
		view.Entries = entries
	}

	if view.Record == nil && len(view.Entries) == 0 {
		return nil, domain.ErrReminderNotFound
	}

	return view, nil
}

func (s *Service) compileSpec(ctx context.Context, category domain.Category, spec domain.ReminderSpec, now time.Time) (*domain.Schedule, error) {
	_, span := tracing.StartCompileSpan(ctx, category.String(), string(spec.Kind))
	defer span.End()

	schedule, err := s.compiler.Compile(spec, now)
	if err != nil {
		tracing.RecordCompileResult(span, 0, false, err)
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordBatchCompiled(ctx, category.String(), "invalid")
		}
		return nil, err
	}

	tracing.RecordCompileResult(span, len(schedule.Instants), schedule.Truncated, nil)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordBatchCompiled(ctx, category.String(), "ok")
		if schedule.Truncated {
			s.scheduleMetrics.RecordBatchTruncated(ctx, category.String())
		}
	}

	return schedule, nil
}

// cancelBatch best-effort cancels every outstanding handle in one batch
// and returns the cancelled count. Failures are logged and skipped; the
// handles in question have usually already fired.
func (s *Service) cancelBatch(ctx context.Context, category domain.Category, batchID string) int {
	handles, err := s.repo.GetHandles(ctx, category, batchID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load notification handles for cancellation",
			slog.String("category", category.String()),
			slog.String("batch_id", batchID),
			slog.String("error", err.Error()),
		)
		return 0
	}

	ctx, span := tracing.StartCancelBatchSpan(ctx, category.String(), batchID, len(handles))
	defer span.End()

	cancelled := 0
	for _, handle := range handles {
		if err := s.gateway.Cancel(ctx, handle); err != nil {
			slog.WarnContext(ctx, "failed to cancel notification",
				slog.String("category", category.String()),
				slog.String("handle", string(handle)),
				slog.String("error", err.Error()),
			)
			continue
		}
		cancelled++
	}

	if s.scheduleMetrics != nil && cancelled > 0 {
		s.scheduleMetrics.RecordHandlesCancelled(ctx, category.String(), cancelled)
	}

	return cancelled
}

// scheduleBatch requests permission and registers every instant of the
// schedule. A denied permission skips scheduling entirely but is not an
// error: the caller persists the spec so the reminder activates once
// permission is granted. Per-instant failures are counted and skipped so
// one rejection never aborts the rest of the batch.
func (s *Service) scheduleBatch(ctx context.Context, category domain.Category, entryID string, spec domain.ReminderSpec, schedule *domain.Schedule, result *AddResult) (bool, []domain.Handle) {
	granted, err := s.gateway.RequestPermission(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to check notification permission, treating as denied",
			slog.String("category", category.String()),
			slog.String("error", err.Error()),
		)
		granted = false
	}
	if !granted {
		slog.InfoContext(ctx, "notification permission denied, persisting without scheduling",
			slog.String("category", category.String()),
		)
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordPermissionDenied(ctx, category.String())
		}
		return false, nil
	}

	payload := s.buildPayload(category, entryID, spec)

	handles := make([]domain.Handle, 0, len(schedule.Instants))
	for _, instant := range schedule.Instants {
		handle, err := s.gateway.ScheduleAt(ctx, instant, payload)
		if err != nil {
			slog.WarnContext(ctx, "failed to schedule notification",
				slog.String("category", category.String()),
				slog.Time("fire_at", instant),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}
		handles = append(handles, handle)
		result.ScheduledCount++
	}

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordInstantsScheduled(ctx, category.String(), result.ScheduledCount)
		if result.FailedCount > 0 {
			s.scheduleMetrics.RecordInstantsFailed(ctx, category.String(), result.FailedCount)
		}
	}

	return true, handles
}

// lookupSpec fetches the stored spec behind a notification so snoozed
// repeats carry the same content. Missing state falls back to the
// category's generic payload.
func (s *Service) lookupSpec(ctx context.Context, category domain.Category, entryID string) domain.ReminderSpec {
	if entryID != "" {
		if entry, err := s.repo.GetEntry(ctx, category, entryID); err == nil {
			return entry.Spec
		}
		return domain.ReminderSpec{}
	}
	if record, err := s.repo.GetReminder(ctx, category); err == nil {
		return record.Spec
	}
	return domain.ReminderSpec{}
}

func (s *Service) buildPayload(category domain.Category, entryID string, spec domain.ReminderSpec) domain.NotificationPayload {
	payload := domain.NotificationPayload{
		Sound:    true,
		Category: category,
		EntryID:  entryID,
	}

	switch category {
	case domain.CategoryWater:
		payload.Title = "Time to Hydrate"
		payload.Body = "Drink a glass of water"
	case domain.CategoryMedication:
		payload.Title = "Medication Reminder"
		payload.Body = "Time to take your medication"
		if spec.Daily != nil && spec.Daily.SubjectName != "" {
			payload.Body = "Time to take " + spec.Daily.SubjectName
		}
	default:
		payload.Title = "Meal Reminder"
		payload.Body = "It's time to eat"
		if spec.Instant != nil && spec.Instant.Label != "" {
			payload.Title = spec.Instant.Label
			payload.Body = "It's time for " + spec.Instant.Label
		}
	}

	return payload
}

func (s *Service) recordCycle(ctx context.Context, category domain.Category, started time.Time) {
	if s.scheduleMetrics == nil {
		return
	}
	s.scheduleMetrics.RecordScheduleBatchDuration(ctx, category.String(), s.clk.Now().Sub(started))
}
