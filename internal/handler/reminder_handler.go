package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/reminder"
)

type ReminderHandler struct {
	reminderService *reminder.Service
	resultRecorder  domain.ScheduleResultRecorder
}

func NewReminderHandler(reminderService *reminder.Service, resultRecorder domain.ScheduleResultRecorder) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		resultRecorder:  resultRecorder,
	}
}

type specRequest struct {
	Kind    string          `json:"kind" binding:"required"`
	Window  *windowRequest  `json:"window,omitempty"`
	Instant *instantRequest `json:"instant,omitempty"`
	Daily   *dailyRequest   `json:"daily,omitempty"`
}

type windowRequest struct {
	Start           domain.TimeOfDay `json:"start"`
	End             domain.TimeOfDay `json:"end"`
	IntervalMinutes int              `json:"interval_minutes" binding:"required"`
}

type instantRequest struct {
	Label string           `json:"label" binding:"required"`
	Time  domain.TimeOfDay `json:"time"`
}

type dailyRequest struct {
	StartDate   domain.Date      `json:"start_date"`
	EndDate     domain.Date      `json:"end_date"`
	Time        domain.TimeOfDay `json:"time"`
	SubjectName string           `json:"subject_name" binding:"required"`
	Notes       string           `json:"notes,omitempty"`
}

type toggleRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (r *specRequest) toDomain() (domain.ReminderSpec, error) {
	switch domain.SpecKind(r.Kind) {
	case domain.SpecIntervalWindow:
		if r.Window == nil {
			return domain.ReminderSpec{}, errors.New("window shape is required for interval_window kind")
		}
		return domain.NewIntervalWindowSpec(
			r.Window.Start, r.Window.End,
			time.Duration(r.Window.IntervalMinutes)*time.Minute,
		), nil
	case domain.SpecLabeledInstant:
		if r.Instant == nil {
			return domain.ReminderSpec{}, errors.New("instant shape is required for labeled_instant kind")
		}
		return domain.NewLabeledInstantSpec(r.Instant.Label, r.Instant.Time), nil
	case domain.SpecDateRangeDaily:
		if r.Daily == nil {
			return domain.ReminderSpec{}, errors.New("daily shape is required for date_range_daily kind")
		}
		return domain.NewDateRangeDailySpec(
			r.Daily.StartDate, r.Daily.EndDate, r.Daily.Time,
			r.Daily.SubjectName, r.Daily.Notes,
		), nil
	default:
		return domain.ReminderSpec{}, errors.New("unknown spec kind: " + r.Kind)
	}
}

// HandleAddReminder replaces a category's window-based reminder.
func (h *ReminderHandler) HandleAddReminder(c *gin.Context) {
	ctx := c.Request.Context()

	category, ok := parseCategory(c)
	if !ok {
		return
	}

	var req specRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := req.toDomain()
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.reminderService.Add(ctx, category, spec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.recordResult(c, "add", result)

	c.JSON(http.StatusOK, result)
}

// HandleGetReminder returns the persisted state for one category.
func (h *ReminderHandler) HandleGetReminder(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	view, err := h.reminderService.Get(c.Request.Context(), category)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// HandleRemoveReminder cancels and deletes everything stored for a
// category.
func (h *ReminderHandler) HandleRemoveReminder(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	result, err := h.reminderService.Remove(c.Request.Context(), category)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.recordRemoval(c, "remove", category, result)

	c.JSON(http.StatusOK, result)
}

// HandleAddEntry appends one entry to a list-based category.
func (h *ReminderHandler) HandleAddEntry(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	var req specRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := req.toDomain()
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.reminderService.AddEntry(c.Request.Context(), category, spec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.recordResult(c, "add_entry", result)

	c.JSON(http.StatusCreated, result)
}

// HandleRemoveEntry deletes one entry and its pending notifications.
func (h *ReminderHandler) HandleRemoveEntry(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	entryID := c.Param("id")

	result, err := h.reminderService.RemoveEntry(c.Request.Context(), category, entryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.recordRemoval(c, "remove_entry", category, result)

	c.JSON(http.StatusOK, result)
}

// HandleToggleEntry flips an entry's active flag.
func (h *ReminderHandler) HandleToggleEntry(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	entryID := c.Param("id")

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.reminderService.ToggleEntry(c.Request.Context(), category, entryID, *req.Active)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.recordResult(c, "toggle_entry", result)

	c.JSON(http.StatusOK, result)
}

func (h *ReminderHandler) recordResult(c *gin.Context, operation string, result *reminder.AddResult) {
	if h.resultRecorder == nil {
		return
	}

	ctx := c.Request.Context()
	record := domain.ScheduleResultRecord{
		RunID:          runID(c),
		Category:       result.Category,
		Operation:      operation,
		RequestedCount: result.RequestedCount,
		ScheduledCount: result.ScheduledCount,
		FailedCount:    result.FailedCount,
		CancelledCount: result.CancelledCount,
		Truncated:      result.Truncated,
		RecordedAt:     time.Now(),
	}

	if err := h.resultRecorder.RecordResults(ctx, []domain.ScheduleResultRecord{record}); err != nil {
		slog.WarnContext(ctx, "failed to record schedule results",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}
}

func (h *ReminderHandler) recordRemoval(c *gin.Context, operation string, category domain.Category, result *reminder.RemoveResult) {
	if h.resultRecorder == nil {
		return
	}

	ctx := c.Request.Context()
	record := domain.ScheduleResultRecord{
		RunID:          runID(c),
		Category:       category.String(),
		Operation:      operation,
		FailedCount:    result.FailedCount,
		CancelledCount: result.CancelledCount,
		RecordedAt:     time.Now(),
	}

	if err := h.resultRecorder.RecordResults(ctx, []domain.ScheduleResultRecord{record}); err != nil {
		slog.WarnContext(ctx, "failed to record schedule results",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}
}

func runID(c *gin.Context) string {
	if id := c.GetHeader("X-Run-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}

func parseCategory(c *gin.Context) (domain.Category, bool) {
	category, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return "", false
	}
	return category, true
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   "request_error",
		"message": message,
	})
}

func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSpec), errors.Is(err, domain.ErrUnknownCategory):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrReminderNotFound), errors.Is(err, domain.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
