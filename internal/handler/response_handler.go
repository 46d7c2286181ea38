package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/reminder"
)

// ResponseHandler receives notification interaction callbacks from the
// dispatch pipeline, currently just snooze and dismiss.
type ResponseHandler struct {
	reminderService *reminder.Service
}

func NewResponseHandler(reminderService *reminder.Service) *ResponseHandler {
	return &ResponseHandler{reminderService: reminderService}
}

type responseRequest struct {
	Category string `json:"category" binding:"required"`
	EntryID  string `json:"entry_id,omitempty"`
	Action   string `json:"action" binding:"required"`
}

func (h *ResponseHandler) HandleNotificationResponse(c *gin.Context) {
	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	event := reminder.ResponseEvent{
		Category: category,
		EntryID:  req.EntryID,
		Action:   reminder.ResponseAction(req.Action),
	}

	if err := h.reminderService.HandleResponse(c.Request.Context(), event); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}
