package handlers

import (
	"errors"
	"net/http"

	"outreach/models"
	"outreach/services/conversation"
	"outreach/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LeadHandler serves the public lead intake endpoints.
type LeadHandler struct {
	Conversation conversation.ConversationService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(cs conversation.ConversationService) *LeadHandler {
	return &LeadHandler{Conversation: cs}
}

// SubmitDetailsHandler registers a lead and greets them on WhatsApp.
func (h *LeadHandler) SubmitDetailsHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SubmitDetailsRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Phone is required and must be an Israeli mobile number", err.Error())
		return
	}

	res, err := h.Conversation.SubmitDetails(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, conversation.ErrInvalidPhone) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid phone number", err.Error())
			return
		}
		logger.Error("Failed to submit details", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save details", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Details saved",
		"created":   res.Created,
		"messageId": res.MessageID,
		"user":      res.User,
	})
}

// ScheduleMessageHandler queues a delayed welcome message.
func (h *LeadHandler) ScheduleMessageHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ScheduleMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Name and a valid phone number are required", err.Error())
		return
	}

	res, err := h.Conversation.ScheduleWelcome(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, conversation.ErrInvalidPhone) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid phone number", err.Error())
			return
		}
		logger.Error("Failed to schedule welcome message", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to schedule message", "")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Message scheduled",
		"jobId":   res.JobID,
	})
}
