package handlers

import (
	"io"
	"net/http"

	"outreach/services/conversation"
	"outreach/services/whatsapp"
	"outreach/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20

// WebhookHandler receives GreenAPI notifications.
type WebhookHandler struct {
	Conversation conversation.ConversationService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(cs conversation.ConversationService) *WebhookHandler {
	return &WebhookHandler{Conversation: cs}
}

// ReceiveHandler acknowledges every notification it could parse, even when
// handling it fails, so GreenAPI does not redeliver it.
func (h *WebhookHandler) ReceiveHandler(c *gin.Context) {
	logger := getLogger(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read notification", err.Error())
		return
	}
	n, err := whatsapp.DecodeNotification(body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid notification", err.Error())
		return
	}

	if err := h.Conversation.HandleNotification(c.Request.Context(), n); err != nil {
		logger.Error("Failed to handle notification",
			zap.String("typeWebhook", n.TypeWebhook),
			zap.String("idMessage", n.IDMessage),
			zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
