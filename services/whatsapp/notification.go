package whatsapp

import (
	"encoding/json"
	"fmt"
	"strings"

	"outreach/models"
)

// DecodeNotification parses a raw webhook body.
func DecodeNotification(body []byte) (*models.Notification, error) {
	var n models.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	return &n, nil
}

// ParseNotification reduces a notification to an IncomingMessage. It returns
// false for anything that is not an incoming message with sender and message
// data, and for message types the assistant does not handle.
func ParseNotification(n *models.Notification) (models.IncomingMessage, bool) {
	if n == nil || n.TypeWebhook != models.WebhookIncomingMessage || n.SenderData == nil || n.MessageData == nil {
		return models.IncomingMessage{}, false
	}

	msg := models.IncomingMessage{
		IDMessage:   n.IDMessage,
		ChatID:      n.SenderData.ChatID,
		SenderID:    n.SenderData.Sender,
		SenderName:  n.SenderData.SenderName,
		MessageType: n.MessageData.TypeMessage,
	}
	if msg.ChatID == "" {
		msg.ChatID = msg.SenderID
	}

	switch n.MessageData.TypeMessage {
	case models.MessageTypeText:
		if n.MessageData.TextMessageData == nil {
			return models.IncomingMessage{}, false
		}
		msg.Text = n.MessageData.TextMessageData.TextMessage
	case models.MessageTypeExtendedText:
		if n.MessageData.ExtendedTextMessageData == nil {
			return models.IncomingMessage{}, false
		}
		msg.Text = n.MessageData.ExtendedTextMessageData.Text
	case models.MessageTypeAudio:
		if n.MessageData.FileMessageData == nil || n.MessageData.FileMessageData.DownloadURL == "" {
			return models.IncomingMessage{}, false
		}
		msg.DownloadURL = n.MessageData.FileMessageData.DownloadURL
		return msg, true
	default:
		return models.IncomingMessage{}, false
	}

	msg.Text = strings.TrimSpace(msg.Text)
	if msg.Text == "" {
		return models.IncomingMessage{}, false
	}
	return msg, true
}
