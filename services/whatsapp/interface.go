package whatsapp

import (
	"context"

	"outreach/models"
)

// Gateway is the subset of the GreenAPI surface the service relies on.
type Gateway interface {
	SendMessage(ctx context.Context, chatID, text string) (string, error)
	SetSettings(ctx context.Context, settings Settings) error
	ReceiveNotification(ctx context.Context) (*models.QueuedNotification, error)
	DeleteNotification(ctx context.Context, receiptID int64) error
	DownloadFile(ctx context.Context, url string) ([]byte, error)
}

// Settings mirrors the GreenAPI setSettings body. Empty fields are omitted.
type Settings struct {
	WebhookURL              string `json:"webhookUrl,omitempty"`
	WebhookURLToken         string `json:"webhookUrlToken,omitempty"`
	IncomingWebhook         string `json:"incomingWebhook,omitempty"`
	OutgoingWebhook         string `json:"outgoingWebhook,omitempty"`
	OutgoingAPIMessageHook  string `json:"outgoingAPIMessageWebhook,omitempty"`
	StateWebhook            string `json:"stateWebhook,omitempty"`
	DelaySendMessagesMillis int    `json:"delaySendMessagesMilliseconds,omitempty"`
}

// WebhookSettings enables incoming-message and state webhooks on url.
func WebhookSettings(url, token string) Settings {
	return Settings{
		WebhookURL:      url,
		WebhookURLToken: token,
		IncomingWebhook: "yes",
		StateWebhook:    "yes",
	}
}
