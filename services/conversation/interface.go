package conversation

import (
	"context"
	"errors"

	"outreach/models"
)

var (
	// ErrInvalidPhone is returned for numbers that are not Israeli mobiles.
	ErrInvalidPhone = errors.New("phone must be an Israeli mobile number (05XXXXXXXX)")
)

// ConversationService drives WhatsApp conversations and lead intake.
type ConversationService interface {
	HandleNotification(ctx context.Context, n *models.Notification) error
	SubmitDetails(ctx context.Context, req models.SubmitDetailsRequest) (*LeadResult, error)
	ScheduleWelcome(ctx context.Context, req models.ScheduleMessageRequest) (*LeadResult, error)
}

// LeadResult reports what intake did for a lead.
type LeadResult struct {
	User      *models.User `json:"user"`
	Created   bool         `json:"created"`
	MessageID string       `json:"messageId,omitempty"`
	JobID     string       `json:"jobId,omitempty"`
}

// Deduper drops repeated deliveries of the same message id. Forget releases
// a claim so a failed message can be handled again on redelivery.
type Deduper interface {
	FirstSeen(ctx context.Context, key string) bool
	Forget(ctx context.Context, key string)
}

// WelcomeScheduler queues delayed greetings.
type WelcomeScheduler interface {
	Schedule(ctx context.Context, chatID, name string) (string, error)
}

// Transcriber turns a voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
