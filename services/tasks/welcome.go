package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"outreach/models"

	"github.com/hibiken/asynq"
)

const (
	TypeWelcomeMessage = "whatsapp:welcome"

	welcomeMaxRetry = 3
)

// WelcomeMessage is the greeting a new lead receives.
func WelcomeMessage(name string) string {
	if name == "" {
		return "שלום, תודה שנרשמת! נשמח לתת לך פרטים נוספים."
	}
	return fmt.Sprintf("שלום %s, תודה שנרשמת! נשמח לתת לך פרטים נוספים.", name)
}

func NewWelcomeTask(payload models.WelcomePayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWelcomeMessage, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(welcomeMaxRetry),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// WelcomeScheduler queues delayed welcome messages.
type WelcomeScheduler struct {
	queue Enqueuer
	delay time.Duration
}

func NewWelcomeScheduler(queue Enqueuer, delay time.Duration) *WelcomeScheduler {
	return &WelcomeScheduler{queue: queue, delay: delay}
}

// Schedule queues a welcome for chatID and returns the job id.
func (s *WelcomeScheduler) Schedule(ctx context.Context, chatID, name string) (string, error) {
	task, opts, err := NewWelcomeTask(models.WelcomePayload{
		ChatID:  chatID,
		Name:    name,
		Message: WelcomeMessage(name),
	}, s.delay)
	if err != nil {
		return "", fmt.Errorf("build welcome task: %w", err)
	}
	info, err := s.queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("enqueue welcome task: %w", err)
	}
	return info.ID, nil
}
