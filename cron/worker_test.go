package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"outreach/models"
	"outreach/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type recordingSender struct {
	chatID, text string
	err          error
}

func (r *recordingSender) SendMessage(_ context.Context, chatID, text string) (string, error) {
	r.chatID, r.text = chatID, text
	return "id-1", r.err
}

func welcomeTask(t *testing.T, p models.WelcomePayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(tasks.TypeWelcomeMessage, b)
}

func TestHandleWelcomeTask(t *testing.T) {
	s := &recordingSender{}
	h := HandleWelcomeTask(s, zap.NewNop())

	err := h.ProcessTask(context.Background(), welcomeTask(t, models.WelcomePayload{ChatID: "972501234567@c.us", Name: "Dana"}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if s.chatID != "972501234567@c.us" || s.text != tasks.WelcomeMessage("Dana") {
		t.Fatalf("sent %q to %q", s.text, s.chatID)
	}
}

func TestHandleWelcomeTaskFailures(t *testing.T) {
	h := HandleWelcomeTask(&recordingSender{}, zap.NewNop())

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeWelcomeMessage, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("bad payload should skip retry, got %v", err)
	}
	err = h.ProcessTask(context.Background(), welcomeTask(t, models.WelcomePayload{Name: "x"}))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("missing chat id should skip retry, got %v", err)
	}

	boom := errors.New("gateway down")
	h = HandleWelcomeTask(&recordingSender{err: boom}, zap.NewNop())
	if err := h.ProcessTask(context.Background(), welcomeTask(t, models.WelcomePayload{ChatID: "a@c.us"})); !errors.Is(err, boom) {
		t.Fatalf("send error should be retried, got %v", err)
	}
}
