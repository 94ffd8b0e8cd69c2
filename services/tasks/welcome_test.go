package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"outreach/models"

	"github.com/hibiken/asynq"
)

type fakeQueue struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task, f.opts = task, opts
	return &asynq.TaskInfo{ID: "job-1", Type: task.Type()}, nil
}

func TestWelcomeMessage(t *testing.T) {
	want := "שלום דנה, תודה שנרשמת! נשמח לתת לך פרטים נוספים."
	if got := WelcomeMessage("דנה"); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestScheduleWelcome(t *testing.T) {
	q := &fakeQueue{}
	s := NewWelcomeScheduler(q, 5*time.Minute)

	id, err := s.Schedule(context.Background(), "972501234567@c.us", "Dana")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if id != "job-1" {
		t.Fatalf("id = %q", id)
	}
	if q.task.Type() != TypeWelcomeMessage {
		t.Fatalf("type = %q", q.task.Type())
	}
	var p models.WelcomePayload
	if err := json.Unmarshal(q.task.Payload(), &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.ChatID != "972501234567@c.us" || p.Name != "Dana" || p.Message != WelcomeMessage("Dana") {
		t.Fatalf("payload = %+v", p)
	}
	if len(q.opts) != 3 {
		t.Fatalf("opts = %d", len(q.opts))
	}
	if q.opts[0].Type() != asynq.ProcessInOpt || q.opts[0].Value() != 5*time.Minute {
		t.Fatalf("first option = %v %v", q.opts[0].Type(), q.opts[0].Value())
	}
}

func TestScheduleWelcomeEnqueueError(t *testing.T) {
	boom := errors.New("redis down")
	s := NewWelcomeScheduler(&fakeQueue{err: boom}, time.Minute)
	if _, err := s.Schedule(context.Background(), "x@c.us", "n"); !errors.Is(err, boom) {
		t.Fatalf("want wrapped enqueue error, got %v", err)
	}
}
