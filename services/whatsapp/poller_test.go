package whatsapp

import (
	"context"
	"errors"
	"testing"

	"outreach/models"

	"go.uber.org/zap"
)

type fakeGateway struct {
	queue   []*models.QueuedNotification
	recvErr error
	deleted []int64
}

func (f *fakeGateway) SendMessage(context.Context, string, string) (string, error) { return "", nil }
func (f *fakeGateway) SetSettings(context.Context, Settings) error { return nil }
func (f *fakeGateway) DownloadFile(context.Context, string) ([]byte, error) { return nil, nil }

func (f *fakeGateway) ReceiveNotification(context.Context) (*models.QueuedNotification, error) {
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	if len(f.queue) == 0 {
		return nil, nil
	}
	q := f.queue[0]
	f.queue = f.queue[1:]
	return q, nil
}

func (f *fakeGateway) DeleteNotification(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestPollerDeletesEvenWhenHandlerFails(t *testing.T) {
	gw := &fakeGateway{queue: []*models.QueuedNotification{
		{ReceiptID: 1, Body: models.Notification{IDMessage: "a"}},
		{ReceiptID: 2, Body: models.Notification{IDMessage: "b"}},
	}}
	var seen []string
	p := NewPoller(gw, func(_ context.Context, n *models.Notification) error {
		seen = append(seen, n.IDMessage)
		if n.IDMessage == "a" {
			return errors.New("boom")
		}
		return nil
	}, zap.NewNop())

	ctx := context.Background()
	if !p.poll(ctx) || !p.poll(ctx) {
		t.Fatal("poll reported no progress")
	}
	if len(seen) != 2 || len(gw.deleted) != 2 || gw.deleted[0] != 1 || gw.deleted[1] != 2 {
		t.Fatalf("seen=%v deleted=%v", seen, gw.deleted)
	}
	if !p.poll(ctx) {
		t.Fatal("empty queue should allow an immediate re-poll")
	}
}

func TestPollerBacksOffOnError(t *testing.T) {
	gw := &fakeGateway{recvErr: errors.New("down")}
	p := NewPoller(gw, func(context.Context, *models.Notification) error { return nil }, nil)
	if p.poll(context.Background()) {
		t.Fatal("expected back-off signal")
	}
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	gw := &fakeGateway{recvErr: errors.New("down")}
	p := NewPoller(gw, func(context.Context, *models.Notification) error { return nil }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Run(ctx)
}
