package whatsapp

import (
	"context"
	"time"

	"outreach/models"

	"go.uber.org/zap"
)

// Handler consumes a single notification.
type Handler func(ctx context.Context, n *models.Notification) error

// Poller drains the GreenAPI notification queue for deployments without a
// public webhook URL.
type Poller struct {
	gateway Gateway
	handle  Handler
	logger  *zap.Logger
	backoff time.Duration
}

func NewPoller(gateway Gateway, handle Handler, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{gateway: gateway, handle: handle, logger: logger, backoff: 5 * time.Second}
}

// Run polls until ctx is cancelled. Every received notification is deleted
// after handling, even when the handler fails, so a poison message cannot
// block the queue.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("WhatsApp poller started")
	for {
		if ctx.Err() != nil {
			p.logger.Info("WhatsApp poller stopped")
			return
		}
		if !p.poll(ctx) {
			select {
			case <-ctx.Done():
			case <-time.After(p.backoff):
			}
		}
	}
}

// poll handles at most one notification and reports whether the queue may
// have more waiting.
func (p *Poller) poll(ctx context.Context) bool {
	queued, err := p.gateway.ReceiveNotification(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("receive notification failed", zap.Error(err))
		}
		return false
	}
	if queued == nil {
		return true
	}

	if err := p.handle(ctx, &queued.Body); err != nil {
		p.logger.Error("notification handler failed",
			zap.Int64("receiptId", queued.ReceiptID),
			zap.String("idMessage", queued.Body.IDMessage),
			zap.Error(err))
	}
	if err := p.gateway.DeleteNotification(ctx, queued.ReceiptID); err != nil {
		p.logger.Error("delete notification failed", zap.Int64("receiptId", queued.ReceiptID), zap.Error(err))
		return false
	}
	return true
}
