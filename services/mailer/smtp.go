package mailer

import (
	"context"
	"fmt"
	"io"
	"time"

	"outreach/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const calendarContentType = "text/calendar; charset=UTF-8; method=REQUEST"

// InviteSender delivers meeting invites.
type InviteSender interface {
	SendInvite(ctx context.Context, invite models.MeetingInvite) error
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender sends invites through an authenticated SMTP server.
type SMTPSender struct {
	send   func(*gomail.Message) error
	logger *zap.Logger
	now    func() time.Time
}

func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Username == "" {
		return nil, fmt.Errorf("smtp host and username are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPSender{
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		logger: logger,
		now:    time.Now,
	}, nil
}

// SendInvite mails the invite to both the recipient and the organizer.
func (s *SMTPSender) SendInvite(ctx context.Context, invite models.MeetingInvite) error {
	uid := uuid.NewString() + "@outreach"
	ics, err := BuildInvite(invite, uid, s.now())
	if err != nil {
		return err
	}
	msg := newInviteMessage(invite, ics)

	done := make(chan error, 1)
	go func() { done <- s.send(msg) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send invite to %s: %w", invite.RecipientEmail, err)
		}
	}
	s.logger.Info("Meeting invite sent",
		zap.String("recipient", invite.RecipientEmail),
		zap.Time("start", invite.Start),
		zap.String("uid", uid))
	return nil
}

func newInviteMessage(invite models.MeetingInvite, ics []byte) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", invite.SenderEmail, invite.SenderName)
	m.SetHeader("To", invite.RecipientEmail, invite.SenderEmail)
	m.SetHeader("Subject", invite.Subject)
	m.SetBody("text/plain", invite.Description)
	m.AddAlternative(calendarContentType, string(ics))
	m.Attach("invite.ics",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(ics)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {calendarContentType}}),
	)
	return m
}
