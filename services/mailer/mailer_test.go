package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"outreach/models"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func sampleInvite(t *testing.T) models.MeetingInvite {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start := time.Date(2025, 9, 9, 14, 0, 0, 0, loc)
	return models.MeetingInvite{
		SenderEmail:    "tal@example.com",
		SenderName:     "Tal",
		RecipientEmail: "lead@example.com",
		Subject:        "Intro call",
		Description:    "Short consultation",
		Start:          start,
		End:            start.Add(30 * time.Minute),
	}
}

func TestBuildInvite(t *testing.T) {
	inv := sampleInvite(t)
	now := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)

	raw, err := BuildInvite(inv, "uid-1@outreach", now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	text := string(raw)
	for _, want := range []string{
		"METHOD:REQUEST",
		"UID:uid-1@outreach",
		"DTSTAMP:20250908T100000Z",
		"DTSTART:20250909T110000Z",
		"DTEND:20250909T113000Z",
		"SUMMARY:Intro call",
		"mailto:lead@example.com",
		"mailto:tal@example.com",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("invite missing %q:\n%s", want, text)
		}
	}

	cal, err := ical.NewDecoder(bytes.NewReader(raw)).Decode()
	if err != nil {
		t.Fatalf("decode generated invite: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d", len(events))
	}
	att := events[0].Props.Get(ical.PropAttendee)
	if att == nil || att.Params.Get(ical.ParamRSVP) != "TRUE" {
		t.Fatalf("attendee RSVP missing: %+v", att)
	}
	org := events[0].Props.Get(ical.PropOrganizer)
	if org == nil || org.Params.Get(ical.ParamCommonName) != "Tal" {
		t.Fatalf("organizer CN missing: %+v", org)
	}
}

func TestBuildInviteRejectsBadInput(t *testing.T) {
	inv := sampleInvite(t)
	now := time.Now()

	noRecipient := inv
	noRecipient.RecipientEmail = ""
	if _, err := BuildInvite(noRecipient, "x", now); err == nil {
		t.Fatal("missing recipient accepted")
	}

	inverted := inv
	inverted.End = inv.Start
	if _, err := BuildInvite(inverted, "x", now); err == nil {
		t.Fatal("zero-length meeting accepted")
	}
}

func TestSMTPSenderSendInvite(t *testing.T) {
	var sent *gomail.Message
	s := &SMTPSender{
		send:   func(m *gomail.Message) error { sent = m; return nil },
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC) },
	}

	inv := sampleInvite(t)
	if err := s.SendInvite(context.Background(), inv); err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent == nil {
		t.Fatal("no message sent")
	}
	to := sent.GetHeader("To")
	if len(to) != 2 || to[0] != "lead@example.com" || to[1] != "tal@example.com" {
		t.Fatalf("To = %v", to)
	}

	var buf bytes.Buffer
	if _, err := sent.WriteTo(&buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, "text/calendar") || !strings.Contains(body, "invite.ics") {
		t.Fatalf("calendar parts missing:\n%s", body)
	}
}

func TestSMTPSenderPropagatesErrors(t *testing.T) {
	s := &SMTPSender{
		send:   func(*gomail.Message) error { return errors.New("auth failed") },
		logger: zap.NewNop(),
		now:    time.Now,
	}
	if err := s.SendInvite(context.Background(), sampleInvite(t)); err == nil {
		t.Fatal("send error swallowed")
	}
}

func TestNewSMTPSenderValidates(t *testing.T) {
	if _, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com"}, nil); err == nil {
		t.Fatal("missing username accepted")
	}
}
