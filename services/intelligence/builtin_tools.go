// File: services/intelligence/builtin_tools.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"outreach/models"
	"outreach/services/mailer"
	"outreach/services/pagespeed"

	"github.com/go-playground/validator/v10"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"
)

const (
	ToolPageSpeed      = "getPageSpeedInsights"
	ToolAvailableSlots = "getAvailableSlots"
	ToolMeetingInvite  = "sendMeetingInvite"

	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04:05"
)

var validate = validator.New()

// PageSpeedInsighter is satisfied by *pagespeed.Service.
type PageSpeedInsighter interface {
	Insights(ctx context.Context, target string) (models.PageSpeedSummary, error)
}

// SlotFinder is the part of the scheduling service the tools use.
type SlotFinder interface {
	FreeSlots(ctx context.Context, from, to time.Time, durationMinutes int) ([]models.FreeSlot, error)
	SlotsForDay(ctx context.Context, day time.Time, durationMinutes int) ([]models.FreeSlot, error)
}

// EventBooker creates calendar events.
type EventBooker interface {
	CreateEvent(ctx context.Context, ev models.CalendarEvent) (*models.CreatedEvent, error)
}

// EmailRecorder stores the address a lead gave.
type EmailRecorder interface {
	SetEmail(ctx context.Context, phone, email string) error
}

// PageSpeedTool analyses a website.
func PageSpeedTool(svc PageSpeedInsighter) Tool {
	return Tool{
		Spec: ToolSpec{
			Name:        ToolPageSpeed,
			Description: "Get Google PageSpeed Insights for a given URL.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"url": {Type: jsonschema.String, Description: "The full URL to check (including https://)"},
				},
				Required: []string{"url"},
			},
		},
		Handler: func(ctx context.Context, _ Caller, raw json.RawMessage) (string, error) {
			var args struct {
				URL string `json:"url"`
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("decode arguments: %w", err)
			}
			sum, err := svc.Insights(ctx, args.URL)
			if err != nil {
				return "", err
			}
			return pagespeed.Format(sum), nil
		},
	}
}

// AvailableSlotsTool lists free meeting slots on a working day.
func AvailableSlotsTool(slots SlotFinder, loc *time.Location, durationMinutes int, now func() time.Time) Tool {
	return Tool{
		Spec: ToolSpec{
			Name:        ToolAvailableSlots,
			Description: fmt.Sprintf("List free %d-minute meeting slots on a given day in Israel time, between 09:00 and 17:00.", durationMinutes),
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"date": {Type: jsonschema.String, Description: "The day to check, formatted YYYY-MM-DD. Defaults to today."},
				},
			},
		},
		Handler: func(ctx context.Context, _ Caller, raw json.RawMessage) (string, error) {
			var args struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("decode arguments: %w", err)
			}
			day := now().In(loc)
			if args.Date != "" {
				d, err := time.ParseInLocation(dateLayout, args.Date, loc)
				if err != nil {
					return "", fmt.Errorf("date must be YYYY-MM-DD: %w", err)
				}
				day = d
			}

			free, err := slots.SlotsForDay(ctx, day, durationMinutes)
			if err != nil {
				return "", err
			}
			if len(free) == 0 {
				return fmt.Sprintf("No free slots on %s.", day.Format(dateLayout)), nil
			}
			return formatSlots(day, free, loc), nil
		},
	}
}

// MeetingDeps wires the invite tool.
type MeetingDeps struct {
	Sender          mailer.InviteSender
	Slots           SlotFinder
	Events          EventBooker
	Users           EmailRecorder
	SenderEmail     string
	SenderName      string
	Subject         string
	DurationMinutes int
	Location        *time.Location
	Now             func() time.Time
	Logger          *zap.Logger
}

// MeetingInviteTool books a meeting and emails an iCalendar invite.
func MeetingInviteTool(d MeetingDeps) Tool {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	duration := time.Duration(d.DurationMinutes) * time.Minute

	return Tool{
		Spec: ToolSpec{
			Name: ToolMeetingInvite,
			Description: fmt.Sprintf("Sends a meeting invitation. Requires start and end date/time in ISO 8601 format for the Israel time zone. The meeting duration is always %d minutes.",
				d.DurationMinutes),
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"recipientEmail": {Type: jsonschema.String, Description: "The client's email address."},
					"startDateTime":  {Type: jsonschema.String, Description: "The meeting start in ISO 8601 for the Israel time zone (e.g. '2025-09-07T14:00:00+03:00')."},
					"endDateTime":    {Type: jsonschema.String, Description: fmt.Sprintf("The meeting end in ISO 8601, exactly %d minutes after the start.", d.DurationMinutes)},
				},
				Required: []string{"recipientEmail", "startDateTime"},
			},
		},
		Handler: func(ctx context.Context, caller Caller, raw json.RawMessage) (string, error) {
			var args struct {
				RecipientEmail string `json:"recipientEmail"`
				StartDateTime  string `json:"startDateTime"`
				EndDateTime    string `json:"endDateTime"`
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("decode arguments: %w", err)
			}
			email := strings.TrimSpace(args.RecipientEmail)
			if err := validate.Var(email, "required,email"); err != nil {
				return "", fmt.Errorf("recipientEmail %q is not a valid email address", email)
			}

			start, err := ParseMeetingTime(args.StartDateTime, d.Location)
			if err != nil {
				return "", fmt.Errorf("startDateTime: %w", err)
			}
			end := MeetingEnd(start, args.EndDateTime, duration, d.Location)
			if !start.After(d.Now()) {
				return "", fmt.Errorf("startDateTime %s is in the past", start.In(d.Location).Format(time.RFC3339))
			}

			if d.Slots != nil {
				free, err := d.Slots.FreeSlots(ctx, start, end, int(end.Sub(start)/time.Minute))
				if err != nil {
					return "", err
				}
				if len(free) == 0 {
					return fmt.Sprintf("The time %s is not available. Ask the client for another time or check %s.",
						start.In(d.Location).Format("2006-01-02 15:04"), ToolAvailableSlots), nil
				}
			}

			invite := models.MeetingInvite{
				SenderEmail:    d.SenderEmail,
				SenderName:     d.SenderName,
				RecipientEmail: email,
				Subject:        d.Subject,
				Description:    meetingDescription(caller),
				Start:          start,
				End:            end,
			}
			if err := d.Sender.SendInvite(ctx, invite); err != nil {
				return "", err
			}

			if d.Events != nil {
				if _, err := d.Events.CreateEvent(ctx, models.CalendarEvent{
					Summary:     d.Subject,
					Description: invite.Description,
					Start:       start,
					End:         end,
					Attendees:   []string{email},
				}); err != nil {
					d.Logger.Error("calendar event for invite failed", zap.String("recipient", email), zap.Error(err))
				}
			}
			if d.Users != nil && caller.Phone != "" {
				if err := d.Users.SetEmail(ctx, caller.Phone, email); err != nil {
					d.Logger.Warn("could not store lead email", zap.String("phone", caller.Phone), zap.Error(err))
				}
			}

			return fmt.Sprintf("The invite was sent to %s for %s.", email,
				start.In(d.Location).Format("Monday 2006-01-02 15:04")), nil
		},
	}
}

// ParseMeetingTime accepts RFC 3339 or a zone-less local time in loc.
func ParseMeetingTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{localTimeLayout, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as ISO 8601", s)
}

// MeetingEnd returns the requested end when it is parseable and at least a
// minute after start, rounded up to a whole minute. Otherwise it returns
// start plus the standard duration.
func MeetingEnd(start time.Time, raw string, duration time.Duration, loc *time.Location) time.Time {
	end, err := ParseMeetingTime(raw, loc)
	if err != nil || end.Sub(start) < time.Minute {
		return start.Add(duration)
	}
	// Slots are whole minutes; round a partial last minute up.
	length := end.Sub(start)
	if rem := length % time.Minute; rem != 0 {
		length += time.Minute - rem
	}
	return start.Add(length)
}

func meetingDescription(c Caller) string {
	switch {
	case c.Name != "" && c.Phone != "":
		return fmt.Sprintf("Consultation with %s (%s)", c.Name, c.Phone)
	case c.Phone != "":
		return "Consultation with " + c.Phone
	default:
		return "Consultation"
	}
}

func formatSlots(day time.Time, free []models.FreeSlot, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Free slots on %s:", day.Format(dateLayout))
	for _, s := range free {
		fmt.Fprintf(&b, "\n- %s-%s", s.Start.In(loc).Format("15:04"), s.End.In(loc).Format("15:04"))
	}
	return b.String()
}
