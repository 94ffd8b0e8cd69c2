// File: services/scheduling/google.go
package scheduling

import (
	"context"
	"fmt"
	"time"

	"outreach/models"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar talks to the Google Calendar API with a service account.
type GoogleCalendar struct {
	svc         *calendar.Service
	timeZone    string
	addMeetLink bool
}

// NewGoogleCalendar creates a Calendar client from a service-account credentials file.
func NewGoogleCalendar(ctx context.Context, credentialsFile, timeZone string, addMeetLink bool, opts ...option.ClientOption) (*GoogleCalendar, error) {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(calendar.CalendarScope))

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendar{svc: svc, timeZone: timeZone, addMeetLink: addMeetLink}, nil
}

// Busy runs a freebusy query for a single calendar.
func (g *GoogleCalendar) Busy(ctx context.Context, calendarID string, from, to time.Time) ([]models.BusyInterval, error) {
	resp, err := g.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin:  from.Format(time.RFC3339),
		TimeMax:  to.Format(time.RFC3339),
		TimeZone: g.timeZone,
		Items:    []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("calendar %s missing from free/busy response", calendarID)
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("calendar %s: %s", calendarID, cal.Errors[0].Reason)
	}
	return parseBusy(cal.Busy)
}

// CreateEvent inserts an event and notifies attendees.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, calendarID string, event models.CalendarEvent) (*models.CreatedEvent, error) {
	ev := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &calendar.EventDateTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: g.timeZone},
		End:         &calendar.EventDateTime{DateTime: event.End.Format(time.RFC3339), TimeZone: g.timeZone},
	}
	for _, email := range event.Attendees {
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: email})
	}

	if g.addMeetLink {
		ev.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
	}

	call := g.svc.Events.Insert(calendarID, ev).SendUpdates("all").Context(ctx)
	if g.addMeetLink {
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, err
	}
	return &models.CreatedEvent{
		ID:          created.Id,
		HTMLLink:    created.HtmlLink,
		MeetingLink: created.HangoutLink,
		Start:       event.Start,
		End:         event.End,
	}, nil
}

func parseBusy(periods []*calendar.TimePeriod) ([]models.BusyInterval, error) {
	busy := make([]models.BusyInterval, 0, len(periods))
	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", p.End, err)
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}
