// File: services/scheduling/service.go
package scheduling

import (
	"context"
	"fmt"
	"time"

	"outreach/models"

	"go.uber.org/zap"
)

// DefaultSchedulingService combines a busy provider with FindFreeSlots.
type DefaultSchedulingService struct {
	Busy       BusyProvider
	Events     EventCreator
	CalendarID string
	Location   *time.Location
	// Working hours, as offsets from local midnight.
	DayStart time.Duration
	DayEnd   time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewSchedulingService builds a service with 09:00-17:00 working hours.
func NewSchedulingService(provider CalendarProvider, calendarID string, loc *time.Location, logger *zap.Logger) *DefaultSchedulingService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSchedulingService{
		Busy:       provider,
		Events:     provider,
		CalendarID: calendarID,
		Location:   loc,
		DayStart:   9 * time.Hour,
		DayEnd:     17 * time.Hour,
		Logger:     logger,
		Now:        time.Now,
	}
}

// FreeSlots fetches busy intervals for [from, to] and scans them for free slots.
// An invalid request returns an empty list without calling the provider.
func (s *DefaultSchedulingService) FreeSlots(ctx context.Context, from, to time.Time, durationMinutes int) ([]models.FreeSlot, error) {
	req := models.SlotRequest{WindowStart: from, WindowEnd: to, DurationMinutes: durationMinutes}
	if !req.Valid() {
		return []models.FreeSlot{}, nil
	}

	busy, err := s.Busy.Busy(ctx, s.CalendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("free/busy query for %s: %w", s.CalendarID, err)
	}
	s.Logger.Debug("free/busy fetched",
		zap.String("calendar", s.CalendarID),
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("busy", len(busy)),
	)
	return FindFreeSlots(busy, req), nil
}

// SlotsForDay scans the working hours of day in the service location.
// Slots that already started are not offered.
func (s *DefaultSchedulingService) SlotsForDay(ctx context.Context, day time.Time, durationMinutes int) ([]models.FreeSlot, error) {
	from, to := s.WorkingHours(day)
	if now := s.Now().In(s.Location); now.After(from) {
		from = ceilTo(now, time.Duration(durationMinutes)*time.Minute)
	}
	return s.FreeSlots(ctx, from, to, durationMinutes)
}

// WorkingHours returns the working window of day in the service location.
func (s *DefaultSchedulingService) WorkingHours(day time.Time) (time.Time, time.Time) {
	d := day.In(s.Location)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.Location)
	return midnight.Add(s.DayStart), midnight.Add(s.DayEnd)
}

// BookFirstAvailable books the first chronological free slot of the request window.
func (s *DefaultSchedulingService) BookFirstAvailable(ctx context.Context, req BookingRequest) (*models.CreatedEvent, error) {
	slots, err := s.FreeSlots(ctx, req.From, req.To, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoFreeSlots
	}
	slot := slots[0]

	event := models.CalendarEvent{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       slot.Start,
		End:         slot.End,
	}
	if req.Attendee != "" {
		event.Attendees = []string{req.Attendee}
	}
	return s.CreateEvent(ctx, event)
}

// CreateEvent inserts an event into the configured calendar.
func (s *DefaultSchedulingService) CreateEvent(ctx context.Context, event models.CalendarEvent) (*models.CreatedEvent, error) {
	created, err := s.Events.CreateEvent(ctx, s.CalendarID, event)
	if err != nil {
		return nil, fmt.Errorf("create event in %s: %w", s.CalendarID, err)
	}
	s.Logger.Info("calendar event created",
		zap.String("id", created.ID),
		zap.Time("start", created.Start),
		zap.String("link", created.HTMLLink),
	)
	return created, nil
}

// ceilTo rounds t up to the next multiple of step since local midnight.
func ceilTo(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := t.Sub(midnight)
	if rem := offset % step; rem != 0 {
		offset += step - rem
	}
	return midnight.Add(offset)
}
