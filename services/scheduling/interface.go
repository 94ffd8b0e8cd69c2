package scheduling

import (
	"context"
	"errors"
	"time"

	"outreach/models"
)

// ErrNoFreeSlots is returned when a booking window has no free slot left.
var ErrNoFreeSlots = errors.New("no free slots in the requested window")

// BusyProvider answers free/busy queries for a calendar.
type BusyProvider interface {
	Busy(ctx context.Context, calendarID string, from, to time.Time) ([]models.BusyInterval, error)
}

// EventCreator inserts events into a calendar.
type EventCreator interface {
	CreateEvent(ctx context.Context, calendarID string, event models.CalendarEvent) (*models.CreatedEvent, error)
}

// CalendarProvider is a calendar that can both answer free/busy and store events.
type CalendarProvider interface {
	BusyProvider
	EventCreator
}

// SchedulingService is what handlers and the assistant use to look up and book slots.
type SchedulingService interface {
	FreeSlots(ctx context.Context, from, to time.Time, durationMinutes int) ([]models.FreeSlot, error)
	SlotsForDay(ctx context.Context, day time.Time, durationMinutes int) ([]models.FreeSlot, error)
	BookFirstAvailable(ctx context.Context, req BookingRequest) (*models.CreatedEvent, error)
	CreateEvent(ctx context.Context, event models.CalendarEvent) (*models.CreatedEvent, error)
}

// BookingRequest asks for the first free slot of a window to be booked.
type BookingRequest struct {
	From            time.Time
	To              time.Time
	DurationMinutes int
	Summary         string
	Description     string
	Attendee        string
}
