package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"outreach/models"

	"google.golang.org/api/calendar/v3"
)

type fakeCalendar struct {
	busy      []models.BusyInterval
	busyErr   error
	busyCalls int
	created   []models.CalendarEvent
}

func (f *fakeCalendar) Busy(_ context.Context, _ string, _, _ time.Time) ([]models.BusyInterval, error) {
	f.busyCalls++
	return f.busy, f.busyErr
}

func (f *fakeCalendar) CreateEvent(_ context.Context, _ string, ev models.CalendarEvent) (*models.CreatedEvent, error) {
	f.created = append(f.created, ev)
	return &models.CreatedEvent{ID: "evt-1", HTMLLink: "https://calendar/evt-1", Start: ev.Start, End: ev.End}, nil
}

func newTestService(f *fakeCalendar, now time.Time) *DefaultSchedulingService {
	s := NewSchedulingService(f, "owner@example.com", time.UTC, nil)
	s.Now = func() time.Time { return now }
	return s
}

func TestFreeSlots_InvalidRequestSkipsProvider(t *testing.T) {
	f := &fakeCalendar{}
	s := newTestService(f, day)

	got, err := s.FreeSlots(context.Background(), at("12:00"), at("09:00"), 30)
	if err != nil {
		t.Fatalf("FreeSlots() error = %v", err)
	}
	if len(got) != 0 || f.busyCalls != 0 {
		t.Fatalf("got %v slots, %d provider calls; want none", got, f.busyCalls)
	}
}

func TestFreeSlots_ProviderErrorPropagates(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := newTestService(&fakeCalendar{busyErr: boom}, day)

	_, err := s.FreeSlots(context.Background(), at("09:00"), at("12:00"), 30)
	if !errors.Is(err, boom) {
		t.Fatalf("FreeSlots() error = %v, want wrapped %v", err, boom)
	}
}

func TestSlotsForDay_ClampsToNow(t *testing.T) {
	f := &fakeCalendar{busy: []models.BusyInterval{iv("14:00", "15:00")}}
	s := newTestService(f, at("13:10"))

	got, err := s.SlotsForDay(context.Background(), day, 30)
	if err != nil {
		t.Fatalf("SlotsForDay() error = %v", err)
	}
	want := []models.FreeSlot{
		iv("13:30", "14:00"), iv("15:00", "15:30"), iv("15:30", "16:00"), iv("16:00", "16:30"), iv("16:30", "17:00"),
	}
	if len(got) != len(want) {
		t.Fatalf("SlotsForDay() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("slot %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSlotsForDay_FutureDayUsesWorkingHours(t *testing.T) {
	s := newTestService(&fakeCalendar{}, day.Add(-48*time.Hour))

	got, err := s.SlotsForDay(context.Background(), day, 60)
	if err != nil {
		t.Fatalf("SlotsForDay() error = %v", err)
	}
	if len(got) != 8 || !got[0].Start.Equal(at("09:00")) || !got[7].End.Equal(at("17:00")) {
		t.Fatalf("SlotsForDay() = %v", got)
	}
}

func TestBookFirstAvailable(t *testing.T) {
	f := &fakeCalendar{busy: []models.BusyInterval{iv("09:00", "10:00")}}
	s := newTestService(f, day)

	ev, err := s.BookFirstAvailable(context.Background(), BookingRequest{
		From: at("09:00"), To: at("17:00"), DurationMinutes: 60,
		Summary: "Consultation", Attendee: "lead@example.com",
	})
	if err != nil {
		t.Fatalf("BookFirstAvailable() error = %v", err)
	}
	if !ev.Start.Equal(at("10:00")) || !ev.End.Equal(at("11:00")) {
		t.Fatalf("booked %v-%v, want 10:00-11:00", ev.Start, ev.End)
	}
	if len(f.created) != 1 || f.created[0].Attendees[0] != "lead@example.com" {
		t.Fatalf("created events = %+v", f.created)
	}
}

func TestBookFirstAvailable_NoSlots(t *testing.T) {
	f := &fakeCalendar{busy: []models.BusyInterval{iv("09:00", "17:00")}}
	s := newTestService(f, day)

	_, err := s.BookFirstAvailable(context.Background(), BookingRequest{From: at("09:00"), To: at("17:00"), DurationMinutes: 30})
	if !errors.Is(err, ErrNoFreeSlots) {
		t.Fatalf("BookFirstAvailable() error = %v, want ErrNoFreeSlots", err)
	}
	if len(f.created) != 0 {
		t.Fatal("an event was created without a free slot")
	}
}

func TestCeilTo(t *testing.T) {
	cases := []struct {
		in   string
		step time.Duration
		want string
	}{
		{"13:10", 30 * time.Minute, "13:30"},
		{"13:30", 30 * time.Minute, "13:30"},
		{"13:31", 15 * time.Minute, "13:45"},
		{"13:31", 0, "13:31"},
	}
	for _, c := range cases {
		if got := ceilTo(at(c.in), c.step); !got.Equal(at(c.want)) {
			t.Fatalf("ceilTo(%s, %v) = %v, want %s", c.in, c.step, got, c.want)
		}
	}
}

func TestParseBusy(t *testing.T) {
	got, err := parseBusy([]*calendar.TimePeriod{
		{Start: "2025-09-10T10:00:00+03:00", End: "2025-09-10T11:00:00+03:00"},
	})
	if err != nil {
		t.Fatalf("parseBusy() error = %v", err)
	}
	if len(got) != 1 || !got[0].Start.Equal(time.Date(2025, 9, 10, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("parseBusy() = %v", got)
	}

	if _, err := parseBusy([]*calendar.TimePeriod{{Start: "not-a-time", End: "x"}}); err == nil {
		t.Fatal("parseBusy() accepted a malformed period")
	}
}
