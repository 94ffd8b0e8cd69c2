package models

import "time"

// TimeInterval is a half-open range [Start, End).
type TimeInterval struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Duration returns End - Start.
func (t TimeInterval) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Overlaps reports whether t and o share any instant under half-open semantics.
func (t TimeInterval) Overlaps(o TimeInterval) bool {
	return t.Start.Before(o.End) && t.End.After(o.Start)
}

// BusyInterval is a range the calendar provider reports as occupied.
// Overlapping, unsorted and zero-length entries are all legal.
type BusyInterval = TimeInterval

// FreeSlot is a candidate meeting slot of exactly the requested length.
type FreeSlot = TimeInterval

// SlotRequest describes the window to scan and the slot length.
type SlotRequest struct {
	WindowStart     time.Time `json:"windowStart"`
	WindowEnd       time.Time `json:"windowEnd"`
	DurationMinutes int       `json:"durationMinutes"`
}

// Duration returns the slot length as a time.Duration.
func (r SlotRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// Valid reports whether the request can produce any slot at all: the
// duration must be positive and fit inside the window. Comparing in whole
// minutes keeps Duration from overflowing for huge DurationMinutes.
func (r SlotRequest) Valid() bool {
	if r.DurationMinutes <= 0 || !r.WindowStart.Before(r.WindowEnd) {
		return false
	}
	return int64(r.DurationMinutes) <= int64(r.WindowEnd.Sub(r.WindowStart)/time.Minute)
}
