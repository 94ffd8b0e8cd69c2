// File: services/scheduling/freeslots.go
package scheduling

import (
	"iter"
	"slices"
	"time"

	"outreach/models"
)

// FreeSlots lazily yields back-to-back free slots of req.DurationMinutes inside
// [req.WindowStart, req.WindowEnd] that overlap none of the busy intervals.
//
// busy may be empty, unsorted, overlapping or contain zero-length entries.
// An invalid request yields nothing.
func FreeSlots(busy []models.BusyInterval, req models.SlotRequest) iter.Seq[models.FreeSlot] {
	return func(yield func(models.FreeSlot) bool) {
		if !req.Valid() {
			return
		}
		duration := req.Duration()
		if duration <= 0 {
			return
		}
		cursor := req.WindowStart

		for !cursor.Add(duration).After(req.WindowEnd) {
			candidateEnd := cursor.Add(duration)

			var conflict bool
			var latestEnd time.Time
			for _, b := range busy {
				if cursor.Before(b.End) && candidateEnd.After(b.Start) {
					if !conflict || b.End.After(latestEnd) {
						latestEnd = b.End
					}
					conflict = true
				}
			}

			if !conflict {
				if !yield(models.FreeSlot{Start: cursor, End: candidateEnd}) {
					return
				}
				cursor = candidateEnd
				continue
			}

			// Never test the same cursor twice, even for malformed busy data.
			next := cursor.Add(time.Nanosecond)
			if latestEnd.After(next) {
				next = latestEnd
			}
			cursor = next
		}
	}
}

// FindFreeSlots returns every slot FreeSlots yields, in chronological order.
// The result is never nil.
func FindFreeSlots(busy []models.BusyInterval, req models.SlotRequest) []models.FreeSlot {
	slots := slices.Collect(FreeSlots(busy, req))
	if slots == nil {
		return []models.FreeSlot{}
	}
	return slots
}

// FirstFreeSlot returns the earliest free slot, if any.
func FirstFreeSlot(busy []models.BusyInterval, req models.SlotRequest) (models.FreeSlot, bool) {
	for slot := range FreeSlots(busy, req) {
		return slot, true
	}
	return models.FreeSlot{}, false
}
