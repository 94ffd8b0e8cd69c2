package models

import "time"

// MeetingInvite describes an iCalendar REQUEST sent by email.
type MeetingInvite struct {
	SenderEmail    string
	SenderName     string
	RecipientEmail string
	Subject        string
	Description    string
	Start          time.Time
	End            time.Time
}

// CalendarEvent is the booking step's request to the calendar provider.
type CalendarEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// CreatedEvent is what the calendar provider returns after insertion.
type CreatedEvent struct {
	ID          string    `json:"id"`
	HTMLLink    string    `json:"htmlLink"`
	MeetingLink string    `json:"meetingLink,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// BookRequest is the admin payload for automatic booking.
type BookRequest struct {
	From        time.Time `json:"from" binding:"required"`
	To          time.Time `json:"to" binding:"required,gtfield=From"`
	Duration    int       `json:"duration" binding:"omitempty,min=1,max=480"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Email       string    `json:"email" binding:"omitempty,email"`
}
