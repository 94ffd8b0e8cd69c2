package mailer

import (
	"bytes"
	"fmt"
	"time"

	"outreach/models"

	"github.com/emersion/go-ical"
)

const productID = "-//outreach//meeting invite//EN"

// BuildInvite renders invite as an iCalendar REQUEST. Times are written in UTC.
func BuildInvite(invite models.MeetingInvite, uid string, now time.Time) ([]byte, error) {
	if invite.RecipientEmail == "" || invite.SenderEmail == "" {
		return nil, fmt.Errorf("invite needs sender and recipient addresses")
	}
	if !invite.End.After(invite.Start) {
		return nil, fmt.Errorf("invite end %s is not after start %s", invite.End, invite.Start)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropMethod, "REQUEST")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, invite.Start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, invite.End.UTC())
	event.Props.SetText(ical.PropSummary, invite.Subject)
	if invite.Description != "" {
		event.Props.SetText(ical.PropDescription, invite.Description)
	}
	event.Props.SetText(ical.PropStatus, "CONFIRMED")

	organizer := ical.NewProp(ical.PropOrganizer)
	organizer.Value = "mailto:" + invite.SenderEmail
	if invite.SenderName != "" {
		organizer.Params.Set(ical.ParamCommonName, invite.SenderName)
	}
	event.Props.Set(organizer)

	attendee := ical.NewProp(ical.PropAttendee)
	attendee.Value = "mailto:" + invite.RecipientEmail
	attendee.Params.Set(ical.ParamCommonName, invite.RecipientEmail)
	attendee.Params.Set(ical.ParamRSVP, "TRUE")
	event.Props.Set(attendee)

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode invite: %w", err)
	}
	return buf.Bytes(), nil
}
