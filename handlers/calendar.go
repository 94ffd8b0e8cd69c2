package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"outreach/models"
	"outreach/services/scheduling"
	"outreach/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxSlotMinutes matches the booking payload's duration limit.
const maxSlotMinutes = 480

// CalendarHandler exposes free-slot lookup and automatic booking to admins.
type CalendarHandler struct {
	Scheduling      scheduling.SchedulingService
	Location        *time.Location
	DefaultDuration int
	Now             func() time.Time
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(s scheduling.SchedulingService, loc *time.Location, defaultDuration int) *CalendarHandler {
	if loc == nil {
		loc = time.UTC
	}
	if defaultDuration < 1 {
		defaultDuration = 60
	}
	return &CalendarHandler{
		Scheduling:      s,
		Location:        loc,
		DefaultDuration: defaultDuration,
		Now:             time.Now,
	}
}

// defaultWindow is tomorrow 09:00-17:00 local time.
func (h *CalendarHandler) defaultWindow() (time.Time, time.Time) {
	now := h.Now().In(h.Location)
	y, m, d := now.AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 9, 0, 0, 0, h.Location), time.Date(y, m, d, 17, 0, 0, 0, h.Location)
}

// FreeSlotsHandler lists free slots in ?from=&to= (RFC3339) of ?duration= minutes.
func (h *CalendarHandler) FreeSlotsHandler(c *gin.Context) {
	logger := getLogger(c)

	from, to := h.defaultWindow()
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid 'from' time, expected RFC3339", err.Error())
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid 'to' time, expected RFC3339", err.Error())
			return
		}
	}
	duration := h.DefaultDuration
	if v := c.Query("duration"); v != "" {
		if duration, err = strconv.Atoi(v); err != nil || duration < 1 || duration > maxSlotMinutes {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration, expected 1-480 minutes", v)
			return
		}
	}

	slots, err := h.Scheduling.FreeSlots(c.Request.Context(), from, to, duration)
	if err != nil {
		logger.Error("Failed to fetch free slots", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to query calendar", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":     from,
		"to":       to,
		"duration": duration,
		"slots":    slots,
	})
}

// BookHandler books the first free slot of the requested window.
func (h *CalendarHandler) BookHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}
	if req.Duration == 0 {
		req.Duration = h.DefaultDuration
	}

	event, err := h.Scheduling.BookFirstAvailable(c.Request.Context(), scheduling.BookingRequest{
		From:            req.From,
		To:              req.To,
		DurationMinutes: req.Duration,
		Summary:         req.Summary,
		Description:     req.Description,
		Attendee:        req.Email,
	})
	if err != nil {
		if errors.Is(err, scheduling.ErrNoFreeSlots) {
			utils.JSONError(c, http.StatusConflict, "No free slot in the requested window", "")
			return
		}
		logger.Error("Failed to book slot", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to book slot", "")
		return
	}
	c.JSON(http.StatusCreated, event)
}
