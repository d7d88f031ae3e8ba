package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-scheduler/internal/model"
	"interview-scheduler/internal/slotgrid"
)

// GET /healthz
func (a *App) HealthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/interviewers
func (a *App) ListInterviewersHandler(c *gin.Context) {
	interviewers, err := a.Store.ListInterviewers(c.Request.Context())
	if err != nil {
		a.serverError(c, "list interviewers", err)
		return
	}
	if interviewers == nil {
		interviewers = []model.Interviewer{}
	}
	c.JSON(http.StatusOK, interviewers)
}

// GET /api/teams
func (a *App) ListTeamsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"teams": model.Teams})
}

// GET /api/teams/memberships
func (a *App) TeamMembershipsHandler(c *gin.Context) {
	byTeam, byInterviewer, err := a.Store.TeamMemberships(c.Request.Context())
	if err != nil {
		a.serverError(c, "list team memberships", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"by_team":        byTeam,
		"by_interviewer": byInterviewer,
	})
}

// GET /api/availability
func (a *App) AllAvailabilityHandler(c *gin.Context) {
	availability, err := a.Store.AllAvailability(c.Request.Context())
	if err != nil {
		a.serverError(c, "list availability", err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// GET /api/interviewers/:id/availability
func (a *App) GetAvailabilityHandler(c *gin.Context) {
	slots, err := a.Store.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.serverError(c, "get availability", err)
		return
	}
	if slots == nil {
		slots = []slotgrid.Key{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// PUT /api/interviewers/:id/availability
// Replaces the interviewer's whole slot set; an empty list clears it.
func (a *App) ReplaceAvailabilityHandler(c *gin.Context) {
	interviewerID := c.Param("id")
	var payload struct {
		Slots []slotgrid.Key `json:"slots"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Store.ReplaceAvailability(c.Request.Context(), interviewerID, payload.Slots); err != nil {
		a.serverError(c, "replace availability", err)
		return
	}
	a.Log.Info("availability replaced",
		zap.String("interviewer_id", interviewerID),
		zap.Int("slots", len(payload.Slots)))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/grid
// The fixed weekly grid the UI renders: dates, time labels, and
// display strings.
func (a *App) GridHandler(c *gin.Context) {
	dates := slotgrid.WeekDates()
	formatted := make(map[string]string, len(dates))
	for _, d := range dates {
		label, err := slotgrid.FormatDate(d)
		if err != nil {
			a.serverError(c, "format grid date", err)
			return
		}
		formatted[d] = label
	}
	c.JSON(http.StatusOK, gin.H{
		"week_start":      slotgrid.WeekStart,
		"week_dates":      dates,
		"time_labels":     slotgrid.TimeLabels(),
		"formatted_dates": formatted,
	})
}

// GET /api/schedule/options?a=ID&b=ID
func (a *App) ScheduleOptionsHandler(c *gin.Context) {
	aID := c.Query("a")
	bID := c.Query("b")
	if aID == "" || bID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a and b interviewer ids required"})
		return
	}
	opts, err := a.ScheduleOptionsFor(c.Request.Context(), aID, bID)
	if err != nil {
		a.serverError(c, "compute schedule options", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// GET /api/bookings
func (a *App) ListBookingsHandler(c *gin.Context) {
	bookings, err := a.Store.ListBookings(c.Request.Context())
	if err != nil {
		a.serverError(c, "list bookings", err)
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

type createBookingReq struct {
	CandidateName    string `json:"candidate_name" binding:"required"`
	CandidateEmail   string `json:"candidate_email" binding:"required,email"`
	InterviewerAID   string `json:"interviewer_a_id" binding:"required"`
	InterviewerBID   string `json:"interviewer_b_id" binding:"required"`
	SlotKey          string `json:"slot_key"`
	FirstPreference  string `json:"first_preference,omitempty"`
	SecondPreference string `json:"second_preference,omitempty"`
	Team             string `json:"team,omitempty"`
}

// POST /api/bookings
func (a *App) CreateBookingHandler(c *gin.Context) {
	var req createBookingReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := a.CreateBooking(c.Request.Context(), BookingRequest{
		CandidateName:    req.CandidateName,
		CandidateEmail:   req.CandidateEmail,
		InterviewerAID:   req.InterviewerAID,
		InterviewerBID:   req.InterviewerBID,
		SlotKey:          slotgrid.Key(req.SlotKey),
		FirstPreference:  req.FirstPreference,
		SecondPreference: req.SecondPreference,
		Team:             req.Team,
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotAlreadyBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrMissingCandidateInfo),
		errors.Is(err, ErrSameInterviewer),
		errors.Is(err, ErrNoSlotSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		a.serverError(c, "create booking", err)
		return
	}

	a.Log.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("slot_key", string(booking.SlotKey)),
		zap.String("interviewer_a_id", booking.InterviewerAID),
		zap.String("interviewer_b_id", booking.InterviewerBID))
	c.JSON(http.StatusCreated, booking)
}

// serverError logs the cause and answers with a generic message; the
// wrapped detail stays in the log, and store failures never crash the
// session.
func (a *App) serverError(c *gin.Context, op string, err error) {
	a.Log.Error(op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
