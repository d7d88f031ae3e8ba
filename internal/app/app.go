// Package app wires the scheduling store, the overlap engine, and the
// HTTP handlers together.
package app

import (
	"context"

	"go.uber.org/zap"

	"interview-scheduler/internal/config"
	"interview-scheduler/internal/model"
	"interview-scheduler/internal/slotgrid"
)

// Store is the persistence contract the scheduler runs against. The
// production implementation is PostgresStore; tests substitute fakes.
type Store interface {
	// ListInterviewers returns all interviewers ordered by id.
	ListInterviewers(ctx context.Context) ([]model.Interviewer, error)

	// TeamMemberships returns team -> member ids and interviewer id ->
	// team names.
	TeamMemberships(ctx context.Context) (map[string][]string, map[string][]string, error)

	// AllAvailability returns every interviewer's declared slots in one
	// read. Interviewers who never saved availability are absent.
	AllAvailability(ctx context.Context) (map[string][]slotgrid.Key, error)

	// Availability returns one interviewer's declared slots; empty for
	// an unknown or never-saved interviewer, never an error for that.
	Availability(ctx context.Context, interviewerID string) ([]slotgrid.Key, error)

	// ReplaceAvailability swaps an interviewer's whole slot set in one
	// transaction; an empty set clears it.
	ReplaceAvailability(ctx context.Context, interviewerID string, slots []slotgrid.Key) error

	// ListBookings returns the full ledger, newest first.
	ListBookings(ctx context.Context) ([]model.Booking, error)

	// InsertBooking appends one booking to the ledger.
	InsertBooking(ctx context.Context, b *model.Booking) error
}

// Preferences is the session-scoped UI preference cache. It is
// convenience state, never authoritative; implementations may fail and
// callers degrade to a fallback.
type Preferences interface {
	// CurrentInterviewer returns the cached preference for a session,
	// or "" on miss.
	CurrentInterviewer(ctx context.Context, sessionID string) (string, error)

	// SetCurrentInterviewer stores the preference for a session.
	SetCurrentInterviewer(ctx context.Context, sessionID, interviewerID string) error
}

// App carries the dependencies of every handler.
type App struct {
	Store Store
	Prefs Preferences // nil when Redis is not configured
	Cfg   *config.Config
	Log   *zap.Logger
}
