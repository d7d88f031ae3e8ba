package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-scheduler/internal/model"
	"interview-scheduler/internal/overlap"
	"interview-scheduler/internal/slotgrid"
)

// Booking validation failures. All are detected before any write; a
// rejected attempt leaves the ledger untouched and the caller may
// correct the input and retry.
var (
	ErrMissingCandidateInfo = errors.New("candidate name and email are required")
	ErrSameInterviewer      = errors.New("interviewer A and B must be different")
	ErrNoSlotSelected       = errors.New("no slot selected")
	ErrSlotAlreadyBlocked   = errors.New("slot is already booked for one of the interviewers")
)

// BookingRequest is the input of one booking attempt.
type BookingRequest struct {
	CandidateName    string
	CandidateEmail   string
	InterviewerAID   string
	InterviewerBID   string
	SlotKey          slotgrid.Key
	FirstPreference  string
	SecondPreference string
	Team             string
}

// CreateBooking validates the request against the current ledger and,
// if it passes, appends a new booking with a generated id and UTC
// creation timestamp.
//
// The blocked-slot check and the insert are not one atomic store
// operation: two sessions racing for the same slot can both commit.
// The ledger is deliberately a dumb append target with no uniqueness
// constraint on (slot_key, interviewer); see DESIGN.md.
func (a *App) CreateBooking(ctx context.Context, req BookingRequest) (*model.Booking, error) {
	name := strings.TrimSpace(req.CandidateName)
	email := strings.TrimSpace(req.CandidateEmail)
	if name == "" || email == "" {
		return nil, ErrMissingCandidateInfo
	}
	if req.InterviewerAID == req.InterviewerBID {
		return nil, ErrSameInterviewer
	}
	if req.SlotKey == "" {
		return nil, ErrNoSlotSelected
	}

	ledger, err := a.Store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	blocked := overlap.BlockedSlots(ledger, req.InterviewerAID, req.InterviewerBID)
	if _, ok := blocked[req.SlotKey]; ok {
		return nil, ErrSlotAlreadyBlocked
	}

	b := &model.Booking{
		ID:               uuid.New().String(),
		CandidateName:    name,
		CandidateEmail:   email,
		InterviewerAID:   req.InterviewerAID,
		InterviewerBID:   req.InterviewerBID,
		SlotKey:          req.SlotKey,
		FirstPreference:  req.FirstPreference,
		SecondPreference: req.SecondPreference,
		Team:             req.Team,
		CreatedAt:        time.Now().UTC(),
	}
	if err := a.Store.InsertBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("append booking: %w", err)
	}
	return b, nil
}

// ScheduleOptions is what a scheduler sees for one interviewer pair:
// the mutually free slots, those already consumed by a booking
// involving either interviewer, and the remainder open for picking.
type ScheduleOptions struct {
	SharedSlots       []slotgrid.Key          `json:"shared_slots"`
	BlockedSlots      []slotgrid.Key          `json:"blocked_slots"`
	BlockedSlotLabels map[slotgrid.Key]string `json:"blocked_slot_labels"`
	AvailableSlots    []slotgrid.Key          `json:"available_slots"`
}

// ScheduleOptionsFor computes the options for a pair against the
// current availability and ledger. A self-pair yields empty results
// without touching the overlap engine.
func (a *App) ScheduleOptionsFor(ctx context.Context, aID, bID string) (*ScheduleOptions, error) {
	opts := &ScheduleOptions{
		SharedSlots:       []slotgrid.Key{},
		BlockedSlots:      []slotgrid.Key{},
		BlockedSlotLabels: map[slotgrid.Key]string{},
		AvailableSlots:    []slotgrid.Key{},
	}
	if aID == bID {
		return opts, nil
	}

	availability, err := a.Store.AllAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("read availability: %w", err)
	}
	ledger, err := a.Store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	slotsA := availability[aID]
	slotsB := availability[bID]
	opts.SharedSlots = overlap.SharedSlots(slotsA, slotsB)
	opts.BlockedSlotLabels = overlap.BlockedSlotLabels(ledger, aID, bID)
	seen := make(map[slotgrid.Key]struct{}, len(opts.BlockedSlotLabels))
	for _, b := range ledger {
		if !b.Involves(aID) && !b.Involves(bID) {
			continue
		}
		if _, ok := seen[b.SlotKey]; ok {
			continue
		}
		seen[b.SlotKey] = struct{}{}
		opts.BlockedSlots = append(opts.BlockedSlots, b.SlotKey)
	}
	opts.AvailableSlots = overlap.AvailableSlots(slotsA, slotsB, ledger, aID, bID)
	return opts, nil
}
