// Package model holds the entities shared between the store, the
// overlap engine, and the HTTP layer.
package model

import (
	"time"

	"interview-scheduler/internal/slotgrid"
)

// Interviewer is an identity record administered outside this service;
// the scheduler only ever reads it.
type Interviewer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Booking ties one candidate to two interviewers at one grid slot.
// Bookings are immutable once created.
type Booking struct {
	ID               string       `json:"id"`
	CandidateName    string       `json:"candidate_name"`
	CandidateEmail   string       `json:"candidate_email"`
	InterviewerAID   string       `json:"interviewer_a_id"`
	InterviewerBID   string       `json:"interviewer_b_id"`
	SlotKey          slotgrid.Key `json:"slot_key"`
	FirstPreference  string       `json:"first_preference,omitempty"`
	SecondPreference string       `json:"second_preference,omitempty"`
	Team             string       `json:"team,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Involves reports whether the interviewer appears on either side of
// the booking.
func (b Booking) Involves(interviewerID string) bool {
	return b.InterviewerAID == interviewerID || b.InterviewerBID == interviewerID
}

// Teams lists the org teams candidates can state a preference for and
// interviewers can belong to.
var Teams = []string{
	"Projects",
	"Events",
	"Sponsorships",
	"Marketing",
	"Content Creation",
	"HR",
	"Strategy",
}
