// Package overlap computes shared and blocked slots for a pair of
// interviewers. All functions are pure views over their inputs; nothing
// here touches the store.
//
// Callers are expected to skip these computations entirely when both
// interviewer ids are equal; pairing an interviewer with themselves is
// rejected earlier, at booking validation.
package overlap

import (
	"interview-scheduler/internal/model"
	"interview-scheduler/internal/slotgrid"
)

// SharedSlots returns the slots present in both availability sets. The
// result preserves the order of a, so repeated calls render stably.
func SharedSlots(a, b []slotgrid.Key) []slotgrid.Key {
	inB := make(map[slotgrid.Key]struct{}, len(b))
	for _, k := range b {
		inB[k] = struct{}{}
	}
	shared := make([]slotgrid.Key, 0, len(a))
	for _, k := range a {
		if _, ok := inB[k]; ok {
			shared = append(shared, k)
		}
	}
	return shared
}

// BlockedSlots returns the slot keys of every booking involving either
// interviewer, with any candidate. A slot one of them has already given
// away is unusable for the pair no matter who the other participant was.
func BlockedSlots(bookings []model.Booking, aID, bID string) map[slotgrid.Key]struct{} {
	blocked := make(map[slotgrid.Key]struct{})
	for _, b := range bookings {
		if b.Involves(aID) || b.Involves(bID) {
			blocked[b.SlotKey] = struct{}{}
		}
	}
	return blocked
}

// BlockedSlotLabels maps each blocked slot to the candidate name of the
// booking consuming it, for annotating the grid. If two bookings share
// a slot key the first one in the sequence keeps the label; the ledger
// is listed newest first, so that is the most recently written booking.
func BlockedSlotLabels(bookings []model.Booking, aID, bID string) map[slotgrid.Key]string {
	labels := make(map[slotgrid.Key]string)
	for _, b := range bookings {
		if !b.Involves(aID) && !b.Involves(bID) {
			continue
		}
		if _, ok := labels[b.SlotKey]; !ok {
			labels[b.SlotKey] = b.CandidateName
		}
	}
	return labels
}

// AvailableSlots returns the shared slots not yet consumed by a booking
// involving either interviewer; this is the set a scheduler may pick
// from. Always a subset of SharedSlots(a, b), in the same order.
func AvailableSlots(a, b []slotgrid.Key, bookings []model.Booking, aID, bID string) []slotgrid.Key {
	blocked := BlockedSlots(bookings, aID, bID)
	available := make([]slotgrid.Key, 0, len(a))
	for _, k := range SharedSlots(a, b) {
		if _, ok := blocked[k]; !ok {
			available = append(available, k)
		}
	}
	return available
}
