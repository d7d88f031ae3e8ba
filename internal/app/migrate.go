package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"interview-scheduler/internal/slotgrid"
)

// legacySnapshot mirrors the browser-local storage format of the old
// client ("businessone.scheduler.v1").
type legacySnapshot struct {
	AvailabilityByInterviewer map[string][]string `json:"availabilityByInterviewer"`
	Bookings                  []struct {
		CandidateName  string `json:"candidateName"`
		CandidateEmail string `json:"candidateEmail"`
		InterviewerAID string `json:"interviewerAId"`
		InterviewerBID string `json:"interviewerBId"`
		SlotKey        string `json:"slotKey"`
	} `json:"bookings"`
}

// ImportLegacySnapshot replays an old local-only snapshot file through
// the same operations the client uses: availability via
// ReplaceAvailability, bookings via CreateBooking. A booking rejected
// as already blocked is treated as imported by an earlier partial run
// and skipped, so a retry after a transient failure can finish the job.
// The file is removed only after every entry replayed; a partial
// failure leaves it in place for the next startup. A missing file is a
// no-op; the routine is safe to run on every startup.
func (a *App) ImportLegacySnapshot(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read legacy snapshot: %w", err)
	}

	var snap legacySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("parse legacy snapshot: %w", err)
	}

	imported, skipped := 0, 0
	for interviewerID, slots := range snap.AvailabilityByInterviewer {
		if len(slots) == 0 {
			continue
		}
		keys := make([]slotgrid.Key, len(slots))
		for i, s := range slots {
			keys[i] = slotgrid.Key(s)
		}
		if err := a.Store.ReplaceAvailability(ctx, interviewerID, keys); err != nil {
			return fmt.Errorf("import availability for %s: %w", interviewerID, err)
		}
		imported++
	}
	for _, b := range snap.Bookings {
		_, err := a.CreateBooking(ctx, BookingRequest{
			CandidateName:  b.CandidateName,
			CandidateEmail: b.CandidateEmail,
			InterviewerAID: b.InterviewerAID,
			InterviewerBID: b.InterviewerBID,
			SlotKey:        slotgrid.Key(b.SlotKey),
		})
		if errors.Is(err, ErrSlotAlreadyBlocked) {
			// Landed in an earlier partial run or the ledger already
			// holds it; either way there is nothing left to replay.
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("import booking for %s: %w", b.CandidateName, err)
		}
		imported++
	}

	if imported > 0 || skipped > 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("clear legacy snapshot: %w", err)
		}
		a.Log.Info("legacy snapshot imported",
			zap.String("path", path),
			zap.Int("entries", imported),
			zap.Int("skipped", skipped))
	}
	return nil
}
