package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-scheduler/internal/slotgrid"
)

const sampleSnapshot = `{
  "availabilityByInterviewer": {
    "i-ava": ["2026-03-09|09:00", "2026-03-09|09:30"],
    "i-liam": ["2026-03-09|09:30"],
    "i-noah": []
  },
  "bookings": [
    {
      "candidateName": "Priya Nair",
      "candidateEmail": "priya@example.com",
      "interviewerAId": "i-ava",
      "interviewerBId": "i-liam",
      "slotKey": "2026-03-09|09:30"
    }
  ]
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportLegacySnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Replays Availability And Bookings", func(t *testing.T) {
		store := newFakeStore()
		a := newTestApp(store)
		path := writeSnapshot(t, sampleSnapshot)

		require.NoError(t, a.ImportLegacySnapshot(ctx, path))

		assert.Equal(t,
			[]slotgrid.Key{"2026-03-09|09:00", "2026-03-09|09:30"},
			store.availability["i-ava"])
		assert.Equal(t,
			[]slotgrid.Key{"2026-03-09|09:30"},
			store.availability["i-liam"])
		assert.NotContains(t, store.availability, "i-noah",
			"empty legacy sets are skipped, not saved")

		require.Len(t, store.bookings, 1)
		assert.Equal(t, "Priya Nair", store.bookings[0].CandidateName)
		assert.NotEmpty(t, store.bookings[0].ID, "replayed bookings get fresh ids")

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "snapshot is cleared after a full import")
	})

	t.Run("Missing File Is A Noop", func(t *testing.T) {
		store := newFakeStore()
		a := newTestApp(store)

		require.NoError(t, a.ImportLegacySnapshot(ctx, filepath.Join(t.TempDir(), "absent.json")))
		assert.Empty(t, store.availability)
		assert.Empty(t, store.bookings)
	})

	t.Run("Empty Path Is A Noop", func(t *testing.T) {
		a := newTestApp(newFakeStore())
		require.NoError(t, a.ImportLegacySnapshot(ctx, ""))
	})

	t.Run("Invalid JSON Keeps The File", func(t *testing.T) {
		store := newFakeStore()
		a := newTestApp(store)
		path := writeSnapshot(t, "{not json")

		require.Error(t, a.ImportLegacySnapshot(ctx, path))

		_, err := os.Stat(path)
		assert.NoError(t, err, "a failed import leaves the snapshot for retry")
	})

	t.Run("Retry After Partial Import Completes", func(t *testing.T) {
		// First run: availability lands, the booking insert dies
		// mid-import and the snapshot stays put.
		store := newFakeStore()
		store.failInsert = true
		a := newTestApp(store)
		path := writeSnapshot(t, sampleSnapshot)

		require.Error(t, a.ImportLegacySnapshot(ctx, path))
		_, err := os.Stat(path)
		require.NoError(t, err, "snapshot survives the partial run")

		// Second run: the store is healthy again and finishes the job.
		store.failInsert = false
		require.NoError(t, a.ImportLegacySnapshot(ctx, path))

		require.Len(t, store.bookings, 1)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), "snapshot is cleared once the replay completes")
	})

	t.Run("Already Imported Bookings Are Skipped On Retry", func(t *testing.T) {
		// The ledger already holds the snapshot's booking (an earlier
		// run committed it before failing); the retry must not reject
		// it as blocked, and must still clear the file.
		store := newFakeStore()
		a := newTestApp(store)
		path := writeSnapshot(t, sampleSnapshot)

		_, err := a.CreateBooking(ctx, BookingRequest{
			CandidateName:  "Priya Nair",
			CandidateEmail: "priya@example.com",
			InterviewerAID: "i-ava",
			InterviewerBID: "i-liam",
			SlotKey:        slotgrid.Key("2026-03-09|09:30"),
		})
		require.NoError(t, err)

		require.NoError(t, a.ImportLegacySnapshot(ctx, path))

		require.Len(t, store.bookings, 1, "no duplicate booking is appended")
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Failed Booking Replay Keeps The File", func(t *testing.T) {
		store := newFakeStore()
		store.failInsert = true
		a := newTestApp(store)
		path := writeSnapshot(t, sampleSnapshot)

		require.Error(t, a.ImportLegacySnapshot(ctx, path))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}
