package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-scheduler/internal/model"
	"interview-scheduler/internal/slotgrid"
)

func keys(raw ...string) []slotgrid.Key {
	out := make([]slotgrid.Key, len(raw))
	for i, r := range raw {
		out[i] = slotgrid.Key(r)
	}
	return out
}

func booking(aID, bID, slot, candidate string) model.Booking {
	return model.Booking{
		ID:             "b-" + aID + "-" + bID + "-" + slot,
		CandidateName:  candidate,
		CandidateEmail: candidate + "@example.com",
		InterviewerAID: aID,
		InterviewerBID: bID,
		SlotKey:        slotgrid.Key(slot),
	}
}

func TestSharedSlots(t *testing.T) {
	t.Run("Intersection Keeps First Operand Order", func(t *testing.T) {
		a := keys("2026-03-09|09:00", "2026-03-11|15:30", "2026-03-09|09:30")
		b := keys("2026-03-09|09:30", "2026-03-11|15:30")

		got := SharedSlots(a, b)

		assert.Equal(t, keys("2026-03-11|15:30", "2026-03-09|09:30"), got)
	})

	t.Run("Single Overlap", func(t *testing.T) {
		a := keys("2026-03-09|09:00", "2026-03-09|09:30")
		b := keys("2026-03-09|09:30")

		got := SharedSlots(a, b)

		assert.Equal(t, keys("2026-03-09|09:30"), got)
	})

	t.Run("Symmetric Membership", func(t *testing.T) {
		a := keys("2026-03-09|09:00", "2026-03-10|10:00", "2026-03-12|17:00")
		b := keys("2026-03-12|17:00", "2026-03-09|09:00", "2026-03-13|11:30")

		ab := SharedSlots(a, b)
		ba := SharedSlots(b, a)

		assert.ElementsMatch(t, ab, ba, "membership must not depend on operand order")
	})

	t.Run("Empty Inputs", func(t *testing.T) {
		assert.Empty(t, SharedSlots(nil, keys("2026-03-09|09:00")))
		assert.Empty(t, SharedSlots(keys("2026-03-09|09:00"), nil))
	})
}

func TestBlockedSlots(t *testing.T) {
	ledger := []model.Booking{
		booking("i-ava", "i-noah", "2026-03-09|10:00", "Priya Nair"),
		booking("i-liam", "i-mia", "2026-03-10|11:00", "Omar Haddad"),
		booking("i-noah", "i-mia", "2026-03-11|12:00", "Dana Kim"),
	}

	t.Run("Either Participant Blocks", func(t *testing.T) {
		// i-liam never interviewed with i-ava, but the pair still loses
		// every slot either of them gave away.
		blocked := BlockedSlots(ledger, "i-ava", "i-liam")

		assert.Contains(t, blocked, slotgrid.Key("2026-03-09|10:00"))
		assert.Contains(t, blocked, slotgrid.Key("2026-03-10|11:00"))
		assert.NotContains(t, blocked, slotgrid.Key("2026-03-11|12:00"))
	})

	t.Run("Unrelated Booking Is Invisible", func(t *testing.T) {
		before := BlockedSlots(ledger, "i-ava", "i-liam")
		extended := append(append([]model.Booking{}, ledger...),
			booking("i-noah", "i-mia", "2026-03-12|13:00", "Unrelated"))
		after := BlockedSlots(extended, "i-ava", "i-liam")

		assert.Equal(t, before, after)
	})

	t.Run("Empty Ledger", func(t *testing.T) {
		assert.Empty(t, BlockedSlots(nil, "i-ava", "i-liam"))
	})
}

func TestBlockedSlotLabels(t *testing.T) {
	ledger := []model.Booking{
		booking("i-ava", "i-noah", "2026-03-09|10:00", "Priya Nair"),
		booking("i-liam", "i-mia", "2026-03-10|11:00", "Omar Haddad"),
	}

	labels := BlockedSlotLabels(ledger, "i-ava", "i-liam")

	require.Len(t, labels, 2)
	assert.Equal(t, "Priya Nair", labels[slotgrid.Key("2026-03-09|10:00")])
	assert.Equal(t, "Omar Haddad", labels[slotgrid.Key("2026-03-10|11:00")])
}

func TestBlockedSlotLabelsMostRecentWins(t *testing.T) {
	// Two bookings on one slot key should not happen under the booking
	// rules, but if the ledger carries them the newest-first ordering
	// means the first entry is the most recent write and keeps the
	// label.
	ledger := []model.Booking{
		booking("i-ava", "i-liam", "2026-03-09|10:00", "Newer Candidate"),
		booking("i-ava", "i-noah", "2026-03-09|10:00", "Older Candidate"),
	}

	labels := BlockedSlotLabels(ledger, "i-ava", "i-liam")

	require.Len(t, labels, 1)
	assert.Equal(t, "Newer Candidate", labels[slotgrid.Key("2026-03-09|10:00")])
}

func TestAvailableSlots(t *testing.T) {
	a := keys("2026-03-09|09:00", "2026-03-09|10:00", "2026-03-09|11:00")
	b := keys("2026-03-09|10:00", "2026-03-09|11:00")
	ledger := []model.Booking{
		booking("i-ava", "i-noah", "2026-03-09|10:00", "Priya Nair"),
	}

	t.Run("Shared Minus Blocked", func(t *testing.T) {
		got := AvailableSlots(a, b, ledger, "i-ava", "i-liam")
		assert.Equal(t, keys("2026-03-09|11:00"), got)
	})

	t.Run("Subset Of Shared", func(t *testing.T) {
		shared := SharedSlots(a, b)
		for _, k := range AvailableSlots(a, b, ledger, "i-ava", "i-liam") {
			assert.Contains(t, shared, k)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := AvailableSlots(a, b, ledger, "i-ava", "i-liam")
		second := AvailableSlots(a, b, ledger, "i-ava", "i-liam")
		assert.Equal(t, first, second)
	})
}
