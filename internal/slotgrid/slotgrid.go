// Package slotgrid defines the fixed weekly interview grid and the slot
// key codec. A slot key names one half-hour cell of the grid as
// "YYYY-MM-DD|HH:MM"; zero-padded components make plain string ordering
// equal to chronological ordering.
package slotgrid

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// WeekStart is the Monday the scheduling window opens on.
	WeekStart   = "2026-03-09"
	DaysPerWeek = 7

	startHour   = 9
	endHour     = 20
	intervalMin = 30

	// SlotsPerDay is the number of half-hour cells between startHour
	// (inclusive) and endHour (exclusive).
	SlotsPerDay = (endHour - startHour) * 60 / intervalMin

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ErrMalformedKey is returned when a slot key does not split into a
// well-formed date and time-of-day.
var ErrMalformedKey = errors.New("malformed slot key")

// Key identifies one (day, time) cell of the weekly grid.
type Key string

// NewKey builds the canonical key for a date and time label. It does not
// validate the components; Parse does.
func NewKey(date, timeLabel string) Key {
	return Key(date + "|" + timeLabel)
}

// Parse splits a key into its date and time-of-day components,
// validating both.
func (k Key) Parse() (date, timeLabel string, err error) {
	parts := strings.Split(string(k), "|")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedKey, string(k))
	}
	if _, err := time.Parse(dateLayout, parts[0]); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedKey, string(k))
	}
	if _, err := time.Parse(timeLayout, parts[1]); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedKey, string(k))
	}
	return parts[0], parts[1], nil
}

// Format renders a key for display, e.g. "Mon, Mar 9, 9:00 AM". The
// rendering is fixed so repeated calls always agree.
func (k Key) Format() (string, error) {
	date, timeLabel, err := k.Parse()
	if err != nil {
		return "", err
	}
	t, err := time.Parse(dateLayout+" "+timeLayout, date+" "+timeLabel)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedKey, string(k))
	}
	return t.Format("Mon, Jan 2, 3:04 PM"), nil
}

// TimeLabels returns the ascending "HH:MM" labels of one grid day,
// from startHour inclusive to endHour exclusive.
func TimeLabels() []string {
	labels := make([]string, 0, SlotsPerDay)
	for hour := startHour; hour < endHour; hour++ {
		for minute := 0; minute < 60; minute += intervalMin {
			labels = append(labels, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return labels
}

// WeekDates returns the ISO dates of the scheduling window, ascending
// from WeekStart.
func WeekDates() []string {
	start, err := time.Parse(dateLayout, WeekStart)
	if err != nil {
		panic("slotgrid: invalid WeekStart: " + err.Error())
	}
	dates := make([]string, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// FormatDate renders an ISO grid date for display, e.g. "Mon, Mar 9".
func FormatDate(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid grid date %q: %w", date, err)
	}
	return t.Format("Mon, Jan 2"), nil
}

// WeekWindow returns the UTC instants bounding the scheduling window:
// midnight opening WeekStart and midnight after its last day.
func WeekWindow() (from, to time.Time) {
	start, err := time.Parse(dateLayout, WeekStart)
	if err != nil {
		panic("slotgrid: invalid WeekStart: " + err.Error())
	}
	return start, start.AddDate(0, 0, DaysPerWeek)
}
