package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"interview-scheduler/internal/config"
	"interview-scheduler/internal/model"
	"interview-scheduler/internal/slotgrid"
)

// fakeStore is an in-memory Store for tests. Bookings are prepended so
// listing order matches the newest-first contract.
type fakeStore struct {
	interviewers []model.Interviewer
	teams        map[string][]string
	availability map[string][]slotgrid.Key
	bookings     []model.Booking

	failInsert bool
	failList   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		interviewers: []model.Interviewer{
			{ID: "i-ava", FullName: "Ava Shah"},
			{ID: "i-liam", FullName: "Liam Chen"},
			{ID: "i-noah", FullName: "Noah Patel"},
			{ID: "i-mia", FullName: "Mia Lopez"},
		},
		teams:        map[string][]string{},
		availability: map[string][]slotgrid.Key{},
	}
}

func (f *fakeStore) ListInterviewers(ctx context.Context) ([]model.Interviewer, error) {
	return f.interviewers, nil
}

func (f *fakeStore) TeamMemberships(ctx context.Context) (map[string][]string, map[string][]string, error) {
	byInterviewer := make(map[string][]string)
	for team, members := range f.teams {
		for _, id := range members {
			byInterviewer[id] = append(byInterviewer[id], team)
		}
	}
	return f.teams, byInterviewer, nil
}

func (f *fakeStore) AllAvailability(ctx context.Context) (map[string][]slotgrid.Key, error) {
	return f.availability, nil
}

func (f *fakeStore) Availability(ctx context.Context, interviewerID string) ([]slotgrid.Key, error) {
	return f.availability[interviewerID], nil
}

func (f *fakeStore) ReplaceAvailability(ctx context.Context, interviewerID string, slots []slotgrid.Key) error {
	if len(slots) == 0 {
		delete(f.availability, interviewerID)
		return nil
	}
	f.availability[interviewerID] = append([]slotgrid.Key{}, slots...)
	return nil
}

func (f *fakeStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	if f.failList {
		return nil, errors.New("store down")
	}
	return f.bookings, nil
}

func (f *fakeStore) InsertBooking(ctx context.Context, b *model.Booking) error {
	if f.failInsert {
		return errors.New("store down")
	}
	f.bookings = append([]model.Booking{*b}, f.bookings...)
	return nil
}

// fakePrefs is an in-memory Preferences for tests.
type fakePrefs struct {
	values   map[string]string
	failRead bool
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: map[string]string{}}
}

func (f *fakePrefs) CurrentInterviewer(ctx context.Context, sessionID string) (string, error) {
	if f.failRead {
		return "", errors.New("cache down")
	}
	return f.values[sessionID], nil
}

func (f *fakePrefs) SetCurrentInterviewer(ctx context.Context, sessionID, interviewerID string) error {
	f.values[sessionID] = interviewerID
	return nil
}

func newTestApp(store Store) *App {
	return &App{
		Store: store,
		Cfg:   &config.Config{},
		Log:   zap.NewNop(),
	}
}
