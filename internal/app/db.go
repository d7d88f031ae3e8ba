package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"interview-scheduler/internal/model"
	"interview-scheduler/internal/slotgrid"
)

// PostgresStore implements Store over a pgx connection pool. See
// schema.sql for the tables it expects.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps a connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListInterviewers(ctx context.Context) ([]model.Interviewer, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, full_name FROM interviewers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list interviewers: %w", err)
	}
	defer rows.Close()

	var out []model.Interviewer
	for rows.Next() {
		var iv model.Interviewer
		if err := rows.Scan(&iv.ID, &iv.FullName); err != nil {
			return nil, fmt.Errorf("scan interviewer: %w", err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (s *PostgresStore) TeamMemberships(ctx context.Context) (map[string][]string, map[string][]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT team, interviewer_id FROM interviewer_teams ORDER BY team, interviewer_id`)
	if err != nil {
		return nil, nil, fmt.Errorf("list team memberships: %w", err)
	}
	defer rows.Close()

	byTeam := make(map[string][]string)
	byInterviewer := make(map[string][]string)
	for rows.Next() {
		var team, interviewerID string
		if err := rows.Scan(&team, &interviewerID); err != nil {
			return nil, nil, fmt.Errorf("scan team membership: %w", err)
		}
		byTeam[team] = append(byTeam[team], interviewerID)
		byInterviewer[interviewerID] = append(byInterviewer[interviewerID], team)
	}
	return byTeam, byInterviewer, rows.Err()
}

func (s *PostgresStore) AllAvailability(ctx context.Context) (map[string][]slotgrid.Key, error) {
	rows, err := s.db.Query(ctx,
		`SELECT interviewer_id, slot_key FROM interviewer_slots ORDER BY interviewer_id, slot_key`)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]slotgrid.Key)
	for rows.Next() {
		var interviewerID string
		var key slotgrid.Key
		if err := rows.Scan(&interviewerID, &key); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out[interviewerID] = append(out[interviewerID], key)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Availability(ctx context.Context, interviewerID string) ([]slotgrid.Key, error) {
	rows, err := s.db.Query(ctx,
		`SELECT slot_key FROM interviewer_slots WHERE interviewer_id=$1 ORDER BY slot_key`,
		interviewerID)
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	defer rows.Close()

	var out []slotgrid.Key
	for rows.Next() {
		var key slotgrid.Key
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan slot key: %w", err)
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

// ReplaceAvailability deletes the interviewer's rows and inserts the new
// set inside one transaction, so readers never observe a half-written
// set. Duplicate keys in the input collapse via ON CONFLICT.
func (s *PostgresStore) ReplaceAvailability(ctx context.Context, interviewerID string, slots []slotgrid.Key) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace availability: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM interviewer_slots WHERE interviewer_id=$1`, interviewerID); err != nil {
		return fmt.Errorf("clear availability: %w", err)
	}

	if len(slots) > 0 {
		batch := &pgx.Batch{}
		for _, key := range slots {
			batch.Queue(
				`INSERT INTO interviewer_slots (interviewer_id, slot_key)
				 VALUES ($1, $2)
				 ON CONFLICT (interviewer_id, slot_key) DO NOTHING`,
				interviewerID, key)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert availability: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace availability: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, candidate_name, candidate_email, interviewer_a_id, interviewer_b_id,
		        slot_key, COALESCE(first_preference,''), COALESCE(second_preference,''),
		        COALESCE(team,''), created_at
		 FROM bookings
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.CandidateName, &b.CandidateEmail,
			&b.InterviewerAID, &b.InterviewerBID, &b.SlotKey,
			&b.FirstPreference, &b.SecondPreference, &b.Team, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) InsertBooking(ctx context.Context, b *model.Booking) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO bookings
		 (id, candidate_name, candidate_email, interviewer_a_id, interviewer_b_id,
		  slot_key, first_preference, second_preference, team, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),NULLIF($8,''),NULLIF($9,''),$10)`,
		b.ID, b.CandidateName, b.CandidateEmail, b.InterviewerAID, b.InterviewerBID,
		b.SlotKey, b.FirstPreference, b.SecondPreference, b.Team, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
