package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"go-column-rules/internal/model"
)

// ErrNotFound is returned when a submission does not exist.
var ErrNotFound = errors.New("submission not found")

// Store persists rule submissions in sqlite.
type Store struct {
	db *sql.DB
}

// Open initialises the database at dbPath and creates missing tables.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// Create tables if not exists
	submissionTable := `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		payload TEXT,
		columns INTEGER,
		created_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS submission_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submission_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{submissionTable, errorTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "create tables")
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSubmission stores a new payload.
func (s *Store) SaveSubmission(ctx context.Context, sub model.Submission) error {
	payloadJSON, err := json.Marshal(sub.Payload)
	if err != nil {
		return errors.Wrap(err, "marshal payload")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, payload, columns, created_at) VALUES (?, ?, ?, ?)`,
		sub.ID, string(payloadJSON), len(sub.Payload), sub.CreatedAt.UTC())
	return errors.Wrap(err, "insert submission")
}

// SaveSubmissionError records an error raised while processing a submission.
func (s *Store) SaveSubmissionError(ctx context.Context, id string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := s.db.ExecContext(ctx,
		`INSERT INTO submission_errors (submission_id, error_message, created_at) VALUES (?, ?, ?)`,
		id, err.Error(), now)
	return errors.Wrap(e, "insert submission error")
}

// ListSubmissions returns all submissions, newest first.
func (s *Store) ListSubmissions(ctx context.Context) ([]model.SubmissionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, columns, created_at FROM submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "query submissions")
	}
	defer rows.Close()

	subs := []model.SubmissionSummary{}
	for rows.Next() {
		var sum model.SubmissionSummary
		if err := rows.Scan(&sum.ID, &sum.Columns, &sum.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan submission")
		}
		subs = append(subs, sum)
	}
	return subs, errors.Wrap(rows.Err(), "iterate submissions")
}

// GetSubmission fetches one submission with its payload.
func (s *Store) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	var payloadJSON string
	sub := model.Submission{ID: id}

	err := s.db.QueryRowContext(ctx, `SELECT payload, created_at FROM submissions WHERE id = ?`, id).
		Scan(&payloadJSON, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query submission")
	}

	if err := json.Unmarshal([]byte(payloadJSON), &sub.Payload); err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}
	return &sub, nil
}

// GetSubmissionErrors returns the recorded error messages for a submission.
func (s *Store) GetSubmissionErrors(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT error_message FROM submission_errors WHERE submission_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, errors.Wrap(err, "query submission errors")
	}
	defer rows.Close()

	msgs := []string{}
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, errors.Wrap(err, "scan submission error")
		}
		msgs = append(msgs, msg)
	}
	return msgs, errors.Wrap(rows.Err(), "iterate submission errors")
}
