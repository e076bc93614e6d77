package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Session is one run of the simulator: everything between opening a cube
// and closing it.
type Session struct {
	SessionID  string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	Source     string // Command that created it: play, scramble, solve, mirror, replay
	Notes      *string
	AppVersion *string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(source, notes, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, source, notes, app_version)
		VALUES (?, ?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), source, nullable(notes), nullable(appVersion))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?
		WHERE session_id = ?
	`, endedAt.Format(timeLayout), endedAt.Sub(startedAt).Milliseconds(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

const sessionColumns = `session_id, started_at, ended_at, duration_ms, source, notes, app_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString

	if err := row.Scan(&s.SessionID, &startedAtStr, &endedAtStr, &s.DurationMs, &s.Source, &s.Notes, &s.AppVersion); err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}
	return &s, nil
}

// Get retrieves a session by ID. It returns nil when there is none.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}
	return s, nil
}

// List retrieves recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// Delete deletes a session and its moves.
func (r *SessionRepository) Delete(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
