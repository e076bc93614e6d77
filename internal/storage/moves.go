package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/gocube_sim"
)

// MoveRecord is one stored quarter turn, or a reset marker.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	Seq       int
	TsMs      int64
	Kind      string
	Face      string
	Turn      int
	Notation  string
}

// IsReset reports whether the record marks a cube reset rather than a move.
func (m MoveRecord) IsReset() bool {
	return m.Kind == "reset"
}

// Move returns the recorded move. ok is false for reset markers.
func (m MoveRecord) Move() (gocube.Move, bool) {
	if m.IsReset() {
		return gocube.Move{}, false
	}
	return gocube.Move{Face: gocube.Face(m.Face), Turn: gocube.Turn(m.Turn)}, true
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create stores a move and returns its ID.
func (r *MoveRepository) Create(sessionID string, seq int, at time.Time, kind string, move gocube.Move) (int64, error) {
	notation := ""
	if move.Face != "" {
		notation = move.Notation()
	}
	result, err := r.db.Exec(`
		INSERT INTO moves (session_id, seq, ts_ms, kind, face, turn, notation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, seq, at.UnixMilli(), kind, string(move.Face), int(move.Turn), notation)
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}
	return id, nil
}

// CreateBatch stores moves of one kind in a single transaction, starting
// at seq startSeq.
func (r *MoveRepository) CreateBatch(sessionID string, startSeq int, at time.Time, kind string, moves []gocube.Move) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(`
				INSERT INTO moves (session_id, seq, ts_ms, kind, face, turn, notation)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, sessionID, startSeq+i, at.UnixMilli(), kind, string(move.Face), int(move.Turn), move.Notation())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startSeq+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all records for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, seq, ts_ms, kind, face, turn, notation
		FROM moves
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.SessionID, &m.Seq, &m.TsMs, &m.Kind, &m.Face, &m.Turn, &m.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// NextSeq returns the next sequence number for a session.
func (r *MoveRepository) NextSeq(sessionID string) (int, error) {
	var maxSeq int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(seq), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxSeq)
	if err != nil {
		return 0, fmt.Errorf("failed to get max seq: %w", err)
	}
	return maxSeq + 1, nil
}

// CountByKind returns how many records of each kind a session has.
func (r *MoveRepository) CountByKind(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT kind, COUNT(*) FROM moves WHERE session_id = ? GROUP BY kind
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count moves: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
