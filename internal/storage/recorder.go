package storage

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/engine"
)

// Recorder is an engine observer that writes every applied move and every
// reset of one session to the database. Write failures are logged; they
// never stop the engine.
type Recorder struct {
	sessionID string
	moves     *MoveRepository
	logger    *zap.Logger

	mu  sync.Mutex
	seq int
}

// NewRecorder creates a recorder appending to sessionID.
func NewRecorder(db *DB, sessionID string, logger *zap.Logger) (*Recorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	moves := NewMoveRepository(db)
	seq, err := moves.NextSeq(sessionID)
	if err != nil {
		return nil, err
	}
	return &Recorder{sessionID: sessionID, moves: moves, logger: logger, seq: seq}, nil
}

// SessionID returns the session being written.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// MoveApplied implements engine.Observer.
func (r *Recorder) MoveApplied(ev engine.MoveEvent) {
	r.write(ev.Kind, ev.Move, ev)
}

// OperationFinished implements engine.Observer.
func (r *Recorder) OperationFinished(ev engine.OperationEvent) {
	if ev.Kind != engine.KindReset || ev.Err != nil {
		return
	}
	r.write(engine.KindReset, gocube.Move{}, engine.MoveEvent{})
}

func (r *Recorder) write(kind engine.Kind, m gocube.Move, ev engine.MoveEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	if _, err := r.moves.Create(r.sessionID, r.seq, at, string(kind), m); err != nil {
		r.logger.Error("failed to record move",
			zap.String("session", r.sessionID),
			zap.Int("seq", r.seq),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return
	}
	r.seq++
}
