// Package history records performed turns as notation and keeps the single
// undo candidate.
package history

import (
	"sync"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
)

// History is the ordered list of moves applied since the last shuffle,
// solve or reset, plus at most one pending undo.
type History struct {
	mu    sync.RWMutex
	moves []gocube.Move
	undo  *notation.Turn
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Record appends the notation of turn and makes its inverse the undo
// candidate, replacing any earlier one. Turns without a notation (middle
// slices) are ignored.
func (h *History) Record(turn notation.Turn) bool {
	m, ok := notation.ToNotation(turn.Axis, turn.Limit, turn.Direction)
	if !ok {
		return false
	}
	inverse := turn.Inverse()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.moves = append(h.moves, m)
	h.undo = &inverse
	return true
}

// RecordWithoutUndo appends the notation of turn and leaves the undo slot
// untouched.
func (h *History) RecordWithoutUndo(turn notation.Turn) bool {
	m, ok := notation.ToNotation(turn.Axis, turn.Limit, turn.Direction)
	if !ok {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.moves = append(h.moves, m)
	return true
}

// TakeUndo removes and returns the undo candidate.
func (h *History) TakeUndo() (notation.Turn, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.undo == nil {
		return notation.Turn{}, false
	}
	t := *h.undo
	h.undo = nil
	return t, true
}

// RestoreUndo puts back a candidate taken by TakeUndo whose turn could not
// be performed. An existing candidate is not overwritten.
func (h *History) RestoreUndo(turn notation.Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.undo == nil {
		h.undo = &turn
	}
}

// ClearUndo empties the undo slot.
func (h *History) ClearUndo() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = nil
}

// Clear empties both the move list and the undo slot.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.moves = nil
	h.undo = nil
}

// Snapshot returns a copy of the recorded moves.
func (h *History) Snapshot() []gocube.Move {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]gocube.Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// Len returns the number of recorded moves.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.moves)
}

// UndoAvailable reports whether an undo candidate is pending.
func (h *History) UndoAvailable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.undo != nil
}
