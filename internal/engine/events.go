package engine

import (
	"time"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
)

// Kind names the operation that produced a move.
type Kind string

const (
	KindShuffle Kind = "shuffle"
	KindTurn    Kind = "turn"
	KindUndo    Kind = "undo"
	KindSolve   Kind = "solve"
	KindMirror  Kind = "mirror"
	KindReset   Kind = "reset"
)

// MoveEvent describes one committed quarter turn.
type MoveEvent struct {
	Kind     Kind
	Move     gocube.Move
	Turn     notation.Turn
	Duration time.Duration // Animation length
	At       time.Time
}

// OperationEvent describes a finished (or rejected) operation.
type OperationEvent struct {
	Kind    Kind
	Moves   []gocube.Move // Moves applied by the operation
	Solved  bool          // Registry state when the operation ended
	Err     error
	Elapsed time.Duration
}

// Observer receives engine events. Calls are made synchronously from the
// goroutine running the operation, so observers must not call back into
// the engine.
type Observer interface {
	MoveApplied(MoveEvent)
	OperationFinished(OperationEvent)
}
