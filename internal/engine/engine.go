// Package engine orchestrates shuffle, turn, undo, solve and reset on top
// of the piece registry, the rotation primitive and the move history.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/history"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
	"github.com/SeamusWaldron/gocube_sim/internal/rotation"
	"github.com/SeamusWaldron/gocube_sim/internal/solver"
)

// Sentinel errors returned by Engine operations.
var (
	ErrBusy         = errors.New("engine: another operation is in progress")
	ErrInvalidLayer = errors.New("engine: not an outer layer quarter turn")
)

// Policy decides what happens to a request made while another operation
// holds the engine.
type Policy int

const (
	PolicyReject Policy = iota // Fail with ErrBusy
	PolicyQueue                // Wait for the running operation
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "reject" or "queue".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return PolicyReject, nil
	case "queue":
		return PolicyQueue, nil
	default:
		return 0, fmt.Errorf("unknown busy policy %q", s)
	}
}

// Solver computes a sequence of moves that undoes a scramble. It must work
// from the scramble alone and never look at the live registry.
type Solver interface {
	Solve(ctx context.Context, scramble []gocube.Move) ([]gocube.Move, error)
}

// Engine runs one operation at a time. Every rotation is animated by the
// rotator and suspends the operation until its positions are committed.
type Engine struct {
	registry *lattice.Registry
	rotator  *rotation.Rotator
	history  *history.History

	logger       *zap.Logger
	policy       Policy
	durations    Durations
	shuffleCount int
	rng          *rand.Rand
	solver       Solver

	sem chan struct{}

	obsMu     sync.RWMutex
	observers []Observer
}

// New creates an engine driving rotator over registry. The rotator must
// have been created for the same registry.
func New(registry *lattice.Registry, rotator *rotation.Rotator, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if o.solver == nil {
		o.solver = solver.Reverse{}
	}

	return &Engine{
		registry:     registry,
		rotator:      rotator,
		history:      history.New(),
		logger:       o.logger,
		policy:       o.policy,
		durations:    o.durations,
		shuffleCount: o.shuffleCount,
		rng:          o.rng,
		solver:       o.solver,
		sem:          make(chan struct{}, 1),
		observers:    o.observers,
	}
}

// AddObserver registers an observer after construction.
func (e *Engine) AddObserver(obs Observer) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(e.observers, obs)
}

// Registry returns the piece registry.
func (e *Engine) Registry() *lattice.Registry {
	return e.registry
}

// Rotator returns the rotation primitive, for subscribing to frames.
func (e *Engine) Rotator() *rotation.Rotator {
	return e.rotator
}

// History returns a copy of the recorded moves.
func (e *Engine) History() []gocube.Move {
	return e.history.Snapshot()
}

// HasMoves reports whether any move has been recorded since the last
// shuffle, solve or reset.
func (e *Engine) HasMoves() bool {
	return e.history.Len() > 0
}

// UndoAvailable reports whether Undo would do anything.
func (e *Engine) UndoAvailable() bool {
	return e.history.UndoAvailable()
}

// IsSolved reports whether the registry shows a solved cube.
func (e *Engine) IsSolved() bool {
	return e.registry.IsSolved()
}

// Busy reports whether an operation is running.
func (e *Engine) Busy() bool {
	return len(e.sem) > 0
}

// Shuffle clears history and undo, then performs the configured number of
// random outer-layer quarter turns, recording each. Undo is unavailable
// afterwards.
func (e *Engine) Shuffle(ctx context.Context) error {
	if err := e.acquire(ctx, KindShuffle); err != nil {
		return err
	}
	defer e.release()

	start := time.Now()
	e.history.Clear()

	var applied []gocube.Move
	var err error
	for i := 0; i < e.shuffleCount; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		turn := e.randomTurn()
		if err = e.rotate(turn, e.durations.Shuffle); err != nil {
			break
		}
		e.history.RecordWithoutUndo(turn)
		applied = append(applied, e.moveApplied(KindShuffle, turn, e.durations.Shuffle))
	}
	e.history.ClearUndo()

	e.logger.Info("shuffle finished",
		zap.String("op", string(KindShuffle)),
		zap.String("moves", gocube.FormatMoves(applied)),
		zap.Error(err))
	e.finished(KindShuffle, applied, err, start)
	return err
}

func (e *Engine) randomTurn() notation.Turn {
	signs := [2]int{-1, 1}
	return notation.Turn{
		Axis:      lattice.Axes[e.rng.IntN(len(lattice.Axes))],
		Limit:     signs[e.rng.IntN(2)],
		Direction: signs[e.rng.IntN(2)],
	}
}

// Turn performs one quarter turn of an outer layer. It is recorded and
// becomes the undo candidate. Direction is reduced to its sign.
func (e *Engine) Turn(ctx context.Context, turn notation.Turn) error {
	return e.turns(ctx, KindTurn, []notation.Turn{normalize(turn)})
}

// TurnMove performs a notation move. A double move is two quarter turns,
// both recorded; the second becomes the undo candidate.
func (e *Engine) TurnMove(ctx context.Context, m gocube.Move) error {
	turns, ok := notation.Expand(m)
	if !ok {
		return gocube.ErrInvalidNotation
	}
	return e.turns(ctx, KindTurn, turns)
}

// TurnNotation parses s and performs it as TurnMove does.
func (e *Engine) TurnNotation(ctx context.Context, s string) error {
	m, err := gocube.ParseMove(s)
	if err != nil {
		return fmt.Errorf("%q: %w", s, err)
	}
	return e.TurnMove(ctx, m)
}

// Mirror performs a move reported by a physical cube. It behaves like
// TurnMove but is tagged as mirrored.
func (e *Engine) Mirror(ctx context.Context, m gocube.Move) error {
	turns, ok := notation.Expand(m)
	if !ok {
		return gocube.ErrInvalidNotation
	}
	return e.turns(ctx, KindMirror, turns)
}

func (e *Engine) turns(ctx context.Context, kind Kind, turns []notation.Turn) error {
	for _, t := range turns {
		if !t.Valid() {
			return fmt.Errorf("%v: %w", t, ErrInvalidLayer)
		}
	}
	if err := e.acquire(ctx, kind); err != nil {
		return err
	}
	defer e.release()

	start := time.Now()
	var applied []gocube.Move
	var err error
	for _, t := range turns {
		if err = e.rotate(t, e.durations.Turn); err != nil {
			break
		}
		e.history.Record(t)
		applied = append(applied, e.moveApplied(kind, t, e.durations.Turn))
	}

	e.logger.Debug("turn finished",
		zap.String("op", string(kind)),
		zap.String("notation", gocube.FormatMoves(applied)),
		zap.Error(err))
	e.finished(kind, applied, err, start)
	return err
}

// Undo reverses the last manual turn. The reversal is recorded as a move
// and the undo slot is left empty. It returns false when there is nothing
// to undo.
func (e *Engine) Undo(ctx context.Context) (bool, error) {
	if err := e.acquire(ctx, KindUndo); err != nil {
		return false, err
	}
	defer e.release()

	start := time.Now()
	turn, ok := e.history.TakeUndo()
	if !ok {
		e.logger.Debug("nothing to undo", zap.String("op", string(KindUndo)))
		return false, nil
	}

	if err := e.rotate(turn, e.durations.Undo); err != nil {
		e.history.RestoreUndo(turn)
		e.finished(KindUndo, nil, err, start)
		return false, err
	}
	e.history.RecordWithoutUndo(turn)
	m := e.moveApplied(KindUndo, turn, e.durations.Undo)

	e.logger.Debug("undo finished",
		zap.String("op", string(KindUndo)),
		zap.String("notation", m.Notation()))
	e.finished(KindUndo, []gocube.Move{m}, nil, start)
	return true, nil
}

// Solve hands the recorded history to the solver and replays its answer,
// a double move as two quarter turns. History and undo are cleared
// afterwards. An empty answer or a solver failure applies nothing and
// clears undo; history survives unless the cube is already solved.
//
// Cancelling ctx stops between turns; the turns already applied are then
// appended to history so that a later solve still starts from the truth.
func (e *Engine) Solve(ctx context.Context) ([]gocube.Move, error) {
	if err := e.acquire(ctx, KindSolve); err != nil {
		return nil, err
	}
	defer e.release()

	start := time.Now()
	scramble := e.history.Snapshot()

	solution, err := e.solver.Solve(ctx, scramble)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			e.finished(KindSolve, nil, ctxErr, start)
			return nil, ctxErr
		}
		e.history.ClearUndo()
		e.logger.Warn("solver failed, nothing applied",
			zap.String("op", string(KindSolve)),
			zap.Int("history", len(scramble)),
			zap.Error(err))
		e.finished(KindSolve, nil, nil, start)
		return nil, nil
	}
	if len(solution) == 0 {
		e.history.ClearUndo()
		// A history that cancels itself out has nothing left to solve.
		if e.registry.IsSolved() {
			e.history.Clear()
		}
		e.logger.Debug("no solution moves", zap.String("op", string(KindSolve)), zap.Int("history", len(scramble)))
		e.finished(KindSolve, nil, nil, start)
		return nil, nil
	}

	var applied []gocube.Move
	var done []notation.Turn
replay:
	for _, m := range solution {
		turns, ok := notation.Expand(m)
		if !ok {
			e.logger.Warn("skipping unknown solution move", zap.String("notation", m.Notation()))
			continue
		}
		for _, t := range turns {
			if err = ctx.Err(); err != nil {
				break replay
			}
			if err = e.rotate(t, e.durations.Solve); err != nil {
				break replay
			}
			done = append(done, t)
			applied = append(applied, e.moveApplied(KindSolve, t, e.durations.Solve))
		}
	}

	if err != nil {
		for _, t := range done {
			e.history.RecordWithoutUndo(t)
		}
		e.history.ClearUndo()
		e.logger.Warn("solve interrupted",
			zap.String("op", string(KindSolve)),
			zap.Int("applied", len(done)),
			zap.Error(err))
		e.finished(KindSolve, applied, err, start)
		return applied, err
	}

	e.history.Clear()
	e.logger.Info("solve finished",
		zap.String("op", string(KindSolve)),
		zap.String("solution", gocube.FormatMoves(solution)),
		zap.Int("quarters", len(applied)),
		zap.Bool("solved", e.registry.IsSolved()))
	e.finished(KindSolve, applied, nil, start)
	return solution, nil
}

// Reset returns every piece to its home point and clears history and undo.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.acquire(ctx, KindReset); err != nil {
		return err
	}
	defer e.release()

	start := time.Now()
	e.registry.Reset()
	e.history.Clear()
	e.logger.Info("cube reset", zap.String("op", string(KindReset)))
	e.finished(KindReset, nil, nil, start)
	return nil
}

// acquire takes the operation slot according to the busy policy.
func (e *Engine) acquire(ctx context.Context, kind Kind) error {
	if e.policy == PolicyQueue {
		select {
		case e.sem <- struct{}{}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case e.sem <- struct{}{}:
		return nil
	default:
		e.logger.Debug("operation rejected", zap.String("op", string(kind)))
		e.notifyFinished(OperationEvent{Kind: kind, Err: ErrBusy, Solved: e.registry.IsSolved()})
		return ErrBusy
	}
}

func (e *Engine) release() {
	<-e.sem
}

// rotate runs one animated quarter turn and waits for it to commit.
func (e *Engine) rotate(t notation.Turn, d time.Duration) error {
	if !e.rotator.Rotate(t.Axis, t.Limit, t.Direction, d) {
		e.logger.Warn("rotation dropped by latch",
			zap.Stringer("axis", t.Axis), zap.Int("limit", t.Limit), zap.Int("direction", t.Direction))
		return ErrBusy
	}
	return nil
}

func (e *Engine) moveApplied(kind Kind, t notation.Turn, d time.Duration) gocube.Move {
	m, _ := notation.ToNotation(t.Axis, t.Limit, t.Direction)
	ev := MoveEvent{Kind: kind, Move: m, Turn: t, Duration: d, At: time.Now()}

	e.obsMu.RLock()
	defer e.obsMu.RUnlock()
	for _, obs := range e.observers {
		obs.MoveApplied(ev)
	}
	return m
}

func (e *Engine) finished(kind Kind, moves []gocube.Move, err error, start time.Time) {
	e.notifyFinished(OperationEvent{
		Kind:    kind,
		Moves:   moves,
		Solved:  e.registry.IsSolved(),
		Err:     err,
		Elapsed: time.Since(start),
	})
}

func (e *Engine) notifyFinished(ev OperationEvent) {
	e.obsMu.RLock()
	defer e.obsMu.RUnlock()
	for _, obs := range e.observers {
		obs.OperationFinished(ev)
	}
}

func normalize(t notation.Turn) notation.Turn {
	switch {
	case t.Direction > 0:
		t.Direction = 1
	case t.Direction < 0:
		t.Direction = -1
	}
	return t
}
