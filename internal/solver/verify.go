package solver

import (
	"context"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
)

// Verified wraps a Solver and rejects any answer that does not solve the
// scramble on a separate piece registry.
type Verified struct {
	Solver Solver
	Logger *zap.Logger
}

// Solve implements Solver.
func (v *Verified) Solve(ctx context.Context, scramble []gocube.Move) ([]gocube.Move, error) {
	solution, err := v.Solver.Solve(ctx, scramble)
	if err != nil {
		return nil, err
	}
	if !Check(scramble, solution) {
		if v.Logger != nil {
			v.Logger.Warn("solution rejected",
				zap.String("scramble", gocube.FormatMoves(scramble)),
				zap.String("solution", gocube.FormatMoves(solution)))
		}
		return nil, ErrUnverified
	}
	return solution, nil
}

// Check reports whether scramble followed by solution leaves a fresh cube
// solved. Moves are applied as exact quarter turns of a new registry.
func Check(scramble, solution []gocube.Move) bool {
	reg := lattice.New()
	for _, seq := range [][]gocube.Move{scramble, solution} {
		for _, m := range seq {
			turns, ok := notation.Expand(m)
			if !ok {
				return false
			}
			for _, t := range turns {
				reg.Twist(t.Axis, t.Limit, t.Direction)
			}
		}
	}
	return reg.IsSolved()
}
