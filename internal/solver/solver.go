// Package solver computes solutions for a scramble. Solvers replay the
// scramble on their own reference model and never read the live cube.
package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim"
)

// DefaultMaxDepth bounds the iterative-deepening search.
const DefaultMaxDepth = 5

// ErrUnverified is returned when a solution does not solve the scramble on
// the independent check.
var ErrUnverified = errors.New("solver: solution does not solve the scramble")

// Solver computes a move sequence that undoes scramble.
type Solver interface {
	Solve(ctx context.Context, scramble []gocube.Move) ([]gocube.Move, error)
}

// Strategy names a solving approach.
type Strategy string

const (
	StrategySearch  Strategy = "search"
	StrategyReverse Strategy = "reverse"
)

// ParseStrategy parses "search" or "reverse".
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySearch:
		return StrategySearch, nil
	case StrategyReverse:
		return StrategyReverse, nil
	default:
		return "", fmt.Errorf("unknown solver strategy %q", s)
	}
}

// New builds a verified solver for the given strategy.
func New(strategy Strategy, maxDepth int, logger *zap.Logger) (Solver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var inner Solver
	switch strategy {
	case StrategySearch:
		inner = &Search{MaxDepth: maxDepth, Fallback: Reverse{}, Logger: logger}
	case StrategyReverse:
		inner = Reverse{}
	default:
		return nil, fmt.Errorf("unknown solver strategy %q", strategy)
	}
	return &Verified{Solver: inner, Logger: logger}, nil
}

// Reverse solves by undoing the scramble: the inverse sequence with
// adjacent same-face moves merged.
type Reverse struct{}

// Solve implements Solver.
func (Reverse) Solve(ctx context.Context, scramble []gocube.Move) ([]gocube.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cube := gocube.NewCube()
	cube.ApplyMoves(scramble)
	if cube.IsSolved() {
		return nil, nil
	}
	return gocube.SimplifyMoves(gocube.InvertMoves(scramble)), nil
}
