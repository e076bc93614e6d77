package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_sim"
)

func parse(t *testing.T, s string) []gocube.Move {
	t.Helper()
	moves, invalid := gocube.ParseMoves(s)
	require.Empty(t, invalid)
	return moves
}

func TestReverse(t *testing.T) {
	scramble := parse(t, "R U F' D2 L")
	solution, err := Reverse{}.Solve(context.Background(), scramble)
	require.NoError(t, err)
	assert.Equal(t, "L' D2 F U' R'", gocube.FormatMoves(solution))
	assert.True(t, Check(scramble, solution))
}

func TestReverseMergesAdjacentMoves(t *testing.T) {
	solution, err := Reverse{}.Solve(context.Background(), parse(t, "R U U"))
	require.NoError(t, err)
	assert.Equal(t, "U2 R'", gocube.FormatMoves(solution))
}

func TestSolvedScrambleHasEmptySolution(t *testing.T) {
	for _, s := range []Solver{Reverse{}, &Search{MaxDepth: 3}} {
		solution, err := s.Solve(context.Background(), parse(t, "R R'"))
		require.NoError(t, err)
		assert.Empty(t, solution)

		solution, err = s.Solve(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, solution)
	}
}

func TestSearchFindsShortSolution(t *testing.T) {
	scramble := parse(t, "R U R' U'")
	solution, err := (&Search{MaxDepth: 4}).Solve(context.Background(), scramble)
	require.NoError(t, err)
	assert.Len(t, solution, 4)
	assert.True(t, Check(scramble, solution))
}

func TestSearchFindsShorterThanReverse(t *testing.T) {
	// Three quarter turns of R are undone by a single R.
	scramble := parse(t, "R U U' R R")
	solution, err := (&Search{MaxDepth: 3}).Solve(context.Background(), scramble)
	require.NoError(t, err)
	assert.Equal(t, "R", gocube.FormatMoves(solution))
}

func TestSearchFallsBack(t *testing.T) {
	scramble := parse(t, "R U F D L B")
	s := &Search{MaxDepth: 2, Fallback: Reverse{}}
	solution, err := s.Solve(context.Background(), scramble)
	require.NoError(t, err)
	assert.Equal(t, "B' L' D' F' U' R'", gocube.FormatMoves(solution))

	s.Fallback = nil
	solution, err = s.Solve(context.Background(), scramble)
	require.NoError(t, err)
	assert.Empty(t, solution)
}

func TestSearchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Search{MaxDepth: 5}).Solve(ctx, parse(t, "R U F D L B"))
	assert.ErrorIs(t, err, context.Canceled)
}

type fixed struct {
	moves []gocube.Move
	err   error
}

func (f fixed) Solve(context.Context, []gocube.Move) ([]gocube.Move, error) {
	return f.moves, f.err
}

func TestVerifiedRejectsWrongSolution(t *testing.T) {
	scramble := parse(t, "R U")
	v := &Verified{Solver: fixed{moves: parse(t, "U' R")}}
	solution, err := v.Solve(context.Background(), scramble)
	assert.ErrorIs(t, err, ErrUnverified)
	assert.Nil(t, solution)

	v = &Verified{Solver: fixed{moves: parse(t, "U' R'")}}
	solution, err = v.Solve(context.Background(), scramble)
	require.NoError(t, err)
	assert.Len(t, solution, 2)
}

func TestVerifiedPassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := (&Verified{Solver: fixed{err: boom}}).Solve(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestNew(t *testing.T) {
	s, err := New(StrategySearch, 3, nil)
	require.NoError(t, err)
	solution, err := s.Solve(context.Background(), parse(t, "F2 U"))
	require.NoError(t, err)
	assert.Equal(t, "U' F2", gocube.FormatMoves(solution))

	_, err = New("magic", 3, nil)
	assert.Error(t, err)

	strategy, err := ParseStrategy(" Reverse ")
	require.NoError(t, err)
	assert.Equal(t, StrategyReverse, strategy)
	_, err = ParseStrategy("magic")
	assert.Error(t, err)
}
