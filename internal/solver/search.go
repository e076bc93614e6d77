package solver

import (
	"context"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim"
)

// Search finds the shortest solution up to MaxDepth moves by
// iterative-deepening depth-first search over the facelet model. Deeper
// scrambles are handed to Fallback.
type Search struct {
	MaxDepth int
	Fallback Solver
	Logger   *zap.Logger
}

var searchTurns = []gocube.Turn{gocube.CW, gocube.CCW, gocube.Double}

// Solve implements Solver.
func (s *Search) Solve(ctx context.Context, scramble []gocube.Move) ([]gocube.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cube := gocube.NewCube()
	cube.ApplyMoves(scramble)
	if cube.IsSolved() {
		return nil, nil
	}

	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	path := make([]gocube.Move, 0, maxDepth)
	nodes := 0
	for depth := 1; depth <= maxDepth; depth++ {
		found, err := s.dfs(ctx, cube, depth, &path, &nodes)
		if err != nil {
			return nil, err
		}
		if found {
			s.logger().Debug("search found solution",
				zap.Int("depth", depth),
				zap.Int("nodes", nodes),
				zap.String("solution", gocube.FormatMoves(path)))
			return append([]gocube.Move(nil), path...), nil
		}
	}

	s.logger().Debug("search exhausted",
		zap.Int("max_depth", maxDepth),
		zap.Int("nodes", nodes),
		zap.Int("scramble", len(scramble)))
	if s.Fallback == nil {
		return nil, nil
	}
	return s.Fallback.Solve(ctx, scramble)
}

func (s *Search) dfs(ctx context.Context, cube *gocube.Cube, remaining int, path *[]gocube.Move, nodes *int) (bool, error) {
	if remaining == 0 {
		return cube.IsSolved(), nil
	}

	*nodes++
	if *nodes%4096 == 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}

	for _, face := range gocube.Faces {
		if !allowedAfter(*path, face) {
			continue
		}
		for _, turn := range searchTurns {
			m := gocube.Move{Face: face, Turn: turn}
			cube.ApplyMove(m)
			*path = append(*path, m)

			found, err := s.dfs(ctx, cube, remaining-1, path, nodes)
			if err != nil || found {
				return found, err
			}

			*path = (*path)[:len(*path)-1]
			cube.ApplyMove(m.Inverse())
		}
	}
	return false, nil
}

// allowedAfter prunes sequences with an equivalent shorter or reordered
// form: the same face twice in a row, and opposite faces in the
// non-canonical order (they commute).
func allowedAfter(path []gocube.Move, face gocube.Face) bool {
	if len(path) == 0 {
		return true
	}
	last := path[len(path)-1].Face
	if face == last {
		return false
	}
	if face == last.Opposite() && faceIndex(face) < faceIndex(last) {
		return false
	}
	return true
}

func faceIndex(f gocube.Face) int {
	for i, g := range gocube.Faces {
		if g == f {
			return i
		}
	}
	return -1
}

func (s *Search) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
