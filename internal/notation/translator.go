// Package notation translates between geometric layer turns and standard
// face notation.
package notation

import (
	"fmt"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
)

// Turn is a geometric quarter turn: the layer at Limit along Axis, rotated
// by Direction*90 degrees (right-handed).
type Turn struct {
	Axis      lattice.Axis
	Limit     int
	Direction int
}

// Valid reports whether t names an outer layer and a quarter turn.
func (t Turn) Valid() bool {
	return t.Axis.Valid() &&
		(t.Limit == 1 || t.Limit == -1) &&
		(t.Direction == 1 || t.Direction == -1)
}

// Inverse returns the same layer turned the other way.
func (t Turn) Inverse() Turn {
	return Turn{Axis: t.Axis, Limit: t.Limit, Direction: -t.Direction}
}

// Notation returns the face notation of t, or "?" for turns with no name.
func (t Turn) Notation() string {
	m, ok := ToNotation(t.Axis, t.Limit, t.Direction)
	if !ok {
		return "?"
	}
	return m.Notation()
}

func (t Turn) String() string {
	return fmt.Sprintf("%s(%v,%+d,%+d)", t.Notation(), t.Axis, t.Limit, t.Direction)
}

type layer struct {
	axis  lattice.Axis
	limit int
}

var layerFaces = map[layer]gocube.Face{
	{lattice.Y, 1}:  gocube.FaceU,
	{lattice.Y, -1}: gocube.FaceD,
	{lattice.X, 1}:  gocube.FaceR,
	{lattice.X, -1}: gocube.FaceL,
	{lattice.Z, 1}:  gocube.FaceF,
	{lattice.Z, -1}: gocube.FaceB,
}

var faceLayers = map[gocube.Face]layer{
	gocube.FaceU: {lattice.Y, 1},
	gocube.FaceD: {lattice.Y, -1},
	gocube.FaceR: {lattice.X, 1},
	gocube.FaceL: {lattice.X, -1},
	gocube.FaceF: {lattice.Z, 1},
	gocube.FaceB: {lattice.Z, -1},
}

// flipped reports whether clockwise on face is a negative rotation about
// its axis. That holds for the faces on the positive end of each axis.
func flipped(f gocube.Face) bool {
	return f == gocube.FaceU || f == gocube.FaceR || f == gocube.FaceF
}

// ToNotation names the turn of the layer at (axis, limit) by direction.
// It reports false for the middle slice, out-of-range limits and a zero
// direction.
func ToNotation(axis lattice.Axis, limit, direction int) (gocube.Move, bool) {
	face, ok := layerFaces[layer{axis, limit}]
	if !ok || direction == 0 {
		return gocube.Move{}, false
	}

	effective := sign(direction)
	if flipped(face) {
		effective = -effective
	}

	turn := gocube.CW
	if effective == -1 {
		turn = gocube.CCW
	}
	return gocube.Move{Face: face, Turn: turn}, true
}

// FromNotation converts a quarter-turn move to its geometric turn. A double
// move maps to one clockwise quarter; use Expand to get both halves.
func FromNotation(m gocube.Move) (Turn, bool) {
	l, ok := faceLayers[m.Face]
	if !ok {
		return Turn{}, false
	}

	direction := 1
	switch m.Turn {
	case gocube.CCW:
		direction = -1
	case gocube.CW, gocube.Double:
	default:
		return Turn{}, false
	}
	if flipped(m.Face) {
		direction = -direction
	}
	return Turn{Axis: l.axis, Limit: l.limit, Direction: direction}, true
}

// FromString parses a single notation token such as "R'" into a turn.
func FromString(s string) (Turn, bool) {
	m, err := gocube.ParseMove(s)
	if err != nil {
		return Turn{}, false
	}
	return FromNotation(m)
}

// Expand returns the quarter turns that make up m: one for a quarter move,
// two identical quarters for a double.
func Expand(m gocube.Move) ([]Turn, bool) {
	t, ok := FromNotation(m)
	if !ok {
		return nil, false
	}
	if m.Turn == gocube.Double {
		return []Turn{t, t}, true
	}
	return []Turn{t}, true
}

// AllTurns lists the twelve outer-layer quarter turns.
func AllTurns() []Turn {
	turns := make([]Turn, 0, 12)
	for _, axis := range lattice.Axes {
		for _, limit := range []int{-1, 1} {
			for _, dir := range []int{-1, 1} {
				turns = append(turns, Turn{Axis: axis, Limit: limit, Direction: dir})
			}
		}
	}
	return turns
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
