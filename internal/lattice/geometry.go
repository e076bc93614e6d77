// Package lattice holds the 27 pieces of the virtual cube and their
// positions on the {-1,0,1}^3 grid.
package lattice

import (
	"fmt"
	"math"
)

// Axis is one of the three orthogonal rotation axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists every axis.
var Axes = []Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a names a real axis.
func (a Axis) Valid() bool {
	return a >= X && a <= Z
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "x", "X":
		return X, true
	case "y", "Y":
		return Y, true
	case "z", "Z":
		return Z, true
	default:
		return 0, false
	}
}

// Vec3 is a point in cube space. x points right, y up, z towards the viewer.
type Vec3 struct {
	X, Y, Z float64
}

// Component returns the coordinate along a.
func (v Vec3) Component(a Axis) float64 {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	case Z:
		return v.Z
	default:
		return math.NaN()
	}
}

// Round snaps every component to the nearest integer.
func (v Vec3) Round() Vec3 {
	return Vec3{X: math.Round(v.X), Y: math.Round(v.Y), Z: math.Round(v.Z)}
}

// Ints returns the rounded components as integers.
func (v Vec3) Ints() [3]int {
	r := v.Round()
	return [3]int{int(r.X), int(r.Y), int(r.Z)}
}

// Key names the lattice point nearest to v, e.g. "-1-0-1" for (-1,0,1).
func (v Vec3) Key() string {
	p := v.Ints()
	return fmt.Sprintf("%d-%d-%d", p[0], p[1], p[2])
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// vecOf builds a Vec3 from integer components.
func vecOf(p [3]int) Vec3 {
	return Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// Orientation is an exact rotation matrix with entries in {-1,0,1}. Each
// piece carries one, updated by the same quarter turn that moves it, so
// sticker directions survive without a scene graph.
type Orientation [3][3]int

// Identity is the orientation every piece starts with.
func Identity() Orientation {
	return Orientation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// QuarterTurn returns the right-handed rotation of direction*90 degrees
// about axis. direction is reduced to its sign; zero yields Identity.
func QuarterTurn(axis Axis, direction int) Orientation {
	d := sign(direction)
	if d == 0 {
		return Identity()
	}
	switch axis {
	case X:
		return Orientation{{1, 0, 0}, {0, 0, -d}, {0, d, 0}}
	case Y:
		return Orientation{{0, 0, d}, {0, 1, 0}, {-d, 0, 0}}
	case Z:
		return Orientation{{0, -d, 0}, {d, 0, 0}, {0, 0, 1}}
	default:
		return Identity()
	}
}

// Mul returns o*p (apply p first, then o).
func (o Orientation) Mul(p Orientation) Orientation {
	var out Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += o[i][k] * p[k][j]
			}
		}
	}
	return out
}

// Apply rotates an integer vector.
func (o Orientation) Apply(v [3]int) [3]int {
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = o[i][0]*v[0] + o[i][1]*v[1] + o[i][2]*v[2]
	}
	return out
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
