package lattice

import (
	"fmt"
	"math"
	"sync"

	"github.com/SeamusWaldron/gocube_sim"
)

// LayerTolerance is how far a rounded coordinate may sit from a layer's
// limit and still belong to it.
const LayerTolerance = 0.1

// Kind classifies a piece by how many faces it shows.
type Kind int

const (
	KindCore   Kind = 0
	KindCenter Kind = 1
	KindEdge   Kind = 2
	KindCorner Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindCore:
		return "core"
	case KindCenter:
		return "center"
	case KindEdge:
		return "edge"
	case KindCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// Piece is one of the 27 unit cubes.
type Piece struct {
	Key         string      // Stable identity, named after Home
	Home        [3]int      // Lattice point the piece started on; fixes its colors
	Position    Vec3        // Current position
	Orientation Orientation // Current rotation relative to Home
}

// Kind reports whether the piece is a center, edge or corner.
func (p Piece) Kind() Kind {
	n := 0
	for _, c := range p.Home {
		if c != 0 {
			n++
		}
	}
	return Kind(n)
}

// Registry owns the pieces. Positions are only changed through
// CommitPosition, Reorient, Twist and Reset.
type Registry struct {
	mu     sync.RWMutex
	pieces []*Piece
	index  map[string]*Piece
}

// New creates a registry with one piece on every lattice point.
func New() *Registry {
	r := &Registry{index: make(map[string]*Piece, 27)}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				home := [3]int{x, y, z}
				p := &Piece{
					Key:         vecOf(home).Key(),
					Home:        home,
					Position:    vecOf(home),
					Orientation: Identity(),
				}
				r.pieces = append(r.pieces, p)
				r.index[p.Key] = p
			}
		}
	}
	return r
}

// Reset puts every piece back on its home point with identity orientation.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pieces {
		p.Position = vecOf(p.Home)
		p.Orientation = Identity()
	}
}

// Len returns the number of pieces.
func (r *Registry) Len() int {
	return len(r.pieces)
}

// Pieces returns a copy of every piece in creation order.
func (r *Registry) Pieces() []Piece {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Piece, len(r.pieces))
	for i, p := range r.pieces {
		out[i] = *p
	}
	return out
}

// Piece returns a copy of the piece with the given key.
func (r *Registry) Piece(key string) (Piece, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.index[key]
	if !ok {
		return Piece{}, false
	}
	return *p, true
}

// Positions returns the current position of every piece by key.
func (r *Registry) Positions() map[string]Vec3 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Vec3, len(r.pieces))
	for _, p := range r.pieces {
		out[p.Key] = p.Position
	}
	return out
}

// CommitPosition overwrites a piece's position with v rounded to integers.
// No other validation happens here.
func (r *Registry) CommitPosition(key string, v Vec3) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.index[key]
	if !ok {
		return false
	}
	p.Position = v.Round()
	return true
}

// Reorient applies q on top of a piece's current orientation.
func (r *Registry) Reorient(key string, q Orientation) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.index[key]
	if !ok {
		return false
	}
	p.Orientation = q.Mul(p.Orientation)
	return true
}

// SelectLayer returns the keys of pieces whose coordinate along axis,
// rounded, lies within LayerTolerance of limit. It is evaluated against the
// current positions on every call.
func (r *Registry) SelectLayer(axis Axis, limit int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	for _, p := range r.pieces {
		c := p.Position.Component(axis)
		if math.Abs(math.Round(c)-float64(limit)) < LayerTolerance {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// Twist turns a layer a quarter turn immediately, without animation.
func (r *Registry) Twist(axis Axis, limit, direction int) {
	q := QuarterTurn(axis, direction)
	keys := r.SelectLayer(axis, limit)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		p := r.index[key]
		p.Position = vecOf(q.Apply(p.Position.Ints()))
		p.Orientation = q.Mul(p.Orientation)
	}
}

// CheckLattice verifies that every piece sits exactly on a distinct lattice
// point. It returns nil when the 27 positions form the full grid.
func (r *Registry) CheckLattice() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[[3]int]string, len(r.pieces))
	for _, p := range r.pieces {
		if p.Position != p.Position.Round() {
			return fmt.Errorf("piece %s off grid at %v", p.Key, p.Position)
		}
		pt := p.Position.Ints()
		for _, c := range pt {
			if c < -1 || c > 1 {
				return fmt.Errorf("piece %s outside the cube at %v", p.Key, p.Position)
			}
		}
		if other, dup := seen[pt]; dup {
			return fmt.Errorf("pieces %s and %s both at %v", other, p.Key, p.Position)
		}
		seen[pt] = p.Key
	}
	if len(seen) != 27 {
		return fmt.Errorf("expected 27 occupied points, got %d", len(seen))
	}
	return nil
}

// IsSolved reports whether every face shows a single, home color.
func (r *Registry) IsSolved() bool {
	facelets := r.Facelets()
	for _, face := range gocube.CubeFaces {
		want := gocube.SolvedColor(face)
		for _, c := range facelets[face] {
			if c != want {
				return false
			}
		}
	}
	return true
}

// Facelets derives the visible colors from piece positions and
// orientations, in the gocube.Cube layout. Each sticker's color comes from
// the piece's home position and never changes.
func (r *Registry) Facelets() [6][9]gocube.Color {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out [6][9]gocube.Color
	for _, p := range r.pieces {
		pos := p.Position.Ints()
		for a := 0; a < 3; a++ {
			if p.Home[a] == 0 {
				continue
			}
			var normal [3]int
			normal[a] = p.Home[a]
			color := gocube.SolvedColor(faceFor(Axis(a), p.Home[a]))

			now := p.Orientation.Apply(normal)
			axis, dir := dominant(now)
			face := faceFor(axis, dir)
			out[face][faceletIndex(face, pos)] = color
		}
	}
	return out
}

// faceFor maps an outward normal to the facelet face it lies on.
func faceFor(axis Axis, dir int) gocube.CubeFace {
	switch axis {
	case X:
		if dir > 0 {
			return gocube.CubeFaceR
		}
		return gocube.CubeFaceL
	case Y:
		if dir > 0 {
			return gocube.CubeFaceU
		}
		return gocube.CubeFaceD
	default:
		if dir > 0 {
			return gocube.CubeFaceF
		}
		return gocube.CubeFaceB
	}
}

// dominant returns the axis and sign of a unit integer vector.
func dominant(v [3]int) (Axis, int) {
	for i, c := range v {
		if c != 0 {
			return Axis(i), c
		}
	}
	return X, 0
}

// faceletIndex places a lattice point on a face's 3x3 grid, viewed from
// outside the face.
func faceletIndex(face gocube.CubeFace, p [3]int) int {
	x, y, z := p[0], p[1], p[2]
	var row, col int
	switch face {
	case gocube.CubeFaceU:
		row, col = z+1, x+1
	case gocube.CubeFaceD:
		row, col = 1-z, x+1
	case gocube.CubeFaceF:
		row, col = 1-y, x+1
	case gocube.CubeFaceB:
		row, col = 1-y, 1-x
	case gocube.CubeFaceR:
		row, col = 1-y, 1-z
	case gocube.CubeFaceL:
		row, col = 1-y, z+1
	}
	return row*3 + col
}
