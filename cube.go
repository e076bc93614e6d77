package gocube

import "strings"

// Color represents a face color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// CubeFace indexes the facelet model.
// This is distinct from Face which is used for move notation.
type CubeFace int

const (
	CubeFaceU CubeFace = 0 // Up (White)
	CubeFaceD CubeFace = 1 // Down (Yellow)
	CubeFaceF CubeFace = 2 // Front (Green)
	CubeFaceB CubeFace = 3 // Back (Blue)
	CubeFaceR CubeFace = 4 // Right (Red)
	CubeFaceL CubeFace = 5 // Left (Orange)
)

// CubeFaces lists the facelet faces in index order.
var CubeFaces = []CubeFace{CubeFaceU, CubeFaceD, CubeFaceF, CubeFaceB, CubeFaceR, CubeFaceL}

func (f CubeFace) String() string {
	return string(f.Face())
}

// Face returns the notation face for f.
func (f CubeFace) Face() Face {
	switch f {
	case CubeFaceU:
		return FaceU
	case CubeFaceD:
		return FaceD
	case CubeFaceF:
		return FaceF
	case CubeFaceB:
		return FaceB
	case CubeFaceR:
		return FaceR
	case CubeFaceL:
		return FaceL
	default:
		return "?"
	}
}

// SolvedColor returns the color of a face when solved.
func SolvedColor(f CubeFace) Color {
	return Color(f)
}

// CubeFaceOf converts a notation Face to its facelet index.
func CubeFaceOf(f Face) (CubeFace, bool) {
	switch f {
	case FaceU:
		return CubeFaceU, true
	case FaceD:
		return CubeFaceD, true
	case FaceF:
		return CubeFaceF, true
	case FaceB:
		return CubeFaceB, true
	case FaceR:
		return CubeFaceR, true
	case FaceL:
		return CubeFaceL, true
	default:
		return 0, false
	}
}

// Cube is a facelet model of a 3x3 cube. It is the reference representation
// solvers replay scrambles on; it knows nothing about piece geometry.
// Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Faces are viewed from outside, side faces with U on top, U with B on top
// and D with F on top. The center (index 4) never moves.
type Cube struct {
	// Facelets[face][position] = color
	Facelets [6][9]Color
}

// strip is three facelets of one face, listed in cycle order.
type strip struct {
	face CubeFace
	idx  [3]int
}

// sideCycles lists, per face, the four adjacent strips a clockwise turn
// carries content through: strips[0] -> strips[1] -> strips[2] -> strips[3] -> strips[0].
var sideCycles = map[CubeFace][4]strip{
	CubeFaceU: {{CubeFaceF, [3]int{0, 1, 2}}, {CubeFaceL, [3]int{0, 1, 2}}, {CubeFaceB, [3]int{0, 1, 2}}, {CubeFaceR, [3]int{0, 1, 2}}},
	CubeFaceD: {{CubeFaceF, [3]int{6, 7, 8}}, {CubeFaceR, [3]int{6, 7, 8}}, {CubeFaceB, [3]int{6, 7, 8}}, {CubeFaceL, [3]int{6, 7, 8}}},
	CubeFaceF: {{CubeFaceU, [3]int{6, 7, 8}}, {CubeFaceR, [3]int{0, 3, 6}}, {CubeFaceD, [3]int{2, 1, 0}}, {CubeFaceL, [3]int{8, 5, 2}}},
	CubeFaceB: {{CubeFaceU, [3]int{2, 1, 0}}, {CubeFaceL, [3]int{0, 3, 6}}, {CubeFaceD, [3]int{6, 7, 8}}, {CubeFaceR, [3]int{8, 5, 2}}},
	CubeFaceR: {{CubeFaceU, [3]int{2, 5, 8}}, {CubeFaceB, [3]int{6, 3, 0}}, {CubeFaceD, [3]int{2, 5, 8}}, {CubeFaceF, [3]int{2, 5, 8}}},
	CubeFaceL: {{CubeFaceU, [3]int{0, 3, 6}}, {CubeFaceF, [3]int{0, 3, 6}}, {CubeFaceD, [3]int{0, 3, 6}}, {CubeFaceB, [3]int{8, 5, 2}}},
}

// Clockwise facelet cycles within the turned face: corners then edges.
var (
	cornerCycle = [4]int{0, 2, 8, 6}
	edgeCycle   = [4]int{1, 5, 7, 3}
)

// NewCube creates a solved cube with standard orientation:
// White on top, Green in front.
func NewCube() *Cube {
	c := &Cube{}
	for _, face := range CubeFaces {
		for i := 0; i < 9; i++ {
			c.Facelets[face][i] = SolvedColor(face)
		}
	}
	return c
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes show the same colors everywhere.
func (c *Cube) Equal(other *Cube) bool {
	return c.Facelets == other.Facelets
}

// IsSolved returns true if the cube is in the solved state.
func (c *Cube) IsSolved() bool {
	for _, face := range CubeFaces {
		want := SolvedColor(face)
		for i := 0; i < 9; i++ {
			if c.Facelets[face][i] != want {
				return false
			}
		}
	}
	return true
}

// MoveFace turns a face by quarters clockwise quarter turns (negative is
// counter-clockwise). 1 = CW, -1 = CCW, 2 = 180 degrees.
func (c *Cube) MoveFace(face CubeFace, quarters int) {
	quarters = ((quarters % 4) + 4) % 4
	for i := 0; i < quarters; i++ {
		c.quarterCW(face)
	}
}

// quarterCW applies one clockwise quarter turn of face.
func (c *Cube) quarterCW(face CubeFace) {
	f := &c.Facelets[face]
	for _, cycle := range [][4]int{cornerCycle, edgeCycle} {
		last := f[cycle[3]]
		for k := 3; k > 0; k-- {
			f[cycle[k]] = f[cycle[k-1]]
		}
		f[cycle[0]] = last
	}

	strips := sideCycles[face]
	var saved [3]Color
	for j, idx := range strips[3].idx {
		saved[j] = c.Facelets[strips[3].face][idx]
	}
	for k := 3; k > 0; k-- {
		dst, src := strips[k], strips[k-1]
		for j := 0; j < 3; j++ {
			c.Facelets[dst.face][dst.idx[j]] = c.Facelets[src.face][src.idx[j]]
		}
	}
	for j, idx := range strips[0].idx {
		c.Facelets[strips[0].face][idx] = saved[j]
	}
}

// ApplyMove applies a Move to the cube. Moves on unknown faces are ignored.
func (c *Cube) ApplyMove(m Move) {
	face, ok := CubeFaceOf(m.Face)
	if !ok {
		return
	}
	c.MoveFace(face, m.Quarters())
}

// ApplyMoves applies a sequence of moves to the cube.
func (c *Cube) ApplyMoves(moves []Move) {
	for _, m := range moves {
		c.ApplyMove(m)
	}
}

// String returns the cube as an unfolded net.
func (c *Cube) String() string {
	return FormatNet(c.Facelets)
}

// FormatNet renders facelets as a plain-text net:
//
//	      U
//	L F R B
//	      D
func FormatNet(facelets [6][9]Color) string {
	var b strings.Builder

	writeRow := func(face CubeFace, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(facelets[face][row*3+col].String())
			b.WriteString(" ")
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(CubeFaceU, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []CubeFace{CubeFaceL, CubeFaceF, CubeFaceR, CubeFaceB} {
			writeRow(face, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(CubeFaceD, row)
		b.WriteString("\n")
	}

	return b.String()
}
