package gocube

import (
	"strings"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Faces lists every outer face in the order used by searches and tables.
var Faces = []Face{FaceU, FaceD, FaceF, FaceB, FaceR, FaceL}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	switch f {
	case FaceU:
		return FaceD
	case FaceD:
		return FaceU
	case FaceF:
		return FaceB
	case FaceB:
		return FaceF
	case FaceR:
		return FaceL
	case FaceL:
		return FaceR
	default:
		return f
	}
}

// Valid reports whether f is one of the six outer faces.
func (f Face) Valid() bool {
	switch f {
	case FaceR, FaceL, FaceU, FaceD, FaceF, FaceB:
		return true
	}
	return false
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move represents a single face turn in standard notation.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// Quarters returns the number of clockwise quarter turns this move is worth (1..3).
func (m Move) Quarters() int {
	switch m.Turn {
	case CCW:
		return 3
	case Double:
		return 2
	default:
		return 1
	}
}

// IsCancellation returns true if the other move undoes this move.
func (m Move) IsCancellation(other Move) bool {
	if m.Face != other.Face {
		return false
	}
	return (m.Quarters()+other.Quarters())%4 == 0
}

// Merge combines two moves on the same face.
// Returns ok=false when the faces differ. When the moves cancel out,
// ok is true and merged is nil.
func (m Move) Merge(other Move) (merged *Move, ok bool) {
	if m.Face != other.Face {
		return nil, false
	}

	var turn Turn
	switch (m.Quarters() + other.Quarters()) % 4 {
	case 0:
		return nil, true
	case 1:
		turn = CW
	case 2:
		turn = Double
	case 3:
		turn = CCW
	}
	return &Move{Face: m.Face, Turn: turn}, true
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns ErrInvalidNotation if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'R':
		face = FaceR
	case 'L':
		face = FaceL
	case 'U':
		face = FaceU
	case 'D':
		face = FaceD
	case 'F':
		face = FaceF
	case 'B':
		face = FaceB
	default:
		return Move{}, ErrInvalidNotation
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "’", "′":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Invalid moves are skipped; the second return lists them.
func ParseMoves(s string) ([]Move, []string) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	var invalid []string

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			invalid = append(invalid, part)
			continue
		}
		moves = append(moves, move)
	}

	return moves, invalid
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

// SimplifyMoves merges adjacent same-face moves and drops cancellations.
// R R becomes R2, R R' disappears, R U U' R' collapses to nothing.
func SimplifyMoves(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if len(out) == 0 {
			out = append(out, m)
			continue
		}
		last := out[len(out)-1]
		merged, ok := last.Merge(m)
		if !ok {
			out = append(out, m)
			continue
		}
		out = out[:len(out)-1]
		if merged != nil {
			out = append(out, *merged)
		}
	}
	return out
}
