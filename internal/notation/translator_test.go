package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
)

func TestKnownValues(t *testing.T) {
	m, ok := ToNotation(lattice.X, 1, 1)
	require.True(t, ok)
	assert.Equal(t, "R'", m.Notation())

	m, ok = ToNotation(lattice.X, -1, 1)
	require.True(t, ok)
	assert.Equal(t, "L", m.Notation())

	m, ok = ToNotation(lattice.Y, 1, -1)
	require.True(t, ok)
	assert.Equal(t, "U", m.Notation())

	turn, ok := FromNotation(gocube.R)
	require.True(t, ok)
	assert.Equal(t, Turn{Axis: lattice.X, Limit: 1, Direction: -1}, turn)
}

func TestFaceTable(t *testing.T) {
	tests := []struct {
		axis  lattice.Axis
		limit int
		face  gocube.Face
	}{
		{lattice.Y, 1, gocube.FaceU},
		{lattice.Y, -1, gocube.FaceD},
		{lattice.X, 1, gocube.FaceR},
		{lattice.X, -1, gocube.FaceL},
		{lattice.Z, 1, gocube.FaceF},
		{lattice.Z, -1, gocube.FaceB},
	}

	for _, tt := range tests {
		m, ok := ToNotation(tt.axis, tt.limit, 1)
		require.True(t, ok)
		assert.Equal(t, tt.face, m.Face)
	}
}

func TestRoundTrip(t *testing.T) {
	turns := AllTurns()
	require.Len(t, turns, 12)

	seen := map[string]bool{}
	for _, turn := range turns {
		m, ok := ToNotation(turn.Axis, turn.Limit, turn.Direction)
		require.True(t, ok)
		seen[m.Notation()] = true

		back, ok := FromNotation(m)
		require.True(t, ok)
		assert.Equal(t, turn, back, "turn %v", turn)
	}
	assert.Len(t, seen, 12)
}

func TestToNotationRejectsNonOuterLayers(t *testing.T) {
	_, ok := ToNotation(lattice.X, 0, 1)
	assert.False(t, ok)
	_, ok = ToNotation(lattice.Y, 2, 1)
	assert.False(t, ok)
	_, ok = ToNotation(lattice.Z, 1, 0)
	assert.False(t, ok)
}

func TestToNotationUsesSignOfDirection(t *testing.T) {
	m, ok := ToNotation(lattice.Z, -1, 5)
	require.True(t, ok)
	assert.Equal(t, gocube.B, m)
}

func TestFromNotationRejectsUnknownFace(t *testing.T) {
	_, ok := FromNotation(gocube.Move{Face: "M", Turn: gocube.CW})
	assert.False(t, ok)
}

func TestFromString(t *testing.T) {
	turn, ok := FromString("U'")
	require.True(t, ok)
	assert.Equal(t, Turn{Axis: lattice.Y, Limit: 1, Direction: 1}, turn)

	_, ok = FromString("Q")
	assert.False(t, ok)
	_, ok = FromString("")
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	turns, ok := Expand(gocube.F2)
	require.True(t, ok)
	require.Len(t, turns, 2)
	assert.Equal(t, turns[0], turns[1])
	assert.Equal(t, Turn{Axis: lattice.Z, Limit: 1, Direction: -1}, turns[0])

	turns, ok = Expand(gocube.DPrime)
	require.True(t, ok)
	assert.Equal(t, []Turn{{Axis: lattice.Y, Limit: -1, Direction: -1}}, turns)
}

func TestTurnHelpers(t *testing.T) {
	turn := Turn{Axis: lattice.X, Limit: 1, Direction: -1}
	assert.True(t, turn.Valid())
	assert.Equal(t, "R", turn.Notation())
	assert.Equal(t, "R'", turn.Inverse().Notation())
	assert.False(t, Turn{Axis: lattice.X, Limit: 0, Direction: 1}.Valid())
	assert.Equal(t, "?", Turn{Axis: lattice.X, Limit: 0, Direction: 1}.Notation())
}

// Turning the registry by a translated turn must match the facelet model
// turned by the move itself.
func TestTranslatedTurnsMatchReferenceCube(t *testing.T) {
	moves, invalid := gocube.ParseMoves("R U2 F' L D B' R2 U'")
	require.Empty(t, invalid)

	reg := lattice.New()
	ref := gocube.NewCube()
	for _, m := range moves {
		turns, ok := Expand(m)
		require.True(t, ok)
		for _, turn := range turns {
			reg.Twist(turn.Axis, turn.Limit, turn.Direction)
		}
		ref.ApplyMove(m)
	}
	assert.Equal(t, ref.Facelets, reg.Facelets())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "R up", Describe(gocube.R))
	assert.Equal(t, "L up", Describe(gocube.LPrime))
	assert.Equal(t, "F rotate clockwise x 2", Describe(gocube.F2))
	assert.Equal(t, "T rotate right, B rotate left", DescribeSequence([]gocube.Move{gocube.U, gocube.DPrime}))
}
