package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
)

var rTurn = notation.Turn{Axis: lattice.X, Limit: 1, Direction: -1}

func TestRecordSetsUndo(t *testing.T) {
	h := New()
	assert.False(t, h.UndoAvailable())

	require.True(t, h.Record(rTurn))
	assert.Equal(t, []gocube.Move{gocube.R}, h.Snapshot())
	assert.True(t, h.UndoAvailable())

	undo, ok := h.TakeUndo()
	require.True(t, ok)
	assert.Equal(t, rTurn.Inverse(), undo)
	assert.False(t, h.UndoAvailable())

	_, ok = h.TakeUndo()
	assert.False(t, ok)
}

func TestRecordReplacesUndo(t *testing.T) {
	h := New()
	h.Record(rTurn)
	u := notation.Turn{Axis: lattice.Y, Limit: 1, Direction: -1}
	h.Record(u)

	undo, ok := h.TakeUndo()
	require.True(t, ok)
	assert.Equal(t, u.Inverse(), undo)
}

func TestRecordWithoutUndo(t *testing.T) {
	h := New()
	h.Record(rTurn)
	require.True(t, h.RecordWithoutUndo(notation.Turn{Axis: lattice.Z, Limit: -1, Direction: 1}))

	assert.Equal(t, "R B", gocube.FormatMoves(h.Snapshot()))
	undo, ok := h.TakeUndo()
	require.True(t, ok)
	assert.Equal(t, rTurn.Inverse(), undo)

	h.RecordWithoutUndo(rTurn)
	assert.False(t, h.UndoAvailable())
}

func TestRecordIgnoresMiddleSlice(t *testing.T) {
	h := New()
	assert.False(t, h.Record(notation.Turn{Axis: lattice.X, Limit: 0, Direction: 1}))
	assert.Zero(t, h.Len())
	assert.False(t, h.UndoAvailable())
}

func TestRestoreUndo(t *testing.T) {
	h := New()
	h.Record(rTurn)
	undo, _ := h.TakeUndo()
	h.RestoreUndo(undo)
	assert.True(t, h.UndoAvailable())

	other := notation.Turn{Axis: lattice.Y, Limit: -1, Direction: 1}
	h.RestoreUndo(other)
	got, _ := h.TakeUndo()
	assert.Equal(t, undo, got)
}

func TestClear(t *testing.T) {
	h := New()
	h.Record(rTurn)
	h.Record(rTurn)
	require.Equal(t, 2, h.Len())

	h.ClearUndo()
	assert.False(t, h.UndoAvailable())
	assert.Equal(t, 2, h.Len())

	h.Record(rTurn)
	h.Clear()
	assert.Zero(t, h.Len())
	assert.False(t, h.UndoAvailable())
	assert.Empty(t, h.Snapshot())
}

func TestSnapshotIsCopy(t *testing.T) {
	h := New()
	h.Record(rTurn)
	snap := h.Snapshot()
	snap[0] = gocube.B
	assert.Equal(t, gocube.R, h.Snapshot()[0])
}
