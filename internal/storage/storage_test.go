package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
	"github.com/SeamusWaldron/gocube_sim/internal/rotation"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Reopening must not reapply.
	require.NoError(t, applyMigrations(db.DB))
	v, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create("play", "", "dev")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, err := repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "play", s.Source)
	assert.Nil(t, s.Notes)
	require.NotNil(t, s.AppVersion)
	assert.Equal(t, "dev", *s.AppVersion)
	assert.Nil(t, s.EndedAt)

	require.NoError(t, repo.End(id))
	s, err = repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s.EndedAt)
	require.NotNil(t, s.DurationMs)
	assert.GreaterOrEqual(t, *s.DurationMs, int64(0))

	missing, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListAndLast(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	first, err := repo.Create("scramble", "first", "")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := repo.Create("solve", "second", "")
	require.NoError(t, err)

	list, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].SessionID)
	assert.Equal(t, first, list[1].SessionID)

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, second, last.SessionID)

	require.NoError(t, repo.Delete(second))
	last, err = repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, first, last.SessionID)
}

func TestMoves(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("play", "", "")
	require.NoError(t, err)
	repo := NewMoveRepository(db)

	seq, err := repo.NextSeq(id)
	require.NoError(t, err)
	assert.Zero(t, seq)

	now := time.Now()
	require.NoError(t, repo.CreateBatch(id, 0, now, "shuffle", []gocube.Move{gocube.R, gocube.UPrime}))
	_, err = repo.Create(id, 2, now, "turn", gocube.F2)
	require.NoError(t, err)
	_, err = repo.Create(id, 3, now, "reset", gocube.Move{})
	require.NoError(t, err)

	records, err := repo.GetBySession(id)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "R", records[0].Notation)
	assert.Equal(t, "U'", records[1].Notation)
	m, ok := records[2].Move()
	require.True(t, ok)
	assert.Equal(t, gocube.F2, m)
	assert.True(t, records[3].IsReset())
	_, ok = records[3].Move()
	assert.False(t, ok)

	counts, err := repo.CountByKind(id)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"shuffle": 2, "turn": 1, "reset": 1}, counts)

	_, err = repo.Create(id, 3, now, "turn", gocube.B)
	assert.Error(t, err, "duplicate seq")
	_, err = repo.Create(id, 4, now, "bogus", gocube.B)
	assert.Error(t, err, "unknown kind")
}

func TestDeleteCascadesToMoves(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	id, err := sessions.Create("play", "", "")
	require.NoError(t, err)
	_, err = NewMoveRepository(db).Create(id, 0, time.Now(), "turn", gocube.R)
	require.NoError(t, err)

	require.NoError(t, sessions.Delete(id))
	records, err := NewMoveRepository(db).GetBySession(id)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecorderWritesEngineMoves(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("play", "", "")
	require.NoError(t, err)

	rec, err := NewRecorder(db, id, nil)
	require.NoError(t, err)
	assert.Equal(t, id, rec.SessionID())

	reg := lattice.New()
	rot := rotation.New(reg, rotation.WithClock(rotation.NewSimulatedClock(time.Unix(0, 0))))
	e := engine.New(reg, rot, engine.WithObserver(rec))
	ctx := context.Background()

	require.NoError(t, e.TurnNotation(ctx, "R"))
	_, err = e.Undo(ctx)
	require.NoError(t, err)
	require.NoError(t, e.TurnNotation(ctx, "U"))
	_, err = e.Solve(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Reset(ctx))

	records, err := NewMoveRepository(db).GetBySession(id)
	require.NoError(t, err)

	var got []string
	for _, r := range records {
		got = append(got, r.Kind+":"+r.Notation)
	}
	assert.Equal(t, []string{"turn:R", "undo:R'", "turn:U", "solve:U'", "reset:"}, got)

	// A second recorder on the same session continues the sequence.
	rec2, err := NewRecorder(db, id, nil)
	require.NoError(t, err)
	rec2.MoveApplied(engine.MoveEvent{Kind: engine.KindMirror, Move: gocube.B})
	records, err = NewMoveRepository(db).GetBySession(id)
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, 5, records[5].Seq)
}
