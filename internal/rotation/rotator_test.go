package rotation

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
)

func newTestRotator(reg *lattice.Registry, opts ...Option) *Rotator {
	opts = append([]Option{WithClock(NewSimulatedClock(time.Unix(0, 0)))}, opts...)
	return New(reg, opts...)
}

func TestEase(t *testing.T) {
	assert.Equal(t, 0.0, Ease(0))
	assert.Equal(t, 1.0, Ease(1))
	assert.InDelta(t, 0.75, Ease(0.5), 1e-12)
	assert.Equal(t, 0.0, Ease(-3))
	assert.Equal(t, 1.0, Ease(7))

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestRotateMatchesTwist(t *testing.T) {
	for _, axis := range lattice.Axes {
		for _, limit := range []int{-1, 0, 1} {
			for _, dir := range []int{-1, 1} {
				animated := lattice.New()
				instant := lattice.New()
				r := newTestRotator(animated)

				require.True(t, r.Rotate(axis, limit, dir, 200*time.Millisecond))
				instant.Twist(axis, limit, dir)

				require.NoError(t, animated.CheckLattice())
				assert.Equal(t, instant.Pieces(), animated.Pieces(), "turn %v %d %d", axis, limit, dir)
				assert.False(t, r.Busy())
			}
		}
	}
}

func TestRotateKeepsBijectionOverManyTurns(t *testing.T) {
	reg := lattice.New()
	r := newTestRotator(reg)

	for i := 0; i < 40; i++ {
		axis := lattice.Axes[i%3]
		limit := []int{-1, 1, 0, 1}[i%4]
		dir := []int{1, -1}[i%2]
		require.True(t, r.Rotate(axis, limit, dir, 150*time.Millisecond))
		require.NoError(t, reg.CheckLattice(), "after turn %d", i)
	}
}

func TestStartWhileBusyIsDropped(t *testing.T) {
	reg := lattice.New()
	r := newTestRotator(reg)

	block := make(chan struct{})
	var once sync.Once
	r.OnFrame(func(Frame) {
		once.Do(func() { <-block })
	})

	done, ok := r.Start(lattice.X, 1, 1, 100*time.Millisecond)
	require.True(t, ok)
	assert.True(t, r.Busy())

	second, ok := r.Start(lattice.Y, 1, 1, 100*time.Millisecond)
	assert.False(t, ok)
	assert.Nil(t, second)

	close(block)
	<-done

	want := lattice.New()
	want.Twist(lattice.X, 1, 1)
	assert.Equal(t, want.Pieces(), reg.Pieces())
	assert.False(t, r.Busy())
}

func TestZeroDurationCompletesOnFirstFrame(t *testing.T) {
	reg := lattice.New()
	r := newTestRotator(reg)

	var frames []Frame
	r.OnFrame(func(f Frame) { frames = append(frames, f) })

	require.True(t, r.Rotate(lattice.Z, 1, -1, 0))
	require.Len(t, frames, 2)
	assert.Equal(t, 1.0, frames[0].Progress)
	assert.False(t, frames[0].Done)
	assert.True(t, frames[1].Done)
	require.NoError(t, reg.CheckLattice())
}

func TestFramesProgressMonotonically(t *testing.T) {
	reg := lattice.New()
	r := newTestRotator(reg, WithFrameRate(100))

	var frames []Frame
	r.OnFrame(func(f Frame) { frames = append(frames, f) })

	require.True(t, r.Rotate(lattice.Y, 1, 1, 200*time.Millisecond))

	// 200ms at 100fps is 20 samples plus the commit frame.
	require.Len(t, frames, 21)
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i].Angle, frames[i-1].Angle)
		assert.Len(t, frames[i].Keys, 9)
	}
	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.InDelta(t, math.Pi/2, last.Angle, 1e-12)
	assert.InDelta(t, math.Pi/2, last.Target, 1e-12)
}

func TestPivotResetAfterCommit(t *testing.T) {
	reg := lattice.New()
	r := newTestRotator(reg)

	require.True(t, r.Rotate(lattice.X, -1, 1, 50*time.Millisecond))
	p := r.Pivot()
	assert.Equal(t, 0.0, p.Angle)
	assert.Empty(t, p.Keys)
}

func TestEmptyLayerStillAnimates(t *testing.T) {
	reg := lattice.New()
	r := newTestRotator(reg)

	require.True(t, r.Rotate(lattice.X, 5, 1, 50*time.Millisecond))
	assert.True(t, reg.IsSolved())
}

func TestFrameTransform(t *testing.T) {
	f := Frame{Axis: lattice.Y, Angle: math.Pi / 2}
	got := f.Transform(lattice.Vec3{X: 0, Y: 0, Z: 1}).Round()
	assert.Equal(t, lattice.Vec3{X: 1, Y: 0, Z: 0}, got)

	f = Frame{Axis: lattice.X, Angle: -math.Pi / 2}
	got = f.Transform(lattice.Vec3{X: 0, Y: 1, Z: 0}).Round()
	assert.Equal(t, lattice.Vec3{X: 0, Y: 0, Z: -1}, got)
}
