// Package rotation animates quarter turns of a cube layer and commits the
// result to the piece registry.
package rotation

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/quat"

	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
)

// DefaultFrameRate is the number of animation samples per second.
const DefaultFrameRate = 60

// Ease maps linear progress t in [0,1] to an ease-out curve, so turns
// decelerate into their final orientation.
func Ease(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Frame is the live pivot transform published once per animation sample.
type Frame struct {
	Axis     lattice.Axis
	Angle    float64  // Current pivot angle in radians
	Target   float64  // Final angle, (pi/2)*direction
	Progress float64  // Eased progress in [0,1]
	Keys     []string // Pieces attached to the pivot
	Done     bool     // Set on the frame published after commit
}

// Transform maps a position attached to the pivot into world space.
func (f Frame) Transform(v lattice.Vec3) lattice.Vec3 {
	return rotate(v, axisQuat(f.Axis, f.Angle))
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithClock sets the frame source.
func WithClock(c Clock) Option {
	return func(r *Rotator) {
		r.clock = c
	}
}

// WithFrameRate sets how many frames per second are sampled.
func WithFrameRate(fps int) Option {
	return func(r *Rotator) {
		if fps > 0 {
			r.frameInterval = time.Second / time.Duration(fps)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Rotator) {
		if l != nil {
			r.logger = l
		}
	}
}

// Rotator is the single writer of piece positions. A latch admits one
// rotation at a time; a request made while another runs is dropped, not
// queued.
type Rotator struct {
	registry      *lattice.Registry
	clock         Clock
	frameInterval time.Duration
	logger        *zap.Logger

	busy atomic.Bool

	mu        sync.Mutex
	pivot     pivot
	observers []func(Frame)
}

// pivot is the temporary frame a layer rides on during a turn. members
// holds each attached piece's position at attach time.
type pivot struct {
	axis    lattice.Axis
	angle   float64
	members map[string]lattice.Vec3
}

// New creates a rotator over registry.
func New(registry *lattice.Registry, opts ...Option) *Rotator {
	r := &Rotator{
		registry:      registry,
		clock:         SystemClock(),
		frameInterval: time.Second / DefaultFrameRate,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnFrame registers a callback invoked for every animation frame. Callbacks
// run on the animation goroutine and must not call back into the rotator.
func (r *Rotator) OnFrame(fn func(Frame)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Busy reports whether a rotation is in progress.
func (r *Rotator) Busy() bool {
	return r.busy.Load()
}

// Pivot returns the current pivot transform. Outside a rotation the angle
// is zero and no keys are attached.
func (r *Rotator) Pivot() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Frame{Axis: r.pivot.axis, Angle: r.pivot.angle, Keys: r.pivot.keys()}
}

// Start begins a quarter turn of the layer at (axis, limit) in the sense of
// direction, lasting duration. It returns a channel closed once positions
// are committed, or ok=false when another rotation holds the latch.
//
// Layers are not validated: limit 0 turns the middle slice and any other
// value selects no pieces, which still animates as an empty turn.
func (r *Rotator) Start(axis lattice.Axis, limit, direction int, duration time.Duration) (<-chan struct{}, bool) {
	if !r.busy.CompareAndSwap(false, true) {
		r.logger.Debug("rotation dropped, latch held",
			zap.Stringer("axis", axis), zap.Int("limit", limit), zap.Int("direction", direction))
		return nil, false
	}

	direction = sgn(direction)
	keys := r.registry.SelectLayer(axis, limit)
	r.attach(axis, keys)

	done := make(chan struct{})
	go r.animate(axis, direction, duration, done)
	return done, true
}

// Rotate runs a quarter turn and blocks until it is committed. It returns
// false without waiting when another rotation is in progress.
func (r *Rotator) Rotate(axis lattice.Axis, limit, direction int, duration time.Duration) bool {
	done, ok := r.Start(axis, limit, direction, duration)
	if !ok {
		return false
	}
	<-done
	return true
}

func (r *Rotator) attach(axis lattice.Axis, keys []string) {
	positions := r.registry.Positions()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pivot = pivot{axis: axis, members: make(map[string]lattice.Vec3, len(keys))}
	for _, key := range keys {
		r.pivot.members[key] = positions[key]
	}
}

func (r *Rotator) animate(axis lattice.Axis, direction int, duration time.Duration, done chan struct{}) {
	target := math.Pi / 2 * float64(direction)
	start := r.clock.Now()
	ticker := r.clock.NewTicker(r.frameInterval)

	for {
		now := <-ticker.C()
		t := progress(now.Sub(start), duration)
		eased := Ease(t)
		r.publish(r.setAngle(target*eased, target, eased))
		if t >= 1 {
			break
		}
	}
	ticker.Stop()

	r.publish(r.detach(axis, direction, target))
	r.busy.Store(false)
	close(done)
}

func (r *Rotator) setAngle(angle, target, eased float64) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pivot.angle = angle
	return Frame{
		Axis:     r.pivot.axis,
		Angle:    angle,
		Target:   target,
		Progress: eased,
		Keys:     r.pivot.keys(),
	}
}

// detach snaps the pivot to the exact target, re-expresses every attached
// piece in world coordinates, rounds them onto the lattice and resets the
// pivot.
func (r *Rotator) detach(axis lattice.Axis, direction int, target float64) Frame {
	r.mu.Lock()
	members := r.pivot.members
	keys := r.pivot.keys()
	r.pivot.angle = target
	q := axisQuat(axis, target)
	r.mu.Unlock()

	turn := lattice.QuarterTurn(axis, direction)
	for key, local := range members {
		r.registry.CommitPosition(key, rotate(local, q))
		r.registry.Reorient(key, turn)
	}

	r.mu.Lock()
	r.pivot = pivot{axis: axis}
	r.mu.Unlock()

	r.logger.Debug("rotation committed",
		zap.Stringer("axis", axis), zap.Int("direction", direction), zap.Int("pieces", len(keys)))

	return Frame{Axis: axis, Angle: target, Target: target, Progress: 1, Keys: keys, Done: true}
}

func (r *Rotator) publish(f Frame) {
	r.mu.Lock()
	observers := append([]func(Frame){}, r.observers...)
	r.mu.Unlock()
	for _, fn := range observers {
		fn(f)
	}
}

func (p pivot) keys() []string {
	if len(p.members) == 0 {
		return nil
	}
	keys := make([]string, 0, len(p.members))
	for k := range p.members {
		keys = append(keys, k)
	}
	return keys
}

// axisQuat is the unit quaternion for a right-handed rotation of angle
// radians about axis.
func axisQuat(axis lattice.Axis, angle float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	q := quat.Number{Real: c}
	switch axis {
	case lattice.X:
		q.Imag = s
	case lattice.Y:
		q.Jmag = s
	case lattice.Z:
		q.Kmag = s
	}
	return q
}

// rotate applies q*v*conj(q).
func rotate(v lattice.Vec3, q quat.Number) lattice.Vec3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	out := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return lattice.Vec3{X: out.Imag, Y: out.Jmag, Z: out.Kmag}
}

func progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(duration))
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

func sgn(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
