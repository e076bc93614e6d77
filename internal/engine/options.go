package engine

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// DefaultShuffleCount is the number of random turns in a shuffle.
const DefaultShuffleCount = 6

// Durations holds the animation length of each kind of turn.
type Durations struct {
	Turn    time.Duration
	Undo    time.Duration
	Shuffle time.Duration
	Solve   time.Duration
}

// DefaultDurations returns the standard turn timings.
func DefaultDurations() Durations {
	return Durations{
		Turn:    200 * time.Millisecond,
		Undo:    200 * time.Millisecond,
		Shuffle: 100 * time.Millisecond,
		Solve:   150 * time.Millisecond,
	}
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger       *zap.Logger
	policy       Policy
	durations    Durations
	shuffleCount int
	rng          *rand.Rand
	solver       Solver
	observers    []Observer
}

func defaultOptions() *options {
	return &options{
		logger:       zap.NewNop(),
		policy:       PolicyReject,
		durations:    DefaultDurations(),
		shuffleCount: DefaultShuffleCount,
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPolicy chooses what happens to a request made while another
// operation runs: PolicyReject fails it with ErrBusy, PolicyQueue waits.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithDurations sets the animation length of each kind of turn.
func WithDurations(d Durations) Option {
	return func(o *options) {
		o.durations = d
	}
}

// WithShuffleCount sets how many random turns a shuffle performs.
func WithShuffleCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.shuffleCount = n
		}
	}
}

// WithRand sets the random source used by Shuffle. Tests pass a seeded
// source to get repeatable scrambles.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSolver sets the solving collaborator.
func WithSolver(s Solver) Option {
	return func(o *options) {
		o.solver = s
	}
}

// WithObserver registers an observer for applied moves and finished
// operations.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}
