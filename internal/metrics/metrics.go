// Package metrics exposes engine activity as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SeamusWaldron/gocube_sim/internal/engine"
)

// Metrics counts turns, rejections and solves. It implements
// engine.Observer.
type Metrics struct {
	Turns            *prometheus.CounterVec
	BusyRejections   prometheus.Counter
	Solves           *prometheus.CounterVec
	RotationDuration prometheus.Histogram
	SolutionLength   prometheus.Histogram
	OperationElapsed *prometheus.HistogramVec
}

// New creates a Metrics instance with all metrics registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Turns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gocube_turns_total",
			Help: "Quarter turns committed, by the operation that made them",
		}, []string{"kind"}),
		BusyRejections: f.NewCounter(prometheus.CounterOpts{
			Name: "gocube_busy_rejections_total",
			Help: "Requests rejected because another operation was running",
		}),
		Solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gocube_solves_total",
			Help: "Solve operations by outcome (solved, unsolved, empty, error)",
		}, []string{"result"}),
		RotationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocube_rotation_duration_seconds",
			Help:    "Animation length of committed quarter turns",
			Buckets: []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
		}),
		SolutionLength: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocube_solution_length_moves",
			Help:    "Quarter turns applied per solve",
			Buckets: prometheus.LinearBuckets(0, 2, 12),
		}),
		OperationElapsed: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gocube_operation_duration_seconds",
			Help:    "Wall time of engine operations",
			Buckets: []float64{0.001, 0.01, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
	}
}

// MoveApplied implements engine.Observer.
func (m *Metrics) MoveApplied(ev engine.MoveEvent) {
	m.Turns.WithLabelValues(string(ev.Kind)).Inc()
	m.RotationDuration.Observe(ev.Duration.Seconds())
}

// OperationFinished implements engine.Observer.
func (m *Metrics) OperationFinished(ev engine.OperationEvent) {
	if errors.Is(ev.Err, engine.ErrBusy) && len(ev.Moves) == 0 {
		m.BusyRejections.Inc()
		return
	}
	m.ObserveOperation(ev.Kind, ev.Elapsed)

	if ev.Kind != engine.KindSolve {
		return
	}
	switch {
	case ev.Err != nil:
		m.Solves.WithLabelValues("error").Inc()
	case len(ev.Moves) == 0:
		m.Solves.WithLabelValues("empty").Inc()
	case ev.Solved:
		m.Solves.WithLabelValues("solved").Inc()
	default:
		m.Solves.WithLabelValues("unsolved").Inc()
	}
	m.SolutionLength.Observe(float64(len(ev.Moves)))
}

// ObserveOperation records how long an operation took.
func (m *Metrics) ObserveOperation(kind engine.Kind, elapsed time.Duration) {
	m.OperationElapsed.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
