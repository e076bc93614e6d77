package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/lattice"
	"github.com/SeamusWaldron/gocube_sim/internal/metrics"
	"github.com/SeamusWaldron/gocube_sim/internal/rotation"
	"github.com/SeamusWaldron/gocube_sim/internal/solver"
	"github.com/SeamusWaldron/gocube_sim/internal/storage"
)

// runtimeOptions selects how a command's engine is assembled.
type runtimeOptions struct {
	source   string // Session source recorded in the database
	realtime bool   // Animate on the wall clock instead of instantly
	record   bool   // Persist the session
	seed     *uint64
}

// runtime is an engine plus the infrastructure hanging off it.
type runtime struct {
	engine    *engine.Engine
	db        *storage.DB
	sessionID string

	closers []func()
}

// newRuntime assembles registry, rotator, solver and engine from cfg and
// attaches the recorder and metrics observers.
func newRuntime(opts runtimeOptions) (*runtime, error) {
	rt := &runtime{}

	clock := rotation.SystemClock()
	if !opts.realtime {
		clock = rotation.NewSimulatedClock(time.Now())
	}
	reg := lattice.New()
	rot := rotation.New(reg,
		rotation.WithClock(clock),
		rotation.WithFrameRate(cfg.Animation.FrameRate),
		rotation.WithLogger(logger.Named("rotation")),
	)

	strategy, err := solver.ParseStrategy(cfg.Solver.Strategy)
	if err != nil {
		return nil, err
	}
	s, err := solver.New(strategy, cfg.Solver.MaxDepth, logger.Named("solver"))
	if err != nil {
		return nil, err
	}
	policy, err := engine.ParsePolicy(cfg.Engine.BusyPolicy)
	if err != nil {
		return nil, err
	}

	engineOpts := []engine.Option{
		engine.WithLogger(logger.Named("engine")),
		engine.WithPolicy(policy),
		engine.WithDurations(cfg.Durations()),
		engine.WithShuffleCount(cfg.Shuffle.Count),
		engine.WithSolver(s),
	}
	if opts.seed != nil {
		engineOpts = append(engineOpts, engine.WithRand(rand.New(rand.NewPCG(*opts.seed, *opts.seed))))
	}
	rt.engine = engine.New(reg, rot, engineOpts...)

	if cfg.Metrics.Addr != "" {
		promReg := prometheus.NewRegistry()
		rt.engine.AddObserver(metrics.New(promReg))
		rt.serveMetrics(cfg.Metrics.Addr, promReg)
	}

	if opts.record && !noRecord {
		if err := rt.startSession(opts.source); err != nil {
			rt.Close()
			return nil, err
		}
	}

	return rt, nil
}

func (rt *runtime) startSession(source string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	rt.db = db
	rt.closers = append(rt.closers, func() { db.Close() })

	sessions := storage.NewSessionRepository(db)
	id, err := sessions.Create(source, "", version)
	if err != nil {
		return err
	}
	rt.sessionID = id
	rt.closers = append(rt.closers, func() {
		if err := sessions.End(id); err != nil {
			logger.Warn("failed to end session", zap.String("session", id), zap.Error(err))
		}
	})

	rec, err := storage.NewRecorder(db, id, logger.Named("storage"))
	if err != nil {
		return err
	}
	rt.engine.AddObserver(rec)
	logger.Debug("session started", zap.String("session", id), zap.String("source", source))
	return nil
}

func (rt *runtime) serveMetrics(addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	rt.closers = append(rt.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
}

// Close releases everything in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

// openDB opens the configured database, or the default one.
func openDB() (*storage.DB, error) {
	path := cfg.Storage.DBPath
	if path == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
