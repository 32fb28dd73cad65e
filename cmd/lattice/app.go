package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/lattice/internal/config"
	"github.com/aretw0/lattice/internal/metrics"
	"github.com/aretw0/lattice/pkg/adapters/file"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/adapters/redis"
	"github.com/aretw0/lattice/pkg/checkpoint"
	"github.com/aretw0/lattice/pkg/persistence/middleware"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/runner"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// appContext carries what setup built for the running command.
type appContext struct {
	cfg    *config.Config
	logger *slog.Logger
}

var app *appContext

// services is the wired stack a command works with.
type services struct {
	manager  *checkpoint.Manager
	runner   *runner.Runner
	registry *prometheus.Registry
	close    func() error
}

// openServices builds the store selected by the configuration and everything
// layered on it. every is the checkpoint interval for runs.
func (a *appContext) openServices(every int) (*services, error) {
	var (
		store  ports.SnapshotStore
		locker ports.DistributedLocker
		closer = func() error { return nil }
	)

	switch strings.ToLower(a.cfg.Store.Backend) {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(a.cfg.Store.Dir)
	case config.BackendRedis:
		rc := a.cfg.Store.Redis
		rs := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
		store = rs
		locker = redis.NewLocker(rs.Client(), rc.Prefix)
		closer = rs.Close
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}
	a.logger.Debug("Snapshot store ready", "backend", a.cfg.Store.Backend)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	store = middleware.Chain(store,
		middleware.NewMetricsMiddleware(m.StoreOps),
		middleware.NewValidationMiddleware(),
	)

	opts := []checkpoint.Option{checkpoint.WithLogger(a.logger), checkpoint.WithLockTTL(a.cfg.Store.Redis.LockTTL)}
	if locker != nil {
		opts = append(opts, checkpoint.WithLocker(locker))
	}
	manager := checkpoint.NewManager(store, opts...)

	return &services{
		manager:  manager,
		runner:   runner.New(manager, runner.WithLogger(a.logger), runner.WithMetrics(m), runner.WithCheckpointEvery(every)),
		registry: reg,
		close:    closer,
	}, nil
}

// newRunID names a run when the user did not.
func newRunID(kind string) string {
	return kind + "-" + uuid.NewString()[:8]
}
