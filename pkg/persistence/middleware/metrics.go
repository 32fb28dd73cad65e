package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type metricsMiddleware struct {
	next     ports.SnapshotStore
	observer prometheus.ObserverVec
}

// NewMetricsMiddleware times every store call into observer, labeled by
// "op" and "result" (ok, not_found or error).
func NewMetricsMiddleware(observer prometheus.ObserverVec) Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &metricsMiddleware{next: next, observer: observer}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.observer.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, id string, snap *domain.Snapshot) error {
	start := time.Now()
	err := m.next.Save(ctx, id, snap)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	start := time.Now()
	snap, err := m.next.Load(ctx, id)
	m.observe("load", start, err)
	return snap, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
