// Package metrics exposes simulation progress as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lattice"

// Metrics groups the collectors the simulations report to.
type Metrics struct {
	Generations *prometheus.CounterVec
	ActiveCells *prometheus.GaugeVec
	CupMoves    prometheus.Counter
	RunDuration *prometheus.HistogramVec
	StoreOps    *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conway_generations_total",
				Help:      "Total number of automaton generations computed.",
			},
			[]string{"dimensions"},
		),
		ActiveCells: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "conway_active_cells",
				Help:      "Active cells after the latest generation.",
			},
			[]string{"dimensions"},
		),
		CupMoves: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cups_moves_total",
				Help:      "Total number of cup moves played.",
			},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of simulation runs.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"kind"},
		),
		StoreOps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Duration of snapshot store operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op", "result"},
		),
	}
	reg.MustRegister(m.Generations, m.ActiveCells, m.CupMoves, m.RunDuration, m.StoreOps)
	return m
}

// ObserveRun records how long a run of kind took since start.
func (m *Metrics) ObserveRun(kind string, start time.Time) {
	m.RunDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
