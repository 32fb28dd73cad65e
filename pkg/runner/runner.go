package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/lattice/internal/conway"
	"github.com/aretw0/lattice/internal/cups"
	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/internal/metrics"
	"github.com/aretw0/lattice/pkg/checkpoint"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/indexing"
)

// Runner executes simulations against a checkpoint.Manager.
type Runner struct {
	manager *checkpoint.Manager
	metrics *metrics.Metrics
	logger  *slog.Logger
	every   int
}

// New creates a Runner.
func New(manager *checkpoint.Manager, opts ...Option) *Runner {
	r := &Runner{
		manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Conway lifts a 2D slice into dims dimensions and runs it for cycles
// generations as run id, replacing any snapshot stored under id.
func (r *Runner) Conway(ctx context.Context, id string, rows [][]bool, dims, cycles int) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := r.manager.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		switch dims {
		case 2:
			snap, err = runGrid(ctx, r, id, conway.FromSlice(rows, conway.Lift2D), 0, cycles)
		case 3:
			snap, err = runGrid(ctx, r, id, conway.FromSlice(rows, conway.Lift3D), 0, cycles)
		case 4:
			snap, err = runGrid(ctx, r, id, conway.FromSlice(rows, conway.Lift4D), 0, cycles)
		default:
			err = fmt.Errorf("unsupported dimensions %d: want %d..%d", dims, domain.MinDimensions, domain.MaxDimensions)
		}
		return err
	})
	return snap, err
}

// Cups plays moves on a new game as run id. The game is returned so callers
// can read the ring after the final snapshot was saved.
func (r *Runner) Cups(ctx context.Context, id string, labels []int, moves int, opts ...cups.Option) (*cups.Game, error) {
	g, err := cups.New(labels, opts...)
	if err != nil {
		return nil, err
	}
	err = r.manager.WithLock(ctx, id, func(ctx context.Context) error {
		return r.playCups(ctx, id, g, moves)
	})
	return g, err
}

// Resume loads run id and advances it by steps generations or moves.
func (r *Runner) Resume(ctx context.Context, id string, steps int) (*domain.Snapshot, error) {
	var out *domain.Snapshot
	err := r.manager.WithLock(ctx, id, func(ctx context.Context) error {
		snap, err := r.manager.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		if err := snap.Validate(); err != nil {
			return err
		}
		r.logger.Info("Resuming run", "id", id, "kind", snap.Kind, "generation", snap.Generation, "steps", steps)

		switch snap.Kind {
		case domain.KindConway:
			out, err = resumeGrid(ctx, r, id, snap, steps)
		case domain.KindCups:
			var g *cups.Game
			if g, err = cups.Restore(snap); err == nil {
				err = r.playCups(ctx, id, g, steps)
				out = g.Snapshot(id)
			}
		default:
			err = fmt.Errorf("%w: %q", domain.ErrUnknownKind, snap.Kind)
		}
		return err
	})
	return out, err
}

func resumeGrid(ctx context.Context, r *Runner, id string, snap *domain.Snapshot, steps int) (*domain.Snapshot, error) {
	switch snap.Dimensions {
	case 2:
		g, err := conway.FromSnapshot[indexing.Index2D](snap)
		if err != nil {
			return nil, err
		}
		return runGrid(ctx, r, id, g, snap.Generation, steps)
	case 3:
		g, err := conway.FromSnapshot[indexing.Index3D](snap)
		if err != nil {
			return nil, err
		}
		return runGrid(ctx, r, id, g, snap.Generation, steps)
	case 4:
		g, err := conway.FromSnapshot[indexing.Index4D](snap)
		if err != nil {
			return nil, err
		}
		return runGrid(ctx, r, id, g, snap.Generation, steps)
	default:
		return nil, fmt.Errorf("%w: %d dimensions", domain.ErrInvalidSnapshot, snap.Dimensions)
	}
}

// runGrid advances g from generation gen, checkpointing as it goes. The
// caller holds the lock for id.
func runGrid[T indexing.Indexing[T]](ctx context.Context, r *Runner, id string, g *conway.Grid[T], gen, cycles int) (*domain.Snapshot, error) {
	start := time.Now()
	dims := strconv.Itoa(indexing.Dimension[T]())
	hook := func(_, active int) {
		gen++
		if r.metrics != nil {
			r.metrics.Generations.WithLabelValues(dims).Inc()
			r.metrics.ActiveCells.WithLabelValues(dims).Set(float64(active))
		}
		r.logger.Debug("Generation computed", "id", id, "generation", gen, "active", active)
	}

	snap := g.Snapshot(id, gen)
	remaining := cycles
	for {
		chunk := r.chunk(remaining)
		var runErr error
		g, runErr = g.Run(ctx, chunk, hook)
		remaining -= chunk

		snap = g.Snapshot(id, gen)
		if err := r.save(ctx, snap); err != nil {
			return nil, err
		}
		if runErr != nil {
			r.logger.Warn("Run interrupted", "id", id, "generation", gen, "err", runErr)
			return snap, runErr
		}
		if remaining <= 0 {
			break
		}
	}

	if r.metrics != nil {
		r.metrics.ObserveRun(string(domain.KindConway), start)
	}
	r.logger.Info("Run finished", "id", id, "kind", domain.KindConway, "generation", gen, "active", len(snap.Cells))
	return snap, nil
}

// playCups plays moves on g, checkpointing as it goes. The caller holds the
// lock for id.
func (r *Runner) playCups(ctx context.Context, id string, g *cups.Game, moves int) error {
	start := time.Now()
	remaining := moves
	for {
		chunk := r.chunk(remaining)
		before := g.Moves()
		playErr := g.Play(ctx, chunk)
		remaining -= chunk
		if r.metrics != nil {
			r.metrics.CupMoves.Add(float64(g.Moves() - before))
		}

		if err := r.save(ctx, g.Snapshot(id)); err != nil {
			return err
		}
		if playErr != nil {
			r.logger.Warn("Run interrupted", "id", id, "moves", g.Moves(), "err", playErr)
			return playErr
		}
		if remaining <= 0 {
			break
		}
	}

	if r.metrics != nil {
		r.metrics.ObserveRun(string(domain.KindCups), start)
	}
	r.logger.Info("Run finished", "id", id, "kind", domain.KindCups, "moves", g.Moves(), "current", g.Current())
	return nil
}

// chunk is the number of steps to take before the next checkpoint.
func (r *Runner) chunk(remaining int) int {
	if r.every <= 0 || remaining < r.every {
		return max(remaining, 0)
	}
	return r.every
}

// save validates snap and writes it even when ctx is already canceled, so an
// interrupted run keeps its progress.
func (r *Runner) save(ctx context.Context, snap *domain.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("failed to checkpoint %q: %w", snap.ID, err)
	}
	if err := r.manager.Store().Save(context.WithoutCancel(ctx), snap.ID, snap); err != nil {
		return fmt.Errorf("failed to checkpoint %q: %w", snap.ID, err)
	}
	r.logger.Debug("Checkpoint saved", "id", snap.ID, "generation", snap.Generation)
	return nil
}
