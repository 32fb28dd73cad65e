// Package cups simulates the crab's cup game on a splice.List ring.
package cups

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/lattice/pkg/splice"
)

// PickCount is the number of cups lifted on every move.
const PickCount = 3

var (
	// ErrTooFewCups is returned when a game would not have a destination left after picking.
	ErrTooFewCups = errors.New("cups: need more cups than are picked up")
	// ErrDuplicateLabel is returned when two cups share a label.
	ErrDuplicateLabel = errors.New("cups: duplicate label")
	// ErrNoCupOne is returned by readouts that start after the cup labeled 1.
	ErrNoCupOne = errors.New("cups: no cup labeled 1")
)

// Game is a ring of labeled cups. The head of the list is the current cup.
type Game struct {
	cups  *splice.List[int]
	order []int            // distinct labels, ascending
	rank  map[int]int      // label -> position in order
	nodes []splice.NodeRef // position in order -> node
	moves int
}

// Option configures a Game.
type Option func(*config)

type config struct {
	total  int
	checks bool
}

// WithTotal pads the ring with consecutive labels after the highest given one
// until it holds n cups.
func WithTotal(n int) Option {
	return func(c *config) {
		c.total = n
	}
}

// WithChecks turns on the list's membership assertions.
func WithChecks(enabled bool) Option {
	return func(c *config) {
		c.checks = enabled
	}
}

// New builds a game from labels in ring order; labels[0] is the current cup.
func New(labels []int, opts ...Option) (*Game, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	all := slices.Clone(labels)
	if len(all) > 0 {
		for next := slices.Max(all) + 1; len(all) < cfg.total; next++ {
			all = append(all, next)
		}
	}
	if len(all) <= PickCount+1 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewCups, len(all))
	}

	g := &Game{
		order: slices.Clone(all),
		rank:  make(map[int]int, len(all)),
		nodes: make([]splice.NodeRef, len(all)),
	}
	slices.Sort(g.order)
	for i, label := range g.order {
		if i > 0 && g.order[i-1] == label {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateLabel, label)
		}
		g.rank[label] = i
	}

	arena := splice.NewArena[int](splice.WithCapacity(len(all)), splice.WithChecks(cfg.checks))
	g.cups = arena.NewList()
	for _, label := range all {
		g.nodes[g.rank[label]] = g.cups.Append(label)
	}
	return g, nil
}

// Parse reads labels written as a run of digits, e.g. "389125467".
func Parse(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	labels := make([]int, 0, len(s))
	for i, ch := range s {
		d, err := strconv.Atoi(string(ch))
		if err != nil {
			return nil, fmt.Errorf("position %d: %q is not a digit", i, ch)
		}
		labels = append(labels, d)
	}
	return labels, nil
}

// Len returns the number of cups.
func (g *Game) Len() int { return g.cups.Len() }

// Moves returns how many moves have been played.
func (g *Game) Moves() int { return g.moves }

// Current returns the label of the current cup.
func (g *Game) Current() int { return g.cups.Value(g.cups.First()) }

// Move plays one round: lift the cups after the current one, drop them after
// the destination, then make the next cup current.
func (g *Game) Move() {
	current := g.cups.First()
	picked := g.cups.RemoveFirst(PickCount, current)
	dest := g.destination(g.cups.Value(current), picked)
	g.cups.Insert(picked, dest)

	if !g.cups.CircularRotate(g.cups.Next(current)) {
		panic("cups: ring lost its next cup")
	}
	g.moves++
}

// destination walks down from the current label, wrapping to the highest,
// until it finds a cup that was not picked up.
func (g *Game) destination(label int, picked *splice.List[int]) splice.NodeRef {
	pickedLabels := picked.Values()
	r := g.rank[label]
	for {
		r--
		if r < 0 {
			r = len(g.order) - 1
		}
		if !slices.Contains(pickedLabels, g.order[r]) {
			return g.nodes[r]
		}
	}
}

// Play runs n moves, checking ctx between batches.
func (g *Game) Play(ctx context.Context, n int) error {
	const batch = 1 << 12
	for i := 0; i < n; i++ {
		if i%batch == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		g.Move()
	}
	return nil
}

// Labels returns the ring starting at the current cup.
func (g *Game) Labels() []int { return g.cups.Values() }

// rotateToOne makes cup 1 the head. The current cup changes with it.
func (g *Game) rotateToOne() error {
	r, ok := g.rank[1]
	if !ok {
		return ErrNoCupOne
	}
	if !g.cups.CircularRotate(g.nodes[r]) {
		return fmt.Errorf("cups: cup 1 missing from ring")
	}
	return nil
}

// LabelsAfterOne returns the labels clockwise after cup 1, leaving cup 1 current.
func (g *Game) LabelsAfterOne() ([]int, error) {
	if err := g.rotateToOne(); err != nil {
		return nil, err
	}
	return g.cups.Values()[1:], nil
}

// Checksum concatenates LabelsAfterOne into a string.
func (g *Game) Checksum() (string, error) {
	labels, err := g.LabelsAfterOne()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, l := range labels {
		b.WriteString(strconv.Itoa(l))
	}
	return b.String(), nil
}

// ProductAfterOne multiplies the two labels right after cup 1.
func (g *Game) ProductAfterOne() (int, error) {
	r, ok := g.rank[1]
	if !ok {
		return 0, ErrNoCupOne
	}
	one := g.nodes[r]
	a := g.next(one)
	b := g.next(a)
	return g.cups.Value(a) * g.cups.Value(b), nil
}

// next follows the ring, wrapping from the tail to the head.
func (g *Game) next(ref splice.NodeRef) splice.NodeRef {
	if n := g.cups.Next(ref); n != splice.Nil {
		return n
	}
	return g.cups.First()
}
