package cups_test

import (
	"context"
	"testing"

	"github.com/aretw0/lattice/internal/cups"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	example = "389125467"
	input   = "562893147"
)

func newGame(t *testing.T, s string, opts ...cups.Option) *cups.Game {
	t.Helper()
	labels, err := cups.Parse(s)
	require.NoError(t, err)
	g, err := cups.New(labels, append([]cups.Option{cups.WithChecks(true)}, opts...)...)
	require.NoError(t, err)
	return g
}

func TestParse(t *testing.T) {
	labels, err := cups.Parse(example + "\n")
	require.NoError(t, err)
	assert.Len(t, labels, 9)
	assert.Equal(t, 7, labels[8])

	_, err = cups.Parse("12a4")
	assert.ErrorContains(t, err, "not a digit")
}

func TestNew_Errors(t *testing.T) {
	_, err := cups.New([]int{1, 2, 3, 4})
	assert.ErrorIs(t, err, cups.ErrTooFewCups)

	_, err = cups.New([]int{1, 2, 3, 4, 2})
	assert.ErrorIs(t, err, cups.ErrDuplicateLabel)

	_, err = cups.New(nil)
	assert.ErrorIs(t, err, cups.ErrTooFewCups)
}

func TestMove(t *testing.T) {
	g := newGame(t, example)
	g.Move()
	assert.Equal(t, []int{2, 8, 9, 1, 5, 4, 6, 7, 3}, g.Labels())
	assert.Equal(t, 2, g.Current())
	assert.Equal(t, 1, g.Moves())
}

func TestTenMoves(t *testing.T) {
	g := newGame(t, example)
	require.NoError(t, g.Play(context.Background(), 10))
	assert.Equal(t, []int{8, 3, 7, 4, 1, 9, 2, 6, 5}, g.Labels())

	after, err := g.LabelsAfterOne()
	require.NoError(t, err)
	assert.Equal(t, []int{9, 2, 6, 5, 8, 3, 7, 4}, after)
	assert.Equal(t, []int{1, 9, 2, 6, 5, 8, 3, 7, 4}, g.Labels())
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"example", example, "67384529"},
		{"input", input, "38925764"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, tt.input)
			require.NoError(t, g.Play(context.Background(), 100))
			got, err := g.Checksum()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArbitraryLabels(t *testing.T) {
	// Non-contiguous labels still pick the highest lower label.
	g, err := cups.New([]int{30, 80, 90, 10, 20, 50})
	require.NoError(t, err)
	g.Move()
	assert.Equal(t, []int{20, 80, 90, 10, 50, 30}, g.Labels())

	_, err = g.Checksum()
	assert.ErrorIs(t, err, cups.ErrNoCupOne)
}

func TestWithTotal(t *testing.T) {
	g := newGame(t, example, cups.WithTotal(20))
	assert.Equal(t, 20, g.Len())
	labels := g.Labels()
	assert.Equal(t, 10, labels[9])
	assert.Equal(t, 20, labels[19])
}

func TestMillionCups(t *testing.T) {
	if testing.Short() {
		t.Skip("ten million moves")
	}
	labels, err := cups.Parse(example)
	require.NoError(t, err)
	g, err := cups.New(labels, cups.WithTotal(1_000_000))
	require.NoError(t, err)

	require.NoError(t, g.Play(context.Background(), 10_000_000))
	product, err := g.ProductAfterOne()
	require.NoError(t, err)
	assert.Equal(t, 149245887792, product)
}

func TestPlay_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGame(t, example)
	assert.ErrorIs(t, g.Play(ctx, 5), context.Canceled)
	assert.Equal(t, 0, g.Moves())
}
