package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLayers_3D(t *testing.T) {
	snap := &domain.Snapshot{
		ID: "run", Kind: domain.KindConway, Dimensions: 3,
		Cells: [][]int{
			{0, 0, 1},
			{1, 0, -1},
			{1, 1, 0},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tui.RenderLayers(&buf, snap, termenv.Ascii))
	assert.Equal(t, "z=-1\n.#\n..\n\nz=0\n..\n.#\n\nz=1\n#.\n..\n", buf.String())
}

func TestRenderLayers_2D(t *testing.T) {
	snap := &domain.Snapshot{
		ID: "run", Kind: domain.KindConway, Dimensions: 2,
		Cells: [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, tui.RenderLayers(&buf, snap, termenv.Ascii))
	assert.Equal(t, ".#.\n..#\n###\n", buf.String())
}

func TestRenderLayers_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.RenderLayers(&buf, &domain.Snapshot{Kind: domain.KindConway, Dimensions: 4}, termenv.Ascii))
	assert.Equal(t, "(no active cells)\n", buf.String())
}

func TestReport(t *testing.T) {
	snap := &domain.Snapshot{ID: "crab", Kind: domain.KindCups, Generation: 100, Ring: []int{1, 2, 3, 4, 5}}
	md := tui.Report(snap, 1500*time.Millisecond, tui.Field{Name: "Checksum", Value: "67384529"})

	assert.Contains(t, md, "# cups run `crab`")
	assert.Contains(t, md, "| Generation | 100 |")
	assert.Contains(t, md, "| Cups | 5 |")
	assert.Contains(t, md, "| Checksum | 67384529 |")
	assert.Contains(t, md, "| Elapsed | 1.5s |")

	render, err := tui.NewRenderer(false)
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "67384529")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), `|_|\__,_|`)
}
