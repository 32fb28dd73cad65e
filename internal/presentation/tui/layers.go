package tui

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/muesli/termenv"
)

var axisNames = []string{"x", "y", "z", "w"}

// RenderLayers draws an automaton snapshot as one x/y plane per combination
// of its remaining coordinates, active cells as '#'. All planes share the
// same x/y window so they line up.
func RenderLayers(w io.Writer, snap *domain.Snapshot, p termenv.Profile) error {
	if len(snap.Cells) == 0 {
		_, err := fmt.Fprintln(w, "(no active cells)")
		return err
	}

	minX, maxX := snap.Cells[0][0], snap.Cells[0][0]
	minY, maxY := snap.Cells[0][1], snap.Cells[0][1]
	layers := map[string]map[[2]int]bool{}
	var keys [][]int
	for _, c := range snap.Cells {
		minX, maxX = min(minX, c[0]), max(maxX, c[0])
		minY, maxY = min(minY, c[1]), max(maxY, c[1])
		key := layerKey(c[2:])
		if layers[key] == nil {
			layers[key] = map[[2]int]bool{}
			keys = append(keys, c[2:])
		}
		layers[key][[2]int{c[0], c[1]}] = true
	}
	// Last axis most significant, matching range order.
	slices.SortFunc(keys, func(a, b []int) int {
		for i := len(a) - 1; i >= 0; i-- {
			if c := cmp.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	})

	on := p.String("#").Foreground(p.Color("#34d399")).Bold().String()
	off := p.String(".").Faint().String()

	for i, rest := range keys {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if len(rest) > 0 {
			fmt.Fprintln(w, p.String(layerTitle(rest)).Underline())
		}
		layer := layers[layerKey(rest)]
		var b strings.Builder
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if layer[[2]int{x, y}] {
					b.WriteString(on)
				} else {
					b.WriteString(off)
				}
			}
			b.WriteByte('\n')
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func layerKey(rest []int) string {
	return fmt.Sprint(rest)
}

func layerTitle(rest []int) string {
	parts := make([]string, len(rest))
	for i, v := range rest {
		parts[i] = fmt.Sprintf("%s=%d", axisNames[i+2], v)
	}
	return strings.Join(parts, ", ")
}
