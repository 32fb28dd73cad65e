package conway

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadSlice reads a '.'/'#' layout, one row per line. Blank lines are skipped
// and every row must have the same width.
func ReadSlice(r io.Reader) ([][]bool, error) {
	var rows [][]bool
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		row := make([]bool, len(text))
		for i, ch := range text {
			switch ch {
			case '#':
				row[i] = true
			case '.':
			default:
				return nil, fmt.Errorf("line %d: unexpected character %q", line, ch)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: width %d differs from %d", line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read slice: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("slice is empty")
	}
	return rows, nil
}
