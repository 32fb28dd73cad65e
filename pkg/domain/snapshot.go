package domain

import (
	"fmt"
	"slices"
	"time"
)

// Snapshot is a checkpoint of a simulation at a given generation.
type Snapshot struct {
	// ID names the run; stores key snapshots by it.
	ID string `json:"id"`

	Kind Kind `json:"kind"`

	// Generation counts automaton cycles or cup moves played so far.
	Generation int `json:"generation"`

	// Dimensions and Cells hold the active cells of an automaton, each cell
	// being exactly Dimensions components long.
	Dimensions int     `json:"dimensions,omitempty"`
	Cells      [][]int `json:"cells,omitempty"`

	// Ring holds cup labels starting at the current cup.
	Ring []int `json:"ring,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the snapshot is internally consistent.
func (s *Snapshot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidSnapshot)
	}
	if s.Generation < 0 {
		return fmt.Errorf("%w: negative generation %d", ErrInvalidSnapshot, s.Generation)
	}

	switch s.Kind {
	case KindConway:
		if s.Dimensions < MinDimensions || s.Dimensions > MaxDimensions {
			return fmt.Errorf("%w: %d dimensions outside [%d, %d]", ErrInvalidSnapshot, s.Dimensions, MinDimensions, MaxDimensions)
		}
		for i, c := range s.Cells {
			if len(c) != s.Dimensions {
				return fmt.Errorf("%w: cell %d has %d components, want %d", ErrInvalidSnapshot, i, len(c), s.Dimensions)
			}
		}
	case KindCups:
		if len(s.Ring) == 0 {
			return fmt.Errorf("%w: empty ring", ErrInvalidSnapshot)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	return nil
}

// Clone returns a deep copy, so stores can hand out values callers may mutate.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Ring = slices.Clone(s.Ring)
	if s.Cells != nil {
		c.Cells = make([][]int, len(s.Cells))
		for i, cell := range s.Cells {
			c.Cells[i] = slices.Clone(cell)
		}
	}
	return &c
}
