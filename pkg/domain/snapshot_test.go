package domain_test

import (
	"testing"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    domain.Snapshot
		wantErr error
	}{
		{
			name: "valid conway",
			snap: domain.Snapshot{ID: "a", Kind: domain.KindConway, Dimensions: 3, Cells: [][]int{{1, 2, 3}}},
		},
		{
			name: "valid cups",
			snap: domain.Snapshot{ID: "b", Kind: domain.KindCups, Ring: []int{3, 8, 9, 1, 2}},
		},
		{
			name:    "missing id",
			snap:    domain.Snapshot{Kind: domain.KindCups, Ring: []int{1}},
			wantErr: domain.ErrInvalidSnapshot,
		},
		{
			name:    "negative generation",
			snap:    domain.Snapshot{ID: "c", Kind: domain.KindCups, Ring: []int{1}, Generation: -1},
			wantErr: domain.ErrInvalidSnapshot,
		},
		{
			name:    "wrong cell arity",
			snap:    domain.Snapshot{ID: "d", Kind: domain.KindConway, Dimensions: 3, Cells: [][]int{{1, 2}}},
			wantErr: domain.ErrInvalidSnapshot,
		},
		{
			name:    "too many dimensions",
			snap:    domain.Snapshot{ID: "e", Kind: domain.KindConway, Dimensions: 7},
			wantErr: domain.ErrInvalidSnapshot,
		},
		{
			name:    "empty ring",
			snap:    domain.Snapshot{ID: "f", Kind: domain.KindCups},
			wantErr: domain.ErrInvalidSnapshot,
		},
		{
			name:    "unknown kind",
			snap:    domain.Snapshot{ID: "g", Kind: "tetris"},
			wantErr: domain.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSnapshot_Clone(t *testing.T) {
	orig := &domain.Snapshot{ID: "x", Kind: domain.KindConway, Dimensions: 2, Cells: [][]int{{1, 2}}, Ring: []int{1}}
	c := orig.Clone()
	c.Cells[0][0] = 99
	c.Ring[0] = 42

	assert.Equal(t, 1, orig.Cells[0][0])
	assert.Equal(t, 1, orig.Ring[0])
}
