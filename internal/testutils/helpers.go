// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lattice/internal/conway"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Glider is the five-cell glider used as a starting slice across tests.
const Glider = ".#.\n..#\n###\n"

// GliderRows parses Glider. It fails the test immediately on error.
func GliderRows(t *testing.T) [][]bool {
	t.Helper()
	rows, err := conway.ReadSlice(strings.NewReader(Glider))
	require.NoError(t, err, "Failed to read glider slice")
	return rows
}

// NewRedis starts an in-process Redis and a client connected to it. Both are
// torn down when the test ends.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}
