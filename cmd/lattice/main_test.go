package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against a file store rooted in dir.
func execute(t *testing.T, dir string, stdin io.Reader, args ...string) string {
	t.Helper()
	cfgPath := filepath.Join(dir, "lattice.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		body := "log:\n  level: error\nstore:\n  backend: file\n  dir: " + filepath.Join(dir, "snapshots") + "\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	out := execute(t, t.TempDir(), nil, "version")
	assert.Contains(t, out, "lattice version")
}

func TestCupsAndSnapshots(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, dir, nil, "cups", "389125467", "--moves", "10", "--id", "crab")
	assert.Contains(t, out, "92658374")
	assert.FileExists(t, filepath.Join(dir, "snapshots", "crab.json"))

	out = execute(t, dir, nil, "snapshot", "list")
	assert.Contains(t, out, "crab")

	execute(t, dir, nil, "snapshot", "advance", "crab", "--steps", "90")

	out = execute(t, dir, nil, "snapshot", "show", "crab")
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 100, snap.Generation)
	assert.Equal(t, domain.KindCups, snap.Kind)

	out = execute(t, dir, nil, "snapshot", "delete", "crab")
	assert.Contains(t, out, "Removed snapshot 'crab'")
	assert.NoFileExists(t, filepath.Join(dir, "snapshots", "crab.json"))
}

func TestConwayFromStdin(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, dir, strings.NewReader(".#.\n..#\n###\n"),
		"conway", "--dims", "3", "--cycles", "1", "--id", "pocket", "--render")
	assert.Contains(t, out, "z=-1")
	assert.Contains(t, out, "z=1")

	data, err := os.ReadFile(filepath.Join(dir, "snapshots", "pocket.json"))
	require.NoError(t, err)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 1, snap.Generation)
	assert.Len(t, snap.Cells, 11)
}

func TestConwayWatch(t *testing.T) {
	dir := t.TempDir()
	slice := filepath.Join(dir, "seed.txt")
	require.NoError(t, os.WriteFile(slice, []byte(".#.\n..#\n###\n"), 0o644))
	cfgPath := filepath.Join(dir, "lattice.yaml")
	body := "log:\n  level: error\nstore:\n  backend: file\n  dir: " + filepath.Join(dir, "snapshots") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	t.Cleanup(func() { _ = conwayCmd.Flags().Set("watch", "false") })

	cells := func() int {
		data, err := os.ReadFile(filepath.Join(dir, "snapshots", "watched.json"))
		if err != nil {
			return -1
		}
		var snap domain.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return -1
		}
		return len(snap.Cells)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", cfgPath, "conway", slice, "--watch", "--dims", "3", "--cycles", "1", "--id", "watched"})
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool { return cells() == 11 }, 2*time.Second, 20*time.Millisecond)

	// A lone cell dies out after one cycle.
	require.NoError(t, os.WriteFile(slice, []byte("#\n"), 0o644))
	require.Eventually(t, func() bool { return cells() == 0 }, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
