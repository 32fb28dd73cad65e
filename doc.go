/*
Package lattice runs sparse cellular automata in two to four dimensions and
the crab cup game, checkpointing every run so it can be inspected or resumed.

The building blocks are reusable on their own:

  - pkg/indexing: a generic D-dimensional index abstraction (arithmetic,
    neighbor offsets, ranges and bounding boxes) over any type implementing
    Indexing.
  - pkg/splice: an arena-backed singly linked list that splices whole
    segments in O(1) and rotates a ring without copying.

On top of them, pkg/runner drives simulations through a checkpoint.Manager
backed by a ports.SnapshotStore (memory, file or Redis), and cmd/lattice
wraps everything in a CLI with an HTTP mode.

# Usage

	mgr := checkpoint.NewManager(memory.NewStore())
	r := runner.New(mgr)

	rows, _ := conway.ReadSlice(strings.NewReader(".#.\n..#\n###\n"))
	snap, err := r.Conway(ctx, "pocket", rows, 3, 6)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(snap.Cells)) // 112
*/
package lattice
