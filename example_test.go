package lattice_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/lattice/internal/conway"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/checkpoint"
	"github.com/aretw0/lattice/pkg/runner"
)

// Example runs a pocket dimension for three cycles, then resumes it for three more.
func Example() {
	mgr := checkpoint.NewManager(memory.NewStore())
	r := runner.New(mgr)
	ctx := context.Background()

	rows, err := conway.ReadSlice(strings.NewReader(".#.\n..#\n###\n"))
	if err != nil {
		log.Fatal(err)
	}

	snap, err := r.Conway(ctx, "pocket", rows, 3, 3)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(snap.Generation, len(snap.Cells))

	snap, err = r.Resume(ctx, "pocket", 3)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(snap.Generation, len(snap.Cells))

	// Output:
	// 3 38
	// 6 112
}
