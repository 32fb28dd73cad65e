/*
Package runner drives simulations and checkpoints their progress.

A Runner holds the checkpoint lock for a run id for the whole run, saving a
snapshot every CheckpointEvery steps, when the run ends and when it is
interrupted. Resume continues a stored run from its last snapshot.

# Usage

	mgr := checkpoint.NewManager(file.New(""))
	r := runner.New(mgr, runner.WithCheckpointEvery(1000))

	snap, err := r.Conway(ctx, "pocket", rows, 3, 6)
	...
	snap, err = r.Resume(ctx, "pocket", 2)
*/
package runner
