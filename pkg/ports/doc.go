/*
Package ports defines the driven ports (interfaces) used by lattice to persist simulation
checkpoints.

These interfaces decouple the simulations from storage so that the CLI and the HTTP adapter
can run against memory, the local filesystem, or Redis.

# Key Interfaces

  - SnapshotStore: persists and loads Snapshots by ID.
  - DistributedLocker: serializes access to one snapshot ID across processes.
*/
package ports
