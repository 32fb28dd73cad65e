/*
Package checkpoint serializes access to stored snapshots.

A Manager wraps a ports.SnapshotStore so that a load-run-save cycle for one
run id never interleaves with another cycle on the same id, both inside the
process (reference-counted mutexes) and, when a DistributedLocker is set,
across processes.
*/
package checkpoint
