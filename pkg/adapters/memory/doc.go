// Package memory provides an in-process SnapshotStore, mostly for tests and one-off runs.
package memory
