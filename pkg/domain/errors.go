package domain

import "errors"

// ErrSnapshotNotFound is returned when a snapshot ID cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrInvalidSnapshot is returned when a snapshot fails validation.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ErrUnknownKind is returned for a snapshot kind no simulation understands.
var ErrUnknownKind = errors.New("unknown snapshot kind")
