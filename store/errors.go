package store

import "errors"

// ErrTraceFailure is returned by InitRefine and CheckSolution when the shared
// tracer has exhausted both disciplines (spec §7 "trace failure...
// always recoverable at the node above").
var ErrTraceFailure = errors.New("store: trace failure, prune this node")

// ErrNoRBase is returned by CheckSolution if no R-base snapshot exists
// after its own SnapshotRBase call.
var ErrNoRBase = errors.New("store: check_solution before R-base snapshot")

// ErrBadReconstruction is returned when a candidate permutation cannot
// be rebuilt from the R-base and current base-fixed values (length or
// range mismatch, which indicates the mirror tree drifted from the
// R-base shape).
var ErrBadReconstruction = errors.New("store: candidate reconstruction failed")
