package search

import "errors"

// ErrNoCellToBranch is returned when a node's partition is not discrete
// but the configured Selector finds no cell of size > 1 — an internal
// invariant violation (the refiner set left a non-trivial cell unfixed
// without exposing it to the selector's domain, e.g. a root_search
// restriction gone stale).
var ErrNoCellToBranch = errors.New("search: no branchable cell at non-discrete node")
