package solutions

import "errors"

// ErrUnbalancedRestore mirrors the sibling packages' invariant: a
// Restore call with no matching outstanding Save.
var ErrUnbalancedRestore = errors.New("solutions: restore without matching save")

// ErrBadMapping is returned when a canonicalmin reply's preimage/image
// pair cannot be assembled into a permutation (length mismatch, or a
// preimage value outside the expected range).
var ErrBadMapping = errors.New("solutions: malformed canonicalmin mapping")
