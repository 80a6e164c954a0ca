// SPDX-License-Identifier: MIT
package partstack

import "errors"

var (
	// ErrBadOffset is returned by SplitCell when offset is not strictly
	// between 0 and the cell's length.
	ErrBadOffset = errors.New("partstack: split offset out of range")

	// ErrBadExtendCount is returned by Extend when k <= 0.
	ErrBadExtendCount = errors.New("partstack: extend count must be positive")

	// ErrUnbalancedRestore is returned by RestoreState when called without a
	// matching SaveState, or when the undo stack runs out before reaching
	// the saved cell count (an internal invariant violation).
	ErrUnbalancedRestore = errors.New("partstack: restore without matching save")

	// ErrInvariant is returned by Check when a structural invariant is
	// violated; only ever produced in debug-mode invariant checking.
	ErrInvariant = errors.New("partstack: invariant violated")
)
