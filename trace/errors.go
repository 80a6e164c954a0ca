// SPDX-License-Identifier: MIT
package trace

import "errors"

// ErrFailure is returned by Add when both the symmetry and canonical
// disciplines have been cleared for the current node: the caller must
// treat this as a recoverable prune of the current search node (spec §7
// "Trace failure"), never as a fatal error.
var ErrFailure = errors.New("trace: failure (both disciplines exhausted)")
