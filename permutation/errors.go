// SPDX-License-Identifier: MIT
// Package permutation: sentinel error set.
//
// All algorithms in this package MUST return these sentinels (never bare
// strings); callers MUST branch with errors.Is, matching the teacher's
// matrix/errors.go and builder/errors.go convention.
package permutation

import "errors"

var (
	// ErrNotBijection is returned by New when the supplied image sequence
	// does not restrict to a bijection on [0, len(images)).
	ErrNotBijection = errors.New("permutation: images do not form a bijection")
)
