// SPDX-License-Identifier: MIT
//
// Package permutation implements the finite permutations of [0, n) used
// throughout the search engine as the exclusive, immutable currency of
// exchange between the partition stack, the trace, and the refiners.
//
// A Permutation is a shared, read-only value: once built it is never
// mutated, so it can be freely copied (by reference) between goroutine-free
// call sites without locking. The backing image slice is trimmed so that
// any suffix acting as the identity is dropped — this lets permutations
// that act identically on their "interesting" points compare bit-equal
// even if constructed over domains of different nominal size (spec §4.1,
// "Rationale for trim-to-smallest").
//
// Invariants (New checks the bijection on every call and trims the
// identity suffix):
//   - if len(seq) == k, then image(i) = seq[i] for i < k and image(i) = i
//     for i >= k;
//   - seq, restricted to [0,k), is a bijection onto [0,k);
//   - seq[k-1] != k-1 (no trailing fixed points survive trimming).
package permutation

import "sync/atomic"

// Permutation is an immutable bijection [0, n) -> [0, n), trimmed so that
// it carries no trailing fixed points. The zero value is NOT a valid
// Permutation; use Identity() or New().
//
// Concurrency: a *Permutation is safe for unsynchronized concurrent reads
// from multiple call sites because it is never mutated after construction;
// the only mutable field, inv, is written at most once via an atomic
// compare-and-swap memoization and is semantically invisible.
type Permutation struct {
	seq []int32 // trimmed image sequence; seq[i] = image of i, for i < len(seq)
	inv atomic.Pointer[Permutation]
}

// identity is the shared empty-sequence permutation; every Identity() call
// returns this same pointer so that Permutation equality by pointer is a
// valid (if not required) fast path.
var identity = &Permutation{}

// Identity returns the identity permutation (empty trimmed sequence).
//
// Complexity: O(1). Concurrency: safe; returns a shared immutable value.
func Identity() *Permutation { return identity }

// New constructs a Permutation from a 0-indexed image slice: images[i] is
// the image of i. The slice is copied and trimmed of any identity
// suffix; ErrNotBijection is returned if images does not restrict to a
// bijection on [0, len(images)).
//
// Complexity: O(n) time and allocation, where n = len(images).
func New(images []int) (*Permutation, error) {
	n := len(images)
	seen := make([]bool, n)
	for _, img := range images {
		if img < 0 || img >= n {
			return nil, ErrNotBijection
		}
		if seen[img] {
			return nil, ErrNotBijection
		}
		seen[img] = true
	}

	// Trim trailing fixed points: seq[k-1] != k-1 must hold for the final k.
	k := n
	for k > 0 && images[k-1] == k-1 {
		k--
	}

	seq := make([]int32, k)
	for i := 0; i < k; i++ {
		seq[i] = int32(images[i])
	}
	return &Permutation{seq: seq}, nil
}

// MustNew is New but panics on error; intended for literal test fixtures
// and for call sites that have already validated their input (mirrors the
// teacher's panic-in-debug-only constructors, e.g. builder option
// constructors that validate eagerly).
func MustNew(images []int) *Permutation {
	p, err := New(images)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the length of the trimmed image sequence (0 for identity).
func (p *Permutation) Len() int { return len(p.seq) }

// Apply returns the image of i under p. Complexity: O(1).
func (p *Permutation) Apply(i int) int {
	if i < 0 {
		return i
	}
	if i >= len(p.seq) {
		return i
	}
	return int(p.seq[i])
}

// LargestMovedPoint returns the largest point p does not fix, or -1 if p
// is the identity (spec: "None if identity, else len(seq)-1").
func (p *Permutation) LargestMovedPoint() int {
	if len(p.seq) == 0 {
		return -1
	}
	return len(p.seq) - 1
}

// IsIdentity reports whether p is the identity permutation.
func (p *Permutation) IsIdentity() bool { return len(p.seq) == 0 }
