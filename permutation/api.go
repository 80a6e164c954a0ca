// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: multiply/invert/compare/power operations over Permutation.
// Policy: no algorithm here mutates an existing Permutation; every
// operation builds and returns a fresh (or shared-identity) value.

package permutation

// Inverse returns the permutation q such that q(p(i)) = i for all i.
// The result is memoized on p: the first caller to compute it wins the
// race and every subsequent call (including concurrent ones) observes the
// same cached pointer; losing the race is harmless since the computed
// value is semantically identical.
//
// Complexity: O(n) on first call, O(1) amortized thereafter.
func (p *Permutation) Inverse() *Permutation {
	if cached := p.inv.Load(); cached != nil {
		return cached
	}
	if p.IsIdentity() {
		p.inv.Store(identity)
		return identity
	}

	n := len(p.seq)
	images := make([]int, n)
	for i, img := range p.seq {
		images[int(img)] = i
	}
	inv, err := New(images)
	if err != nil {
		// p.seq was already validated as a bijection at construction time;
		// inverting a bijection cannot fail.
		panic(err)
	}

	p.inv.CompareAndSwap(nil, inv)
	return p.inv.Load()
}

// Compose returns x -> other(p(x)), i.e. "p then other" (spec: "other ∘
// self"). If either operand is the identity, the other is returned
// directly (no allocation).
//
// Complexity: O(max(len(p.seq), len(other.seq))).
func (p *Permutation) Compose(other *Permutation) *Permutation {
	if p.IsIdentity() {
		return other
	}
	if other.IsIdentity() {
		return p
	}

	n := len(p.seq)
	if len(other.seq) > n {
		n = len(other.seq)
	}
	n++ // spec: image array of length max(len,len)+1, then trimmed

	images := make([]int, n)
	for i := 0; i < n; i++ {
		images[i] = other.Apply(p.Apply(i))
	}
	result, err := New(images)
	if err != nil {
		panic(err) // composition of two bijections is always a bijection
	}
	return result
}

// Power returns p raised to the k-th power: identity for k=0, p for k=1,
// p.Inverse() for k=-1, and iterated composition otherwise (pre-inverting
// the base when k is negative).
//
// Complexity: O(|k| * n) in the naive iterated-compose scheme the spec
// calls for; this is not exponentiation-by-squaring by design, matching
// the reference engine's straightforward semantics.
func (p *Permutation) Power(k int) *Permutation {
	switch {
	case k == 0:
		return Identity()
	case k == 1:
		return p
	case k == -1:
		return p.Inverse()
	}

	base := p
	exp := k
	if k < 0 {
		base = p.Inverse()
		exp = -k
	}

	result := Identity()
	for i := 0; i < exp; i++ {
		result = result.Compose(base)
	}
	return result
}

// Equal reports whether p and q are the same permutation (equal trimmed
// image sequences).
func (p *Permutation) Equal(q *Permutation) bool {
	return p.Compare(q) == 0
}

// Compare implements the lex order on trimmed image sequences: shorter
// sequences compare as if padded with one conceptual "infinite" trailing
// fixed-point run, so it is equivalent to comparing element-by-element up
// to the longer length, treating a missing entry as its own index.
// Returns -1, 0 or 1.
func (p *Permutation) Compare(q *Permutation) int {
	n := len(p.seq)
	if len(q.seq) > n {
		n = len(q.seq)
	}
	for i := 0; i < n; i++ {
		a, b := p.Apply(i), q.Apply(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Less reports whether p sorts strictly before q (p.Compare(q) < 0).
func (p *Permutation) Less(q *Permutation) bool { return p.Compare(q) < 0 }

// Images returns a defensive copy of the trimmed image sequence as plain
// ints, suitable for JSON encoding on the host channel (1-indexing is the
// caller's responsibility; see hostchan).
func (p *Permutation) Images() []int {
	out := make([]int, len(p.seq))
	for i, v := range p.seq {
		out[i] = int(v)
	}
	return out
}
