// Package solutions accumulates the automorphisms/transporters a search
// discovers: the orbit union-find that lets the stabiliser-mode mirror
// tree skip branches already covered by a known generator, and the
// canonical-image bookkeeping of the canonical protocol.
package solutions

import "github.com/lvlath-labs/pbtgroup/permutation"

// searchedKey identifies one (orbit root, depth) pair already fully
// explored by the mirror tree.
type searchedKey struct {
	root, depth int
}

// Solutions is the per-run accumulator the search driver and the
// refiner store share (spec §4.6, §4.7 "orbit_needs_searching").
type Solutions struct {
	orbits *UnionFind

	searched     map[searchedKey]bool
	searchedJrnl []searchedKey
	searchedMark []int

	generators []*permutation.Permutation

	canonical *CanonicalRecord
}

// New returns a Solutions accumulator over a domain of n points.
func New(n int) *Solutions {
	return &Solutions{
		orbits:   NewUnionFind(n),
		searched: make(map[searchedKey]bool),
	}
}

// Generators returns every automorphism/transporter recorded so far.
func (s *Solutions) Generators() []*permutation.Permutation { return s.generators }

// RecordGenerator stores p and merges the orbits of every moved point
// with its image, so later orbit_needs_searching calls see the new
// coverage. The identity is never recorded (spec §8 "Boundary
// behaviours": an identity-only group yields zero generators, not one).
func (s *Solutions) RecordGenerator(p *permutation.Permutation) {
	if p.IsIdentity() {
		return
	}
	s.generators = append(s.generators, p)
	n := p.LargestMovedPoint() + 1
	for x := 0; x < n; x++ {
		s.orbits.Union(x, p.Apply(x))
	}
}

// OrbitRoot returns the root of v's orbit in the discovered-generator
// union-find, used by the full-graph-refine sub-search trick to bucket
// points by orbit (spec §4.7 "map each vertex to its canonical-orbit
// index, then sort").
func (s *Solutions) OrbitRoot(v int) int { return s.orbits.Find(v) }

// OrbitNeedsSearching reports whether point c still needs a branch
// explored at depth, i.e. c is the root of its orbit and that orbit has
// not already been marked searched at this depth.
func (s *Solutions) OrbitNeedsSearching(c, depth int) bool {
	if s.orbits.Find(c) != c {
		return false
	}
	return !s.searched[searchedKey{root: c, depth: depth}]
}

// MarkSearched records that c's orbit has been fully explored at depth.
func (s *Solutions) MarkSearched(c, depth int) {
	key := searchedKey{root: s.orbits.Find(c), depth: depth}
	if s.searched[key] {
		return
	}
	s.searched[key] = true
	s.searchedJrnl = append(s.searchedJrnl, key)
}

// Save snapshots both the orbit union-find and the searched-marks
// journal for a later Restore.
func (s *Solutions) Save() {
	s.orbits.Save()
	s.searchedMark = append(s.searchedMark, len(s.searchedJrnl))
}

// Restore undoes every orbit merge and searched-mark made since the
// matching Save.
func (s *Solutions) Restore() error {
	if err := s.orbits.Restore(); err != nil {
		return err
	}
	n := len(s.searchedMark)
	if n == 0 {
		return ErrUnbalancedRestore
	}
	mark := s.searchedMark[n-1]
	s.searchedMark = s.searchedMark[:n-1]
	for i := len(s.searchedJrnl) - 1; i >= mark; i-- {
		delete(s.searched, s.searchedJrnl[i])
	}
	s.searchedJrnl = s.searchedJrnl[:mark]
	return nil
}
