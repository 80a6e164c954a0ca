// Package selector implements the search driver's cell-selection
// strategies (spec §4.7 "Cell selector"): which non-trivial cell to
// branch on next, behind one small interface so alternate strategies
// plug in without touching the search driver.
package selector

import "github.com/lvlath-labs/pbtgroup/partstack"

// Selector picks the next cell to branch the search on. Returns ok=false
// when the partition has no cell of size > 1 left (i.e. it is discrete).
type Selector interface {
	Select(ps *partstack.PartitionStack) (cell int, ok bool)
}

// Smallest picks the smallest cell of size > 1, ties broken by the
// earliest cell index (spec's default strategy).
type Smallest struct{}

func (Smallest) Select(ps *partstack.PartitionStack) (int, bool) {
	best, bestLen := -1, 0
	for _, c := range ps.BaseCells() {
		n := ps.CellLen(c)
		if n <= 1 {
			continue
		}
		if best == -1 || n < bestLen {
			best, bestLen = c, n
		}
	}
	return best, best != -1
}

// Largest picks the largest cell of size > 1, ties broken by the
// earliest cell index.
type Largest struct{}

func (Largest) Select(ps *partstack.PartitionStack) (int, bool) {
	best, bestLen := -1, 0
	for _, c := range ps.BaseCells() {
		n := ps.CellLen(c)
		if n <= 1 {
			continue
		}
		if best == -1 || n > bestLen {
			best, bestLen = c, n
		}
	}
	return best, best != -1
}

// First picks the lowest-indexed cell of size > 1.
type First struct{}

func (First) Select(ps *partstack.PartitionStack) (int, bool) {
	for _, c := range ps.BaseCells() {
		if ps.CellLen(c) > 1 {
			return c, true
		}
	}
	return -1, false
}

// MostConnected picks the non-trivial cell whose highest-scoring point,
// by a caller-supplied Degree lookup, scores highest over all such
// cells. Ties broken by earliest cell index.
type MostConnected struct {
	// Degree returns a connectivity score for point v; higher wins.
	Degree func(v int) int
}

func (m MostConnected) Select(ps *partstack.PartitionStack) (int, bool) {
	best, bestScore := -1, -1
	for _, c := range ps.BaseCells() {
		if ps.CellLen(c) <= 1 {
			continue
		}
		score := 0
		for _, v := range ps.Cell(c) {
			if d := m.Degree(v); d > score {
				score = d
			}
		}
		if best == -1 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, best != -1
}
