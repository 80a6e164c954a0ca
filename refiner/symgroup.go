package refiner

import (
	"sort"

	"github.com/lvlath-labs/pbtgroup/internal/xhash"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

const symGroupSalt uint64 = 0x5A17E0D

// SymmetricGroupRefiner constrains a permutation to the full symmetric
// group on a point set S: any action inside S is allowed, but every
// point outside S must be fixed. Unlike SetRefiner (which only
// constrains the image of S as a set), this refiner also pins down the
// complement of S pointwise.
type SymmetricGroupRefiner struct {
	s      map[int]bool
	outOfS []int // sorted, domain points not in S
}

// NewSymmetricGroupRefiner builds a SymmetricGroupRefiner for the point
// set s, restricted to the domain [0, n).
func NewSymmetricGroupRefiner(n int, s []int) *SymmetricGroupRefiner {
	in := make(map[int]bool, len(s))
	for _, v := range s {
		in[v] = true
	}
	var out []int
	for v := 0; v < n; v++ {
		if !in[v] {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return &SymmetricGroupRefiner{s: in, outOfS: out}
}

func (g *SymmetricGroupRefiner) Name() string { return "symmetric-group" }

func (g *SymmetricGroupRefiner) IsGroup() bool { return true }

func (g *SymmetricGroupRefiner) Check(p *permutation.Permutation) bool {
	for _, v := range g.outOfS {
		if p.Apply(v) != v {
			return false
		}
	}
	return true
}

// Image ignores side: S is the same set on both sides of the search by
// construction, so the constraint is a straight stabiliser.
func (g *SymmetricGroupRefiner) Image(p *permutation.Permutation, side Side) ImageToken {
	out := make([]int, len(g.outOfS))
	for i, v := range g.outOfS {
		out[i] = p.Apply(v)
	}
	return ImageToken{Kind: SortedVecToken, SortedVec: out}
}

func (g *SymmetricGroupRefiner) Compare(a, b ImageToken) int { return Compare(a, b) }

func (g *SymmetricGroupRefiner) RefineBegin(st RefineState, side Side) error {
	ps := st.Partition(side)
	ps.BaseRefinePartitionBy(func(point int) uint64 {
		if g.s[point] {
			return xhash.Pair(symGroupSalt, 1)
		}
		// every outside point gets its own key so it lands in a singleton
		return xhash.Pair(symGroupSalt, uint64(point)+2)
	}, st.Trace())
	return st.Trace().AddFact(xhash.Pair(symGroupSalt, uint64(len(g.outOfS))))
}

func (g *SymmetricGroupRefiner) RefineFixedPoints(st RefineState, side Side) error { return nil }

func (g *SymmetricGroupRefiner) RefineChangedCells(st RefineState, side Side) error { return nil }

func (g *SymmetricGroupRefiner) SnapshotRBase(st RefineState) {}

func (g *SymmetricGroupRefiner) SaveState() {}

func (g *SymmetricGroupRefiner) RestoreState() error { return nil }
