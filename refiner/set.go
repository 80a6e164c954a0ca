package refiner

import (
	"sort"

	"github.com/lvlath-labs/pbtgroup/internal/xhash"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

// setSalt salts membershipKey, the KeyFunc used to split a base partition
// into "member of the set" / "not a member", so the two classes never
// collide with an unrelated refiner's key space.
const setSalt uint64 = 0xA11CE5E7

// SetRefiner transports a left point set onto a right point set: any
// permutation p checked against it must carry L onto R setwise (order
// doesn't matter).
type SetRefiner struct {
	l, r   map[int]bool
	lSlice []int
	rSlice []int
}

// NewSetRefiner builds a SetRefiner transporting l onto r (0-indexed
// point values). A stabiliser is expressed by passing the same slice for
// both sides.
func NewSetRefiner(l, r []int) *SetRefiner {
	toMap := func(s []int) map[int]bool {
		m := make(map[int]bool, len(s))
		for _, v := range s {
			m[v] = true
		}
		return m
	}
	lSorted := append([]int(nil), l...)
	rSorted := append([]int(nil), r...)
	sort.Ints(lSorted)
	sort.Ints(rSorted)
	return &SetRefiner{l: toMap(l), r: toMap(r), lSlice: lSorted, rSlice: rSorted}
}

func (s *SetRefiner) Name() string { return "set" }

func (s *SetRefiner) IsGroup() bool {
	if len(s.l) != len(s.r) {
		return false
	}
	for v := range s.l {
		if !s.r[v] {
			return false
		}
	}
	return true
}

// Check reports whether p carries L onto R setwise.
func (s *SetRefiner) Check(p *permutation.Permutation) bool {
	if len(s.l) != len(s.r) {
		return false
	}
	for v := range s.l {
		if !s.r[p.Apply(v)] {
			return false
		}
	}
	return true
}

func (s *SetRefiner) Image(p *permutation.Permutation, side Side) ImageToken {
	src := s.lSlice
	if side == Right {
		src = s.rSlice
	}
	out := make([]int, len(src))
	for i, v := range src {
		out[i] = p.Apply(v)
	}
	sort.Ints(out)
	return ImageToken{Kind: SortedVecToken, SortedVec: out}
}

func (s *SetRefiner) Compare(a, b ImageToken) int { return Compare(a, b) }

func (s *SetRefiner) membershipKey(set map[int]bool) func(point int) uint64 {
	return func(point int) uint64 {
		if set[point] {
			return xhash.Pair(setSalt, 1)
		}
		return xhash.Pair(setSalt, 0)
	}
}

func (s *SetRefiner) RefineBegin(st RefineState, side Side) error {
	set := s.l
	if side == Right {
		set = s.r
	}
	ps := st.Partition(side)
	ps.BaseRefinePartitionBy(s.membershipKey(set), st.Trace())
	return st.Trace().AddFact(xhash.Pair(setSalt, uint64(len(set))))
}

func (s *SetRefiner) RefineFixedPoints(st RefineState, side Side) error { return nil }

func (s *SetRefiner) RefineChangedCells(st RefineState, side Side) error { return nil }

func (s *SetRefiner) SnapshotRBase(st RefineState) {}

func (s *SetRefiner) SaveState() {}

func (s *SetRefiner) RestoreState() error { return nil }
