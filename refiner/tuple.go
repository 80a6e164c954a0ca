package refiner

import (
	"github.com/lvlath-labs/pbtgroup/internal/xhash"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

const tupleSalt uint64 = 0x7B17E0F5

// TupleRefiner transports an ordered left sequence onto an ordered right
// sequence: position matters, unlike SetRefiner.
type TupleRefiner struct {
	l, r []int
}

// NewTupleRefiner builds a TupleRefiner. Returns ErrLengthMismatch if the
// two sequences differ in length.
func NewTupleRefiner(l, r []int) (*TupleRefiner, error) {
	if len(l) != len(r) {
		return nil, ErrLengthMismatch
	}
	return &TupleRefiner{l: append([]int(nil), l...), r: append([]int(nil), r...)}, nil
}

func (t *TupleRefiner) Name() string { return "tuple" }

func (t *TupleRefiner) IsGroup() bool {
	if len(t.l) != len(t.r) {
		return false
	}
	for i, v := range t.l {
		if t.r[i] != v {
			return false
		}
	}
	return true
}

func (t *TupleRefiner) Check(p *permutation.Permutation) bool {
	for i, v := range t.l {
		if p.Apply(v) != t.r[i] {
			return false
		}
	}
	return true
}

func (t *TupleRefiner) Image(p *permutation.Permutation, side Side) ImageToken {
	src := t.l
	if side == Right {
		src = t.r
	}
	out := make([]int, len(src))
	for i, v := range src {
		out[i] = p.Apply(v)
	}
	return ImageToken{Kind: SortedVecToken, SortedVec: out}
}

func (t *TupleRefiner) Compare(a, b ImageToken) int { return Compare(a, b) }

// RefineBegin fixes each tuple position as its own singleton base cell,
// tagged by its rank in the sequence so the two sides split identically.
func (t *TupleRefiner) RefineBegin(st RefineState, side Side) error {
	seq := t.l
	if side == Right {
		seq = t.r
	}
	rank := make(map[int]int, len(seq))
	for i, v := range seq {
		rank[v] = i
	}
	ps := st.Partition(side)
	ps.BaseRefinePartitionBy(func(point int) uint64 {
		if i, ok := rank[point]; ok {
			return xhash.Pair(tupleSalt, uint64(i+1))
		}
		return xhash.Pair(tupleSalt, 0)
	}, st.Trace())
	return st.Trace().AddFact(xhash.Pair(tupleSalt, uint64(len(seq))))
}

func (t *TupleRefiner) RefineFixedPoints(st RefineState, side Side) error { return nil }

func (t *TupleRefiner) RefineChangedCells(st RefineState, side Side) error { return nil }

func (t *TupleRefiner) SnapshotRBase(st RefineState) {}

func (t *TupleRefiner) SaveState() {}

func (t *TupleRefiner) RestoreState() error { return nil }
