package refiner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
	"github.com/lvlath-labs/pbtgroup/permutation"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/trace"
)

// fakeState is a minimal refiner.RefineState for exercising built-in
// refiners without the full engine.
type fakeState struct {
	left, right *partstack.PartitionStack
	ldg, rdg    *digraph.Stack
	tr          *trace.Tracer
}

func newFakeState(n int) *fakeState {
	return &fakeState{
		left:  partstack.New(n),
		right: partstack.New(n),
		ldg:   digraph.NewStack(n),
		rdg:   digraph.NewStack(n),
		tr:    trace.New(),
	}
}

func (f *fakeState) Partition(side refiner.Side) *partstack.PartitionStack {
	if side == refiner.Left {
		return f.left
	}
	return f.right
}

func (f *fakeState) Digraphs(side refiner.Side) *digraph.Stack {
	if side == refiner.Left {
		return f.ldg
	}
	return f.rdg
}

func (f *fakeState) Trace() refiner.Tracer { return f.tr }

func (f *fakeState) ExtendPartition(side refiner.Side, k int) (int, error) {
	return f.Partition(side).Extend(k)
}

func TestSetRefiner_CheckAndImage(t *testing.T) {
	r := refiner.NewSetRefiner([]int{0, 1}, []int{2, 3})
	p := permutation.MustNew([]int{2, 3, 0, 1})
	assert.True(t, r.Check(p))

	img := r.Image(p, refiner.Left)
	ident := permutation.Identity()
	idImg := r.Image(ident, refiner.Right)
	assert.Equal(t, 0, refiner.Compare(img, idImg))
}

func TestSetRefiner_RefineBeginSplitsBySide(t *testing.T) {
	st := newFakeState(4)
	r := refiner.NewSetRefiner([]int{0, 1}, []int{2, 3})
	require.NoError(t, r.RefineBegin(st, refiner.Left))
	assert.Equal(t, 2, st.Partition(refiner.Left).NumCells())
}

func TestTupleRefiner_LengthMismatch(t *testing.T) {
	_, err := refiner.NewTupleRefiner([]int{0, 1}, []int{0})
	assert.ErrorIs(t, err, refiner.ErrLengthMismatch)
}

func TestTupleRefiner_CheckOrderMatters(t *testing.T) {
	r, err := refiner.NewTupleRefiner([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	good := permutation.MustNew([]int{1, 0})
	assert.True(t, r.Check(good))
	bad := permutation.Identity()
	assert.False(t, r.Check(bad))
}

func TestDigraphRefiner_CheckPermutedEquality(t *testing.T) {
	l, err := digraph.FromEdges(3, [][]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	swap := permutation.MustNew([]int{1, 0, 2})
	r := l.Permute(swap)
	dr := refiner.NewDigraphRefiner(l, r)
	assert.True(t, dr.Check(swap))
	assert.False(t, dr.Check(permutation.Identity()))
}

func TestSymmetricGroupRefiner_FixesComplement(t *testing.T) {
	r := refiner.NewSymmetricGroupRefiner(4, []int{0, 1})
	insideOnly := permutation.MustNew([]int{1, 0, 2, 3})
	assert.True(t, r.Check(insideOnly))
	movesOutside := permutation.MustNew([]int{0, 1, 3, 2})
	assert.False(t, r.Check(movesOutside))
}

func TestSymmetricGroupRefiner_RefineBeginIsolatesComplement(t *testing.T) {
	st := newFakeState(4)
	r := refiner.NewSymmetricGroupRefiner(4, []int{0, 1})
	require.NoError(t, r.RefineBegin(st, refiner.Left))
	ps := st.Partition(refiner.Left)
	assert.Equal(t, 3, ps.NumCells()) // {0,1} | {2} | {3}
}
