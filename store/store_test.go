package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
	"github.com/lvlath-labs/pbtgroup/permutation"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/solutions"
	"github.com/lvlath-labs/pbtgroup/store"
	"github.com/lvlath-labs/pbtgroup/trace"
)

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

func TestStore_InitRefine_ReachesFixedPoint(t *testing.T) {
	st := newFakeState(4)
	r := refiner.NewSetRefiner([]int{0, 1}, []int{0, 1})
	s := store.New([]refiner.Refiner{r})

	require.NoError(t, s.InitRefine(st, refiner.Left))
	assert.Equal(t, 2, st.Partition(refiner.Left).NumCells())
}

type fakeCanon struct{ image []int }

func (f fakeCanon) CanonicalMin(preimage []int) ([]int, error) { return f.image, nil }

func TestStore_CheckSolution_DoesNotRecordIdentity(t *testing.T) {
	st := newFakeState(2)
	r := refiner.NewSetRefiner([]int{0}, []int{0})
	s := store.New([]refiner.Refiner{r})

	// the set refiner's membership split already drives both sides to a
	// discrete partition on this 2-point domain; the only candidate it
	// reconstructs here is the identity.
	require.NoError(t, s.InitRefine(st, refiner.Left))
	require.NoError(t, s.InitRefine(st, refiner.Right))
	require.True(t, st.Partition(refiner.Left).IsDiscrete())
	require.True(t, st.Partition(refiner.Right).IsDiscrete())

	sols := solutions.New(2)
	require.NoError(t, s.CheckSolution(st, refiner.Right, sols, fakeCanon{image: []int{1, 2}}))
	assert.Empty(t, sols.Generators())
}
