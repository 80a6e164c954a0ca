package partstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
)

type capturingTracer struct {
	splits   [][3]int
	noSplits []int
}

func (c *capturingTracer) AddSplit(cell, size int, reason uint64) {
	c.splits = append(c.splits, [3]int{cell, size, int(reason)})
}
func (c *capturingTracer) AddNoSplit(cell int, reason uint64) {
	c.noSplits = append(c.noSplits, cell)
}

func TestNew_SingleCell(t *testing.T) {
	ps := partstack.New(5)
	require.NoError(t, ps.Check())
	assert.Equal(t, 1, ps.NumCells())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ps.Cell(0))
}

func TestSplitCell_TieBreakNewBeforeOld(t *testing.T) {
	ps := partstack.New(2)
	_, err := ps.SplitCell(0, 1)
	require.NoError(t, err)
	require.NoError(t, ps.Check())

	// Both resulting cells are singletons: fixed order must be [new, old],
	// i.e. the value that landed in the new cell (1) before the value
	// that stayed in the old cell (0).
	assert.Equal(t, []int{1, 0}, append([]int{}, ps.BaseFixedValues()...))
}

func TestSplitCell_RejectsBadOffset(t *testing.T) {
	ps := partstack.New(3)
	_, err := ps.SplitCell(0, 0)
	assert.ErrorIs(t, err, partstack.ErrBadOffset)
	_, err = ps.SplitCell(0, 3)
	assert.ErrorIs(t, err, partstack.ErrBadOffset)
}

func TestSaveRestore_RoundTrip(t *testing.T) {
	ps := partstack.New(6)
	ps.SaveState()

	_, err := ps.SplitCell(0, 2)
	require.NoError(t, err)
	_, err = ps.SplitCell(0, 1)
	require.NoError(t, err)
	require.NoError(t, ps.Check())
	assert.Equal(t, 3, ps.NumCells())

	require.NoError(t, ps.RestoreState())
	assert.Equal(t, 1, ps.NumCells())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ps.Cell(0))
	require.NoError(t, ps.Check())
}

func TestExtend_AndUnextend(t *testing.T) {
	ps := partstack.New(3)
	ps.SaveState()

	nc, err := ps.Extend(2)
	require.NoError(t, err)
	assert.Equal(t, 5, ps.ExtendedSize())
	assert.Equal(t, 3, ps.BaseSize())
	assert.False(t, ps.CellIsBase(nc))
	assert.Equal(t, []int{3, 4}, ps.Cell(nc))

	require.NoError(t, ps.Check())
	require.NoError(t, ps.RestoreState())
	assert.Equal(t, 3, ps.ExtendedSize())
	assert.Equal(t, 1, ps.NumCells())
}

func TestRefinePartitionCellBy_NoSplitWhenUniform(t *testing.T) {
	ps := partstack.New(4)
	tr := &capturingTracer{}
	split := ps.RefinePartitionCellBy(0, func(int) uint64 { return 7 }, tr)
	assert.False(t, split)
	assert.Len(t, tr.noSplits, 1)
	assert.Empty(t, tr.splits)
}

func TestRefinePartitionCellBy_SplitsByKey(t *testing.T) {
	ps := partstack.New(4) // points 0,1,2,3
	tr := &capturingTracer{}
	key := func(v int) uint64 {
		if v%2 == 0 {
			return 0
		}
		return 1
	}
	split := ps.RefinePartitionCellBy(0, key, tr)
	assert.True(t, split)
	require.NoError(t, ps.Check())
	assert.Equal(t, 2, ps.NumCells())

	for _, c := range []int{0, 1} {
		for _, v := range ps.Cell(c) {
			want := key(ps.Cell(c)[0])
			assert.Equal(t, want, key(v))
		}
	}
}

func TestBaseRefinePartitionBy_VisitsGrowingList(t *testing.T) {
	ps := partstack.New(4)
	tr := partstack.NopTracer()
	// Key that fully discretizes: key(v) = v.
	ps.BaseRefinePartitionBy(func(v int) uint64 { return uint64(v) }, tr)
	require.NoError(t, ps.Check())
	assert.True(t, ps.IsDiscrete())
	assert.Equal(t, 4, ps.NumCells())
}

func TestRefinePartitionCellsByGraph_WLStep(t *testing.T) {
	// Directed 3-cycle 0->1->2->0: with a uniform start partition, one WL
	// wave over the whole graph must find it already equitable (no
	// further split), since every vertex has identical in/out colour
	// multiset.
	ps := partstack.New(3)
	dg, err := digraph.FromEdges(3, [][]int{{1}, {2}, {0}})
	require.NoError(t, err)
	tr := partstack.NopTracer()
	ps.RefinePartitionCellsByGraph(dg, 0, tr)
	require.NoError(t, ps.Check())
	assert.Equal(t, 1, ps.NumCells(), "a vertex-transitive cycle must remain a single cell")
}

func TestRefinePartitionCellsByGraph_DistinguishesAsymmetricGraph(t *testing.T) {
	// Path 0->1->2: vertex 1 is distinguishable from 0 and 2 by degree
	// pattern once seeded from the whole-graph cell.
	ps := partstack.New(3)
	dg, err := digraph.FromEdges(3, [][]int{{1}, {2}, {}})
	require.NoError(t, err)
	tr := partstack.NopTracer()
	ps.RefinePartitionCellsByGraph(dg, 0, tr)
	require.NoError(t, ps.Check())
	assert.Greater(t, ps.NumCells(), 1, "a path must be split by WL colouring")
}
