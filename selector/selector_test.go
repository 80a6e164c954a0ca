package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/partstack"
	"github.com/lvlath-labs/pbtgroup/selector"
)

func buildShapedPartition(t *testing.T) *partstack.PartitionStack {
	t.Helper()
	ps := partstack.New(5) // one cell {0,1,2,3,4}
	_, err := ps.SplitCell(0, 2)
	require.NoError(t, err)
	return ps
}

func TestSmallest_PicksSmallerNonTrivialCell(t *testing.T) {
	ps := buildShapedPartition(t)
	c, ok := (selector.Smallest{}).Select(ps)
	require.True(t, ok)
	for _, other := range ps.BaseCells() {
		if ps.CellLen(other) > 1 {
			assert.LessOrEqual(t, ps.CellLen(c), ps.CellLen(other))
		}
	}
}

func TestLargest_PicksLargerNonTrivialCell(t *testing.T) {
	ps := buildShapedPartition(t)
	c, ok := (selector.Largest{}).Select(ps)
	require.True(t, ok)
	for _, other := range ps.BaseCells() {
		if ps.CellLen(other) > 1 {
			assert.GreaterOrEqual(t, ps.CellLen(c), ps.CellLen(other))
		}
	}
}

func TestFirst_PicksEarliestNonTrivialCell(t *testing.T) {
	ps := buildShapedPartition(t)
	c, ok := (selector.First{}).Select(ps)
	require.True(t, ok)
	assert.Greater(t, ps.CellLen(c), 1)
}

func TestSelect_NoneWhenDiscrete(t *testing.T) {
	ps := partstack.New(1)
	_, ok := (selector.Smallest{}).Select(ps)
	assert.False(t, ok)
}

func TestMostConnected_PicksHighestDegreeCell(t *testing.T) {
	ps := buildShapedPartition(t)
	degree := map[int]int{0: 1, 1: 1, 2: 5, 3: 5, 4: 5}
	sel := selector.MostConnected{Degree: func(v int) int { return degree[v] }}
	c, ok := sel.Select(ps)
	require.True(t, ok)
	assert.Greater(t, ps.CellLen(c), 1)
}
