package partstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/partstack"
)

func TestFixPoint_IsolatesValueAndIsUndoable(t *testing.T) {
	ps := partstack.New(4)
	ps.SaveState()

	c, err := ps.FixPoint(2)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.CellLen(c))
	assert.Equal(t, c, ps.CellOf(2))
	assert.Equal(t, 2, ps.NumCells())

	require.NoError(t, ps.RestoreState())
	assert.Equal(t, 1, ps.NumCells())
	assert.Equal(t, 4, ps.CellLen(0))
}

func TestFixPoint_RestoreUndoesValueSwap(t *testing.T) {
	ps := partstack.New(4)
	before := append([]int(nil), ps.Cell(0)...)

	ps.SaveState()
	_, err := ps.FixPoint(2)
	require.NoError(t, err)
	require.NoError(t, ps.RestoreState())

	assert.Equal(t, before, ps.Cell(0))
	for v := 0; v < 4; v++ {
		assert.Equal(t, 0, ps.CellOf(v))
	}
}

func TestFixPoint_AlreadySingletonIsNoop(t *testing.T) {
	ps := partstack.New(1)
	c, err := ps.FixPoint(0)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
	assert.Equal(t, 1, ps.NumCells())
}
