package cell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lvlath-labs/pbtgroup/cell"
)

func TestValue_SaveRestore(t *testing.T) {
	v := cell.NewValue(3)
	v.Save()
	v.Set(10)
	assert.Equal(t, 10, v.Get())
	require := v.Restore()
	assert.NoError(t, require)
	assert.Equal(t, 3, v.Get())
	assert.Equal(t, 0, v.Depth())
}

func TestValue_RestoreWithoutSave(t *testing.T) {
	v := cell.NewValue(0)
	assert.ErrorIs(t, v.Restore(), cell.ErrUnbalancedRestore)
}

func TestValue_NestedSaveRestore(t *testing.T) {
	v := cell.NewValue("a")
	v.Save()
	v.Set("b")
	v.Save()
	v.Set("c")
	assert.Equal(t, 2, v.Depth())
	_ = v.Restore()
	assert.Equal(t, "b", v.Get())
	_ = v.Restore()
	assert.Equal(t, "a", v.Get())
}

func TestStack_SaveRestore(t *testing.T) {
	s := cell.NewStack[int]()
	s.Push(1)
	s.Save()
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())
	assert.NoError(t, s.Restore())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.At(0))
}

func TestStack_DepthTracksOutstandingSaves(t *testing.T) {
	s := cell.NewStack[int]()
	s.Save()
	s.Save()
	assert.Equal(t, 2, s.Depth())
	_ = s.Restore()
	assert.Equal(t, 1, s.Depth())
}
