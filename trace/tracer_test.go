package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/trace"
)

func TestAdd_AppendsWhenOutOfRange(t *testing.T) {
	tr := trace.New()
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 1}))
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 2}))
	assert.Equal(t, 2, len(tr.SymmetryTrace()))
	assert.Equal(t, 2, len(tr.CanonicalTrace()))
	assert.Equal(t, 2, tr.Position())
}

func TestAdd_SymmetryMismatchClearsWithoutTruncating(t *testing.T) {
	tr := trace.New()
	tr.SaveState() // pos 0
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 5}))
	require.NoError(t, tr.RestoreState()) // back to pos 0, both disciplines still live

	_ = tr.Add(trace.Event{Kind: trace.Fact, Reason: 999})
	assert.False(t, tr.Mode()&trace.Symmetry != 0, "mismatching event must clear SYMMETRY")
	assert.Equal(t, 1, len(tr.SymmetryTrace()), "symmetry vector must not be truncated on mismatch")
}

func TestAdd_CanonicalLessTruncatesAndBumpsVersion(t *testing.T) {
	tr := trace.New()
	tr.SaveState() // pos 0
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 10}))
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 20}))
	require.NoError(t, tr.RestoreState()) // back to pos 0

	beforeVersion := tr.CanonicalTraceVersion()
	_ = tr.Add(trace.Event{Kind: trace.Fact, Reason: 5}) // less than 10 at pos 0
	assert.Greater(t, tr.CanonicalTraceVersion(), beforeVersion)
	assert.Equal(t, 1, len(tr.CanonicalTrace()))
}

func TestAdd_CanonicalGreaterClearsDiscipline(t *testing.T) {
	tr := trace.New()
	tr.SaveState() // pos 0
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 10}))
	require.NoError(t, tr.RestoreState()) // back to pos 0

	_ = tr.Add(trace.Event{Kind: trace.Fact, Reason: 20}) // greater than 10 at pos 0
	assert.False(t, tr.Mode()&trace.Canonical != 0)
}

func TestAdd_BothDisciplinesExhaustedFails(t *testing.T) {
	tr := trace.New()
	tr.SaveState() // pos 0
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 10}))
	require.NoError(t, tr.RestoreState()) // back to pos 0

	// 999 mismatches symmetry[0]=10 and is Greater than canon[0]=10: both clear.
	_ = tr.Add(trace.Event{Kind: trace.Fact, Reason: 999})
	assert.True(t, tr.Failed())
}

func TestSaveRestore_PositionAndMode(t *testing.T) {
	tr := trace.New()
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 1}))
	tr.SaveState()
	require.NoError(t, tr.Add(trace.Event{Kind: trace.Fact, Reason: 2}))
	assert.Equal(t, 2, tr.Position())
	require.NoError(t, tr.RestoreState())
	assert.Equal(t, 1, tr.Position())
	// event vectors are not backtrackable: the second Fact event remains recorded.
	assert.Equal(t, 2, len(tr.SymmetryTrace()))
}
