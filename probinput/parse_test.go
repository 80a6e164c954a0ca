package probinput_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/probinput"
)

func TestParse_SetStab(t *testing.T) {
	// spec §8 scenario 1: points=5, one SetStab{points=[1,2]}.
	line := []byte(`{"config":{"points":5},"constraints":[{"tag":"SetStab","points":[1,2]}]}`)

	p, err := probinput.Parse(line, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, p.Points)
	require.Len(t, p.Refiners, 1)
	assert.Equal(t, "set", p.Refiners[0].Name())
	assert.False(t, p.FindCanonical)
	assert.False(t, p.FindCoset)
}

func TestParse_TupleTransport(t *testing.T) {
	// spec §8 scenario 2.
	line := []byte(`{"config":{"points":4,"find_coset":true},"constraints":[
		{"tag":"TupleTransport","left":[1,2,3],"right":[3,1,2]}
	]}`)

	p, err := probinput.Parse(line, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, p.Points)
	assert.True(t, p.FindCoset)
	require.Len(t, p.Refiners, 1)
	assert.Equal(t, "tuple", p.Refiners[0].Name())
}

func TestParse_DigraphStab(t *testing.T) {
	// spec §8 scenario 3: directed 3-cycle.
	line := []byte(`{"config":{"points":3},"constraints":[
		{"tag":"DigraphStab","edges":[[2],[3],[1]]}
	]}`)

	p, err := probinput.Parse(line, nil)
	require.NoError(t, err)
	require.Len(t, p.Refiners, 1)
	assert.Equal(t, "digraph", p.Refiners[0].Name())
}

func TestParse_SymmetricGroupIntersection(t *testing.T) {
	// spec §8 scenario 4.
	line := []byte(`{"config":{"points":6},"constraints":[
		{"tag":"InSymmetricGroup","points":[1,2,3]},
		{"tag":"SetStab","points":[1,4]}
	]}`)

	p, err := probinput.Parse(line, nil)
	require.NoError(t, err)
	require.Len(t, p.Refiners, 2)
	assert.Equal(t, "symmetric-group", p.Refiners[0].Name())
	assert.Equal(t, "set", p.Refiners[1].Name())
}

func TestParse_RootSearchConvertedTo0Indexed(t *testing.T) {
	line := []byte(`{"config":{"points":5,"root_search":[1,2]},"constraints":[]}`)

	p, err := probinput.Parse(line, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, p.RootSearch)
}

func TestParse_TooFewPoints(t *testing.T) {
	line := []byte(`{"config":{"points":1},"constraints":[]}`)

	_, err := probinput.Parse(line, nil)
	assert.ErrorIs(t, err, probinput.ErrTooFewPoints)
}

func TestParse_UnknownTag(t *testing.T) {
	line := []byte(`{"config":{"points":3},"constraints":[{"tag":"Bogus"}]}`)

	_, err := probinput.Parse(line, nil)
	assert.ErrorIs(t, err, probinput.ErrUnknownTag)
}

func TestParse_HostConstraintWithoutClient(t *testing.T) {
	line := []byte(`{"config":{"points":3},"constraints":[{"tag":"Host","gap_id":"g1"}]}`)

	_, err := probinput.Parse(line, nil)
	assert.ErrorIs(t, err, probinput.ErrNoHostClient)
}

func TestParse_MalformedConstraintMissingFields(t *testing.T) {
	line := []byte(`{"config":{"points":3},"constraints":[{"tag":"SetStab"}]}`)

	_, err := probinput.Parse(line, nil)
	assert.ErrorIs(t, err, probinput.ErrBadConstraint)
}
