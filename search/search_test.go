package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/engine"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/search"
)

func TestDriver_Stabiliser_IdentityOnlyGroupYieldsNoGenerators(t *testing.T) {
	r := refiner.NewSetRefiner([]int{0}, []int{0})
	st := engine.New(2, []refiner.Refiner{r})

	d := search.New(st, nil)
	d.Mode = search.Stabiliser

	require.NoError(t, d.Run())
	assert.Empty(t, st.Sols.Generators())
}

func TestDriver_Coset_TupleTransporterFindsRepresentative(t *testing.T) {
	// spec §8 scenario 2, 0-indexed: left=[0,1,2], right=[2,0,1].
	tr, err := refiner.NewTupleRefiner([]int{0, 1, 2}, []int{2, 0, 1})
	require.NoError(t, err)

	st := engine.New(4, []refiner.Refiner{tr})

	d := search.New(st, nil)
	d.Mode = search.Coset
	d.FindSingle = true

	require.NoError(t, d.Run())
	require.Len(t, st.Sols.Generators(), 1)

	p := st.Sols.Generators()[0]
	assert.Equal(t, 2, p.Apply(0))
	assert.Equal(t, 0, p.Apply(1))
	assert.Equal(t, 1, p.Apply(2))
	assert.Equal(t, 3, p.Apply(3))
}

func TestDriver_Stabiliser_SetStabiliserFindsNonTrivialGenerator(t *testing.T) {
	// spec §8 scenario 1, restricted to the moving pair: {0,1} setwise
	// stable inside a 3-point domain yields the transposition (0 1).
	r := refiner.NewSetRefiner([]int{0, 1}, []int{0, 1})
	st := engine.New(3, []refiner.Refiner{r})

	d := search.New(st, nil)
	d.Mode = search.Stabiliser

	require.NoError(t, d.Run())

	sawSwap := false
	for _, g := range st.Sols.Generators() {
		if g.Apply(0) == 1 && g.Apply(1) == 0 && g.Apply(2) == 2 {
			sawSwap = true
		}
		assert.ElementsMatch(t, []int{0, 1}, []int{g.Apply(0), g.Apply(1)})
	}
	assert.True(t, sawSwap, "expected the transposition (0 1) among the generators")
}
