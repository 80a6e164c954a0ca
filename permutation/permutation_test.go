package permutation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/pbtgroup/permutation"
)

func TestNew_TrimsIdentitySuffix(t *testing.T) {
	p, err := permutation.New([]int{1, 0, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len(), "trailing fixed points 2,3 must be trimmed")
	assert.Equal(t, 1, p.Apply(0))
	assert.Equal(t, 0, p.Apply(1))
	assert.Equal(t, 2, p.Apply(2), "past the trimmed length, image is identity")
}

func TestNew_RejectsNonBijection(t *testing.T) {
	_, err := permutation.New([]int{1, 1})
	assert.ErrorIs(t, err, permutation.ErrNotBijection)

	_, err = permutation.New([]int{2})
	assert.ErrorIs(t, err, permutation.ErrNotBijection)
}

func TestIdentity(t *testing.T) {
	id := permutation.Identity()
	assert.True(t, id.IsIdentity())
	assert.Equal(t, -1, id.LargestMovedPoint())
	assert.Equal(t, 5, id.Apply(5))
}

func TestInverse(t *testing.T) {
	p := permutation.MustNew([]int{1, 2, 0})
	inv := p.Inverse()
	for i := 0; i < 3; i++ {
		assert.Equal(t, i, inv.Apply(p.Apply(i)))
	}
	assert.Same(t, inv, p.Inverse(), "inverse must memoize to the same pointer")
}

func TestCompose(t *testing.T) {
	p := permutation.MustNew([]int{1, 2, 0}) // (0 1 2)
	q := permutation.MustNew([]int{0, 2, 1}) // (1 2)
	r := p.Compose(q)
	for i := 0; i < 3; i++ {
		assert.Equal(t, q.Apply(p.Apply(i)), r.Apply(i))
	}
}

func TestCompose_IdentityShortCircuit(t *testing.T) {
	p := permutation.MustNew([]int{1, 2, 0})
	assert.Same(t, p, permutation.Identity().Compose(p))
	assert.Same(t, p, p.Compose(permutation.Identity()))
}

func TestPower(t *testing.T) {
	p := permutation.MustNew([]int{1, 2, 0}) // order 3

	assert.True(t, p.Power(0).IsIdentity())
	assert.Same(t, p, p.Power(1))
	assert.True(t, p.Power(3).IsIdentity(), "3-cycle cubed is identity")
	assert.Equal(t, p.Inverse().Apply(0), p.Power(-1).Apply(0))
}

// TestPower_SuccessorLaw checks the §8 testable property:
// p.power(k+1) = p.compose(p.power(k)) for every k >= 0.
func TestPower_SuccessorLaw(t *testing.T) {
	p := permutation.MustNew([]int{1, 2, 3, 0})
	for k := 0; k < 6; k++ {
		lhs := p.Power(k + 1)
		rhs := p.Compose(p.Power(k))
		assert.True(t, lhs.Equal(rhs), "k=%d", k)
	}
}

// TestInverse_OfCompose checks the §8 testable property:
// (a.compose(b)).inverse() = b.inverse().compose(a.inverse()).
func TestInverse_OfCompose(t *testing.T) {
	a := permutation.MustNew([]int{1, 2, 0})
	b := permutation.MustNew([]int{0, 2, 1})

	lhs := a.Compose(b).Inverse()
	rhs := b.Inverse().Compose(a.Inverse())
	assert.True(t, lhs.Equal(rhs))
}

func TestCompare_LexOrder(t *testing.T) {
	id := permutation.Identity()
	p := permutation.MustNew([]int{1, 0})
	assert.True(t, id.Less(p))
	assert.Equal(t, 0, id.Compare(id))
	assert.Equal(t, 1, p.Compare(id))
}

func TestImages_RoundTrip(t *testing.T) {
	p := permutation.MustNew([]int{2, 0, 1})
	q, err := permutation.New(p.Images())
	require.NoError(t, err)
	assert.True(t, p.Equal(q))
}
