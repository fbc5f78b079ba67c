package cartesian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planlab/sascegar/task"
)

func TestNewFullCoversWholeDomain(t *testing.T) {
	c := NewFull([]int{3, 2})
	assert.Equal(t, 3, c.Count(0))
	assert.Equal(t, 2, c.Count(1))
	assert.True(t, c.Test(0, 2))
}

func TestSplitDomainPartitionsNonOverlapping(t *testing.T) {
	c := NewFull([]int{5})
	v1, v2, err := c.SplitDomain(0, []int{1, 3})
	require.NoError(t, err)

	assert.Equal(t, 3, v1.Count(0))
	assert.Equal(t, 2, v2.Count(0))
	for _, val := range []int{1, 3} {
		assert.True(t, v2.Test(0, val))
		assert.False(t, v1.Test(0, val))
	}
	for _, val := range []int{0, 2, 4} {
		assert.True(t, v1.Test(0, val))
		assert.False(t, v2.Test(0, val))
	}
}

func TestSplitDomainRejectsEmptyOrFullWanted(t *testing.T) {
	c := NewFull([]int{3})
	_, _, err := c.SplitDomain(0, nil)
	assert.ErrorIs(t, err, ErrEmptyWanted)

	_, _, err = c.SplitDomain(0, []int{0, 1, 2})
	assert.ErrorIs(t, err, ErrEmptyWanted)
}

func TestSplitDomainRejectsValueOutsideCurrentSubset(t *testing.T) {
	c := NewFull([]int{3})
	v1, _, _ := c.SplitDomain(0, []int{0})
	_, _, err := v1.SplitDomain(0, []int{0})
	assert.Error(t, err, "0 was already removed from v1's subset by the first split")
}

func TestIsSupersetOf(t *testing.T) {
	full := NewFull([]int{4})
	v1, v2, err := full.SplitDomain(0, []int{0, 1})
	require.NoError(t, err)
	assert.True(t, full.IsSupersetOf(v1))
	assert.True(t, full.IsSupersetOf(v2))
	assert.False(t, v1.IsSupersetOf(v2))
}

func TestIntersectsAndIntersectValues(t *testing.T) {
	a := NewFull([]int{4})
	a.SetSingle(0, 1, 4)
	b := NewFull([]int{4})
	b.SetSingle(0, 2, 4)
	assert.False(t, a.Intersects(b, 0))

	b.Add(0, 1)
	assert.True(t, a.Intersects(b, 0))
	assert.Equal(t, []int{1}, a.IntersectValues(b, 0, 4))
}

func TestIncludesStateAndIncludesFacts(t *testing.T) {
	c := NewFull([]int{2, 3})
	c.SetSingle(0, 1, 2)
	assert.True(t, c.IncludesState([]int{1, 2}))
	assert.False(t, c.IncludesState([]int{0, 2}))
	assert.True(t, c.IncludesFacts([]task.Fact{{Var: 0, Value: 1}}))
	assert.False(t, c.IncludesFacts([]task.Fact{{Var: 0, Value: 0}}))
}

func TestRegressWidensEffectsAndNarrowsPreconditions(t *testing.T) {
	domainSizes := []int{3, 3}
	c := NewFull(domainSizes)
	c.SetSingle(1, 2, 3) // only interested in post-state var1=2

	op := task.Operator{
		Preconditions: []task.Fact{{Var: 0, Value: 1}},
		Effects:       []task.Effect{{Var: 1, PreValue: -1, Value: 2}},
	}
	r := c.Regress(op, domainSizes)

	assert.Equal(t, 3, r.Count(1), "effect variable's subset widens to its full domain in the pre-image")
	assert.Equal(t, 1, r.Count(0))
	assert.True(t, r.Test(0, 1))
}

func TestRegressNarrowsEffectOwnPreValue(t *testing.T) {
	domainSizes := []int{3}
	c := NewFull(domainSizes)
	op := task.Operator{Effects: []task.Effect{{Var: 0, PreValue: 1, Value: 2}}}
	r := c.Regress(op, domainSizes)
	assert.Equal(t, 1, r.Count(0))
	assert.True(t, r.Test(0, 1))
}
