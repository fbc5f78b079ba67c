package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planlab/sascegar/causalgraph"
	"github.com/planlab/sascegar/task"
)

func threeVarTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "v0", Domain: 2, AxiomLayer: -1},
			{Name: "v1", Domain: 2, AxiomLayer: -1},
			{Name: "irrelevant", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0, 0},
		Goal:    []task.Fact{{Var: 1, Value: 1}},
		Operators: []task.Operator{
			{Name: "set1", Effects: []task.Effect{{Var: 1, PreValue: -1, Value: 1}}, Cost: 1},
			{Name: "noop2", Effects: []task.Effect{{Var: 2, PreValue: -1, Value: 1}}, Cost: 1},
		},
	}
}

func TestApplyReindexesAndDropsPrunedVariable(t *testing.T) {
	tk := threeVarTask()
	g := causalgraph.Build(tk)
	ord := causalgraph.Order(g, tk.Goal, causalgraph.DefaultOptions())

	res, err := Apply(tk, ord)
	require.NoError(t, err)

	assert.Len(t, res.Task.Variables, len(ord.Order))
	assert.Equal(t, -1, res.Old2New[2], "variable 2 has no causal path to the goal and must be pruned")

	for _, op := range res.Task.Operators {
		for _, eff := range op.Effects {
			assert.Less(t, eff.Var, len(res.Task.Variables))
		}
	}
	assert.Len(t, res.Task.Operators, 1, "the operator writing only the pruned variable must be dropped")
}

func TestApplyRemapsGoalAndInitial(t *testing.T) {
	tk := threeVarTask()
	g := causalgraph.Build(tk)
	ord := causalgraph.Order(g, tk.Goal, causalgraph.DefaultOptions())

	res, err := Apply(tk, ord)
	require.NoError(t, err)
	require.Len(t, res.Task.Goal, 1)

	newGoalVar := res.Task.Goal[0].Var
	oldGoalVar := 1
	assert.Equal(t, res.Old2New[oldGoalVar], newGoalVar)
	assert.Equal(t, tk.Initial[oldGoalVar], res.Task.Initial[newGoalVar])
}

func TestApplyErrorsWhenGoalVariableWouldBePruned(t *testing.T) {
	tk := threeVarTask()
	// Force a goal on the variable nothing causally reaches it through.
	tk.Goal = []task.Fact{{Var: 2, Value: 0}}
	g := causalgraph.Build(tk)
	ord := causalgraph.Order(g, tk.Goal, causalgraph.Options{PruneUnreachable: true})
	// Manually simulate an ordering that still prunes variable 2, as if
	// built against a mismatched goal (the documented caller contract
	// violation Apply must still surface as an error rather than panic).
	ord.Necessary[2] = false
	ord.Level[2] = -1
	var filtered []int
	for _, v := range ord.Order {
		if v != 2 {
			filtered = append(filtered, v)
		}
	}
	ord.Order = filtered

	_, err := Apply(tk, ord)
	assert.ErrorIs(t, err, ErrGoalUnreachableOnDrop)
}

func TestApplyDropsUnderpopulatedMutexGroup(t *testing.T) {
	tk := threeVarTask()
	tk.Mutexes = []task.MutexGroup{
		{Facts: []task.Fact{{Var: 1, Value: 0}, {Var: 2, Value: 0}}},
	}
	g := causalgraph.Build(tk)
	ord := causalgraph.Order(g, tk.Goal, causalgraph.DefaultOptions())

	res, err := Apply(tk, ord)
	require.NoError(t, err)
	assert.Empty(t, res.Task.Mutexes, "a mutex losing one of its two facts to pruning carries no information")
}
