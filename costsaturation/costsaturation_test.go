package costsaturation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planlab/sascegar/cegar"
	"github.com/planlab/sascegar/dtg"
	"github.com/planlab/sascegar/splitselect"
	"github.com/planlab/sascegar/task"
)

// twoGoalTask has two independent goal facts over disjoint variables, each
// reachable by its own one-step operator: a natural fit for two
// cost-saturation components.
func twoGoalTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "a", Domain: 2, AxiomLayer: -1},
			{Name: "b", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Goal:    []task.Fact{{Var: 0, Value: 1}, {Var: 1, Value: 1}},
		Operators: []task.Operator{
			{Name: "seta", Effects: []task.Effect{{Var: 0, PreValue: 0, Value: 1}}, Cost: 2},
			{Name: "setb", Effects: []task.Effect{{Var: 1, PreValue: 0, Value: 1}}, Cost: 3},
		},
	}
}

func TestRunRejectsEmptySpecs(t *testing.T) {
	tk := twoGoalTask()
	_, err := Run(tk, nil, Options{DomainSizes: []int{2, 2}, Policy: splitselect.MinUnwanted})
	assert.ErrorIs(t, err, ErrNoGenerators)
}

func TestRunCombinesComponentsAdditively(t *testing.T) {
	tk := twoGoalTask()
	specs := []SubtaskSpec{
		{Goal: []task.Fact{{Var: 0, Value: 1}}},
		{Goal: []task.Fact{{Var: 1, Value: 1}}},
	}
	h, err := Run(tk, specs, Options{
		DomainSizes: []int{2, 2},
		DTGs:        dtg.Build(tk),
		Policy:      splitselect.MinUnwanted,
	})
	require.NoError(t, err)

	sum, deadEnd := h.Evaluate(tk.Initial)
	require.False(t, deadEnd)
	assert.Equal(t, 5, sum, "seta costs 2 and setb costs 3, and cost saturation must not double-charge a disjoint operator across components")
}

func TestRunDetectsDeadEndAndStopsEarly(t *testing.T) {
	tk := twoGoalTask()
	tk.Operators = tk.Operators[:1] // setb is gone: goal b=1 is now unreachable
	specs := []SubtaskSpec{
		{Goal: []task.Fact{{Var: 0, Value: 1}}},
		{Goal: []task.Fact{{Var: 1, Value: 1}}},
	}
	h, err := Run(tk, specs, Options{DomainSizes: []int{2, 2}, Policy: splitselect.MinUnwanted})
	require.NoError(t, err)

	_, deadEnd := h.Evaluate(tk.Initial)
	assert.True(t, deadEnd)
}

func TestSubtractSaturatedConventions(t *testing.T) {
	assert.Equal(t, Inf, subtractSaturated(Inf, 3))
	assert.Equal(t, Inf, subtractSaturated(5, negInf))
	assert.Equal(t, 2, subtractSaturated(5, 3))
}

func TestSaturatedCostsClampsToRemaining(t *testing.T) {
	tk := twoGoalTask()
	res, err := cegar.Run(cegar.Subtask{
		Task:        tk,
		DomainSizes: []int{2, 2},
		Goal:        []task.Fact{{Var: 0, Value: 1}},
		CostOf:      func(opIdx int) int { return tk.Operators[opIdx].Cost },
	}, cegar.Options{Policy: splitselect.MinUnwanted})
	require.NoError(t, err)

	// seta's transition drops h by its full cost 2; a remaining budget of 1
	// caps its saturated cost at 1.
	sat := saturatedCosts(res, len(tk.Operators), []int{1, 3})
	assert.Equal(t, 1, sat[0])
}
