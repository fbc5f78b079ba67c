package splitselect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planlab/sascegar/task"
)

func TestBuildHAddChainOfCosts(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{{Name: "v", Domain: 4, AxiomLayer: -1}},
		Initial:   []int{0},
		Operators: []task.Operator{
			{Name: "0to1", Effects: []task.Effect{{Var: 0, PreValue: 0, Value: 1}}, Cost: 2},
			{Name: "1to2", Effects: []task.Effect{{Var: 0, PreValue: 1, Value: 2}}, Cost: 3},
			{Name: "2to3", Effects: []task.Effect{{Var: 0, PreValue: 2, Value: 3}}, Cost: 5},
		},
	}
	costOf := func(opIdx int) int { return tk.Operators[opIdx].Cost }
	hadd := Build(tk, []int{4}, tk.Initial, costOf)

	assert.Equal(t, 0, hadd.Value(0, 0))
	assert.Equal(t, 2, hadd.Value(0, 1))
	assert.Equal(t, 5, hadd.Value(0, 2))
	assert.Equal(t, 10, hadd.Value(0, 3))
}

func TestBuildHAddUnreachableFactIsInf(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{{Name: "v", Domain: 2, AxiomLayer: -1}},
		Initial:   []int{0},
		Operators: []task.Operator{
			{Name: "needs1", Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 0, PreValue: -1, Value: 0}}, Cost: 1},
		},
	}
	hadd := Build(tk, []int{2}, tk.Initial, func(int) int { return 1 })
	assert.Equal(t, Inf, hadd.Value(0, 1))
}

func TestBuildHAddAdditiveAcrossTwoVariables(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", Domain: 2, AxiomLayer: -1},
			{Name: "b", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Operators: []task.Operator{
			{Name: "seta", Effects: []task.Effect{{Var: 0, PreValue: -1, Value: 1}}, Cost: 3},
			{Name: "setb", Effects: []task.Effect{{Var: 1, PreValue: -1, Value: 1}}, Cost: 4},
			{
				Name:          "needsBoth",
				Preconditions: []task.Fact{{Var: 0, Value: 1}, {Var: 1, Value: 1}},
				Effects:       []task.Effect{{Var: 1, PreValue: -1, Value: 0}},
				Cost:          1,
			},
		},
	}
	hadd := Build(tk, []int{2, 2}, tk.Initial, func(opIdx int) int { return tk.Operators[opIdx].Cost })
	// needsBoth's own effect writes var1=0, which is already true initially
	// (h=0), so it is not itself interesting; but its preconditions sum
	// additively: h(a=1) + h(b=1) = 3 + 4 = 7, reachable via its own
	// achiever cost function path is not directly observable here, so
	// assert the two component facts independently.
	assert.Equal(t, 3, hadd.Value(0, 1))
	assert.Equal(t, 4, hadd.Value(1, 1))
}
