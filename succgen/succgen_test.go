package succgen

import (
	"sort"
	"testing"

	"github.com/planlab/sascegar/task"
)

func twoVarTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "key", Domain: 2, AxiomLayer: -1},
			{Name: "counter", Domain: 3, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Goal:    []task.Fact{{Var: 1, Value: 2}},
		Operators: []task.Operator{
			{Name: "unlock", Effects: []task.Effect{{Var: 0, PreValue: 0, Value: 1}}, Cost: 1},
			{Name: "inc01", Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, PreValue: 0, Value: 1}}, Cost: 1},
			{Name: "inc12", Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, PreValue: 1, Value: 2}}, Cost: 1},
			{Name: "free", Effects: []task.Effect{{Var: 1, PreValue: -1, Value: 0}}, Cost: 1},
		},
	}
}

func applicableBruteForce(t *task.Task, state []int) []int {
	var out []int
	for i, op := range t.Operators {
		if op.Applicable(state) {
			out = append(out, i)
		}
	}
	return out
}

func TestApplicableOperatorsMatchesBruteForce(t *testing.T) {
	tk := twoVarTask()
	levelOrder := []int{0, 1}
	g := Build(tk, levelOrder)

	for _, key := range []int{0, 1} {
		for _, counter := range []int{0, 1, 2} {
			state := []int{key, counter}
			got := ApplicableOperators(g, state)
			want := applicableBruteForce(tk, state)
			sort.Ints(got)
			sort.Ints(want)
			if !equalInts(got, want) {
				t.Fatalf("state %v: got %v, want %v", state, got, want)
			}
		}
	}
}

func TestApplicableOperatorsEachOperatorExactlyOnce(t *testing.T) {
	tk := twoVarTask()
	g := Build(tk, []int{0, 1})
	state := []int{1, 1}
	out := ApplicableOperators(g, state)
	seen := map[int]int{}
	for _, op := range out {
		seen[op]++
	}
	for op, n := range seen {
		if n != 1 {
			t.Fatalf("operator %d appears %d times, want exactly 1", op, n)
		}
	}
}

func TestBuildOnNoOperatorsReturnsEmpty(t *testing.T) {
	tk := &task.Task{Variables: []task.Variable{{Name: "v", Domain: 2, AxiomLayer: -1}}, Initial: []int{0}}
	g := Build(tk, []int{0})
	if _, ok := g.(Empty); !ok {
		t.Fatalf("Build with no operators = %T, want Empty", g)
	}
	if out := ApplicableOperators(g, []int{0}); len(out) != 0 {
		t.Fatalf("ApplicableOperators on Empty = %v, want none", out)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
