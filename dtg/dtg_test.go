package dtg

import (
	"testing"

	"github.com/planlab/sascegar/task"
)

// gatedTask: var0 (key) domain 2 gates two transitions of var1 (counter)
// domain 3: 0->1 requires key=1, 1->2 requires key=0.
func gatedTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "key", Domain: 2, AxiomLayer: -1},
			{Name: "counter", Domain: 3, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Goal:    []task.Fact{{Var: 1, Value: 2}},
		Operators: []task.Operator{
			{
				Name:          "inc01",
				Preconditions: []task.Fact{{Var: 0, Value: 1}},
				Effects:       []task.Effect{{Var: 1, PreValue: 0, Value: 1}},
				Cost:          1,
			},
			{
				Name:          "inc12",
				Preconditions: []task.Fact{{Var: 0, Value: 0}},
				Effects:       []task.Effect{{Var: 1, PreValue: 1, Value: 2}},
				Cost:          3,
			},
		},
	}
}

func TestBuildReturnsOneGraphPerVariable(t *testing.T) {
	graphs := Build(gatedTask())
	if len(graphs) != 2 {
		t.Fatalf("len(graphs) = %d, want 2", len(graphs))
	}
	if graphs[1].Var != 1 || graphs[1].Domain != 3 {
		t.Fatalf("graphs[1] = %+v, want Var=1 Domain=3", graphs[1])
	}
}

func TestBuildRecordsContextAndCost(t *testing.T) {
	graphs := Build(gatedTask())
	counter := graphs[1]

	from0 := counter.From[0]
	if len(from0) != 1 {
		t.Fatalf("From[0] = %v, want exactly one transition", from0)
	}
	tr := from0[0]
	if tr.To != 1 || tr.Cost != 1 || tr.OperatorIndex != 0 {
		t.Fatalf("From[0][0] = %+v, want To=1 Cost=1 OperatorIndex=0", tr)
	}
	if len(tr.Context) != 1 || tr.Context[0] != (task.Fact{Var: 0, Value: 1}) {
		t.Fatalf("From[0][0].Context = %v, want [{0 1}]", tr.Context)
	}

	from1 := counter.From[1]
	if len(from1) != 1 || from1[0].To != 2 || from1[0].Cost != 3 {
		t.Fatalf("From[1] = %v, want a single transition to 2 at cost 3", from1)
	}
}

func TestBuildSkipsSelfLoopTransitions(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{{Name: "v", Domain: 2, AxiomLayer: -1}},
		Initial:   []int{0},
		Operators: []task.Operator{
			{Name: "noop", Effects: []task.Effect{{Var: 0, PreValue: 0, Value: 0}}, Cost: 1},
		},
	}
	graphs := Build(tk)
	if len(graphs[0].From[0]) != 0 {
		t.Fatalf("From[0] = %v, want no transitions for a same-value effect", graphs[0].From[0])
	}
}

func TestFinalizeDropsDominatedTransitions(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "v", Domain: 2, AxiomLayer: -1},
			{Name: "ctx", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Operators: []task.Operator{
			// Cheap, unconditional: 0 -> 1 at cost 1, no context.
			{Name: "cheap", Effects: []task.Effect{{Var: 0, PreValue: 0, Value: 1}}, Cost: 1},
			// Expensive, gated by a context fact: dominated by "cheap".
			{
				Name:          "expensive",
				Preconditions: []task.Fact{{Var: 1, Value: 1}},
				Effects:       []task.Effect{{Var: 0, PreValue: 0, Value: 1}},
				Cost:          5,
			},
		},
	}
	graphs := Build(tk)
	from0 := graphs[0].From[0]
	if len(from0) != 1 {
		t.Fatalf("From[0] = %v, want the dominated expensive transition dropped", from0)
	}
	if from0[0].Cost != 1 || len(from0[0].Context) != 0 {
		t.Fatalf("surviving transition = %+v, want the cheap, context-free one", from0[0])
	}
}
