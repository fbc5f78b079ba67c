package causalgraph

import (
	"testing"

	"github.com/planlab/sascegar/task"
)

// chainTask builds a 3-variable task where var0 gates var1, and var1 gates
// var2: a straight-line causal chain with no cycles.
func chainTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "v0", Domain: 2, AxiomLayer: -1},
			{Name: "v1", Domain: 2, AxiomLayer: -1},
			{Name: "v2", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0, 0},
		Goal:    []task.Fact{{Var: 2, Value: 1}},
		Operators: []task.Operator{
			{
				Name:          "set1",
				Preconditions: []task.Fact{{Var: 0, Value: 0}},
				Effects:       []task.Effect{{Var: 1, PreValue: -1, Value: 1}},
				Cost:          1,
			},
			{
				Name:          "set2",
				Preconditions: []task.Fact{{Var: 1, Value: 1}},
				Effects:       []task.Effect{{Var: 2, PreValue: -1, Value: 1}},
				Cost:          1,
			},
		},
	}
}

func TestBuildProducesSortedDedupedSuccessors(t *testing.T) {
	g := Build(chainTask())
	if g.NumVars() != 3 {
		t.Fatalf("NumVars = %d, want 3", g.NumVars())
	}
	succ := g.Successors[1]
	if len(succ) != 1 || succ[0] != 2 {
		t.Fatalf("Successors[1] = %v, want [2]", succ)
	}
	for u, list := range g.Successors {
		for i, v := range list {
			if v == u {
				t.Fatalf("Successors[%d] contains a self-loop", u)
			}
			if i > 0 && list[i-1] >= v {
				t.Fatalf("Successors[%d] not strictly sorted: %v", u, list)
			}
		}
	}
}

func TestBuildPredecessorsIsReverseOfSuccessors(t *testing.T) {
	g := Build(chainTask())
	for u, succs := range g.Successors {
		for _, v := range succs {
			found := false
			for _, p := range g.Predecessors[v] {
				if p == u {
					found = true
				}
			}
			if !found {
				t.Fatalf("Predecessors[%d] missing %d despite Successors[%d] containing it", v, u, u)
			}
		}
	}
}

func TestBuildEffectEffectEdgeIsSymmetric(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", Domain: 2, AxiomLayer: -1},
			{Name: "b", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Operators: []task.Operator{
			{
				Name: "both",
				Effects: []task.Effect{
					{Var: 0, PreValue: -1, Value: 1},
					{Var: 1, PreValue: -1, Value: 1},
				},
				Cost: 1,
			},
		},
	}
	g := Build(tk)
	if len(g.EffToEff[0]) != 1 || g.EffToEff[0][0] != 1 {
		t.Fatalf("EffToEff[0] = %v, want [1]", g.EffToEff[0])
	}
	if len(g.EffToEff[1]) != 1 || g.EffToEff[1][0] != 0 {
		t.Fatalf("EffToEff[1] = %v, want [0]", g.EffToEff[1])
	}
}

func TestSCCSingleVariablesWhenAcyclic(t *testing.T) {
	g := Build(chainTask())
	sccs := SCC(g)
	if len(sccs) != 3 {
		t.Fatalf("SCC count = %d, want 3 for an acyclic chain", len(sccs))
	}
	for _, comp := range sccs {
		if len(comp) != 1 {
			t.Fatalf("component %v has size %d, want 1", comp, len(comp))
		}
	}
}

func TestSCCMergesCycle(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", Domain: 2, AxiomLayer: -1},
			{Name: "b", Domain: 2, AxiomLayer: -1},
		},
		Initial: []int{0, 0},
		Operators: []task.Operator{
			{Name: "ab", Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 1, PreValue: -1, Value: 1}}, Cost: 1},
			{Name: "ba", Preconditions: []task.Fact{{Var: 1, Value: 1}}, Effects: []task.Effect{{Var: 0, PreValue: -1, Value: 1}}, Cost: 1},
		},
	}
	g := Build(tk)
	sccs := SCC(g)
	if len(sccs) != 1 {
		t.Fatalf("SCC count = %d, want 1 for a two-variable cycle", len(sccs))
	}
	if len(sccs[0]) != 2 {
		t.Fatalf("component size = %d, want 2", len(sccs[0]))
	}
}
