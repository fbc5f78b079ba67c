// Package causalgraph builds the causal graph of a planning task and
// derives a pseudo-topological variable order from it.
//
// The causal graph summarizes which variables' values affect which others'
// transitions. It is built once per task (component 2 of the preprocessor
// pipeline) and consumed by the variable normalizer.
package causalgraph

import (
	"sort"

	"github.com/planlab/sascegar/task"
)

// Graph is the causal graph over a task's variable ids. Every adjacency
// list is sorted, duplicate-free, and never contains the source vertex
// itself.
type Graph struct {
	numVars int

	// PreToEff[u] lists v such that u is a precondition/effect-condition of
	// some operator whose effect variable is v.
	PreToEff [][]int
	// EffToPre is the reverse of PreToEff.
	EffToPre [][]int
	// EffToEff[u] lists v such that u and v are both effect variables of
	// the same operator (or axiom), u != v. The relation is symmetric.
	EffToEff [][]int

	// Successors is the merged, deduplicated union of PreToEff and EffToEff
	// edges from each vertex; it is the adjacency used for SCC analysis and
	// variable ordering.
	Successors [][]int
	// Predecessors is the reverse of Successors.
	Predecessors [][]int

	// Weight[u][v] is the number of operators/axioms witnessing the edge
	// u->v in Successors. Present only for edges that exist.
	Weight []map[int]int
}

// edgeSet is a per-source hash-set used while building, for expected
// linear-time deduplication.
type edgeSet map[int]map[int]bool

func newEdgeSet(n int) edgeSet {
	s := make(edgeSet, n)
	return s
}

func (s edgeSet) add(u, v int) {
	if u == v {
		return
	}
	m, ok := s[u]
	if !ok {
		m = make(map[int]bool)
		s[u] = m
	}
	m[v] = true
}

func (s edgeSet) materialize(n int) [][]int {
	out := make([][]int, n)
	for u, m := range s {
		list := make([]int, 0, len(m))
		for v := range m {
			list = append(list, v)
		}
		sort.Ints(list)
		out[u] = list
	}
	return out
}

// Build constructs the causal graph of t. It never fails: a well-formed
// task always yields a (possibly cyclic) causal graph.
func Build(t *task.Task) *Graph {
	n := t.NumVariables()
	preToEff := newEdgeSet(n)
	effToEff := newEdgeSet(n)
	weight := make([]map[int]int, n)
	for i := range weight {
		weight[i] = make(map[int]int)
	}
	bump := func(u, v int) {
		if u == v {
			return
		}
		weight[u][v]++
	}

	addOperatorEdges := func(op task.Operator) {
		for _, eff := range op.Effects {
			target := eff.Var
			// (i) prevail/precondition sources -> effect variable.
			for _, p := range op.Preconditions {
				preToEff.add(p.Var, target)
				bump(p.Var, target)
			}
			if eff.PreValue != -1 {
				// The effect's own precondition value on its own variable
				// never yields a self-loop; nothing to add.
			}
			for _, c := range eff.Condition {
				preToEff.add(c.Var, target)
				bump(c.Var, target)
			}
		}
		// (ii) pairwise effect-effect edges, both directions.
		for i := range op.Effects {
			for j := range op.Effects {
				if i == j {
					continue
				}
				u, v := op.Effects[i].Var, op.Effects[j].Var
				effToEff.add(u, v)
				bump(u, v)
			}
		}
	}

	for _, op := range t.Operators {
		addOperatorEdges(op)
	}
	for _, ax := range t.Axioms {
		op := ax.AsOperator()
		target := ax.EffectVar
		for _, c := range op.Effects[0].Condition {
			preToEff.add(c.Var, target)
			bump(c.Var, target)
		}
	}

	g := &Graph{
		numVars: n,
		PreToEff: preToEff.materialize(n),
		EffToEff: effToEff.materialize(n),
		Weight:   weight,
	}
	g.EffToPre = reverse(g.PreToEff, n)

	// Successors = union(PreToEff, EffToEff).
	union := newEdgeSet(n)
	for u, list := range g.PreToEff {
		for _, v := range list {
			union.add(u, v)
		}
	}
	for u, list := range g.EffToEff {
		for _, v := range list {
			union.add(u, v)
		}
	}
	g.Successors = union.materialize(n)
	g.Predecessors = reverse(g.Successors, n)
	return g
}

func reverse(adj [][]int, n int) [][]int {
	s := newEdgeSet(n)
	for u, list := range adj {
		for _, v := range list {
			s.add(v, u)
		}
	}
	return s.materialize(n)
}

// NumVars returns the number of variables the graph was built over.
func (g *Graph) NumVars() int {
	return g.numVars
}
