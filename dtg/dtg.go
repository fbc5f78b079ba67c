// Package dtg builds per-variable domain-transition graphs: for each
// variable, a multigraph over its domain values where an edge value1->value2
// records that some operator (or axiom) can change the variable from value1
// to value2, together with the rest of that operator's conditions (the
// "context") needed for the transition to fire.
package dtg

import (
	"sort"

	"github.com/planlab/sascegar/task"
)

// Transition is one edge of a variable's domain-transition graph.
type Transition struct {
	To            int
	Context       []task.Fact // conditions on OTHER variables, sorted by Var
	OperatorIndex int         // index into the task's Operators (or len(Operators)+axiom index)
	Cost          int
}

// Graph is the domain-transition graph of a single variable: From[v] lists
// every transition leaving value v, deduplicated by dominance.
type Graph struct {
	Var    int
	Domain int
	From   [][]Transition
}

// Build constructs one domain-transition graph per variable of t.
func Build(t *task.Task) []*Graph {
	graphs := make([]*Graph, len(t.Variables))
	for v, variable := range t.Variables {
		graphs[v] = &Graph{Var: v, Domain: variable.Domain, From: make([][]Transition, variable.Domain)}
	}

	for opIdx, op := range t.Operators {
		addOperatorTransitions(graphs, op, opIdx)
	}
	for axIdx, ax := range t.Axioms {
		addAxiomTransitions(graphs, ax, len(t.Operators)+axIdx)
	}

	for _, g := range graphs {
		g.finalize()
	}
	return graphs
}

// addOperatorTransitions adds, for every effect of op that actually changes
// a value (or whose source value is unconstrained, PreValue==-1 meaning "any"),
// one transition per source value the effect could fire from.
func addOperatorTransitions(graphs []*Graph, op task.Operator, opIdx int) {
	for _, eff := range op.Effects {
		g := graphs[eff.Var]
		context := buildContext(op.Preconditions, eff.Condition, eff.Var)
		tr := Transition{To: eff.Value, Context: context, OperatorIndex: opIdx, Cost: op.Cost}

		// An effect condition on the effect's own variable restricts which
		// source value the transition may fire from, even with no declared
		// PreValue.
		ownCondition, hasOwnCondition := selfCondition(eff, eff.Var)

		if eff.PreValue != -1 {
			if eff.PreValue == eff.Value {
				continue // self-loop, no observable transition
			}
			g.From[eff.PreValue] = append(g.From[eff.PreValue], tr)
			continue
		}
		for from := 0; from < g.Domain; from++ {
			if from == eff.Value {
				continue
			}
			if hasOwnCondition && from != ownCondition {
				continue
			}
			g.From[from] = append(g.From[from], tr)
		}
	}
}

// selfCondition reports the value an effect's own effect-condition demands
// for var, if any.
func selfCondition(eff task.Effect, varID int) (int, bool) {
	for _, c := range eff.Condition {
		if c.Var == varID {
			return c.Value, true
		}
	}
	return 0, false
}

func addAxiomTransitions(graphs []*Graph, ax task.Axiom, axID int) {
	if ax.OldValue == ax.NewValue {
		return
	}
	g := graphs[ax.EffectVar]
	context := buildContext(nil, ax.Condition, ax.EffectVar)
	tr := Transition{To: ax.NewValue, Context: context, OperatorIndex: axID, Cost: 0}
	g.From[ax.OldValue] = append(g.From[ax.OldValue], tr)
}

// buildContext merges prevail conditions and effect conditions into one
// sorted, deduplicated fact list, excluding any condition on the effect's
// own variable (that constraint is already captured by From/To).
func buildContext(prevail, effectCond []task.Fact, effectVar int) []task.Fact {
	seen := map[int]int{}
	var out []task.Fact
	add := func(f task.Fact) {
		if f.Var == effectVar {
			return
		}
		if _, ok := seen[f.Var]; ok {
			return
		}
		seen[f.Var] = f.Value
		out = append(out, f)
	}
	for _, f := range prevail {
		add(f)
	}
	for _, f := range effectCond {
		add(f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}

// finalize sorts each From[v] bucket by (target, context size, cost) and
// prunes dominated transitions: A dominates B (B is dropped) when both
// target the same value, cost(A) <= cost(B), and A's context is a subset of
// B's context — A fires in every circumstance B would, at no higher cost.
// Mirrors domain_transition_graph.cc's sort-then-dominate pass.
func (g *Graph) finalize() {
	for from, list := range g.From {
		if len(list) == 0 {
			continue
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].To != list[j].To {
				return list[i].To < list[j].To
			}
			if len(list[i].Context) != len(list[j].Context) {
				return len(list[i].Context) < len(list[j].Context)
			}
			return list[i].Cost < list[j].Cost
		})
		var kept []Transition
		for _, cand := range list {
			dominated := false
			for _, k := range kept {
				if k.To == cand.To && k.Cost <= cand.Cost && isSubset(k.Context, cand.Context) {
					dominated = true
					break
				}
			}
			if !dominated {
				kept = append(kept, cand)
			}
		}
		g.From[from] = kept
	}
}

// isSubset reports whether every fact in a (sorted by Var) appears in b
// (also sorted by Var) with the same value.
func isSubset(a, b []task.Fact) bool {
	bi := 0
	for _, fa := range a {
		for bi < len(b) && b[bi].Var < fa.Var {
			bi++
		}
		if bi >= len(b) || b[bi].Var != fa.Var || b[bi].Value != fa.Value {
			return false
		}
	}
	return true
}
