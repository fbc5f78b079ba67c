package normalize

import (
	"fmt"

	"github.com/planlab/sascegar/causalgraph"
	"github.com/planlab/sascegar/task"
)

// Result is a normalized task: Task has its variables reindexed 0..k-1 in
// level order, with every operator/axiom/mutex projected onto the retained
// set. Old2New maps an original variable id to its new id, or -1 if the
// variable was pruned.
type Result struct {
	Task    *task.Task
	Old2New []int
}

// Apply projects t onto the variables ord retains, in level order. The
// caller must ensure ord was computed from t's own causal graph; passing a
// mismatched Ordering produces undefined results, not a detected error.
func Apply(t *task.Task, ord causalgraph.Ordering) (*Result, error) {
	old2new := make([]int, len(t.Variables))
	for i := range old2new {
		old2new[i] = -1
	}
	for newID, oldID := range ord.Order {
		old2new[oldID] = newID
	}

	for _, f := range t.Goal {
		if old2new[f.Var] == -1 {
			return nil, fmt.Errorf("%w: variable %d", ErrGoalUnreachableOnDrop, f.Var)
		}
	}

	out := &task.Task{
		UseActionCosts: t.UseActionCosts,
	}

	out.Variables = make([]task.Variable, len(ord.Order))
	out.Initial = make([]int, len(ord.Order))
	for newID, oldID := range ord.Order {
		v := t.Variables[oldID]
		v.Level = newID
		out.Variables[newID] = v
		out.Initial[newID] = t.Initial[oldID]
	}

	out.Goal = remapFacts(t.Goal, old2new)

	for _, mg := range t.Mutexes {
		if nf, ok := projectMutex(mg, old2new); ok {
			out.Mutexes = append(out.Mutexes, nf)
		}
	}

	for _, op := range t.Operators {
		if nop, ok := projectOperator(op, old2new); ok {
			out.Operators = append(out.Operators, nop)
		}
	}

	for _, ax := range t.Axioms {
		if nax, ok := projectAxiom(ax, old2new); ok {
			out.Axioms = append(out.Axioms, nax)
		}
	}

	return &Result{Task: out, Old2New: old2new}, nil
}

// remapFacts reindexes facts whose variable is retained; facts on a pruned
// variable are dropped (the normalizer's caller-invariant: such facts were
// already satisfied in the initial state, or they would not have been
// pruned as unreachable from the goal).
func remapFacts(facts []task.Fact, old2new []int) []task.Fact {
	var out []task.Fact
	for _, f := range facts {
		if nv := old2new[f.Var]; nv != -1 {
			out = append(out, task.Fact{Var: nv, Value: f.Value})
		}
	}
	return out
}

// projectMutex drops a mutex group entirely if fewer than two of its facts
// survive projection: a mutex constraint over zero or one retained variable
// carries no information.
func projectMutex(mg task.MutexGroup, old2new []int) (task.MutexGroup, bool) {
	facts := remapFacts(mg.Facts, old2new)
	if len(facts) < 2 {
		return task.MutexGroup{}, false
	}
	return task.MutexGroup{Facts: facts}, true
}

// projectOperator drops the operator if its effect variable list becomes
// empty after projection (an operator with no retained effect does nothing
// observable); prevail conditions and effect conditions on pruned variables
// are simply dropped, since a pruned variable's value can never change.
func projectOperator(op task.Operator, old2new []int) (task.Operator, bool) {
	nop := task.Operator{Name: op.Name, Cost: op.Cost}
	nop.Preconditions = remapFacts(op.Preconditions, old2new)
	for _, e := range op.Effects {
		nv := old2new[e.Var]
		if nv == -1 {
			continue
		}
		ne := task.Effect{
			Var:       nv,
			Value:     e.Value,
			Condition: remapFacts(e.Condition, old2new),
		}
		if e.PreValue != -1 {
			ne.PreValue = e.PreValue
		} else {
			ne.PreValue = -1
		}
		nop.Effects = append(nop.Effects, ne)
	}
	if len(nop.Effects) == 0 {
		return task.Operator{}, false
	}
	return nop, true
}

// projectAxiom drops the axiom if its own effect variable was pruned (an
// axiom computing a value nothing downstream reads is dead code).
func projectAxiom(ax task.Axiom, old2new []int) (task.Axiom, bool) {
	nv := old2new[ax.EffectVar]
	if nv == -1 {
		return task.Axiom{}, false
	}
	return task.Axiom{
		EffectVar: nv,
		OldValue:  ax.OldValue,
		NewValue:  ax.NewValue,
		Condition: remapFacts(ax.Condition, old2new),
	}, true
}
