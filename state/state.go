package state

import (
	"fmt"

	"github.com/planlab/sascegar/task"
)

// State is a concrete value assignment: one value per task variable,
// indexed by variable id. A State is a value type; callers that mutate
// Values should Clone first.
type State struct {
	Values []int
	Task   *task.Task
}

// New returns the initial state of t.
func New(t *task.Task) State {
	return State{Values: append([]int(nil), t.Initial...), Task: t}
}

// Clone returns an independent copy of s.
func (s State) Clone() State {
	return State{Values: append([]int(nil), s.Values...), Task: s.Task}
}

// Get returns the value of variable v.
func (s State) Get(v int) int {
	return s.Values[v]
}

// SatisfiesGoal reports whether s satisfies every fact in the task's goal.
func (s State) SatisfiesGoal() bool {
	return factsHold(s.Task.Goal, s.Values)
}

// Satisfies reports whether every fact in facts holds in s.
func (s State) Satisfies(facts []task.Fact) bool {
	return factsHold(facts, s.Values)
}

func factsHold(facts []task.Fact, values []int) bool {
	for _, f := range facts {
		if values[f.Var] != f.Value {
			return false
		}
	}
	return true
}

// Apply computes the successor state under op, including conditional
// effects and, if the task has axioms, stratified axiom re-evaluation to a
// fixed point. It returns ErrInapplicable if op's preconditions do not hold.
func (s State) Apply(op task.Operator) (State, error) {
	if !op.Applicable(s.Values) {
		return State{}, fmt.Errorf("%w: %s", ErrInapplicable, op.Name)
	}
	next := append([]int(nil), s.Values...)
	// Effects read the PRE-state and write simultaneously, so one effect's
	// write never influences another effect's EffectFires check.
	for _, e := range op.Effects {
		if e.EffectFires(s.Values) {
			next[e.Var] = e.Value
		}
	}
	if len(s.Task.Axioms) > 0 {
		evaluateAxioms(s.Task, next)
	}
	return State{Values: next, Task: s.Task}, nil
}

// ApplySimple is the non-axiom fast path used by contexts that explicitly
// do not support derived variables, such as the Cartesian abstraction's
// concrete flaw tracer. It returns ErrAxiomsUnsupported immediately if the
// task has any axiom, rather than silently ignoring derived-variable
// semantics.
func (s State) ApplySimple(op task.Operator) (State, error) {
	if len(s.Task.Axioms) > 0 {
		return State{}, ErrAxiomsUnsupported
	}
	return s.Apply(op)
}

// evaluateAxioms resets every derived variable to its default value, then
// evaluates axioms stratum by stratum (increasing AxiomLayer), iterating
// each stratum to a fixed point before moving to the next. This mirrors the
// original planner's axiom evaluator: within a stratum, axioms may fire in
// any order and are re-checked until none fires, since a stratum's axioms
// may read other derived variables of the same or a lower stratum.
func evaluateAxioms(t *task.Task, values []int) {
	maxLayer := -1
	for i, v := range t.Variables {
		if v.Derived() {
			values[i] = v.Default
			if v.AxiomLayer > maxLayer {
				maxLayer = v.AxiomLayer
			}
		}
	}
	for layer := 0; layer <= maxLayer; layer++ {
		for {
			changed := false
			for _, ax := range t.Axioms {
				if t.Variables[ax.EffectVar].AxiomLayer != layer {
					continue
				}
				if values[ax.EffectVar] == ax.OldValue && factsHold(ax.Condition, values) {
					values[ax.EffectVar] = ax.NewValue
					changed = true
				}
			}
			if !changed {
				break
			}
		}
	}
}
