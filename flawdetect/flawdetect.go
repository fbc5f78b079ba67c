// Package flawdetect traces an abstract plan through the concrete task to
// find the first point where abstract and concrete semantics diverge: an
// operator the abstract plan assumed applicable that is not, or a concrete
// successor that lands outside the abstract plan's next state.
package flawdetect

import (
	"github.com/planlab/sascegar/abstractsearch"
	"github.com/planlab/sascegar/cartesian"
	"github.com/planlab/sascegar/state"
	"github.com/planlab/sascegar/task"
)

// Flaw records where the concrete execution of an abstract plan first
// diverges: the concrete state reached, the abstract state current at that
// point, and the Cartesian set the next refinement should carve the
// divergence out of.
type Flaw struct {
	ConcreteState   state.State
	AbstractStateID int
	Desired         cartesian.CartesianSet
}

// Detect walks plan from t's initial concrete state. It returns (nil, true,
// nil) if the plan is a valid concrete solution. It returns (flaw, false,
// nil) at the first divergence. domainSizes gives each variable's domain
// size, needed to build the full Cartesian sets a Regress starts from.
func Detect(t *task.Task, a *cartesian.Abstraction, plan []abstractsearch.Step, domainSizes []int) (*Flaw, bool, error) {
	cur := state.New(t)

	for _, step := range plan {
		op := t.Operators[step.Op]

		if !op.Applicable(cur.Values) {
			desired := cartesian.NewFull(domainSizes).Regress(op, domainSizes)
			return &Flaw{ConcreteState: cur, AbstractStateID: step.From, Desired: desired}, false, nil
		}

		next, err := cur.ApplySimple(op)
		if err != nil {
			return nil, false, err
		}

		target := a.State(step.To)
		if !target.IncludesState(next) {
			desired := target.Set.Regress(op, domainSizes)
			return &Flaw{ConcreteState: cur, AbstractStateID: step.From, Desired: desired}, false, nil
		}

		cur = next
	}

	if cur.SatisfiesGoal() {
		return nil, true, nil
	}

	desired := goalCartesian(t, domainSizes)
	return &Flaw{ConcreteState: cur, AbstractStateID: a.StateOf(cur.Values), Desired: desired}, false, nil
}

// goalCartesian returns the full Cartesian set restricted to t's goal
// facts: the desired set a final-state flaw is raised against.
func goalCartesian(t *task.Task, domainSizes []int) cartesian.CartesianSet {
	c := cartesian.NewFull(domainSizes)
	for _, f := range t.Goal {
		c.SetSingle(f.Var, f.Value, domainSizes[f.Var])
	}
	return c
}
