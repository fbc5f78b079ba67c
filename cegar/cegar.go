// Package cegar drives counterexample-guided abstraction refinement: it
// alternates abstract A* search, flaw detection, and split selection to
// build a Cartesian abstraction (and its goal-distance heuristic) for one
// subtask, subject to a resource budget.
package cegar

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/planlab/sascegar/abstractsearch"
	"github.com/planlab/sascegar/cartesian"
	"github.com/planlab/sascegar/dtg"
	"github.com/planlab/sascegar/flawdetect"
	"github.com/planlab/sascegar/internal/budget"
	"github.com/planlab/sascegar/splitselect"
	"github.com/planlab/sascegar/task"
)

// Subtask is one abstraction target: the full task's variables, an
// alternate goal (a cost-saturation component's per-goal-fact or per-
// landmark subgoal), and a per-operator cost function (the shared
// remaining-cost vector in cost saturation, or the task's own costs for a
// standalone run).
type Subtask struct {
	Task        *task.Task
	DomainSizes []int
	Goal        []task.Fact
	CostOf      func(opIdx int) int
	// DTGs, if non-nil, enables an initial single-goal-fact refinement:
	// values of the goal variable from which the goal value is unreachable
	// are split off in one shot before the main loop starts.
	DTGs []*dtg.Graph
}

// Options configures one CEGAR run.
type Options struct {
	Budget *budget.Budget
	Policy splitselect.Policy
	HAdd   *splitselect.HAdd // required only by the HADD split policies
	Rng    *rand.Rand        // required only by the Random split policy
	Logger zerolog.Logger
}

// Result is the abstraction and its cached goal-distance estimates built
// for one subtask.
type Result struct {
	Abstraction *cartesian.Abstraction
	Driver      *abstractsearch.Driver
}

// Run builds a Cartesian abstraction for sub, refining until the budget is
// exhausted, the abstract search finds no solution (an infinite-heuristic
// subtask), or a concrete plan is found. It never returns an error for a
// legitimately unsolvable or budget-exhausted subtask: those are normal
// outcomes reflected in the returned Result's driver h-values, not errors.
func Run(sub Subtask, opts Options) (*Result, error) {
	if len(sub.Task.Axioms) > 0 {
		return nil, ErrAxiomsNotSupported
	}
	for _, op := range sub.Task.Operators {
		for _, eff := range op.Effects {
			if len(eff.Condition) > 0 {
				return nil, ErrConditionalEffectsNotSupported
			}
		}
	}

	subTask := *sub.Task
	subTask.Goal = sub.Goal

	a := cartesian.NewAbstraction(&subTask, sub.DomainSizes)
	driver := abstractsearch.NewDriver()

	if len(sub.Goal) == 1 && sub.DTGs != nil {
		initialSplit(a, sub.DTGs, sub.Goal[0])
	}

	for {
		if opts.Budget != nil && opts.Budget.Exceeded() {
			opts.Logger.Debug().Msg("cegar: budget exceeded, stopping refinement")
			break
		}

		plan, _, err := driver.Search(a.Transitions, a.InitStateID, a.GoalStateID, sub.CostOf)
		if err != nil {
			opts.Logger.Debug().Msg("cegar: subtask proven unsolvable from current abstraction")
			break
		}

		flaw, solved, err := flawdetect.Detect(&subTask, a, plan, sub.DomainSizes)
		if err != nil {
			return nil, err
		}
		if solved {
			opts.Logger.Debug().Msg("cegar: concrete plan found, accepting")
			break
		}

		abstractState := a.State(flaw.AbstractStateID)
		cands := splitselect.Candidates(flaw, abstractState, sub.DomainSizes)
		if len(cands) == 0 {
			return nil, ErrNoCandidateSplit
		}
		chosen := splitselect.Select(cands, opts.Policy, abstractState, sub.DomainSizes, opts.HAdd, opts.Rng)

		if _, _, err := a.Refine(flaw.AbstractStateID, chosen.Var, chosen.Wanted); err != nil {
			return nil, err
		}
		if opts.Budget != nil {
			opts.Budget.NoteState()
			opts.Budget.NoteNonLoopTransitions(a.Transitions.NonLoopCount())
		}
		opts.Logger.Debug().Int("var", chosen.Var).Int("states", len(a.States)).Msg("cegar: refined")
	}

	return &Result{Abstraction: a, Driver: driver}, nil
}

// initialSplit separates, in one split, the values of the goal variable
// from which the goal value is unreachable (ignoring every other
// variable's context, per the DTG's own abstraction) from those that can
// still reach it.
func initialSplit(a *cartesian.Abstraction, dtgs []*dtg.Graph, goal task.Fact) {
	g := dtgs[goal.Var]
	reach := reachableToValue(g, goal.Value)
	var unreachable []int
	for v := 0; v < g.Domain; v++ {
		if !reach[v] {
			unreachable = append(unreachable, v)
		}
	}
	if len(unreachable) == 0 || len(unreachable) == g.Domain {
		return
	}
	_, _, _ = a.Refine(a.InitStateID, goal.Var, unreachable)
}

// reachableToValue runs a backward fixpoint over g's transitions, returning
// the set of source values from which target is reachable via some chain of
// transitions (contexts on other variables are ignored, matching a
// Cartesian abstraction's optimistic relaxation).
func reachableToValue(g *dtg.Graph, target int) []bool {
	reach := make([]bool, g.Domain)
	reach[target] = true
	for changed := true; changed; {
		changed = false
		for from, transitions := range g.From {
			if reach[from] {
				continue
			}
			for _, tr := range transitions {
				if reach[tr.To] {
					reach[from] = true
					changed = true
					break
				}
			}
		}
	}
	return reach
}
