// Package costsaturation combines several Cartesian CEGAR abstractions into
// one admissible heuristic by peeling off, per operator, the minimum cost
// each abstraction actually needed ("saturated cost") from a shared
// remaining-cost budget before the next abstraction is built.
package costsaturation

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/planlab/sascegar/abstractsearch"
	"github.com/planlab/sascegar/cartesian"
	"github.com/planlab/sascegar/cegar"
	"github.com/planlab/sascegar/dtg"
	"github.com/planlab/sascegar/internal/budget"
	"github.com/planlab/sascegar/splitselect"
	"github.com/planlab/sascegar/task"
)

// Inf mirrors abstractsearch.Inf: any cost or h-value at or above this is
// treated as infinite.
const Inf = abstractsearch.Inf

// negInf is the "unused, entirely free" saturated-cost sentinel: if no
// transition uses an operator, its saturated cost is -INF.
const negInf = -Inf

// SubtaskSpec describes one component to fold into the additive heuristic:
// a goal (the subtask's partial assignment) over the full task's variables.
type SubtaskSpec struct {
	Goal []task.Fact
}

// Options configures the component CEGAR runs and the overall stop
// conditions.
type Options struct {
	DomainSizes    []int
	DTGs           []*dtg.Graph
	Policy         splitselect.Policy
	HAdd           *splitselect.HAdd
	Rng            *rand.Rand // required only by the Random split policy
	MaxStates      int
	MaxTransitions int
	TimeLimit      time.Duration
	CanaryBytes    int
	Logger         zerolog.Logger
}

// component is one retained abstraction plus the search driver holding its
// cached goal-distance estimates.
type component struct {
	abstraction *cartesian.Abstraction
	driver      *abstractsearch.Driver
}

// Heuristic is the additive combination of every retained component: its
// value at a state is the sum of each component's cached goal-distance
// estimate, or a dead end if any component is infinite.
type Heuristic struct {
	components []component
}

// Evaluate returns the sum of every component's h-value at values, or
// deadEnd=true if any component considers values a dead end.
func (h *Heuristic) Evaluate(values []int) (sum int, deadEnd bool) {
	for _, c := range h.components {
		sid := c.abstraction.Hierarchy.Lookup(values)
		hv := c.driver.HValue(sid)
		if hv >= Inf {
			return 0, true
		}
		sum += hv
	}
	return sum, false
}

// Run walks specs in order, building one CEGAR abstraction per subtask
// against the current remaining-cost vector (initialized to the task's own
// operator costs), deducting each retained abstraction's saturated costs
// before moving to the next. It stops early once the initial state becomes
// a dead end under the accumulated components, once the shared budget is
// exhausted, or after the last spec.
func Run(t *task.Task, specs []SubtaskSpec, opts Options) (*Heuristic, error) {
	if len(specs) == 0 {
		return nil, ErrNoGenerators
	}

	remaining := make([]int, len(t.Operators))
	for i, op := range t.Operators {
		remaining[i] = op.Cost
	}

	var deadline time.Time
	hasDeadline := opts.TimeLimit > 0
	if hasDeadline {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	h := &Heuristic{}

	for i, spec := range specs {
		b := budget.NewWithDeadline(opts.MaxStates, opts.MaxTransitions, deadline, hasDeadline, opts.CanaryBytes)
		if b.Exceeded() {
			opts.Logger.Info().Int("component", i).Msg("costsaturation: stopping before subtask, budget exhausted")
			break
		}

		remainingSnapshot := append([]int(nil), remaining...)
		costOf := func(opIdx int) int { return remainingSnapshot[opIdx] }

		sub := cegar.Subtask{
			Task:        t,
			DomainSizes: opts.DomainSizes,
			Goal:        spec.Goal,
			CostOf:      costOf,
			DTGs:        opts.DTGs,
		}
		res, err := cegar.Run(sub, cegar.Options{
			Budget: b,
			Policy: opts.Policy,
			HAdd:   opts.HAdd,
			Rng:    opts.Rng,
			Logger: opts.Logger,
		})
		if err != nil {
			return nil, err
		}

		initH := res.Driver.HValue(res.Abstraction.InitStateID)
		if initH == 0 {
			opts.Logger.Debug().Int("component", i).Msg("costsaturation: component contributes zero, discarding")
			continue
		}

		sat := saturatedCosts(res, len(t.Operators), remainingSnapshot)
		for op := range remaining {
			remaining[op] = subtractSaturated(remaining[op], sat[op])
		}

		h.components = append(h.components, component{abstraction: res.Abstraction, driver: res.Driver})
		opts.Logger.Info().Int("component", i).Int("init_h", initH).Msg("costsaturation: component retained")

		if _, deadEnd := h.Evaluate(t.Initial); deadEnd {
			opts.Logger.Info().Msg("costsaturation: initial state is a dead end, stopping early")
			break
		}
	}

	return h, nil
}

// saturatedCosts computes, per operator, the maximum (h(s) - h(s')) over
// every transition (s, op, s') in the abstraction whose source and target
// both have finite h, clamped to at most the operator's remaining cost.
// Operators with no such transition get sat = -Inf ("free for this
// abstraction").
func saturatedCosts(res *cegar.Result, numOps int, remaining []int) []int {
	sat := make([]int, numOps)
	found := make([]bool, numOps)
	for o := range sat {
		sat[o] = negInf
	}
	consider := func(op, delta int) {
		if !found[op] || delta > sat[op] {
			sat[op] = delta
			found[op] = true
		}
	}
	for sid := range res.Abstraction.States {
		hs := res.Driver.HValue(sid)
		if hs >= Inf {
			continue
		}
		for _, tr := range res.Abstraction.Transitions.Outgoing(sid) {
			ht := res.Driver.HValue(tr.Target)
			if ht >= Inf {
				continue
			}
			consider(tr.Op, hs-ht)
		}
		// A self-loop at a finite-h state contributes delta 0: an operator
		// that only ever self-loops is "free" here, not unused, so it must
		// not be conflated with sat = -INF.
		for _, op := range res.Abstraction.Transitions.LoopOperators(sid) {
			consider(op, 0)
		}
	}
	for o := range sat {
		if sat[o] > remaining[o] {
			sat[o] = remaining[o]
		}
	}
	return sat
}

// subtractSaturated applies the convention INF - finite = INF, and sat =
// -Inf elevates remaining to Inf (an operator this abstraction never used
// is priced as infinite for every later component).
func subtractSaturated(remaining, sat int) int {
	if sat <= negInf {
		return Inf
	}
	if remaining >= Inf {
		return Inf
	}
	r := remaining - sat
	if r > Inf {
		r = Inf
	}
	return r
}
