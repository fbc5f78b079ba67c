// Package heuristic is the façade an outer search loop (out of scope for
// this repository) consumes: it maps a concrete state to the sum of a
// cost-saturated set of Cartesian abstractions' distance estimates,
// reporting a dead end if any component does.
package heuristic

import "github.com/planlab/sascegar/costsaturation"

// DeadEnd is the sentinel h-value an outer search treats as "no plan
// exists from this state".
const DeadEnd = costsaturation.Inf

// Evaluator is anything that can price a concrete state's value vector; it
// is satisfied by *costsaturation.Heuristic, and by any stand-in used in
// tests.
type Evaluator interface {
	Evaluate(values []int) (sum int, deadEnd bool)
}

// Facade adapts an Evaluator to the single-integer contract an outer A*/
// eager-best-first loop expects: a non-negative admissible estimate, or
// DeadEnd.
type Facade struct {
	Eval Evaluator
}

// New wraps h as a Facade.
func New(h Evaluator) *Facade {
	return &Facade{Eval: h}
}

// Value returns the heuristic estimate for the concrete state given by
// values, or DeadEnd if any underlying component proves it a dead end.
func (f *Facade) Value(values []int) int {
	sum, deadEnd := f.Eval.Evaluate(values)
	if deadEnd {
		return DeadEnd
	}
	return sum
}
