package cartesian

import (
	"github.com/planlab/sascegar/state"
	"github.com/planlab/sascegar/task"
)

// AbstractState is one cell of a Cartesian abstraction: a dense id, the
// refinement-hierarchy leaf node id through which it is reached, and its
// Cartesian set of concrete states.
type AbstractState struct {
	ID     int
	NodeID int
	Set    CartesianSet
}

// Count returns the cardinality of the subset for var.
func (a *AbstractState) Count(varID int) int {
	return a.Set.Count(varID)
}

// Contains reports whether value is in a's subset for var.
func (a *AbstractState) Contains(varID, value int) bool {
	return a.Set.Test(varID, value)
}

// SplitDomain partitions a's Cartesian set as CartesianSet.SplitDomain does.
func (a *AbstractState) SplitDomain(varID int, wanted []int) (CartesianSet, CartesianSet, error) {
	return a.Set.SplitDomain(varID, wanted)
}

// Regress returns the pre-image of a's Cartesian set under op.
func (a *AbstractState) Regress(op task.Operator, domainSizes []int) CartesianSet {
	return a.Set.Regress(op, domainSizes)
}

// DomainSubsetsIntersect reports whether a and other share a value on var.
func (a *AbstractState) DomainSubsetsIntersect(other *AbstractState, varID int) bool {
	return a.Set.Intersects(other.Set, varID)
}

// IncludesState reports whether the concrete state belongs to a.
func (a *AbstractState) IncludesState(s state.State) bool {
	return a.Set.IncludesState(s.Values)
}

// IncludesFacts reports whether every fact belongs to a.
func (a *AbstractState) IncludesFacts(facts []task.Fact) bool {
	return a.Set.IncludesFacts(facts)
}

// Includes reports whether a is a superset of other.
func (a *AbstractState) Includes(other *AbstractState) bool {
	return a.Set.IsSupersetOf(other.Set)
}

// NewTrivialAbstractState returns the single abstract state covering every
// variable's full domain, with id and node id 0.
func NewTrivialAbstractState(domainSizes []int) *AbstractState {
	return &AbstractState{ID: 0, NodeID: 0, Set: NewFull(domainSizes)}
}
