// Package cartesian implements Cartesian abstractions: abstract states that
// are a product of non-empty per-variable value subsets, the refinement
// hierarchy that maps concrete states to current abstract states, and the
// transition system maintained incrementally as the abstraction is split.
package cartesian

import "errors"

// ErrEmptyWanted is returned by SplitDomain when the requested "wanted" set
// is empty or not a proper subset of the variable's current subset: a split
// must produce two non-empty children.
var ErrEmptyWanted = errors.New("cartesian: wanted set must be a non-empty proper subset")

// ErrUnknownState is returned when an operation names an abstract-state id
// the abstraction does not currently hold (e.g. it was already split).
var ErrUnknownState = errors.New("cartesian: unknown abstract state id")
