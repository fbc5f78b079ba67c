// Package state represents a concrete assignment of values to a task's
// variables and computes successors under operator application, including
// stratified axiom evaluation.
package state

import "errors"

// ErrInapplicable is returned by Apply when the operator's preconditions do
// not hold in the state it is applied to.
var ErrInapplicable = errors.New("state: operator not applicable")

// ErrAxiomsUnsupported is returned by ApplySimple when the task has axioms:
// callers on the non-axiom fast path (e.g. the CEGAR abstraction's concrete
// flaw tracing) must use Apply instead, which re-evaluates axioms to a fixed
// point after every transition.
var ErrAxiomsUnsupported = errors.New("state: task has axioms, simple successor path unsupported")
