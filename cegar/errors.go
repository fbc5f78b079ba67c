package cegar

import "errors"

// ErrAxiomsNotSupported is returned by Run when the subtask's task has any
// axiom: Cartesian CEGAR's concrete flaw tracing uses State.ApplySimple,
// which rejects axioms outright.
var ErrAxiomsNotSupported = errors.New("cegar: axioms are not supported")

// ErrConditionalEffectsNotSupported is returned by Run when any operator in
// the subtask has a conditional effect. Matches the original Cartesian-CEGAR
// implementation's documented limitation.
var ErrConditionalEffectsNotSupported = errors.New("cegar: conditional effects are not supported")

// ErrNoCandidateSplit signals an invariant violation: a genuine flaw must
// always admit at least one candidate split; seeing none here means flaw
// detection or candidate generation has a bug, not a resource limit.
var ErrNoCandidateSplit = errors.New("cegar: flaw admits no candidate split")
