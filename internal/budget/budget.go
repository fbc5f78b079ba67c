// Package budget provides the CEGAR and cost-saturation drivers' shared
// stopping condition: a combination of a countdown timer and an explicit
// allocation allowance. This replaces the original planner's new-handler
// pattern (a canary buffer released from within an allocation-failure
// handler) with a single function both drivers can poll at safe points.
package budget

import "time"

// Budget tracks the resource limits a refinement loop must respect.
type Budget struct {
	deadline        time.Time
	hasDeadline     bool
	maxStates       int
	maxTransitions  int
	canaryBytes     int
	canaryReleased  bool
	states          int
	nonLoopTransits int
}

// New returns a Budget with the given limits. A zero maxStates/
// maxTransitions/timeLimit means "unbounded" for that dimension.
// canaryBytes reserves a notional allocation allowance up front; Spend
// draws it down, and once exhausted Exceeded reports true exactly as the
// original's memory-reserve release would.
func New(maxStates, maxTransitions int, timeLimit time.Duration, canaryBytes int) *Budget {
	b := &Budget{
		maxStates:      maxStates,
		maxTransitions: maxTransitions,
		canaryBytes:    canaryBytes,
	}
	if timeLimit > 0 {
		b.deadline = time.Now().Add(timeLimit)
		b.hasDeadline = true
	}
	return b
}

// Unbounded returns a Budget with no limits at all, for tests and
// subtasks that should run to natural completion.
func Unbounded() *Budget {
	return &Budget{}
}

// NewWithDeadline is New but takes an absolute deadline instead of a
// duration relative to now: cost saturation uses it to give every subtask's
// CEGAR run the same overall wall-clock deadline rather than restarting the
// clock per subtask.
func NewWithDeadline(maxStates, maxTransitions int, deadline time.Time, hasDeadline bool, canaryBytes int) *Budget {
	return &Budget{
		maxStates:      maxStates,
		maxTransitions: maxTransitions,
		canaryBytes:    canaryBytes,
		deadline:       deadline,
		hasDeadline:    hasDeadline,
	}
}

// Deadline reports the budget's absolute deadline and whether one is set,
// so a caller managing several sequential sub-budgets (cost saturation over
// several CEGAR runs) can propagate the same wall-clock limit to each.
func (b *Budget) Deadline() (time.Time, bool) {
	return b.deadline, b.hasDeadline
}

// CanaryReleased reports whether this budget's canary allowance has ever
// been released, independent of the other limits Exceeded also checks.
func (b *Budget) CanaryReleased() bool {
	return b.canaryReleased
}

// NoteState records that the abstraction gained one more state.
func (b *Budget) NoteState() {
	b.states++
}

// NoteNonLoopTransitions sets the current non-loop transition count (the
// transition system's own counter is authoritative; the budget just
// compares against it).
func (b *Budget) NoteNonLoopTransitions(n int) {
	b.nonLoopTransits = n
}

// Spend draws down the canary allowance; once it would go negative, the
// canary is considered released and every subsequent CanAllocate call
// reports false, mirroring the original's one-shot memory-padding release.
func (b *Budget) Spend(bytes int) {
	if b.canaryReleased {
		return
	}
	b.canaryBytes -= bytes
	if b.canaryBytes < 0 {
		b.canaryReleased = true
	}
}

// CanAllocate reports whether the canary allowance has not yet been
// released. Once false, it never becomes true again for this Budget.
func (b *Budget) CanAllocate() bool {
	return !b.canaryReleased
}

// Exceeded reports whether any limit has been hit: state count, non-loop
// transition count, wall-clock deadline, or canary release. This is the
// single check point the CEGAR and cost-saturation drivers poll before
// every refinement step.
func (b *Budget) Exceeded() bool {
	if b.canaryReleased {
		return true
	}
	if b.maxStates > 0 && b.states >= b.maxStates {
		return true
	}
	if b.maxTransitions > 0 && b.nonLoopTransits >= b.maxTransitions {
		return true
	}
	if b.hasDeadline && time.Now().After(b.deadline) {
		return true
	}
	return false
}
