package cartesian

import "github.com/planlab/sascegar/task"

// Transition is one outgoing abstract transition: applying operator Op can
// move from the owning state to Target.
type Transition struct {
	Op     int
	Target int
}

// TransitionSystem holds, for every current abstract state, its outgoing
// non-loop transitions, plus the operators recorded as self-loops at each
// state (read by Rewire and by cost saturation via LoopOperators). A global
// non-loop counter supports the CEGAR driver's budget check.
type TransitionSystem struct {
	out      map[int][]Transition
	incoming map[int][]incomingEdge // reverse index: target -> (source, op)
	// loops[s] is the set of operator indices recorded as a self-loop at
	// state s. The operator identity (not just a count) is kept so Rewire
	// can redistribute each one across a split's two children.
	loops        map[int]map[int]bool
	nonLoopCount int
}

type incomingEdge struct {
	Source int
	Op     int
}

// NewTransitionSystem returns an empty transition system.
func NewTransitionSystem() *TransitionSystem {
	return &TransitionSystem{
		out:      make(map[int][]Transition),
		incoming: make(map[int][]incomingEdge),
		loops:    make(map[int]map[int]bool),
	}
}

// Add records a transition from source to target under op. A self-loop
// (source == target) is counted separately and does not affect the
// non-loop budget counter.
func (ts *TransitionSystem) Add(source, op, target int) {
	if source == target {
		if ts.loops[source] == nil {
			ts.loops[source] = make(map[int]bool)
		}
		ts.loops[source][op] = true
		return
	}
	ts.out[source] = append(ts.out[source], Transition{Op: op, Target: target})
	ts.incoming[target] = append(ts.incoming[target], incomingEdge{Source: source, Op: op})
	ts.nonLoopCount++
}

// Outgoing returns state's outgoing non-loop transitions.
func (ts *TransitionSystem) Outgoing(stateID int) []Transition {
	return ts.out[stateID]
}

// LoopCount returns the number of recorded self-loops at state.
func (ts *TransitionSystem) LoopCount(stateID int) int {
	return len(ts.loops[stateID])
}

// LoopOperators returns the operator indices recorded as a self-loop at
// state. A self-loop contributes zero to that operator's saturated cost at
// this state (h(s) - h(s) = 0), which matters to cost saturation: an
// operator touched only by self-loops throughout an abstraction is not
// "unused" by it.
func (ts *TransitionSystem) LoopOperators(stateID int) []int {
	ops := make([]int, 0, len(ts.loops[stateID]))
	for op := range ts.loops[stateID] {
		ops = append(ops, op)
	}
	return ops
}

// NonLoopCount returns the total number of non-loop transitions currently
// recorded, the quantity CEGAR's max_non_loop_transitions budget bounds.
func (ts *TransitionSystem) NonLoopCount() int {
	return ts.nonLoopCount
}

// postImageOnVar reports the value operator op forces varID to after
// firing, if op has any effect on varID (isFixed=true); otherwise varID
// passes through unaffected (isFixed=false).
func postImageOnVar(op task.Operator, varID int) (value int, isFixed bool) {
	for _, eff := range op.Effects {
		if eff.Var == varID {
			return eff.Value, true
		}
	}
	return 0, false
}

// requiredPreValueOnVar reports the value op's own declared precondition
// (prevail or effect PreValue) demands on varID, if any.
func requiredPreValueOnVar(op task.Operator, varID int) (value int, has bool) {
	for _, f := range op.Preconditions {
		if f.Var == varID {
			return f.Value, true
		}
	}
	for _, eff := range op.Effects {
		if eff.Var == varID && eff.PreValue != -1 {
			return eff.PreValue, true
		}
	}
	return 0, false
}

// Rewire updates the transition system after the abstract state obsoleteID
// has been split into v1 and v2 over splitVar. It has two obligations:
// redirecting transitions that used to end at obsoleteID, and
// redistributing transitions that used to leave it, consulting t's
// operators to determine feasibility from each child.
func (ts *TransitionSystem) Rewire(obsoleteID int, v1, v2 *AbstractState, splitVar int, t *task.Task, states map[int]*AbstractState) {
	// --- Transitions that used to leave obsoleteID. ---
	oldOut := ts.out[obsoleteID]
	delete(ts.out, obsoleteID)
	ts.nonLoopCount -= len(oldOut)

	oldLoops := ts.loops[obsoleteID]
	delete(ts.loops, obsoleteID)
	resolveChild := func(val int) *AbstractState {
		if v1.Contains(splitVar, val) {
			return v1
		}
		return v2
	}
	for opIdx := range oldLoops {
		op := t.Operators[opIdx]
		fixed, isFixed := postImageOnVar(op, splitVar)
		if req, has := requiredPreValueOnVar(op, splitVar); has {
			// op only fires from the child holding req; it lands wherever
			// its own effect on splitVar (if any) sends it, otherwise it
			// stays put.
			source := resolveChild(req)
			target := source
			if isFixed {
				target = resolveChild(fixed)
			}
			ts.reAdd(source.ID, opIdx, target.ID)
			continue
		}
		if isFixed {
			// op fires from either child, unconstrained on splitVar, and
			// always lands wherever its effect points.
			target := resolveChild(fixed)
			ts.reAdd(v1.ID, opIdx, target.ID)
			ts.reAdd(v2.ID, opIdx, target.ID)
			continue
		}
		// op neither constrains nor touches splitVar: it remains a loop
		// on both children independently.
		ts.reAdd(v1.ID, opIdx, v1.ID)
		ts.reAdd(v2.ID, opIdx, v2.ID)
	}

	for _, tr := range oldOut {
		removeIncoming(ts, tr.Target, obsoleteID, tr.Op)
		op := t.Operators[tr.Op]
		target := states[tr.Target]
		if req, has := requiredPreValueOnVar(op, splitVar); has {
			if v1.Contains(splitVar, req) {
				ts.reAdd(v1.ID, tr.Op, tr.Target)
			}
			if v2.Contains(splitVar, req) {
				ts.reAdd(v2.ID, tr.Op, tr.Target)
			}
			continue
		}
		if fixed, isFixed := postImageOnVar(op, splitVar); isFixed {
			if target.Contains(splitVar, fixed) {
				ts.reAdd(v1.ID, tr.Op, tr.Target)
				ts.reAdd(v2.ID, tr.Op, tr.Target)
			}
			continue
		}
		// Unconstrained and unaffected: child feasible iff it still
		// overlaps the target's subset on splitVar.
		if v1.Set.Intersects(target.Set, splitVar) {
			ts.reAdd(v1.ID, tr.Op, tr.Target)
		}
		if v2.Set.Intersects(target.Set, splitVar) {
			ts.reAdd(v2.ID, tr.Op, tr.Target)
		}
	}
	// --- Transitions that used to end at obsoleteID. ---
	oldIn := ts.incoming[obsoleteID]
	delete(ts.incoming, obsoleteID)
	for _, e := range oldIn {
		removeTarget(ts, e.Source, obsoleteID)
		op := t.Operators[e.Op]
		source := states[e.Source]
		postFixed, isFixed := postImageOnVar(op, splitVar)
		if isFixed {
			if v1.Contains(splitVar, postFixed) {
				ts.reAdd(e.Source, e.Op, v1.ID)
			}
			if v2.Contains(splitVar, postFixed) {
				ts.reAdd(e.Source, e.Op, v2.ID)
			}
			continue
		}
		if v1.Set.Intersects(source.Set, splitVar) {
			ts.reAdd(e.Source, e.Op, v1.ID)
		}
		if v2.Set.Intersects(source.Set, splitVar) {
			ts.reAdd(e.Source, e.Op, v2.ID)
		}
	}
}

func (ts *TransitionSystem) reAdd(source, op, target int) {
	ts.Add(source, op, target)
}

func removeTarget(ts *TransitionSystem, source, target int) {
	list := ts.out[source]
	for i, tr := range list {
		if tr.Target == target {
			list[i] = list[len(list)-1]
			ts.out[source] = list[:len(list)-1]
			ts.nonLoopCount--
			return
		}
	}
}

// removeIncoming removes the {source, op} reverse-index entry recorded at
// target. Rewire calls this for each of obsoleteID's out-edges before
// re-adding them from v1/v2, so the stale {obsoleteID, op} entry can't
// survive under the reused id and resurface as a fabricated transition the
// next time target itself is split.
func removeIncoming(ts *TransitionSystem, target, source, op int) {
	list := ts.incoming[target]
	for i, e := range list {
		if e.Source == source && e.Op == op {
			list[i] = list[len(list)-1]
			ts.incoming[target] = list[:len(list)-1]
			return
		}
	}
}
