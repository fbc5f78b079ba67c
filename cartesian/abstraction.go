package cartesian

import (
	"github.com/planlab/sascegar/state"
	"github.com/planlab/sascegar/task"
)

// Abstraction owns one Cartesian abstraction of a task: its current set of
// abstract states, the refinement hierarchy that maps concrete states to
// them, and the transition system between them. It grows monotonically:
// state ids are never reused except that a split's "v1" child reuses its
// parent's id.
type Abstraction struct {
	Task        *task.Task
	DomainSizes []int

	States      map[int]*AbstractState
	nextStateID int

	Hierarchy   *RefinementHierarchy
	Transitions *TransitionSystem

	InitStateID int
	GoalStateID map[int]bool
}

// NewAbstraction builds the trivial abstraction for t restricted to the
// retained facts of a subtask (a partial goal): one abstract state covering
// every variable's full domain, with a self-loop for every operator.
func NewAbstraction(t *task.Task, domainSizes []int) *Abstraction {
	root := NewTrivialAbstractState(domainSizes)
	a := &Abstraction{
		Task:        t,
		DomainSizes: domainSizes,
		States:      map[int]*AbstractState{0: root},
		nextStateID: 1,
		Hierarchy:   NewRefinementHierarchy(0),
		Transitions: NewTransitionSystem(),
		InitStateID: 0,
		GoalStateID: map[int]bool{0: true},
	}
	for opIdx := range t.Operators {
		a.Transitions.Add(0, opIdx, 0)
	}
	return a
}

// State returns the current abstract state with the given id.
func (a *Abstraction) State(id int) *AbstractState {
	return a.States[id]
}

// StateOf returns the id of the abstract state currently containing the
// concrete state values, via the refinement hierarchy.
func (a *Abstraction) StateOf(values []int) int {
	return a.Hierarchy.Lookup(values)
}

// ConcreteStateOf returns the abstract state currently holding s.
func (a *Abstraction) ConcreteStateOf(s state.State) *AbstractState {
	return a.States[a.StateOf(s.Values)]
}

// Refine splits the abstract state flawState on varID, separating wanted
// into a new right child while the remainder stays with the left child
// (which reuses flawState's id). It updates the hierarchy, the state map,
// init/goal bookkeeping, and rewires the transition system. It returns the
// two resulting states (v1 = left/reused id, v2 = right/new id).
func (a *Abstraction) Refine(flawStateID int, varID int, wanted []int) (v1, v2 *AbstractState, err error) {
	old := a.States[flawStateID]
	v1Set, v2Set, err := old.SplitDomain(varID, wanted)
	if err != nil {
		return nil, nil, err
	}

	v2ID := a.nextStateID
	a.nextStateID++

	leftLeaf, rightLeaf := a.Hierarchy.Split(NodeID(old.NodeID), varID, wanted, flawStateID, v2ID)

	v1 = &AbstractState{ID: flawStateID, NodeID: int(leftLeaf), Set: v1Set}
	v2 = &AbstractState{ID: v2ID, NodeID: int(rightLeaf), Set: v2Set}

	a.States[flawStateID] = v1
	a.States[v2ID] = v2

	if a.InitStateID == flawStateID {
		if v1.Contains(varID, a.Task.Initial[varID]) {
			a.InitStateID = v1.ID
		} else {
			a.InitStateID = v2.ID
		}
	}
	if a.GoalStateID[flawStateID] {
		delete(a.GoalStateID, flawStateID)
		for _, goal := range [2]*AbstractState{v1, v2} {
			if goalConsistent(a.Task, goal) {
				a.GoalStateID[goal.ID] = true
			}
		}
	}

	a.Transitions.Rewire(flawStateID, v1, v2, varID, a.Task, a.States)
	return v1, v2, nil
}

// goalConsistent reports whether every goal fact's value is still present
// in s's subset for its variable.
func goalConsistent(t *task.Task, s *AbstractState) bool {
	return s.IncludesFacts(t.Goal)
}
