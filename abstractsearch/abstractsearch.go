package abstractsearch

import (
	"container/heap"

	"github.com/planlab/sascegar/cartesian"
)

// Inf represents an infinite goal-distance estimate: the subtask is
// unsolvable from the state it is attached to.
const Inf = 1 << 30

// Step is one edge of an extracted abstract plan.
type Step struct {
	From int
	Op   int
	To   int
}

// Driver holds goal-distance estimates (h-values) that persist and only
// ever increase across repeated searches over the same (growing) Cartesian
// abstraction, as CEGAR refines it.
type Driver struct {
	h map[int]int
}

// NewDriver returns a Driver with every state's h-value implicitly zero
// until Search raises it.
func NewDriver() *Driver {
	return &Driver{h: make(map[int]int)}
}

// HValue returns the cached goal-distance estimate for state id, or zero
// for a state never visited by a completed search.
func (d *Driver) HValue(id int) int {
	return d.h[id]
}

// raise sets h[id] to value if it is larger than any previously recorded
// estimate: h-values are monotone non-decreasing under refinement.
func (d *Driver) raise(id, value int) {
	if value > d.h[id] {
		d.h[id] = value
	}
}

// heap item.
type pqItem struct {
	state int
	dist  int
}
type stateHeap []pqItem

func (h stateHeap) Len() int            { return len(h) }
func (h stateHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h stateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *stateHeap) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *stateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Search runs uniform-cost search over ts from source to the nearest state
// in goals, using costOf to price each operator. On success it returns the
// operator sequence (as Steps) and total cost, and updates d's h-value
// cache along the extracted path in one backward pass: h(goal)=0,
// h(s) >= cost(remainder of path from s), never decreasing a prior
// estimate. On failure it sets h(source) to Inf and returns ErrNoSolution.
func (d *Driver) Search(ts *cartesian.TransitionSystem, source int, goals map[int]bool, costOf func(op int) int) ([]Step, int, error) {
	dist := map[int]int{source: 0}
	fromOp := map[int]int{}
	fromState := map[int]int{}
	visited := map[int]bool{}

	pq := &stateHeap{{state: source, dist: 0}}
	heap.Init(pq)

	goalFound := -1
	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if visited[item.state] {
			continue
		}
		if d, ok := dist[item.state]; ok && item.dist > d {
			continue
		}
		visited[item.state] = true
		if goals[item.state] {
			goalFound = item.state
			break
		}
		for _, tr := range ts.Outgoing(item.state) {
			nd := item.dist + costOf(tr.Op)
			if existing, ok := dist[tr.Target]; !ok || nd < existing {
				dist[tr.Target] = nd
				fromOp[tr.Target] = tr.Op
				fromState[tr.Target] = item.state
				heap.Push(pq, pqItem{state: tr.Target, dist: nd})
			}
		}
	}

	if goalFound == -1 {
		d.raise(source, Inf)
		return nil, 0, ErrNoSolution
	}

	var path []Step
	cur := goalFound
	for cur != source {
		prev := fromState[cur]
		op := fromOp[cur]
		path = append(path, Step{From: prev, Op: op, To: cur})
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	d.raise(goalFound, 0)
	remaining := 0
	for i := len(path) - 1; i >= 0; i-- {
		remaining += costOf(path[i].Op)
		d.raise(path[i].From, remaining)
	}

	return path, dist[goalFound], nil
}
