package splitselect

import (
	"container/heap"

	"github.com/planlab/sascegar/task"
)

// Inf marks a fact unreachable in the delete-relaxation.
const Inf = 1 << 30

// HAdd is a precomputed additive (h^add) delete-relaxation heuristic over a
// task's facts, evaluated once at construction time against one initial
// state and one per-operator cost function. It backs the MIN_HADD/MAX_HADD
// split-selection policies, which read per-fact reachability costs rather
// than recomputing them per flaw.
type HAdd struct {
	offsets []int
	values  []int
}

type achiever struct {
	preconds   []int // fact indices
	remaining  int
	accumCost  int
	effectFact int
}

// Build computes h^add(f) for every fact of t, seeded from the facts true
// in values, using costOf to price each operator (allowing a CEGAR subtask's
// reweighted costs rather than the task's own).
func Build(t *task.Task, domainSizes []int, values []int, costOf func(opIdx int) int) *HAdd {
	offsets := make([]int, len(domainSizes)+1)
	for v, size := range domainSizes {
		offsets[v+1] = offsets[v] + size
	}
	n := offsets[len(domainSizes)]
	h := make([]int, n)
	for i := range h {
		h[i] = Inf
	}
	fi := func(v, val int) int { return offsets[v] + val }

	var achievers []*achiever
	factAchievers := make([][]int, n)

	addAchiever := func(preconds []int, effectFact, cost int) {
		a := &achiever{preconds: preconds, remaining: len(preconds), accumCost: cost, effectFact: effectFact}
		idx := len(achievers)
		achievers = append(achievers, a)
		for _, p := range preconds {
			factAchievers[p] = append(factAchievers[p], idx)
		}
	}

	buildPreconds := func(op task.Operator, eff task.Effect) []int {
		var pre []int
		for _, f := range op.Preconditions {
			pre = append(pre, fi(f.Var, f.Value))
		}
		for _, f := range eff.Condition {
			pre = append(pre, fi(f.Var, f.Value))
		}
		if eff.PreValue != -1 {
			pre = append(pre, fi(eff.Var, eff.PreValue))
		}
		return pre
	}

	for opIdx, op := range t.Operators {
		cost := costOf(opIdx)
		for _, eff := range op.Effects {
			addAchiever(buildPreconds(op, eff), fi(eff.Var, eff.Value), cost)
		}
	}
	for _, ax := range t.Axioms {
		op := ax.AsOperator()
		addAchiever(buildPreconds(op, op.Effects[0]), fi(ax.EffectVar, ax.NewValue), 0)
	}

	finalized := make([]bool, n)
	pq := &factHeap{}
	heap.Init(pq)
	for v, val := range values {
		f := fi(v, val)
		h[f] = 0
		heap.Push(pq, factItem{fact: f, dist: 0})
	}
	// Zero-precondition achievers fire immediately regardless of seeding.
	for _, a := range achievers {
		if a.remaining == 0 && a.accumCost < h[a.effectFact] {
			h[a.effectFact] = a.accumCost
			heap.Push(pq, factItem{fact: a.effectFact, dist: a.accumCost})
		}
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(factItem)
		if finalized[item.fact] {
			continue
		}
		if item.dist > h[item.fact] {
			continue
		}
		finalized[item.fact] = true
		for _, aIdx := range factAchievers[item.fact] {
			a := achievers[aIdx]
			a.accumCost += h[item.fact]
			a.remaining--
			if a.remaining == 0 && a.accumCost < h[a.effectFact] {
				h[a.effectFact] = a.accumCost
				heap.Push(pq, factItem{fact: a.effectFact, dist: a.accumCost})
			}
		}
	}

	return &HAdd{offsets: offsets, values: h}
}

// Value returns h^add(var=value), or Inf if unreachable in the
// delete-relaxation.
func (h *HAdd) Value(varID, value int) int {
	return h.values[h.offsets[varID]+value]
}

type factItem struct {
	fact int
	dist int
}
type factHeap []factItem

func (h factHeap) Len() int            { return len(h) }
func (h factHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h factHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *factHeap) Push(x interface{}) { *h = append(*h, x.(factItem)) }
func (h *factHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
