package causalgraph

import "math"

// GoalBiasWeight is the additive bonus given to an edge inside a
// non-singleton SCC when its target is a goal variable. It externalizes the
// "100000" magic constant the Fast-Downward preprocessor hard-codes: the
// bias only needs to be large enough that a goal-biased edge is never
// removed before any non-biased edge, and small enough that summing it
// across a realistic SCC never overflows int.
const GoalBiasWeight = 1 << 24

// weightedEdge is a directed edge inside a MaxDAG subgraph: Target is a
// local index into the SCC's own vertex list, Weight includes any goal bias.
type weightedEdge struct {
	Target int
	Weight int
}

// maxDAGOrder computes a pseudo-topological order of the n local vertices of
// subgraph by greedily peeling off the vertex with least total incoming
// weight, biased by GoalBiasWeight on goal-targeting edges. Ties are broken
// by insertion (vertex index) order.
//
// This is a direct generalization of downward/preprocess/max_dag.cc: repeat
// "remove the minimum in-weight node, subtract its outgoing weight (minus
// any goal bias) from each successor's in-weight" until every vertex has
// been removed.
func maxDAGOrder(n int, subgraph [][]weightedEdge) []int {
	incoming := make([]int, n)
	for _, edges := range subgraph {
		for _, e := range edges {
			if e.Weight > math.MaxInt-incoming[e.Target] {
				panic("causalgraph: MaxDAG in-weight overflows int")
			}
			incoming[e.Target] += e.Weight
		}
	}

	removed := make([]bool, n)
	order := make([]int, 0, n)

	for len(order) < n {
		best := -1
		for v := 0; v < n; v++ {
			if removed[v] {
				continue
			}
			if best == -1 || incoming[v] < incoming[best] {
				best = v
			}
		}
		removed[best] = true
		order = append(order, best)
		for _, e := range subgraph[best] {
			if removed[e.Target] {
				continue
			}
			w := e.Weight
			for w >= GoalBiasWeight {
				w -= GoalBiasWeight
			}
			incoming[e.Target] -= w
		}
	}
	return order
}
