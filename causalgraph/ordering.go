package causalgraph

import "github.com/planlab/sascegar/task"

// Ordering is the pseudo-topological variable order produced by SCC
// decomposition plus per-SCC MaxDAG tie-breaking, followed by relevance
// pruning and level assignment.
type Ordering struct {
	// Order lists variable ids in final order; pruned variables are
	// omitted. Order[i] is the variable assigned level i.
	Order []int
	// Level[v] is the assigned level of variable v, or -1 if v was pruned.
	Level []int
	// Necessary[v] reports whether v survived relevance pruning (always
	// true for every v when PruneUnreachable is false).
	Necessary []bool
}

// Options configures variable-ordering construction.
type Options struct {
	// PruneUnreachable disables relevance pruning when false: all
	// variables are retained (but still ordered).
	PruneUnreachable bool
}

// DefaultOptions returns the normal preprocessing configuration: pruning
// enabled.
func DefaultOptions() Options {
	return Options{PruneUnreachable: true}
}

// Order computes the pseudo-topological order of g's variables, given the
// task's goal facts (used both to bias MaxDAG and as the root set for
// relevance pruning).
func Order(g *Graph, goal []task.Fact, opts Options) Ordering {
	goalVars := make(map[int]bool, len(goal))
	for _, f := range goal {
		goalVars[f.Var] = true
	}

	sccs := SCC(g)
	order := make([]int, 0, g.numVars)
	for _, comp := range sccs {
		if len(comp) == 1 {
			order = append(order, comp[0])
			continue
		}
		order = append(order, orderComponent(g, comp, goalVars)...)
	}

	necessary := make([]bool, g.numVars)
	if opts.PruneUnreachable {
		markNecessary(g, goalVars, necessary)
	} else {
		for i := range necessary {
			necessary[i] = true
		}
	}

	finalOrder := make([]int, 0, len(order))
	level := make([]int, g.numVars)
	for i := range level {
		level[i] = -1
	}
	for _, v := range order {
		if necessary[v] {
			level[v] = len(finalOrder)
			finalOrder = append(finalOrder, v)
		}
	}

	return Ordering{Order: finalOrder, Level: level, Necessary: necessary}
}

// orderComponent builds the weighted induced subgraph of comp (local
// indices) and runs maxDAGOrder, translating the result back to global
// variable ids, in the insertion order comp was given (which must match the
// SCC partition's own deterministic output order).
func orderComponent(g *Graph, comp []int, goalVars map[int]bool) []int {
	localIndex := make(map[int]int, len(comp))
	for i, v := range comp {
		localIndex[v] = i
	}
	subgraph := make([][]weightedEdge, len(comp))
	for i, v := range comp {
		for target, w := range g.Weight[v] {
			j, ok := localIndex[target]
			if !ok {
				continue // edge leaves the component; irrelevant to intra-SCC ordering
			}
			// Mirrors causal_graph.cc's calculate_topological_pseudo_sort:
			// a goal-targeting edge contributes its plain weight TWICE (once
			// biased, once plain), not once.
			weight := w
			if goalVars[target] {
				weight += GoalBiasWeight + w
			}
			subgraph[i] = append(subgraph[i], weightedEdge{Target: j, Weight: weight})
		}
	}
	localOrder := maxDAGOrder(len(comp), subgraph)
	out := make([]int, len(localOrder))
	for i, li := range localOrder {
		out[i] = comp[li]
	}
	return out
}

// markNecessary performs a reverse DFS over the predecessor graph starting
// from goal variables, marking every variable on a path to the goal.
func markNecessary(g *Graph, goalVars map[int]bool, necessary []bool) {
	var stack []int
	for v := range goalVars {
		if !necessary[v] {
			necessary[v] = true
			stack = append(stack, v)
		}
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range g.Predecessors[v] {
			if !necessary[p] {
				necessary[p] = true
				stack = append(stack, p)
			}
		}
	}
}
