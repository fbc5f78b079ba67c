package causalgraph

// Partition is a decomposition of variable ids into strongly connected
// components, ordered so that a component's successors (in the condensation)
// appear after it: the first component is a leaf of the condensation.
type Partition [][]int

// tarjanFrame is one stack frame of the iterative Tarjan traversal: the
// vertex being visited and the index of the next successor to examine.
type tarjanFrame struct {
	v       int
	succIdx int
}

// SCC computes the strongly connected components of g.Successors using an
// iterative Tarjan algorithm (an explicit stack replaces recursion so that
// deep causal graphs don't blow the call stack). The result is reversed so
// component 0 is a condensation leaf.
func SCC(g *Graph) Partition {
	n := g.numVars
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []int   // Tarjan's vertex stack (for SCC extraction)
	var result Partition
	nextIndex := 0

	for start := 0; start < n; start++ {
		if index[start] != -1 {
			continue
		}
		var frames []tarjanFrame
		frames = append(frames, tarjanFrame{v: start, succIdx: 0})
		index[start] = nextIndex
		lowlink[start] = nextIndex
		nextIndex++
		stack = append(stack, start)
		onStack[start] = true

		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			v := top.v
			succs := g.Successors[v]
			if top.succIdx < len(succs) {
				w := succs[top.succIdx]
				top.succIdx++
				if index[w] == -1 {
					index[w] = nextIndex
					lowlink[w] = nextIndex
					nextIndex++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, tarjanFrame{v: w, succIdx: 0})
				} else if onStack[w] {
					if index[w] < lowlink[v] {
						lowlink[v] = index[w]
					}
				}
			} else {
				// Done with v's successors: pop the frame and propagate.
				frames = frames[:len(frames)-1]
				if len(frames) > 0 {
					parent := &frames[len(frames)-1]
					if lowlink[v] < lowlink[parent.v] {
						lowlink[parent.v] = lowlink[v]
					}
				}
				if lowlink[v] == index[v] {
					var comp []int
					for {
						w := stack[len(stack)-1]
						stack = stack[:len(stack)-1]
						onStack[w] = false
						comp = append(comp, w)
						if w == v {
							break
						}
					}
					result = append(result, comp)
				}
			}
		}
	}

	reversePartition(result)
	return result
}

func reversePartition(p Partition) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
