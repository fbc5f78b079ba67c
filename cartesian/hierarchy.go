package cartesian

// NodeID addresses a node in a RefinementHierarchy. Node ids are dense and
// never removed: a split converts a leaf's own id into the first node of the
// new internal chain and appends fresh ids for every other new node.
type NodeID int

// noVar marks a leaf node: it carries a StateID instead of a split.
const noVar = -1

type hierarchyNode struct {
	// Var == noVar for a leaf; StateID is meaningful only then.
	Var     int
	Value   int
	Left    NodeID
	Right   NodeID
	StateID int
}

// RefinementHierarchy is a DAG recording every historical split: internal
// nodes switch on one variable's value, leaves carry the id of a current
// abstract state. Lookup from a concrete state to its current abstract
// state id runs in O(depth).
type RefinementHierarchy struct {
	nodes []hierarchyNode
}

// NewRefinementHierarchy returns a hierarchy with a single leaf, node id 0,
// carrying rootStateID.
func NewRefinementHierarchy(rootStateID int) *RefinementHierarchy {
	h := &RefinementHierarchy{}
	h.addLeaf(rootStateID)
	return h
}

// AddNode appends a new leaf carrying stateID and returns its node id.
func (h *RefinementHierarchy) AddNode(stateID int) NodeID {
	return h.addLeaf(stateID)
}

func (h *RefinementHierarchy) addLeaf(stateID int) NodeID {
	id := NodeID(len(h.nodes))
	h.nodes = append(h.nodes, hierarchyNode{Var: noVar, StateID: stateID})
	return id
}

// newBlankNode appends a placeholder node (to be filled in by Split) and
// returns its id.
func (h *RefinementHierarchy) newBlankNode() NodeID {
	id := NodeID(len(h.nodes))
	h.nodes = append(h.nodes, hierarchyNode{})
	return id
}

// Split converts the leaf at leafNode into a chain of len(wanted) internal
// split nodes over varID. The first node (reusing leafNode's own id) checks
// wanted[0]: equal routes to the shared right-child leaf (rightStateID),
// unequal routes to the next node in the chain (or, for the last node, to
// the left-child leaf, leftStateID). It returns the new leaf node ids for
// the left and right children.
func (h *RefinementHierarchy) Split(leafNode NodeID, varID int, wanted []int, leftStateID, rightStateID int) (leftLeaf, rightLeaf NodeID) {
	rightLeaf = h.addLeaf(rightStateID)
	leftLeaf = h.addLeaf(leftStateID)

	k := len(wanted)
	chain := make([]NodeID, k)
	chain[0] = leafNode
	for i := 1; i < k; i++ {
		chain[i] = h.newBlankNode()
	}
	for i := 0; i < k; i++ {
		left := leftLeaf
		if i < k-1 {
			left = chain[i+1]
		}
		h.nodes[chain[i]] = hierarchyNode{
			Var:   varID,
			Value: wanted[i],
			Left:  left,
			Right: rightLeaf,
		}
	}
	return leftLeaf, rightLeaf
}

// Lookup descends from the root, comparing values[node.Var] against each
// internal node's Value, and returns the state id of the leaf reached.
func (h *RefinementHierarchy) Lookup(values []int) int {
	cur := NodeID(0)
	for {
		n := h.nodes[cur]
		if n.Var == noVar {
			return n.StateID
		}
		if values[n.Var] == n.Value {
			cur = n.Right
		} else {
			cur = n.Left
		}
	}
}
