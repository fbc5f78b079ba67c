// Package succgen builds a successor-generator decision tree: given a
// concrete state, it yields exactly the operators whose preconditions hold,
// without scanning every operator linearly.
//
// The tree is a tagged union of three node kinds (Switch, Leaf, Empty) built
// by recursively partitioning the operator set on one variable at a time,
// in level order rather than by pointer or insertion identity — the same
// variable always appears at the same depth regardless of operator
// declaration order, so the generator is stable across equivalent tasks.
package succgen

import (
	"sort"

	"github.com/planlab/sascegar/task"
)

// Generator is the sum type of successor-generator nodes. Only the types in
// this package implement it.
type Generator interface {
	generatorNode()
}

// Switch dispatches on the value of Var. Immediate lists operators with no
// remaining unresolved precondition by the time recursion reached this
// node — they apply regardless of Var's value and of everything below.
// Cases[v] holds operators whose next unresolved precondition requires
// Var==v. Default holds operators whose next unresolved precondition
// mentions a variable later in level order; they are live under every
// value of Var and are deferred to the matching deeper node.
type Switch struct {
	Var       int
	Immediate []int
	Cases     map[int]Generator
	Default   Generator
}

// Leaf is a fully resolved bucket of operator indices: every one of them
// has no further unresolved precondition.
type Leaf struct {
	Operators []int
}

// Empty means no operator can ever reach this branch.
type Empty struct{}

func (Switch) generatorNode() {}
func (Leaf) generatorNode()   {}
func (Empty) generatorNode()  {}

// constraint is one operator's resolved-to-a-single-value requirement on a
// variable, keyed by that variable's level for sorted traversal.
type constraint struct {
	level int
	varID int
	value int
}

// opEntry tracks one operator's unresolved constraints during construction:
// pos is the index of the first constraint not yet consumed by an ancestor
// switch node.
type opEntry struct {
	op          int
	constraints []constraint
	pos         int
}

// Build constructs the successor-generator tree for t. levelOrder[i] is the
// variable id assigned level i (the normalizer's output order); operators
// are partitioned strictly in this order.
func Build(t *task.Task, levelOrder []int) Generator {
	levelOf := make([]int, len(t.Variables))
	for lvl, v := range levelOrder {
		levelOf[v] = lvl
	}

	entries := make([]opEntry, len(t.Operators))
	for i, op := range t.Operators {
		entries[i] = opEntry{op: i, constraints: relevantConstraints(op, levelOf)}
	}

	return construct(entries, levelOrder, 0)
}

// relevantConstraints collects the distinct (variable, required value)
// pairs op demands — from prevail preconditions and from effects' own
// declared PreValue — sorted by the variable's level.
func relevantConstraints(op task.Operator, levelOf []int) []constraint {
	seen := map[int]int{}
	for _, f := range op.Preconditions {
		seen[f.Var] = f.Value
	}
	for _, e := range op.Effects {
		if e.PreValue != -1 {
			seen[e.Var] = e.PreValue
		}
	}
	out := make([]constraint, 0, len(seen))
	for v, val := range seen {
		out = append(out, constraint{level: levelOf[v], varID: v, value: val})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].level < out[j].level })
	return out
}

func construct(entries []opEntry, levelOrder []int, depth int) Generator {
	if len(entries) == 0 {
		return Empty{}
	}

	allImmediate := true
	for _, e := range entries {
		if e.pos < len(e.constraints) {
			allImmediate = false
			break
		}
	}
	if allImmediate {
		ops := make([]int, len(entries))
		for i, e := range entries {
			ops[i] = e.op
		}
		return Leaf{Operators: ops}
	}

	v := levelOrder[depth]

	var immediate []int
	byValue := map[int][]opEntry{}
	var defaultEntries []opEntry
	interesting := false

	for _, e := range entries {
		if e.pos >= len(e.constraints) {
			immediate = append(immediate, e.op)
			continue
		}
		c := e.constraints[e.pos]
		if c.varID == v {
			interesting = true
			byValue[c.value] = append(byValue[c.value], opEntry{op: e.op, constraints: e.constraints, pos: e.pos + 1})
			continue
		}
		defaultEntries = append(defaultEntries, e)
	}

	if !interesting {
		// No operator constrains v: skip straight to the next variable,
		// carrying the immediate bucket along so it surfaces at the next
		// real switch or leaf.
		var next []opEntry
		for _, op := range immediate {
			next = append(next, opEntry{op: op, constraints: nil, pos: 0})
		}
		next = append(next, defaultEntries...)
		return construct(next, levelOrder, depth+1)
	}

	cases := make(map[int]Generator, len(byValue))
	for val, valEntries := range byValue {
		cases[val] = construct(valEntries, levelOrder, depth+1)
	}
	return Switch{
		Var:       v,
		Immediate: immediate,
		Cases:     cases,
		Default:   construct(defaultEntries, levelOrder, depth+1),
	}
}

// ApplicableOperators returns the operator indices whose preconditions the
// successor generator can confirm hold in state, in generator-traversal
// order. Each matching operator appears exactly once.
func ApplicableOperators(g Generator, state []int) []int {
	var out []int
	collect(g, state, &out)
	return out
}

func collect(g Generator, state []int, out *[]int) {
	switch n := g.(type) {
	case Empty:
		return
	case Leaf:
		*out = append(*out, n.Operators...)
	case Switch:
		*out = append(*out, n.Immediate...)
		if c, ok := n.Cases[state[n.Var]]; ok {
			collect(c, state, out)
		}
		collect(n.Default, state, out)
	}
}
