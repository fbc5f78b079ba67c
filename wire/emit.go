package wire

import (
	"fmt"
	"io"

	"github.com/planlab/sascegar/causalgraph"
	"github.com/planlab/sascegar/dtg"
	"github.com/planlab/sascegar/succgen"
	"github.com/planlab/sascegar/task"
)

// Output bundles everything the preprocessor hands the search component:
// the normalized task itself, plus the three structures the search engine
// would otherwise have to rebuild — causal graph, per-variable
// domain-transition graphs, and the successor-generator decision tree.
type Output struct {
	Task    *task.Task
	Graph   *causalgraph.Graph
	DTGs    []*dtg.Graph
	SuccGen succgen.Generator
}

// Write serializes o in the preprocessor output format. It never fails on a
// well-formed Output; the returned error only ever reflects a write failure
// on w.
func Write(w io.Writer, o *Output) error {
	e := &emitter{w: w}
	e.writeHeader(o.Task)
	e.writeVariables(o.Task)
	e.writeMutexes(o.Task)
	e.writeState(o.Task)
	e.writeGoal(o.Task)
	e.writeOperators(o.Task)
	e.writeAxioms(o.Task)
	e.writeSuccGen(o.SuccGen)
	e.writeDTGs(o.DTGs)
	e.writeCausalGraph(o.Graph)
	return e.err
}

// emitter accumulates the first io error and ignores everything after, so
// call sites read top to bottom without per-line error checks.
type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) line(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, err := fmt.Fprintf(e.w, format+"\n", args...)
	if err != nil {
		e.err = err
	}
}

func (e *emitter) writeHeader(t *task.Task) {
	e.line("begin_version")
	e.line("%d", ExpectedVersion)
	e.line("end_version")
	e.line("begin_metric")
	if t.UseActionCosts {
		e.line("1")
	} else {
		e.line("0")
	}
	e.line("end_metric")
}

func (e *emitter) writeVariables(t *task.Task) {
	e.line("%d", len(t.Variables))
	for _, v := range t.Variables {
		e.line("begin_variable")
		e.line("%s", v.Name)
		e.line("%d", v.AxiomLayer)
		e.line("%d", v.Domain)
		for val := 0; val < v.Domain; val++ {
			e.line("value %d", val)
		}
		e.line("end_variable")
	}
}

func (e *emitter) writeMutexes(t *task.Task) {
	e.line("%d", len(t.Mutexes))
	for _, mg := range t.Mutexes {
		e.line("begin_mutex_group")
		e.line("%d", len(mg.Facts))
		for _, f := range mg.Facts {
			e.line("%d %d", f.Var, f.Value)
		}
		e.line("end_mutex_group")
	}
}

func (e *emitter) writeState(t *task.Task) {
	e.line("begin_state")
	for _, v := range t.Initial {
		e.line("%d", v)
	}
	e.line("end_state")
}

func (e *emitter) writeGoal(t *task.Task) {
	e.line("begin_goal")
	e.line("%d", len(t.Goal))
	for _, f := range t.Goal {
		e.line("%d %d", f.Var, f.Value)
	}
	e.line("end_goal")
}

func (e *emitter) writeOperators(t *task.Task) {
	e.line("%d", len(t.Operators))
	for _, op := range t.Operators {
		e.line("begin_operator")
		e.line("%s", op.Name)
		e.line("%d", len(op.Preconditions))
		for _, f := range op.Preconditions {
			e.line("%d %d", f.Var, f.Value)
		}
		e.line("%d", len(op.Effects))
		for _, eff := range op.Effects {
			e.line("%d", len(eff.Condition))
			for _, c := range eff.Condition {
				e.line("%d %d", c.Var, c.Value)
			}
			e.line("%d %d %d", eff.Var, eff.PreValue, eff.Value)
		}
		e.line("%d", op.Cost)
		e.line("end_operator")
	}
}

func (e *emitter) writeAxioms(t *task.Task) {
	e.line("%d", len(t.Axioms))
	for _, ax := range t.Axioms {
		e.line("begin_rule")
		e.line("%d", len(ax.Condition))
		for _, c := range ax.Condition {
			e.line("%d %d", c.Var, c.Value)
		}
		e.line("%d %d %d", ax.EffectVar, ax.OldValue, ax.NewValue)
		e.line("end_rule")
	}
}

// writeCausalGraph serializes, per retained variable in level order, its
// successor count followed by that many (level, edge-weight) pairs.
func (e *emitter) writeCausalGraph(g *causalgraph.Graph) {
	e.line("begin_CG")
	for u, succs := range g.Successors {
		e.line("%d", len(succs))
		for _, v := range succs {
			e.line("%d %d", v, g.Weight[u][v])
		}
	}
	e.line("end_CG")
}

// writeDTGs serializes each retained variable's domain-transition graph:
// per variable, per source value, the list of (target, op-id,
// num-relevant-conditions, [level value]*) transitions that leave it.
func (e *emitter) writeDTGs(graphs []*dtg.Graph) {
	for _, g := range graphs {
		e.line("begin_DTG")
		for _, transitions := range g.From {
			e.line("%d", len(transitions))
			for _, tr := range transitions {
				e.line("%d %d %d", tr.To, tr.OperatorIndex, len(tr.Context))
				for _, f := range tr.Context {
					e.line("%d %d", f.Var, f.Value)
				}
			}
		}
		e.line("end_DTG")
	}
}

// writeSuccGen serializes the successor-generator decision tree. A switch
// node is "switch <var>", followed by its immediate bucket ("check <k>"
// then k operator ids), then one "case <value>" sub-tree per outgoing
// value edge actually present (values with no operators route through
// default and are not listed), then "default" followed by the default
// sub-tree. A leaf is "check <k>" then k operator ids with no preceding
// switch line. An empty node is "check 0".
func (e *emitter) writeSuccGen(g succgen.Generator) {
	e.line("begin_SG")
	e.writeGenNode(g)
	e.line("end_SG")
}

func (e *emitter) writeGenNode(g succgen.Generator) {
	switch n := g.(type) {
	case succgen.Empty:
		e.line("check 0")
	case succgen.Leaf:
		e.line("check %d", len(n.Operators))
		for _, op := range n.Operators {
			e.line("%d", op)
		}
	case succgen.Switch:
		e.line("switch %d", n.Var)
		e.line("check %d", len(n.Immediate))
		for _, op := range n.Immediate {
			e.line("%d", op)
		}
		values := make([]int, 0, len(n.Cases))
		for v := range n.Cases {
			values = append(values, v)
		}
		sortInts(values)
		for _, v := range values {
			e.line("case %d", v)
			e.writeGenNode(n.Cases[v])
		}
		e.line("default")
		e.writeGenNode(n.Default)
	}
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
