// Package task defines the immutable finite-domain (SAS+) planning task
// model: variables, facts, operators, axioms, mutex groups, the initial
// state and the goal. Values here are constructed once by the wire parser
// (or by tests) and never mutated afterwards; every later pipeline stage
// (causalgraph, normalize, dtg, succgen, state) consumes a Task by value or
// pointer and produces its own derived structure.
package task

import "fmt"

// Fact is a single variable=value assignment.
type Fact struct {
	Var   int
	Value int
}

// Variable describes one SAS+ state variable.
type Variable struct {
	Name string
	// Domain is the number of values 0..Domain-1 this variable can take.
	Domain int
	// AxiomLayer is -1 for non-derived variables, else the stratification
	// layer the variable's axioms are evaluated in.
	AxiomLayer int
	// Default is the value a derived variable takes before any axiom with
	// a matching body fires. Meaningless for non-derived variables.
	Default int
	// Level is the position assigned by the variable ordering, -1 until
	// the normalizer assigns one.
	Level int
}

// Derived reports whether v is a derived (axiom) variable.
func (v Variable) Derived() bool {
	return v.AxiomLayer >= 0
}

// InDomain reports whether value is a legal value of v.
func (v Variable) InDomain(value int) bool {
	return value >= 0 && value < v.Domain
}

// Effect is one conditional effect of an operator: it sets Var to Value,
// provided the operator fires and every fact in Condition holds. PreValue
// is the effect's own declared precondition on Var (-1 if none).
type Effect struct {
	Var       int
	PreValue  int
	Value     int
	Condition []Fact
}

// Operator is a grounded action: a conjunction of prevail conditions
// (Preconditions) plus a set of conditional effects, with a fixed cost.
type Operator struct {
	Name          string
	Preconditions []Fact
	Effects       []Effect
	Cost          int
}

// Axiom computes a derived variable from an old value to a new one whenever
// Condition holds. Axioms respect a stratification: an axiom's body may only
// reference variables of a layer <= the effect variable's layer.
type Axiom struct {
	EffectVar int
	OldValue  int
	NewValue  int
	Condition []Fact
}

// AsOperator views an axiom as the degenerate one-effect operator the
// causal-graph builder and DTG builder treat it as.
func (a Axiom) AsOperator() Operator {
	return Operator{
		Name: "axiom",
		Effects: []Effect{{
			Var:       a.EffectVar,
			PreValue:  a.OldValue,
			Value:     a.NewValue,
			Condition: a.Condition,
		}},
		Cost: 0,
	}
}

// MutexGroup is a set of facts at most one of which holds in any reachable
// state.
type MutexGroup struct {
	Facts []Fact
}

// Task is the complete, immutable grounded planning problem.
type Task struct {
	Variables []Variable
	Mutexes   []MutexGroup
	Initial   []int // one value per variable, indexed by variable id
	Goal      []Fact
	Operators []Operator
	Axioms    []Axiom
	// UseActionCosts mirrors the wire format's metric flag. It is carried
	// through parsing, normalization and output only; the cost-aware
	// consumers price operators by Operator.Cost whatever its value.
	UseActionCosts bool
}

// NumVariables returns the number of variables in the task.
func (t *Task) NumVariables() int {
	return len(t.Variables)
}

// Validate checks the structural invariants a well-formed task must
// satisfy. It returns an error (not a panic) because malformed input is an
// ordinary, expected failure mode, not a programmer bug.
func (t *Task) Validate() error {
	n := len(t.Variables)
	if len(t.Initial) != n {
		return fmt.Errorf("task: initial state has %d values, want %d", len(t.Initial), n)
	}
	for i, v := range t.Variables {
		if v.Domain < 1 {
			return fmt.Errorf("task: variable %d (%s) has domain size %d", i, v.Name, v.Domain)
		}
		if !v.InDomain(t.Initial[i]) {
			return fmt.Errorf("task: initial value %d out of domain for variable %d (%s)", t.Initial[i], i, v.Name)
		}
	}
	if err := checkDistinctVars(t.Goal); err != nil {
		return fmt.Errorf("task: goal: %w", err)
	}
	for _, f := range t.Goal {
		if err := t.checkFact(f); err != nil {
			return fmt.Errorf("task: goal: %w", err)
		}
	}
	for i, op := range t.Operators {
		if err := t.validateOperator(op); err != nil {
			return fmt.Errorf("task: operator %d (%s): %w", i, op.Name, err)
		}
	}
	for i, ax := range t.Axioms {
		if err := t.validateAxiom(ax); err != nil {
			return fmt.Errorf("task: axiom %d: %w", i, err)
		}
	}
	for i, mg := range t.Mutexes {
		seenVars := map[int]int{}
		for _, f := range mg.Facts {
			if err := t.checkFact(f); err != nil {
				return fmt.Errorf("task: mutex group %d: %w", i, err)
			}
			if prev, ok := seenVars[f.Var]; ok {
				_ = prev
				return fmt.Errorf("task: mutex group %d: variable %d appears with two values", i, f.Var)
			}
			seenVars[f.Var] = f.Value
		}
	}
	return nil
}

func (t *Task) checkFact(f Fact) error {
	if f.Var < 0 || f.Var >= len(t.Variables) {
		return fmt.Errorf("%w: %d", ErrVariableOutOfRange, f.Var)
	}
	if !t.Variables[f.Var].InDomain(f.Value) {
		return fmt.Errorf("%w: value %d for variable %d", ErrValueOutOfDomain, f.Value, f.Var)
	}
	return nil
}

func checkDistinctVars(facts []Fact) error {
	seen := map[int]bool{}
	for _, f := range facts {
		if seen[f.Var] {
			return fmt.Errorf("variable %d appears twice", f.Var)
		}
		seen[f.Var] = true
	}
	return nil
}

func (t *Task) validateOperator(op Operator) error {
	for _, f := range op.Preconditions {
		if err := t.checkFact(f); err != nil {
			return fmt.Errorf("precondition: %w", err)
		}
	}
	written := map[int]int{}
	for _, e := range op.Effects {
		if err := t.checkFact(Fact{e.Var, e.Value}); err != nil {
			return fmt.Errorf("effect: %w", err)
		}
		if e.PreValue != -1 {
			if !t.Variables[e.Var].InDomain(e.PreValue) {
				return fmt.Errorf("%w: effect precondition value %d for variable %d", ErrValueOutOfDomain, e.PreValue, e.Var)
			}
		}
		for _, c := range e.Condition {
			if err := t.checkFact(c); err != nil {
				return fmt.Errorf("effect condition: %w", err)
			}
			if c.Var == e.Var && c.Value != e.PreValue && e.PreValue != -1 {
				return fmt.Errorf("effect condition on variable %d conflicts with declared precondition", e.Var)
			}
		}
		if prev, ok := written[e.Var]; ok && prev != e.Value {
			return fmt.Errorf("conflicting effects write different values to variable %d", e.Var)
		}
		written[e.Var] = e.Value
	}
	if op.Cost < 0 {
		return fmt.Errorf("negative cost %d", op.Cost)
	}
	return nil
}

func (t *Task) validateAxiom(ax Axiom) error {
	if ax.EffectVar < 0 || ax.EffectVar >= len(t.Variables) {
		return fmt.Errorf("%w: %d", ErrVariableOutOfRange, ax.EffectVar)
	}
	v := t.Variables[ax.EffectVar]
	if !v.Derived() {
		return fmt.Errorf("effect variable %d is not derived", ax.EffectVar)
	}
	if !v.InDomain(ax.OldValue) || !v.InDomain(ax.NewValue) {
		return fmt.Errorf("%w: old/new value for variable %d", ErrValueOutOfDomain, ax.EffectVar)
	}
	for _, c := range ax.Condition {
		if err := t.checkFact(c); err != nil {
			return fmt.Errorf("condition: %w", err)
		}
	}
	return nil
}
