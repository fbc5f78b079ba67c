package wire

import (
	"io"
	"strconv"

	"github.com/planlab/sascegar/task"
)

// Parse reads a SAS+ translator-output file and returns the task it
// describes. Variable, operator, and axiom ids in the returned task match
// their declaration order in r; no ordering, pruning, or normalization is
// applied — that is the causalgraph/normalize pipeline's job.
func Parse(r io.Reader) (*task.Task, error) {
	l, err := newLineReader(r)
	if err != nil {
		return nil, err
	}

	if err := l.expect("begin_version"); err != nil {
		return nil, err
	}
	version, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	if version != ExpectedVersion {
		return nil, &ParseError{
			Line:       l.idx,
			Expected:   strconv.Itoa(ExpectedVersion),
			Found:      strconv.Itoa(version),
			Suggestion: "re-run the translator that produced this file; its output format version has changed",
		}
	}
	if err := l.expect("end_version"); err != nil {
		return nil, err
	}

	if err := l.expect("begin_metric"); err != nil {
		return nil, err
	}
	metric, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	if err := l.expect("end_metric"); err != nil {
		return nil, err
	}

	variables, err := parseVariables(l)
	if err != nil {
		return nil, err
	}

	mutexes, err := parseMutexGroups(l)
	if err != nil {
		return nil, err
	}

	if err := l.expect("begin_state"); err != nil {
		return nil, err
	}
	initial := make([]int, len(variables))
	for i := range variables {
		v, err := l.nextInt()
		if err != nil {
			return nil, err
		}
		initial[i] = v
	}
	if err := l.expect("end_state"); err != nil {
		return nil, err
	}

	goal, err := parseGoal(l)
	if err != nil {
		return nil, err
	}

	operators, err := parseOperators(l)
	if err != nil {
		return nil, err
	}

	axioms, err := parseAxioms(l)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		Variables:      variables,
		Mutexes:        mutexes,
		Initial:        initial,
		Goal:           goal,
		Operators:      operators,
		Axioms:         axioms,
		UseActionCosts: metric == 1,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseVariables(l *lineReader) ([]task.Variable, error) {
	n, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	variables := make([]task.Variable, n)
	for i := 0; i < n; i++ {
		if err := l.expect("begin_variable"); err != nil {
			return nil, err
		}
		name, err := l.next()
		if err != nil {
			return nil, err
		}
		axiomLayer, err := l.nextInt()
		if err != nil {
			return nil, err
		}
		domainSize, err := l.nextInt()
		if err != nil {
			return nil, err
		}
		for v := 0; v < domainSize; v++ {
			if _, err := l.next(); err != nil { // value name, not otherwise retained
				return nil, err
			}
		}
		if err := l.expect("end_variable"); err != nil {
			return nil, err
		}
		variables[i] = task.Variable{
			Name:       name,
			Domain:     domainSize,
			AxiomLayer: axiomLayer,
			Default:    domainSize - 1,
			Level:      -1,
		}
	}
	return variables, nil
}

func parseMutexGroups(l *lineReader) ([]task.MutexGroup, error) {
	n, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	groups := make([]task.MutexGroup, n)
	for i := 0; i < n; i++ {
		if err := l.expect("begin_mutex_group"); err != nil {
			return nil, err
		}
		numFacts, err := l.nextInt()
		if err != nil {
			return nil, err
		}
		facts := make([]task.Fact, numFacts)
		for j := 0; j < numFacts; j++ {
			v, val, err := l.nextIntPair()
			if err != nil {
				return nil, err
			}
			facts[j] = task.Fact{Var: v, Value: val}
		}
		if err := l.expect("end_mutex_group"); err != nil {
			return nil, err
		}
		groups[i] = task.MutexGroup{Facts: facts}
	}
	return groups, nil
}

func parseGoal(l *lineReader) ([]task.Fact, error) {
	if err := l.expect("begin_goal"); err != nil {
		return nil, err
	}
	n, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	goal := make([]task.Fact, n)
	for i := 0; i < n; i++ {
		v, val, err := l.nextIntPair()
		if err != nil {
			return nil, err
		}
		goal[i] = task.Fact{Var: v, Value: val}
	}
	if err := l.expect("end_goal"); err != nil {
		return nil, err
	}
	return goal, nil
}

func parseOperators(l *lineReader) ([]task.Operator, error) {
	n, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	ops := make([]task.Operator, n)
	for i := 0; i < n; i++ {
		op, err := parseOneOperator(l)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func parseOneOperator(l *lineReader) (task.Operator, error) {
	if err := l.expect("begin_operator"); err != nil {
		return task.Operator{}, err
	}
	name, err := l.next()
	if err != nil {
		return task.Operator{}, err
	}
	numPrevail, err := l.nextInt()
	if err != nil {
		return task.Operator{}, err
	}
	prevail := make([]task.Fact, numPrevail)
	for j := 0; j < numPrevail; j++ {
		v, val, err := l.nextIntPair()
		if err != nil {
			return task.Operator{}, err
		}
		prevail[j] = task.Fact{Var: v, Value: val}
	}

	numEffects, err := l.nextInt()
	if err != nil {
		return task.Operator{}, err
	}
	effects := make([]task.Effect, numEffects)
	for j := 0; j < numEffects; j++ {
		numCond, err := l.nextInt()
		if err != nil {
			return task.Operator{}, err
		}
		cond := make([]task.Fact, numCond)
		for k := 0; k < numCond; k++ {
			v, val, err := l.nextIntPair()
			if err != nil {
				return task.Operator{}, err
			}
			cond[k] = task.Fact{Var: v, Value: val}
		}
		// "<var> <pre>" and "<post>" may share one line or take two.
		fields, err := l.nextInts()
		if err != nil {
			return task.Operator{}, err
		}
		var v, pre, post int
		switch len(fields) {
		case 3:
			v, pre, post = fields[0], fields[1], fields[2]
		case 2:
			v, pre = fields[0], fields[1]
			if post, err = l.nextInt(); err != nil {
				return task.Operator{}, err
			}
		default:
			return task.Operator{}, &ParseError{Line: l.idx, Expected: "<var> <pre> [<post>]", Found: strconv.Itoa(len(fields)) + " fields"}
		}
		effects[j] = task.Effect{Var: v, PreValue: pre, Value: post, Condition: cond}
	}

	cost, err := l.nextInt()
	if err != nil {
		return task.Operator{}, err
	}
	if err := l.expect("end_operator"); err != nil {
		return task.Operator{}, err
	}
	return task.Operator{Name: name, Preconditions: prevail, Effects: effects, Cost: cost}, nil
}

func parseAxioms(l *lineReader) ([]task.Axiom, error) {
	n, err := l.nextInt()
	if err != nil {
		return nil, err
	}
	axioms := make([]task.Axiom, n)
	for i := 0; i < n; i++ {
		if err := l.expect("begin_rule"); err != nil {
			return nil, err
		}
		numCond, err := l.nextInt()
		if err != nil {
			return nil, err
		}
		cond := make([]task.Fact, numCond)
		for j := 0; j < numCond; j++ {
			v, val, err := l.nextIntPair()
			if err != nil {
				return nil, err
			}
			cond[j] = task.Fact{Var: v, Value: val}
		}
		v, oldVal, newVal, err := l.nextIntTriple()
		if err != nil {
			return nil, err
		}
		if err := l.expect("end_rule"); err != nil {
			return nil, err
		}
		axioms[i] = task.Axiom{EffectVar: v, OldValue: oldVal, NewValue: newVal, Condition: cond}
	}
	return axioms, nil
}
