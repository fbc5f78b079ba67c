package task

// Applicable reports whether op can fire in a state given as a flat vector
// of variable values indexed by variable id. It checks only the prevail
// preconditions and each effect's own PreValue; it does not evaluate effect
// conditions, since those gate individual effects, not applicability.
func (op Operator) Applicable(values []int) bool {
	for _, f := range op.Preconditions {
		if values[f.Var] != f.Value {
			return false
		}
	}
	for _, e := range op.Effects {
		if e.PreValue != -1 && values[e.Var] != e.PreValue {
			return false
		}
	}
	return true
}

// EffectFires reports whether e's effect condition holds in values.
func (e Effect) EffectFires(values []int) bool {
	for _, c := range e.Condition {
		if values[c.Var] != c.Value {
			return false
		}
	}
	return true
}
