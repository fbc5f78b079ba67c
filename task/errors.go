package task

import "errors"

// ErrVariableOutOfRange is returned when a fact references a variable id
// outside the task's declared variables.
var ErrVariableOutOfRange = errors.New("task: variable id out of range")

// ErrValueOutOfDomain is returned when a fact's value is outside the
// variable's declared domain.
var ErrValueOutOfDomain = errors.New("task: value out of domain")
