package costsaturation

import "errors"

// ErrNoGenerators is returned by Run when given an empty subtask-generator
// list: cost saturation over zero components is a caller error, not a
// degenerate zero heuristic.
var ErrNoGenerators = errors.New("costsaturation: no subtask generators supplied")
