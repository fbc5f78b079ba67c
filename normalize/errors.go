// Package normalize applies a variable ordering to a task: it drops
// irrelevant variables, reindexes the survivors by level, and strips any
// operator/axiom/mutex content that refers only to dropped variables.
package normalize

import "errors"

// ErrGoalUnreachableOnDrop is returned when a goal fact names a variable the
// ordering pruned as unreachable: per spec invariant, a caller must never
// reach this unless the ordering's relevance pruning is itself broken, since
// every goal variable is seeded as necessary before pruning runs.
var ErrGoalUnreachableOnDrop = errors.New("normalize: goal references a pruned variable")
