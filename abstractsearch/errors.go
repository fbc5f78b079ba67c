// Package abstractsearch runs shortest-path search over a Cartesian
// abstraction's transition system: since the only heuristic available to it
// is zero, this is uniform-cost (Dijkstra-equivalent) search, using the
// same container/heap lazy-decrease-key pattern as a standard Dijkstra
// implementation.
package abstractsearch

import "errors"

// ErrNoSolution is returned by Search when no path exists from source to
// any goal state in the current transition system.
var ErrNoSolution = errors.New("abstractsearch: no path to a goal state")
