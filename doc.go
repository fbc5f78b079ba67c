// Command-adjacent package sascegar is the repository root: a SAS+
// preprocessor and Cartesian-CEGAR cost-saturation heuristic builder for
// optimal classical planning.
//
// The pipeline runs in two stages:
//
//	task        — the immutable SAS+ planning task model
//	causalgraph — causal graph construction, SCC decomposition, MaxDAG
//	              variable ordering, relevance pruning
//	normalize   — variable reindexing onto the retained, ordered set
//	dtg         — per-variable domain-transition graphs
//	succgen     — the successor-generator decision tree
//	state       — concrete states and stratified-axiom successor semantics
//	cartesian   — Cartesian abstraction, refinement hierarchy, transitions
//	abstractsearch — abstract A* over an abstraction's transition system
//	flawdetect  — concrete-plan tracing and flaw detection
//	splitselect — split-candidate scoring policies and h^add
//	cegar       — the counterexample-guided refinement driver
//	costsaturation — additive combination of several CEGAR abstractions
//	heuristic   — the single-integer façade an outer search loop consumes
//	wire        — the textual input/output contract with the translator
//	              and the search component
//
// cmd/sascegar wires these into a cobra CLI with preprocess and solve
// subcommands.
package sascegar
