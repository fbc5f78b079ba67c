// Package wire implements the bit-exact textual contract between the SAS+
// translator and the preprocessor (input) and between the preprocessor and
// the search component (output), including the successor-generator, DTG,
// and causal-graph encodings embedded in the latter.
package wire

import "fmt"

// ParseError is returned for any malformed input: a missing or misspelled
// begin_X/end_X marker, a version mismatch, or a field that fails to parse
// as an integer. It carries enough context for a human to fix the input:
// parsing is modeled as a fallible operation returning an error, not a
// panic.
type ParseError struct {
	Line       int
	Expected   string
	Found      string
	Suggestion string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("wire: line %d: expected %q, found %q", e.Line, e.Expected, e.Found)
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	return msg
}
