// Package splitselect computes, for a flaw found during CEGAR refinement,
// the candidate (variable, wanted-set) splits that would eliminate it, and
// picks one according to a configurable policy.
package splitselect

import (
	"math/rand"

	"github.com/planlab/sascegar/cartesian"
	"github.com/planlab/sascegar/flawdetect"
)

// Policy selects among the candidate splits a flaw admits.
type Policy int

const (
	Random Policy = iota
	MinUnwanted
	MaxUnwanted
	MinRefined
	MaxRefined
	MinHAdd
	MaxHAdd
)

// Candidate is one (variable, wanted-set) split that would eliminate a
// flaw: wanted is the intersection of the current abstract state's subset
// for Var with the flaw's desired subset, a non-empty proper subset of the
// current state's own subset.
type Candidate struct {
	Var    int
	Wanted []int
}

// Candidates returns every split that would eliminate flaw, given the
// abstract state current at the flaw (abstractState) and each variable's
// domain size.
func Candidates(flaw *flawdetect.Flaw, abstractState *cartesian.AbstractState, domainSizes []int) []Candidate {
	var out []Candidate
	for v, size := range domainSizes {
		concreteVal := flaw.ConcreteState.Values[v]
		if flaw.Desired.Test(v, concreteVal) {
			continue // this variable is not where concrete and desired diverge
		}
		wanted := abstractState.Set.IntersectValues(flaw.Desired, v, size)
		if len(wanted) == 0 || len(wanted) >= abstractState.Count(v) {
			continue
		}
		out = append(out, Candidate{Var: v, Wanted: wanted})
	}
	return out
}

// Select picks one candidate according to policy. rng is consulted only by
// Random; hadd is consulted only by MinHAdd/MaxHAdd (callers using other
// policies may pass nil for either). Ties are broken by candidate order,
// matching a deterministic-by-iteration-order rule.
func Select(cands []Candidate, policy Policy, abstractState *cartesian.AbstractState, domainSizes []int, hadd *HAdd, rng *rand.Rand) Candidate {
	switch policy {
	case Random:
		return cands[rng.Intn(len(cands))]
	case MinUnwanted:
		return bestBy(cands, abstractState, domainSizes, hadd, unwantedScore, true)
	case MaxUnwanted:
		return bestBy(cands, abstractState, domainSizes, hadd, unwantedScore, false)
	case MinRefined:
		return bestByFloat(cands, abstractState, domainSizes, refinedScore, true)
	case MaxRefined:
		return bestByFloat(cands, abstractState, domainSizes, refinedScore, false)
	case MinHAdd:
		return bestByFloat(cands, abstractState, domainSizes, minHAddScore(hadd), true)
	case MaxHAdd:
		return bestByFloat(cands, abstractState, domainSizes, maxHAddScore(hadd), false)
	default:
		return cands[0]
	}
}

// unwantedScore is |current subset| - |wanted|.
func unwantedScore(c Candidate, abstractState *cartesian.AbstractState, _ []int, _ *HAdd) int {
	return abstractState.Count(c.Var) - len(c.Wanted)
}

func bestBy(cands []Candidate, abstractState *cartesian.AbstractState, domainSizes []int, hadd *HAdd, score func(Candidate, *cartesian.AbstractState, []int, *HAdd) int, wantMin bool) Candidate {
	best := cands[0]
	bestScore := score(best, abstractState, domainSizes, hadd)
	for _, c := range cands[1:] {
		s := score(c, abstractState, domainSizes, hadd)
		if (wantMin && s < bestScore) || (!wantMin && s > bestScore) {
			best, bestScore = c, s
		}
	}
	return best
}

// refinedScore is -|current subset| / |original domain|: MIN_REFINED picks
// the smallest (most negative, i.e. the variable still LEAST refined); MAX
// picks the variable already MOST refined.
func refinedScore(c Candidate, abstractState *cartesian.AbstractState, domainSizes []int) float64 {
	return -float64(abstractState.Count(c.Var)) / float64(domainSizes[c.Var])
}

// minHAddScore reduces a candidate's unwanted facts to the minimum h^add
// value among them.
func minHAddScore(hadd *HAdd) func(Candidate, *cartesian.AbstractState, []int) float64 {
	return func(c Candidate, abstractState *cartesian.AbstractState, domainSizes []int) float64 {
		return float64(reduceHAdd(c, abstractState, domainSizes, hadd, true))
	}
}

// maxHAddScore reduces a candidate's unwanted facts to the maximum h^add
// value among them.
func maxHAddScore(hadd *HAdd) func(Candidate, *cartesian.AbstractState, []int) float64 {
	return func(c Candidate, abstractState *cartesian.AbstractState, domainSizes []int) float64 {
		return float64(reduceHAdd(c, abstractState, domainSizes, hadd, false))
	}
}

// reduceHAdd computes h^add(var=v) for every value v in the variable's
// original domain that is NOT in wanted, and returns the min or max across
// them, per the HADD policy definition.
func reduceHAdd(c Candidate, _ *cartesian.AbstractState, domainSizes []int, hadd *HAdd, wantMin bool) int {
	inWanted := make(map[int]bool, len(c.Wanted))
	for _, v := range c.Wanted {
		inWanted[v] = true
	}
	best := -1
	for v := 0; v < domainSizes[c.Var]; v++ {
		if inWanted[v] {
			continue
		}
		hv := hadd.Value(c.Var, v)
		if best == -1 || (wantMin && hv < best) || (!wantMin && hv > best) {
			best = hv
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func bestByFloat(cands []Candidate, abstractState *cartesian.AbstractState, domainSizes []int, score func(Candidate, *cartesian.AbstractState, []int) float64, wantMin bool) Candidate {
	best := cands[0]
	bestScore := score(best, abstractState, domainSizes)
	for _, c := range cands[1:] {
		s := score(c, abstractState, domainSizes)
		if (wantMin && s < bestScore) || (!wantMin && s > bestScore) {
			best, bestScore = c, s
		}
	}
	return best
}
