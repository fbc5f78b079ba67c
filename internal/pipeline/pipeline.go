// Package pipeline wires the domain packages (causalgraph, normalize, dtg,
// succgen, cegar, costsaturation, heuristic) into the two operations the
// driver exposes: preprocess and solve.
package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/planlab/sascegar/causalgraph"
	"github.com/planlab/sascegar/costsaturation"
	"github.com/planlab/sascegar/dtg"
	"github.com/planlab/sascegar/heuristic"
	"github.com/planlab/sascegar/internal/config"
	"github.com/planlab/sascegar/normalize"
	"github.com/planlab/sascegar/splitselect"
	"github.com/planlab/sascegar/succgen"
	"github.com/planlab/sascegar/task"
	"github.com/planlab/sascegar/wire"
)

// Preprocess runs the causal-graph, variable-ordering, normalization,
// domain-transition-graph, and successor-generator stages over t, producing
// the Output the wire format serializes.
func Preprocess(t *task.Task) (*wire.Output, *normalize.Result, error) {
	if err := t.Validate(); err != nil {
		return nil, nil, fmt.Errorf("pipeline: invalid task: %w", err)
	}

	cg := causalgraph.Build(t)
	ordering := causalgraph.Order(cg, t.Goal, causalgraph.DefaultOptions())

	norm, err := normalize.Apply(t, ordering)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: normalize: %w", err)
	}

	normGraph := causalgraph.Build(norm.Task)
	// The normalizer renumbers variables by level, so variable i has level i.
	levelOrder := make([]int, len(norm.Task.Variables))
	for i := range levelOrder {
		levelOrder[i] = i
	}

	dtgs := dtg.Build(norm.Task)
	gen := succgen.Build(norm.Task, levelOrder)

	return &wire.Output{
		Task:    norm.Task,
		Graph:   normGraph,
		DTGs:    dtgs,
		SuccGen: gen,
	}, norm, nil
}

// Solve builds the cost-saturation heuristic over the preprocessed task and
// wraps it in the single-integer façade contract. One subtask per goal fact
// is used unless cfg.NumComponents overrides that; with cfg.CostSaturation
// false, a single subtask covers the whole goal.
func Solve(o *wire.Output, cfg *config.PlannerConfig, logger zerolog.Logger) (*heuristic.Facade, error) {
	t := o.Task
	domainSizes := make([]int, len(t.Variables))
	for i, v := range t.Variables {
		domainSizes[i] = v.Domain
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	specs := buildSubtaskSpecs(t, cfg.NumComponents)
	if !cfg.CostSaturation {
		specs = buildSubtaskSpecs(t, 1)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("pipeline: task has no goal facts to build subtasks from")
	}

	var hadd *splitselect.HAdd
	if policy == splitselect.MinHAdd || policy == splitselect.MaxHAdd {
		costOf := func(opIdx int) int { return t.Operators[opIdx].Cost }
		hadd = splitselect.Build(t, domainSizes, t.Initial, costOf)
	}

	var rng *rand.Rand
	if policy == splitselect.Random {
		rng = rand.New(rand.NewSource(cfg.RandomSeed))
	}

	opts := costsaturation.Options{
		DomainSizes:    domainSizes,
		DTGs:           o.DTGs,
		Policy:         policy,
		HAdd:           hadd,
		Rng:            rng,
		MaxStates:      cfg.MaxStates,
		MaxTransitions: cfg.MaxTransitions,
		TimeLimit:      cfg.TimeLimit,
		CanaryBytes:    cfg.MemoryLimitMB << 20,
		Logger:         logger,
	}

	h, err := costsaturation.Run(t, specs, opts)
	if err != nil {
		return nil, fmt.Errorf("pipeline: cost saturation: %w", err)
	}
	return heuristic.New(h), nil
}

// buildSubtaskSpecs partitions the goal into one subtask per fact, unless n
// requests a different (coarser) grouping: groups of consecutive goal facts
// of roughly equal size. Cost saturation's additivity proof holds for any
// partition of the goal into subtasks, so this latitude is safe.
func buildSubtaskSpecs(t *task.Task, n int) []costsaturation.SubtaskSpec {
	if len(t.Goal) == 0 {
		return nil
	}
	if n <= 0 || n >= len(t.Goal) {
		specs := make([]costsaturation.SubtaskSpec, len(t.Goal))
		for i, f := range t.Goal {
			specs[i] = costsaturation.SubtaskSpec{Goal: []task.Fact{f}}
		}
		return specs
	}
	specs := make([]costsaturation.SubtaskSpec, 0, n)
	base := len(t.Goal) / n
	extra := len(t.Goal) % n
	idx := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		if size == 0 {
			continue
		}
		specs = append(specs, costsaturation.SubtaskSpec{Goal: append([]task.Fact(nil), t.Goal[idx:idx+size]...)})
		idx += size
	}
	return specs
}
