// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsgraph"
	"github.com/kortschak/tsalign/tsseq"
)

// Limits carries the optional cost/memory bounds spec §4.1/§6 describe. A
// zero-value Limits runs unbounded.
type Limits struct {
	Cost      cost.Cost
	HasCost   bool
	Memory    int
	HasMemory bool
}

// Params bundles everything one top-level alignment run needs: the two
// restricted sequences, the TS configuration, the policy set (spec §4.7/
// §4.8), and the optional admissible-heuristic collaborators C9/C10 supply.
// Chain and MinLength may be nil, in which case the search still runs,
// just less informed (spec §4.2 heuristic "contributes zero" default).
type Params struct {
	Ref, Query tsseq.Sequence
	Config     tsconfig.Config
	Strategies strategy.Set
	Chain      tsgraph.ChainLowerBound
	MinLength  tsgraph.MinLengthPricer
	Limits     Limits
}

// Run drives one full template-switch alignment search (spec §4.1, §4.2)
// from an empty engine to a terminal Result.
func Run(p Params) Result {
	ctx := &tsgraph.Context{
		Ref:        p.Ref,
		Query:      p.Query,
		Config:     p.Config,
		Strategies: p.Strategies,
		Chain:      p.Chain,
		MinLength:  p.MinLength,
	}
	engine := astar.New[tsgraph.Identifier, tsgraph.Edge](ctx)
	if p.Limits.HasCost {
		engine.SetCostLimit(p.Limits.Cost)
	}
	if p.Limits.HasMemory {
		engine.SetMemoryLimit(p.Limits.Memory)
	}
	engine.Initialise()
	res := engine.Search()

	stats := Statistics{Statistics: engine.Statistics()}
	if res.Reason != astar.FoundTarget {
		return Result{Found: false, Reason: res.Reason, Statistics: stats}
	}

	path := engine.BacktrackNodes()
	reversePath(path)
	stats.TSCount = countTemplateSwitches(path)

	return Result{
		Found:      true,
		Reason:     res.Reason,
		Edges:      buildEdges(path),
		Path:       path,
		Statistics: stats,
	}
}

// reversePath turns BacktrackNodes' target-to-root order into the
// root-to-target order every other function in this package expects.
func reversePath(path []astar.Node[tsgraph.Identifier, tsgraph.Edge]) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
