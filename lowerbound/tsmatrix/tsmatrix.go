// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsmatrix precomputes the template-switch lower-bound matrix
// (spec §4.4, C7): the cheapest cost of displacing the primary coordinate
// by (Δr, Δq) via a single template switch, computed once by
// saturating an A* search over a synthetic homogeneous genome so the
// result is independent of real sequence content and can be reused as an
// O(1) lookup (a same-character genome can only ever be cheaper to align
// than real, possibly-mismatching sequence, so every entry is a valid
// lower bound on the corresponding real-genome cost).
package tsmatrix

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsgraph"
	"github.com/kortschak/tsalign/tsseq"
)

// Matrix is the precomputed (Δr, Δq) → cost lower bound.
type Matrix struct {
	costs     map[[2]int]cost.Cost
	radius    int
	saturated bool
}

// Lookup returns the lower-bound cost of a template-switch round trip that
// displaces the primary coordinate by (dr, dq). Within the saturated
// radius, a missing entry means the displacement was confirmed
// unreachable and returns Inf; outside the radius (or if the build never
// fully saturated), it conservatively returns Zero, which is always a
// valid, if uninformative, lower bound.
func (m *Matrix) Lookup(dr, dq int) cost.Cost {
	if c, ok := m.costs[[2]int{dr, dq}]; ok {
		return c
	}
	if m.saturated && abs(dr)+abs(dq) <= m.radius {
		return cost.Inf
	}
	return cost.Zero
}

// ForEach calls fn once per confirmed-reachable (dr, dq) offset within the
// saturated radius, in unspecified order. Used by lowerbound/alignmatrix
// (C8) to enumerate the shortcut edges a template switch can take.
func (m *Matrix) ForEach(fn func(dr, dq int, c cost.Cost)) {
	for k, v := range m.costs {
		fn(k[0], k[1], v)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Build runs the saturating search described above. cfg is the caller's
// real template-switch configuration; alpha/letter choose the single
// repeated character the synthetic genome is built from (any character of
// the configured alphabet works, since every position then matches every
// other). radius bounds how far from the origin the matrix is filled in;
// attempts bounds the doubling cost-limit retries (spec §9 "large
// speedups" from caching — the retry starts small since most template
// switches are cheap, and only pays for a wide search when the
// configuration actually needs one).
func Build(cfg tsconfig.Config, alpha alphabet.Alphabet, letter alphabet.Letter, radius, attempts int) *Matrix {
	n := 4*radius + 16
	letters := make(alphabet.Letters, n)
	for i := range letters {
		letters[i] = letter
	}
	synth := tsseq.New("synthetic", letters, alpha)
	origin := n / 2

	synthCfg := cfg
	synthCfg.LeftFlankLength, synthCfg.RightFlankLength = 0, 0
	synthCfg.Primary = editcost.Forbidden()
	synthCfg.LeftFlank = editcost.Forbidden()
	synthCfg.RightFlank = editcost.Forbidden()

	ctx := &tsgraph.Context{
		Ref:        synth,
		Query:      synth,
		Config:     synthCfg,
		Strategies: strategy.ForTemplateSwitchLowerBound(),
	}

	root := astar.Node[tsgraph.Identifier, tsgraph.Edge]{
		ID: tsgraph.Identifier{
			Kind:             tsgraph.KindPrimary,
			R:                origin,
			Q:                origin,
			AvailableMatches: ctx.Strategies.PrimaryMatch.RootBudget(),
		},
	}
	never := func(astar.Node[tsgraph.Identifier, tsgraph.Edge]) bool { return false }

	var engine *astar.Engine[tsgraph.Identifier, tsgraph.Edge]
	buffers := astar.NewBuffers[tsgraph.Identifier, tsgraph.Edge]()
	limit := cost.FromInt(4)
	saturated := false
	for attempt := 0; attempt < attempts; attempt++ {
		engine = astar.NewWithBuffers[tsgraph.Identifier, tsgraph.Edge](ctx, buffers)
		engine.SetCostLimit(limit)
		engine.InitialiseWith(root)
		result := engine.SearchUntil(never)
		if result.Reason == astar.NoTarget {
			saturated = true
			break
		}
		limit = limit.Add(limit).Add(cost.FromInt(1))
		buffers = engine.IntoBuffers()
	}

	m := &Matrix{costs: make(map[[2]int]cost.Cost), radius: radius, saturated: saturated}
	for id, node := range engine.ClosedNodes() {
		if id.Kind != tsgraph.KindPrimaryReentry {
			continue
		}
		dr, dq := id.R-origin, id.Q-origin
		if abs(dr) > radius || abs(dq) > radius {
			continue
		}
		key := [2]int{dr, dq}
		if existing, ok := m.costs[key]; !ok || node.G.Less(existing) {
			m.costs[key] = node.G
		}
	}
	return m
}
