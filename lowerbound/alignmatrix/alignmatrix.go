// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alignmatrix precomputes the alignment lower-bound matrix (spec
// §4.5, C8): the cheapest cost of covering a (Δr, Δq) rectangle using only
// primary edits, except that a single template switch may be taken for
// free by consulting lowerbound/tsmatrix as a one-shot shortcut edge. Like
// C7, it is computed once over a synthetic homogeneous genome, by a
// dedicated, simpler A* state (no flanks, no TS excursion) over
// astar.Engine.
package alignmatrix

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/lowerbound/tsmatrix"
	"github.com/kortschak/tsalign/strategy"
)

// gapState mirrors tsgraph's GapType for the primary lane only; alignmatrix
// has no flanks or secondary walk so it does not need tsgraph's full
// Identifier.
type gapState int

const (
	gapNone gapState = iota
	gapDeletion
	gapInsertion
)

// identifier is the node identifier for the C8 synthetic search.
type identifier struct {
	R, Q             int
	Gap              gapState
	AvailableMatches int
}

// op tags which kind of move produced a successor, used only to keep the
// astar.Context generic parameter concrete; C8 never backtracks an edge
// sequence, only its terminal cost.
type op int

const (
	opMatch op = iota
	opDeletion
	opInsertion
	opShortcut
)

type edge struct{ op op }

// ctx implements astar.Context[identifier, edge] over a synthetic
// homogeneous genome: every diagonal move is a match (no mismatches are
// representable with a single repeated letter), so this search only ever
// prices matches, gaps, and TS shortcuts — exactly the moves spec §4.5
// allows.
type ctx struct {
	letter       alphabet.Letter
	primary      *editcost.Table
	primaryMatch strategy.PrimaryMatch
	shortcuts    *tsmatrix.Matrix
	origin       int
	// bound caps how far from origin a node may be generated. Unlike C7,
	// this search has no finite backing genome to run out of, so a
	// zero-cost match chain (a common "match costs nothing" configuration)
	// would otherwise never close the open list. Capping coordinates at the
	// radius of interest (plus slack for a shortcut landing just outside it)
	// makes the state space finite, so the doubling-retry loop is
	// guaranteed to eventually observe NoTarget.
	bound int
}

var _ astar.Context[identifier, edge] = (*ctx)(nil)

func (c *ctx) CreateRoot() astar.Node[identifier, edge] {
	return astar.Node[identifier, edge]{
		ID: identifier{R: c.origin, Q: c.origin, AvailableMatches: c.primaryMatch.RootBudget()},
	}
}

// IsTarget is never consulted: Build saturates the whole search with a
// predicate that always returns false, then scans closed nodes.
func (c *ctx) IsTarget(astar.Node[identifier, edge]) bool { return false }

func (c *ctx) inBounds(r, q int) bool {
	return abs(r-c.origin) <= c.bound && abs(q-c.origin) <= c.bound
}

func (c *ctx) GenerateSuccessors(node astar.Node[identifier, edge], push func(astar.Node[identifier, edge])) {
	id := node.ID

	if c.primaryMatch.CanMatch(id.AvailableMatches) && c.inBounds(id.R+1, id.Q+1) {
		matchCost := c.primary.MatchOrSubstitution(c.letter, c.letter)
		if !matchCost.IsInf() {
			push(astar.Node[identifier, edge]{
				ID: identifier{
					R: id.R + 1, Q: id.Q + 1, Gap: gapNone,
					AvailableMatches: c.primaryMatch.NextBudget(id.AvailableMatches, true),
				},
				G: node.G.Add(matchCost), Pred: id, HasPred: true, Edge: edge{opMatch},
			})
		}
	}

	gapCost := func(open bool) cost.Cost {
		if open {
			return c.primary.GapOpen(c.letter)
		}
		return c.primary.GapExtend(c.letter)
	}

	if delCost := gapCost(id.Gap != gapDeletion); !delCost.IsInf() && c.inBounds(id.R+1, id.Q) {
		push(astar.Node[identifier, edge]{
			ID: identifier{
				R: id.R + 1, Q: id.Q, Gap: gapDeletion,
				AvailableMatches: c.primaryMatch.NextBudget(id.AvailableMatches, false),
			},
			G: node.G.Add(delCost), Pred: id, HasPred: true, Edge: edge{opDeletion},
		})
	}
	if insCost := gapCost(id.Gap != gapInsertion); !insCost.IsInf() && c.inBounds(id.R, id.Q+1) {
		push(astar.Node[identifier, edge]{
			ID: identifier{
				R: id.R, Q: id.Q + 1, Gap: gapInsertion,
				AvailableMatches: c.primaryMatch.NextBudget(id.AvailableMatches, false),
			},
			G: node.G.Add(insCost), Pred: id, HasPred: true, Edge: edge{opInsertion},
		})
	}

	c.shortcuts.ForEach(func(dr, dq int, shortcutCost cost.Cost) {
		if !c.inBounds(id.R+dr, id.Q+dq) {
			return
		}
		push(astar.Node[identifier, edge]{
			ID: identifier{
				R: id.R + dr, Q: id.Q + dq, Gap: gapNone,
				AvailableMatches: c.primaryMatch.RootBudget(),
			},
			G: node.G.Add(shortcutCost), Pred: id, HasPred: true, Edge: edge{opShortcut},
		})
	})
}

// Matrix is the precomputed (Δr, Δq) → cost lower bound (spec §4.5).
type Matrix struct {
	costs     map[[2]int]cost.Cost
	radius    int
	saturated bool
}

// Lookup returns the lower-bound cost of covering a (dr, dq) rectangle with
// primary edits and at most one template switch shortcut, with the same
// Inf/Zero fallback convention as lowerbound/tsmatrix.
func (m *Matrix) Lookup(dr, dq int) cost.Cost {
	if c, ok := m.costs[[2]int{dr, dq}]; ok {
		return c
	}
	if m.saturated && abs(dr)+abs(dq) <= m.radius {
		return cost.Inf
	}
	return cost.Zero
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Build runs the saturating search. primary is the real primary edit
// table; shortcuts is C7's precomputed matrix; primaryMatch is the
// configured consecutive-match budget policy. A node only counts as having
// reached (Δr, Δq) for the purpose of this matrix if it still holds the
// full consecutive-match budget (see DESIGN.md Open Question 11: without a
// defined value for spec's
// "max_consecutive_primary_matches_at_start_and_end", this rework requires
// a full, unspent budget, which keeps every recorded cost safely minimal
// because a node that spent its whole budget reaching the corner is simply
// excluded rather than recorded at an optimistic cost that would not
// compose safely with a following segment).
func Build(letter alphabet.Letter, primary *editcost.Table, shortcuts *tsmatrix.Matrix, primaryMatch strategy.PrimaryMatch, radius, attempts int) *Matrix {
	// No real genome backs this search (moves are priced purely from the
	// edit table and the shortcut matrix), so the origin is an arbitrary
	// label; 0 keeps forward moves non-negative for readability.
	const origin = 0
	c := &ctx{
		letter: letter, primary: primary, primaryMatch: primaryMatch,
		shortcuts: shortcuts, origin: origin, bound: radius + 4,
	}

	var engine *astar.Engine[identifier, edge]
	buffers := astar.NewBuffers[identifier, edge]()
	limit := cost.FromInt(4)
	saturated := false
	for attempt := 0; attempt < attempts; attempt++ {
		engine = astar.NewWithBuffers[identifier, edge](c, buffers)
		engine.SetCostLimit(limit)
		engine.Initialise()
		result := engine.Search()
		if result.Reason == astar.NoTarget {
			saturated = true
			break
		}
		limit = limit.Add(limit).Add(cost.FromInt(1))
		buffers = engine.IntoBuffers()
	}

	requiredBudget := primaryMatch.MaxConsecutive
	m := &Matrix{costs: make(map[[2]int]cost.Cost), radius: radius, saturated: saturated}
	for id, node := range engine.ClosedNodes() {
		if requiredBudget > 0 && id.AvailableMatches < requiredBudget {
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
