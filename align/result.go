// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package align wires the generic search engine (C5) to the template-switch
// graph (C6) into one top-level run, and provides the backtrack, cost
// recompute, and boundary-nudge operations spec §4.9 describes. This is the
// package cmd/tsalign drives.
package align

import (
	"time"

	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/tsgraph"
)

// Statistics extends astar.Statistics with the TS-count counter spec §6
// requires of every search output.
type Statistics struct {
	astar.Statistics
	TSCount int
}

// Result is the outcome of Run: either Found, carrying the compressed edge
// sequence and the full uncompressed path (for Recompute/Nudge), or not, in
// which case only Statistics and Reason are meaningful (spec §6
// "AlignmentResult::WithTarget / WithoutTarget").
type Result struct {
	Found      bool
	Reason     astar.Reason
	Edges      []EdgeRun
	Path       []astar.Node[tsgraph.Identifier, tsgraph.Edge] // root to target; empty unless Found
	Statistics Statistics
}

// Duration reports how long the underlying search took.
func (r Result) Duration() time.Duration { return r.Statistics.Duration }

// Cost returns the terminal cost, or Zero if the search did not find a
// target (spec §6 "terminal cost (0 if none)").
func (r Result) Cost() cost.Cost {
	if !r.Found {
		return cost.Zero
	}
	return r.Statistics.TerminalCost
}
