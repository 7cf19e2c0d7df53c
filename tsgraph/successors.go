// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsgraph

import (
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
)

// entranceCombo enumerates one of the eight (primary, secondary,
// direction) template-switch combinations (spec §3, §4.2.1).
type entranceCombo struct {
	primary   tsconfig.Primary
	secondary tsconfig.Secondary
	direction tsconfig.Direction
}

var entranceCombos = [8]entranceCombo{
	{tsconfig.Reference, tsconfig.SecondaryReference, tsconfig.Forward},
	{tsconfig.Reference, tsconfig.SecondaryReference, tsconfig.Reverse},
	{tsconfig.Reference, tsconfig.SecondaryQuery, tsconfig.Forward},
	{tsconfig.Reference, tsconfig.SecondaryQuery, tsconfig.Reverse},
	{tsconfig.Query, tsconfig.SecondaryReference, tsconfig.Forward},
	{tsconfig.Query, tsconfig.SecondaryReference, tsconfig.Reverse},
	{tsconfig.Query, tsconfig.SecondaryQuery, tsconfig.Forward},
	{tsconfig.Query, tsconfig.SecondaryQuery, tsconfig.Reverse},
}

// flankStep describes one candidate continuation of the primary lane: the
// edit table an outgoing edge should be priced from, and the FlankIndex
// the successor lands on.
type flankStep struct {
	table *editcost.Table
	next  int
}

// flankSteps enumerates the legal continuations leaving a primary/reentry
// node with the given FlankIndex (spec §4.2.1). A node in the body
// (FlankIndex == 0) may either continue as an ordinary body step, or begin
// counting down toward a template-switch entrance by stepping into the
// left flank — the graph offers both, and the search decides which is
// cheaper; once inside a flank the walk is committed and can only advance
// toward (and saturate at) LeftFlankLength, or, on the right-flank side,
// count back up toward 0.
func (c *Context) flankSteps(flankIndex, tsUsed int) []flankStep {
	L := c.Config.LeftFlankLength
	switch {
	case flankIndex < 0:
		return []flankStep{{table: c.Config.RightFlank, next: flankIndex + 1}}
	case flankIndex == 0:
		steps := []flankStep{{table: c.Config.Primary, next: 0}}
		if L > 0 && c.Strategies.TSCount.Allows(tsUsed) {
			steps = append(steps, flankStep{table: c.Config.LeftFlank, next: 1})
		}
		return steps
	case flankIndex < L:
		return []flankStep{{table: c.Config.LeftFlank, next: flankIndex + 1}}
	default: // flankIndex == L
		return []flankStep{{table: c.Config.LeftFlank, next: L}}
	}
}

// generatePrimarySuccessors implements spec §4.2.1: diagonal, deletion and
// insertion moves through the primary lane (optionally counting into or
// out of a flank), and the template-switch entrance fan-out once the node
// has counted all the way into the left flank.
func (c *Context) generatePrimarySuccessors(n astar.Node[Identifier, Edge], push func(astar.Node[Identifier, Edge])) {
	id := n.ID
	tie := c.Strategies.NodeOrdering.PrimaryTieBreak(id.R, id.Q)
	refLen, queryLen := c.Ref.Len(), c.Query.Len()

	for _, step := range c.flankSteps(id.FlankIndex, id.TSUsed) {
		inBody := id.FlankIndex == 0 && step.next == 0

		if id.R < refLen && id.Q < queryLen {
			a, b := c.Ref.At(id.R), c.Query.At(id.Q)
			editCost := step.table.MatchOrSubstitution(a, b)
			op := OpPrimarySubstitution
			wasBodyMatch := false
			if a == b {
				op = OpPrimaryMatch
				if inBody {
					if c.Strategies.PrimaryMatch.CanMatch(id.AvailableMatches) {
						wasBodyMatch = true
					} else {
						editCost = c.Strategies.PrimaryMatch.FakeSubstitutionCost
						op = OpPrimarySubstitution
					}
				}
			}
			if !inBody {
				if op == OpPrimaryMatch {
					op = OpPrimaryFlankMatch
				} else {
					op = OpPrimaryFlankSubstitution
				}
			}
			succ := id
			succ.R, succ.Q = id.R+1, id.Q+1
			succ.GapType = GapNone
			succ.FlankIndex = step.next
			succ.AvailableMatches = c.Strategies.PrimaryMatch.NextBudget(id.AvailableMatches, wasBodyMatch)
			c.emit(push, id, n.G, editCost, succ, op, tie)
		}

		if id.R < refLen {
			a := c.Ref.At(id.R)
			var editCost cost.Cost
			if id.GapType == GapDeletion {
				editCost = step.table.GapExtend(a)
			} else {
				editCost = step.table.GapOpen(a)
			}
			op := OpPrimaryDeletion
			if !inBody {
				op = OpPrimaryFlankDeletion
			}
			succ := id
			succ.R = id.R + 1
			succ.GapType = GapDeletion
			succ.FlankIndex = step.next
			succ.AvailableMatches = c.Strategies.PrimaryMatch.NextBudget(id.AvailableMatches, false)
			c.emit(push, id, n.G, editCost, succ, op, tie)
		}

		if id.Q < queryLen {
			b := c.Query.At(id.Q)
			var editCost cost.Cost
			if id.GapType == GapInsertion {
				editCost = step.table.GapExtend(b)
			} else {
				editCost = step.table.GapOpen(b)
			}
			op := OpPrimaryInsertion
			if !inBody {
				op = OpPrimaryFlankInsertion
			}
			succ := id
			succ.Q = id.Q + 1
			succ.GapType = GapInsertion
			succ.FlankIndex = step.next
			succ.AvailableMatches = c.Strategies.PrimaryMatch.NextBudget(id.AvailableMatches, false)
			c.emit(push, id, n.G, editCost, succ, op, tie)
		}
	}

	if id.FlankIndex == c.Config.LeftFlankLength && c.Strategies.TSCount.Allows(id.TSUsed) {
		c.generateEntrances(n, push)
	}
}

// generateEntrances implements the template-switch entrance fan-out (spec
// §4.2.1 bullet 4): one TemplateSwitchEntrance successor per
// (primary, secondary, direction) combination whose base cost is finite.
func (c *Context) generateEntrances(n astar.Node[Identifier, Edge], push func(astar.Node[Identifier, Edge])) {
	id := n.ID
	tie := c.Strategies.NodeOrdering.NonPrimaryTieBreak()
	offset0 := c.Config.OffsetCost.Evaluate(0)
	for _, combo := range entranceCombos {
		base := c.Config.BaseCost(combo.primary, combo.secondary, combo.direction)
		succ := Identifier{
			Kind:             KindTSEntrance,
			R0:               id.R,
			Q0:               id.Q,
			TSPrimary:        combo.primary,
			TSSecondary:      combo.secondary,
			TSDirection:      combo.direction,
			FirstOffset:      0,
			AvailableMatches: id.AvailableMatches,
			TSUsed:           id.TSUsed,
		}
		c.emit(push, id, n.G, base.Add(offset0), succ, OpTemplateSwitchEntrance, tie)
	}
}

// generateEntranceSuccessors implements spec §4.2.2: adjusting the
// secondary start offset, and committing to a secondary root.
func (c *Context) generateEntranceSuccessors(n astar.Node[Identifier, Edge], push func(astar.Node[Identifier, Edge])) {
	id := n.ID
	tie := c.Strategies.NodeOrdering.NonPrimaryTieBreak()
	secLen := c.secondarySeq(id.TSSecondary).Len()
	entryIndex := id.R0
	if id.TSSecondary == tsconfig.SecondaryQuery {
		entryIndex = id.Q0
	}

	for _, delta := range [2]int{-1, 1} {
		newOffset := id.FirstOffset + delta
		newIndex := entryIndex + newOffset
		if newIndex < 0 || newIndex > secLen {
			continue
		}
		oldCost := c.Config.OffsetCost.Evaluate(id.FirstOffset)
		newCost := c.Config.OffsetCost.Evaluate(newOffset)
		if newCost.Less(oldCost) {
			// Only monotone-outward moves are generated: a move whose cost
			// would decrease is never needed, since the lower-cost value it
			// leads to is already reachable directly from first_offset = 0.
			continue
		}
		succ := id
		succ.FirstOffset = newOffset
		c.emit(push, id, n.G, newCost.Sub(oldCost), succ, OpAdjustOffset, tie)
	}

	secIndex := entryIndex + id.FirstOffset
	if secIndex < 0 || secIndex > secLen {
		return
	}
	primaryIndex := id.R0
	if id.TSPrimary == tsconfig.Query {
		primaryIndex = id.Q0
	}
	root := Identifier{
		Kind:             KindSecondary,
		R0:               id.R0,
		Q0:               id.Q0,
		TSPrimary:        id.TSPrimary,
		TSSecondary:      id.TSSecondary,
		TSDirection:      id.TSDirection,
		PrimaryIndex:     primaryIndex,
		SecondaryIndex:   secIndex,
		AvailableMatches: id.AvailableMatches,
		TSUsed:           id.TSUsed,
	}
	c.emitSecondaryRoot(push, id, n.G, root, tie)
}

// emitSecondaryRoot applies the minimum-length lookahead (C9) to a freshly
// created secondary root before pushing it (spec §4.3).
func (c *Context) emitSecondaryRoot(push func(astar.Node[Identifier, Edge]), pred Identifier, g cost.Cost, root Identifier, tie int64) {
	h := cost.Zero
	if c.MinLength != nil {
		price, ok := c.MinLength.Price(root)
		if !ok {
			return
		}
		h = price
	}
	push(astar.Node[Identifier, Edge]{
		ID: root, G: g, H: h, Pred: pred, HasPred: true,
		Edge: Edge{Op: OpSecondaryRoot}, TieBreak: tie,
	})
}

// generateSecondarySuccessors implements spec §4.2.3: the inner walk along
// the (possibly reverse-complemented) secondary sequence against the
// primary sequence, and the template-switch exit.
func (c *Context) generateSecondarySuccessors(n astar.Node[Identifier, Edge], push func(astar.Node[Identifier, Edge])) {
	id := n.ID
	tie := c.Strategies.NodeOrdering.NonPrimaryTieBreak()

	if c.Config.LengthCost.MinFrom(id.Length).IsInf() {
		return
	}

	table := c.Config.SecondaryEditTable(id.TSDirection)
	primaryLen := c.primarySeq(id.TSPrimary).Len()

	if id.PrimaryIndex < primaryLen && c.secondaryIndexInRange(id) {
		primaryChar := c.primaryChar(id.TSPrimary, id.PrimaryIndex)
		secondaryChar := c.secondaryCharAt(id)
		op := OpSecondaryMatch
		if primaryChar != secondaryChar {
			op = OpSecondarySubstitution
		}
		succ := id
		succ.PrimaryIndex++
		succ.SecondaryIndex = advanceSecondaryIndex(id)
		succ.Length++
		succ.GapType = GapNone
		c.emit(push, id, n.G, table.MatchOrSubstitution(primaryChar, secondaryChar), succ, op, tie)
	}

	if c.Strategies.SecondaryDeletion == strategy.AllowSecondaryDeletion && c.secondaryIndexInRange(id) {
		secondaryChar := c.secondaryCharAt(id)
		var editCost cost.Cost
		if id.GapType == GapDeletion {
			editCost = table.GapExtend(secondaryChar)
		} else {
			editCost = table.GapOpen(secondaryChar)
		}
		succ := id
		succ.SecondaryIndex = advanceSecondaryIndex(id)
		succ.Length++
		succ.GapType = GapDeletion
		c.emit(push, id, n.G, editCost, succ, OpSecondaryDeletion, tie)
	}

	if id.PrimaryIndex < primaryLen {
		primaryChar := c.primaryChar(id.TSPrimary, id.PrimaryIndex)
		var editCost cost.Cost
		if id.GapType == GapInsertion {
			editCost = table.GapExtend(primaryChar)
		} else {
			editCost = table.GapOpen(primaryChar)
		}
		succ := id
		succ.PrimaryIndex++
		succ.Length++
		succ.GapType = GapInsertion
		c.emit(push, id, n.G, editCost, succ, OpSecondaryInsertion, tie)
	}

	exitCost := c.Config.LengthCost.Evaluate(id.Length).Add(c.Config.LengthDifferenceCost.Evaluate(0))
	exit := Identifier{
		Kind:             KindTSExit,
		R0:               id.R0,
		Q0:               id.Q0,
		TSPrimary:        id.TSPrimary,
		TSSecondary:      id.TSSecondary,
		TSDirection:      id.TSDirection,
		PrimaryIndex:     id.PrimaryIndex,
		LengthDifference: 0,
		AvailableMatches: id.AvailableMatches,
		TSUsed:           id.TSUsed,
	}
	c.emit(push, id, n.G, exitCost, exit, OpTemplateSwitchExit, tie)
}

// generateExitSuccessors implements spec §4.2.4: adjusting the length
// difference, and the primary reentry that returns the search to the
// primary lane with the right flank's gap countdown active.
func (c *Context) generateExitSuccessors(n astar.Node[Identifier, Edge], push func(astar.Node[Identifier, Edge])) {
	id := n.ID
	tie := c.Strategies.NodeOrdering.NonPrimaryTieBreak()

	antiAnchor, antiLen := id.Q0, c.Query.Len()
	if id.TSPrimary == tsconfig.Query {
		antiAnchor, antiLen = id.R0, c.Ref.Len()
	}
	for _, delta := range [2]int{-1, 1} {
		// Stop stepping outward once the implied reentry lies off the
		// anti-primary sequence; this keeps the set of exits finite.
		landing := antiAnchor + id.AntiPrimaryGap() + delta
		if (delta < 0 && landing < 0) || (delta > 0 && landing > antiLen) {
			continue
		}
		newLD := id.LengthDifference + delta
		oldCost := c.Config.LengthDifferenceCost.Evaluate(id.LengthDifference)
		newCost := c.Config.LengthDifferenceCost.Evaluate(newLD)
		if newCost.Less(oldCost) {
			continue
		}
		succ := id
		succ.LengthDifference = newLD
		c.emit(push, id, n.G, newCost.Sub(oldCost), succ, OpAdjustLengthDifference, tie)
	}

	gap := id.AntiPrimaryGap()
	reentryCost := c.Config.AntiPrimaryGapCost(id.TSDirection).Evaluate(gap)
	if reentryCost.IsInf() {
		return
	}
	var r, q int
	if id.TSPrimary == tsconfig.Reference {
		r = id.PrimaryIndex
		q = id.Q0 + gap
	} else {
		q = id.PrimaryIndex
		r = id.R0 + gap
	}
	if r < 0 || r > c.Ref.Len() || q < 0 || q > c.Query.Len() {
		return
	}
	succ := Identifier{
		Kind:             KindPrimaryReentry,
		R:                r,
		Q:                q,
		GapType:          GapNone,
		FlankIndex:       -c.Config.RightFlankLength,
		AvailableMatches: id.AvailableMatches,
		TSUsed:           id.TSUsed + 1,
	}
	c.emit(push, id, n.G, reentryCost, succ, OpPrimaryReentry, tie)
}
