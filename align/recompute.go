// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

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

// Recompute independently walks a root-to-target path and sums each step's
// edge cost from Config directly, rather than trusting the G values the
// search itself accumulated (spec §4.9 "a separate cost recompute utility
// independently walks the edge list and recomputes the total cost"). It is
// the cross-check testable property 1 requires, and the engine local
// optimisation passes (NudgeTemplateSwitchBoundary) lean on to price an
// edited path.
func Recompute(ref, query tsseq.Sequence, cfg tsconfig.Config, strategies strategy.Set, path []astar.Node[tsgraph.Identifier, tsgraph.Edge]) cost.Cost {
	total := cost.Zero
	for i := 1; i < len(path); i++ {
		total = total.Add(edgeCost(ref, query, cfg, strategies, path[i-1].ID, path[i].ID, path[i].Edge.Op))
	}
	return total
}

// edgeCost prices one step of the path from prev to cur, reimplementing
// tsgraph/successors.go's per-Op cost rules from exported Config/Sequence
// primitives only.
func edgeCost(ref, query tsseq.Sequence, cfg tsconfig.Config, strategies strategy.Set, prev, cur tsgraph.Identifier, op tsgraph.Op) cost.Cost {
	switch op {
	case tsgraph.OpPrimaryMatch, tsgraph.OpPrimaryFlankMatch:
		table := primaryTableFor(cfg, prev.FlankIndex, cur.FlankIndex)
		return table.MatchOrSubstitution(ref.At(prev.R), query.At(prev.Q))

	case tsgraph.OpPrimarySubstitution:
		a, b := ref.At(prev.R), query.At(prev.Q)
		if a == b {
			// The budgeted primary-match strategy forbade a genuine match
			// here and charged the fake-substitution cost instead.
			return strategies.PrimaryMatch.FakeSubstitutionCost
		}
		table := primaryTableFor(cfg, prev.FlankIndex, cur.FlankIndex)
		return table.MatchOrSubstitution(a, b)

	case tsgraph.OpPrimaryFlankSubstitution:
		table := primaryTableFor(cfg, prev.FlankIndex, cur.FlankIndex)
		return table.MatchOrSubstitution(ref.At(prev.R), query.At(prev.Q))

	case tsgraph.OpPrimaryDeletion, tsgraph.OpPrimaryFlankDeletion:
		table := primaryTableFor(cfg, prev.FlankIndex, cur.FlankIndex)
		a := ref.At(prev.R)
		if prev.GapType == tsgraph.GapDeletion {
			return table.GapExtend(a)
		}
		return table.GapOpen(a)

	case tsgraph.OpPrimaryInsertion, tsgraph.OpPrimaryFlankInsertion:
		table := primaryTableFor(cfg, prev.FlankIndex, cur.FlankIndex)
		b := query.At(prev.Q)
		if prev.GapType == tsgraph.GapInsertion {
			return table.GapExtend(b)
		}
		return table.GapOpen(b)

	case tsgraph.OpTemplateSwitchEntrance:
		base := cfg.BaseCost(cur.TSPrimary, cur.TSSecondary, cur.TSDirection)
		return base.Add(cfg.OffsetCost.Evaluate(cur.FirstOffset))

	case tsgraph.OpAdjustOffset:
		return cfg.OffsetCost.Evaluate(cur.FirstOffset).Sub(cfg.OffsetCost.Evaluate(prev.FirstOffset))

	case tsgraph.OpSecondaryRoot:
		return cost.Zero

	case tsgraph.OpSecondaryMatch, tsgraph.OpSecondarySubstitution:
		table := cfg.SecondaryEditTable(prev.TSDirection)
		primaryChar := primarySeq(ref, query, prev.TSPrimary).At(prev.PrimaryIndex)
		secondaryChar := secondaryCharAt(ref, query, prev)
		return table.MatchOrSubstitution(primaryChar, secondaryChar)

	case tsgraph.OpSecondaryDeletion:
		table := cfg.SecondaryEditTable(prev.TSDirection)
		secondaryChar := secondaryCharAt(ref, query, prev)
		if prev.GapType == tsgraph.GapDeletion {
			return table.GapExtend(secondaryChar)
		}
		return table.GapOpen(secondaryChar)

	case tsgraph.OpSecondaryInsertion:
		table := cfg.SecondaryEditTable(prev.TSDirection)
		primaryChar := primarySeq(ref, query, prev.TSPrimary).At(prev.PrimaryIndex)
		if prev.GapType == tsgraph.GapInsertion {
			return table.GapExtend(primaryChar)
		}
		return table.GapOpen(primaryChar)

	case tsgraph.OpTemplateSwitchExit:
		return cfg.LengthCost.Evaluate(prev.Length).Add(cfg.LengthDifferenceCost.Evaluate(cur.LengthDifference))

	case tsgraph.OpAdjustLengthDifference:
		return cfg.LengthDifferenceCost.Evaluate(cur.LengthDifference).Sub(cfg.LengthDifferenceCost.Evaluate(prev.LengthDifference))

	case tsgraph.OpPrimaryReentry:
		return cfg.AntiPrimaryGapCost(prev.TSDirection).Evaluate(prev.AntiPrimaryGap())

	default:
		return cost.Zero
	}
}

// primaryTableFor picks the edit table a primary-lane step prices from,
// derived from the FlankIndex transition alone (spec §4.2.1 flankSteps):
// body-to-body uses Primary, any step touching flank 1..L uses LeftFlank,
// and every step at a negative FlankIndex (post-reentry) uses RightFlank.
func primaryTableFor(cfg tsconfig.Config, prevFlank, curFlank int) *editcost.Table {
	switch {
	case prevFlank == 0 && curFlank == 0:
		return cfg.Primary
	case prevFlank >= 0:
		return cfg.LeftFlank
	default:
		return cfg.RightFlank
	}
}

func primarySeq(ref, query tsseq.Sequence, p tsconfig.Primary) tsseq.Sequence {
	if p == tsconfig.Reference {
		return ref
	}
	return query
}

func secondarySeq(ref, query tsseq.Sequence, s tsconfig.Secondary) tsseq.Sequence {
	if s == tsconfig.SecondaryReference {
		return ref
	}
	return query
}

func secondaryCharAt(ref, query tsseq.Sequence, id tsgraph.Identifier) alphabet.Letter {
	seq := secondarySeq(ref, query, id.TSSecondary)
	if id.TSDirection == tsconfig.Forward {
		return seq.At(id.SecondaryIndex)
	}
	return tsseq.Complement(seq.At(id.SecondaryIndex - 1))
}
