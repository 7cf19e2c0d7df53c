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

// NudgeTemplateSwitchBoundary shifts the occurrence-th template switch's
// entrance offset by delta secondary characters and re-prices the result
// with Recompute, without re-running search (spec §4.9 "local optimisation
// passes that nudge a TS boundary one character at a time"). occurrence is
// 0-based, counting TemplateSwitchEntrance steps from the root.
//
// Only the entrance side of the boundary moves: the primary-lane position
// the switch returns to (PrimaryReentry) does not depend on first_offset,
// so everything from the exit onward is carried over unchanged, and only
// the secondary walk between root and exit is replayed against the shifted
// start. ok is false if delta would walk the secondary start, or any
// replayed step, out of its sequence's bounds.
func NudgeTemplateSwitchBoundary(ref, query tsseq.Sequence, cfg tsconfig.Config, strategies strategy.Set, path []astar.Node[tsgraph.Identifier, tsgraph.Edge], occurrence, delta int) (newPath []astar.Node[tsgraph.Identifier, tsgraph.Edge], newCost cost.Cost, ok bool) {
	entranceIdx := nthEntranceIndex(path, occurrence)
	if entranceIdx < 0 {
		return nil, cost.Zero, false
	}

	rootIdx := entranceIdx
	for rootIdx < len(path) && path[rootIdx].Edge.Op != tsgraph.OpSecondaryRoot {
		rootIdx++
	}
	if rootIdx == len(path) {
		return nil, cost.Zero, false
	}

	exitIdx := rootIdx
	for exitIdx < len(path) && path[exitIdx].Edge.Op != tsgraph.OpTemplateSwitchExit {
		exitIdx++
	}
	if exitIdx == len(path) {
		return nil, cost.Zero, false
	}

	entry := path[entranceIdx].ID
	oldOffset := path[rootIdx-1].ID.FirstOffset
	newOffset := oldOffset + delta

	entryIndex := entry.R0
	if entry.TSSecondary == tsconfig.SecondaryQuery {
		entryIndex = entry.Q0
	}
	secLen := secondarySeq(ref, query, entry.TSSecondary).Len()
	newSecIndex := entryIndex + newOffset
	if newSecIndex < 0 || newSecIndex > secLen {
		return nil, cost.Zero, false
	}

	out := make([]astar.Node[tsgraph.Identifier, tsgraph.Edge], entranceIdx+1, len(path))
	copy(out, path[:entranceIdx+1])
	out[entranceIdx].ID.FirstOffset = newOffset

	newRoot := path[rootIdx].ID
	newRoot.SecondaryIndex = newSecIndex
	out = append(out, astar.Node[tsgraph.Identifier, tsgraph.Edge]{
		ID: newRoot, HasPred: true, Edge: tsgraph.Edge{Op: tsgraph.OpSecondaryRoot},
	})

	cur := newRoot
	for i := rootIdx + 1; i < exitIdx; i++ {
		next, op, within := stepSecondary(ref, query, cur, path[i].Edge.Op)
		if !within {
			return nil, cost.Zero, false
		}
		out = append(out, astar.Node[tsgraph.Identifier, tsgraph.Edge]{ID: next, HasPred: true, Edge: tsgraph.Edge{Op: op}})
		cur = next
	}

	out = append(out, path[exitIdx:]...)

	return out, Recompute(ref, query, cfg, strategies, out), true
}

// nthEntranceIndex returns the path index of the occurrence-th
// TemplateSwitchEntrance step, or -1 if there is no such occurrence.
func nthEntranceIndex(path []astar.Node[tsgraph.Identifier, tsgraph.Edge], occurrence int) int {
	count := 0
	for i, n := range path {
		if n.HasPred && n.Edge.Op == tsgraph.OpTemplateSwitchEntrance {
			if count == occurrence {
				return i
			}
			count++
		}
	}
	return -1
}

// stepSecondary replays one secondary-walk move from cur, re-deriving the
// op tag for match/substitution since the characters compared can change
// under a shifted secondary start even though the move shape does not.
func stepSecondary(ref, query tsseq.Sequence, cur tsgraph.Identifier, op tsgraph.Op) (tsgraph.Identifier, tsgraph.Op, bool) {
	primaryLen := primarySeq(ref, query, cur.TSPrimary).Len()
	switch op {
	case tsgraph.OpSecondaryMatch, tsgraph.OpSecondarySubstitution:
		if cur.PrimaryIndex >= primaryLen || !secondaryIndexInRange(ref, query, cur) {
			return tsgraph.Identifier{}, 0, false
		}
		primaryChar := primarySeq(ref, query, cur.TSPrimary).At(cur.PrimaryIndex)
		secondaryChar := secondaryCharAt(ref, query, cur)
		next := cur
		next.PrimaryIndex++
		next.SecondaryIndex = advanceSecondaryIndex(cur)
		next.Length++
		next.GapType = tsgraph.GapNone
		newOp := tsgraph.OpSecondaryMatch
		if primaryChar != secondaryChar {
			newOp = tsgraph.OpSecondarySubstitution
		}
		return next, newOp, true

	case tsgraph.OpSecondaryDeletion:
		if !secondaryIndexInRange(ref, query, cur) {
			return tsgraph.Identifier{}, 0, false
		}
		next := cur
		next.SecondaryIndex = advanceSecondaryIndex(cur)
		next.Length++
		next.GapType = tsgraph.GapDeletion
		return next, tsgraph.OpSecondaryDeletion, true

	case tsgraph.OpSecondaryInsertion:
		if cur.PrimaryIndex >= primaryLen {
			return tsgraph.Identifier{}, 0, false
		}
		next := cur
		next.PrimaryIndex++
		next.Length++
		next.GapType = tsgraph.GapInsertion
		return next, tsgraph.OpSecondaryInsertion, true

	default:
		return tsgraph.Identifier{}, 0, false
	}
}

func secondaryIndexInRange(ref, query tsseq.Sequence, id tsgraph.Identifier) bool {
	if id.TSDirection == tsconfig.Forward {
		return id.SecondaryIndex < secondarySeq(ref, query, id.TSSecondary).Len()
	}
	return id.SecondaryIndex > 0
}

func advanceSecondaryIndex(id tsgraph.Identifier) int {
	if id.TSDirection == tsconfig.Forward {
		return id.SecondaryIndex + 1
	}
	return id.SecondaryIndex - 1
}
