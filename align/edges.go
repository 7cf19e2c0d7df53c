// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsgraph"
)

// EdgeKind is one alignment step, tagged by Op and carrying the
// template-switch detail a bare Op cannot (spec §4.9 "TemplateSwitchEntrance
// {...}", "PrimaryReentry"). Detail fields are only meaningful for the Op
// they document; they are zero otherwise.
type EdgeKind struct {
	Op tsgraph.Op

	// Valid when Op == OpTemplateSwitchEntrance.
	Primary   tsconfig.Primary
	Secondary tsconfig.Secondary
	Direction tsconfig.Direction

	// Valid when Op == OpPrimaryReentry: the anti-primary-gap consumed by
	// the template switch this reentry closes out (spec §3).
	AntiPrimaryGap int
}

// EdgeRun run-length-compresses a maximal stretch of identical EdgeKind
// values (spec §6 "edges: [(multiplicity, EdgeKind)]").
type EdgeRun struct {
	Multiplicity int
	Kind         EdgeKind
}

// buildEdges converts a root-to-target node path into the compressed edge
// sequence spec §6 describes. path must be in root-to-target order and
// start with the root (HasPred == false).
func buildEdges(path []astar.Node[tsgraph.Identifier, tsgraph.Edge]) []EdgeRun {
	var runs []EdgeRun
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		kind := EdgeKind{Op: cur.Edge.Op}
		switch cur.Edge.Op {
		case tsgraph.OpTemplateSwitchEntrance:
			kind.Primary = cur.ID.TSPrimary
			kind.Secondary = cur.ID.TSSecondary
			kind.Direction = cur.ID.TSDirection
		case tsgraph.OpPrimaryReentry:
			kind.AntiPrimaryGap = prev.ID.AntiPrimaryGap()
		}
		if n := len(runs); n > 0 && runs[n-1].Kind == kind {
			runs[n-1].Multiplicity++
			continue
		}
		runs = append(runs, EdgeRun{Multiplicity: 1, Kind: kind})
	}
	return runs
}

// countTemplateSwitches counts the TemplateSwitchEntrance steps in path,
// the "TS count" statistic spec §6 requires.
func countTemplateSwitches(path []astar.Node[tsgraph.Identifier, tsgraph.Edge]) int {
	n := 0
	for _, node := range path {
		if node.HasPred && node.Edge.Op == tsgraph.OpTemplateSwitchEntrance {
			n++
		}
	}
	return n
}
