// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsgraph implements the template-switch alignment state graph
// (spec §4.2, C6): node identifiers, successor generation, cost
// increments, the admissible heuristic, and the target predicate, plugged
// into the generic astar.Engine (C5).
package tsgraph

import (
	"fmt"

	"github.com/kortschak/tsalign/tsconfig"
)

// Kind tags which variant of the state graph an Identifier belongs to
// (spec §3 "Search node identifier").
type Kind int

const (
	KindPrimary Kind = iota
	KindPrimaryReentry
	KindTSEntrance
	KindSecondary
	KindTSExit
)

func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "Primary"
	case KindPrimaryReentry:
		return "PrimaryReentry"
	case KindTSEntrance:
		return "TemplateSwitchEntrance"
	case KindSecondary:
		return "Secondary"
	case KindTSExit:
		return "TemplateSwitchExit"
	default:
		return "unknown"
	}
}

// GapType distinguishes an affine-gap run's current state, shared by the
// primary lane and the inner secondary walk.
type GapType int

const (
	GapNone GapType = iota
	GapInsertion
	GapDeletion
)

// Identifier uniquely addresses one node of the template-switch alignment
// graph. It is a plain comparable struct so it can key the astar closed
// map directly (spec §5 "deterministic... across runs"): fields that do
// not apply to a given Kind are simply left zero, and equality/hashing
// falls out of Go's built-in struct comparison, with no dependency on map
// iteration order anywhere in the search.
//
// AvailableMatches and TSUsed fold the primary-match and TS-count strategy
// memory (spec §4.8) into the identifier itself, because both affect
// future legality and must therefore distinguish otherwise-identical
// (r, q, gap, flank) states reached with different remaining budgets —
// mirroring how the original strategy identifiers are hashed as part of
// the node identifier.
type Identifier struct {
	Kind Kind

	// Primary / PrimaryReentry.
	R, Q       int
	GapType    GapType
	FlankIndex int // >0 inside left flank, 0 body, <0 inside right flank after reentry

	// Entrance anchor, valid for TSEntrance/Secondary/TSExit.
	R0, Q0 int

	TSPrimary   tsconfig.Primary
	TSSecondary tsconfig.Secondary
	TSDirection tsconfig.Direction

	FirstOffset int // TSEntrance only

	Length         int // Secondary only
	PrimaryIndex   int // Secondary / TSExit
	SecondaryIndex int // Secondary only

	LengthDifference int // TSExit only

	AvailableMatches int // Primary / PrimaryReentry: primary-match strategy budget
	TSUsed           int // Primary / PrimaryReentry: template switches used so far
}

func (id Identifier) String() string {
	switch id.Kind {
	case KindPrimary, KindPrimaryReentry:
		return fmt.Sprintf("%s(r=%d, q=%d, gap=%d, flank=%d)", id.Kind, id.R, id.Q, id.GapType, id.FlankIndex)
	case KindTSEntrance:
		return fmt.Sprintf("Entrance(r0=%d, q0=%d, %s->%s %s, offset=%d)", id.R0, id.Q0, id.TSPrimary, id.TSSecondary, id.TSDirection, id.FirstOffset)
	case KindSecondary:
		return fmt.Sprintf("Secondary(r0=%d, q0=%d, len=%d, pi=%d, si=%d)", id.R0, id.Q0, id.Length, id.PrimaryIndex, id.SecondaryIndex)
	case KindTSExit:
		return fmt.Sprintf("Exit(r0=%d, q0=%d, pi=%d, ld=%d)", id.R0, id.Q0, id.PrimaryIndex, id.LengthDifference)
	default:
		return "?"
	}
}

// AntiDiagonal returns r+q for Primary/PrimaryReentry identifiers, used by
// the AntiDiagonal node-ordering tie-break.
func (id Identifier) AntiDiagonal() (int, bool) {
	if id.Kind == KindPrimary || id.Kind == KindPrimaryReentry {
		return id.R + id.Q, true
	}
	return 0, false
}

// AntiPrimaryGap computes the exit's accumulated anti-primary displacement
// (spec §3 "length of the primary stretch consumed inside the switch is
// encoded as length_difference + (primary_index - r0 or q0)").
func (id Identifier) AntiPrimaryGap() int {
	anchor := id.R0
	if id.TSPrimary == tsconfig.Query {
		anchor = id.Q0
	}
	return id.LengthDifference + (id.PrimaryIndex - anchor)
}
