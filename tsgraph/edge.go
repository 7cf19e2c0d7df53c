// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsgraph

// Op names the kind of step an Edge represents (spec §4.9 "Backtracking
// produces an edge-kind sequence"). The flank variants are the same moves
// as their body counterparts, priced from a flank edit table instead of
// the primary one; align reconstructs any further detail (the entrance's
// chosen combination, the exit's anti-primary gap) from the Identifier
// stored at each step of the backtrack, rather than duplicating it here.
type Op int

const (
	OpRoot Op = iota
	OpPrimaryMatch
	OpPrimarySubstitution
	OpPrimaryInsertion
	OpPrimaryDeletion
	OpPrimaryFlankMatch
	OpPrimaryFlankSubstitution
	OpPrimaryFlankInsertion
	OpPrimaryFlankDeletion
	OpTemplateSwitchEntrance
	OpAdjustOffset
	OpSecondaryRoot
	OpSecondaryMatch
	OpSecondarySubstitution
	OpSecondaryInsertion
	OpSecondaryDeletion
	OpTemplateSwitchExit
	OpAdjustLengthDifference
	OpPrimaryReentry
)

func (o Op) String() string {
	switch o {
	case OpRoot:
		return "Root"
	case OpPrimaryMatch:
		return "PrimaryMatch"
	case OpPrimarySubstitution:
		return "PrimarySubstitution"
	case OpPrimaryInsertion:
		return "PrimaryInsertion"
	case OpPrimaryDeletion:
		return "PrimaryDeletion"
	case OpPrimaryFlankMatch:
		return "PrimaryFlankMatch"
	case OpPrimaryFlankSubstitution:
		return "PrimaryFlankSubstitution"
	case OpPrimaryFlankInsertion:
		return "PrimaryFlankInsertion"
	case OpPrimaryFlankDeletion:
		return "PrimaryFlankDeletion"
	case OpTemplateSwitchEntrance:
		return "TemplateSwitchEntrance"
	case OpAdjustOffset:
		return "AdjustOffset"
	case OpSecondaryRoot:
		return "SecondaryRoot"
	case OpSecondaryMatch:
		return "SecondaryMatch"
	case OpSecondarySubstitution:
		return "SecondarySubstitution"
	case OpSecondaryInsertion:
		return "SecondaryInsertion"
	case OpSecondaryDeletion:
		return "SecondaryDeletion"
	case OpTemplateSwitchExit:
		return "TemplateSwitchExit"
	case OpAdjustLengthDifference:
		return "AdjustLengthDifference"
	case OpPrimaryReentry:
		return "PrimaryReentry"
	default:
		return "unknown"
	}
}

// Edge is the astar.Node edge payload for the template-switch graph.
type Edge struct {
	Op Op
}
