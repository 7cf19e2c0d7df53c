// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strategy holds the orthogonal, construction-time-selected
// policies described by spec §4.7, §4.8, §4.10/§9 (C11): node ordering,
// minimum-length lookahead mode, TS count limit, secondary-deletion
// legality, primary-match legality, shortcut legality, and total-TS-length
// evaluation. Each policy is a small value type plugged into
// tsgraph.Context at construction time; none of them may ever make the
// engine's heuristic inadmissible (spec §9).
package strategy

import (
	"math"

	"github.com/kortschak/tsalign/cost"
)

// NodeOrdering selects the open-heap tie-break for nodes with equal g+h
// (spec §4.7).
type NodeOrdering int

const (
	// CostOnly applies no tie-break of its own: nodes with equal g+h pop in
	// whatever order the heap yields them, which is not insertion order.
	CostOnly NodeOrdering = iota
	// AntiDiagonal prefers nodes with a larger r+q, so the search "drifts
	// toward" the target among equally-costed candidates.
	AntiDiagonal
)

// PrimaryTieBreak returns the astar.Node.TieBreak value for a primary or
// reentry node at (r, q) under this ordering. Smaller values pop first;
// AntiDiagonal therefore returns the negated anti-diagonal so that a larger
// r+q sorts first.
func (o NodeOrdering) PrimaryTieBreak(r, q int) int64 {
	if o == AntiDiagonal {
		return -int64(r + q)
	}
	return 0
}

// NonPrimaryTieBreak returns the tie-break for identifiers with no natural
// anti-diagonal (entrance/secondary/exit nodes); spec §4.7 says these
// "compare equal on the tie-break (or use +∞)", so they never win a tie
// against a primary node under AntiDiagonal ordering.
func (o NodeOrdering) NonPrimaryTieBreak() int64 {
	if o == AntiDiagonal {
		return math.MaxInt64
	}
	return 0
}

// TSCountLimit caps the number of template switches usable in any one path
// (spec §4.8). A non-positive Limit means "no limit".
type TSCountLimit struct {
	Limit int
}

// Unlimited returns a TSCountLimit that never blocks another switch.
func Unlimited() TSCountLimit { return TSCountLimit{Limit: 0} }

// Allows reports whether one more template switch may be taken given that
// used switches have already been taken on this path.
func (l TSCountLimit) Allows(used int) bool {
	return l.Limit <= 0 || used < l.Limit
}

// SecondaryDeletion toggles whether a template switch's inner walk may skip
// a secondary character (spec §4.8). Lower-bound precomputation forbids
// this so C7 stays tractable (a smaller successor fan-out to saturate).
type SecondaryDeletion int

const (
	AllowSecondaryDeletion SecondaryDeletion = iota
	ForbidSecondaryDeletion
)

// PrimaryMatch selects how consecutive primary-body matches are limited
// outside of flanks (spec §4.8).
type PrimaryMatch struct {
	// MaxConsecutive <= 0 means matches are always allowed
	// (AllowPrimaryMatchStrategy). A positive value caps consecutive body
	// matches to that many before a non-match edge must be taken
	// (MaxConsecutivePrimaryMatchStrategy), with FakeSubstitutionCost
	// substituted for the forbidden match edge to preserve admissibility.
	MaxConsecutive       int
	FakeSubstitutionCost cost.Cost
}

// AllowPrimaryMatch returns the "always allow" policy.
func AllowPrimaryMatch() PrimaryMatch {
	return PrimaryMatch{MaxConsecutive: 0}
}

// RootBudget returns the consecutive-match budget a root node starts with.
func (p PrimaryMatch) RootBudget() int {
	if p.MaxConsecutive <= 0 {
		return math.MaxInt32
	}
	return p.MaxConsecutive
}

// NextBudget returns the successor budget given the predecessor's budget
// and whether the edge taken was a non-flank primary match.
func (p PrimaryMatch) NextBudget(budget int, wasBodyMatch bool) int {
	if p.MaxConsecutive <= 0 {
		return budget
	}
	if wasBodyMatch {
		if budget <= 0 {
			panic("strategy: body match taken with exhausted budget")
		}
		return budget - 1
	}
	return p.MaxConsecutive
}

// CanMatch reports whether a body match edge may be taken given the
// current budget.
func (p PrimaryMatch) CanMatch(budget int) bool {
	return p.MaxConsecutive <= 0 || budget > 0
}

// Shortcut names the TS-lower-bound shortcut edge of the alignment
// lower-bound matrix (C8), where a single template switch is collapsed into
// one edge of cost looked up from C7 (spec §4.8). alignmatrix.Build does not
// read it; its shortcut edges come from the tsmatrix.Matrix it is given.
type Shortcut int

const (
	NoShortcut Shortcut = iota
	TSLowerBoundShortcut
)

// Chaining records whether the chain/seed lower bound (C10) is wanted for
// primary nodes. tsgraph.Context does not read it: the bound contributes to
// the heuristic whenever Context.Chain is non-nil.
type Chaining int

const (
	NoChaining Chaining = iota
	ChainingLowerBound
)

// MinLengthMode selects how the minimum-length lookahead (C9) prices a
// freshly opened secondary root (spec §4.3).
type MinLengthMode int

const (
	// LookaheadMode runs a bounded inner A* for every opened secondary
	// root.
	LookaheadMode MinLengthMode = iota
	// PreprocessPriceMode consults a precomputed minimum-length match
	// table, pricing a mismatch at the minimum non-match edit cost.
	PreprocessPriceMode
	// PreprocessFilterMode is like PreprocessPriceMode but drops
	// non-matching roots instead of pricing them.
	PreprocessFilterMode
	// PreprocessLookaheadMode runs the lookahead once per distinct key and
	// persists the result for reuse.
	PreprocessLookaheadMode
)

// TotalLength selects the (non-legality-affecting) total-TS-length
// evaluation hook (spec §4.8, §9 Open Question 2). The default, NoLimit, is
// always safe: it is a no-op that never changes search outcomes.
type TotalLength int

const (
	NoLimitTotalLength TotalLength = iota
	MaximisePrimaryMatchEquivalent
)

// Set bundles every orthogonal policy selected for one aligner invocation.
type Set struct {
	NodeOrdering      NodeOrdering
	TSCount           TSCountLimit
	SecondaryDeletion SecondaryDeletion
	PrimaryMatch      PrimaryMatch
	Shortcut          Shortcut
	Chaining          Chaining
	MinLength         MinLengthMode
	TotalLength       TotalLength
}

// Default returns the policy set used by a normal (non-lower-bound) TS
// alignment search: cost+anti-diagonal ordering, no TS count limit,
// secondary deletions allowed, matches always allowed, no shortcut, chain
// lower bound enabled, lookahead for minimum length, no-op total length.
func Default() Set {
	return Set{
		NodeOrdering:      AntiDiagonal,
		TSCount:           Unlimited(),
		SecondaryDeletion: AllowSecondaryDeletion,
		PrimaryMatch:      AllowPrimaryMatch(),
		Shortcut:          NoShortcut,
		Chaining:          ChainingLowerBound,
		MinLength:         LookaheadMode,
		TotalLength:       NoLimitTotalLength,
	}
}

// ForTemplateSwitchLowerBound returns the policy set C7 uses to build the
// TS lower-bound matrix: secondary deletions are forbidden (spec §4.4) so
// the saturating search over a synthetic genome stays tractable, a path may
// take at most one template switch, and there is no chaining heuristic (the
// synthetic problem has no real sequences to chain).
func ForTemplateSwitchLowerBound() Set {
	s := Default()
	s.TSCount = TSCountLimit{Limit: 1}
	s.SecondaryDeletion = ForbidSecondaryDeletion
	s.Chaining = NoChaining
	s.MinLength = LookaheadMode
	return s
}

// ForAlignmentLowerBound returns Default with the TS shortcut enabled and
// chaining off. alignmatrix.Build takes no Set and does not use it; its own
// search has no template-switch entrances, so only a shortcut edge can
// account for a switch there.
func ForAlignmentLowerBound() Set {
	s := Default()
	s.Shortcut = TSLowerBoundShortcut
	s.Chaining = NoChaining
	return s
}
