// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kortschak/tsalign/cost"
)

func TestNodeOrderingTieBreak(t *testing.T) {
	require.Equal(t, int64(0), CostOnly.PrimaryTieBreak(3, 4))
	require.Equal(t, int64(0), CostOnly.NonPrimaryTieBreak())

	require.Equal(t, int64(-7), AntiDiagonal.PrimaryTieBreak(3, 4))
	require.Equal(t, int64(math.MaxInt64), AntiDiagonal.NonPrimaryTieBreak())
}

func TestTSCountLimit(t *testing.T) {
	require.True(t, Unlimited().Allows(1000))

	limit := TSCountLimit{Limit: 2}
	require.True(t, limit.Allows(0))
	require.True(t, limit.Allows(1))
	require.False(t, limit.Allows(2))
}

func TestPrimaryMatchAlwaysAllow(t *testing.T) {
	p := AllowPrimaryMatch()
	require.Equal(t, math.MaxInt32, p.RootBudget())
	require.True(t, p.CanMatch(0))
	require.Equal(t, 0, p.NextBudget(0, true))
}

func TestPrimaryMatchBudgeted(t *testing.T) {
	p := PrimaryMatch{MaxConsecutive: 2, FakeSubstitutionCost: cost.FromInt(3)}
	require.Equal(t, 2, p.RootBudget())
	require.True(t, p.CanMatch(2))
	require.False(t, p.CanMatch(0))

	next := p.NextBudget(2, true)
	require.Equal(t, 1, next)
	next = p.NextBudget(next, true)
	require.Equal(t, 0, next)

	// a non-match edge resets the budget to the full allowance.
	require.Equal(t, 2, p.NextBudget(0, false))
}

func TestPrimaryMatchExhaustedBudgetPanics(t *testing.T) {
	p := PrimaryMatch{MaxConsecutive: 1}
	require.Panics(t, func() { p.NextBudget(0, true) })
}

func TestDefaultPolicySet(t *testing.T) {
	s := Default()
	require.Equal(t, AntiDiagonal, s.NodeOrdering)
	require.True(t, s.TSCount.Allows(1000))
	require.Equal(t, AllowSecondaryDeletion, s.SecondaryDeletion)
	require.Equal(t, NoShortcut, s.Shortcut)
	require.Equal(t, ChainingLowerBound, s.Chaining)
	require.Equal(t, LookaheadMode, s.MinLength)
	require.Equal(t, NoLimitTotalLength, s.TotalLength)
}

func TestForTemplateSwitchLowerBound(t *testing.T) {
	s := ForTemplateSwitchLowerBound()
	require.Equal(t, ForbidSecondaryDeletion, s.SecondaryDeletion)
	require.Equal(t, NoChaining, s.Chaining)
}

func TestForAlignmentLowerBound(t *testing.T) {
	s := ForAlignmentLowerBound()
	require.Equal(t, TSLowerBoundShortcut, s.Shortcut)
	require.Equal(t, NoChaining, s.Chaining)
}
