// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editcost

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/tsalign/cost"
)

func TestNewTableDefaultsToForbidden(t *testing.T) {
	tbl := NewTable()
	a, c := alphabet.DNA.Letter(0), alphabet.DNA.Letter(1)
	require.True(t, tbl.MatchOrSubstitution(a, a).IsInf())
	require.True(t, tbl.MatchOrSubstitution(a, c).IsInf())
	require.True(t, tbl.GapOpen(a).IsInf())
	require.True(t, tbl.GapExtend(a).IsInf())
}

func TestSetAndQuery(t *testing.T) {
	tbl := NewTable()
	a, c := alphabet.DNA.Letter(0), alphabet.DNA.Letter(1)
	tbl.SetMatch(a, a, cost.Zero)
	tbl.SetSubstitution(a, c, cost.FromInt(2))
	tbl.SetGapOpen(a, cost.FromInt(5))
	tbl.SetGapExtend(a, cost.FromInt(1))

	require.True(t, tbl.MatchOrSubstitution(a, a).Equal(cost.Zero))
	require.True(t, tbl.MatchOrSubstitution(a, c).Equal(cost.FromInt(2)))
	require.True(t, tbl.GapOpen(a).Equal(cost.FromInt(5)))
	require.True(t, tbl.GapExtend(a).Equal(cost.FromInt(1)))
}

func TestUniform(t *testing.T) {
	tbl := Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(4), cost.FromInt(2))
	n := alphabet.DNA.Len()
	for i := 0; i < n; i++ {
		a := alphabet.DNA.Letter(i)
		require.True(t, tbl.MatchOrSubstitution(a, a).Equal(cost.Zero))
		require.True(t, tbl.GapOpen(a).Equal(cost.FromInt(4)))
		require.True(t, tbl.GapExtend(a).Equal(cost.FromInt(2)))
		for j := 0; j < n; j++ {
			b := alphabet.DNA.Letter(j)
			if a != b {
				require.True(t, tbl.MatchOrSubstitution(a, b).Equal(cost.FromInt(1)))
			}
		}
	}
}

func TestForbidden(t *testing.T) {
	tbl := Forbidden()
	a := alphabet.DNA.Letter(0)
	require.True(t, tbl.MatchOrSubstitution(a, a).IsInf())
	require.True(t, tbl.MaxGapOpen().Equal(cost.Zero))
	require.True(t, tbl.MinNonMatchCost().IsInf())
}

func TestMaxGapOpen(t *testing.T) {
	tbl := NewTable()
	a, c, g := alphabet.DNA.Letter(0), alphabet.DNA.Letter(1), alphabet.DNA.Letter(2)
	tbl.SetGapOpen(a, cost.FromInt(3))
	tbl.SetGapOpen(c, cost.FromInt(7))
	tbl.SetGapOpen(g, cost.Inf)
	require.True(t, tbl.MaxGapOpen().Equal(cost.FromInt(7)))
}

func TestMinNonMatchCost(t *testing.T) {
	tbl := Uniform(alphabet.DNA, cost.Zero, cost.FromInt(3), cost.FromInt(5), cost.FromInt(1))
	require.True(t, tbl.MinNonMatchCost().Equal(cost.FromInt(1)))
}
