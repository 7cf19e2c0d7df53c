// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chain

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/lowerbound/alignmatrix"
	"github.com/kortschak/tsalign/lowerbound/tsmatrix"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsgraph"
)

// buildCosts returns an alignment lower-bound matrix (C8) over a
// homogeneous genome with gap-affine primary costs and no template-switch
// shortcuts, so chain construction exercises only the DAG/Dijkstra wiring.
func buildCosts(t *testing.T) *alignmatrix.Matrix {
	t.Helper()
	primary := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(2), cost.FromInt(1))
	empty := &tsmatrix.Matrix{}
	return alignmatrix.Build(alphabet.Letter('A'), primary, empty, strategy.AllowPrimaryMatch(), 8, 8)
}

func TestBuildAndLowerBoundCoveredAnchor(t *testing.T) {
	costs := buildCosts(t)
	anchors := []Anchor{
		{RefStart: 0, RefEnd: 5, QueryStart: 0, QueryEnd: 5},
		{RefStart: 10, RefEnd: 15, QueryStart: 10, QueryEnd: 15},
	}
	bound, err := Build(anchors, 20, 20, costs, cost.FromInt(2))
	if err != nil {
		t.Fatal(err)
	}

	got := bound.LowerBound(2, 2, tsgraph.GapNone)
	if got.IsInf() {
		t.Fatal("LowerBound inside a covered anchor should not be Inf when the path to target is finite")
	}
}

func TestBuildRejectsOverlappingAnchors(t *testing.T) {
	costs := buildCosts(t)
	anchors := []Anchor{
		{RefStart: 0, RefEnd: 5, QueryStart: 0, QueryEnd: 5},
		{RefStart: 3, RefEnd: 8, QueryStart: 20, QueryEnd: 25},
	}
	if _, err := Build(anchors, 30, 30, costs, cost.FromInt(2)); err == nil {
		t.Fatal("Build should reject anchors overlapping on the reference")
	}
}

func TestLowerBoundUncoveredIsZero(t *testing.T) {
	costs := buildCosts(t)
	anchors := []Anchor{
		{RefStart: 0, RefEnd: 5, QueryStart: 0, QueryEnd: 5},
	}
	bound, err := Build(anchors, 20, 20, costs, cost.FromInt(2))
	if err != nil {
		t.Fatal(err)
	}
	if got := bound.LowerBound(15, 15, tsgraph.GapNone); !got.Equal(cost.Zero) {
		t.Fatalf("LowerBound outside every anchor = %v, want 0", got)
	}
}
