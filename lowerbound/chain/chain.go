// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chain implements the chain/seed lower bound (spec §4.6, C10): a
// global admissible heuristic built from a pre-computed list of
// non-overlapping equal-length anchors, chained into a DAG whose edge
// costs come from the alignment lower-bound matrix (C8) and whose
// shortest path to the target gives every covered node a remaining-cost
// estimate. It implements tsgraph.ChainLowerBound.
package chain

import (
	"fmt"
	"math"
	"sort"

	"github.com/biogo/store/interval"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/lowerbound/alignmatrix"
	"github.com/kortschak/tsalign/tsgraph"
)

// Anchor is a non-overlapping equal-length exact match between reference
// and query (spec §3 "Anchors / chain"), supplied by an external seeder
// (spec §1 "chain-seeding is an external collaborator").
type Anchor struct {
	RefStart, RefEnd     int
	QueryStart, QueryEnd int
}

func (a Anchor) refRange() interval.IntRange   { return interval.IntRange{Start: a.RefStart, End: a.RefEnd} }
func (a Anchor) queryRange() interval.IntRange { return interval.IntRange{Start: a.QueryStart, End: a.QueryEnd} }

// refInterval and queryInterval adapt one Anchor into biogo/store/interval's
// IntInterface over each dimension separately, the way kortschak-loopy's
// cmd/rinse builds one gffInterval per feature but indexed by a single
// coordinate space; here an anchor occupies two independent coordinate
// spaces, so it gets two thin wrappers sharing the same index.
type refInterval struct {
	Anchor
	idx uintptr
}

func (r refInterval) ID() uintptr                      { return r.idx }
func (r refInterval) Range() interval.IntRange         { return r.refRange() }
func (r refInterval) Overlap(b interval.IntRange) bool { return r.RefEnd > b.Start && r.RefStart < b.End }

type queryInterval struct {
	Anchor
	idx uintptr
}

func (q queryInterval) ID() uintptr                     { return q.idx }
func (q queryInterval) Range() interval.IntRange        { return q.queryRange() }
func (q queryInterval) Overlap(b interval.IntRange) bool { return q.QueryEnd > b.Start && q.QueryStart < b.End }

// point is a zero-width IntInterface used only to query a tree at a single
// coordinate (Get needs an IntInterface, not a bare IntRange, the way
// kortschak-loopy/cmd/rinse queries its gffInterval trees with another
// gffInterval rather than a raw range).
type point int

func (p point) ID() uintptr              { return 0 }
func (p point) Range() interval.IntRange { return interval.IntRange{Start: int(p), End: int(p) + 1} }
func (p point) Overlap(b interval.IntRange) bool {
	return int(p) < b.End && int(p)+1 > b.Start
}

// Bound is the built chain lower bound: a DAG over anchors with distances
// to target precomputed by a single Dijkstra pass, queried by coordinate
// coverage via the reference interval tree; the query tree is used only by
// Build to validate non-overlap.
type Bound struct {
	anchors      []Anchor
	refTree      *interval.IntTree
	queryTree    *interval.IntTree
	distToTarget []cost.Cost // distToTarget[i] is anchor i's remaining distance to target
	maxGapOpen   cost.Cost
}

var _ tsgraph.ChainLowerBound = (*Bound)(nil)

// Build validates anchors for non-overlap in both dimensions (spec §4.6),
// then builds the root→anchor→target DAG and runs a single shortest-path
// pass to precompute each anchor's remaining distance to the target.
// refLen/queryLen are the full restricted-sequence lengths; costs is C8's
// alignment lower-bound matrix; maxGapOpen is the largest gap-open cost
// across every edit table in play, subtracted once from a covered node's
// bound when its gap_type is not None (spec §4.6 admissibility note).
func Build(anchors []Anchor, refLen, queryLen int, costs *alignmatrix.Matrix, maxGapOpen cost.Cost) (*Bound, error) {
	sorted := append([]Anchor(nil), anchors...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].RefStart != sorted[j].RefStart {
			return sorted[i].RefStart < sorted[j].RefStart
		}
		return sorted[i].QueryStart < sorted[j].QueryStart
	})

	refTree := &interval.IntTree{}
	queryTree := &interval.IntTree{}
	for i, a := range sorted {
		if a.RefEnd-a.RefStart != a.QueryEnd-a.QueryStart {
			return nil, fmt.Errorf("chain: anchor %d has mismatched reference/query length", i)
		}
		if hits := refTree.Get(refInterval{Anchor: a}); len(hits) != 0 {
			return nil, fmt.Errorf("chain: anchor %d overlaps an earlier anchor on the reference", i)
		}
		if hits := queryTree.Get(queryInterval{Anchor: a}); len(hits) != 0 {
			return nil, fmt.Errorf("chain: anchor %d overlaps an earlier anchor on the query", i)
		}
		refTree.Insert(refInterval{a, uintptr(i)}, true)
		queryTree.Insert(queryInterval{a, uintptr(i)}, true)
	}
	refTree.AdjustRanges()
	queryTree.AdjustRanges()

	// Node IDs: 0 is the virtual root, 1..n are anchors by sorted index,
	// n+1 is the virtual target. Only the reversed-edge mirror graph is
	// built, so a single Dijkstra-from-target pass gives every anchor its
	// distance to target directly, the same single-graph-query idiom
	// kortschak-loopy/cmd/press/press.go uses, generalised here from an
	// undirected similarity graph to a reversed directed DAG.
	n := len(sorted)
	target := int64(n + 1)
	reverse := simple.NewWeightedDirectedGraph(0, 0)
	for id := int64(0); id <= target; id++ {
		reverse.AddNode(simple.Node(id))
	}
	addEdge := func(from, to int64, w cost.Cost) {
		if w.IsInf() {
			return
		}
		reverse.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(to), T: simple.Node(from), W: w.AsFloat64()})
	}

	for i, a := range sorted {
		addEdge(0, int64(i+1), costs.Lookup(a.RefStart, a.QueryStart))
		addEdge(int64(i+1), target, costs.Lookup(refLen-a.RefEnd, queryLen-a.QueryEnd))
		for j, b := range sorted {
			if i == j {
				continue
			}
			if a.RefEnd <= b.RefStart && a.QueryEnd <= b.QueryStart {
				addEdge(int64(i+1), int64(j+1), costs.Lookup(b.RefStart-a.RefEnd, b.QueryStart-a.QueryEnd))
			}
		}
	}

	shortest := path.DijkstraFrom(simple.Node(target), reverse)
	distToTarget := make([]cost.Cost, n)
	for i := range sorted {
		w := shortest.WeightTo(int64(i + 1))
		if math.IsInf(w, 1) {
			distToTarget[i] = cost.Inf
		} else {
			distToTarget[i] = floatToCost(w)
		}
	}

	return &Bound{
		anchors: sorted, refTree: refTree, queryTree: queryTree,
		distToTarget: distToTarget, maxGapOpen: maxGapOpen,
	}, nil
}

func floatToCost(f float64) cost.Cost {
	if f < 0 {
		return cost.Zero
	}
	return cost.FromInt(int(f + 0.5))
}

// LowerBound implements tsgraph.ChainLowerBound: it finds an anchor whose
// reference and query intervals both cover (r, q) at the same diagonal
// offset, and returns that anchor's precomputed remaining distance to the
// target, discounted once for an already-open gap (spec §4.6). A node not
// covered by any anchor gets the uninformative but always-safe Zero bound.
func (b *Bound) LowerBound(r, q int, gap tsgraph.GapType) cost.Cost {
	hits := b.refTree.Get(point(r))
	for _, h := range hits {
		ri := h.(refInterval)
		if q < ri.QueryStart || q >= ri.QueryEnd {
			continue
		}
		if r-ri.RefStart != q-ri.QueryStart {
			continue
		}
		bound := b.distToTarget[ri.idx]
		if gap != tsgraph.GapNone {
			bound = bound.Sub(b.maxGapOpen)
		}
		return bound
	}
	return cost.Zero
}
