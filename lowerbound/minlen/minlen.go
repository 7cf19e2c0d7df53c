// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minlen implements the minimum-length lookahead (spec §4.3, C9):
// pricing or filtering a freshly opened secondary root so the search does
// not waste effort on a template switch that can never reach the
// configured minimum length. It implements tsgraph.MinLengthPricer.
package minlen

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsgraph"
	"github.com/kortschak/tsalign/tsseq"
)

// key identifies one distinct (primary, secondary, direction, position)
// lookahead/preprocess query, matching spec §4.3's cache key.
type key struct {
	Primary        tsconfig.Primary
	Secondary      tsconfig.Secondary
	Direction      tsconfig.Direction
	PrimaryIndex   int
	SecondaryIndex int
}

func keyOf(id tsgraph.Identifier) key {
	return key{id.TSPrimary, id.TSSecondary, id.TSDirection, id.PrimaryIndex, id.SecondaryIndex}
}

// Config bundles what a Pricer needs to evaluate or look ahead from a
// secondary root: the same restricted sequences and TS configuration the
// enclosing search uses, and the strategies that govern its inner walk
// (so a lookahead search permits exactly the moves the real search would).
type Config struct {
	Ref, Query tsseq.Sequence
	TSConfig   tsconfig.Config
	Strategies strategy.Set
	MinLength  int
	Mode       strategy.MinLengthMode
}

// Pricer implements tsgraph.MinLengthPricer per spec §4.3.
type Pricer struct {
	cfg        Config
	lookaheads map[key]cost.Cost
	matches    map[key]bool
	// buffers backs every inner lookahead search's heap and closed map, so
	// the many structurally similar per-root searches a single alignment
	// run issues (spec §4.1 into_buffers/new_with_buffers; §9 "large
	// speedups" from caching) reuse storage instead of allocating it fresh
	// on every opened secondary root.
	buffers astar.Buffers[tsgraph.Identifier, tsgraph.Edge]
}

// New returns a Pricer for cfg. A single Pricer should be shared by every
// tsgraph.Context built for the same search, so its caches actually get
// reused.
func New(cfg Config) *Pricer {
	return &Pricer{
		cfg: cfg, lookaheads: make(map[key]cost.Cost), matches: make(map[key]bool),
		buffers: astar.NewBuffers[tsgraph.Identifier, tsgraph.Edge](),
	}
}

var _ tsgraph.MinLengthPricer = (*Pricer)(nil)

// Price implements tsgraph.MinLengthPricer.
func (p *Pricer) Price(root tsgraph.Identifier) (cost.Cost, bool) {
	switch p.cfg.Mode {
	case strategy.PreprocessPriceMode:
		if p.isPerfectMatch(root) {
			return cost.Zero, true
		}
		return p.cfg.TSConfig.SecondaryEditTable(root.TSDirection).MinNonMatchCost(), true
	case strategy.PreprocessFilterMode:
		if p.isPerfectMatch(root) {
			return cost.Zero, true
		}
		return cost.Zero, false
	default: // LookaheadMode, PreprocessLookaheadMode: both cache-backed inner searches.
		return p.lookahead(root), true
	}
}

// lookahead runs a bounded inner A* from root until the walk reaches
// MinLength, reusing the generic engine (C5) exactly the way the spec's
// "reusing C5 with its own buffers" describes, and memoizes the result
// against root's (primary, secondary, direction, position) key.
func (p *Pricer) lookahead(root tsgraph.Identifier) cost.Cost {
	k := keyOf(root)
	if c, ok := p.lookaheads[k]; ok {
		return c
	}

	inner := &tsgraph.Context{
		Ref:        p.cfg.Ref,
		Query:      p.cfg.Query,
		Config:     p.cfg.TSConfig,
		Strategies: p.cfg.Strategies,
	}
	e := astar.NewWithBuffers[tsgraph.Identifier, tsgraph.Edge](inner, p.buffers)
	e.InitialiseWith(astar.Node[tsgraph.Identifier, tsgraph.Edge]{ID: root})
	target := p.cfg.MinLength
	result := e.SearchUntil(func(n astar.Node[tsgraph.Identifier, tsgraph.Edge]) bool {
		return n.ID.Kind == tsgraph.KindSecondary && n.ID.Length >= target
	})
	p.buffers = e.IntoBuffers()

	h := cost.Inf
	if result.Reason == astar.FoundTarget {
		h = result.Cost
	}
	p.lookaheads[k] = h
	return h
}

// isPerfectMatch reports whether the MinLength-character window starting
// at root's primary/secondary position is a perfect match in root's walk
// direction, memoized per key the same way the Rust original's
// precomputed match table is indexed.
func (p *Pricer) isPerfectMatch(root tsgraph.Identifier) bool {
	k := keyOf(root)
	if v, ok := p.matches[k]; ok {
		return v
	}

	primary := p.primarySeq(root.TSPrimary)
	secondary := p.secondarySeq(root.TSSecondary)
	match := true
	for i := 0; i < p.cfg.MinLength; i++ {
		pi := root.PrimaryIndex + i
		if pi < 0 || pi >= primary.Len() {
			match = false
			break
		}
		var sc alphabet.Letter
		if root.TSDirection == tsconfig.Forward {
			si := root.SecondaryIndex + i
			if si >= secondary.Len() {
				match = false
				break
			}
			sc = secondary.At(si)
		} else {
			si := root.SecondaryIndex - i - 1
			if si < 0 {
				match = false
				break
			}
			sc = tsseq.Complement(secondary.At(si))
		}
		if primary.At(pi) != sc {
			match = false
			break
		}
	}
	p.matches[k] = match
	return match
}

func (p *Pricer) primarySeq(primary tsconfig.Primary) tsseq.Sequence {
	if primary == tsconfig.Reference {
		return p.cfg.Ref
	}
	return p.cfg.Query
}

func (p *Pricer) secondarySeq(secondary tsconfig.Secondary) tsseq.Sequence {
	if secondary == tsconfig.SecondaryReference {
		return p.cfg.Ref
	}
	return p.cfg.Query
}
