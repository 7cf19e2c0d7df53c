// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsgraph

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsseq"
)

// ChainLowerBound supplies the chain/seed admissible lower bound (C10) for
// a primary or reentry node. Implemented by lowerbound/chain; tsgraph only
// depends on this interface so C10 can depend on tsgraph without a cycle.
type ChainLowerBound interface {
	LowerBound(r, q int, gap GapType) cost.Cost
}

// MinLengthPricer supplies the minimum-length lookahead admissible
// addition (C9) for a freshly opened secondary root. Implemented by
// lowerbound/minlen. Price returns ok=false only under
// strategy.PreprocessFilterMode, meaning the root can never reach the
// configured minimum template-switch length and should be dropped rather
// than priced.
type MinLengthPricer interface {
	Price(root Identifier) (h cost.Cost, ok bool)
}

// Context implements astar.Context[Identifier, Edge] over a pair of
// already-restricted sequences (spec §4.2, C6). Ref and Query must already
// reflect the caller's restriction range (tsseq.Validate / Sequence.Slice),
// so every R/Q coordinate here is 0-based relative to that range.
type Context struct {
	Ref, Query tsseq.Sequence
	Config     tsconfig.Config
	Strategies strategy.Set

	// Chain and MinLength are optional; a nil value contributes zero to the
	// heuristic (Chain) or accepts every root unpriced (MinLength), which is
	// always admissible, just less informed.
	Chain     ChainLowerBound
	MinLength MinLengthPricer
}

var _ astar.Context[Identifier, Edge] = (*Context)(nil)

// CreateRoot returns the search root: the beginning of both restricted
// sequences, in the primary body, with a fresh primary-match budget and no
// template switches used.
func (c *Context) CreateRoot() astar.Node[Identifier, Edge] {
	root := Identifier{
		Kind:             KindPrimary,
		AvailableMatches: c.Strategies.PrimaryMatch.RootBudget(),
	}
	return astar.Node[Identifier, Edge]{
		ID: root,
		G:  cost.Zero,
		H:  c.heuristic(root),
		TieBreak: c.Strategies.NodeOrdering.PrimaryTieBreak(0, 0),
	}
}

// IsTarget reports whether node has consumed both sequences in full while
// in the primary lane (spec §4.2.5).
func (c *Context) IsTarget(node astar.Node[Identifier, Edge]) bool {
	id := node.ID
	return (id.Kind == KindPrimary || id.Kind == KindPrimaryReentry) &&
		id.R == c.Ref.Len() && id.Q == c.Query.Len()
}

// GenerateSuccessors dispatches to the per-Kind successor generator (spec
// §4.2.1-§4.2.4).
func (c *Context) GenerateSuccessors(node astar.Node[Identifier, Edge], push func(astar.Node[Identifier, Edge])) {
	switch node.ID.Kind {
	case KindPrimary, KindPrimaryReentry:
		c.generatePrimarySuccessors(node, push)
	case KindTSEntrance:
		c.generateEntranceSuccessors(node, push)
	case KindSecondary:
		c.generateSecondarySuccessors(node, push)
	case KindTSExit:
		c.generateExitSuccessors(node, push)
	}
}

// heuristic computes the admissible lower bound for a primary/reentry
// node from the chain lower bound (C10); all other kinds get their H
// computed explicitly at the point they are constructed (see
// emitSecondaryRoot).
func (c *Context) heuristic(id Identifier) cost.Cost {
	if (id.Kind == KindPrimary || id.Kind == KindPrimaryReentry) && id.FlankIndex <= 0 && c.Chain != nil {
		return c.Chain.LowerBound(id.R, id.Q, id.GapType)
	}
	return cost.Zero
}

// emit pushes one successor, computing G and H, and silently drops edges
// of infinite cost: an edge that can never be part of a finite-cost
// optimal path need never occupy a slot in the open heap (spec §4.2
// "disabled combinations ... simply never chosen").
func (c *Context) emit(push func(astar.Node[Identifier, Edge]), pred Identifier, predG, edgeCost cost.Cost, succ Identifier, op Op, tieBreak int64) {
	if edgeCost.IsInf() {
		return
	}
	push(astar.Node[Identifier, Edge]{
		ID:       succ,
		G:        predG.Add(edgeCost),
		H:        c.heuristic(succ),
		Pred:     pred,
		HasPred:  true,
		Edge:     Edge{Op: op},
		TieBreak: tieBreak,
	})
}

func (c *Context) primarySeq(p tsconfig.Primary) tsseq.Sequence {
	if p == tsconfig.Reference {
		return c.Ref
	}
	return c.Query
}

func (c *Context) secondarySeq(s tsconfig.Secondary) tsseq.Sequence {
	if s == tsconfig.SecondaryReference {
		return c.Ref
	}
	return c.Query
}

func (c *Context) primaryChar(p tsconfig.Primary, index int) alphabet.Letter {
	return c.primarySeq(p).At(index)
}

// secondaryIndexInRange reports whether id's current secondary index has
// a character available to consume in its walk direction.
func (c *Context) secondaryIndexInRange(id Identifier) bool {
	if id.TSDirection == tsconfig.Forward {
		return id.SecondaryIndex < c.secondarySeq(id.TSSecondary).Len()
	}
	return id.SecondaryIndex > 0
}

// secondaryCharAt returns the character at id's current secondary index,
// reverse-complemented when walking in reverse.
func (c *Context) secondaryCharAt(id Identifier) alphabet.Letter {
	seq := c.secondarySeq(id.TSSecondary)
	if id.TSDirection == tsconfig.Forward {
		return seq.At(id.SecondaryIndex)
	}
	return tsseq.Complement(seq.At(id.SecondaryIndex - 1))
}

// advanceSecondaryIndex returns id's secondary index after consuming one
// character in its walk direction.
func advanceSecondaryIndex(id Identifier) int {
	if id.TSDirection == tsconfig.Forward {
		return id.SecondaryIndex + 1
	}
	return id.SecondaryIndex - 1
}
