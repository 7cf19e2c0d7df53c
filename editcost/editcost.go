// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editcost implements the gap-affine edit cost tables (spec §3,
// §6): one table per edit context (primary, secondary-forward,
// secondary-reverse, left-flank, right-flank), each giving match,
// substitution, and per-character gap open/extend costs, with Inf meaning
// forbidden.
package editcost

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/cost"
)

// Table is one gap-affine edit cost context over an alphabet.
type Table struct {
	substitution map[[2]alphabet.Letter]cost.Cost
	gapOpen      map[alphabet.Letter]cost.Cost
	gapExtend    map[alphabet.Letter]cost.Cost
	match        map[[2]alphabet.Letter]cost.Cost
}

// NewTable builds a Table. match and substitution may be the same map key
// space; match is consulted when the two characters are equal, and
// substitution otherwise, matching the distinct match/substitution knobs
// spec §3 requires.
func NewTable() *Table {
	return &Table{
		substitution: make(map[[2]alphabet.Letter]cost.Cost),
		gapOpen:      make(map[alphabet.Letter]cost.Cost),
		gapExtend:    make(map[alphabet.Letter]cost.Cost),
		match:        make(map[[2]alphabet.Letter]cost.Cost),
	}
}

// SetMatch sets the cost of aligning identical characters a, b (a == b is
// typical, but the table is addressed by the ordered pair so asymmetric
// callers are still well defined).
func (t *Table) SetMatch(a, b alphabet.Letter, c cost.Cost) {
	t.match[[2]alphabet.Letter{a, b}] = c
}

// SetSubstitution sets the cost of substituting a for b.
func (t *Table) SetSubstitution(a, b alphabet.Letter, c cost.Cost) {
	t.substitution[[2]alphabet.Letter{a, b}] = c
}

// SetGapOpen sets the cost of opening a gap consuming character a.
func (t *Table) SetGapOpen(a alphabet.Letter, c cost.Cost) { t.gapOpen[a] = c }

// SetGapExtend sets the cost of extending a gap consuming character a.
func (t *Table) SetGapExtend(a alphabet.Letter, c cost.Cost) { t.gapExtend[a] = c }

// MatchOrSubstitution returns the match cost if a == b, else the
// substitution cost for (a, b). Missing entries are Inf (forbidden).
func (t *Table) MatchOrSubstitution(a, b alphabet.Letter) cost.Cost {
	if a == b {
		if c, ok := t.match[[2]alphabet.Letter{a, b}]; ok {
			return c
		}
		return cost.Inf
	}
	if c, ok := t.substitution[[2]alphabet.Letter{a, b}]; ok {
		return c
	}
	return cost.Inf
}

// GapOpen returns the cost of opening a gap consuming a.
func (t *Table) GapOpen(a alphabet.Letter) cost.Cost {
	if c, ok := t.gapOpen[a]; ok {
		return c
	}
	return cost.Inf
}

// GapExtend returns the cost of extending a gap consuming a.
func (t *Table) GapExtend(a alphabet.Letter) cost.Cost {
	if c, ok := t.gapExtend[a]; ok {
		return c
	}
	return cost.Inf
}

// Uniform builds a Table with the same match/substitution/open/extend cost
// for every character of alpha, the common case for a simple configuration
// (spec scenarios S1-S6 all use uniform tables).
func Uniform(alpha alphabet.Alphabet, match, substitution, gapOpen, gapExtend cost.Cost) *Table {
	t := NewTable()
	n := alpha.Len()
	for i := 0; i < n; i++ {
		a := alpha.Letter(i)
		t.SetGapOpen(a, gapOpen)
		t.SetGapExtend(a, gapExtend)
		for j := 0; j < n; j++ {
			b := alpha.Letter(j)
			if a == b {
				t.SetMatch(a, b, match)
			} else {
				t.SetSubstitution(a, b, substitution)
			}
		}
	}
	return t
}

// Forbidden builds a Table that forbids every operation (all costs Inf),
// used to zero out an edit context in synthetic lower-bound problems (C7,
// C8).
func Forbidden() *Table {
	return NewTable()
}

// MaxGapOpen returns the largest configured gap-open cost in t, or Zero if
// none are configured. Used by the chain lower bound (C10) to compute the
// single worst-case gap-open deduction it subtracts from a covered node's
// bound (spec §4.6).
func (t *Table) MaxGapOpen() cost.Cost {
	max := cost.Zero
	for _, c := range t.gapOpen {
		if !c.IsInf() {
			max = cost.Max(max, c)
		}
	}
	return max
}

// MinNonMatchCost returns the minimum cost of any configured substitution,
// gap-open, or gap-extend entry — the cheapest possible single non-match
// edge this table can ever charge. Used by the minimum-length lookahead's
// preprocess-price mode (C9) as an admissible stand-in cost for a mismatch
// it chooses not to walk explicitly.
func (t *Table) MinNonMatchCost() cost.Cost {
	min := cost.Inf
	for _, c := range t.substitution {
		min = cost.Min(min, c)
	}
	for _, c := range t.gapOpen {
		min = cost.Min(min, c)
	}
	for _, c := range t.gapExtend {
		min = cost.Min(min, c)
	}
	return min
}
