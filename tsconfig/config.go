// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsconfig bundles the immutable configuration the template-switch
// search operates against (spec §3 "TS configuration", §6 "Recognized TS
// config options"). The core never parses the concrete config syntax; that
// is cmd/tsalign's job (spec §1 Non-goals).
package tsconfig

import (
	"fmt"

	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/stepcost"
)

// Primary identifies which of the two input sequences does not jump during
// a template switch.
type Primary int

const (
	Reference Primary = iota
	Query
)

func (p Primary) String() string {
	if p == Reference {
		return "R"
	}
	return "Q"
}

// Secondary identifies which sequence a template switch jumps to.
type Secondary int

const (
	SecondaryReference Secondary = iota
	SecondaryQuery
)

func (s Secondary) String() string {
	if s == SecondaryReference {
		return "R"
	}
	return "Q"
}

// Direction is the read direction along the secondary sequence.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Forward {
		return "F"
	}
	return "R"
}

// baseCostKey indexes the eight base costs by (primary, secondary,
// direction).
type baseCostKey struct {
	Primary   Primary
	Secondary Secondary
	Direction Direction
}

// Config is the immutable bundle described by spec §3/§6. Zero value is not
// meaningful; construct via Builder.
type Config struct {
	LeftFlankLength         int
	RightFlankLength        int
	TemplateSwitchMinLength int

	baseCosts map[baseCostKey]cost.Cost

	OffsetCost              stepcost.Function
	LengthCost              stepcost.Function
	LengthDifferenceCost    stepcost.Function
	ForwardAntiPrimaryGap   stepcost.Function
	ReverseAntiPrimaryGap   stepcost.Function

	Primary          *editcost.Table
	SecondaryForward *editcost.Table
	SecondaryReverse *editcost.Table
	LeftFlank        *editcost.Table
	RightFlank       *editcost.Table
}

// Builder incrementally assembles a Config; used by cmd/tsalign's TOML
// loader and by tests that construct synthetic configurations.
type Builder struct {
	c Config
}

// NewBuilder starts a Builder with all eight base costs set to Inf
// (disabled) and empty edit tables (also fully forbidding), matching the
// "disabled by default" posture spec §6 describes for base costs.
func NewBuilder() *Builder {
	return &Builder{c: Config{
		baseCosts:        make(map[baseCostKey]cost.Cost),
		Primary:          editcost.Forbidden(),
		SecondaryForward: editcost.Forbidden(),
		SecondaryReverse: editcost.Forbidden(),
		LeftFlank:        editcost.Forbidden(),
		RightFlank:       editcost.Forbidden(),
	}}
}

func (b *Builder) FlankLengths(left, right int) *Builder {
	b.c.LeftFlankLength, b.c.RightFlankLength = left, right
	return b
}

func (b *Builder) MinTemplateSwitchLength(n int) *Builder {
	b.c.TemplateSwitchMinLength = n
	return b
}

// BaseCost sets the base cost for one of the eight (primary, secondary,
// direction) combinations.
func (b *Builder) BaseCost(primary Primary, secondary Secondary, direction Direction, c cost.Cost) *Builder {
	b.c.baseCosts[baseCostKey{primary, secondary, direction}] = c
	return b
}

func (b *Builder) StepCosts(offset, length, lengthDifference, forwardAntiGap, reverseAntiGap stepcost.Function) *Builder {
	b.c.OffsetCost = offset
	b.c.LengthCost = length
	b.c.LengthDifferenceCost = lengthDifference
	b.c.ForwardAntiPrimaryGap = forwardAntiGap
	b.c.ReverseAntiPrimaryGap = reverseAntiGap
	return b
}

func (b *Builder) EditTables(primary, secondaryForward, secondaryReverse, leftFlank, rightFlank *editcost.Table) *Builder {
	b.c.Primary = primary
	b.c.SecondaryForward = secondaryForward
	b.c.SecondaryReverse = secondaryReverse
	b.c.LeftFlank = leftFlank
	b.c.RightFlank = rightFlank
	return b
}

// Build validates and returns the finished Config. Non-monotone step
// functions are rejected earlier, by stepcost.New itself; Build only checks
// structural invariants spanning multiple fields.
func (b *Builder) Build() (Config, error) {
	if b.c.LeftFlankLength < 0 || b.c.RightFlankLength < 0 {
		return Config{}, fmt.Errorf("tsconfig: flank lengths must be non-negative")
	}
	if b.c.TemplateSwitchMinLength <= 0 {
		return Config{}, fmt.Errorf("tsconfig: template_switch_min_length must be positive")
	}
	return b.c, nil
}

// BaseCost returns the configured base cost for one of the eight
// combinations, or Inf if that combination was never set.
func (c Config) BaseCost(primary Primary, secondary Secondary, direction Direction) cost.Cost {
	if v, ok := c.baseCosts[baseCostKey{primary, secondary, direction}]; ok {
		return v
	}
	return cost.Inf
}

// AnyTemplateSwitchReachable reports whether at least one of the eight base
// costs is finite; if false, the search degenerates to plain gap-affine
// edit distance (spec testable property 2).
func (c Config) AnyTemplateSwitchReachable() bool {
	for _, v := range c.baseCosts {
		if !v.IsInf() {
			return true
		}
	}
	return false
}

// AntiPrimaryGapCost returns the forward or reverse anti-primary-gap step
// function depending on direction.
func (c Config) AntiPrimaryGapCost(direction Direction) stepcost.Function {
	if direction == Forward {
		return c.ForwardAntiPrimaryGap
	}
	return c.ReverseAntiPrimaryGap
}

// SecondaryEditTable returns the secondary edit table for direction.
func (c Config) SecondaryEditTable(direction Direction) *editcost.Table {
	if direction == Forward {
		return c.SecondaryForward
	}
	return c.SecondaryReverse
}
