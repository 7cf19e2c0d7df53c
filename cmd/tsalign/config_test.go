// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/tsalign/cost"
)

const testConfigTOML = `
left_flank_length = 2
right_flank_length = 2
template_switch_min_length = 3

offset = [ { threshold = -2, cost = 4 }, { threshold = 0, cost = 0 }, { threshold = 2, cost = 4 } ]
length = [ { threshold = 0, cost = 0 } ]
length_difference = [ { threshold = -2, cost = 2 }, { threshold = 0, cost = 0 }, { threshold = 2, cost = 2 } ]
forward_anti_primary_gap = [ { threshold = 0, cost = 0 } ]
reverse_anti_primary_gap = [ { threshold = 0, cost = 0 } ]

[base_costs]
rrf = 10
rqf = 10
qrf = -1
qqf = -1
rrr = 10
rqr = 10
qrr = -1
qqr = -1

[tables.primary]
match = 0
substitution = 1
gap_open = 4
gap_extend = 1

[tables.secondary_forward]
match = 0
substitution = 1
gap_open = 4
gap_extend = 1

[tables.secondary_reverse]
match = 0
substitution = 1
gap_open = 4
gap_extend = 1

[tables.left_flank]
match = 0
substitution = 1
gap_open = 4
gap_extend = 1

[tables.right_flank]
match = 0
substitution = 1
gap_open = 4
gap_extend = 1
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigTOML), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTestConfig(t)
	cfg, err := loadConfig(path, alphabet.DNA)
	require.NoError(t, err)

	require.Equal(t, 2, cfg.LeftFlankLength)
	require.Equal(t, 2, cfg.RightFlankLength)
	require.Equal(t, 3, cfg.TemplateSwitchMinLength)

	require.True(t, cfg.Primary.MatchOrSubstitution(alphabet.DNA.Letter(0), alphabet.DNA.Letter(0)).Equal(cost.Zero))
	require.True(t, cfg.Primary.MaxGapOpen().Equal(cost.FromInt(4)))
}

func TestLoadConfigInfiniteSentinel(t *testing.T) {
	require.True(t, loadCost(infinite).IsInf())
	require.True(t, loadCost(0).Equal(cost.Zero))
	require.True(t, loadCost(7).Equal(cost.FromInt(7)))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), alphabet.DNA)
	require.Error(t, err)
}

func TestLoadStepsRequiresPoints(t *testing.T) {
	_, err := loadSteps(nil, "offset")
	require.Error(t, err)
}
