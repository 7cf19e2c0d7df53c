// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/kortschak/tsalign/align"
	"github.com/kortschak/tsalign/tsgraph"
)

// writeResult renders one alignment Result as plain text (rendering to a
// graphical format is an explicit Non-goal): one line per edge run, then a
// statistics block, grounded on the line-oriented
// kortschak-loopy/cmd/fathom, cmd/roll output style.
func writeResult(w io.Writer, result align.Result) error {
	if !result.Found {
		_, err := fmt.Fprintf(w, "no alignment found: %s\n", result.Reason)
		if err != nil {
			return err
		}
		return writeStatistics(w, result.Statistics)
	}
	for _, run := range result.Edges {
		line, ok := edgeLine(run.Kind)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", run.Multiplicity, line); err != nil {
			return err
		}
	}
	return writeStatistics(w, result.Statistics)
}

// edgeLine renders one EdgeKind's display line. The second result is false
// for edge kinds that are internal bookkeeping (the offset/length-
// difference telescoping steps and the secondary walk's root marker) with
// no independent content to show: their effect is already folded into the
// entrance/exit line's final cost.
func edgeLine(kind align.EdgeKind) (string, bool) {
	switch kind.Op {
	case tsgraph.OpPrimaryMatch:
		return "M", true
	case tsgraph.OpPrimarySubstitution:
		return "X", true
	case tsgraph.OpPrimaryInsertion:
		return "I", true
	case tsgraph.OpPrimaryDeletion:
		return "D", true
	case tsgraph.OpPrimaryFlankMatch:
		return "~M", true
	case tsgraph.OpPrimaryFlankSubstitution:
		return "~X", true
	case tsgraph.OpPrimaryFlankInsertion:
		return "~I", true
	case tsgraph.OpPrimaryFlankDeletion:
		return "~D", true
	case tsgraph.OpSecondaryMatch:
		return "m", true
	case tsgraph.OpSecondarySubstitution:
		return "x", true
	case tsgraph.OpSecondaryInsertion:
		return "i", true
	case tsgraph.OpSecondaryDeletion:
		return "d", true
	case tsgraph.OpTemplateSwitchEntrance:
		return fmt.Sprintf("> TS primary=%s secondary=%s dir=%s", kind.Primary, kind.Secondary, kind.Direction), true
	case tsgraph.OpTemplateSwitchExit:
		return "<", true
	case tsgraph.OpPrimaryReentry:
		return fmt.Sprintf("R gap=%d", kind.AntiPrimaryGap), true
	default:
		return "", false
	}
}

// writeStatistics renders the statistics block every result carries (spec
// §6 "statistics includes at least: terminal cost... duration, TS count").
func writeStatistics(w io.Writer, stats align.Statistics) error {
	_, err := fmt.Fprintf(w,
		"cost\t%s\nopened\t%d\nsuboptimal_opened\t%d\nclosed\t%d\nduration\t%s\nts_count\t%d\n",
		stats.TerminalCost, stats.OpenedNodes, stats.SuboptimalOpenedNodes, stats.ClosedNodes, stats.Duration, stats.TSCount,
	)
	return err
}
