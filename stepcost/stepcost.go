// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stepcost implements the monotone-domain step cost function used
// by the template-switch configuration: a finite list of (threshold, cost)
// points, evaluated by nearest-threshold-below lookup, and a range-min
// query used by legality checks in the search.
package stepcost

import (
	"fmt"
	"sort"

	"github.com/kortschak/tsalign/cost"
)

// Point is one step of a Function: the function equals Cost for every input
// greater than or equal to Input, up to (but not including) the next
// point's Input.
type Point struct {
	Input int
	Cost  cost.Cost
}

// Function is a step-wise cost function f: ℤ → Cost, represented as points
// sorted by strictly increasing Input. Evaluating f below the first point's
// Input is a caller error; legal search nodes never produce such inputs.
type Function struct {
	points []Point
}

// New validates that points are sorted by strictly increasing Input and
// returns the Function they define.
func New(points []Point) (Function, error) {
	for i := 1; i < len(points); i++ {
		if points[i-1].Input >= points[i].Input {
			return Function{}, fmt.Errorf("stepcost: point %d input %d does not exceed point %d input %d", i, points[i].Input, i-1, points[i-1].Input)
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return Function{points: cp}, nil
}

// Max returns a step function that is Inf everywhere, used as a disabled
// cost function.
func Max() Function {
	return Function{points: []Point{{Input: minInt, Cost: cost.Inf}}}
}

const minInt = -1 << 62

// Evaluate returns f(x), the cost of the greatest threshold ≤ x. It panics
// if x is before the first point, which indicates a bug in the caller
// rather than a normal runtime condition.
func (f Function) Evaluate(x int) cost.Cost {
	i := sort.Search(len(f.points), func(i int) bool { return f.points[i].Input > x })
	if i == 0 {
		panic(fmt.Sprintf("stepcost: input %d before domain start %d", x, f.points[0].Input))
	}
	return f.points[i-1].Cost
}

// MinFiniteInput returns the lowest Input at which f is finite, and whether any
// such input exists.
func (f Function) MinFiniteInput() (int, bool) {
	for _, p := range f.points {
		if !p.Cost.IsInf() {
			return p.Input, true
		}
	}
	return 0, false
}

// MaxFiniteInput returns the greatest input at which f is still finite
// (i.e. one less than the first point after which f becomes Inf forever),
// or false if f is never finite or remains finite without bound.
func (f Function) MaxFiniteInput() (int, bool) {
	lastFinite := -1
	for i, p := range f.points {
		if !p.Cost.IsInf() {
			lastFinite = i
		}
	}
	if lastFinite == -1 {
		return 0, false
	}
	if lastFinite == len(f.points)-1 {
		return 0, false // remains finite forever: no maximum
	}
	return f.points[lastFinite+1].Input - 1, true
}

// Min returns the minimum cost attained by f over the inclusive integer
// range [lo, hi], or Inf with ok=false if the range is empty (hi < lo).
func (f Function) Min(lo, hi int) (c cost.Cost, ok bool) {
	if hi < lo || len(f.points) == 0 {
		return cost.Inf, false
	}
	best := cost.Inf
	found := false
	for i, p := range f.points {
		segEnd := hi
		if i+1 < len(f.points) {
			segEnd = min(segEnd, f.points[i+1].Input-1)
		}
		segStart := max(lo, p.Input)
		if segStart <= segEnd && segStart <= hi && segEnd >= lo {
			best = cost.Min(best, p.Cost)
			found = true
		}
	}
	if !found {
		return cost.Inf, false
	}
	return best, true
}

// MinFrom returns the minimum cost attained by f over [lo, +∞).
func (f Function) MinFrom(lo int) cost.Cost {
	best := cost.Inf
	for i, p := range f.points {
		var segEnd int
		if i+1 < len(f.points) {
			segEnd = f.points[i+1].Input - 1
		} else {
			segEnd = 1<<62 - 1
		}
		if segEnd >= lo {
			best = cost.Min(best, p.Cost)
		}
	}
	return best
}
