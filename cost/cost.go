// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cost provides a totally-ordered, saturating, non-negative integer
// cost type used throughout the template-switch aligner.
package cost

import (
	"fmt"
	"math"
)

// Cost is a non-negative integer cost with a saturating +∞ sentinel.
// The zero value is the zero cost.
type Cost struct {
	// value holds the finite magnitude. infinite is set when the cost
	// represents +∞; value is then meaningless.
	value    uint64
	infinite bool
}

// Zero is the additive identity.
var Zero = Cost{}

// Inf is the saturating +∞ sentinel: Inf is never reachable and always
// compares greater than every finite Cost.
var Inf = Cost{infinite: true}

// FromInt constructs a finite Cost from a non-negative int. It panics if n
// is negative, since Cost has no representation for negative magnitudes.
func FromInt(n int) Cost {
	if n < 0 {
		panic(fmt.Sprintf("cost: negative cost %d", n))
	}
	return Cost{value: uint64(n)}
}

// IsInf reports whether c is the +∞ sentinel.
func (c Cost) IsInf() bool { return c.infinite }

// Int returns the finite magnitude of c. It panics if c is infinite.
func (c Cost) Int() int {
	if c.infinite {
		panic("cost: Int called on infinite cost")
	}
	return int(c.value)
}

// Add returns c + d, saturating to Inf if either operand is infinite or the
// sum overflows.
func (c Cost) Add(d Cost) Cost {
	if c.infinite || d.infinite {
		return Inf
	}
	sum := c.value + d.value
	if sum < c.value {
		return Inf
	}
	return Cost{value: sum}
}

// Sub returns c - d, saturating at zero when d > c, and returning Inf when
// c is infinite. Sub(Inf, finite) is Inf; Sub(finite, Inf) saturates to
// Zero, since no non-negative value plus the infinite d could exceed c.
func (c Cost) Sub(d Cost) Cost {
	if c.infinite {
		return Inf
	}
	if d.infinite {
		return Zero
	}
	if d.value >= c.value {
		return Zero
	}
	return Cost{value: c.value - d.value}
}

// Less reports whether c < d.
func (c Cost) Less(d Cost) bool {
	if c.infinite {
		return false
	}
	if d.infinite {
		return true
	}
	return c.value < d.value
}

// Compare returns -1, 0, or +1 as c is less than, equal to, or greater than
// d.
func (c Cost) Compare(d Cost) int {
	switch {
	case c.Less(d):
		return -1
	case d.Less(c):
		return 1
	default:
		return 0
	}
}

// Equal reports whether c and d are the same cost.
func (c Cost) Equal(d Cost) bool {
	return c.infinite == d.infinite && (c.infinite || c.value == d.value)
}

// Min returns the smaller of c and d.
func Min(c, d Cost) Cost {
	if d.Less(c) {
		return d
	}
	return c
}

// Max returns the larger of c and d.
func Max(c, d Cost) Cost {
	if c.Less(d) {
		return d
	}
	return c
}

func (c Cost) String() string {
	if c.infinite {
		return "∞"
	}
	return fmt.Sprintf("%d", c.value)
}

// AsFloat64 converts c to a float64, returning math.Inf(1) for Inf. It is
// used only for diagnostics; all search decisions use the integer Cost
// directly.
func (c Cost) AsFloat64() float64 {
	if c.infinite {
		return math.Inf(1)
	}
	return float64(c.value)
}

// OrderedPair lexicographically extends a primary Cost with a secondary
// Cost used to break ties, so that among equally-costed candidates the one
// with the smaller secondary key (for example a shorter walk) sorts first.
// The minimum-length lookahead in lowerbound/minlen orders its inner search
// by Cost alone and does not use this type.
type OrderedPair struct {
	Primary   Cost
	Secondary Cost
}

// Add returns the element-wise saturating sum of two ordered pairs.
func (p OrderedPair) Add(q OrderedPair) OrderedPair {
	return OrderedPair{Primary: p.Primary.Add(q.Primary), Secondary: p.Secondary.Add(q.Secondary)}
}

// Less reports whether p sorts before q: first by Primary, then by
// Secondary.
func (p OrderedPair) Less(q OrderedPair) bool {
	if p.Primary.Equal(q.Primary) {
		return p.Secondary.Less(q.Secondary)
	}
	return p.Primary.Less(q.Primary)
}

func (p OrderedPair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Primary, p.Secondary)
}
