package alignmatrix

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/lowerbound/tsmatrix"
	"github.com/kortschak/tsalign/strategy"
)

func TestBuildPlainGapAffine(t *testing.T) {
	primary := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(2), cost.FromInt(1))
	empty := &tsmatrix.Matrix{}

	m := Build(alphabet.Letter('A'), primary, empty, strategy.AllowPrimaryMatch(), 4, 8)
	if got := m.Lookup(3, 3); got.IsInf() || got.Int() != 0 {
		t.Fatalf("Lookup(3, 3) = %v, want 0 (three free matches on a homogeneous genome)", got)
	}
	if got := m.Lookup(2, 0); got.IsInf() || got.Int() != 3 {
		t.Fatalf("Lookup(2, 0) = %v, want 3 (gap-open 2 + gap-extend 1)", got)
	}
}

func TestBuildWithoutGapsLeavesOffDiagonalUnreachable(t *testing.T) {
	primary := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.Inf, cost.Inf)
	empty := &tsmatrix.Matrix{}

	m := Build(alphabet.Letter('A'), primary, empty, strategy.AllowPrimaryMatch(), 4, 8)
	if got := m.Lookup(2, 0); !got.IsInf() {
		t.Fatalf("Lookup(2, 0) = %v, want Inf (no gaps configured, diagonal-only reaches dr == dq)", got)
	}
	if got := m.Lookup(100, 100); got.IsInf() || got.Int() != 0 {
		t.Fatalf("Lookup(100, 100) = %v, want 0 (outside the built radius, safe uninformative fallback)", got)
	}
}
