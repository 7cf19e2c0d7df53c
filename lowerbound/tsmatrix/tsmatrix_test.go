package tsmatrix

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/stepcost"
	"github.com/kortschak/tsalign/tsconfig"
)

func constant(c cost.Cost) stepcost.Function {
	f, err := stepcost.New([]stepcost.Point{{Input: -1 << 30, Cost: c}})
	if err != nil {
		panic(err)
	}
	return f
}

func TestBuildFindsCheapZeroLengthSwitch(t *testing.T) {
	zero := constant(cost.Zero)
	length, err := stepcost.New([]stepcost.Point{
		{Input: -1 << 30, Cost: cost.Inf},
		{Input: 0, Cost: cost.Zero},
	})
	if err != nil {
		t.Fatal(err)
	}
	secondary := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(1), cost.FromInt(1))

	cfg, err := tsconfig.NewBuilder().
		FlankLengths(0, 0).
		MinTemplateSwitchLength(1).
		StepCosts(zero, length, zero, zero, zero).
		EditTables(editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(1), cost.FromInt(1)), secondary, secondary, editcost.Forbidden(), editcost.Forbidden()).
		BaseCost(tsconfig.Reference, tsconfig.SecondaryReference, tsconfig.Forward, cost.Zero).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	m := Build(cfg, alphabet.DNA, alphabet.Letter('A'), 4, 8)
	if got := m.Lookup(0, 0); got.IsInf() || got.Int() != 0 {
		t.Fatalf("Lookup(0, 0) = %v, want 0 (zero-length, zero-cost round trip)", got)
	}
}

func TestLookupOutsideRadiusIsZero(t *testing.T) {
	m := &Matrix{costs: make(map[[2]int]cost.Cost), radius: 2, saturated: true}
	if got := m.Lookup(100, 100); got.IsInf() || got.Int() != 0 {
		t.Fatalf("Lookup outside radius = %v, want 0 (uninformative fallback)", got)
	}
}
