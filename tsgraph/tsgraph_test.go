package tsgraph

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/astar"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/stepcost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsseq"
)

func seq(name, s string) tsseq.Sequence {
	return tsseq.New(name, alphabet.Letters(s), alphabet.DNA)
}

func constant(c cost.Cost) stepcost.Function {
	f, err := stepcost.New([]stepcost.Point{{Input: -1 << 30, Cost: c}})
	if err != nil {
		panic(err)
	}
	return f
}

func TestPlainEditDistanceWithoutTemplateSwitch(t *testing.T) {
	offset := constant(cost.Inf)
	disabledLength, err := stepcost.New([]stepcost.Point{{Input: -1 << 30, Cost: cost.Inf}})
	if err != nil {
		t.Fatal(err)
	}
	primary := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(1), cost.FromInt(1))

	cfg, err := tsconfig.NewBuilder().
		FlankLengths(0, 0).
		MinTemplateSwitchLength(1).
		StepCosts(offset, disabledLength, disabledLength, offset, offset).
		EditTables(primary, editcost.Forbidden(), editcost.Forbidden(), editcost.Forbidden(), editcost.Forbidden()).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AnyTemplateSwitchReachable() {
		t.Fatal("no base cost was set, so no template switch should be reachable")
	}

	ctx := &Context{
		Ref:        seq("ref", "ACGTACGT"),
		Query:      seq("query", "ACGAACGT"),
		Config:     cfg,
		Strategies: strategy.Default(),
	}
	e := astar.New[Identifier, Edge](ctx)
	e.Initialise()
	result := e.Search()
	if result.Reason != astar.FoundTarget {
		t.Fatalf("Reason = %v, want FoundTarget", result.Reason)
	}
	if result.Cost.Int() != 1 {
		t.Fatalf("Cost = %v, want 1 (single substitution)", result.Cost)
	}
}

// TestTemplateSwitchBeatsPlainSubstitution builds a reference/query pair
// where a run of the query is explained far more cheaply by a reverse
// template switch over the same stretch of the reference (CCCC read
// backwards and complemented is GGGG) than by four ordinary substitutions,
// and checks the
// engine finds the zero-cost template-switch path.
func TestTemplateSwitchBeatsPlainSubstitution(t *testing.T) {
	zero := constant(cost.Zero)
	length, err := stepcost.New([]stepcost.Point{
		{Input: -1 << 30, Cost: cost.Inf},
		{Input: 4, Cost: cost.Zero},
	})
	if err != nil {
		t.Fatal(err)
	}
	lengthDifference, err := stepcost.New([]stepcost.Point{
		{Input: -1 << 30, Cost: cost.Inf},
		{Input: -3, Cost: cost.FromInt(3)},
		{Input: -2, Cost: cost.FromInt(2)},
		{Input: -1, Cost: cost.FromInt(1)},
		{Input: 0, Cost: cost.Zero},
		{Input: 1, Cost: cost.FromInt(1)},
		{Input: 2, Cost: cost.FromInt(2)},
		{Input: 3, Cost: cost.FromInt(3)},
		{Input: 4, Cost: cost.Inf},
	})
	if err != nil {
		t.Fatal(err)
	}

	primary := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(1), cost.FromInt(1))
	secondaryReverse := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(1), cost.FromInt(1))

	builder := tsconfig.NewBuilder().
		FlankLengths(0, 0).
		MinTemplateSwitchLength(4).
		StepCosts(zero, length, lengthDifference, zero, zero).
		EditTables(primary, editcost.Forbidden(), secondaryReverse, editcost.Forbidden(), editcost.Forbidden()).
		BaseCost(tsconfig.Query, tsconfig.SecondaryReference, tsconfig.Reverse, cost.Zero)
	cfg, err := builder.Build()
	if err != nil {
		t.Fatal(err)
	}

	ctx := &Context{
		Ref:        seq("ref", "AAAACCCCAAAA"),
		Query:      seq("query", "AAAAGGGGAAAA"),
		Config:     cfg,
		Strategies: strategy.Default(),
	}
	e := astar.New[Identifier, Edge](ctx)
	e.Initialise()
	result := e.Search()
	if result.Reason != astar.FoundTarget {
		t.Fatalf("Reason = %v, want FoundTarget", result.Reason)
	}
	if result.Cost.Int() != 0 {
		t.Fatalf("Cost = %v, want 0 (free template switch beats cost-4 substitution run)", result.Cost)
	}

	edges := e.Backtrack()
	var sawEntrance, sawExit bool
	for _, edge := range edges {
		switch edge.Op {
		case OpTemplateSwitchEntrance:
			sawEntrance = true
		case OpTemplateSwitchExit:
			sawExit = true
		}
	}
	if !sawEntrance || !sawExit {
		t.Fatalf("expected the optimal path to take a template switch, got edges %v", edges)
	}
}

func TestAntiPrimaryGap(t *testing.T) {
	id := Identifier{
		Kind:             KindTSExit,
		R0:               4,
		Q0:               4,
		TSPrimary:        tsconfig.Query,
		PrimaryIndex:     8,
		LengthDifference: 0,
	}
	if got := id.AntiPrimaryGap(); got != 4 {
		t.Fatalf("AntiPrimaryGap() = %d, want 4", got)
	}
}
