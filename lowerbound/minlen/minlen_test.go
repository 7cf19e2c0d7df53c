package minlen

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/editcost"
	"github.com/kortschak/tsalign/stepcost"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsgraph"
	"github.com/kortschak/tsalign/tsseq"
)

func constant(c cost.Cost) stepcost.Function {
	f, err := stepcost.New([]stepcost.Point{{Input: -1 << 30, Cost: c}})
	if err != nil {
		panic(err)
	}
	return f
}

func seq(name, s string) tsseq.Sequence {
	return tsseq.New(name, alphabet.Letters(s), alphabet.DNA)
}

func testConfig(t *testing.T) tsconfig.Config {
	t.Helper()
	zero := constant(cost.Zero)
	length, err := stepcost.New([]stepcost.Point{{Input: -1 << 30, Cost: cost.Inf}, {Input: 4, Cost: cost.Zero}})
	if err != nil {
		t.Fatal(err)
	}
	uniform := editcost.Uniform(alphabet.DNA, cost.Zero, cost.FromInt(1), cost.FromInt(1), cost.FromInt(1))
	cfg, err := tsconfig.NewBuilder().
		FlankLengths(0, 0).
		MinTemplateSwitchLength(4).
		StepCosts(zero, length, zero, zero, zero).
		EditTables(uniform, editcost.Forbidden(), uniform, editcost.Forbidden(), editcost.Forbidden()).
		BaseCost(tsconfig.Query, tsconfig.SecondaryReference, tsconfig.Reverse, cost.Zero).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestLookaheadFindsZeroCostPerfectMatch(t *testing.T) {
	cfg := testConfig(t)
	ref := seq("ref", "AAAACCCCAAAA")
	query := seq("query", "AAAAGGGGAAAA")

	p := New(Config{
		Ref: ref, Query: query, TSConfig: cfg, Strategies: strategy.Default(),
		MinLength: 4, Mode: strategy.LookaheadMode,
	})
	root := tsgraph.Identifier{
		Kind: tsgraph.KindSecondary, R0: 4, Q0: 4,
		TSPrimary: tsconfig.Query, TSSecondary: tsconfig.SecondaryReference, TSDirection: tsconfig.Reverse,
		PrimaryIndex: 4, SecondaryIndex: 8,
	}
	h, ok := p.Price(root)
	if !ok {
		t.Fatal("Price returned ok=false for LookaheadMode")
	}
	if h.IsInf() || h.Int() != 0 {
		t.Fatalf("Price = %v, want 0 (reverse-complement of CCCC is GGGG, a perfect match)", h)
	}
}

func TestPreprocessFilterDropsMismatch(t *testing.T) {
	cfg := testConfig(t)
	ref := seq("ref", "AAAAAAAAAAAA")
	query := seq("query", "AAAAGGGGAAAA")

	p := New(Config{
		Ref: ref, Query: query, TSConfig: cfg, Strategies: strategy.Default(),
		MinLength: 4, Mode: strategy.PreprocessFilterMode,
	})
	root := tsgraph.Identifier{
		Kind: tsgraph.KindSecondary, R0: 4, Q0: 4,
		TSPrimary: tsconfig.Query, TSSecondary: tsconfig.SecondaryReference, TSDirection: tsconfig.Reverse,
		PrimaryIndex: 4, SecondaryIndex: 8,
	}
	if _, ok := p.Price(root); ok {
		t.Fatal("Price returned ok=true, want false: reverse-complement of AAAA is TTTT, not a match against GGGG")
	}
}
