// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tsalign computes a template-switch-aware alignment between a reference
// and a query sequence using a best-first (A*) search, optionally guided
// by a chain/seed lower bound built from a list of anchors.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/tsalign/align"
	"github.com/kortschak/tsalign/cost"
	"github.com/kortschak/tsalign/lowerbound/alignmatrix"
	"github.com/kortschak/tsalign/lowerbound/chain"
	"github.com/kortschak/tsalign/lowerbound/minlen"
	"github.com/kortschak/tsalign/lowerbound/tsmatrix"
	"github.com/kortschak/tsalign/strategy"
	"github.com/kortschak/tsalign/tsconfig"
	"github.com/kortschak/tsalign/tsgraph"
	"github.com/kortschak/tsalign/tsseq"
)

var (
	refPath   = flag.String("ref", "", "reference FASTA file (required)")
	queryPath = flag.String("query", "", "query FASTA file (required)")
	cfgPath   = flag.String("config", "", "TS configuration TOML file (required)")

	refOffset   = flag.Int("ref-offset", 0, "start of the reference restriction range")
	refLimit    = flag.Int("ref-limit", -1, "end of the reference restriction range (default: full length)")
	queryOffset = flag.Int("query-offset", 0, "start of the query restriction range")
	queryLimit  = flag.Int("query-limit", -1, "end of the query restriction range (default: full length)")

	costLimit   = flag.Int("cost-limit", -1, "abort the search once this cost is exceeded (default: unlimited)")
	memoryLimit = flag.Int("memory-limit", -1, "abort the search once this many bytes are estimated in use (default: unlimited)")

	outPath = flag.String("out", "", "output file name (default stdout)")

	seedLength  = flag.Int("seed-length", 14, "k-mer length for the default chain anchor seeder")
	chainSeeder = flag.String("chain-seeder", "auto", `anchor seeder for the chain lower bound:
    	"none" disables it, "auto" uses the built-in k-mer seeder,
    	anything else is run as an external seeder binary`)
)

// lowerBoundRadius and lowerBoundAttempts bound the synthetic saturating
// searches C7/C8 run to precompute the TS and alignment lower-bound
// matrices (spec §4.4, §4.5); they are implementation constants, not
// user-facing knobs, since their only effect is precomputation effort.
const (
	lowerBoundRadius   = 32
	lowerBoundAttempts = 8
)

func main() {
	flag.Parse()
	if *refPath == "" || *queryPath == "" || *cfgPath == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have ref, query and config set")
		flag.Usage()
		os.Exit(1)
	}

	ref, err := readFASTA(*refPath)
	if err != nil {
		log.Fatalf("failed to read reference: %v", err)
	}
	query, err := readFASTA(*queryPath)
	if err != nil {
		log.Fatalf("failed to read query: %v", err)
	}

	cfg, err := loadConfig(*cfgPath, ref.Alphabet())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *refLimit < 0 {
		*refLimit = ref.Len()
	}
	if *queryLimit < 0 {
		*queryLimit = query.Len()
	}
	if err := tsseq.Validate(ref.Len(), query.Len(), *refOffset, *refLimit, *queryOffset, *queryLimit); err != nil {
		log.Fatalf("invalid restriction range: %v", err)
	}
	ref = ref.Slice(*refOffset, *refLimit)
	query = query.Slice(*queryOffset, *queryLimit)

	strategies := strategy.Default()

	// chainLB is left as a true nil interface when seeding is disabled:
	// assigning a nil *chain.Bound to it directly would produce a non-nil
	// interface holding a nil pointer, defeating tsgraph.Context's
	// "Chain == nil" check.
	var chainLB tsgraph.ChainLowerBound
	if *chainSeeder != "none" {
		log.Printf("seeding chain lower bound for %q against %q", *queryPath, *refPath)
		chainBound, err := buildChainBound(ref, query, cfg, strategies)
		if err != nil {
			log.Fatalf("failed to build chain lower bound: %v", err)
		}
		chainLB = chainBound
	}

	minLength := minlen.New(minlen.Config{
		Ref: ref, Query: query, TSConfig: cfg, Strategies: strategies,
		MinLength: cfg.TemplateSwitchMinLength, Mode: strategy.LookaheadMode,
	})

	limits := align.Limits{}
	if *costLimit >= 0 {
		limits.Cost, limits.HasCost = cost.FromInt(*costLimit), true
	}
	if *memoryLimit >= 0 {
		limits.Memory, limits.HasMemory = *memoryLimit, true
	}

	log.Printf("aligning %q (%d) against %q (%d)", ref.Name(), ref.Len(), query.Name(), query.Len())
	result := align.Run(align.Params{
		Ref: ref, Query: query, Config: cfg, Strategies: strategies,
		Chain: chainLB, MinLength: minLength, Limits: limits,
	})

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := writeResult(out, result); err != nil {
		log.Fatalf("failed to write result: %v", err)
	}
}

// buildChainBound precomputes C7/C8's lower-bound matrices and the anchor
// set (from the built-in k-mer seeder or an external binary), then builds
// the chain/seed lower bound (C10) from them.
func buildChainBound(ref, query tsseq.Sequence, cfg tsconfig.Config, strategies strategy.Set) (*chain.Bound, error) {
	alpha := ref.Alphabet()
	letter := alpha.Letter(0)

	tsBound := tsmatrix.Build(cfg, alpha, letter, lowerBoundRadius, lowerBoundAttempts)
	alignBound := alignmatrix.Build(letter, cfg.Primary, tsBound, strategies.PrimaryMatch, lowerBoundRadius, lowerBoundAttempts)

	var anchors []chain.Anchor
	var err error
	switch *chainSeeder {
	case "auto":
		anchors = kmerSeeds(ref, query, *seedLength)
	default:
		anchors, err = externalSeeds(*chainSeeder, *refPath, *queryPath, *seedLength)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("chain seeding produced %d anchors", len(anchors))

	maxGapOpen := cost.Max(cost.Max(cfg.Primary.MaxGapOpen(), cfg.LeftFlank.MaxGapOpen()), cfg.RightFlank.MaxGapOpen())
	return chain.Build(anchors, ref.Len(), query.Len(), alignBound, maxGapOpen)
}

// readFASTA reads the single sequence record from path.
func readFASTA(path string) (tsseq.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return tsseq.Sequence{}, err
	}
	defer f.Close()

	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA)))
	if !sc.Next() {
		if err := sc.Error(); err != nil {
			return tsseq.Sequence{}, err
		}
		return tsseq.Sequence{}, fmt.Errorf("tsalign: %q contains no sequence records", path)
	}
	return tsseq.FromLinear(sc.Seq().(*linear.Seq)), nil
}
