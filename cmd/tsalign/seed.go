// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"text/template"

	"github.com/biogo/external"

	"github.com/kortschak/tsalign/lowerbound/chain"
	"github.com/kortschak/tsalign/tsseq"
)

// kmerSeeds finds every exact, non-overlapping, equal-length match of
// length k between ref and query by indexing every reference k-mer and
// scanning the query against it, then greedily keeping matches left to
// right and dropping any that would overlap a kept anchor on either
// sequence (spec §4.6 "pre-computed list of non-overlapping... anchors").
// This is the default in-process seeder cmd/tsalign uses when -chain-seeder
// is "auto".
func kmerSeeds(ref, query tsseq.Sequence, k int) []chain.Anchor {
	if k <= 0 || ref.Len() < k || query.Len() < k {
		return nil
	}
	index := make(map[string][]int, ref.Len())
	for i := 0; i+k <= ref.Len(); i++ {
		key := kmerKey(ref, i, k)
		index[key] = append(index[key], i)
	}

	var candidates []chain.Anchor
	for j := 0; j+k <= query.Len(); j++ {
		key := kmerKey(query, j, k)
		for _, i := range index[key] {
			candidates = append(candidates, chain.Anchor{
				RefStart: i, RefEnd: i + k,
				QueryStart: j, QueryEnd: j + k,
			})
		}
	}

	var lastRef, lastQuery int
	anchors := make([]chain.Anchor, 0, len(candidates))
	for _, a := range candidates {
		if a.RefStart < lastRef || a.QueryStart < lastQuery {
			continue
		}
		anchors = append(anchors, a)
		lastRef, lastQuery = a.RefEnd, a.QueryEnd
	}
	return anchors
}

func kmerKey(seq tsseq.Sequence, start, k int) string {
	var b strings.Builder
	b.Grow(k)
	for i := start; i < start+k; i++ {
		b.WriteByte(byte(seq.At(i)))
	}
	return b.String()
}

// ExternalSeeder invokes a third-party anchor-seeding program, the way
// blasr.BLASR builds its command line: a small buildarg-tagged struct
// converted into an exec.Cmd via external.Build, grounded on
// blasr/blasr.go's BuildCommand.
type ExternalSeeder struct {
	Cmd string `buildarg:"{{.}}"` // path to the seeder binary

	K      int    `buildarg:"{{if .}}-k{{split}}{{.}}{{end}}"`
	Reads  string `buildarg:"{{.}}"`
	Genome string `buildarg:"{{.}}"`
}

// BuildCommand returns an exec.Cmd built from s's parameters.
func (s ExternalSeeder) BuildCommand() (*exec.Cmd, error) {
	cl := external.Must(external.Build(s, template.FuncMap{}))
	return exec.Command(cl[0], cl[1:]...), nil
}

// externalSeeds runs an external seeder binary against the FASTA files at
// refPath/queryPath and parses whitespace-separated anchor quadruples
// (ref_start ref_end query_start query_end) from its stdout, one per line.
func externalSeeds(binary, refPath, queryPath string, k int) ([]chain.Anchor, error) {
	s := ExternalSeeder{Cmd: binary, K: k, Reads: queryPath, Genome: refPath}
	cmd, err := s.BuildCommand()
	if err != nil {
		return nil, fmt.Errorf("tsalign: building seeder command: %w", err)
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tsalign: running external seeder: %w", err)
	}

	var anchors []chain.Anchor
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("tsalign: malformed seeder output line %q", line)
		}
		vals := make([]int, 4)
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("tsalign: malformed seeder output line %q: %w", line, err)
			}
			vals[i] = v
		}
		anchors = append(anchors, chain.Anchor{
			RefStart: vals[0], RefEnd: vals[1],
			QueryStart: vals[2], QueryEnd: vals[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tsalign: reading seeder output: %w", err)
	}
	return anchors, nil
}
