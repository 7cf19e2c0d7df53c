// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/tsalign/tsseq"
)

func seedTestSeq(name, s string) tsseq.Sequence {
	return tsseq.New(name, alphabet.Letters(s), alphabet.DNA)
}

func TestKmerSeedsFindsExactMatch(t *testing.T) {
	ref := seedTestSeq("ref", "AAAACCCCGGGGTTTT")
	query := seedTestSeq("query", "CCCCGGGG")

	anchors := kmerSeeds(ref, query, 4)
	require.NotEmpty(t, anchors)
	found := false
	for _, a := range anchors {
		if a.RefStart == 4 && a.RefEnd == 8 && a.QueryStart == 0 && a.QueryEnd == 4 {
			found = true
		}
	}
	require.True(t, found, "expected a length-k anchor at the start of the shared region, got %v", anchors)
}

func TestKmerSeedsNonOverlapping(t *testing.T) {
	ref := seedTestSeq("ref", "AAAAAAAAAA")
	query := seedTestSeq("query", "AAAAAAAAAA")

	anchors := kmerSeeds(ref, query, 4)
	for i := 1; i < len(anchors); i++ {
		require.GreaterOrEqual(t, anchors[i].RefStart, anchors[i-1].RefEnd)
		require.GreaterOrEqual(t, anchors[i].QueryStart, anchors[i-1].QueryEnd)
	}
}

func TestKmerSeedsShortSequenceYieldsNoAnchors(t *testing.T) {
	ref := seedTestSeq("ref", "AC")
	query := seedTestSeq("query", "AC")
	require.Nil(t, kmerSeeds(ref, query, 4))
}

func TestKmerSeedsNoSharedKmers(t *testing.T) {
	ref := seedTestSeq("ref", "AAAAAAAA")
	query := seedTestSeq("query", "CCCCCCCC")
	require.Empty(t, kmerSeeds(ref, query, 4))
}

func TestExternalSeederBuildCommand(t *testing.T) {
	s := ExternalSeeder{Cmd: "seeder", K: 14, Reads: "query.fasta", Genome: "ref.fasta"}
	cmd, err := s.BuildCommand()
	require.NoError(t, err)
	require.Equal(t, "seeder", cmd.Args[0])
	require.Contains(t, cmd.Args, "-k")
	require.Contains(t, cmd.Args, "14")
	require.Contains(t, cmd.Args, "query.fasta")
	require.Contains(t, cmd.Args, "ref.fasta")
}
