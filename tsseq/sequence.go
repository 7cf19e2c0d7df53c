// Copyright ©2024 The tsalign Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsseq adapts biogo sequence and alphabet types into the
// read-only, 0-indexed Sequence view the alignment core operates on, and
// provides the complement operation template switches rely on for reverse
// secondary walks.
package tsseq

import (
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Sequence is a read-only ordered view of alphabet characters, addressed by
// 0-based index.
type Sequence struct {
	name    string
	letters alphabet.Letters
	alpha   alphabet.Alphabet
}

// FromLinear adapts a *linear.Seq, as produced by biogo's FASTA reader, into
// a Sequence.
func FromLinear(s *linear.Seq) Sequence {
	return Sequence{name: s.Name(), letters: s.Seq, alpha: s.Alphabet()}
}

// New constructs a Sequence directly from letters and an alphabet, used by
// synthetic sequences in the lower-bound precomputations.
func New(name string, letters alphabet.Letters, alpha alphabet.Alphabet) Sequence {
	return Sequence{name: name, letters: letters, alpha: alpha}
}

// Name returns the sequence's FASTA record name.
func (s Sequence) Name() string { return s.name }

// Len returns the number of characters in s.
func (s Sequence) Len() int { return len(s.letters) }

// At returns the character at 0-based index i.
func (s Sequence) At(i int) alphabet.Letter { return s.letters[i] }

// Alphabet returns the alphabet s's characters are drawn from.
func (s Sequence) Alphabet() alphabet.Alphabet { return s.alpha }

// Slice returns the half-open sub-sequence [lo, hi).
func (s Sequence) Slice(lo, hi int) Sequence {
	return Sequence{name: s.name, letters: s.letters[lo:hi], alpha: s.alpha}
}

// complementTable maps a nucleotide to its Watson-Crick complement. Only
// the DNA and DNAgapped alphabets used by the aligner are supported; any
// other letter complements to itself, matching ambiguity-code conventions
// where reverse-complementing is a no-op for symbols without a defined
// partner.
var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	pairs := [][2]byte{
		{'a', 't'}, {'c', 'g'}, {'A', 'T'}, {'C', 'G'},
		{'n', 'n'}, {'N', 'N'}, {'-', '-'},
	}
	for _, p := range pairs {
		t[p[0]] = p[1]
		t[p[1]] = p[0]
	}
	return t
}()

// Complement returns the Watson-Crick complement of l.
func Complement(l alphabet.Letter) alphabet.Letter {
	return alphabet.Letter(complementTable[byte(l)])
}

// Validate checks a restriction range against sequence lengths, returning a
// range-invalid error (spec §7) if it falls outside either sequence.
func Validate(refLen, queryLen, refOffset, refLimit, queryOffset, queryLimit int) error {
	if refOffset < 0 || refOffset > refLimit || refLimit > refLen {
		return fmt.Errorf("tsseq: invalid reference range [%d, %d) for length %d", refOffset, refLimit, refLen)
	}
	if queryOffset < 0 || queryOffset > queryLimit || queryLimit > queryLen {
		return fmt.Errorf("tsseq: invalid query range [%d, %d) for length %d", queryOffset, queryLimit, queryLen)
	}
	return nil
}
