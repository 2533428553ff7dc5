// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package guest is the entry point run inside the constrained execution
// environment. It consumes a single verification batch, runs the batch engine in
// one deterministic pass and exposes the result as fixed-position output words,
// the only values the surrounding proof reveals.
//
// Word layout:
//
//	index 0     allValid, 0 or 1
//	index 1     number of signatures processed
//	index 2..9  the 32-byte statement commitment, as little-endian u32 words
package guest

import (
	"encoding/binary"
	"io"

	"github.com/consensys/hypercube/encoding"
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
	"github.com/consensys/hypercube/xmss/verifier"
)

// NumWords is the number of revealed output words.
const NumWords = 10

// Output holds the revealed words of one guest run.
type Output struct {
	words [NumWords]uint32
}

// Word returns the revealed word at index i.
func (o *Output) Word(i int) uint32 {
	return o.words[i]
}

// Words returns all revealed words in index order.
func (o *Output) Words() [NumWords]uint32 {
	return o.words
}

// AllValid reports whether every signature of the batch verified.
func (o *Output) AllValid() bool {
	return o.words[0] == 1
}

// Count returns the number of signatures processed.
func (o *Output) Count() uint32 {
	return o.words[1]
}

// Commitment reassembles the statement commitment from words 2..9.
func (o *Output) Commitment() [verifier.CommitmentSize]byte {
	var c [verifier.CommitmentSize]byte
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(c[4*i:], o.words[2+i])
	}
	return c
}

// Run verifies the batch and fills the output words. It is single-threaded,
// performs no I/O and depends on nothing but its arguments: the execution trace
// is exactly what the proving backend commits to.
func Run(h hash.Hash, batch *xmss.VerificationBatch) Output {
	v := verifier.New(h)
	allValid, count := v.VerifyBatch(batch)
	commitment := verifier.StatementCommitment(&batch.Statement)

	var out Output
	if allValid {
		out.words[0] = 1
	}
	out.words[1] = count
	for i := 0; i < 8; i++ {
		out.words[2+i] = binary.LittleEndian.Uint32(commitment[4*i:])
	}
	return out
}

// Execute decodes a serialized batch from r and runs it. This is the boundary
// where the attacker-influenced input blob enters; everything past it degrades
// malformed data to a rejection, not an abort.
func Execute(h hash.Hash, r io.Reader) (Output, error) {
	batch, err := encoding.Deserialize(r, h)
	if err != nil {
		return Output{}, err
	}
	return Run(h, batch), nil
}
