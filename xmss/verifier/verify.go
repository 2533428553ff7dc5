// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package verifier implements batch verification of hash-based signatures: the
// per-signature pipeline (message encoding, hash chains, Merkle path) and the
// batch engine that aggregates results and commits to the verified statement.
//
// Everything here is a total function over its inputs. Malformed or adversarial
// witness data degrades to a boolean rejection, never to a panic: an abort inside
// the guest would deny the proving backend even a proof of rejection. For the
// same reason the package performs no I/O and no logging.
package verifier

import (
	"encoding/binary"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
	"github.com/consensys/hypercube/xmss/tsl"
)

// Verifier verifies signatures under a fixed node hash function. The zero-value
// randomness used for step derivation is a pinned protocol parameter; see
// WithPerSignatureRandomness for the alternate instantiation.
type Verifier struct {
	h                hash.Hash
	perSigRandomness bool
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithPerSignatureRandomness derives chain steps from Hash(message ‖ sig.Randomness)
// instead of the default Hash(le64(epoch) ‖ message ‖ 0^32). The two variants bind
// a signature over different data; the choice is part of the protocol and must
// match the signer.
func WithPerSignatureRandomness() Option {
	return func(v *Verifier) {
		v.perSigRandomness = true
	}
}

// New returns a Verifier instantiated with the given node hash function.
func New(h hash.Hash, opts ...Option) *Verifier {
	v := &Verifier{h: h}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyOne checks a single signature over msg at the given epoch against pk.
// All structural mismatches resolve to false.
func (v *Verifier) VerifyOne(params *xmss.Params, sig *xmss.Signature, msg []byte, epoch uint64, pk *xmss.PublicKey) bool {
	if params.W <= 1 || params.V == 0 {
		return false
	}
	if len(sig.ChainEnds) != int(params.V) || len(sig.AuthPath) != int(params.TreeHeight) {
		return false
	}

	var domain []byte
	var randomness [32]byte
	if v.perSigRandomness {
		domain = msg
		randomness = sig.Randomness
	} else {
		domain = make([]byte, 8+len(msg))
		binary.LittleEndian.PutUint64(domain, epoch)
		copy(domain[8:], msg)
	}

	steps, err := tsl.EncodeVertex(v.h, domain, randomness[:], params)
	if err != nil {
		return false
	}
	if len(steps) != len(sig.ChainEnds) {
		return false
	}

	leaf := ChainLeaf(v.h, params.W, steps, sig.ChainEnds)
	root := MerkleRootFromPath(v.h, leaf, uint64(sig.LeafIndex), sig.AuthPath, pk.Parameter)
	return root == pk.Root
}

// VerifyBatch runs VerifyOne for every signature of the batch.
//
// A structural mismatch between the announced K, the public keys and the
// signatures is fatal to the whole batch and returns (false, 0) without
// inspecting the witness. Otherwise count reports signatures processed, not
// signatures that passed: an all-false batch still reports count == K.
func (v *Verifier) VerifyBatch(batch *xmss.VerificationBatch) (allValid bool, count uint32) {
	st := &batch.Statement
	k := int(st.K)
	if len(st.PublicKeys) != k || len(batch.Witness.Signatures) != k {
		return false, 0
	}

	allValid = true
	for i := 0; i < k; i++ {
		ok := v.VerifyOne(&batch.Params, &batch.Witness.Signatures[i], st.Message, st.Epoch, &st.PublicKeys[i])
		allValid = allValid && ok
		count++
	}
	return allValid, count
}
