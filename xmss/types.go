// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package xmss defines the data model shared by the statement being proven, the
// witness backing it and the scheme parameters. All entities are constructed once
// per guest invocation from a single input blob and consumed read-only by the
// verification engine; there is no persistence and no mutation after construction.
package xmss

// NodeSize is the width in bytes of a hash-domain element. It is fixed per
// deployment; instantiations operating over packed field elements still carry
// their digests in a NodeSize-byte node.
const NodeSize = 32

// Node is a fixed-width hash-domain element: a chain value, a Merkle node or a root.
type Node [NodeSize]byte

// Parameter is a public domain-separation seed bound to a key.
type Parameter [NodeSize]byte

// PublicKey is the output of key generation: the Merkle root of the one-time key
// leaves and the per-key domain-separation parameter. Immutable once created.
type PublicKey struct {
	Root      Node
	Parameter Parameter
}

// Signature is a witness claim that some message was signed at a given leaf
// position under a given key.
//
// Randomness is carried for alternate instantiations that derive the chain steps
// from per-signature randomness instead of the epoch; the pinned protocol here
// does not consume it during verification.
type Signature struct {
	LeafIndex  uint32
	Randomness [32]byte
	ChainEnds  []Node
	AuthPath   []Node
}

// Statement is the public claim being proven: "these K public keys each have a
// valid signature over message M at epoch Epoch".
type Statement struct {
	K          uint32
	Epoch      uint64
	Message    []byte
	PublicKeys []PublicKey
}

// Witness is the private material proving a Statement.
type Witness struct {
	Signatures []Signature
}

// VerificationBatch is the sole unit of work submitted to the verification core.
// It is fully self-contained; the core performs no external lookups.
type VerificationBatch struct {
	Params    Params
	Statement Statement
	Witness   Witness
}
