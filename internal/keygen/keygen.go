// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package keygen produces key pairs and signatures compatible with the
// verifier's leaf/root construction. It exists to build test and benchmark
// witnesses; the verification core never invokes it, and it makes no attempt to
// protect secrets the way a production signer would.
package keygen

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
	"github.com/consensys/hypercube/xmss/tsl"
	"github.com/consensys/hypercube/xmss/verifier"
)

// ErrEpochOutOfRange signals an epoch outside the key's signing window.
var ErrEpochOutOfRange = errors.New("epoch outside the key's active range")

// SecretKey holds the expanded chain secrets and the full Merkle tree of a key.
// Memory grows with 2^TreeHeight; intended for the small trees tests and
// benchmarks use.
type SecretKey struct {
	h      hash.Hash
	params xmss.Params

	seed      [32]byte
	parameter xmss.Parameter

	activationEpoch uint32
	numActiveEpochs uint32

	levels [][]xmss.Node // levels[0] = leaves, levels[TreeHeight] = [root]
}

// ValidateEpochRange checks at key generation that the requested window
// [activation, activation+numActive) fits the key lifetime.
func ValidateEpochRange(activation, numActive uint32, lifetime uint64) error {
	end := uint64(activation) + uint64(numActive)
	if end > lifetime {
		return fmt.Errorf("%w: [%d, %d) exceeds lifetime %d", ErrEpochOutOfRange, activation, end, lifetime)
	}
	return nil
}

// ValidateEpoch checks at signing time that epoch falls inside the window
// [activation, activation+numActive).
func ValidateEpoch(epoch uint64, activation, numActive uint32) error {
	end := uint64(activation) + uint64(numActive)
	if epoch < uint64(activation) || epoch >= end {
		return fmt.Errorf("%w: epoch %d not in [%d, %d)", ErrEpochOutOfRange, epoch, activation, end)
	}
	return nil
}

// GenerateKey expands seed into a full key active on
// [activationEpoch, activationEpoch+numActiveEpochs).
func GenerateKey(h hash.Hash, params xmss.Params, seed [32]byte, activationEpoch, numActiveEpochs uint32) (*SecretKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateEpochRange(activationEpoch, numActiveEpochs, params.Lifetime()); err != nil {
		return nil, err
	}

	sk := &SecretKey{
		h:               h,
		params:          params,
		seed:            seed,
		parameter:       xmss.Parameter(h.Sum([]byte{0x02}, seed[:])),
		activationEpoch: activationEpoch,
		numActiveEpochs: numActiveEpochs,
	}

	// leaves: chain secrets walked to their tops, compressed per leaf
	numLeaves := 1 << params.TreeHeight
	leaves := make([]xmss.Node, numLeaves)
	concat := make([]byte, 0, int(params.V)*xmss.NodeSize)
	for leaf := 0; leaf < numLeaves; leaf++ {
		concat = concat[:0]
		for chain := 0; chain < int(params.V); chain++ {
			top := verifier.IterateChain(h, sk.chainSecret(uint32(leaf), uint32(chain)), int(params.W-1))
			concat = append(concat, top[:]...)
		}
		leaves[leaf] = xmss.Node(h.Sum(concat))
	}

	sk.levels = make([][]xmss.Node, params.TreeHeight+1)
	sk.levels[0] = leaves
	for lvl := 0; lvl < int(params.TreeHeight); lvl++ {
		below := sk.levels[lvl]
		above := make([]xmss.Node, len(below)/2)
		for i := range above {
			above[i] = verifier.NodeHash(h, sk.parameter, uint32(lvl), uint32(i), below[2*i], below[2*i+1])
		}
		sk.levels[lvl+1] = above
	}
	return sk, nil
}

// PublicKey returns the root and domain-separation parameter of the key.
func (sk *SecretKey) PublicKey() xmss.PublicKey {
	return xmss.PublicKey{
		Root:      sk.levels[sk.params.TreeHeight][0],
		Parameter: sk.parameter,
	}
}

// Params returns the verification parameters of the key.
func (sk *SecretKey) Params() xmss.Params {
	return sk.params
}

// Sign produces a signature over msg at the given epoch; the epoch selects the
// one-time leaf. Reusing an epoch reuses the leaf and breaks the one-time
// property, which the caller is responsible for avoiding.
func (sk *SecretKey) Sign(msg []byte, epoch uint64) (*xmss.Signature, error) {
	if err := ValidateEpoch(epoch, sk.activationEpoch, sk.numActiveEpochs); err != nil {
		return nil, err
	}

	domain := make([]byte, 8+len(msg))
	binary.LittleEndian.PutUint64(domain, epoch)
	copy(domain[8:], msg)
	var zeroRandomness [32]byte
	steps, err := tsl.EncodeVertex(sk.h, domain, zeroRandomness[:], &sk.params)
	if err != nil {
		return nil, err
	}

	leafIndex := uint32(epoch)
	ends := make([]xmss.Node, sk.params.V)
	for chain := range ends {
		ends[chain] = verifier.IterateChain(sk.h, sk.chainSecret(leafIndex, uint32(chain)), int(steps[chain]))
	}

	return &xmss.Signature{
		LeafIndex: leafIndex,
		ChainEnds: ends,
		AuthPath:  sk.authPath(leafIndex),
	}, nil
}

// chainSecret derives the starting value of one chain of one leaf.
func (sk *SecretKey) chainSecret(leaf, chain uint32) xmss.Node {
	var idx [8]byte
	binary.BigEndian.PutUint32(idx[:4], leaf)
	binary.BigEndian.PutUint32(idx[4:], chain)
	return xmss.Node(sk.h.Sum([]byte{0x00}, sk.seed[:], idx[:]))
}

// authPath collects the sibling of the leaf's ancestor at every level.
func (sk *SecretKey) authPath(leafIndex uint32) []xmss.Node {
	path := make([]xmss.Node, sk.params.TreeHeight)
	for lvl := range path {
		path[lvl] = sk.levels[lvl][(leafIndex>>lvl)^1]
	}
	return path
}
