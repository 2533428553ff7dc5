// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package xmss

import "errors"

// ErrInvalidParams signals parameters that make the combinatorial encoding space
// empty or ill-defined. Correctly constructed Params never trigger it; the engine
// still treats it as an ordinary rejection since parameters travel inside the
// attacker-influenced input blob.
var ErrInvalidParams = errors.New("invalid parameters: combinatorial layer is empty or ill-defined")

// Params is the immutable configuration shared by all signatures in a batch.
//
// W is the chain length (Winternitz parameter), V the number of parallel chains,
// D0 the target sum of the encoded vertex. TreeHeight fixes the expected
// authentication-path length; 0 means a single-leaf tree whose root is the leaf.
type Params struct {
	W            uint16
	V            uint16
	D0           uint32
	SecurityBits uint16
	TreeHeight   uint16
}

// Validate checks the parameter invariants: W > 1, V >= 1 and 0 <= D0 <= V*(W-1).
func (p *Params) Validate() error {
	if p.W <= 1 || p.V == 0 {
		return ErrInvalidParams
	}
	if uint64(p.D0) > uint64(p.V)*uint64(p.W-1) {
		return ErrInvalidParams
	}
	return nil
}

// Lifetime returns the number of one-time leaves under a key, 2^TreeHeight.
func (p *Params) Lifetime() uint64 {
	return 1 << p.TreeHeight
}
