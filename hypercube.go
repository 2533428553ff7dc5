// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package hypercube verifies batches of hash-based (XMSS/WOTS-style) post-quantum
// signatures inside a deterministic, proof-generating guest environment.
//
// The verification core re-derives, for each signature, the target-sum-layer ("TSL")
// chain steps from the signed message, walks the one-way hash chains forward to their
// canonical endpoints, compresses the endpoints into a Merkle leaf and reconstructs
// the tree root from the authentication path. The batch engine aggregates the
// per-signature results and binds the public statement to a 32-byte commitment that
// the host can recompute and compare against the words revealed by the guest.
//
// Packages:
//   - xmss: data model shared by statement, witness and parameters
//   - xmss/tsl: combinatorial message encoding (unranking of bounded compositions)
//   - xmss/verifier: hash chains, Merkle path reconstruction, batch engine
//   - encoding: serialization of a verification batch to the guest input blob
//   - guest: the deterministic entry point and its revealed output words
//   - host: orchestration, input files, benchmarks and reports
package hypercube

import (
	"github.com/blang/semver/v4"
	"github.com/consensys/hypercube/hash"
)

// Version of the library, embedded in serialized batches.
var Version = semver.MustParse("0.2.0")

// HashFunctions returns the node hash functions supported by the verifier.
func HashFunctions() []hash.Hash {
	return []hash.Hash{
		hash.SHA2_256,
		hash.SHA3_256,
		hash.BLAKE2B_256,
		hash.MIMC_BN254,
	}
}
