// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package hash gathers the node hash functions the verifier can be instantiated
// with. The structure of the package is similar to what can be found in golang's
// crypto/ package: a Hash identifier selects a function, and the identifier is
// what gets serialized alongside a verification batch.
//
// All functions produce a Size-byte digest. MIMC_BN254 is the
// arithmetization-friendly instantiation: inputs are packed into 31-byte limbs so
// that every block is a canonical BN254 scalar field element.
package hash

import (
	"crypto/sha256"
	"encoding/binary"
	stdhash "hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Size of all digests in bytes.
const Size = 32

type Hash uint

const (
	SHA2_256 Hash = iota
	SHA3_256
	BLAKE2B_256
	MIMC_BN254
)

// New returns the underlying hash.Hash. For MIMC_BN254 the returned hasher only
// accepts sequences of canonical field elements; use Sum for arbitrary input.
func (m Hash) New() stdhash.Hash {
	switch m {
	case SHA2_256:
		return sha256.New()
	case SHA3_256:
		return sha3.New256()
	case BLAKE2B_256:
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err) // unreachable, no key is passed
		}
		return h
	case MIMC_BN254:
		return mimc.NewMiMC()
	default:
		panic("unknown hash ID")
	}
}

// String returns the hash ID in string format.
func (m Hash) String() string {
	switch m {
	case SHA2_256:
		return "SHA2_256"
	case SHA3_256:
		return "SHA3_256"
	case BLAKE2B_256:
		return "BLAKE2B_256"
	case MIMC_BN254:
		return "MIMC_BN254"
	default:
		panic("unknown hash ID")
	}
}

// Available reports whether the ID maps to a supported hash function.
func (m Hash) Available() bool {
	return m <= MIMC_BN254
}

// Sum hashes the concatenation of data and returns the Size-byte digest.
// This is the single entry point the verification core goes through; it is total
// for any input bytes, including for the field-based instantiation.
func (m Hash) Sum(data ...[]byte) [Size]byte {
	var out [Size]byte
	if m == MIMC_BN254 {
		h := mimc.NewMiMC()
		var block [mimc.BlockSize]byte
		var buf []byte
		for _, d := range data {
			buf = append(buf, d...)
		}
		// pack into 31-byte limbs; the leading zero byte keeps every block
		// strictly below the BN254 scalar modulus
		total := uint64(len(buf))
		for len(buf) > 0 {
			n := len(buf)
			if n > mimc.BlockSize-1 {
				n = mimc.BlockSize - 1
			}
			for i := range block {
				block[i] = 0
			}
			copy(block[mimc.BlockSize-n:], buf[:n])
			_, _ = h.Write(block[:])
			buf = buf[n:]
		}
		// a final length block, so inputs differing only in zero padding
		// within a limb do not collide
		for i := range block {
			block[i] = 0
		}
		binary.BigEndian.PutUint64(block[mimc.BlockSize-8:], total)
		_, _ = h.Write(block[:])
		copy(out[:], h.Sum(nil))
		return out
	}

	h := m.New()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	copy(out[:], h.Sum(nil))
	return out
}
