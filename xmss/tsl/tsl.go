// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package tsl implements the target-sum-layer message encoding: a digest is
// mapped to the lexicographically index-th integer vector of length v with
// coordinates in [0, w-1] summing to exactly d0 ("the layer"), by unranking
// bounded-part compositions against a counting table.
//
// The mapping is total over the full 64-bit index domain (indices wrap around
// the layer size) and fails only for parameters that make the layer empty.
package tsl

import (
	"encoding/binary"
	"math/bits"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

// maxTableEntries bounds the counting-table allocation. Adversarial parameters
// can request tables far beyond what the guest can allocate; those reject as
// invalid instead of aborting the trace.
const maxTableEntries = 1 << 20

// EncodeVertex maps Hash(domain ‖ randomness) to a vertex of the layer defined
// by params. The first 8 digest bytes, read little-endian, select the vertex.
func EncodeVertex(h hash.Hash, domain, randomness []byte, params *xmss.Params) ([]uint16, error) {
	digest := h.Sum(domain, randomness)
	index := binary.LittleEndian.Uint64(digest[:8])
	return IntegerToVertex(index, int(params.W), int(params.V), int(params.D0))
}

// IntegerToVertex unranks the index-th vector (mod layer size) in lexicographic
// order among all vectors of length v, elements in [0, w-1], summing to d0.
// It never fails on valid parameters, for any index.
func IntegerToVertex(index uint64, w, v, d0 int) ([]uint16, error) {
	if v == 0 || w <= 1 || d0 < 0 || d0 > v*(w-1) {
		return nil, xmss.ErrInvalidParams
	}
	if (v+1)*(d0+1) > maxTableEntries {
		return nil, xmss.ErrInvalidParams
	}

	// dp[rem][sum] = number of vectors of length rem summing to sum,
	// stored flat, with saturating 128-bit entries.
	stride := d0 + 1
	dp := make([]u128, (v+1)*stride)
	dp[0] = u128{lo: 1}
	for rem := 1; rem <= v; rem++ {
		for s := 0; s <= d0; s++ {
			maxX := min(w-1, s)
			var acc u128
			for x := 0; x <= maxX; x++ {
				acc = acc.addSat(dp[(rem-1)*stride+s-x])
			}
			dp[rem*stride+s] = acc
		}
	}

	layerSize := dp[v*stride+d0]
	if layerSize.isZero() {
		return nil, xmss.ErrInvalidParams
	}
	idx := mod64(index, layerSize)

	// unrank greedily from the first coordinate to the last
	res := make([]uint16, 0, v)
	rem, sum := v, d0
	for rem > 0 {
		maxX := min(w-1, sum)
		x := 0
		for ; x <= maxX; x++ {
			count := dp[(rem-1)*stride+sum-x]
			if idx.less(count) {
				break
			}
			idx = idx.sub(count)
		}
		if x > maxX {
			x = 0 // unreachable: idx < layerSize guarantees a choice
		}
		res = append(res, uint16(x))
		sum -= x
		rem--
	}
	return res, nil
}

// u128 is an unsigned 128-bit integer with saturating addition, wide enough for
// the layer sizes of any parameter combination that fits the counting table.
type u128 struct{ hi, lo uint64 }

func (x u128) isZero() bool {
	return x.hi == 0 && x.lo == 0
}

func (x u128) less(y u128) bool {
	if x.hi != y.hi {
		return x.hi < y.hi
	}
	return x.lo < y.lo
}

func (x u128) addSat(y u128) u128 {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, carry := bits.Add64(x.hi, y.hi, carry)
	if carry != 0 {
		return u128{hi: ^uint64(0), lo: ^uint64(0)}
	}
	return u128{hi: hi, lo: lo}
}

// sub computes x - y; callers ensure y <= x.
func (x u128) sub(y u128) u128 {
	lo, borrow := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(x.hi, y.hi, borrow)
	return u128{hi: hi, lo: lo}
}

// mod64 reduces a 64-bit index modulo a non-zero 128-bit layer size.
func mod64(x uint64, m u128) u128 {
	if m.hi != 0 {
		return u128{lo: x}
	}
	return u128{lo: x % m.lo}
}
