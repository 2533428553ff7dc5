// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package xmss

// ParameterSet identifies a named parameter instantiation. The sets mirror
// standard Winternitz lifetimes over a 18-byte message hash.
type ParameterSet uint

const (
	// SHA256_H18_W4: tree height 18 (2^18 leaves), Winternitz parameter 4.
	SHA256_H18_W4 ParameterSet = iota
	// SHA256_H18_W8: tree height 18, Winternitz parameter 8.
	SHA256_H18_W8
	// SHA256_H20_W4: tree height 20 (2^20 leaves), Winternitz parameter 4.
	SHA256_H20_W4
)

// messageHashLen is the byte length of the message digest the chains encode.
const messageHashLen = 18

// Metadata describes a parameter set for reporting purposes.
type Metadata struct {
	Lifetime           uint32
	TreeHeight         uint16
	WinternitzParam    uint16
	HashFunction       string
	SignatureSizeBytes int
	PublicKeySizeBytes int
}

// String returns the parameter set name.
func (ps ParameterSet) String() string {
	switch ps {
	case SHA256_H18_W4:
		return "SHA256_H18_W4"
	case SHA256_H18_W8:
		return "SHA256_H18_W8"
	case SHA256_H20_W4:
		return "SHA256_H20_W4"
	default:
		panic("unknown parameter set")
	}
}

// Metadata returns the lifetime and size estimates of the parameter set.
func (ps ParameterSet) Metadata() Metadata {
	p := ps.Params()
	return Metadata{
		Lifetime:           uint32(1) << p.TreeHeight,
		TreeHeight:         p.TreeHeight,
		WinternitzParam:    p.W,
		HashFunction:       "SHA-256",
		SignatureSizeBytes: 4 + 32 + int(p.V)*NodeSize + int(p.TreeHeight)*NodeSize,
		PublicKeySizeBytes: 2 * NodeSize,
	}
}

// Params converts the parameter set to concrete verification parameters.
// The chain count is v = messageHashLen*8/w, the target sum d0 depends on w.
func (ps ParameterSet) Params() Params {
	var w, treeHeight uint16
	switch ps {
	case SHA256_H18_W4:
		w, treeHeight = 4, 18
	case SHA256_H18_W8:
		w, treeHeight = 8, 18
	case SHA256_H20_W4:
		w, treeHeight = 4, 20
	default:
		panic("unknown parameter set")
	}
	return Params{
		W:            w,
		V:            messageHashLen * 8 / w,
		D0:           checksumTarget(w),
		SecurityBits: 128,
		TreeHeight:   treeHeight,
	}
}

// checksumTarget returns the layer sum d0 for a given Winternitz parameter.
func checksumTarget(w uint16) uint32 {
	switch w {
	case 1:
		return 8
	case 2:
		return 4
	case 4:
		return 3
	case 8:
		return 2
	default:
		return 3
	}
}
