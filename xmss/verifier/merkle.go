// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package verifier

import (
	"encoding/binary"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

// NodeHash compresses two children into their parent node:
//
//	H(0x01 ‖ parameter ‖ be32(height) ‖ be32(index) ‖ left ‖ right)
//
// The tag byte, the per-key parameter, the absolute height and the parent index
// at that height separate the hash domains, so identical (left, right) pairs at
// different tree positions or under different keys never collide.
func NodeHash(h hash.Hash, param xmss.Parameter, height, index uint32, left, right xmss.Node) xmss.Node {
	var buf [1 + xmss.NodeSize + 4 + 4 + 2*xmss.NodeSize]byte
	buf[0] = 0x01
	copy(buf[1:], param[:])
	binary.BigEndian.PutUint32(buf[1+xmss.NodeSize:], height)
	binary.BigEndian.PutUint32(buf[1+xmss.NodeSize+4:], index)
	copy(buf[1+xmss.NodeSize+8:], left[:])
	copy(buf[1+2*xmss.NodeSize+8:], right[:])
	return xmss.Node(h.Sum(buf[:]))
}

// MerkleRootFromPath reconstructs the tree root from a leaf, its index and the
// sibling path. Bit h of leafIndex decides the left/right ordering at height h.
// An empty path returns the leaf itself (single-leaf tree).
func MerkleRootFromPath(h hash.Hash, leaf xmss.Node, leafIndex uint64, authPath []xmss.Node, param xmss.Parameter) xmss.Node {
	for height, sibling := range authPath {
		left, right := leaf, sibling
		if (leafIndex>>height)&1 == 1 {
			left, right = sibling, leaf
		}
		leaf = NodeHash(h, param, uint32(height), uint32(leafIndex>>(height+1)), left, right)
	}
	return leaf
}
