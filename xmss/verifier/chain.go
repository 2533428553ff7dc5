// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package verifier

import (
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

// IterateChain applies the one-way hash n times to a node. It is the chain-walk
// primitive shared by verification (ends forward to endpoints) and signing
// (secrets forward to ends).
func IterateChain(h hash.Hash, n xmss.Node, count int) xmss.Node {
	for i := 0; i < count; i++ {
		n = xmss.Node(h.Sum(n[:]))
	}
	return n
}

// ChainLeaf walks each claimed chain end forward to the fixed chain-top position
// and compresses the endpoints into a Merkle leaf.
//
// steps[i] encodes how far along chain i the signer's secret was consumed, so
// end i needs (w-1-steps[i]) more applications to reach the top. Two signatures
// over the same logical position reconstruct the identical leaf this way, while
// the target-sum property of steps prevents forgery via chain-shortening.
// Callers reject mismatched lengths before this runs.
func ChainLeaf(h hash.Hash, w uint16, steps []uint16, ends []xmss.Node) xmss.Node {
	concat := make([]byte, 0, len(ends)*xmss.NodeSize)
	for i := range ends {
		var n int
		if steps[i] < w-1 {
			n = int(w - 1 - steps[i])
		}
		top := IterateChain(h, ends[i], n)
		concat = append(concat, top[:]...)
	}
	return xmss.Node(h.Sum(concat))
}
