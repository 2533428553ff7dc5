// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package verifier

import (
	"encoding/binary"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

// CommitmentSize is the byte length of a statement commitment. The commitment is
// always a SHA-256 digest, independent of the node hash the verifier runs with,
// so an external party can recompute it without instantiating the scheme.
const CommitmentSize = 32

// StatementCommitment binds a statement to a 32-byte value over the canonical
// encoding
//
//	le32(k) ‖ le64(epoch) ‖ le32(len(m)) ‖ m ‖ le32(len(pks)) ‖ root_0 ‖ parameter_0 ‖ …
//
// The guest reveals this value; the host recomputes it from the plaintext
// statement to bind the proof to specific, inspectable public inputs.
func StatementCommitment(st *xmss.Statement) [CommitmentSize]byte {
	n := 4 + 8 + 4 + len(st.Message) + 4 + len(st.PublicKeys)*2*xmss.NodeSize
	buf := make([]byte, 0, n)

	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[:4], st.K)
	buf = append(buf, scratch[:4]...)
	binary.LittleEndian.PutUint64(scratch[:8], st.Epoch)
	buf = append(buf, scratch[:8]...)
	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(st.Message)))
	buf = append(buf, scratch[:4]...)
	buf = append(buf, st.Message...)
	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(st.PublicKeys)))
	buf = append(buf, scratch[:4]...)
	for i := range st.PublicKeys {
		buf = append(buf, st.PublicKeys[i].Root[:]...)
		buf = append(buf, st.PublicKeys[i].Parameter[:]...)
	}

	return hash.SHA2_256.Sum(buf)
}
