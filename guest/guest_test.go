// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package guest_test

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/hypercube/encoding"
	"github.com/consensys/hypercube/guest"
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/internal/keygen"
	"github.com/consensys/hypercube/xmss"
	"github.com/consensys/hypercube/xmss/verifier"
)

func honestBatch(t *testing.T, k int, msg []byte, epoch uint64) *xmss.VerificationBatch {
	t.Helper()
	assert := require.New(t)

	params := xmss.Params{W: 4, V: 8, D0: 6, SecurityBits: 128, TreeHeight: 3}
	publicKeys := make([]xmss.PublicKey, 0, k)
	signatures := make([]xmss.Signature, 0, k)
	for i := 0; i < k; i++ {
		var seed [32]byte
		seed[0] = byte(i + 1)
		sk, err := keygen.GenerateKey(hash.SHA2_256, params, seed, 0, uint32(params.Lifetime()))
		assert.NoError(err)
		sig, err := sk.Sign(msg, epoch)
		assert.NoError(err)
		publicKeys = append(publicKeys, sk.PublicKey())
		signatures = append(signatures, *sig)
	}
	return &xmss.VerificationBatch{
		Params: params,
		Statement: xmss.Statement{
			K:          uint32(k),
			Epoch:      epoch,
			Message:    msg,
			PublicKeys: publicKeys,
		},
		Witness: xmss.Witness{Signatures: signatures},
	}
}

func TestRunWordLayout(t *testing.T) {
	assert := require.New(t)

	batch := honestBatch(t, 3, []byte("layout"), 1)
	out := guest.Run(hash.SHA2_256, batch)

	assert.Equal(uint32(1), out.Word(0))
	assert.Equal(uint32(3), out.Word(1))
	assert.True(out.AllValid())
	assert.Equal(uint32(3), out.Count())

	// words 2..9 carry the commitment little-endian
	commitment := verifier.StatementCommitment(&batch.Statement)
	for i := 0; i < 8; i++ {
		assert.Equal(binary.LittleEndian.Uint32(commitment[4*i:]), out.Word(2+i))
	}
	assert.Equal(commitment, out.Commitment())

	words := out.Words()
	for i := 0; i < guest.NumWords; i++ {
		assert.Equal(out.Word(i), words[i])
	}
}

func TestRunRejectedBatchStillCommits(t *testing.T) {
	assert := require.New(t)

	batch := honestBatch(t, 2, []byte("tainted"), 0)
	batch.Witness.Signatures[1].ChainEnds[0][0] ^= 0xff

	out := guest.Run(hash.SHA2_256, batch)
	assert.Equal(uint32(0), out.Word(0))
	assert.Equal(uint32(2), out.Word(1))
	assert.Equal(verifier.StatementCommitment(&batch.Statement), out.Commitment())
}

func TestRunStructuralMismatch(t *testing.T) {
	assert := require.New(t)

	// a batch announcing one signature but carrying none: fatal, but the
	// commitment over the claimed statement is still revealed
	batch := &xmss.VerificationBatch{
		Params: xmss.Params{W: 4, V: 8, D0: 6, SecurityBits: 128, TreeHeight: 3},
		Statement: xmss.Statement{
			K:          1,
			Message:    []byte("single"),
			PublicKeys: []xmss.PublicKey{{}},
		},
	}
	out := guest.Run(hash.SHA2_256, batch)

	assert.Equal(uint32(0), out.Word(0))
	assert.Equal(uint32(0), out.Word(1))
	commitment := out.Commitment()
	assert.Equal("9960e407c3ff4f979683fe986400fb46a4dce25d05dcee5c83aef8d1920f2d8c", hex.EncodeToString(commitment[:]))
}

func TestRunIsDeterministic(t *testing.T) {
	assert := require.New(t)

	batch := honestBatch(t, 2, []byte("replay"), 4)
	a := guest.Run(hash.SHA2_256, batch)
	b := guest.Run(hash.SHA2_256, batch)
	assert.Equal(a.Words(), b.Words())
}

func TestExecute(t *testing.T) {
	assert := require.New(t)

	batch := honestBatch(t, 2, []byte("serialized"), 3)

	var buf bytes.Buffer
	assert.NoError(encoding.Serialize(&buf, batch, hash.SHA2_256))

	out, err := guest.Execute(hash.SHA2_256, &buf)
	assert.NoError(err)
	assert.True(out.AllValid())
	assert.Equal(uint32(2), out.Count())

	// malformed blobs surface as errors, not as aborts
	_, err = guest.Execute(hash.SHA2_256, bytes.NewReader([]byte{0x00, 0x01}))
	assert.Error(err)
}
