// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package encoding

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

func sampleBatch(k int, epoch uint64, msg []byte) *xmss.VerificationBatch {
	publicKeys := make([]xmss.PublicKey, k)
	signatures := make([]xmss.Signature, k)
	for i := 0; i < k; i++ {
		publicKeys[i].Root[0] = byte(i)
		publicKeys[i].Parameter[1] = byte(i)
		signatures[i] = xmss.Signature{
			LeafIndex: uint32(epoch),
			ChainEnds: make([]xmss.Node, 4),
			AuthPath:  make([]xmss.Node, 3),
		}
		signatures[i].ChainEnds[0][0] = byte(i + 1)
		signatures[i].AuthPath[2][5] = byte(i + 2)
	}
	return &xmss.VerificationBatch{
		Params: xmss.Params{W: 4, V: 4, D0: 5, SecurityBits: 128, TreeHeight: 3},
		Statement: xmss.Statement{
			K:          uint32(k),
			Epoch:      epoch,
			Message:    msg,
			PublicKeys: publicKeys,
		},
		Witness: xmss.Witness{Signatures: signatures},
	}
}

func TestRoundTrip(t *testing.T) {
	assert := require.New(t)

	batch := sampleBatch(3, 42, []byte("round trip"))

	var buf bytes.Buffer
	assert.NoError(Serialize(&buf, batch, hash.SHA2_256))

	got, err := Deserialize(&buf, hash.SHA2_256)
	assert.NoError(err)

	if diff := cmp.Diff(batch, got); diff != "" {
		t.Fatalf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripFile(t *testing.T) {
	assert := require.New(t)

	path := filepath.Join(t.TempDir(), "batch.bin")
	batch := sampleBatch(1, 0, nil)

	assert.NoError(Write(path, batch, hash.BLAKE2B_256))
	got, err := Read(path, hash.BLAKE2B_256)
	assert.NoError(err)

	if diff := cmp.Diff(batch, got); diff != "" {
		t.Fatalf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestHashGate(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	assert.NoError(Serialize(&buf, sampleBatch(1, 1, []byte("gated")), hash.SHA2_256))

	_, err := Deserialize(&buf, hash.SHA3_256)
	assert.ErrorIs(err, errInvalidHash)
}

func TestPeekHash(t *testing.T) {
	assert := require.New(t)

	for _, h := range []hash.Hash{hash.SHA2_256, hash.SHA3_256, hash.BLAKE2B_256, hash.MIMC_BN254} {
		var buf bytes.Buffer
		assert.NoError(Serialize(&buf, sampleBatch(1, 1, nil), h))

		got, err := PeekHash(&buf)
		assert.NoError(err)
		assert.Equal(h, got)
	}
}

func TestDeserializeGarbage(t *testing.T) {
	assert := require.New(t)

	_, err := Deserialize(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}), hash.SHA2_256)
	assert.Error(err)

	_, err = Deserialize(bytes.NewReader(nil), hash.SHA2_256)
	assert.Error(err)
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("serialization round trips", prop.ForAll(
		func(k int, epoch uint64, msg []byte) bool {
			batch := sampleBatch(k, epoch, msg)

			var buf bytes.Buffer
			if err := Serialize(&buf, batch, hash.SHA2_256); err != nil {
				return false
			}
			got, err := Deserialize(&buf, hash.SHA2_256)
			if err != nil {
				return false
			}
			return cmp.Diff(batch, got, cmp.Transformer("nilToEmpty", func(b []byte) string {
				return string(b)
			})) == ""
		},
		gen.IntRange(0, 8),
		gen.UInt64(),
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
