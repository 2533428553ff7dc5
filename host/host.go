// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package host orchestrates the guest from outside the constrained execution
// environment: it builds verification batches, writes and reads the guest input
// file, executes the guest and cross-checks the revealed words against an
// independent recomputation of the statement commitment.
package host

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/consensys/hypercube/encoding"
	"github.com/consensys/hypercube/guest"
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/internal/keygen"
	"github.com/consensys/hypercube/logger"
	"github.com/consensys/hypercube/xmss"
	"github.com/consensys/hypercube/xmss/verifier"
)

// inputFile is the on-disk shape of a guest input: a single hex payload with a
// leading 0x01 format byte.
type inputFile struct {
	Input []string `json:"input"`
}

// MessageDigest preprocesses an arbitrary-length message into the fixed 32-byte
// digest statements are built over.
func MessageDigest(m []byte) [32]byte {
	return hash.SHA2_256.Sum(m)
}

// Signer signs under one key and tracks consumed leaves, refusing to reuse one:
// a leaf signed twice forfeits the one-time property of its chains.
type Signer struct {
	sk   *keygen.SecretKey
	used *bitset.BitSet
}

// NewSigner expands a key active over the full lifetime of params.
func NewSigner(h hash.Hash, params xmss.Params, seed [32]byte) (*Signer, error) {
	sk, err := keygen.GenerateKey(h, params, seed, 0, uint32(params.Lifetime()))
	if err != nil {
		return nil, err
	}
	return &Signer{
		sk:   sk,
		used: bitset.New(uint(params.Lifetime())),
	}, nil
}

// PublicKey returns the signer's public key.
func (s *Signer) PublicKey() xmss.PublicKey {
	return s.sk.PublicKey()
}

// Sign signs msg at epoch, consuming the corresponding leaf.
func (s *Signer) Sign(msg []byte, epoch uint64) (*xmss.Signature, error) {
	if s.used.Test(uint(epoch)) {
		return nil, fmt.Errorf("leaf %d already consumed: one-time signature reuse", epoch)
	}
	sig, err := s.sk.Sign(msg, epoch)
	if err != nil {
		return nil, err
	}
	s.used.Set(uint(epoch))
	return sig, nil
}

// GenerateBatch builds a batch of k signatures over msg at epoch, each under an
// independent key derived deterministically from the batch position.
func GenerateBatch(h hash.Hash, params xmss.Params, k int, msg []byte, epoch uint64) (*xmss.VerificationBatch, error) {
	publicKeys := make([]xmss.PublicKey, 0, k)
	signatures := make([]xmss.Signature, 0, k)
	for i := 0; i < k; i++ {
		var idx [4]byte
		binary.LittleEndian.PutUint32(idx[:], uint32(i))
		seed := hash.SHA2_256.Sum([]byte("hypercube/batch-seed"), idx[:])

		signer, err := NewSigner(h, params, seed)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		sig, err := signer.Sign(msg, epoch)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		publicKeys = append(publicKeys, signer.PublicKey())
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
	}, nil
}

// CorruptChainEnd flips one byte of the i-th signature's first chain end. Used
// to produce batches that must be rejected.
func CorruptChainEnd(batch *xmss.VerificationBatch, i int) {
	batch.Witness.Signatures[i].ChainEnds[0][0] ^= 0xff
}

// WriteInputFile serializes batch and writes it in the guest input shape
// {"input": ["0x01<hex>"]}.
func WriteInputFile(path string, batch *xmss.VerificationBatch, h hash.Hash) error {
	var blob bytes.Buffer
	if err := encoding.Serialize(&blob, batch, h); err != nil {
		return err
	}

	payload := "0x01" + hex.EncodeToString(blob.Bytes())
	data, err := json.MarshalIndent(inputFile{Input: []string{payload}}, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	log := logger.Logger()
	log.Debug().Str("path", path).Int("bytes", blob.Len()).Uint32("k", batch.Statement.K).Msg("wrote guest input")
	return nil
}

// ReadInputFile parses a guest input file back into a batch.
func ReadInputFile(path string, expected hash.Hash) (*xmss.VerificationBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var in inputFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	if len(in.Input) == 0 {
		return nil, errors.New("input file carries no payload")
	}
	payload := in.Input[0]
	if !strings.HasPrefix(payload, "0x01") {
		return nil, errors.New("input payload misses the 0x01 format byte")
	}
	blob, err := hex.DecodeString(payload[4:])
	if err != nil {
		return nil, err
	}
	return encoding.Deserialize(bytes.NewReader(blob), expected)
}

// Execute reads an input file, runs the guest over it and cross-checks the
// revealed commitment words against the plaintext statement.
func Execute(path string, h hash.Hash) (guest.Output, error) {
	batch, err := ReadInputFile(path, h)
	if err != nil {
		return guest.Output{}, err
	}
	out := guest.Run(h, batch)
	if err := CrossCheck(&out, &batch.Statement); err != nil {
		return out, err
	}
	return out, nil
}

// CrossCheck recomputes the statement commitment from the plaintext statement
// and compares it to the words the guest revealed, binding the run to its
// public inputs without re-executing verification.
func CrossCheck(out *guest.Output, st *xmss.Statement) error {
	want := verifier.StatementCommitment(st)
	if out.Commitment() != want {
		return errors.New("revealed commitment does not match the plaintext statement")
	}
	if got := out.Count(); got != st.K && got != 0 {
		return fmt.Errorf("revealed count %d matches neither statement k %d nor the rejected-batch count 0", got, st.K)
	}
	return nil
}
