// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package encoding offers (de)serialization APIs for verification batches.
// It uses CBOR with deterministic encode options; the node hash ID and the
// library version are encoded first and act as a gate on deserialization.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/hypercube"
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/logger"
	"github.com/consensys/hypercube/xmss"
)

var errInvalidHash = errors.New("trying to deserialize a batch serialized with another node hash")

// header is written ahead of the batch and checked on the way back in.
type header struct {
	Version string
	Hash    hash.Hash
}

// Write serializes a batch into a file.
func Write(path string, batch *xmss.VerificationBatch, h hash.Hash) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Serialize(f, batch, h)
}

// Read reads and deserializes a batch from a file.
func Read(path string, expected hash.Hash) (*xmss.VerificationBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Deserialize(f, expected)
}

// Serialize writes the header then the batch to w.
func Serialize(w io.Writer, batch *xmss.VerificationBatch, h hash.Hash) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}
	encoder := em.NewEncoder(w)

	if err := encoder.Encode(header{Version: hypercube.Version.String(), Hash: h}); err != nil {
		return err
	}
	return encoder.Encode(batch)
}

// Deserialize reads a batch from r, ensuring it was serialized with the expected
// node hash. A version mismatch is not fatal but is logged: there are no
// compatibility guarantees across versions of the batch layout.
func Deserialize(r io.Reader, expected hash.Hash) (*xmss.VerificationBatch, error) {
	decoder := cbor.NewDecoder(r)

	var hdr header
	if err := decoder.Decode(&hdr); err != nil {
		return nil, err
	}
	if hdr.Hash != expected {
		return nil, errInvalidHash
	}
	if err := checkVersion(hdr.Version); err != nil {
		return nil, err
	}

	batch := new(xmss.VerificationBatch)
	if err := decoder.Decode(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// PeekHash reads the header of a serialized batch and returns the node hash ID
// it was written with.
func PeekHash(r io.Reader) (hash.Hash, error) {
	decoder := cbor.NewDecoder(r)
	var hdr header
	if err := decoder.Decode(&hdr); err != nil {
		return 0, err
	}
	return hdr.Hash, nil
}

func checkVersion(v string) error {
	objectVersion, err := semver.Parse(v)
	if err != nil {
		return fmt.Errorf("when parsing batch version: %w", err)
	}
	if hypercube.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", hypercube.Version.String()).Str("object", objectVersion.String()).
			Msg("library version mismatch with serialized batch. there are no guarantees on compatibility")
	}
	return nil
}
