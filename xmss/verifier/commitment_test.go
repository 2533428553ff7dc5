// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package verifier_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/hypercube/xmss"
	"github.com/consensys/hypercube/xmss/verifier"
)

func TestStatementCommitmentFixedVector(t *testing.T) {
	assert := require.New(t)

	// SHA-256 over le32(1) ‖ le64(0) ‖ le32(6) ‖ "single" ‖ le32(1) ‖ 0^64
	st := &xmss.Statement{
		K:          1,
		Epoch:      0,
		Message:    []byte("single"),
		PublicKeys: []xmss.PublicKey{{}},
	}
	got := verifier.StatementCommitment(st)
	assert.Equal("9960e407c3ff4f979683fe986400fb46a4dce25d05dcee5c83aef8d1920f2d8c", hex.EncodeToString(got[:]))
}

func TestStatementCommitmentBindsEveryField(t *testing.T) {
	assert := require.New(t)

	newStatement := func() xmss.Statement {
		pks := make([]xmss.PublicKey, 2)
		pks[0].Root[0] = 0x0a
		pks[1].Root[0] = 0x0b
		return xmss.Statement{
			K:          2,
			Epoch:      77,
			Message:    []byte("bound"),
			PublicKeys: pks,
		}
	}
	base := newStatement()
	ref := verifier.StatementCommitment(&base)

	mutations := map[string]func(*xmss.Statement){
		"k":         func(st *xmss.Statement) { st.K = 3 },
		"epoch":     func(st *xmss.Statement) { st.Epoch = 78 },
		"message":   func(st *xmss.Statement) { st.Message = []byte("bounD") },
		"root":      func(st *xmss.Statement) { st.PublicKeys[1].Root[0] ^= 0x01 },
		"parameter": func(st *xmss.Statement) { st.PublicKeys[0].Parameter[31] ^= 0x01 },
		"key order": func(st *xmss.Statement) {
			st.PublicKeys[0], st.PublicKeys[1] = st.PublicKeys[1], st.PublicKeys[0]
		},
	}
	for name, mutate := range mutations {
		st := newStatement()
		mutate(&st)
		assert.NotEqual(ref, verifier.StatementCommitment(&st), name)
	}
}

func TestStatementCommitmentIndependentOfWitness(t *testing.T) {
	assert := require.New(t)

	// the commitment covers the statement only; verification outcome and
	// witness bytes must not enter it
	st := xmss.Statement{K: 1, Epoch: 1, Message: []byte("m"), PublicKeys: []xmss.PublicKey{{}}}
	a := verifier.StatementCommitment(&st)
	b := verifier.StatementCommitment(&st)
	assert.Equal(a, b)
}
