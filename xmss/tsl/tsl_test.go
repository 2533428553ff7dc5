// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package tsl

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

// enumerateLayer lists all vectors of length v with coordinates in [0, w-1]
// summing to d0, in lexicographic order. Reference for small parameters only.
func enumerateLayer(w, v, d0 int) [][]uint16 {
	if v == 0 {
		if d0 == 0 {
			return [][]uint16{{}}
		}
		return nil
	}
	var out [][]uint16
	for x := 0; x < w && x <= d0; x++ {
		for _, tail := range enumerateLayer(w, v-1, d0-x) {
			vec := append([]uint16{uint16(x)}, tail...)
			out = append(out, vec)
		}
	}
	return out
}

func TestIntegerToVertexMatchesEnumeration(t *testing.T) {
	assert := require.New(t)

	for _, tc := range []struct{ w, v, d0 int }{
		{2, 6, 3},
		{3, 4, 4},
		{4, 5, 7},
		{8, 3, 9},
	} {
		layer := enumerateLayer(tc.w, tc.v, tc.d0)
		assert.NotEmpty(layer)

		for i, want := range layer {
			got, err := IntegerToVertex(uint64(i), tc.w, tc.v, tc.d0)
			assert.NoError(err)
			assert.Equal(want, got, "w=%d v=%d d0=%d index=%d", tc.w, tc.v, tc.d0, i)
		}
	}
}

func TestIntegerToVertexWrapsAroundLayer(t *testing.T) {
	assert := require.New(t)

	const w, v, d0 = 3, 5, 6
	layer := enumerateLayer(w, v, d0)
	size := uint64(len(layer))

	for _, i := range []uint64{0, 1, size - 1, size, size + 1, 7*size + 3} {
		got, err := IntegerToVertex(i, w, v, d0)
		assert.NoError(err)
		assert.Equal(layer[i%size], got)
	}
}

func TestIntegerToVertexCoversLayer(t *testing.T) {
	assert := require.New(t)

	const w, v, d0 = 4, 4, 6
	layer := enumerateLayer(w, v, d0)

	rank := make(map[[4]uint16]uint, len(layer))
	for i, vec := range layer {
		rank[[4]uint16(vec)] = uint(i)
	}

	seen := bitset.New(uint(len(layer)))
	for i := 0; i < len(layer); i++ {
		vec, err := IntegerToVertex(uint64(i), w, v, d0)
		assert.NoError(err)
		r, ok := rank[[4]uint16(vec)]
		assert.True(ok, "index %d produced a vector outside the layer", i)
		assert.False(seen.Test(r), "index %d repeated rank %d", i, r)
		seen.Set(r)
	}
	assert.Equal(uint(len(layer)), seen.Count())
}

func TestIntegerToVertexInvalidParams(t *testing.T) {
	assert := require.New(t)

	for _, tc := range []struct{ w, v, d0 int }{
		{1, 4, 2},  // single-value alphabet has no chains to walk
		{0, 4, 2},
		{4, 0, 0},  // empty vector
		{4, 4, 13}, // d0 > v*(w-1)
		{4, 4, -1},
		{2, 4096, 2048}, // counting table over the allocation bound
	} {
		_, err := IntegerToVertex(0, tc.w, tc.v, tc.d0)
		assert.ErrorIs(err, xmss.ErrInvalidParams, "w=%d v=%d d0=%d", tc.w, tc.v, tc.d0)
	}
}

func TestIntegerToVertexProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every index yields a layer vertex", prop.ForAll(
		func(index uint64, w, v int) bool {
			d0 := v * (w - 1) / 2
			vec, err := IntegerToVertex(index, w, v, d0)
			if err != nil {
				return false
			}
			if len(vec) != v {
				return false
			}
			sum := 0
			for _, x := range vec {
				if int(x) >= w {
					return false
				}
				sum += int(x)
			}
			return sum == d0
		},
		gen.UInt64(),
		gen.IntRange(2, 8),
		gen.IntRange(1, 24),
	))

	properties.Property("unranking is deterministic", prop.ForAll(
		func(index uint64) bool {
			a, errA := IntegerToVertex(index, 4, 12, 18)
			b, errB := IntegerToVertex(index, 4, 12, 18)
			if errA != nil || errB != nil {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestEncodeVertexShape(t *testing.T) {
	assert := require.New(t)

	params := xmss.Params{W: 4, V: 12, D0: 18, SecurityBits: 128, TreeHeight: 4}
	assert.NoError(params.Validate())

	var randomness [32]byte
	vec, err := EncodeVertex(hash.SHA2_256, []byte("4:some message"), randomness[:], &params)
	assert.NoError(err)
	assert.Len(vec, int(params.V))

	sum := 0
	for _, x := range vec {
		sum += int(x)
	}
	assert.Equal(int(params.D0), sum)

	// same inputs, same vertex
	again, err := EncodeVertex(hash.SHA2_256, []byte("4:some message"), randomness[:], &params)
	assert.NoError(err)
	assert.Equal(vec, again)

	// different domains diverge
	other, err := EncodeVertex(hash.SHA2_256, []byte("4:other message"), randomness[:], &params)
	assert.NoError(err)
	assert.NotEqual(vec, other)
}
