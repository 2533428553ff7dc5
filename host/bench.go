// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package host

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ronanh/intcomp"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/hypercube/guest"
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/logger"
	"github.com/consensys/hypercube/xmss"
)

// BenchConfig drives a verification benchmark run.
type BenchConfig struct {
	Hash       hash.Hash
	Params     xmss.Params
	K          int    // signatures per batch
	Iterations int    // guest executions to sample
	Procs      int    // concurrent executions; <= 0 means 1
	Message    []byte // nil picks a fixed benchmark message
}

// BenchResult holds per-iteration guest wall times in nanoseconds.
type BenchResult struct {
	K       int
	Samples []uint64
}

// RunBench builds one batch and samples Iterations guest executions over it.
// Batch generation is excluded from the samples; executions run Procs at a
// time.
func RunBench(cfg BenchConfig) (*BenchResult, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	msg := cfg.Message
	if msg == nil {
		msg = []byte("hypercube benchmark message")
	}

	log := logger.Logger()
	start := time.Now()
	batch, err := GenerateBatch(cfg.Hash, cfg.Params, cfg.K, msg, 0)
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("took", time.Since(start)).Int("k", cfg.K).Msg("batch generated")

	samples := make([]uint64, cfg.Iterations)
	var mu sync.Mutex
	allValid := true

	g := new(errgroup.Group)
	procs := cfg.Procs
	if procs <= 0 {
		procs = 1
	}
	g.SetLimit(procs)
	for i := 0; i < cfg.Iterations; i++ {
		g.Go(func() error {
			t := time.Now()
			out := guest.Run(cfg.Hash, batch)
			elapsed := time.Since(t)
			mu.Lock()
			samples[i] = uint64(elapsed.Nanoseconds())
			allValid = allValid && out.AllValid()
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !allValid {
		return nil, fmt.Errorf("benchmark batch rejected by the guest")
	}

	return &BenchResult{K: cfg.K, Samples: samples}, nil
}

// Min, Max, Median and Mean summarize the samples in nanoseconds.

func (r *BenchResult) Min() uint64 {
	m := r.Samples[0]
	for _, s := range r.Samples[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

func (r *BenchResult) Max() uint64 {
	m := r.Samples[0]
	for _, s := range r.Samples[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

func (r *BenchResult) Median() uint64 {
	sorted := append([]uint64(nil), r.Samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

func (r *BenchResult) Mean() uint64 {
	var sum uint64
	for _, s := range r.Samples {
		sum += s
	}
	return sum / uint64(len(r.Samples))
}

// SaveSamples persists the samples integer-compressed; nanosecond wall times
// over a fixed batch cluster tightly, so delta coding packs them well.
func (r *BenchResult) SaveSamples(path string) error {
	packed := intcomp.CompressUint64(r.Samples, nil)
	buf := make([]byte, 0, 8*len(packed))
	for _, w := range packed {
		buf = append(buf,
			byte(w), byte(w>>8), byte(w>>16), byte(w>>24),
			byte(w>>32), byte(w>>40), byte(w>>48), byte(w>>56))
	}
	return os.WriteFile(path, buf, 0o600)
}

// LoadSamples reads samples persisted by SaveSamples.
func LoadSamples(path string) ([]uint64, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("sample file length %d is not a multiple of 8", len(buf))
	}
	packed := make([]uint64, len(buf)/8)
	for i := range packed {
		b := buf[8*i:]
		packed[i] = uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	}
	return intcomp.UncompressUint64(packed, nil), nil
}
