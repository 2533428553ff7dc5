// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// hypercube is a CLI tool to build, run and benchmark hash-based signature
// verification batches.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/consensys/hypercube"
	"github.com/consensys/hypercube/hash"
	"github.com/consensys/hypercube/xmss"
)

var errNotFound = errors.New("file not found")

var rootCmd = &cobra.Command{
	Use:     "hypercube",
	Short:   "builds, runs and benchmarks hash-based signature verification batches",
	Version: buildString(),
}

func buildString() string {
	return "v" + hypercube.Version.String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// parseHash maps a --hash flag value to a registered hash function.
func parseHash(name string) (hash.Hash, error) {
	for _, h := range hypercube.HashFunctions() {
		if h.String() == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown hash function %q", name)
}

// parsePreset maps a --preset flag value to a parameter set.
func parsePreset(name string) (xmss.ParameterSet, error) {
	for _, p := range []xmss.ParameterSet{xmss.SHA256_H18_W4, xmss.SHA256_H18_W8, xmss.SHA256_H20_W4} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter set %q", name)
}
