// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/consensys/hypercube/host"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "generates keys, signs a message and writes a guest input file",
	Run:     cmdGenerate,
	Version: buildString(),
}

var (
	fHashName   string
	fPresetName string
	fK          uint
	fEpoch      uint64
	fMessage    string
	fInputPath  string
	fCorrupt    int
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.PersistentFlags().StringVar(&fHashName, "hash", "SHA2_256", "specifies the hash function for chains and trees")
	generateCmd.PersistentFlags().StringVar(&fPresetName, "preset", "SHA256_H18_W4", "specifies the parameter set")
	generateCmd.PersistentFlags().UintVar(&fK, "k", 4, "specifies the number of signatures in the batch")
	generateCmd.PersistentFlags().Uint64Var(&fEpoch, "epoch", 0, "specifies the signing epoch")
	generateCmd.PersistentFlags().StringVar(&fMessage, "message", "hello hypercube", "specifies the message to sign")
	generateCmd.PersistentFlags().StringVar(&fInputPath, "input", "input.json", "specifies full path for the guest input file")
	generateCmd.PersistentFlags().IntVar(&fCorrupt, "corrupt", -1, "corrupts the chain ends of the given signature index (testing)")
}

func cmdGenerate(cmd *cobra.Command, args []string) {
	h, err := parseHash(fHashName)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	preset, err := parsePreset(fPresetName)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	params := preset.Params()

	meta := preset.Metadata()
	fmt.Printf("%-30s %-30s lifetime %d, signature %d bytes\n", "parameter set", preset.String(), meta.Lifetime, meta.SignatureSizeBytes)

	start := time.Now()
	batch, err := host.GenerateBatch(h, params, int(fK), []byte(fMessage), fEpoch)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "generated batch", fmt.Sprintf("k=%d epoch=%d", fK, fEpoch), time.Since(start))

	if fCorrupt >= 0 {
		if fCorrupt >= int(fK) {
			fmt.Printf("corrupt index %d out of range [0,%d)\n", fCorrupt, fK)
			os.Exit(-1)
		}
		host.CorruptChainEnd(batch, fCorrupt)
		fmt.Printf("%-30s signature %d\n", "corrupted chain end", fCorrupt)
	}

	fInputPath = filepath.Clean(fInputPath)
	if err := host.WriteInputFile(fInputPath, batch, h); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "wrote guest input", fInputPath)
}
