// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/consensys/hypercube/host"
	"github.com/consensys/hypercube/xmss/verifier"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:     "check [input.json]",
	Short:   "inspects an input file and prints its statement without running the guest",
	Run:     cmdCheck,
	Version: buildString(),
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.PersistentFlags().StringVar(&fHashName, "hash", "SHA2_256", "specifies the hash function for chains and trees")
}

func cmdCheck(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing input path -- hypercube check -h for help")
		os.Exit(-1)
	}
	inputPath := filepath.Clean(args[0])
	if !fileExists(inputPath) {
		fmt.Println(inputPath, errNotFound)
		os.Exit(-1)
	}
	h, err := parseHash(fHashName)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	batch, err := host.ReadInputFile(inputPath, h)
	if err != nil {
		fmt.Println("can't parse input file:", err)
		os.Exit(-1)
	}
	if err := batch.Params.Validate(); err != nil {
		fmt.Println("invalid parameters:", err)
		os.Exit(-1)
	}

	st := &batch.Statement
	fmt.Printf("%-30s %-30s\n", "loaded input", inputPath)
	fmt.Printf("%-30s %d\n", "signatures claimed", st.K)
	fmt.Printf("%-30s %d\n", "signatures present", len(batch.Witness.Signatures))
	fmt.Printf("%-30s %d\n", "public keys", len(st.PublicKeys))
	fmt.Printf("%-30s %d\n", "epoch", st.Epoch)
	fmt.Printf("%-30s %d bytes\n", "message", len(st.Message))
	fmt.Printf("%-30s w=%d v=%d d0=%d height=%d\n", "parameters",
		batch.Params.W, batch.Params.V, batch.Params.D0, batch.Params.TreeHeight)

	commitment := verifier.StatementCommitment(st)
	fmt.Printf("%-30s %x\n", "statement commitment", commitment[:])

	if uint32(len(batch.Witness.Signatures)) != st.K || uint32(len(st.PublicKeys)) != st.K {
		fmt.Println("structural mismatch: the guest will reject this batch")
		os.Exit(-1)
	}
}
