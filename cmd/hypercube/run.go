// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/consensys/hypercube/guest"
	"github.com/consensys/hypercube/host"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:     "run [input.json]",
	Short:   "runs the guest over an input file and prints the revealed words",
	Run:     cmdRun,
	Version: buildString(),
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.PersistentFlags().StringVar(&fHashName, "hash", "SHA2_256", "specifies the hash function for chains and trees")
}

func cmdRun(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing input path -- hypercube run -h for help")
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

	start := time.Now()
	out, err := host.Execute(inputPath, h)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	duration := time.Since(start)

	verdict := "batch is invalid"
	if out.AllValid() {
		verdict = "batch is valid"
	}
	fmt.Printf("%-30s %-30s %-30s\n", verdict, fmt.Sprintf("%d signatures", out.Count()), duration)
	for i := 0; i < guest.NumWords; i++ {
		fmt.Printf("%-30s 0x%08x\n", fmt.Sprintf("word %d", i), out.Word(i))
	}
	commitment := out.Commitment()
	fmt.Printf("%-30s %x\n", "statement commitment", commitment[:])
}
