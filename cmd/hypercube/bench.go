// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/consensys/hypercube/host"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:     "bench",
	Short:   "samples guest verification wall times over generated batches",
	Run:     cmdBench,
	Version: buildString(),
}

var (
	fIterations  uint
	fProcs       int
	fSamplesPath string
	fReportPath  string
)

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.PersistentFlags().StringVar(&fHashName, "hash", "SHA2_256", "specifies the hash function for chains and trees")
	benchCmd.PersistentFlags().StringVar(&fPresetName, "preset", "SHA256_H18_W4", "specifies the parameter set")
	benchCmd.PersistentFlags().UintVar(&fK, "k", 4, "specifies the number of signatures per batch")
	benchCmd.PersistentFlags().UintVar(&fIterations, "iterations", 20, "specifies the number of guest executions to sample")
	benchCmd.PersistentFlags().IntVar(&fProcs, "procs", runtime.NumCPU(), "specifies the number of concurrent executions")
	benchCmd.PersistentFlags().StringVar(&fSamplesPath, "samples", "", "persists the raw samples to the given path")
	benchCmd.PersistentFlags().StringVar(&fReportPath, "report", "", "renders an HTML report to the given path")
}

func cmdBench(cmd *cobra.Command, args []string) {
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

	result, err := host.RunBench(host.BenchConfig{
		Hash:       h,
		Params:     preset.Params(),
		K:          int(fK),
		Iterations: int(fIterations),
		Procs:      fProcs,
	})
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	fmt.Printf("%-30s %-30s %d iterations, %d procs\n", "benchmark", fmt.Sprintf("k=%d %s", fK, fPresetName), fIterations, fProcs)
	fmt.Printf("%-30s %-30s\n", "min", time.Duration(result.Min()))
	fmt.Printf("%-30s %-30s\n", "median", time.Duration(result.Median()))
	fmt.Printf("%-30s %-30s\n", "mean", time.Duration(result.Mean()))
	fmt.Printf("%-30s %-30s\n", "max", time.Duration(result.Max()))

	if fSamplesPath != "" {
		if err := result.SaveSamples(fSamplesPath); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		fmt.Printf("%-30s %s\n", "wrote samples", fSamplesPath)
	}
	if fReportPath != "" {
		if err := host.WriteReport(fReportPath, []*host.BenchResult{result}); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		fmt.Printf("%-30s %s\n", "wrote report", fReportPath)
	}
}
