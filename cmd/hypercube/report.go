// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/consensys/hypercube/host"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:     "report [k=samples ...]",
	Short:   "renders persisted benchmark samples as an HTML report",
	Run:     cmdReport,
	Version: buildString(),
}

var fOutputPath string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.PersistentFlags().StringVar(&fOutputPath, "out", "report.html", "specifies full path for the HTML report")
}

func cmdReport(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing sample files -- hypercube report -h for help")
		os.Exit(-1)
	}

	results := make([]*host.BenchResult, 0, len(args))
	for _, arg := range args {
		k, path, found := strings.Cut(arg, "=")
		if !found {
			fmt.Printf("malformed argument %q, expected k=path\n", arg)
			os.Exit(-1)
		}
		batchSize, err := strconv.Atoi(k)
		if err != nil || batchSize <= 0 {
			fmt.Printf("malformed batch size in %q\n", arg)
			os.Exit(-1)
		}
		samples, err := host.LoadSamples(path)
		if err != nil {
			fmt.Println("can't load samples:", err)
			os.Exit(-1)
		}
		results = append(results, &host.BenchResult{K: batchSize, Samples: samples})
	}

	if err := host.WriteReport(fOutputPath, results); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "wrote report", fOutputPath)
}
