// Copyright 2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package host

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteReport renders the benchmark results as a standalone HTML page: one
// line chart of per-iteration guest wall times per batch size, and one bar
// chart of the summary statistics.
func WriteReport(path string, results []*BenchResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Guest verification wall time",
			Subtitle: "per iteration, nanoseconds",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	xAxis := make([]int, len(results[0].Samples))
	for i := range xAxis {
		xAxis[i] = i
	}
	line.SetXAxis(xAxis)
	for _, r := range results {
		data := make([]opts.LineData, len(r.Samples))
		for i, s := range r.Samples {
			data[i] = opts.LineData{Value: s}
		}
		line.AddSeries(fmt.Sprintf("k=%d", r.K), data)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Summary statistics",
			Subtitle: "nanoseconds",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	labels := make([]string, len(results))
	mins := make([]opts.BarData, len(results))
	medians := make([]opts.BarData, len(results))
	means := make([]opts.BarData, len(results))
	maxs := make([]opts.BarData, len(results))
	for i, r := range results {
		labels[i] = fmt.Sprintf("k=%d", r.K)
		mins[i] = opts.BarData{Value: r.Min()}
		medians[i] = opts.BarData{Value: r.Median()}
		means[i] = opts.BarData{Value: r.Mean()}
		maxs[i] = opts.BarData{Value: r.Max()}
	}
	bar.SetXAxis(labels).
		AddSeries("min", mins).
		AddSeries("median", medians).
		AddSeries("mean", means).
		AddSeries("max", maxs)

	page := components.NewPage().SetPageTitle("hypercube benchmark")
	page.AddCharts(line, bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
