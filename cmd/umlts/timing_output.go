package main

import (
	"fmt"
	"io"

	"umlts/internal/observ"
)

func printTimings(out io.Writer, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	fmt.Fprintf(out, "timings: total %.1f ms\n", report.TotalMS)
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			line += fmt.Sprintf(" ×%d", p.Count)
		}
		if p.Note != "" {
			line += "  (" + p.Note + ")"
		}
		fmt.Fprintln(out, line)
	}
}
