// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders benchmark results as a Markdown document.
//
// A report has, in order: one comparison table per sequential
// operation, each followed by a performance analysis per size
// category; one table per parallel algorithm; optionally a gallery of
// thread scaling charts; and a notes section.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sparsebench/critreport/benchfmt"
	"github.com/sparsebench/critreport/benchtab"
	"github.com/sparsebench/critreport/benchunit"
	"github.com/sparsebench/critreport/chart"
	"github.com/sparsebench/critreport/internal/texttab"
)

// Missing is the placeholder for a cell with no result.
const Missing = "—"

// Options configures a report.
type Options struct {
	// Gallery enables the thread scaling plots section.
	Gallery bool

	// Figures is the charts to show in the gallery.
	Figures []chart.Figure

	// FigureDir is the path of the figures directory relative to
	// the report, as used in image links.
	FigureDir string

	// SysInfo, if not empty, is included verbatim in a System
	// Information section.
	SysInfo string
}

// Write renders results to w.
func Write(w io.Writer, results []*benchfmt.Result, opts Options) error {
	var buf bytes.Buffer

	var sections int
	section := func() {
		if sections > 0 {
			buf.WriteString("\n")
		}
		sections++
	}

	for _, t := range benchtab.Sequential(results) {
		section()
		if err := writeSequential(&buf, t); err != nil {
			return err
		}
		section()
		writeAnalysis(&buf, t)
	}
	for _, t := range benchtab.Parallel(results) {
		section()
		if err := writeParallel(&buf, t); err != nil {
			return err
		}
	}
	if opts.Gallery {
		section()
		if err := writeGallery(&buf, results, opts); err != nil {
			return err
		}
	}
	section()
	writeNotes(&buf, opts)

	_, err := w.Write(buf.Bytes())
	return err
}

var seqTitles = map[string]string{
	benchfmt.OpSparseDense: "Sequential Sparse-Dense Matrix-Vector Multiplication Benchmark Results",
	benchfmt.OpDenseSparse: "Sequential Dense-Sparse Matrix-Vector Multiplication Benchmark Results",
	benchfmt.OpMatVec:      "Sequential Sparse Matrix-Vector Multiplication Benchmark Results",
}

func seqTitle(op string) string {
	if t, ok := seqTitles[op]; ok {
		return t
	}
	return "Sequential " + texttab.Title(op, "-") + " Benchmark Results"
}

// nnzPrinter groups digits in non-zero counts.
var nnzPrinter = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators, such as 1,394,367.
func FormatCount(n int) string {
	return nnzPrinter.Sprintf("%d", n)
}

func newTable(extra ...string) *texttab.Table {
	t := new(texttab.Table)
	t.Row().Cells("Matrix", "Dimensions", "Non-zeros").Cells(extra...)
	t.SetAlign(2, texttab.Right)
	for i := range extra {
		t.SetAlign(3+i, texttab.Right)
	}
	return t
}

func rowHeader[K int | string](t *texttab.Table, r *benchtab.Row[K]) {
	t.Row().Cells("**"+escapeCell(r.Case)+"**", r.Dims, FormatCount(r.NNZ))
}

// escapeCell escapes the pipes in s so that it stays in one table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatSpread formats a median and its deviation in the median's
// unit, such as "61.94 ± 1.19 µs".
func formatSpread(res *benchfmt.Result) string {
	s := benchunit.TimeScale(res.Median)
	return s.Format(res.Median) + " ± " + s.FormatUnit(res.Deviation())
}

func writeSequential(w *bytes.Buffer, t *benchtab.Table[string]) error {
	fmt.Fprintf(w, "# %s\n\n", seqTitle(t.Op))
	tab := newTable(t.Cols...)
	for _, r := range t.Rows {
		rowHeader(tab, r)
		for _, col := range t.Cols {
			if res, ok := r.Cell(col); ok {
				tab.Cell(formatSpread(res))
			} else {
				tab.Cell(Missing)
			}
		}
	}
	return tab.Format(w)
}

func writeAnalysis(w *bytes.Buffer, t *benchtab.Table[string]) {
	fmt.Fprintf(w, "## Performance Analysis\n")
	for _, s := range t.Summarize() {
		fmt.Fprintf(w, "\n### %s Matrices\n\n", s.Category)
		for _, r := range s.Rows {
			win := r.Winner()
			best := benchunit.FormatTime(r.Cells[win].Median)
			slow := r.Slowdowns()
			if len(slow) == 0 {
				fmt.Fprintf(w, "- **%s**: %s only implementation (%s)\n", r.Case, win, best)
				continue
			}
			var parts []string
			for _, sd := range slow {
				// A zero winning time has no meaningful ratio.
				if math.IsNaN(sd.Ratio) || math.IsInf(sd.Ratio, 0) {
					continue
				}
				parts = append(parts, sd.String())
			}
			if len(parts) == 0 {
				fmt.Fprintf(w, "- **%s**: %s wins (%s)\n", r.Case, win, best)
				continue
			}
			fmt.Fprintf(w, "- **%s**: %s wins (%s), %s\n", r.Case, win, best, strings.Join(parts, ", "))
		}
		fmt.Fprintf(w, "\n**%s category winner**: %s (%d/%d matrices)\n", s.Category, s.Winner, s.Wins, len(s.Rows))
		if len(s.GeoMean) > 0 {
			parts := make([]string, len(s.GeoMean))
			for i, gm := range s.GeoMean {
				parts[i] = fmt.Sprintf("%s %.2fx", gm.Key, gm.Ratio)
			}
			fmt.Fprintf(w, "\n**Geometric mean slowdown**: %s\n", strings.Join(parts, ", "))
		}
	}
}

func threadHeader(n int) string {
	if n == 1 {
		return "1 Thread"
	}
	return fmt.Sprintf("%d Threads", n)
}

func writeParallel(w *bytes.Buffer, t *benchtab.Table[int]) error {
	fmt.Fprintf(w, "# Parallel Thread Scaling Results - %s Multiplication (%s)\n\n",
		texttab.Title(t.Op, "-"), texttab.Title(t.Algorithm, " "))
	var hdr []string
	for _, n := range t.Cols {
		hdr = append(hdr, threadHeader(n))
	}
	tab := newTable(hdr...)
	for _, r := range t.Rows {
		rowHeader(tab, r)
		for _, n := range t.Cols {
			if res, ok := r.Cell(n); ok {
				tab.Cell(benchunit.FormatTime(res.Median))
			} else {
				tab.Cell(Missing)
			}
		}
	}
	return tab.Format(w)
}

func writeNotes(w *bytes.Buffer, opts Options) {
	fmt.Fprintf(w, "## Notes\n\n")
	notes := []string{
		"Times shown are median ± approximate standard deviation from Criterion benchmarks",
		"The deviation is a quarter of the width of the confidence interval of the median",
		"`faer` = faer built-in sequential sparse-dense matrix-vector multiplication",
		"`nalgebra` = nalgebra-sparse CSC matrix-vector multiplication",
		"`sprs` = sprs CSC matrix-vector multiplication",
		"`simple`, `merge`, `buffer_foreign` = different parallel sparse-dense algorithms",
		"`dense_sparse` = parallel dense-sparse matrix-vector multiplication implementation",
		"Thread scaling shows parallel implementation performance across different thread counts",
		"All measurements taken on the same system with consistent methodology",
	}
	if opts.Gallery {
		notes = append(notes, "Plots show thread scaling with 95% confidence intervals and sequential baselines")
	}
	for _, n := range notes {
		fmt.Fprintf(w, "- %s\n", n)
	}
	if opts.SysInfo != "" {
		fmt.Fprintf(w, "\n## System Information\n\n```\n%s\n```\n", strings.TrimSpace(opts.SysInfo))
	}
}
