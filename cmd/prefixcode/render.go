package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/exp/slices"

	"github.com/chronos-tachyon/prefixcode"
)

const probColumns = 5

// renderProbabilities prints d as a wide table, probColumns symbols per
// row, each symbol above its probability.
func renderProbabilities(w io.Writer, d prefixcode.Distribution) {
	fmt.Fprintln(w, "Input probabilities:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for start := 0; start < len(d); start += probColumns {
		end := start + probColumns
		if end > len(d) {
			end = len(d)
		}
		var syms, probs strings.Builder
		for _, e := range d[start:end] {
			fmt.Fprintf(&syms, "%s\t", e.Symbol)
			fmt.Fprintf(&probs, "%.4f\t", e.Probability)
		}
		fmt.Fprintln(tw, syms.String())
		fmt.Fprintln(tw, probs.String())
	}
	_ = tw.Flush()
}

func renderResult(w io.Writer, d prefixcode.Distribution, result *prefixcode.Result, digits int) {
	fmt.Fprintf(w, "\n== %s ==\n", result.Algorithm)

	report := result.Report
	units := map[string]string{"H": "bits", "L_avg": "bits/symbol", "r": "bits", "K": ""}
	for _, f := range report.Formulas(d, result.Codes, digits) {
		fmt.Fprintf(w, "\n[%s]\n", f.Name)
		fmt.Fprintf(w, "  %s\n", f.General)
		if f.Expanded != "" {
			fmt.Fprintf(w, "  %s\n", f.Expanded)
		}
		fmt.Fprintf(w, "  %s\n", f.Substituted)
		fmt.Fprintf(w, "  %s = %s %s| raw: %v\n", f.Name, strconv.FormatFloat(f.Value, 'f', digits, 64), unitSuffix(units[f.Name]), f.Value)
	}
	if report.KraftSum <= 1+prefixcode.Tolerance {
		fmt.Fprintln(w, "  K <= 1: the code is uniquely decodable.")
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "  WARNING: %v\n", warning)
	}
	fmt.Fprintf(w, "  efficiency H/L_avg = %s\n", strconv.FormatFloat(report.Efficiency(), 'f', digits, 64))

	byProb := symbolsOf(d)
	p := d.Map()
	slices.SortStableFunc(byProb, func(a, b prefixcode.Symbol) int {
		switch {
		case p[a] > p[b]:
			return -1
		case p[a] < p[b]:
			return 1
		default:
			return 0
		}
	})
	fmt.Fprintln(w, "\nCodes (sorted by P descending):")
	renderCodes(w, p, result.Codes, byProb, digits)

	bySym := symbolsOf(d)
	slices.SortFunc(bySym, prefixcode.CompareSymbols)
	fmt.Fprintln(w, "\nCodes (sorted by symbol ascending):")
	renderCodes(w, p, result.Codes, bySym, digits)
}

func renderCodes(w io.Writer, p map[prefixcode.Symbol]float64, t prefixcode.CodeTable, order []prefixcode.Symbol, digits int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "symbol\tp\tcodeword\tlength\t")
	for _, sym := range order {
		cw := t[sym]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", sym, strconv.FormatFloat(p[sym], 'f', digits, 64), string(cw), cw.Len())
	}
	_ = tw.Flush()
}

func renderComparison(w io.Writer, results []*prefixcode.Result, digits int) {
	ff := func(x float64) string {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}
	fmt.Fprintln(w, "\nComparison:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "algorithm\tH\tL_avg\tr\tK\tmax length\t")
	best := math.Inf(1)
	for _, result := range results {
		r := result.Report
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t\n", result.Algorithm, ff(r.Entropy), ff(r.AverageLength), ff(r.Redundancy), ff(r.KraftSum), result.Codes.MaxSize())
		if r.AverageLength < best {
			best = r.AverageLength
		}
	}
	_ = tw.Flush()
	for _, result := range results {
		if result.Report.AverageLength <= best+prefixcode.Tolerance {
			fmt.Fprintf(w, "shortest average length: %s\n", result.Algorithm)
		}
	}
}

func symbolsOf(d prefixcode.Distribution) []prefixcode.Symbol {
	out := make([]prefixcode.Symbol, len(d))
	for i, e := range d {
		out[i] = e.Symbol
	}
	return out
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return unit + " "
}
