package prefixcode

import (
	"strconv"
	"strings"
)

// Report collects the quality metrics of one code for one distribution.
type Report struct {
	Entropy       float64
	AverageLength float64
	Redundancy    float64
	KraftSum      float64

	// Warnings holds every ComputationWarning raised while computing the
	// metrics.  It is empty for a valid prefix code.
	Warnings []*ComputationWarning
}

// Evaluate computes all four metrics of t against d.
func Evaluate(d Distribution, t CodeTable) (*Report, error) {
	h, err := Entropy(d)
	if err != nil {
		return nil, err
	}
	avg, err := AverageLength(d, t)
	if err != nil {
		return nil, err
	}
	k, kraftWarning, err := KraftSum(t)
	if err != nil {
		return nil, err
	}
	r, redundancyWarning := Redundancy(avg, h)

	report := &Report{
		Entropy:       h,
		AverageLength: avg,
		Redundancy:    r,
		KraftSum:      k,
	}
	if kraftWarning != nil {
		report.Warnings = append(report.Warnings, kraftWarning)
	}
	if redundancyWarning != nil {
		report.Warnings = append(report.Warnings, redundancyWarning)
	}
	return report, nil
}

// Valid reports whether no warnings were raised.
func (r *Report) Valid() bool {
	return len(r.Warnings) == 0
}

// Efficiency returns H/L, the fraction of each coded bit that carries
// information.  It is 1 for an optimal code on a dyadic distribution.
func (r *Report) Efficiency() float64 {
	if r.AverageLength == 0 {
		return 0
	}
	return r.Entropy / r.AverageLength
}

// Formula is the textual derivation of one metric: the general formula,
// the formula expanded over the symbols, and the expansion with the
// numbers substituted in.
type Formula struct {
	Name        string
	General     string
	Expanded    string
	Substituted string
	Value       float64
}

// Formulas renders the derivation of each metric in r, rounding the
// substituted probabilities to the given number of digits.  The entropy
// and average-length terms follow the order of d; the Kraft terms follow
// t.Symbols().  Redundancy has no expanded form.
func (r *Report) Formulas(d Distribution, t CodeTable, digits int) []Formula {
	ff := func(x float64) string {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}

	var hExp, hSub, lExp, lSub, kExp, kSub []string
	for _, e := range d {
		sym, p := string(e.Symbol), ff(e.Probability)
		if e.Probability > 0 {
			hExp = append(hExp, "p("+sym+")*log2(p("+sym+"))")
			hSub = append(hSub, p+"*log2("+p+")")
		}
		lExp = append(lExp, "p("+sym+")*L("+sym+")")
		lSub = append(lSub, p+"*"+strconv.Itoa(t[e.Symbol].Len()))
	}
	for _, sym := range t.Symbols() {
		kExp = append(kExp, "2^(-L("+string(sym)+"))")
		kSub = append(kSub, "2^(-"+strconv.Itoa(t[sym].Len())+")")
	}

	return []Formula{
		{
			Name:        "H",
			General:     "H(Z) = -Sum [ p(zi) * log2(p(zi)) ]",
			Expanded:    "H(Z) = -[ " + strings.Join(hExp, " + ") + " ]",
			Substituted: "H(Z) = -[ " + strings.Join(hSub, " + ") + " ]",
			Value:       r.Entropy,
		},
		{
			Name:        "L_avg",
			General:     "L_avg = Sum [ p(zi) * L(zi) ]",
			Expanded:    "L_avg = " + strings.Join(lExp, " + "),
			Substituted: "L_avg = " + strings.Join(lSub, " + "),
			Value:       r.AverageLength,
		},
		{
			Name:        "r",
			General:     "r = L_avg - H",
			Substituted: "r = " + ff(r.AverageLength) + " - " + ff(r.Entropy),
			Value:       r.Redundancy,
		},
		{
			Name:        "K",
			General:     "K = Sum [ 2^(-L(zi)) ]",
			Expanded:    "K = " + strings.Join(kExp, " + "),
			Substituted: "K = " + strings.Join(kSub, " + "),
			Value:       r.KraftSum,
		},
	}
}
