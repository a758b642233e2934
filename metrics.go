package prefixcode

import (
	"fmt"
	"math"
)

// Tolerance is the slack allowed for floating-point error when checking the
// Kraft sum against 1 and the redundancy against 0.
const Tolerance = 1e-9

// Entropy returns the Shannon entropy H = -Σ p·log2(p) of d, in bits per
// symbol.  Zero probabilities contribute nothing.
func Entropy(d Distribution) (float64, error) {
	if err := checkProbabilities(d); err != nil {
		return 0, err
	}
	var h float64
	for _, e := range d {
		if e.Probability > 0 {
			h -= e.Probability * math.Log2(e.Probability)
		}
	}
	return h, nil
}

// AverageLength returns L = Σ p·len(code), the expected number of bits per
// symbol when d is coded with t.  Every symbol of d must have a codeword
// in t; otherwise a *MissingCodeError is returned.
func AverageLength(d Distribution, t CodeTable) (float64, error) {
	if err := checkProbabilities(d); err != nil {
		return 0, err
	}
	var avg float64
	for _, e := range d {
		cw, found := t[e.Symbol]
		if !found {
			return 0, &MissingCodeError{Symbol: e.Symbol}
		}
		avg += e.Probability * float64(cw.Len())
	}
	return avg, nil
}

// Redundancy returns r = avg - entropy.  No prefix code can have an average
// length below the entropy, so a result below -Tolerance comes back with a
// WarnNegativeRedundancy warning.
func Redundancy(avg, entropy float64) (float64, *ComputationWarning) {
	r := avg - entropy
	if r < -Tolerance {
		return r, &ComputationWarning{Kind: WarnNegativeRedundancy, Value: r, Limit: -Tolerance}
	}
	return r, nil
}

// KraftSum returns K = Σ 2^(-len(code)) over t.  A prefix code always has
// K <= 1, so a sum above 1+Tolerance comes back with a WarnKraftExceeded
// warning.  An empty table or a malformed codeword is an error.
func KraftSum(t CodeTable) (float64, *ComputationWarning, error) {
	if len(t) == 0 {
		return 0, nil, fmt.Errorf("empty code table: %w", ErrInvalidInput)
	}
	var k float64
	for _, sym := range t.Symbols() {
		cw := t[sym]
		if err := cw.Validate(); err != nil {
			return 0, nil, fmt.Errorf("symbol %q: %w", sym, err)
		}
		k += math.Ldexp(1, -cw.Len())
	}
	if k > 1+Tolerance {
		return k, &ComputationWarning{Kind: WarnKraftExceeded, Value: k, Limit: 1 + Tolerance}, nil
	}
	return k, nil, nil
}

// checkProbabilities rejects an empty set and any probability that is
// negative, above 1, or not a number.  Unlike Distribution.Validate, it
// lets zero through.
func checkProbabilities(d Distribution) error {
	if len(d) == 0 {
		return fmt.Errorf("empty probability set: %w", ErrInvalidInput)
	}
	for _, e := range d {
		if !(e.Probability >= 0 && e.Probability <= 1) {
			return fmt.Errorf("probability %v for symbol %q is outside [0,1]: %w", e.Probability, e.Symbol, ErrInvalidInput)
		}
	}
	return nil
}
