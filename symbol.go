package prefixcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// Symbol represents a symbol in an arbitrary alphabet.  The empty string is
// not a valid symbol.
type Symbol string

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol("")

// Entry pairs a Symbol with its probability.
type Entry struct {
	Symbol      Symbol
	Probability float64
}

// Distribution is an ordered mapping from Symbol to probability.  The order
// of the entries is the insertion order, which the builders use to break
// ties between equal probabilities.
type Distribution []Entry

// FromMap converts a map into a Distribution ordered by CompareSymbols, so
// that "z2" sorts before "z10".
func FromMap(m map[Symbol]float64) Distribution {
	d := make(Distribution, 0, len(m))
	for sym, p := range m {
		d = append(d, Entry{sym, p})
	}
	slices.SortFunc(d, func(a, b Entry) int {
		return CompareSymbols(a.Symbol, b.Symbol)
	})
	return d
}

// Validate checks that d is non-empty, that every symbol is non-empty and
// unique, and that every probability lies in (0,1].  It does not check that
// the probabilities sum to 1.
func (d Distribution) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("empty probability set: %w", ErrInvalidInput)
	}
	seen := make(map[Symbol]struct{}, len(d))
	for index, e := range d {
		if e.Symbol == InvalidSymbol {
			return fmt.Errorf("entry %d has an empty symbol: %w", index, ErrInvalidInput)
		}
		if _, found := seen[e.Symbol]; found {
			return fmt.Errorf("duplicate symbol %q: %w", e.Symbol, ErrInvalidInput)
		}
		seen[e.Symbol] = struct{}{}
		if !(e.Probability > 0 && e.Probability <= 1) {
			return fmt.Errorf("probability %v for symbol %q is outside (0,1]: %w", e.Probability, e.Symbol, ErrInvalidInput)
		}
	}
	return nil
}

// Sum returns the total probability mass of d.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, e := range d {
		sum += e.Probability
	}
	return sum
}

// Map returns the contents of d as a map.
func (d Distribution) Map() map[Symbol]float64 {
	out := make(map[Symbol]float64, len(d))
	for _, e := range d {
		out[e.Symbol] = e.Probability
	}
	return out
}

// Fingerprint returns a 64-bit hash of the entries of d, in order.  Two
// Distributions with the same fingerprint are, for all practical purposes,
// identical inputs to the builders.
func (d Distribution) Fingerprint() uint64 {
	var scratch [8]byte
	h := xxhash.New()
	for _, e := range d {
		_, _ = h.WriteString(string(e.Symbol))
		_, _ = h.Write([]byte{0})
		putUint64(scratch[:], math.Float64bits(e.Probability))
		_, _ = h.Write(scratch[:])
	}
	return h.Sum64()
}

// CompareSymbols orders symbols "naturally": runs of decimal digits compare
// by numeric value, everything else compares bytewise.  It returns -1, 0 or
// +1.
func CompareSymbols(a, b Symbol) int {
	x, y := string(a), string(b)
	for x != "" && y != "" {
		if isDigit(x[0]) && isDigit(y[0]) {
			xd, xr := splitDigits(x)
			yd, yr := splitDigits(y)
			tx := strings.TrimLeft(xd, "0")
			ty := strings.TrimLeft(yd, "0")
			if len(tx) != len(ty) {
				return sign(len(tx) - len(ty))
			}
			if c := strings.Compare(tx, ty); c != 0 {
				return c
			}
			if len(xd) != len(yd) {
				return sign(len(xd) - len(yd))
			}
			x, y = xr, yr
			continue
		}
		if x[0] != y[0] {
			if x[0] < y[0] {
				return -1
			}
			return 1
		}
		x, y = x[1:], y[1:]
	}
	return sign(len(x) - len(y))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func splitDigits(s string) (digits string, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
