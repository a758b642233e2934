package prefixcode

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"golang.org/x/exp/slices"
)

// GenerateMethod selects how Generate draws its random weights.
type GenerateMethod byte

const (
	// GenerateUniform draws weights uniformly from [0.1, 1).
	GenerateUniform GenerateMethod = iota

	// GenerateExponential draws weights from the standard exponential
	// distribution.
	GenerateExponential

	// GenerateDirichlet draws the whole vector from a symmetric Dirichlet
	// distribution with concentration 1.5.
	GenerateDirichlet

	// GenerateLogUniform draws weights whose base-10 logarithm is uniform
	// on [-3, 0).
	GenerateLogUniform
)

var generateMethodNames = []string{"uniform", "exponential", "dirichlet", "loguniform"}

// String returns the string representation of this GenerateMethod.
func (method GenerateMethod) String() string {
	if int(method) < len(generateMethodNames) {
		return generateMethodNames[method]
	}
	return fmt.Sprintf("GenerateMethod(%d)", byte(method))
}

// MarshalText fulfills encoding.TextMarshaler.
func (method GenerateMethod) MarshalText() ([]byte, error) {
	return []byte(method.String()), nil
}

// UnmarshalText fulfills encoding.TextUnmarshaler.
func (method *GenerateMethod) UnmarshalText(text []byte) error {
	for index, name := range generateMethodNames {
		if string(text) == name {
			*method = GenerateMethod(index)
			return nil
		}
	}
	return fmt.Errorf("unknown generation method %q, expected one of %q: %w", text, generateMethodNames, ErrInvalidInput)
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	// Prefix is prepended to the 1-based index to name each symbol.
	Prefix string

	// MinProb is the floor given to every symbol before the rest of the
	// mass is spread by the random weights.
	MinProb float64

	// Method selects the weight distribution.
	Method GenerateMethod

	// Decimals is the number of decimal places every probability is
	// rounded to, between 1 and 15.
	Decimals int

	// Seed seeds the random source.  Equal seeds give equal output.
	Seed uint64
}

// DefaultGenerateOptions returns the options Generate is usually called
// with: prefix "z", floor 1e-5, uniform weights, 4 decimals.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Prefix:   "z",
		MinProb:  1e-5,
		Method:   GenerateUniform,
		Decimals: 4,
	}
}

// Generate produces a random Distribution of n symbols for stress tests.
//
// Every probability is a multiple of 10^-Decimals and the multiples sum to
// exactly 10^Decimals: the values are floored to the grid and the lost
// units are handed back to the entries with the largest remainders
// (largest remainder method).
//
func Generate(n int, opts GenerateOptions) (Distribution, error) {
	if n <= 0 {
		return nil, fmt.Errorf("symbol count %d must be positive: %w", n, ErrInvalidInput)
	}
	if !(opts.MinProb > 0) {
		return nil, fmt.Errorf("minimum probability %v must be positive: %w", opts.MinProb, ErrInvalidInput)
	}
	if float64(n)*opts.MinProb >= 1 {
		return nil, fmt.Errorf("minimum probability %v too large for %d symbols, max %.10f: %w", opts.MinProb, n, 1/float64(n), ErrInvalidInput)
	}
	if opts.Decimals < 1 || opts.Decimals > 15 {
		return nil, fmt.Errorf("decimals %d outside 1..15: %w", opts.Decimals, ErrInvalidInput)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	// Step 1: draw weights and normalize them to sum to 1.

	weights := make([]float64, n)
	for i := range weights {
		switch opts.Method {
		case GenerateUniform:
			weights[i] = 0.1 + 0.9*rng.Float64()
		case GenerateExponential:
			weights[i] = rng.ExpFloat64() + 1e-9
		case GenerateDirichlet:
			weights[i] = gammaVariate(rng, 1.5)
		case GenerateLogUniform:
			weights[i] = math.Pow(10, -3+3*rng.Float64())
		default:
			return nil, fmt.Errorf("unknown generation method %v: %w", opts.Method, ErrInvalidInput)
		}
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	if !(total > 0) {
		for i := range weights {
			weights[i] = 1
		}
		total = float64(n)
	}

	// Step 2: give each symbol the floor and spread the rest.

	scale := 1 - float64(n)*opts.MinProb
	multiplier := math.Pow(10, float64(opts.Decimals))
	units := make([]int64, n)
	remainders := make([]float64, n)
	var unitSum int64
	for i, w := range weights {
		scaled := (opts.MinProb + w/total*scale) * multiplier
		floored := math.Floor(scaled)
		units[i] = int64(floored)
		remainders[i] = scaled - floored
		unitSum += units[i]
	}

	// Step 3: hand the units lost to flooring back to the largest
	// remainders, or take surplus units from the smallest.

	diff := int64(multiplier) - unitSum
	if diff != 0 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			switch {
			case remainders[a] > remainders[b]:
				return -1
			case remainders[a] < remainders[b]:
				return 1
			default:
				return 0
			}
		})
		if diff > 0 {
			for k := int64(0); k < diff; k++ {
				units[order[k%int64(n)]]++
			}
		} else {
			for k := int64(0); k < -diff; k++ {
				units[order[n-1-int(k%int64(n))]]--
			}
		}
	}

	d := make(Distribution, n)
	for i, u := range units {
		if u <= 0 {
			return nil, fmt.Errorf("symbol %d rounds to zero at %d decimals: %w", i+1, opts.Decimals, ErrInvalidInput)
		}
		d[i] = Entry{
			Symbol:      Symbol(opts.Prefix + strconv.Itoa(i+1)),
			Probability: float64(u) / multiplier,
		}
	}
	return d, nil
}

// gammaVariate draws from Gamma(alpha, 1) for alpha >= 1 using the
// Marsaglia-Tsang method.  Normalizing n such draws gives a Dirichlet
// sample.
func gammaVariate(rng *rand.Rand, alpha float64) float64 {
	d := alpha - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
