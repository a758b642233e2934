package prefixcode

import (
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Algorithm selects a tree builder.
type Algorithm byte

const (
	// Huffman selects BuildHuffman.
	Huffman Algorithm = iota

	// ShannonFano selects BuildShannonFano.
	ShannonFano
)

var algorithmNames = []string{"huffman", "shannon-fano"}

// Algorithms lists every Algorithm.
var Algorithms = []Algorithm{Huffman, ShannonFano}

// String returns the string representation of this Algorithm.
func (alg Algorithm) String() string {
	if int(alg) < len(algorithmNames) {
		return algorithmNames[alg]
	}
	return fmt.Sprintf("Algorithm(%d)", byte(alg))
}

// MarshalText fulfills encoding.TextMarshaler.
func (alg Algorithm) MarshalText() ([]byte, error) {
	return []byte(alg.String()), nil
}

// UnmarshalText fulfills encoding.TextUnmarshaler.
func (alg *Algorithm) UnmarshalText(text []byte) error {
	for index, name := range algorithmNames {
		if string(text) == name {
			*alg = Algorithm(index)
			return nil
		}
	}
	return fmt.Errorf("unknown algorithm %q, expected one of %q: %w", text, algorithmNames, ErrInvalidInput)
}

// Build runs the builder selected by alg.
func Build(alg Algorithm, d Distribution) (*Node, error) {
	switch alg {
	case Huffman:
		return BuildHuffman(d)
	case ShannonFano:
		return BuildShannonFano(d)
	default:
		return nil, fmt.Errorf("unknown algorithm %v: %w", alg, ErrInvalidInput)
	}
}

// Result is the outcome of one full pipeline run.  A Result is shared by
// every caller that asks Designer for the same input, so none of its parts
// may be modified.
type Result struct {
	Algorithm Algorithm
	Tree      *Node
	Codes     CodeTable
	Report    *Report
}

// Design builds a tree with alg, generates its codes and evaluates them
// against d.  An empty distribution is rejected.
func Design(alg Algorithm, d Distribution) (*Result, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("empty probability set: %w", ErrInvalidInput)
	}
	tree, err := Build(alg, d)
	if err != nil {
		return nil, err
	}
	codes, err := GenerateCodes(tree)
	if err != nil {
		return nil, err
	}
	report, err := Evaluate(d, codes)
	if err != nil {
		return nil, err
	}
	return &Result{
		Algorithm: alg,
		Tree:      tree,
		Codes:     codes,
		Report:    report,
	}, nil
}

type designKey struct {
	alg         Algorithm
	fingerprint uint64
}

// Designer runs Design and remembers the most recent results, keyed by
// algorithm and Distribution.Fingerprint.  It is safe for concurrent use.
type Designer struct {
	cache *lru.Cache[designKey, *Result]
	log   *logrus.Logger
}

// NewDesigner returns a Designer that caches up to size results.  A nil
// logger discards all log output.
func NewDesigner(size int, logger *logrus.Logger) (*Designer, error) {
	cache, err := lru.New[designKey, *Result](size)
	if err != nil {
		return nil, fmt.Errorf("cache size %d: %w", size, ErrInvalidInput)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Designer{cache: cache, log: logger}, nil
}

// Design is like the package-level Design, but returns a cached Result
// when the same algorithm has already run on an identical distribution.
func (dz *Designer) Design(alg Algorithm, d Distribution) (*Result, error) {
	key := designKey{alg, d.Fingerprint()}
	entry := dz.log.WithFields(logrus.Fields{
		"algorithm":   alg,
		"symbols":     len(d),
		"fingerprint": fmt.Sprintf("%016x", key.fingerprint),
	})

	if result, found := dz.cache.Get(key); found {
		entry.Debug("design cache hit")
		return result, nil
	}

	result, err := Design(alg, d)
	if err != nil {
		entry.WithError(err).Error("design failed")
		return nil, err
	}
	for _, w := range result.Report.Warnings {
		entry.WithField("kind", w.Kind).Warn(w.Error())
	}
	entry.WithFields(logrus.Fields{
		"entropy":        result.Report.Entropy,
		"average_length": result.Report.AverageLength,
	}).Debug("design cache miss")

	dz.cache.Add(key, result)
	return result, nil
}

// Len returns the number of cached results.
func (dz *Designer) Len() int {
	return dz.cache.Len()
}

// Purge drops every cached result.
func (dz *Designer) Purge() {
	dz.cache.Purge()
}
