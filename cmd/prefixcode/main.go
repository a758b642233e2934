// Command prefixcode builds Huffman and Shannon-Fano codes for a set of
// symbol probabilities and reports how close they come to the entropy.
//
// Probabilities come from a file (or stdin), an interactive prompt, or the
// random generator:
//
//	prefixcode -in probs.txt
//	prefixcode -i -alg shannon-fano
//	prefixcode -generate 50 -method dirichlet -seed 7 -both -dot out/
//
// An input file holds one entry per line, either "symbol probability" or a
// bare probability, in which case the symbol is named z1, z2, ... in order.
// A file whose first non-blank character is '{' is read as a JSON object
// mapping symbols to probabilities.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chronos-tachyon/prefixcode"
)

type options struct {
	alg         prefixcode.Algorithm
	both        bool
	in          string
	interactive bool
	generate    int
	genOpts     prefixcode.GenerateOptions
	dotDir      string
	dotStyle    prefixcode.DOTStyle
	save        string
	canonical   bool
	digits      int
	logLevel    logrus.Level
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	err := run(os.Args[1:], os.Stdin, os.Stdout, logger)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		logger.WithError(err).Error("prefixcode failed")
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{
		alg:      prefixcode.Huffman,
		genOpts:  prefixcode.DefaultGenerateOptions(),
		dotStyle: prefixcode.DOTClassic,
		digits:   3,
		logLevel: logrus.InfoLevel,
	}

	fs := flag.NewFlagSet("prefixcode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.TextVar(&opts.alg, "alg", opts.alg, "tree builder: huffman or shannon-fano")
	fs.BoolVar(&opts.both, "both", false, "run every algorithm and compare them")
	fs.StringVar(&opts.in, "in", "-", "probability file, or - for stdin")
	fs.BoolVar(&opts.interactive, "i", false, "prompt for probabilities; enter -1 to finish")
	fs.IntVar(&opts.generate, "generate", 0, "generate this many random probabilities instead of reading them")
	fs.TextVar(&opts.genOpts.Method, "method", opts.genOpts.Method, "generator method: uniform, exponential, dirichlet or loguniform")
	fs.IntVar(&opts.genOpts.Decimals, "decimals", opts.genOpts.Decimals, "generator rounding, in decimal places")
	fs.Float64Var(&opts.genOpts.MinProb, "min-prob", opts.genOpts.MinProb, "generator floor for every probability")
	fs.Uint64Var(&opts.genOpts.Seed, "seed", opts.genOpts.Seed, "generator seed")
	fs.StringVar(&opts.dotDir, "dot", "", "write a Graphviz file per tree into this directory")
	fs.TextVar(&opts.dotStyle, "dot-style", opts.dotStyle, "diagram layout: classic or scheme")
	fs.StringVar(&opts.save, "save", "", "save the code table; a .json suffix selects JSON, anything else the binary format")
	fs.BoolVar(&opts.canonical, "canonical", false, "renumber saved tables into canonical form")
	fs.IntVar(&opts.digits, "digits", opts.digits, "decimal places in printed values")
	fs.TextVar(&opts.logLevel, "log-level", opts.logLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	if opts.digits < 0 || opts.digits > 17 {
		return nil, fmt.Errorf("-digits %d outside 0..17", opts.digits)
	}
	if opts.interactive && opts.generate != 0 {
		return nil, errors.New("-i and -generate are mutually exclusive")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *logrus.Logger) error {
	opts, err := parseFlags(args, logger.Out)
	if err != nil {
		return err
	}
	logger.SetLevel(opts.logLevel)

	d, err := loadDistribution(opts, stdin, stdout, logger)
	if err != nil {
		return err
	}
	checkSum(d, stdout, logger)
	renderProbabilities(stdout, d)

	algs := []prefixcode.Algorithm{opts.alg}
	if opts.both {
		algs = prefixcode.Algorithms
	}

	dz, err := prefixcode.NewDesigner(len(algs), logger)
	if err != nil {
		return err
	}

	results := make([]*prefixcode.Result, 0, len(algs))
	for _, alg := range algs {
		result, err := dz.Design(alg, d)
		if err != nil {
			return fmt.Errorf("%v: %w", alg, err)
		}
		if _, err := prefixcode.NewDecoder(result.Codes); err != nil {
			return fmt.Errorf("%v: generated code is not decodable: %w", alg, err)
		}
		results = append(results, result)

		renderResult(stdout, d, result, opts.digits)

		if opts.dotDir != "" {
			if err := writeDOTFile(opts.dotDir, result, opts.dotStyle, logger); err != nil {
				return err
			}
		}
		if opts.save != "" {
			path := opts.save
			if len(algs) > 1 {
				path = withSuffix(path, "-"+alg.String())
			}
			if err := saveTable(path, result.Codes, opts.canonical, logger); err != nil {
				return err
			}
		}
	}
	if len(results) > 1 {
		renderComparison(stdout, results, opts.digits)
	}
	return nil
}

func loadDistribution(opts *options, stdin io.Reader, stdout io.Writer, logger *logrus.Logger) (prefixcode.Distribution, error) {
	switch {
	case opts.generate != 0:
		d, err := prefixcode.Generate(opts.generate, opts.genOpts)
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"symbols":  len(d),
			"method":   opts.genOpts.Method,
			"decimals": opts.genOpts.Decimals,
			"seed":     opts.genOpts.Seed,
		}).Info("generated probabilities")
		return d, nil

	case opts.interactive:
		return promptProbabilities(stdin, stdout)

	case opts.in == "-" || opts.in == "":
		return readProbabilities(stdin)

	default:
		f, err := os.Open(opts.in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		d, err := readProbabilities(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.in, err)
		}
		logger.WithField("file", opts.in).Debugf("read %d probabilities", len(d))
		return d, nil
	}
}

func checkSum(d prefixcode.Distribution, stdout io.Writer, logger *logrus.Logger) {
	sum := d.Sum()
	if sum > 1-prefixcode.Tolerance && sum < 1+prefixcode.Tolerance {
		fmt.Fprintf(stdout, "Sum of probabilities: %.4f (ok)\n", sum)
		return
	}
	fmt.Fprintf(stdout, "Sum of probabilities: %.4f (does not equal 1.0)\n", sum)
	logger.WithField("sum", sum).Warn("probabilities do not sum to 1")
}

func writeDOTFile(dir string, result *prefixcode.Result, style prefixcode.DOTStyle, logger *logrus.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, result.Algorithm.String()+".dot")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := prefixcode.WriteDOT(f, result.Tree, style); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"file": path, "style": style}).Info("wrote diagram")
	return nil
}

func saveTable(path string, t prefixcode.CodeTable, canonical bool, logger *logrus.Logger) error {
	if canonical {
		var err error
		if t, err = prefixcode.Canonicalize(t); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = writeJSON(f, t)
	} else {
		_, err = t.WriteTo(f)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"file":        path,
		"symbols":     len(t),
		"fingerprint": fmt.Sprintf("%016x", t.Fingerprint()),
	}).Info("saved code table")
	return nil
}

// withSuffix inserts suffix before the extension of path.
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
