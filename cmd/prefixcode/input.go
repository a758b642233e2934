package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/prefixcode"
)

const autoPrefix = "z"

// readProbabilities parses the input file format described in the package
// documentation.  Blank lines and lines starting with '#' are skipped.
func readProbabilities(r io.Reader) (prefixcode.Distribution, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) != 0 && trimmed[0] == '{' {
		return readJSON(trimmed)
	}

	var d prefixcode.Distribution
	sc := bufio.NewScanner(bytes.NewReader(raw))
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		var sym prefixcode.Symbol
		var value string
		switch len(fields) {
		case 1:
			sym = prefixcode.Symbol(autoPrefix + strconv.Itoa(len(d)+1))
			value = fields[0]
		case 2:
			sym = prefixcode.Symbol(fields[0])
			value = fields[1]
		default:
			return nil, fmt.Errorf("line %d: expected \"symbol probability\" or \"probability\", got %q", lineNum, line)
		}

		p, err := parseProbability(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		d = append(d, prefixcode.Entry{Symbol: sym, Probability: p})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func readJSON(raw []byte) (prefixcode.Distribution, error) {
	var m map[prefixcode.Symbol]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	d := prefixcode.FromMap(m)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseProbability(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number, e.g. 0.25: %w", s, prefixcode.ErrInvalidInput)
	}
	if !(p > 0 && p <= 1) {
		return 0, fmt.Errorf("probability %v is outside (0,1]: %w", p, prefixcode.ErrInvalidInput)
	}
	return p, nil
}

// promptProbabilities asks for one probability per symbol, naming the
// symbols z1, z2, ... until the user enters -1.  Bad values are reported
// and asked for again.  End of input finishes like -1 does.
func promptProbabilities(r io.Reader, w io.Writer) (prefixcode.Distribution, error) {
	var d prefixcode.Distribution
	sc := bufio.NewScanner(r)
	fmt.Fprintln(w, "Manual input mode (enter -1 to finish).")
	for {
		sym := prefixcode.Symbol(autoPrefix + strconv.Itoa(len(d)+1))
		fmt.Fprintf(w, "  Probability for %s: ", sym)
		if !sc.Scan() {
			fmt.Fprintln(w)
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "-1" {
			if len(d) == 0 {
				fmt.Fprintln(w, "No probabilities entered yet, try again.")
				continue
			}
			break
		}
		p, err := parseProbability(line)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		d = append(d, prefixcode.Entry{Symbol: sym, Probability: p})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(d) == 0 {
		return nil, errors.New("no probabilities entered")
	}
	return d, nil
}

func writeJSON(w io.Writer, t prefixcode.CodeTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
