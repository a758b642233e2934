package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/chronos-tachyon/prefixcode"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestReadProbabilities(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect prefixcode.Distribution
	}

	testData := [...]testRow{
		{
			name:   "bare",
			input:  "0.5\n0.25\n\n# comment\n0.25\n",
			expect: prefixcode.Distribution{{Symbol: "z1", Probability: 0.5}, {Symbol: "z2", Probability: 0.25}, {Symbol: "z3", Probability: 0.25}},
		},
		{
			name:   "named",
			input:  "x 0.75\n  y   0.25  \n",
			expect: prefixcode.Distribution{{Symbol: "x", Probability: 0.75}, {Symbol: "y", Probability: 0.25}},
		},
		{
			name:   "json",
			input:  `  {"z10": 0.1, "z2": 0.4, "z1": 0.5}`,
			expect: prefixcode.Distribution{{Symbol: "z1", Probability: 0.5}, {Symbol: "z2", Probability: 0.4}, {Symbol: "z10", Probability: 0.1}},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, err := readProbabilities(strings.NewReader(row.input))
			if err != nil {
				t.Fatalf("readProbabilities failed: %v", err)
			}
			if !reflect.DeepEqual(row.expect, actual) {
				t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
		})
	}
}

func TestReadProbabilities_Errors(t *testing.T) {
	for _, input := range []string{
		"",
		"0.5 0.5 0.5\n",
		"abc\n",
		"1.5\n",
		"0\n",
		"a 0.5\na 0.5\n",
		"{\"a\": 2}",
		"{not json",
	} {
		if _, err := readProbabilities(strings.NewReader(input)); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestPromptProbabilities(t *testing.T) {
	input := "-1\n0.5\nhello\n1.5\n0.3\n0.2\n-1\n"
	var out bytes.Buffer
	d, err := promptProbabilities(strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("promptProbabilities failed: %v", err)
	}
	expect := prefixcode.Distribution{{Symbol: "z1", Probability: 0.5}, {Symbol: "z2", Probability: 0.3}, {Symbol: "z3", Probability: 0.2}}
	if !reflect.DeepEqual(expect, d) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, d)
	}
	transcript := out.String()
	for _, msg := range []string{"No probabilities entered yet", "is not a number", "outside (0,1]"} {
		if !strings.Contains(transcript, msg) {
			t.Errorf("expected transcript to contain %q:\n%s", msg, transcript)
		}
	}

	if _, err := promptProbabilities(strings.NewReader(""), io.Discard); err == nil {
		t.Errorf("expected an error for empty input")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "probs.txt")
	if err := os.WriteFile(in, []byte("a 0.05\nb 0.09\nc 0.12\nd 0.13\ne 0.16\nf 0.45\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dotDir := filepath.Join(dir, "dot")
	save := filepath.Join(dir, "codes.pfxc")

	var out bytes.Buffer
	args := []string{"-in", in, "-both", "-dot", dotDir, "-dot-style", "scheme", "-save", save, "-canonical"}
	if err := run(args, strings.NewReader(""), &out, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	text := out.String()
	for _, msg := range []string{
		"Sum of probabilities: 1.0000 (ok)",
		"== huffman ==",
		"== shannon-fano ==",
		"L_avg = 2.240 bits/symbol",
		"Codes (sorted by P descending):",
		"Comparison:",
	} {
		if !strings.Contains(text, msg) {
			t.Errorf("expected output to contain %q:\n%s", msg, text)
		}
	}

	for _, name := range []string{"huffman.dot", "shannon-fano.dot"} {
		data, err := os.ReadFile(filepath.Join(dotDir, name))
		if err != nil {
			t.Fatalf("missing diagram: %v", err)
		}
		if !bytes.Contains(data, []byte("rank=max;")) {
			t.Errorf("%s: expected the scheme layout", name)
		}
	}

	f, err := os.Open(filepath.Join(dir, "codes-huffman.pfxc"))
	if err != nil {
		t.Fatalf("missing code table: %v", err)
	}
	defer f.Close()
	codes, err := prefixcode.ReadCodeTable(f)
	if err != nil {
		t.Fatalf("ReadCodeTable failed: %v", err)
	}
	expect := prefixcode.CodeTable{"a": "1110", "b": "1111", "c": "100", "d": "101", "e": "110", "f": "0"}
	if !reflect.DeepEqual(expect, codes) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, codes)
	}
}

func TestRun_SaveJSON(t *testing.T) {
	dir := t.TempDir()
	save := filepath.Join(dir, "codes.json")

	var out bytes.Buffer
	args := []string{"-alg", "shannon-fano", "-save", save}
	if err := run(args, strings.NewReader("0.5\n0.25\n0.125\n0.125\n"), &out, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(save)
	if err != nil {
		t.Fatal(err)
	}
	var codes prefixcode.CodeTable
	if err := json.Unmarshal(data, &codes); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	expect := prefixcode.CodeTable{"z1": "0", "z2": "10", "z3": "110", "z4": "111"}
	if !reflect.DeepEqual(expect, codes) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, codes)
	}
}

func TestRun_Generate(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-generate", "40", "-method", "exponential", "-seed", "3", "-decimals", "6"}
	if err := run(args, strings.NewReader(""), &out, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "z40") {
		t.Errorf("expected generated symbol z40 in output")
	}
}

func TestRun_BadSum(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	if err := run(nil, strings.NewReader("0.5\n0.4\n"), &out, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "does not equal 1.0") {
		t.Errorf("expected a sum mismatch report:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), "probabilities do not sum to 1") {
		t.Errorf("expected a sum mismatch warning:\n%s", logs.String())
	}
}

func TestRun_Errors(t *testing.T) {
	type testRow struct {
		name  string
		args  []string
		input string
	}

	testData := [...]testRow{
		{"unknown algorithm", []string{"-alg", "lz77"}, "1\n"},
		{"stray argument", []string{"extra"}, "1\n"},
		{"bad digits", []string{"-digits", "-1"}, "1\n"},
		{"interactive and generate", []string{"-i", "-generate", "3"}, ""},
		{"bad input", nil, "oops\n"},
		{"missing file", []string{"-in", filepath.Join(t.TempDir(), "none.txt")}, ""},
		{"bad generator", []string{"-generate", "3", "-min-prob", "0.5"}, ""},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			err := run(row.args, strings.NewReader(row.input), io.Discard, quietLogger())
			if err == nil {
				t.Errorf("expected an error")
			}
		})
	}

	if err := run([]string{"-h"}, strings.NewReader(""), io.Discard, quietLogger()); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestWithSuffix(t *testing.T) {
	type testRow struct {
		path   string
		expect string
	}

	testData := [...]testRow{
		{"codes.pfxc", "codes-huffman.pfxc"},
		{"out/codes.json", "out/codes-huffman.json"},
		{"codes", "codes-huffman"},
	}
	for _, row := range testData {
		if actual := withSuffix(row.path, "-huffman"); actual != row.expect {
			t.Errorf("%q: expected %q, got %q", row.path, row.expect, actual)
		}
	}
}
