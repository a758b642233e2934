package prefixcode

import (
	"errors"
	"math"
	"testing"
)

func TestEntropy(t *testing.T) {
	type testRow struct {
		name   string
		d      Distribution
		expect float64
	}

	testData := [...]testRow{
		{"certain", Distribution{{"a", 1}}, 0},
		{"coin", Distribution{{"a", 0.5}, {"b", 0.5}}, 1},
		{"uniform", Distribution{{"a", 0.25}, {"b", 0.25}, {"c", 0.25}, {"d", 0.25}}, 2},
		{"dyadic", dyadic(), 1.75},
		{"zero term", Distribution{{"a", 0.5}, {"b", 0.5}, {"c", 0}}, 1},
		{"biased", Distribution{{"a", 0.9}, {"b", 0.1}}, 0.4689955935892812},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, err := Entropy(row.d)
			if err != nil {
				t.Fatalf("Entropy failed: %v", err)
			}
			if math.Abs(actual-row.expect) > Tolerance {
				t.Errorf("wrong entropy:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
		})
	}
}

func TestEntropy_InvalidInput(t *testing.T) {
	for _, d := range []Distribution{
		nil,
		{{"a", -0.1}, {"b", 1}},
		{{"a", 1.1}},
		{{"a", math.NaN()}},
		{{"a", math.Inf(1)}},
	} {
		if _, err := Entropy(d); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v: expected ErrInvalidInput, got %v", d, err)
		}
	}
}

func TestAverageLength(t *testing.T) {
	codes := CodeTable{"a": "0", "b": "10", "c": "110", "d": "111"}
	actual, err := AverageLength(dyadic(), codes)
	if err != nil {
		t.Fatalf("AverageLength failed: %v", err)
	}
	if actual != 1.75 {
		t.Errorf("wrong average length:\n\texpect: 1.75\n\tactual: %v", actual)
	}

	_, err = AverageLength(nil, codes)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty set: expected ErrInvalidInput, got %v", err)
	}

	delete(codes, "c")
	_, err = AverageLength(dyadic(), codes)
	if !errors.Is(err, ErrMissingCode) {
		t.Fatalf("expected ErrMissingCode, got %v", err)
	}
	var merr *MissingCodeError
	if !errors.As(err, &merr) || merr.Symbol != "c" {
		t.Errorf("expected a MissingCodeError for \"c\", got %v", err)
	}
}

func TestRedundancy(t *testing.T) {
	type testRow struct {
		name    string
		avg     float64
		entropy float64
		expect  float64
		warn    bool
	}

	testData := [...]testRow{
		{"optimal", 1.75, 1.75, 0, false},
		{"positive", 2, 1.5, 0.5, false},
		{"rounding noise", 1.75, 1.75 + Tolerance/2, -Tolerance / 2, false},
		{"negative", 1.5, 1.75, -0.25, true},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, w := Redundancy(row.avg, row.entropy)
			if math.Abs(actual-row.expect) > 1e-15 {
				t.Errorf("wrong redundancy:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
			if (w != nil) != row.warn {
				t.Errorf("wrong warning:\n\texpect: %v\n\tactual: %v", row.warn, w)
			}
			if w != nil && w.Kind != WarnNegativeRedundancy {
				t.Errorf("wrong warning kind: %v", w.Kind)
			}
		})
	}
}

func TestKraftSum(t *testing.T) {
	type testRow struct {
		name   string
		codes  CodeTable
		expect float64
		warn   bool
	}

	testData := [...]testRow{
		{"single", CodeTable{"a": "0"}, 0.5, false},
		{"complete", CodeTable{"a": "0", "b": "10", "c": "110", "d": "111"}, 1, false},
		{"incomplete", CodeTable{"a": "00", "b": "01", "c": "10"}, 0.75, false},
		{"exceeded", CodeTable{"a": "0", "b": "1", "c": "10"}, 1.25, true},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, w, err := KraftSum(row.codes)
			if err != nil {
				t.Fatalf("KraftSum failed: %v", err)
			}
			if actual != row.expect {
				t.Errorf("wrong sum:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
			if (w != nil) != row.warn {
				t.Errorf("wrong warning:\n\texpect: %v\n\tactual: %v", row.warn, w)
			}
			if w != nil && (w.Kind != WarnKraftExceeded || w.Value != actual) {
				t.Errorf("wrong warning: %+v", w)
			}
		})
	}
}

func TestKraftSum_InvalidInput(t *testing.T) {
	for _, codes := range []CodeTable{
		nil,
		{"a": ""},
		{"a": "0", "b": "12"},
	} {
		if _, _, err := KraftSum(codes); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v: expected ErrInvalidInput, got %v", codes, err)
		}
	}
}

func TestEvaluate(t *testing.T) {
	report, err := Evaluate(dyadic(), CodeTable{"a": "0", "b": "10", "c": "110", "d": "111"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !report.Valid() || report.Efficiency() != 1 {
		t.Errorf("expected a valid optimal report, got %+v", report)
	}

	report, err = Evaluate(Distribution{{"a", 0.5}, {"b", 0.5}}, CodeTable{"a": "", "b": "1"})
	if !errors.Is(err, ErrInvalidInput) || report != nil {
		t.Errorf("expected ErrInvalidInput, got (%v, %v)", report, err)
	}

	// A table that is not prefix-free can beat the entropy bound.
	report, err = Evaluate(Distribution{{"a", 0.5}, {"b", 0.25}, {"c", 0.25}}, CodeTable{"a": "0", "b": "1", "c": "01"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if report.Valid() || len(report.Warnings) != 2 {
		t.Fatalf("expected two warnings, got %v", report.Warnings)
	}
	if report.Warnings[0].Kind != WarnKraftExceeded || report.Warnings[1].Kind != WarnNegativeRedundancy {
		t.Errorf("wrong warnings: %v, %v", report.Warnings[0].Kind, report.Warnings[1].Kind)
	}
}

func TestReport_Formulas(t *testing.T) {
	d := Distribution{{"z1", 0.5}, {"z2", 0.5}}
	codes := CodeTable{"z1": "0", "z2": "1"}
	report, err := Evaluate(d, codes)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	formulas := report.Formulas(d, codes, 3)
	expect := []Formula{
		{"H", "H(Z) = -Sum [ p(zi) * log2(p(zi)) ]", "H(Z) = -[ p(z1)*log2(p(z1)) + p(z2)*log2(p(z2)) ]", "H(Z) = -[ 0.500*log2(0.500) + 0.500*log2(0.500) ]", 1},
		{"L_avg", "L_avg = Sum [ p(zi) * L(zi) ]", "L_avg = p(z1)*L(z1) + p(z2)*L(z2)", "L_avg = 0.500*1 + 0.500*1", 1},
		{"r", "r = L_avg - H", "", "r = 1.000 - 1.000", 0},
		{"K", "K = Sum [ 2^(-L(zi)) ]", "K = 2^(-L(z1)) + 2^(-L(z2))", "K = 2^(-1) + 2^(-1)", 1},
	}
	if len(formulas) != len(expect) {
		t.Fatalf("expected %d formulas, got %d", len(expect), len(formulas))
	}
	for i := range expect {
		if expect[i] != formulas[i] {
			t.Errorf("wrong formula %d:\n\texpect: %+v\n\tactual: %+v", i, expect[i], formulas[i])
		}
	}
}
