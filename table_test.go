package prefixcode

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCodeTable_Validate(t *testing.T) {
	type testRow struct {
		name   string
		codes  CodeTable
		expect error
	}

	testData := [...]testRow{
		{"valid", CodeTable{"a": "0", "b": "10", "c": "11"}, nil},
		{"empty table", CodeTable{}, nil},
		{"empty symbol", CodeTable{"": "0"}, ErrInvalidInput},
		{"empty codeword", CodeTable{"a": ""}, ErrInvalidInput},
		{"non-binary", CodeTable{"a": "0x"}, ErrInvalidInput},
		{"prefix", CodeTable{"a": "0", "b": "01"}, ErrNotPrefixFree},
		{"distant prefix", CodeTable{"a": "01", "b": "0100", "c": "0101", "d": "1"}, ErrNotPrefixFree},
		{"duplicate", CodeTable{"a": "10", "b": "10"}, ErrNotPrefixFree},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			err := row.codes.Validate()
			if row.expect == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if row.expect != nil && !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
			if errors.Is(row.expect, ErrNotPrefixFree) == row.codes.IsPrefixFree() {
				t.Errorf("IsPrefixFree disagrees with Validate")
			}
		})
	}
}

func TestCodeTable_Sizes(t *testing.T) {
	codes := CodeTable{"z10": "0", "z2": "10", "z1": "110", "z3": "111"}
	if expect, actual := []Symbol{"z1", "z2", "z3", "z10"}, codes.Symbols(); !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong symbols:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
	if codes.MinSize() != 1 || codes.MaxSize() != 3 {
		t.Errorf("wrong sizes: min %d max %d", codes.MinSize(), codes.MaxSize())
	}
	if expect, actual := map[Symbol]int{"z10": 1, "z2": 2, "z1": 3, "z3": 3}, codes.Lengths(); !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong lengths:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
	if empty := (CodeTable{}); empty.MinSize() != 0 || empty.MaxSize() != 0 {
		t.Errorf("empty table has non-zero sizes")
	}
}

func TestCodeTable_Encode(t *testing.T) {
	codes := CodeTable{"a": "0", "b": "10", "c": "11"}
	actual, err := codes.Encode([]Symbol{"b", "a", "c", "a"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if expect := Codeword("100110"); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
	if _, err := codes.Encode([]Symbol{"a", "x"}); !errors.Is(err, ErrMissingCode) {
		t.Errorf("expected ErrMissingCode, got %v", err)
	}
}

func TestCodeTable_Fingerprint(t *testing.T) {
	a := CodeTable{"a": "0", "b": "10", "c": "11"}
	b := CodeTable{"c": "11", "b": "10", "a": "0"}
	c := CodeTable{"a": "0", "b": "11", "c": "10"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("equal tables have different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("different tables have the same fingerprint")
	}
}

func TestCodeTable_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(CodeTable{"b": "10", "a": "0", "c": "11"})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	expectJSON := `{"a":"0","b":"10","c":"11"}`
	if actualJSON := string(raw); expectJSON != actualJSON {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectJSON, actualJSON)
	}
}

func TestCodeTable_UnmarshalJSON(t *testing.T) {
	var codes CodeTable
	if err := json.Unmarshal([]byte(`{"a":"0","b":"10","c":"11"}`), &codes); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if expect := (CodeTable{"a": "0", "b": "10", "c": "11"}); !reflect.DeepEqual(expect, codes) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, codes)
	}

	for _, raw := range []string{`{"a":"0","b":"01"}`, `{"a":"2"}`, `["0"]`} {
		var bad CodeTable
		if err := json.Unmarshal([]byte(raw), &bad); err == nil {
			t.Errorf("%s: expected an error", raw)
		}
	}
}

func TestCodeword(t *testing.T) {
	cw := Codeword("10")
	if cw.Len() != 2 || cw.Bit(0) != 1 || cw.Bit(1) != 0 {
		t.Errorf("wrong bits: %s", cw)
	}
	if actual := cw.Append(1).Append(0); actual != "1010" {
		t.Errorf("wrong Append: %s", actual)
	}
	if !Codeword("101").HasPrefix(cw) || cw.HasPrefix("101") {
		t.Errorf("wrong HasPrefix")
	}
	if expect, actual := `"10"`, cw.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
	if _, err := ParseCodeword("10a"); !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), "offset 2") {
		t.Errorf("expected ErrInvalidInput at offset 2, got %v", err)
	}
}
