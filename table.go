package prefixcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// CodeTable maps each Symbol of an alphabet to its Codeword.  A table
// produced by GenerateCodes is prefix-free and has one entry per leaf.
type CodeTable map[Symbol]Codeword

// Symbols returns the symbols of this table in CompareSymbols order.
func (t CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t))
	for sym := range t {
		out = append(out, sym)
	}
	slices.SortFunc(out, CompareSymbols)
	return out
}

// Lengths returns the codeword length of every symbol.
func (t CodeTable) Lengths() map[Symbol]int {
	out := make(map[Symbol]int, len(t))
	for sym, cw := range t {
		out[sym] = cw.Len()
	}
	return out
}

// MinSize is the bit length of the shortest codeword, or 0 for an empty
// table.
func (t CodeTable) MinSize() int {
	var minSize int
	for _, cw := range t {
		if minSize == 0 || cw.Len() < minSize {
			minSize = cw.Len()
		}
	}
	return minSize
}

// MaxSize is the bit length of the longest codeword, or 0 for an empty
// table.
func (t CodeTable) MaxSize() int {
	var maxSize int
	for _, cw := range t {
		if cw.Len() > maxSize {
			maxSize = cw.Len()
		}
	}
	return maxSize
}

// Validate checks that every symbol is non-empty, that every codeword is a
// non-empty string of binary digits, and that no codeword is a prefix of
// another.
func (t CodeTable) Validate() error {
	for sym, cw := range t {
		if sym == InvalidSymbol {
			return fmt.Errorf("code table has an empty symbol: %w", ErrInvalidInput)
		}
		if err := cw.Validate(); err != nil {
			return fmt.Errorf("symbol %q: %w", sym, err)
		}
	}

	// In lexicographic order, a codeword that is a prefix of any later
	// codeword is also a prefix of the very next one.
	sorted := t.byCodeword()
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if b.Codeword.HasPrefix(a.Codeword) {
			return fmt.Errorf("codeword %s of %q is a prefix of codeword %s of %q: %w", a.Codeword, a.Symbol, b.Codeword, b.Symbol, ErrNotPrefixFree)
		}
	}
	return nil
}

// IsPrefixFree reports whether no codeword in this table is a prefix of
// another.
func (t CodeTable) IsPrefixFree() bool {
	sorted := t.byCodeword()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Codeword.HasPrefix(sorted[i-1].Codeword) {
			return false
		}
	}
	return true
}

// Fingerprint returns a 64-bit hash of the contents of this table.  Equal
// tables have equal fingerprints regardless of map iteration order.
func (t CodeTable) Fingerprint() uint64 {
	h := xxhash.New()
	for _, sym := range t.Symbols() {
		_, _ = h.WriteString(string(sym))
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(string(t[sym]))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// Encode concatenates the codewords of the given symbols.  It exists to
// check that a code decodes back to what was encoded; see Decoder.
func (t CodeTable) Encode(symbols []Symbol) (Codeword, error) {
	var sb strings.Builder
	for _, sym := range symbols {
		cw, found := t[sym]
		if !found {
			return "", &MissingCodeError{Symbol: sym}
		}
		sb.WriteString(string(cw))
	}
	return Codeword(sb.String()), nil
}

// Dump writes a programmer-readable debugging dump of this table to the
// given writer.
func (t CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.MaxSize())
	for _, sym := range t.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%q) = %s\n", sym, t[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// UnmarshalJSON fulfills json.Unmarshaler.  The table is validated, so a
// malformed or non-prefix-free table is rejected.
func (t *CodeTable) UnmarshalJSON(raw []byte) error {
	var m map[Symbol]Codeword
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	tmp := CodeTable(m)
	if err := tmp.Validate(); err != nil {
		return err
	}
	*t = tmp
	return nil
}

var _ json.Unmarshaler = (*CodeTable)(nil)

type symbolAndCodeword struct {
	Symbol   Symbol
	Codeword Codeword
}

func (t CodeTable) byCodeword() []symbolAndCodeword {
	out := make([]symbolAndCodeword, 0, len(t))
	for sym, cw := range t {
		out = append(out, symbolAndCodeword{sym, cw})
	}
	slices.SortFunc(out, func(a, b symbolAndCodeword) int {
		if c := strings.Compare(string(a.Codeword), string(b.Codeword)); c != 0 {
			return c
		}
		return CompareSymbols(a.Symbol, b.Symbol)
	})
	return out
}
