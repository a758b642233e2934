package prefixcode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// Decoder maps codewords back to symbols.  It is built from a CodeTable
// and doubles as a check that the table is uniquely decodable: NewDecoder
// fails on any table that is not prefix-free.
type Decoder struct {
	table      map[Codeword]decoderData
	numSymbols int
	minSize    int
	maxSize    int
}

// NewDecoder builds a Decoder for t.  It returns an error wrapping
// ErrNotPrefixFree if some codeword of t is a prefix of another, or
// ErrInvalidInput if some codeword is malformed.  An empty table yields a
// Decoder that decodes nothing.
//
func NewDecoder(t CodeTable) (*Decoder, error) {
	d := &Decoder{
		table:      make(map[Codeword]decoderData, 2*len(t)),
		numSymbols: len(t),
		minSize:    t.MinSize(),
		maxSize:    t.MaxSize(),
	}
	for _, sym := range t.Symbols() {
		cw := t[sym]
		if err := cw.Validate(); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", sym, err)
		}
		if err := fillTable(d.table, sym, cw); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Decode attempts to decode a codeword into a Symbol.
//
// If the Decode is completely successful, symbol != InvalidSymbol and
// minSize == maxSize == cw.Len().
//
// If cw is a proper prefix of one or more codewords, symbol ==
// InvalidSymbol and the full codeword is between minSize and maxSize bits
// long.
//
// If cw is not a prefix of any codeword, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d *Decoder) Decode(cw Codeword) (symbol Symbol, minSize int, maxSize int) {
	dd, found := d.table[cw]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// DecodeAll splits a concatenation of codewords back into symbols.
func (d *Decoder) DecodeAll(stream Codeword) ([]Symbol, error) {
	var out []Symbol
	start := 0
	for end := 1; end <= stream.Len(); end++ {
		prefix := stream[start:end]
		sym, minSize, _ := d.Decode(prefix)
		if sym != InvalidSymbol {
			out = append(out, sym)
			start = end
			continue
		}
		if minSize == 0 {
			return out, fmt.Errorf("no codeword starts with %s at bit offset %d: %w", prefix, start, ErrInvalidInput)
		}
	}
	if start != stream.Len() {
		return out, fmt.Errorf("stream ends inside codeword %s at bit offset %d: %w", stream[start:], start, ErrInvalidInput)
	}
	return out, nil
}

// NumSymbols returns the number of symbols this Decoder can produce.
func (d *Decoder) NumSymbols() int {
	return d.numSymbols
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() int {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() int {
	return d.maxSize
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make([]Codeword, 0, len(d.table))
	for cw := range d.table {
		keys = append(keys, cw)
	}
	slices.SortFunc(keys, compareCodewords)
	for _, cw := range keys {
		dd := d.table[cw]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%q, %d, %d}\n", cw, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData struct {
	symbol  Symbol
	minSize int
	maxSize int
}

// fillTable records cw and every prefix of cw in table.  Each prefix maps
// to the range of codeword lengths reachable below it.
func fillTable(table map[Codeword]decoderData, symbol Symbol, cw Codeword) error {
	if old, found := table[cw]; found {
		if old.symbol != InvalidSymbol {
			return fmt.Errorf("symbols %q and %q share codeword %s: %w", old.symbol, symbol, cw, ErrNotPrefixFree)
		}
		return fmt.Errorf("codeword %s of %q is a prefix of another codeword: %w", cw, symbol, ErrNotPrefixFree)
	}

	full := cw
	dd := decoderData{symbol, cw.Len(), cw.Len()}
	table[cw] = dd

	for cw != "" {
		// For each cw "xxx...a", compute "xxx...A" where A = NOT a.

		last := cw.Len() - 1
		parent := cw[:last]
		sibling := parent.Append(1 - cw.Bit(last))

		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling)
		// into ddNew (the new entry for the parent "xxx...").

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// If the parent is a whole codeword, the code is not prefix-free.
		// If it already equals ddNew, we can stop climbing.

		if ddOld, found := table[parent]; found {
			if ddOld.symbol != InvalidSymbol {
				return fmt.Errorf("codeword %s of %q is a prefix of codeword %s of %q: %w", parent, ddOld.symbol, full, symbol, ErrNotPrefixFree)
			}
			if ddOld == ddNew {
				break
			}
		}

		table[parent] = ddNew
		dd = ddNew
		cw = parent
	}
	return nil
}

func compareCodewords(a, b Codeword) int {
	if a.Len() != b.Len() {
		return sign(a.Len() - b.Len())
	}
	return strings.Compare(string(a), string(b))
}
