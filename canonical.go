package prefixcode

import (
	"fmt"
	"sort"
)

// Canonicalize returns a table with the same codeword lengths as t but with
// the codewords renumbered into canonical Huffman form: symbols sorted by
// (length, CompareSymbols) receive consecutive binary numbers, shifted left
// whenever the length grows.  A canonical code can be rebuilt from its
// lengths alone.
//
// An error is returned if t holds a malformed codeword or if its lengths
// violate the Kraft inequality, in which case no prefix code with those
// lengths exists.
//
// See <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.
//
func Canonicalize(t CodeTable) (CodeTable, error) {
	// Step 1: sort the symbols by (t[Symbol].Len(), Symbol) ascending.

	sorted := make(bySize, 0, len(t))
	for sym, cw := range t {
		if err := cw.Validate(); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", sym, err)
		}
		sorted = append(sorted, symbolAndSize{sym, cw.Len()})
	}
	sorted.Sort()

	out := make(CodeTable, len(t))
	if len(sorted) == 0 {
		return out, nil
	}

	// Step 2: assign the codes sequentially.  nextCode holds one byte per
	// bit, most significant first, so there is no limit on code length.

	lastSize := sorted[0].size
	nextCode := make([]byte, lastSize)
	for i := range nextCode {
		nextCode[i] = '0'
	}
	overflow := false
	for _, item := range sorted {
		if overflow {
			return nil, fmt.Errorf("codeword lengths violate the Kraft inequality at symbol %q: %w", item.symbol, ErrNotPrefixFree)
		}
		for item.size > lastSize {
			nextCode = append(nextCode, '0')
			lastSize++
		}
		out[item.symbol] = Codeword(nextCode)
		overflow = increment(nextCode)
	}
	return out, nil
}

// increment adds one to a big-endian string of binary digits in place and
// reports whether the addition carried out of the top bit.
func increment(bits []byte) bool {
	for i := len(bits) - 1; i >= 0; i-- {
		if bits[i] == '0' {
			bits[i] = '1'
			return false
		}
		bits[i] = '0'
	}
	return true
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   int
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return CompareSymbols(a.symbol, b.symbol) < 0
}

func (list bySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize(nil)

// }}}
