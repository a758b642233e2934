package prefixcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Codeword represents a sequence of bits, written as a string of '0' and '1'
// characters.  The first character is the first bit, i.e. the branch taken
// at the root of the coding tree.
type Codeword string

// ParseCodeword validates s and converts it into a Codeword.
func ParseCodeword(s string) (Codeword, error) {
	cw := Codeword(s)
	if err := cw.Validate(); err != nil {
		return "", err
	}
	return cw, nil
}

// Len returns the number of bits in this Codeword.
func (cw Codeword) Len() int {
	return len(cw)
}

// Bit returns the i'th bit of this Codeword as 0 or 1.
func (cw Codeword) Bit(i int) byte {
	return cw[i] - '0'
}

// Append returns this Codeword with one more bit at the end.
func (cw Codeword) Append(bit byte) Codeword {
	if bit == 0 {
		return cw + "0"
	}
	return cw + "1"
}

// HasPrefix reports whether prefix is a prefix of this Codeword.  Every
// Codeword is a prefix of itself.
func (cw Codeword) HasPrefix(prefix Codeword) bool {
	return strings.HasPrefix(string(cw), string(prefix))
}

// Validate checks that this Codeword is non-empty and contains only binary
// digits.
func (cw Codeword) Validate() error {
	if cw == "" {
		return fmt.Errorf("empty codeword: %w", ErrInvalidInput)
	}
	for i := 0; i < len(cw); i++ {
		if ch := cw[i]; ch != '0' && ch != '1' {
			return fmt.Errorf("codeword %s has non-binary digit %q at offset %d: %w", cw, ch, i, ErrInvalidInput)
		}
	}
	return nil
}

// String returns the string representation of this Codeword.
func (cw Codeword) String() string {
	return strconv.Quote(string(cw))
}

var _ fmt.Stringer = Codeword("")
