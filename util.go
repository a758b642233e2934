package prefixcode

import (
	"encoding/binary"
	mathbits "math/bits"
)

// log2int returns the number of bits needed to represent x, treating 0 as
// 1.  It is used to size stacks for balanced trees.
func log2int(x int) int {
	if x <= 0 {
		x = 1
	}
	return 64 - mathbits.LeadingZeros64(uint64(x))
}

func putUint64(b []byte, v uint64) {
	binary.BigEndian.PutUint64(b, v)
}
