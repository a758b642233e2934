package prefixcode

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/icza/bitio"
)

// Binary code table format, all fields bit-packed most significant bit
// first:
//
//     magic        32 bits  "PFXC"
//     version       8 bits
//     count        32 bits
//     count × {
//         symLen   16 bits
//         symbol   symLen × 8 bits
//         codeLen  32 bits
//         codeword codeLen × 1 bit
//     }
//     fingerprint  64 bits  CodeTable.Fingerprint()
//
// The final byte is zero-padded.
const (
	codecMagic   = 0x50465843
	codecVersion = 1

	// maxCodewordLen bounds the codeword length accepted by
	// ReadCodeTable, so that a corrupt length cannot make it spin.
	maxCodewordLen = 1 << 24
)

// WriteTo writes this table to w in the binary code table format.  The
// table is validated first; a table that is not a prefix code is refused.
func (t CodeTable) WriteTo(w io.Writer) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if uint64(len(t)) > math.MaxUint32 {
		return 0, fmt.Errorf("code table has %d symbols, max %d: %w", len(t), uint64(math.MaxUint32), ErrInvalidInput)
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	bw.TryWriteBits(codecMagic, 32)
	bw.TryWriteBits(codecVersion, 8)
	bw.TryWriteBits(uint64(len(t)), 32)
	for _, sym := range t.Symbols() {
		if len(sym) > math.MaxUint16 {
			return 0, fmt.Errorf("symbol of %d bytes, max %d: %w", len(sym), math.MaxUint16, ErrInvalidInput)
		}
		bw.TryWriteBits(uint64(len(sym)), 16)
		for i := 0; i < len(sym); i++ {
			bw.TryWriteBits(uint64(sym[i]), 8)
		}
		cw := t[sym]
		if cw.Len() > maxCodewordLen {
			return 0, fmt.Errorf("codeword of %d bits for symbol %q, max %d: %w", cw.Len(), sym, maxCodewordLen, ErrInvalidInput)
		}
		bw.TryWriteBits(uint64(cw.Len()), 32)
		for i := 0; i < cw.Len(); i++ {
			bw.TryWriteBool(cw.Bit(i) == 1)
		}
	}
	bw.TryWriteBits(t.Fingerprint(), 64)
	if bw.TryError != nil {
		return 0, bw.TryError
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

var _ io.WriterTo = CodeTable(nil)

// ReadCodeTable reads a table written by CodeTable.WriteTo.  Any framing
// error, truncation, fingerprint mismatch or invalid table is reported as
// an error wrapping ErrCorrupt.
func ReadCodeTable(r io.Reader) (CodeTable, error) {
	br := bitio.NewReader(r)

	magic := br.TryReadBits(32)
	version := br.TryReadBits(8)
	count := br.TryReadBits(32)
	if br.TryError != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrCorrupt, br.TryError)
	}
	if magic != codecMagic {
		return nil, fmt.Errorf("%w: bad magic %#08x", ErrCorrupt, magic)
	}
	if version != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, version)
	}

	capacity := count
	if capacity > 1<<16 {
		capacity = 1 << 16
	}
	t := make(CodeTable, capacity)
	var symBuf []byte
	var cwBuf []byte
	for index := uint64(0); index < count; index++ {
		symLen := br.TryReadBits(16)
		symBuf = symBuf[:0]
		for i := uint64(0); i < symLen && br.TryError == nil; i++ {
			symBuf = append(symBuf, byte(br.TryReadBits(8)))
		}
		codeLen := br.TryReadBits(32)
		if br.TryError != nil {
			return nil, fmt.Errorf("%w: reading entry %d: %v", ErrCorrupt, index, br.TryError)
		}
		if codeLen == 0 || codeLen > maxCodewordLen {
			return nil, fmt.Errorf("%w: entry %d has codeword length %d", ErrCorrupt, index, codeLen)
		}
		cwBuf = cwBuf[:0]
		for i := uint64(0); i < codeLen && br.TryError == nil; i++ {
			if br.TryReadBool() {
				cwBuf = append(cwBuf, '1')
			} else {
				cwBuf = append(cwBuf, '0')
			}
		}
		if br.TryError != nil {
			return nil, fmt.Errorf("%w: reading entry %d: %v", ErrCorrupt, index, br.TryError)
		}

		sym := Symbol(symBuf)
		if _, found := t[sym]; found {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrCorrupt, sym)
		}
		t[sym] = Codeword(cwBuf)
	}

	fingerprint := br.TryReadBits(64)
	if br.TryError != nil {
		return nil, fmt.Errorf("%w: reading fingerprint: %v", ErrCorrupt, br.TryError)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if actual := t.Fingerprint(); actual != fingerprint {
		return nil, fmt.Errorf("%w: fingerprint mismatch: expected %#016x, got %#016x", ErrCorrupt, fingerprint, actual)
	}
	return t, nil
}
