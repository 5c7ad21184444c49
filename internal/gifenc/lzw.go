package gifenc

import "io"

const (
	// maxWidth is the widest LZW code GIF allows.
	maxWidth = 12
	// maxCode is the last usable code; reaching it forces a clear code.
	maxCode = 1<<maxWidth - 1

	invalidCode = ^uint32(0)
)

// lzwEncoder is the variable-width LZW compressor for one frame's index
// stream, with GIF's least-significant-bit-first packing.
//
// A fresh encoder is built for every frame. The first code emitted is a
// clear code; code width grows by one when the next code to assign reaches
// 1<<width; when the table is exhausted a clear code is emitted and the
// table starts over. Close emits the pending prefix and the
// end-of-information code.
type lzwEncoder struct {
	w        io.ByteWriter
	litWidth uint
	clear    uint32
	eoi      uint32

	width    uint
	hi       uint32 // highest assigned code
	overflow uint32 // 1 << width

	bits  uint32
	nBits uint

	code  uint32 // pending prefix, invalidCode before the first byte
	table map[uint32]uint32

	err error
}

// newLZWEncoder creates an encoder for literals of litWidth bits (2..8).
func newLZWEncoder(w io.ByteWriter, litWidth int) *lzwEncoder {
	e := &lzwEncoder{
		w:        w,
		litWidth: uint(litWidth),
		clear:    1 << uint(litWidth),
		eoi:      1<<uint(litWidth) + 1,
		code:     invalidCode,
		table:    make(map[uint32]uint32, maxCode),
	}
	e.resetTable()
	return e
}

func (e *lzwEncoder) resetTable() {
	e.width = e.litWidth + 1
	e.hi = e.eoi
	e.overflow = e.clear << 1
	clear(e.table)
}

// writeCode packs c at the current width.
func (e *lzwEncoder) writeCode(c uint32) {
	if e.err != nil {
		return
	}
	e.bits |= c << e.nBits
	e.nBits += e.width
	for e.nBits >= 8 {
		if e.err = e.w.WriteByte(uint8(e.bits)); e.err != nil {
			return
		}
		e.bits >>= 8
		e.nBits -= 8
	}
}

// incHi assigns the next code. It reports true when the table was full and
// has been reset, in which case no entry may be added.
func (e *lzwEncoder) incHi() bool {
	e.hi++
	if e.hi == e.overflow {
		e.width++
		e.overflow <<= 1
	}
	if e.hi == maxCode {
		e.writeCode(e.clear)
		e.resetTable()
		return true
	}
	return false
}

// Write compresses p.
func (e *lzwEncoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := len(p)

	if e.code == invalidCode {
		e.writeCode(e.clear)
		e.code, p = uint32(p[0]), p[1:]
	}

	for _, x := range p {
		lit := uint32(x)
		key := e.code<<8 | lit
		if c, ok := e.table[key]; ok {
			e.code = c
			continue
		}
		e.writeCode(e.code)
		e.code = lit
		if e.incHi() {
			continue
		}
		e.table[key] = e.hi
	}
	if e.err != nil {
		return 0, e.err
	}
	return n, nil
}

// Close flushes the pending prefix, the end-of-information code and any
// remaining bits.
func (e *lzwEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.code != invalidCode {
		e.writeCode(e.code)
		e.incHi()
	} else {
		e.writeCode(e.clear)
	}
	e.writeCode(e.eoi)
	if e.err == nil && e.nBits > 0 {
		e.err = e.w.WriteByte(uint8(e.bits))
		e.bits, e.nBits = 0, 0
	}
	return e.err
}
