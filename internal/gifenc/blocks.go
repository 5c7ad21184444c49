package gifenc

import "io"

// blockWriter packs a byte stream into GIF data sub-blocks: a length byte
// (1..255) followed by that many bytes. close writes the zero-length block
// terminator.
type blockWriter struct {
	w   io.Writer
	buf [256]byte
	err error
}

func newBlockWriter(w io.Writer) *blockWriter {
	return &blockWriter{w: w}
}

// WriteByte appends c to the pending sub-block and flushes it when full.
func (b *blockWriter) WriteByte(c byte) error {
	if b.err != nil {
		return b.err
	}
	b.buf[0]++
	b.buf[b.buf[0]] = c
	if b.buf[0] < 255 {
		return nil
	}
	_, b.err = b.w.Write(b.buf[:256])
	b.buf[0] = 0
	return b.err
}

// Write implements io.Writer.
func (b *blockWriter) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := b.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// close flushes the pending sub-block, if any, together with the terminator.
func (b *blockWriter) close() error {
	if b.err != nil {
		return b.err
	}
	if b.buf[0] == 0 {
		_, b.err = b.w.Write(b.buf[:1])
		return b.err
	}
	n := int(b.buf[0])
	b.buf[n+1] = 0
	_, b.err = b.w.Write(b.buf[:n+2])
	b.buf[0] = 0
	return b.err
}
