// Package gifenc writes GIF89a streams: the file header, logical screen
// descriptor and global color table once, then one graphic control
// extension, image descriptor and LZW image-data block per frame, and the
// trailer at the end.
//
// The Encoder keeps a sticky error: after the first write failure every
// method returns that error.
package gifenc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Block introducers and labels.
const (
	sigGIF89a = "GIF89a"

	extensionIntroducer = 0x21
	imageSeparator      = 0x2C
	trailer             = 0x3B

	labelGraphicControl = 0xF9
	labelApplication    = 0xFF

	fColorTable = 0x80
)

// Errors returned for invalid use of the encoder.
var (
	ErrHeaderWritten   = errors.New("gifenc: header already written")
	ErrNoHeader        = errors.New("gifenc: header not written")
	ErrFinished        = errors.New("gifenc: trailer already written")
	ErrBadDimensions   = errors.New("gifenc: width and height must be in 1..65535")
	ErrBadColorTable   = errors.New("gifenc: color table size does not match bit depth")
	ErrFrameSize       = errors.New("gifenc: frame size does not match logical screen")
	ErrPixelOutOfRange = errors.New("gifenc: pixel index outside color table")
)

// Disposal is the GIF frame disposal method.
type Disposal uint8

const (
	// DisposalUnspecified leaves the choice to the decoder.
	DisposalUnspecified Disposal = 0
	// DisposalNone keeps the frame in place.
	DisposalNone Disposal = 1
	// DisposalBackground restores the frame area to the background.
	DisposalBackground Disposal = 2
	// DisposalPrevious restores the frame area to the previous frame.
	DisposalPrevious Disposal = 3
)

// Header describes the logical screen and the global color table.
type Header struct {
	Width, Height int

	// Bits is the color table bit depth (1..8). The table has 1<<Bits entries.
	Bits int

	// ColorTable holds 3<<Bits bytes of packed RGB.
	ColorTable []byte

	BackgroundIndex uint8

	// LoopCount controls the NETSCAPE2.0 application extension: negative
	// omits it, 0 loops forever, n > 0 repeats n times.
	LoopCount int
}

// FrameOptions is the graphic control metadata of one frame.
type FrameOptions struct {
	// Delay is the frame delay in hundredths of a second.
	Delay uint16

	Disposal Disposal

	Transparent      bool
	TransparentIndex uint8
}

// countingWriter counts the bytes handed to the buffered output.
type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (c *countingWriter) WriteByte(b byte) error {
	if err := c.w.WriteByte(b); err != nil {
		return err
	}
	c.n++
	return nil
}

// Encoder writes a GIF stream to an io.Writer.
type Encoder struct {
	bw  *bufio.Writer
	out *countingWriter

	hdr      Header
	litWidth int
	started  bool
	finished bool
	frames   int

	buf [16]byte
	err error
}

// NewEncoder returns an encoder writing to w. Output is buffered; it is
// flushed by WriteTrailer or Flush.
func NewEncoder(w io.Writer) *Encoder {
	bw := bufio.NewWriter(w)
	return &Encoder{bw: bw, out: &countingWriter{w: bw}}
}

// Frames returns the number of frames written.
func (e *Encoder) Frames() int {
	return e.frames
}

// Written returns the number of bytes produced so far, flushed or not.
func (e *Encoder) Written() int64 {
	return e.out.n
}

// LitWidth returns the LZW minimum code size used for image data.
func (e *Encoder) LitWidth() int {
	return e.litWidth
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.out.Write(p)
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	e.err = e.out.WriteByte(b)
}

func writeUint16(b []byte, v uint16) {
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
}

// WriteHeader writes the signature, logical screen descriptor, global color
// table and, when requested, the looping extension.
func (e *Encoder) WriteHeader(h Header) error {
	if e.err != nil {
		return e.err
	}
	if e.started {
		return ErrHeaderWritten
	}
	if h.Width < 1 || h.Width > 0xFFFF || h.Height < 1 || h.Height > 0xFFFF {
		return ErrBadDimensions
	}
	if h.Bits < 1 || h.Bits > 8 || len(h.ColorTable) != 3<<h.Bits {
		return ErrBadColorTable
	}
	e.hdr = h
	e.litWidth = max(h.Bits, 2)
	e.started = true

	_, e.err = io.WriteString(e.out, sigGIF89a)

	// Logical screen descriptor. Color resolution equals the table depth.
	writeUint16(e.buf[0:2], uint16(h.Width))
	writeUint16(e.buf[2:4], uint16(h.Height))
	e.buf[4] = fColorTable | uint8(h.Bits-1)<<4 | uint8(h.Bits-1)
	e.buf[5] = h.BackgroundIndex
	e.buf[6] = 0x00 // pixel aspect ratio
	e.write(e.buf[:7])
	e.write(h.ColorTable)

	if h.LoopCount >= 0 {
		e.buf[0] = extensionIntroducer
		e.buf[1] = labelApplication
		e.buf[2] = 0x0B
		e.write(e.buf[:3])
		_, err := io.WriteString(e.out, "NETSCAPE2.0")
		if e.err == nil {
			e.err = err
		}
		e.buf[0] = 0x03 // sub-block size
		e.buf[1] = 0x01 // loop sub-block id
		writeUint16(e.buf[2:4], uint16(min(h.LoopCount, 0xFFFF)))
		e.buf[4] = 0x00
		e.write(e.buf[:5])
	}
	return e.err
}

// WriteFrame writes one full-screen frame. pix holds Width*Height color
// indices in row-major order.
func (e *Encoder) WriteFrame(pix []uint8, opts FrameOptions) error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		return ErrNoHeader
	}
	if e.finished {
		return ErrFinished
	}
	if len(pix) != e.hdr.Width*e.hdr.Height {
		return ErrFrameSize
	}
	limit := 1 << e.hdr.Bits
	for _, v := range pix {
		if int(v) >= limit {
			return fmt.Errorf("%w: %d >= %d", ErrPixelOutOfRange, v, limit)
		}
	}

	// Graphic control extension.
	e.buf[0] = extensionIntroducer
	e.buf[1] = labelGraphicControl
	e.buf[2] = 0x04
	flags := uint8(opts.Disposal&0x07) << 2
	if opts.Transparent {
		flags |= 0x01
	}
	e.buf[3] = flags
	writeUint16(e.buf[4:6], opts.Delay)
	e.buf[6] = opts.TransparentIndex
	e.buf[7] = 0x00
	e.write(e.buf[:8])

	// Image descriptor: full logical screen, no local color table.
	e.buf[0] = imageSeparator
	writeUint16(e.buf[1:3], 0)
	writeUint16(e.buf[3:5], 0)
	writeUint16(e.buf[5:7], uint16(e.hdr.Width))
	writeUint16(e.buf[7:9], uint16(e.hdr.Height))
	e.buf[9] = 0x00
	e.write(e.buf[:10])

	e.writeByte(uint8(e.litWidth))
	if e.err != nil {
		return e.err
	}

	bw := newBlockWriter(e.out)
	lzw := newLZWEncoder(bw, e.litWidth)
	if _, err := lzw.Write(pix); err != nil {
		e.err = err
		return err
	}
	if err := lzw.Close(); err != nil {
		e.err = err
		return err
	}
	if err := bw.close(); err != nil {
		e.err = err
		return err
	}

	e.frames++
	return nil
}

// WriteTrailer writes the trailer byte and flushes the output.
func (e *Encoder) WriteTrailer() error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		return ErrNoHeader
	}
	if e.finished {
		return ErrFinished
	}
	e.finished = true
	e.writeByte(trailer)
	return e.Flush()
}

// Flush writes buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	e.err = e.bw.Flush()
	return e.err
}
