package gifkit

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/gifkit/internal/gifenc"
	"github.com/gogpu/gifkit/internal/raster"
)

// Disposal is the GIF frame disposal method.
type Disposal = gifenc.Disposal

// Disposal methods.
const (
	DisposalUnspecified = gifenc.DisposalUnspecified
	DisposalNone        = gifenc.DisposalNone
	DisposalBackground  = gifenc.DisposalBackground
	DisposalPrevious    = gifenc.DisposalPrevious
)

// MaxDimension is the largest canvas width or height a GIF can describe.
const MaxDimension = 0xFFFF

// state is the lifecycle stage of a Document.
type state uint8

const (
	stateCreated     state = iota // canvas allocated, no output
	statePaletteOpen              // output attached, colors may be added
	stateReady                    // header written, drawing allowed
	stateFinished                 // trailer written or document abandoned
)

// Document is one animated GIF under construction: a fixed-size paletted
// canvas, its global palette and the output stream.
//
// A Document moves through four stages. New allocates the canvas. Create or
// CreateWriter attaches the output. InitEnd seals the palette and writes the
// header, after which the canvas can be drawn and WriteFrame appends frames.
// Finish writes the trailer and closes the output.
//
// A Document is not safe for concurrent use.
type Document struct {
	width, height int

	palette Palette
	canvas  *raster.Canvas
	opts    documentOptions

	state  state
	path   string
	out    io.Writer
	closer io.Closer
	enc    *gifenc.Encoder
}

// New creates a document with a width x height canvas and no output.
// Both dimensions must be in 1..65535.
func New(width, height int, opts ...DocumentOption) (*Document, error) {
	if width < 1 || width > MaxDimension || height < 1 || height > MaxDimension {
		return nil, opError("new", ErrInvalidDimensions)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	canvas := raster.NewCanvas(width, height)
	if o.depthTest {
		canvas.EnableDepth()
	}
	return &Document{
		width:  width,
		height: height,
		canvas: canvas,
		opts:   o,
	}, nil
}

// Create creates a document and opens the GIF file at path for writing.
func Create(path string, width, height int, opts ...DocumentOption) (*Document, error) {
	d, err := New(width, height, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Create(path); err != nil {
		return nil, err
	}
	return d, nil
}

// Create opens the file at path as the document output. The file is closed
// by Finish.
func (d *Document) Create(path string) error {
	if err := d.checkAttach("create"); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return encodingError("create", err)
	}
	d.attach(f, f)
	d.path = path
	return nil
}

// CreateWriter makes w the document output. The caller keeps ownership of
// w; Finish flushes but does not close it.
func (d *Document) CreateWriter(w io.Writer) error {
	if err := d.checkAttach("create"); err != nil {
		return err
	}
	d.attach(w, nil)
	return nil
}

func (d *Document) checkAttach(op string) error {
	switch {
	case d.state == stateFinished:
		return opError(op, ErrDocumentClosed)
	case d.out != nil:
		return opError(op, ErrAlreadyCreated)
	}
	return nil
}

func (d *Document) attach(w io.Writer, c io.Closer) {
	d.out = w
	d.closer = c
	d.enc = gifenc.NewEncoder(w)
	d.state = statePaletteOpen
}

// Width returns the canvas width.
func (d *Document) Width() int {
	return d.width
}

// Height returns the canvas height.
func (d *Document) Height() int {
	return d.height
}

// Palette returns the document palette. It is sealed by InitEnd.
func (d *Document) Palette() *Palette {
	return &d.palette
}

// Frames returns the number of frames written so far.
func (d *Document) Frames() int {
	if d.enc == nil {
		return 0
	}
	return d.enc.Frames()
}

// AddColor registers a 24-bit 0xRRGGBB color and returns its index.
// Indices are assigned in call order starting at 0.
func (d *Document) AddColor(rgb uint32) (int, error) {
	if err := d.checkPalette("add color"); err != nil {
		return 0, err
	}
	idx, err := d.palette.Add(rgb)
	return idx, wrapOp("add color", err)
}

// AddHex registers a color given as "#rrggbb" and returns its index.
func (d *Document) AddHex(s string) (int, error) {
	if err := d.checkPalette("add color"); err != nil {
		return 0, err
	}
	idx, err := d.palette.AddHex(s)
	return idx, wrapOp("add color", err)
}

// AddGradient registers steps colors blended from one color to another and
// returns the index of the first.
func (d *Document) AddGradient(from, to uint32, steps int) (int, error) {
	if err := d.checkPalette("add gradient"); err != nil {
		return 0, err
	}
	idx, err := d.palette.AddGradient(from, to, steps)
	return idx, wrapOp("add gradient", err)
}

// SetColor overwrites the color at index, growing the palette if needed.
func (d *Document) SetColor(index int, rgb uint32) error {
	if err := d.checkPalette("set color"); err != nil {
		return err
	}
	return wrapOp("set color", d.palette.Set(index, rgb))
}

func (d *Document) checkPalette(op string) error {
	switch d.state {
	case stateReady:
		return opError(op, ErrPaletteSealed)
	case stateFinished:
		return opError(op, ErrDocumentClosed)
	}
	return nil
}

// InitEnd seals the palette and writes the GIF header, logical screen
// descriptor, global color table and, if a loop count was set, the looping
// extension. The canvas starts filled with the background index.
func (d *Document) InitEnd() error {
	const op = "init end"
	switch d.state {
	case stateCreated:
		return opError(op, ErrNoOutput)
	case stateReady:
		return opError(op, ErrHeaderWritten)
	case stateFinished:
		return opError(op, ErrDocumentClosed)
	}

	if d.palette.Len() == 0 {
		return opError(op, ErrEmptyPalette)
	}
	if int(d.opts.background) >= d.palette.Len() {
		return opError(op, ErrColorIndex)
	}
	if d.opts.transparent && int(d.opts.transparentIndex) >= d.palette.Len() {
		return opError(op, ErrColorIndex)
	}
	if err := d.palette.Seal(); err != nil {
		return wrapOp(op, err)
	}
	Logger().Debug("gifkit: palette sealed",
		"colors", d.palette.Len(), "bits", d.palette.Bits())

	hdr := gifenc.Header{
		Width:           d.width,
		Height:          d.height,
		Bits:            d.palette.Bits(),
		ColorTable:      d.palette.tableBytes(),
		BackgroundIndex: d.opts.background,
		LoopCount:       d.opts.loopCount,
	}
	if err := d.enc.WriteHeader(hdr); err != nil {
		return d.fail(op, err)
	}

	d.canvas.Clear(d.opts.background)
	d.state = stateReady
	Logger().Debug("gifkit: header written",
		"width", d.width, "height", d.height,
		"bits", hdr.Bits, "lit_width", d.enc.LitWidth(),
		"loop", hdr.LoopCount)
	return nil
}

// checkDraw verifies that the document accepts drawing with color idx.
func (d *Document) checkDraw(op string, idx uint8) error {
	if err := d.checkReady(op); err != nil {
		return err
	}
	if int(idx) >= d.palette.Len() {
		return opError(op, ErrColorIndex)
	}
	return nil
}

func (d *Document) checkReady(op string) error {
	switch d.state {
	case stateReady:
		return nil
	case stateFinished:
		return opError(op, ErrDocumentClosed)
	default:
		return opError(op, ErrNotReady)
	}
}

// Clear fills the canvas with idx, or with the background index when no
// index is given.
func (d *Document) Clear(idx ...uint8) error {
	c := d.opts.background
	if len(idx) > 0 {
		c = idx[0]
	}
	if err := d.checkDraw("clear", c); err != nil {
		return err
	}
	d.canvas.Clear(c)
	return nil
}

// DrawRect fills the pixels whose centers lie in [x, x+w) x [y, y+h).
// The rectangle is clipped to the canvas; w and h must not be negative.
func (d *Document) DrawRect(x, y, w, h int, idx uint8) error {
	const op = "draw rect"
	if err := d.checkDraw(op, idx); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return opError(op, ErrInvalidRect)
	}
	d.canvas.FillRect(x, y, w, h, idx)
	return nil
}

// DrawTriangle projects tri through tr and fills the covered pixels.
// A nil Transform draws the triangle at its object coordinates.
//
// Pixels on an edge shared by two triangles belong to exactly one of them,
// and degenerate triangles draw nothing.
func (d *Document) DrawTriangle(tri r3.Triangle, tr Transform, idx uint8) error {
	if err := d.checkDraw("draw triangle", idx); err != nil {
		return err
	}
	if tr == nil {
		tr = Translate{}
	}
	p, z := tr.project(tri)
	if d.opts.depthTest {
		d.canvas.FillTriangleZ(p[0], p[1], p[2], z, idx)
		return nil
	}
	d.canvas.FillTriangle(p[0], p[1], p[2], idx)
	return nil
}

// DrawPixel sets a single pixel. Coordinates off the canvas are ignored.
func (d *Document) DrawPixel(x, y int, idx uint8) error {
	if err := d.checkDraw("draw pixel", idx); err != nil {
		return err
	}
	d.canvas.SetPixel(x, y, idx)
	return nil
}

// DrawLine draws a one-pixel line including both end points.
func (d *Document) DrawLine(x0, y0, x1, y1 int, idx uint8) error {
	if err := d.checkDraw("draw line", idx); err != nil {
		return err
	}
	d.canvas.DrawLine(x0, y0, x1, y1, idx)
	return nil
}

// DrawPixelZ sets a single pixel at depth z unless something nearer was
// drawn there since the last Clear. Larger z is nearer the viewer.
func (d *Document) DrawPixelZ(x, y int, z float64, idx uint8) error {
	if err := d.checkDraw("draw pixel", idx); err != nil {
		return err
	}
	d.canvas.SetPixelZ(x, y, z, idx)
	return nil
}

// DrawLineZ is DrawLine with depth testing. z runs linearly from z0 at
// (x0, y0) to z1 at (x1, y1).
func (d *Document) DrawLineZ(x0, y0 int, z0 float64, x1, y1 int, z1 float64, idx uint8) error {
	if err := d.checkDraw("draw line", idx); err != nil {
		return err
	}
	d.canvas.DrawLineZ(x0, y0, z0, x1, y1, z1, idx)
	return nil
}

// DrawRectZ is DrawRect with every pixel depth tested at z.
func (d *Document) DrawRectZ(x, y, w, h int, z float64, idx uint8) error {
	const op = "draw rect"
	if err := d.checkDraw(op, idx); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return opError(op, ErrInvalidRect)
	}
	d.canvas.FillRectZ(x, y, w, h, z, idx)
	return nil
}

// WriteFrame appends the current canvas as a frame. The canvas keeps its
// content; call Clear to start the next frame from scratch.
func (d *Document) WriteFrame() error {
	const op = "write frame"
	if err := d.checkReady(op); err != nil {
		return err
	}

	before := d.enc.Written()
	fo := gifenc.FrameOptions{
		Delay:            d.opts.delay,
		Disposal:         d.opts.disposal,
		Transparent:      d.opts.transparent,
		TransparentIndex: d.opts.transparentIndex,
	}
	if err := d.enc.WriteFrame(d.canvas.Pix(), fo); err != nil {
		return d.fail(op, err)
	}

	Logger().Debug("gifkit: frame written",
		"frame", d.enc.Frames()-1,
		"bytes", d.enc.Written()-before,
		"delay", fo.Delay)
	return nil
}

// Finish writes the trailer, flushes and closes the output. After Finish
// every call that changes the document returns ErrDocumentClosed.
//
// Finishing a document whose header was never written releases its output
// and returns ErrNotReady.
func (d *Document) Finish() error {
	const op = "finish"
	switch d.state {
	case stateFinished:
		return opError(op, ErrDocumentClosed)
	case stateCreated, statePaletteOpen:
		d.state = stateFinished
		if err := d.close(); err != nil {
			return encodingError(op, err)
		}
		return opError(op, ErrNotReady)
	}

	if err := d.enc.WriteTrailer(); err != nil {
		return d.fail(op, err)
	}
	d.state = stateFinished
	if err := d.close(); err != nil {
		return encodingError(op, err)
	}

	Logger().Info("gifkit: document finished",
		"path", d.path, "frames", d.enc.Frames(), "bytes", d.enc.Written())
	if st := d.palette.nearestStats(); st.Hits+st.Misses > 0 {
		Logger().Debug("gifkit: color cache",
			"entries", st.Len, "capacity", st.Capacity,
			"hits", st.Hits, "misses", st.Misses)
	}
	return nil
}

// fail abandons the document after an output error. The output is closed
// and any close failure is reported together with err.
func (d *Document) fail(op string, err error) error {
	d.state = stateFinished
	if cerr := d.close(); cerr != nil {
		Logger().Warn("gifkit: close after error failed", "op", op, "error", cerr)
		err = multierr.Append(err, cerr)
	}
	return encodingError(op, err)
}

// close releases the output if the document owns it.
func (d *Document) close() error {
	d.canvas = raster.NewCanvas(0, 0)
	if d.closer == nil {
		return nil
	}
	c := d.closer
	d.closer = nil
	return c.Close()
}

// SetDelay sets the delay of the following frames in hundredths of a second.
func (d *Document) SetDelay(centis uint16) error {
	if d.state == stateFinished {
		return opError("set delay", ErrDocumentClosed)
	}
	d.opts.delay = centis
	return nil
}

// SetDisposal sets the disposal method of the following frames.
func (d *Document) SetDisposal(disposal Disposal) error {
	if d.state == stateFinished {
		return opError("set disposal", ErrDocumentClosed)
	}
	d.opts.disposal = disposal
	return nil
}

// SetTransparentIndex marks idx as transparent in the following frames.
func (d *Document) SetTransparentIndex(idx uint8) error {
	const op = "set transparent index"
	if d.state == stateFinished {
		return opError(op, ErrDocumentClosed)
	}
	if d.state == stateReady && int(idx) >= d.palette.Len() {
		return opError(op, ErrColorIndex)
	}
	d.opts.transparent = true
	d.opts.transparentIndex = idx
	return nil
}

// ClearTransparentIndex turns transparency off for the following frames.
func (d *Document) ClearTransparentIndex() error {
	if d.state == stateFinished {
		return opError("clear transparent index", ErrDocumentClosed)
	}
	d.opts.transparent = false
	d.opts.transparentIndex = 0
	return nil
}

// SetBackgroundIndex sets the background index of the logical screen.
// It must be called before InitEnd.
func (d *Document) SetBackgroundIndex(idx uint8) error {
	if err := d.checkHeader("set background index"); err != nil {
		return err
	}
	d.opts.background = idx
	return nil
}

// SetLoopCount configures the looping extension: 0 loops forever, n > 0
// repeats n times, negative omits it. It must be called before InitEnd.
func (d *Document) SetLoopCount(n int) error {
	if err := d.checkHeader("set loop count"); err != nil {
		return err
	}
	d.opts.loopCount = n
	return nil
}

func (d *Document) checkHeader(op string) error {
	switch d.state {
	case stateReady:
		return opError(op, ErrHeaderWritten)
	case stateFinished:
		return opError(op, ErrDocumentClosed)
	}
	return nil
}

// wrapOp attaches op to the concrete errors returned by the palette.
func wrapOp(op string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Op == "" && e.Err == nil && e.base == nil {
		return opError(op, e)
	}
	return err
}
