package gifkit

import (
	"image"
	"io"

	intImage "github.com/gogpu/gifkit/internal/image"
)

// opaqueThreshold is the 16-bit alpha at or above which a picture pixel is
// drawn. GIF has no partial transparency.
const opaqueThreshold = 0x8000

// DrawImage blits img with its top-left corner at (x, y). Each pixel is
// mapped to the nearest palette color; pixels less than half opaque are
// skipped. The picture is clipped to the canvas.
func (d *Document) DrawImage(img image.Image, x, y int) error {
	if err := d.checkReady("draw image"); err != nil {
		return err
	}
	d.blit(img, x, y)
	return nil
}

// DrawImageScaled blits img resized to w x h pixels at (x, y). A zero w or h
// draws nothing.
func (d *Document) DrawImageScaled(img image.Image, x, y, w, h int) error {
	const op = "draw image"
	if err := d.checkReady(op); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return opError(op, ErrInvalidRect)
	}
	if w == 0 || h == 0 {
		return nil
	}
	d.blit(intImage.Scale(img, w, h), x, y)
	return nil
}

// DrawImageFile loads a PNG, JPEG, GIF or BMP picture and blits it at
// (x, y). Zero w and h keep the picture size. Otherwise the picture is
// scaled to fit within w x h keeping its aspect ratio; a zero w or h leaves
// that side to follow the ratio.
func (d *Document) DrawImageFile(path string, x, y, w, h int) error {
	const op = "draw image"
	if err := d.checkReady(op); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return opError(op, ErrInvalidRect)
	}
	img, err := intImage.Load(path)
	if err != nil {
		return &Error{Kind: KindConfiguration, Op: "load picture", Err: err}
	}
	d.blitFitted(img, x, y, w, h)
	return nil
}

// DrawImageData decodes a PNG, JPEG, GIF or BMP picture from data and blits
// it like DrawImageFile.
func (d *Document) DrawImageData(data []byte, x, y, w, h int) error {
	const op = "draw image"
	if err := d.checkReady(op); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return opError(op, ErrInvalidRect)
	}
	img, err := intImage.LoadFromBytes(data)
	if err != nil {
		return &Error{Kind: KindConfiguration, Op: "decode picture", Err: err}
	}
	d.blitFitted(img, x, y, w, h)
	return nil
}

func (d *Document) blitFitted(img image.Image, x, y, w, h int) {
	if w == 0 && h == 0 {
		d.blit(img, x, y)
		return
	}
	fw, fh := intImage.Fit(img.Bounds(), w, h)
	if fw == 0 {
		return
	}
	d.blit(intImage.Scale(img, fw, fh), x, y)
}

func (d *Document) blit(img image.Image, x, y int) {
	b := img.Bounds()
	// Clip the source rectangle to the canvas.
	x0, y0 := max(0, -x), max(0, -y)
	x1, y1 := min(b.Dx(), d.width-x), min(b.Dy(), d.height-y)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c := img.At(b.Min.X+px, b.Min.Y+py)
			if _, _, _, a := c.RGBA(); a < opaqueThreshold {
				continue
			}
			d.canvas.SetPixel(x+px, y+py, d.palette.Nearest(c))
		}
	}
}

// Image returns a copy of the current canvas as a paletted image using the
// padded global color table.
func (d *Document) Image() (*image.Paletted, error) {
	if err := d.checkReady("image"); err != nil {
		return nil, err
	}
	img := image.NewPaletted(image.Rect(0, 0, d.width, d.height), d.palette.Table())
	img.Pix = d.canvas.Snapshot()
	return img, nil
}

// EncodeBMP writes the current canvas to w as a BMP image.
func (d *Document) EncodeBMP(w io.Writer) error {
	img, err := d.Image()
	if err != nil {
		return err
	}
	if err := intImage.EncodeBMP(w, img); err != nil {
		return encodingError("encode bmp", err)
	}
	return nil
}

// SaveBMP writes the current canvas to a BMP file at path.
func (d *Document) SaveBMP(path string) error {
	img, err := d.Image()
	if err != nil {
		return err
	}
	if err := intImage.SaveBMP(path, img); err != nil {
		return encodingError("save bmp", err)
	}
	return nil
}

// EncodePNG writes the current canvas to w as a PNG image.
func (d *Document) EncodePNG(w io.Writer) error {
	img, err := d.Image()
	if err != nil {
		return err
	}
	if err := intImage.EncodePNG(w, img); err != nil {
		return encodingError("encode png", err)
	}
	return nil
}

// SavePNG writes the current canvas to a PNG file at path.
func (d *Document) SavePNG(path string) error {
	img, err := d.Image()
	if err != nil {
		return err
	}
	if err := intImage.SavePNG(path, img); err != nil {
		return encodingError("save png", err)
	}
	return nil
}
