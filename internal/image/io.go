// Package image loads pictures for blitting into a canvas and writes canvas
// snapshots in interchange formats.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")

	// ErrEmptyImage is returned when encoding an image with no pixels.
	ErrEmptyImage = errors.New("image: empty image")
)

// The bmp package does not register itself; the others do on import.
func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// Load loads a picture from the given file path, detecting the format from
// its content. Supported formats: PNG, JPEG, GIF, BMP.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadFromBytes decodes a picture from a byte slice.
func LoadFromBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes a picture from r, detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// EncodeBMP encodes img as an uncompressed BMP.
func EncodeBMP(w io.Writer, img image.Image) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SaveBMP writes img to a BMP file at path.
func SaveBMP(path string, img image.Image) error {
	return save(path, img, EncodeBMP)
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	return save(path, img, EncodePNG)
}

func save(path string, img image.Image, encode func(io.Writer, image.Image) error) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return encode(f, img)
}
