// Package gifkit draws into a paletted canvas and writes the result as an
// animated GIF89a file.
//
// # Overview
//
// gifkit is a Pure Go engine with no GPU or cgo dependencies. A Document owns
// a fixed-size canvas of palette indices, an ordered global palette of up to
// 256 colors and the output stream. Rectangles, triangles (optionally rotated
// in 3D and projected orthographically), pixels, lines and pictures are
// rasterized into the canvas, and each WriteFrame appends the canvas as one
// LZW-compressed frame.
//
// # Quick Start
//
//	import "github.com/gogpu/gifkit"
//
//	doc, err := gifkit.Create("out.gif", 640, 480, gifkit.WithDelay(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc.AddColor(0x000000) // index 0, background
//	doc.AddColor(0x0000ff) // index 1
//	if err := doc.InitEnd(); err != nil {
//	    log.Fatal(err)
//	}
//
//	doc.DrawRect(50, 50, 100, 100, 1)
//	doc.WriteFrame()
//	doc.Finish()
//
// # Lifecycle
//
// A Document is created (New), gets an output (Create or CreateWriter),
// collects colors (AddColor), seals the palette and writes the header
// (InitEnd), draws and writes frames, and is finished (Finish). Calls made in
// the wrong stage return an error matching ErrSequence.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - A pixel is covered when its center (x+0.5, y+0.5) is inside a shape
//
// Triangles are given in object space as r3.Triangle values. Rotate applies
// rotations about X, then Y, then Z (radians), drops z, scales and
// translates.
//
// # Depth
//
// Drawing is in call order unless WithDepthTest is given, in which case
// DrawTriangle keeps the nearest triangle at each pixel. The rotated z of a
// vertex is its depth and larger z is nearer. DrawPixelZ, DrawLineZ and
// DrawRectZ are always depth tested. Clear resets the depth of every pixel.
//
// # Errors
//
// Every error is an *Error carrying a Kind. Use errors.Is with the kind
// sentinels (ErrConfiguration, ErrPalette, ErrSequence, ErrEncoding) or with
// the concrete errors such as ErrPaletteFull.
package gifkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
