// Command gifdemo demonstrates the gifkit GIF engine.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/gifkit"
)

// Palette indices of the demo colors, in registration order.
const (
	black = iota
	blue
	green
	red
	magenta
	yellow
	white
)

var demoColors = []uint32{
	0x000000, 0x0000ff, 0x00ff00, 0xff0000, 0xff00ff, 0xffff00, 0xffffff,
}

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 480, "image height")
		output  = flag.String("output", "demo.gif", "output file")
		frames  = flag.Int("frames", 1, "number of frames; more than one spins the triangles")
		delay   = flag.Int("delay", 4, "frame delay in hundredths of a second")
		bmpOut  = flag.String("bmp", "", "also save the last frame as BMP")
		pngOut  = flag.String("png", "", "also save the last frame as PNG")
		cube    = flag.Bool("cube", false, "draw a spinning depth-tested cube instead of the reference scene")
		verbose = flag.Bool("v", false, "log encoder activity")
	)
	flag.Parse()

	if *verbose {
		gifkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := []gifkit.DocumentOption{gifkit.WithDelay(uint16(min(max(0, *delay), 0xFFFF)))} //nolint:gosec // clamped
	if *frames > 1 {
		opts = append(opts, gifkit.WithLoopCount(0))
	}
	draw := drawScene
	if *cube {
		opts = append(opts, gifkit.WithDepthTest())
		draw = drawCube
	}

	doc, err := gifkit.Create(*output, *width, *height, opts...)
	if err != nil {
		log.Fatalf("Failed to create: %v", err)
	}
	for _, c := range demoColors {
		if _, err := doc.AddColor(c); err != nil {
			log.Fatalf("Failed to add color: %v", err)
		}
	}
	if err := doc.InitEnd(); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	for i := range max(1, *frames) {
		angle := 2 * math.Pi * float64(i) / float64(max(1, *frames))
		if err := draw(doc, angle); err != nil {
			log.Fatalf("Failed to draw frame %d: %v", i, err)
		}
		if err := doc.WriteFrame(); err != nil {
			log.Fatalf("Failed to write frame %d: %v", i, err)
		}
	}

	if *bmpOut != "" {
		if err := doc.SaveBMP(*bmpOut); err != nil {
			log.Fatalf("Failed to save BMP: %v", err)
		}
	}
	if *pngOut != "" {
		if err := doc.SavePNG(*pngOut); err != nil {
			log.Fatalf("Failed to save PNG: %v", err)
		}
	}
	if err := doc.Finish(); err != nil {
		log.Fatalf("Failed to finish: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d frames)\n", *output, *width, *height, doc.Frames())
}

// drawScene draws the reference scene with the rotated triangle spun by
// angle around its Z axis.
func drawScene(doc *gifkit.Document, angle float64) error {
	if err := doc.Clear(); err != nil {
		return err
	}

	// Blue square
	if err := doc.DrawRect(50, 50, 100, 100, blue); err != nil {
		return err
	}

	// Flat green triangle
	tri := gifkit.Tri(0, -50, 0, -50, 50, 0, 50, 50, 0)
	if err := doc.DrawTriangle(tri, gifkit.Translate{DX: 300, DY: 300}, green); err != nil {
		return err
	}

	// Small triangle tumbled in 3D and scaled up
	small := gifkit.Tri(0, -5, 0, -5, 5, 0, 5, 5, 0)
	rot := gifkit.Rotate{DX: 300, DY: 100, Scale: 10}
	rot.Rotation.X = 2.2
	rot.Rotation.Y = 1.0
	rot.Rotation.Z = angle
	if err := doc.DrawTriangle(small, rot, red); err != nil {
		return err
	}

	// Frame around the canvas
	w, h := doc.Width()-1, doc.Height()-1
	for _, l := range [][4]int{{0, 0, w, 0}, {w, 0, w, h}, {w, h, 0, h}, {0, h, 0, 0}} {
		if err := doc.DrawLine(l[0], l[1], l[2], l[3], white); err != nil {
			return err
		}
	}
	return nil
}

// cubeFaces holds the 12 triangles of a cube of side 100 centered on the
// origin, two per face.
var cubeFaces = []r3.Triangle{
	gifkit.Tri(-50, -50, -50, 50, -50, -50, 50, 50, -50),
	gifkit.Tri(-50, -50, -50, 50, 50, -50, -50, 50, -50),
	gifkit.Tri(-50, -50, 50, 50, -50, 50, 50, 50, 50),
	gifkit.Tri(-50, -50, 50, 50, 50, 50, -50, 50, 50),
	gifkit.Tri(-50, -50, -50, -50, 50, -50, -50, 50, 50),
	gifkit.Tri(-50, -50, -50, -50, 50, 50, -50, -50, 50),
	gifkit.Tri(50, -50, -50, 50, 50, -50, 50, 50, 50),
	gifkit.Tri(50, -50, -50, 50, 50, 50, 50, -50, 50),
	gifkit.Tri(-50, -50, -50, 50, -50, -50, 50, -50, 50),
	gifkit.Tri(-50, -50, -50, 50, -50, 50, -50, -50, 50),
	gifkit.Tri(-50, 50, -50, 50, 50, -50, 50, 50, 50),
	gifkit.Tri(-50, 50, -50, 50, 50, 50, -50, 50, 50),
}

// drawCube draws a cube tumbling by angle in the middle of the canvas, one
// color per face. Hidden faces are removed by the depth test.
func drawCube(doc *gifkit.Document, angle float64) error {
	if err := doc.Clear(); err != nil {
		return err
	}
	rot := gifkit.Rotate{
		Rotation: r3.Vec{X: angle, Y: angle / 2, Z: angle / 3},
		DX:       float64(doc.Width()) / 2,
		DY:       float64(doc.Height()) / 2,
	}
	for n, tri := range cubeFaces {
		if err := doc.DrawTriangle(tri, rot, uint8(n/2+1)); err != nil { //nolint:gosec // at most 6
			return err
		}
	}
	return nil
}
