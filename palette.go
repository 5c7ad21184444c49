package gifkit

import (
	"image/color"
	"math/bits"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/gifkit/internal/cache"
)

// MaxColors is the capacity of a GIF color table.
const MaxColors = 256

// nearestCacheSize bounds the Nearest lookup cache.
const nearestCacheSize = 4096

// Palette is the ordered global color table of a Document.
//
// Indices are assigned in registration order starting at 0; index 0 is the
// conventional background. Once sealed, the palette is immutable and reports
// the bit depth and padded table the encoder writes.
type Palette struct {
	colors []uint32 // 0xRRGGBB
	sealed bool
	bits   int

	// nearest caches Nearest lookups; created on first use after sealing.
	nearest *cache.LRU[color.NRGBA, uint8]
}

// Len returns the number of registered colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Sealed reports whether the palette has been frozen.
func (p *Palette) Sealed() bool {
	return p.sealed
}

// Color returns the 0xRRGGBB value at index i.
func (p *Palette) Color(i int) (uint32, bool) {
	if i < 0 || i >= len(p.colors) {
		return 0, false
	}
	return p.colors[i], true
}

// Add appends a 24-bit color and returns its index.
func (p *Palette) Add(rgb uint32) (int, error) {
	if p.sealed {
		return 0, ErrPaletteSealed
	}
	if len(p.colors) >= MaxColors {
		return 0, ErrPaletteFull
	}
	p.colors = append(p.colors, rgb&0xffffff)
	return len(p.colors) - 1, nil
}

// AddHex appends a color given as "#rrggbb" (or "#rgb").
func (p *Palette) AddHex(s string) (int, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, &Error{Kind: KindConfiguration, Op: "parse color", Err: err}
	}
	return p.Add(packRGB(c.RGB255()))
}

// AddGradient appends steps colors blended from one color to another in
// CIE L*a*b* space, both ends included. It returns the index of the first
// appended color. Either all colors fit or none are added.
func (p *Palette) AddGradient(from, to uint32, steps int) (int, error) {
	if p.sealed {
		return 0, ErrPaletteSealed
	}
	if steps <= 0 {
		return len(p.colors), nil
	}
	if len(p.colors)+steps > MaxColors {
		return 0, ErrPaletteFull
	}

	c1 := colorfulOf(from)
	c2 := colorfulOf(to)
	first := len(p.colors)
	for i := range steps {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		p.colors = append(p.colors, packRGB(c1.BlendLab(c2, t).Clamped().RGB255()))
	}
	return first, nil
}

// Set overwrites the color at index i. Setting an index at or beyond Len
// grows the palette; skipped entries are black.
func (p *Palette) Set(i int, rgb uint32) error {
	if p.sealed {
		return ErrPaletteSealed
	}
	if i < 0 || i >= MaxColors {
		return ErrColorIndex
	}
	for len(p.colors) <= i {
		p.colors = append(p.colors, 0)
	}
	p.colors[i] = rgb & 0xffffff
	return nil
}

// Seal freezes the palette and computes the color-table bit depth.
func (p *Palette) Seal() error {
	if p.sealed {
		return ErrPaletteSealed
	}
	if len(p.colors) == 0 {
		return ErrEmptyPalette
	}
	p.bits = tableBits(len(p.colors))
	p.sealed = true
	return nil
}

// Bits returns the color table bit depth. It is 0 until the palette is sealed.
func (p *Palette) Bits() int {
	return p.bits
}

// TableSize returns the number of entries in the padded color table.
func (p *Palette) TableSize() int {
	if !p.sealed {
		return 0
	}
	return 1 << p.bits
}

// Table returns the padded color table. Entries past Len repeat the color at
// index 0. Before sealing it returns only the registered colors.
func (p *Palette) Table() color.Palette {
	n := len(p.colors)
	if p.sealed {
		n = 1 << p.bits
	}
	t := make(color.Palette, n)
	for i := range t {
		rgb := p.colors[0]
		if i < len(p.colors) {
			rgb = p.colors[i]
		}
		t[i] = rgbaOf(rgb)
	}
	return t
}

// tableBytes returns the padded color table as packed RGB triples.
func (p *Palette) tableBytes() []byte {
	n := 1 << p.bits
	b := make([]byte, 0, 3*n)
	for i := range n {
		rgb := p.colors[0]
		if i < len(p.colors) {
			rgb = p.colors[i]
		}
		b = append(b, byte(rgb>>16), byte(rgb>>8), byte(rgb))
	}
	return b
}

// Nearest returns the index of the registered color closest to c in
// L*a*b* distance. Ties resolve to the lower index. The palette must not be
// empty.
func (p *Palette) Nearest(c color.Color) uint8 {
	key := color.NRGBAModel.Convert(c).(color.NRGBA)
	key.A = 0xff
	if !p.sealed {
		return p.search(key)
	}
	if p.nearest == nil {
		p.nearest = cache.New[color.NRGBA, uint8](nearestCacheSize)
	}
	return p.nearest.GetOrCreate(key, func() uint8 { return p.search(key) })
}

// nearestStats reports the Nearest cache counters. It is zero until a
// sealed palette has been searched.
func (p *Palette) nearestStats() cache.Stats {
	if p.nearest == nil {
		return cache.Stats{}
	}
	return p.nearest.Stats()
}

// search scans the palette for the color closest to key.
func (p *Palette) search(key color.NRGBA) uint8 {
	target, _ := colorful.MakeColor(key)
	best := 0
	bestDist := -1.0
	for i, rgb := range p.colors {
		d := target.DistanceLab(colorfulOf(rgb))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// tableBits returns max(1, ceil(log2(n))).
func tableBits(n int) int {
	if n <= 2 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

func packRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func rgbaOf(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

func colorfulOf(rgb uint32) colorful.Color {
	c, _ := colorful.MakeColor(rgbaOf(rgb))
	return c
}
