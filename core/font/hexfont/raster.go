package hexfont

import (
	"fmt"
	"image"
	"image/color"

	"github.com/npillmayer/hexglyph/core"
)

// Color indices used in rendered bitmaps. Lit pixels of scanline y have
// index LitBase+y.
const (
	Background uint8 = 0
	Shadow     uint8 = 1
	LitBase    uint8 = 2
)

// ErrGlyphSize is reported for glyph runs whose byte count is not a positive
// multiple of GlyphHeight. Rendering substitutes a blank bitmap.
var ErrGlyphSize = core.Error(core.EINVALID, "inconsistent glyph size")

// Bitmap is a rendered glyph with 8-bit color indices. Pixels are stored
// column by column: the pixel at (col, row) is Pix[col*Height+row].
type Bitmap struct {
	Width, Height int
	Pix           []uint8
}

func newBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the color index at (col, row), or Background for positions
// outside the bitmap.
func (bm *Bitmap) At(col, row int) uint8 {
	if col < 0 || row < 0 || col >= bm.Width || row >= bm.Height {
		return Background
	}
	return bm.Pix[col*bm.Height+row]
}

// Paletted converts the bitmap to a row-major paletted image.
func (bm *Bitmap) Paletted(pal color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, bm.Width, bm.Height), pal)
	for col := 0; col < bm.Width; col++ {
		for row := 0; row < bm.Height; row++ {
			img.Pix[row*img.Stride+col] = bm.Pix[col*bm.Height+row]
		}
	}
	return img
}

// Render rasterizes the glyph run starting at arena offset off.
//
// Each bitmap byte of the run covers 8 horizontal pixels of a scanline, most
// significant bit first. The result is GlyphHeight pixels high and CellWidth
// pixels wide per bitmap byte of a scanline. A lit pixel in scanline y gets
// color index LitBase+y, and the pixel one to the right and one below gets
// Shadow, unless it is lit itself.
//
// Runs with an inconsistent size produce a blank bitmap together with an error
// wrapping ErrGlyphSize.
func (db *Database) Render(off Offset) (*Bitmap, error) {
	count, err := db.ByteCount(off)
	if err != nil {
		return blank(1), err
	}
	width := sourceWidth(count)
	if count == 0 || count%GlyphHeight != 0 {
		tracer().Errorf("glyph run at offset %d has %d bytes, not a multiple of %d", off, count, GlyphHeight)
		return blank(width), fmt.Errorf("run at offset %d has %d bytes: %w", off, count, ErrGlyphSize)
	}
	src, ok := db.runBytes(off, count)
	if !ok {
		return blank(width), fmt.Errorf("run at offset %d exceeds glyph arena: %w", off, ErrGlyphSize)
	}
	return rasterize(src, width), nil
}

// rasterize expands the bitmap bytes of a glyph, width bytes per scanline.
// len(src) must be width*GlyphHeight.
func rasterize(src []byte, width int) *Bitmap {
	const h = GlyphHeight
	bm := newBitmap(width*CellWidth, h)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < width; x++ {
			b := src[i]
			i++
			start := 8*x*h + y
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>bit) == 0 {
					continue
				}
				p := start + bit*h
				bm.Pix[p] = LitBase + uint8(y)
				if y != h-1 {
					bm.Pix[p+h+1] = Shadow // one column right, one row down
				}
			}
		}
	}
	return bm
}

func blank(width int) *Bitmap {
	if width < 1 {
		width = 1
	}
	return newBitmap(width*CellWidth, GlyphHeight)
}
