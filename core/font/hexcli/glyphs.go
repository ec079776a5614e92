package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/hexglyph/core/font/hexfont"
	"golang.org/x/image/draw"
)

// parseCodepoint reads a codepoint argument. Accepted forms are hex numbers
// with an optional "U+" or "0x" prefix, and a single quoted character.
//
//	0041, U+0041, 0x41, 'A'
func parseCodepoint(arg string) (rune, error) {
	arg = strings.TrimSpace(arg)
	if len(arg) >= 3 && arg[0] == '\'' && arg[len(arg)-1] == '\'' {
		r, size := utf8.DecodeRuneInString(arg[1 : len(arg)-1])
		if r != utf8.RuneError && size == len(arg)-2 {
			return r, nil
		}
	}
	hex := arg
	for _, prefix := range []string{"U+", "u+", "0x", "0X"} {
		hex = strings.TrimPrefix(hex, prefix)
	}
	cp, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || cp > hexfont.MaxCodepoint {
		return 0, core.Error(core.EINVALID, "not a BMP codepoint: %q", arg)
	}
	return rune(cp), nil
}

// asciiGlyph draws a bitmap as text, one string per scanline.
func asciiGlyph(bm *hexfont.Bitmap) []string {
	lines := make([]string, bm.Height)
	var sb strings.Builder
	for row := 0; row < bm.Height; row++ {
		sb.Reset()
		for col := 0; col < bm.Width; col++ {
			switch c := bm.At(col, row); {
			case c == hexfont.Background:
				sb.WriteByte('.')
			case c == hexfont.Shadow:
				sb.WriteByte('+')
			default:
				sb.WriteByte('#')
			}
		}
		lines[row] = sb.String()
	}
	return lines
}

// writeGlyphPNG encodes the glyph for cp as a PNG, enlarged by scale.
func writeGlyphPNG(w io.Writer, f *hexfont.Font, cp rune, scale int) error {
	bm, err := f.Render(cp)
	if err != nil {
		return err
	}
	img := scaled(bm.Paletted(hexfont.DefaultPalette()), scale)
	if err = png.Encode(w, img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode glyph U+%04X", cp)
	}
	return nil
}

// --- Glyph sheet -----------------------------------------------------------

type sheetCell struct {
	cp  rune
	img hexfont.ImageSource
}

// glyphSheet collects the glyph images of a font and arranges them in a grid.
type glyphSheet struct {
	columns int
	cells   []sheetCell
}

var _ hexfont.TextureSink = (*glyphSheet)(nil)

func newGlyphSheet(columns int) *glyphSheet {
	if columns <= 0 {
		columns = 16
	}
	return &glyphSheet{columns: columns}
}

func (sheet *glyphSheet) AddFontChar(fontname string, cp rune, img hexfont.ImageSource) {
	tracer().Debugf("sheet: adding glyph U+%04X of %s", cp, fontname)
	sheet.cells = append(sheet.cells, sheetCell{cp: cp, img: img})
}

// cellSize is the size of a grid cell, wide enough for double-width glyphs.
func (sheet *glyphSheet) cellSize() (int, int) {
	return 2 * hexfont.CellWidth, hexfont.GlyphHeight
}

// Image composes the collected glyphs into a paletted image. Glyphs which
// fail to render leave their cell blank.
func (sheet *glyphSheet) Image(pal color.Palette) *image.Paletted {
	cw, ch := sheet.cellSize()
	rows := (len(sheet.cells) + sheet.columns - 1) / sheet.columns
	img := image.NewPaletted(image.Rect(0, 0, sheet.columns*cw, rows*ch), pal)
	for i, cell := range sheet.cells {
		w, h := cell.img.Size()
		pix, err := cell.img.PalettedPixels()
		if err != nil {
			tracer().Errorf("sheet: glyph U+%04X: %v", cell.cp, err)
			continue
		}
		x0, y0 := (i%sheet.columns)*cw, (i/sheet.columns)*ch
		for col := 0; col < w && col < cw; col++ {
			for row := 0; row < h && row < ch; row++ {
				img.SetColorIndex(x0+col, y0+row, pix[col*h+row])
			}
		}
	}
	return img
}

// WritePNG encodes the sheet on a black background, enlarged by scale.
func (sheet *glyphSheet) WritePNG(w io.Writer, scale int) error {
	src := sheet.Image(hexfont.DefaultPalette())
	dst := scaled(src, scale)
	if err := png.Encode(w, dst); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode glyph sheet")
	}
	return nil
}

// scaled enlarges img by an integer factor onto a black background.
func scaled(img image.Image, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// rampRows tabulates the luminosity ramp together with the palette remap.
func rampRows() [][]string {
	ramp := hexfont.LuminosityRamp()
	remap := hexfont.PatchRemap()
	rows := [][]string{{"Index", "Luminosity", "Remap", "Use"}}
	for i, lum := range ramp {
		use := fmt.Sprintf("scanline %d", i-int(hexfont.LitBase))
		switch uint8(i) {
		case hexfont.Background:
			use = "background"
		case hexfont.Shadow:
			use = "shadow"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(lum, 'f', 4, 64),
			strconv.Itoa(int(remap[i])),
			use,
		})
	}
	return rows
}
