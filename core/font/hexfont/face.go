package hexfont

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Vertical metrics of HEX fonts, in pixels. The baseline sits between
// scanlines 13 and 14.
const (
	Ascent  = 14
	Descent = GlyphHeight - Ascent
)

// Face adapts a Font to golang.org/x/image/font.Face. Glyph masks carry the
// luminosity of each color index as alpha, so shadows are faint and lower
// scanlines are brighter.
type Face struct {
	font  *Font
	alpha [ActiveColors]uint8
}

var _ xfont.Face = (*Face)(nil)

// NewFace creates a font face for f.
func NewFace(f *Font) *Face {
	face := &Face{font: f}
	for i, lum := range LuminosityRamp() {
		face.alpha[i] = uint8(clamp01(lum)*0xff + 0.5)
	}
	face.alpha[Background] = 0
	return face
}

// Close is a no-op.
func (face *Face) Close() error {
	return nil
}

// Glyph returns the mask for r, positioned with its baseline at dot.
// Codepoints inside the font's character table without a bitmap have an empty
// mask and advance by SpaceWidth.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	g, ok := face.font.Glyph(r)
	if !ok {
		return
	}
	advance = fixed.I(g.Advance)
	x0, y0 := dot.X.Round(), dot.Y.Round()-Ascent
	if !g.Present() {
		dr = image.Rect(x0, y0, x0, y0)
		mask = image.NewAlpha(image.Rectangle{})
		return
	}
	bm, err := face.font.Render(r)
	if err != nil {
		tracer().Errorf("cannot render glyph U+%04X: %v", r, err)
	}
	dr = image.Rect(x0, y0, x0+bm.Width, y0+bm.Height)
	mask = face.alphaMask(bm)
	return dr, mask, image.Point{}, advance, true
}

func (face *Face) alphaMask(bm *Bitmap) *image.Alpha {
	a := image.NewAlpha(image.Rect(0, 0, bm.Width, bm.Height))
	for col := 0; col < bm.Width; col++ {
		for row := 0; row < bm.Height; row++ {
			if ix := bm.Pix[col*bm.Height+row]; int(ix) < ActiveColors {
				a.Pix[row*a.Stride+col] = face.alpha[ix]
			}
		}
	}
	return a
}

// GlyphBounds returns the bounding box of r relative to the dot.
func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g, ok := face.font.Glyph(r)
	if !ok {
		return
	}
	advance = fixed.I(g.Advance)
	if g.Present() {
		w, _ := g.Image().Size()
		bounds = fixed.R(0, -Ascent, w, Descent)
	}
	return bounds, advance, true
}

// GlyphAdvance returns the advance width of r.
func (face *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	g, ok := face.font.Glyph(r)
	if !ok {
		return 0, false
	}
	return fixed.I(g.Advance), true
}

// Kern returns GlobalKerning; HEX fonts carry no kerning information.
func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return fixed.I(GlobalKerning)
}

// Metrics returns the vertical metrics shared by all HEX fonts.
func (face *Face) Metrics() xfont.Metrics {
	return xfont.Metrics{
		Height:  fixed.I(GlyphHeight),
		Ascent:  fixed.I(Ascent),
		Descent: fixed.I(Descent),
	}
}
