package hexfont

import (
	"io"

	"github.com/npillmayer/hexglyph/core"
)

// ImageSource produces the pixels of a glyph on request. Pixels are color
// indices in column-major order, see Bitmap.
type ImageSource interface {
	Size() (width, height int)
	PalettedPixels() ([]uint8, error)
}

// TextureSink receives the glyph images of a font, e.g. a texture manager
// of a display subsystem.
type TextureSink interface {
	AddFontChar(fontname string, cp rune, img ImageSource)
}

// Glyph is an entry in a font's character table.
type Glyph struct {
	Codepoint rune
	Advance   int // horizontal advance in pixels
	image     *glyphImage
}

// Present is true if the glyph has a bitmap.
func (g Glyph) Present() bool {
	return g.image != nil
}

// Image returns the glyph's image source, or nil for glyphs without bitmap.
func (g Glyph) Image() ImageSource {
	if g.image == nil {
		return nil
	}
	return g.image
}

// glyphImage renders a glyph run every time its pixels are requested.
type glyphImage struct {
	db  *Database
	run GlyphRun
}

func (gi *glyphImage) Size() (int, int) {
	return gi.run.SourceWidth * CellWidth, GlyphHeight
}

func (gi *glyphImage) PalettedPixels() ([]uint8, error) {
	bm, err := gi.db.Render(gi.run.Offset)
	return bm.Pix, err
}

// Font is a HEX font ready for display: a character table covering all
// codepoints from FirstChar to LastChar.
type Font struct {
	Name  string
	db    *Database
	first rune
	chars []Glyph
}

// NewFont assembles a font from a parsed glyph database. Glyphs present in
// db advance by CellWidth pixels per bitmap byte of a scanline, missing ones
// by SpaceWidth.
func NewFont(name string, db *Database) *Font {
	f := &Font{Name: name, db: db, first: db.FirstChar()}
	if db.Empty() {
		tracer().Infof("HEX font %s has no glyphs", name)
		return f
	}
	f.chars = make([]Glyph, db.LastChar()-db.FirstChar()+1)
	for i := range f.chars {
		cp := f.first + rune(i)
		g := Glyph{Codepoint: cp, Advance: SpaceWidth}
		if run, ok := db.Run(cp); ok {
			g.Advance = run.SourceWidth * CellWidth
			g.image = &glyphImage{db: db, run: run}
		}
		f.chars[i] = g
	}
	tracer().Debugf("HEX font %s covers U+%04X…U+%04X", name, db.FirstChar(), db.LastChar())
	return f
}

// LoadHexFont parses a HEX font from r. If parsing fails, no font is returned.
func LoadHexFont(name string, r io.Reader) (*Font, error) {
	db := NewDatabase()
	if err := db.Parse(r); err != nil {
		tracer().Errorf("cannot load HEX font %s: %v", name, err)
		return nil, err
	}
	return NewFont(name, db), nil
}

// FirstChar is the first codepoint of the character table.
func (f *Font) FirstChar() rune {
	return f.first
}

// LastChar is the last codepoint of the character table. It is smaller than
// FirstChar for fonts without glyphs.
func (f *Font) LastChar() rune {
	return f.first + rune(len(f.chars)) - 1
}

// NumChars is the size of the character table.
func (f *Font) NumChars() int {
	return len(f.chars)
}

// Height is the line height in pixels.
func (f *Font) Height() int {
	return FontHeight
}

// Database returns the glyph database the font has been assembled from.
func (f *Font) Database() *Database {
	return f.db
}

// Glyph returns the character table entry for cp. It returns false for
// codepoints outside the table.
func (f *Font) Glyph(cp rune) (Glyph, bool) {
	i := int(cp - f.first)
	if len(f.chars) == 0 || cp < f.first || i >= len(f.chars) {
		return Glyph{Codepoint: cp, Advance: SpaceWidth}, false
	}
	return f.chars[i], true
}

// Advance returns the horizontal advance of cp in pixels.
func (f *Font) Advance(cp rune) int {
	g, _ := f.Glyph(cp)
	return g.Advance
}

// Render rasterizes the glyph for cp.
func (f *Font) Render(cp rune) (*Bitmap, error) {
	g, _ := f.Glyph(cp)
	if !g.Present() {
		return nil, core.Error(core.EMISSING, "font %s has no glyph for U+%04X", f.Name, cp)
	}
	return f.db.Render(g.image.run.Offset)
}

// Register hands every glyph with a bitmap to sink and returns the number
// of glyphs registered.
func (f *Font) Register(sink TextureSink) int {
	n := 0
	for _, g := range f.chars {
		if g.Present() {
			sink.AddFontChar(f.Name, g.Codepoint, g.image)
			n++
		}
	}
	tracer().Infof("registered %d glyph images of font %s", n, f.Name)
	return n
}
