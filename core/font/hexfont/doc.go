/*
Package hexfont reads bitmap fonts in the HEX format and rasterizes their glyphs.

A HEX font is a plain text file with one glyph per entry:

	0041:0000000018242442427E424242420000

The first token is the codepoint in hexadecimal, the last token holds the glyph's
bitmap: two hex digits per byte, one byte per 8 horizontal pixels, scanlines from
top to bottom. Glyphs are 16 scanlines high, so a 32-digit bitmap describes an
8×16 glyph and a 64-digit bitmap a 16×16 glyph. Well known fonts of this kind are
GNU Unifont and the classic VGA console font.

A Database collects the bitmaps of all glyphs in a single byte arena. Codepoints
map to offsets into this arena, with offset 0 denoting a missing glyph. Glyphs are
rendered on demand into indexed-color bitmaps, where every lit pixel gets a color
index depending on its scanline (a vertical gradient) and casts a one-pixel drop
shadow to the lower right. LuminosityRamp and PatchRemap describe the 18 colors
used by the rendered bitmaps; GradientPalette turns them into a color palette.

Parsing is done once; afterwards a Database, and a Font assembled from it, may
be shared between goroutines for rendering.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package hexfont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hexglyph.font'
func tracer() tracing.Trace {
	return tracing.Select("hexglyph.font")
}
