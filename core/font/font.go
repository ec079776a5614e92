/*
Package font is for handling HEX bitmap fonts at the application level.

Some nomenclature: a "font" in this module is a HEX font as loaded from a
file, i.e., a set of 16 pixel high glyph bitmaps for codepoints of the Basic
Multilingual Plane. There is no scaling and there are no styles; a bold
variant of a HEX font is just another font with a different name.

Fonts are referred to by normalized names (see NormalizeFontname), which are
derived from file names. A small set of fonts is packaged with this module;
one of them, "hexglyph-fixed", is the fallback font which is always present.

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/hexglyph/core/font/hexfont"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hexglyph.font'
func tracer() tracing.Trace {
	return tracing.Select("hexglyph.font")
}

// FallbackFontName is the normalized name of the fallback font.
const FallbackFontName = "hexglyph-fixed"

//go:embed packaged/*.hex
var packaged embed.FS

// LoadHexFontFile loads a HEX font from the file system. The font's name is
// the normalized file name.
func LoadHexFontFile(fontfile string) (*hexfont.Font, error) {
	f, err := os.Open(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open font file %s", fontfile)
	}
	defer f.Close()
	return hexfont.LoadHexFont(NormalizeFontname(fontfile), f)
}

// PackagedFontNames lists the normalized names of the fonts packaged with
// this module.
func PackagedFontNames() []string {
	entries, _ := fs.ReadDir(packaged, "packaged")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, NormalizeFontname(e.Name()))
	}
	return names
}

// PackagedFont loads one of the fonts packaged with this module.
func PackagedFont(name string) (*hexfont.Font, error) {
	name = NormalizeFontname(name)
	entries, _ := fs.ReadDir(packaged, "packaged")
	for _, e := range entries {
		if NormalizeFontname(e.Name()) != name {
			continue
		}
		tracer().Debugf("found font %s as packaged font file %s", name, e.Name())
		file, err := packaged.Open(path.Join("packaged", e.Name()))
		if err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "cannot open packaged font %s", name)
		}
		defer file.Close()
		return hexfont.LoadHexFont(name, file)
	}
	return nil, core.Error(core.EMISSING, "no packaged font %s", name)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present.
func FallbackFont() *hexfont.Font {
	fallbackFontLoading.Do(func() {
		var err error
		if fallbackFont, err = PackagedFont(FallbackFontName); err != nil {
			panic("cannot load fallback font") // this cannot happen
		}
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else fails.
var fallbackFont *hexfont.Font

// ---------------------------------------------------------------------------

// NormalizeFontname derives a registry key from a font name or file path:
// directory and extension are removed, spaces replaced and letters lowercased.
//
//	"/usr/share/unifont/Unifont Upper.hex" → "unifont_upper"
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = path.Base(strings.ReplaceAll(fname, "\\", "/"))
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	return strings.ToLower(fname)
}
