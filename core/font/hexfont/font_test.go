package hexfont

import (
	"image/color"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type FontTestEnviron struct {
	suite.Suite
	font *Font
}

// listen for 'go test' command --> run test methods
func TestFontFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.font")
	defer teardown()
	suite.Run(t, new(FontTestEnviron))
}

// run once, before test suite methods
func (env *FontTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("hexglyph.font").SetTraceLevel(tracing.LevelError)
	f, err := os.Open("testdata/sample.hex")
	if err != nil {
		env.T().Fatal(err)
	}
	defer f.Close()
	env.font, err = LoadHexFont("sample", f)
	if err != nil {
		env.T().Fatalf("cannot load sample font: %v", err)
	}
	tracing.Select("hexglyph.font").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *FontTestEnviron) TestCharacterTable() {
	env.Equal('A', env.font.FirstChar())
	env.Equal(rune(0xffff), env.font.LastChar())
	env.Equal(int(0xffff-'A'+1), env.font.NumChars())
	env.Equal(16, env.font.Height())
}

func (env *FontTestEnviron) TestAdvances() {
	env.Equal(9, env.font.Advance('A'))
	env.Equal(SpaceWidth, env.font.Advance('C'), "missing glyph should advance by space width")
	env.Equal(18, env.font.Advance(0x25a1), "wide glyph should advance by 18 pixels")
	env.Equal(SpaceWidth, env.font.Advance(' '), "codepoint outside the table")
	g, ok := env.font.Glyph('C')
	env.True(ok)
	env.False(g.Present())
	env.Nil(g.Image())
	_, ok = env.font.Glyph(0x20)
	env.False(ok)
}

func (env *FontTestEnviron) TestGlyphImage() {
	g, ok := env.font.Glyph(0x25a1)
	env.True(ok)
	img := g.Image()
	env.Require().NotNil(img)
	w, h := img.Size()
	env.Equal(18, w)
	env.Equal(16, h)
	pix, err := img.PalettedPixels()
	env.NoError(err)
	bm, err := env.font.Render(0x25a1)
	env.NoError(err)
	env.Equal(bm.Pix, pix)
}

func (env *FontTestEnviron) TestRenderMissingGlyph() {
	_, err := env.font.Render('C')
	env.Equal(core.EMISSING, core.Code(err))
}

func (env *FontTestEnviron) TestRegister() {
	sink := &recordingSink{sizes: make(map[rune]int)}
	n := env.font.Register(sink)
	env.Equal(5, n)
	env.Equal(9, sink.sizes['A'])
	env.Equal(18, sink.sizes[0x25a1])
	env.NotContains(sink.sizes, 'C')
}

func (env *FontTestEnviron) TestConcurrentRendering() {
	var wg sync.WaitGroup
	results := make([][]uint8, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bm, err := env.font.Render('B')
			if err == nil {
				results[i] = bm.Pix
			}
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(results); i++ {
		env.Equal(results[0], results[i])
	}
}

// --- Plain tests -----------------------------------------------------------

func TestEmptyFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.font")
	defer teardown()
	//
	f, err := LoadHexFont("empty", strings.NewReader("0020:00000000000000000000000000000000\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.NumChars() != 0 {
		t.Errorf("expected empty font to have 0 glyphs, has %d", f.NumChars())
	}
	if f.FirstChar() <= f.LastChar() {
		t.Errorf("expected FirstChar > LastChar for empty font")
	}
	if _, ok := f.Glyph(' '); ok {
		t.Errorf("expected no glyph for space in empty font")
	}
	if f.Advance(' ') != SpaceWidth {
		t.Errorf("expected space to advance by %d", SpaceWidth)
	}
	if n := f.Register(&recordingSink{sizes: make(map[rune]int)}); n != 0 {
		t.Errorf("expected no glyphs to be registered, got %d", n)
	}
}

func TestLoadBrokenFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.font")
	defer teardown()
	//
	f, err := LoadHexFont("broken", strings.NewReader("0041:C3C3000000000000000000000000C3C3\n0042"))
	if err == nil {
		t.Fatalf("expected broken font to fail loading")
	}
	if f != nil {
		t.Errorf("expected no font for broken input, got one")
	}
}

func TestLuminosityRamp(t *testing.T) {
	ramp := LuminosityRamp()
	if len(ramp) != 18 {
		t.Fatalf("expected 18 entries in ramp, have %d", len(ramp))
	}
	if ramp[0] != 0 || ramp[1] > 0.05 {
		t.Errorf("expected background and shadow to be dark, are %g and %g", ramp[0], ramp[1])
	}
	if ramp[2] != 0.5 || ramp[17] < 0.999 || ramp[17] > 1.0+1e-9 {
		t.Errorf("expected gradient from 0.5 to 1.0, is %g to %g", ramp[2], ramp[17])
	}
	for i := 3; i < 18; i++ {
		if ramp[i] <= ramp[i-1] {
			t.Errorf("ramp not increasing at %d", i)
		}
	}
	remap := PatchRemap()
	for i := 0; i < 256; i++ {
		if (i < 18 && remap[i] != uint8(i)) || (i >= 18 && remap[i] != 0) {
			t.Errorf("unexpected remap[%d] = %d", i, remap[i])
		}
	}
}

func TestGradientPalette(t *testing.T) {
	pal := GradientPalette(LuminosityRamp(), color.NRGBA{R: 0xff, G: 0x80, B: 0, A: 0xff})
	if len(pal) != ActiveColors {
		t.Fatalf("expected %d colors, have %d", ActiveColors, len(pal))
	}
	if _, _, _, a := pal[0].RGBA(); a != 0 {
		t.Errorf("expected background to be transparent")
	}
	if c := pal[17].(color.NRGBA); c.R != 0xff || c.G != 0x80 || c.B != 0 {
		t.Errorf("expected brightest color to be the base color, is %v", c)
	}
	if c := pal[2].(color.NRGBA); c.R != 0x80 {
		t.Errorf("expected top scanline at half brightness, is %v", c)
	}
	white := DefaultPalette()[17].(color.NRGBA)
	if white != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("expected default palette to end in white, is %v", white)
	}
}

// --- Helpers ---------------------------------------------------------------

type recordingSink struct {
	sizes map[rune]int
}

func (s *recordingSink) AddFontChar(fontname string, cp rune, img ImageSource) {
	w, _ := img.Size()
	s.sizes[cp] = w
}
