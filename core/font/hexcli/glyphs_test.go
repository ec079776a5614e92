package main

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/hexglyph/core/font/hexfont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHex = `
0041:C3C3000000000000000000000000C3C3
25A1:00007FFE4002400240024002400240024002400240024002400240027FFE0000
`

func TestParseCodepoint(t *testing.T) {
	for arg, expected := range map[string]rune{
		"0041":   'A',
		"U+25A1": 0x25a1,
		"0x41":   'A',
		"'A'":    'A',
		"'□'":    0x25a1,
		"ffff":   0xffff,
	} {
		cp, err := parseCodepoint(arg)
		if assert.NoError(t, err, arg) {
			assert.Equal(t, expected, cp, arg)
		}
	}
	for _, arg := range []string{"", "10000", "xyz", "'AB'"} {
		_, err := parseCodepoint(arg)
		assert.Equal(t, core.EINVALID, core.Code(err), arg)
	}
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.cli")
	defer teardown()
	//
	cmd, err := parseCommand("info  glyph:0041 png:0041:/tmp/a:b.png QUIT")
	require.NoError(t, err)
	require.Len(t, cmd.ops, 4)
	assert.Equal(t, INFO, cmd.ops[0].code)
	assert.Equal(t, []string{"0041"}, cmd.ops[1].args)
	assert.Equal(t, []string{"0041", "/tmp/a:b.png"}, cmd.ops[2].args)
	assert.Equal(t, QUIT, cmd.ops[3].code)
	_, err = parseCommand("glyph")
	assert.Error(t, err)
	_, err = parseCommand("frobnicate:1")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestExecuteQuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.cli")
	defer teardown()
	//
	intp := &Intp{font: testFont(t)}
	cmd, err := parseCommand("name:0041 quit glyph:0042")
	require.NoError(t, err)
	quit, err := intp.execute(cmd)
	assert.NoError(t, err)
	assert.True(t, quit)
	cmd, _ = parseCommand("glyph:0042")
	_, err = intp.execute(cmd)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestASCIIGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.cli")
	defer teardown()
	//
	bm, err := testFont(t).Render('A')
	require.NoError(t, err)
	lines := asciiGlyph(bm)
	require.Len(t, lines, hexfont.GlyphHeight)
	assert.Equal(t, "##....##.", lines[0])
	assert.Equal(t, "##+...##+", lines[1])
	assert.Equal(t, ".++....++", lines[2])
	assert.Equal(t, ".........", lines[3])
	assert.Equal(t, "##....##.", lines[14])
	assert.Equal(t, "##+...##+", lines[15])
}

func TestGlyphPNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.cli")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, writeGlyphPNG(&buf, testFont(t), 0x25a1, 2))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 36, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
	_, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, b, "background expected to be black")
	r, _, _, _ := img.At(2, 2).RGBA()
	assert.NotZero(t, r, "expected frame of square to be lit")
}

func TestGlyphSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hexglyph.cli")
	defer teardown()
	//
	sheet := newGlyphSheet(1)
	n := testFont(t).Register(sheet)
	assert.Equal(t, 2, n)
	img := sheet.Image(hexfont.DefaultPalette())
	assert.Equal(t, 18, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
	assert.Equal(t, hexfont.LitBase, img.ColorIndexAt(0, 0), "'A' expected in first cell")
	assert.Equal(t, hexfont.LitBase+1, img.ColorIndexAt(1, 16+1), "square expected in second cell")
	var buf bytes.Buffer
	require.NoError(t, sheet.WritePNG(&buf, 2))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 36, decoded.Bounds().Dx())
}

func TestRampRows(t *testing.T) {
	rows := rampRows()
	require.Len(t, rows, hexfont.ActiveColors+1)
	assert.Equal(t, []string{"0", "0.0000", "0", "background"}, rows[1])
	assert.Equal(t, []string{"1", "0.0100", "1", "shadow"}, rows[2])
	assert.Equal(t, []string{"17", "1.0000", "17", "scanline 15"}, rows[18])
}

func testFont(t *testing.T) *hexfont.Font {
	t.Helper()
	f, err := hexfont.LoadHexFont("test", strings.NewReader(testHex))
	require.NoError(t, err)
	return f
}
