package hexfont

import (
	"image/color"
)

// ActiveColors is the number of color indices used by rendered glyphs:
// background, shadow and one index per scanline.
const ActiveColors = 2 + GlyphHeight

// LuminosityRamp returns the brightness of each color index. The background
// is black, the shadow nearly so, and the scanline colors form a linear
// gradient from 0.5 at the top to 1.0 at the bottom.
func LuminosityRamp() [ActiveColors]float64 {
	var ramp [ActiveColors]float64
	ramp[Background] = 0
	ramp[Shadow] = 0.01
	// 15 steps, so that the bottom scanline reaches full brightness
	step := 0.5 / float64(ActiveColors-int(LitBase)-1)
	for i := int(LitBase); i < ActiveColors; i++ {
		ramp[i] = 0.5 + float64(i-int(LitBase))*step
	}
	return ramp
}

// PatchRemap returns the color translation table for rendered glyphs:
// the active colors map to themselves, everything else to 0.
func PatchRemap() [256]uint8 {
	var remap [256]uint8
	for i := 0; i < ActiveColors; i++ {
		remap[i] = uint8(i)
	}
	return remap
}

// GradientPalette builds a palette for rendered glyphs. Index 0 is
// transparent, all other indices are base darkened by their ramp value.
func GradientPalette(ramp [ActiveColors]float64, base color.Color) color.Palette {
	c := color.NRGBAModel.Convert(base).(color.NRGBA)
	pal := make(color.Palette, ActiveColors)
	pal[Background] = color.NRGBA{}
	for i := 1; i < ActiveColors; i++ {
		lum := clamp01(ramp[i])
		pal[i] = color.NRGBA{
			R: uint8(float64(c.R)*lum + 0.5),
			G: uint8(float64(c.G)*lum + 0.5),
			B: uint8(float64(c.B)*lum + 0.5),
			A: 0xff,
		}
	}
	return pal
}

// DefaultPalette is a white-on-transparent gradient palette.
func DefaultPalette() color.Palette {
	return GradientPalette(LuminosityRamp(), color.White)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	} else if x > 1 {
		return 1
	}
	return x
}
