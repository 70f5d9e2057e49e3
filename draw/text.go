package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text draws s with the fixed 7x13 basic font, with the top-left of the
// first glyph at (x, y).
func Text(dst Image, s string, x, y int, c color.Color) {
	TextFace(dst, s, x, y, basicfont.Face7x13, c)
}

// TextFace draws s using face, with the top-left of the first glyph at
// (x, y).
//
// Glyphs are composited through their mask, so the off pixels of a glyph
// never clear destination pixels that were already lit.
func TextFace(dst Image, s string, x, y int, face font.Face, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y).Add(fixed.Point26_6{Y: face.Metrics().Ascent}),
	}
	d.DrawString(s)
}

// TextWidth returns the advance of s in pixels when drawn with the basic
// font.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// LoadFontFace parses TTF font data and returns a face with the given point
// size, for use with [TextFace].
func LoadFontFace(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size: size,
	}), nil
}
