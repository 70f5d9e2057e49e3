package pixel

import (
	"image"
	"image/color"
)

// NoKey disables color keying in [MonoImage.Blit].
const NoKey = -1

// MonoImage is a 1-bit per pixel monochrome image in the page-major layout
// used by SSD1xxx and SH1106 OLED controllers.
//
// Each byte covers 8 vertically stacked pixels, least significant bit on top.
// A "page" is one horizontal band of 8 rows, Stride bytes wide, so the pixel
// at (x, y) lives in bit y%8 of Pix[y/8*Stride+x].
type MonoImage struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the packed image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

// NewMonoImage returns a cleared w×h image backed by ceil(h/8)*w bytes.
func NewMonoImage(w, h int) *MonoImage {
	pages := (h + 7) / 8
	return &MonoImage{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, pages*w),
		Stride: w,
	}
}

// Pages is the number of 8-row bands covered by the image.
func (p *MonoImage) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) Bounds() image.Rectangle {
	return p.Rect
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	return Mono{
		On: p.Pix[pos]&bit != 0,
	}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, monoModel(c).(Mono).On)
}

// Pixel reports whether the pixel at (x, y) is lit. Out of bounds pixels
// read as off.
func (p *MonoImage) Pixel(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	return p.Pix[y/8*p.Stride+x]&(1<<uint(y&7)) != 0
}

// SetPixel sets the pixel at (x, y). Out of bounds pixels are silently
// clipped, matching the permissive behavior drawing primitives rely on.
func (p *MonoImage) SetPixel(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Clear the image.
func (p *MonoImage) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// Blit draws src onto p with the top-left corner at (x, y), which may be
// negative.
//
// Source pixel values are translated through palette when a (two entry,
// bit to bit) palette is given. Translated pixels equal to key are treated
// as transparent and leave the destination untouched; pass NoKey to copy
// every pixel. Blitting a glyph with key 0 therefore never clears
// destination pixels that were already lit.
func (p *MonoImage) Blit(src *MonoImage, x, y, key int, palette []uint8) {
	if src == nil {
		return
	}
	var (
		w = src.Rect.Dx()
		h = src.Rect.Dy()
	)
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			v := 0
			if src.Pixel(sx, sy) {
				v = 1
			}
			if len(palette) > v {
				v = int(palette[v] & 1)
			}
			if v == key {
				continue
			}
			p.SetPixel(x+sx, y+sy, v != 0)
		}
	}
}

// Scroll shifts the image contents by (dx, dy). Pixels shifted in from the
// edges keep their previous value.
func (p *MonoImage) Scroll(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	var (
		w = p.Rect.Dx()
		h = p.Rect.Dy()

		y0, y1, ystep = 0, h, 1
		x0, x1, xstep = 0, w, 1
	)
	// Walk away from the source region so pixels are read before they are
	// overwritten.
	if dy > 0 {
		y0, y1, ystep = h-1, -1, -1
	}
	if dx > 0 {
		x0, x1, xstep = w-1, -1, -1
	}
	for y := y0; y != y1; y += ystep {
		sy := y - dy
		if sy < 0 || sy >= h {
			continue
		}
		for x := x0; x != x1; x += xstep {
			sx := x - dx
			if sx < 0 || sx >= w {
				continue
			}
			p.SetPixel(x, y, p.Pixel(sx, sy))
		}
	}
}
