// Package sim implements a terminal emulation of a monochrome OLED display,
// rendering the pixel buffer to stdout with ANSI color codes. Useful for
// developing a front-end while the real panel is still in the mail.
package sim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/glowkit/oled"
	"github.com/glowkit/oled/pixel"
)

// Display renders a monochrome pixel buffer to a terminal. It implements
// the same interface as the hardware drivers; the command surface (reset,
// contrast, invert, flip) is emulated in the renderer.
type Display struct {
	*pixel.MonoImage

	w        io.Writer
	buf      bytes.Buffer
	palette  ansi256.Palette
	contrast uint8
	inverted bool
	flipped  bool
	rotation oled.Rotation
	awake    bool
	drawn    bool
}

// New returns a Display rendering to stdout. A nil config selects a 128x64
// panel.
func New(config *oled.Config) (*Display, error) {
	if config == nil {
		config = &oled.Config{}
	}
	w, h := config.Width, config.Height
	if w == 0 {
		w = 128
	}
	if h == 0 {
		h = 64
	}
	switch config.Rotation {
	case oled.NoRotation, oled.Rotate180:
	case oled.Rotate90, oled.Rotate270:
		w, h = h, w
	default:
		return nil, oled.ErrRotation
	}

	return &Display{
		MonoImage: pixel.NewMonoImage(w, h),
		w:         colorable.NewColorableStdout(),
		palette:   *ansi256.Default,
		contrast:  0xCF,
		flipped:   config.Flipped,
		rotation:  config.Rotation,
		awake:     true,
	}, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("simulated OLED %dx%d", d.Rect.Dx(), d.Rect.Dy())
}

func (d *Display) Framebuffer() *pixel.MonoImage {
	return d.MonoImage
}

func (d *Display) Close() error {
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

func (d *Display) Show(show bool) error {
	d.awake = show
	return d.render()
}

func (d *Display) Sleep(sleeping bool) error {
	return d.Show(!sleeping)
}

func (d *Display) SetContrast(level uint8) error {
	d.contrast = level
	return nil
}

func (d *Display) Invert(invert bool) error {
	d.inverted = invert
	return d.render()
}

func (d *Display) SetFlip(flipped, update bool) error {
	d.flipped = flipped
	if !update {
		return nil
	}
	return d.render()
}

func (d *Display) Flip(update bool) error {
	return d.SetFlip(!d.flipped, update)
}

func (d *Display) Refresh() error {
	return d.render()
}

func (d *Display) FullRefresh() error {
	return d.render()
}

// Reset is a no-op, there is no reset line to sequence.
func (d *Display) Reset() error {
	return nil
}

// render redraws the frame in place, one colored block per pixel.
func (d *Display) render() error {
	var (
		w = d.Rect.Dx()
		h = d.Rect.Dy()
	)
	d.buf.Reset()
	if d.drawn {
		// move the cursor back up to overdraw the previous frame
		fmt.Fprintf(&d.buf, "\033[%dF", h)
	}
	on, off := d.colors()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := x, y
			if d.flipped {
				px, py = w-1-x, h-1-y
			}
			c := off
			if d.awake && d.Pixel(px, py) {
				c = on
			}
			_, _ = d.buf.WriteString(d.palette.Block(color.NRGBAModel.Convert(c).(color.NRGBA)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Display) colors() (on, off color.Color) {
	on = color.Gray{Y: d.contrast}
	off = color.Gray{Y: 0x10}
	if d.inverted {
		on, off = off, on
	}
	return
}

var _ oled.Display = &Display{}
