// Package oled contains drivers for monochrome dot-matrix OLED displays.
package oled

import (
	"errors"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/glowkit/oled/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("OLED_DEBUG") != ""
}

// Configuration errors.
var (
	ErrRotation = errors.New("oled: unsupported rotation")
	ErrBounds   = errors.New("oled: out of display bounds")
)

// Rotation defines the fixed orientation of the panel, chosen at
// construction time.
//
// Rotate90 and Rotate270 swap the logical width and height and are realized
// by transposing the pixel buffer in software before every transfer;
// NoRotation and Rotate180 map straight onto the controller's segment remap
// and COM scan direction flags.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// transposed reports whether the rotation requires a software transpose of
// the pixel buffer.
func (r Rotation) transposed() bool {
	return r == Rotate90 || r == Rotate270
}

// Display is a monochrome OLED display.
type Display interface {
	// Close powers the display off and closes the connection.
	Close() error

	// Clear the display buffer.
	Clear()

	// Fill the display buffer with a single color.
	Fill(color.Color)

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Pixel reports whether the pixel at (x, y) is lit.
	Pixel(x, y int) bool

	// SetPixel turns the pixel at (x, y) on or off.
	SetPixel(x, y int, on bool)

	// Bounds is the display bounding box in logical (post-rotation)
	// coordinates.
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// Framebuffer is the logical pixel buffer the drawing primitives
	// operate on.
	Framebuffer() *pixel.MonoImage

	// Show toggles the display panel on or off. The pixel buffer and the
	// controller RAM are unaffected.
	Show(bool) error

	// Sleep is the inverse of Show.
	Sleep(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// Invert toggles hardware color inversion. Takes effect immediately,
	// without a Refresh.
	Invert(bool) error

	// SetFlip sets the runtime 180° flip on top of the fixed rotation.
	// When update is true the controller is reconfigured and the panel
	// redrawn immediately.
	SetFlip(flipped, update bool) error

	// Flip toggles the flip state.
	Flip(update bool) error

	// Refresh pushes buffer changes to the panel, skipping unchanged
	// pages.
	Refresh() error

	// FullRefresh pushes the whole buffer to the panel regardless of what
	// changed.
	FullRefresh() error

	// Reset performs the hardware reset sequence, if a reset line is
	// configured.
	Reset() error
}

// Config is the display configuration.
type Config struct {
	// Width of the panel in pixels, before rotation.
	Width int

	// Height of the panel in pixels, before rotation.
	Height int

	// Rotation of the display.
	Rotation Rotation

	// Flipped adds a 180° flip on top of Rotation. Can be changed at
	// runtime with SetFlip.
	Flipped bool

	// ExternalVCC must be set when the panel is driven by an external
	// high-voltage supply instead of the internal charge pump.
	ExternalVCC bool

	// PowerOnDelay is an optional settle time after the panel is powered
	// on during init.
	PowerOnDelay time.Duration
}

type baseDisplay struct {
	c Conn
}

func (d *baseDisplay) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *baseDisplay) command(command byte, data ...byte) error {
	return d.c.Command(command, data...)
}

func (d *baseDisplay) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *baseDisplay) Reset() error {
	return d.c.Reset()
}
