package oled

import (
	"bytes"
	"fmt"
	"log"

	"github.com/glowkit/oled/pixel"
)

// monoDisplay is the shared session state of the 1-bit page-addressed
// controllers: the logical pixel buffer, the physical (post-rotation)
// buffer, and the per-page snapshot of what the controller RAM last
// received.
type monoDisplay struct {
	baseDisplay
	*pixel.MonoImage // logical buffer, drawing target

	// phys is the buffer in the controller's native orientation. It
	// aliases the logical buffer unless the rotation transposes, in which
	// case it is recomputed from the logical buffer before every
	// transfer.
	phys *pixel.MonoImage

	// shown snapshots each page as last transmitted, so unchanged pages
	// can be skipped. Updated only after a page transfer succeeded.
	shown []byte

	physWidth int
	pages     int
	colOffset int
	rotation  Rotation
	flipped   bool
	halted    bool
}

func (d *monoDisplay) init(config *Config) error {
	switch config.Rotation {
	case NoRotation, Rotate90, Rotate180, Rotate270:
	default:
		return fmt.Errorf("%w: %d", ErrRotation, config.Rotation)
	}

	lw, lh := config.Width, config.Height
	if config.Rotation.transposed() {
		lw, lh = lh, lw
	}

	d.rotation = config.Rotation
	d.flipped = config.Flipped
	d.MonoImage = pixel.NewMonoImage(lw, lh)
	if config.Rotation.transposed() {
		d.phys = pixel.NewMonoImage(config.Width, config.Height)
	} else {
		d.phys = d.MonoImage
	}
	d.physWidth = config.Width
	d.pages = (config.Height + 7) / 8
	d.shown = make([]byte, len(d.phys.Pix))
	return nil
}

// Framebuffer is the logical pixel buffer the drawing primitives operate on.
func (d *monoDisplay) Framebuffer() *pixel.MonoImage {
	return d.MonoImage
}

func (d *monoDisplay) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
	}
	return d.c.Close()
}

func (d *monoDisplay) Show(show bool) error {
	var on byte
	if show {
		on = 0x01
	}
	if err := d.command(setDisplayOff | on); err != nil {
		return err
	}
	d.halted = !show
	return nil
}

func (d *monoDisplay) Sleep(sleeping bool) error {
	return d.Show(!sleeping)
}

func (d *monoDisplay) SetContrast(level uint8) error {
	return d.command(setContrast, level)
}

func (d *monoDisplay) Invert(invert bool) error {
	if invert {
		return d.command(setInvertDisplay)
	}
	return d.command(setNormalDisplay)
}

func (d *monoDisplay) SetFlip(flipped, update bool) error {
	d.flipped = flipped
	if !update {
		return nil
	}
	if !d.rotation.transposed() {
		// flip maps onto the segment remap and COM scan direction flags
		seg, com := d.remapFlags()
		if err := d.commands([]byte{seg}, []byte{com}); err != nil {
			return err
		}
	}
	// segment remap only applies to subsequent RAM writes (and the
	// transposed orientations change the transpose direction), so the
	// whole frame must be pushed again
	return d.FullRefresh()
}

func (d *monoDisplay) Flip(update bool) error {
	return d.SetFlip(!d.flipped, update)
}

func (d *monoDisplay) Refresh() error {
	return d.refresh(false)
}

func (d *monoDisplay) FullRefresh() error {
	return d.refresh(true)
}

// refresh pushes the physical buffer to the controller page by page, in
// ascending page order. Pages whose bytes match the last transmitted
// snapshot are skipped unless full is set.
func (d *monoDisplay) refresh(full bool) error {
	if d.phys != d.MonoImage {
		d.transpose()
	}
	sent := 0
	for page := 0; page < d.pages; page++ {
		var (
			off = page * d.physWidth
			end = off + d.physWidth
			row = d.phys.Pix[off:end]
		)
		if !full && bytes.Equal(d.shown[off:end], row) {
			continue
		}
		if err := d.command(
			setPageStartAddr|byte(page),
			setLowColumn|byte(d.colOffset&0x0f),
			setHighColumn|byte(d.colOffset>>4),
		); err != nil {
			return err
		}
		if err := d.data(row...); err != nil {
			return err
		}
		copy(d.shown[off:end], row)
		sent++
	}
	if debug {
		log.Printf("oled: refresh sent %d of %d pages", sent, d.pages)
	}
	return nil
}
