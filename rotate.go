package oled

// remapFlags returns the segment remap and COM scan direction commands for
// the current rotation and flip state.
//
// NoRotation and Rotate180 differ only in these two flags; the runtime flip
// XORs with the base orientation. The transposed orientations are handled
// entirely in software, so their hardware flags stay at the reset-time
// values.
func (d *monoDisplay) remapFlags() (seg, com byte) {
	if !d.rotation.transposed() && (d.rotation == Rotate180) != d.flipped {
		return setSegmentRemapReset, setComScanInc
	}
	return setSegmentRemap, setComScanDec
}

// transpose recomputes the physical buffer from the logical buffer. Called
// before every transfer for Rotate90 and Rotate270; costs a pass over every
// pixel.
func (d *monoDisplay) transpose() {
	var (
		src = d.MonoImage
		dst = d.phys
		lw  = src.Rect.Dx()
		lh  = src.Rect.Dy()
		pw  = dst.Rect.Dx()
		ph  = dst.Rect.Dy()
	)
	// Rotate90 turns the logical image clockwise onto the panel; the flip
	// state selects the opposite direction instead.
	if clockwise := (d.rotation == Rotate90) != d.flipped; clockwise {
		for ly := 0; ly < lh; ly++ {
			px := pw - 1 - ly
			for lx := 0; lx < lw; lx++ {
				dst.SetPixel(px, lx, src.Pixel(lx, ly))
			}
		}
	} else {
		for ly := 0; ly < lh; ly++ {
			for lx := 0; lx < lw; lx++ {
				dst.SetPixel(ly, ph-1-lx, src.Pixel(lx, ly))
			}
		}
	}
}
