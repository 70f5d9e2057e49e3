package oled

import (
	"errors"
	"testing"
)

func TestRotationString(t *testing.T) {
	for r, want := range map[Rotation]string{
		NoRotation: "0°",
		Rotate90:   "90°",
		Rotate180:  "180°",
		Rotate270:  "270°",
	} {
		if got := r.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestRotationInvalid(t *testing.T) {
	_, err := SH1106(&testConn{}, &Config{Rotation: Rotation(7)})
	if !errors.Is(err, ErrRotation) {
		t.Errorf("expected ErrRotation, got %v", err)
	}
}

func TestRotate90Bounds(t *testing.T) {
	d, _ := newTestSH1106(t, &Config{Width: 128, Height: 64, Rotation: Rotate90})
	if got := d.Bounds(); got.Dx() != 64 || got.Dy() != 128 {
		t.Errorf("expected logical bounds 64x128, got %s", got)
	}
	if len(d.phys.Pix) != len(d.MonoImage.Pix) {
		t.Error("expected physical buffer to match logical buffer size")
	}
	if d.phys == d.MonoImage {
		t.Error("expected a separate physical buffer for Rotate90")
	}
}

func TestRotate180SharesBuffer(t *testing.T) {
	d, _ := newTestSH1106(t, &Config{Rotation: Rotate180})
	if d.phys != d.MonoImage {
		t.Error("expected Rotate180 to be realized in hardware flags only")
	}
	if seg, com := d.remapFlags(); seg != setSegmentRemapReset || com != setComScanInc {
		t.Errorf("expected reversed remap flags, got %#02x %#02x", seg, com)
	}
}

func TestRemapFlagsFlipXOR(t *testing.T) {
	for _, test := range []struct {
		rotation Rotation
		flipped  bool
		reversed bool
	}{
		{NoRotation, false, false},
		{NoRotation, true, true},
		{Rotate180, false, true},
		{Rotate180, true, false}, // flip undoes the 180 base
	} {
		d := &monoDisplay{rotation: test.rotation, flipped: test.flipped}
		seg, _ := d.remapFlags()
		if got := seg == setSegmentRemapReset; got != test.reversed {
			t.Errorf("rotation %s flipped=%v: expected reversed=%v",
				test.rotation, test.flipped, test.reversed)
		}
	}
}

func TestTranspose90(t *testing.T) {
	d, _ := newTestSH1106(t, &Config{Width: 128, Height: 64, Rotation: Rotate90})

	// logical top-left lands in the physical top-right corner under a
	// clockwise transpose
	d.SetPixel(0, 0, true)
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if !d.phys.Pixel(127, 0) {
		t.Error("expected logical (0,0) at physical (127,0)")
	}
	if d.phys.Pix[127] != 0x01 {
		t.Errorf("expected physical page byte 0x01, got %#02x", d.phys.Pix[127])
	}
}

func TestTranspose270(t *testing.T) {
	d, _ := newTestSH1106(t, &Config{Width: 128, Height: 64, Rotation: Rotate270})

	d.SetPixel(0, 0, true)
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if !d.phys.Pixel(0, 63) {
		t.Error("expected logical (0,0) at physical (0,63)")
	}
}

func TestTransposeFlipDirection(t *testing.T) {
	d, _ := newTestSH1106(t, &Config{Width: 128, Height: 64, Rotation: Rotate90})

	d.SetPixel(0, 0, true)
	if err := d.SetFlip(true, true); err != nil {
		t.Fatal(err)
	}
	// flipped 90 transposes the other way around
	if !d.phys.Pixel(0, 63) {
		t.Error("expected flipped logical (0,0) at physical (0,63)")
	}
	if d.phys.Pixel(127, 0) {
		t.Error("expected the clockwise corner to be cleared after the flip")
	}
}

func TestTransposeConsistency(t *testing.T) {
	d, _ := newTestSH1106(t, &Config{Width: 128, Height: 64, Rotation: Rotate90})

	// every logical pixel must land on a unique physical pixel
	d.Clear()
	d.SetPixel(10, 20, true)
	d.SetPixel(63, 127, true)
	d.transpose()

	var lit int
	for _, v := range d.phys.Pix {
		for ; v != 0; v &= v - 1 {
			lit++
		}
	}
	if lit != 2 {
		t.Errorf("expected 2 lit physical pixels, got %d", lit)
	}
}
