package sim

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/glowkit/oled"
	"github.com/glowkit/oled/pixel"
)

func newTestDisplay(t *testing.T, config *oled.Config) (*Display, *bytes.Buffer) {
	t.Helper()
	d, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	d.w = &out
	return d, &out
}

func TestNew(t *testing.T) {
	d, _ := newTestDisplay(t, nil)
	if w, h := d.Rect.Dx(), d.Rect.Dy(); w != 128 || h != 64 {
		t.Errorf("expected 128x64 default, got %dx%d", w, h)
	}

	t.Run("rotated", func(it *testing.T) {
		d, _ := newTestDisplay(it, &oled.Config{Width: 128, Height: 64, Rotation: oled.Rotate90})
		if w, h := d.Rect.Dx(), d.Rect.Dy(); w != 64 || h != 128 {
			it.Errorf("expected 64x128 after rotation, got %dx%d", w, h)
		}
	})

	t.Run("invalid rotation", func(it *testing.T) {
		if _, err := New(&oled.Config{Rotation: oled.Rotation(5)}); !errors.Is(err, oled.ErrRotation) {
			it.Errorf("expected %v, got %v", oled.ErrRotation, err)
		}
	})
}

func TestRender(t *testing.T) {
	d, out := newTestDisplay(t, &oled.Config{Width: 8, Height: 4})

	d.SetPixel(0, 0, true)
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	first := out.String()
	if first == "" {
		t.Fatal("expected output")
	}
	if lines := strings.Count(first, "\n"); lines != 4 {
		t.Errorf("expected 4 lines, got %d", lines)
	}
	if strings.Contains(first, "\033[4F") {
		t.Error("first frame should not move the cursor up")
	}

	out.Reset()
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[4F") {
		t.Error("second frame should overdraw the first")
	}
}

func TestRenderAsleep(t *testing.T) {
	d, out := newTestDisplay(t, &oled.Config{Width: 8, Height: 4})
	d.Fill(pixel.On)

	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	lit := out.String()

	d.awake = false
	d.drawn = false
	out.Reset()
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if out.String() == lit {
		t.Error("asleep frame should render all pixels off")
	}
}

func TestFlip(t *testing.T) {
	d, out := newTestDisplay(t, &oled.Config{Width: 8, Height: 4})

	if err := d.Flip(false); err != nil {
		t.Fatal(err)
	}
	if !d.flipped {
		t.Error("expected flipped state")
	}
	if out.Len() != 0 {
		t.Error("flip without update should not render")
	}

	if err := d.Flip(true); err != nil {
		t.Fatal(err)
	}
	if d.flipped {
		t.Error("expected flip to toggle back")
	}
	if out.Len() == 0 {
		t.Error("flip with update should render")
	}
}

func TestInvert(t *testing.T) {
	d, out := newTestDisplay(t, &oled.Config{Width: 8, Height: 4})

	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	plain := out.String()

	out.Reset()
	d.drawn = false
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if out.String() == plain {
		t.Error("inverted frame should differ")
	}
}
