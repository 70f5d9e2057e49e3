package draw

import (
	"testing"

	"github.com/glowkit/oled/pixel"
)

func TestText(t *testing.T) {
	i := pixel.NewMonoImage(128, 32)
	Text(i, "Hi", 0, 0, pixel.On)

	var lit int
	for _, v := range i.Pix {
		for ; v != 0; v &= v - 1 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected text to light up pixels")
	}
}

func TestTextDoesNotClear(t *testing.T) {
	// glyph off-pixels must not clear pixels that were already lit
	i := pixel.NewMonoImage(128, 32)
	i.Fill(pixel.On)
	Text(i, "H", 0, 0, pixel.On)

	for _, v := range i.Pix {
		if v != 0xff {
			t.Fatal("expected every pixel to stay lit under the glyph")
		}
	}
}

func TestTextClips(t *testing.T) {
	i := pixel.NewMonoImage(16, 8)
	// way outside the image, must not panic
	Text(i, "clipped", -100, -100, pixel.On)
	Text(i, "clipped", 100, 100, pixel.On)
}

func TestTextWidth(t *testing.T) {
	if TextWidth("") != 0 {
		t.Error("expected empty string to measure 0")
	}
	if w := TextWidth("MM"); w != 2*TextWidth("M") {
		t.Errorf("expected fixed-width advance, got %d", w)
	}
}
