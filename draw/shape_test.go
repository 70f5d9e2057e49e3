package draw

import (
	"image"
	"testing"

	"github.com/glowkit/oled/pixel"
)

func TestLine(t *testing.T) {
	for _, test := range []struct {
		name string
		a, b image.Point
	}{
		{"horizontal", image.Pt(1, 3), image.Pt(10, 3)},
		{"vertical", image.Pt(3, 1), image.Pt(3, 10)},
		{"diagonal", image.Pt(0, 0), image.Pt(9, 9)},
		{"shallow", image.Pt(0, 0), image.Pt(12, 4)},
		{"steep", image.Pt(0, 0), image.Pt(4, 12)},
		{"reversed", image.Pt(12, 9), image.Pt(2, 2)},
		{"point", image.Pt(5, 5), image.Pt(5, 5)},
	} {
		t.Run(test.name, func(t *testing.T) {
			i := pixel.NewMonoImage(16, 16)
			Line(i, test.a, test.b, pixel.On)
			if !i.Pixel(test.a.X, test.a.Y) {
				t.Errorf("expected start point %s to be lit", test.a)
			}
			if !i.Pixel(test.b.X, test.b.Y) {
				t.Errorf("expected end point %s to be lit", test.b)
			}
		})
	}
}

func TestLineClips(t *testing.T) {
	i := pixel.NewMonoImage(8, 8)
	// must not panic, out of bounds pixels are dropped
	Line(i, image.Pt(-5, -5), image.Pt(12, 12), pixel.On)
	if !i.Pixel(3, 3) {
		t.Error("expected in-bounds section of the line to be lit")
	}
}

func TestRectangle(t *testing.T) {
	i := pixel.NewMonoImage(16, 16)
	r := image.Rect(2, 3, 10, 8)
	Rectangle(i, r, pixel.On)

	for _, p := range []image.Point{
		{2, 3}, {9, 3}, {2, 7}, {9, 7}, {5, 3}, {5, 7}, {2, 5}, {9, 5},
	} {
		if !i.Pixel(p.X, p.Y) {
			t.Errorf("expected outline pixel %s to be lit", p)
		}
	}
	if i.Pixel(5, 5) {
		t.Error("expected interior not to be filled")
	}
}

func TestBox(t *testing.T) {
	i := pixel.NewMonoImage(16, 16)
	r := image.Rect(2, 2, 6, 6)
	Box(i, r, pixel.On)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			want := x >= 2 && x < 6 && y >= 2 && y < 6
			if i.Pixel(x, y) != want {
				t.Errorf("pixel (%d,%d) lit=%v, expected %v", x, y, !want, want)
			}
		}
	}
}

func TestEllipse(t *testing.T) {
	i := pixel.NewMonoImage(32, 32)
	Ellipse(i, 16, 16, 10, 6, pixel.On)

	// extremes of both axes
	for _, p := range []image.Point{
		{6, 16}, {26, 16}, {16, 10}, {16, 22},
	} {
		if !i.Pixel(p.X, p.Y) {
			t.Errorf("expected ellipse pixel %s to be lit", p)
		}
	}
	if i.Pixel(16, 16) {
		t.Error("expected center not to be lit for outline ellipse")
	}
}

func TestFilledEllipse(t *testing.T) {
	i := pixel.NewMonoImage(32, 32)
	FilledEllipse(i, 16, 16, 10, 6, pixel.On)

	if !i.Pixel(16, 16) {
		t.Error("expected center to be filled")
	}
	if !i.Pixel(6, 16) || !i.Pixel(26, 16) {
		t.Error("expected horizontal extremes to be lit")
	}
	if i.Pixel(6, 10) {
		t.Error("expected corner outside the ellipse to stay off")
	}
}

func TestEllipseDegenerate(t *testing.T) {
	i := pixel.NewMonoImage(16, 16)
	Ellipse(i, 8, 8, 0, 4, pixel.On) // degenerates to a vertical line
	if !i.Pixel(8, 4) || !i.Pixel(8, 12) {
		t.Error("expected vertical line endpoints to be lit")
	}
	Ellipse(i, 8, 8, 4, 0, pixel.On) // degenerates to a horizontal line
	if !i.Pixel(4, 8) || !i.Pixel(12, 8) {
		t.Error("expected horizontal line endpoints to be lit")
	}
}
