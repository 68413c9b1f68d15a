package sprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/ticketsheet/pkg/fonts"
)

func TestRenderIdentity(t *testing.T) {
	face := fonts.Builtin().Face(24)
	s := Render("00042", face, color.Black, 0, 5)

	if got := AlphaBounds(s); got != s.Bounds() {
		t.Errorf("ink bounds %v, want sprite bounds %v", got, s.Bounds())
	}
	if s.Bounds().Dx() <= s.Bounds().Dy() {
		t.Errorf("horizontal text should be wider than tall, got %v", s.Bounds().Size())
	}
}

func TestRenderQuarterTurnsSwapSize(t *testing.T) {
	face := fonts.Builtin().Face(24)
	flat := Render("12345", face, color.Black, 0, 5).Bounds().Size()

	for _, angle := range []float64{90, -90} {
		got := Render("12345", face, color.Black, angle, 5)
		sz := got.Bounds().Size()
		if sz.X != flat.Y || sz.Y != flat.X {
			t.Errorf("angle %v: size %v, want %v", angle, sz, image.Pt(flat.Y, flat.X))
		}
		if ink := AlphaBounds(got); ink != got.Bounds() {
			t.Errorf("angle %v: rotated sprite not tight: ink %v, bounds %v", angle, ink, got.Bounds())
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	face := fonts.Builtin().Face(12)
	for _, text := range []string{"", "   "} {
		s := Render(text, face, color.Black, -90, 3)
		if s.Bounds().Size() != image.Pt(1, 1) {
			t.Errorf("Render(%q) size = %v, want 1x1", text, s.Bounds().Size())
		}
		if s.NRGBAAt(0, 0).A != 0 {
			t.Errorf("Render(%q) should be transparent", text)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	face := fonts.Builtin().Face(16)
	a := Render("No. 7", face, color.White, 33, 4)
	b := Render("No. 7", face, color.White, 33, 4)
	if a.Bounds() != b.Bounds() || string(a.Pix) != string(b.Pix) {
		t.Error("Render should be deterministic")
	}
}

func TestDrawCentersInk(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 120, 120))
	center := image.Pt(60, 50)

	r := Draw(dst, "987", center, fonts.Builtin().Face(20), color.Black, -90, 5)

	if got := r.Min.Add(r.Size().Div(2)); got != center {
		t.Errorf("sprite center = %v, want %v", got, center)
	}
	// Pixels outside the sprite rectangle stay untouched.
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if image.Pt(x, y).In(r) {
				continue
			}
			if dst.RGBAAt(x, y) != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) outside sprite was modified", x, y)
			}
		}
	}
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		size   image.Point
		center image.Point
		want   image.Rectangle
	}{
		{image.Pt(10, 4), image.Pt(50, 50), image.Rect(45, 48, 55, 52)},
		{image.Pt(11, 5), image.Pt(50, 50), image.Rect(45, 48, 56, 53)},
		{image.Pt(1, 1), image.Pt(0, 0), image.Rect(0, 0, 1, 1)},
	}
	for _, tt := range tests {
		if got := Placement(tt.size, tt.center); got != tt.want {
			t.Errorf("Placement(%v, %v) = %v, want %v", tt.size, tt.center, got, tt.want)
		}
	}
}

func TestAlphaBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	if !AlphaBounds(img).Empty() {
		t.Error("transparent image should have empty bounds")
	}
	img.SetNRGBA(2, 3, color.NRGBA{A: 1})
	img.SetNRGBA(7, 5, color.NRGBA{A: 255})
	if got, want := AlphaBounds(img), image.Rect(2, 3, 8, 6); got != want {
		t.Errorf("AlphaBounds() = %v, want %v", got, want)
	}
}
