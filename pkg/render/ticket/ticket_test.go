package ticket

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/ticketsheet/pkg/design"
)

var red = color.RGBA{255, 0, 0, 255}

func fullScale() design.Dimensions { return design.Resolve(design.DefaultBase(), 1) }

func writeSolidPNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.png")
	if err := imaging.Save(imaging.New(w, h, c), path); err != nil {
		t.Fatal(err)
	}
	return path
}

func isRed(c color.RGBA) bool { return c.R > 200 && c.G < 50 && c.B < 50 }

func TestFrontDeterministic(t *testing.T) {
	c := New(Options{Dimensions: design.Resolve(design.DefaultBase(), 0.5)})
	a, b := c.Front("007"), c.Front("007")
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Front should be pixel-identical for the same number")
	}
	if bytes.Equal(a.Pix, c.Front("008").Pix) {
		t.Error("different numbers should render differently")
	}
}

func TestFrontSize(t *testing.T) {
	d := design.Resolve(design.DefaultBase(), 0.5)
	c := New(Options{Dimensions: d})
	for name, img := range map[string]*image.RGBA{"front": c.Front("1"), "back": c.Back("1")} {
		if got, want := img.Bounds().Size(), image.Pt(d.Width, d.Height); got != want {
			t.Errorf("%s size = %v, want %v", name, got, want)
		}
	}
}

func TestFrontStubAndPerforation(t *testing.T) {
	d := fullScale()
	p := DefaultPalette()
	img := New(Options{Dimensions: d}).Front("042")

	if got := img.RGBAAt(0, d.Height/2); got != p.Border {
		t.Errorf("left border = %v, want %v", got, p.Border)
	}
	if got := img.RGBAAt(d.BorderWidth+3, d.BorderWidth+3); got != p.Stub {
		t.Errorf("stub corner = %v, want %v", got, p.Stub)
	}
	// First dash starts right below the top border, the gap follows it.
	if got := img.RGBAAt(d.StubWidth, d.BorderWidth); got != p.Border {
		t.Errorf("perforation dash = %v, want %v", got, p.Border)
	}
	if got := img.RGBAAt(d.StubWidth, d.BorderWidth+d.PerforationDash); got != p.Background {
		t.Errorf("perforation gap = %v, want %v", got, p.Background)
	}

	// The rotated number puts ink around the stub center.
	found := false
	cx := d.StubWidth/2 + d.NumberOffset
	for y := d.Height/2 - 20; y < d.Height/2+20 && !found; y++ {
		for x := cx - 10; x < cx+10; x++ {
			if img.RGBAAt(x, y) != p.Stub {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no number ink near the stub center")
	}
}

func TestFrontWithoutStub(t *testing.T) {
	base := design.DefaultBase()
	base.StubWidth = 0
	d := design.Resolve(base, 1)
	if d.HasStub() || d.HasPerforation() {
		t.Fatal("zero stub should disable stub and perforation")
	}
	p := DefaultPalette()
	img := New(Options{Dimensions: d}).Front("001")

	// Left part of the body at mid height is plain background: no stub fill,
	// no rotated number and no perforation.
	for y := d.BorderWidth; y < d.Height-d.BorderWidth; y++ {
		for x := d.BorderWidth; x < 60; x++ {
			if got := img.RGBAAt(x, y); got != p.Background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
	if x0, x1 := d.ContentBounds(); x0 != d.BodyMargin || x1 != d.Width-d.BodyMargin {
		t.Errorf("content bounds = (%d,%d), want full-width body", x0, x1)
	}
}

func TestFrontCaptionPatch(t *testing.T) {
	d := fullScale()
	p := DefaultPalette()
	p.Background = color.RGBA{20, 20, 80, 255}
	img := New(Options{Dimensions: d, Palette: p}).Front("123")

	// The caption patch sits just above the bottom margin in the body center.
	x0, x1 := d.ContentBounds()
	cx := (x0 + x1) / 2
	y := d.Height - d.FrontBottomMargin - 8
	if got := img.RGBAAt(cx, y); got == p.Background {
		t.Errorf("expected caption patch at (%d,%d), got background", cx, y)
	}
}

func TestFrontCoverImage(t *testing.T) {
	d := fullScale()
	path := writeSolidPNG(t, 40, 10, red)
	c := New(Options{Dimensions: d, Image: ImageCover, ImagePath: path})
	if !c.HasImage() {
		t.Fatal("cover image should load")
	}
	img := c.Front("5")

	if got := img.RGBAAt(d.Width-10, d.Height/2); !isRed(got) {
		t.Errorf("main body = %v, want image color", got)
	}
	if got := img.RGBAAt(d.StubWidth+1, d.Height/2); !isRed(got) {
		t.Errorf("main body left edge = %v, want image color", got)
	}
	if got := img.RGBAAt(d.BorderWidth+3, d.BorderWidth+3); got != DefaultPalette().Stub {
		t.Errorf("stub = %v, image must not cover it", got)
	}
}

func TestFrontCoverTransparentImage(t *testing.T) {
	d := fullScale()
	path := writeSolidPNG(t, 40, 10, color.NRGBA{255, 0, 0, 0})
	c := New(Options{Dimensions: d, Image: ImageCover, ImagePath: path})
	img := c.Front("5")

	if got := img.RGBAAt(d.Width-10, d.Height/2); !isRed(got) {
		t.Errorf("main body = %v, want opaque image color", got)
	}
}

func TestCoverIsOpaque(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
		src.Pix[i+3] = 0x40
	}
	img, ok := Cover(src, 30, 30)
	if !ok {
		t.Fatal("Cover should succeed")
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("alpha at %d = %d, want 255", i/4, img.Pix[i])
		}
	}
	if got := img.NRGBAAt(15, 15); got.R != 0xff {
		t.Errorf("color = %v, want red kept", got)
	}
}

func TestFrontContainImage(t *testing.T) {
	d := fullScale()
	path := writeSolidPNG(t, 100, 50, red)
	c := New(Options{Dimensions: d, Image: ImageContain, ImagePath: path})
	img := c.Front("5")

	// 100x50 at height 70 is 140x70, centered in the body and the ticket.
	cx := d.MainBodyX() + d.MainBodyWidth()/2
	if got := img.RGBAAt(cx, d.Height/2); !isRed(got) {
		t.Errorf("image center = %v, want image color", got)
	}
	if got := img.RGBAAt(cx+80, d.Height/2); got != DefaultPalette().Background {
		t.Errorf("right of contained image = %v, want background", got)
	}
}

func TestContainCapsWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 10))
	img, ok := Contain(src, 70, 300)
	if !ok {
		t.Fatal("Contain failed")
	}
	if got := img.Bounds().Size(); got != image.Pt(300, 3) {
		t.Errorf("size = %v, want 300x3", got)
	}
	if _, ok := Contain(image.NewRGBA(image.Rect(0, 0, 0, 0)), 70, 300); ok {
		t.Error("empty source should not fit")
	}
}

func TestCoverExactSize(t *testing.T) {
	for _, src := range []image.Rectangle{image.Rect(0, 0, 1000, 10), image.Rect(0, 0, 10, 1000), image.Rect(0, 0, 7, 3)} {
		img, ok := Cover(image.NewRGBA(src), 350, 200)
		if !ok {
			t.Fatalf("Cover(%v) failed", src)
		}
		if got := img.Bounds().Size(); got != image.Pt(350, 200) {
			t.Errorf("Cover(%v) size = %v, want 350x200", src, got)
		}
	}
}

func TestMissingImageDegrades(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	images := NewImages(nil, logger)
	missing := filepath.Join(t.TempDir(), "nope.png")

	opts := Options{Dimensions: fullScale(), Image: ImageCover, ImagePath: missing, Images: images, Logger: logger}
	a := New(opts)
	b := New(opts)
	if a.HasImage() || b.HasImage() {
		t.Fatal("missing image should be skipped")
	}
	if a.Front("1") == nil {
		t.Fatal("front should still render")
	}
	if n := strings.Count(buf.String(), "main image unavailable"); n != 1 {
		t.Errorf("warning logged %d times, want 1", n)
	}
}

func TestBack(t *testing.T) {
	d := fullScale()
	p := DefaultPalette()
	c := New(Options{Dimensions: d})
	img := c.Back("042")

	if !bytes.Equal(img.Pix, c.Back("042").Pix) {
		t.Error("Back should be deterministic")
	}
	if got := img.RGBAAt(d.Width-1, d.Height-1); got != p.Border {
		t.Errorf("corner = %v, want border", got)
	}

	// Title ink lies between the start offset and the terms.
	inked := func(y0, y1 int) bool {
		for y := y0; y < y1; y++ {
			for x := d.BorderWidth; x < d.Width-d.BorderWidth; x++ {
				if img.RGBAAt(x, y) != p.Background {
					return true
				}
			}
		}
		return false
	}
	if !inked(d.BackStartY, d.BackStartY+d.TextFont) {
		t.Error("no title ink")
	}
	if !inked(d.Height-d.BackSerialMargin-d.TextFont, d.Height-d.BackSerialMargin) {
		t.Error("no serial ink")
	}
	if inked(d.BorderWidth, d.BackStartY-1) {
		t.Error("ink above the title start")
	}
}

func TestParsePolicies(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want ImagePolicy
	}{{"none", ImageNone}, {"Contain", ImageContain}, {"COVER", ImageCover}} {
		got, err := ParseImagePolicy(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseImagePolicy(%q) = %v, %v", tt.in, got, err)
		}
		if got.String() != strings.ToLower(tt.in) {
			t.Errorf("String() = %q", got.String())
		}
	}
	if _, err := ParseImagePolicy("stretch"); err == nil {
		t.Error("expected error for unknown policy")
	}
	if s, err := ParseStubStyle("none"); err != nil || s != StubPlain {
		t.Errorf("ParseStubStyle(none) = %v, %v", s, err)
	}
	if _, err := ParseStubStyle("striped"); err == nil {
		t.Error("expected error for unknown stub style")
	}
}

func TestPlainStub(t *testing.T) {
	d := fullScale()
	img := New(Options{Dimensions: d, Stub: StubPlain}).Front("9")
	if got := img.RGBAAt(d.BorderWidth+3, d.BorderWidth+3); got != DefaultPalette().Background {
		t.Errorf("plain stub = %v, want background", got)
	}
}
