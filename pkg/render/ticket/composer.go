package ticket

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/ticketsheet/pkg/design"
)

// Composer draws ticket fronts and backs for one run. The main-body image
// is loaded and fitted once in [New] and shared read-only by every ticket.
type Composer struct {
	opts Options
	dim  design.Dimensions

	body     *image.NRGBA
	bodyRect image.Rectangle
}

// New builds a Composer from opts. A main-body image that cannot be loaded
// is logged by the image loader and the fronts render without it.
func New(opts Options) *Composer {
	opts.setDefaults()
	c := &Composer{opts: opts, dim: opts.Dimensions}
	c.prepareImage()
	return c
}

// Dimensions returns the resolved geometry the composer draws with.
func (c *Composer) Dimensions() design.Dimensions { return c.dim }

// Size returns the pixel size of every ticket image.
func (c *Composer) Size() image.Point { return image.Pt(c.dim.Width, c.dim.Height) }

// HasImage reports whether fronts carry a main-body image.
func (c *Composer) HasImage() bool { return c.body != nil }

func (c *Composer) prepareImage() {
	if c.opts.Image == ImageNone || c.opts.ImagePath == "" {
		return
	}
	d := c.dim
	mainW := d.MainBodyWidth()
	if mainW <= 0 {
		return
	}
	src, err := c.opts.Images.Load(c.opts.ImagePath)
	if err != nil {
		return
	}

	switch c.opts.Image {
	case ImageContain:
		maxW := int(float64(mainW) * c.opts.ContainRatio)
		img, ok := Contain(src, d.ImageHeight, maxW)
		if !ok {
			return
		}
		sz := img.Bounds().Size()
		x := d.MainBodyX() + mainW/2 - sz.X/2
		y := d.Height/2 - sz.Y/2
		c.body, c.bodyRect = img, image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+sz.X, y+sz.Y)}
	case ImageCover:
		img, ok := Cover(src, mainW, d.Height)
		if !ok {
			return
		}
		c.body, c.bodyRect = img, image.Rect(d.MainBodyX(), 0, d.Width, d.Height)
	}
}

func newCanvas(d design.Dimensions, bg color.RGBA) (*image.RGBA, *gg.Context) {
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	dc := gg.NewContextForRGBA(img)
	fillRect(dc, image.Rect(0, 0, d.Width, d.Height), bg)
	return img, dc
}

func fillRect(dc *gg.Context, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	dc.SetColor(c)
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Fill()
}

// drawBorder paints an inside border of width bw as four bands.
func drawBorder(dc *gg.Context, d design.Dimensions, c color.Color) {
	bw := d.BorderWidth
	if bw <= 0 {
		return
	}
	w, h := d.Width, d.Height
	fillRect(dc, image.Rect(0, 0, w, min(bw, h)), c)
	fillRect(dc, image.Rect(0, max(0, h-bw), w, h), c)
	fillRect(dc, image.Rect(0, 0, min(bw, w), h), c)
	fillRect(dc, image.Rect(max(0, w-bw), 0, w, h), c)
}

// drawPerforation paints one-pixel dashes at the stub boundary, between the
// top and bottom border.
func drawPerforation(dc *gg.Context, d design.Dimensions, c color.Color) {
	if !d.HasPerforation() {
		return
	}
	x := d.StubWidth
	top, bottom := d.BorderWidth, d.Height-d.BorderWidth
	for y := top; y < bottom; y += d.PerforationStep {
		end := min(y+d.PerforationDash, bottom)
		fillRect(dc, image.Rect(x, y, x+1, end), c)
	}
}

type anchor int

const (
	anchorTop    anchor = iota // ascent line at y
	anchorBottom               // descent line at y
)

// label is one line of text positioned on the canvas.
type label struct {
	text     string
	x        int // left of the advance box
	baseline int
	ink      image.Rectangle
}

// place centers text horizontally on cx and anchors it vertically at y.
func place(face font.Face, text string, cx float64, y int, a anchor) label {
	m := face.Metrics()
	adv := font.MeasureString(face, text)
	x := int(math.Round(cx - fixedFloat(adv)/2))

	baseline := y + m.Ascent.Ceil()
	if a == anchorBottom {
		baseline = y - m.Descent.Ceil()
	}

	l := label{text: text, x: x, baseline: baseline}
	ink, _ := font.BoundString(face, text)
	if ink.Max.X > ink.Min.X && ink.Max.Y > ink.Min.Y {
		l.ink = image.Rect(
			x+ink.Min.X.Floor(), baseline+ink.Min.Y.Floor(),
			x+ink.Max.X.Ceil(), baseline+ink.Max.Y.Ceil(),
		)
	}
	return l
}

func (l label) draw(dc *gg.Context, face font.Face, c color.Color) {
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawString(l.text, float64(l.x), float64(l.baseline))
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return m.Ascent.Ceil() + m.Descent.Ceil()
}

func fixedFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
