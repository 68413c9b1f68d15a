package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
)

type pngCanvas struct {
	name  string
	paper sheet.Paper
	scale float64 // pixels per point
	pages []*image.RGBA
}

// NewPNG returns a canvas that rasterizes every page at dpi.
func NewPNG(name string, paper sheet.Paper, dpi float64) Canvas {
	if dpi <= 0 {
		dpi = sheet.DefaultDPI
	}
	return &pngCanvas{name: name, paper: paper, scale: dpi / 72}
}

func (c *pngCanvas) px(pt float64) int { return int(math.Round(pt * c.scale)) }

func (c *pngCanvas) AddPage() error {
	w, h := c.px(c.paper.Width), c.px(c.paper.Height)
	if w < 1 || h < 1 {
		return fmt.Errorf("page size %dx%d px", w, h)
	}
	page := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	c.pages = append(c.pages, page)
	return nil
}

func (c *pngCanvas) PlaceImage(img image.Image, p sheet.Placement) error {
	if len(c.pages) == 0 {
		return fmt.Errorf("no page")
	}
	page := c.pages[len(c.pages)-1]
	r := image.Rect(c.px(p.X), c.px(p.Y), c.px(p.X+p.W), c.px(p.Y+p.H))
	xdraw.CatmullRom.Scale(page, r, img, img.Bounds(), xdraw.Over, nil)
	return nil
}

func (c *pngCanvas) Close() ([]Artifact, error) {
	out := make([]Artifact, 0, len(c.pages))
	for i, page := range c.pages {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, page, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		out = append(out, Artifact{
			Name:  fmt.Sprintf("%s-%02d.png", c.name, i+1),
			Pages: 1,
			Data:  buf.Bytes(),
		})
	}
	return out, nil
}
