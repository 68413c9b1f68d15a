package ticket

import (
	"image"
	"image/draw"

	"github.com/matzehuels/ticketsheet/pkg/render/sprite"
)

// Front draws the front of ticket number.
func (c *Composer) Front(number string) *image.RGBA {
	d, p := c.dim, c.opts.Palette
	img, dc := newCanvas(d, p.Background)

	stubBg := p.Background
	if d.HasStub() && c.opts.Stub == StubColor {
		fillRect(dc, image.Rect(0, 0, d.StubWidth, d.Height), p.Stub)
		stubBg = p.Stub
	}

	bodyText := p.TextColor(p.Background)
	if c.body != nil {
		draw.Draw(img, c.bodyRect, c.body, image.Point{}, draw.Over)
		if c.opts.Image == ImageCover {
			bodyText = p.TextOverImage
		}
	}

	// Text goes on after the image so it stays legible.
	face := c.opts.Fonts.Face(d.TextFont)
	x0, x1 := d.ContentBounds()
	cx := float64(x0+x1) / 2

	if c.opts.Title != "" {
		place(face, c.opts.Title, cx, d.FrontTopMargin, anchorTop).draw(dc, face, bodyText)
	}

	caption := place(face, "No. "+number, cx, d.Height-d.FrontBottomMargin, anchorBottom)
	if !caption.ink.Empty() {
		fillRect(dc, caption.ink.Inset(-c.opts.CaptionPad), p.CaptionPatch)
	}
	caption.draw(dc, face, p.TextColor(p.CaptionPatch))

	if d.HasStub() {
		center := image.Pt(d.StubWidth/2+d.NumberOffset, d.Height/2)
		sprite.Draw(img, number, center, c.opts.Fonts.Face(d.NumberFont),
			p.TextColor(stubBg), d.RotationAngle, d.TextPadding)
	}

	drawBorder(dc, d, p.Border)
	drawPerforation(dc, d, p.Border)
	return img
}
