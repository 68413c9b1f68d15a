package ticket

import (
	"image"

	"golang.org/x/image/font"
)

// Back draws the back of ticket number: title, terms block and serial.
func (c *Composer) Back(number string) *image.RGBA {
	d, p := c.dim, c.opts.Palette
	img, dc := newCanvas(d, p.Background)
	drawBorder(dc, d, p.Border)

	face := c.opts.Fonts.Face(d.TextFont)
	fg := p.TextColor(p.Background)
	cx := float64(d.Width) / 2

	y := d.BackStartY
	title := place(face, c.opts.BackTitle, cx, y, anchorTop)
	title.draw(dc, face, fg)
	y += title.ink.Dy() + (d.TextFont+d.BackLineAddon)/2

	// The terms are measured as one block, centered, with each line
	// centered inside the block.
	if len(c.opts.Terms) > 0 {
		blockW := 0
		for _, line := range c.opts.Terms {
			blockW = max(blockW, font.MeasureString(face, line).Ceil())
		}
		left := (d.Width - blockW) / 2
		bcx := float64(left) + float64(blockW)/2
		step := lineHeight(face) + d.BackLineSpacing
		for i, line := range c.opts.Terms {
			place(face, line, bcx, y+i*step, anchorTop).draw(dc, face, fg)
		}
	}

	place(face, "Serial: "+number, cx, d.Height-d.BackSerialMargin, anchorBottom).draw(dc, face, fg)
	return img
}
