// Package sprite renders rotated text whose visible ink is centered exactly
// on a target point.
//
// Font metrics describe an advance box that is usually larger than the
// glyph pixels, so rotating the measured box would shift the visible text
// off center. Instead the text is drawn onto a padded transparent canvas,
// cropped to the pixels that were actually painted, and only then rotated.
package sprite

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Render draws text with face and color c, crops the result to its ink and
// rotates it counter-clockwise by angle degrees. padding is the transparent
// margin kept around the measured box while drawing so that anti-aliasing
// and glyph overhang are not clipped. Text without visible pixels yields a
// 1x1 transparent sprite.
func Render(text string, face font.Face, c color.Color, angle float64, padding int) *image.NRGBA {
	cropped := renderCropped(text, face, c, padding)
	if angle == 0 {
		return cropped
	}
	return imaging.Rotate(cropped, angle, color.Transparent)
}

// Draw renders text as in [Render] and composites it onto dst so that the
// sprite's center lands on center. Only the sprite's own alpha is applied;
// destination pixels outside the glyphs are left untouched. The returned
// rectangle is the area covered by the sprite.
func Draw(dst draw.Image, text string, center image.Point, face font.Face, c color.Color, angle float64, padding int) image.Rectangle {
	s := Render(text, face, c, angle, padding)
	r := Placement(s.Bounds().Size(), center)
	draw.Draw(dst, r, s, image.Point{}, draw.Over)
	return r
}

// Placement returns the rectangle of size sz centered on center. Half sizes
// are truncated, so odd sizes sit one pixel toward the bottom right.
func Placement(sz image.Point, center image.Point) image.Rectangle {
	tl := image.Pt(center.X-sz.X/2, center.Y-sz.Y/2)
	return image.Rectangle{Min: tl, Max: tl.Add(sz)}
}

func renderCropped(text string, face font.Face, c color.Color, padding int) *image.NRGBA {
	padding = max(0, padding)
	ink, _ := font.BoundString(face, text)
	w := (ink.Max.X - ink.Min.X).Ceil()
	h := (ink.Max.Y - ink.Min.Y).Ceil()
	if text == "" || w < 1 || h < 1 {
		w, h = 1, 1
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w+2*padding, h+2*padding))
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(padding) - ink.Min.X,
			Y: fixed.I(padding) - ink.Min.Y,
		},
	}
	d.DrawString(text)

	r := AlphaBounds(canvas)
	if r.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	return imaging.Crop(canvas, r)
}

// AlphaBounds returns the smallest rectangle containing every pixel of img
// with non-zero alpha, or the empty rectangle if there is none.
func AlphaBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
