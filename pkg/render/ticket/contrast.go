package ticket

import "image/color"

// DefaultThreshold separates light from dark backgrounds.
const DefaultThreshold = 128.0

// Luminance returns the relative luminance of c on a 0-255 scale.
func Luminance(c color.RGBA) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// Palette holds every color a ticket is drawn with.
type Palette struct {
	Background    color.RGBA // ticket face and fallback main body
	Border        color.RGBA // border and perforation
	Stub          color.RGBA // stub fill for StubColor
	TextOnLight   color.RGBA
	TextOnDark    color.RGBA
	TextOverImage color.RGBA // main-body text over a cover image
	CaptionPatch  color.RGBA // patch behind the "No." caption

	// Threshold is the luminance above which a background counts as light.
	Threshold float64
}

// DefaultPalette returns the reference colors: white tickets, grey border,
// light grey stub.
func DefaultPalette() Palette {
	return Palette{
		Background:    color.RGBA{255, 255, 255, 255},
		Border:        color.RGBA{150, 150, 150, 255},
		Stub:          color.RGBA{220, 220, 220, 255},
		TextOnLight:   color.RGBA{0, 0, 0, 255},
		TextOnDark:    color.RGBA{255, 255, 255, 255},
		TextOverImage: color.RGBA{255, 255, 255, 255},
		CaptionPatch:  color.RGBA{255, 255, 255, 255},
		Threshold:     DefaultThreshold,
	}
}

// TextColor picks the text color readable on bg. A luminance exactly at the
// threshold counts as dark.
func (p Palette) TextColor(bg color.RGBA) color.RGBA {
	if Luminance(bg) > p.Threshold {
		return p.TextOnLight
	}
	return p.TextOnDark
}
