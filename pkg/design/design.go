package design

import "math"

// Base holds the full-size reference design in pixels.
type Base struct {
	Width        int `toml:"width" json:"width"`
	Height       int `toml:"height" json:"height"`
	StubWidth    int `toml:"stub_width" json:"stub_width"`
	ImageHeight  int `toml:"image_height" json:"image_height"` // target height for contain-fit images
	NumberFont   int `toml:"number_font" json:"number_font"`
	TextFont     int `toml:"text_font" json:"text_font"`
	BorderWidth  int `toml:"border_width" json:"border_width"`
	NumberOffset int `toml:"number_offset" json:"number_offset"` // x offset of the rotated number from the stub center
	TextPadding  int `toml:"text_padding" json:"text_padding"`   // canvas padding around rotated text
	BodyMargin   int `toml:"body_margin" json:"body_margin"`

	FrontTopMargin    int `toml:"front_top_margin" json:"front_top_margin"`
	FrontBottomMargin int `toml:"front_bottom_margin" json:"front_bottom_margin"`

	BackStartY       int     `toml:"back_start_y" json:"back_start_y"`
	BackLineAddon    int     `toml:"back_line_addon" json:"back_line_addon"`
	BackLineSpacing  int     `toml:"back_line_spacing" json:"back_line_spacing"`
	BackSerialMargin int     `toml:"back_serial_margin" json:"back_serial_margin"`
	PerforationStep  int     `toml:"perforation_step" json:"perforation_step"`
	PerforationDash  int     `toml:"perforation_dash" json:"perforation_dash"`
	RotationAngle    float64 `toml:"rotation_angle" json:"rotation_angle"`
}

// DefaultBase returns the reference ticket design (450x200 px with a 100 px stub).
func DefaultBase() Base {
	return Base{
		Width:             450,
		Height:            200,
		StubWidth:         100,
		ImageHeight:       70,
		NumberFont:        24,
		TextFont:          18,
		BorderWidth:       2,
		NumberOffset:      15,
		TextPadding:       5,
		BodyMargin:        6,
		FrontTopMargin:    15,
		FrontBottomMargin: 15,
		BackStartY:        30,
		BackLineAddon:     10,
		BackLineSpacing:   4,
		BackSerialMargin:  30,
		PerforationStep:   10,
		PerforationDash:   5,
		RotationAngle:     -90,
	}
}

// Floors below which a resolved value is never allowed to drop.
const (
	MinNumberFont      = 8
	MinTextFont        = 6
	MinBorderWidth     = 1
	MinTextPadding     = 2
	MinBodyMargin      = 3
	MinFrontMargin     = 5
	MinBackStartY      = 10
	MinBackLineAddon   = 3
	MinBackLineSpacing = 1
	MinBackSerial      = 10
	MinPerforationStep = 4
	MinPerforationDash = 1
)

// Dimensions are the working pixel values of one run.
type Dimensions struct {
	Scale float64

	Width        int
	Height       int
	StubWidth    int
	ImageHeight  int
	NumberFont   int
	TextFont     int
	BorderWidth  int
	NumberOffset int
	TextPadding  int
	BodyMargin   int

	FrontTopMargin    int
	FrontBottomMargin int

	BackStartY       int
	BackLineAddon    int
	BackLineSpacing  int
	BackSerialMargin int

	PerforationStep int
	PerforationDash int
	RotationAngle   float64
}

// Resolve scales base by s and clamps every value to its floor.
// A non-positive s is treated as 1.
func Resolve(base Base, s float64) Dimensions {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		s = 1
	}
	d := Dimensions{
		Scale:             s,
		Width:             clamp(1, base.Width, s),
		Height:            clamp(1, base.Height, s),
		StubWidth:         clamp(0, base.StubWidth, s),
		ImageHeight:       clamp(1, base.ImageHeight, s),
		NumberFont:        clamp(MinNumberFont, base.NumberFont, s),
		TextFont:          clamp(MinTextFont, base.TextFont, s),
		NumberOffset:      scale(base.NumberOffset, s),
		TextPadding:       clamp(MinTextPadding, base.TextPadding, s),
		BodyMargin:        clamp(MinBodyMargin, base.BodyMargin, s),
		FrontTopMargin:    clamp(MinFrontMargin, base.FrontTopMargin, s),
		FrontBottomMargin: clamp(MinFrontMargin, base.FrontBottomMargin, s),
		BackStartY:        clamp(MinBackStartY, base.BackStartY, s),
		BackLineAddon:     clamp(MinBackLineAddon, base.BackLineAddon, s),
		BackLineSpacing:   clamp(MinBackLineSpacing, base.BackLineSpacing, s),
		BackSerialMargin:  clamp(MinBackSerial, base.BackSerialMargin, s),
		PerforationStep:   clamp(MinPerforationStep, base.PerforationStep, s),
		PerforationDash:   clamp(MinPerforationDash, base.PerforationDash, s),
		RotationAngle:     base.RotationAngle,
	}
	if base.StubWidth > 0 && d.StubWidth == 0 {
		d.StubWidth = 1
	}
	if base.BorderWidth > 0 {
		d.BorderWidth = clamp(MinBorderWidth, base.BorderWidth, s)
	}
	if d.PerforationDash >= d.PerforationStep {
		d.PerforationDash = max(MinPerforationDash, d.PerforationStep/2)
	}
	return d
}

// MainBodyX is the first column of the main body.
func (d Dimensions) MainBodyX() int { return d.StubWidth }

// MainBodyWidth is the width of the region right of the stub.
func (d Dimensions) MainBodyWidth() int { return d.Width - d.StubWidth }

// HasStub reports whether a stub (and therefore a rotated number) is drawn.
func (d Dimensions) HasStub() bool { return d.StubWidth > 0 && d.StubWidth < d.Width }

// HasPerforation reports whether the dashed tear line is drawn.
func (d Dimensions) HasPerforation() bool { return d.HasStub() && d.BorderWidth > 0 }

// ContentBounds returns the x range used to center main-body text: the main
// body inset by BodyMargin on both sides, or the full main body when it is
// too narrow for the margins.
func (d Dimensions) ContentBounds() (x0, x1 int) {
	x0, x1 = d.MainBodyX(), d.Width
	if d.MainBodyWidth() > 2*d.BodyMargin {
		x0 += d.BodyMargin
		x1 -= d.BodyMargin
	}
	return x0, x1
}

func scale(v int, s float64) int {
	return int(math.Round(float64(v) * s))
}

func clamp(floor, v int, s float64) int {
	return max(floor, scale(v, s))
}
