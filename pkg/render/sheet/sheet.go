// Package sheet tiles ticket images onto printed pages.
//
// Tickets fill a fixed Columns x Rows grid per page, row-major, in input
// order. The grid is centered horizontally inside the page margins and
// starts at the top margin. Pixel sizes are converted to points with
// pt = px * 72 / DPI.
//
// Pagination depends only on the ticket count, the ticket size and the
// [Config]; pixel content never influences it, so identical inputs always
// produce identical placements.
package sheet

import (
	"fmt"
	"image"
)

// Defaults for [Config].
const (
	DefaultColumns   = 2
	DefaultRows      = 4
	DefaultMarginPt  = 36
	DefaultSpacingPt = 10
	DefaultDPI       = 96
)

// Config describes the page grid.
type Config struct {
	Columns   int     `json:"columns"` // tickets per row
	Rows      int     `json:"rows"`    // rows per page
	Paper     Paper   `json:"paper"`
	MarginPt  float64 `json:"margin_pt"`
	SpacingPt float64 `json:"spacing_pt"`
	DPI       float64 `json:"dpi"`
}

// DefaultConfig returns a 2x4 grid on portrait letter paper.
func DefaultConfig() Config {
	return Config{
		Columns:   DefaultColumns,
		Rows:      DefaultRows,
		Paper:     DefaultPaper,
		MarginPt:  DefaultMarginPt,
		SpacingPt: DefaultSpacingPt,
		DPI:       DefaultDPI,
	}
}

// Validate reports grid values that cannot be laid out.
func (c Config) Validate() error {
	switch {
	case c.Columns < 1 || c.Rows < 1:
		return fmt.Errorf("grid must have at least one column and row, got %dx%d", c.Columns, c.Rows)
	case c.DPI <= 0:
		return fmt.Errorf("dpi must be positive, got %v", c.DPI)
	case c.MarginPt < 0 || c.SpacingPt < 0:
		return fmt.Errorf("margin and spacing must not be negative")
	case c.Paper.Width <= 0 || c.Paper.Height <= 0:
		return fmt.Errorf("paper size must be positive")
	}
	return nil
}

// PerPage is the number of ticket slots on one page.
func (c Config) PerPage() int { return c.Columns * c.Rows }

// ToPoints converts a pixel length at the configured DPI.
func (c Config) ToPoints(px int) float64 { return float64(px) * 72 / c.DPI }

// Placement is where one ticket goes. X and Y are the top-left corner in
// points from the top-left of the page.
type Placement struct {
	Index int     `json:"index"`
	Page  int     `json:"page"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// Overflow is emitted when the ticket block does not fit the printable area.
type Overflow struct {
	Axis      string  `json:"axis"` // "width" or "height"
	Required  float64 `json:"required_pt"`
	Available float64 `json:"available_pt"`
}

func (o Overflow) String() string {
	return fmt.Sprintf("ticket block %s (%.2fpt) exceeds printable %s (%.2fpt)", o.Axis, o.Required, o.Axis, o.Available)
}

// Layout is the result of pagination.
type Layout struct {
	Config     Config      `json:"config"`
	Pages      int         `json:"pages"`
	TicketW    float64     `json:"ticket_w_pt"`
	TicketH    float64     `json:"ticket_h_pt"`
	Offset     float64     `json:"offset_pt"` // horizontal centering offset inside the margins
	Placements []Placement `json:"placements"`
	Overflow   []Overflow  `json:"overflow,omitempty"`
}

// Paginate places n tickets of the given pixel size. cfg must be valid.
func Paginate(n int, ticket image.Point, cfg Config) Layout {
	w, h := cfg.ToPoints(ticket.X), cfg.ToPoints(ticket.Y)
	printW := cfg.Paper.Width - 2*cfg.MarginPt
	printH := cfg.Paper.Height - 2*cfg.MarginPt
	blockW := blockSize(cfg.Columns, w, cfg.SpacingPt)
	blockH := blockSize(cfg.Rows, h, cfg.SpacingPt)

	l := Layout{
		Config:  cfg,
		TicketW: w,
		TicketH: h,
		Offset:  (printW - blockW) / 2,
	}
	if n <= 0 {
		return l
	}

	if blockW > printW {
		l.Overflow = append(l.Overflow, Overflow{Axis: "width", Required: blockW, Available: printW})
	}
	if blockH > printH {
		l.Overflow = append(l.Overflow, Overflow{Axis: "height", Required: blockH, Available: printH})
	}

	per := cfg.PerPage()
	l.Pages = (n + per - 1) / per
	l.Placements = make([]Placement, n)
	for i := 0; i < n; i++ {
		slot := i % per
		row, col := slot/cfg.Columns, slot%cfg.Columns
		l.Placements[i] = Placement{
			Index: i,
			Page:  i / per,
			Row:   row,
			Col:   col,
			X:     cfg.MarginPt + l.Offset + float64(col)*(w+cfg.SpacingPt),
			Y:     cfg.MarginPt + float64(row)*(h+cfg.SpacingPt),
			W:     w,
			H:     h,
		}
	}
	return l
}

// LayoutImages paginates images, taking the ticket size from the first one.
// All images are expected to share that size.
func LayoutImages(images []image.Image, cfg Config) Layout {
	var size image.Point
	if len(images) > 0 {
		size = images[0].Bounds().Size()
	}
	return Paginate(len(images), size, cfg)
}

func blockSize(count int, ticket, spacing float64) float64 {
	if count < 1 {
		return 0
	}
	return float64(count)*ticket + float64(count-1)*spacing
}

// Page returns the placements on page p in order.
func (l Layout) Page(p int) []Placement {
	per := l.Config.PerPage()
	if p < 0 || p >= l.Pages || per < 1 {
		return nil
	}
	lo := p * per
	hi := min(lo+per, len(l.Placements))
	return l.Placements[lo:hi]
}

// Slots reports which grid slots of page p hold a ticket, indexed
// row*Columns+col.
func (l Layout) Slots(p int) []bool {
	slots := make([]bool, l.Config.PerPage())
	for _, pl := range l.Page(p) {
		slots[pl.Row*l.Config.Columns+pl.Col] = true
	}
	return slots
}
