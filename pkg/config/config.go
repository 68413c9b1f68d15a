// Package config holds the run configuration of ticketsheet.
//
// A [Config] is read once at startup, from defaults, an optional TOML file
// and command-line overrides, then validated as a whole before any ticket is
// drawn. After [Config.Validate] succeeds it is treated as read-only.
//
// # File Format
//
//	[range]
//	start = 1
//	end = 100
//	padding = 3
//
//	[ticket]
//	image = "poster.jpg"
//	image_policy = "cover"
//	stub_color = "220,220,220"
//	title = "SPRING GALA"
//	scale = 0.5
//
//	[sheet]
//	columns = 2
//	rows = 4
//	paper = "letter"
//
//	[output]
//	dir = "out"
//	format = "pdf"
//
// An optional [design] table overrides the full-scale reference design, see
// [design.Base] for the keys.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ticketsheet/pkg/design"
	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
	"github.com/matzehuels/ticketsheet/pkg/render/sink"
	"github.com/matzehuels/ticketsheet/pkg/render/ticket"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultStart     = 1
	DefaultEnd       = 10
	DefaultPadding   = 3
	DefaultScale     = 0.5
	DefaultPolicy    = "cover"
	DefaultStubStyle = "color"
	DefaultStubColor = "220,220,220"
	DefaultPaper     = "letter"
	DefaultFronts    = "ticket_sheet_fronts"
	DefaultBacks     = "ticket_sheet_backs"
)

// =============================================================================
// Config
// =============================================================================

// Config is the complete run configuration.
type Config struct {
	Range  Range       `toml:"range" json:"range"`
	Ticket Ticket      `toml:"ticket" json:"ticket"`
	Sheet  Sheet       `toml:"sheet" json:"sheet"`
	Output Output      `toml:"output" json:"output"`
	Design design.Base `toml:"design" json:"design"`
}

// Range is the inclusive ticket number range.
type Range struct {
	Start   int `toml:"start" json:"start"`
	End     int `toml:"end" json:"end"`
	Padding int `toml:"padding" json:"padding"` // zero-pad width
}

// Count returns the number of tickets in the range.
func (r Range) Count() int { return r.End - r.Start + 1 }

// Ticket configures the ticket design.
type Ticket struct {
	Image              string   `toml:"image" json:"image,omitempty"`
	ImagePolicy        string   `toml:"image_policy" json:"image_policy"`
	StubStyle          string   `toml:"stub_style" json:"stub_style"`
	StubColor          string   `toml:"stub_color" json:"stub_color"`
	BackgroundColor    string   `toml:"background_color" json:"background_color"`
	BorderColor        string   `toml:"border_color" json:"border_color"`
	Title              string   `toml:"title" json:"title"`
	BackTitle          string   `toml:"back_title" json:"back_title"`
	Terms              []string `toml:"terms" json:"terms"`
	Font               string   `toml:"font" json:"font,omitempty"`
	Scale              float64  `toml:"scale" json:"scale"`
	LuminanceThreshold float64  `toml:"luminance_threshold" json:"luminance_threshold"`
}

// Sheet configures the print sheets.
type Sheet struct {
	Columns     int     `toml:"columns" json:"columns"`
	Rows        int     `toml:"rows" json:"rows"`
	Paper       string  `toml:"paper" json:"paper"`
	Orientation string  `toml:"orientation" json:"orientation"`
	MarginPt    float64 `toml:"margin_pt" json:"margin_pt"`
	SpacingPt   float64 `toml:"spacing_pt" json:"spacing_pt"`
	DPI         float64 `toml:"dpi" json:"dpi"`
}

// Output configures where and how artifacts are written.
type Output struct {
	Dir     string `toml:"dir" json:"dir"`
	Format  string `toml:"format" json:"format"`
	Fronts  string `toml:"fronts" json:"fronts"`
	Backs   string `toml:"backs" json:"backs"`
	Debug   bool   `toml:"debug" json:"debug"`
	Workers int    `toml:"workers" json:"workers"` // 0 = one per CPU
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Range: Range{Start: DefaultStart, End: DefaultEnd, Padding: DefaultPadding},
		Ticket: Ticket{
			ImagePolicy:        DefaultPolicy,
			StubStyle:          DefaultStubStyle,
			StubColor:          DefaultStubColor,
			BackgroundColor:    "255,255,255",
			BorderColor:        "150,150,150",
			Title:              ticket.DefaultTitle,
			BackTitle:          ticket.DefaultBackTitle,
			Terms:              append([]string(nil), ticket.DefaultTerms...),
			Scale:              DefaultScale,
			LuminanceThreshold: ticket.DefaultThreshold,
		},
		Sheet: Sheet{
			Columns:     sheet.DefaultColumns,
			Rows:        sheet.DefaultRows,
			Paper:       DefaultPaper,
			Orientation: string(sheet.Portrait),
			MarginPt:    sheet.DefaultMarginPt,
			SpacingPt:   sheet.DefaultSpacingPt,
			DPI:         sheet.DefaultDPI,
		},
		Output: Output{
			Dir:    ".",
			Format: sink.FormatPDF,
			Fronts: DefaultFronts,
			Backs:  DefaultBacks,
		},
		Design: design.DefaultBase(),
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads a TOML file on top of [Default]. Keys that are not part of the
// configuration are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %q does not exist", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of [Default].
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String returns the TOML form of c.
func (c Config) String() string {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

// =============================================================================
// Derived Values
// =============================================================================

// SheetConfig returns the paginator configuration.
func (c Config) SheetConfig() (sheet.Config, error) {
	o, err := sheet.ParseOrientation(c.Sheet.Orientation)
	if err != nil {
		return sheet.Config{}, errors.Wrap(errors.ErrCodeInvalidPaper, err, "invalid sheet orientation")
	}
	paper, err := sheet.LookupPaper(c.Sheet.Paper, o)
	if err != nil {
		return sheet.Config{}, errors.Wrap(errors.ErrCodeInvalidPaper, err, "invalid sheet paper")
	}
	return sheet.Config{
		Columns:   c.Sheet.Columns,
		Rows:      c.Sheet.Rows,
		Paper:     paper,
		MarginPt:  c.Sheet.MarginPt,
		SpacingPt: c.Sheet.SpacingPt,
		DPI:       c.Sheet.DPI,
	}, nil
}

// Dimensions resolves the design at the configured scale.
func (c Config) Dimensions() design.Dimensions {
	return design.Resolve(c.Design, c.Ticket.Scale)
}
