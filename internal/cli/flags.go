package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
	"github.com/matzehuels/ticketsheet/pkg/render/sink"
)

// configFlags binds the config file flag and one override flag per
// configuration key. Overrides apply only when the flag was given, so the
// config file keeps its values otherwise.
type configFlags struct {
	path      string
	src       config.Config
	overrides []override
}

type override struct {
	flag  string
	apply func(dst, src *config.Config)
}

func addConfigFlags(cmd *cobra.Command) *configFlags {
	c := &configFlags{src: config.Default()}
	f := cmd.Flags()
	s := &c.src

	f.StringVarP(&c.path, "config", "c", "", "config file (default $XDG_CONFIG_HOME/ticketsheet/config.toml)")

	// [range]
	f.IntVar(&s.Range.Start, "start", s.Range.Start, "first ticket number")
	f.IntVar(&s.Range.End, "end", s.Range.End, "last ticket number (inclusive)")
	f.IntVar(&s.Range.Padding, "padding", s.Range.Padding, "zero-pad ticket numbers to this width")

	// [ticket]
	f.StringVarP(&s.Ticket.Image, "image", "i", "", "main-body image (empty for none)")
	f.StringVar(&s.Ticket.ImagePolicy, "image-policy", s.Ticket.ImagePolicy, "image placement: cover, contain or none")
	f.StringVar(&s.Ticket.StubStyle, "stub-style", s.Ticket.StubStyle, "stub background: color or plain")
	f.StringVar(&s.Ticket.StubColor, "stub-color", s.Ticket.StubColor, "stub color as R,G,B or #hex")
	f.StringVar(&s.Ticket.BackgroundColor, "background-color", s.Ticket.BackgroundColor, "ticket background color")
	f.StringVar(&s.Ticket.BorderColor, "border-color", s.Ticket.BorderColor, "ticket border color")
	f.StringVarP(&s.Ticket.Title, "title", "t", s.Ticket.Title, "event title on the front")
	f.StringVar(&s.Ticket.BackTitle, "back-title", s.Ticket.BackTitle, "title on the back")
	f.StringArrayVar(&s.Ticket.Terms, "terms", s.Ticket.Terms, "terms line on the back (repeatable)")
	f.StringVar(&s.Ticket.Font, "font", "", "TrueType font name or path (default built-in)")
	f.Float64VarP(&s.Ticket.Scale, "scale", "s", s.Ticket.Scale, "design scale factor")
	f.Float64Var(&s.Ticket.LuminanceThreshold, "luminance-threshold", s.Ticket.LuminanceThreshold, "background luminance above which dark text is used")

	// [design]
	f.IntVar(&s.Design.StubWidth, "stub-width", s.Design.StubWidth, "stub width in design pixels (0 disables the stub)")
	f.IntVar(&s.Design.NumberOffset, "number-offset", s.Design.NumberOffset, "x offset of the stub number in design pixels")

	// [sheet]
	f.IntVar(&s.Sheet.Columns, "columns", s.Sheet.Columns, "tickets per row")
	f.IntVar(&s.Sheet.Rows, "rows", s.Sheet.Rows, "rows per page")
	f.StringVar(&s.Sheet.Paper, "paper", s.Sheet.Paper, "paper size: "+strings.Join(sheet.Formats(), ", "))
	f.StringVar(&s.Sheet.Orientation, "orientation", s.Sheet.Orientation, "page orientation: P or L")
	f.Float64Var(&s.Sheet.MarginPt, "margin", s.Sheet.MarginPt, "page margin in points")
	f.Float64Var(&s.Sheet.SpacingPt, "spacing", s.Sheet.SpacingPt, "gap between tickets in points")
	f.Float64Var(&s.Sheet.DPI, "dpi", s.Sheet.DPI, "pixels per inch when placing tickets")

	// [output]
	f.StringVarP(&s.Output.Dir, "out-dir", "o", s.Output.Dir, "output directory")
	f.StringVarP(&s.Output.Format, "format", "f", s.Output.Format, "output format: "+strings.Join(sink.Formats(), ", "))
	f.StringVar(&s.Output.Fronts, "fronts", s.Output.Fronts, "base name of the fronts document")
	f.StringVar(&s.Output.Backs, "backs", s.Output.Backs, "base name of the backs document")
	f.BoolVar(&s.Output.Debug, "debug", false, "also write every ticket image under <out-dir>/debug")
	f.IntVarP(&s.Output.Workers, "workers", "w", 0, "compose workers (0 = one per CPU)")

	c.overrides = []override{
		{"start", func(d, s *config.Config) { d.Range.Start = s.Range.Start }},
		{"end", func(d, s *config.Config) { d.Range.End = s.Range.End }},
		{"padding", func(d, s *config.Config) { d.Range.Padding = s.Range.Padding }},
		{"image", func(d, s *config.Config) { d.Ticket.Image = s.Ticket.Image }},
		{"image-policy", func(d, s *config.Config) { d.Ticket.ImagePolicy = s.Ticket.ImagePolicy }},
		{"stub-style", func(d, s *config.Config) { d.Ticket.StubStyle = s.Ticket.StubStyle }},
		{"stub-color", func(d, s *config.Config) { d.Ticket.StubColor = s.Ticket.StubColor }},
		{"background-color", func(d, s *config.Config) { d.Ticket.BackgroundColor = s.Ticket.BackgroundColor }},
		{"border-color", func(d, s *config.Config) { d.Ticket.BorderColor = s.Ticket.BorderColor }},
		{"title", func(d, s *config.Config) { d.Ticket.Title = s.Ticket.Title }},
		{"back-title", func(d, s *config.Config) { d.Ticket.BackTitle = s.Ticket.BackTitle }},
		{"terms", func(d, s *config.Config) { d.Ticket.Terms = s.Ticket.Terms }},
		{"font", func(d, s *config.Config) { d.Ticket.Font = s.Ticket.Font }},
		{"scale", func(d, s *config.Config) { d.Ticket.Scale = s.Ticket.Scale }},
		{"luminance-threshold", func(d, s *config.Config) { d.Ticket.LuminanceThreshold = s.Ticket.LuminanceThreshold }},
		{"stub-width", func(d, s *config.Config) { d.Design.StubWidth = s.Design.StubWidth }},
		{"number-offset", func(d, s *config.Config) { d.Design.NumberOffset = s.Design.NumberOffset }},
		{"columns", func(d, s *config.Config) { d.Sheet.Columns = s.Sheet.Columns }},
		{"rows", func(d, s *config.Config) { d.Sheet.Rows = s.Sheet.Rows }},
		{"paper", func(d, s *config.Config) { d.Sheet.Paper = s.Sheet.Paper }},
		{"orientation", func(d, s *config.Config) { d.Sheet.Orientation = s.Sheet.Orientation }},
		{"margin", func(d, s *config.Config) { d.Sheet.MarginPt = s.Sheet.MarginPt }},
		{"spacing", func(d, s *config.Config) { d.Sheet.SpacingPt = s.Sheet.SpacingPt }},
		{"dpi", func(d, s *config.Config) { d.Sheet.DPI = s.Sheet.DPI }},
		{"out-dir", func(d, s *config.Config) { d.Output.Dir = s.Output.Dir }},
		{"format", func(d, s *config.Config) { d.Output.Format = s.Output.Format }},
		{"fronts", func(d, s *config.Config) { d.Output.Fronts = s.Output.Fronts }},
		{"backs", func(d, s *config.Config) { d.Output.Backs = s.Output.Backs }},
		{"debug", func(d, s *config.Config) { d.Output.Debug = s.Output.Debug }},
		{"workers", func(d, s *config.Config) { d.Output.Workers = s.Output.Workers }},
	}
	return c
}

// load reads the config file and applies the flags given on the command line.
func (c *configFlags) load(cmd *cobra.Command) (config.Config, string, error) {
	cfg, path, err := loadConfig(c.path)
	if err != nil {
		return config.Config{}, "", err
	}
	for _, o := range c.overrides {
		if cmd.Flags().Changed(o.flag) {
			o.apply(&cfg, &c.src)
		}
	}
	return cfg, path, nil
}
