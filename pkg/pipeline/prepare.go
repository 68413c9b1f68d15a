package pipeline

import (
	"image"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/design"
	"github.com/matzehuels/ticketsheet/pkg/fonts"
	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
	"github.com/matzehuels/ticketsheet/pkg/render/ticket"
)

// Job is a validated run, ready to draw tickets. It is read-only and safe
// for concurrent use.
type Job struct {
	Config     config.Config
	Dimensions design.Dimensions
	Sheet      sheet.Config
	Font       *fonts.Source
	Composer   *ticket.Composer
}

// Prepare validates cfg and builds everything needed to draw tickets.
// Validation errors are returned unchanged so callers can inspect the code.
func (r *Runner) Prepare(cfg config.Config) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc, err := cfg.SheetConfig()
	if err != nil {
		return nil, err
	}

	// Validate accepted these already.
	policy, _ := ticket.ParseImagePolicy(cfg.Ticket.ImagePolicy)
	stub, _ := ticket.ParseStubStyle(cfg.Ticket.StubStyle)

	dim := cfg.Dimensions()
	font := fonts.Load(cfg.Ticket.Font, r.Logger)
	composer := ticket.New(ticket.Options{
		Dimensions: dim,
		Palette:    palette(cfg.Ticket, r.Logger),
		Fonts:      font,
		Image:      policy,
		ImagePath:  cfg.Ticket.Image,
		Stub:       stub,
		Title:      cfg.Ticket.Title,
		BackTitle:  cfg.Ticket.BackTitle,
		Terms:      cfg.Ticket.Terms,
		Images:     ticket.NewImages(r.Images, r.Logger),
		Logger:     r.Logger,
	})

	r.Logger.Debug("prepared run",
		"ticket", image.Pt(dim.Width, dim.Height),
		"stub", dim.StubWidth,
		"scale", dim.Scale,
		"font", font.Name(),
		"image", composer.HasImage())

	return &Job{
		Config:     cfg,
		Dimensions: dim,
		Sheet:      sc,
		Font:       font,
		Composer:   composer,
	}, nil
}

// Number formats n with the configured padding.
func (j *Job) Number(n int) string {
	return FormatNumber(n, j.Config.Range.Padding)
}

// Numbers returns the formatted numbers of the configured range.
func (j *Job) Numbers() []string {
	r := j.Config.Range
	return Numbers(r.Start, r.End, r.Padding)
}

// Ticket draws one side of ticket n. n need not lie in the configured range.
func (j *Job) Ticket(n int, side Side) *image.RGBA {
	if side == SideBack {
		return j.Composer.Back(j.Number(n))
	}
	return j.Composer.Front(j.Number(n))
}

// palette converts the configured colors. An unparsable color keeps its
// default and is reported as a warning.
func palette(t config.Ticket, logger *log.Logger) ticket.Palette {
	p := ticket.DefaultPalette()
	p.Threshold = t.LuminanceThreshold
	p.Stub = parseColorOr(t.StubColor, p.Stub, "stub_color", logger)
	p.Background = parseColorOr(t.BackgroundColor, p.Background, "background_color", logger)
	p.Border = parseColorOr(t.BorderColor, p.Border, "border_color", logger)
	return p
}

func parseColorOr(s string, def color.RGBA, key string, logger *log.Logger) color.RGBA {
	if s == "" {
		return def
	}
	c, err := config.ParseColor(s)
	if err != nil {
		logger.Warn("invalid color, using default", "key", key, "value", s, "default", config.FormatColor(def), "err", err)
		return def
	}
	return c
}

// Preview validates cfg and draws one side of ticket n.
func (r *Runner) Preview(cfg config.Config, n int, side Side) (*image.RGBA, error) {
	job, err := r.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return job.Ticket(n, side), nil
}
