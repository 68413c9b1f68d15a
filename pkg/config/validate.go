package config

import (
	"math"

	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/render/sink"
	"github.com/matzehuels/ticketsheet/pkg/render/ticket"
)

// Validate checks the whole configuration. Any error is fatal: the run must
// stop before generating tickets. Colors are not checked here; an invalid
// color falls back to its default with a warning when the run starts.
func (c Config) Validate() error {
	r := c.Range
	if err := errors.ValidateRange(r.Start, r.End, r.Padding); err != nil {
		return err
	}
	if err := c.validateTicket(); err != nil {
		return err
	}
	if err := c.validateDesign(); err != nil {
		return err
	}
	if err := c.validateSheet(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c Config) validateTicket() error {
	t := c.Ticket
	if err := errors.ValidateScale(t.Scale); err != nil {
		return err
	}
	if _, err := ticket.ParseImagePolicy(t.ImagePolicy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "invalid ticket.image_policy")
	}
	if _, err := ticket.ParseStubStyle(t.StubStyle); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "invalid ticket.stub_style")
	}
	if th := t.LuminanceThreshold; math.IsNaN(th) || th < 0 || th > 255 {
		return errors.New(errors.ErrCodeInvalidConfig, "ticket.luminance_threshold must be within 0-255, got %v", th)
	}
	if err := errors.ValidateImagePath(t.Image); err != nil {
		return err
	}
	return nil
}

func (c Config) validateDesign() error {
	d := c.Design
	if d.Width < 1 || d.Height < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "design size must be positive, got %dx%d", d.Width, d.Height)
	}
	if d.StubWidth < 0 || d.StubWidth >= d.Width {
		return errors.New(errors.ErrCodeInvalidConfig, "design.stub_width must be within [0, %d), got %d", d.Width, d.StubWidth)
	}
	if d.BorderWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "design.border_width must not be negative")
	}
	if dim := c.Dimensions(); dim.MainBodyWidth() < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "scaled main body has no width")
	}
	return nil
}

func (c Config) validateSheet() error {
	s := c.Sheet
	if err := errors.ValidateGrid(s.Columns, s.Rows); err != nil {
		return err
	}
	sc, err := c.SheetConfig()
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid sheet")
	}
	return nil
}

func (c Config) validateOutput() error {
	o := c.Output
	if !sink.Supported(o.Format) {
		return errors.New(errors.ErrCodeNoBackend, "no renderer for output format %q (supported: %v)", o.Format, sink.Formats())
	}
	if err := errors.ValidateOutputName(o.Fronts); err != nil {
		return err
	}
	if err := errors.ValidateOutputName(o.Backs); err != nil {
		return err
	}
	if o.Fronts == o.Backs {
		return errors.New(errors.ErrCodeInvalidPath, "output.fronts and output.backs must differ")
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "output.workers must not be negative")
	}
	return nil
}
