package ticket

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ticketsheet/pkg/design"
	"github.com/matzehuels/ticketsheet/pkg/fonts"
)

// ImagePolicy selects how the main-body image is fitted.
type ImagePolicy int

const (
	// ImageNone draws no image; the main body shows the background.
	ImageNone ImagePolicy = iota
	// ImageContain scales the image to the contain height, caps its width
	// and centers it without cropping.
	ImageContain
	// ImageCover scales the image to fill the main body and crops the
	// overflow around the center.
	ImageCover
)

var policyNames = map[ImagePolicy]string{
	ImageNone:    "none",
	ImageContain: "contain",
	ImageCover:   "cover",
}

func (p ImagePolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("ImagePolicy(%d)", int(p))
}

// ParseImagePolicy parses "none", "contain" or "cover".
func ParseImagePolicy(s string) (ImagePolicy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return ImageNone, fmt.Errorf("invalid image policy: %q (must be one of: none, contain, cover)", s)
}

// StubStyle selects how the stub is painted.
type StubStyle int

const (
	// StubColor fills the stub with Palette.Stub.
	StubColor StubStyle = iota
	// StubPlain leaves the stub on the ticket background.
	StubPlain
)

func (s StubStyle) String() string {
	if s == StubPlain {
		return "none"
	}
	return "color"
}

// ParseStubStyle parses "color" or "none".
func ParseStubStyle(s string) (StubStyle, error) {
	switch strings.ToLower(s) {
	case "color", "colour", "":
		return StubColor, nil
	case "none", "plain":
		return StubPlain, nil
	}
	return StubColor, fmt.Errorf("invalid stub style: %q (must be one of: color, none)", s)
}

// Default texts.
const (
	DefaultTitle     = "EVENT TICKET"
	DefaultBackTitle = "TICKET BACK"

	// DefaultContainRatio caps a contained image's width relative to the
	// main body.
	DefaultContainRatio = 0.85

	// DefaultCaptionPad is the patch margin around the "No." caption ink.
	DefaultCaptionPad = 2
)

// DefaultTerms are printed on the back when no terms are configured.
var DefaultTerms = []string{
	"Terms and Conditions Apply.",
	"Visit website for details.",
}

// Options configure a Composer. They are copied on construction and never
// modified afterwards.
type Options struct {
	Dimensions design.Dimensions
	Palette    Palette
	Fonts      *fonts.Source

	Image        ImagePolicy
	ImagePath    string
	ContainRatio float64
	Stub         StubStyle

	Title      string
	BackTitle  string
	Terms      []string
	CaptionPad int

	// Images loads and caches the main-body image. Nil uses a private
	// loader with an in-memory cache.
	Images *Images

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Fonts == nil {
		o.Fonts = fonts.Builtin()
	}
	if o.Palette == (Palette{}) {
		o.Palette = DefaultPalette()
	}
	if o.ContainRatio <= 0 || o.ContainRatio > 1 {
		o.ContainRatio = DefaultContainRatio
	}
	if o.CaptionPad <= 0 {
		o.CaptionPad = DefaultCaptionPad
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.BackTitle == "" {
		o.BackTitle = DefaultBackTitle
	}
	if o.Terms == nil {
		o.Terms = DefaultTerms
	}
	o.Terms = append([]string(nil), o.Terms...)
	if o.ImagePath == "" {
		o.Image = ImageNone
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Images == nil {
		o.Images = NewImages(nil, o.Logger)
	}
}
