package sink

import (
	"fmt"
	"image"
	"slices"
	"time"

	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
)

// Output formats.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
func Formats() []string { return []string{FormatPDF, FormatPNG} }

// Artifact is one produced file.
type Artifact struct {
	Name  string // file name, relative to the output directory
	Pages int
	Data  []byte
}

// Meta is document metadata. Backends that cannot store it ignore it.
type Meta struct {
	Title   string
	Subject string
	Creator string
	Created time.Time
}

// Canvas is a paginated surface that ticket images are placed on.
type Canvas interface {
	// AddPage starts a new page. Images are placed on the last page added.
	AddPage() error
	// PlaceImage draws img at p, scaled to p.W x p.H points.
	PlaceImage(img image.Image, p sheet.Placement) error
	// Close finishes the document and returns its artifacts.
	Close() ([]Artifact, error)
}

// New returns the canvas for format. name is the artifact base name without
// extension.
func New(format, name string, cfg sheet.Config, meta Meta) (Canvas, error) {
	switch format {
	case FormatPDF:
		return NewPDF(name, cfg.Paper, meta), nil
	case FormatPNG:
		return NewPNG(name, cfg.Paper, cfg.DPI), nil
	}
	return nil, errors.New(errors.ErrCodeNoBackend, "no renderer for output format %q (supported: %v)", format, Formats())
}

// Supported reports whether format has a backend.
func Supported(format string) bool { return slices.Contains(Formats(), format) }

// Render places every image of l on c page by page and closes c.
// images[i] belongs to l.Placements[i].
func Render(c Canvas, images []image.Image, l sheet.Layout) ([]Artifact, error) {
	if len(images) != len(l.Placements) {
		return nil, fmt.Errorf("layout has %d placements for %d images", len(l.Placements), len(images))
	}
	for page := 0; page < l.Pages; page++ {
		if err := c.AddPage(); err != nil {
			return nil, fmt.Errorf("add page %d: %w", page+1, err)
		}
		for _, p := range l.Page(page) {
			if err := c.PlaceImage(images[p.Index], p); err != nil {
				return nil, fmt.Errorf("place ticket %d: %w", p.Index, err)
			}
		}
	}
	return c.Close()
}
