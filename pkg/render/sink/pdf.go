package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
)

var pngImage = fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}

type pdfCanvas struct {
	name string
	doc  *fpdf.Fpdf
}

// NewPDF returns a PDF canvas in points with pages of the given paper.
func NewPDF(name string, paper sheet.Paper, meta Meta) Canvas {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCatalogSort(true)
	if meta.Title != "" {
		doc.SetTitle(meta.Title, true)
	}
	if meta.Subject != "" {
		doc.SetSubject(meta.Subject, true)
	}
	if meta.Creator != "" {
		doc.SetCreator(meta.Creator, true)
	}
	if !meta.Created.IsZero() {
		doc.SetCreationDate(meta.Created)
	}
	return &pdfCanvas{name: name, doc: doc}
}

func (c *pdfCanvas) AddPage() error {
	c.doc.AddPage()
	return c.doc.Error()
}

func (c *pdfCanvas) PlaceImage(img image.Image, p sheet.Placement) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode ticket %d: %w", p.Index, err)
	}
	id := fmt.Sprintf("ticket-%d", p.Index)
	c.doc.RegisterImageOptionsReader(id, pngImage, &buf)
	c.doc.ImageOptions(id, p.X, p.Y, p.W, p.H, false, pngImage, 0, "")
	return c.doc.Error()
}

func (c *pdfCanvas) Close() ([]Artifact, error) {
	var out bytes.Buffer
	if err := c.doc.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return []Artifact{{Name: c.name + ".pdf", Pages: c.doc.PageCount(), Data: out.Bytes()}}, nil
}
