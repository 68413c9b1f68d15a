// Package sink turns paginated ticket images into output documents.
//
// # Overview
//
// A "sink" is a page [Canvas]: it receives pages and ticket images placed at
// a [sheet.Placement] and produces one or more [Artifact]s when closed.
// Two backends exist:
//
//   - PDF: one document, pages sized to the configured paper, each ticket
//     embedded as a PNG image at its physical size
//   - PNG: one raster per page at the sheet DPI
//
// Basic usage:
//
//	c, err := sink.New(sink.FormatPDF, "ticket_sheet_fronts", cfg, sink.Meta{Title: "Fronts"})
//	if err != nil {
//	    return err // NO_BACKEND for unknown formats
//	}
//	artifacts, err := sink.Render(c, images, layout)
//
// Sinks only produce bytes; writing the artifacts is left to the caller.
//
// [sheet.Placement]: github.com/matzehuels/ticketsheet/pkg/render/sheet
package sink
