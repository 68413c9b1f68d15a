// Package render groups the drawing and output stages of ticket generation.
//
// # Overview
//
// Rendering is split into four subpackages, each usable on its own:
//
//   - [ticket]: draws the front and back of one ticket as an RGBA raster
//   - [sprite]: renders rotated text onto a transparent canvas and pastes it
//   - [sheet]: computes page placements for a list of equally sized tickets
//   - [sink]: writes placed tickets as PDF pages or PNG page images
//
// A complete run wires them together:
//
//	c := ticket.New(opts)
//	fronts := []image.Image{c.Front("001"), c.Front("002")}
//	l := sheet.LayoutImages(fronts, sheetCfg)
//	canvas, _ := sink.New(sink.FormatPDF, "fronts", sheetCfg, sink.Meta{})
//	artifacts, err := sink.Render(canvas, fronts, l)
//
// [ticket]: github.com/matzehuels/ticketsheet/pkg/render/ticket
// [sprite]: github.com/matzehuels/ticketsheet/pkg/render/sprite
// [sheet]: github.com/matzehuels/ticketsheet/pkg/render/sheet
// [sink]: github.com/matzehuels/ticketsheet/pkg/render/sink
package render
