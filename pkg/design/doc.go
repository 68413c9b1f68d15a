// Package design resolves the pixel geometry of a ticket.
//
// A ticket is described once, at full size, by a [Base]. Every run picks a
// scale factor and [Resolve] turns the base into working [Dimensions]. Each
// value is rounded and then clamped to a per-value floor so that extreme
// downscaling never collapses fonts, borders or margins to zero.
//
//	dims := design.Resolve(design.DefaultBase(), 0.5)
//	// dims.Width == 225, dims.NumberFontSize == 12
package design
