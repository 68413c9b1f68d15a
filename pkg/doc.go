// Package pkg provides the core libraries for Ticketsheet.
//
// # Overview
//
// Ticketsheet draws a range of numbered event tickets and tiles them onto
// printable sheets. The pkg directory is organized into these areas:
//
//  1. [design] - Reference ticket design and the scaling resolver
//  2. [render] - Ticket composition, sheet layout and output sinks
//  3. [pipeline] - Orchestration (prepare → compose → paginate → render)
//  4. [config] - TOML configuration and validation
//  5. Support: [errors], [fonts], [cache], [observability], [buildinfo]
//
// # Architecture
//
//	config.Config
//	     ↓
//	[design] resolve dimensions at the configured scale
//	     ↓
//	[render/ticket] draw front and back of every number
//	     ↓
//	[render/sheet] tile tickets onto pages
//	     ↓
//	[render/sink] PDF or PNG pages (fronts and backs)
//
// # Quick Start
//
//	cfg := config.Default()
//	cfg.Range = config.Range{Start: 1, End: 200, Padding: 3}
//	cfg.Ticket.Image = "poster.jpg"
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, cfg)
//
// [design]: github.com/matzehuels/ticketsheet/pkg/design
// [render]: github.com/matzehuels/ticketsheet/pkg/render
// [pipeline]: github.com/matzehuels/ticketsheet/pkg/pipeline
// [config]: github.com/matzehuels/ticketsheet/pkg/config
// [errors]: github.com/matzehuels/ticketsheet/pkg/errors
// [fonts]: github.com/matzehuels/ticketsheet/pkg/fonts
// [cache]: github.com/matzehuels/ticketsheet/pkg/cache
// [observability]: github.com/matzehuels/ticketsheet/pkg/observability
// [buildinfo]: github.com/matzehuels/ticketsheet/pkg/buildinfo
package pkg
