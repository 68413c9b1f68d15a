// Package pipeline runs a complete ticketsheet generation.
//
// This package implements the validate → compose → paginate → render flow
// used by the CLI and the preview server, so that every entry point draws
// tickets the same way.
//
// # Architecture
//
// A run consists of four stages:
//
//  1. Prepare: validate the [config.Config], resolve dimensions, load the
//     font and build a [ticket.Composer]
//  2. Compose: draw the front and back of every ticket on a worker pool,
//     storing results by index so order is preserved
//  3. Paginate: tile fronts and backs onto sheets
//  4. Render: write the fronts and backs documents with the configured sink
//
// Configuration errors abort in stage 1, before any ticket is drawn.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    fmt.Println(a.Path)
//	}
//
// Render a single ticket:
//
//	job, err := runner.Prepare(cfg)
//	img := job.Ticket(42, pipeline.SideFront)
package pipeline

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
)

// Side selects the front or back of a ticket.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// ParseSide parses "front" or "back".
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(s)) {
	case SideFront:
		return SideFront, nil
	case SideBack:
		return SideBack, nil
	}
	return "", fmt.Errorf("invalid side: %q (must be front or back)", s)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and document metadata.
	RunID string

	// Numbers are the formatted ticket numbers in order.
	Numbers []string

	// Fronts and Backs hold one image per number, in the same order.
	Fronts []image.Image
	Backs  []image.Image

	FrontLayout sheet.Layout
	BackLayout  sheet.Layout

	// Artifacts lists the written files.
	Artifacts []Artifact

	Stats Stats
}

// Artifact is a file written by a run.
type Artifact struct {
	Path  string
	Pages int
	Bytes int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tickets     int
	Pages       int
	Font        string
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// FormatNumber zero-pads n to at least width digits.
func FormatNumber(n, width int) string {
	return fmt.Sprintf("%0*d", max(0, width), n)
}

// Numbers returns the formatted numbers of the inclusive range [start, end].
func Numbers(start, end, width int) []string {
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, FormatNumber(n, width))
	}
	return out
}
