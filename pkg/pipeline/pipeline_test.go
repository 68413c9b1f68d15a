package pipeline

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/observability"
	"github.com/matzehuels/ticketsheet/pkg/render/ticket"
)

func testRunner(buf *bytes.Buffer) *Runner {
	if buf == nil {
		buf = &bytes.Buffer{}
	}
	return NewRunner(nil, log.NewWithOptions(buf, log.Options{Level: log.DebugLevel}))
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Range = config.Range{Start: 1, End: 3, Padding: 3}
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n, width int
		want     string
	}{
		{1, 3, "001"},
		{42, 0, "42"},
		{1234, 3, "1234"},
		{7, -1, "7"},
		{0, 2, "00"},
		{-1, 3, "-01"},
		{-12, 2, "-12"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n, tt.width); got != tt.want {
			t.Errorf("FormatNumber(%d, %d) = %q, want %q", tt.n, tt.width, got, tt.want)
		}
	}
	for n := 0; n < 2000; n += 37 {
		if got := FormatNumber(n, 4); len(got) < 4 {
			t.Errorf("FormatNumber(%d, 4) = %q, shorter than padding", n, got)
		}
	}
}

func TestNumbers(t *testing.T) {
	if diff := cmp.Diff([]string{"098", "099", "100"}, Numbers(98, 100, 3)); diff != "" {
		t.Errorf("Numbers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-01", "000", "001"}, Numbers(-1, 1, 3)); diff != "" {
		t.Errorf("Numbers across zero mismatch (-want +got):\n%s", diff)
	}
	if got := Numbers(5, 4, 3); got != nil {
		t.Errorf("Numbers(5, 4) = %v, want nil", got)
	}
}

func TestExecuteThreeTickets(t *testing.T) {
	cfg := testConfig(t)
	res, err := testRunner(nil).Execute(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"001", "002", "003"}, res.Numbers); diff != "" {
		t.Errorf("numbers mismatch (-want +got):\n%s", diff)
	}
	if len(res.Fronts) != 3 || len(res.Backs) != 3 {
		t.Fatalf("got %d fronts and %d backs, want 3 each", len(res.Fronts), len(res.Backs))
	}
	d := cfg.Dimensions()
	for i, img := range append(append([]image.Image{}, res.Fronts...), res.Backs...) {
		if got := img.Bounds().Size(); got != image.Pt(d.Width, d.Height) {
			t.Errorf("image %d size = %v", i, got)
		}
	}

	if res.FrontLayout.Pages != 1 {
		t.Errorf("front pages = %d, want 1", res.FrontLayout.Pages)
	}
	wantSlots := []bool{true, true, true, false, false, false, false, false}
	if diff := cmp.Diff(wantSlots, res.FrontLayout.Slots(0)); diff != "" {
		t.Errorf("front slots mismatch (-want +got):\n%s", diff)
	}
	type slot struct{ Row, Col int }
	var got []slot
	for _, p := range res.BackLayout.Placements {
		got = append(got, slot{p.Row, p.Col})
	}
	if diff := cmp.Diff([]slot{{0, 0}, {0, 1}, {1, 0}}, got); diff != "" {
		t.Errorf("back slots mismatch (-want +got):\n%s", diff)
	}

	if len(res.Artifacts) != 2 {
		t.Fatalf("artifacts = %+v, want fronts and backs", res.Artifacts)
	}
	for _, a := range res.Artifacts {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("%s is not a PDF", a.Path)
		}
	}
	if base := filepath.Base(res.Artifacts[0].Path); base != "ticket_sheet_fronts.pdf" {
		t.Errorf("fronts artifact = %q", base)
	}
	if res.RunID == "" {
		t.Error("missing run id")
	}
}

func TestExecuteMissingImageIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ticket.Image = filepath.Join(cfg.Output.Dir, "poster.png")

	res, err := testRunner(nil).Execute(context.Background(), cfg)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
	if res != nil {
		t.Errorf("expected no result, got %d tickets", len(res.Fronts))
	}
	entries, _ := os.ReadDir(cfg.Output.Dir)
	if len(entries) != 0 {
		t.Errorf("output directory should stay empty, has %d entries", len(entries))
	}
}

func TestExecuteInvalidRange(t *testing.T) {
	cfg := testConfig(t)
	cfg.Range.Start, cfg.Range.End = 10, 1
	if _, err := testRunner(nil).Execute(context.Background(), cfg); !errors.Is(err, errors.ErrCodeInvalidRange) {
		t.Errorf("Execute() error = %v, want INVALID_RANGE", err)
	}
}

func TestExecuteWithoutStub(t *testing.T) {
	cfg := testConfig(t)
	cfg.Design.StubWidth = 0
	job, err := testRunner(nil).Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if job.Dimensions.HasStub() || job.Dimensions.HasPerforation() {
		t.Fatal("stub and perforation should be disabled")
	}
	if job.Dimensions.MainBodyWidth() != job.Dimensions.Width {
		t.Errorf("main body width = %d, want full ticket %d", job.Dimensions.MainBodyWidth(), job.Dimensions.Width)
	}

	img := job.Ticket(1, SideFront)
	bg := ticket.DefaultPalette().Background
	bw := job.Dimensions.BorderWidth
	for y := bw; y < job.Dimensions.Height-bw; y++ {
		for x := bw; x < 25; x++ {
			if img.RGBAAt(x, y) != bg {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, img.RGBAAt(x, y))
			}
		}
	}
}

func TestComposeOrderIndependentOfWorkers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Range = config.Range{Start: 1, End: 12, Padding: 2}
	r := testRunner(nil)

	run := func(workers int) []image.Image {
		c := cfg
		c.Output.Workers = workers
		job, err := r.Prepare(c)
		if err != nil {
			t.Fatal(err)
		}
		fronts, _, err := r.Compose(context.Background(), job, job.Numbers())
		if err != nil {
			t.Fatal(err)
		}
		return fronts
	}
	seq, par := run(1), run(4)
	for i := range seq {
		if !bytes.Equal(seq[i].(*image.RGBA).Pix, par[i].(*image.RGBA).Pix) {
			t.Errorf("ticket %d differs between sequential and parallel composition", i)
		}
	}
}

func TestComposeProgress(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Workers = 1
	r := testRunner(nil)
	var calls []int
	r.Progress = func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		calls = append(calls, done)
	}
	job, err := r.Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := r.Compose(context.Background(), job, job.Numbers()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, calls); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeCanceled(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(nil)
	job, err := r.Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := r.Compose(ctx, job, job.Numbers()); !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("Compose() error = %v, want CANCELED", err)
	}
}

func TestExecutePNGWithDebug(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Format = "png"
	cfg.Output.Debug = true

	res, err := testRunner(nil).Execute(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, a := range res.Artifacts {
		names = append(names, filepath.Base(a.Path))
	}
	if diff := cmp.Diff([]string{"ticket_sheet_fronts-01.png", "ticket_sheet_backs-01.png"}, names); diff != "" {
		t.Errorf("artifacts mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"front_001.png", "back_003.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Output.Dir, "debug", name)); err != nil {
			t.Errorf("debug dump %s: %v", name, err)
		}
	}
}

func TestOverflowWarning(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)
	cfg.Ticket.Scale = 1

	if _, err := testRunner(&buf).Execute(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "do not fit") {
		t.Errorf("expected overflow warning, log:\n%s", buf.String())
	}
}

func TestInvalidStubColorWarns(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)
	cfg.Ticket.StubColor = "300,0,0"

	job, err := testRunner(&buf).Prepare(cfg)
	if err != nil {
		t.Fatalf("invalid color must not be fatal: %v", err)
	}
	if !strings.Contains(buf.String(), "invalid color") {
		t.Errorf("expected a warning, log:\n%s", buf.String())
	}
	d := job.Dimensions
	if got := job.Ticket(1, SideFront).RGBAAt(d.BorderWidth+1, d.BorderWidth+1); got != ticket.DefaultPalette().Stub {
		t.Errorf("stub = %v, want default stub color", got)
	}
}

func TestPreview(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(nil)
	front, err := r.Preview(cfg, 500, SideFront)
	if err != nil {
		t.Fatal(err)
	}
	back, err := r.Preview(cfg, 500, SideBack)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(front.Pix, back.Pix) {
		t.Error("front and back should differ")
	}
	if _, err := ParseSide("middle"); err == nil {
		t.Error("expected error for unknown side")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	composed []int
	rendered []string
}

func (h *recordingHooks) OnComposeComplete(_ context.Context, n int, _ time.Duration, err error) {
	if err == nil {
		h.composed = append(h.composed, n)
	}
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, files int, _ time.Duration, err error) {
	if err == nil {
		h.rendered = append(h.rendered, format)
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	if _, err := testRunner(nil).Execute(context.Background(), testConfig(t)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{3}, hooks.composed); diff != "" {
		t.Errorf("compose events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pdf", "pdf"}, hooks.rendered); diff != "" {
		t.Errorf("render events mismatch (-want +got):\n%s", diff)
	}
}
