package pipeline

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ticketsheet/pkg/buildinfo"
	"github.com/matzehuels/ticketsheet/pkg/cache"
	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/observability"
	"github.com/matzehuels/ticketsheet/pkg/render/sheet"
	"github.com/matzehuels/ticketsheet/pkg/render/sink"
)

// Runner executes runs. It holds no per-run state: multiple goroutines can
// use the same Runner with different configurations.
type Runner struct {
	// Images caches decoded main-body images across runs.
	Images cache.Cache[image.Image]
	Logger *log.Logger

	// Progress, when set, is called after each ticket is composed. It may
	// be called from several goroutines at once.
	Progress func(done, total int)
}

// NewRunner creates a runner. A nil cache selects an in-memory cache, a nil
// logger the default logger.
func NewRunner(images cache.Cache[image.Image], logger *log.Logger) *Runner {
	if images == nil {
		images = cache.NewMemory[image.Image]()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Images: images, Logger: logger}
}

// Execute runs the complete prepare → compose → paginate → render pipeline
// and writes the artifacts to cfg.Output.Dir.
func (r *Runner) Execute(ctx context.Context, cfg config.Config) (*Result, error) {
	job, err := r.Prepare(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: newRunID(), Numbers: job.Numbers()}
	result.Stats.Tickets = len(result.Numbers)
	result.Stats.Font = job.Font.Name()
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 2: Compose
	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, len(result.Numbers))
	result.Fronts, result.Backs, err = r.Compose(ctx, job, result.Numbers)
	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Pipeline().OnComposeComplete(ctx, len(result.Numbers), result.Stats.ComposeTime, err)
	if err != nil {
		return nil, err
	}
	logger.Info("composed tickets",
		"count", len(result.Numbers),
		"first", result.Numbers[0],
		"last", result.Numbers[len(result.Numbers)-1],
		"duration", result.Stats.ComposeTime)

	// Stage 3: Paginate
	result.FrontLayout = sheet.LayoutImages(result.Fronts, job.Sheet)
	result.BackLayout = sheet.LayoutImages(result.Backs, job.Sheet)
	result.Stats.Pages = result.FrontLayout.Pages
	for _, o := range result.FrontLayout.Overflow {
		logger.Warn("tickets do not fit the page, output will be clipped", "detail", o.String())
	}

	// Stage 4: Render
	renderStart := time.Now()
	out := cfg.Output
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", out.Dir)
	}
	for _, doc := range []struct {
		name, title string
		images      []image.Image
		layout      sheet.Layout
	}{
		{out.Fronts, "Ticket fronts", result.Fronts, result.FrontLayout},
		{out.Backs, "Ticket backs", result.Backs, result.BackLayout},
	} {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, out.Format, doc.layout.Pages)
		arts, err := r.render(doc.name, doc.title, doc.images, doc.layout, job, result.RunID)
		observability.Pipeline().OnRenderComplete(ctx, out.Format, len(arts), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		result.Artifacts = append(result.Artifacts, arts...)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered sheets",
		"format", out.Format,
		"pages", result.Stats.Pages,
		"files", len(result.Artifacts),
		"duration", result.Stats.RenderTime)

	if out.Debug {
		if err := r.dumpTickets(out.Dir, result); err != nil {
			logger.Warn("debug dump failed", "err", err)
		}
	}
	return result, nil
}

// Compose draws fronts and backs for numbers on a pool of
// cfg.Output.Workers goroutines. Results keep the order of numbers.
func (r *Runner) Compose(ctx context.Context, job *Job, numbers []string) (fronts, backs []image.Image, err error) {
	fronts = make([]image.Image, len(numbers))
	backs = make([]image.Image, len(numbers))

	workers := job.Config.Output.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range numbers {
		i, n := i, n
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fronts[i] = job.Composer.Front(n)
			backs[i] = job.Composer.Back(n)
			r.Logger.Debug("composed ticket", "number", n)
			if r.Progress != nil {
				r.Progress(int(done.Add(1)), len(numbers))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeCanceled, err, "compose tickets")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeCanceled, err, "compose tickets")
	}
	return fronts, backs, nil
}

func (r *Runner) render(name, title string, images []image.Image, l sheet.Layout, job *Job, runID string) ([]Artifact, error) {
	out := job.Config.Output
	canvas, err := sink.New(out.Format, name, job.Sheet, sink.Meta{
		Title:   title,
		Subject: "run " + runID,
		Creator: buildinfo.Creator(),
		Created: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	arts, err := sink.Render(canvas, images, l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", name)
	}

	written := make([]Artifact, 0, len(arts))
	for _, a := range arts {
		path := filepath.Join(out.Dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		r.Logger.Debug("wrote artifact", "path", path, "pages", a.Pages, "bytes", len(a.Data))
		written = append(written, Artifact{Path: path, Pages: a.Pages, Bytes: len(a.Data)})
	}
	return written, nil
}

// dumpTickets writes every ticket image under <dir>/debug.
func (r *Runner) dumpTickets(dir string, result *Result) error {
	debugDir := filepath.Join(dir, "debug")
	if err := os.MkdirAll(debugDir, 0o755); err != nil {
		return err
	}
	for i, n := range result.Numbers {
		for side, img := range map[Side]image.Image{SideFront: result.Fronts[i], SideBack: result.Backs[i]} {
			path := filepath.Join(debugDir, string(side)+"_"+n+".png")
			if err := imaging.Save(img, path); err != nil {
				return err
			}
		}
	}
	r.Logger.Debug("dumped ticket images", "dir", debugDir, "count", 2*len(result.Numbers))
	return nil
}

func newRunID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
