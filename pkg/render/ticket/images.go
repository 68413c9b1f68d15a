package ticket

import (
	"context"
	"image"
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/ticketsheet/pkg/cache"
	"github.com/matzehuels/ticketsheet/pkg/observability"
)

// cacheKeyType labels image lookups in cache hooks.
const cacheKeyType = "image"

// Images decodes main-body source images once per path and remembers both
// successes and failures, so a bad path is reported a single time per run
// instead of once per ticket.
type Images struct {
	cache  cache.Cache[image.Image]
	group  singleflight.Group
	logger *log.Logger

	mu     sync.Mutex
	failed map[string]error
	warned map[string]struct{}
}

// NewImages creates a loader backed by c. A nil cache selects an in-memory
// cache; pass cache.NewNull to decode on every call.
func NewImages(c cache.Cache[image.Image], logger *log.Logger) *Images {
	if c == nil {
		c = cache.NewMemory[image.Image]()
	}
	return &Images{cache: c, logger: logger, failed: make(map[string]error), warned: make(map[string]struct{})}
}

// Load returns the decoded image at path. EXIF orientation is applied.
// Entries are keyed by path, size and modification time, so an image
// replaced on disk is decoded again.
func (l *Images) Load(path string) (image.Image, error) {
	ctx := context.Background()
	key, err := fileKey(path)
	if err != nil {
		l.fail(path, path, err)
		return nil, err
	}
	if img, ok := l.cache.Get(key); ok {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		return img, nil
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	l.mu.Lock()
	err, failed := l.failed[key]
	l.mu.Unlock()
	if failed {
		return nil, err
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			l.fail(key, path, err)
			return nil, err
		}
		l.cache.Set(key, img)
		b := img.Bounds()
		observability.Cache().OnCacheSet(ctx, cacheKeyType, 4*b.Dx()*b.Dy())
		if l.logger != nil {
			l.logger.Debug("decoded main image", "path", path, "size", b.Size())
		}
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// fail records err under key and warns once per path.
func (l *Images) fail(key, path string, err error) {
	l.mu.Lock()
	l.failed[key] = err
	_, seen := l.warned[path]
	l.warned[path] = struct{}{}
	l.mu.Unlock()
	if !seen && l.logger != nil {
		l.logger.Warn("main image unavailable, drawing background only", "path", path, "err", err)
	}
}

func fileKey(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return cache.Key(path, strconv.FormatInt(fi.Size(), 10), strconv.FormatInt(fi.ModTime().UnixNano(), 10)), nil
}

// Contain scales src to height h preserving its aspect ratio. If the result
// is wider than maxW it is scaled down to maxW instead. ok is false when the
// source or the result would be empty.
func Contain(src image.Image, h, maxW int) (img *image.NRGBA, ok bool) {
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 || h < 1 || maxW < 1 {
		return nil, false
	}
	aspect := float64(b.Dx()) / float64(b.Dy())
	w := int(float64(h) * aspect)
	if w > maxW {
		w = maxW
		h = int(float64(w) / aspect)
	}
	if w < 1 || h < 1 {
		return nil, false
	}
	return imaging.Resize(src, w, h, imaging.Lanczos), true
}

// Cover scales src to fill w x h preserving its aspect ratio and crops the
// overflowing dimension around the center. The result is exactly w x h and
// opaque.
func Cover(src image.Image, w, h int) (img *image.NRGBA, ok bool) {
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 || w < 1 || h < 1 {
		return nil, false
	}
	return imaging.Fill(flatten(src), w, h, imaging.Center, imaging.Lanczos), true
}

// flatten drops the alpha channel, keeping the stored color of transparent
// pixels, so a cover image is fully opaque.
func flatten(src image.Image) *image.NRGBA {
	dst := imaging.Clone(src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
