package ticket

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/ticketsheet/pkg/cache"
	"github.com/matzehuels/ticketsheet/pkg/observability"
)

type countingCacheHooks struct {
	mu                sync.Mutex
	hits, misses, set int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func (h *countingCacheHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.mu.Lock()
	h.set += size
	h.mu.Unlock()
}

func TestImagesDecodeOnce(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	path := writeSolidPNG(t, 20, 10, red)
	images := NewImages(cache.NewMemory[image.Image](), nil)
	for i := 0; i < 3; i++ {
		img, err := images.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != 20 {
			t.Fatalf("width = %d, want 20", img.Bounds().Dx())
		}
	}
	if hooks.misses != 1 || hooks.hits != 2 {
		t.Errorf("misses = %d, hits = %d; want 1 and 2", hooks.misses, hooks.hits)
	}
	if hooks.set != 4*20*10 {
		t.Errorf("cached bytes = %d, want %d", hooks.set, 4*20*10)
	}
}

func TestImagesReloadsChangedFile(t *testing.T) {
	path := writeSolidPNG(t, 20, 10, red)
	images := NewImages(cache.NewMemory[image.Image](), nil)
	if _, err := images.Load(path); err != nil {
		t.Fatal(err)
	}

	if err := imaging.Save(imaging.New(30, 15, red), path); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	img, err := images.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 30 {
		t.Errorf("width = %d, want 30 after the file changed", got)
	}
}

func TestImagesConcurrentLoad(t *testing.T) {
	path := writeSolidPNG(t, 8, 8, red)
	images := NewImages(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := images.Load(path); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if _, err := images.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing image")
	}
}
