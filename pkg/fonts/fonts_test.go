package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBuiltin(t *testing.T) {
	b := Builtin()
	if b != Builtin() {
		t.Error("Builtin() should return the same source")
	}
	if !b.IsBuiltin() {
		t.Error("IsBuiltin() = false")
	}
	if b.Name() != BuiltinName {
		t.Errorf("Name() = %q, want %q", b.Name(), BuiltinName)
	}
}

func TestFaceSizes(t *testing.T) {
	b := Builtin()
	small := b.Face(8).Metrics()
	large := b.Face(24).Metrics()
	if large.Height <= small.Height {
		t.Errorf("24px face height %v should exceed 8px face height %v", large.Height, small.Height)
	}
}

func TestLoadEmptyName(t *testing.T) {
	if Load("", nil) != Builtin() {
		t.Error("Load(\"\") should return the built-in source")
	}
}

func TestLoadMissingFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	src := Load("definitely-not-a-font-xyz.ttf", logger)
	if !src.IsBuiltin() {
		t.Error("missing font should fall back to built-in")
	}
	if buf.Len() == 0 {
		t.Error("fallback should log a warning")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	src := Load(path, nil)
	if src.IsBuiltin() {
		t.Fatal("font file on disk should load")
	}
	if src.Path() != path {
		t.Errorf("Path() = %q, want %q", src.Path(), path)
	}
}

func TestLoadCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if !Load(path, nil).IsBuiltin() {
		t.Error("corrupt font should fall back to built-in")
	}
}
