// Package fonts resolves the typeface used to draw ticket text.
//
// A font is requested by file path or by name ("arial.ttf"); names are looked
// up in the system font directories. When the requested font cannot be found
// or parsed, the built-in Go Regular face compiled into the binary is used
// instead, so text always renders.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinName is reported by [Source.Name] for the compiled-in face.
const BuiltinName = "Go Regular (built-in)"

// Source hands out faces of one typeface at any pixel size.
// It is safe for concurrent use; the faces it returns are not.
type Source struct {
	name string
	path string
	ttf  *truetype.Font
}

var (
	builtin     *Source
	builtinOnce sync.Once
)

// Builtin returns the compiled-in typeface.
// The font is parsed once on first access.
func Builtin() *Source {
	builtinOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			// Fall through to the fixed-size bitmap face.
			builtin = &Source{name: "basic 7x13 (built-in)"}
			return
		}
		builtin = &Source{name: BuiltinName, ttf: f}
	})
	return builtin
}

// Load resolves name to a font file and parses it. An empty name selects the
// built-in face. Failures are logged as warnings and degrade to [Builtin].
func Load(name string, logger *log.Logger) *Source {
	if name == "" {
		return Builtin()
	}
	src, err := open(name)
	if err != nil {
		if logger != nil {
			logger.Warn("font unavailable, using built-in face", "font", name, "err", err)
		}
		return Builtin()
	}
	return src
}

func open(name string) (*Source, error) {
	path := name
	if _, err := os.Stat(path); err != nil {
		found, ferr := findfont.Find(name)
		if ferr != nil {
			return nil, fmt.Errorf("find %q: %w", name, ferr)
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Source{name: name, path: path, ttf: f}, nil
}

// Name returns the requested font name, or BuiltinName.
func (s *Source) Name() string { return s.name }

// Path returns the resolved font file, empty for the built-in face.
func (s *Source) Path() string { return s.path }

// IsBuiltin reports whether s is the compiled-in fallback.
func (s *Source) IsBuiltin() bool { return s.path == "" }

// Face returns a new face at size pixels. Callers own the face; create one
// per goroutine.
func (s *Source) Face(size int) font.Face {
	if s.ttf == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(s.ttf, &truetype.Options{
		Size:    float64(max(1, size)),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
