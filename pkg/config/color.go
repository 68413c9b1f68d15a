package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/ticketsheet/pkg/errors"
)

// ParseColor parses "R,G,B" with components in 0-255, or a hex color such
// as "#dcdcdc". The result is opaque. Errors carry [errors.ErrCodeInvalidColor].
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{r, g, b, 255}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: want R,G,B or #rrggbb", s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: components must be integers in 0-255", s)
		}
		v[i] = uint8(n)
	}
	return color.RGBA{v[0], v[1], v[2], 255}, nil
}

// FormatColor renders c as "R,G,B".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}
