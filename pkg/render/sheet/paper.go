package sheet

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation of a printed page.
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// ParseOrientation accepts "P", "L", "portrait" or "landscape".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "portrait", "":
		return Portrait, nil
	case "l", "landscape":
		return Landscape, nil
	}
	return "", fmt.Errorf("invalid orientation: %q (must be P or L)", s)
}

// Paper is a page size in points (1/72 inch), already oriented.
type Paper struct {
	Name        string      `json:"name"`
	Orientation Orientation `json:"orientation"`
	Width       float64     `json:"width_pt"`
	Height      float64     `json:"height_pt"`
}

// Portrait sizes in points.
var formats = map[string][2]float64{
	"a3":      {841.89, 1190.55},
	"a4":      {595.28, 841.89},
	"a5":      {420.94, 595.28},
	"letter":  {612, 792},
	"legal":   {612, 1008},
	"tabloid": {792, 1224},
}

// DefaultPaper is portrait US letter.
var DefaultPaper = Paper{Name: "letter", Orientation: Portrait, Width: 612, Height: 792}

// Formats lists the known paper names.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPaper returns the named format in the given orientation. Landscape
// swaps width and height.
func LookupPaper(name string, o Orientation) (Paper, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	size, ok := formats[key]
	if !ok {
		return Paper{}, fmt.Errorf("unknown paper format: %q (must be one of: %s)", name, strings.Join(Formats(), ", "))
	}
	p := Paper{Name: key, Orientation: Portrait, Width: size[0], Height: size[1]}
	if o == Landscape {
		p.Orientation = Landscape
		p.Width, p.Height = p.Height, p.Width
	}
	return p, nil
}
