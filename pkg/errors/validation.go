package errors

import (
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// MaxTickets bounds a single run.
const MaxTickets = 100_000

// ValidateRange checks an inclusive ticket range and its zero-pad width.
// Negative numbers are allowed; they pad with the sign counted in the width.
func ValidateRange(start, end, padding int) error {
	if end < start {
		return New(ErrCodeInvalidRange, "end number (%d) must be greater than or equal to start number (%d)", end, start)
	}
	if end-start+1 > MaxTickets {
		return New(ErrCodeInvalidRange, "range of %d tickets exceeds the limit of %d", end-start+1, MaxTickets)
	}
	if padding < 0 {
		return New(ErrCodeInvalidRange, "zero padding must not be negative, got %d", padding)
	}
	if padding > 32 {
		return New(ErrCodeInvalidRange, "zero padding too wide (max 32), got %d", padding)
	}
	return nil
}

// ValidateScale checks the design scale factor.
func ValidateScale(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return New(ErrCodeInvalidScale, "scale must be a positive number, got %v", s)
	}
	if s > 10 {
		return New(ErrCodeInvalidScale, "scale too large (max 10), got %v", s)
	}
	return nil
}

// ValidateGrid checks the sheet grid dimensions.
func ValidateGrid(columns, rows int) error {
	if columns < 1 || rows < 1 {
		return New(ErrCodeInvalidGrid, "grid must have at least one column and one row, got %dx%d", columns, rows)
	}
	if columns*rows > 1000 {
		return New(ErrCodeInvalidGrid, "grid too large: %dx%d", columns, rows)
	}
	return nil
}

// ValidateImagePath checks the main-body image. An empty path means no
// image; a non-empty path must name an existing regular file.
func ValidateImagePath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeFileNotFound, "image file %q does not exist", path)
		}
		return Wrap(ErrCodeFileNotFound, err, "image file %q is not readable", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "image path %q is a directory", path)
	}
	return nil
}

// ValidateOutputName validates an output base name. It must be a plain file
// name without directories, extension handling is left to the renderer.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}
	if len(name) > 200 {
		return New(ErrCodeInvalidPath, "output name too long (max 200 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	}
	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "output name cannot be a hidden file")
	}
	return nil
}

// ParseNumber parses a ticket number from user input such as a URL path
// segment. Leading zeros are accepted.
func ParseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidInput, "ticket number cannot be empty")
	}
	if len(s) > 18 {
		return 0, New(ErrCodeInvalidInput, "ticket number too long")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, New(ErrCodeInvalidInput, "invalid ticket number: %q", s)
	}
	return n, nil
}
