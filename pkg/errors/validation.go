package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateRange checks that v lies in the closed interval [lo, hi].
// The returned error carries code and names the offending field.
func ValidateRange(code Code, field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(code, "%s must be between %d and %d, got %d", field, lo, hi, v)
	}
	return nil
}

// ValidateOutputPath validates a destination path for a generated PNG.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Extension must be .png (case-insensitive)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return New(ErrCodeInvalidPath, "output path must end in .png: %q", path)
	}

	return nil
}

// ValidateFontPath validates a user supplied font file path.
// A missing file is not an error here; font loading falls back silently.
func ValidateFontPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "font path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "font path contains invalid characters")
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return nil
	}
	return New(ErrCodeInvalidPath, "font path must be a .ttf or .otf file: %q", path)
}
