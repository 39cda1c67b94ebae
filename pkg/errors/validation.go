package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits enforced on formatter input.
const (
	MinWidth       = 8
	MaxWidth       = 1024
	MaxIndent      = 16
	MaxSourceBytes = 1 << 20
)

// SourceExt is the file extension of Lama sources.
const SourceExt = ".lama"

// ValidateWidth checks a page width for the formatter.
func ValidateWidth(width int) error {
	if width < MinWidth || width > MaxWidth {
		return New(ErrCodeInvalidWidth, "width must be between %d and %d, got %d", MinWidth, MaxWidth, width)
	}
	return nil
}

// ValidateIndent checks the indentation step used for nested blocks.
func ValidateIndent(indent int) error {
	if indent < 1 || indent > MaxIndent {
		return New(ErrCodeInvalidIndent, "indent must be between 1 and %d, got %d", MaxIndent, indent)
	}
	return nil
}

// ValidateSource rejects input that cannot be Lama source text.
//
// Validation rules:
//   - Maximum size of MaxSourceBytes
//   - Must be valid UTF-8
//   - No null bytes
func ValidateSource(src string) error {
	if len(src) > MaxSourceBytes {
		return New(ErrCodeInvalidInput, "source too large (max %d bytes)", MaxSourceBytes)
	}
	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidInput, "source is not valid UTF-8")
	}
	if strings.ContainsRune(src, '\x00') {
		return New(ErrCodeInvalidInput, "source contains null bytes")
	}
	return nil
}

// ValidateSourcePath checks a path passed to the formatter on the command line.
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if filepath.Ext(path) != SourceExt {
		return New(ErrCodeInvalidPath, "%s is not a %s file", path, SourceExt)
	}

	return nil
}
