package errors

import (
	"strings"
	"unicode"
)

// MaxSourceSize bounds DOT sources accepted from untrusted callers.
const MaxSourceSize = 4 << 20

// ValidateSource checks a DOT source received from an untrusted caller.
// It only guards size and emptiness; grammar errors are reported by the renderer.
func ValidateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidInput, "source cannot be empty")
	}
	if len(src) > MaxSourceSize {
		return New(ErrCodeInvalidInput, "source too large (max %d bytes)", MaxSourceSize)
	}
	return nil
}

// ValidatePath validates a relative file path (image hint, base directory entry)
// received from an untrusted caller.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
