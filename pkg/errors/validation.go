package errors

import (
	"os"
	"strings"
	"unicode"
)

// maxPathLength bounds logical and container paths accepted from callers.
const maxPathLength = 500

// ValidatePath validates a project-relative path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No ".." segments
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

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

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateProjectDir checks that dir exists and is a directory.
func ValidateProjectDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidInput, "project directory cannot be empty")
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "project directory does not exist: %s", dir)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidInput, "not a directory: %s", dir)
	}
	return nil
}
