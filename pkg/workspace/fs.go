package workspace

import "os"

// ExistenceChecker is the single primitive used to test every candidate
// location. Implementations must be safe for concurrent reads.
type ExistenceChecker interface {
	Exists(path string) bool
}

// OSChecker tests candidates against the local filesystem.
type OSChecker struct{}

// Exists reports whether a file or directory is present at path.
func (OSChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckerFunc adapts a function to ExistenceChecker.
type CheckerFunc func(path string) bool

// Exists calls f(path).
func (f CheckerFunc) Exists(path string) bool { return f(path) }
