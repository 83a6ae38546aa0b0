package workspace

import (
	"path"
	"strings"
)

// Path is a cleaned, slash-separated path relative to a project directory.
// The zero value is the project root. A Path built by Relative may start with
// ".." segments and then names a location elsewhere in the workspace, such as
// a sibling module's resource folder.
type Path struct {
	p string
}

// NewPath returns the cleaned project-relative form of s. Leading slashes and
// "." segments are dropped, so "/src/main/java" and "src/main/java/." are the
// same Path.
func NewPath(s string) Path {
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Clean("/" + s)
	return Path{p: strings.TrimPrefix(s, "/")}
}

// Relative returns the cleaned form of s taken relative to the project
// directory. Unlike NewPath it keeps leading ".." segments. Absolute input is
// treated like NewPath treats it.
func Relative(s string) Path {
	s = strings.ReplaceAll(s, "\\", "/")
	if strings.HasPrefix(s, "/") {
		return NewPath(s)
	}
	s = path.Clean(s)
	if s == "." {
		return Path{}
	}
	return Path{p: s}
}

// String returns the slash-separated form. The root is rendered as ".".
func (p Path) String() string {
	if p.p == "" {
		return "."
	}
	return p.p
}

// IsEmpty reports whether p is the project root.
func (p Path) IsEmpty() bool { return p.p == "" }

// IsExternal reports whether p leaves the project directory.
func (p Path) IsExternal() bool {
	return p.p == ".." || strings.HasPrefix(p.p, "../")
}

// Segments returns the path segments in order.
func (p Path) Segments() []string {
	if p.p == "" {
		return nil
	}
	return strings.Split(p.p, "/")
}

// Join appends other to p.
func (p Path) Join(other Path) Path {
	switch {
	case p.p == "":
		return other
	case other.p == "":
		return p
	}
	return Path{p: p.p + "/" + other.p}
}

// JoinString appends the cleaned form of s to p.
func (p Path) JoinString(s string) Path {
	return p.Join(NewPath(s))
}

// IsPrefixOf reports whether p is a segment-wise prefix of other. Every path
// is a prefix of itself and the root is a prefix of every path inside the
// project; "target/cl" is not a prefix of "target/classes".
func (p Path) IsPrefixOf(other Path) bool {
	if p.p == "" {
		return !other.IsExternal()
	}
	if p.p == other.p {
		return true
	}
	return strings.HasPrefix(other.p, p.p+"/")
}

// RelativeTo returns the remainder of p after base, or false when base is not
// a prefix of p.
func (p Path) RelativeTo(base Path) (Path, bool) {
	if !base.IsPrefixOf(p) {
		return Path{}, false
	}
	if base.p == "" {
		return p, true
	}
	return Path{p: strings.TrimPrefix(strings.TrimPrefix(p.p, base.p), "/")}, true
}

// MarshalText renders p for JSON and YAML reports.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a path written by MarshalText.
func (p *Path) UnmarshalText(b []byte) error {
	*p = Relative(string(b))
	return nil
}
