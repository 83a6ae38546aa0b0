package locator

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// Match is one file found by Find.
type Match struct {
	Logical  workspace.Path `json:"logical" yaml:"logical"`
	Location workspace.Path `json:"location" yaml:"location"`
	Strategy Strategy       `json:"strategy" yaml:"strategy"`
	// Shadowed is set when an earlier root already provides the same
	// logical path, so Resolve would never return Location.
	Shadowed bool `json:"shadowed,omitempty" yaml:"shadowed,omitempty"`
}

// Find lists every file below the resource roots and source roots of p whose
// root-relative path matches pattern. Patterns use doublestar syntax, e.g.
// "META-INF/**/*.xml". Matches come in resolution order: roots in priority
// order, files in lexical order within a root.
func (l *Locator) Find(ctx context.Context, p *workspace.Project, pattern string) ([]Match, error) {
	// path.Match checks the whole pattern even on a mismatch; doublestar
	// only reports syntax errors it reaches.
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", pattern)
	}

	type root struct {
		path     workspace.Path
		strategy Strategy
	}
	var roots []root
	if md, ok := l.buildMetadata(p); ok {
		for _, r := range md.ResourceRoots {
			roots = append(roots, root{r, StrategyResources})
		}
	}
	for _, r := range l.sourceRoots(p, "find") {
		roots = append(roots, root{r, StrategySources})
	}

	seen := make(map[workspace.Path]bool)
	var matches []Match
	for _, r := range roots {
		base := p.Abs(r.path)
		err := filepath.WalkDir(base, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable roots contribute nothing.
				if name == base {
					return filepath.SkipDir
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(base, name)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", pattern)
			}
			if !ok {
				return nil
			}
			logical := workspace.NewPath(rel)
			matches = append(matches, Match{
				Logical:  logical,
				Location: r.path.Join(logical),
				Strategy: r.strategy,
				Shadowed: seen[logical],
			})
			seen[logical] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return matches, nil
}
