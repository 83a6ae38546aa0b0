package locator

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/cache"
	"github.com/matzehuels/reslocator/pkg/classpath"
	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/facet"
	"github.com/matzehuels/reslocator/pkg/locator/fallback"
	"github.com/matzehuels/reslocator/pkg/maven"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// SourceChain asks each provider in turn and returns the first non-empty
// list. Unavailable metadata is skipped; the first real error is returned
// only when no provider yields roots.
type SourceChain []SourceRootProvider

// SourceRoots implements SourceRootProvider.
func (c SourceChain) SourceRoots(p *workspace.Project) ([]workspace.Path, error) {
	var firstErr error
	for _, s := range c {
		roots, err := s.SourceRoots(p)
		if err != nil {
			if !errors.Is(err, errors.ErrCodeMetadataUnavailable) && firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(roots) > 0 {
			return roots, nil
		}
	}
	return nil, firstErr
}

// DefaultOptions wires the on-disk collaborators: pom.xml for build
// metadata, .classpath (then the pom) for source roots, the project
// descriptor and facet settings for classification, and one fallback per
// Kind. Callers may replace any field before passing the result to New.
func DefaultOptions(c cache.Cache, logger *log.Logger) Options {
	if logger == nil {
		logger = log.Default()
	}
	pom := maven.NewProvider(c, logger)
	return wire(pom, SourceChain{classpath.Provider{}, pom}, logger)
}

// PlainOptions wires the same collaborators as DefaultOptions without the
// Maven integration. Build metadata is always unavailable and source roots
// come from .classpath alone, so no pom.xml is ever read.
func PlainOptions(logger *log.Logger) Options {
	if logger == nil {
		logger = log.Default()
	}
	return wire(maven.Disabled{}, SourceChain{classpath.Provider{}}, logger)
}

func wire(md BuildMetadataProvider, sources SourceChain, logger *log.Logger) Options {
	checker := workspace.OSChecker{}
	simple := fallback.NewSimple(sources, classpath.Provider{}, checker, logger)
	module := fallback.NewModule(simple)
	return Options{
		Metadata:   md,
		Sources:    sources,
		Classifier: facet.Classifier{},
		Fallbacks: map[Kind]ResourceLocator{
			KindPlain:     simple,
			KindComponent: module,
			KindWeb:       fallback.NewWeb(module),
		},
		Checker: checker,
		Logger:  logger,
	}
}

// NewDefault returns a Locator over the on-disk collaborators.
func NewDefault(c cache.Cache, logger *log.Logger) *Locator {
	return New(DefaultOptions(c, logger))
}
