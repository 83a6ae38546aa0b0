package locator

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/observability"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// ResourceLocator maps between runtime paths and project locations. The
// Locator and every fallback implement it.
type ResourceLocator interface {
	// Resolve returns the project location of a runtime-relative path.
	Resolve(p *workspace.Project, logical workspace.Path) (workspace.Path, bool)
	// IsLocationValid reports whether container may hold resources.
	IsLocationValid(p *workspace.Project, container workspace.Path) bool
	// DefaultLocation returns where new resources should be created.
	DefaultLocation(p *workspace.Project) (workspace.Path, bool)
	// RuntimePath maps a project location back to its runtime path.
	RuntimePath(p *workspace.Project, resource workspace.Path) (workspace.Path, bool)
}

// BuildMetadataProvider reports build-tool metadata. The second result is
// false while metadata is unavailable, which is not an error.
type BuildMetadataProvider interface {
	BuildMetadata(p *workspace.Project) (*workspace.BuildMetadata, bool)
}

// SourceRootProvider lists source roots in declared order.
type SourceRootProvider interface {
	SourceRoots(p *workspace.Project) ([]workspace.Path, error)
}

// ProjectClassifier answers the questions that select a fallback.
type ProjectClassifier interface {
	IsFlexibleModule(p *workspace.Project) (bool, error)
	HasWebFacet(p *workspace.Project) (bool, error)
}

// Strategy names the step that produced a resolution.
type Strategy string

// Strategies in priority order.
const (
	StrategyResources Strategy = "build-resources"
	StrategySources   Strategy = "source-roots"
	StrategyFallback  Strategy = "fallback"
	StrategyNone      Strategy = "none"
)

// Options configures a Locator. Only Checker and Logger have defaults; a nil
// provider simply contributes nothing.
type Options struct {
	Metadata   BuildMetadataProvider
	Sources    SourceRootProvider
	Classifier ProjectClassifier
	// Fallbacks holds one locator per Kind. Missing kinds resolve nothing.
	Fallbacks map[Kind]ResourceLocator
	Checker   workspace.ExistenceChecker
	Logger    *log.Logger
}

// Locator resolves resources using build metadata first. It holds no
// per-project state and is safe for concurrent use when its collaborators
// are.
type Locator struct {
	metadata   BuildMetadataProvider
	sources    SourceRootProvider
	classifier ProjectClassifier
	fallbacks  map[Kind]ResourceLocator
	checker    workspace.ExistenceChecker
	logger     *log.Logger
}

// New creates a Locator from opts.
func New(opts Options) *Locator {
	if opts.Checker == nil {
		opts.Checker = workspace.OSChecker{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Locator{
		metadata:   opts.Metadata,
		sources:    opts.Sources,
		classifier: opts.Classifier,
		fallbacks:  opts.Fallbacks,
		checker:    opts.Checker,
		logger:     opts.Logger,
	}
}

// ParseLogical validates a caller-supplied runtime path.
func ParseLogical(s string) (workspace.Path, error) {
	if err := errors.ValidatePath(s); err != nil {
		return workspace.Path{}, err
	}
	p := workspace.NewPath(s)
	if p.IsEmpty() {
		return workspace.Path{}, errors.New(errors.ErrCodeInvalidPath, "path %q names no resource", s)
	}
	return p, nil
}

// Candidate is one location probed during a resolution.
type Candidate struct {
	Strategy Strategy       `json:"strategy" yaml:"strategy"`
	Path     workspace.Path `json:"path" yaml:"path"`
	Exists   bool           `json:"exists" yaml:"exists"`
}

// Resolution describes the outcome of one Explain call.
type Resolution struct {
	Project    string         `json:"project" yaml:"project"`
	Logical    workspace.Path `json:"logical" yaml:"logical"`
	Location   workspace.Path `json:"location,omitempty" yaml:"location,omitempty"`
	Found      bool           `json:"found" yaml:"found"`
	Strategy   Strategy       `json:"strategy" yaml:"strategy"`
	Kind       Kind           `json:"kind" yaml:"kind"`
	Metadata   bool           `json:"build_metadata" yaml:"build_metadata"`
	Candidates []Candidate    `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// Resolve returns the location of logical in p: the first existing join
// with a build resource root, else with a source root, else whatever the
// fallback for p's kind returns.
func (l *Locator) Resolve(p *workspace.Project, logical workspace.Path) (workspace.Path, bool) {
	r := l.resolve(p, logical, false)
	return r.Location, r.Found
}

// Explain resolves like Resolve and records every candidate probed on the
// way. The fallback's own probes are not visible.
func (l *Locator) Explain(p *workspace.Project, logical workspace.Path) Resolution {
	return l.resolve(p, logical, true)
}

func (l *Locator) resolve(p *workspace.Project, logical workspace.Path, trace bool) (r Resolution) {
	start := time.Now()
	r = Resolution{Project: p.Name, Logical: logical, Strategy: StrategyNone}
	defer func() {
		observability.Resolver().OnResolve(p.Name, logical.String(), string(r.Strategy), r.Found, time.Since(start))
	}()

	if logical.IsEmpty() {
		l.logger.Debug("empty logical path", "project", p.Name, "op", "resolve")
		return r
	}

	if md, ok := l.buildMetadata(p); ok {
		r.Metadata = true
		if loc, ok := l.firstExisting(p, md.ResourceRoots, logical, StrategyResources, trace, &r); ok {
			r.Location, r.Found, r.Strategy = loc, true, StrategyResources
			return r
		}
	}

	if loc, ok := l.firstExisting(p, l.sourceRoots(p, "resolve"), logical, StrategySources, trace, &r); ok {
		r.Location, r.Found, r.Strategy = loc, true, StrategySources
		return r
	}

	kind, fb := l.fallback(p)
	r.Kind = kind
	if fb == nil {
		return r
	}
	if loc, ok := fb.Resolve(p, logical); ok {
		r.Location, r.Found, r.Strategy = loc, true, StrategyFallback
		if trace {
			r.Candidates = append(r.Candidates, Candidate{Strategy: StrategyFallback, Path: loc, Exists: true})
		}
	}
	return r
}

func (l *Locator) firstExisting(p *workspace.Project, roots []workspace.Path, logical workspace.Path, s Strategy, trace bool, r *Resolution) (workspace.Path, bool) {
	for _, root := range roots {
		candidate := root.Join(logical)
		exists := l.checker.Exists(p.Abs(candidate))
		if trace {
			r.Candidates = append(r.Candidates, Candidate{Strategy: s, Path: candidate, Exists: exists})
		}
		if exists {
			return candidate, true
		}
	}
	return workspace.Path{}, false
}

// IsLocationValid accepts every container except those below the build's
// output or test output folder. Without build metadata the fallback decides.
func (l *Locator) IsLocationValid(p *workspace.Project, container workspace.Path) bool {
	md, ok := l.buildMetadata(p)
	if !ok {
		_, fb := l.fallback(p)
		if fb == nil {
			return true
		}
		return fb.IsLocationValid(p, container)
	}
	if under(md.OutputPath, container) || under(md.TestOutputPath, container) {
		return false
	}
	return true
}

func under(output, container workspace.Path) bool {
	return !output.IsEmpty() && output.IsPrefixOf(container)
}

// DefaultLocation returns the first resource root's META-INF folder that
// exists. When none exists the first root's META-INF is returned anyway, as
// the place to create one. Projects without resource roots use the fallback.
func (l *Locator) DefaultLocation(p *workspace.Project) (workspace.Path, bool) {
	if md, ok := l.buildMetadata(p); ok {
		var first *workspace.Path
		for _, root := range md.ResourceRoots {
			candidate := root.Join(workspace.MetaInf)
			if l.checker.Exists(p.Abs(candidate)) {
				return candidate, true
			}
			if first == nil {
				first = &candidate
			}
		}
		if first != nil {
			return *first, true
		}
	}
	_, fb := l.fallback(p)
	if fb == nil {
		return workspace.Path{}, false
	}
	return fb.DefaultLocation(p)
}

// RuntimePath is answered by the fallback alone.
func (l *Locator) RuntimePath(p *workspace.Project, resource workspace.Path) (workspace.Path, bool) {
	_, fb := l.fallback(p)
	if fb == nil {
		return workspace.Path{}, false
	}
	return fb.RuntimePath(p, resource)
}

// Kind classifies p the same way the fallback selection does.
func (l *Locator) Kind(p *workspace.Project) Kind {
	return Classify(l.classifier, p, l.logger)
}

// BuildMetadata exposes the metadata the locator would use for p.
func (l *Locator) BuildMetadata(p *workspace.Project) (*workspace.BuildMetadata, bool) {
	return l.buildMetadata(p)
}

// SourceRoots exposes the source roots the locator would use for p.
func (l *Locator) SourceRoots(p *workspace.Project) []workspace.Path {
	return l.sourceRoots(p, "source-roots")
}

func (l *Locator) buildMetadata(p *workspace.Project) (*workspace.BuildMetadata, bool) {
	if l.metadata == nil {
		return nil, false
	}
	md, ok := l.metadata.BuildMetadata(p)
	if !ok || md == nil {
		return nil, false
	}
	return md, true
}

func (l *Locator) sourceRoots(p *workspace.Project, op string) []workspace.Path {
	if l.sources == nil {
		return nil
	}
	roots, err := l.sources.SourceRoots(p)
	if err != nil {
		l.logger.Error("source root lookup failed", "project", p.Name, "op", op, "err", err)
		observability.Resolver().OnProviderError(p.Name, op, err)
		return nil
	}
	return roots
}

func (l *Locator) fallback(p *workspace.Project) (Kind, ResourceLocator) {
	kind := l.Kind(p)
	return kind, l.fallbacks[kind]
}

var _ ResourceLocator = (*Locator)(nil)
