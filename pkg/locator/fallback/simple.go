package fallback

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/workspace"
)

// SourceRootProvider lists a project's source roots in declared order.
type SourceRootProvider interface {
	SourceRoots(p *workspace.Project) ([]workspace.Path, error)
}

// OutputLocator reports a project's default compiled-output folder.
type OutputLocator interface {
	OutputLocation(p *workspace.Project) (workspace.Path, bool)
}

// Simple locates resources in the source roots of a plain Java project.
type Simple struct {
	Sources SourceRootProvider
	Output  OutputLocator
	Checker workspace.ExistenceChecker
	Logger  *log.Logger
}

// NewSimple returns a Simple locator. A nil checker tests the local
// filesystem and a nil logger falls back to log.Default().
func NewSimple(sources SourceRootProvider, output OutputLocator, checker workspace.ExistenceChecker, logger *log.Logger) *Simple {
	if checker == nil {
		checker = workspace.OSChecker{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Simple{Sources: sources, Output: output, Checker: checker, Logger: logger}
}

func (s *Simple) roots(p *workspace.Project, op string) []workspace.Path {
	if s.Sources == nil {
		return nil
	}
	roots, err := s.Sources.SourceRoots(p)
	if err != nil {
		s.Logger.Error("source root lookup failed", "project", p.Name, "op", op, "err", err)
		return nil
	}
	return roots
}

// Resolve returns the first source root joined with logical that exists.
func (s *Simple) Resolve(p *workspace.Project, logical workspace.Path) (workspace.Path, bool) {
	for _, root := range s.roots(p, "resolve") {
		candidate := root.Join(logical)
		if s.Checker.Exists(p.Abs(candidate)) {
			return candidate, true
		}
	}
	return workspace.Path{}, false
}

// IsLocationValid accepts every container outside the output folder.
func (s *Simple) IsLocationValid(p *workspace.Project, container workspace.Path) bool {
	if s.Output == nil {
		return true
	}
	out, ok := s.Output.OutputLocation(p)
	if !ok || out.IsEmpty() {
		return true
	}
	return !out.IsPrefixOf(container)
}

// DefaultLocation returns the first existing META-INF folder of the source
// roots, else the META-INF of the first root, else the project's own
// META-INF.
func (s *Simple) DefaultLocation(p *workspace.Project) (workspace.Path, bool) {
	roots := s.roots(p, "default-location")
	for _, root := range roots {
		candidate := root.Join(workspace.MetaInf)
		if s.Checker.Exists(p.Abs(candidate)) {
			return candidate, true
		}
	}
	if len(roots) > 0 {
		return roots[0].Join(workspace.MetaInf), true
	}
	return workspace.MetaInf, true
}

// RuntimePath strips the source root that contains resource.
func (s *Simple) RuntimePath(p *workspace.Project, resource workspace.Path) (workspace.Path, bool) {
	for _, root := range s.roots(p, "runtime-path") {
		if rest, ok := resource.RelativeTo(root); ok && !rest.IsEmpty() {
			return rest, true
		}
	}
	return workspace.Path{}, false
}
