package fallback

import (
	"github.com/matzehuels/reslocator/pkg/component"
	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// Module locates resources through the deploy mappings of a flexible
// component. Projects without a component descriptor are served by Simple.
type Module struct {
	Simple *Simple
	// Load reads the component layout; it defaults to component.Load.
	Load func(p *workspace.Project) (*component.Module, error)
}

// NewModule returns a Module locator on top of simple.
func NewModule(simple *Simple) *Module {
	return &Module{Simple: simple, Load: component.Load}
}

func (m *Module) component(p *workspace.Project, op string) (*component.Module, bool) {
	load := m.Load
	if load == nil {
		load = component.Load
	}
	cm, err := load(p)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeMetadataUnavailable) {
			m.Simple.Logger.Error("component lookup failed", "project", p.Name, "op", op, "err", err)
		}
		return nil, false
	}
	return cm, true
}

// Resolve maps the runtime path through every mapping whose deploy path
// contains it and returns the first candidate that exists.
func (m *Module) Resolve(p *workspace.Project, logical workspace.Path) (workspace.Path, bool) {
	cm, ok := m.component(p, "resolve")
	if !ok {
		return m.Simple.Resolve(p, logical)
	}
	return m.resolveRuntime(p, cm, logical)
}

func (m *Module) resolveRuntime(p *workspace.Project, cm *component.Module, runtime workspace.Path) (workspace.Path, bool) {
	mappings, rest := cm.Under(runtime)
	for i, mp := range mappings {
		candidate := mp.SourcePath.Join(rest[i])
		if m.Simple.Checker.Exists(p.Abs(candidate)) {
			return candidate, true
		}
	}
	return workspace.Path{}, false
}

// IsLocationValid accepts containers that belong to a mapped source folder.
func (m *Module) IsLocationValid(p *workspace.Project, container workspace.Path) bool {
	cm, ok := m.component(p, "location-valid")
	if !ok {
		return m.Simple.IsLocationValid(p, container)
	}
	_, _, ok = cm.Containing(container)
	return ok
}

// DefaultLocation returns META-INF below the module root.
func (m *Module) DefaultLocation(p *workspace.Project) (workspace.Path, bool) {
	cm, ok := m.component(p, "default-location")
	if !ok {
		return m.Simple.DefaultLocation(p)
	}
	return m.defaultLocation(p, cm)
}

func (m *Module) defaultLocation(p *workspace.Project, cm *component.Module) (workspace.Path, bool) {
	if loc, ok := m.firstMetaInf(p, cm.Sources(workspace.Path{})); ok {
		return loc, true
	}
	return m.Simple.DefaultLocation(p)
}

// firstMetaInf picks the first existing META-INF below sources, else the
// first computed one.
func (m *Module) firstMetaInf(p *workspace.Project, sources []workspace.Path) (workspace.Path, bool) {
	for _, src := range sources {
		candidate := src.Join(workspace.MetaInf)
		if m.Simple.Checker.Exists(p.Abs(candidate)) {
			return candidate, true
		}
	}
	if len(sources) > 0 {
		return sources[0].Join(workspace.MetaInf), true
	}
	return workspace.Path{}, false
}

// RuntimePath inverts the mapping that contains resource.
func (m *Module) RuntimePath(p *workspace.Project, resource workspace.Path) (workspace.Path, bool) {
	cm, ok := m.component(p, "runtime-path")
	if !ok {
		return m.Simple.RuntimePath(p, resource)
	}
	mp, rest, ok := cm.Containing(resource)
	if !ok {
		return workspace.Path{}, false
	}
	rt := mp.DeployPath.Join(rest)
	if rt.IsEmpty() {
		return workspace.Path{}, false
	}
	return rt, true
}
