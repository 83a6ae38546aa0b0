package fallback

import (
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// ClassesPath is the runtime folder of a web module that holds classpath
// resources.
var ClassesPath = workspace.NewPath("WEB-INF/classes")

// Web locates classpath resources of a web module. Runtime paths are
// relative to WEB-INF/classes, so META-INF/persistence.xml is looked up as
// WEB-INF/classes/META-INF/persistence.xml in the module layout.
type Web struct {
	Module *Module
}

// NewWeb returns a Web locator on top of module.
func NewWeb(module *Module) *Web {
	return &Web{Module: module}
}

// Resolve looks logical up below WEB-INF/classes.
func (w *Web) Resolve(p *workspace.Project, logical workspace.Path) (workspace.Path, bool) {
	cm, ok := w.Module.component(p, "resolve")
	if !ok {
		return w.Module.Simple.Resolve(p, logical)
	}
	return w.Module.resolveRuntime(p, cm, ClassesPath.Join(logical))
}

// IsLocationValid follows the module rule.
func (w *Web) IsLocationValid(p *workspace.Project, container workspace.Path) bool {
	return w.Module.IsLocationValid(p, container)
}

// DefaultLocation returns META-INF below the folders deployed to
// WEB-INF/classes, falling back to the module default.
func (w *Web) DefaultLocation(p *workspace.Project) (workspace.Path, bool) {
	cm, ok := w.Module.component(p, "default-location")
	if !ok {
		return w.Module.Simple.DefaultLocation(p)
	}
	if loc, ok := w.Module.firstMetaInf(p, cm.Sources(ClassesPath)); ok {
		return loc, true
	}
	return w.Module.defaultLocation(p, cm)
}

// RuntimePath maps resource to its runtime path relative to
// WEB-INF/classes. Resources deployed elsewhere have none.
func (w *Web) RuntimePath(p *workspace.Project, resource workspace.Path) (workspace.Path, bool) {
	cm, ok := w.Module.component(p, "runtime-path")
	if !ok {
		return w.Module.Simple.RuntimePath(p, resource)
	}
	mp, below, ok := cm.Containing(resource)
	if !ok {
		return workspace.Path{}, false
	}
	rest, ok := mp.DeployPath.Join(below).RelativeTo(ClassesPath)
	if !ok || rest.IsEmpty() {
		return workspace.Path{}, false
	}
	return rest, true
}
