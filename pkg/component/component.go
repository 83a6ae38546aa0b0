// Package component reads the virtual component layout of a flexible module.
//
// A flexible project describes how its folders are assembled into the
// deployed module in .settings/org.eclipse.wst.common.component:
//
//	<project-modules id="moduleCoreId" project-version="1.5.0">
//	  <wb-module deploy-name="shop-web">
//	    <wb-resource deploy-path="/" source-path="/src/main/webapp" tag="defaultRootSource"/>
//	    <wb-resource deploy-path="/WEB-INF/classes" source-path="/src/main/java"/>
//	  </wb-module>
//	</project-modules>
//
// Each wb-resource maps a deployed (runtime) folder onto a project folder.
package component

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// Mapping binds a runtime folder to a project folder.
type Mapping struct {
	DeployPath workspace.Path `json:"deploy_path" yaml:"deploy_path"`
	SourcePath workspace.Path `json:"source_path" yaml:"source_path"`
	Tag        string         `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Module is one <wb-module>.
type Module struct {
	DeployName string    `json:"deploy_name" yaml:"deploy_name"`
	Mappings   []Mapping `json:"mappings" yaml:"mappings"`
}

type projectModules struct {
	Modules []wbModule `xml:"wb-module"`
}

type wbModule struct {
	DeployName string       `xml:"deploy-name,attr"`
	Resources  []wbResource `xml:"wb-resource"`
}

type wbResource struct {
	DeployPath string `xml:"deploy-path,attr"`
	SourcePath string `xml:"source-path,attr"`
	Tag        string `xml:"tag,attr"`
}

// Parse decodes a component descriptor and returns its first module.
func Parse(data []byte) (*Module, error) {
	var pm projectModules
	if err := xml.Unmarshal(data, &pm); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "parse component descriptor")
	}
	if len(pm.Modules) == 0 {
		return nil, errors.New(errors.ErrCodeProvider, "component descriptor declares no module")
	}
	wm := pm.Modules[0]
	m := &Module{DeployName: wm.DeployName}
	for _, r := range wm.Resources {
		if strings.TrimSpace(r.SourcePath) == "" {
			continue
		}
		m.Mappings = append(m.Mappings, Mapping{
			DeployPath: workspace.NewPath(r.DeployPath),
			SourcePath: workspace.NewPath(r.SourcePath),
			Tag:        r.Tag,
		})
	}
	return m, nil
}

// Load reads p's component descriptor. A project without one yields
// ErrCodeMetadataUnavailable.
func Load(p *workspace.Project) (*Module, error) {
	data, err := os.ReadFile(p.File(workspace.ComponentFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeMetadataUnavailable, "%s has no component descriptor", p.Name)
		}
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "read component descriptor of %s", p.Name)
	}
	return Parse(data)
}

// Under returns the mappings whose deploy path is a prefix of runtime, in
// declaration order, together with the remainder below each deploy path.
func (m *Module) Under(runtime workspace.Path) ([]Mapping, []workspace.Path) {
	var ms []Mapping
	var rest []workspace.Path
	for _, mp := range m.Mappings {
		if r, ok := runtime.RelativeTo(mp.DeployPath); ok {
			ms = append(ms, mp)
			rest = append(rest, r)
		}
	}
	return ms, rest
}

// Containing returns the first mapping whose source path is a prefix of
// resource, and the remainder below it.
func (m *Module) Containing(resource workspace.Path) (Mapping, workspace.Path, bool) {
	for _, mp := range m.Mappings {
		if r, ok := resource.RelativeTo(mp.SourcePath); ok {
			return mp, r, true
		}
	}
	return Mapping{}, workspace.Path{}, false
}

// Sources returns the source paths mapped to deploy path exactly.
func (m *Module) Sources(deploy workspace.Path) []workspace.Path {
	var out []workspace.Path
	for _, mp := range m.Mappings {
		if mp.DeployPath == deploy {
			out = append(out, mp.SourcePath)
		}
	}
	return out
}
