// Package facet classifies projects by their natures and installed facets.
package facet

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// Well-known identifiers.
const (
	ModuleCoreNature = "org.eclipse.wst.common.modulecore.ModuleCoreNature"
	JavaNature       = "org.eclipse.jdt.core.javanature"
	MavenNature      = "org.eclipse.m2e.core.maven2Nature"

	WebFacet     = "jst.web"
	JavaFacet    = "java"
	JPAFacet     = "jpt.jpa"
	JSFFacet     = "jst.jsf"
	UtilityFacet = "jst.utility"
)

// Facet is one installed facet.
type Facet struct {
	ID      string `xml:"facet,attr" json:"id" yaml:"id"`
	Version string `xml:"version,attr" json:"version,omitempty" yaml:"version,omitempty"`
}

type facetedProject struct {
	Installed []Facet `xml:"installed"`
}

type projectDescription struct {
	Name    string   `xml:"name"`
	Natures []string `xml:"natures>nature"`
}

// Natures returns the natures declared in p's .project. A project without a
// descriptor has none.
func Natures(p *workspace.Project) ([]string, error) {
	data, err := os.ReadFile(p.File(workspace.ProjectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "read %s of %s", workspace.ProjectFile, p.Name)
	}
	var desc projectDescription
	if err := xml.Unmarshal(data, &desc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "parse %s of %s", workspace.ProjectFile, p.Name)
	}
	natures := make([]string, 0, len(desc.Natures))
	for _, n := range desc.Natures {
		natures = append(natures, strings.TrimSpace(n))
	}
	return natures, nil
}

// Installed returns the facets recorded in p's facet settings. A project
// without the settings file is not faceted and has none.
func Installed(p *workspace.Project) ([]Facet, error) {
	data, err := os.ReadFile(p.File(workspace.FacetsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "read facets of %s", p.Name)
	}
	var fp facetedProject
	if err := xml.Unmarshal(data, &fp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "parse facets of %s", p.Name)
	}
	return fp.Installed, nil
}

// Classifier answers classification questions from the files on disk. It
// keeps no state, so every answer reflects the current settings.
type Classifier struct{}

// IsFlexibleModule reports whether p carries the module core nature.
func (Classifier) IsFlexibleModule(p *workspace.Project) (bool, error) {
	natures, err := Natures(p)
	if err != nil {
		return false, err
	}
	for _, n := range natures {
		if n == ModuleCoreNature {
			return true, nil
		}
	}
	return false, nil
}

// HasWebFacet reports whether the web module facet is installed on p.
func (c Classifier) HasWebFacet(p *workspace.Project) (bool, error) {
	return c.HasFacet(p, WebFacet)
}

// HasFacet reports whether facet id is installed on p.
func (Classifier) HasFacet(p *workspace.Project, id string) (bool, error) {
	facets, err := Installed(p)
	if err != nil {
		return false, err
	}
	for _, f := range facets {
		if f.ID == id {
			return true, nil
		}
	}
	return false, nil
}
