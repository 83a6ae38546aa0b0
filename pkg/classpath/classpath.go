// Package classpath reads the raw Java classpath a workspace keeps in
// .classpath.
//
// Only two entry kinds matter to resource lookup: "src" entries, whose paths
// are the project's source roots in declared order, and the "output" entry,
// the default compiled-output folder. Container, library and variable entries
// are parsed but ignored. The file is read on every call.
package classpath

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// Entry kinds.
const (
	KindSource    = "src"
	KindOutput    = "output"
	KindContainer = "con"
	KindLibrary   = "lib"
)

// Entry is one <classpathentry>.
type Entry struct {
	Kind   string `xml:"kind,attr"`
	Path   string `xml:"path,attr"`
	Output string `xml:"output,attr"`
}

// Classpath is the parsed content of a .classpath file.
type Classpath struct {
	Entries []Entry `xml:"classpathentry"`
}

// Parse decodes a .classpath document.
func Parse(data []byte) (*Classpath, error) {
	var cp Classpath
	if err := xml.Unmarshal(data, &cp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "parse %s", workspace.ClasspathFile)
	}
	return &cp, nil
}

// Load reads p's .classpath. A missing file is reported with
// ErrCodeMetadataUnavailable.
func Load(p *workspace.Project) (*Classpath, error) {
	data, err := os.ReadFile(p.File(workspace.ClasspathFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeMetadataUnavailable, "%s has no %s", p.Name, workspace.ClasspathFile)
		}
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "read %s of %s", workspace.ClasspathFile, p.Name)
	}
	return Parse(data)
}

// SourceRoots returns the paths of all source entries, in order. Linked
// sources that point outside the project (absolute paths or paths starting
// with another project's name) are skipped.
func (cp *Classpath) SourceRoots() []workspace.Path {
	var roots []workspace.Path
	for _, e := range cp.Entries {
		if e.Kind != KindSource || !local(e.Path) {
			continue
		}
		roots = append(roots, workspace.NewPath(e.Path))
	}
	return roots
}

// OutputLocation returns the default output folder and whether one is
// declared.
func (cp *Classpath) OutputLocation() (workspace.Path, bool) {
	for _, e := range cp.Entries {
		if e.Kind == KindOutput && local(e.Path) {
			return workspace.NewPath(e.Path), true
		}
	}
	return workspace.Path{}, false
}

func local(p string) bool {
	p = strings.TrimSpace(p)
	return p != "" && !strings.HasPrefix(p, "/")
}

// Provider serves source roots from .classpath files.
type Provider struct{}

// SourceRoots returns the source entries of p's .classpath. A missing file
// means no source roots; a malformed one is an error.
func (Provider) SourceRoots(p *workspace.Project) ([]workspace.Path, error) {
	cp, err := Load(p)
	if err != nil {
		if errors.Is(err, errors.ErrCodeMetadataUnavailable) {
			return nil, nil
		}
		return nil, err
	}
	return cp.SourceRoots(), nil
}

// OutputLocation returns the output entry of p's .classpath.
func (Provider) OutputLocation(p *workspace.Project) (workspace.Path, bool) {
	cp, err := Load(p)
	if err != nil {
		return workspace.Path{}, false
	}
	return cp.OutputLocation()
}
