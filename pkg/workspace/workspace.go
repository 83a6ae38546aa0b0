package workspace

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/reslocator/pkg/errors"
)

// Well-known project files.
const (
	POMFile       = "pom.xml"
	ProjectFile   = ".project"
	ClasspathFile = ".classpath"
	FacetsFile    = ".settings/org.eclipse.wst.common.project.facet.core.xml"
	ComponentFile = ".settings/org.eclipse.wst.common.component"
)

// MetaInf is the folder every default location is anchored on.
var MetaInf = NewPath("META-INF")

// Project is a handle on one project directory. It is an opaque identity for
// the locator and its collaborators; nothing is loaded eagerly.
type Project struct {
	Name string
	Dir  string // absolute
}

// OpenProject returns a handle for dir. The name comes from the <name>
// element of .project when present, else from the directory name.
func OpenProject(dir string) (*Project, error) {
	if err := errors.ValidateProjectDir(dir); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", dir)
	}
	p := &Project{Name: filepath.Base(abs), Dir: abs}
	if name := descriptorName(filepath.Join(abs, ProjectFile)); name != "" {
		p.Name = name
	}
	return p, nil
}

func descriptorName(file string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		return ""
	}
	var desc struct {
		Name string `xml:"name"`
	}
	if err := xml.Unmarshal(data, &desc); err != nil {
		return ""
	}
	return strings.TrimSpace(desc.Name)
}

// Abs returns the filesystem location of p. External paths are resolved
// against the project directory too.
func (pr *Project) Abs(p Path) string {
	if p.IsEmpty() {
		return pr.Dir
	}
	return filepath.Join(pr.Dir, filepath.FromSlash(p.p))
}

// Rel converts an absolute filesystem path into a project Path. It returns
// false for locations outside the project directory.
func (pr *Project) Rel(abs string) (Path, bool) {
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(pr.Dir, abs)
	}
	rel, err := filepath.Rel(pr.Dir, filepath.Clean(abs))
	if err != nil {
		return Path{}, false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return Path{}, false
	}
	return NewPath(rel), true
}

// Locate converts a filesystem path into a Path like Rel does, but keeps
// locations outside the project as ".."-prefixed paths. Relative input is
// taken relative to the project directory. It fails only when no relative
// form exists, as across Windows volumes.
func (pr *Project) Locate(abs string) (Path, bool) {
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(pr.Dir, abs)
	}
	rel, err := filepath.Rel(pr.Dir, filepath.Clean(abs))
	if err != nil {
		return Path{}, false
	}
	return Relative(filepath.ToSlash(rel)), true
}

// File returns the absolute path of a well-known project file.
func (pr *Project) File(name string) string {
	return filepath.Join(pr.Dir, filepath.FromSlash(name))
}

func (pr *Project) String() string { return pr.Name }

// Discover returns the projects found directly under a workspace root: every
// child directory holding a pom.xml or a .project descriptor. Hidden
// directories are skipped. Projects are sorted by name.
func Discover(root string) ([]*Project, error) {
	if err := errors.ValidateProjectDir(root); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read workspace %s", root)
	}

	var projects []*Project
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if !fileExists(filepath.Join(dir, POMFile)) && !fileExists(filepath.Join(dir, ProjectFile)) {
			continue
		}
		p, err := OpenProject(dir)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// BuildMetadata is the build-tool view of a project consumed by the locator.
// ResourceRoots keeps the declaration order of the build descriptor.
type BuildMetadata struct {
	Packaging      string `json:"packaging,omitempty" yaml:"packaging,omitempty"`
	ResourceRoots  []Path `json:"resource_roots" yaml:"resource_roots"`
	OutputPath     Path   `json:"output_path" yaml:"output_path"`
	TestOutputPath Path   `json:"test_output_path" yaml:"test_output_path"`
}
