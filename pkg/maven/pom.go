package maven

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/reslocator/pkg/errors"
)

// Super POM defaults, relative to the project base directory.
const (
	DefaultBuildDirectory      = "target"
	DefaultOutputDirectory     = "${project.build.directory}/classes"
	DefaultTestOutputDirectory = "${project.build.directory}/test-classes"
	DefaultSourceDirectory     = "src/main/java"
	DefaultTestSourceDirectory = "src/test/java"
	DefaultResourceDirectory   = "src/main/resources"
	DefaultTestResourceDir     = "src/test/resources"
	DefaultPackaging           = "jar"
)

// maxInterpolationDepth bounds nested ${...} expansion so that a property
// referring to itself cannot loop forever.
const maxInterpolationDepth = 8

// Model is the effective build section of a pom.xml. All directories are
// absolute and fully interpolated.
type Model struct {
	GroupID             string     `json:"group_id"`
	ArtifactID          string     `json:"artifact_id"`
	Version             string     `json:"version"`
	Packaging           string     `json:"packaging"`
	BaseDir             string     `json:"base_dir"`
	BuildDirectory      string     `json:"build_directory"`
	OutputDirectory     string     `json:"output_directory"`
	TestOutputDirectory string     `json:"test_output_directory"`
	SourceDirectory     string     `json:"source_directory"`
	TestSourceDirectory string     `json:"test_source_directory"`
	Resources           []Resource `json:"resources"`
	TestResources       []Resource `json:"test_resources"`
}

// Resource is one <resource> or <testResource> declaration.
type Resource struct {
	Directory  string   `json:"directory"`
	TargetPath string   `json:"target_path,omitempty"`
	Filtering  bool     `json:"filtering,omitempty"`
	Includes   []string `json:"includes,omitempty"`
	Excludes   []string `json:"excludes,omitempty"`
}

// Coordinate returns "groupId:artifactId".
func (m *Model) Coordinate() string {
	return m.GroupID + ":" + m.ArtifactID
}

// ParseFile reads and parses the pom.xml at path. The base directory is the
// directory containing the file.
func ParseFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeMetadataUnavailable, err, "no %s", filepath.Base(path))
		}
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "read %s", path)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "resolve %s", path)
	}
	return Parse(data, abs)
}

// Parse builds the effective Model of a pom document whose project lives in
// baseDir. Super POM defaults fill every omitted element. Parent POMs are not
// consulted.
func Parse(data []byte, baseDir string) (*Model, error) {
	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse pom.xml")
	}

	m := &Model{
		GroupID:    strings.TrimSpace(pom.GroupID),
		ArtifactID: strings.TrimSpace(pom.ArtifactID),
		Version:    strings.TrimSpace(pom.Version),
		Packaging:  strings.TrimSpace(pom.Packaging),
		BaseDir:    baseDir,
	}
	if m.GroupID == "" && pom.Parent != nil {
		m.GroupID = strings.TrimSpace(pom.Parent.GroupID)
	}
	if m.Version == "" && pom.Parent != nil {
		m.Version = strings.TrimSpace(pom.Parent.Version)
	}
	if m.Packaging == "" {
		m.Packaging = DefaultPackaging
	}

	in := newInterpolator(m, pom.Properties)
	b := pom.Build

	m.BuildDirectory = in.dir(or(b.Directory, DefaultBuildDirectory))
	in.set("project.build.directory", m.BuildDirectory)
	m.OutputDirectory = in.dir(or(b.OutputDirectory, DefaultOutputDirectory))
	in.set("project.build.outputDirectory", m.OutputDirectory)
	m.TestOutputDirectory = in.dir(or(b.TestOutputDirectory, DefaultTestOutputDirectory))
	in.set("project.build.testOutputDirectory", m.TestOutputDirectory)
	m.SourceDirectory = in.dir(or(b.SourceDirectory, DefaultSourceDirectory))
	in.set("project.build.sourceDirectory", m.SourceDirectory)
	m.TestSourceDirectory = in.dir(or(b.TestSourceDirectory, DefaultTestSourceDirectory))
	in.set("project.build.testSourceDirectory", m.TestSourceDirectory)

	m.Resources = in.resources(b.Resources, DefaultResourceDirectory)
	m.TestResources = in.resources(b.TestResources, DefaultTestResourceDir)
	return m, nil
}

func or(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// interpolator expands ${...} references against project values and
// <properties>. Unknown references are left in place, as Maven does.
type interpolator struct {
	base   string
	values map[string]string
}

func newInterpolator(m *Model, props map[string]string) *interpolator {
	values := make(map[string]string, len(props)+8)
	for k, v := range props {
		values[k] = v
	}
	values["basedir"] = m.BaseDir
	values["project.basedir"] = m.BaseDir
	values["pom.basedir"] = m.BaseDir
	values["project.groupId"] = m.GroupID
	values["project.artifactId"] = m.ArtifactID
	values["project.version"] = m.Version
	values["project.packaging"] = m.Packaging
	return &interpolator{base: m.BaseDir, values: values}
}

func (in *interpolator) set(key, value string) { in.values[key] = value }

func (in *interpolator) expand(s string) string {
	for depth := 0; depth < maxInterpolationDepth && strings.Contains(s, "${"); depth++ {
		next := in.expandOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func (in *interpolator) expandOnce(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start
		key := s[start+2 : end]
		b.WriteString(s[:start])
		if v, ok := in.values[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
}

// dir interpolates s and anchors relative results on the base directory.
func (in *interpolator) dir(s string) string {
	s = filepath.FromSlash(in.expand(s))
	if !filepath.IsAbs(s) {
		s = filepath.Join(in.base, s)
	}
	return filepath.Clean(s)
}

func (in *interpolator) resources(decl []pomResource, def string) []Resource {
	if len(decl) == 0 {
		return []Resource{{Directory: in.dir(def)}}
	}
	out := make([]Resource, 0, len(decl))
	for _, r := range decl {
		out = append(out, Resource{
			Directory:  in.dir(or(r.Directory, def)),
			TargetPath: strings.TrimSpace(in.expand(r.TargetPath)),
			Filtering:  strings.TrimSpace(in.expand(r.Filtering)) == "true",
			Includes:   trimAll(r.Includes),
			Excludes:   trimAll(r.Excludes),
		})
	}
	return out
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type pomProject struct {
	GroupID    string        `xml:"groupId"`
	ArtifactID string        `xml:"artifactId"`
	Version    string        `xml:"version"`
	Packaging  string        `xml:"packaging"`
	Parent     *pomParent    `xml:"parent"`
	Properties pomProperties `xml:"properties"`
	Build      pomBuild      `xml:"build"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomBuild struct {
	Directory           string        `xml:"directory"`
	OutputDirectory     string        `xml:"outputDirectory"`
	TestOutputDirectory string        `xml:"testOutputDirectory"`
	SourceDirectory     string        `xml:"sourceDirectory"`
	TestSourceDirectory string        `xml:"testSourceDirectory"`
	Resources           []pomResource `xml:"resources>resource"`
	TestResources       []pomResource `xml:"testResources>testResource"`
}

type pomResource struct {
	Directory  string   `xml:"directory"`
	TargetPath string   `xml:"targetPath"`
	Filtering  string   `xml:"filtering"`
	Includes   []string `xml:"includes>include"`
	Excludes   []string `xml:"excludes>exclude"`
}

// pomProperties collects the free-form children of <properties>.
type pomProperties map[string]string

func (p *pomProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	props := make(pomProperties)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}
