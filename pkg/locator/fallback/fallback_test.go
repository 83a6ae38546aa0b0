package fallback

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/component"
	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

type stubSources struct {
	roots []workspace.Path
	err   error
}

func (s stubSources) SourceRoots(*workspace.Project) ([]workspace.Path, error) {
	return s.roots, s.err
}

type stubOutput string

func (o stubOutput) OutputLocation(*workspace.Project) (workspace.Path, bool) {
	if o == "" {
		return workspace.Path{}, false
	}
	return workspace.NewPath(string(o)), true
}

func paths(ss ...string) []workspace.Path {
	out := make([]workspace.Path, len(ss))
	for i, s := range ss {
		out[i] = workspace.NewPath(s)
	}
	return out
}

func newProject(t *testing.T, files ...string) *workspace.Project {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		name := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(name, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range []string{"src/main/java", "src/main/resources"} {
		if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return &workspace.Project{Name: "shop", Dir: dir}
}

func quietLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf), &buf
}

const webDescriptor = `<project-modules id="moduleCoreId" project-version="1.5.0">
  <wb-module deploy-name="shop">
    <wb-resource deploy-path="/" source-path="/src/main/webapp" tag="defaultRootSource"/>
    <wb-resource deploy-path="/WEB-INF/classes" source-path="/src/main/java"/>
    <wb-resource deploy-path="/WEB-INF/classes" source-path="/src/main/resources"/>
  </wb-module>
</project-modules>`

func loader(t *testing.T, descriptor string) func(*workspace.Project) (*component.Module, error) {
	t.Helper()
	cm, err := component.Parse([]byte(descriptor))
	if err != nil {
		t.Fatal(err)
	}
	return func(*workspace.Project) (*component.Module, error) { return cm, nil }
}

// expectPath fails unless a lookup succeeded with want.
func expectPath(t *testing.T, op string, got workspace.Path, ok bool, want string) {
	t.Helper()
	if !ok || got.String() != want {
		t.Errorf("%s = %q, %v, want %q", op, got, ok, want)
	}
}

func unavailable(*workspace.Project) (*component.Module, error) {
	return nil, errors.New(errors.ErrCodeMetadataUnavailable, "no descriptor")
}

func TestSimpleResolve(t *testing.T) {
	p := newProject(t, "src/main/resources/META-INF/persistence.xml")
	logger, _ := quietLogger()
	s := NewSimple(stubSources{roots: paths("src/main/java", "src/main/resources")}, nil, nil, logger)

	got, ok := s.Resolve(p, workspace.NewPath("META-INF/persistence.xml"))
	expectPath(t, "Resolve", got, ok, "src/main/resources/META-INF/persistence.xml")

	if got, ok := s.Resolve(p, workspace.NewPath("META-INF/orm.xml")); ok {
		t.Errorf("Resolve(orm.xml) = %q, want not found", got)
	}
}

func TestSimpleSourceRootError(t *testing.T) {
	p := newProject(t, "src/main/java/META-INF/persistence.xml")
	logger, buf := quietLogger()
	s := NewSimple(stubSources{err: errors.New(errors.ErrCodeProvider, "classpath broken")}, nil, nil, logger)

	if _, ok := s.Resolve(p, workspace.NewPath("META-INF/persistence.xml")); ok {
		t.Error("Resolve should fail without source roots")
	}
	for _, want := range []string{"source root lookup failed", "project=shop", "op=resolve"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log %q missing %q", buf.String(), want)
		}
	}

	loc, ok := s.DefaultLocation(p)
	expectPath(t, "DefaultLocation", loc, ok, "META-INF")
}

func TestSimpleIsLocationValid(t *testing.T) {
	p := newProject(t)
	s := NewSimple(nil, stubOutput("target/classes"), nil, nil)

	tests := []struct {
		container string
		want      bool
	}{
		{"target/classes", false},
		{"target/classes/META-INF", false},
		{"target/classes2", true},
		{"target", true},
		{"src/main/resources/META-INF", true},
	}
	for _, tt := range tests {
		if got := s.IsLocationValid(p, workspace.NewPath(tt.container)); got != tt.want {
			t.Errorf("IsLocationValid(%q) = %v, want %v", tt.container, got, tt.want)
		}
	}

	if !NewSimple(nil, stubOutput(""), nil, nil).IsLocationValid(p, workspace.NewPath("target/classes")) {
		t.Error("without an output folder every container is valid")
	}
}

func TestSimpleDefaultLocation(t *testing.T) {
	logger, _ := quietLogger()
	s := NewSimple(stubSources{roots: paths("src/main/java", "src/main/resources")}, nil, nil, logger)

	p := newProject(t, "src/main/resources/META-INF/orm.xml")
	loc, ok := s.DefaultLocation(p)
	expectPath(t, "DefaultLocation(existing)", loc, ok, "src/main/resources/META-INF")

	p = newProject(t)
	loc, ok = s.DefaultLocation(p)
	expectPath(t, "DefaultLocation(first computed)", loc, ok, "src/main/java/META-INF")
}

func TestSimpleRuntimePath(t *testing.T) {
	p := newProject(t)
	s := NewSimple(stubSources{roots: paths("src/main/java", "src/main/resources")}, nil, nil, nil)

	got, ok := s.RuntimePath(p, workspace.NewPath("src/main/resources/META-INF/persistence.xml"))
	expectPath(t, "RuntimePath", got, ok, "META-INF/persistence.xml")

	for _, resource := range []string{"src/main/resources", "pom.xml"} {
		if got, ok := s.RuntimePath(p, workspace.NewPath(resource)); ok {
			t.Errorf("RuntimePath(%q) = %q, want none", resource, got)
		}
	}
}

func TestModule(t *testing.T) {
	p := newProject(t,
		"src/main/webapp/META-INF/context.xml",
		"src/main/resources/META-INF/persistence.xml",
	)
	logger, _ := quietLogger()
	m := NewModule(NewSimple(stubSources{roots: paths("src/main/java")}, nil, nil, logger))
	m.Load = loader(t, webDescriptor)

	got, ok := m.Resolve(p, workspace.NewPath("META-INF/context.xml"))
	expectPath(t, "Resolve(context.xml)", got, ok, "src/main/webapp/META-INF/context.xml")

	got, ok = m.Resolve(p, workspace.NewPath("WEB-INF/classes/META-INF/persistence.xml"))
	expectPath(t, "Resolve(classes)", got, ok, "src/main/resources/META-INF/persistence.xml")

	if !m.IsLocationValid(p, workspace.NewPath("src/main/webapp/WEB-INF")) {
		t.Error("mapped source folder should be valid")
	}
	if m.IsLocationValid(p, workspace.NewPath("target/classes")) {
		t.Error("unmapped folder should be invalid")
	}

	loc, ok := m.DefaultLocation(p)
	expectPath(t, "DefaultLocation", loc, ok, "src/main/webapp/META-INF")

	rt, ok := m.RuntimePath(p, workspace.NewPath("src/main/java/com/acme/Shop.java"))
	expectPath(t, "RuntimePath", rt, ok, "WEB-INF/classes/com/acme/Shop.java")

	if rt, ok := m.RuntimePath(p, workspace.NewPath("src/main/webapp")); ok {
		t.Errorf("RuntimePath(module root) = %q, want none", rt)
	}
}

func TestModuleWithoutDescriptor(t *testing.T) {
	p := newProject(t, "src/main/java/META-INF/persistence.xml")
	logger, buf := quietLogger()
	m := NewModule(NewSimple(stubSources{roots: paths("src/main/java")}, nil, nil, logger))
	m.Load = unavailable

	got, ok := m.Resolve(p, workspace.NewPath("META-INF/persistence.xml"))
	expectPath(t, "Resolve", got, ok, "src/main/java/META-INF/persistence.xml")
	if buf.Len() != 0 {
		t.Errorf("a missing descriptor should not be logged, got %q", buf.String())
	}
}

func TestModuleBrokenDescriptor(t *testing.T) {
	p := newProject(t)
	logger, buf := quietLogger()
	m := NewModule(NewSimple(nil, nil, nil, logger))
	m.Load = func(*workspace.Project) (*component.Module, error) {
		return nil, errors.New(errors.ErrCodeProvider, "bad xml")
	}

	if _, ok := m.Resolve(p, workspace.NewPath("META-INF/persistence.xml")); ok {
		t.Error("Resolve should fail")
	}
	if !strings.Contains(buf.String(), "component lookup failed") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestWeb(t *testing.T) {
	p := newProject(t,
		"src/main/webapp/META-INF/context.xml",
		"src/main/resources/META-INF/persistence.xml",
	)
	logger, _ := quietLogger()
	m := NewModule(NewSimple(stubSources{roots: paths("src/main/java")}, nil, nil, logger))
	m.Load = loader(t, webDescriptor)
	w := NewWeb(m)

	got, ok := w.Resolve(p, workspace.NewPath("META-INF/persistence.xml"))
	expectPath(t, "Resolve", got, ok, "src/main/resources/META-INF/persistence.xml")

	if got, ok := w.Resolve(p, workspace.NewPath("META-INF/context.xml")); ok {
		t.Errorf("web root content is outside WEB-INF/classes, got %q", got)
	}

	loc, ok := w.DefaultLocation(p)
	expectPath(t, "DefaultLocation", loc, ok, "src/main/resources/META-INF")

	rt, ok := w.RuntimePath(p, workspace.NewPath("src/main/resources/META-INF/persistence.xml"))
	expectPath(t, "RuntimePath", rt, ok, "META-INF/persistence.xml")

	if rt, ok := w.RuntimePath(p, workspace.NewPath("src/main/webapp/index.jsp")); ok {
		t.Errorf("RuntimePath(index.jsp) = %q, want none", rt)
	}
}

func TestWebDefaultLocationWithoutClassesMapping(t *testing.T) {
	p := newProject(t)
	m := NewModule(NewSimple(nil, nil, nil, nil))
	m.Load = loader(t, `<project-modules><wb-module deploy-name="x">
  <wb-resource deploy-path="/" source-path="/WebContent"/>
</wb-module></project-modules>`)

	loc, ok := NewWeb(m).DefaultLocation(p)
	expectPath(t, "DefaultLocation", loc, ok, "WebContent/META-INF")
}
