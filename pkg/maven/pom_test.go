package maven

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/reslocator/pkg/errors"
)

func TestParseDefaults(t *testing.T) {
	base := filepath.FromSlash("/ws/shop")
	m, err := Parse([]byte(`<project>
  <groupId>com.example</groupId>
  <artifactId>shop</artifactId>
  <version>1.0.0</version>
</project>`), base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Coordinate() != "com.example:shop" {
		t.Errorf("Coordinate = %q", m.Coordinate())
	}
	if m.Packaging != "jar" {
		t.Errorf("Packaging = %q, want jar", m.Packaging)
	}

	want := map[string]string{
		"build":       filepath.Join(base, "target"),
		"output":      filepath.Join(base, "target", "classes"),
		"test-output": filepath.Join(base, "target", "test-classes"),
		"source":      filepath.Join(base, "src", "main", "java"),
		"test-source": filepath.Join(base, "src", "test", "java"),
	}
	got := map[string]string{
		"build":       m.BuildDirectory,
		"output":      m.OutputDirectory,
		"test-output": m.TestOutputDirectory,
		"source":      m.SourceDirectory,
		"test-source": m.TestSourceDirectory,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("directories = %v, want %v", got, want)
	}

	if len(m.Resources) != 1 || m.Resources[0].Directory != filepath.Join(base, "src", "main", "resources") {
		t.Errorf("Resources = %+v", m.Resources)
	}
	if len(m.TestResources) != 1 || m.TestResources[0].Directory != filepath.Join(base, "src", "test", "resources") {
		t.Errorf("TestResources = %+v", m.TestResources)
	}
}

func TestParseBuildSection(t *testing.T) {
	base := filepath.FromSlash("/ws/shop")
	m, err := Parse([]byte(`<project>
  <parent>
    <groupId>com.example</groupId>
    <artifactId>parent</artifactId>
    <version>2.0</version>
  </parent>
  <artifactId>shop-web</artifactId>
  <packaging>war</packaging>
  <properties>
    <conf.dir>src/main/conf</conf.dir>
    <generated>${project.build.directory}/generated-resources</generated>
  </properties>
  <build>
    <directory>${project.basedir}/build</directory>
    <resources>
      <resource>
        <directory>src/main/resources</directory>
        <filtering>true</filtering>
        <includes><include>**/*.xml</include></includes>
        <excludes><exclude>**/*.bak</exclude></excludes>
      </resource>
      <resource>
        <directory>${conf.dir}</directory>
        <targetPath>META-INF</targetPath>
      </resource>
      <resource>
        <directory>${generated}</directory>
      </resource>
    </resources>
  </build>
</project>`), base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Coordinate() != "com.example:shop-web" {
		t.Errorf("Coordinate = %q, want parent groupId", m.Coordinate())
	}
	if m.Version != "2.0" {
		t.Errorf("Version = %q, want parent version", m.Version)
	}
	if m.Packaging != "war" {
		t.Errorf("Packaging = %q", m.Packaging)
	}
	if m.OutputDirectory != filepath.Join(base, "build", "classes") {
		t.Errorf("OutputDirectory = %q, should follow custom build directory", m.OutputDirectory)
	}

	wantDirs := []string{
		filepath.Join(base, "src", "main", "resources"),
		filepath.Join(base, "src", "main", "conf"),
		filepath.Join(base, "build", "generated-resources"),
	}
	if len(m.Resources) != len(wantDirs) {
		t.Fatalf("got %d resources, want %d", len(m.Resources), len(wantDirs))
	}
	for i, dir := range wantDirs {
		if m.Resources[i].Directory != dir {
			t.Errorf("Resources[%d] = %q, want %q", i, m.Resources[i].Directory, dir)
		}
	}

	first := m.Resources[0]
	if !first.Filtering {
		t.Error("first resource should be filtered")
	}
	if !reflect.DeepEqual(first.Includes, []string{"**/*.xml"}) || !reflect.DeepEqual(first.Excludes, []string{"**/*.bak"}) {
		t.Errorf("patterns = %v / %v", first.Includes, first.Excludes)
	}
	if m.Resources[1].TargetPath != "META-INF" {
		t.Errorf("TargetPath = %q", m.Resources[1].TargetPath)
	}
}

func TestParseAbsoluteAndUnknownProperties(t *testing.T) {
	base := filepath.FromSlash("/ws/shop")
	abs := filepath.FromSlash("/opt/shared/resources")
	m, err := Parse([]byte(`<project>
  <artifactId>shop</artifactId>
  <build>
    <resources>
      <resource><directory>`+filepath.ToSlash(abs)+`</directory></resource>
      <resource><directory>${undefined.prop}/res</directory></resource>
    </resources>
  </build>
</project>`), base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Resources[0].Directory != abs {
		t.Errorf("absolute directory = %q, want %q", m.Resources[0].Directory, abs)
	}
	if m.Resources[1].Directory != filepath.Join(base, "${undefined.prop}", "res") {
		t.Errorf("unknown property should stay verbatim, got %q", m.Resources[1].Directory)
	}
}

func TestParseSelfReferencingProperty(t *testing.T) {
	m, err := Parse([]byte(`<project>
  <properties><loop>${loop}/x</loop></properties>
  <build><resources><resource><directory>${loop}</directory></resource></resources></build>
</project>`), filepath.FromSlash("/ws/p"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Resources) != 1 {
		t.Fatalf("Resources = %+v", m.Resources)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`<project><build>`), "/ws/p")
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse(truncated) = %v, want INVALID_MANIFEST", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := ParseFile(filepath.Join(dir, "pom.xml")); !errors.Is(err, errors.ErrCodeMetadataUnavailable) {
		t.Errorf("ParseFile(missing) = %v, want METADATA_UNAVAILABLE", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(`<project><artifactId>a</artifactId></project>`), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := ParseFile(filepath.Join(dir, "pom.xml"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if m.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", m.BaseDir, dir)
	}
}
