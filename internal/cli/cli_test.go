package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const shopPOM = `<project>
  <artifactId>shop</artifactId>
  <packaging>war</packaging>
  <build>
    <resources>
      <resource><directory>src/main/resources</directory></resource>
      <resource><directory>src/main/resources2</directory></resource>
    </resources>
  </build>
</project>`

func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func shopProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "shop")
	writeFixture(t, dir, map[string]string{
		"pom.xml":                                      shopPOM,
		"src/main/resources/log4j.properties":          "",
		"src/main/resources2/META-INF/persistence.xml": "<persistence/>",
		"src/main/java/META-INF/persistence.xml":       "<persistence/>",
	})
	return dir
}

// run executes the root command with JSON output and returns stdout.
func run(t *testing.T, configPath string, args ...string) []byte {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, log.DebugLevel)
	c.Out = &out

	root := c.RootCommand()
	root.SetArgs(append([]string{"--format", "json", "--no-cache", "--config", configPath}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v\nlogs:\n%s", args, err, logs.String())
	}
	return out.Bytes()
}

func decode(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}

type locationJSON struct {
	Location string `json:"location"`
	Found    bool   `json:"found"`
}

func TestResolveCommand(t *testing.T) {
	dir := shopProject(t)
	config := filepath.Join(t.TempDir(), "preferences.toml")

	var got locationJSON
	decode(t, run(t, config, "resolve", "-p", dir, "META-INF/persistence.xml"), &got)
	if !got.Found || got.Location != "src/main/resources2/META-INF/persistence.xml" {
		t.Errorf("resolve = %+v", got)
	}

	decode(t, run(t, config, "resolve", "-p", dir, "META-INF/orm.xml"), &got)
	if got.Found {
		t.Errorf("orm.xml should not resolve: %+v", got)
	}
}

func TestResolveCommandMavenDisabled(t *testing.T) {
	dir := shopProject(t)
	config := filepath.Join(t.TempDir(), "preferences.toml")
	writeFixture(t, filepath.Dir(config), map[string]string{"preferences.toml": "enabled = false\n"})

	var got locationJSON
	decode(t, run(t, config, "resolve", "-p", dir, "META-INF/persistence.xml"), &got)
	if got.Found {
		t.Errorf("with maven disabled the pom must not supply roots, got %+v", got)
	}

	writeFixture(t, dir, map[string]string{
		".classpath": `<classpath><classpathentry kind="src" path="src/main/java"/></classpath>`,
	})
	decode(t, run(t, config, "resolve", "-p", dir, "META-INF/persistence.xml"), &got)
	if !got.Found || got.Location != "src/main/java/META-INF/persistence.xml" {
		t.Errorf("with maven disabled resolve = %+v, want the .classpath source root", got)
	}
}

func TestValidAndDefaultCommands(t *testing.T) {
	dir := shopProject(t)
	config := filepath.Join(t.TempDir(), "preferences.toml")

	var got locationJSON
	decode(t, run(t, config, "valid", "-p", dir, "target/classes/META-INF"), &got)
	if got.Found {
		t.Error("target/classes/META-INF should be rejected")
	}
	decode(t, run(t, config, "valid", "-p", dir, "src/main/resources"), &got)
	if !got.Found {
		t.Error("src/main/resources should be accepted")
	}

	decode(t, run(t, config, "default", "-p", dir), &got)
	if got.Location != "src/main/resources2/META-INF" {
		t.Errorf("default = %+v", got)
	}
}

func TestScanCommand(t *testing.T) {
	ws := t.TempDir()
	writeFixture(t, filepath.Join(ws, "a"), map[string]string{
		"pom.xml":                                     shopPOM,
		"src/main/resources/META-INF/persistence.xml": "",
	})
	writeFixture(t, filepath.Join(ws, "b"), map[string]string{"pom.xml": shopPOM})
	config := filepath.Join(t.TempDir(), "preferences.toml")

	var results []struct {
		Project string `json:"project"`
		Found   bool   `json:"found"`
	}
	decode(t, run(t, config, "scan", ws, "META-INF/persistence.xml"), &results)
	if len(results) != 2 || !results[0].Found || results[1].Found {
		t.Errorf("scan = %+v", results)
	}
}

func TestPrefsPathCommand(t *testing.T) {
	config := filepath.Join(t.TempDir(), "custom.toml")
	out := run(t, config, "prefs", "path")
	if strings.TrimSpace(string(out)) != config {
		t.Errorf("prefs path = %q, want %q", out, config)
	}
}

func TestUnknownFormat(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Out = &bytes.Buffer{}
	root := c.RootCommand()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--format", "xml", "prefs", "path"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("unknown format should fail")
	}
}
