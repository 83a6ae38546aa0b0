package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/workspace"
)

func newProject(t *testing.T, name string) *workspace.Project {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Join(dir, ".settings"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "src", "main", "resources"), 0o755); err != nil {
		t.Fatal(err)
	}
	return &workspace.Project{Name: name, Dir: dir}
}

func TestWatcherDebouncesPerProject(t *testing.T) {
	shop := newProject(t, "shop")
	billing := newProject(t, "billing")

	w, err := New(50*time.Millisecond, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Add(shop, workspace.NewPath("src/main/resources"), workspace.NewPath("missing")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Add(billing); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan Change, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(c Change) { changes <- c }) }()

	// Give the watcher a moment to start consuming events.
	time.Sleep(20 * time.Millisecond)
	for _, f := range []string{
		filepath.Join(shop.Dir, "pom.xml"),
		filepath.Join(shop.Dir, "pom.xml"),
		filepath.Join(shop.Dir, "src", "main", "resources", "app.properties"),
	} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-changes:
		if c.Project != shop {
			t.Errorf("change for %s, want shop", c.Project.Name)
		}
		if len(c.Files) != 2 {
			t.Errorf("Files = %v, want pom.xml and app.properties", c.Files)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	select {
	case c := <-changes:
		t.Errorf("unexpected second change: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOwnerPrefersDeepestDir(t *testing.T) {
	w := &Watcher{dirs: map[string]*workspace.Project{}}
	outer := &workspace.Project{Name: "outer"}
	inner := &workspace.Project{Name: "inner"}
	w.dirs[filepath.FromSlash("/ws/outer")] = outer
	w.dirs[filepath.FromSlash("/ws/outer/inner")] = inner

	tests := []struct {
		name string
		want *workspace.Project
	}{
		{"/ws/outer/pom.xml", outer},
		{"/ws/outer/inner/pom.xml", inner},
		{"/ws/outer-two/pom.xml", nil},
	}
	for _, tt := range tests {
		if got := w.owner(filepath.FromSlash(tt.name)); got != tt.want {
			t.Errorf("owner(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
