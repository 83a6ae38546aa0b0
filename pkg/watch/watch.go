// Package watch reports changes to the files that drive resource resolution.
//
// A Watcher observes project directories (and, optionally, resource and
// source roots) and emits one Change per project after the burst of
// filesystem events has been quiet for the debounce delay. Watches are not
// recursive: only the listed directories themselves are observed.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/observability"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// DefaultDebounce is the quiet period before a Change is emitted.
const DefaultDebounce = 500 * time.Millisecond

// Change is a debounced batch of events in one project.
type Change struct {
	Project *workspace.Project
	// Files are the absolute names that changed, sorted.
	Files []string
}

// Watcher groups filesystem events by project.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	dirs    map[string]*workspace.Project
	pending map[*workspace.Project]map[string]bool
	timers  map[*workspace.Project]*time.Timer
	fire    chan *workspace.Project
	done    chan struct{}
}

// New creates a Watcher. A zero debounce uses DefaultDebounce.
func New(debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		dirs:     make(map[string]*workspace.Project),
		pending:  make(map[*workspace.Project]map[string]bool),
		timers:   make(map[*workspace.Project]*time.Timer),
		fire:     make(chan *workspace.Project, 16),
		done:     make(chan struct{}),
	}, nil
}

// Add watches p's directory, its .settings folder and the given roots.
// Folders that do not exist are skipped.
func (w *Watcher) Add(p *workspace.Project, roots ...workspace.Path) error {
	dirs := []string{p.Dir, filepath.Dir(p.File(workspace.ComponentFile))}
	for _, r := range roots {
		dirs = append(dirs, p.Abs(r))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", dir)
		}
		w.dirs[dir] = p
		w.logger.Debug("watching", "project", p.Name, "dir", dir)
	}
	return nil
}

// Run delivers changes to fn until ctx is done. fn is called from the Run
// goroutine only. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, fn func(Change)) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.record(event.Name)

		case p := <-w.fire:
			if c, ok := w.flush(p); ok {
				observability.Watch().OnChange(ctx, p.Name, len(c.Files))
				fn(c)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "err", err)
			observability.Watch().OnWatchError(ctx, err)
		}
	}
}

func (w *Watcher) record(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.owner(name)
	if p == nil {
		return
	}
	if w.pending[p] == nil {
		w.pending[p] = make(map[string]bool)
	}
	w.pending[p][name] = true

	if t, ok := w.timers[p]; ok {
		t.Stop()
	}
	w.timers[p] = time.AfterFunc(w.debounce, func() {
		select {
		case w.fire <- p:
		case <-w.done:
		}
	})
}

// owner returns the project of the deepest watched folder holding name.
func (w *Watcher) owner(name string) *workspace.Project {
	var best *workspace.Project
	bestLen := -1
	for dir, p := range w.dirs {
		if name != dir && !strings.HasPrefix(name, dir+string(filepath.Separator)) {
			continue
		}
		if len(dir) > bestLen {
			best, bestLen = p, len(dir)
		}
	}
	return best
}

func (w *Watcher) flush(p *workspace.Project) (Change, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := w.pending[p]
	delete(w.pending, p)
	delete(w.timers, p)
	if len(files) == 0 {
		return Change{}, false
	}
	c := Change{Project: p}
	for f := range files {
		c.Files = append(c.Files, f)
	}
	sort.Strings(c.Files)
	return c, true
}

func (w *Watcher) close() {
	close(w.done)
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	if err := w.fsw.Close(); err != nil {
		w.logger.Debug("close watcher", "err", err)
	}
}
