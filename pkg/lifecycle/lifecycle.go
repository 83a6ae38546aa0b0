// Package lifecycle registers the build lifecycle mappings this tool knows
// about. A mapping carries no behavior: it is a marker that tags a Maven
// packaging type, optionally narrowed by an installed facet, with an id.
package lifecycle

import (
	"sort"
	"sync"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/facet"
)

// Well-known mapping ids.
const (
	WarID = "org.eclipse.m2e.wtp.lifecycle.war"
	JSFID = "org.eclipse.m2e.wtp.jsf.lifecycle"
)

// Mapping tags a packaging type with a lifecycle id.
type Mapping struct {
	ID        string `json:"id" yaml:"id"`
	Packaging string `json:"packaging" yaml:"packaging"`
	// Facet, when set, must be installed for the mapping to apply.
	Facet string `json:"facet,omitempty" yaml:"facet,omitempty"`
}

// Registry holds mappings by id. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	mappings map[string]Mapping
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{mappings: make(map[string]Mapping)}
}

// Default returns a registry with the war and JSF mappings.
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register(Mapping{ID: WarID, Packaging: "war"})
	_ = r.Register(Mapping{ID: JSFID, Packaging: "war", Facet: facet.JSFFacet})
	return r
}

// Register adds m. Ids are unique.
func (r *Registry) Register(m Mapping) error {
	if m.ID == "" || m.Packaging == "" {
		return errors.New(errors.ErrCodeInvalidInput, "lifecycle mapping needs an id and a packaging")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mappings[m.ID]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "lifecycle mapping %s already registered", m.ID)
	}
	r.mappings[m.ID] = m
	return nil
}

// Lookup returns the mapping for packaging. A mapping whose facet is among
// installed beats one without a facet; ties go to the lowest id.
func (r *Registry) Lookup(packaging string, installed []string) (Mapping, bool) {
	has := make(map[string]bool, len(installed))
	for _, f := range installed {
		has[f] = true
	}

	var best Mapping
	found := false
	for _, m := range r.All() {
		if m.Packaging != packaging || (m.Facet != "" && !has[m.Facet]) {
			continue
		}
		if !found || (best.Facet == "" && m.Facet != "") {
			best, found = m, true
		}
	}
	return best, found
}

// All returns the registered mappings sorted by id.
func (r *Registry) All() []Mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Mapping, 0, len(r.mappings))
	for _, m := range r.mappings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
