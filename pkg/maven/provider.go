package maven

import (
	"context"
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/cache"
	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/observability"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// cachePrefix namespaces parsed models in a shared cache.
const cachePrefix = "pom"

// Provider derives build metadata from a project's pom.xml.
//
// The file is read on every call. Parsed models are memoized in the cache
// under a key that includes the hash of the file content, so an edited pom is
// always parsed again. Provider is safe for concurrent use when its cache is.
type Provider struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewProvider returns a provider backed by c. A nil cache disables
// memoization and a nil logger falls back to log.Default().
func NewProvider(c cache.Cache, logger *log.Logger) *Provider {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{cache: c, logger: logger}
}

// Model returns the effective model of p's pom.xml. A project without a
// pom.xml yields an ErrCodeMetadataUnavailable error.
func (pv *Provider) Model(p *workspace.Project) (*Model, error) {
	file := p.File(workspace.POMFile)
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeMetadataUnavailable, "%s has no %s", p.Name, workspace.POMFile)
		}
		return nil, errors.Wrap(errors.ErrCodeProvider, err, "read %s", file)
	}

	ctx := context.Background()
	key := cache.Key(cachePrefix, p.Dir, cache.Hash(data))
	if cached, ok, err := pv.cache.Get(ctx, key); err == nil && ok {
		var m Model
		if err := json.Unmarshal(cached, &m); err == nil {
			observability.Cache().OnCacheHit(ctx, cachePrefix)
			return &m, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cachePrefix)

	m, err := Parse(data, p.Dir)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(m); err == nil {
		if err := pv.cache.Set(ctx, key, encoded, 0); err != nil {
			pv.logger.Debug("cache write failed", "project", p.Name, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cachePrefix, len(encoded))
		}
	}
	return m, nil
}

// BuildMetadata reports the resource roots and output folders of p.
//
// Only resource directories that exist are returned, in declaration order.
// A directory outside the project, such as "../shared/src/main/resources" in
// a multi-module layout, is kept as a Path with leading ".." segments. Output
// folders outside the project are reported as the empty Path. Metadata is unavailable when the project has no readable
// pom.xml; that is logged at debug level for a missing file and at warn
// level for a broken one.
func (pv *Provider) BuildMetadata(p *workspace.Project) (*workspace.BuildMetadata, bool) {
	m, err := pv.Model(p)
	if err != nil {
		if errors.Is(err, errors.ErrCodeMetadataUnavailable) {
			pv.logger.Debug("build metadata unavailable", "project", p.Name)
		} else {
			pv.logger.Warn("cannot load build metadata", "project", p.Name, "err", err)
		}
		return nil, false
	}

	md := &workspace.BuildMetadata{Packaging: m.Packaging}
	for _, r := range m.Resources {
		info, err := os.Stat(r.Directory)
		if err != nil || !info.IsDir() {
			continue
		}
		if rel, ok := p.Locate(r.Directory); ok {
			md.ResourceRoots = append(md.ResourceRoots, rel)
		}
	}
	md.OutputPath, _ = p.Rel(m.OutputDirectory)
	md.TestOutputPath, _ = p.Rel(m.TestOutputDirectory)
	return md, true
}

// SourceRoots returns the main and test source directories declared by the
// pom that exist inside p. It serves projects that carry no .classpath.
func (pv *Provider) SourceRoots(p *workspace.Project) ([]workspace.Path, error) {
	m, err := pv.Model(p)
	if err != nil {
		return nil, err
	}
	var roots []workspace.Path
	for _, dir := range []string{m.SourceDirectory, m.TestSourceDirectory} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if rel, ok := p.Rel(dir); ok {
			roots = append(roots, rel)
		}
	}
	return roots, nil
}

// Disabled reports build metadata as unavailable for every project. The CLI
// uses it when the Maven integration is switched off in the preferences.
type Disabled struct{}

// BuildMetadata always returns false.
func (Disabled) BuildMetadata(*workspace.Project) (*workspace.BuildMetadata, bool) {
	return nil, false
}
