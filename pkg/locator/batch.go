package locator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/reslocator/pkg/workspace"
)

// DefaultConcurrency bounds ResolveAll when no limit is given.
const DefaultConcurrency = 8

// ResolveAll explains logical in every project, running at most limit
// resolutions at a time. Results keep the order of projects. The only error
// is ctx's, once it is done.
func (l *Locator) ResolveAll(ctx context.Context, projects []*workspace.Project, logical workspace.Path, limit int) ([]Resolution, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]Resolution, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = l.Explain(p, logical)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
