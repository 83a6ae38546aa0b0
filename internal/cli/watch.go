package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reslocator/pkg/locator"
	"github.com/matzehuels/reslocator/pkg/watch"
)

// watchCommand creates the "watch" command.
func (c *CLI) watchCommand() *cobra.Command {
	var dir string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <runtime-path>",
		Short: "Resolve a runtime path again whenever the project changes",
		Long: `Resolve a runtime path, then watch the project descriptors and roots
and print the result again after every change. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := openProject(dir)
			if err != nil {
				return err
			}
			logical, err := locator.ParseLogical(args[0])
			if err != nil {
				return err
			}
			loc, err := c.newLocator(ctx)
			if err != nil {
				return err
			}

			w, err := watch.New(debounce, logger)
			if err != nil {
				return err
			}
			roots := loc.SourceRoots(p)
			if md, ok := loc.BuildMetadata(p); ok {
				roots = append(md.ResourceRoots, roots...)
			}
			if err := w.Add(p, roots...); err != nil {
				return err
			}

			report := func() error {
				r := loc.Explain(p, logical)
				return c.emit(r, func() { printResolution(r) })
			}
			if err := report(); err != nil {
				return err
			}

			logger.Info("watching for changes", "project", p.Name)
			var emitErr error
			err = w.Run(ctx, func(ch watch.Change) {
				for _, f := range ch.Files {
					if rel, err := filepath.Rel(p.Dir, f); err == nil {
						logger.Debug("changed", "file", filepath.ToSlash(rel))
					}
				}
				if err := report(); err != nil && emitErr == nil {
					emitErr = err
				}
			})
			if err != nil {
				return err
			}
			return emitErr
		},
	}

	projectFlag(cmd, &dir)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before resolving again")
	return cmd
}
