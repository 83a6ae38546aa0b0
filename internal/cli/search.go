package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reslocator/pkg/locator"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// findCommand creates the "find" command.
func (c *CLI) findCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "find <pattern>",
		Short: "List resources matching a glob in every root",
		Long: `List the files below the resource roots and source roots whose
root-relative path matches a glob. "**" matches any number of folders.

Files hidden by the same runtime path in an earlier root are marked as
shadowed: resolve never returns them.`,
		Example: `  reslocator find 'META-INF/**/*.xml'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}

			matches, err := loc.Find(cmd.Context(), p, args[0])
			if err != nil {
				return err
			}
			return c.emit(matches, func() {
				if len(matches) == 0 {
					printWarning("no resources match %s", args[0])
					return
				}
				for _, m := range matches {
					if m.Shadowed {
						printShadowed(m.Location.String())
					} else {
						printFile(m.Location.String())
					}
				}
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}

// scanCommand creates the "scan" command.
func (c *CLI) scanCommand() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "scan <workspace> <runtime-path>",
		Short: "Resolve a runtime path in every project of a workspace",
		Long: `Resolve a runtime path in every project directly below a workspace
folder. A project is any folder holding a pom.xml or a .project file.`,
		Example: `  reslocator scan ~/workspace META-INF/persistence.xml --jobs 4`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logical, err := locator.ParseLogical(args[1])
			if err != nil {
				return err
			}
			projects, err := workspace.Discover(args[0])
			if err != nil {
				return err
			}
			loc, err := c.newLocator(ctx)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			var spinner *Spinner
			if c.format == formatText {
				spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s in %d projects...", logical, len(projects)))
				spinner.Start()
			}
			results, err := loc.ResolveAll(ctx, projects, logical, jobs)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Scanned %d projects", len(projects)))

			return c.emit(results, func() {
				found := 0
				for _, r := range results {
					if r.Found {
						found++
						printSuccess("%s %s %s", r.Project, StyleDim.Render(iconArrow), r.Location)
					} else {
						printError("%s", r.Project)
					}
				}
				printDetail("%d of %d projects provide %s", found, len(results), logical)
			})
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", locator.DefaultConcurrency, "projects resolved in parallel")
	return cmd
}
