package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reslocator/pkg/locator"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// projectFlag registers --project on cmd.
func projectFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVarP(dir, "project", "p", defaultProject, "project directory")
}

// locationReport is the structured output of the single-path commands.
type locationReport struct {
	Project  string          `json:"project" yaml:"project"`
	Input    string          `json:"input" yaml:"input"`
	Location *workspace.Path `json:"location,omitempty" yaml:"location,omitempty"`
	Found    bool            `json:"found" yaml:"found"`
}

func newLocationReport(p *workspace.Project, input string, loc workspace.Path, ok bool) locationReport {
	r := locationReport{Project: p.Name, Input: input, Found: ok}
	if ok {
		r.Location = &loc
	}
	return r
}

// resolveCommand creates the "resolve" command.
func (c *CLI) resolveCommand() *cobra.Command {
	var dir string
	var explain bool

	cmd := &cobra.Command{
		Use:   "resolve <runtime-path>",
		Short: "Find the project location that provides a runtime resource",
		Long: `Resolve a runtime-relative path such as META-INF/persistence.xml.

Resource roots declared in pom.xml are tried first, then the source roots
from .classpath, then the module layout of the project. The first existing
candidate wins.`,
		Example: `  reslocator resolve META-INF/persistence.xml
  reslocator resolve -p shop --explain META-INF/orm.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			logical, err := locator.ParseLogical(args[0])
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}

			r := loc.Explain(p, logical)
			if explain {
				return c.emit(r, func() { printResolution(r) })
			}
			return c.emit(newLocationReport(p, args[0], r.Location, r.Found), func() {
				if !r.Found {
					printWarning("%s not found in %s", logical, p.Name)
					return
				}
				printFile(r.Location.String())
			})
		},
	}

	projectFlag(cmd, &dir)
	cmd.Flags().BoolVar(&explain, "explain", false, "show every candidate that was probed")
	return cmd
}

func printResolution(r locator.Resolution) {
	if r.Found {
		printSuccess("%s %s %s", r.Logical, StyleDim.Render(iconArrow), StyleHighlight.Render(r.Location.String()))
	} else {
		printWarning("%s not found", r.Logical)
	}
	printKeyValue("project", r.Project)
	printKeyValue("strategy", string(r.Strategy))
	printKeyValue("metadata", fmt.Sprintf("%t", r.Metadata))
	if r.Strategy == locator.StrategyFallback || !r.Found {
		printKeyValue("kind", r.Kind.String())
	}
	for _, cand := range r.Candidates {
		mark := styleIconError.Render(iconError)
		if cand.Exists {
			mark = styleIconSuccess.Render(iconSuccess)
		}
		fmt.Printf("  %s %s %s\n", mark, StyleDim.Render(string(cand.Strategy)), cand.Path)
	}
}

// validCommand creates the "valid" command.
func (c *CLI) validCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "valid <folder>",
		Short: "Check whether a folder may hold resources",
		Long:  `Report whether a project folder is an acceptable resource location. Folders below the build output or test output are rejected.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			container, err := parseProjectPath(p, args[0])
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}

			ok := loc.IsLocationValid(p, container)
			return c.emit(newLocationReport(p, args[0], container, ok), func() {
				if ok {
					printSuccess("%s is a valid resource location", container)
				} else {
					printError("%s is not a valid resource location", container)
				}
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}

// defaultCommand creates the "default" command.
func (c *CLI) defaultCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print the folder where new META-INF resources belong",
		Long: `Print the default META-INF folder of a project.

The first existing META-INF below a resource root is preferred. When none
exists, the META-INF of the first resource root is printed as the place to
create one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}

			path, ok := loc.DefaultLocation(p)
			return c.emit(newLocationReport(p, "", path, ok), func() {
				if !ok {
					printWarning("%s has no default resource location", p.Name)
					return
				}
				printFile(path.String())
				if _, err := statProject(p, path); err != nil {
					printDetail("does not exist yet")
				}
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}

// runtimePathCommand creates the "runtime-path" command.
func (c *CLI) runtimePathCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "runtime-path <resource>",
		Short: "Map a project file back to its runtime path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			resource, err := parseProjectPath(p, args[0])
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}

			rt, ok := loc.RuntimePath(p, resource)
			return c.emit(newLocationReport(p, args[0], rt, ok), func() {
				if !ok {
					printWarning("%s has no runtime path", resource)
					return
				}
				printFile(rt.String())
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}
