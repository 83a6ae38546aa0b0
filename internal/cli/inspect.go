package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reslocator/pkg/classpath"
	"github.com/matzehuels/reslocator/pkg/component"
	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/facet"
	"github.com/matzehuels/reslocator/pkg/lifecycle"
	"github.com/matzehuels/reslocator/pkg/locator"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

func statProject(p *workspace.Project, path workspace.Path) (os.FileInfo, error) {
	return os.Stat(p.Abs(path))
}

type classifyReport struct {
	Project   string        `json:"project" yaml:"project"`
	Kind      locator.Kind  `json:"kind" yaml:"kind"`
	Packaging string        `json:"packaging,omitempty" yaml:"packaging,omitempty"`
	Lifecycle string        `json:"lifecycle,omitempty" yaml:"lifecycle,omitempty"`
	Natures   []string      `json:"natures" yaml:"natures"`
	Facets    []facet.Facet `json:"facets" yaml:"facets"`
}

// classifyCommand creates the "classify" command.
func (c *CLI) classifyCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show the project kind that selects the fallback locator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			r := classifyReport{Project: p.Name, Kind: loc.Kind(p)}
			if r.Natures, err = facet.Natures(p); err != nil {
				logger.Warn("cannot read natures", "project", p.Name, "err", err)
			}
			if r.Facets, err = facet.Installed(p); err != nil {
				logger.Warn("cannot read facets", "project", p.Name, "err", err)
			}
			if md, ok := loc.BuildMetadata(p); ok {
				r.Packaging = md.Packaging
				ids := make([]string, len(r.Facets))
				for i, f := range r.Facets {
					ids[i] = f.ID
				}
				if m, ok := lifecycle.Default().Lookup(md.Packaging, ids); ok {
					r.Lifecycle = m.ID
				}
			}

			return c.emit(r, func() {
				printInfo("%s is a %s project", p.Name, StyleHighlight.Render(r.Kind.String()))
				if r.Packaging != "" {
					printKeyValue("packaging", r.Packaging)
				}
				if r.Lifecycle != "" {
					printKeyValue("lifecycle", r.Lifecycle)
				}
				for _, n := range r.Natures {
					printKeyValue("nature", n)
				}
				for _, f := range r.Facets {
					printKeyValue("facet", strings.TrimSpace(f.ID+" "+f.Version))
				}
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}

type rootsReport struct {
	Project        string                   `json:"project" yaml:"project"`
	BuildMetadata  *workspace.BuildMetadata `json:"build_metadata,omitempty" yaml:"build_metadata,omitempty"`
	SourceRoots    []workspace.Path         `json:"source_roots" yaml:"source_roots"`
	OutputLocation *workspace.Path          `json:"output_location,omitempty" yaml:"output_location,omitempty"`
}

// rootsCommand creates the "roots" command.
func (c *CLI) rootsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List the resource roots, source roots and output folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			loc, err := c.newLocator(cmd.Context())
			if err != nil {
				return err
			}

			r := rootsReport{Project: p.Name, SourceRoots: loc.SourceRoots(p)}
			if md, ok := loc.BuildMetadata(p); ok {
				r.BuildMetadata = md
			}
			if out, ok := (classpath.Provider{}).OutputLocation(p); ok {
				r.OutputLocation = &out
			}

			return c.emit(r, func() {
				printTitle("Resource roots")
				if r.BuildMetadata == nil {
					printDetail("build metadata unavailable")
				} else {
					for _, root := range r.BuildMetadata.ResourceRoots {
						printFile(root.String())
					}
					printKeyValue("output", r.BuildMetadata.OutputPath.String())
					printKeyValue("test output", r.BuildMetadata.TestOutputPath.String())
				}
				printTitle("Source roots")
				for _, root := range r.SourceRoots {
					printFile(root.String())
				}
				if r.OutputLocation != nil {
					printKeyValue("classpath", r.OutputLocation.String())
				}
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}

// mappingsCommand creates the "mappings" command.
func (c *CLI) mappingsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List the deploy mappings of a flexible module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			m, err := component.Load(p)
			if err != nil {
				if errors.Is(err, errors.ErrCodeMetadataUnavailable) {
					printWarning("%s is not a flexible module", p.Name)
					return nil
				}
				return err
			}

			return c.emit(m, func() {
				printInfo("%s", StyleHighlight.Render(m.DeployName))
				for _, mp := range m.Mappings {
					deploy := "/" + mp.DeployPath.String()
					if mp.DeployPath.IsEmpty() {
						deploy = "/"
					}
					printMapping(deploy, mp.SourcePath.String())
				}
			})
		},
	}

	projectFlag(cmd, &dir)
	return cmd
}
