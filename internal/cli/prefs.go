package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/preferences"
)

// prefsCommand creates the preferences management command.
func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage the Maven integration preferences",
	}

	cmd.AddCommand(c.prefsShowCommand())
	cmd.AddCommand(c.prefsInitCommand())
	cmd.AddCommand(c.prefsPathCommand())

	return cmd
}

// prefsShowCommand creates the "prefs show" subcommand.
func (c *CLI) prefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := c.loadPreferences()
			if err != nil {
				return err
			}
			return c.emit(prefs, func() {
				printKeyValue("enabled", fmt.Sprintf("%t", prefs.Enabled))
				printKeyValue("app xml", fmt.Sprintf("%t", prefs.ApplicationXMLInBuildDir))
				printKeyValue("archiver", fmt.Sprintf("%t", prefs.WebMavenArchiverInBuildDir))
			})
		},
	}
}

// prefsInitCommand creates the "prefs init" subcommand.
func (c *CLI) prefsInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a preferences file with the default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.preferencesPath()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config dir")
			}
			if _, err := os.Stat(path); err == nil && !force {
				printWarning("%s already exists (use --force to overwrite)", path)
				return nil
			}
			if err := preferences.Write(path, preferences.Defaults()); err != nil {
				return err
			}
			printSuccess("Wrote default preferences")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// prefsPathCommand creates the "prefs path" subcommand.
func (c *CLI) prefsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the preferences file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.preferencesPath()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config dir")
			}
			fmt.Fprintln(c.Out, path)
			return nil
		},
	}
}
