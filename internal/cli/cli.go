package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reslocator/pkg/buildinfo"
	"github.com/matzehuels/reslocator/pkg/cache"
	"github.com/matzehuels/reslocator/pkg/errors"
	"github.com/matzehuels/reslocator/pkg/locator"
	"github.com/matzehuels/reslocator/pkg/preferences"
	"github.com/matzehuels/reslocator/pkg/workspace"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "reslocator"

	// defaultProject is the project directory used when --project is omitted.
	defaultProject = "."
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command results; logs go to the logger's writer.
	Out io.Writer

	configPath string
	noCache    bool
	format     string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		format: formatText,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Resolve resource paths in Maven projects",
		Long:         `reslocator maps runtime resource paths such as META-INF/persistence.xml to the folders of a Maven project that provide them, using the build's resource roots first, then the source roots, then the module layout.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(c.format); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "preferences file (default $XDG_CONFIG_HOME/reslocator/preferences.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "do not cache parsed pom.xml models")
	flags.StringVar(&c.format, "format", formatText, "output format: text, json or yaml")

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.validCommand())
	root.AddCommand(c.defaultCommand())
	root.AddCommand(c.runtimePathCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.rootsCommand())
	root.AddCommand(c.mappingsCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Locator Factory
// =============================================================================

// newLocator builds a locator over the on-disk collaborators, honoring the
// preferences and --no-cache.
func (c *CLI) newLocator(ctx context.Context) (*locator.Locator, error) {
	logger := loggerFromContext(ctx)

	prefs, err := c.loadPreferences()
	if err != nil {
		return nil, err
	}
	if !prefs.Enabled {
		logger.Debug("maven integration disabled by preferences")
		return locator.New(locator.PlainOptions(logger)), nil
	}

	store, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	return locator.New(locator.DefaultOptions(store, logger)), nil
}

func (c *CLI) loadPreferences() (preferences.Preferences, error) {
	path, err := c.preferencesPath()
	if err != nil {
		return preferences.Defaults(), nil
	}
	return preferences.Load(path)
}

func (c *CLI) preferencesPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, preferences.FileName), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openProject opens the project at dir, defaulting to the working directory.
func openProject(dir string) (*workspace.Project, error) {
	if dir == "" {
		dir = defaultProject
	}
	return workspace.OpenProject(dir)
}

// parseProjectPath turns a command argument into a project Path. Absolute
// filesystem paths inside the project are accepted too.
func parseProjectPath(p *workspace.Project, arg string) (workspace.Path, error) {
	if filepath.IsAbs(arg) {
		rel, ok := p.Rel(arg)
		if !ok {
			return workspace.Path{}, errors.New(errors.ErrCodeInvalidPath, "%s is outside project %s", arg, p.Name)
		}
		return rel, nil
	}
	if err := errors.ValidatePath(filepath.ToSlash(arg)); err != nil {
		return workspace.Path{}, err
	}
	return workspace.NewPath(arg), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/reslocator/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/reslocator/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
