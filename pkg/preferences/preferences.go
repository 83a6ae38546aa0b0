// Package preferences loads the user preferences of the Maven integration
// from a TOML file.
//
//	# ~/.config/reslocator/preferences.toml
//	enabled = true
//	application_xml_in_build_dir = true
//	web_mavenarchiver_in_build_dir = true
//
// Keys missing from the file keep their default.
package preferences

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/reslocator/pkg/errors"
)

// FileName is the preferences file name inside the config directory.
const FileName = "preferences.toml"

// Preferences are the user-tunable switches.
type Preferences struct {
	// Enabled turns the Maven integration on. When false, pom.xml is never
	// read: there is no build metadata and source roots come from .classpath.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
	// ApplicationXMLInBuildDir generates application.xml under the build
	// directory instead of the source tree.
	ApplicationXMLInBuildDir bool `toml:"application_xml_in_build_dir" json:"application_xml_in_build_dir" yaml:"application_xml_in_build_dir"`
	// WebMavenArchiverInBuildDir generates the web MANIFEST.MF under the
	// build directory.
	WebMavenArchiverInBuildDir bool `toml:"web_mavenarchiver_in_build_dir" json:"web_mavenarchiver_in_build_dir" yaml:"web_mavenarchiver_in_build_dir"`
}

// Defaults returns the preferences used when no file exists.
func Defaults() Preferences {
	return Preferences{
		Enabled:                    true,
		ApplicationXMLInBuildDir:   true,
		WebMavenArchiverInBuildDir: true,
	}
}

// Load reads path on top of Defaults. A missing file is not an error.
func Load(path string) (Preferences, error) {
	prefs := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	md, err := toml.Decode(string(data), &prefs)
	if err != nil {
		return Defaults(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Defaults(), errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return prefs, nil
}

// Write stores prefs at path, creating parent directories.
func Write(path string, prefs Preferences) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(prefs); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode preferences")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write %s", path)
	}
	return nil
}
