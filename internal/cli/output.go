package cli

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/reslocator/pkg/errors"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var validFormats = map[string]bool{
	formatText: true,
	formatJSON: true,
	formatYAML: true,
}

func validateFormat(f string) error {
	if !validFormats[f] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, json or yaml)", f)
	}
	return nil
}

// emit writes v in the selected structured format, or calls text for human
// output.
func (c *CLI) emit(v any, text func()) error {
	switch c.format {
	case formatJSON:
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(c.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text()
		return nil
	}
}
