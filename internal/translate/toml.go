// Package translate converts configuration documents between YAML and TOML.
//
// Both directions pass through generic maps, so mapping keys come out sorted.
// Callers that need document order (rule maps) must use YAML or JSON.
package translate

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
)

// YAMLToTOML converts YAML data to TOML data. The YAML document must be a
// mapping, since a TOML document is always a table.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

// TOMLToYAML converts TOML data to YAML data.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	var data map[string]any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling toml"), errors.ErrInvalidConfig)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}
