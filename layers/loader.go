package layers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadMap pushes a layer holding the flattened values. Nested maps are
// joined into dotted keys, so {"db": {"path": p}} binds "db.path".
func (c *Config) LoadMap(values map[string]any) {
	c.scopes.PushScope()
	for k, v := range flatten("", values) {
		c.scopes.Insert(k, v)
	}
}

// LoadFile pushes a layer from a config file, dispatching on the
// extension: .toml, .yaml, .yml or .json. A failed load leaves the
// config unchanged.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return c.LoadTOML(data)
	case ".yaml", ".yml":
		return c.LoadYAML(data)
	case ".json":
		return c.LoadJSON(data)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// LoadTOML pushes a layer parsed from TOML data.
func (c *Config) LoadTOML(data []byte) error {
	var values map[string]any
	if _, err := toml.Decode(string(data), &values); err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}
	c.LoadMap(values)
	return nil
}

// LoadYAML pushes a layer parsed from YAML data.
func (c *Config) LoadYAML(data []byte) error {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	c.LoadMap(values)
	return nil
}

// LoadJSON pushes a layer parsed from JSON data.
func (c *Config) LoadJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	c.LoadMap(values)
	return nil
}

// flatten joins nested map keys into dotted paths.
func flatten(prefix string, in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	flattenInto(out, prefix, in)
	return out
}

func flattenInto(out map[string]any, prefix string, in map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			flattenInto(out, key, m)
			continue
		}
		out[key] = v
	}
}
