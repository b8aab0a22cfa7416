// BYZRA ⸻ internal/config/profile.go
// directive presets in toml, lua or yaml

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"mirage/internal/metadata"
)

// preset file names tried by DefaultPreset, in order
var presetNames = []string{"preset.lua", "preset.toml", "preset.yaml"}

// Loads a directive preset; the format follows the extension.
//
//	.toml  [directives] table
//	.lua   script returning a table of field = "directive"
//	.yaml  directives: mapping
func LoadPreset(path string) (metadata.Directives, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	var raw map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		raw, err = decodeTOMLPreset(data)
	case ".lua":
		raw, err = decodeLuaPreset(string(data))
	case ".yaml", ".yml":
		raw, err = decodeYAMLPreset(data)
	default:
		return nil, fmt.Errorf("unsupported preset format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", filepath.Base(path), err)
	}

	return parseDirectiveMap(raw)
}

// first preset found in the config search paths
func DefaultPreset() (metadata.Directives, string, error) {
	for _, name := range presetNames {
		if path := findFile(name); path != "" {
			dirs, err := LoadPreset(path)
			return dirs, path, err
		}
	}
	return nil, "", fmt.Errorf("no preset found in search paths")
}

func decodeTOMLPreset(data []byte) (map[string]string, error) {
	var doc struct {
		Directives map[string]string `toml:"directives"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return doc.Directives, nil
}

func decodeYAMLPreset(data []byte) (map[string]string, error) {
	var doc struct {
		Directives map[string]string `yaml:"directives"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc.Directives, nil
}

// runs the script in a fresh state and reads the returned table
func decodeLuaPreset(script string) (map[string]string, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("failed to execute preset Lua: %w", err)
	}

	result := L.Get(-1)
	if result.Type() != lua.LTTable {
		return nil, fmt.Errorf("preset Lua must return a table")
	}

	raw := make(map[string]string)
	var bad []string
	result.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTString {
			return
		}
		switch v.Type() {
		case lua.LTString, lua.LTNumber:
			raw[k.String()] = v.String()
		default:
			bad = append(bad, k.String())
		}
	})
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, fmt.Errorf("non-string directive for %s", strings.Join(bad, ", "))
	}

	return raw, nil
}

// field name -> directive text, unknown fields are errors
func parseDirectiveMap(raw map[string]string) (metadata.Directives, error) {
	dirs := make(metadata.Directives, len(raw))
	var errs []error

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := metadata.ParseField(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown field: %s", name))
			continue
		}
		dirs[field] = metadata.ParseDirective(raw[name])
	}

	return dirs, errors.Join(errs...)
}
