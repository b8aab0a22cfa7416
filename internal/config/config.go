// BYZRA ⸻ internal/config/config.go
// config loading & management

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
)

type Config struct {
	ExifTool struct {
		// "" uses exiftool from PATH
		Path   string `toml:"path"`
		Verify bool   `toml:"verify"`
		Backup bool   `toml:"backup"`
	} `toml:"exiftool"`

	Generate struct {
		Locale       string `toml:"locale"`
		Perturb      bool   `toml:"perturb"`
		KeepExplicit bool   `toml:"keep_explicit"`
	} `toml:"generate"`

	Watch struct {
		Paths      []string `toml:"paths"`
		Extensions []string `toml:"extensions"`
		Preset     string   `toml:"preset"`
	} `toml:"watch"`

	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`

	Catalog CatalogConfig `toml:"catalog"`

	// field -> directive, same syntax as --set
	Directives map[string]string `toml:"directives"`
}

// custom catalog entries
type CatalogConfig struct {
	Makes    []MakeEntry         `toml:"makes"`
	Models   map[string][]string `toml:"models"`
	Software []string            `toml:"software"`
	Lenses   []string            `toml:"lenses"`
}

type MakeEntry struct {
	Name             string   `toml:"name"`
	Class            string   `toml:"class"`
	Models           []string `toml:"models"`
	SoftwarePrefixes []string `toml:"software_prefixes"`
}

func searchPaths(name string) []string {
	return []string{
		filepath.Join("config", name),
		filepath.Join(".", name),
		filepath.Join(os.Getenv("HOME"), ".mirage/config", name),
	}
}

// first existing file among the search paths, "" if none
func findFile(name string) string {
	for _, path := range searchPaths(name) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Loads mirage.toml from the search paths.
//
// A missing file is not an error: defaults are returned with path "".
func Load() (*Config, string, error) {
	path := findFile("mirage.toml")
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := LoadFile(path)
	return cfg, path, err
}

// loads one config file over the defaults
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// drop commented-out watch paths
	var activePaths []string
	for _, p := range cfg.Watch.Paths {
		if len(p) > 0 && p[0] != '#' {
			activePaths = append(activePaths, p)
		}
	}
	cfg.Watch.Paths = activePaths

	return cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.Generate.Locale = string(catalog.LocaleEN)
	cfg.Generate.Perturb = true
	cfg.Watch.Paths = []string{filepath.Join(os.Getenv("HOME"), "Pictures")}
	cfg.Watch.Extensions = []string{".jpg", ".jpeg", ".png", ".heic", ".tif", ".tiff"}
	cfg.Log.Path = filepath.Join(os.Getenv("HOME"), ".mirage/logs/mirage.log")
	cfg.Log.Level = "info"
	return cfg
}

func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ~/.mirage/config, created if missing
func SetupConfigDir() (string, error) {
	configDir := filepath.Join(os.Getenv("HOME"), ".mirage/config")
	err := os.MkdirAll(configDir, 0755)
	return configDir, err
}

func (c *Config) Locale() (catalog.Locale, error) {
	return catalog.ParseLocale(c.Generate.Locale)
}

// parsed [directives] table
func (c *Config) DirectiveMap() (metadata.Directives, error) {
	return parseDirectiveMap(c.Directives)
}

// registers the [catalog] entries
func (c *Config) ApplyCatalog(cat *catalog.Catalog) error {
	for _, m := range c.Catalog.Makes {
		class, err := catalog.ParseClass(m.Class)
		if err != nil {
			return fmt.Errorf("catalog make %s: %w", m.Name, err)
		}
		err = cat.AddMake(catalog.BrandProfile{
			Make:             m.Name,
			Class:            class,
			Models:           m.Models,
			SoftwarePrefixes: m.SoftwarePrefixes,
		})
		if err != nil {
			return fmt.Errorf("catalog make %s: %w", m.Name, err)
		}
	}

	for brand, models := range c.Catalog.Models {
		if err := cat.AddModels(brand, models...); err != nil {
			return fmt.Errorf("catalog models: %w", err)
		}
	}

	cat.AddSoftware(c.Catalog.Software...)
	cat.AddLenses(c.Catalog.Lenses...)
	return nil
}
