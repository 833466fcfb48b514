package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/repository"
)

// ManifestFileName is the project manifest holding the plugin settings.
const ManifestFileName = "asset-plugin.toml"

type Config struct {
	Asset AssetConfig `toml:"asset"`
}

type AssetConfig struct {
	// PatternSkipVersion is matched against raw registry versions; matches
	// are not exposed to the host.
	PatternSkipVersion string `toml:"pattern-skip-version,omitempty"`
	// InstallerPaths maps an asset type to its install directory.
	InstallerPaths map[string]string `toml:"installer-paths,omitempty"`
	// MainFiles overrides the main files of a package, keyed by host name.
	MainFiles map[string][]string `toml:"main-files,omitempty"`
	// IgnoreFiles lists paths removed after install, keyed by host name.
	IgnoreFiles map[string][]string `toml:"ignore-files,omitempty"`
	// Repositories are registered with the host in addition to the ones
	// found in dependencies.
	Repositories []asset.VcsRepository `toml:"repositories,omitempty"`
	// EnabledTypes restricts the asset types the plugin handles. Empty
	// means every registered type.
	EnabledTypes []string `toml:"enabled-types,omitempty"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		Asset: AssetConfig{
			PatternSkipVersion: repository.DefaultSkipPattern,
			InstallerPaths: map[string]string{
				"npm":   "vendor/npm-asset",
				"bower": "vendor/bower-asset",
			},
		},
	}
}

// UnmarshalConfig parses a manifest. Settings it leaves out keep their
// default.
func UnmarshalConfig(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := UnmarshalConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFileOrDefault is LoadFile that falls back to Default when path does
// not exist.
func LoadFileOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(path)
}

func SaveFile(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// TypeEnabled reports whether the asset type name is handled.
func (a *AssetConfig) TypeEnabled(name string) bool {
	return len(a.EnabledTypes) == 0 || slices.Contains(a.EnabledTypes, name)
}

// InstallerPath returns the install directory of an asset type.
func (a *AssetConfig) InstallerPath(t asset.Type) string {
	if path, ok := a.InstallerPaths[t.Name()]; ok && path != "" {
		return path
	}
	return "vendor/" + t.ComposerVendorName()
}

// SkipPattern returns the configured skip pattern or the default one.
func (a *AssetConfig) SkipPattern() string {
	if a.PatternSkipVersion == "" {
		return repository.DefaultSkipPattern
	}
	return a.PatternSkipVersion
}

// ApplyOverrides replaces the main and ignore files of pkg with the ones
// configured for it.
func (a *AssetConfig) ApplyOverrides(t asset.Type, pkg *asset.Package) {
	set := func(key string, files []string) {
		if len(files) == 0 {
			return
		}
		if pkg.Extra == nil {
			pkg.Extra = map[string]any{}
		}
		pkg.Extra[key] = files
	}
	set(t.ComposerVendorName()+"-main", a.MainFiles[pkg.Name])
	set(t.ComposerVendorName()+"-ignore", a.IgnoreFiles[pkg.Name])
}
