package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// LocalSettingsFile is the project-local settings filename.
	LocalSettingsFile = "asset-plugin.local.toml"
	// EnvPrefix prefixes environment overrides, e.g. ASSET_PLUGIN_LOG_LEVEL.
	EnvPrefix = "ASSET_PLUGIN"

	globalDirName = ".asset-plugin"
)

// Settings holds developer-specific settings that are NOT committed to
// version control. They are resolved with Viper precedence:
// CLI flags > ASSET_PLUGIN_* env > asset-plugin.local.toml > ~/.asset-plugin/config.toml.
type Settings struct {
	LogLevel  string `toml:"log-level" mapstructure:"log-level"`
	LogFormat string `toml:"log-format" mapstructure:"log-format"`
	CacheDir  string `toml:"cache-dir,omitempty" mapstructure:"cache-dir"`
	CacheSize int    `toml:"cache-size" mapstructure:"cache-size"`
}

var settingDefaults = map[string]any{
	"log-level":  "info",
	"log-format": "text",
	"cache-dir":  "",
	"cache-size": 128,
}

// DefaultSettings returns the settings used when no file, env var or flag
// overrides them.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:  settingDefaults["log-level"].(string),
		LogFormat: settingDefaults["log-format"].(string),
		CacheDir:  settingDefaults["cache-dir"].(string),
		CacheSize: settingDefaults["cache-size"].(int),
	}
}

// LoadSettings resolves settings. flags may be nil; only flags the user
// changed override the files and the environment.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return nil, err
	}
	return loadSettings(flags, filepath.Join(dir, "config.toml"), LocalSettingsFile)
}

// loadSettings accepts explicit paths so it can be tested without touching
// the real home directory.
func loadSettings(flags *pflag.FlagSet, globalPath, localPath string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range settingDefaults {
		v.SetDefault(key, value)
	}

	// Lowest priority: global settings
	if _, err := os.Stat(globalPath); err == nil {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", globalPath, err)
		}
	}

	if _, err := os.Stat(localPath); err == nil {
		v.SetConfigFile(localPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", localPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Highest priority: flags the user set explicitly
	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			if _, known := settingDefaults[f.Name]; known {
				v.Set(f.Name, f.Value.String())
			}
		})
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	if s.CacheSize <= 0 {
		return nil, fmt.Errorf("cache-size must be greater than zero, got %d", s.CacheSize)
	}

	return s, nil
}

// GlobalConfigDir returns the path to ~/.asset-plugin.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, globalDirName), nil
}

// WriteLocalSettings persists settings to asset-plugin.local.toml in the
// given project directory.
func WriteLocalSettings(projectDir string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	path := filepath.Join(projectDir, LocalSettingsFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
