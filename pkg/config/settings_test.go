package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadSettings(t *testing.T) {
	tests := map[string]struct {
		global string
		local  string
		env    map[string]string
		flags  []string
		want   Settings
	}{
		"defaults": {
			want: Settings{LogLevel: "info", LogFormat: "text", CacheSize: 128},
		},
		"local merges over global": {
			global: "log-level = \"warn\"\ncache-size = 16\n",
			local:  "log-level = \"debug\"\n",
			want:   Settings{LogLevel: "debug", LogFormat: "text", CacheSize: 16},
		},
		"env overrides files": {
			global: "log-format = \"text\"\n",
			local:  "cache-dir = \"/from/local\"\n",
			env: map[string]string{
				"ASSET_PLUGIN_LOG_FORMAT": "json",
				"ASSET_PLUGIN_CACHE_DIR":  "/from/env",
			},
			want: Settings{LogLevel: "info", LogFormat: "json", CacheDir: "/from/env", CacheSize: 128},
		},
		"flags override everything": {
			local: "log-level = \"debug\"\ncache-size = 16\n",
			env:   map[string]string{"ASSET_PLUGIN_LOG_LEVEL": "warn"},
			flags: []string{"--log-level=error", "--cache-size=64"},
			want:  Settings{LogLevel: "error", LogFormat: "text", CacheSize: 64},
		},
		"unchanged flags keep file values": {
			local: "log-level = \"debug\"\n",
			flags: []string{},
			want:  Settings{LogLevel: "debug", LogFormat: "text", CacheSize: 128},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			globalPath := filepath.Join(dir, "config.toml")
			localPath := filepath.Join(dir, LocalSettingsFile)

			if tc.global != "" {
				writeFile(t, globalPath, tc.global)
			}
			if tc.local != "" {
				writeFile(t, localPath, tc.local)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			var flags *pflag.FlagSet
			if tc.flags != nil {
				flags = testFlags()
				if err := flags.Parse(tc.flags); err != nil {
					t.Fatalf("parsing flags: %v", err)
				}
			}

			got, err := loadSettings(flags, globalPath, localPath)
			if err != nil {
				t.Fatalf("loadSettings() error = %v", err)
			}
			if *got != tc.want {
				t.Errorf("loadSettings() = %+v, want %+v", *got, tc.want)
			}
		})
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := map[string]string{
		"malformed file":  "log-level = ",
		"zero cache size": "cache-size = 0\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			localPath := filepath.Join(dir, LocalSettingsFile)
			writeFile(t, localPath, content)

			if _, err := loadSettings(nil, filepath.Join(dir, "missing.toml"), localPath); err == nil {
				t.Error("loadSettings() expected error")
			}
		})
	}
}

func TestWriteLocalSettings(t *testing.T) {
	dir := t.TempDir()
	want := Settings{LogLevel: "debug", LogFormat: "json", CacheDir: "/tmp/cache", CacheSize: 32}

	if err := WriteLocalSettings(dir, &want); err != nil {
		t.Fatalf("WriteLocalSettings() error = %v", err)
	}

	got, err := loadSettings(nil, filepath.Join(dir, "missing.toml"), filepath.Join(dir, LocalSettingsFile))
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if *got != want {
		t.Errorf("round trip = %+v, want %+v", *got, want)
	}
}

func TestDefaultSettings(t *testing.T) {
	dir := t.TempDir()
	got, err := loadSettings(nil, filepath.Join(dir, "missing.toml"), filepath.Join(dir, "missing.local.toml"))
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if want := DefaultSettings(); *got != *want {
		t.Errorf("loadSettings() = %+v, want %+v", *got, *want)
	}
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.String("log-format", "text", "")
	flags.String("cache-dir", "", "")
	flags.Int("cache-size", 128, "")
	return flags
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
