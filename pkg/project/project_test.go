package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/config"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Asset.EnabledTypes = []string{"npm"}

	if err := Init(dir, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	got, err := config.LoadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(got.Asset.EnabledTypes) != 1 || got.Asset.EnabledTypes[0] != "npm" {
		t.Errorf("EnabledTypes = %v, want [npm]", got.Asset.EnabledTypes)
	}

	if err := Init(dir, cfg); err == nil {
		t.Error("second Init() expected error")
	}
}

func TestEnsureGitignore(t *testing.T) {
	tests := map[string]struct {
		existing  string
		entries   []string
		wantAdded []string
		wantFile  string
	}{
		"new file": {
			entries:   []string{"vendor/npm-asset/", "asset-plugin.local.toml"},
			wantAdded: []string{"vendor/npm-asset/", "asset-plugin.local.toml"},
			wantFile:  "vendor/npm-asset/\nasset-plugin.local.toml\n",
		},
		"existing entries are kept": {
			existing:  "node_modules\nvendor/npm-asset\n",
			entries:   []string{"vendor/npm-asset/", "asset-plugin.local.toml"},
			wantAdded: []string{"asset-plugin.local.toml"},
			wantFile:  "node_modules\nvendor/npm-asset\nasset-plugin.local.toml\n",
		},
		"missing trailing newline": {
			existing:  "node_modules",
			entries:   []string{"vendor/bower-asset/"},
			wantAdded: []string{"vendor/bower-asset/"},
			wantFile:  "node_modules\nvendor/bower-asset/\n",
		},
		"nothing to add": {
			existing: "a\n",
			entries:  []string{"a", "a"},
			wantFile: "a\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ".gitignore")
			if tc.existing != "" {
				if err := os.WriteFile(path, []byte(tc.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			added, err := EnsureGitignore(dir, tc.entries)
			if err != nil {
				t.Fatalf("EnsureGitignore() error = %v", err)
			}
			if len(added) != len(tc.wantAdded) {
				t.Fatalf("added = %v, want %v", added, tc.wantAdded)
			}
			for i := range added {
				if added[i] != tc.wantAdded[i] {
					t.Errorf("added[%d] = %q, want %q", i, added[i], tc.wantAdded[i])
				}
			}

			data, _ := os.ReadFile(path)
			if string(data) != tc.wantFile {
				t.Errorf(".gitignore = %q, want %q", data, tc.wantFile)
			}
		})
	}
}
