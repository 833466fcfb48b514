package npm

import (
	"testing"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
)

const widgetPackageJSON = `{
	"name": "@scope/Widget",
	"version": "1.2.0-beta.1",
	"description": "A widget",
	"homepage": "https://example.com",
	"license": "MIT",
	"author": "Jane Doe <jane@example.com> (https://jane.example.com)",
	"contributors": [{"name": "Bob", "email": "bob@example.com"}],
	"bin": {"widget": "bin/widget.js", "another": "bin/another.js"},
	"bugs": {"url": "https://example.com/issues", "email": "bugs@example.com"},
	"repository": {"type": "git", "url": "https://github.com/scope/widget.git"},
	"main": "index.js",
	"private": true,
	"dependencies": {"jquery": "^3.1.0", "lodash": "github:lodash/lodash#4.17.21"}
}`

func TestRegistered(t *testing.T) {
	typ, ok := asset.GetType(Name)
	if !ok {
		t.Fatal("npm type is not registered")
	}
	if typ.ComposerVendorName() != "npm-asset" || typ.Filename() != "package.json" {
		t.Errorf("unexpected npm type %q / %q", typ.ComposerVendorName(), typ.Filename())
	}
}

func TestConvert(t *testing.T) {
	conv, err := (&npmType{}).Convert(asset.ConvertOpts{}, []byte(widgetPackageJSON))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	pkg := conv.Package

	if pkg.Name != "npm-asset/scope--widget" {
		t.Errorf("Name = %q", pkg.Name)
	}
	if pkg.Version != "1.2.0-beta1" || pkg.VersionNormalized != "1.2.0.0-beta1" || pkg.Stability != "beta" {
		t.Errorf("version = (%q, %q, %q)", pkg.Version, pkg.VersionNormalized, pkg.Stability)
	}

	if len(pkg.Authors) != 2 {
		t.Fatalf("Authors = %+v, want 2", pkg.Authors)
	}
	if pkg.Authors[0].Name != "Jane Doe" || pkg.Authors[0].Homepage != "https://jane.example.com" {
		t.Errorf("Authors[0] = %+v", pkg.Authors[0])
	}
	if pkg.Authors[1].Email != "bob@example.com" {
		t.Errorf("Authors[1] = %+v", pkg.Authors[1])
	}

	if len(pkg.Bin) != 2 || pkg.Bin[0] != "bin/another.js" || pkg.Bin[1] != "bin/widget.js" {
		t.Errorf("Bin = %v", pkg.Bin)
	}

	wantSupport := map[string]string{
		"issues": "https://example.com/issues",
		"email":  "bugs@example.com",
		"source": "https://github.com/scope/widget.git",
	}
	for k, v := range wantSupport {
		if pkg.Support[k] != v {
			t.Errorf("Support[%q] = %q, want %q", k, pkg.Support[k], v)
		}
	}

	if pkg.Extra["npm-asset-main"] != "index.js" || pkg.Extra["npm-asset-private"] != true {
		t.Errorf("Extra = %v", pkg.Extra)
	}

	if pkg.Require["npm-asset/jquery"] != ">=3.1.0,<4.0.0" || pkg.Require["npm-asset/lodash"] != "4.17.21" {
		t.Errorf("Require = %v", pkg.Require)
	}
	if len(conv.Repositories) != 1 || conv.Repositories[0].Type != "npm-vcs" {
		t.Errorf("Repositories = %+v", conv.Repositories)
	}
}

func TestBinaries(t *testing.T) {
	tests := map[string]struct {
		json string
		want []string
	}{
		"single path": {json: `{"name": "x", "bin": "cli.js"}`, want: []string{"cli.js"}},
		"map":         {json: `{"name": "x", "bin": {"b": "b.js", "a": "a.js"}}`, want: []string{"a.js", "b.js"}},
		"missing":     {json: `{"name": "x"}`, want: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			conv, err := (&npmType{}).Convert(asset.ConvertOpts{}, []byte(tc.json))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			got := conv.Package.Bin
			if len(got) != len(tc.want) {
				t.Fatalf("Bin = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Bin[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSupportStrings(t *testing.T) {
	conv, err := (&npmType{}).Convert(asset.ConvertOpts{}, []byte(`{
		"name": "x",
		"bugs": "https://example.com/bugs",
		"repository": "github:x/x"
	}`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if conv.Package.Support["issues"] != "https://example.com/bugs" || conv.Package.Support["source"] != "github:x/x" {
		t.Errorf("Support = %v", conv.Package.Support)
	}
	if conv.Package.Extra != nil {
		t.Errorf("Extra = %v, want nil", conv.Package.Extra)
	}
}
