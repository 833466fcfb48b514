package npm

import (
	"sort"
	"strings"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
	"github.com/tidwall/gjson"
)

const Name = "npm"

func init() {
	asset.RegisterType(&npmType{})
}

type npmType struct{}

var _ asset.Type = &npmType{}

func (n *npmType) Name() string               { return Name }
func (n *npmType) ComposerVendorName() string { return "npm-asset" }
func (n *npmType) ComposerType() string       { return "npm-asset-library" }
func (n *npmType) Filename() string           { return "package.json" }

func (n *npmType) Convert(opts asset.ConvertOpts, data []byte) (*asset.Conversion, error) {
	conv, doc, err := asset.ConvertManifest(n, opts, data)
	if err != nil {
		return nil, err
	}

	pkg := conv.Package
	pkg.Authors = asset.ParseAuthors(doc, "author", "contributors")
	pkg.Bin = binaries(doc.Get("bin"))

	support := map[string]string{}
	if bugs := doc.Get("bugs"); bugs.IsObject() {
		setIfPresent(support, "issues", bugs.Get("url").String())
		setIfPresent(support, "email", bugs.Get("email").String())
	} else {
		setIfPresent(support, "issues", bugs.String())
	}
	if repo := doc.Get("repository"); repo.IsObject() {
		setIfPresent(support, "source", repo.Get("url").String())
	} else {
		setIfPresent(support, "source", repo.String())
	}
	if len(support) > 0 {
		pkg.Support = support
	}

	extra := map[string]any{}
	if main := doc.Get("main").String(); main != "" {
		extra["npm-asset-main"] = main
	}
	if doc.Get("private").Bool() {
		extra["npm-asset-private"] = true
	}
	if len(extra) > 0 {
		pkg.Extra = extra
	}

	return conv, nil
}

// binaries reads "bin", given either as a single path or as a map of
// command name to path. Paths are returned sorted by command name.
func binaries(bin gjson.Result) []string {
	if !bin.IsObject() {
		if s := strings.TrimSpace(bin.String()); s != "" {
			return []string{s}
		}
		return nil
	}

	var names []string
	paths := map[string]string{}
	bin.ForEach(func(key, value gjson.Result) bool {
		names = append(names, key.String())
		paths[key.String()] = value.String()
		return true
	})
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, paths[name])
	}
	return out
}

func setIfPresent(m map[string]string, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		m[key] = value
	}
}
