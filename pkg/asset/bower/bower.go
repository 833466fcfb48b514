package bower

import (
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
)

const Name = "bower"

func init() {
	asset.RegisterType(&bowerType{})
}

type bowerType struct{}

var _ asset.Type = &bowerType{}

func (b *bowerType) Name() string               { return Name }
func (b *bowerType) ComposerVendorName() string { return "bower-asset" }
func (b *bowerType) ComposerType() string       { return "bower-asset-library" }
func (b *bowerType) Filename() string           { return "bower.json" }

func (b *bowerType) Convert(opts asset.ConvertOpts, data []byte) (*asset.Conversion, error) {
	conv, doc, err := asset.ConvertManifest(b, opts, data)
	if err != nil {
		return nil, err
	}

	pkg := conv.Package
	pkg.Authors = asset.ParseAuthors(doc, "authors")

	extra := map[string]any{}
	if main := asset.StringList(doc.Get("main")); len(main) > 0 {
		extra["bower-asset-main"] = main
	}
	if ignore := asset.StringList(doc.Get("ignore")); len(ignore) > 0 {
		extra["bower-asset-ignore"] = ignore
	}
	if doc.Get("private").Bool() {
		extra["bower-asset-private"] = true
	}
	if len(extra) > 0 {
		pkg.Extra = extra
	}

	return conv, nil
}
