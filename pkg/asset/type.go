package asset

import (
	"strings"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/converter"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/logger"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/version"
)

// ConvertOpts carries the collaborators used while converting a manifest.
// Nil fields fall back to defaults.
type ConvertOpts struct {
	Logger    logger.Logger
	Parser    version.Normalizer
	Converter *converter.SemverConverter
}

// WithDefaults fills unset collaborators.
func (o ConvertOpts) WithDefaults() ConvertOpts {
	o.Logger = logger.OrNop(o.Logger)
	if o.Parser == nil {
		o.Parser = version.NewAssetParser(nil)
	}
	if o.Converter == nil {
		o.Converter = converter.NewSemverConverter()
	}
	return o
}

type Type interface {
	// Name is the registry name, e.g. "npm".
	Name() string
	// ComposerVendorName is the vendor every package of this type is
	// published under, e.g. "npm-asset".
	ComposerVendorName() string
	// ComposerType is the host package type, e.g. "npm-asset-library".
	ComposerType() string
	// Filename is the manifest file inside a package, e.g. "package.json".
	Filename() string
	// Convert translates a manifest into a host package.
	Convert(opts ConvertOpts, data []byte) (*Conversion, error)
}

// FormatComposerName returns the host name of an asset package. Scoped npm
// names "@scope/pkg" become "scope--pkg".
func FormatComposerName(t Type, name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, t.ComposerVendorName()+"/")
	if strings.HasPrefix(name, "@") {
		name = strings.Replace(strings.TrimPrefix(name, "@"), "/", "--", 1)
	}
	return t.ComposerVendorName() + "/" + name
}

// AssetName reverses FormatComposerName.
func AssetName(t Type, composerName string) string {
	name := strings.TrimPrefix(composerName, t.ComposerVendorName()+"/")
	if scope, pkg, ok := strings.Cut(name, "--"); ok {
		return "@" + scope + "/" + pkg
	}
	return name
}
