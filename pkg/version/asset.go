package version

import "strings"

const (
	// DevSentinel is returned for versions that cannot be normalized.
	DevSentinel = "dev"

	// PatchMarker flags mutable registry micro-releases. Any version
	// containing it is classified as dev.
	PatchMarker = "-patch"
)

// AssetParser layers asset registry rules over a delegate Normalizer.
// Registries publish tags and branch names that are not valid versions, so
// Normalize never fails; unparseable input becomes DevSentinel.
type AssetParser struct {
	delegate Normalizer
}

var _ Normalizer = (*AssetParser)(nil)

// NewAssetParser wraps delegate. A nil delegate uses Parser.
func NewAssetParser(delegate Normalizer) *AssetParser {
	if delegate == nil {
		delegate = NewParser()
	}
	return &AssetParser{delegate: delegate}
}

// Normalize returns the delegate's normalized version, or DevSentinel when
// the delegate rejects the input. The returned error is always nil.
func (p *AssetParser) Normalize(version, fullVersion string) (string, error) {
	if strings.TrimSpace(version) == DevSentinel {
		return DevSentinel, nil
	}

	normalized, err := p.delegate.Normalize(version, fullVersion)
	if err != nil {
		return DevSentinel, nil
	}
	return normalized, nil
}

// ParseStability returns the delegate's stability, except that versions
// containing PatchMarker anywhere are always dev.
func (p *AssetParser) ParseStability(version string) Stability {
	stability := p.delegate.ParseStability(version)
	if strings.Contains(version, PatchMarker) {
		return StabilityDev
	}
	return stability
}

var defaultAssetParser = NewAssetParser(nil)

// Normalize normalizes version with the default asset parser.
func Normalize(version string) string {
	normalized, _ := defaultAssetParser.Normalize(version, "")
	return normalized
}

// ParseStability classifies version with the default asset parser.
func ParseStability(version string) Stability {
	return defaultAssetParser.ParseStability(version)
}
