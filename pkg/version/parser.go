package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidVersion is returned by Parser.Normalize when the input is not a
// recognizable version string.
var ErrInvalidVersion = errors.New("invalid version string")

// BranchSentinel is the normalized form of master-like branches.
const BranchSentinel = "9999999-dev"

const modifierPattern = `[._-]?(?:(stable|beta|b|RC|alpha|a|patch|pl|p)((?:[.-]?\d+)*)?)?([.-]?dev)?`

var (
	aliasRegex          = regexp.MustCompile(`^([^,\s]+) +as +([^,\s]+)$`)
	stabilityFlagRegex  = regexp.MustCompile(`(?i)@(?:stable|RC|beta|alpha|dev)$`)
	masterLikeRegex     = regexp.MustCompile(`(?i)^(?:dev-)?(?:master|trunk|default)$`)
	buildMetadataRegex  = regexp.MustCompile(`^([^,\s+]+)\+\S+$`)
	classicalRegex      = regexp.MustCompile(`(?i)^v?(\d{1,5})(\.\d+)?(\.\d+)?(\.\d+)?` + modifierPattern + `$`)
	dateRegex           = regexp.MustCompile(`(?i)^v?(\d{4}(?:[.:-]?\d{2}){1,6}(?:[.:-]?\d{1,3})?)` + modifierPattern + `$`)
	devBranchRegex      = regexp.MustCompile(`(?i)^(.*?)[.-]?dev$`)
	numericBranchRegex  = regexp.MustCompile(`(?i)^v?(\d+)(\.(?:\d+|[x*]))?(\.(?:\d+|[x*]))?(\.(?:\d+|[x*]))?$`)
	numericAliasRegex   = regexp.MustCompile(`(?i)^((?:\d+\.)*\d+)(?:\.x)?-dev$`)
	stabilityRegex      = regexp.MustCompile(`(?i)` + modifierPattern + `(?:\+.*)?$`)
	referenceSuffix     = regexp.MustCompile(`#.+$`)
	nonDigitRegex       = regexp.MustCompile(`\D`)
	wildcardSegmentRepl = strings.NewReplacer("*", "x", "X", "x")
)

// Normalizer turns registry version strings into comparable tokens and
// classifies their stability.
type Normalizer interface {
	// Normalize returns the canonical form of version. fullVersion is the
	// surrounding constraint or definition the version came from, used only
	// for diagnostics; an empty string means version itself.
	Normalize(version, fullVersion string) (string, error)
	// ParseStability classifies version.
	ParseStability(version string) Stability
}

// Parser implements the host version grammar: four numeric segments with
// an optional stability modifier, date based versions and dev branches.
// The zero value is ready to use.
type Parser struct{}

var _ Normalizer = Parser{}

// NewParser returns the standard version parser.
func NewParser() Parser {
	return Parser{}
}

// ParseStability infers the stability of version from its suffix.
func (Parser) ParseStability(version string) Stability {
	version = referenceSuffix.ReplaceAllString(version, "")

	if strings.HasPrefix(version, "dev-") || strings.HasSuffix(version, "-dev") {
		return StabilityDev
	}

	m := stabilityRegex.FindStringSubmatch(strings.ToLower(version))
	if m == nil {
		return StabilityStable
	}
	if m[3] != "" {
		return StabilityDev
	}

	switch m[1] {
	case "beta", "b":
		return StabilityBeta
	case "alpha", "a":
		return StabilityAlpha
	case "rc":
		return StabilityRC
	}

	return StabilityStable
}

// Normalize returns the canonical form of version, or an error wrapping
// ErrInvalidVersion.
func (p Parser) Normalize(version, fullVersion string) (string, error) {
	version = strings.TrimSpace(version)
	if fullVersion == "" {
		fullVersion = version
	}

	if m := aliasRegex.FindStringSubmatch(version); m != nil {
		version = m[1]
	}

	if loc := stabilityFlagRegex.FindStringIndex(version); loc != nil {
		version = version[:loc[0]]
	}

	if masterLikeRegex.MatchString(version) {
		return BranchSentinel, nil
	}

	if len(version) >= 4 && strings.EqualFold(version[:4], "dev-") {
		return "dev-" + version[4:], nil
	}

	if m := buildMetadataRegex.FindStringSubmatch(version); m != nil {
		version = m[1]
	}

	if m := classicalRegex.FindStringSubmatch(version); m != nil {
		normalized := m[1] + segmentOrZero(m[2]) + segmentOrZero(m[3]) + segmentOrZero(m[4])
		return withModifiers(normalized, m[5], m[6], m[7]), nil
	}

	if m := dateRegex.FindStringSubmatch(version); m != nil {
		normalized := nonDigitRegex.ReplaceAllString(m[1], ".")
		return withModifiers(normalized, m[2], m[3], m[4]), nil
	}

	// Only numeric branches may carry a dev suffix.
	if m := devBranchRegex.FindStringSubmatch(version); m != nil {
		if branch := p.NormalizeBranch(m[1]); !strings.HasPrefix(branch, "dev-") {
			return branch, nil
		}
	}

	return "", fmt.Errorf("%w %q%s", ErrInvalidVersion, version, aliasHint(version, fullVersion))
}

// NormalizeBranch normalizes a branch name. Numeric branches such as "1.x"
// become "1.9999999.9999999.9999999-dev"; anything else becomes "dev-<name>".
func (p Parser) NormalizeBranch(name string) string {
	name = strings.TrimSpace(name)

	switch name {
	case "master", "trunk", "default":
		return BranchSentinel
	}

	if m := numericBranchRegex.FindStringSubmatch(name); m != nil {
		var b strings.Builder
		b.WriteString(m[1])
		for _, seg := range m[2:] {
			if seg == "" {
				seg = ".x"
			}
			b.WriteString(wildcardSegmentRepl.Replace(seg))
		}
		return strings.ReplaceAll(b.String(), "x", "9999999") + "-dev"
	}

	return "dev-" + name
}

// ParseNumericAliasPrefix returns the numeric prefix of a branch alias such
// as "1.2.x-dev" ("1.2."). ok is false for non-numeric branches.
func (Parser) ParseNumericAliasPrefix(branch string) (prefix string, ok bool) {
	m := numericAliasRegex.FindStringSubmatch(branch)
	if m == nil {
		return "", false
	}
	return m[1] + ".", true
}

func segmentOrZero(seg string) string {
	if seg == "" {
		return ".0"
	}
	return seg
}

func withModifiers(normalized, stability, number, dev string) string {
	if stability != "" {
		if strings.EqualFold(stability, "stable") {
			return normalized
		}
		normalized += "-" + expandStability(stability) + strings.TrimLeft(number, ".-")
	}
	if dev != "" {
		normalized += "-dev"
	}
	return normalized
}

func expandStability(stability string) string {
	switch s := strings.ToLower(stability); s {
	case "a":
		return "alpha"
	case "b":
		return "beta"
	case "p", "pl":
		return "patch"
	case "rc":
		return "RC"
	default:
		return s
	}
}

func aliasHint(version, fullVersion string) string {
	source, alias, ok := strings.Cut(fullVersion, " as ")
	if !ok || version == "" {
		return ""
	}
	if strings.TrimLeft(alias, " ") == version {
		return fmt.Sprintf(" in %q, the alias must be an exact version", fullVersion)
	}
	if strings.TrimRight(source, " ") == version {
		return fmt.Sprintf(" in %q, the alias source must be an exact version, if it is a branch name you should prefix it with dev-", fullVersion)
	}
	return ""
}
