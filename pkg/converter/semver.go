// Package converter translates npm and bower semver strings into the
// version and constraint grammar of the host package manager.
package converter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

const (
	anyVersion    = "*"
	latestVersion = "default || *"
)

// SemverConverter converts registry versions and ranges. The zero value is
// ready to use.
type SemverConverter struct{}

// NewSemverConverter returns a converter for npm-style semver strings.
func NewSemverConverter() *SemverConverter {
	return &SemverConverter{}
}

// ConvertVersion rewrites a registry version so that the host parser
// understands its prerelease part: "1.0.0-beta.1" becomes "1.0.0-beta1",
// "1.0.0-1" becomes "1.0.0-patch1". Strings that are not versions are
// returned trimmed and otherwise unchanged.
func (c *SemverConverter) ConvertVersion(v string) string {
	v = strings.TrimSpace(strings.ReplaceAll(v, "–", "-"))
	switch v {
	case "":
		return anyVersion
	case "latest":
		return latestVersion
	}

	v = strings.TrimLeft(v, "= ")
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && isDigit(rune(v[1])) {
		v = v[1:]
	}
	if v == "" || !isDigit(rune(v[0])) {
		return v
	}

	v, _, _ = strings.Cut(v, "+")
	core, pre, found := strings.Cut(v, "-")
	if !found || pre == "" {
		return core
	}

	modifier := convertPrerelease(pre)
	if modifier == "" {
		return core
	}
	return core + "-" + modifier
}

// ConvertRange rewrites an npm range ("^1.2.3 || >=2.0.0 <3") into a host
// constraint (">=1.2.3,<2.0.0 || >=2.0.0,<3").
func (c *SemverConverter) ConvertRange(r string) (string, error) {
	r = strings.TrimSpace(strings.ReplaceAll(r, "–", "-"))
	switch r {
	case "", "*", "x", "X":
		return anyVersion, nil
	case "latest":
		return latestVersion, nil
	}

	alternatives := strings.Split(r, "||")
	converted := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		set, err := c.convertSet(strings.TrimSpace(alt))
		if err != nil {
			return "", fmt.Errorf("converting range %q: %w", r, err)
		}
		converted = append(converted, set)
	}

	return strings.Join(converted, " || "), nil
}

// ValidRange reports whether r is a range the npm grammar accepts.
func ValidRange(r string) bool {
	_, err := semver.NewConstraint(r)
	return err == nil
}

func (c *SemverConverter) convertSet(set string) (string, error) {
	if set == "" || set == anyVersion {
		return anyVersion, nil
	}

	if lower, upper, ok := strings.Cut(set, " - "); ok {
		return ">=" + c.ConvertVersion(lower) + ",<=" + c.ConvertVersion(upper), nil
	}

	comparators := joinOperators(strings.Fields(set))
	out := make([]string, 0, len(comparators))
	for _, comp := range comparators {
		converted, err := c.convertComparator(comp)
		if err != nil {
			return "", err
		}
		out = append(out, converted)
	}

	return strings.Join(out, ","), nil
}

func (c *SemverConverter) convertComparator(comp string) (string, error) {
	switch {
	case strings.HasPrefix(comp, "^"):
		return caretRange(strings.TrimPrefix(comp, "^"))
	case strings.HasPrefix(comp, "~>"):
		return tildeRange(strings.TrimPrefix(comp, "~>"))
	case strings.HasPrefix(comp, "~"):
		return tildeRange(strings.TrimPrefix(comp, "~"))
	}

	for _, op := range []string{">=", "<=", "!=", ">", "<", "="} {
		if rest, ok := strings.CutPrefix(comp, op); ok {
			if op == "=" {
				op = ""
			}
			return op + c.ConvertVersion(rest), nil
		}
	}

	if wildcard, ok := xRange(comp); ok {
		return wildcard, nil
	}

	return c.ConvertVersion(comp), nil
}

// joinOperators merges a bare operator field with the version after it, so
// that ">= 1.2.3" is read as one comparator.
func joinOperators(fields []string) []string {
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if isOperator(f) && i+1 < len(fields) {
			f += fields[i+1]
			i++
		}
		out = append(out, f)
	}
	return out
}

func isOperator(s string) bool {
	switch s {
	case ">=", "<=", ">", "<", "=", "!=", "^", "~", "~>":
		return true
	}
	return false
}

func caretRange(raw string) (string, error) {
	v, parts, err := parseBound(raw)
	if err != nil {
		return "", err
	}

	var upper *semver.Version
	switch {
	case v.Major() > 0 || parts == 1:
		upper = semver.New(v.Major()+1, 0, 0, "", "")
	case v.Minor() > 0 || parts == 2:
		upper = semver.New(0, v.Minor()+1, 0, "", "")
	default:
		upper = semver.New(0, 0, v.Patch()+1, "", "")
	}

	return bounds(v, upper), nil
}

func tildeRange(raw string) (string, error) {
	v, parts, err := parseBound(raw)
	if err != nil {
		return "", err
	}

	upper := semver.New(v.Major(), v.Minor()+1, 0, "", "")
	if parts == 1 {
		upper = semver.New(v.Major()+1, 0, 0, "", "")
	}

	return bounds(v, upper), nil
}

func bounds(lower, upper *semver.Version) string {
	c := NewSemverConverter()
	return ">=" + c.ConvertVersion(lower.String()) + ",<" + upper.String()
}

// parseBound parses the version of a caret or tilde comparator and reports
// how many numeric parts were given before any wildcard.
func parseBound(raw string) (*semver.Version, int, error) {
	raw = strings.TrimSpace(raw)
	core, rest := raw, ""
	if i := strings.IndexAny(raw, "-+"); i >= 0 {
		core, rest = raw[:i], raw[i:]
	}

	segments := strings.Split(strings.TrimLeft(core, "vV="), ".")
	parts := 0
	for _, seg := range segments {
		if isWildcard(seg) {
			break
		}
		parts++
	}
	if parts == 0 {
		return nil, 0, fmt.Errorf("invalid bound %q", raw)
	}

	v, err := semver.NewVersion(strings.Join(segments[:parts], ".") + rest)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid bound %q: %w", raw, err)
	}

	return v, parts, nil
}

// xRange converts "1.2.x" into "1.2.*". ok is false when comp has no
// wildcard segment.
func xRange(comp string) (string, bool) {
	segments := strings.Split(strings.TrimLeft(comp, "vV"), ".")
	for i, seg := range segments {
		if isWildcard(seg) {
			if i == 0 {
				return anyVersion, true
			}
			return strings.Join(segments[:i], ".") + ".*", true
		}
	}
	return "", false
}

func isWildcard(seg string) bool {
	return seg == "x" || seg == "X" || seg == "*"
}

// convertPrerelease maps npm prerelease identifiers onto host stability
// modifiers. An empty result means the prerelease is a stable marker.
func convertPrerelease(pre string) string {
	idents := strings.FieldsFunc(pre, func(r rune) bool { return r == '.' || r == '-' })

	var label string
	var numbers []string
	for _, ident := range idents {
		letters := strings.TrimRightFunc(ident, isDigit)
		digits := ident[len(letters):]
		if letters != "" && strings.IndexFunc(letters, unicode.IsDigit) >= 0 {
			continue
		}

		switch {
		case letters == "" && label == "":
			label = "patch"
			numbers = append(numbers, digits)
		case letters == "":
			numbers = append(numbers, digits)
		case label == "":
			label = letters
			if digits != "" {
				numbers = append(numbers, digits)
			}
		}
	}

	switch strings.ToLower(label) {
	case "alpha", "a":
		label = "alpha"
	case "beta", "b":
		label = "beta"
	case "rc", "c", "pre", "preview":
		label = "RC"
	case "patch", "pl", "p", "post":
		label = "patch"
	case "stable":
		return ""
	default:
		return "dev"
	}

	return label + strings.Join(numbers, ".")
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
