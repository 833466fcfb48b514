package version

import (
	"fmt"
	"strings"
)

// Stability is the coarse maturity of a version. The zero value is
// StabilityDev, and values are ordered from least to most stable.
type Stability int

const (
	StabilityDev Stability = iota
	StabilityAlpha
	StabilityBeta
	StabilityRC
	StabilityStable
)

var stabilityNames = [...]string{
	StabilityDev:    "dev",
	StabilityAlpha:  "alpha",
	StabilityBeta:   "beta",
	StabilityRC:     "RC",
	StabilityStable: "stable",
}

func (s Stability) String() string {
	if s < StabilityDev || s > StabilityStable {
		return fmt.Sprintf("Stability(%d)", int(s))
	}
	return stabilityNames[s]
}

// Less reports whether s is less stable than other.
func (s Stability) Less(other Stability) bool {
	return s < other
}

// Stabilities returns every stability from least to most stable.
func Stabilities() []Stability {
	return []Stability{StabilityDev, StabilityAlpha, StabilityBeta, StabilityRC, StabilityStable}
}

// ParseStabilityName parses a stability name such as "beta" or "RC".
// Matching is case-insensitive.
func ParseStabilityName(name string) (Stability, error) {
	for _, s := range Stabilities() {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return StabilityDev, fmt.Errorf("unknown stability %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Stability) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stability) UnmarshalText(text []byte) error {
	parsed, err := ParseStabilityName(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
