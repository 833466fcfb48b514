package version

import (
	"errors"
	"strings"
	"testing"
)

func TestAssetParserNormalize(t *testing.T) {
	tests := map[string]struct {
		version string
		full    string
		want    string
	}{
		"semver":                {version: "1.2.3", want: "1.2.3.0"},
		"prerelease":            {version: "1.0.0-beta.2", want: "1.0.0.0-beta2"},
		"unparseable":           {version: "not-a-version!!", want: DevSentinel},
		"empty":                 {version: "", want: DevSentinel},
		"sentinel is stable":    {version: "dev", want: DevSentinel},
		"full version advisory": {version: "1.0", full: "1.0+build5", want: "1.0.0.0"},
		"branch":                {version: "master", want: BranchSentinel},
		"npm dist tag":          {version: "latest", want: DevSentinel},
		"named dev suffix":      {version: "feature-dev", want: DevSentinel},
		"punctuation dev":       {version: "!!!dev", want: DevSentinel},
		"spaced dev suffix":     {version: "foo bar.dev", want: DevSentinel},
		"invalid utf-8":         {version: "\xff\xfe", want: DevSentinel},
	}

	p := NewAssetParser(nil)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := p.Normalize(tc.version, tc.full)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v, want nil", tc.version, err)
			}
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.version, got, tc.want)
			}
		})
	}
}

func TestAssetParserNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"1.2.3", "0.0.1", "10.20.30", "1.0.0-rc.1", "garbage!"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestAssetParserParseStability(t *testing.T) {
	tests := map[string]struct {
		version string
		want    Stability
	}{
		"stable":             {version: "1.0.0", want: StabilityStable},
		"alpha":              {version: "1.0.0-alpha", want: StabilityAlpha},
		"beta":               {version: "1.0.0-beta", want: StabilityBeta},
		"rc":                 {version: "1.0.0-RC1", want: StabilityRC},
		"patch":              {version: "1.0.0-patch", want: StabilityDev},
		"numbered patch":     {version: "1.0.0-patch2", want: StabilityDev},
		"beta then patch":    {version: "2.0.0-beta-patch", want: StabilityDev},
		"normalized patch":   {version: "1.0.0.0-patch1", want: StabilityDev},
		"patch anywhere":     {version: "foo-patch-bar", want: StabilityDev},
		"pl is not a marker": {version: "1.0.0-pl1", want: StabilityStable},
		"garbage":            {version: "not-a-version!!", want: StabilityStable},
	}

	p := NewAssetParser(nil)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := p.ParseStability(tc.version); got != tc.want {
				t.Errorf("ParseStability(%q) = %v, want %v", tc.version, got, tc.want)
			}
		})
	}
}

func TestAssetParserStabilitiesDistinct(t *testing.T) {
	inputs := []string{"1.0.0-alpha", "1.0.0-beta", "1.0.0-RC1", "1.0.0"}
	want := []Stability{StabilityAlpha, StabilityBeta, StabilityRC, StabilityStable}

	for i, in := range inputs {
		got := ParseStability(in)
		if got != want[i] {
			t.Fatalf("ParseStability(%q) = %v, want %v", in, got, want[i])
		}
		if i > 0 && !ParseStability(inputs[i-1]).Less(got) {
			t.Errorf("expected %v < %v", ParseStability(inputs[i-1]), got)
		}
	}
}

type failingNormalizer struct {
	stability Stability
}

func (f failingNormalizer) Normalize(version, _ string) (string, error) {
	return "", errors.New("boom")
}

func (f failingNormalizer) ParseStability(string) Stability {
	return f.stability
}

func TestAssetParserAbsorbsDelegateErrors(t *testing.T) {
	p := NewAssetParser(failingNormalizer{stability: StabilityRC})

	got, err := p.Normalize("1.0.0", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if got != DevSentinel {
		t.Errorf("Normalize() = %q, want %q", got, DevSentinel)
	}
	if s := p.ParseStability("1.0.0-RC1-patch"); s != StabilityDev {
		t.Errorf("ParseStability() = %v, want dev", s)
	}
	if s := p.ParseStability("1.0.0-RC1"); s != StabilityRC {
		t.Errorf("ParseStability() = %v, want delegate's RC", s)
	}
}

func TestAssetParserTotality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\x00\xff\xfe",
		"@@@",
		"1.0.0-",
		"v",
		"-patch",
		"dev-",
		"1.0 as",
		strings.Repeat("9", 4096),
		strings.Repeat("1.", 2048) + "0",
		strings.Repeat("a-dev", 500),
	}

	p := NewAssetParser(nil)
	for _, in := range inputs {
		got, err := p.Normalize(in, in)
		if err != nil {
			t.Errorf("Normalize(%q) error = %v", in, err)
		}
		if got == "" {
			t.Errorf("Normalize(%q) returned an empty version", in)
		}
		s := p.ParseStability(in)
		if s < StabilityDev || s > StabilityStable {
			t.Errorf("ParseStability(%q) = %v, outside the known set", in, s)
		}
	}
}

func FuzzAssetParser(f *testing.F) {
	for _, seed := range []string{"1.0.0", "2.0.0-beta-patch", "not-a-version!!", "dev-master", ""} {
		f.Add(seed)
	}

	p := NewAssetParser(nil)
	f.Fuzz(func(t *testing.T, in string) {
		got, err := p.Normalize(in, "")
		if err != nil || got == "" {
			t.Fatalf("Normalize(%q) = (%q, %v)", in, got, err)
		}
		if strings.Contains(in, PatchMarker) && p.ParseStability(in) != StabilityDev {
			t.Fatalf("ParseStability(%q) is not dev", in)
		}
	})
}
