package version

import "testing"

func TestParseStabilityName(t *testing.T) {
	tests := map[string]struct {
		name    string
		want    Stability
		wantErr bool
	}{
		"dev":        {name: "dev", want: StabilityDev},
		"upper rc":   {name: "RC", want: StabilityRC},
		"lower rc":   {name: "rc", want: StabilityRC},
		"mixed case": {name: "Beta", want: StabilityBeta},
		"stable":     {name: "stable", want: StabilityStable},
		"unknown":    {name: "gamma", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseStabilityName(tc.name)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseStabilityName(%q) error = %v, wantErr = %v", tc.name, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseStabilityName(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestStabilityString(t *testing.T) {
	want := []string{"dev", "alpha", "beta", "RC", "stable"}
	for i, s := range Stabilities() {
		if s.String() != want[i] {
			t.Errorf("Stabilities()[%d].String() = %q, want %q", i, s.String(), want[i])
		}
		if i > 0 && !Stabilities()[i-1].Less(s) {
			t.Errorf("%v is not less than %v", Stabilities()[i-1], s)
		}
	}

	if got := Stability(42).String(); got != "Stability(42)" {
		t.Errorf("String() = %q for out of range value", got)
	}
}

func TestStabilityText(t *testing.T) {
	var s Stability
	if err := s.UnmarshalText([]byte("alpha")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if s != StabilityAlpha {
		t.Errorf("UnmarshalText() = %v, want alpha", s)
	}
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) expected error")
	}

	text, err := StabilityRC.MarshalText()
	if err != nil || string(text) != "RC" {
		t.Errorf("MarshalText() = (%q, %v), want RC", text, err)
	}
}
