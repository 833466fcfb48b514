package version

import (
	"strings"
)

// suffix ranks for normalized tokens. A release without suffix sits
// between RC and patch.
const (
	rankDev = iota
	rankAlpha
	rankBeta
	rankRC
	rankRelease
	rankPatch
)

type token struct {
	branch   string
	segments []string
	rank     int
	number   string
	dev      bool
}

// Compare orders two normalized versions, returning -1, 0 or 1. Named
// branches ("dev-feature") sort below every numeric version and compare by
// name among themselves.
func Compare(a, b string) int {
	ta, tb := parseToken(a), parseToken(b)

	switch {
	case ta.branch != "" && tb.branch != "":
		return strings.Compare(ta.branch, tb.branch)
	case ta.branch != "":
		return -1
	case tb.branch != "":
		return 1
	}

	n := max(len(ta.segments), len(tb.segments))
	for i := 0; i < n; i++ {
		if c := cmpDigits(segmentAt(ta.segments, i), segmentAt(tb.segments, i)); c != 0 {
			return c
		}
	}

	if c := cmpInt(ta.rank, tb.rank); c != 0 {
		return c
	}
	if c := cmpDigits(ta.number, tb.number); c != 0 {
		return c
	}

	switch {
	case ta.dev == tb.dev:
		return 0
	case ta.dev:
		return -1
	default:
		return 1
	}
}

func parseToken(s string) token {
	if s == DevSentinel || strings.HasPrefix(s, "dev-") {
		return token{branch: s}
	}

	numeric, suffix, _ := strings.Cut(s, "-")

	t := token{rank: rankRelease}
	for _, seg := range strings.Split(numeric, ".") {
		t.segments = append(t.segments, digitsOrZero(seg))
	}

	if suffix == "" {
		return t
	}

	label, rest, _ := strings.Cut(suffix, "-")
	if rest == "dev" {
		t.dev = true
	}

	if strings.EqualFold(label, "dev") {
		t.rank = rankDev
		return t
	}

	name := strings.TrimRightFunc(label, func(r rune) bool { return isDigit(r) || r == '.' })
	first, _, _ := strings.Cut(strings.TrimLeft(label[len(name):], "."), ".")
	t.number = digitsOrZero(first)

	switch strings.ToLower(name) {
	case "alpha":
		t.rank = rankAlpha
	case "beta":
		t.rank = rankBeta
	case "rc":
		t.rank = rankRC
	case "patch":
		t.rank = rankPatch
	default:
		t.rank = rankDev
	}

	return t
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func segmentAt(segments []string, i int) string {
	if i < len(segments) {
		return segments[i]
	}
	return "0"
}

// digitsOrZero returns seg without leading zeros, or "0" when seg is not a
// run of digits.
func digitsOrZero(seg string) string {
	if seg == "" || strings.IndexFunc(seg, func(r rune) bool { return !isDigit(r) }) >= 0 {
		return "0"
	}
	if seg = strings.TrimLeft(seg, "0"); seg == "" {
		return "0"
	}
	return seg
}

// cmpDigits compares two digit runs of any length numerically.
func cmpDigits(a, b string) int {
	if c := cmpInt(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
