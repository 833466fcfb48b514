package asset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/converter"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/logger"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/version"
	"github.com/tidwall/gjson"
)

var (
	personRegex    = regexp.MustCompile(`^\s*([^<(]*?)\s*(?:<([^>]*)>)?\s*(?:\(([^)]*)\))?\s*$`)
	shorthandRegex = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)
	archiveRegex   = regexp.MustCompile(`(?i)\.(?:tar\.gz|tgz|tar|zip)$`)
)

var hostedPrefixes = map[string]string{
	"github:":    "https://github.com/",
	"gitlab:":    "https://gitlab.com/",
	"bitbucket:": "https://bitbucket.org/",
}

// ConvertManifest parses a manifest and fills the fields shared by every
// asset type: name, version, description, keywords, homepage, license and
// both dependency lists. The parsed document is returned so the caller can
// add type specific fields.
func ConvertManifest(t Type, opts ConvertOpts, data []byte) (*Conversion, gjson.Result, error) {
	opts = opts.WithDefaults()

	if !gjson.ValidBytes(data) {
		return nil, gjson.Result{}, fmt.Errorf("invalid %s: not a JSON document", t.Filename())
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, gjson.Result{}, fmt.Errorf("invalid %s: expected a JSON object", t.Filename())
	}

	name := doc.Get("name").String()
	if strings.TrimSpace(name) == "" {
		return nil, gjson.Result{}, fmt.Errorf("invalid %s: missing name", t.Filename())
	}

	pkg := &Package{
		Name:        FormatComposerName(t, name),
		Type:        t.ComposerType(),
		Description: doc.Get("description").String(),
		Keywords:    StringList(doc.Get("keywords")),
		Homepage:    doc.Get("homepage").String(),
		License:     ParseLicense(doc),
	}
	SetVersion(pkg, opts, doc.Get("version").String())

	conv := &Conversion{Package: pkg}
	log := opts.Logger.With("package", pkg.Name)

	var repos []VcsRepository
	pkg.Require, repos = convertDependencies(t, opts, log, doc.Get("dependencies"))
	conv.Repositories = append(conv.Repositories, repos...)
	pkg.RequireDev, repos = convertDependencies(t, opts, log, doc.Get("devDependencies"))
	conv.Repositories = append(conv.Repositories, repos...)

	log.Debug("converted manifest", "version", pkg.VersionNormalized, "stability", pkg.Stability)

	return conv, doc, nil
}

// SetVersion converts raw and stores it on pkg together with its normalized
// form and stability. A missing version becomes the dev sentinel.
func SetVersion(pkg *Package, opts ConvertOpts, raw string) {
	opts = opts.WithDefaults()
	pkg.RawVersion = raw

	converted := version.DevSentinel
	if strings.TrimSpace(raw) != "" {
		converted = opts.Converter.ConvertVersion(raw)
	}

	pkg.Version = converted
	normalized, err := opts.Parser.Normalize(converted, raw)
	if err != nil {
		opts.Logger.Warn("unreadable version, using dev", "package", pkg.Name, "version", raw, "err", err)
		normalized = version.DevSentinel
	}
	pkg.VersionNormalized = normalized
	pkg.Stability = opts.Parser.ParseStability(converted).String()
}

func convertDependencies(t Type, opts ConvertOpts, log logger.Logger, deps gjson.Result) (map[string]string, []VcsRepository) {
	if !deps.IsObject() {
		return nil, nil
	}

	require := make(map[string]string)
	var repos []VcsRepository

	deps.ForEach(func(key, value gjson.Result) bool {
		name := FormatComposerName(t, key.String())
		raw := strings.TrimSpace(value.String())

		if archiveRegex.MatchString(strings.SplitN(raw, "#", 2)[0]) {
			log.Warn("archive dependencies are not supported, accepting any version", "dependency", name, "url", raw)
			require[name] = "*"
			return true
		}

		if url, ref, ok := ParseVcsDependency(raw); ok {
			repos = append(repos, VcsRepository{Type: t.Name() + "-vcs", URL: url, Name: name})
			require[name] = vcsConstraint(opts.Converter, ref)
			return true
		}

		constraint, err := opts.Converter.ConvertRange(raw)
		if err != nil {
			log.Warn("unsupported version range, accepting any version", "dependency", name, "range", raw, "err", err)
			constraint = "*"
		}
		require[name] = constraint
		return true
	})

	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })

	return require, repos
}

// ParseVcsDependency recognizes dependencies declared by repository URL or
// hosted shorthand ("owner/repo#ref", "github:owner/repo"). It returns the
// clone URL and the optional ref after '#'.
func ParseVcsDependency(raw string) (url, ref string, ok bool) {
	base, ref, _ := strings.Cut(strings.TrimSpace(raw), "#")

	for prefix, host := range hostedPrefixes {
		if rest, found := strings.CutPrefix(base, prefix); found {
			return host + strings.TrimSuffix(rest, ".git") + ".git", ref, true
		}
	}

	switch {
	case strings.HasPrefix(base, "git+"):
		return strings.TrimPrefix(base, "git+"), ref, true
	case strings.HasPrefix(base, "git://"),
		strings.HasPrefix(base, "git@"),
		strings.HasPrefix(base, "ssh://"),
		strings.HasPrefix(base, "http://"),
		strings.HasPrefix(base, "https://"):
		return base, ref, true
	case shorthandRegex.MatchString(base):
		return "https://github.com/" + strings.TrimSuffix(base, ".git") + ".git", ref, true
	}

	return "", "", false
}

func vcsConstraint(c *converter.SemverConverter, ref string) string {
	ref = strings.TrimPrefix(ref, "semver:")
	if ref == "" {
		return "*"
	}
	if looksLikeRange(ref) {
		if constraint, err := c.ConvertRange(ref); err == nil {
			return constraint
		}
	}
	return "dev-" + ref
}

func looksLikeRange(ref string) bool {
	if strings.ContainsAny(ref[:1], "0123456789^~<>=*") {
		return true
	}
	return len(ref) > 1 && (ref[0] == 'v' || ref[0] == 'V') && ref[1] >= '0' && ref[1] <= '9'
}

// ParseAuthor reads a person given either as "Name <email> (url)" or as an
// object with name, email and url (or homepage) keys.
func ParseAuthor(v gjson.Result) (Author, bool) {
	if v.IsObject() {
		a := Author{
			Name:     v.Get("name").String(),
			Email:    v.Get("email").String(),
			Homepage: v.Get("url").String(),
		}
		if a.Homepage == "" {
			a.Homepage = v.Get("homepage").String()
		}
		return a, a.Name != ""
	}

	m := personRegex.FindStringSubmatch(v.String())
	if m == nil || m[1] == "" {
		return Author{}, false
	}
	return Author{Name: m[1], Email: m[2], Homepage: m[3]}, true
}

// ParseAuthors reads every person in the given fields, in order.
func ParseAuthors(doc gjson.Result, fields ...string) []Author {
	var authors []Author
	for _, field := range fields {
		v := doc.Get(field)
		values := []gjson.Result{v}
		if v.IsArray() {
			values = v.Array()
		}
		for _, person := range values {
			if a, ok := ParseAuthor(person); ok {
				authors = append(authors, a)
			}
		}
	}
	return authors
}

// ParseLicense reads "license" (a string, an object with a type, or a list
// of either) and the legacy "licenses" list.
func ParseLicense(doc gjson.Result) []string {
	var licenses []string
	for _, field := range []string{"license", "licenses"} {
		v := doc.Get(field)
		values := []gjson.Result{v}
		if v.IsArray() {
			values = v.Array()
		}
		for _, l := range values {
			if l.IsObject() {
				l = l.Get("type")
			}
			if s := strings.TrimSpace(l.String()); s != "" {
				licenses = append(licenses, s)
			}
		}
	}
	return licenses
}

// StringList reads a string or a list of strings.
func StringList(v gjson.Result) []string {
	if !v.IsArray() {
		if s := v.String(); s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range v.Array() {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
