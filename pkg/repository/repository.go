// Package repository exposes the versions of an asset package, converted
// into host packages, from a registry Fetcher through a lookup Cache.
package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/event"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/logger"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/version"
)

// DefaultSkipPattern drops build snapshots published as versions.
const DefaultSkipPattern = "(-build)"

// ErrNoMatchingVersion is returned by Find when no version satisfies the
// requested range.
var ErrNoMatchingVersion = errors.New("no matching version")

type Options struct {
	Type    asset.Type
	Fetcher Fetcher
	// Cache is optional; without it every lookup hits the Fetcher.
	Cache *Cache
	// Dispatcher receives the VCS repositories found in dependencies.
	Dispatcher event.Dispatcher
	// SkipPattern is matched against raw versions. Empty means
	// DefaultSkipPattern.
	SkipPattern string
	Convert     asset.ConvertOpts
}

type Repository struct {
	typ        asset.Type
	fetcher    Fetcher
	cache      *Cache
	dispatcher event.Dispatcher
	skip       *regexp.Regexp
	convert    asset.ConvertOpts
	log        logger.Logger
}

func New(opts Options) (*Repository, error) {
	if opts.Type == nil {
		return nil, errors.New("repository: asset type is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("repository: fetcher is required")
	}

	pattern := opts.SkipPattern
	if pattern == "" {
		pattern = DefaultSkipPattern
	}
	skip, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("repository: invalid skip pattern %q: %w", pattern, err)
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = event.Discard
	}

	convert := opts.Convert.WithDefaults()
	return &Repository{
		typ:        opts.Type,
		fetcher:    opts.Fetcher,
		cache:      opts.Cache,
		dispatcher: dispatcher,
		skip:       skip,
		convert:    convert,
		log:        convert.Logger.With("type", opts.Type.Name()),
	}, nil
}

// Packages returns every published version of name, newest first. name may
// be the asset name ("@scope/pkg") or the host name ("npm-asset/scope--pkg").
func (r *Repository) Packages(ctx context.Context, name string) ([]*asset.Package, error) {
	assetName := asset.AssetName(r.typ, asset.FormatComposerName(r.typ, name))

	data, err := r.document(ctx, assetName)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(data) {
		return nil, &InvalidCreateRepositoryError{Name: assetName, Data: data, Err: errors.New("registry document is not valid JSON")}
	}
	versions := gjson.GetBytes(data, "versions")
	if !versions.IsObject() {
		return nil, &InvalidCreateRepositoryError{Name: assetName, Data: data, Err: errors.New("registry document has no versions")}
	}

	var (
		packages []*asset.Package
		repos    []asset.VcsRepository
		seen     = map[asset.VcsRepository]bool{}
	)
	versions.ForEach(func(key, manifest gjson.Result) bool {
		raw := key.String()
		if r.skip.MatchString(raw) {
			r.log.Debug("skipping version", "package", assetName, "version", raw)
			return true
		}

		conv, err := r.typ.Convert(r.convert, []byte(manifest.Raw))
		if err != nil {
			r.log.Warn("skipping invalid manifest", "package", assetName, "version", raw, "err", err)
			return true
		}
		asset.SetVersion(conv.Package, r.convert, raw)
		packages = append(packages, conv.Package)

		for _, repo := range conv.Repositories {
			if !seen[repo] {
				seen[repo] = true
				repos = append(repos, repo)
			}
		}
		return true
	})

	sortNewestFirst(packages)

	if len(repos) > 0 {
		sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })
		if err := r.dispatcher.Dispatch(ctx, &event.VcsRepositoryEvent{Repositories: repos}); err != nil {
			return nil, fmt.Errorf("dispatching %s: %w", event.AddVcsRepositories, err)
		}
	}

	r.log.Debug("loaded packages", "package", assetName, "count", len(packages))
	return packages, nil
}

// Find returns the newest version of name satisfying the npm range r. An
// empty range matches any stable version.
func (r *Repository) Find(ctx context.Context, name, npmRange string) (*asset.Package, error) {
	if npmRange == "" {
		npmRange = "*"
	}
	constraint, err := semver.NewConstraint(npmRange)
	if err != nil {
		return nil, fmt.Errorf("parsing range %q: %w", npmRange, err)
	}

	packages, err := r.Packages(ctx, name)
	if err != nil {
		return nil, err
	}

	for _, pkg := range packages {
		v, err := semver.NewVersion(pkg.RawVersion)
		if err != nil {
			continue
		}
		if constraint.Check(v) {
			return pkg, nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", name, npmRange, ErrNoMatchingVersion)
}

func (r *Repository) document(ctx context.Context, name string) ([]byte, error) {
	fetch := func(ctx context.Context) ([]byte, error) {
		return r.fetcher.Fetch(ctx, name)
	}
	if r.cache == nil {
		return fetch(ctx)
	}
	return r.cache.GetOrFetch(ctx, r.typ.Name()+"/"+name, fetch)
}

// sortNewestFirst orders packages by their registry version using semver
// precedence. Versions semver cannot parse go last, ordered by their
// normalized form.
func sortNewestFirst(packages []*asset.Package) {
	parsed := make(map[*asset.Package]*semver.Version, len(packages))
	for _, pkg := range packages {
		if v, err := semver.NewVersion(pkg.RawVersion); err == nil {
			parsed[pkg] = v
		}
	}

	sort.SliceStable(packages, func(i, j int) bool {
		a, aok := parsed[packages[i]]
		b, bok := parsed[packages[j]]
		switch {
		case aok && bok:
			return a.GreaterThan(b)
		case aok != bok:
			return aok
		default:
			return version.Compare(packages[i].VersionNormalized, packages[j].VersionNormalized) > 0
		}
	})
}
