package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrPackageNotFound is returned by a Fetcher that has no document for the
// requested package.
var ErrPackageNotFound = errors.New("package not found")

// Fetcher retrieves the registry document of a package: a JSON object whose
// "versions" member maps each published version to its manifest.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc func(ctx context.Context, name string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// DirFetcher reads registry documents from <Dir>/<name>.json. Scoped names
// resolve to <Dir>/@scope/name.json.
type DirFetcher struct {
	Dir string
}

func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{Dir: dir}
}

func (f *DirFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid package name %q", name)
	}

	path := filepath.Join(f.Dir, filepath.FromSlash(name)+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
