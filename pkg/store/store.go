package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm     = 0o755
	filePerm    = 0o644
	hashPrefix  = "sha256:"
	docExt      = ".json"
	DefaultRoot = ".asset-plugin/cache"
)

// ErrNotFound is returned by Get for a document that was never stored.
var ErrNotFound = errors.New("document not found")

type Store interface {
	// Path returns the file path of the document at segments. Does not
	// create or verify the path.
	Path(segments ...string) string
	// Has reports whether a document is stored at segments.
	Has(segments ...string) (bool, error)
	// Put writes the document, creating parent directories. The write
	// replaces any previous document atomically.
	Put(data []byte, segments ...string) error
	// Get reads the document at segments. A missing document yields an
	// error matching ErrNotFound.
	Get(segments ...string) ([]byte, error)
	// Remove deletes the document. Removing a missing document is not an
	// error.
	Remove(segments ...string) error
	// Checksum returns "sha256:<hex>" over the document contents.
	Checksum(segments ...string) (string, error)
}

func New(root string) Store {
	return &store{root: root}
}

// Default returns a store rooted at ~/.asset-plugin/cache.
func Default() (Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determining home directory: %w", err)
	}
	return &store{root: filepath.Join(home, DefaultRoot)}, nil
}

type store struct {
	root string
}

var _ Store = &store{}

func (s *store) Path(segments ...string) string {
	clean := make([]string, 0, len(segments)+1)
	clean = append(clean, s.root)
	for _, seg := range segments {
		clean = append(clean, sanitize(seg))
	}
	return filepath.Join(clean...) + docExt
}

func (s *store) Has(segments ...string) (bool, error) {
	_, err := os.Stat(s.Path(segments...))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *store) Put(data []byte, segments ...string) error {
	path := s.Path(segments...)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (s *store) Get(segments ...string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(segments...))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", strings.Join(segments, "/"), ErrNotFound)
	}
	return data, err
}

func (s *store) Remove(segments ...string) error {
	err := os.Remove(s.Path(segments...))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *store) Checksum(segments ...string) (string, error) {
	data, err := s.Get(segments...)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hashPrefix + hex.EncodeToString(sum[:]), nil
}

// sanitize keeps a segment inside its parent directory.
func sanitize(seg string) string {
	seg = strings.NewReplacer("/", "_", `\`, "_").Replace(seg)
	if seg == "" || seg == "." || seg == ".." {
		return "_" + seg
	}
	return seg
}
