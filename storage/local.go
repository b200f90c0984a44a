package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images to a directory that the router serves under URLPrefix.
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir %s: %w", root, err)
	}
	return &LocalStore{
		root:      root,
		urlPrefix: strings.TrimRight(publicURL, "/") + "/uploads",
	}, nil
}

func (s *LocalStore) Driver() string { return DriverLocal }

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	name := objectName(filename)
	full := filepath.Join(s.root, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	return s.urlPrefix + "/" + name, nil
}

func (s *LocalStore) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("storage/local: %s is not a local upload", url)
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: remove %s: %w", name, err)
	}
	return nil
}
