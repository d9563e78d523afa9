package blobstore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local writes uploads to a directory served by the HTTP layer.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal returns a store writing into dir; baseURL is the URL prefix
// the directory is served under (e.g. "/public/uploads").
func NewLocal(dir, baseURL string) *Local {
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Put writes the file to disk, creating parent directories as needed.
func (l *Local) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	dst := filepath.Join(l.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.baseURL + "/" + path.Clean(name), nil
}

// Delete removes the file; a missing file is ignored.
func (l *Local) Delete(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ Store = (*Local)(nil)
