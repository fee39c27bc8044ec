package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PublicUploadPrefix is the URL prefix the HTTP layer serves uploads under.
const PublicUploadPrefix = "/uploads/"

// DiskStore writes uploads to a public directory on the local filesystem.
// Suitable only for deployments with a persistent writable disk.
type DiskStore struct {
	basePath string
}

// NewDiskStore creates the uploads directory if missing.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("uploads base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{basePath: basePath}, nil
}

// BasePath returns the directory files are written into.
func (d *DiskStore) BasePath() string {
	return d.basePath
}

// Upload stores the file under a generated unique name and returns its
// root-relative public path.
func (d *DiskStore) Upload(_ context.Context, filename, _ string, _ int64, r io.Reader) (string, error) {
	name := newObjectName(filename)
	target := filepath.Join(d.basePath, name)
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return PublicUploadPrefix + name, nil
}
