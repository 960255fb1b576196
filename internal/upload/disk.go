package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStorage writes uploads into a local directory served under urlPrefix.
type DiskStorage struct {
	dir       string
	urlPrefix string
}

// NewDiskStorage creates dir if needed. Files are reported as urlPrefix/<name>.
func NewDiskStorage(dir, urlPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

func (d *DiskStorage) Dir() string { return d.dir }

func (d *DiskStorage) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	path := filepath.Join(d.dir, filepath.Base(name))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return d.urlPrefix + "/" + name, nil
}
