package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps objects under base/<bucket>/<path> and maps them to
// baseURL/<bucket>/<path>. The directory is expected to be served statically.
type DiskStore struct {
	base    string
	baseURL string
}

func NewDiskStore(base, baseURL string) *DiskStore {
	return &DiskStore{base: base, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStore) Upload(bucket, path string, data []byte, upsert bool) (string, error) {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return "", err
	}

	if !upsert {
		if _, err := os.Stat(full); err == nil {
			return "", ErrObjectExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.PublicURL(bucket, path), nil
}

func (s *DiskStore) PublicURL(bucket, path string) string {
	return s.baseURL + "/" + bucket + "/" + path
}

func (s *DiskStore) RemovePrefix(bucket, prefix string) error {
	full, err := s.resolve(bucket, prefix)
	if err != nil {
		return err
	}
	return os.RemoveAll(full)
}

// resolve joins and validates an object path, rejecting traversal outside
// the bucket root.
func (s *DiskStore) resolve(bucket, path string) (string, error) {
	if bucket == "" || path == "" {
		return "", ErrInvalidPath
	}
	root := filepath.Join(s.base, bucket)
	full := filepath.Join(root, filepath.FromSlash(path))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
