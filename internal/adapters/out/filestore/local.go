// Package filestore stores captured proof artifacts on the local filesystem.
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// LocalStore writes files under a base directory. The name passed to Put is a
// relative path; nested directories are created as needed.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a store rooted at baseDir.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, errs.NewValueIsRequiredError("base directory")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Put writes data under the store's base directory and returns the stored
// file's identity. Names must stay inside the base directory.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) (ports.StoredFile, error) {
	if name == "" {
		return ports.StoredFile{}, errs.NewValueIsRequiredError("file name")
	}

	cleaned := filepath.Clean(name)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return ports.StoredFile{}, errs.NewValueIsInvalidError("file name")
	}

	path := filepath.Join(s.baseDir, cleaned)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ports.StoredFile{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ports.StoredFile{}, err
	}

	return ports.StoredFile{
		ID:   kernel.NewUUID(),
		Path: path,
		Size: int64(len(data)),
	}, nil
}
