package ports

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
)

// StoredFile describes a blob persisted by a FileStore.
type StoredFile struct {
	ID   kernel.UUID
	Path string
	Size int64
}

// FileStore persists captured binary artifacts such as signature images.
type FileStore interface {
	// Put stores the blob under the given name and returns its descriptor.
	Put(ctx context.Context, name string, data []byte) (StoredFile, error)
}
