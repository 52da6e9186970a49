package repository

import (
	"context"
	"errors"

	"empire-service/internal/repository/model"
)

// ErrVersionConflict is returned by SaveWorld when the stored document no
// longer carries the expected version; the caller re-reads and retries.
var ErrVersionConflict = errors.New("world version conflict")

// Repository persists the world snapshot as a single versioned document.
type Repository interface {
	// GetWorld returns the latest snapshot, seeding an empty world on
	// first read.
	GetWorld(ctx context.Context) (*model.World, error)

	// SaveWorld replaces the snapshot if and only if the stored version
	// still equals expectedVersion, then bumps the version.
	SaveWorld(ctx context.Context, world *model.World, expectedVersion uint64) error
}
