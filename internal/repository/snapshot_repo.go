package repository

import (
	"context"

	"github.com/user/domain-tracker/internal/entity"
)

// SnapshotRepository defines the interface for the snapshot registry store.
type SnapshotRepository interface {
	// List returns all snapshots, most recent first.
	List(ctx context.Context) ([]entity.Snapshot, error)
	// Exists reports whether a snapshot with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
	// Delete permanently removes a snapshot and its rows. It returns
	// ErrNoSnapshot when the id is unknown.
	Delete(ctx context.Context, id int64) error
	// Commit atomically creates a new snapshot from a set of captured
	// domains, assigning each its stable domain identity.
	Commit(ctx context.Context, name string, rows []entity.CapturedDomain) (entity.Snapshot, error)
}
