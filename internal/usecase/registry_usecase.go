package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
)

// SnapshotRegistry defines the interface for browsing and deleting snapshots.
type SnapshotRegistry interface {
	List(ctx context.Context) ([]entity.Snapshot, error)
	// Delete permanently removes a snapshot and all its rows. Deletion is
	// irreversible; operator confirmation is the caller's responsibility.
	Delete(ctx context.Context, id int64) error
}

type snapshotRegistry struct {
	snapshots repository.SnapshotRepository
}

// NewSnapshotRegistry creates the snapshot registry use case.
func NewSnapshotRegistry(snapshots repository.SnapshotRepository) SnapshotRegistry {
	return &snapshotRegistry{snapshots: snapshots}
}

func (r *snapshotRegistry) List(ctx context.Context) ([]entity.Snapshot, error) {
	snaps, err := r.snapshots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return snaps, nil
}

func (r *snapshotRegistry) Delete(ctx context.Context, id int64) error {
	if err := r.snapshots.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("deleting snapshot %d: %w", id, err)
	}
	slog.Info("Snapshot deleted", "snapshot_id", id)
	return nil
}
