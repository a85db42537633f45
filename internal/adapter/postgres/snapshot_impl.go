package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
)

// SnapshotRepoImpl provides a concrete implementation for the
// SnapshotRepository interface using PostgreSQL.
type SnapshotRepoImpl struct {
	db *pgxpool.Pool
}

// NewSnapshotRepo creates a new instance of SnapshotRepoImpl.
func NewSnapshotRepo(db *pgxpool.Pool) *SnapshotRepoImpl {
	return &SnapshotRepoImpl{db: db}
}

// List returns all snapshots, most recent first.
func (r *SnapshotRepoImpl) List(ctx context.Context) ([]entity.Snapshot, error) {
	query := `
		SELECT id, name, created_at, row_count
		FROM snapshots
		ORDER BY id DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []entity.Snapshot
	for rows.Next() {
		var s entity.Snapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.RowCount); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// Exists reports whether a snapshot with the given id exists.
func (r *SnapshotRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM snapshots WHERE id = $1);`, id).Scan(&exists)
	return exists, err
}

// Delete removes a snapshot and its rows in one transaction, so a concurrent
// read sees either the whole snapshot or NotFound, never partial data.
func (r *SnapshotRepoImpl) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM snapshot_data WHERE snapshot_id = $1;`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM snapshots WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNoSnapshot
	}
	return tx.Commit(ctx)
}

// Commit atomically materializes one session's captured rows as a new
// snapshot. Domain identities are assigned through the domains table: a name
// already known keeps its id, a new name gets one.
func (r *SnapshotRepoImpl) Commit(ctx context.Context, name string, rows []entity.CapturedDomain) (entity.Snapshot, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}
	defer tx.Rollback(ctx)

	var snap entity.Snapshot
	snap.Name = name
	err = tx.QueryRow(ctx,
		`INSERT INTO snapshots (name) VALUES ($1) RETURNING id, created_at;`, name,
	).Scan(&snap.ID, &snap.CreatedAt)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("creating snapshot %q: %w", name, err)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(
			`INSERT INTO domains (name, length) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;`,
			row.Name, row.Length,
		)
		batch.Queue(
			`INSERT INTO snapshot_data (snapshot_id, domain_id, domain, price_usd, length)
			 SELECT $1, d.id, d.name, $3, d.length FROM domains d WHERE d.name = $2;`,
			snap.ID, row.Name, row.PriceUSD,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return entity.Snapshot{}, fmt.Errorf("writing snapshot rows: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return entity.Snapshot{}, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE snapshots
		 SET row_count = (SELECT count(*) FROM snapshot_data WHERE snapshot_id = $1)
		 WHERE id = $1
		 RETURNING row_count;`, snap.ID,
	).Scan(&snap.RowCount)
	if err != nil {
		return entity.Snapshot{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.Snapshot{}, err
	}
	return snap, nil
}
