package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
	"github.com/user/domain-tracker/pkg/metrics"
)

// RowPage is one window of a filtered, sorted row query.
type RowPage struct {
	Rows       []entity.DomainRow
	TotalCount int64
	ElapsedMS  float64
}

// RowQuery defines the interface for paginated row queries against one snapshot.
type RowQuery interface {
	Query(ctx context.Context, snapshotID int64, filter entity.RowFilter, sort entity.Sort, window entity.Window) (*RowPage, error)
}

type rowQueryUseCase struct {
	snapshots repository.SnapshotRepository
	rows      repository.RowRepository
}

// NewRowQuery creates the row query engine.
func NewRowQuery(snapshots repository.SnapshotRepository, rows repository.RowRepository) RowQuery {
	return &rowQueryUseCase{snapshots: snapshots, rows: rows}
}

func (uc *rowQueryUseCase) Query(ctx context.Context, snapshotID int64, filter entity.RowFilter, sort entity.Sort, window entity.Window) (*RowPage, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	sort = normalizeSort(sort)

	if err := requireSnapshot(ctx, uc.snapshots, snapshotID); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, total, err := uc.rows.Query(ctx, snapshotID, filter, sort, window)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot %d: %w", snapshotID, err)
	}
	elapsed := time.Since(start)
	metrics.QueryDuration.WithLabelValues("rows").Observe(elapsed.Seconds())

	return &RowPage{
		Rows:       rows,
		TotalCount: total,
		ElapsedMS:  float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}

func validateWindow(w entity.Window) error {
	if w.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d: %w", w.Limit, ErrInvalidArgument)
	}
	if w.Offset < 0 {
		return fmt.Errorf("offset must not be negative, got %d: %w", w.Offset, ErrInvalidArgument)
	}
	return nil
}

func validateFilter(f entity.RowFilter) error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("price range is inverted: %w", ErrInvalidArgument)
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("length range is inverted: %w", ErrInvalidArgument)
	}
	return nil
}

// normalizeSort coerces unknown sort parameters to the defaults instead of
// failing, matching the lenient query surface.
func normalizeSort(s entity.Sort) entity.Sort {
	switch s.Column {
	case entity.SortByDomain, entity.SortByPrice, entity.SortByLength:
	default:
		s.Column = entity.SortByDomain
	}
	switch s.Direction {
	case entity.SortAsc, entity.SortDesc:
	default:
		s.Direction = entity.SortAsc
	}
	return s
}

func requireSnapshot(ctx context.Context, snapshots repository.SnapshotRepository, id int64) error {
	ok, err := snapshots.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking snapshot %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	return nil
}
