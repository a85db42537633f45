package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
	"github.com/user/domain-tracker/pkg/metrics"
)

// DiffPage is one window of a pairwise snapshot comparison.
type DiffPage struct {
	Rows       []entity.DiffRow
	TotalCount int64
	ElapsedMS  float64
}

// Diff defines the interface for comparing two snapshots.
type Diff interface {
	// Compare classifies every domain present in snapshot A or B, narrows
	// the result to diffType, and returns one window of it ordered by
	// domain_id ascending.
	Compare(ctx context.Context, snapshotA, snapshotB int64, diffType entity.DiffType, window entity.Window) (*DiffPage, error)
}

type diffUseCase struct {
	snapshots repository.SnapshotRepository
	rows      repository.RowRepository
}

// NewDiff creates the diff engine.
func NewDiff(snapshots repository.SnapshotRepository, rows repository.RowRepository) Diff {
	return &diffUseCase{snapshots: snapshots, rows: rows}
}

func (uc *diffUseCase) Compare(ctx context.Context, snapshotA, snapshotB int64, diffType entity.DiffType, window entity.Window) (*DiffPage, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if !diffType.Valid() {
		return nil, fmt.Errorf("unknown diff type %q: %w", diffType, ErrInvalidArgument)
	}
	if err := requireSnapshot(ctx, uc.snapshots, snapshotA); err != nil {
		return nil, err
	}
	if err := requireSnapshot(ctx, uc.snapshots, snapshotB); err != nil {
		return nil, err
	}

	start := time.Now()
	rowsA, err := uc.rows.ListByDomainID(ctx, snapshotA)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %d: %w", snapshotA, err)
	}
	rowsB, err := uc.rows.ListByDomainID(ctx, snapshotB)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %d: %w", snapshotB, err)
	}

	diff := mergeDiff(rowsA, rowsB, diffType)
	elapsed := time.Since(start)
	metrics.QueryDuration.WithLabelValues("diff").Observe(elapsed.Seconds())

	total := int64(len(diff))
	return &DiffPage{
		Rows:       windowDiff(diff, window),
		TotalCount: total,
		ElapsedMS:  float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}

// mergeDiff walks two id-sorted row sequences in lockstep, classifying every
// domain_id present in either. The merge keeps the full-outer-join semantics
// independent of the storage engine's join operator.
func mergeDiff(rowsA, rowsB []entity.DomainRow, diffType entity.DiffType) []entity.DiffRow {
	out := make([]entity.DiffRow, 0, max(len(rowsA), len(rowsB)))
	i, j := 0, 0
	for i < len(rowsA) || j < len(rowsB) {
		var row entity.DiffRow
		switch {
		case j >= len(rowsB) || (i < len(rowsA) && rowsA[i].DomainID < rowsB[j].DomainID):
			a := rowsA[i]
			row = entity.DiffRow{DomainID: a.DomainID, Domain: a.Domain, Status: entity.DiffDeleted, OldPrice: a.PriceUSD}
			i++
		case i >= len(rowsA) || rowsB[j].DomainID < rowsA[i].DomainID:
			b := rowsB[j]
			row = entity.DiffRow{DomainID: b.DomainID, Domain: b.Domain, Status: entity.DiffNew, NewPrice: b.PriceUSD}
			j++
		default:
			a, b := rowsA[i], rowsB[j]
			status := entity.DiffUnchanged
			if !priceEqual(a.PriceUSD, b.PriceUSD) {
				status = entity.DiffChanged
			}
			row = entity.DiffRow{DomainID: a.DomainID, Domain: a.Domain, Status: status, OldPrice: a.PriceUSD, NewPrice: b.PriceUSD}
			i++
			j++
		}
		if matchesDiffType(row.Status, diffType) {
			out = append(out, row)
		}
	}
	return out
}

func matchesDiffType(status entity.DiffStatus, diffType entity.DiffType) bool {
	switch diffType {
	case entity.DiffOnlyNew:
		return status == entity.DiffNew
	case entity.DiffOnlyDeleted:
		return status == entity.DiffDeleted
	case entity.DiffOnlyChanged:
		return status == entity.DiffChanged
	default:
		return true
	}
}

func priceEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func windowDiff(rows []entity.DiffRow, w entity.Window) []entity.DiffRow {
	if w.Offset >= len(rows) {
		return []entity.DiffRow{}
	}
	end := w.Offset + w.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[w.Offset:end]
}
