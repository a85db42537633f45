package repository

import (
	"context"

	"github.com/user/domain-tracker/internal/entity"
)

// RowRepository defines the interface for querying one snapshot's domain rows.
type RowRepository interface {
	// Query returns one window of the filtered, sorted rows of a snapshot,
	// plus the total number of rows matching the filter before windowing.
	Query(ctx context.Context, snapshotID int64, filter entity.RowFilter, sort entity.Sort, window entity.Window) ([]entity.DomainRow, int64, error)
	// ListByDomainID returns every row of a snapshot ordered by domain_id
	// ascending. The diff engine joins two of these sequences.
	ListByDomainID(ctx context.Context, snapshotID int64) ([]entity.DomainRow, error)
	// DomainName resolves a domain_id to its name, returning ErrNoDomain
	// when the id is unknown.
	DomainName(ctx context.Context, domainID int64) (string, error)
	// PricesByDomain returns, for one domain_id, its price in every snapshot
	// that contains it, keyed by snapshot id.
	PricesByDomain(ctx context.Context, domainID int64) (map[int64]*float64, error)
}
