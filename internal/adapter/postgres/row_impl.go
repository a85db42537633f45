package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
)

const (
	snapshotDataTable = "snapshot_data"

	colSnapshotID = "snapshot_id"
	colDomainID   = "domain_id"
	colDomain     = "domain"
	colPriceUSD   = "price_usd"
	colLength     = "length"
)

var dialect = goqu.Dialect("postgres")

// RowRepoImpl provides a concrete implementation for the RowRepository
// interface using PostgreSQL, with goqu building the dynamic filter queries.
type RowRepoImpl struct {
	db *pgxpool.Pool
}

// NewRowRepo creates a new instance of RowRepoImpl.
func NewRowRepo(db *pgxpool.Pool) *RowRepoImpl {
	return &RowRepoImpl{db: db}
}

// Query returns one window of a snapshot's rows under filter and sort, plus
// the pre-window match count.
func (r *RowRepoImpl) Query(ctx context.Context, snapshotID int64, filter entity.RowFilter, sort entity.Sort, window entity.Window) ([]entity.DomainRow, int64, error) {
	countSQL, err := buildRowCountQuery(snapshotID, filter)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, err := buildRowPageQuery(snapshotID, filter, sort, window)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, pageSQL)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanDomainRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByDomainID returns every row of a snapshot ordered by domain_id, the
// shape the diff engine's merge expects.
func (r *RowRepoImpl) ListByDomainID(ctx context.Context, snapshotID int64) ([]entity.DomainRow, error) {
	query := `
		SELECT domain_id, domain, price_usd, length
		FROM snapshot_data
		WHERE snapshot_id = $1
		ORDER BY domain_id ASC;
	`
	rows, err := r.db.Query(ctx, query, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDomainRows(rows)
}

// DomainName resolves a domain_id against the identity table.
func (r *RowRepoImpl) DomainName(ctx context.Context, domainID int64) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM domains WHERE id = $1;`, domainID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNoDomain
	}
	return name, err
}

// PricesByDomain returns the domain's price in every snapshot containing it.
func (r *RowRepoImpl) PricesByDomain(ctx context.Context, domainID int64) (map[int64]*float64, error) {
	query := `
		SELECT snapshot_id, price_usd
		FROM snapshot_data
		WHERE domain_id = $1;
	`
	rows, err := r.db.Query(ctx, query, domainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int64]*float64)
	for rows.Next() {
		var snapshotID int64
		var price *float64
		if err := rows.Scan(&snapshotID, &price); err != nil {
			return nil, err
		}
		prices[snapshotID] = price
	}
	return prices, rows.Err()
}

func scanDomainRows(rows pgx.Rows) ([]entity.DomainRow, error) {
	var out []entity.DomainRow
	for rows.Next() {
		var dr entity.DomainRow
		if err := rows.Scan(&dr.DomainID, &dr.Domain, &dr.PriceUSD, &dr.Length); err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	return out, rows.Err()
}

// rowFilterExpressions translates one RowFilter into a WHERE conjunction.
// Rows with a NULL price never match a price bound; SQL comparison semantics
// already guarantee that.
func rowFilterExpressions(snapshotID int64, f entity.RowFilter) []goqu.Expression {
	exprs := []goqu.Expression{goqu.C(colSnapshotID).Eq(snapshotID)}

	if f.Search != "" {
		switch f.SearchMode {
		case entity.SearchPrefix:
			exprs = append(exprs, goqu.C(colDomain).ILike(f.Search+"%"))
		case entity.SearchExact:
			exprs = append(exprs, goqu.C(colDomain).Eq(strings.ToLower(f.Search)))
		default:
			exprs = append(exprs, goqu.C(colDomain).ILike("%"+f.Search+"%"))
		}
	}
	if f.MinPrice != nil {
		exprs = append(exprs, goqu.C(colPriceUSD).Gte(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		exprs = append(exprs, goqu.C(colPriceUSD).Lte(*f.MaxPrice))
	}
	if f.MinLength != nil {
		exprs = append(exprs, goqu.C(colLength).Gte(*f.MinLength))
	}
	if f.MaxLength != nil {
		exprs = append(exprs, goqu.C(colLength).Lte(*f.MaxLength))
	}
	return exprs
}

func buildRowCountQuery(snapshotID int64, filter entity.RowFilter) (string, error) {
	sql, _, err := dialect.
		From(snapshotDataTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(rowFilterExpressions(snapshotID, filter)...).
		ToSQL()
	return sql, err
}

func buildRowPageQuery(snapshotID int64, filter entity.RowFilter, sort entity.Sort, window entity.Window) (string, error) {
	order := goqu.I(string(sort.Column)).Asc()
	if sort.Direction == entity.SortDesc {
		order = goqu.I(string(sort.Column)).Desc()
	}

	sql, _, err := dialect.
		From(snapshotDataTable).
		Select(colDomainID, colDomain, colPriceUSD, colLength).
		Where(rowFilterExpressions(snapshotID, filter)...).
		Order(order, goqu.I(colDomainID).Asc()).
		Limit(uint(window.Limit)).
		Offset(uint(window.Offset)).
		ToSQL()
	return sql, err
}
