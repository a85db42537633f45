package entity

// SearchMode selects how the text filter matches the domain name. All modes
// are case-insensitive.
type SearchMode string

const (
	SearchContains SearchMode = "contains"
	SearchPrefix   SearchMode = "prefix"
	SearchExact    SearchMode = "exact"
)

// RowFilter is a conjunction of optional predicates over one snapshot's rows.
// Nil bounds mean "unbounded"; rows with a nil price never match a price bound.
type RowFilter struct {
	Search     string
	SearchMode SearchMode
	MinPrice   *float64
	MaxPrice   *float64
	MinLength  *int
	MaxLength  *int
}

// SortColumn is one of the sortable row columns.
type SortColumn string

const (
	SortByDomain SortColumn = "domain"
	SortByPrice  SortColumn = "price_usd"
	SortByLength SortColumn = "length"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort orders a row query by one column. Ties are always broken by domain_id
// ascending so pagination is deterministic.
type Sort struct {
	Column    SortColumn
	Direction SortDirection
}

// Window is one page of an ordered result set.
type Window struct {
	Offset int
	Limit  int
}
