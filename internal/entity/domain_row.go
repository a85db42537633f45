package entity

// DomainRow mirrors the `snapshot_data` PostgreSQL table schema: one domain's
// recorded state within a single snapshot. DomainID is the cross-snapshot
// identity key; the same domain name maps to the same DomainID in every
// snapshot that contains it.
type DomainRow struct {
	DomainID int64
	Domain   string
	PriceUSD *float64 // nil when the listing carried no price
	Length   int      // character length of the second-level label
}

// CapturedDomain is one extraction result before it has been assigned a
// DomainID. The session controller accumulates these and commits them as a
// snapshot on stop.
type CapturedDomain struct {
	Name     string
	PriceUSD *float64
	Length   int
}
