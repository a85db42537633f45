package repository

import "context"

// SeenDomainRepository tracks which domain names the active extraction session
// has already produced, so concurrent extraction streams that overlap do not
// inflate the snapshot.
type SeenDomainRepository interface {
	// Reset clears the seen set for a fresh session.
	Reset(ctx context.Context, sessionKey string) error
	// Add records a domain name and reports whether it was newly seen.
	Add(ctx context.Context, sessionKey, domain string) (bool, error)
	// Count returns the number of distinct domains seen this session.
	Count(ctx context.Context, sessionKey string) (int64, error)
}
