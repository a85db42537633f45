package repository

import "errors"

// Storage-level sentinels. The use case layer maps these onto its own
// error taxonomy before they reach a caller.
var (
	ErrNoSnapshot = errors.New("snapshot does not exist")
	ErrNoDomain   = errors.New("domain does not exist")
)
