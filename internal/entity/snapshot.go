package entity

import "time"

// Snapshot mirrors the `snapshots` PostgreSQL table schema. A snapshot is one
// immutable point-in-time capture of the full marketplace inventory.
type Snapshot struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	RowCount  int64
}
