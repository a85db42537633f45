package entity

import "time"

// HistoryStatus extends the diff vocabulary with ABSENT: a snapshot in which
// the domain was simply not part of the captured inventory. DELETED marks only
// the transition snapshot where a previously-present domain first disappears.
type HistoryStatus string

const (
	HistoryNew       HistoryStatus = "NEW"
	HistoryDeleted   HistoryStatus = "DELETED"
	HistoryChanged   HistoryStatus = "CHANGED"
	HistoryUnchanged HistoryStatus = "UNCHANGED"
	HistoryAbsent    HistoryStatus = "ABSENT"
)

// HistoryEvent is one domain's state in one snapshot, derived across all
// snapshots in chronological order.
type HistoryEvent struct {
	SnapshotID   int64
	SnapshotName string
	CreatedAt    time.Time
	PriceUSD     *float64 // nil for DELETED and ABSENT
	Status       HistoryStatus
}
