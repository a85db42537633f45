package entity

// DiffStatus classifies one domain's change between two snapshots.
type DiffStatus string

const (
	DiffNew       DiffStatus = "NEW"
	DiffDeleted   DiffStatus = "DELETED"
	DiffChanged   DiffStatus = "CHANGED"
	DiffUnchanged DiffStatus = "UNCHANGED"
)

// DiffType narrows a diff result to one class of change. There is deliberately
// no "unchanged" filter; the unchanged majority is only visible under DiffAll.
type DiffType string

const (
	DiffAll         DiffType = "all"
	DiffOnlyNew     DiffType = "new"
	DiffOnlyDeleted DiffType = "deleted"
	DiffOnlyChanged DiffType = "changed"
)

// Valid reports whether t is one of the accepted diff filters.
func (t DiffType) Valid() bool {
	switch t {
	case DiffAll, DiffOnlyNew, DiffOnlyDeleted, DiffOnlyChanged:
		return true
	}
	return false
}

// DiffRow is one domain's classification in the comparison of an ordered
// snapshot pair (A, B). It is derived on demand and never persisted.
type DiffRow struct {
	DomainID int64
	Domain   string
	Status   DiffStatus
	OldPrice *float64 // price in A, nil when absent from A
	NewPrice *float64 // price in B, nil when absent from B
}
