package response

import (
	"time"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/usecase"
)

// Snapshot is the wire shape of one registry entry.
type Snapshot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	RowCount  int64     `json:"row_count"`
}

// Snapshots wraps the registry listing.
type Snapshots struct {
	Snapshots []Snapshot `json:"snapshots"`
}

// DomainRow is the wire shape of one snapshot row.
type DomainRow struct {
	DomainID int64    `json:"domain_id"`
	Domain   string   `json:"domain"`
	PriceUSD *float64 `json:"price_usd"`
	Length   int      `json:"length"`
}

// Rows is one page of a row query.
type Rows struct {
	Rows       []DomainRow `json:"rows"`
	TotalCount int64       `json:"total_count"`
	ElapsedMS  float64     `json:"elapsed_ms"`
}

// DiffRow is the wire shape of one diff classification.
type DiffRow struct {
	DomainID int64    `json:"domain_id"`
	Domain   string   `json:"domain"`
	Status   string   `json:"status"`
	OldPrice *float64 `json:"old_price"`
	NewPrice *float64 `json:"new_price"`
}

// Diff is one page of a snapshot comparison.
type Diff struct {
	Rows       []DiffRow `json:"rows"`
	TotalCount int64     `json:"total_count"`
	ElapsedMS  float64   `json:"elapsed_ms"`
}

// HistoryEvent is one entry of a domain timeline.
type HistoryEvent struct {
	SnapshotID   int64     `json:"snapshot_id"`
	SnapshotName string    `json:"snapshot_name"`
	CreatedAt    time.Time `json:"created_at"`
	PriceUSD     *float64  `json:"price_usd"`
	Status       string    `json:"status"`
}

// History is a domain's full timeline.
type History struct {
	DomainID int64          `json:"domain_id"`
	Domain   string         `json:"domain"`
	History  []HistoryEvent `json:"history"`
}

// Session is the polled extraction session view.
type Session struct {
	IsRunning      bool   `json:"is_running"`
	Status         string `json:"status"`
	SnapshotName   string `json:"snapshot_name"`
	TotalExtracted int64  `json:"total_extracted"`
}

// Message is a plain acknowledgement.
type Message struct {
	Message string `json:"message"`
}

// FromSnapshots converts registry entities.
func FromSnapshots(snaps []entity.Snapshot) Snapshots {
	out := Snapshots{Snapshots: make([]Snapshot, 0, len(snaps))}
	for _, s := range snaps {
		out.Snapshots = append(out.Snapshots, Snapshot{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, RowCount: s.RowCount})
	}
	return out
}

// FromRowPage converts a row query result.
func FromRowPage(page *usecase.RowPage) Rows {
	out := Rows{
		Rows:       make([]DomainRow, 0, len(page.Rows)),
		TotalCount: page.TotalCount,
		ElapsedMS:  page.ElapsedMS,
	}
	for _, r := range page.Rows {
		out.Rows = append(out.Rows, DomainRow{DomainID: r.DomainID, Domain: r.Domain, PriceUSD: r.PriceUSD, Length: r.Length})
	}
	return out
}

// FromDiffPage converts a diff result.
func FromDiffPage(page *usecase.DiffPage) Diff {
	out := Diff{
		Rows:       make([]DiffRow, 0, len(page.Rows)),
		TotalCount: page.TotalCount,
		ElapsedMS:  page.ElapsedMS,
	}
	for _, r := range page.Rows {
		out.Rows = append(out.Rows, DiffRow{DomainID: r.DomainID, Domain: r.Domain, Status: string(r.Status), OldPrice: r.OldPrice, NewPrice: r.NewPrice})
	}
	return out
}

// FromHistory converts a domain timeline.
func FromHistory(h *usecase.DomainHistory) History {
	out := History{
		DomainID: h.DomainID,
		Domain:   h.Domain,
		History:  make([]HistoryEvent, 0, len(h.Events)),
	}
	for _, ev := range h.Events {
		out.History = append(out.History, HistoryEvent{
			SnapshotID:   ev.SnapshotID,
			SnapshotName: ev.SnapshotName,
			CreatedAt:    ev.CreatedAt,
			PriceUSD:     ev.PriceUSD,
			Status:       string(ev.Status),
		})
	}
	return out
}

// FromSession converts the session view.
func FromSession(s entity.Session) Session {
	return Session{
		IsRunning:      s.IsRunning,
		Status:         string(s.Status),
		SnapshotName:   s.SnapshotName,
		TotalExtracted: s.TotalExtracted,
	}
}
