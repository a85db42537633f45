package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
)

// DomainHistory is one domain's complete timeline across all snapshots.
type DomainHistory struct {
	DomainID int64
	Domain   string
	Events   []entity.HistoryEvent
}

// History defines the interface for reconstructing a domain's lifecycle.
type History interface {
	ForDomain(ctx context.Context, domainID int64) (*DomainHistory, error)
}

type historyUseCase struct {
	snapshots repository.SnapshotRepository
	rows      repository.RowRepository
}

// NewHistory creates the history reconstructor.
func NewHistory(snapshots repository.SnapshotRepository, rows repository.RowRepository) History {
	return &historyUseCase{snapshots: snapshots, rows: rows}
}

func (uc *historyUseCase) ForDomain(ctx context.Context, domainID int64) (*DomainHistory, error) {
	name, err := uc.rows.DomainName(ctx, domainID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDomain) {
			return nil, fmt.Errorf("domain %d: %w", domainID, ErrNotFound)
		}
		return nil, fmt.Errorf("resolving domain %d: %w", domainID, err)
	}

	snaps, err := uc.snapshots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	// The registry lists most-recent-first for display; the timeline needs
	// chronological order.
	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].ID < snaps[j].ID
		}
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})

	prices, err := uc.rows.PricesByDomain(ctx, domainID)
	if err != nil {
		return nil, fmt.Errorf("loading price points for domain %d: %w", domainID, err)
	}

	events := make([]entity.HistoryEvent, 0, len(snaps))
	prevPresent := false
	var prevPrice *float64
	for _, snap := range snaps {
		price, present := prices[snap.ID]
		ev := entity.HistoryEvent{
			SnapshotID:   snap.ID,
			SnapshotName: snap.Name,
			CreatedAt:    snap.CreatedAt,
		}
		switch {
		case present && !prevPresent:
			ev.Status = entity.HistoryNew
			ev.PriceUSD = price
		case present && prevPresent && priceEqual(price, prevPrice):
			ev.Status = entity.HistoryUnchanged
			ev.PriceUSD = price
		case present:
			ev.Status = entity.HistoryChanged
			ev.PriceUSD = price
		case prevPresent:
			// First snapshot where the domain stops appearing; later
			// absence is ABSENT, not repeated DELETED.
			ev.Status = entity.HistoryDeleted
		default:
			ev.Status = entity.HistoryAbsent
		}
		events = append(events, ev)
		prevPresent = present
		prevPrice = price
	}

	return &DomainHistory{DomainID: domainID, Domain: name, Events: events}, nil
}
