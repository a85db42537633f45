package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/domain-tracker/internal/entity"
)

func TestHistoryDisappearanceAndReturn(t *testing.T) {
	store := newMemStore()
	store.addSnapshot("S1", entity.DomainRow{DomainID: 7, Domain: "x.com", PriceUSD: price(100), Length: 1})
	store.addSnapshot("S2")
	store.addSnapshot("S3", entity.DomainRow{DomainID: 7, Domain: "x.com", PriceUSD: price(100), Length: 1})
	history := NewHistory(store, store)

	h, err := history.ForDomain(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "x.com", h.Domain)
	require.Len(t, h.Events, 3)

	// Reappearance after deletion is NEW, not CHANGED or UNCHANGED.
	assert.Equal(t, entity.HistoryNew, h.Events[0].Status)
	assert.Equal(t, entity.HistoryDeleted, h.Events[1].Status)
	assert.Equal(t, entity.HistoryNew, h.Events[2].Status)

	assert.Nil(t, h.Events[1].PriceUSD)
	assert.Equal(t, 100.0, *h.Events[2].PriceUSD)
}

func TestHistoryOneEventPerSnapshotChronological(t *testing.T) {
	store := newMemStore()
	store.addSnapshot("S1")
	store.addSnapshot("S2", entity.DomainRow{DomainID: 3, Domain: "y.com", PriceUSD: price(20), Length: 1})
	store.addSnapshot("S3", entity.DomainRow{DomainID: 3, Domain: "y.com", PriceUSD: price(25), Length: 1})
	store.addSnapshot("S4", entity.DomainRow{DomainID: 3, Domain: "y.com", PriceUSD: price(25), Length: 1})
	store.addSnapshot("S5")
	store.addSnapshot("S6")
	history := NewHistory(store, store)

	h, err := history.ForDomain(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, h.Events, 6)

	want := []entity.HistoryStatus{
		entity.HistoryAbsent,
		entity.HistoryNew,
		entity.HistoryChanged,
		entity.HistoryUnchanged,
		entity.HistoryDeleted,
		entity.HistoryAbsent, // not a second DELETED
	}
	for i, ev := range h.Events {
		assert.Equal(t, want[i], ev.Status, "snapshot %s", ev.SnapshotName)
	}

	// Chronological order, no gaps.
	for i := 1; i < len(h.Events); i++ {
		assert.True(t, h.Events[i-1].CreatedAt.Before(h.Events[i].CreatedAt))
	}

	// The idempotent-absence law: never two consecutive DELETED events.
	for i := 1; i < len(h.Events); i++ {
		if h.Events[i].Status == entity.HistoryDeleted {
			assert.NotEqual(t, entity.HistoryDeleted, h.Events[i-1].Status)
		}
	}
}

func TestHistoryNullPriceTransitions(t *testing.T) {
	store := newMemStore()
	store.addSnapshot("S1", entity.DomainRow{DomainID: 9, Domain: "z.com", PriceUSD: nil, Length: 1})
	store.addSnapshot("S2", entity.DomainRow{DomainID: 9, Domain: "z.com", PriceUSD: price(10), Length: 1})
	store.addSnapshot("S3", entity.DomainRow{DomainID: 9, Domain: "z.com", PriceUSD: nil, Length: 1})
	history := NewHistory(store, store)

	h, err := history.ForDomain(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, h.Events, 3)
	assert.Equal(t, entity.HistoryNew, h.Events[0].Status)
	assert.Equal(t, entity.HistoryChanged, h.Events[1].Status)
	assert.Equal(t, entity.HistoryChanged, h.Events[2].Status)
}

func TestHistoryUnknownDomain(t *testing.T) {
	store := newMemStore()
	store.addSnapshot("S1")
	history := NewHistory(store, store)

	_, err := history.ForDomain(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
