package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/domain-tracker/internal/entity"
)

func TestDiffScenario(t *testing.T) {
	store := newMemStore()
	snapA := store.addSnapshot("A",
		entity.DomainRow{DomainID: 1, Domain: "a.com", PriceUSD: price(100), Length: 1},
	)
	snapB := store.addSnapshot("B",
		entity.DomainRow{DomainID: 1, Domain: "a.com", PriceUSD: price(150), Length: 1},
		entity.DomainRow{DomainID: 2, Domain: "b.com", PriceUSD: price(50), Length: 1},
	)
	diff := NewDiff(store, store)

	page, err := diff.Compare(context.Background(), snapA.ID, snapB.ID, entity.DiffAll, entity.Window{Limit: 100})
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, int64(2), page.TotalCount)

	assert.Equal(t, "a.com", page.Rows[0].Domain)
	assert.Equal(t, entity.DiffChanged, page.Rows[0].Status)
	assert.Equal(t, 100.0, *page.Rows[0].OldPrice)
	assert.Equal(t, 150.0, *page.Rows[0].NewPrice)

	assert.Equal(t, "b.com", page.Rows[1].Domain)
	assert.Equal(t, entity.DiffNew, page.Rows[1].Status)
	assert.Nil(t, page.Rows[1].OldPrice)
	assert.Equal(t, 50.0, *page.Rows[1].NewPrice)

	changed, err := diff.Compare(context.Background(), snapA.ID, snapB.ID, entity.DiffOnlyChanged, entity.Window{Limit: 100})
	require.NoError(t, err)
	require.Len(t, changed.Rows, 1)
	assert.Equal(t, "a.com", changed.Rows[0].Domain)
	assert.Equal(t, int64(1), changed.TotalCount)
}

func TestDiffExhaustiveAndExclusive(t *testing.T) {
	store := newMemStore()
	snapA := store.addSnapshot("A",
		entity.DomainRow{DomainID: 1, Domain: "a.com", PriceUSD: price(100), Length: 1},
		entity.DomainRow{DomainID: 2, Domain: "b.com", PriceUSD: price(200), Length: 1},
		entity.DomainRow{DomainID: 4, Domain: "d.com", PriceUSD: nil, Length: 1},
		entity.DomainRow{DomainID: 5, Domain: "e.com", PriceUSD: price(500), Length: 1},
	)
	snapB := store.addSnapshot("B",
		entity.DomainRow{DomainID: 2, Domain: "b.com", PriceUSD: price(250), Length: 1},
		entity.DomainRow{DomainID: 3, Domain: "c.com", PriceUSD: price(300), Length: 1},
		entity.DomainRow{DomainID: 4, Domain: "d.com", PriceUSD: price(400), Length: 1},
		entity.DomainRow{DomainID: 5, Domain: "e.com", PriceUSD: price(500), Length: 1},
	)
	diff := NewDiff(store, store)

	page, err := diff.Compare(context.Background(), snapA.ID, snapB.ID, entity.DiffAll, entity.Window{Limit: 100})
	require.NoError(t, err)

	// Every domain_id in A or B appears exactly once.
	seen := map[int64]entity.DiffStatus{}
	for _, row := range page.Rows {
		_, dup := seen[row.DomainID]
		require.False(t, dup, "domain_id %d classified twice", row.DomainID)
		seen[row.DomainID] = row.Status
	}
	assert.Equal(t, map[int64]entity.DiffStatus{
		1: entity.DiffDeleted,
		2: entity.DiffChanged,
		3: entity.DiffNew,
		4: entity.DiffChanged, // nil price in A vs priced in B
		5: entity.DiffUnchanged,
	}, seen)
}

func TestDiffAntiSymmetry(t *testing.T) {
	store := newMemStore()
	snapA := store.addSnapshot("A",
		entity.DomainRow{DomainID: 1, Domain: "a.com", PriceUSD: price(100), Length: 1},
		entity.DomainRow{DomainID: 2, Domain: "b.com", PriceUSD: price(200), Length: 1},
	)
	snapB := store.addSnapshot("B",
		entity.DomainRow{DomainID: 2, Domain: "b.com", PriceUSD: price(210), Length: 1},
		entity.DomainRow{DomainID: 3, Domain: "c.com", PriceUSD: price(300), Length: 1},
	)
	diff := NewDiff(store, store)

	fwd, err := diff.Compare(context.Background(), snapA.ID, snapB.ID, entity.DiffAll, entity.Window{Limit: 100})
	require.NoError(t, err)
	rev, err := diff.Compare(context.Background(), snapB.ID, snapA.ID, entity.DiffAll, entity.Window{Limit: 100})
	require.NoError(t, err)
	require.Len(t, rev.Rows, len(fwd.Rows))

	revByID := map[int64]entity.DiffRow{}
	for _, row := range rev.Rows {
		revByID[row.DomainID] = row
	}
	for _, f := range fwd.Rows {
		r, ok := revByID[f.DomainID]
		require.True(t, ok)
		switch f.Status {
		case entity.DiffNew:
			assert.Equal(t, entity.DiffDeleted, r.Status)
		case entity.DiffDeleted:
			assert.Equal(t, entity.DiffNew, r.Status)
		default:
			assert.Equal(t, f.Status, r.Status)
		}
		assert.Equal(t, f.OldPrice, r.NewPrice)
		assert.Equal(t, f.NewPrice, r.OldPrice)
	}
}

func TestDiffPaginationComplete(t *testing.T) {
	store := newMemStore()
	var rowsA, rowsB []entity.DomainRow
	for i := int64(1); i <= 25; i++ {
		rowsA = append(rowsA, entity.DomainRow{DomainID: i, Domain: "a.com", PriceUSD: price(float64(i)), Length: 1})
	}
	for i := int64(10); i <= 40; i++ {
		rowsB = append(rowsB, entity.DomainRow{DomainID: i, Domain: "b.com", PriceUSD: price(float64(i * 2)), Length: 1})
	}
	snapA := store.addSnapshot("A", rowsA...)
	snapB := store.addSnapshot("B", rowsB...)
	diff := NewDiff(store, store)

	const limit = 7
	var collected []entity.DiffRow
	var total int64
	for offset := 0; ; offset += limit {
		page, err := diff.Compare(context.Background(), snapA.ID, snapB.ID, entity.DiffAll, entity.Window{Offset: offset, Limit: limit})
		require.NoError(t, err)
		total = page.TotalCount
		collected = append(collected, page.Rows...)
		if len(page.Rows) < limit {
			break
		}
	}

	assert.Equal(t, total, int64(len(collected)))
	ids := map[int64]bool{}
	for _, row := range collected {
		require.False(t, ids[row.DomainID], "duplicate across pages")
		ids[row.DomainID] = true
	}
	assert.Len(t, ids, 40) // ids 1..40 all present exactly once
}

func TestDiffErrors(t *testing.T) {
	store := newMemStore()
	snap := store.addSnapshot("only")
	diff := NewDiff(store, store)
	ctx := context.Background()

	_, err := diff.Compare(ctx, snap.ID, 999, entity.DiffAll, entity.Window{Limit: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = diff.Compare(ctx, 999, snap.ID, entity.DiffAll, entity.Window{Limit: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = diff.Compare(ctx, snap.ID, snap.ID, entity.DiffAll, entity.Window{Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = diff.Compare(ctx, snap.ID, snap.ID, entity.DiffAll, entity.Window{Offset: -1, Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = diff.Compare(ctx, snap.ID, snap.ID, entity.DiffType("unchanged"), entity.Window{Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
