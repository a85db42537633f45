package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/domain-tracker/internal/entity"
)

func TestSessionStatusBeforeFirstStart(t *testing.T) {
	c := NewSessionController(&fakeExtractor{}, newFakeSeen(), newMemStore())

	s := c.Status(context.Background())
	assert.False(t, s.IsRunning)
	assert.Equal(t, entity.SessionIdle, s.Status)
	assert.Equal(t, int64(0), s.TotalExtracted)
}

func TestSessionStartEmptyName(t *testing.T) {
	c := NewSessionController(&fakeExtractor{block: true}, newFakeSeen(), newMemStore())

	assert.ErrorIs(t, c.Start(context.Background(), "  "), ErrInvalidArgument)
	assert.False(t, c.Status(context.Background()).IsRunning)
}

func TestSessionStopWhileIdle(t *testing.T) {
	c := NewSessionController(&fakeExtractor{}, newFakeSeen(), newMemStore())

	assert.ErrorIs(t, c.Stop(context.Background()), ErrNotRunning)
}

func TestSessionStartWhileRunning(t *testing.T) {
	started := make(chan struct{}, 1)
	c := NewSessionController(&fakeExtractor{block: true, started: started}, newFakeSeen(), newMemStore())
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "run1"))
	<-started

	assert.ErrorIs(t, c.Start(ctx, "run2"), ErrAlreadyRunning)
	assert.Equal(t, "run1", c.Status(ctx).SnapshotName)

	require.NoError(t, c.Stop(ctx))
}

func TestSessionConcurrentStarts(t *testing.T) {
	c := NewSessionController(&fakeExtractor{block: true}, newFakeSeen(), newMemStore())
	ctx := context.Background()

	names := []string{"run1", "run2"}
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			errs[i] = c.Start(ctx, name)
		}(i, name)
	}
	wg.Wait()

	// Exactly one success, the other AlreadyRunning.
	var winner string
	successes := 0
	for i, err := range errs {
		if err == nil {
			successes++
			winner = names[i]
		} else {
			assert.ErrorIs(t, err, ErrAlreadyRunning)
		}
	}
	require.Equal(t, 1, successes)
	assert.Equal(t, winner, c.Status(ctx).SnapshotName)

	require.NoError(t, c.Stop(ctx))
}

func TestSessionStopCommitsDedupedRows(t *testing.T) {
	store := newMemStore()
	extractor := &fakeExtractor{
		block:   true,
		started: make(chan struct{}, 1),
		rows: []entity.CapturedDomain{
			{Name: "a.com", PriceUSD: price(100), Length: 1},
			{Name: "b.com", PriceUSD: price(200), Length: 1},
			{Name: "a.com", PriceUSD: price(100), Length: 1}, // overlap from a twin stream
		},
	}
	c := NewSessionController(extractor, newFakeSeen(), store)
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "capture-1"))
	<-extractor.started
	assert.Equal(t, int64(2), c.Status(ctx).TotalExtracted)

	require.NoError(t, c.Stop(ctx))

	s := c.Status(ctx)
	assert.False(t, s.IsRunning)
	assert.Equal(t, entity.SessionIdle, s.Status)

	require.Len(t, store.committed, 1)
	assert.Equal(t, "capture-1", store.committed[0].name)
	require.Len(t, store.committed[0].rows, 2)
	assert.Equal(t, "a.com", store.committed[0].rows[0].Name)
	assert.Equal(t, "b.com", store.committed[0].rows[1].Name)

	// The committed session is now a registry entry.
	snaps, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "capture-1", snaps[0].Name)
	assert.Equal(t, int64(2), snaps[0].RowCount)
}

func TestSessionNaturalCompletion(t *testing.T) {
	store := newMemStore()
	extractor := &fakeExtractor{
		rows: []entity.CapturedDomain{{Name: "a.com", PriceUSD: price(10), Length: 1}},
	}
	c := NewSessionController(extractor, newFakeSeen(), store)
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "auto"))

	require.Eventually(t, func() bool {
		return !c.Status(ctx).IsRunning
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, store.committed, 1)
	assert.Equal(t, "auto", store.committed[0].name)

	// A fresh session is accepted once the previous one finalized.
	require.NoError(t, c.Start(ctx, "next"))
	require.Eventually(t, func() bool {
		return !c.Status(ctx).IsRunning
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionTotalResetsOnStart(t *testing.T) {
	store := newMemStore()
	extractor := &fakeExtractor{
		block:   true,
		started: make(chan struct{}, 2),
		runs: [][]entity.CapturedDomain{
			{{Name: "a.com", PriceUSD: price(10), Length: 1}},
			{}, // second session extracts nothing
		},
	}
	c := NewSessionController(extractor, newFakeSeen(), store)
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "first"))
	<-extractor.started
	assert.Equal(t, int64(1), c.Status(ctx).TotalExtracted)
	require.NoError(t, c.Stop(ctx))
	assert.Equal(t, int64(1), c.Status(ctx).TotalExtracted)

	require.NoError(t, c.Start(ctx, "second"))
	<-extractor.started
	assert.Equal(t, int64(0), c.Status(ctx).TotalExtracted)
	require.NoError(t, c.Stop(ctx))
}
