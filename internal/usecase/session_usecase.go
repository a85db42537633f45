package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/repository"
	"github.com/user/domain-tracker/pkg/metrics"
)

const sessionSeenKey = "session:seen"

// SessionController supervises the process-wide extraction session. At most
// one session is active at any time; the transition is a single
// check-and-set under the controller's lock.
type SessionController interface {
	// Start launches the extraction collaborator for a new session.
	Start(ctx context.Context, snapshotName string) error
	// Stop signals the collaborator to halt, waits for it to drain, and
	// commits the accumulated rows as a new immutable snapshot.
	Stop(ctx context.Context) error
	// Status returns a consistent view of the session. Safe to call at any
	// time, including before the first Start.
	Status(ctx context.Context) entity.Session
}

type sessionController struct {
	extractor repository.Extractor
	seen      repository.SeenDomainRepository
	snapshots repository.SnapshotRepository

	mu     sync.Mutex
	status entity.SessionStatus
	name   string
	total  int64
	rows   []entity.CapturedDomain
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSessionController creates the session controller in the IDLE state.
func NewSessionController(extractor repository.Extractor, seen repository.SeenDomainRepository, snapshots repository.SnapshotRepository) SessionController {
	return &sessionController{
		extractor: extractor,
		seen:      seen,
		snapshots: snapshots,
		status:    entity.SessionIdle,
	}
}

func (c *sessionController) Start(ctx context.Context, snapshotName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != entity.SessionIdle {
		return ErrAlreadyRunning
	}
	if strings.TrimSpace(snapshotName) == "" {
		return fmt.Errorf("snapshot name must not be empty: %w", ErrInvalidArgument)
	}
	if err := c.seen.Reset(ctx, sessionSeenKey); err != nil {
		return fmt.Errorf("resetting session dedup set: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.status = entity.SessionRunning
	c.name = snapshotName
	c.total = 0
	c.rows = nil
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(runCtx, c.done)
	metrics.SessionRunning.Set(1)
	slog.Info("Extraction session started", "snapshot_name", snapshotName)
	return nil
}

func (c *sessionController) Stop(ctx context.Context) error {
	c.mu.Lock()
	switch c.status {
	case entity.SessionIdle:
		c.mu.Unlock()
		return ErrNotRunning
	case entity.SessionRunning:
		c.status = entity.SessionStopping
		c.cancel()
	}
	done := c.done
	c.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *sessionController) Status(_ context.Context) entity.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return entity.Session{
		IsRunning:      c.status != entity.SessionIdle,
		Status:         c.status,
		SnapshotName:   c.name,
		TotalExtracted: c.total,
	}
}

// run drives one extraction session to completion. It executes outside the
// lock; the sink re-acquires it per row.
func (c *sessionController) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	err := c.extractor.Run(ctx, c.capture)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Extraction run failed", "error", err)
	}
	c.finalize()
}

// capture is the RowSink handed to the extractor. Concurrent extraction
// streams overlap at the edges; the shared seen-set keeps total_extracted a
// unique-domain count.
func (c *sessionController) capture(d entity.CapturedDomain) bool {
	c.mu.Lock()
	if c.status == entity.SessionIdle {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	fresh, err := c.seen.Add(context.Background(), sessionSeenKey, d.Name)
	if err != nil {
		// Losing dedup is recoverable noise; losing the row is not.
		slog.Warn("Seen-set check failed, keeping row", "domain", d.Name, "error", err)
		fresh = true
	}
	if !fresh {
		return true
	}

	c.mu.Lock()
	c.rows = append(c.rows, d)
	c.total++
	c.mu.Unlock()
	metrics.DomainsExtracted.Inc()
	return true
}

func (c *sessionController) finalize() {
	c.mu.Lock()
	name := c.name
	rows := c.rows
	c.mu.Unlock()

	snap, err := c.snapshots.Commit(context.Background(), name, rows)
	if err != nil {
		slog.Error("Failed to commit session snapshot", "snapshot_name", name, "error", err)
	} else {
		slog.Info("Session committed as snapshot", "snapshot_id", snap.ID, "snapshot_name", snap.Name, "row_count", snap.RowCount)
	}

	c.mu.Lock()
	c.status = entity.SessionIdle
	c.rows = nil
	c.cancel = nil
	c.mu.Unlock()
	metrics.SessionRunning.Set(0)
}
