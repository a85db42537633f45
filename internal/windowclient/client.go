// Package windowclient implements the consumer-side contract for driving the
// row and diff query engines interactively: block-based range fetching with
// debounced filter edits, a generation counter that discards responses from a
// superseded parameter tuple, and in-order application of responses within
// one parameter generation.
package windowclient

import (
	"context"
	"sync"
	"time"

	"github.com/user/domain-tracker/internal/entity"
)

// DefaultDebounce is the quiet period a filter edit must survive before it
// triggers a fetch.
const DefaultDebounce = 800 * time.Millisecond

// Page is one engine response: the rows of the requested window plus the
// pre-window match count.
type Page[R any] struct {
	Rows       []R
	TotalCount int64
}

// Fetcher issues one windowed query for a parameter tuple. Implementations
// wrap the row or diff engine; they are side-effect-free reads, so a
// discarded response needs no compensation.
type Fetcher[P comparable, R any] interface {
	FetchWindow(ctx context.Context, params P, window entity.Window) (Page[R], error)
}

// Update is one applied response, delivered to the consumer callback in
// request order. Err is set when the range's fetch failed; such a range is
// terminal (no automatic retry) and previously loaded rows are untouched.
type Update[R any] struct {
	Start      int
	Rows       []R
	TotalCount int64
	EndOfData  bool
	Err        error
}

type rangeReq[R any] struct {
	window entity.Window
	done   bool
	page   Page[R]
	err    error
}

// Client drives a query engine one row block at a time. All methods are safe
// for concurrent use; the consumer callback runs outside the client's lock.
type Client[P comparable, R any] struct {
	fetcher  Fetcher[P, R]
	onUpdate func(Update[R])
	clock    Clock
	debounce time.Duration

	mu       sync.Mutex
	params   P
	started  bool
	gen      uint64
	editSeq  uint64
	pending  P
	timer    Timer
	queue    []*rangeReq[R]
	flushing bool // one goroutine at a time delivers queued updates
	rows     map[int]R
	total    int64
	end      int // first row index known to be past the data, -1 unknown
	reqUpTo  int // rows requested so far this generation
}

// Option configures a Client.
type Option[P comparable, R any] func(*Client[P, R])

// WithClock substitutes the timer source, used to inject a virtual clock.
func WithClock[P comparable, R any](clock Clock) Option[P, R] {
	return func(c *Client[P, R]) { c.clock = clock }
}

// WithDebounce overrides the filter-edit quiet period.
func WithDebounce[P comparable, R any](d time.Duration) Option[P, R] {
	return func(c *Client[P, R]) { c.debounce = d }
}

// New creates a windowed query client. onUpdate receives applied responses in
// request order.
func New[P comparable, R any](fetcher Fetcher[P, R], onUpdate func(Update[R]), opts ...Option[P, R]) *Client[P, R] {
	c := &Client[P, R]{
		fetcher:  fetcher,
		onUpdate: onUpdate,
		clock:    NewRealClock(),
		debounce: DefaultDebounce,
		rows:     make(map[int]R),
		total:    -1,
		end:      -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetParams applies a new parameter tuple immediately. Snapshot-selector and
// sort changes go through here; any outstanding debounced edit is dropped in
// favor of the explicit change.
func (c *Client[P, R]) SetParams(params P) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editSeq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.applyParamsLocked(params)
}

// EditFilter registers a filter edit. The edit only takes effect once it has
// been stable for the debounce interval; every further edit restarts the
// quiet period.
func (c *Client[P, R]) EditFilter(params P) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editSeq++
	seq := c.editSeq
	c.pending = params
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.editSeq {
			// A later edit or SetParams superseded this one.
			return
		}
		c.timer = nil
		c.applyParamsLocked(c.pending)
	})
}

// applyParamsLocked starts a fresh query stream for params. A no-op when the
// tuple is unchanged, so a keystroke that restores the previous filter does
// not throw away loaded rows.
func (c *Client[P, R]) applyParamsLocked(params P) {
	if c.started && params == c.params {
		return
	}
	c.started = true
	c.params = params
	c.gen++
	c.queue = nil
	c.rows = make(map[int]R)
	c.total = -1
	c.end = -1
	c.reqUpTo = 0
}

// EnsureRange requests the rows [startRow, endRow) if they have not been
// requested under the current parameter tuple. Ranges past the observed end
// of data are not fetched.
func (c *Client[P, R]) EnsureRange(startRow, endRow int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}
	if startRow < c.reqUpTo {
		startRow = c.reqUpTo
	}
	if c.end >= 0 && endRow > c.end {
		endRow = c.end
	}
	if startRow >= endRow {
		return
	}

	req := &rangeReq[R]{window: entity.Window{Offset: startRow, Limit: endRow - startRow}}
	c.queue = append(c.queue, req)
	c.reqUpTo = endRow

	go c.fetch(c.gen, c.params, req)
}

// Row returns the loaded row at an absolute index.
func (c *Client[P, R]) Row(i int) (R, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rows[i]
	return r, ok
}

// Total returns the engine-reported match count, or -1 before the first
// response of the current generation.
func (c *Client[P, R]) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Client[P, R]) fetch(gen uint64, params P, req *rangeReq[R]) {
	page, err := c.fetcher.FetchWindow(context.Background(), params, req.window)

	c.mu.Lock()
	if gen != c.gen {
		// Response from a superseded parameter tuple: discard entirely.
		c.mu.Unlock()
		return
	}
	req.page = page
	req.err = err
	req.done = true
	if c.flushing {
		// The delivering goroutine re-drains before it finishes, so this
		// completion will be picked up in queue order.
		c.mu.Unlock()
		return
	}
	c.flushing = true
	for {
		updates := c.drainLocked()
		if len(updates) == 0 {
			c.flushing = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		for _, u := range updates {
			c.onUpdate(u)
		}
		c.mu.Lock()
	}
}

// drainLocked applies completed requests from the head of the queue, so
// responses take effect in the order their ranges were requested even when
// network completion order differs.
func (c *Client[P, R]) drainLocked() []Update[R] {
	var updates []Update[R]
	for len(c.queue) > 0 && c.queue[0].done {
		req := c.queue[0]
		c.queue = c.queue[1:]

		if req.err != nil {
			updates = append(updates, Update[R]{Start: req.window.Offset, Err: req.err})
			continue
		}

		for i, row := range req.page.Rows {
			c.rows[req.window.Offset+i] = row
		}
		c.total = req.page.TotalCount

		short := len(req.page.Rows) < req.window.Limit
		if short {
			c.end = req.window.Offset + len(req.page.Rows)
			if c.reqUpTo > c.end {
				c.reqUpTo = c.end
			}
		}
		updates = append(updates, Update[R]{
			Start:      req.window.Offset,
			Rows:       req.page.Rows,
			TotalCount: req.page.TotalCount,
			EndOfData:  short,
		})
	}
	return updates
}
