package hugedomains

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/user/domain-tracker/internal/repository"
)

const defaultBaseURL = "https://www.hugedomains.com/domain_search.cfm"

// recordsPerPage is the largest page size the listing endpoint serves.
const recordsPerPage = 500

// sortChannels are the four listing orders walked per length shard; opposite
// orders meet in the middle of the shard.
var sortChannels = [4]string{"PriceAsc", "PriceDesc", "NameAsc", "NameDesc"}

// overlapStopFraction stops a stream once most of a page was already produced
// by its opposite-direction twin.
const overlapStopFraction = 0.8

// Config tunes one extraction run.
type Config struct {
	BaseURL             string
	MaxConcurrentShards int
	MaxDomainLength     int
	PageLoadTimeout     time.Duration
	FetchRetries        int
	FetchRetryPause     time.Duration
}

// ExtractorImpl walks the marketplace inventory sharded by second-level-label
// length, fetching listing pages through a headless browser. It implements
// the Extractor interface the session controller drives.
type ExtractorImpl struct {
	cfg           Config
	allocatorPool *sync.Pool
}

// NewExtractor creates a new instance of ExtractorImpl.
func NewExtractor(cfg Config) *ExtractorImpl {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	// A page fetch always gets at least one attempt; fetchPage's retry
	// loop would otherwise return a nil-wrapped error.
	if cfg.FetchRetries < 1 {
		cfg.FetchRetries = 1
	}
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}
	return &ExtractorImpl{cfg: cfg, allocatorPool: pool}
}

// Run walks every length shard, up to MaxConcurrentShards at a time, and
// feeds each extracted listing to sink. It returns when the walk is complete
// or ctx is canceled.
func (e *ExtractorImpl) Run(ctx context.Context, sink repository.RowSink) error {
	seen := newSeenSet()
	sem := make(chan struct{}, e.cfg.MaxConcurrentShards)
	var wg sync.WaitGroup

	for length := 1; length <= e.cfg.MaxDomainLength; length++ {
		wg.Add(1)
		go func(length int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			e.processShard(ctx, length, seen, sink)
		}(length)
	}
	wg.Wait()
	return ctx.Err()
}

// processShard runs the four sort channels of one length shard concurrently.
func (e *ExtractorImpl) processShard(ctx context.Context, length int, seen *seenSet, sink repository.RowSink) {
	var wg sync.WaitGroup
	for _, channel := range sortChannels {
		wg.Add(1)
		go func(channel string) {
			defer wg.Done()
			e.fetchStream(ctx, length, channel, seen, sink)
		}(channel)
	}
	wg.Wait()
}

// fetchStream pages through one (length, sort) listing stream until the
// stream ends, meets its twin, or ctx is canceled.
func (e *ExtractorImpl) fetchStream(ctx context.Context, length int, channel string, seen *seenSet, sink repository.RowSink) {
	startIndex := 1
	nextToken := ""

	for ctx.Err() == nil {
		pageURL := e.listingURL(length, channel, startIndex, nextToken)
		html, err := e.fetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("Giving up on listing stream", "length", length, "channel", channel, "error", err)
			}
			return
		}

		captured, token, err := ParseListing(html)
		if err != nil {
			slog.Warn("Failed to parse listing page", "length", length, "channel", channel, "error", err)
			return
		}
		nextToken = token
		if len(captured) == 0 {
			return
		}

		overlap := 0
		for _, d := range captured {
			if !seen.markNew(d.Name) {
				overlap++
				continue
			}
			if !sink(d) {
				return
			}
		}
		// Opposite sort orders converge; once a page is mostly repeats the
		// twin stream has covered the rest.
		if float64(overlap) > float64(len(captured))*overlapStopFraction {
			return
		}
		if nextToken == "" {
			return
		}

		if startIndex == 1 {
			startIndex = recordsPerPage
		} else {
			startIndex += recordsPerPage
		}
	}
}

func (e *ExtractorImpl) listingURL(length int, channel string, startIndex int, nextToken string) string {
	params := url.Values{}
	params.Set("maxrows", strconv.Itoa(recordsPerPage))
	params.Set("start", strconv.Itoa(startIndex))
	params.Set("anchor", "all")
	params.Set("length_start", strconv.Itoa(length))
	params.Set("length_end", strconv.Itoa(length))
	params.Set("highlightbg", "1")
	params.Set("catsearch", "0")
	params.Set("sort", channel)
	if nextToken != "" {
		params.Set("n", nextToken)
	}
	return e.cfg.BaseURL + "?" + params.Encode()
}

// fetchPage loads one listing page in a pooled browser context, retrying a
// bounded number of times with a fixed pause.
func (e *ExtractorImpl) fetchPage(ctx context.Context, pageURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < e.cfg.FetchRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		html, err := e.fetchOnce(ctx, pageURL)
		if err == nil {
			return html, nil
		}
		lastErr = err

		select {
		case <-time.After(e.cfg.FetchRetryPause):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("fetching %s: %w", pageURL, lastErr)
}

func (e *ExtractorImpl) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	allocCtx := e.allocatorPool.Get().(context.Context)
	defer e.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, e.cfg.PageLoadTimeout)
	defer cancelTimeout()

	// Parent cancellation must cut a fetch short mid-navigation.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// seenSet is the in-run overlap tracker for the meet-in-the-middle stop rule.
// Authoritative cross-stream dedup happens in the session sink; this set only
// decides when a stream has caught up with its twin.
type seenSet struct {
	mu sync.Mutex
	m  map[string]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{m: make(map[string]struct{})}
}

// markNew records a name and reports whether it was not yet present.
func (s *seenSet) markNew(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[name]; ok {
		return false
	}
	s.m[name] = struct{}{}
	return true
}
