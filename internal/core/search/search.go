// Package search turns free-text keystrokes into debounced remote
// lookups with stale-response suppression.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

const DefaultDebounce = 300 * time.Millisecond

// Timer is a cancelable pending callback.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules fn to run once after d. Tests inject a fake
// to drive the debounce deterministically.
type TimerFactory func(d time.Duration, fn func()) Timer

func realTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type Config struct {
	Debounce time.Duration
	NewTimer TimerFactory
}

func (c *Config) normalize() {
	if c.Debounce == 0 {
		c.Debounce = DefaultDebounce
	}
	if c.NewTimer == nil {
		c.NewTimer = realTimer
	}
}

// Controller owns one search box. Ordering guarantee: the response
// tagged with the latest generation wins, regardless of arrival order.
type Controller struct {
	ctx      context.Context
	searcher port.ProductsSearcher
	newTimer TimerFactory
	debounce time.Duration

	mu      sync.Mutex
	pending Timer
	gen     uint64
	query   string
	results []domain.ProductSummary
	loading bool
	closed  bool
}

func New(ctx context.Context, searcher port.ProductsSearcher, cfg Config) *Controller {
	cfg.normalize()
	return &Controller{
		ctx:      ctx,
		searcher: searcher,
		newTimer: cfg.NewTimer,
		debounce: cfg.Debounce,
	}
}

// SetQuery records a keystroke. Only the latest keystroke's timer
// survives. Clearing the query cancels the pending timer, invalidates
// any in-flight lookup and resets to idle without a remote call.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.stopPendingLocked()
	c.query = text

	if strings.TrimSpace(text) == "" {
		c.gen++
		c.results = nil
		c.loading = false
		return
	}

	c.pending = c.newTimer(c.debounce, c.fire)
}

func (c *Controller) fire() {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}

	q := strings.TrimSpace(c.query)
	c.gen++
	if q == "" {
		c.results = nil
		c.loading = false
		c.mu.Unlock()
		return
	}

	g := c.gen
	c.loading = true
	c.mu.Unlock()

	go c.lookup(g, q)
}

func (c *Controller) lookup(g uint64, q string) {
	const op = "search.Controller.lookup"

	rs, err := c.searcher.SearchProducts(c.ctx, q)
	if err != nil {
		slog.Error("search failed", "op", op, "err", err)
		rs = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Stale-response guard: an earlier generation arriving late must
	// not override a fresher one.
	if g != c.gen {
		return
	}
	c.results = rs
	c.loading = false
}

// Snapshot returns the visible results and the loading flag.
func (c *Controller) Snapshot() ([]domain.ProductSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rs := make([]domain.ProductSummary, len(c.results))
	copy(rs, c.results)
	return rs, c.loading
}

// Close cancels the pending timer and marks every in-flight
// generation ignorable. The controller accepts no further input.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPendingLocked()
	c.gen++
	c.closed = true
	c.results = nil
	c.loading = false
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
