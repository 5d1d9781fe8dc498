// Package analytics joins the product catalog with raw usage events
// into the admin dashboard snapshot. Every input is fetched fresh on
// each refresh; nothing is updated incrementally.
package analytics

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

const (
	DefaultWindowDays      = 30
	DefaultRefreshInterval = 30 * time.Second

	// revenueConversionRate estimates revenue from catalog prices.
	revenueConversionRate = 0.1
)

type Config struct {
	WindowDays      int
	RefreshInterval time.Duration
}

func (c *Config) normalize() {
	if c.WindowDays == 0 {
		c.WindowDays = DefaultWindowDays
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
}

// Aggregator recomputes the dashboard snapshot wholesale, on demand
// and on a fixed timer while the dashboard is open. A missing backing
// store degrades its numbers to zero instead of failing the refresh.
type Aggregator struct {
	products   port.ProductsReader
	categories port.CategoriesReader
	views      port.ViewEventsReader
	wishlists  port.WishlistRowsReader
	profiles   port.ProfilesCounter

	windowDays int
	interval   time.Duration

	mu       sync.Mutex
	snapshot domain.AnalyticsSnapshot
}

func New(
	products port.ProductsReader,
	categories port.CategoriesReader,
	views port.ViewEventsReader,
	wishlists port.WishlistRowsReader,
	profiles port.ProfilesCounter,
	cfg Config,
) *Aggregator {
	cfg.normalize()
	return &Aggregator{
		products:   products,
		categories: categories,
		views:      views,
		wishlists:  wishlists,
		profiles:   profiles,
		windowDays: cfg.WindowDays,
		interval:   cfg.RefreshInterval,
	}
}

// Run refreshes on a fixed interval until ctx is canceled.
func (a *Aggregator) Run(ctx context.Context) {
	const op = "analytics.Aggregator.Run"
	log := slog.With("op", op)

	log.Info("running", "interval", a.interval)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return
		case <-ticker.C:
			a.Refresh(ctx)
		}
	}
}

// Snapshot returns the last refreshed dashboard data.
func (a *Aggregator) Snapshot() domain.AnalyticsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot
}

// Refresh recomputes the whole snapshot from the gateway.
func (a *Aggregator) Refresh(ctx context.Context) domain.AnalyticsSnapshot {
	products := a.fetchProducts(ctx)
	viewEvents := a.fetchViews(ctx)
	wishlistRows := a.fetchWishlists(ctx)

	snap := domain.AnalyticsSnapshot{
		Live:       a.liveStats(ctx, products, wishlistRows),
		Products:   rankProducts(products, viewEvents, wishlistRows),
		Categories: a.categoryRollup(ctx, products, viewEvents),
	}

	a.mu.Lock()
	a.snapshot = snap
	a.mu.Unlock()
	return snap
}

func (a *Aggregator) fetchProducts(ctx context.Context) []domain.Product {
	const op = "analytics.Aggregator.fetchProducts"

	ps, err := a.products.ListProducts(ctx, port.ProductQuery{})
	if err != nil {
		logDegraded(op, err)
		return nil
	}
	return ps
}

func (a *Aggregator) fetchViews(ctx context.Context) []domain.ProductViewEvent {
	const op = "analytics.Aggregator.fetchViews"

	evts, err := a.views.ProductViews(ctx, a.windowDays)
	if err != nil {
		logDegraded(op, err)
		return nil
	}
	return evts
}

func (a *Aggregator) fetchWishlists(ctx context.Context) []domain.WishlistItem {
	const op = "analytics.Aggregator.fetchWishlists"

	rows, err := a.wishlists.WishlistRows(ctx)
	if err != nil {
		logDegraded(op, err)
		return nil
	}
	return rows
}

func (a *Aggregator) liveStats(
	ctx context.Context,
	products []domain.Product,
	wishlistRows []domain.WishlistItem,
) domain.LiveStats {
	const op = "analytics.Aggregator.liveStats"

	customers, err := a.profiles.ProfileCount(ctx)
	if err != nil {
		logDegraded(op, err)
		customers = 0
	}

	visits, err := a.views.SiteVisitCount(ctx)
	if err != nil {
		logDegraded(op, err)
		visits = 0
	}

	var total float64
	for _, p := range products {
		total += p.Price
	}

	return domain.LiveStats{
		TotalProducts:    len(products),
		TotalCustomers:   customers,
		TotalWishlists:   len(wishlistRows),
		TotalVisits:      visits,
		EstimatedRevenue: int(math.Round(total * revenueConversionRate)),
	}
}

func rankProducts(
	products []domain.Product,
	viewEvents []domain.ProductViewEvent,
	wishlistRows []domain.WishlistItem,
) []domain.ProductEngagement {
	viewsByProduct := make(map[int64]int, len(products))
	for _, evt := range viewEvents {
		viewsByProduct[evt.ProductID]++
	}
	wishlistsByProduct := make(map[int64]int, len(products))
	for _, row := range wishlistRows {
		wishlistsByProduct[row.ProductID]++
	}

	out := make([]domain.ProductEngagement, 0, len(products))
	for _, p := range products {
		views := viewsByProduct[p.ID]
		wishlists := wishlistsByProduct[p.ID]
		out = append(out, domain.ProductEngagement{
			ProductID:   p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Stock:       p.Stock,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Views:       views,
			Wishlists:   wishlists,
			Engagement:  domain.EngagementScore(views, wishlists),
		})
	}

	// Tie order is unspecified; an unstable sort is fine here.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Engagement > out[j].Engagement
	})
	return out
}

// categoryRollup attributes view events to the product's current
// category. A product recategorized after the event moves its history
// with it; that approximation is kept on purpose so reported numbers
// match the rest of the dashboard.
func (a *Aggregator) categoryRollup(
	ctx context.Context,
	products []domain.Product,
	viewEvents []domain.ProductViewEvent,
) []domain.CategoryViews {
	const op = "analytics.Aggregator.categoryRollup"

	categories, err := a.categories.ListCategories(ctx)
	if err != nil {
		logDegraded(op, err)
		return nil
	}

	categoryByProduct := make(map[int64]string, len(products))
	for _, p := range products {
		categoryByProduct[p.ID] = p.Category
	}

	viewsByCategory := make(map[string]int)
	for _, evt := range viewEvents {
		if category, ok := categoryByProduct[evt.ProductID]; ok {
			viewsByCategory[category]++
		}
	}

	out := make([]domain.CategoryViews, 0, len(categories))
	for _, c := range categories {
		out = append(out, domain.CategoryViews{
			CategoryID:   c.ID,
			Name:         c.Name,
			ProductCount: c.ProductCount,
			Views:        viewsByCategory[c.Name],
		})
	}
	return out
}

func logDegraded(op string, err error) {
	if errors.Is(err, domain.ErrUnavailable) {
		slog.Warn("data source unprovisioned, degrading to zero",
			"op", op, "err", err)
		return
	}
	slog.Error("fetch failed, degrading to zero", "op", op, "err", err)
}
