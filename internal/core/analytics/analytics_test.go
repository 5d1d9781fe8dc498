package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/sanjibtex/storefront/internal/core/analytics"
	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListProducts(
	ctx context.Context, q port.ProductQuery,
) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockGateway) GetProduct(
	ctx context.Context, id int64,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *MockGateway) ListCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Category)
	return cs, args.Error(1)
}

func (m *MockGateway) ProductViews(
	ctx context.Context, windowDays int,
) ([]domain.ProductViewEvent, error) {
	args := m.Called(ctx, windowDays)
	evts, _ := args.Get(0).([]domain.ProductViewEvent)
	return evts, args.Error(1)
}

func (m *MockGateway) SiteVisitCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockGateway) WishlistRows(
	ctx context.Context,
) ([]domain.WishlistItem, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.WishlistItem)
	return rows, args.Error(1)
}

func (m *MockGateway) ProfileCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newAggregator(gw *MockGateway) *analytics.Aggregator {
	return analytics.New(gw, gw, gw, gw, gw, analytics.Config{})
}

func views(productIDs ...int64) []domain.ProductViewEvent {
	var out []domain.ProductViewEvent
	for _, id := range productIDs {
		out = append(out, domain.ProductViewEvent{
			ProductID: id, ViewedAt: time.Now(),
		})
	}
	return out
}

func wishlistRows(productIDs ...int64) []domain.WishlistItem {
	var out []domain.WishlistItem
	for _, id := range productIDs {
		out = append(out, domain.WishlistItem{ProductID: id})
	}
	return out
}

func TestEngagementRanking(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", t.Context(), port.ProductQuery{}).Return(
		[]domain.Product{
			{ID: 1, Name: "Shorts", Category: "Shorts", Price: 25},
			{ID: 2, Name: "Leggings", Category: "Leggings", Price: 45},
		}, nil)
	gw.On("ProductViews", t.Context(), analytics.DefaultWindowDays).
		Return(views(1, 1, 1, 1, 1, 2), nil)
	gw.On("WishlistRows", t.Context()).
		Return(wishlistRows(1, 1, 1, 2), nil)
	gw.On("ProfileCount", t.Context()).Return(9, nil)
	gw.On("SiteVisitCount", t.Context()).Return(120, nil)
	gw.On("ListCategories", t.Context()).Return(nil, nil)

	snap := newAggregator(gw).Refresh(t.Context())

	require.Len(t, snap.Products, 2)

	// 5 views + 2*3 wishlists = 11.
	top := snap.Products[0]
	assert.EqualValues(t, 1, top.ProductID)
	assert.Equal(t, 5, top.Views)
	assert.Equal(t, 3, top.Wishlists)
	assert.Equal(t, 11, top.Engagement)

	second := snap.Products[1]
	assert.EqualValues(t, 2, second.ProductID)
	assert.Equal(t, 3, second.Engagement)

	assert.Equal(t, 2, snap.Live.TotalProducts)
	assert.Equal(t, 9, snap.Live.TotalCustomers)
	assert.Equal(t, 4, snap.Live.TotalWishlists)
	assert.Equal(t, 120, snap.Live.TotalVisits)
	// round((25+45) * 0.1)
	assert.Equal(t, 7, snap.Live.EstimatedRevenue)
}

func TestCategoryRollupUsesCurrentCategory(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", t.Context(), port.ProductQuery{}).Return(
		[]domain.Product{
			{ID: 1, Category: "Shorts"},
			{ID: 2, Category: "Leggings"},
		}, nil)
	gw.On("ProductViews", t.Context(), analytics.DefaultWindowDays).
		Return(views(1, 1, 2, 99), nil) // 99: product since deleted
	gw.On("WishlistRows", t.Context()).Return(nil, nil)
	gw.On("ProfileCount", t.Context()).Return(0, nil)
	gw.On("SiteVisitCount", t.Context()).Return(0, nil)
	gw.On("ListCategories", t.Context()).Return([]domain.Category{
		{ID: 10, Name: "Shorts", ProductCount: 4},
		{ID: 11, Name: "Leggings", ProductCount: 2},
		{ID: 12, Name: "Joggers", ProductCount: 1},
	}, nil)

	snap := newAggregator(gw).Refresh(t.Context())

	require.Len(t, snap.Categories, 3)
	assert.Equal(t, 2, snap.Categories[0].Views)
	assert.Equal(t, 4, snap.Categories[0].ProductCount)
	assert.Equal(t, 1, snap.Categories[1].Views)
	assert.Zero(t, snap.Categories[2].Views)
}

func TestUnprovisionedStoresDegradeToZero(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", t.Context(), port.ProductQuery{}).Return(
		[]domain.Product{{ID: 1, Name: "Shorts", Price: 25}}, nil)
	gw.On("ProductViews", t.Context(), analytics.DefaultWindowDays).
		Return(nil, domain.ErrUnavailable)
	gw.On("WishlistRows", t.Context()).Return(nil, domain.ErrUnavailable)
	gw.On("ProfileCount", t.Context()).Return(0, domain.ErrUnavailable)
	gw.On("SiteVisitCount", t.Context()).Return(0, domain.ErrUnavailable)
	gw.On("ListCategories", t.Context()).Return([]domain.Category{
		{ID: 10, Name: "Shorts"},
	}, nil)

	snap := newAggregator(gw).Refresh(t.Context())

	require.Len(t, snap.Products, 1)
	assert.Zero(t, snap.Products[0].Views)
	assert.Zero(t, snap.Products[0].Wishlists)
	assert.Zero(t, snap.Products[0].Engagement)
	assert.Zero(t, snap.Live.TotalWishlists)
	assert.Zero(t, snap.Live.TotalVisits)
	assert.Equal(t, 1, snap.Live.TotalProducts)
	require.Len(t, snap.Categories, 1)
	assert.Zero(t, snap.Categories[0].Views)
}

func TestSnapshotReturnsLastRefresh(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", t.Context(), port.ProductQuery{}).Return(nil, nil)
	gw.On("ProductViews", t.Context(), analytics.DefaultWindowDays).
		Return(nil, nil)
	gw.On("WishlistRows", t.Context()).Return(nil, nil)
	gw.On("ProfileCount", t.Context()).Return(3, nil)
	gw.On("SiteVisitCount", t.Context()).Return(7, nil)
	gw.On("ListCategories", t.Context()).Return(nil, nil)

	agg := newAggregator(gw)
	assert.Zero(t, agg.Snapshot().Live.TotalVisits)

	agg.Refresh(t.Context())
	assert.Equal(t, 7, agg.Snapshot().Live.TotalVisits)
	assert.Equal(t, 3, agg.Snapshot().Live.TotalCustomers)
}

func TestEngagementScore(t *testing.T) {
	assert.Equal(t, 11, domain.EngagementScore(5, 3))
	assert.Zero(t, domain.EngagementScore(0, 0))
}
