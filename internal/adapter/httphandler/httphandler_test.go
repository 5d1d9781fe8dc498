package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sanjibtex/storefront/internal/adapter/httphandler"
	"github.com/sanjibtex/storefront/internal/core/analytics"
	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
	"github.com/sanjibtex/storefront/internal/core/service"
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

func (m *MockGateway) SearchProducts(
	ctx context.Context, text string,
) ([]domain.ProductSummary, error) {
	args := m.Called(ctx, text)
	ss, _ := args.Get(0).([]domain.ProductSummary)
	return ss, args.Error(1)
}

func (m *MockGateway) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	cp, _ := args.Get(0).(domain.Product)
	return cp, args.Error(1)
}

func (m *MockGateway) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	up, _ := args.Get(0).(domain.Product)
	return up, args.Error(1)
}

func (m *MockGateway) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateway) ListCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Category)
	return cs, args.Error(1)
}

func (m *MockGateway) GetBusinessSettings(
	ctx context.Context,
) (domain.BusinessSettings, error) {
	args := m.Called(ctx)
	bs, _ := args.Get(0).(domain.BusinessSettings)
	return bs, args.Error(1)
}

func (m *MockGateway) UpdateBusinessSettings(
	ctx context.Context, bs domain.BusinessSettings,
) (domain.BusinessSettings, error) {
	args := m.Called(ctx, bs)
	ubs, _ := args.Get(0).(domain.BusinessSettings)
	return ubs, args.Error(1)
}

func (m *MockGateway) GetAboutContent(
	ctx context.Context,
) (domain.AboutContent, error) {
	args := m.Called(ctx)
	ac, _ := args.Get(0).(domain.AboutContent)
	return ac, args.Error(1)
}

func (m *MockGateway) UpdateAboutContent(
	ctx context.Context, ac domain.AboutContent,
) (domain.AboutContent, error) {
	args := m.Called(ctx, ac)
	uac, _ := args.Get(0).(domain.AboutContent)
	return uac, args.Error(1)
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

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) TrackProductView(
	ctx context.Context, evt domain.ProductViewEvent,
) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockTracker) TrackSiteVisit(
	ctx context.Context, evt domain.SiteVisitEvent,
) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockWishlistStore struct {
	mock.Mock
}

func (m *MockWishlistStore) GetWishlist(
	ctx context.Context, userID string,
) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]domain.WishlistItem)
	return items, args.Error(1)
}

func (m *MockWishlistStore) AddToWishlist(
	ctx context.Context, userID string, productID int64,
) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistStore) RemoveFromWishlist(
	ctx context.Context, userID string, productID int64,
) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

// gatedWishlistStore holds its first mutation at the gate and records
// whether a second mutation ever ran alongside it.
type gatedWishlistStore struct {
	mu    sync.Mutex
	items map[int64]struct{}

	gate     chan struct{}
	gateOnce sync.Once
	mutating atomic.Int32
	overlap  atomic.Bool
}

func (s *gatedWishlistStore) GetWishlist(
	_ context.Context, userID string,
) ([]domain.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.WishlistItem
	for id := range s.items {
		items = append(items, domain.WishlistItem{UserID: userID, ProductID: id})
	}
	return items, nil
}

func (s *gatedWishlistStore) AddToWishlist(
	_ context.Context, _ string, productID int64,
) error {
	s.enterMutation()
	defer s.mutating.Add(-1)

	s.mu.Lock()
	s.items[productID] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *gatedWishlistStore) RemoveFromWishlist(
	_ context.Context, _ string, productID int64,
) error {
	s.enterMutation()
	defer s.mutating.Add(-1)

	s.mu.Lock()
	delete(s.items, productID)
	s.mu.Unlock()
	return nil
}

func (s *gatedWishlistStore) enterMutation() {
	if s.mutating.Add(1) > 1 {
		s.overlap.Store(true)
	}
	s.gateOnce.Do(func() { <-s.gate })
}

type stubLiveViews struct {
	views int64
}

func (s stubLiveViews) ProductViewCount(int64) (int64, error) {
	return s.views, nil
}

func newService(gw *MockGateway, tr *MockTracker) service.Service {
	return service.New(gw, gw, gw, gw, gw, gw, tr)
}

func TestStorefrontHandler(t *testing.T) {

	t.Run("GetProductsAppliesFilterPipeline", func(t *testing.T) {
		gw := new(MockGateway)
		tr := new(MockTracker)

		now := time.Now()
		gw.On("ListProducts", mock.Anything, port.ProductQuery{}).Return(
			[]domain.Product{
				{ID: 1, Name: "Athletic Shorts", Category: "shorts",
					Price: 24.99, IsActive: true, CreatedAt: now},
				{ID: 2, Name: "Running Joggers", Category: "joggers",
					Price: 54.99, IsActive: true, CreatedAt: now},
			}, nil)

		mux := http.NewServeMux()
		httphandler.RegisterStorefront(mux, newService(gw, tr))

		req := httptest.NewRequest(
			http.MethodGet, "/v1/products?category=shorts&price=under-30", nil,
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []httphandler.Product
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("GetColorsDistinctSorted", func(t *testing.T) {
		gw := new(MockGateway)
		tr := new(MockTracker)

		gw.On("ListProducts", mock.Anything, port.ProductQuery{}).Return(
			[]domain.Product{
				{ID: 1, Colors: []string{"Black", "Navy"}},
				{ID: 2, Colors: []string{"Navy", "Olive"}},
			}, nil)

		mux := http.NewServeMux()
		httphandler.RegisterStorefront(mux, newService(gw, tr))

		req := httptest.NewRequest(http.MethodGet, "/v1/products/colors", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, []string{"Black", "Navy", "Olive"}, got)
	})

	t.Run("GetProductNotFound", func(t *testing.T) {
		gw := new(MockGateway)
		tr := new(MockTracker)

		gw.On("GetProduct", mock.Anything, int64(77)).Return(
			domain.Product{}, domain.ErrNotFound)

		mux := http.NewServeMux()
		httphandler.RegisterStorefront(mux, newService(gw, tr))

		req := httptest.NewRequest(http.MethodGet, "/v1/products/77", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		tr.AssertNotCalled(t, "TrackProductView")
	})

	t.Run("TrackVisitRequiresPageURL", func(t *testing.T) {
		gw := new(MockGateway)
		tr := new(MockTracker)

		mux := http.NewServeMux()
		httphandler.RegisterStorefront(mux, newService(gw, tr))

		req := httptest.NewRequest(
			http.MethodPost, "/v1/track/visit", strings.NewReader(`{}`),
		)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		tr.AssertNotCalled(t, "TrackSiteVisit")
	})
}

func TestWishlistHandler(t *testing.T) {

	t.Run("AnonymousToggleUnauthorized", func(t *testing.T) {
		store := new(MockWishlistStore)

		mux := http.NewServeMux()
		httphandler.RegisterWishlist(mux, store)
		handler := httphandler.WithIdentity(mux)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/wishlist/5/toggle", nil,
		)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		store.AssertNotCalled(t, "AddToWishlist")
		store.AssertNotCalled(t, "RemoveFromWishlist")
	})

	t.Run("ToggleAddsAndReturnsRefetchedCount", func(t *testing.T) {
		store := new(MockWishlistStore)

		store.On("GetWishlist", mock.Anything, "u1").Return(
			[]domain.WishlistItem{}, nil).Once()
		store.On("AddToWishlist", mock.Anything, "u1", int64(5)).Return(nil)
		store.On("GetWishlist", mock.Anything, "u1").Return(
			[]domain.WishlistItem{{UserID: "u1", ProductID: 5}}, nil)

		mux := http.NewServeMux()
		httphandler.RegisterWishlist(mux, store)
		handler := httphandler.WithIdentity(mux)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/wishlist/5/toggle", nil,
		)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.ToggleResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "added", got.Status)
		assert.Equal(t, 1, got.Count)
	})

	t.Run("ConcurrentTogglesSerialize", func(t *testing.T) {
		store := &gatedWishlistStore{
			items: map[int64]struct{}{7: {}},
			gate:  make(chan struct{}),
		}

		mux := http.NewServeMux()
		httphandler.RegisterWishlist(mux, store)
		handler := httphandler.WithIdentity(mux)

		toggle := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(
				http.MethodPost, "/v1/wishlist/7/toggle", nil,
			)
			req.Header.Set("X-User-Id", "u1")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec
		}

		var wg sync.WaitGroup
		recs := make([]*httptest.ResponseRecorder, 2)
		for i := range recs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				recs[i] = toggle()
			}()
		}

		// Let the second toggle reach the store while the first
		// mutation is still held at the gate.
		time.Sleep(50 * time.Millisecond)
		close(store.gate)
		wg.Wait()

		assert.False(t, store.overlap.Load(),
			"second toggle mutated before the first settled")

		var statuses []string
		for _, rec := range recs {
			require.Equal(t, http.StatusOK, rec.Code)
			var got httphandler.ToggleResult
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			statuses = append(statuses, got.Status)
		}
		assert.ElementsMatch(t, []string{"removed", "added"}, statuses)
	})

	t.Run("AnonymousWishlistIsEmpty", func(t *testing.T) {
		store := new(MockWishlistStore)

		mux := http.NewServeMux()
		httphandler.RegisterWishlist(mux, store)
		handler := httphandler.WithIdentity(mux)

		req := httptest.NewRequest(http.MethodGet, "/v1/wishlist", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.Wishlist
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Empty(t, got.ProductIDs)
		assert.Zero(t, got.Count)
		store.AssertNotCalled(t, "GetWishlist")
	})
}

func TestAdminHandler(t *testing.T) {

	newAdminMux := func(gw *MockGateway, tr *MockTracker) http.Handler {
		aggregator := analytics.New(gw, gw, gw, gw, gw, analytics.Config{})
		mux := http.NewServeMux()
		httphandler.RegisterAdmin(
			mux, newService(gw, tr), aggregator, stubLiveViews{views: 3},
		)
		return httphandler.WithIdentity(mux)
	}

	t.Run("AnonymousIsUnauthorized", func(t *testing.T) {
		handler := newAdminMux(new(MockGateway), new(MockTracker))

		req := httptest.NewRequest(http.MethodGet, "/v1/admin/analytics", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("CustomerIsForbidden", func(t *testing.T) {
		handler := newAdminMux(new(MockGateway), new(MockTracker))

		req := httptest.NewRequest(http.MethodGet, "/v1/admin/analytics", nil)
		req.Header.Set("X-User-Id", "u1")
		req.Header.Set("X-User-Role", "customer")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("InvalidProductRejected", func(t *testing.T) {
		gw := new(MockGateway)
		handler := newAdminMux(gw, new(MockTracker))

		body := `{"name": "x", "description": "too short", "price": 0}`
		req := httptest.NewRequest(
			http.MethodPost, "/v1/admin/products", strings.NewReader(body),
		)
		req.Header.Set("X-User-Id", "admin1")
		req.Header.Set("X-User-Role", "admin")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		gw.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("LiveViews", func(t *testing.T) {
		handler := newAdminMux(new(MockGateway), new(MockTracker))

		req := httptest.NewRequest(
			http.MethodGet, "/v1/admin/products/9/views/live", nil,
		)
		req.Header.Set("X-User-Id", "admin1")
		req.Header.Set("X-User-Role", "admin")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.LiveViewCount
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, int64(9), got.ProductID)
		assert.Equal(t, int64(3), got.Views)
	})
}

func TestAllowJSON(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := httphandler.AllowJSON(next)

	t.Run("RejectsNonJSONBody", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodPost, "/", strings.NewReader("plain text"),
		)
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("AllowsEmptyBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
