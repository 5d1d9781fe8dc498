package port

import (
	"context"

	"github.com/sanjibtex/storefront/internal/core/domain"
)

// ProductQuery carries the server-supported catalog predicates.
// The active flag is always applied by the gateway.
type ProductQuery struct {
	Category string
	Search   string
	MinPrice float64
	MaxPrice float64
	SortBy   domain.SortOrder
}

type ProductsReader interface {
	ListProducts(context.Context, ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

type ProductsSearcher interface {
	SearchProducts(ctx context.Context, text string) ([]domain.ProductSummary, error)
}

type ProductsWriter interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CategoriesReader interface {
	ListCategories(context.Context) ([]domain.Category, error)
}

type WishlistStore interface {
	GetWishlist(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID string, productID int64) error
	RemoveFromWishlist(ctx context.Context, userID string, productID int64) error
}

// ViewEventsReader serves the analytics aggregator. Implementations
// return [domain.ErrUnavailable] (wrapped) when the backing table was
// never provisioned; the aggregator degrades those inputs to zero.
type ViewEventsReader interface {
	ProductViews(ctx context.Context, windowDays int) ([]domain.ProductViewEvent, error)
	SiteVisitCount(context.Context) (int, error)
}

type WishlistRowsReader interface {
	WishlistRows(context.Context) ([]domain.WishlistItem, error)
}

type ProfilesCounter interface {
	ProfileCount(context.Context) (int, error)
}

type SettingsStore interface {
	GetBusinessSettings(context.Context) (domain.BusinessSettings, error)
	UpdateBusinessSettings(context.Context, domain.BusinessSettings) (domain.BusinessSettings, error)
}

type AboutStore interface {
	GetAboutContent(context.Context) (domain.AboutContent, error)
	UpdateAboutContent(context.Context, domain.AboutContent) (domain.AboutContent, error)
}

// EventsTracker publishes usage events. Tracking is best effort:
// implementations log failures and never block the page that fired them.
type EventsTracker interface {
	TrackProductView(context.Context, domain.ProductViewEvent) error
	TrackSiteVisit(context.Context, domain.SiteVisitEvent) error
}

// EventsSaver persists consumed usage events.
type EventsSaver interface {
	SaveProductViews(context.Context, []domain.ProductViewEvent) error
	SaveSiteVisits(context.Context, []domain.SiteVisitEvent) error
}
