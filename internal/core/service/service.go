// Package service is the storefront application core: it composes the
// repository gateway with the discovery pipeline and owns the admin
// write paths.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sanjibtex/storefront/internal/core/catalog"
	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

const featuredLimit = 8

// Defaults applied to admin-created products, matching the storefront's
// placeholder rendering expectations.
var (
	defaultColors   = []string{"Black"}
	defaultSizes    = []string{"M"}
	defaultImages   = []string{"/placeholder.svg?height=300&width=300"}
	defaultFeatures = []string{"High Quality", "Comfortable Fit"}
	defaultSpecs    = map[string]string{
		"Material": "Cotton Blend",
		"Care":     "Machine Wash",
	}
	defaultRating = 4.5
)

type Service struct {
	products   port.ProductsReader
	searcher   port.ProductsSearcher
	writer     port.ProductsWriter
	categories port.CategoriesReader
	settings   port.SettingsStore
	about      port.AboutStore
	tracker    port.EventsTracker
}

func New(
	products port.ProductsReader,
	searcher port.ProductsSearcher,
	writer port.ProductsWriter,
	categories port.CategoriesReader,
	settings port.SettingsStore,
	about port.AboutStore,
	tracker port.EventsTracker,
) Service {
	return Service{
		products,
		searcher,
		writer,
		categories,
		settings,
		about,
		tracker,
	}
}

// Browse fetches the active catalog and applies the in-memory
// filter/sort pipeline. Gateway failure degrades to an empty list.
func (s Service) Browse(
	ctx context.Context, state domain.FilterState,
) []domain.Product {
	const op = "Service.Browse"
	log := slog.With("op", op)

	ps, err := s.products.ListProducts(ctx, port.ProductQuery{})
	if err != nil {
		log.Error("failed to list products", "err", err)
		return nil
	}
	return catalog.Apply(ps, state)
}

// Featured returns up to 8 featured products, newest first.
func (s Service) Featured(ctx context.Context) []domain.Product {
	const op = "Service.Featured"
	log := slog.With("op", op)

	ps, err := s.products.ListProducts(ctx, port.ProductQuery{
		SortBy: domain.SortNewest,
	})
	if err != nil {
		log.Error("failed to list products", "err", err)
		return nil
	}

	var out []domain.Product
	for _, p := range ps {
		if !p.IsFeatured {
			continue
		}
		out = append(out, p)
		if len(out) == featuredLimit {
			break
		}
	}
	return out
}

// FilterColors collects the distinct colors across the active
// catalog, for building the color filter checklist.
func (s Service) FilterColors(ctx context.Context) []string {
	const op = "Service.FilterColors"
	log := slog.With("op", op)

	ps, err := s.products.ListProducts(ctx, port.ProductQuery{})
	if err != nil {
		log.Error("failed to list products", "err", err)
		return []string{}
	}
	return catalog.Colors(ps)
}

// Product fetches one active product and fires a best-effort view
// event for it.
func (s Service) Product(
	ctx context.Context, id int64, identity *domain.Identity,
) (domain.Product, error) {
	const op = "Service.Product"

	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	evt := domain.ProductViewEvent{ProductID: id, ViewedAt: time.Now()}
	if identity.IsAuthenticated() {
		evt.UserID = identity.UserID
	}
	if err := s.tracker.TrackProductView(ctx, evt); err != nil {
		slog.Warn("failed to track product view", "op", op, "err", err)
	}

	return p, nil
}

// Search runs the capped summary search. Failure degrades to empty.
func (s Service) Search(
	ctx context.Context, text string,
) []domain.ProductSummary {
	const op = "Service.Search"
	log := slog.With("op", op)

	if strings.TrimSpace(text) == "" {
		return nil
	}

	rs, err := s.searcher.SearchProducts(ctx, text)
	if err != nil {
		log.Error("search failed", "err", err)
		return nil
	}
	return rs
}

func (s Service) Categories(ctx context.Context) []domain.Category {
	const op = "Service.Categories"
	log := slog.With("op", op)

	cs, err := s.categories.ListCategories(ctx)
	if err != nil {
		log.Error("failed to list categories", "err", err)
		return nil
	}
	return cs
}

// Settings returns the stored business settings, or the shipped
// defaults when the row is missing or the store is down.
func (s Service) Settings(ctx context.Context) domain.BusinessSettings {
	const op = "Service.Settings"
	log := slog.With("op", op)

	bs, err := s.settings.GetBusinessSettings(ctx)
	if err != nil {
		log.Warn("falling back to default settings", "err", err)
		return DefaultBusinessSettings()
	}
	return bs
}

func (s Service) About(ctx context.Context) (domain.AboutContent, error) {
	const op = "Service.About"

	ac, err := s.about.GetAboutContent(ctx)
	if err != nil {
		return domain.AboutContent{}, fmt.Errorf("%s: %w", op, err)
	}
	return ac, nil
}

// TrackVisit records a page visit, best effort.
func (s Service) TrackVisit(
	ctx context.Context, pageURL string, identity *domain.Identity,
) {
	const op = "Service.TrackVisit"

	evt := domain.SiteVisitEvent{PageURL: pageURL, VisitedAt: time.Now()}
	if identity.IsAuthenticated() {
		evt.UserID = identity.UserID
	}
	if err := s.tracker.TrackSiteVisit(ctx, evt); err != nil {
		slog.Warn("failed to track site visit", "op", op, "err", err)
	}
}

// CreateProduct validates, applies defaults, derives the discount and
// stores the product.
func (s Service) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p = applyDefaults(p)

	created, err := s.writer.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s Service) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.UpdateProduct"

	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.UpdatedAt = time.Now()
	updated, err := s.writer.UpdateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "Service.DeleteProduct"

	if err := s.writer.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) UpdateSettings(
	ctx context.Context, bs domain.BusinessSettings,
) (domain.BusinessSettings, error) {
	const op = "Service.UpdateSettings"

	bs.UpdatedAt = time.Now()
	updated, err := s.settings.UpdateBusinessSettings(ctx, bs)
	if err != nil {
		return domain.BusinessSettings{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s Service) UpdateAbout(
	ctx context.Context, ac domain.AboutContent,
) (domain.AboutContent, error) {
	const op = "Service.UpdateAbout"

	ac.UpdatedAt = time.Now()
	updated, err := s.about.UpdateAboutContent(ctx, ac)
	if err != nil {
		return domain.AboutContent{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func validateProduct(p domain.Product) error {
	var errs []error

	if len(strings.TrimSpace(p.Name)) < 2 {
		errs = append(errs,
			errors.New("name must be at least 2 characters long"))
	}
	if len(strings.TrimSpace(p.Description)) < 10 {
		errs = append(errs,
			errors.New("description must be at least 10 characters long"))
	}
	if p.Category == "" {
		errs = append(errs, errors.New("category is required"))
	}
	if p.Price <= 0 {
		errs = append(errs, errors.New("price must be greater than 0"))
	}
	if p.Stock < 0 {
		errs = append(errs, errors.New("stock must be non-negative"))
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidProduct, errors.Join(errs...))
	}
	return nil
}

func applyDefaults(p domain.Product) domain.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if len(p.Colors) == 0 {
		p.Colors = defaultColors
	}
	if len(p.Sizes) == 0 {
		p.Sizes = defaultSizes
	}
	if len(p.Images) == 0 {
		p.Images = defaultImages
	}
	if len(p.Features) == 0 {
		p.Features = defaultFeatures
	}
	if len(p.Specifications) == 0 {
		p.Specifications = defaultSpecs
	}
	if p.Rating == 0 {
		p.Rating = defaultRating
	}
	return p
}

// DefaultBusinessSettings is served when the settings row was never
// provisioned, keeping the storefront renderable.
func DefaultBusinessSettings() domain.BusinessSettings {
	now := time.Now()
	return domain.BusinessSettings{
		ID:           1,
		BusinessName: "Sanjib Textile",
		Tagline:      "Premium Sportswear for Every Athlete",
		Description:  "We create premium sportswear that empowers athletes at every level.",
		Phone:        "+91 7595858158",
		Email:        "orders@sanjibtextile.com",
		Whatsapp:     "+91 7595858158",
		Address:      "India",
		HeroTitle:    "Premium Sportswear for Every Athlete",
		HeroSubtitle: "Discover our collection of high-quality bottom wear designed for performance, comfort, and style.",
		FacebookURL:  "https://facebook.com/sanjibtextile",
		InstagramURL: "https://instagram.com/sanjibtextile",
		TwitterURL:   "https://twitter.com/sanjibtextile",
		LinkedinURL:  "https://linkedin.com/company/sanjibtextile",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
