package httphandler

import (
	"time"

	"github.com/sanjibtex/storefront/internal/core/domain"
)

type (
	Product struct {
		ID                 int64             `json:"id"`
		Name               string            `json:"name"`
		Description        string            `json:"description"`
		Category           string            `json:"category"`
		Colors             []string          `json:"colors"`
		Sizes              []string          `json:"sizes"`
		Images             []string          `json:"images"`
		Price              float64           `json:"price"`
		OriginalPrice      *float64          `json:"original_price,omitempty"`
		DiscountPercentage int               `json:"discount_percentage"`
		Stock              int               `json:"stock"`
		Rating             float64           `json:"rating"`
		ReviewCount        int               `json:"review_count"`
		Features           []string          `json:"features"`
		Specifications     map[string]string `json:"specifications"`
		IsActive           bool              `json:"is_active"`
		IsFeatured         bool              `json:"is_featured"`
		CreatedAt          time.Time         `json:"created_at"`
		UpdatedAt          time.Time         `json:"updated_at"`
	}

	ProductSummary struct {
		ID       int64    `json:"id"`
		Name     string   `json:"name"`
		Price    float64  `json:"price"`
		Images   []string `json:"images"`
		Category string   `json:"category"`
	}

	Category struct {
		ID           int64     `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description"`
		Image        string    `json:"image"`
		ProductCount int       `json:"product_count"`
		IsActive     bool      `json:"is_active"`
		CreatedAt    time.Time `json:"created_at"`
	}

	BusinessSettings struct {
		ID                int64     `json:"id"`
		BusinessName      string    `json:"business_name"`
		Tagline           string    `json:"tagline"`
		Description       string    `json:"description"`
		Phone             string    `json:"phone"`
		Email             string    `json:"email"`
		Whatsapp          string    `json:"whatsapp"`
		Address           string    `json:"address"`
		LogoURL           string    `json:"logo_url"`
		HeroTitle         string    `json:"hero_title"`
		HeroSubtitle      string    `json:"hero_subtitle"`
		HeroImage         string    `json:"hero_image"`
		FacebookURL       string    `json:"facebook_url"`
		InstagramURL      string    `json:"instagram_url"`
		TwitterURL        string    `json:"twitter_url"`
		LinkedinURL       string    `json:"linkedin_url"`
		ShowContactBar    bool      `json:"show_contact_bar"`
		ContactBarMessage string    `json:"contact_bar_message"`
		CreatedAt         time.Time `json:"created_at"`
		UpdatedAt         time.Time `json:"updated_at"`
	}

	AboutStatistics struct {
		Customers int     `json:"customers"`
		Products  int     `json:"products"`
		Rating    float64 `json:"rating"`
		Years     int     `json:"years"`
	}

	AboutContent struct {
		ID              int64           `json:"id"`
		HeroTitle       string          `json:"hero_title"`
		HeroSubtitle    string          `json:"hero_subtitle"`
		StoryTitle      string          `json:"story_title"`
		StoryContent    string          `json:"story_content"`
		StoryImage      string          `json:"story_image"`
		ValuesTitle     string          `json:"values_title"`
		ValuesSubtitle  string          `json:"values_subtitle"`
		TeamTitle       string          `json:"team_title"`
		TeamSubtitle    string          `json:"team_subtitle"`
		ContactTitle    string          `json:"contact_title"`
		ContactSubtitle string          `json:"contact_subtitle"`
		Statistics      AboutStatistics `json:"statistics"`
		CreatedAt       time.Time       `json:"created_at"`
		UpdatedAt       time.Time       `json:"updated_at"`
	}

	Wishlist struct {
		ProductIDs []int64 `json:"product_ids"`
		Count      int     `json:"count"`
	}

	ToggleResult struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}

	TrackVisit struct {
		PageURL string `json:"page_url"`
	}

	ProductEngagement struct {
		ProductID   int64   `json:"product_id"`
		Name        string  `json:"name"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
		Views       int     `json:"views"`
		Wishlists   int     `json:"wishlists"`
		Engagement  int     `json:"engagement"`
	}

	CategoryViews struct {
		CategoryID   int64  `json:"category_id"`
		Name         string `json:"name"`
		ProductCount int    `json:"product_count"`
		Views        int    `json:"views"`
	}

	LiveStats struct {
		TotalProducts    int `json:"total_products"`
		TotalCustomers   int `json:"total_customers"`
		TotalWishlists   int `json:"total_wishlists"`
		TotalVisits      int `json:"total_visits"`
		EstimatedRevenue int `json:"estimated_revenue"`
	}

	AnalyticsSnapshot struct {
		Live       LiveStats           `json:"live"`
		Products   []ProductEngagement `json:"products"`
		Categories []CategoryViews     `json:"categories"`
	}

	LiveViewCount struct {
		ProductID int64 `json:"product_id"`
		Views     int64 `json:"views"`
	}
)

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Category:           p.Category,
		Colors:             p.Colors,
		Sizes:              p.Sizes,
		Images:             p.Images,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage(),
		Stock:              p.Stock,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		Features:           p.Features,
		Specifications:     p.Specifications,
		IsActive:           p.IsActive,
		IsFeatured:         p.IsFeatured,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func productsFromDomain(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, productFromDomain(p))
	}
	return out
}

func (p Product) toDomain() domain.Product {
	return domain.Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Colors:         p.Colors,
		Sizes:          p.Sizes,
		Images:         p.Images,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Stock:          p.Stock,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Features:       p.Features,
		Specifications: p.Specifications,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
	}
}

func summariesFromDomain(ss []domain.ProductSummary) []ProductSummary {
	out := make([]ProductSummary, 0, len(ss))
	for _, s := range ss {
		out = append(out, ProductSummary{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Images:   s.Images,
			Category: s.Category,
		})
	}
	return out
}

func categoriesFromDomain(cs []domain.Category) []Category {
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category{
			ID:           c.ID,
			Name:         c.Name,
			Description:  c.Description,
			Image:        c.Image,
			ProductCount: c.ProductCount,
			IsActive:     c.IsActive,
			CreatedAt:    c.CreatedAt,
		})
	}
	return out
}

func settingsFromDomain(bs domain.BusinessSettings) BusinessSettings {
	return BusinessSettings{
		ID:                bs.ID,
		BusinessName:      bs.BusinessName,
		Tagline:           bs.Tagline,
		Description:       bs.Description,
		Phone:             bs.Phone,
		Email:             bs.Email,
		Whatsapp:          bs.Whatsapp,
		Address:           bs.Address,
		LogoURL:           bs.LogoURL,
		HeroTitle:         bs.HeroTitle,
		HeroSubtitle:      bs.HeroSubtitle,
		HeroImage:         bs.HeroImage,
		FacebookURL:       bs.FacebookURL,
		InstagramURL:      bs.InstagramURL,
		TwitterURL:        bs.TwitterURL,
		LinkedinURL:       bs.LinkedinURL,
		ShowContactBar:    bs.ShowContactBar,
		ContactBarMessage: bs.ContactBarMessage,
		CreatedAt:         bs.CreatedAt,
		UpdatedAt:         bs.UpdatedAt,
	}
}

func (bs BusinessSettings) toDomain() domain.BusinessSettings {
	return domain.BusinessSettings{
		ID:                bs.ID,
		BusinessName:      bs.BusinessName,
		Tagline:           bs.Tagline,
		Description:       bs.Description,
		Phone:             bs.Phone,
		Email:             bs.Email,
		Whatsapp:          bs.Whatsapp,
		Address:           bs.Address,
		LogoURL:           bs.LogoURL,
		HeroTitle:         bs.HeroTitle,
		HeroSubtitle:      bs.HeroSubtitle,
		HeroImage:         bs.HeroImage,
		FacebookURL:       bs.FacebookURL,
		InstagramURL:      bs.InstagramURL,
		TwitterURL:        bs.TwitterURL,
		LinkedinURL:       bs.LinkedinURL,
		ShowContactBar:    bs.ShowContactBar,
		ContactBarMessage: bs.ContactBarMessage,
	}
}

func aboutFromDomain(ac domain.AboutContent) AboutContent {
	return AboutContent{
		ID:              ac.ID,
		HeroTitle:       ac.HeroTitle,
		HeroSubtitle:    ac.HeroSubtitle,
		StoryTitle:      ac.StoryTitle,
		StoryContent:    ac.StoryContent,
		StoryImage:      ac.StoryImage,
		ValuesTitle:     ac.ValuesTitle,
		ValuesSubtitle:  ac.ValuesSubtitle,
		TeamTitle:       ac.TeamTitle,
		TeamSubtitle:    ac.TeamSubtitle,
		ContactTitle:    ac.ContactTitle,
		ContactSubtitle: ac.ContactSubtitle,
		Statistics: AboutStatistics{
			Customers: ac.Statistics.Customers,
			Products:  ac.Statistics.Products,
			Rating:    ac.Statistics.Rating,
			Years:     ac.Statistics.Years,
		},
		CreatedAt: ac.CreatedAt,
		UpdatedAt: ac.UpdatedAt,
	}
}

func (ac AboutContent) toDomain() domain.AboutContent {
	return domain.AboutContent{
		ID:              ac.ID,
		HeroTitle:       ac.HeroTitle,
		HeroSubtitle:    ac.HeroSubtitle,
		StoryTitle:      ac.StoryTitle,
		StoryContent:    ac.StoryContent,
		StoryImage:      ac.StoryImage,
		ValuesTitle:     ac.ValuesTitle,
		ValuesSubtitle:  ac.ValuesSubtitle,
		TeamTitle:       ac.TeamTitle,
		TeamSubtitle:    ac.TeamSubtitle,
		ContactTitle:    ac.ContactTitle,
		ContactSubtitle: ac.ContactSubtitle,
		Statistics: domain.AboutStatistics{
			Customers: ac.Statistics.Customers,
			Products:  ac.Statistics.Products,
			Rating:    ac.Statistics.Rating,
			Years:     ac.Statistics.Years,
		},
	}
}

func snapshotFromDomain(snap domain.AnalyticsSnapshot) AnalyticsSnapshot {
	out := AnalyticsSnapshot{
		Live: LiveStats{
			TotalProducts:    snap.Live.TotalProducts,
			TotalCustomers:   snap.Live.TotalCustomers,
			TotalWishlists:   snap.Live.TotalWishlists,
			TotalVisits:      snap.Live.TotalVisits,
			EstimatedRevenue: snap.Live.EstimatedRevenue,
		},
		Products:   make([]ProductEngagement, 0, len(snap.Products)),
		Categories: make([]CategoryViews, 0, len(snap.Categories)),
	}
	for _, pe := range snap.Products {
		out.Products = append(out.Products, ProductEngagement{
			ProductID:   pe.ProductID,
			Name:        pe.Name,
			Category:    pe.Category,
			Price:       pe.Price,
			Stock:       pe.Stock,
			Rating:      pe.Rating,
			ReviewCount: pe.ReviewCount,
			Views:       pe.Views,
			Wishlists:   pe.Wishlists,
			Engagement:  pe.Engagement,
		})
	}
	for _, cv := range snap.Categories {
		out.Categories = append(out.Categories, CategoryViews{
			CategoryID:   cv.CategoryID,
			Name:         cv.Name,
			ProductCount: cv.ProductCount,
			Views:        cv.Views,
		})
	}
	return out
}
