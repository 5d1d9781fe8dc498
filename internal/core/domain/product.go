package domain

import (
	"math"
	"time"
)

type (
	Product struct {
		ID             int64
		Name           string
		Description    string
		Category       string
		Colors         []string
		Sizes          []string
		Images         []string
		Price          float64
		OriginalPrice  *float64
		Stock          int
		Rating         float64
		ReviewCount    int
		Features       []string
		Specifications map[string]string
		IsActive       bool
		IsFeatured     bool
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}

	// ProductSummary is the search projection: the handful of fields
	// the header search dropdown renders.
	ProductSummary struct {
		ID       int64
		Name     string
		Price    float64
		Images   []string
		Category string
	}
)

// DiscountPercentage derives the discount from the original price.
// Zero when no original price is set or it does not exceed the price.
func (p Product) DiscountPercentage() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}

func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Images:   p.Images,
		Category: p.Category,
	}
}

type Category struct {
	ID           int64
	Name         string
	Description  string
	Image        string
	ProductCount int
	IsActive     bool
	CreatedAt    time.Time
}

type BusinessSettings struct {
	ID                int64
	BusinessName      string
	Tagline           string
	Description       string
	Phone             string
	Email             string
	Whatsapp          string
	Address           string
	LogoURL           string
	HeroTitle         string
	HeroSubtitle      string
	HeroImage         string
	FacebookURL       string
	InstagramURL      string
	TwitterURL        string
	LinkedinURL       string
	ShowContactBar    bool
	ContactBarMessage string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type AboutStatistics struct {
	Customers int
	Products  int
	Rating    float64
	Years     int
}

type AboutContent struct {
	ID              int64
	HeroTitle       string
	HeroSubtitle    string
	StoryTitle      string
	StoryContent    string
	StoryImage      string
	ValuesTitle     string
	ValuesSubtitle  string
	TeamTitle       string
	TeamSubtitle    string
	ContactTitle    string
	ContactSubtitle string
	Statistics      AboutStatistics
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type WishlistItem struct {
	ID        string
	UserID    string
	ProductID int64
	CreatedAt time.Time
}
