package domain

import "time"

type (
	// ProductViewEvent is a single product detail-page view.
	ProductViewEvent struct {
		ProductID int64
		UserID    string
		ViewedAt  time.Time
	}

	// SiteVisitEvent is a single page load anywhere on the storefront.
	SiteVisitEvent struct {
		PageURL   string
		UserID    string
		VisitedAt time.Time
	}
)
