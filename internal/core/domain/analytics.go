package domain

// wishlistWeight is the multiplier applied to wishlist entries in the
// engagement heuristic: a wishlist add signals twice the interest of a view.
const wishlistWeight = 2

// ProductEngagement ranks a product by the engagement heuristic.
// Views cover the trailing analytics window, wishlists are all-time.
type ProductEngagement struct {
	ProductID   int64
	Name        string
	Category    string
	Price       float64
	Stock       int
	Rating      float64
	ReviewCount int
	Views       int
	Wishlists   int
	Engagement  int
}

// EngagementScore computes views + 2*wishlists.
func EngagementScore(views, wishlists int) int {
	return views + wishlistWeight*wishlists
}

// CategoryViews is the per-category view rollup. Events are attributed
// to the product's current category, not the category at event time.
type CategoryViews struct {
	CategoryID   int64
	Name         string
	ProductCount int
	Views        int
}

// LiveStats is the admin dashboard headline block.
type LiveStats struct {
	TotalProducts    int
	TotalCustomers   int
	TotalWishlists   int
	TotalVisits      int
	EstimatedRevenue int
}

// AnalyticsSnapshot is one wholesale recomputation of the dashboard data.
type AnalyticsSnapshot struct {
	Live       LiveStats
	Products   []ProductEngagement
	Categories []CategoryViews
}
