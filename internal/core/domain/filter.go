package domain

// PriceRange is the enumerated price bracket filter.
type PriceRange string

const (
	PriceAll     PriceRange = "all"
	PriceUnder30 PriceRange = "under-30"
	Price30To50  PriceRange = "30-50"
	PriceOver50  PriceRange = "over-50"
)

// SortOrder is the enumerated catalog sort key.
type SortOrder string

const (
	SortFeatured   SortOrder = "featured"
	SortPriceAsc   SortOrder = "price-low"
	SortPriceDesc  SortOrder = "price-high"
	SortRatingDesc SortOrder = "rating"
	SortNewest     SortOrder = "newest"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// FilterState is the transient catalog-page filter selection,
// owned by the presentation layer and passed in by value.
type FilterState struct {
	Search     string
	Category   string
	PriceRange PriceRange
	SortBy     SortOrder
	Colors     []string
}

// DefaultFilterState selects everything in featured order.
func DefaultFilterState() FilterState {
	return FilterState{
		Category:   CategoryAll,
		PriceRange: PriceAll,
		SortBy:     SortFeatured,
	}
}
