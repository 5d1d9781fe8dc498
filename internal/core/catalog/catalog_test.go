package catalog_test

import (
	"math"
	"testing"
	"time"

	"github.com/sanjibtex/storefront/internal/core/catalog"
	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{
			ID:       1,
			Name:     "Athletic Shorts",
			Category: "Shorts",
			Price:    25,
			Rating:   4.2,
			Colors:   []string{"Black", "Navy"},
		},
		{
			ID:         2,
			Name:       "Compression Leggings",
			Category:   "Leggings",
			Price:      45,
			Rating:     4.8,
			Colors:     []string{"Black"},
			IsFeatured: true,
		},
		{
			ID:       3,
			Name:     "Running Joggers",
			Category: "Joggers",
			Price:    60,
			Rating:   4.5,
			Colors:   []string{"Grey"},
		},
	}
}

func TestApplyFilters(t *testing.T) {
	ps := fixtureProducts()

	t.Run("EmptyStatePassesAll", func(t *testing.T) {
		got := catalog.Apply(ps, domain.DefaultFilterState())
		assert.Len(t, got, len(ps))
	})

	t.Run("NameSubstringCaseInsensitive", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Search = "leg"
		got := catalog.Apply(ps, state)
		require.Len(t, got, 1)
		assert.Equal(t, "Compression Leggings", got[0].Name)
	})

	t.Run("CategoryExactMatch", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Category = "Shorts"
		got := catalog.Apply(ps, state)
		require.Len(t, got, 1)
		assert.EqualValues(t, 1, got[0].ID)
	})

	t.Run("PriceBrackets", func(t *testing.T) {
		tests := []struct {
			bracket domain.PriceRange
			wantIDs []int64
		}{
			// Product 2 is featured, so the default sort lifts it.
			{domain.PriceAll, []int64{2, 1, 3}},
			{domain.PriceUnder30, []int64{1}},
			{domain.Price30To50, []int64{2}},
			{domain.PriceOver50, []int64{3}},
		}
		for _, tc := range tests {
			state := domain.DefaultFilterState()
			state.PriceRange = tc.bracket
			got := catalog.Apply(ps, state)
			var ids []int64
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.wantIDs, ids, "bracket %q", tc.bracket)
		}
	})

	t.Run("BracketBoundariesInclusive", func(t *testing.T) {
		boundary := []domain.Product{
			{ID: 1, Price: 30},
			{ID: 2, Price: 50},
		}
		state := domain.DefaultFilterState()
		state.PriceRange = domain.Price30To50
		got := catalog.Apply(boundary, state)
		assert.Len(t, got, 2)

		state.PriceRange = domain.PriceUnder30
		assert.Empty(t, catalog.Apply(boundary, state))

		state.PriceRange = domain.PriceOver50
		assert.Empty(t, catalog.Apply(boundary, state))
	})

	t.Run("NaNPriceFailsClosed", func(t *testing.T) {
		broken := []domain.Product{{ID: 9, Price: math.NaN()}}
		for _, bracket := range []domain.PriceRange{
			domain.PriceUnder30, domain.Price30To50, domain.PriceOver50,
		} {
			state := domain.DefaultFilterState()
			state.PriceRange = bracket
			assert.Empty(t, catalog.Apply(broken, state))
		}
	})

	t.Run("ColorIntersection", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Colors = []string{"Navy", "Grey"}
		got := catalog.Apply(ps, state)
		require.Len(t, got, 2)
		assert.EqualValues(t, 1, got[0].ID)
		assert.EqualValues(t, 3, got[1].ID)
	})

	t.Run("OutputIsSubsetAndMatching", func(t *testing.T) {
		state := domain.FilterState{
			Search:     "s",
			Category:   domain.CategoryAll,
			PriceRange: domain.PriceUnder30,
			SortBy:     domain.SortFeatured,
			Colors:     []string{"Black"},
		}
		got := catalog.Apply(ps, state)
		byID := make(map[int64]domain.Product)
		for _, p := range ps {
			byID[p.ID] = p
		}
		for _, p := range got {
			_, ok := byID[p.ID]
			require.True(t, ok, "product %d fabricated", p.ID)
			assert.Less(t, p.Price, 30.0)
			assert.Contains(t, p.Colors, "Black")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.PriceRange = domain.Price30To50
		once := catalog.Apply(ps, state)
		twice := catalog.Apply(once, state)
		assert.Equal(t, once, twice)
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		original := fixtureProducts()
		state := domain.DefaultFilterState()
		state.SortBy = domain.SortPriceDesc
		_ = catalog.Apply(original, state)
		assert.Equal(t, fixtureProducts(), original)
	})
}

func TestApplySort(t *testing.T) {
	t.Run("PriceAscending", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.SortBy = domain.SortPriceAsc
		got := catalog.Apply(fixtureProducts(), state)
		require.Len(t, got, 3)
		assert.EqualValues(t, 1, got[0].ID)
		assert.EqualValues(t, 2, got[1].ID)
		assert.EqualValues(t, 3, got[2].ID)
	})

	t.Run("PriceDescending", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.SortBy = domain.SortPriceDesc
		got := catalog.Apply(fixtureProducts(), state)
		require.Len(t, got, 3)
		assert.EqualValues(t, 3, got[0].ID)
	})

	t.Run("RatingDescending", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.SortBy = domain.SortRatingDesc
		got := catalog.Apply(fixtureProducts(), state)
		require.Len(t, got, 3)
		assert.EqualValues(t, 2, got[0].ID)
	})

	t.Run("NewestFirstZeroTimestampLast", func(t *testing.T) {
		now := time.Now()
		ps := []domain.Product{
			{ID: 1, CreatedAt: now.Add(-time.Hour)},
			{ID: 2}, // missing timestamp
			{ID: 3, CreatedAt: now},
		}
		state := domain.DefaultFilterState()
		state.SortBy = domain.SortNewest
		got := catalog.Apply(ps, state)
		require.Len(t, got, 3)
		assert.EqualValues(t, 3, got[0].ID)
		assert.EqualValues(t, 1, got[1].ID)
		assert.EqualValues(t, 2, got[2].ID)
	})

	t.Run("FeaturedFirstStableWithinTier", func(t *testing.T) {
		ps := []domain.Product{
			{ID: 1},
			{ID: 2, IsFeatured: true},
			{ID: 3},
			{ID: 4, IsFeatured: true},
		}
		got := catalog.Apply(ps, domain.DefaultFilterState())
		require.Len(t, got, 4)
		assert.EqualValues(t, 2, got[0].ID)
		assert.EqualValues(t, 4, got[1].ID)
		assert.EqualValues(t, 1, got[2].ID)
		assert.EqualValues(t, 3, got[3].ID)
	})

	t.Run("StableOnEqualKeys", func(t *testing.T) {
		ps := []domain.Product{
			{ID: 1, Price: 10, Name: "a"},
			{ID: 2, Price: 10, Name: "b"},
			{ID: 3, Price: 10, Name: "c"},
		}
		state := domain.DefaultFilterState()
		state.SortBy = domain.SortPriceAsc
		got := catalog.Apply(ps, state)
		require.Len(t, got, 3)
		assert.EqualValues(t, 1, got[0].ID)
		assert.EqualValues(t, 2, got[1].ID)
		assert.EqualValues(t, 3, got[2].ID)
	})

	t.Run("FeaturedDoesNotBeatPriceBracket", func(t *testing.T) {
		ps := []domain.Product{
			{ID: 1, Price: 25, Category: "Shorts"},
			{ID: 2, Price: 45, Category: "Leggings", IsFeatured: true},
		}
		state := domain.FilterState{
			Category:   domain.CategoryAll,
			PriceRange: domain.PriceUnder30,
			SortBy:     domain.SortFeatured,
		}
		got := catalog.Apply(ps, state)
		require.Len(t, got, 1)
		assert.EqualValues(t, 1, got[0].ID)
	})
}

func TestColors(t *testing.T) {
	got := catalog.Colors(fixtureProducts())
	assert.Equal(t, []string{"Black", "Grey", "Navy"}, got)
}

func TestDiscountPercentage(t *testing.T) {
	orig := 40.0
	tests := []struct {
		name string
		p    domain.Product
		want int
	}{
		{"NoOriginalPrice", domain.Product{Price: 30}, 0},
		{"OriginalBelowPrice", domain.Product{Price: 50, OriginalPrice: &orig}, 0},
		{"Discounted", domain.Product{Price: 30, OriginalPrice: &orig}, 25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.DiscountPercentage())
		})
	}
}
