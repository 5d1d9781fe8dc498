// Package catalog holds the client-side product discovery pipeline:
// in-memory filtering and ordering of an already fetched product list.
package catalog

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/sanjibtex/storefront/internal/core/domain"
)

// Apply returns the subset of ps matching every predicate in state,
// ordered by the state's sort key. The input slice is not mutated and
// the result is always a fresh slice. Ties keep their input order.
func Apply(ps []domain.Product, state domain.FilterState) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if matches(p, state) {
			out = append(out, p)
		}
	}
	sortProducts(out, state.SortBy)
	return out
}

func matches(p domain.Product, state domain.FilterState) bool {
	return matchesName(p, state.Search) &&
		matchesCategory(p, state.Category) &&
		matchesPrice(p, state.PriceRange) &&
		matchesColors(p, state.Colors)
}

func matchesName(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(p.Name), strings.ToLower(search),
	)
}

func matchesCategory(p domain.Product, category string) bool {
	if category == "" || category == domain.CategoryAll {
		return true
	}
	return p.Category == category
}

func matchesPrice(p domain.Product, bracket domain.PriceRange) bool {
	if bracket == "" || bracket == domain.PriceAll {
		return true
	}

	// Fail closed: a price that is not a number matches no bracket.
	if math.IsNaN(p.Price) {
		return false
	}

	switch bracket {
	case domain.PriceUnder30:
		return p.Price < 30
	case domain.Price30To50:
		return p.Price >= 30 && p.Price <= 50
	case domain.PriceOver50:
		return p.Price > 50
	}
	return false
}

func matchesColors(p domain.Product, colors []string) bool {
	if len(colors) == 0 {
		return true
	}
	for _, c := range colors {
		if slices.Contains(p.Colors, c) {
			return true
		}
	}
	return false
}

func sortProducts(ps []domain.Product, order domain.SortOrder) {
	switch order {
	case domain.SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price < ps[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price > ps[j].Price
		})
	case domain.SortRatingDesc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Rating > ps[j].Rating
		})
	case domain.SortNewest:
		// Zero (missing or unparseable) timestamps sort last.
		sort.SliceStable(ps, func(i, j int) bool {
			if ps[j].CreatedAt.IsZero() {
				return !ps[i].CreatedAt.IsZero()
			}
			if ps[i].CreatedAt.IsZero() {
				return false
			}
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		})
	default:
		// Featured first, catalog order within each tier. The stable
		// sort carries the within-tier ordering guarantee.
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].IsFeatured && !ps[j].IsFeatured
		})
	}
}

// Colors collects the distinct colors across ps, sorted, for building
// the color filter checklist.
func Colors(ps []domain.Product) []string {
	set := make(map[string]struct{})
	for _, p := range ps {
		for _, c := range p.Colors {
			set[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
