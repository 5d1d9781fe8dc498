// Package wishlist exposes membership and toggle intents for the
// current identity, reconciling with the remote store after every
// mutation instead of patching locally.
package wishlist

import (
	"fmt"
	"log/slog"
	"sync"

	"context"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

// Result is the outcome of a toggle intent.
type Result int

const (
	ResultAdded Result = iota
	ResultRemoved
	ResultAuthRequired
	ResultFailed
)

// ViewModel tracks the wishlist membership set for one identity.
// Membership is exactly what the store last reported; the count is
// never adjusted speculatively.
type ViewModel struct {
	store    port.WishlistStore
	identity *domain.Identity

	// toggleMu serializes mutate+refetch cycles so a second toggle on
	// an item cannot start before the prior one settles.
	toggleMu sync.Mutex

	mu         sync.Mutex
	membership map[int64]struct{}
}

func New(store port.WishlistStore, identity *domain.Identity) *ViewModel {
	return &ViewModel{
		store:      store,
		identity:   identity,
		membership: make(map[int64]struct{}),
	}
}

// Refresh re-reads the membership set. Fetch failures degrade to an
// empty set rather than propagating to the page.
func (vm *ViewModel) Refresh(ctx context.Context) {
	const op = "wishlist.ViewModel.Refresh"
	log := slog.With("op", op)

	if !vm.identity.IsAuthenticated() {
		vm.replace(nil)
		return
	}

	items, err := vm.store.GetWishlist(ctx, vm.identity.UserID)
	if err != nil {
		log.Error("failed to fetch wishlist", "err", err)
		vm.replace(nil)
		return
	}
	vm.replace(items)
}

// IsWishlisted is a pure lookup against the last-fetched set.
func (vm *ViewModel) IsWishlisted(productID int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.membership[productID]
	return ok
}

// Count is the size of the last successfully fetched membership set.
func (vm *ViewModel) Count() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return len(vm.membership)
}

// Toggle adds or removes the product for the current identity and then
// refetches the whole set, so a failed remote write can never leave
// local state inconsistent with the server.
func (vm *ViewModel) Toggle(ctx context.Context, productID int64) (Result, error) {
	const op = "wishlist.ViewModel.Toggle"
	log := slog.With("op", op, "productID", productID)

	if !vm.identity.IsAuthenticated() {
		return ResultAuthRequired, domain.ErrAuthRequired
	}

	vm.toggleMu.Lock()
	defer vm.toggleMu.Unlock()

	wishlisted := vm.IsWishlisted(productID)

	var err error
	if wishlisted {
		err = vm.store.RemoveFromWishlist(ctx, vm.identity.UserID, productID)
	} else {
		err = vm.store.AddToWishlist(ctx, vm.identity.UserID, productID)
	}
	if err != nil {
		log.Error("wishlist mutation failed", "err", err)
		return ResultFailed, fmt.Errorf("%s: %w", op, err)
	}

	vm.Refresh(ctx)

	if wishlisted {
		return ResultRemoved, nil
	}
	return ResultAdded, nil
}

func (vm *ViewModel) replace(items []domain.WishlistItem) {
	set := make(map[int64]struct{}, len(items))
	for _, it := range items {
		set[it.ProductID] = struct{}{}
	}
	vm.mu.Lock()
	vm.membership = set
	vm.mu.Unlock()
}
