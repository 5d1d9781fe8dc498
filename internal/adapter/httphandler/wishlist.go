package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
	"github.com/sanjibtex/storefront/internal/core/wishlist"
)

// GET v1/wishlist (200 OK, empty set for anonymous callers)
// POST v1/wishlist/{id}/toggle (200 OK, 401 Unauthorized, 502 Bad gateway)

type WishlistHandler struct {
	store port.WishlistStore

	// One view model per user, held across requests. The view model's
	// own lock is what serializes a user's toggle cycles, so handing
	// out a fresh instance per request would lose that guarantee.
	mu  sync.Mutex
	vms map[string]*wishlist.ViewModel
}

func RegisterWishlist(mux *http.ServeMux, store port.WishlistStore) {
	h := &WishlistHandler{
		store: store,
		vms:   make(map[string]*wishlist.ViewModel),
	}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist/{id}/toggle", h.PostToggle)
}

func (h *WishlistHandler) viewModel(identity *domain.Identity) *wishlist.ViewModel {
	h.mu.Lock()
	defer h.mu.Unlock()

	vm, ok := h.vms[identity.UserID]
	if !ok {
		vm = wishlist.New(h.store, identity)
		h.vms[identity.UserID] = vm
	}
	return vm
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	log := slog.With("op", op)

	identity := identityFromCtx(r.Context())
	if !identity.IsAuthenticated() {
		writeJSON(w, op, http.StatusOK, Wishlist{ProductIDs: []int64{}})
		return
	}

	items, err := h.store.GetWishlist(r.Context(), identity.UserID)
	if err != nil {
		// The page renders an empty wishlist rather than an error.
		log.Error("failed to fetch wishlist", "err", err)
		writeJSON(w, op, http.StatusOK, Wishlist{ProductIDs: []int64{}})
		return
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	writeJSON(w, op, http.StatusOK, Wishlist{ProductIDs: ids, Count: len(ids)})
}

func (h *WishlistHandler) PostToggle(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostToggle"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	identity := identityFromCtx(r.Context())
	if !identity.IsAuthenticated() {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	vm := h.viewModel(identity)
	vm.Refresh(r.Context())

	result, err := vm.Toggle(r.Context(), productID)
	switch result {
	case wishlist.ResultAuthRequired:
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case wishlist.ResultFailed:
		if !errors.Is(err, domain.ErrAuthRequired) {
			log.Error("toggle failed", "productID", productID, "err", err)
		}
		http.Error(w, "failed to update wishlist", http.StatusBadGateway)
	case wishlist.ResultAdded:
		writeJSON(w, op, http.StatusOK,
			ToggleResult{Status: "added", Count: vm.Count()})
	case wishlist.ResultRemoved:
		writeJSON(w, op, http.StatusOK,
			ToggleResult{Status: "removed", Count: vm.Count()})
	}
}
