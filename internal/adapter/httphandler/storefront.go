package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/service"
)

// GET v1/products?category=&price=&sort=&search=&color= (200 OK)
// GET v1/products/colors (200 OK)
// GET v1/products/featured (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/search?q=text (200 OK)
// GET v1/categories (200 OK)
// GET v1/settings (200 OK)
// GET v1/about (200 OK, 404 Not found)
// POST v1/track/visit JSON {"page_url" string} (202 Accepted)

type StorefrontHandler struct {
	svc service.Service
}

func RegisterStorefront(mux *http.ServeMux, svc service.Service) {
	h := StorefrontHandler{svc}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/colors", h.GetColors)
	mux.HandleFunc("GET /v1/products/featured", h.GetFeatured)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/search", h.GetSearch)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/settings", h.GetSettings)
	mux.HandleFunc("GET /v1/about", h.GetAbout)
	mux.HandleFunc("POST /v1/track/visit", h.PostTrackVisit)
}

func (h StorefrontHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetProducts"

	state := filterStateFromQuery(r)
	ps := h.svc.Browse(r.Context(), state)
	writeJSON(w, op, http.StatusOK, productsFromDomain(ps))
}

func (h StorefrontHandler) GetColors(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetColors"

	writeJSON(w, op, http.StatusOK, h.svc.FilterColors(r.Context()))
}

func (h StorefrontHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetFeatured"

	ps := h.svc.Featured(r.Context())
	writeJSON(w, op, http.StatusOK, productsFromDomain(ps))
}

func (h StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetProduct"
	log := slog.With("op", op)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Product(r.Context(), id, identityFromCtx(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Error("failed to get product", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, op, http.StatusOK, productFromDomain(p))
}

func (h StorefrontHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetSearch"

	rs := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, op, http.StatusOK, summariesFromDomain(rs))
}

func (h StorefrontHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetCategories"

	cs := h.svc.Categories(r.Context())
	writeJSON(w, op, http.StatusOK, categoriesFromDomain(cs))
}

func (h StorefrontHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetSettings"

	bs := h.svc.Settings(r.Context())
	writeJSON(w, op, http.StatusOK, settingsFromDomain(bs))
}

func (h StorefrontHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetAbout"
	log := slog.With("op", op)

	ac, err := h.svc.About(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "about content not found", http.StatusNotFound)
			return
		}
		log.Error("failed to get about content", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, op, http.StatusOK, aboutFromDomain(ac))
}

func (h StorefrontHandler) PostTrackVisit(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostTrackVisit"
	log := slog.With("op", op)

	var tv TrackVisit
	if err := json.NewDecoder(r.Body).Decode(&tv); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if tv.PageURL == "" {
		http.Error(w, "page_url is required", http.StatusBadRequest)
		return
	}

	h.svc.TrackVisit(r.Context(), tv.PageURL, identityFromCtx(r.Context()))
	w.WriteHeader(http.StatusAccepted)
}

func filterStateFromQuery(r *http.Request) domain.FilterState {
	state := domain.DefaultFilterState()
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		state.Category = v
	}
	if v := q.Get("price"); v != "" {
		state.PriceRange = domain.PriceRange(v)
	}
	if v := q.Get("sort"); v != "" {
		state.SortBy = domain.SortOrder(v)
	}
	state.Search = q.Get("search")
	if colors, ok := q["color"]; ok {
		state.Colors = colors
	}
	return state
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
