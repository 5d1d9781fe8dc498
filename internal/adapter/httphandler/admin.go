package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sanjibtex/storefront/internal/core/analytics"
	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/service"
)

// POST v1/admin/products JSON (201 Created, 400 Bad request)
// PUT v1/admin/products/{id} JSON (200 OK, 400 Bad request, 404 Not found)
// DELETE v1/admin/products/{id} (204 No content, 404 Not found)
// PUT v1/admin/settings JSON (200 OK)
// PUT v1/admin/about JSON (200 OK)
// GET v1/admin/analytics (200 OK)
// GET v1/admin/products/{id}/views/live (200 OK)
// All routes require the admin role.

// LiveViewsReader serves the live per-product view total.
type LiveViewsReader interface {
	ProductViewCount(productID int64) (int64, error)
}

type AdminHandler struct {
	svc        service.Service
	aggregator *analytics.Aggregator
	liveViews  LiveViewsReader
}

func RegisterAdmin(
	mux *http.ServeMux,
	svc service.Service,
	aggregator *analytics.Aggregator,
	liveViews LiveViewsReader,
) {
	h := AdminHandler{svc, aggregator, liveViews}
	mux.HandleFunc("POST /v1/admin/products", requireAdmin(h.PostProduct))
	mux.HandleFunc("PUT /v1/admin/products/{id}", requireAdmin(h.PutProduct))
	mux.HandleFunc("DELETE /v1/admin/products/{id}", requireAdmin(h.DeleteProduct))
	mux.HandleFunc("PUT /v1/admin/settings", requireAdmin(h.PutSettings))
	mux.HandleFunc("PUT /v1/admin/about", requireAdmin(h.PutAbout))
	mux.HandleFunc("GET /v1/admin/analytics", requireAdmin(h.GetAnalytics))
	mux.HandleFunc(
		"GET /v1/admin/products/{id}/views/live",
		requireAdmin(h.GetLiveViews),
	)
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"
	log := slog.With("op", op)

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), p.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error("failed to create product", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, op, http.StatusCreated, productFromDomain(created))
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutProduct"
	log := slog.With("op", op)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	dp := p.toDomain()
	dp.ID = id

	updated, err := h.svc.UpdateProduct(r.Context(), dp)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidProduct):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			log.Error("failed to update product", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, op, http.StatusOK, productFromDomain(updated))
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"
	log := slog.With("op", op)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Error("failed to delete product", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutSettings"
	log := slog.With("op", op)

	var bs BusinessSettings
	if err := json.NewDecoder(r.Body).Decode(&bs); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	updated, err := h.svc.UpdateSettings(r.Context(), bs.toDomain())
	if err != nil {
		log.Error("failed to update settings", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, op, http.StatusOK, settingsFromDomain(updated))
}

func (h AdminHandler) PutAbout(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutAbout"
	log := slog.With("op", op)

	var ac AboutContent
	if err := json.NewDecoder(r.Body).Decode(&ac); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	updated, err := h.svc.UpdateAbout(r.Context(), ac.toDomain())
	if err != nil {
		log.Error("failed to update about content", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, op, http.StatusOK, aboutFromDomain(updated))
}

func (h AdminHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetAnalytics"

	snap := h.aggregator.Snapshot()
	writeJSON(w, op, http.StatusOK, snapshotFromDomain(snap))
}

func (h AdminHandler) GetLiveViews(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetLiveViews"
	log := slog.With("op", op)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	views, err := h.liveViews.ProductViewCount(id)
	if err != nil {
		log.Error("failed to read live views", "err", err)
		http.Error(w, "live views unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, op, http.StatusOK, LiveViewCount{ProductID: id, Views: views})
}
