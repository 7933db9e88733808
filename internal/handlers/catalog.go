package handlers

import (
	"net/http"

	"beauty-assistant/internal/models"
	"beauty-assistant/internal/services"
)

type CatalogHandler struct {
	source services.CatalogSource
}

// NewCatalogHandler serves the catalog from source. A nil source makes the
// endpoint report that no catalog is configured.
func NewCatalogHandler(source services.CatalogSource) *CatalogHandler {
	return &CatalogHandler{source: source}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		writeJSON(w, http.StatusNotFound, errorResp("Product catalog is not configured."))
		return
	}

	products, err := h.source.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorRespWithDetails("Failed to load product catalog.", err))
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	writeJSON(w, http.StatusOK, models.Catalog{Products: products})
}
