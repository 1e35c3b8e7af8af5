package handlers

import (
	"net/http"

	"lifemap-backend/infrastructure/geocode"
	"lifemap-backend/pkg/common"

	"go.uber.org/zap"
)

// GeocodeHandler relays city lookups to the geocoding provider
type GeocodeHandler struct {
	client *geocode.Client
	logger *zap.Logger
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(client *geocode.Client, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{client: client, logger: logger}
}

// Lookup handles GET /geocode?city=...
func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "city query parameter is required")
		return
	}

	location, err := h.client.Lookup(r.Context(), city)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, location)
}
