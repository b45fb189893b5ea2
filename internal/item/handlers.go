package item

import (
	"encoding/json"
	"net/http"

	"github.com/eshopteam/zohoserver/pkg/apierror"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Handler provides HTTP handlers for item lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new item handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListHandler serves GET /api/items.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	items, pageContext, err := h.service.List(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":        items,
		"page_context": pageContext,
	})
}

func writeError(w http.ResponseWriter, err error) {
	if zohoclient.IsUnauthenticated(err) {
		apierror.Unauthorized("").Write(w)
		return
	}
	apierror.InternalError(err.Error()).Write(w)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
