package organization

import (
	"encoding/json"
	"net/http"

	"github.com/eshopteam/zohoserver/pkg/apierror"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Handler provides the HTTP handler for organization details.
type Handler struct {
	service *Service
}

// NewHandler creates a new organization handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DetailsHandler serves GET /api/organization.
func (h *Handler) DetailsHandler(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.Details(r.Context())
	if err != nil {
		if zohoclient.IsUnauthenticated(err) {
			apierror.Unauthorized("").Write(w)
			return
		}
		apierror.InternalError(err.Error()).Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"organization": org})
}
