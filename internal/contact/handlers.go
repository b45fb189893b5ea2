package contact

import (
	"encoding/json"
	"net/http"

	"github.com/eshopteam/zohoserver/pkg/apierror"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Handler provides HTTP handlers for contact and vendor operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new contact handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListHandler serves GET /api/contacts.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	contactType := query.Get("contact_type")
	query.Del("contact_type")

	contacts, pageContext, err := h.service.List(r.Context(), contactType, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contacts":     contacts,
		"page_context": pageContext,
	})
}

// CreateHandler serves POST /api/contacts.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("invalid JSON body").Write(w)
		return
	}
	if req.ContactName == "" {
		apierror.ValidationError("invalid contact request",
			apierror.FieldError{Field: "contact_name", Message: "contact name is required"}).Write(w)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"contact": created,
	})
}

// VendorsHandler serves GET /api/vendors.
func (h *Handler) VendorsHandler(w http.ResponseWriter, r *http.Request) {
	vendors, pageContext, err := h.service.Vendors(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"vendors":      vendors,
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
