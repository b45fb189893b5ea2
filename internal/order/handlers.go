package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eshopteam/zohoserver/pkg/apierror"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Handler provides the HTTP handler for the combined order operation.
type Handler struct {
	orchestrator *Orchestrator
}

// NewHandler creates a new order handler.
func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// CreateHandler serves POST /api/sales-purchase-orders. It responds 201
// on full success and 200 when the sales order succeeded but one or more
// purchase orders failed.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("invalid JSON body").Write(w)
		return
	}

	result, err := h.orchestrator.PlaceOrder(r.Context(), req)
	if err != nil {
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) {
			apiErr.Write(w)
			return
		}
		if zohoclient.IsUnauthenticated(err) {
			apierror.Unauthorized("").Write(w)
			return
		}
		apierror.InternalError("failed to create sales order: " + err.Error()).Write(w)
		return
	}

	status := http.StatusCreated
	if len(result.PurchaseOrderErrors) > 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(result)
}
