package order

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// createPurchaseOrder sends one vendor's purchase order to Zoho and
// returns the created purchase order id.
func (o *Orchestrator) createPurchaseOrder(ctx context.Context, draft PurchaseOrderDraft) (string, error) {
	raw, err := o.client.Post(ctx, "/inventory/v1/purchaseorders", map[string]interface{}{
		"purchaseorder": draft,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		PurchaseOrder struct {
			PurchaseOrderID string `json:"purchaseorder_id"`
		} `json:"purchaseorder"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.PurchaseOrder.PurchaseOrderID == "" {
		return "", fmt.Errorf("purchaseorder missing from response")
	}

	o.logger.Info("created zoho purchase order",
		zap.String("purchaseorder_id", resp.PurchaseOrder.PurchaseOrderID),
		zap.String("vendor_id", draft.VendorID))
	return resp.PurchaseOrder.PurchaseOrderID, nil
}
