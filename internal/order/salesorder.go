package order

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// createSalesOrder sends the sales order to Zoho and returns the created
// record plus its id.
func (o *Orchestrator) createSalesOrder(ctx context.Context, req Request) (json.RawMessage, string, error) {
	payload := map[string]interface{}{
		"customer_id": req.CustomerID,
		"line_items":  normalizeLineItems(req.LineItems),
	}
	if req.Date != "" {
		payload["date"] = req.Date
	}
	if req.Notes != "" {
		payload["notes"] = req.Notes
	}
	if req.TermsAndConditions != "" {
		payload["terms_and_conditions"] = req.TermsAndConditions
	}

	raw, err := o.client.Post(ctx, "/inventory/v1/salesorders", payload)
	if err != nil {
		return nil, "", err
	}

	var resp struct {
		SalesOrder json.RawMessage `json:"salesorder"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.SalesOrder) == 0 {
		return nil, "", fmt.Errorf("salesorder missing from response")
	}

	var ids struct {
		SalesOrderID string `json:"salesorder_id"`
	}
	if err := json.Unmarshal(resp.SalesOrder, &ids); err != nil {
		return nil, "", fmt.Errorf("failed to parse salesorder response: %w", err)
	}

	o.logger.Info("created zoho sales order",
		zap.String("salesorder_id", ids.SalesOrderID),
		zap.String("customer_id", req.CustomerID))
	return resp.SalesOrder, ids.SalesOrderID, nil
}

func normalizeLineItems(lines []LineItem) []salesLineItem {
	out := make([]salesLineItem, 0, len(lines))
	for _, line := range lines {
		item := salesLineItem{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			Rate:        line.Rate,
			Description: line.Description,
		}
		if line.DiscountAmount > 0 {
			discount := line.DiscountAmount
			item.Discount = &discount
		}
		out = append(out, item)
	}
	return out
}
