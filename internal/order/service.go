package order

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/internal/item"
	"github.com/eshopteam/zohoserver/pkg/apierror"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

const deliveryLeadDays = 14

// Orchestrator creates a sales order and, when requested, follow-up
// purchase orders for lines whose ordered quantity exceeds available
// stock. The sales order is created first; purchase order failures do not
// roll it back.
type Orchestrator struct {
	client          *zohoclient.Client
	items           *item.Service
	defaultVendorID string
	logger          *zap.Logger

	now func() time.Time
}

// NewOrchestrator creates a new order orchestrator. An empty
// defaultVendorID disables the deficit purchase order flow.
func NewOrchestrator(client *zohoclient.Client, items *item.Service, defaultVendorID string, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:          client,
		items:           items,
		defaultVendorID: defaultVendorID,
		logger:          logger,
		now:             time.Now,
	}
}

// PlaceOrder runs the combined sales/purchase order flow.
func (o *Orchestrator) PlaceOrder(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	deficits, drafts := o.collectDeficits(ctx, req)

	salesOrder, salesOrderID, err := o.createSalesOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Success:              true,
		SalesOrder:           salesOrder,
		ItemsNeedingPurchase: deficits,
	}

	for _, draft := range drafts {
		poID, err := o.createPurchaseOrder(ctx, draft)
		if err != nil {
			o.logger.Warn("purchase order creation failed",
				zap.String("vendor_id", draft.VendorID),
				zap.String("salesorder_id", salesOrderID),
				zap.Error(err))
			result.PurchaseOrderErrors = append(result.PurchaseOrderErrors, PurchaseOrderError{
				VendorID: draft.VendorID,
				Error:    err.Error(),
			})
			continue
		}
		result.CreatedPurchaseOrders = append(result.CreatedPurchaseOrders, CreatedPurchaseOrder{
			VendorID:        draft.VendorID,
			PurchaseOrderID: poID,
		})
	}

	result.Message = buildMessage(result)
	return result, nil
}

func validateRequest(req Request) error {
	var fields []apierror.FieldError
	if req.CustomerID == "" {
		fields = append(fields, apierror.FieldError{Field: "customer_id", Message: "customer id is required"})
	}
	if len(req.LineItems) == 0 {
		fields = append(fields, apierror.FieldError{Field: "line_items", Message: "at least one line item is required"})
	}
	for i, line := range req.LineItems {
		if line.ItemID == "" {
			fields = append(fields, apierror.FieldError{
				Field:   fmt.Sprintf("line_items.%d.item_id", i),
				Message: "item id is required",
			})
		}
		if line.Quantity <= 0 {
			fields = append(fields, apierror.FieldError{
				Field:   fmt.Sprintf("line_items.%d.quantity", i),
				Message: "quantity must be greater than zero",
			})
		}
		if line.Rate < 0 {
			fields = append(fields, apierror.FieldError{
				Field:   fmt.Sprintf("line_items.%d.rate", i),
				Message: "rate must not be negative",
			})
		}
	}
	if len(fields) > 0 {
		return apierror.ValidationError("invalid order request", fields...)
	}
	return nil
}

// collectDeficits checks stock for every line and groups deficit lines
// into one purchase order draft per vendor. A failed stock lookup counts
// as zero available stock so the deficit is covered in full.
func (o *Orchestrator) collectDeficits(ctx context.Context, req Request) ([]DeficitEntry, []PurchaseOrderDraft) {
	if !req.CreatePurchaseOrdersForDeficit || o.defaultVendorID == "" {
		return nil, nil
	}

	date := o.now().Format("2006-01-02")
	deliveryDate := o.now().AddDate(0, 0, deliveryLeadDays).Format("2006-01-02")

	var deficits []DeficitEntry
	byVendor := make(map[string]int)
	var drafts []PurchaseOrderDraft

	for _, line := range req.LineItems {
		snap, err := o.items.Stock(ctx, line.ItemID)
		if err != nil {
			o.logger.Warn("stock lookup failed, assuming zero stock",
				zap.String("item_id", line.ItemID), zap.Error(err))
			snap = &item.StockSnapshot{ItemID: line.ItemID}
		}
		if line.Quantity <= snap.AvailableStock {
			continue
		}

		name := snap.Name
		if name == "" {
			name = "unknown item"
		}
		deficit := line.Quantity - snap.AvailableStock
		deficits = append(deficits, DeficitEntry{
			ItemID:          line.ItemID,
			ItemName:        name,
			OrderedQuantity: line.Quantity,
			AvailableStock:  snap.AvailableStock,
			Deficit:         deficit,
		})

		rate := snap.PurchaseRate
		if rate == 0 {
			rate = line.Rate
		}
		poLine := PurchaseLineItem{
			ItemID:   line.ItemID,
			Quantity: deficit,
			Rate:     rate,
		}

		vendorID := o.defaultVendorID
		idx, ok := byVendor[vendorID]
		if !ok {
			drafts = append(drafts, PurchaseOrderDraft{
				VendorID:     vendorID,
				Date:         date,
				DeliveryDate: deliveryDate,
			})
			idx = len(drafts) - 1
			byVendor[vendorID] = idx
		}
		drafts[idx].LineItems = append(drafts[idx].LineItems, poLine)
	}

	return deficits, drafts
}

func buildMessage(result *Result) string {
	switch {
	case len(result.PurchaseOrderErrors) > 0 && len(result.CreatedPurchaseOrders) > 0:
		return fmt.Sprintf("sales order created, %d purchase order(s) created, %d failed",
			len(result.CreatedPurchaseOrders), len(result.PurchaseOrderErrors))
	case len(result.PurchaseOrderErrors) > 0:
		return fmt.Sprintf("sales order created, %d purchase order(s) failed",
			len(result.PurchaseOrderErrors))
	case len(result.CreatedPurchaseOrders) > 0:
		return fmt.Sprintf("sales order and %d purchase order(s) created",
			len(result.CreatedPurchaseOrders))
	default:
		return "sales order created"
	}
}
