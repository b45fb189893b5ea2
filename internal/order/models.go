package order

import "encoding/json"

// LineItem is one line of an inbound order request.
type LineItem struct {
	ItemID         string  `json:"item_id"`
	Quantity       float64 `json:"quantity"`
	Rate           float64 `json:"rate"`
	Description    string  `json:"description,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
}

// Request is the inbound payload for the combined sales/purchase order
// operation.
type Request struct {
	CustomerID                     string     `json:"customer_id"`
	Date                           string     `json:"date,omitempty"`
	Notes                          string     `json:"notes,omitempty"`
	TermsAndConditions             string     `json:"terms_and_conditions,omitempty"`
	LineItems                      []LineItem `json:"line_items"`
	CreatePurchaseOrdersForDeficit bool       `json:"create_purchase_orders_for_deficit,omitempty"`
}

// DeficitEntry reports one line whose ordered quantity exceeds available
// stock.
type DeficitEntry struct {
	ItemID          string  `json:"item_id"`
	ItemName        string  `json:"item_name"`
	OrderedQuantity float64 `json:"ordered_quantity"`
	AvailableStock  float64 `json:"available_stock"`
	Deficit         float64 `json:"deficit"`
}

// PurchaseLineItem is one line of a purchase order sent to Zoho.
type PurchaseLineItem struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// PurchaseOrderDraft is a purchase order grouped by vendor, ready to send.
type PurchaseOrderDraft struct {
	VendorID     string             `json:"vendor_id"`
	Date         string             `json:"date"`
	DeliveryDate string             `json:"delivery_date"`
	LineItems    []PurchaseLineItem `json:"line_items"`
}

// CreatedPurchaseOrder records a purchase order Zoho accepted.
type CreatedPurchaseOrder struct {
	VendorID        string `json:"vendor_id"`
	PurchaseOrderID string `json:"purchaseorder_id"`
}

// PurchaseOrderError records a purchase order Zoho rejected.
type PurchaseOrderError struct {
	VendorID string `json:"vendor_id"`
	Error    string `json:"error"`
}

// Result is the outcome of a PlaceOrder call. The sales order is always
// present; purchase order fields are populated only when the deficit flow
// ran.
type Result struct {
	Success               bool                   `json:"success"`
	Message               string                 `json:"message"`
	SalesOrder            json.RawMessage        `json:"sales_order"`
	CreatedPurchaseOrders []CreatedPurchaseOrder `json:"created_purchase_orders,omitempty"`
	ItemsNeedingPurchase  []DeficitEntry         `json:"items_needing_purchase,omitempty"`
	PurchaseOrderErrors   []PurchaseOrderError   `json:"purchase_order_errors,omitempty"`
}

// salesLineItem is the Zoho wire shape of a sales order line. Discount is
// a pointer so a zero discount is omitted entirely rather than sent as 0.
type salesLineItem struct {
	ItemID      string   `json:"item_id"`
	Quantity    float64  `json:"quantity"`
	Rate        float64  `json:"rate"`
	Description string   `json:"description,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
}
