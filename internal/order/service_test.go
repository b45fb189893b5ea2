package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/internal/item"
	"github.com/eshopteam/zohoserver/pkg/apierror"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

type fakeTokens struct{}

func (fakeTokens) GetValidAccessToken(_ context.Context) (string, error) {
	return "tok-1", nil
}

// fakeZoho emulates the three Zoho endpoints the orchestrator touches.
type fakeZoho struct {
	stock map[string]string // item_id -> items response body

	salesOrderCalls     int
	purchaseOrderCalls  int
	salesOrderBodies    []map[string]interface{}
	purchaseOrderBodies []map[string]interface{}

	failSalesOrder     bool
	failPurchaseOrders bool
	failStockLookups   bool
}

func (f *fakeZoho) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/inventory/v1/items":
			if f.failStockLookups {
				http.Error(w, `{"message":"internal error"}`, http.StatusInternalServerError)
				return
			}
			body, ok := f.stock[r.URL.Query().Get("item_ids")]
			if !ok {
				body = `{"items":[]}`
			}
			w.Write([]byte(body))

		case r.Method == http.MethodPost && r.URL.Path == "/inventory/v1/salesorders":
			f.salesOrderCalls++
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			f.salesOrderBodies = append(f.salesOrderBodies, payload)
			if f.failSalesOrder {
				http.Error(w, `{"message":"customer not found"}`, http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{"salesorder":{"salesorder_id":"so-1","customer_id":"cust-1"}}`))

		case r.Method == http.MethodPost && r.URL.Path == "/inventory/v1/purchaseorders":
			f.purchaseOrderCalls++
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			f.purchaseOrderBodies = append(f.purchaseOrderBodies, payload)
			if f.failPurchaseOrders {
				http.Error(w, `{"message":"vendor inactive"}`, http.StatusBadRequest)
				return
			}
			w.Write([]byte(fmt.Sprintf(`{"purchaseorder":{"purchaseorder_id":"po-%d"}}`, f.purchaseOrderCalls)))

		default:
			http.NotFound(w, r)
		}
	}
}

func stockBody(itemID, name string, purchaseRate, available float64) string {
	return fmt.Sprintf(`{"items":[{
		"item_id":%q,"name":%q,"purchase_rate":%g,
		"locations":[{"location_id":"loc-1","location_available_stock":%g}]
	}]}`, itemID, name, purchaseRate, available)
}

func newTestOrchestrator(t *testing.T, zoho *fakeZoho, vendorID string) *Orchestrator {
	t.Helper()
	server := httptest.NewServer(zoho.handler())
	t.Cleanup(server.Close)

	client := zohoclient.NewClient(server.URL, "org-1", fakeTokens{}, zap.NewNop())
	items := item.NewService(client, zap.NewNop())
	o := NewOrchestrator(client, items, vendorID, zap.NewNop())
	o.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return o
}

func validRequest() Request {
	return Request{
		CustomerID: "cust-1",
		LineItems: []LineItem{
			{ItemID: "item-1", Quantity: 5, Rate: 10},
		},
	}
}

func TestPlaceOrderSalesOnly(t *testing.T) {
	zoho := &fakeZoho{}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	result, err := o.PlaceOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, zoho.salesOrderCalls)
	assert.Zero(t, zoho.purchaseOrderCalls, "deficit flow must stay off without the flag")
	assert.Empty(t, result.ItemsNeedingPurchase)
	assert.Equal(t, "sales order created", result.Message)
	assert.Contains(t, string(result.SalesOrder), "so-1")
}

func TestPlaceOrderSufficientStock(t *testing.T) {
	zoho := &fakeZoho{stock: map[string]string{
		"item-1": stockBody("item-1", "Widget", 4, 100),
	}}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	req := validRequest()
	req.CreatePurchaseOrdersForDeficit = true

	result, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, zoho.salesOrderCalls)
	assert.Zero(t, zoho.purchaseOrderCalls)
	assert.Empty(t, result.ItemsNeedingPurchase)
}

func TestPlaceOrderExactStockIsNotDeficit(t *testing.T) {
	zoho := &fakeZoho{stock: map[string]string{
		"item-1": stockBody("item-1", "Widget", 4, 5),
	}}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	req := validRequest()
	req.CreatePurchaseOrdersForDeficit = true

	result, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.ItemsNeedingPurchase)
	assert.Zero(t, zoho.purchaseOrderCalls)
}

func TestPlaceOrderDeficitGroupsIntoSinglePurchaseOrder(t *testing.T) {
	zoho := &fakeZoho{stock: map[string]string{
		"item-1": stockBody("item-1", "Widget", 4, 2),
		"item-2": stockBody("item-2", "Gadget", 0, 0),
	}}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	req := Request{
		CustomerID: "cust-1",
		LineItems: []LineItem{
			{ItemID: "item-1", Quantity: 5, Rate: 10},
			{ItemID: "item-2", Quantity: 3, Rate: 8},
		},
		CreatePurchaseOrdersForDeficit: true,
	}

	result, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.ItemsNeedingPurchase, 2)
	assert.Equal(t, 3.0, result.ItemsNeedingPurchase[0].Deficit)
	assert.Equal(t, "Widget", result.ItemsNeedingPurchase[0].ItemName)
	assert.Equal(t, 3.0, result.ItemsNeedingPurchase[1].Deficit)

	// One vendor, therefore exactly one purchase order carrying both lines.
	require.Equal(t, 1, zoho.purchaseOrderCalls)
	require.Len(t, result.CreatedPurchaseOrders, 1)
	assert.Equal(t, "vendor-1", result.CreatedPurchaseOrders[0].VendorID)
	assert.Equal(t, "po-1", result.CreatedPurchaseOrders[0].PurchaseOrderID)

	po := zoho.purchaseOrderBodies[0]["purchaseorder"].(map[string]interface{})
	assert.Equal(t, "vendor-1", po["vendor_id"])
	assert.Equal(t, "2026-03-10", po["date"])
	assert.Equal(t, "2026-03-24", po["delivery_date"])

	lines := po["line_items"].([]interface{})
	require.Len(t, lines, 2)
	first := lines[0].(map[string]interface{})
	assert.Equal(t, 3.0, first["quantity"])
	assert.Equal(t, 4.0, first["rate"])
	// Zero purchase rate falls back to the sales line rate.
	second := lines[1].(map[string]interface{})
	assert.Equal(t, 8.0, second["rate"])
}

func TestPlaceOrderStockLookupFailureMeansFullDeficit(t *testing.T) {
	zoho := &fakeZoho{failStockLookups: true}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	req := validRequest()
	req.CreatePurchaseOrdersForDeficit = true

	result, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.ItemsNeedingPurchase, 1)
	assert.Equal(t, 5.0, result.ItemsNeedingPurchase[0].Deficit)
	assert.Equal(t, 0.0, result.ItemsNeedingPurchase[0].AvailableStock)
	assert.Equal(t, "unknown item", result.ItemsNeedingPurchase[0].ItemName)
	assert.Equal(t, 1, zoho.purchaseOrderCalls)
}

func TestPlaceOrderNoVendorConfigured(t *testing.T) {
	zoho := &fakeZoho{}
	o := newTestOrchestrator(t, zoho, "")

	req := validRequest()
	req.CreatePurchaseOrdersForDeficit = true

	result, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.ItemsNeedingPurchase)
	assert.Zero(t, zoho.purchaseOrderCalls)
}

func TestPlaceOrderSalesOrderFailure(t *testing.T) {
	zoho := &fakeZoho{
		failSalesOrder: true,
		stock: map[string]string{
			"item-1": stockBody("item-1", "Widget", 4, 0),
		},
	}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	req := validRequest()
	req.CreatePurchaseOrdersForDeficit = true

	result, err := o.PlaceOrder(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, result)

	// Sales order comes first; its failure must prevent any purchase order.
	assert.Equal(t, 1, zoho.salesOrderCalls)
	assert.Zero(t, zoho.purchaseOrderCalls)
}

func TestPlaceOrderPurchaseOrderFailureIsPartial(t *testing.T) {
	zoho := &fakeZoho{
		failPurchaseOrders: true,
		stock: map[string]string{
			"item-1": stockBody("item-1", "Widget", 4, 0),
		},
	}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	req := validRequest()
	req.CreatePurchaseOrdersForDeficit = true

	result, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err, "a purchase order failure must not fail the whole operation")

	assert.True(t, result.Success)
	assert.Contains(t, string(result.SalesOrder), "so-1")
	assert.Empty(t, result.CreatedPurchaseOrders)
	require.Len(t, result.PurchaseOrderErrors, 1)
	assert.Equal(t, "vendor-1", result.PurchaseOrderErrors[0].VendorID)
	assert.Contains(t, result.Message, "failed")
}

func TestPlaceOrderValidation(t *testing.T) {
	zoho := &fakeZoho{}
	o := newTestOrchestrator(t, zoho, "vendor-1")

	_, err := o.PlaceOrder(context.Background(), Request{
		LineItems: []LineItem{{ItemID: "", Quantity: 0, Rate: -1}},
	})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Len(t, apiErr.Details, 4)

	// Validation failures must not reach Zoho at all.
	assert.Zero(t, zoho.salesOrderCalls)
	assert.Zero(t, zoho.purchaseOrderCalls)
}

func TestPlaceOrderOmitsZeroDiscount(t *testing.T) {
	zoho := &fakeZoho{}
	o := newTestOrchestrator(t, zoho, "")

	req := Request{
		CustomerID: "cust-1",
		LineItems: []LineItem{
			{ItemID: "item-1", Quantity: 1, Rate: 10},
			{ItemID: "item-2", Quantity: 1, Rate: 10, DiscountAmount: 2.5},
		},
	}
	_, err := o.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	lines := zoho.salesOrderBodies[0]["line_items"].([]interface{})
	require.Len(t, lines, 2)
	_, hasDiscount := lines[0].(map[string]interface{})["discount"]
	assert.False(t, hasDiscount, "zero discount must be omitted")
	assert.Equal(t, 2.5, lines[1].(map[string]interface{})["discount"])
}
