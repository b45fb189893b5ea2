package item

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Service reads items and stock levels from Zoho Inventory.
type Service struct {
	client *zohoclient.Client
	logger *zap.Logger
}

// NewService creates a new item service.
func NewService(client *zohoclient.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

type listResponse struct {
	Items       []Item      `json:"items"`
	PageContext PageContext `json:"page_context"`
}

// List fetches items, sorted by name. Caller-supplied filters override the
// pagination defaults.
func (s *Service) List(ctx context.Context, filters url.Values) ([]Item, PageContext, error) {
	query := url.Values{}
	query.Set("per_page", "50")
	query.Set("page", "1")
	query.Set("sort_column", "name")
	query.Set("sort_order", "A")
	for key, values := range filters {
		query[key] = values
	}

	raw, err := s.client.Get(ctx, "/inventory/v1/items", query)
	if err != nil {
		return nil, PageContext{}, err
	}

	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, PageContext{}, fmt.Errorf("failed to parse items response: %w", err)
	}

	s.logger.Info("fetched zoho items", zap.Int("count", len(resp.Items)))
	return resp.Items, resp.PageContext, nil
}

// Stock returns the current availability for a single item, summed across
// all locations.
func (s *Service) Stock(ctx context.Context, itemID string) (*StockSnapshot, error) {
	if itemID == "" {
		return nil, fmt.Errorf("item id is required")
	}

	filters := url.Values{}
	filters.Set("item_ids", itemID)

	items, _, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("item %s not found", itemID)
	}

	it := items[0]
	return &StockSnapshot{
		ItemID:         it.ItemID,
		Name:           it.Name,
		PurchaseRate:   float64(it.PurchaseRate),
		AvailableStock: it.AvailableStock(),
	}, nil
}
