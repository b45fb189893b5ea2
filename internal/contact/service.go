package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Service reads and creates contacts (customers and vendors) in Zoho
// Inventory. Vendors are contacts with contact_type=vendor; Zoho has no
// separate vendor endpoint.
type Service struct {
	client *zohoclient.Client
	logger *zap.Logger
}

// NewService creates a new contact service.
func NewService(client *zohoclient.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

type listResponse struct {
	Contacts    []json.RawMessage `json:"contacts"`
	PageContext PageContext       `json:"page_context"`
}

type createResponse struct {
	Contact json.RawMessage `json:"contact"`
}

// List fetches contacts, optionally filtered by type, sorted by name.
func (s *Service) List(ctx context.Context, contactType string, filters url.Values) ([]json.RawMessage, PageContext, error) {
	query := url.Values{}
	query.Set("per_page", "200")
	query.Set("page", "1")
	query.Set("sort_column", "contact_name")
	query.Set("sort_order", "A")
	for key, values := range filters {
		query[key] = values
	}
	if contactType != "" {
		query.Set("contact_type", contactType)
	}

	raw, err := s.client.Get(ctx, "/inventory/v1/contacts", query)
	if err != nil {
		return nil, PageContext{}, err
	}

	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, PageContext{}, fmt.Errorf("failed to parse contacts response: %w", err)
	}

	s.logger.Info("fetched zoho contacts",
		zap.String("contact_type", contactType), zap.Int("count", len(resp.Contacts)))
	return resp.Contacts, resp.PageContext, nil
}

// Vendors fetches contacts with contact_type=vendor.
func (s *Service) Vendors(ctx context.Context, filters url.Values) ([]json.RawMessage, PageContext, error) {
	return s.List(ctx, "vendor", filters)
}

// Create creates a customer or vendor contact and returns the created
// record as Zoho reports it.
func (s *Service) Create(ctx context.Context, req CreateContactRequest) (json.RawMessage, error) {
	raw, err := s.client.Post(ctx, "/inventory/v1/contacts", map[string]interface{}{"contact": req})
	if err != nil {
		return nil, err
	}

	var resp createResponse
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Contact) == 0 {
		return nil, fmt.Errorf("contact missing from response")
	}

	s.logger.Info("created zoho contact", zap.String("contact_name", req.ContactName))
	return resp.Contact, nil
}
