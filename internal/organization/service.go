package organization

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

// Service reads the Zoho Inventory organization record.
type Service struct {
	client *zohoclient.Client
	logger *zap.Logger
}

// NewService creates a new organization service.
func NewService(client *zohoclient.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Details fetches the organization record.
func (s *Service) Details(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.client.Get(ctx, "/inventory/v1/organization", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Organization json.RawMessage `json:"organization"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Organization) == 0 {
		return nil, fmt.Errorf("organization missing from response")
	}

	s.logger.Info("fetched zoho organization details")
	return resp.Organization, nil
}
