package zohoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// TokenSource supplies a valid Zoho access token for each request.
type TokenSource interface {
	GetValidAccessToken(ctx context.Context) (string, error)
}

// Client performs authenticated calls against the Zoho Inventory API.
// It obtains a fresh token before every call and never caches responses.
type Client struct {
	apiDomain      string
	organizationID string
	tokens         TokenSource
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a new Zoho Inventory API client.
func NewClient(apiDomain, organizationID string, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		apiDomain:      apiDomain,
		organizationID: organizationID,
		tokens:         tokens,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         logger,
	}
}

// Request performs a single authenticated call and returns the raw JSON
// response. Each call is attempted exactly once; retries are the caller's
// decision.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	token, err := c.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, &APIError{Kind: KindUnauthenticated, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindTransport, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiDomain+path, reqBody)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Err: err}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-com-zoho-inventory-organizationid", c.organizationID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("zoho api request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &APIError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("zoho api request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return nil, &APIError{Kind: KindRemoteRejected, Status: resp.StatusCode, Body: string(data)}
	}

	return json.RawMessage(data), nil
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, query, nil)
}

// Post performs an authenticated POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, path, nil, body)
}
