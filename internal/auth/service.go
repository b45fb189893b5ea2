package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultScope grants full Zoho Inventory access.
const DefaultScope = "ZohoInventory.FullAccess.all"

// expiryBuffer guards against the token expiring between the validity
// check here and the API call that uses it.
const expiryBuffer = 30 * time.Second

// Service owns the Zoho OAuth 2.0 token lifecycle.
type Service struct {
	config     OAuthConfig
	tokenStore TokenStore
	httpClient *http.Client
	logger     *zap.Logger
}

// NewService creates a new auth service.
func NewService(config OAuthConfig, tokenStore TokenStore, logger *zap.Logger) *Service {
	if config.Scope == "" {
		config.Scope = DefaultScope
	}
	return &Service{
		config:     config,
		tokenStore: tokenStore,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// GetAuthorizationURL builds the Zoho consent URL. No side effects.
func (s *Service) GetAuthorizationURL() string {
	u, _ := url.Parse(s.config.AccountsDomain + "/oauth/v2/auth")
	q := u.Query()

	q.Set("scope", s.config.Scope)
	q.Set("client_id", s.config.ClientID)
	q.Set("response_type", "code")
	q.Set("access_type", "offline")
	q.Set("redirect_uri", s.config.RedirectURI)
	q.Set("prompt", "consent")

	u.RawQuery = q.Encode()
	return u.String()
}

// ExchangeCode performs the authorization-code grant and replaces the
// stored credential. Zoho issues the code from a region-specific data
// center, so the accounts domain is derived from the callback's location
// parameter; an empty location falls back to the configured domain. On any
// failure the stored credential is left exactly as it was.
func (s *Service) ExchangeCode(ctx context.Context, code, location string) error {
	accountsDomain := s.config.AccountsDomain
	if location != "" {
		accountsDomain = "https://accounts.zoho." + location
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", s.config.ClientID)
	data.Set("client_secret", s.config.ClientSecret)
	data.Set("redirect_uri", s.config.RedirectURI)
	data.Set("code", code)

	tok, err := s.executeTokenRequest(ctx, accountsDomain, data)
	if err != nil {
		return err
	}

	cred := &Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
	if err := s.tokenStore.Save(ctx, cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	s.logger.Info("zoho inventory authorization successful",
		zap.Time("expires_at", cred.ExpiresAt))
	return nil
}

// GetValidAccessToken returns an access token valid for at least the
// expiry buffer, refreshing synchronously when the stored one is expired
// or about to expire.
func (s *Service) GetValidAccessToken(ctx context.Context) (string, error) {
	cred, err := s.tokenStore.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}

	if time.Until(cred.ExpiresAt) <= expiryBuffer {
		s.logger.Info("zoho access token expired or about to expire, refreshing")
		accessToken, err := s.refresh(ctx, cred)
		if err != nil {
			s.logger.Error("zoho token refresh failed, re-authorization may be required",
				zap.Error(err))
			return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
		}
		return accessToken, nil
	}

	return cred.AccessToken, nil
}

// Connected reports whether a usable access token is available.
func (s *Service) Connected(ctx context.Context) bool {
	_, err := s.GetValidAccessToken(ctx)
	return err == nil
}

// refresh performs the refresh-token grant against the configured accounts
// domain. Only the access token and expiry are updated; the refresh token
// is never rotated. On failure stored state is untouched.
func (s *Service) refresh(ctx context.Context, cred *Credential) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("client_id", s.config.ClientID)
	data.Set("client_secret", s.config.ClientSecret)
	data.Set("refresh_token", cred.RefreshToken)

	tok, err := s.executeTokenRequest(ctx, s.config.AccountsDomain, data)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	if err := s.tokenStore.UpdateAccess(ctx, tok.AccessToken, expiresAt); err != nil {
		return "", fmt.Errorf("failed to update credential: %w", err)
	}

	s.logger.Info("zoho access token refreshed", zap.Time("expires_at", expiresAt))
	return tok.AccessToken, nil
}

// executeTokenRequest posts a form-encoded grant to the token endpoint.
func (s *Service) executeTokenRequest(ctx context.Context, accountsDomain string, data url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		accountsDomain+"/oauth/v2/token", strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.Error != "" {
		return nil, fmt.Errorf("token request rejected: %s", tok.Error)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &tok, nil
}
