package auth

import (
	"context"
	"errors"
	"time"
)

// Credential is the single stored Zoho OAuth credential set. At most one
// credential exists at a time; saving a new one supersedes the old.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// tokenResponse is the wire shape of Zoho's /oauth/v2/token responses.
// Zoho reports grant failures in the "error" field, sometimes with a 200.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Error        string `json:"error"`
}

// TokenStore persists the single credential.
type TokenStore interface {
	// Save atomically replaces any previously stored credential.
	Save(ctx context.Context, cred *Credential) error
	// Get returns the stored credential or ErrNoCredential.
	Get(ctx context.Context) (*Credential, error)
	// UpdateAccess mutates only the access token and expiry of the stored
	// credential; the refresh token is left untouched.
	UpdateAccess(ctx context.Context, accessToken string, expiresAt time.Time) error
	// Delete removes the stored credential.
	Delete(ctx context.Context) error
}

// OAuthConfig holds the Zoho OAuth 2.0 client settings.
type OAuthConfig struct {
	ClientID       string
	ClientSecret   string
	RedirectURI    string
	AccountsDomain string
	Scope          string
}

var (
	// ErrNoCredential is returned by TokenStore.Get when nothing is stored.
	ErrNoCredential = errors.New("no zoho credential stored")

	// ErrNotAuthenticated means the authorization flow has never completed;
	// a human must visit the consent URL.
	ErrNotAuthenticated = errors.New("zoho authorization required")

	// ErrRefreshFailed means the refresh grant was rejected. The stored
	// credential is kept; re-authorization is required once it expires.
	ErrRefreshFailed = errors.New("zoho token refresh failed")
)
