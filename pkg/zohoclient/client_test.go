package zohoclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokenSource struct {
	token string
	err   error
}

func (s *staticTokenSource) GetValidAccessToken(_ context.Context) (string, error) {
	return s.token, s.err
}

func TestRequestUnauthenticatedShortCircuits(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewClient(server.URL, "org-1", &staticTokenSource{err: errors.New("no credential")}, zap.NewNop())

	_, err := client.Get(context.Background(), "/inventory/v1/items", nil)
	require.Error(t, err)
	assert.True(t, IsUnauthenticated(err))
	assert.Zero(t, hits, "no network call without a token")
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotOrg string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("X-com-zoho-inventory-organizationid")
		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "org-1", &staticTokenSource{token: "tok-1"}, zap.NewNop())

	_, err := client.Get(context.Background(), "/inventory/v1/items", nil)
	require.NoError(t, err)
	assert.Equal(t, "Zoho-oauthtoken tok-1", gotAuth)
	assert.Equal(t, "org-1", gotOrg)
}

func TestRequestRemoteRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":1001,"message":"invalid item"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL, "org-1", &staticTokenSource{token: "tok-1"}, zap.NewNop())

	_, err := client.Get(context.Background(), "/inventory/v1/items", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRemoteRejected, apiErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Contains(t, apiErr.Body, "invalid item")
	assert.False(t, IsUnauthenticated(err))
}

func TestRequestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "org-1", &staticTokenSource{token: "tok-1"}, zap.NewNop())

	_, err := client.Get(context.Background(), "/inventory/v1/items", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
}

func TestPostEncodesBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "org-1", &staticTokenSource{token: "tok-1"}, zap.NewNop())

	_, err := client.Post(context.Background(), "/inventory/v1/contacts", map[string]string{"contact_name": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Acme", gotBody["contact_name"])
}
