package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/pkg/apierror"
)

// Handler provides the HTTP surface for the Zoho authorization flow.
type Handler struct {
	service     *Service
	frontendURL string
	logger      *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// generateState creates a secure random state for OAuth.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// AuthURLHandler returns the Zoho consent URL for the frontend to open.
func (h *Handler) AuthURLHandler(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		apierror.InternalError("failed to generate state").Write(w)
		return
	}

	session := GetSession(r)
	session.Values["zoho_state"] = state
	session.Values["zoho_state_expiry"] = time.Now().Add(10 * time.Minute).Unix()
	if err := session.Save(r, w); err != nil {
		apierror.InternalError("failed to save session").Write(w)
		return
	}

	authURL := h.service.GetAuthorizationURL() + "&state=" + url.QueryEscape(state)
	h.logger.Info("issued zoho authorization url")
	writeJSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

// CallbackHandler handles the OAuth callback from Zoho: it verifies the
// state nonce, exchanges the code, and redirects back to the frontend with
// the outcome in the query string.
func (h *Handler) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")
	location := query.Get("location")

	if code == "" {
		h.redirectToFrontend(w, r, "error", "missing authorization code")
		return
	}

	session := GetSession(r)
	savedState, ok := session.Values["zoho_state"].(string)
	if !ok || savedState != state {
		h.redirectToFrontend(w, r, "error", "invalid state parameter")
		return
	}
	expiry, ok := session.Values["zoho_state_expiry"].(int64)
	if !ok || time.Now().Unix() > expiry {
		h.redirectToFrontend(w, r, "error", "state parameter expired")
		return
	}

	delete(session.Values, "zoho_state")
	delete(session.Values, "zoho_state_expiry")
	if err := session.Save(r, w); err != nil {
		h.redirectToFrontend(w, r, "error", "failed to save session")
		return
	}

	if err := h.service.ExchangeCode(r.Context(), code, location); err != nil {
		h.logger.Error("zoho authorization failed",
			zap.String("location", location), zap.Error(err))
		h.redirectToFrontend(w, r, "error", "authorization failed: "+err.Error())
		return
	}

	h.redirectToFrontend(w, r, "success", "Zoho Inventory authorization successful")
}

// StatusHandler reports whether a usable Zoho token is available. A stale
// credential triggers a refresh attempt here, same as any API call would.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	authenticated := h.service.Connected(r.Context())
	h.logger.Info("zoho auth status checked", zap.Bool("authenticated", authenticated))
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}

func (h *Handler) redirectToFrontend(w http.ResponseWriter, r *http.Request, status, message string) {
	target := h.frontendURL + "?auth_status=" + status + "&message=" + url.QueryEscape(message)
	http.Redirect(w, r, target, http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
